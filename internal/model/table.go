package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go-dashboard-pipeline/pkg/utils"
)

// ValueKind tells whether a cell holds text or a number
type ValueKind int

const (
	KindText ValueKind = iota
	KindNumber
)

// Value is a single table cell: a categorical label or a number
type Value struct {
	Kind ValueKind
	text string
	num  float64
}

// TextValue wraps a label
func TextValue(s string) Value {
	return Value{Kind: KindText, text: s}
}

// NumberValue wraps a number
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, num: f}
}

// ValueOf converts the loosely typed output of utils.ParseValue into a Value.
func ValueOf(v interface{}) Value {
	switch val := v.(type) {
	case Value:
		return val
	case string:
		return TextValue(val)
	case nil:
		return TextValue("")
	default:
		if f, ok := utils.Numeric(val); ok {
			return NumberValue(f)
		}
		return TextValue(fmt.Sprintf("%v", val))
	}
}

// Float returns the numeric content and whether the value is a number.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Equal compares kind and content. Text comparison is case-sensitive.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	if v.Kind == KindNumber {
		return v.num == o.num
	}
	return v.text == o.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindNumber {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}

// Row maps column name to cell value
type Row map[string]Value

// Table is an ordered, read-only set of rows sharing one column schema.
// Rows are never mutated after construction, so tables derived through
// Select share row storage with their parent.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable copies columns and rows into a new Table.
func NewTable(columns []string, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}

	copied := make([][]Value, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), len(columns))
		}
		copied[i] = append([]Value(nil), r...)
	}

	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns returns a copy of the column names in schema order
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Value returns the cell at row i, column name.
func (t *Table) Value(i int, column string) (Value, bool) {
	if t == nil || i < 0 || i >= len(t.rows) {
		return Value{}, false
	}
	c, ok := t.index[column]
	if !ok {
		return Value{}, false
	}
	return t.rows[i][c], true
}

// Row returns row i as a fresh column → value map.
func (t *Table) Row(i int) Row {
	if t == nil || i < 0 || i >= len(t.rows) {
		return nil
	}
	r := make(Row, len(t.columns))
	for c, name := range t.columns {
		r[name] = t.rows[i][c]
	}
	return r
}

// Rows returns every row as a map, in table order.
func (t *Table) Rows() []Row {
	out := make([]Row, t.Len())
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}

// Select returns a new table holding the rows at the given indices, in order.
func (t *Table) Select(indices []int) *Table {
	if t == nil {
		return &Table{index: map[string]int{}}
	}
	rows := make([][]Value, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(t.rows) {
			rows = append(rows, t.rows[i])
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Project returns a new table restricted to the named columns.
func (t *Table) Project(columns ...string) (*Table, error) {
	if t == nil {
		return nil, fmt.Errorf("project: nil table")
	}
	pos := make([]int, len(columns))
	for i, c := range columns {
		idx, ok := t.index[c]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", c)
		}
		pos[i] = idx
	}

	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		out := make([]Value, len(pos))
		for j, p := range pos {
			out[j] = r[p]
		}
		rows[i] = out
	}
	return NewTable(columns, rows)
}

// Bounds returns the smallest and largest numeric value in a column.
// ok is false when the column is missing or holds no numbers.
func (t *Table) Bounds(column string) (min, max float64, ok bool) {
	if t == nil {
		return 0, 0, false
	}
	c, exists := t.index[column]
	if !exists {
		return 0, 0, false
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, r := range t.rows {
		if f, isNum := r[c].Float(); isNum {
			ok = true
			if f < min {
				min = f
			}
			if f > max {
				max = f
			}
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// Distinct returns the distinct values of a column in first-seen order.
func (t *Table) Distinct(column string) []Value {
	if t == nil {
		return nil
	}
	c, exists := t.index[column]
	if !exists {
		return nil
	}
	seen := make(map[Value]bool)
	var out []Value
	for _, r := range t.rows {
		if !seen[r[c]] {
			seen[r[c]] = true
			out = append(out, r[c])
		}
	}
	return out
}

func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"columns": t.Columns(),
		"rows":    t.Rows(),
	})
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var raw struct {
		Columns []string `json:"columns"`
		Rows    []Row    `json:"rows"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rows := make([][]Value, len(raw.Rows))
	for i, r := range raw.Rows {
		vals := make([]Value, len(raw.Columns))
		for c, name := range raw.Columns {
			vals[c] = r[name]
		}
		rows[i] = vals
	}
	decoded, err := NewTable(raw.Columns, rows)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}
