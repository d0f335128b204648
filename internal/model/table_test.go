package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launchTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]string{"site", "payload", "class"}, [][]Value{
		{TextValue("A"), NumberValue(100), NumberValue(1)},
		{TextValue("A"), NumberValue(5000), NumberValue(0)},
		{TextValue("B"), NumberValue(200), NumberValue(1)},
	})
	require.NoError(t, err)
	return table
}

func TestValueOf(t *testing.T) {
	assert.Equal(t, NumberValue(3), ValueOf(3))
	assert.Equal(t, NumberValue(2.5), ValueOf(2.5))
	assert.Equal(t, TextValue("CCAFS LC-40"), ValueOf("CCAFS LC-40"))
	assert.Equal(t, TextValue(""), ValueOf(nil))
	assert.Equal(t, TextValue("true"), ValueOf(true))
	assert.Equal(t, NumberValue(7), ValueOf(int32(7)))
	assert.Equal(t, NumberValue(9), ValueOf(uint16(9)))
	assert.Equal(t, NumberValue(1.5), ValueOf(float32(1.5)))
}

func TestValueEqualIsKindAndCaseSensitive(t *testing.T) {
	assert.True(t, TextValue("ALL").Equal(TextValue("ALL")))
	assert.False(t, TextValue("ALL").Equal(TextValue("all")))
	assert.False(t, TextValue("1").Equal(NumberValue(1)))
	assert.True(t, NumberValue(1).Equal(NumberValue(1.0)))
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal([]Value{TextValue("Sedan"), NumberValue(1.5), NumberValue(math.NaN())})
	require.NoError(t, err)
	assert.JSONEq(t, `["Sedan", 1.5, null]`, string(data))

	var v Value
	require.NoError(t, json.Unmarshal([]byte(`1980`), &v))
	assert.True(t, v.Equal(NumberValue(1980)))
}

func TestNewTableRejectsBadShape(t *testing.T) {
	_, err := NewTable([]string{"a", "a"}, nil)
	assert.Error(t, err)

	_, err = NewTable([]string{"a", "b"}, [][]Value{{TextValue("x")}})
	assert.Error(t, err)
}

func TestNewTableCopiesInput(t *testing.T) {
	cols := []string{"a"}
	rows := [][]Value{{NumberValue(1)}}
	table, err := NewTable(cols, rows)
	require.NoError(t, err)

	cols[0] = "changed"
	rows[0][0] = NumberValue(99)

	assert.Equal(t, []string{"a"}, table.Columns())
	v, ok := table.Value(0, "a")
	require.True(t, ok)
	assert.True(t, v.Equal(NumberValue(1)))
}

func TestTableAccessors(t *testing.T) {
	table := launchTable(t)

	assert.Equal(t, 3, table.Len())
	assert.True(t, table.HasColumn("payload"))
	assert.False(t, table.HasColumn("missing"))

	_, ok := table.Value(5, "site")
	assert.False(t, ok)

	row := table.Row(2)
	assert.Equal(t, TextValue("B"), row["site"])

	assert.Equal(t, []Value{TextValue("A"), TextValue("B")}, table.Distinct("site"))

	min, max, ok := table.Bounds("payload")
	require.True(t, ok)
	assert.Equal(t, 100.0, min)
	assert.Equal(t, 5000.0, max)

	_, _, ok = table.Bounds("site")
	assert.False(t, ok)
}

func TestTableSelectAndProject(t *testing.T) {
	table := launchTable(t)

	selected := table.Select([]int{2, 0, 7})
	require.Equal(t, 2, selected.Len())
	v, _ := selected.Value(0, "site")
	assert.Equal(t, TextValue("B"), v)
	assert.Equal(t, 3, table.Len())

	projected, err := table.Project("class", "site")
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "site"}, projected.Columns())
	assert.False(t, projected.HasColumn("payload"))

	_, err = table.Project("nope")
	assert.Error(t, err)
}

func TestNilTable(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Nil(t, table.Columns())
	assert.Nil(t, table.Distinct("a"))
	assert.Equal(t, 0, table.Select([]int{0}).Len())
	_, _, ok := table.Bounds("a")
	assert.False(t, ok)
}

func TestTableJSONRoundTrip(t *testing.T) {
	table := launchTable(t)

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, table.Columns(), decoded.Columns())
	assert.Equal(t, table.Rows(), decoded.Rows())
}
