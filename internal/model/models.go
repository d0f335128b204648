package model

import (
	"fmt"
	"math"
)

// Category is the launch-site style filter: either every category or one
// exact value. The zero value selects every category.
type Category struct {
	value string
	set   bool
}

// AllCategories selects every row regardless of category
func AllCategories() Category {
	return Category{}
}

// CategoryOf selects rows whose category equals v exactly
func CategoryOf(v string) Category {
	return Category{value: v, set: true}
}

// ParseCategory turns a raw selector value into a Category. Only the
// adapter edge knows the UI's "all" token; an empty selector also means all.
func ParseCategory(raw, allToken string) Category {
	if raw == "" || raw == allToken {
		return AllCategories()
	}
	return CategoryOf(raw)
}

func (c Category) IsAll() bool { return !c.set }

// Value returns the selected category; empty for All.
func (c Category) Value() string { return c.value }

// Matches reports whether a cell passes the category predicate. The cell is
// compared by its display form, so a label the loader read as a number
// ("40") still matches the selector value it is offered under.
func (c Category) Matches(v Value) bool {
	if !c.set {
		return true
	}
	return v.String() == c.value
}

// Label returns the category for display, or allLabel when every category
// is selected.
func (c Category) Label(allLabel string) string {
	if !c.set {
		return allLabel
	}
	return c.value
}

// NumericRange is an inclusive [Min, Max] bound on a numeric column
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FullRange admits every number
func FullRange() NumericRange {
	return NumericRange{Min: math.Inf(-1), Max: math.Inf(1)}
}

func (r NumericRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return &InvalidRangeError{Min: r.Min, Max: r.Max}
	}
	return nil
}

func (r NumericRange) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Selection holds the parameters a dashboard control set produces
type Selection struct {
	Category Category
	Range    NumericRange
	GroupKey string
}

func (s Selection) Validate() error {
	return s.Range.Validate()
}

// Columns names the schema role of each column a pipeline reads
type Columns struct {
	Category string `json:"category"`
	Numeric  string `json:"numeric"`
	Outcome  string `json:"outcome"`
	Time     string `json:"time"`
}

// ValidationRules defines what a loaded table must satisfy
type ValidationRules struct {
	RequiredColumns []string           `json:"requiredColumns"` // columns that must be present
	NumericColumns  []string           `json:"numericColumns"`  // columns that must hold numbers in every row
	MinValues       map[string]float64 `json:"minValues"`       // min allowed numeric values
	MaxValues       map[string]float64 `json:"maxValues"`       // max allowed numeric values
}

// DataLoadError reports a dataset that could not be read or lacks its schema.
type DataLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// InvalidRangeError rejects a numeric range whose bounds are reversed
type InvalidRangeError struct {
	Min float64
	Max float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: min %v greater than max %v", e.Min, e.Max)
}
