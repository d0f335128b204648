package pipeline

import (
	"fmt"
	"go-dashboard-pipeline/internal/model"
)

// ------------------- Filter stage -------------------

// Filter keeps rows matching both the category selection on cols.Category
// and the inclusive range on cols.Numeric. Rows whose numeric cell is not a
// number never pass the range. Reversed bounds are rejected with
// *model.InvalidRangeError. An empty result is a valid, empty table.
func Filter(table *model.Table, cols model.Columns, category model.Category, rng model.NumericRange) (*model.Table, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if !category.IsAll() && !table.HasColumn(cols.Category) {
		return nil, fmt.Errorf("filter: unknown category column %q", cols.Category)
	}
	if !table.HasColumn(cols.Numeric) {
		return nil, fmt.Errorf("filter: unknown numeric column %q", cols.Numeric)
	}

	// Single pass: a row passes if it matches every predicate
	n := table.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !category.IsAll() {
			v, _ := table.Value(i, cols.Category)
			if !category.Matches(v) {
				continue
			}
		}
		v, _ := table.Value(i, cols.Numeric)
		f, ok := v.Float()
		if !ok || !rng.Contains(f) {
			continue
		}
		indices = append(indices, i)
	}

	return table.Select(indices), nil
}

// FilterSelection is Filter driven by a Selection value.
func FilterSelection(table *model.Table, cols model.Columns, sel model.Selection) (*model.Table, error) {
	return Filter(table, cols, sel.Category, sel.Range)
}

// FilterCategory keeps rows matching category only.
func FilterCategory(table *model.Table, column string, category model.Category) (*model.Table, error) {
	if category.IsAll() {
		return table.Select(allIndices(table.Len())), nil
	}
	if !table.HasColumn(column) {
		return nil, fmt.Errorf("filter: unknown category column %q", column)
	}
	indices := make([]int, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		v, _ := table.Value(i, column)
		if category.Matches(v) {
			indices = append(indices, i)
		}
	}
	return table.Select(indices), nil
}

// FilterEqual keeps rows whose column equals want.
func FilterEqual(table *model.Table, column string, want model.Value) (*model.Table, error) {
	if !table.HasColumn(column) {
		return nil, fmt.Errorf("filter: unknown column %q", column)
	}
	indices := make([]int, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		v, _ := table.Value(i, column)
		if v.Equal(want) {
			indices = append(indices, i)
		}
	}
	return table.Select(indices), nil
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
