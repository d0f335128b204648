package pipeline

import (
	"fmt"
	"math"
	"go-dashboard-pipeline/internal/model"
	"strings"
)

// ValidateTable applies rules to a loaded table. The first violation found
// is returned as a *model.DataLoadError naming source.
func ValidateTable(source string, table *model.Table, rules model.ValidationRules) error {
	// Check required columns
	var missing []string
	for _, col := range rules.RequiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &model.DataLoadError{
			Source: source,
			Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")),
		}
	}

	for i := 0; i < table.Len(); i++ {
		if err := validateRow(table, i, rules); err != nil {
			return &model.DataLoadError{Source: source, Reason: fmt.Sprintf("row %d", i+1), Err: err}
		}
	}
	return nil
}

// validateRow applies per-column rules to one row.
func validateRow(table *model.Table, i int, rules model.ValidationRules) error {
	// Check numeric columns
	for _, col := range rules.NumericColumns {
		val, ok := table.Value(i, col)
		if !ok {
			continue
		}
		f, isNum := val.Float()
		if !isNum {
			return fmt.Errorf("column %s must be numeric, got %q", col, val.String())
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("column %s must be finite, got %v", col, f)
		}
	}

	// Check min values
	for col, min := range rules.MinValues {
		val, ok := table.Value(i, col)
		if !ok {
			continue
		}
		if f, isNum := val.Float(); isNum && f < min {
			return fmt.Errorf("column %s below minimum: got %v, want ≥ %v", col, f, min)
		}
	}

	// Check max values
	for col, max := range rules.MaxValues {
		val, ok := table.Value(i, col)
		if !ok {
			continue
		}
		if f, isNum := val.Float(); isNum && f > max {
			return fmt.Errorf("column %s above maximum: got %v, want ≤ %v", col, f, max)
		}
	}

	return nil
}
