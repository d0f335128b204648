package pipeline

import (
	"fmt"
	"go-dashboard-pipeline/internal/model"
)

// AggregateSelection filters table by sel on cols and reduces every target
// per sel.GroupKey. All targets come from the same filtered rows.
func AggregateSelection(table *model.Table, cols model.Columns, sel model.Selection, targets []string, op model.Op) (*model.DerivedTable, error) {
	if sel.GroupKey == "" {
		return nil, fmt.Errorf("aggregate selection: no group key")
	}

	filtered, err := FilterSelection(table, cols, sel)
	if err != nil {
		return nil, err
	}
	return AggregateMulti(filtered, sel.GroupKey, targets, op)
}

// SortReport returns report with every panel table reordered by
// SortDerived. Scatter panels keep their row order. The input is untouched.
func SortReport(report model.Report, sortBy string, ascending bool) model.Report {
	sorted := report
	sorted.Panels = make([]model.Panel, len(report.Panels))
	for i, p := range report.Panels {
		if p.Table != nil {
			p.Table = SortDerived(p.Table, sortBy, ascending)
		}
		sorted.Panels[i] = p
	}
	return sorted
}

// ParseSortOrder maps an order selector onto SortDerived's ascending flag.
// Empty means ascending.
func ParseSortOrder(raw string) (bool, error) {
	switch raw {
	case "", "asc":
		return true, nil
	case "desc":
		return false, nil
	}
	return false, fmt.Errorf("invalid sort order %q, want asc or desc", raw)
}

// IsSalesMetric reports whether column holds numbers in every sales row.
func IsSalesMetric(column string) bool {
	for _, c := range SalesRules().NumericColumns {
		if c == column {
			return true
		}
	}
	return false
}
