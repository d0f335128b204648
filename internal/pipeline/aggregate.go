package pipeline

import (
	"fmt"
	"math"
	"go-dashboard-pipeline/internal/model"
	"sort"

	"github.com/shopspring/decimal"
)

// Outcome bucket labels produced by CountOutcome
const (
	OutcomeSuccess = "Success"
	OutcomeFailed  = "Failed"
)

// groupAccumulator collects the running totals of one group
type groupAccumulator struct {
	group   model.Value
	sums    []decimal.Decimal
	records int
}

// Aggregate groups table by groupKey and reduces target with op.
// One output row per distinct group value present in table; an empty
// table gives an empty DerivedTable.
func Aggregate(table *model.Table, groupKey, target string, op model.Op) (*model.DerivedTable, error) {
	return AggregateMulti(table, groupKey, []string{target}, op)
}

// AggregateMulti reduces several target columns over the same grouped row
// subsets, giving one row per group and one metric column per target.
func AggregateMulti(table *model.Table, groupKey string, targets []string, op model.Op) (*model.DerivedTable, error) {
	switch op {
	case model.OpMean, model.OpSum, model.OpCount:
	default:
		return nil, fmt.Errorf("aggregate: unsupported op %q", op)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("aggregate: no target columns")
	}

	result := &model.DerivedTable{
		GroupKey: groupKey,
		Metrics:  append([]string(nil), targets...),
		Op:       op,
		Rows:     []model.DerivedRow{},
	}
	if table.Len() == 0 {
		return result, nil
	}

	if !table.HasColumn(groupKey) {
		return nil, fmt.Errorf("aggregate: unknown group column %q", groupKey)
	}
	for _, target := range targets {
		if !table.HasColumn(target) {
			return nil, fmt.Errorf("aggregate: unknown target column %q", target)
		}
	}

	// Group in first-seen order
	groups := make(map[model.Value]*groupAccumulator)
	var order []*groupAccumulator
	for i := 0; i < table.Len(); i++ {
		key, _ := table.Value(i, groupKey)
		acc, exists := groups[key]
		if !exists {
			acc = &groupAccumulator{group: key, sums: make([]decimal.Decimal, len(targets))}
			groups[key] = acc
			order = append(order, acc)
		}

		if op != model.OpCount {
			for m, target := range targets {
				v, _ := table.Value(i, target)
				f, ok := v.Float()
				if !ok {
					return nil, fmt.Errorf("aggregate: column %q row %d is not numeric: %q", target, i+1, v.String())
				}
				if math.IsInf(f, 0) || math.IsNaN(f) {
					return nil, fmt.Errorf("aggregate: column %q row %d is not finite: %v", target, i+1, f)
				}
				acc.sums[m] = acc.sums[m].Add(decimal.NewFromFloat(f))
			}
		}
		acc.records++
	}

	for _, acc := range order {
		row := model.DerivedRow{
			Group:       acc.group,
			Values:      make([]float64, len(targets)),
			RecordCount: acc.records,
		}
		for m := range targets {
			row.Values[m] = reduce(acc, m, op)
		}
		result.Rows = append(result.Rows, row)
	}

	if allNumeric(result.Rows) {
		sort.SliceStable(result.Rows, func(i, j int) bool {
			a, _ := result.Rows[i].Group.Float()
			b, _ := result.Rows[j].Group.Float()
			return a < b
		})
	}

	return result, nil
}

func reduce(acc *groupAccumulator, metric int, op model.Op) float64 {
	switch op {
	case model.OpSum:
		return acc.sums[metric].InexactFloat64()
	case model.OpMean:
		return acc.sums[metric].Div(decimal.NewFromInt(int64(acc.records))).InexactFloat64()
	default:
		return float64(acc.records)
	}
}

// allNumeric reports whether every group value is orderable as a number
func allNumeric(rows []model.DerivedRow) bool {
	for _, r := range rows {
		if !r.Group.IsNumber() {
			return false
		}
	}
	return len(rows) > 0
}

// CountOutcome splits table into exactly two buckets, Success (outcome 1)
// and Failed (any other outcome), so the counts always sum to table.Len().
// An empty table gives an empty DerivedTable.
func CountOutcome(table *model.Table, outcomeColumn string) (*model.DerivedTable, error) {
	result := &model.DerivedTable{
		GroupKey: outcomeColumn,
		Metrics:  []string{"count"},
		Op:       model.OpCount,
		Rows:     []model.DerivedRow{},
	}
	if table.Len() == 0 {
		return result, nil
	}
	if !table.HasColumn(outcomeColumn) {
		return nil, fmt.Errorf("count: unknown outcome column %q", outcomeColumn)
	}

	success := 0
	for i := 0; i < table.Len(); i++ {
		v, _ := table.Value(i, outcomeColumn)
		if f, ok := v.Float(); ok && f == 1 {
			success++
		}
	}
	failed := table.Len() - success

	result.Rows = append(result.Rows,
		model.DerivedRow{Group: model.TextValue(OutcomeSuccess), Values: []float64{float64(success)}, RecordCount: success},
		model.DerivedRow{Group: model.TextValue(OutcomeFailed), Values: []float64{float64(failed)}, RecordCount: failed},
	)
	return result, nil
}

// SortDerived returns a copy of d sorted by group value, record count, or a
// metric name.
func SortDerived(d *model.DerivedTable, sortBy string, ascending bool) *model.DerivedTable {
	sorted := *d
	sorted.Rows = append([]model.DerivedRow(nil), d.Rows...)

	key := func(r model.DerivedRow) model.Value {
		switch sortBy {
		case "group", "group_value":
			return r.Group
		case "record_count":
			return model.NumberValue(float64(r.RecordCount))
		}
		for m, metric := range d.Metrics {
			if metric == sortBy {
				return model.NumberValue(r.Values[m])
			}
		}
		return r.Group
	}

	sort.SliceStable(sorted.Rows, func(i, j int) bool {
		iVal, jVal := key(sorted.Rows[i]), key(sorted.Rows[j])

		iFloat, iOk := iVal.Float()
		jFloat, jOk := jVal.Float()
		if iOk && jOk {
			if ascending {
				return iFloat < jFloat
			}
			return iFloat > jFloat
		}

		// String comparison
		if ascending {
			return iVal.String() < jVal.String()
		}
		return iVal.String() > jVal.String()
	})

	return &sorted
}
