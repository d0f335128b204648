package store

import (
	"fmt"
	"go-dashboard-pipeline/internal/model"
	"strconv"
	"strings"
)

// ReportKey is the cache key of a sales report. Recession reports ignore the
// year, so every year maps to the same key.
func ReportKey(kind model.StatKind, year *int) string {
	if kind != model.Yearly || year == nil {
		return fmt.Sprintf("report:%s", kind)
	}
	return fmt.Sprintf("report:%s:%d", kind, *year)
}

// OutcomesKey is the cache key of a launch outcome count.
func OutcomesKey(site model.Category) string {
	return "outcomes:" + siteKey(site)
}

// PayloadKey is the cache key of a payload scatter.
func PayloadKey(site model.Category, rng model.NumericRange) string {
	return fmt.Sprintf("payload:%s:%s:%s", siteKey(site),
		strconv.FormatFloat(rng.Min, 'g', -1, 64), strconv.FormatFloat(rng.Max, 'g', -1, 64))
}

// AggregateKey is the cache key of a selection-driven sales aggregate.
func AggregateKey(sel model.Selection, targets []string, op model.Op) string {
	quoted := make([]string, len(targets))
	for i, t := range targets {
		quoted[i] = strconv.Quote(t)
	}
	return fmt.Sprintf("aggregate:%s:%s:%s:%s:%s:%s", siteKey(sel.Category), strconv.Quote(sel.GroupKey),
		strings.Join(quoted, ","), op,
		strconv.FormatFloat(sel.Range.Min, 'g', -1, 64), strconv.FormatFloat(sel.Range.Max, 'g', -1, 64))
}

// siteKey keeps the all-sites selection distinct from a site literally named "ALL"
func siteKey(site model.Category) string {
	if site.IsAll() {
		return "*"
	}
	return strconv.Quote(site.Value())
}
