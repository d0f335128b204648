package model

import (
	"fmt"
	"strings"
)

// Op is the reduction applied to each group
type Op string

const (
	OpMean  Op = "mean"
	OpSum   Op = "sum"
	OpCount Op = "count"
)

func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "avg", "average":
		return OpMean, nil
	case "sum":
		return OpSum, nil
	case "count":
		return OpCount, nil
	}
	return "", fmt.Errorf("unknown aggregation: %q", s)
}

// DerivedRow is one group of a DerivedTable
type DerivedRow struct {
	Group       Value     `json:"group"`
	Values      []float64 `json:"values"` // aligned with DerivedTable.Metrics
	RecordCount int       `json:"record_count"`
}

// DerivedTable represents the result of grouping a Table and reducing
// one or more target columns.
type DerivedTable struct {
	GroupKey string       `json:"group_key"`
	Metrics  []string     `json:"metrics"`
	Op       Op           `json:"op"`
	Rows     []DerivedRow `json:"rows"`
}

func (d *DerivedTable) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

func (d *DerivedTable) IsEmpty() bool { return d.Len() == 0 }

// Metric returns the named metric of row i.
func (d *DerivedTable) Metric(i int, name string) (float64, bool) {
	if i < 0 || i >= d.Len() {
		return 0, false
	}
	for m, metric := range d.Metrics {
		if metric == name {
			return d.Rows[i].Values[m], true
		}
	}
	return 0, false
}

// Lookup finds the row for a group value.
func (d *DerivedTable) Lookup(group Value) (DerivedRow, bool) {
	if d == nil {
		return DerivedRow{}, false
	}
	for _, r := range d.Rows {
		if r.Group.Equal(group) {
			return r, true
		}
	}
	return DerivedRow{}, false
}

// StatKind selects which set of sales charts a report holds
type StatKind string

const (
	Yearly          StatKind = "yearly"
	RecessionPeriod StatKind = "recession"
)

// ParseStatKind accepts the short names and the dashboard's dropdown labels.
func ParseStatKind(s string) (StatKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yearly", "yearly statistics":
		return Yearly, nil
	case "recession", "recession period", "recession period statistics":
		return RecessionPeriod, nil
	}
	return "", fmt.Errorf("unknown statistics kind: %q", s)
}

// ReportState is AwaitingYear until a yearly report has its year
type ReportState string

const (
	AwaitingYear ReportState = "awaiting_year"
	Ready        ReportState = "ready"
)

// ChartKind hints how a rendering layer should draw a panel
type ChartKind string

const (
	ChartLine       ChartKind = "line"
	ChartBar        ChartKind = "bar"
	ChartGroupedBar ChartKind = "grouped_bar"
	ChartPie        ChartKind = "pie"
	ChartScatter    ChartKind = "scatter"
)

// Panel pairs one derived table with its title and chart hint.
// Scatter panels carry filtered rows in Points instead of a DerivedTable.
type Panel struct {
	Title  string        `json:"title"`
	Chart  ChartKind     `json:"chart"`
	XAxis  string        `json:"x_axis,omitempty"`
	YAxis  []string      `json:"y_axis,omitempty"`
	Table  *DerivedTable `json:"table,omitempty"`
	Points *Table        `json:"points,omitempty"`
}

// Report is the dispatcher's answer to one (kind, year) snapshot
type Report struct {
	State   ReportState `json:"state"`
	Kind    StatKind    `json:"kind"`
	Year    *int        `json:"year,omitempty"`
	Message string      `json:"message,omitempty"`
	Panels  []Panel     `json:"panels"`
}

func (r Report) IsAwaiting() bool { return r.State == AwaitingYear }
