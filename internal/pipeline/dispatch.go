package pipeline

import (
	"fmt"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/pkg/utils"
)

// AwaitingYearMessage is shown while a yearly report has no year
const AwaitingYearMessage = "Please select a report type and year."

// First and last year offered by the year selector
const (
	FirstYear = 1980
	LastYear  = 2013
)

// panelSpec describes one filter+aggregate call of a report
type panelSpec struct {
	title   string
	chart   model.ChartKind
	source  *model.Table
	group   string
	targets []string
	op      model.Op
}

// SelectReport picks the aggregation calls for a sales statistics kind and
// runs them. A yearly report without a year is returned in the AwaitingYear
// state with no panels. Recession reports never look at year.
func SelectReport(sales *model.Table, kind model.StatKind, year *int) (model.Report, error) {
	switch kind {
	case model.RecessionPeriod:
		// year is ignored: the year selector is disabled in this mode
		return recessionReport(sales)
	case model.Yearly:
		if year == nil {
			return model.Report{
				State:   model.AwaitingYear,
				Kind:    model.Yearly,
				Message: AwaitingYearMessage,
				Panels:  []model.Panel{},
			}, nil
		}
		return yearlyReport(sales, *year)
	}
	return model.Report{}, fmt.Errorf("select report: unknown statistics kind %q", kind)
}

func recessionReport(sales *model.Table) (model.Report, error) {
	recession, err := FilterEqual(sales, SalesColumns.Outcome, model.NumberValue(1))
	if err != nil {
		return model.Report{}, err
	}

	panels, err := runPanels([]panelSpec{
		{"Average Automobile Sales During Recession Period", model.ChartLine, recession, SalesColumns.Time, []string{SalesColumns.Numeric}, model.OpMean},
		{"Average Number of Vehicles Sold by Vehicle Type During Recession Period", model.ChartBar, recession, SalesColumns.Category, []string{SalesColumns.Numeric}, model.OpMean},
		{"Total Expenditure Share by Vehicle Type During Recession", model.ChartPie, recession, SalesColumns.Category, []string{ColAdvertising}, model.OpSum},
		{"Effect of Unemployment Rate on Vehicle Type and Sales", model.ChartGroupedBar, recession, SalesColumns.Category, []string{ColUnemployment, SalesColumns.Numeric}, model.OpMean},
	})
	if err != nil {
		return model.Report{}, err
	}

	return model.Report{State: model.Ready, Kind: model.RecessionPeriod, Panels: panels}, nil
}

func yearlyReport(sales *model.Table, year int) (model.Report, error) {
	yearly, err := FilterEqual(sales, SalesColumns.Time, model.NumberValue(float64(year)))
	if err != nil {
		return model.Report{}, err
	}

	panels, err := runPanels([]panelSpec{
		{"Yearly Automobile Sales", model.ChartLine, sales, SalesColumns.Time, []string{SalesColumns.Numeric}, model.OpMean},
		{fmt.Sprintf("Total Monthly Automobile Sales for %d", year), model.ChartLine, yearly, ColMonth, []string{SalesColumns.Numeric}, model.OpSum},
		{fmt.Sprintf("Average Vehicles Sold by Vehicle Type in %d", year), model.ChartBar, yearly, SalesColumns.Category, []string{SalesColumns.Numeric}, model.OpMean},
		{fmt.Sprintf("Total Advertisement Expenditure by Vehicle Type in %d", year), model.ChartPie, yearly, SalesColumns.Category, []string{ColAdvertising}, model.OpSum},
	})
	if err != nil {
		return model.Report{}, err
	}

	return model.Report{State: model.Ready, Kind: model.Yearly, Year: &year, Panels: panels}, nil
}

func runPanels(specs []panelSpec) ([]model.Panel, error) {
	panels := make([]model.Panel, 0, len(specs))
	for _, s := range specs {
		derived, err := AggregateMulti(s.source, s.group, s.targets, s.op)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.title, err)
		}
		panels = append(panels, model.Panel{
			Title: s.title,
			Chart: s.chart,
			XAxis: s.group,
			YAxis: s.targets,
			Table: derived,
		})
	}
	return panels, nil
}

// YearSelectorDisabled reports whether the year input is inert for kind.
func YearSelectorDisabled(kind model.StatKind) bool {
	return kind != model.Yearly
}

// ParseYear converts the year selector value. An empty value means no year
// has been chosen yet and yields nil.
func ParseYear(raw string) (*int, error) {
	year, err := utils.ParseOptionalInt(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid year %q: %w", raw, err)
	}
	return year, nil
}

// YearOptions lists the years offered by the year selector.
func YearOptions() []int {
	years := make([]int, 0, LastYear-FirstYear+1)
	for y := FirstYear; y <= LastYear; y++ {
		years = append(years, y)
	}
	return years
}
