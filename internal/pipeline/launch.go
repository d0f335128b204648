package pipeline

import (
	"fmt"
	"go-dashboard-pipeline/internal/model"
)

// AllSitesLabel names the launch dashboard's "every site" selection
const AllSitesLabel = "All Sites"

// LaunchOutcomes counts successful and failed launches for a site selection.
func LaunchOutcomes(launches *model.Table, site model.Category) (model.Panel, error) {
	filtered, err := FilterCategory(launches, ColLaunchSite, site)
	if err != nil {
		return model.Panel{}, err
	}

	counts, err := CountOutcome(filtered, ColLaunchClass)
	if err != nil {
		return model.Panel{}, err
	}

	return model.Panel{
		Title: fmt.Sprintf("Success vs Failed Launches at %s", site.Label(AllSitesLabel)),
		Chart: model.ChartPie,
		XAxis: ColLaunchClass,
		YAxis: counts.Metrics,
		Table: counts,
	}, nil
}

// PayloadOutcomes returns the launches of a site selection whose payload lies
// in rng, projected onto the columns a payload/outcome scatter needs.
func PayloadOutcomes(launches *model.Table, site model.Category, rng model.NumericRange) (model.Panel, error) {
	filtered, err := Filter(launches, LaunchColumns, site, rng)
	if err != nil {
		return model.Panel{}, err
	}

	points, err := filtered.Project(ColPayloadMass, ColLaunchClass, ColBoosterCategory)
	if err != nil {
		return model.Panel{}, err
	}

	return model.Panel{
		Title:  fmt.Sprintf("Payload Success Outcome for %s", site.Label(AllSitesLabel)),
		Chart:  model.ChartScatter,
		XAxis:  ColPayloadMass,
		YAxis:  []string{ColLaunchClass},
		Points: points,
	}, nil
}

// SiteOptions lists the launch sites present in the data, first seen first.
func SiteOptions(launches *model.Table) []string {
	var sites []string
	for _, v := range launches.Distinct(ColLaunchSite) {
		if s := v.String(); s != "" {
			sites = append(sites, s)
		}
	}
	return sites
}

// PayloadBounds returns the payload range covered by the data, used as the
// slider's initial value. An empty table yields [0, 0].
func PayloadBounds(launches *model.Table) model.NumericRange {
	min, max, ok := launches.Bounds(ColPayloadMass)
	if !ok {
		return model.NumericRange{}
	}
	return model.NumericRange{Min: min, Max: max}
}
