package pipeline

import (
	"context"
	"errors"
	"go-dashboard-pipeline/internal/model"
	"log"
	"sync"
	"time"
)

// Dashboard owns the two read-only datasets the dashboards chart. It is
// built once at startup and shared by reference; nothing mutates it, so it
// is safe for concurrent use.
type Dashboard struct {
	Launches *model.Table
	Sales    *model.Table
}

// ------------------- Dashboard loader -------------------

// LoadDashboard loads both datasets in parallel. The first load failure is
// returned, as a *model.DataLoadError.
func LoadDashboard(ctx context.Context, sources model.Sources, timeout time.Duration, opts ...LoadOption) (*Dashboard, error) {
	start := time.Now()
	log.Printf("🚀 Loading dashboard datasets")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		launches *model.Table
		sales    *model.Table
		errs     [2]error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		launches, errs[0] = LoadTable(ctx, sources.Launches, LaunchRules(), opts...)
	}()
	go func() {
		defer wg.Done()
		sales, errs[1] = LoadTable(ctx, sources.Sales, SalesRules(), opts...)
	}()
	wg.Wait()

	if err := errors.Join(errs[0], errs[1]); err != nil {
		for _, e := range errs {
			if e != nil {
				log.Printf("❌ %v", e)
			}
		}
		var loadErr *model.DataLoadError
		if errors.As(err, &loadErr) {
			return nil, loadErr
		}
		return nil, err
	}

	log.Printf("🏁 Dashboard datasets loaded in %v", time.Since(start))
	return &Dashboard{Launches: launches, Sales: sales}, nil
}

// ------------------- Dashboard queries -------------------

// LaunchOutcomes runs the success/failure pie for a site selection.
func (d *Dashboard) LaunchOutcomes(site model.Category) (model.Panel, error) {
	start := time.Now()
	panel, err := LaunchOutcomes(d.Launches, site)
	if err == nil {
		log.Printf("📊 Launch outcomes for %s in %v", site.Label(AllSitesLabel), time.Since(start))
	}
	return panel, err
}

// PayloadOutcomes runs the payload scatter for a site selection and range.
func (d *Dashboard) PayloadOutcomes(site model.Category, rng model.NumericRange) (model.Panel, error) {
	start := time.Now()
	panel, err := PayloadOutcomes(d.Launches, site, rng)
	if err == nil {
		log.Printf("📊 Payload outcomes for %s [%v, %v]: %d launches in %v",
			site.Label(AllSitesLabel), rng.Min, rng.Max, panel.Points.Len(), time.Since(start))
	}
	return panel, err
}

// SalesReport runs the sales statistics report for kind and year.
func (d *Dashboard) SalesReport(kind model.StatKind, year *int) (model.Report, error) {
	start := time.Now()
	report, err := SelectReport(d.Sales, kind, year)
	if err == nil {
		log.Printf("📊 Sales report %s (%s): %d panels in %v", kind, report.State, len(report.Panels), time.Since(start))
	}
	return report, err
}

// SalesAggregate reduces the sales targets for a vehicle type selection and
// sales range, grouped by sel.GroupKey.
func (d *Dashboard) SalesAggregate(sel model.Selection, targets []string, op model.Op) (*model.DerivedTable, error) {
	start := time.Now()
	derived, err := AggregateSelection(d.Sales, SalesColumns, sel, targets, op)
	if err == nil {
		log.Printf("📊 Sales %s of %v by %s: %d groups in %v", op, targets, sel.GroupKey, derived.Len(), time.Since(start))
	}
	return derived, err
}
