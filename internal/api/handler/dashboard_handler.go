package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/internal/pipeline"
	"go-dashboard-pipeline/internal/store"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllToken is the selector value meaning every launch site or vehicle
// type. Empty names are never offered, so it cannot shadow a real category.
const AllToken = ""

// Handler serves the dashboard API over an explicitly owned Dashboard.
// The cache may be nil.
type Handler struct {
	Dashboard *pipeline.Dashboard
	Cache     *store.Cache
}

func New(d *pipeline.Dashboard, c *store.Cache) *Handler {
	return &Handler{Dashboard: d, Cache: c}
}

// Envelope wraps every response with the id of the parameter snapshot it
// answers, so a client can discard responses to superseded selections.
type Envelope struct {
	SnapshotID  string      `json:"snapshot_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Cached      bool        `json:"cached"`
	Data        interface{} `json:"data"`
}

// Option is one selector entry
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SiteOptions lists launch site selector entries
// @Summary List launch sites
// @Description Launch site selector options, "All Sites" first, plus the payload slider bounds
// @Tags launches
// @Produce json
// @Success 200 {object} Envelope "Site options"
// @Router /launches/sites [get]
func (h *Handler) SiteOptions(w http.ResponseWriter, r *http.Request) {
	options := []Option{{Label: pipeline.AllSitesLabel, Value: AllToken}}
	for _, site := range pipeline.SiteOptions(h.Dashboard.Launches) {
		options = append(options, Option{Label: site, Value: site})
	}

	writeJSON(w, http.StatusOK, false, map[string]interface{}{
		"options": options,
		"payload": pipeline.PayloadBounds(h.Dashboard.Launches),
	})
}

// LaunchOutcomes counts successful and failed launches
// @Summary Launch outcomes
// @Description Success vs failed launch counts for one site or all sites
// @Tags launches
// @Produce json
// @Param site query string false "Launch site, omit for every site"
// @Success 200 {object} Envelope "Pie panel"
// @Failure 500 {string} string "Internal server error"
// @Router /launches/outcomes [get]
func (h *Handler) LaunchOutcomes(w http.ResponseWriter, r *http.Request) {
	site := model.ParseCategory(r.URL.Query().Get("site"), AllToken)
	key := store.OutcomesKey(site)

	var panel model.Panel
	if h.cached(key, &panel) {
		writeJSON(w, http.StatusOK, true, panel)
		return
	}

	panel, err := h.Dashboard.LaunchOutcomes(site)
	if err != nil {
		writeError(w, err)
		return
	}
	h.remember(key, panel)
	writeJSON(w, http.StatusOK, false, panel)
}

// PayloadOutcomes lists launches inside a payload range
// @Summary Payload outcomes
// @Description Launches of one site or all sites whose payload mass lies in [min, max]
// @Tags launches
// @Produce json
// @Param site query string false "Launch site, omit for every site"
// @Param min query number false "Lowest payload mass (kg), defaults to the data minimum"
// @Param max query number false "Highest payload mass (kg), defaults to the data maximum"
// @Success 200 {object} Envelope "Scatter panel"
// @Failure 400 {string} string "Invalid payload range"
// @Router /launches/payload [get]
func (h *Handler) PayloadOutcomes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	site := model.ParseCategory(q.Get("site"), AllToken)

	rng := pipeline.PayloadBounds(h.Dashboard.Launches)
	var err error
	if rng.Min, err = parseBound(q.Get("min"), rng.Min); err != nil {
		http.Error(w, "Invalid min: "+err.Error(), http.StatusBadRequest)
		return
	}
	if rng.Max, err = parseBound(q.Get("max"), rng.Max); err != nil {
		http.Error(w, "Invalid max: "+err.Error(), http.StatusBadRequest)
		return
	}

	key := store.PayloadKey(site, rng)
	var panel model.Panel
	if h.cached(key, &panel) {
		writeJSON(w, http.StatusOK, true, panel)
		return
	}

	panel, err = h.Dashboard.PayloadOutcomes(site, rng)
	if err != nil {
		writeError(w, err)
		return
	}
	h.remember(key, panel)
	writeJSON(w, http.StatusOK, false, panel)
}

// YearOptions lists the year selector entries
// @Summary List years
// @Description Year selector options for yearly statistics
// @Tags sales
// @Produce json
// @Success 200 {object} Envelope "Year options"
// @Router /sales/years [get]
func (h *Handler) YearOptions(w http.ResponseWriter, r *http.Request) {
	years := pipeline.YearOptions()
	options := make([]Option, len(years))
	for i, y := range years {
		s := strconv.Itoa(y)
		options[i] = Option{Label: s, Value: s}
	}
	writeJSON(w, http.StatusOK, false, options)
}

// SalesReport runs the automobile sales statistics report
// @Summary Sales report
// @Description Yearly or recession period statistics. A yearly report without a year returns state awaiting_year and no panels.
// @Tags sales
// @Produce json
// @Param stat query string true "yearly or recession (dropdown labels accepted)"
// @Param year query int false "Year, required for yearly reports, ignored for recession reports"
// @Param sort query string false "Reorder panel tables by group, record_count or a metric column"
// @Param order query string false "asc (default) or desc"
// @Success 200 {object} Envelope "Report"
// @Failure 400 {string} string "Invalid statistics kind or year"
// @Router /sales/report [get]
func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind, err := model.ParseStatKind(q.Get("stat"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var year *int
	if !pipeline.YearSelectorDisabled(kind) {
		if year, err = pipeline.ParseYear(q.Get("year")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sortBy := q.Get("sort")
	ascending, err := pipeline.ParseSortOrder(q.Get("order"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Reports are cached in dispatch order; sorting is applied per request
	key := store.ReportKey(kind, year)
	var report model.Report
	cached := h.cached(key, &report)
	if !cached {
		if report, err = h.Dashboard.SalesReport(kind, year); err != nil {
			writeError(w, err)
			return
		}
		if !report.IsAwaiting() {
			h.remember(key, report)
		}
	}

	if sortBy != "" {
		report = pipeline.SortReport(report, sortBy, ascending)
	}
	writeJSON(w, http.StatusOK, cached, report)
}

// SalesAggregate reduces sales columns for a free selection
// @Summary Sales aggregate
// @Description Filters sales by vehicle type and sales range, then groups by a column and reduces one or more numeric columns over the same rows
// @Tags sales
// @Produce json
// @Param group query string false "Group column, defaults to Year"
// @Param target query string false "Comma separated numeric columns, defaults to Automobile_Sales"
// @Param op query string false "mean (default), sum or count"
// @Param vehicle query string false "Vehicle type, omit for every type"
// @Param min query number false "Lowest Automobile_Sales value"
// @Param max query number false "Highest Automobile_Sales value"
// @Param sort query string false "Reorder by group, record_count or a target column"
// @Param order query string false "asc (default) or desc"
// @Success 200 {object} Envelope "Derived table"
// @Failure 400 {string} string "Invalid selection"
// @Router /sales/aggregate [get]
func (h *Handler) SalesAggregate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sel := model.Selection{
		Category: model.ParseCategory(q.Get("vehicle"), AllToken),
		Range:    model.FullRange(),
		GroupKey: pipeline.SalesColumns.Time,
	}
	if g := strings.TrimSpace(q.Get("group")); g != "" {
		sel.GroupKey = g
	}
	if !h.Dashboard.Sales.HasColumn(sel.GroupKey) {
		http.Error(w, fmt.Sprintf("Unknown group column %q", sel.GroupKey), http.StatusBadRequest)
		return
	}

	op := model.OpMean
	var err error
	if raw := q.Get("op"); raw != "" {
		if op, err = model.ParseOp(raw); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	targets := []string{pipeline.SalesColumns.Numeric}
	if raw := strings.TrimSpace(q.Get("target")); raw != "" {
		targets = strings.Split(raw, ",")
		for i, t := range targets {
			targets[i] = strings.TrimSpace(t)
			if !pipeline.IsSalesMetric(targets[i]) {
				http.Error(w, fmt.Sprintf("Target %q is not a numeric sales column", targets[i]), http.StatusBadRequest)
				return
			}
		}
	}

	if sel.Range.Min, err = parseBound(q.Get("min"), sel.Range.Min); err != nil {
		http.Error(w, "Invalid min: "+err.Error(), http.StatusBadRequest)
		return
	}
	if sel.Range.Max, err = parseBound(q.Get("max"), sel.Range.Max); err != nil {
		http.Error(w, "Invalid max: "+err.Error(), http.StatusBadRequest)
		return
	}

	ascending, err := pipeline.ParseSortOrder(q.Get("order"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := store.AggregateKey(sel, targets, op)
	var derived *model.DerivedTable
	cached := h.cached(key, &derived)
	if !cached {
		if derived, err = h.Dashboard.SalesAggregate(sel, targets, op); err != nil {
			writeError(w, err)
			return
		}
		h.remember(key, derived)
	}

	if sortBy := q.Get("sort"); sortBy != "" {
		derived = pipeline.SortDerived(derived, sortBy, ascending)
	}
	writeJSON(w, http.StatusOK, cached, derived)
}

// CacheStats reports cache usage
// @Summary Cache statistics
// @Description Entry count and hit/miss counters of the in-memory result cache
// @Tags system
// @Produce json
// @Success 200 {object} Envelope "Cache statistics"
// @Failure 500 {string} string "Internal server error"
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cache.Stats()
	if err != nil {
		http.Error(w, "Failed to read cache statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, false, map[string]interface{}{
		"enabled": h.Cache != nil,
		"stats":   stats,
	})
}

// cached loads key into dst; cache failures count as misses.
func (h *Handler) cached(key string, dst interface{}) bool {
	found, err := h.Cache.Get(key, dst)
	if err != nil {
		log.Printf("❌ Cache read %s: %v", key, err)
		return false
	}
	return found
}

func (h *Handler) remember(key string, v interface{}) {
	if err := h.Cache.Put(key, v); err != nil {
		log.Printf("❌ Cache write %s: %v", key, err)
	}
}

// parseBound parses an optional numeric query value
func parseBound(raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func writeJSON(w http.ResponseWriter, status int, cached bool, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Envelope{
		SnapshotID:  uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Cached:      cached,
		Data:        data,
	})
	if err != nil {
		log.Printf("❌ Response encode: %v", err)
	}
}

// writeError maps pipeline errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var rangeErr *model.InvalidRangeError
	if errors.As(err, &rangeErr) {
		http.Error(w, rangeErr.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("❌ Pipeline error: %v", err)
	http.Error(w, fmt.Sprintf("Pipeline failed: %v", err), http.StatusInternalServerError)
}
