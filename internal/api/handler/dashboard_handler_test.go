package handler

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/internal/pipeline"
	"go-dashboard-pipeline/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDashboard(t *testing.T) *pipeline.Dashboard {
	t.Helper()
	launches, err := model.NewTable(
		[]string{pipeline.ColLaunchSite, pipeline.ColLaunchClass, pipeline.ColPayloadMass, pipeline.ColBoosterCategory},
		[][]model.Value{
			{model.TextValue("CCAFS LC-40"), model.NumberValue(0), model.NumberValue(500), model.TextValue("v1.0")},
			{model.TextValue("CCAFS LC-40"), model.NumberValue(1), model.NumberValue(3000), model.TextValue("FT")},
			{model.TextValue("KSC LC-39A"), model.NumberValue(1), model.NumberValue(6000), model.TextValue("B4")},
			{model.TextValue("ALL"), model.NumberValue(0), model.NumberValue(100), model.TextValue("B5")},
		})
	require.NoError(t, err)

	sales, err := model.NewTable(
		[]string{pipeline.ColYear, pipeline.ColMonth, pipeline.ColRecession, pipeline.ColVehicleType,
			pipeline.ColSales, pipeline.ColAdvertising, pipeline.ColUnemployment},
		[][]model.Value{
			{model.NumberValue(1980), model.TextValue("Jan"), model.NumberValue(1), model.TextValue("Sports"), model.NumberValue(100), model.NumberValue(10), model.NumberValue(5)},
			{model.NumberValue(1980), model.TextValue("Feb"), model.NumberValue(1), model.TextValue("Sedan"), model.NumberValue(300), model.NumberValue(30), model.NumberValue(6)},
			{model.NumberValue(1981), model.TextValue("Jan"), model.NumberValue(0), model.TextValue("Sports"), model.NumberValue(500), model.NumberValue(50), model.NumberValue(2)},
		})
	require.NoError(t, err)

	return &pipeline.Dashboard{Launches: launches, Sales: sales}
}

func testCache(t *testing.T) *store.Cache {
	t.Helper()
	c, err := store.Open("handler_" + strings.ReplaceAll(uuid.New().String(), "-", ""))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

type envelope struct {
	SnapshotID string          `json:"snapshot_id"`
	Cached     bool            `json:"cached"`
	Data       json.RawMessage `json:"data"`
}

func call(t *testing.T, fn http.HandlerFunc, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if rec.Code == http.StatusOK {
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		_, err := uuid.Parse(env.SnapshotID)
		require.NoError(t, err)
	}
	return rec, env
}

func TestSiteOptions(t *testing.T) {
	h := New(testDashboard(t), nil)

	rec, env := call(t, h.SiteOptions, "/api/v1/launches/sites")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Options []Option           `json:"options"`
		Payload model.NumericRange `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []Option{
		{Label: "All Sites", Value: AllToken},
		{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
		{Label: "KSC LC-39A", Value: "KSC LC-39A"},
		{Label: "ALL", Value: "ALL"},
	}, data.Options)
	assert.Equal(t, model.NumericRange{Min: 100, Max: 6000}, data.Payload)
}

func TestLaunchOutcomes(t *testing.T) {
	h := New(testDashboard(t), nil)

	rec, env := call(t, h.LaunchOutcomes, "/api/v1/launches/outcomes")
	require.Equal(t, http.StatusOK, rec.Code)
	var panel model.Panel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, "Success vs Failed Launches at All Sites", panel.Title)
	assert.Equal(t, 2, panel.Table.Rows[0].RecordCount)
	assert.Equal(t, 2, panel.Table.Rows[1].RecordCount)

	_, env = call(t, h.LaunchOutcomes, "/api/v1/launches/outcomes?site=KSC+LC-39A")
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, "Success vs Failed Launches at KSC LC-39A", panel.Title)
	assert.Equal(t, 1, panel.Table.Rows[0].RecordCount)
	assert.Equal(t, 0, panel.Table.Rows[1].RecordCount)
}

func TestPayloadOutcomes(t *testing.T) {
	h := New(testDashboard(t), nil)

	rec, env := call(t, h.PayloadOutcomes, "/api/v1/launches/payload")
	require.Equal(t, http.StatusOK, rec.Code)
	var panel model.Panel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, 4, panel.Points.Len(), "range defaults to the data bounds")

	_, env = call(t, h.PayloadOutcomes, "/api/v1/launches/payload?site=CCAFS+LC-40&min=500&max=3000")
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, 2, panel.Points.Len())

	_, env = call(t, h.PayloadOutcomes, "/api/v1/launches/payload?min=7000&max=8000")
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, 0, panel.Points.Len())
}

func TestPayloadOutcomesBadRange(t *testing.T) {
	h := New(testDashboard(t), nil)

	for _, target := range []string{
		"/api/v1/launches/payload?min=5000&max=100",
		"/api/v1/launches/payload?min=abc",
		"/api/v1/launches/payload?max=lots",
	} {
		rec, _ := call(t, h.PayloadOutcomes, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestYearOptions(t *testing.T) {
	h := New(testDashboard(t), nil)

	_, env := call(t, h.YearOptions, "/api/v1/sales/years")
	var options []Option
	require.NoError(t, json.Unmarshal(env.Data, &options))
	require.Len(t, options, 34)
	assert.Equal(t, Option{Label: "1980", Value: "1980"}, options[0])
}

func TestSalesReportAwaitingYear(t *testing.T) {
	c := testCache(t)
	h := New(testDashboard(t), c)

	rec, env := call(t, h.SalesReport, "/api/v1/sales/report?stat=Yearly+Statistics")
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, model.AwaitingYear, report.State)
	assert.Equal(t, pipeline.AwaitingYearMessage, report.Message)
	assert.Empty(t, report.Panels)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
}

func TestSalesReportYearly(t *testing.T) {
	h := New(testDashboard(t), nil)

	rec, env := call(t, h.SalesReport, "/api/v1/sales/report?stat=yearly&year=1980")
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, model.Ready, report.State)
	require.Len(t, report.Panels, 4)
	assert.Equal(t, "Total Monthly Automobile Sales for 1980", report.Panels[1].Title)
}

func TestSalesReportRecessionIgnoresYear(t *testing.T) {
	c := testCache(t)
	h := New(testDashboard(t), c)

	_, first := call(t, h.SalesReport, "/api/v1/sales/report?stat=recession")
	_, second := call(t, h.SalesReport, "/api/v1/sales/report?stat=recession&year=not-a-year")

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)
}

func TestSalesReportBadInput(t *testing.T) {
	h := New(testDashboard(t), nil)

	rec, _ := call(t, h.SalesReport, "/api/v1/sales/report?stat=weekly")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = call(t, h.SalesReport, "/api/v1/sales/report?stat=yearly&year=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCachedResponses(t *testing.T) {
	c := testCache(t)
	h := New(testDashboard(t), c)

	_, first := call(t, h.LaunchOutcomes, "/api/v1/launches/outcomes")
	_, second := call(t, h.LaunchOutcomes, "/api/v1/launches/outcomes?site=")
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.JSONEq(t, string(first.Data), string(second.Data))

	// A site literally named "ALL" is its own selection
	_, named := call(t, h.LaunchOutcomes, "/api/v1/launches/outcomes?site=ALL")
	assert.False(t, named.Cached)
	var panel model.Panel
	require.NoError(t, json.Unmarshal(named.Data, &panel))
	assert.Equal(t, "Success vs Failed Launches at ALL", panel.Title)
	assert.Equal(t, 0, panel.Table.Rows[0].RecordCount)
	assert.Equal(t, 1, panel.Table.Rows[1].RecordCount)

	_, env := call(t, h.CacheStats, "/api/v1/cache/stats")
	var data struct {
		Enabled bool             `json:"enabled"`
		Stats   store.CacheStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Enabled)
	assert.Equal(t, 2, data.Stats.Entries)
	assert.Equal(t, int64(1), data.Stats.Hits)
}

func TestCacheStatsWithoutCache(t *testing.T) {
	h := New(testDashboard(t), nil)

	_, env := call(t, h.CacheStats, "/api/v1/cache/stats")
	assert.JSONEq(t, `{"enabled": false, "stats": {"entries": 0, "hits": 0, "misses": 0}}`, string(env.Data))
}

func TestSalesReportSorted(t *testing.T) {
	c := testCache(t)
	h := New(testDashboard(t), c)

	_, plain := call(t, h.SalesReport, "/api/v1/sales/report?stat=recession")
	_, sorted := call(t, h.SalesReport, "/api/v1/sales/report?stat=recession&sort=Automobile_Sales&order=desc")
	assert.True(t, sorted.Cached)

	var first, second model.Report
	require.NoError(t, json.Unmarshal(plain.Data, &first))
	require.NoError(t, json.Unmarshal(sorted.Data, &second))
	assert.Equal(t, "Sports", first.Panels[1].Table.Rows[0].Group.String())
	assert.Equal(t, "Sedan", second.Panels[1].Table.Rows[0].Group.String())

	rec, _ := call(t, h.SalesReport, "/api/v1/sales/report?stat=recession&order=up")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalesAggregate(t *testing.T) {
	c := testCache(t)
	h := New(testDashboard(t), c)

	rec, env := call(t, h.SalesAggregate, "/api/v1/sales/aggregate")
	require.Equal(t, http.StatusOK, rec.Code)
	var derived model.DerivedTable
	require.NoError(t, json.Unmarshal(env.Data, &derived))
	assert.Equal(t, pipeline.ColYear, derived.GroupKey)
	assert.Equal(t, model.OpMean, derived.Op)
	require.Equal(t, 2, derived.Len())
	assert.Equal(t, 200.0, derived.Rows[0].Values[0])

	_, env = call(t, h.SalesAggregate,
		"/api/v1/sales/aggregate?group=Month&target=Automobile_Sales,+Advertising_Expenditure&op=sum&vehicle=Sports&min=0&max=1000&sort=Automobile_Sales&order=desc")
	require.NoError(t, json.Unmarshal(env.Data, &derived))
	assert.Equal(t, []string{pipeline.ColSales, pipeline.ColAdvertising}, derived.Metrics)
	require.Equal(t, 1, derived.Len())
	assert.Equal(t, "Jan", derived.Rows[0].Group.String())
	assert.Equal(t, []float64{600, 60}, derived.Rows[0].Values)
	assert.Equal(t, 2, derived.Rows[0].RecordCount)

	_, again := call(t, h.SalesAggregate, "/api/v1/sales/aggregate")
	assert.True(t, again.Cached)
}

func TestSalesAggregateBadInput(t *testing.T) {
	h := New(testDashboard(t), nil)

	for _, target := range []string{
		"/api/v1/sales/aggregate?group=City",
		"/api/v1/sales/aggregate?target=Month",
		"/api/v1/sales/aggregate?op=median",
		"/api/v1/sales/aggregate?min=500&max=100",
		"/api/v1/sales/aggregate?min=x",
		"/api/v1/sales/aggregate?order=random",
	} {
		rec, _ := call(t, h.SalesAggregate, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, false, math.Inf(1))

	assert.Contains(t, logs.String(), "Response encode")
}
