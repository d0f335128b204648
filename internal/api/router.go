package api

import (
	"go-dashboard-pipeline/internal/api/handler"
	"go-dashboard-pipeline/pkg/router"

	_ "go-dashboard-pipeline/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/api/v1/launches/sites", h.SiteOptions)
	r.GET("/api/v1/launches/outcomes", h.LaunchOutcomes)
	r.GET("/api/v1/launches/payload", h.PayloadOutcomes)
	r.GET("/api/v1/sales/years", h.YearOptions)
	r.GET("/api/v1/sales/report", h.SalesReport)
	r.GET("/api/v1/sales/aggregate", h.SalesAggregate)
	r.GET("/api/v1/cache/stats", h.CacheStats)

	// API docs
	r.Mount("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
