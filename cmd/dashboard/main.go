package main

import (
	"context"
	"errors"
	"flag"
	"go-dashboard-pipeline/internal/api"
	"go-dashboard-pipeline/internal/api/handler"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/internal/pipeline"
	"go-dashboard-pipeline/internal/store"
	"go-dashboard-pipeline/pkg/router"
	"go-dashboard-pipeline/pkg/utils"
	"log"
	"time"
)

// @title Dashboard Pipeline API
// @version 1.0
// @description Filtered and aggregated launch and automobile sales tables for dashboard charts.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	launches := flag.String("launches", "", "launch records CSV path or URL")
	sales := flag.String("sales", "", "automobile sales CSV path or URL")
	noCache := flag.Bool("no-cache", false, "disable the in-memory result cache")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *launches != "" {
		cfg.Sources.Launches = *launches
	}
	if *sales != "" {
		cfg.Sources.Sales = *sales
	}
	if *noCache {
		cfg.Cache.Enabled = false
	}

	// Load datasets; a missing or malformed dataset is fatal
	loadTimeout := utils.ParseDuration(cfg.Server.LoadTimeout, time.Minute)
	dashboard, err := pipeline.LoadDashboard(context.Background(), cfg.Sources, loadTimeout)
	if err != nil {
		var loadErr *model.DataLoadError
		if errors.As(err, &loadErr) {
			log.Fatalf("❌ Cannot start dashboard, dataset unavailable: %v", loadErr)
		}
		log.Fatalf("❌ Cannot start dashboard: %v", err)
	}

	// Init cache
	var cache *store.Cache
	if cfg.Cache.Enabled {
		if cache, err = store.Open(cfg.Cache.Name); err != nil {
			log.Fatalf("❌ Cannot open cache: %v", err)
		}
		defer cache.Close()
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r, handler.New(dashboard, cache))

	// Start server
	readTimeout := utils.ParseDuration(cfg.Server.ReadTimeout, 15*time.Second)
	writeTimeout := utils.ParseDuration(cfg.Server.WriteTimeout, 15*time.Second)
	if err := r.Start(cfg.Server.Addr, readTimeout, writeTimeout); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}
