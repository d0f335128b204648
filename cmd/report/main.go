package main

import (
	"context"
	"encoding/json"
	"flag"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/internal/pipeline"
	"go-dashboard-pipeline/pkg/utils"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	stat := flag.String("stat", "yearly", "statistics kind: yearly or recession")
	year := flag.String("year", "", "report year, required for yearly statistics")
	sales := flag.String("sales", model.DefaultConfig().Sources.Sales, "automobile sales CSV path or URL")
	out := flag.String("out", "", "export directory; the report JSON is printed when empty")
	format := flag.String("format", "csv", "export format: csv or json")
	timeout := flag.String("timeout", "1m", "dataset load timeout")
	flag.Parse()

	kind, err := model.ParseStatKind(*stat)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	var selected *int
	if !pipeline.YearSelectorDisabled(kind) {
		if selected, err = pipeline.ParseYear(*year); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(*timeout, time.Minute))
	defer cancel()

	table, err := pipeline.LoadTable(ctx, *sales, pipeline.SalesRules())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	report, err := pipeline.SelectReport(table, kind, selected)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if report.IsAwaiting() {
		log.Printf("⚠️ %s", report.Message)
		return
	}

	if *out == "" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	reportID := uuid.New().String()
	om := utils.NewOutputManager(*out)
	failed := 0
	for _, result := range pipeline.ExportReport(report, reportID, *format, om) {
		if !result.Success {
			failed++
		}
	}
	if failed > 0 {
		log.Fatalf("❌ %d of %d panel exports failed", failed, len(report.Panels))
	}
	log.Printf("🏁 Report %s exported to %s", reportID, om.BaseOutputDir)
}
