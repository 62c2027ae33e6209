package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"shopmetrics/internal/config"
	"shopmetrics/internal/infrastructure"
	"shopmetrics/internal/services"
)

func main() {
	sourceDir := flag.String("source", "", "source directory holding the six CSV tables (defaults to config sources.dir)")
	asJSON := flag.Bool("json", false, "emit the summary as JSON instead of text")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	dir := *sourceDir
	if dir == "" {
		dir, err = cfg.ResolveSourcesDir()
		if err != nil {
			logger.Error("No source directory: pass -source or set sources.dir")
			os.Exit(1)
		}
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	svc := services.NewReportService(cfg, logger, nil)

	summary, err := svc.DatasetSummary(ctx, dir)
	if err != nil {
		logger.ErrorContext(ctx, "Dataset summary failed", "error", err)
		os.Exit(1)
	}

	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			logger.Error("Failed to encode summary", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Dataset summary for %s\n\n", summary.SourceDir)
	for _, table := range summary.Tables {
		fmt.Printf("%-10s %8d rows, %d columns\n", table.Name, table.Rows, table.Columns)
		for column, count := range table.MissingValues {
			fmt.Printf("             missing %s: %d\n", column, count)
		}
	}
	if !summary.DateFrom.IsZero() {
		fmt.Printf("\nOrders span %s .. %s\n",
			summary.DateFrom.Format("2006-01-02"),
			summary.DateTo.Format("2006-01-02"))
	}
}
