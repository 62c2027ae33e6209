package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"shopmetrics/internal/config"
	"shopmetrics/internal/dataset"
	"shopmetrics/internal/files"
	"shopmetrics/internal/infrastructure"
	"shopmetrics/internal/services"
	"shopmetrics/pkg/contracts"
)

func main() {
	sourceDir := flag.String("source", "", "source directory holding the six CSV tables (defaults to config sources.dir)")
	outDir := flag.String("out", "", "output directory for report artifacts (defaults to config reports.dir)")
	startDate := flag.String("start", "", "window start date, YYYY-MM-DD (inclusive)")
	endDate := flag.String("end", "", "window end date, YYYY-MM-DD (inclusive)")
	year := flag.Int("year", 0, "filter to a calendar year; takes precedence over -start/-end")
	month := flag.Int("month", 0, "filter to a month (1-12); requires -year")
	compare := flag.Bool("compare", false, "compare against the preceding period of the same length")
	formats := flag.String("formats", "csv,json,text", "comma-separated report formats: csv, json, xlsx, text")
	configFile := flag.String("config", "", "explicit config file path")
	listRuns := flag.Bool("list", false, "list previous report runs under the reports directory and exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		info := contracts.GetVersionInfo()
		fmt.Printf("shopmetrics %s (%s, %s)\n", info.Version, info.GoVersion, info.DataFormat)
		return
	}

	// .env is optional; explicit environment always wins
	_ = godotenv.Load()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *listRuns {
		if err := printReportRuns(cfg, *outDir); err != nil {
			logger.Error("Failed to list report runs", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	var pipeline *infrastructure.PipelineMetrics
	var providers *infrastructure.OTelProviders
	if cfg.Telemetry.TracingEnabled || cfg.Telemetry.MetricsEnabled {
		providers, err = infrastructure.InitializeOTel(cfg.Telemetry, logger)
		if err != nil {
			logger.Error("Failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := providers.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Telemetry shutdown failed", "error", err)
			}
		}()

		if cfg.Telemetry.MetricsEnabled {
			pipeline, err = infrastructure.CreatePipelineMetrics(providers.Meter)
			if err != nil {
				logger.Error("Failed to create pipeline metrics", "error", err)
				os.Exit(1)
			}
		}
	}

	req, err := buildRequest(cfg, *sourceDir, *outDir, *startDate, *endDate, *year, *month, *compare, *formats)
	if err != nil {
		logger.Error("Invalid arguments", "error", err)
		os.Exit(1)
	}

	svc := services.NewReportService(cfg, logger, pipeline)

	logger.InfoContext(ctx, "Generating report",
		"source", req.SourceDir,
		"window", req.Window.String(),
		"compare", req.Compare,
		"formats", *formats,
	)

	report, err := svc.GenerateReport(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "Report generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Report %s generated for window %s (%d records)\n",
		report.ID, report.Window, report.RecordCount)
	for _, f := range report.Files {
		fmt.Printf("  %s\n", f)
	}

	// Batch runs push their metrics on exit; a scrape endpoint would
	// outlive the process.
	if providers != nil && cfg.Telemetry.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := providers.PushMetrics(pushCtx, cfg.Telemetry.PushgatewayURL, "shopmetrics_report", report.ID); err != nil {
			logger.WarnContext(ctx, "Metrics push failed", "error", err)
		}
	}
}

// printReportRuns lists per-run report directories, oldest first, and marks
// the most recent one.
func printReportRuns(cfg *config.Config, outDir string) error {
	if outDir == "" {
		dir, err := cfg.EnsureReportsDir()
		if err != nil {
			return err
		}
		outDir = dir
	}

	runs, err := files.NewDiscovery(outDir).ListDirectories(".")
	if err != nil {
		return err
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ModTime.Before(runs[j].ModTime) })
	if len(runs) == 0 {
		fmt.Printf("no report runs under %s\n", outDir)
		return nil
	}

	latest, _ := files.GetLatestFile(runs)
	for _, run := range runs {
		marker := ""
		if run.Path == latest.Path {
			marker = "  (latest)"
		}
		fmt.Printf("%s  %s%s\n", run.ModTime.Format("2006-01-02 15:04:05"), run.Name, marker)
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func buildRequest(cfg *config.Config, sourceDir, outDir, startDate, endDate string, year, month int, compare bool, formats string) (services.ReportRequest, error) {
	var req services.ReportRequest

	if sourceDir == "" {
		dir, err := cfg.ResolveSourcesDir()
		if err != nil {
			return req, fmt.Errorf("no source directory: pass -source or set sources.dir")
		}
		sourceDir = dir
	}
	req.SourceDir = sourceDir

	if outDir == "" {
		dir, err := cfg.EnsureReportsDir()
		if err != nil {
			return req, err
		}
		outDir = dir
	}
	req.OutDir = outDir

	window := dataset.WindowOptions{Year: year, Month: month}
	if year == 0 {
		if month != 0 {
			return req, fmt.Errorf("-month requires -year")
		}
		if startDate != "" {
			start, err := time.Parse("2006-01-02", startDate)
			if err != nil {
				return req, fmt.Errorf("invalid -start date %q: %w", startDate, err)
			}
			window.Start = start
		}
		if endDate != "" {
			end, err := time.Parse("2006-01-02", endDate)
			if err != nil {
				return req, fmt.Errorf("invalid -end date %q: %w", endDate, err)
			}
			// make the end date cover its whole day
			window.End = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	req.Window = window
	req.Compare = compare

	for _, name := range strings.Split(formats, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		f := services.Format(name)
		if !f.IsValid() {
			return req, fmt.Errorf("unknown format %q (valid: csv, json, xlsx, text)", name)
		}
		req.Formats = append(req.Formats, f)
	}

	return req, nil
}
