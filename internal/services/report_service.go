package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"shopmetrics/internal/config"
	"shopmetrics/internal/dataset"
	apperrors "shopmetrics/internal/errors"
	"shopmetrics/internal/exporter"
	"shopmetrics/internal/infrastructure"
	"shopmetrics/internal/metrics"
	"shopmetrics/internal/validation"
	"shopmetrics/pkg/contracts/domain"
)

// Format names a report output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatText Format = "text"
)

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatXLSX, FormatText:
		return true
	}
	return false
}

// ReportRequest describes one report run.
type ReportRequest struct {
	SourceDir string
	OutDir    string
	Window    dataset.WindowOptions
	Compare   bool
	Formats   []Format
}

// Report is the result of one report run.
type Report struct {
	ID          string                    `json:"id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Window      string                    `json:"window"`
	RecordCount int                       `json:"record_count"`
	Summary     *metrics.ExecutiveSummary `json:"summary"`
	Comparison  *metrics.PeriodComparison `json:"period_comparison,omitempty"`
	Files       []string                  `json:"files,omitempty"`
}

// ReportService wires loader, cache, calculator, and exporters into the
// report pipeline.
type ReportService struct {
	cfg       *config.Config
	loader    *dataset.Loader
	cache     *dataset.Cache
	validator *validation.FileValidator
	logger    *slog.Logger
	pipeline  *infrastructure.PipelineMetrics
}

// NewReportService creates a report service. A nil logger falls back to
// slog.Default(); pipeline metrics are optional and may be nil.
func NewReportService(cfg *config.Config, logger *slog.Logger, pipeline *infrastructure.PipelineMetrics) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	var cache *dataset.Cache
	if cfg.Cache.Enabled {
		cache = dataset.NewCache(cfg.Cache.MaxEntries)
	}

	return &ReportService{
		cfg:       cfg,
		loader:    dataset.NewLoader(logger),
		cache:     cache,
		validator: validation.NewFileValidator(logger),
		logger:    logger,
		pipeline:  pipeline,
	}
}

// InvalidateCache drops cached datasets for a source directory, forcing
// the next run to reload from disk.
func (s *ReportService) InvalidateCache(sourceDir string) {
	if s.cache != nil {
		s.cache.Invalidate(sourceDir)
	}
}

// GenerateReport runs the full pipeline for one request: validate sources,
// load (through the cache), filter to the window, calculate, optionally
// compare against the preceding window, and export.
func (s *ReportService) GenerateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := infrastructure.StartSpan(ctx, "report.generate")
	defer span.End()
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"source_dir": req.SourceDir,
		"window":     req.Window.String(),
		"compare":    req.Compare,
	})
	start := time.Now()

	if err := s.validateRequest(req); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	if err := s.validator.ValidateSourceDirectory(req.SourceDir); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	records, err := s.loadRecords(ctx, req.SourceDir, dataset.WindowOptions{})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	current := dataset.FilterByWindow(records, req.Window)
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{"records": len(current)})

	var comparisonRecords []domain.OrderRecord
	if req.Compare {
		comparisonRecords, err = s.comparisonRecords(records, req.Window)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			return nil, err
		}
	}

	calc := metrics.NewCalculator(current, s.logger)

	// The current summary and the period comparison are independent reads
	// over immutable record sets, so they run concurrently.
	var (
		summary    *metrics.ExecutiveSummary
		comparison *metrics.PeriodComparison
	)
	calcCtx, calcSpan := infrastructure.StartSpan(ctx, "report.calculate")
	g, gctx := errgroup.WithContext(calcCtx)
	g.Go(func() error {
		calcStart := time.Now()
		var err error
		summary, err = calc.ExecutiveSummary(gctx, comparisonRecords)
		infrastructure.RecordCalculation(gctx, s.pipeline, "executive_summary", time.Since(calcStart), err)
		return err
	})
	if req.Compare {
		g.Go(func() error {
			var err error
			comparison, err = metrics.ComparePeriods(gctx, current, comparisonRecords, s.logger)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		infrastructure.RecordError(calcCtx, err)
		calcSpan.End()
		return nil, err
	}
	calcSpan.End()

	report := &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		Window:      req.Window.String(),
		RecordCount: len(current),
		Summary:     summary,
		Comparison:  comparison,
	}

	if len(req.Formats) > 0 {
		meta := exporter.NewMetadata(report.ID, req.SourceDir, req.Window, len(current))
		files, err := s.export(ctx, summary, comparison, meta, req)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			return nil, err
		}
		report.Files = files
	}

	s.logger.InfoContext(ctx, "report generated",
		"report_id", report.ID,
		"window", report.Window,
		"records", report.RecordCount,
		"files", len(report.Files),
		"duration", time.Since(start),
	)

	return report, nil
}

// DatasetSummary loads the source tables and returns the per-table
// summary without running any metric calculation.
func (s *ReportService) DatasetSummary(ctx context.Context, sourceDir string) (*domain.DatasetSummary, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := s.validator.ValidateSourceDirectory(sourceDir); err != nil {
		return nil, err
	}

	start := time.Now()
	tables, err := s.loader.Load(ctx, sourceDir)
	if err != nil {
		return nil, err
	}
	infrastructure.RecordLoad(ctx, s.pipeline, "all", tables.RowCount(), time.Since(start))

	return dataset.Summarize(tables, sourceDir), nil
}

func (s *ReportService) validateRequest(req ReportRequest) error {
	if req.SourceDir == "" {
		return apperrors.NewValidationError("source directory is required")
	}
	for _, f := range req.Formats {
		if !f.IsValid() {
			return apperrors.NewValidationError(fmt.Sprintf("unknown report format %q", f))
		}
	}
	if len(req.Formats) > 0 && req.OutDir == "" {
		return apperrors.NewValidationError("output directory is required when formats are requested")
	}
	if req.Compare && req.Window.Year == 0 && (req.Window.Start.IsZero() || req.Window.End.IsZero()) {
		return apperrors.NewValidationError("comparison requires an explicit window")
	}
	return nil
}

// loadRecords loads the joined record set through the cache when enabled.
func (s *ReportService) loadRecords(ctx context.Context, sourceDir string, window dataset.WindowOptions) ([]domain.OrderRecord, error) {
	if s.cache != nil {
		if records, ok := s.cache.Get(sourceDir, window); ok {
			infrastructure.RecordCacheLookup(ctx, s.pipeline, true)
			s.logger.DebugContext(ctx, "dataset cache hit",
				"source_dir", sourceDir,
				"window", window.String(),
			)
			return records, nil
		}
		infrastructure.RecordCacheLookup(ctx, s.pipeline, false)
	}

	ctx, span := infrastructure.StartSpan(ctx, "report.load")
	defer span.End()

	start := time.Now()
	tables, err := s.loader.Load(ctx, sourceDir)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	infrastructure.RecordLoad(ctx, s.pipeline, "all", tables.RowCount(), time.Since(start))

	records := dataset.Join(tables)

	if s.cache != nil {
		s.cache.Put(sourceDir, window, records)
	}

	return records, nil
}

// comparisonRecords derives the preceding window of the same length and
// filters the already-loaded record set to it.
func (s *ReportService) comparisonRecords(records []domain.OrderRecord, window dataset.WindowOptions) ([]domain.OrderRecord, error) {
	start, end, err := windowBounds(window)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := metrics.PreviousWindow(start, end)
	return dataset.FilterByWindow(records, dataset.WindowOptions{Start: prevStart, End: prevEnd}), nil
}

// windowBounds resolves a window to explicit inclusive start/end instants.
func windowBounds(window dataset.WindowOptions) (time.Time, time.Time, error) {
	if window.Year != 0 {
		if window.Month != 0 {
			start := time.Date(window.Year, time.Month(window.Month), 1, 0, 0, 0, 0, time.UTC)
			return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
		}
		start := time.Date(window.Year, 1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0).Add(-time.Nanosecond), nil
	}
	if window.Start.IsZero() || window.End.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("window has no explicit bounds")
	}
	return window.Start, window.End, nil
}

// export writes the requested formats concurrently, returning the list of
// written files.
func (s *ReportService) export(ctx context.Context, summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta exporter.Metadata, req ReportRequest) ([]string, error) {
	ctx, span := infrastructure.StartSpan(ctx, "report.export")
	defer span.End()

	outDir := filepath.Join(req.OutDir, meta.GeneratedAt.Format("20060102_150405"))
	if err := s.validator.ValidateOutputDirectory(outDir); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	var (
		csvFiles []string
		jsonFile string
		xlsxFile string
		textFile string
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range req.Formats {
		format := format
		g.Go(func() error {
			start := time.Now()
			var err error
			switch format {
			case FormatCSV:
				csvFiles, err = exporter.NewCSVWriter(s.logger).ExportReportCSV(summary, outDir)
			case FormatJSON:
				jsonFile, err = exporter.ExportJSON(summary, comparison, meta, outDir)
			case FormatXLSX:
				xlsxFile, err = exporter.ExportXLSX(summary, comparison, meta, outDir)
			case FormatText:
				textFile, err = exporter.ExportText(summary, comparison, meta, outDir)
			}
			infrastructure.RecordExport(gctx, s.pipeline, string(format), time.Since(start), err)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	files := append([]string{}, csvFiles...)
	for _, f := range []string{jsonFile, xlsxFile, textFile} {
		if f != "" {
			files = append(files, f)
		}
	}

	if s.cfg.Sheets.Enabled() {
		uploader, err := exporter.NewSheetsUploader(s.cfg.Sheets, s.logger)
		if err != nil {
			return files, err
		}
		if err := uploader.Upload(ctx, summary, comparison, meta); err != nil {
			// the filesystem artifacts are already written; report and move on
			s.logger.WarnContext(ctx, "sheets upload failed", "error", err)
		}
	}

	return files, nil
}
