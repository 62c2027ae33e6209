package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"shopmetrics/internal/metrics"
)

// CSVWriter provides CSV export functionality.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(fullPath string, options WriteOptions) error {
	w.logger.Debug("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a simple CSV file with headers and records.
func (w *CSVWriter) WriteSimpleCSV(fullPath string, headers []string, records [][]string) error {
	return w.WriteCSV(fullPath, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// StreamWriter provides streaming CSV writing for large row sets.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer.
func (w *CSVWriter) CreateStreamWriter(fullPath string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// ExportReportCSV writes one CSV per metric-group table under outDir and
// returns the written paths. Row order inside each file follows the order
// the calculator produced (descending revenue, chronological trend).
func (w *CSVWriter) ExportReportCSV(summary *metrics.ExecutiveSummary, outDir string) ([]string, error) {
	var written []string

	write := func(name string, headers []string, records [][]string) error {
		path := filepath.Join(outDir, name)
		if err := w.WriteSimpleCSV(path, headers, records); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	categoryRows := make([][]string, 0, len(summary.Product.CategoryMetrics))
	for _, g := range summary.Product.CategoryMetrics {
		categoryRows = append(categoryRows, []string{
			g.Key,
			formatFloat(g.TotalRevenue, 2),
			formatInt(g.ItemCount),
			formatFloat(g.AvgPrice, 2),
			formatFloat(g.RevenueShare, 2),
		})
	}
	if err := write("categories.csv",
		[]string{"Category", "Revenue", "Items", "Avg_Price", "Revenue_Share_Pct"},
		categoryRows); err != nil {
		return written, err
	}

	productRows := make([][]string, 0, len(summary.Product.TopProducts))
	for _, g := range summary.Product.TopProducts {
		productRows = append(productRows, []string{
			g.Key,
			formatFloat(g.TotalRevenue, 2),
			formatInt(g.ItemCount),
		})
	}
	if err := write("top_products.csv",
		[]string{"Product_ID", "Revenue", "Items"},
		productRows); err != nil {
		return written, err
	}

	stateRows := make([][]string, 0, len(summary.Geographic.StateMetrics))
	for _, s := range summary.Geographic.StateMetrics {
		stateRows = append(stateRows, []string{
			s.State,
			formatFloat(s.TotalRevenue, 2),
			formatInt(s.ItemCount),
			formatInt(s.Orders),
			formatFloat(s.AvgOrderValue, 2),
			formatFloat(s.RevenueShare, 2),
		})
	}
	if err := write("states.csv",
		[]string{"State", "Revenue", "Items", "Orders", "Avg_Order_Value", "Revenue_Share_Pct"},
		stateRows); err != nil {
		return written, err
	}

	cityRows := make([][]string, 0, len(summary.Geographic.TopCities))
	for _, c := range summary.Geographic.TopCities {
		cityRows = append(cityRows, []string{
			c.State,
			c.City,
			formatFloat(c.TotalRevenue, 2),
			formatInt(c.ItemCount),
		})
	}
	if err := write("top_cities.csv",
		[]string{"State", "City", "Revenue", "Items"},
		cityRows); err != nil {
		return written, err
	}

	trendRows := make([][]string, 0, len(summary.Revenue.MonthlyTrend))
	for _, p := range summary.Revenue.MonthlyTrend {
		trendRows = append(trendRows, []string{
			p.Label,
			formatFloat(p.Revenue, 2),
		})
	}
	if err := write("monthly_trend.csv",
		[]string{"Month", "Revenue"},
		trendRows); err != nil {
		return written, err
	}

	statusRows := make([][]string, 0, len(summary.Operational.StatusDistribution))
	for _, s := range summary.Operational.StatusDistribution {
		statusRows = append(statusRows, []string{
			s.Status,
			formatInt(s.Count),
			formatFloat(s.Percentage, 2),
		})
	}
	if err := write("status_distribution.csv",
		[]string{"Status", "Count", "Percentage"},
		statusRows); err != nil {
		return written, err
	}

	return written, nil
}
