package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shopmetrics/internal/metrics"
)

// jsonEnvelope is the JSON report document: metadata first, then the
// composed metric groups and the optional period comparison.
type jsonEnvelope struct {
	Metadata   jsonMetadata              `json:"metadata"`
	Summary    *metrics.ExecutiveSummary `json:"summary"`
	Comparison *metrics.PeriodComparison `json:"period_comparison,omitempty"`
}

type jsonMetadata struct {
	ReportID    string `json:"report_id"`
	GeneratedAt string `json:"generated_at"`
	SourceDir   string `json:"source_dir"`
	Window      string `json:"window"`
	RecordCount int    `json:"record_count"`
}

// ExportJSON writes the full report as one indented JSON file and returns
// its path.
func ExportJSON(summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outDir, "report.json")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create JSON file: %w", err)
	}
	defer file.Close()

	envelope := jsonEnvelope{
		Metadata: jsonMetadata{
			ReportID:    meta.ReportID,
			GeneratedAt: meta.GeneratedAt.Format(time.RFC3339),
			SourceDir:   meta.SourceDir,
			Window:      meta.WindowLabel,
			RecordCount: meta.RecordCount,
		},
		Summary:    summary,
		Comparison: comparison,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(envelope); err != nil {
		return "", fmt.Errorf("encode JSON: %w", err)
	}

	return path, nil
}
