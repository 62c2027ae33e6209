package exporter

import (
	"time"

	"shopmetrics/internal/dataset"
)

// Metadata identifies one report run and travels with every artifact.
type Metadata struct {
	ReportID    string                `json:"report_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	SourceDir   string                `json:"source_dir"`
	Window      dataset.WindowOptions `json:"-"`
	WindowLabel string                `json:"window"`
	RecordCount int                   `json:"record_count"`
}

// NewMetadata builds the metadata envelope for a report run.
func NewMetadata(reportID, sourceDir string, window dataset.WindowOptions, recordCount int) Metadata {
	return Metadata{
		ReportID:    reportID,
		GeneratedAt: time.Now(),
		SourceDir:   sourceDir,
		Window:      window,
		WindowLabel: window.String(),
		RecordCount: recordCount,
	}
}
