package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"shopmetrics/internal/config"
	"shopmetrics/internal/metrics"
)

// SheetsUploader appends the executive-summary table to a Google
// spreadsheet. Construction fails unless the Sheets export is configured.
type SheetsUploader struct {
	cfg    config.SheetsConfig
	logger *slog.Logger
}

// NewSheetsUploader creates an uploader from the Sheets configuration.
func NewSheetsUploader(cfg config.SheetsConfig, logger *slog.Logger) (*SheetsUploader, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("sheets export not configured")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetsUploader{cfg: cfg, logger: logger}, nil
}

// BuildSummaryValues marshals the executive summary into the row set the
// upload appends. Separate from Upload so it is testable offline.
func BuildSummaryValues(summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata) [][]interface{} {
	values := [][]interface{}{
		{"report_id", meta.ReportID},
		{"generated_at", meta.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"window", meta.WindowLabel},
		{"total_revenue", summary.Revenue.TotalRevenue},
		{"total_orders", summary.Revenue.TotalOrders},
		{"total_items_sold", summary.Revenue.TotalItemsSold},
		{"average_order_value", summary.Revenue.AverageOrderValue},
		{"top_category", summary.TopCategory.Name},
		{"top_category_revenue", summary.TopCategory.Revenue},
		{"top_state", summary.TopState.Name},
		{"top_state_revenue", summary.TopState.Revenue},
		{"fulfillment_rate", summary.Operational.FulfillmentRate},
		{"cancellation_rate", summary.Operational.CancellationRate},
		{"return_rate", summary.Operational.ReturnRate},
		{"avg_delivery_days", summary.Experience.Delivery.Mean},
		{"avg_review_score", summary.Experience.Reviews.AverageScore},
		{"review_rate", summary.Experience.Reviews.ReviewRate},
	}

	if comparison != nil {
		values = append(values,
			[]interface{}{"revenue_growth", comparison.RevenueGrowth},
			[]interface{}{"order_growth", comparison.OrderGrowth},
			[]interface{}{"aov_growth", comparison.AOVGrowth},
		)
	}

	return values
}

// Upload appends the summary rows to the configured spreadsheet.
func (u *SheetsUploader) Upload(ctx context.Context, summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata) error {
	ctx, cancel := context.WithTimeout(ctx, config.SheetsUploadTimeout)
	defer cancel()

	service, err := sheets.NewService(ctx, option.WithCredentialsFile(u.cfg.CredentialsFile))
	if err != nil {
		return fmt.Errorf("create sheets service: %w", err)
	}

	valueRange := &sheets.ValueRange{
		Values: BuildSummaryValues(summary, comparison, meta),
	}

	_, err = service.Spreadsheets.Values.
		Append(u.cfg.SpreadsheetID, "A1", valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append summary to spreadsheet: %w", err)
	}

	u.logger.InfoContext(ctx, "uploaded executive summary to sheets",
		"spreadsheet_id", u.cfg.SpreadsheetID,
		"rows", len(valueRange.Values),
	)

	return nil
}
