package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"shopmetrics/internal/metrics"
)

// ExportText writes the sectioned, human-readable executive summary and
// returns its path.
func ExportText(summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outDir, "executive_summary.txt")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create summary file: %w", err)
	}
	defer file.Close()

	WriteTextReport(file, summary, comparison, meta)

	return path, nil
}

// WriteTextReport renders the executive summary to w. Split from ExportText
// so the rendering is testable without the filesystem.
func WriteTextReport(w io.Writer, summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata) {
	fmt.Fprintf(w, "shopmetrics - Executive Summary\n")
	fmt.Fprintf(w, "===============================\n\n")
	fmt.Fprintf(w, "Report ID: %s\n", meta.ReportID)
	fmt.Fprintf(w, "Generated: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Window: %s\n", meta.WindowLabel)
	fmt.Fprintf(w, "Records: %d\n\n", meta.RecordCount)

	fmt.Fprintf(w, "REVENUE\n")
	fmt.Fprintf(w, "-------\n")
	fmt.Fprintf(w, "Total Revenue: %s\n", FormatCurrency(summary.Revenue.TotalRevenue))
	fmt.Fprintf(w, "Total Orders: %s\n", FormatNumber(float64(summary.Revenue.TotalOrders)))
	fmt.Fprintf(w, "Items Sold: %s\n", FormatNumber(float64(summary.Revenue.TotalItemsSold)))
	fmt.Fprintf(w, "Average Order Value: %s\n", FormatCurrency(summary.Revenue.AverageOrderValue))
	fmt.Fprintf(w, "Average Item Price: %s\n", FormatCurrency(summary.Revenue.AverageItemPrice))
	if comparison != nil {
		fmt.Fprintf(w, "Revenue Growth: %s\n",
			GrowthIndicator(comparison.RevenueGrowth, comparison.Previous.TotalRevenue))
		fmt.Fprintf(w, "Order Growth: %s\n",
			GrowthIndicator(comparison.OrderGrowth, float64(comparison.Previous.TotalOrders)))
		fmt.Fprintf(w, "AOV Growth: %s\n",
			GrowthIndicator(comparison.AOVGrowth, comparison.Previous.AverageOrderValue))
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "TOP PERFORMERS\n")
	fmt.Fprintf(w, "--------------\n")
	fmt.Fprintf(w, "Top Category: %s (%s)\n", summary.TopCategory.Name, FormatCurrency(summary.TopCategory.Revenue))
	fmt.Fprintf(w, "Top State: %s (%s)\n\n", summary.TopState.Name, FormatCurrency(summary.TopState.Revenue))

	fmt.Fprintf(w, "TOP 10 CATEGORIES BY REVENUE\n")
	fmt.Fprintf(w, "----------------------------\n")
	for i, g := range summary.Product.CategoryMetrics {
		if i >= 10 {
			break
		}
		fmt.Fprintf(w, "%2d. %s: %s (%.2f%%)\n", i+1, g.Key, FormatCurrency(g.TotalRevenue), g.RevenueShare)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "CUSTOMER EXPERIENCE\n")
	fmt.Fprintf(w, "-------------------\n")
	fmt.Fprintf(w, "Avg Delivery: %.1f days (median %.1f, std %.2f)\n",
		summary.Experience.Delivery.Mean,
		summary.Experience.Delivery.Median,
		summary.Experience.Delivery.StdDev)
	for _, b := range summary.Experience.DeliveryBuckets {
		fmt.Fprintf(w, "  %s: %d\n", b.Label, b.Count)
	}
	fmt.Fprintf(w, "Avg Review Score: %.2f\n", summary.Experience.Reviews.AverageScore)
	fmt.Fprintf(w, "Review Rate: %.2f%% (item rows), %.2f%% (orders)\n\n",
		summary.Experience.Reviews.ReviewRate,
		summary.Experience.Reviews.ReviewRateOrders)

	fmt.Fprintf(w, "OPERATIONS\n")
	fmt.Fprintf(w, "----------\n")
	fmt.Fprintf(w, "Fulfillment Rate: %.2f%%\n", summary.Operational.FulfillmentRate)
	fmt.Fprintf(w, "Cancellation Rate: %.2f%%\n", summary.Operational.CancellationRate)
	fmt.Fprintf(w, "Return Rate: %.2f%%\n", summary.Operational.ReturnRate)
	for _, s := range summary.Operational.StatusDistribution {
		fmt.Fprintf(w, "  %s: %d (%.2f%%)\n", s.Status, s.Count, s.Percentage)
	}
}
