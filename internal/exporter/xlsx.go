package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"shopmetrics/internal/metrics"
)

// ExportXLSX writes the report as one workbook with a sheet per metric
// group and returns its path.
func ExportXLSX(summary *metrics.ExecutiveSummary, comparison *metrics.PeriodComparison, meta Metadata, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	writeSheet := func(name string, headers []interface{}, rows [][]interface{}) error {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := f.SetSheetRow(name, "A1", &headers); err != nil {
			return fmt.Errorf("write headers on %s: %w", name, err)
		}
		endCol, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", endCol+"1", headerStyle); err != nil {
			return err
		}
		for i, row := range rows {
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("write row %d on %s: %w", i+2, name, err)
			}
		}
		return nil
	}

	summaryRows := [][]interface{}{
		{"Report ID", meta.ReportID},
		{"Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Window", meta.WindowLabel},
		{"Records", meta.RecordCount},
		{"Total Revenue", summary.Revenue.TotalRevenue},
		{"Total Orders", summary.Revenue.TotalOrders},
		{"Items Sold", summary.Revenue.TotalItemsSold},
		{"Average Order Value", summary.Revenue.AverageOrderValue},
		{"Average Item Price", summary.Revenue.AverageItemPrice},
		{"Top Category", summary.TopCategory.Name},
		{"Top Category Revenue", summary.TopCategory.Revenue},
		{"Top State", summary.TopState.Name},
		{"Top State Revenue", summary.TopState.Revenue},
		{"Fulfillment Rate %", summary.Operational.FulfillmentRate},
		{"Cancellation Rate %", summary.Operational.CancellationRate},
		{"Return Rate %", summary.Operational.ReturnRate},
		{"Avg Delivery Days", summary.Experience.Delivery.Mean},
		{"Avg Review Score", summary.Experience.Reviews.AverageScore},
		{"Review Rate %", summary.Experience.Reviews.ReviewRate},
	}
	if comparison != nil {
		summaryRows = append(summaryRows,
			[]interface{}{"Revenue Growth %", comparison.RevenueGrowth},
			[]interface{}{"Order Growth %", comparison.OrderGrowth},
			[]interface{}{"AOV Growth %", comparison.AOVGrowth},
		)
	}
	if err := writeSheet("Summary", []interface{}{"Metric", "Value"}, summaryRows); err != nil {
		return "", err
	}

	trendRows := make([][]interface{}, 0, len(summary.Revenue.MonthlyTrend))
	for _, p := range summary.Revenue.MonthlyTrend {
		trendRows = append(trendRows, []interface{}{p.Label, p.Revenue})
	}
	if err := writeSheet("Revenue", []interface{}{"Month", "Revenue"}, trendRows); err != nil {
		return "", err
	}

	categoryRows := make([][]interface{}, 0, len(summary.Product.CategoryMetrics))
	for _, g := range summary.Product.CategoryMetrics {
		categoryRows = append(categoryRows, []interface{}{
			g.Key, g.TotalRevenue, g.ItemCount, g.AvgPrice, g.RevenueShare,
		})
	}
	if err := writeSheet("Categories",
		[]interface{}{"Category", "Revenue", "Items", "Avg Price", "Share %"},
		categoryRows); err != nil {
		return "", err
	}

	stateRows := make([][]interface{}, 0, len(summary.Geographic.StateMetrics))
	for _, s := range summary.Geographic.StateMetrics {
		stateRows = append(stateRows, []interface{}{
			s.State, s.TotalRevenue, s.ItemCount, s.Orders, s.AvgOrderValue, s.RevenueShare,
		})
	}
	if err := writeSheet("States",
		[]interface{}{"State", "Revenue", "Items", "Orders", "AOV", "Share %"},
		stateRows); err != nil {
		return "", err
	}

	cityRows := make([][]interface{}, 0, len(summary.Geographic.TopCities))
	for _, c := range summary.Geographic.TopCities {
		cityRows = append(cityRows, []interface{}{c.State, c.City, c.TotalRevenue, c.ItemCount})
	}
	if err := writeSheet("Cities",
		[]interface{}{"State", "City", "Revenue", "Items"},
		cityRows); err != nil {
		return "", err
	}

	experienceRows := [][]interface{}{
		{"Delivery Observations", summary.Experience.Delivery.Count},
		{"Mean Delivery Days", summary.Experience.Delivery.Mean},
		{"Median Delivery Days", summary.Experience.Delivery.Median},
		{"Delivery Std Dev", summary.Experience.Delivery.StdDev},
	}
	for _, b := range summary.Experience.DeliveryBuckets {
		experienceRows = append(experienceRows, []interface{}{"Delivered in " + b.Label, b.Count})
	}
	for _, s := range summary.Experience.Reviews.Distribution {
		experienceRows = append(experienceRows, []interface{}{fmt.Sprintf("Score %d reviews", s.Score), s.Count})
	}
	experienceRows = append(experienceRows,
		[]interface{}{"Average Score", summary.Experience.Reviews.AverageScore},
		[]interface{}{"Review Rate %", summary.Experience.Reviews.ReviewRate},
		[]interface{}{"Review Rate (orders) %", summary.Experience.Reviews.ReviewRateOrders},
	)
	if err := writeSheet("Experience", []interface{}{"Metric", "Value"}, experienceRows); err != nil {
		return "", err
	}

	operationalRows := make([][]interface{}, 0, len(summary.Operational.StatusDistribution))
	for _, s := range summary.Operational.StatusDistribution {
		operationalRows = append(operationalRows, []interface{}{s.Status, s.Count, s.Percentage})
	}
	if err := writeSheet("Operational",
		[]interface{}{"Status", "Count", "Percentage"},
		operationalRows); err != nil {
		return "", err
	}

	// The default sheet excelize creates is not part of the report
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("delete default sheet: %w", err)
	}

	path := filepath.Join(outDir, "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	return path, nil
}
