package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/dataset"
	"shopmetrics/internal/metrics"
)

func summaryFixture() *metrics.ExecutiveSummary {
	return &metrics.ExecutiveSummary{
		Revenue: &metrics.RevenueMetrics{
			TotalRevenue:      80,
			TotalOrders:       2,
			TotalItemsSold:    3,
			AverageOrderValue: 40,
			AverageItemPrice:  26.67,
			MonthlyTrend: []metrics.TrendPoint{
				{Year: 2017, Month: 3, Label: "2017-03", Revenue: 50},
				{Year: 2017, Month: 4, Label: "2017-04", Revenue: 30},
			},
		},
		Product: &metrics.ProductMetrics{
			CategoryMetrics: []metrics.GroupRevenue{
				{Key: "Electronics", TotalRevenue: 60, ItemCount: 2, AvgPrice: 30, RevenueShare: 75},
				{Key: "Home Decor", TotalRevenue: 20, ItemCount: 1, AvgPrice: 20, RevenueShare: 25},
			},
			TopProducts: []metrics.GroupRevenue{
				{Key: "P1", TotalRevenue: 60, ItemCount: 2},
				{Key: "P2", TotalRevenue: 20, ItemCount: 1},
			},
			TotalCategories: 2,
			TotalProducts:   2,
		},
		Geographic: &metrics.GeographicMetrics{
			StateMetrics: []metrics.StateRevenue{
				{State: "SP", TotalRevenue: 50, ItemCount: 2, Orders: 1, AvgOrderValue: 50, RevenueShare: 62.5},
				{State: "RJ", TotalRevenue: 30, ItemCount: 1, Orders: 1, AvgOrderValue: 30, RevenueShare: 37.5},
			},
			TopCities: []metrics.CityRevenue{
				{State: "SP", City: "sao paulo", TotalRevenue: 50, ItemCount: 2},
			},
			TotalStates: 2,
			TotalCities: 1,
		},
		Experience: &metrics.ExperienceMetrics{
			Delivery: metrics.DeliveryStats{Count: 3, Mean: 6.67, Median: 5, StdDev: 2.89, Min: 5, Max: 10},
			DeliveryBuckets: []metrics.BucketCount{
				{Label: "1-3 days", Count: 0},
				{Label: "4-7 days", Count: 2},
				{Label: "8-14 days", Count: 1},
				{Label: "15-30 days", Count: 0},
				{Label: "30+ days", Count: 0},
			},
			Reviews: metrics.ReviewStats{
				AverageScore:     4,
				Distribution:     []metrics.ScoreCount{{Score: 4, Count: 1}},
				ReviewedRows:     1,
				ReviewRate:       33.33,
				ReviewRateOrders: 50,
			},
		},
		Operational: &metrics.OperationalMetrics{
			StatusDistribution: []metrics.StatusCount{
				{Status: "delivered", Count: 3, Percentage: 75},
				{Status: "canceled", Count: 1, Percentage: 25},
			},
			FulfillmentRate:  75,
			CancellationRate: 25,
			TotalRows:        4,
			DeliveredRows:    3,
		},
		TopCategory: metrics.TopGroup{Name: "Electronics", Revenue: 60},
		TopState:    metrics.TopGroup{Name: "SP", Revenue: 50},
	}
}

func comparisonFixture() *metrics.PeriodComparison {
	return &metrics.PeriodComparison{
		Current:       metrics.PeriodFigures{TotalRevenue: 80, TotalOrders: 2, AverageOrderValue: 40},
		Previous:      metrics.PeriodFigures{TotalRevenue: 40, TotalOrders: 1, AverageOrderValue: 40},
		RevenueChange: 40,
		RevenueGrowth: 100,
		OrdersChange:  1,
		OrderGrowth:   100,
		AOVChange:     0,
		AOVGrowth:     0,
	}
}

func metadataFixture() Metadata {
	return Metadata{
		ReportID:    "run-1",
		GeneratedAt: time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC),
		SourceDir:   "/data/source",
		Window:      dataset.WindowOptions{Year: 2017},
		WindowLabel: "2017",
		RecordCount: 4,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// strip the Excel BOM before parsing
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportReportCSV(t *testing.T) {
	outDir := t.TempDir()
	paths, err := NewCSVWriter(nil).ExportReportCSV(summaryFixture(), outDir)
	require.NoError(t, err)
	require.Len(t, paths, 6)

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	assert.Equal(t, []string{
		"categories.csv", "top_products.csv", "states.csv",
		"top_cities.csv", "monthly_trend.csv", "status_distribution.csv",
	}, names)

	categories := readCSV(t, filepath.Join(outDir, "categories.csv"))
	require.Len(t, categories, 3)
	assert.Equal(t, []string{"Category", "Revenue", "Items", "Avg_Price", "Revenue_Share_Pct"}, categories[0])
	assert.Equal(t, []string{"Electronics", "60.00", "2", "30.00", "75.00"}, categories[1])

	trend := readCSV(t, filepath.Join(outDir, "monthly_trend.csv"))
	require.Len(t, trend, 3)
	assert.Equal(t, []string{"2017-03", "50.00"}, trend[1])

	states := readCSV(t, filepath.Join(outDir, "states.csv"))
	assert.Equal(t, []string{"SP", "50.00", "2", "1", "50.00", "62.50"}, states[1])
}

func TestWriteCSV_BOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := NewCSVWriter(nil).WriteSimpleCSV(path, []string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestExportJSON(t *testing.T) {
	outDir := t.TempDir()
	path, err := ExportJSON(summaryFixture(), comparisonFixture(), metadataFixture(), outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "report.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "metadata")
	require.Contains(t, doc, "summary")
	require.Contains(t, doc, "period_comparison")

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(doc["metadata"], &meta))
	assert.Equal(t, "run-1", meta["report_id"])
	assert.Equal(t, "2017", meta["window"])
	assert.Equal(t, float64(4), meta["record_count"])

	var summary struct {
		Revenue struct {
			TotalRevenue float64 `json:"total_revenue"`
		} `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(doc["summary"], &summary))
	assert.Equal(t, 80.0, summary.Revenue.TotalRevenue)
}

func TestExportJSON_OmitsNilComparison(t *testing.T) {
	path, err := ExportJSON(summaryFixture(), nil, metadataFixture(), t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "period_comparison")
}

func TestWriteTextReport(t *testing.T) {
	var buf bytes.Buffer
	WriteTextReport(&buf, summaryFixture(), comparisonFixture(), metadataFixture())
	out := buf.String()

	assert.Contains(t, out, "Report ID: run-1")
	assert.Contains(t, out, "Window: 2017")
	assert.Contains(t, out, "Total Revenue: $80")
	assert.Contains(t, out, "Average Order Value: $40")
	assert.Contains(t, out, "Revenue Growth: +100.0%")
	assert.Contains(t, out, "Top Category: Electronics ($60)")
	assert.Contains(t, out, "Top State: SP ($50)")
	assert.Contains(t, out, "Fulfillment Rate: 75.00%")
	assert.Contains(t, out, "Review Rate: 33.33% (item rows), 50.00% (orders)")
	assert.Contains(t, out, "4-7 days: 2")
}

func TestWriteTextReport_NoComparison(t *testing.T) {
	var buf bytes.Buffer
	WriteTextReport(&buf, summaryFixture(), nil, metadataFixture())
	assert.NotContains(t, buf.String(), "Revenue Growth")
}

func TestExportText(t *testing.T) {
	outDir := t.TempDir()
	path, err := ExportText(summaryFixture(), nil, metadataFixture(), outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "executive_summary.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "shopmetrics - Executive Summary"))
}

func TestBuildSummaryValues(t *testing.T) {
	values := BuildSummaryValues(summaryFixture(), nil, metadataFixture())
	require.NotEmpty(t, values)

	byKey := make(map[string]interface{}, len(values))
	for _, row := range values {
		require.Len(t, row, 2)
		byKey[row[0].(string)] = row[1]
	}
	assert.Equal(t, "run-1", byKey["report_id"])
	assert.Equal(t, 80.0, byKey["total_revenue"])
	assert.Equal(t, 2, byKey["total_orders"])
	assert.Equal(t, "Electronics", byKey["top_category"])
	assert.NotContains(t, byKey, "revenue_growth")
}

func TestBuildSummaryValues_WithComparison(t *testing.T) {
	values := BuildSummaryValues(summaryFixture(), comparisonFixture(), metadataFixture())
	byKey := make(map[string]interface{}, len(values))
	for _, row := range values {
		byKey[row[0].(string)] = row[1]
	}
	assert.Equal(t, 100.0, byKey["revenue_growth"])
	assert.Equal(t, 0.0, byKey["aov_growth"])
}

func TestNewMetadata(t *testing.T) {
	meta := NewMetadata("id-1", "/src", dataset.WindowOptions{Year: 2017, Month: 3}, 42)
	assert.Equal(t, "id-1", meta.ReportID)
	assert.Equal(t, "2017-03", meta.WindowLabel)
	assert.Equal(t, 42, meta.RecordCount)
	assert.False(t, meta.GeneratedAt.IsZero())
}
