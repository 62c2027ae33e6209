package metrics

import (
	"context"
	"log/slog"
	"time"

	"shopmetrics/pkg/contracts/domain"
)

// ComparePeriods computes the headline revenue figures of two disjoint
// periods independently and returns their absolute and percentage changes.
// Each period stands alone: neither calculator receives a comparison set.
// Pure function of its two inputs.
func ComparePeriods(ctx context.Context, current, previous []domain.OrderRecord, logger *slog.Logger) (*PeriodComparison, error) {
	if logger == nil {
		logger = slog.Default()
	}

	currentMetrics, err := NewCalculator(current, logger).RevenueMetrics(ctx, nil)
	if err != nil {
		return nil, err
	}

	previousMetrics, err := NewCalculator(previous, logger).RevenueMetrics(ctx, nil)
	if err != nil {
		return nil, err
	}

	cmp := &PeriodComparison{
		Current: PeriodFigures{
			TotalRevenue:      currentMetrics.TotalRevenue,
			TotalOrders:       currentMetrics.TotalOrders,
			AverageOrderValue: currentMetrics.AverageOrderValue,
		},
		Previous: PeriodFigures{
			TotalRevenue:      previousMetrics.TotalRevenue,
			TotalOrders:       previousMetrics.TotalOrders,
			AverageOrderValue: previousMetrics.AverageOrderValue,
		},
	}

	cmp.RevenueChange = cmp.Current.TotalRevenue - cmp.Previous.TotalRevenue
	cmp.RevenueGrowth = percentChange(cmp.Current.TotalRevenue, cmp.Previous.TotalRevenue)
	cmp.OrdersChange = cmp.Current.TotalOrders - cmp.Previous.TotalOrders
	cmp.OrderGrowth = percentChange(float64(cmp.Current.TotalOrders), float64(cmp.Previous.TotalOrders))
	cmp.AOVChange = cmp.Current.AverageOrderValue - cmp.Previous.AverageOrderValue
	cmp.AOVGrowth = percentChange(cmp.Current.AverageOrderValue, cmp.Previous.AverageOrderValue)

	logger.DebugContext(ctx, "period comparison calculated",
		"revenue_growth", cmp.RevenueGrowth,
		"order_growth", cmp.OrderGrowth,
	)

	return cmp, nil
}

// PreviousWindow derives the comparison window immediately preceding
// [start, end]: the same length, ending the instant before start, so
// inclusive-end filtering keeps the two windows disjoint.
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	length := end.Sub(start)
	prevStart := start.Add(-length)
	prevEnd := start.Add(-time.Nanosecond)
	return prevStart, prevEnd
}
