package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/pkg/contracts/domain"
)

func trendRecord(id string, ts time.Time, price float64) domain.OrderRecord {
	return domain.OrderRecord{
		OrderID:           id,
		Status:            domain.OrderStatusDelivered,
		PurchaseTimestamp: ts,
		OrderYear:         ts.Year(),
		OrderMonth:        int(ts.Month()),
		ProductID:         "P1",
		Price:             price,
	}
}

func TestRevenueTrend_Month(t *testing.T) {
	records := []domain.OrderRecord{
		trendRecord("A", time.Date(2017, 12, 20, 0, 0, 0, 0, time.UTC), 100),
		trendRecord("B", time.Date(2018, 1, 5, 0, 0, 0, 0, time.UTC), 50),
		trendRecord("C", time.Date(2017, 12, 28, 0, 0, 0, 0, time.UTC), 25),
	}
	c := NewCalculator(records, nil)

	trend, err := c.RevenueTrend(GranularityMonth)
	require.NoError(t, err)
	require.Len(t, trend, 2)

	assert.Equal(t, "2017-12", trend[0].Label)
	assert.InDelta(t, 125.0, trend[0].Revenue, 1e-9)
	assert.Equal(t, "2018-01", trend[1].Label)
	assert.InDelta(t, 50.0, trend[1].Revenue, 1e-9)
}

func TestRevenueTrend_MonthAgreesWithRevenueMetrics(t *testing.T) {
	c := NewCalculator(fixtureRecords(), nil)

	trend, err := c.RevenueTrend(GranularityMonth)
	require.NoError(t, err)

	m, err := c.RevenueMetrics(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, len(m.MonthlyTrend), len(trend))
	for i := range trend {
		assert.Equal(t, m.MonthlyTrend[i].Label, trend[i].Label)
		assert.InDelta(t, m.MonthlyTrend[i].Revenue, trend[i].Revenue, 1e-9)
	}
}

func TestRevenueTrend_Week(t *testing.T) {
	// 2016-01-01 is a Friday in ISO week 53 of 2015
	records := []domain.OrderRecord{
		trendRecord("A", time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC), 10),
		trendRecord("B", time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC), 20),
	}
	trend, err := NewCalculator(records, nil).RevenueTrend(GranularityWeek)
	require.NoError(t, err)
	require.Len(t, trend, 2)

	assert.Equal(t, "2015-W53", trend[0].Label)
	assert.InDelta(t, 10.0, trend[0].Revenue, 1e-9)
	assert.Equal(t, "2016-W01", trend[1].Label)
	assert.InDelta(t, 20.0, trend[1].Revenue, 1e-9)
}

func TestRevenueTrend_Quarter(t *testing.T) {
	records := []domain.OrderRecord{
		trendRecord("A", time.Date(2017, 3, 31, 0, 0, 0, 0, time.UTC), 10),
		trendRecord("B", time.Date(2017, 4, 1, 0, 0, 0, 0, time.UTC), 20),
		trendRecord("C", time.Date(2017, 11, 10, 0, 0, 0, 0, time.UTC), 30),
	}
	trend, err := NewCalculator(records, nil).RevenueTrend(GranularityQuarter)
	require.NoError(t, err)
	require.Len(t, trend, 3)

	assert.Equal(t, "2017-Q1", trend[0].Label)
	assert.Equal(t, "2017-Q2", trend[1].Label)
	assert.Equal(t, "2017-Q4", trend[2].Label)
}

func TestRevenueTrend_SkipsRowsWithoutTimestamp(t *testing.T) {
	records := []domain.OrderRecord{
		trendRecord("A", time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), 10),
		{OrderID: "B", Status: domain.OrderStatusDelivered, ProductID: "P1", Price: 99},
	}
	trend, err := NewCalculator(records, nil).RevenueTrend(GranularityMonth)
	require.NoError(t, err)
	require.Len(t, trend, 1)
	assert.InDelta(t, 10.0, trend[0].Revenue, 1e-9)
}

func TestRevenueTrend_UnknownGranularity(t *testing.T) {
	_, err := NewCalculator(nil, nil).RevenueTrend("decade")
	assert.Error(t, err)
}

func TestGranularityIsValid(t *testing.T) {
	assert.True(t, GranularityWeek.IsValid())
	assert.True(t, GranularityMonth.IsValid())
	assert.True(t, GranularityQuarter.IsValid())
	assert.False(t, Granularity("day").IsValid())
}
