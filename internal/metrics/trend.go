package metrics

import (
	"fmt"
	"sort"
	"time"
)

// Granularity selects the bucket width of a revenue trend.
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// IsValid reports whether g is a known granularity.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityWeek, GranularityMonth, GranularityQuarter:
		return true
	}
	return false
}

// RevenueTrend buckets delivered revenue by the requested granularity,
// ordered chronologically. Monthly granularity agrees exactly with the
// monthly trend in RevenueMetrics. Rows without a purchase timestamp are
// skipped. An unknown granularity returns an error.
func (c *Calculator) RevenueTrend(granularity Granularity) ([]TrendPoint, error) {
	if !granularity.IsValid() {
		return nil, fmt.Errorf("unknown trend granularity %q", granularity)
	}

	type bucket struct {
		year, sub int
	}

	sums := make(map[bucket]float64)
	for _, r := range c.delivered {
		if !r.HasPurchaseTimestamp() {
			continue
		}

		var b bucket
		switch granularity {
		case GranularityWeek:
			y, w := r.PurchaseTimestamp.ISOWeek()
			b = bucket{y, w}
		case GranularityMonth:
			b = bucket{r.OrderYear, r.OrderMonth}
		case GranularityQuarter:
			b = bucket{r.OrderYear, quarterOf(r.PurchaseTimestamp)}
		}
		sums[b] += r.Price
	}

	keys := make([]bucket, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].sub < keys[j].sub
	})

	trend := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		point := TrendPoint{
			Year:    k.year,
			Revenue: sums[k],
		}
		switch granularity {
		case GranularityWeek:
			point.Label = fmt.Sprintf("%04d-W%02d", k.year, k.sub)
		case GranularityMonth:
			point.Month = k.sub
			point.Label = monthLabel(k.year, k.sub)
		case GranularityQuarter:
			point.Label = fmt.Sprintf("%04d-Q%d", k.year, k.sub)
		}
		trend = append(trend, point)
	}
	return trend, nil
}

// monthLabel formats a (year, month) pair as "YYYY-MM".
func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// quarterOf returns the calendar quarter (1..4) of a timestamp.
func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
