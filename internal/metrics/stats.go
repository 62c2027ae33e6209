package metrics

import (
	"math"
	"sort"
)

// Delivery bucket edges and labels. The first bucket includes 0; every
// subsequent bucket is (previous edge, edge].
var (
	deliveryBucketEdges  = []int{3, 7, 14, 30}
	deliveryBucketLabels = []string{"1-3 days", "4-7 days", "8-14 days", "15-30 days", "30+ days"}
)

// deliveryBucket returns the bucket index for a delivery duration in days,
// or -1 for a negative duration. Dirty exports can carry a delivered date
// before the purchase; those rows stay out of every bucket.
func deliveryBucket(days int) int {
	if days < 0 {
		return -1
	}
	for i, edge := range deliveryBucketEdges {
		if days <= edge {
			return i
		}
	}
	return len(deliveryBucketEdges)
}

// calculateMean computes the mean of a slice of float64 values, skipping
// NaN and infinite values. Returns 0 for an empty slice.
func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sum += v
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// calculateMedian computes the median of a slice of float64 values using a
// sorted copy; an even-length slice yields the mean of the middle two.
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// calculateStandardDeviation computes the sample standard deviation
// (N-1 denominator). Fewer than two valid observations yield 0.
func calculateStandardDeviation(values []float64, mean float64) float64 {
	if len(values) <= 1 {
		return 0
	}

	sumSquaredDeviations := 0.0
	validCount := 0

	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			deviation := v - mean
			sumSquaredDeviations += deviation * deviation
			validCount++
		}
	}

	if validCount <= 1 {
		return 0
	}

	return math.Sqrt(sumSquaredDeviations / float64(validCount-1))
}

// percentChange computes (current-previous)/previous*100, defined as 0 when
// previous is 0. Growth from nothing is reported as zero, never infinity.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// rate computes part/total*100, defined as 0 when total is 0.
func rate(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// round2 rounds to two decimal places, the precision every exported
// breakdown figure carries.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
