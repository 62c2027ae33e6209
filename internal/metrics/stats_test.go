package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryBucket(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "1-3 days"},
		{1, "1-3 days"},
		{3, "1-3 days"},
		{4, "4-7 days"},
		{7, "4-7 days"},
		{8, "8-14 days"},
		{14, "8-14 days"},
		{15, "15-30 days"},
		{30, "15-30 days"},
		{31, "30+ days"},
		{120, "30+ days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deliveryBucketLabels[deliveryBucket(tt.days)],
			"days=%d", tt.days)
	}

	// delivered before purchase lands in no bucket
	assert.Equal(t, -1, deliveryBucket(-1))
	assert.Equal(t, -1, deliveryBucket(-30))
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, calculateMean(nil))
	assert.Equal(t, 0.0, calculateMean([]float64{}))
	assert.InDelta(t, 2.0, calculateMean([]float64{1, 2, 3}), 1e-9)

	// NaN and infinite observations are skipped, not propagated
	assert.InDelta(t, 2.0, calculateMean([]float64{1, 2, 3, math.NaN()}), 1e-9)
	assert.InDelta(t, 2.0, calculateMean([]float64{1, 3, math.Inf(1)}), 1e-9)
	assert.Equal(t, 0.0, calculateMean([]float64{math.NaN(), math.Inf(-1)}))
}

func TestCalculateMedian(t *testing.T) {
	assert.Equal(t, 0.0, calculateMedian(nil))
	assert.Equal(t, 5.0, calculateMedian([]float64{5}))
	assert.InDelta(t, 2.0, calculateMedian([]float64{3, 1, 2}), 1e-9)
	assert.InDelta(t, 2.5, calculateMedian([]float64{4, 1, 3, 2}), 1e-9)

	// input must not be reordered
	values := []float64{3, 1, 2}
	calculateMedian(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestCalculateStandardDeviation(t *testing.T) {
	assert.Equal(t, 0.0, calculateStandardDeviation(nil, 0))
	assert.Equal(t, 0.0, calculateStandardDeviation([]float64{7}, 7))

	// sample convention: {2,4,4,4,5,5,7,9} has sample std dev sqrt(32/7)
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := calculateMean(values)
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), calculateStandardDeviation(values, mean), 1e-9)
}

func TestPercentChange(t *testing.T) {
	assert.InDelta(t, 25.0, percentChange(500, 400), 1e-9)
	assert.InDelta(t, -50.0, percentChange(200, 400), 1e-9)
	// growth from nothing reports zero, never infinity
	assert.Equal(t, 0.0, percentChange(500, 0))
	assert.Equal(t, 0.0, percentChange(0, 0))
}

func TestRate(t *testing.T) {
	assert.InDelta(t, 75.0, rate(3, 4), 1e-9)
	assert.Equal(t, 0.0, rate(3, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3.0))
	assert.Equal(t, 2.14, round2(2.138089935299395))
	assert.Equal(t, -1.5, round2(-1.499))
}
