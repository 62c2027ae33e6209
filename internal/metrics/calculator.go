package metrics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	apperrors "shopmetrics/internal/errors"
	"shopmetrics/pkg/contracts/domain"
)

// Calculator computes the five business-metric groups over one denormalized
// order-record set. The record set is partitioned once at construction;
// every method is a pure read after that.
type Calculator struct {
	all       []domain.OrderRecord
	delivered []domain.OrderRecord
	logger    *slog.Logger
}

// NewCalculator creates a calculator over the provided record set. The
// records are not copied and must not be mutated while the calculator is
// in use.
func NewCalculator(records []domain.OrderRecord, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}

	delivered := make([]domain.OrderRecord, 0, len(records))
	for _, r := range records {
		if r.IsDelivered() {
			delivered = append(delivered, r)
		}
	}

	return &Calculator{
		all:       records,
		delivered: delivered,
		logger:    logger,
	}
}

// DeliveredRows returns the number of delivered item rows.
func (c *Calculator) DeliveredRows() int {
	return len(c.delivered)
}

// TotalRows returns the number of item rows in the full record set.
func (c *Calculator) TotalRows() int {
	return len(c.all)
}

// RevenueMetrics computes the revenue metric group over the delivered
// partition. A non-nil comparison set adds period-over-period growth
// figures computed on its delivered subset.
func (c *Calculator) RevenueMetrics(ctx context.Context, comparison []domain.OrderRecord) (*RevenueMetrics, error) {
	start := time.Now()

	m := &RevenueMetrics{
		TotalItemsSold: len(c.delivered),
	}

	// Per-order sums drive both the distinct-order count and the AOV.
	// AOV is the mean of per-order revenue, not revenue over item count.
	orderTotals := make(map[string]float64)
	orderSeen := make([]string, 0)

	prices := make([]float64, 0, len(c.delivered))
	for _, r := range c.delivered {
		if _, ok := orderTotals[r.OrderID]; !ok {
			orderSeen = append(orderSeen, r.OrderID)
		}
		orderTotals[r.OrderID] += r.Price
		m.TotalRevenue += r.Price
		prices = append(prices, r.Price)
	}

	m.TotalOrders = len(orderTotals)
	m.AverageItemPrice = calculateMean(prices)

	if len(orderSeen) > 0 {
		perOrder := make([]float64, 0, len(orderSeen))
		for _, id := range orderSeen {
			perOrder = append(perOrder, orderTotals[id])
		}
		m.AverageOrderValue = calculateMean(perOrder)
	}

	m.MonthlyTrend = monthlyTrend(c.delivered)

	if comparison != nil {
		prev := NewCalculator(comparison, c.logger)
		prevMetrics, err := prev.RevenueMetrics(ctx, nil)
		if err != nil {
			return nil, err
		}

		m.Growth = &RevenueGrowth{
			RevenueGrowth: percentChange(m.TotalRevenue, prevMetrics.TotalRevenue),
			OrderGrowth:   percentChange(float64(m.TotalOrders), float64(prevMetrics.TotalOrders)),
			AOVGrowth:     percentChange(m.AverageOrderValue, prevMetrics.AverageOrderValue),
		}
	}

	c.logger.DebugContext(ctx, "revenue metrics calculated",
		"total_revenue", m.TotalRevenue,
		"total_orders", m.TotalOrders,
		"items_sold", m.TotalItemsSold,
		"duration", time.Since(start),
	)

	return m, nil
}

// ProductMetrics computes the product metric group: category revenue with
// shares and the top 20 products by revenue.
func (c *Calculator) ProductMetrics(ctx context.Context) (*ProductMetrics, error) {
	categories := groupRevenue(c.delivered, func(r *domain.OrderRecord) (string, bool) {
		return r.CategoryClean, r.CategoryClean != ""
	})

	total := 0.0
	for _, g := range categories {
		total += g.TotalRevenue
	}

	withShares := make([]GroupRevenue, len(categories))
	for i, g := range categories {
		g.RevenueShare = round2(rate(g.TotalRevenue, total))
		withShares[i] = g
	}

	products := groupRevenue(c.delivered, func(r *domain.OrderRecord) (string, bool) {
		return r.ProductID, r.ProductID != ""
	})
	totalProducts := len(products)
	if len(products) > 20 {
		products = products[:20]
	}
	// product rows carry no mean price in the breakdown
	for i := range products {
		products[i].AvgPrice = 0
	}

	m := &ProductMetrics{
		CategoryRevenue: categories,
		CategoryMetrics: withShares,
		TopProducts:     products,
		TotalCategories: len(categories),
		TotalProducts:   totalProducts,
	}

	c.logger.DebugContext(ctx, "product metrics calculated",
		"categories", m.TotalCategories,
		"products", m.TotalProducts,
	)

	return m, nil
}

// GeographicMetrics computes the geographic metric group: per-state revenue
// with shares and order-granularity AOV, plus the top 20 cities by revenue.
func (c *Calculator) GeographicMetrics(ctx context.Context) (*GeographicMetrics, error) {
	type stateAgg struct {
		revenue float64
		items   int
		orders  map[string]struct{}
		first   int
	}

	states := make(map[string]*stateAgg)
	stateOrder := make([]string, 0)

	type cityKey struct {
		state, city string
	}
	type cityAgg struct {
		revenue float64
		items   int
		first   int
	}
	cities := make(map[cityKey]*cityAgg)
	cityOrder := make([]cityKey, 0)

	total := 0.0
	for _, r := range c.delivered {
		if r.CustomerState == "" {
			continue
		}

		agg, ok := states[r.CustomerState]
		if !ok {
			agg = &stateAgg{orders: make(map[string]struct{}), first: len(stateOrder)}
			states[r.CustomerState] = agg
			stateOrder = append(stateOrder, r.CustomerState)
		}
		agg.revenue += r.Price
		agg.items++
		agg.orders[r.OrderID] = struct{}{}
		total += r.Price

		if r.CustomerCity != "" {
			key := cityKey{r.CustomerState, r.CustomerCity}
			ca, ok := cities[key]
			if !ok {
				ca = &cityAgg{first: len(cityOrder)}
				cities[key] = ca
				cityOrder = append(cityOrder, key)
			}
			ca.revenue += r.Price
			ca.items++
		}
	}

	stateMetrics := make([]StateRevenue, 0, len(states))
	for _, state := range stateOrder {
		agg := states[state]
		aov := 0.0
		if len(agg.orders) > 0 {
			aov = agg.revenue / float64(len(agg.orders))
		}
		stateMetrics = append(stateMetrics, StateRevenue{
			State:         state,
			TotalRevenue:  round2(agg.revenue),
			ItemCount:     agg.items,
			Orders:        len(agg.orders),
			AvgOrderValue: round2(aov),
			RevenueShare:  round2(rate(agg.revenue, total)),
		})
	}
	// Descending by revenue; SliceStable keeps first-inserted ahead on ties
	// because stateMetrics was built in insertion order.
	sort.SliceStable(stateMetrics, func(i, j int) bool {
		return stateMetrics[i].TotalRevenue > stateMetrics[j].TotalRevenue
	})

	topCities := make([]CityRevenue, 0, len(cities))
	for _, key := range cityOrder {
		agg := cities[key]
		topCities = append(topCities, CityRevenue{
			State:        key.state,
			City:         key.city,
			TotalRevenue: round2(agg.revenue),
			ItemCount:    agg.items,
		})
	}
	sort.SliceStable(topCities, func(i, j int) bool {
		return topCities[i].TotalRevenue > topCities[j].TotalRevenue
	})
	totalCities := len(topCities)
	if len(topCities) > 20 {
		topCities = topCities[:20]
	}

	m := &GeographicMetrics{
		StateMetrics: stateMetrics,
		TopCities:    topCities,
		TotalStates:  len(stateMetrics),
		TotalCities:  totalCities,
	}

	c.logger.DebugContext(ctx, "geographic metrics calculated",
		"states", m.TotalStates,
		"cities", m.TotalCities,
	)

	return m, nil
}

// CustomerExperienceMetrics computes delivery and review statistics over the
// delivered partition. Rows missing delivery_days or review_score are
// excluded only from the statistics that need those fields.
func (c *Calculator) CustomerExperienceMetrics(ctx context.Context) (*ExperienceMetrics, error) {
	m := &ExperienceMetrics{}

	// Delivery statistics over rows with a known duration
	var days []float64
	bucketCounts := make([]int, len(deliveryBucketLabels))
	minDays, maxDays := 0, 0
	for _, r := range c.delivered {
		if r.DeliveryDays == nil {
			continue
		}
		d := *r.DeliveryDays
		if len(days) == 0 || d < minDays {
			minDays = d
		}
		if len(days) == 0 || d > maxDays {
			maxDays = d
		}
		days = append(days, float64(d))
		if b := deliveryBucket(d); b >= 0 {
			bucketCounts[b]++
		}
	}

	if len(days) > 0 {
		mean := calculateMean(days)
		m.Delivery = DeliveryStats{
			Count:  len(days),
			Mean:   round2(mean),
			Median: calculateMedian(days),
			StdDev: round2(calculateStandardDeviation(days, mean)),
			Min:    minDays,
			Max:    maxDays,
		}
	}

	m.DeliveryBuckets = make([]BucketCount, len(deliveryBucketLabels))
	for i, label := range deliveryBucketLabels {
		m.DeliveryBuckets[i] = BucketCount{Label: label, Count: bucketCounts[i]}
	}

	// Review statistics over rows with a known score
	scoreCounts := make(map[int]int)
	scoreSum := 0
	reviewedRows := 0
	reviewedOrders := make(map[string]struct{})
	allOrders := make(map[string]struct{})
	for _, r := range c.delivered {
		allOrders[r.OrderID] = struct{}{}
		if r.ReviewScore == nil {
			continue
		}
		scoreCounts[*r.ReviewScore]++
		scoreSum += *r.ReviewScore
		reviewedRows++
		reviewedOrders[r.OrderID] = struct{}{}
	}

	distribution := make([]ScoreCount, 0, len(scoreCounts))
	scores := make([]int, 0, len(scoreCounts))
	for score := range scoreCounts {
		scores = append(scores, score)
	}
	sort.Ints(scores)
	for _, score := range scores {
		distribution = append(distribution, ScoreCount{Score: score, Count: scoreCounts[score]})
	}

	avgScore := 0.0
	if reviewedRows > 0 {
		avgScore = round2(float64(scoreSum) / float64(reviewedRows))
	}

	m.Reviews = ReviewStats{
		AverageScore:     avgScore,
		Distribution:     distribution,
		ReviewedRows:     reviewedRows,
		ReviewRate:       round2(rate(float64(reviewedRows), float64(len(c.delivered)))),
		ReviewRateOrders: round2(rate(float64(len(reviewedOrders)), float64(len(allOrders)))),
	}

	m.SatisfactionByDelivery = c.satisfactionByDelivery()

	c.logger.DebugContext(ctx, "customer experience metrics calculated",
		"delivery_observations", m.Delivery.Count,
		"reviewed_rows", reviewedRows,
	)

	return m, nil
}

// satisfactionByDelivery buckets rows carrying both a review score and a
// delivery duration, reporting mean score per bucket in label order.
func (c *Calculator) satisfactionByDelivery() []BucketSatisfaction {
	sums := make([]int, len(deliveryBucketLabels))
	counts := make([]int, len(deliveryBucketLabels))

	for _, r := range c.delivered {
		if r.ReviewScore == nil || r.DeliveryDays == nil {
			continue
		}
		b := deliveryBucket(*r.DeliveryDays)
		if b < 0 {
			continue
		}
		sums[b] += *r.ReviewScore
		counts[b]++
	}

	result := make([]BucketSatisfaction, 0, len(deliveryBucketLabels))
	for i, label := range deliveryBucketLabels {
		if counts[i] == 0 {
			continue
		}
		result = append(result, BucketSatisfaction{
			Label:    label,
			AvgScore: round2(float64(sums[i]) / float64(counts[i])),
			Count:    counts[i],
		})
	}
	return result
}

// OperationalMetrics computes the status distribution and fulfillment rates
// over the full unfiltered record set.
func (c *Calculator) OperationalMetrics(ctx context.Context) (*OperationalMetrics, error) {
	statusCounts := make(map[domain.OrderStatus]int)
	statusOrder := make([]domain.OrderStatus, 0)
	for _, r := range c.all {
		if _, ok := statusCounts[r.Status]; !ok {
			statusOrder = append(statusOrder, r.Status)
		}
		statusCounts[r.Status]++
	}

	total := len(c.all)
	distribution := make([]StatusCount, 0, len(statusCounts))
	for _, status := range statusOrder {
		count := statusCounts[status]
		distribution = append(distribution, StatusCount{
			Status:     string(status),
			Count:      count,
			Percentage: round2(rate(float64(count), float64(total))),
		})
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	delivered := statusCounts[domain.OrderStatusDelivered]
	canceled := statusCounts[domain.OrderStatusCanceled]
	returned := statusCounts[domain.OrderStatusReturned]

	m := &OperationalMetrics{
		StatusDistribution: distribution,
		FulfillmentRate:    round2(rate(float64(delivered), float64(total))),
		CancellationRate:   round2(rate(float64(canceled), float64(total))),
		ReturnRate:         round2(rate(float64(returned), float64(delivered))),
		TotalRows:          total,
		DeliveredRows:      delivered,
	}

	c.logger.DebugContext(ctx, "operational metrics calculated",
		"total_rows", total,
		"fulfillment_rate", m.FulfillmentRate,
	)

	return m, nil
}

// ExecutiveSummary composes all five metric groups and the top category and
// state. It fails with an empty-dataset error when either breakdown has no
// groups: there is no well-defined top of an empty set.
func (c *Calculator) ExecutiveSummary(ctx context.Context, comparison []domain.OrderRecord) (*ExecutiveSummary, error) {
	revenue, err := c.RevenueMetrics(ctx, comparison)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	product, err := c.ProductMetrics(ctx)
	if err != nil {
		return nil, err
	}

	geographic, err := c.GeographicMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	experience, err := c.CustomerExperienceMetrics(ctx)
	if err != nil {
		return nil, err
	}

	operational, err := c.OperationalMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if len(product.CategoryMetrics) == 0 {
		return nil, apperrors.NewEmptyDatasetError("top category")
	}
	if len(geographic.StateMetrics) == 0 {
		return nil, apperrors.NewEmptyDatasetError("top state")
	}

	topCategory := product.CategoryMetrics[0]
	topState := geographic.StateMetrics[0]

	return &ExecutiveSummary{
		Revenue:     revenue,
		Product:     product,
		Geographic:  geographic,
		Experience:  experience,
		Operational: operational,
		TopCategory: TopGroup{Name: topCategory.Key, Revenue: topCategory.TotalRevenue},
		TopState:    TopGroup{Name: topState.State, Revenue: topState.TotalRevenue},
	}, nil
}

// groupRevenue groups delivered rows by an extracted key, computing revenue
// sum, item count, and mean price per group, sorted descending by revenue
// with insertion order breaking ties.
func groupRevenue(records []domain.OrderRecord, key func(*domain.OrderRecord) (string, bool)) []GroupRevenue {
	type agg struct {
		revenue float64
		items   int
	}

	groups := make(map[string]*agg)
	order := make([]string, 0)

	for i := range records {
		k, ok := key(&records[i])
		if !ok {
			continue
		}
		g, exists := groups[k]
		if !exists {
			g = &agg{}
			groups[k] = g
			order = append(order, k)
		}
		g.revenue += records[i].Price
		g.items++
	}

	result := make([]GroupRevenue, 0, len(groups))
	for _, k := range order {
		g := groups[k]
		result = append(result, GroupRevenue{
			Key:          k,
			TotalRevenue: round2(g.revenue),
			ItemCount:    g.items,
			AvgPrice:     round2(g.revenue / float64(g.items)),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalRevenue > result[j].TotalRevenue
	})

	return result
}

// monthlyTrend groups delivered rows by (year, month), ascending, with a
// zero-padded "YYYY-MM" label per point.
func monthlyTrend(records []domain.OrderRecord) []TrendPoint {
	type ym struct {
		year, month int
	}

	sums := make(map[ym]float64)
	for _, r := range records {
		if r.OrderYear == 0 {
			continue
		}
		sums[ym{r.OrderYear, r.OrderMonth}] += r.Price
	}

	keys := make([]ym, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	trend := make([]TrendPoint, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, TrendPoint{
			Year:    k.year,
			Month:   k.month,
			Label:   monthLabel(k.year, k.month),
			Revenue: sums[k],
		})
	}
	return trend
}
