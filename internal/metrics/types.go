package metrics

// TrendPoint is one bucket of a revenue trend, ordered chronologically.
type TrendPoint struct {
	Year    int     `json:"year"`
	Month   int     `json:"month,omitempty"`
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// RevenueGrowth holds the period-over-period growth figures, present only
// when a comparison record set was supplied.
type RevenueGrowth struct {
	RevenueGrowth float64 `json:"revenue_growth"`
	OrderGrowth   float64 `json:"order_growth"`
	AOVGrowth     float64 `json:"aov_growth"`
}

// RevenueMetrics is the revenue metric group.
type RevenueMetrics struct {
	TotalRevenue      float64        `json:"total_revenue"`
	TotalOrders       int            `json:"total_orders"`
	TotalItemsSold    int            `json:"total_items_sold"`
	AverageOrderValue float64        `json:"average_order_value"`
	AverageItemPrice  float64        `json:"average_item_price"`
	MonthlyTrend      []TrendPoint   `json:"monthly_revenue_trend"`
	Growth            *RevenueGrowth `json:"growth,omitempty"`
}

// GroupRevenue is one group of a revenue breakdown (category, state, product,
// or city). Share is the group's percentage of the dimension total and is
// only populated where the metric group defines it.
type GroupRevenue struct {
	Key          string  `json:"key"`
	TotalRevenue float64 `json:"total_revenue"`
	ItemCount    int     `json:"item_count"`
	AvgPrice     float64 `json:"avg_price,omitempty"`
	RevenueShare float64 `json:"revenue_share,omitempty"`
}

// StateRevenue is one state group of the geographic breakdown.
type StateRevenue struct {
	State         string  `json:"state"`
	TotalRevenue  float64 `json:"total_revenue"`
	ItemCount     int     `json:"item_count"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	RevenueShare  float64 `json:"revenue_share"`
}

// CityRevenue is one (state, city) group of the geographic breakdown.
type CityRevenue struct {
	State        string  `json:"state"`
	City         string  `json:"city"`
	TotalRevenue float64 `json:"total_revenue"`
	ItemCount    int     `json:"item_count"`
}

// ProductMetrics is the product metric group.
type ProductMetrics struct {
	CategoryRevenue []GroupRevenue `json:"category_revenue"`
	CategoryMetrics []GroupRevenue `json:"category_metrics"`
	TopProducts     []GroupRevenue `json:"top_products"`
	TotalCategories int            `json:"total_categories"`
	TotalProducts   int            `json:"total_products"`
}

// GeographicMetrics is the geographic metric group.
type GeographicMetrics struct {
	StateMetrics []StateRevenue `json:"state_metrics"`
	TopCities    []CityRevenue  `json:"top_cities"`
	TotalStates  int            `json:"total_states"`
	TotalCities  int            `json:"total_cities"`
}

// DeliveryStats summarizes delivery times over rows with a known
// delivery duration.
type DeliveryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// BucketCount is one fixed-edge delivery bucket, reported in label order.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ScoreCount is one review score with its row count, ordered by score.
type ScoreCount struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// ReviewStats summarizes review scores over rows with a known score.
//
// ReviewRate is the item-row-granularity rate the original system reported:
// since scores replicate across an order's item rows it is biased toward
// multi-item orders. ReviewRateOrders is the order-granularity variant;
// callers choose which definition they want.
type ReviewStats struct {
	AverageScore     float64      `json:"average_score"`
	Distribution     []ScoreCount `json:"score_distribution"`
	ReviewedRows     int          `json:"total_reviews"`
	ReviewRate       float64      `json:"review_rate"`
	ReviewRateOrders float64      `json:"review_rate_orders"`
}

// BucketSatisfaction is the mean review score of rows in one delivery
// bucket, reported in label order with empty buckets omitted.
type BucketSatisfaction struct {
	Label    string  `json:"label"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// ExperienceMetrics is the customer-experience metric group.
type ExperienceMetrics struct {
	Delivery               DeliveryStats        `json:"delivery_stats"`
	DeliveryBuckets        []BucketCount        `json:"delivery_distribution"`
	Reviews                ReviewStats          `json:"review_stats"`
	SatisfactionByDelivery []BucketSatisfaction `json:"satisfaction_by_delivery"`
}

// StatusCount is one order status with its row count and percentage of the
// full record set.
type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OperationalMetrics is the operational metric group, computed over the
// full unfiltered record set.
type OperationalMetrics struct {
	StatusDistribution []StatusCount `json:"status_distribution"`
	FulfillmentRate    float64       `json:"fulfillment_rate"`
	CancellationRate   float64       `json:"cancellation_rate"`
	ReturnRate         float64       `json:"return_rate"`
	TotalRows          int           `json:"total_orders"`
	DeliveredRows      int           `json:"delivered_orders"`
}

// TopGroup names the leading group of a breakdown with its revenue.
type TopGroup struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// ExecutiveSummary composes all five metric groups with the headline
// top-category and top-state figures.
type ExecutiveSummary struct {
	Revenue     *RevenueMetrics     `json:"revenue"`
	Product     *ProductMetrics     `json:"product"`
	Geographic  *GeographicMetrics  `json:"geographic"`
	Experience  *ExperienceMetrics  `json:"customer_experience"`
	Operational *OperationalMetrics `json:"operational"`
	TopCategory TopGroup            `json:"top_category"`
	TopState    TopGroup            `json:"top_state"`
}

// PeriodFigures are the headline revenue figures of one period, computed
// standalone for period comparison.
type PeriodFigures struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// PeriodComparison is the result of comparing two disjoint periods:
// absolute and percentage changes for each headline figure, zero-guarded.
type PeriodComparison struct {
	Current  PeriodFigures `json:"current"`
	Previous PeriodFigures `json:"previous"`

	RevenueChange float64 `json:"revenue_change"`
	RevenueGrowth float64 `json:"revenue_growth"`
	OrdersChange  int     `json:"orders_change"`
	OrderGrowth   float64 `json:"order_growth"`
	AOVChange     float64 `json:"aov_change"`
	AOVGrowth     float64 `json:"aov_growth"`
}
