package dataset

import (
	"time"

	"shopmetrics/pkg/contracts/domain"
)

// Summarize builds the per-table dataset summary: row and column counts,
// missing-value counts per column, and the purchase-timestamp range
// observed in the orders table.
func Summarize(tables *Tables, sourceDir string) *domain.DatasetSummary {
	summary := &domain.DatasetSummary{
		GeneratedAt: time.Now(),
		SourceDir:   sourceDir,
	}

	ordersMissing := map[string]int{}
	var dateFrom, dateTo time.Time
	for _, o := range tables.Orders {
		if o.PurchaseTimestamp.IsZero() {
			ordersMissing["order_purchase_timestamp"]++
		} else {
			if dateFrom.IsZero() || o.PurchaseTimestamp.Before(dateFrom) {
				dateFrom = o.PurchaseTimestamp
			}
			if dateTo.IsZero() || o.PurchaseTimestamp.After(dateTo) {
				dateTo = o.PurchaseTimestamp
			}
		}
		if o.DeliveredCustomerDate.IsZero() {
			ordersMissing["order_delivered_customer_date"]++
		}
		if o.EstimatedDeliveryDate.IsZero() {
			ordersMissing["order_estimated_delivery_date"]++
		}
		if o.Status == "" {
			ordersMissing["order_status"]++
		}
	}
	summary.DateFrom = dateFrom
	summary.DateTo = dateTo

	itemsMissing := map[string]int{}
	for _, it := range tables.Items {
		if it.ProductID == "" {
			itemsMissing["product_id"]++
		}
	}

	productsMissing := map[string]int{}
	for _, p := range tables.Products {
		if p.CategoryName == "" {
			productsMissing["product_category_name"]++
		}
	}

	customersMissing := map[string]int{}
	for _, c := range tables.Customers {
		if c.State == "" {
			customersMissing["customer_state"]++
		}
		if c.City == "" {
			customersMissing["customer_city"]++
		}
	}

	reviewsMissing := map[string]int{}
	for _, r := range tables.Reviews {
		if r.Score < 1 || r.Score > 5 {
			reviewsMissing["review_score"]++
		}
	}

	paymentsMissing := map[string]int{}
	for _, p := range tables.Payments {
		if p.Type == "" {
			paymentsMissing["payment_type"]++
		}
	}

	summary.Tables = []domain.TableSummary{
		{Name: "orders", Rows: len(tables.Orders), Columns: 6, MissingValues: prune(ordersMissing)},
		{Name: "items", Rows: len(tables.Items), Columns: 5, MissingValues: prune(itemsMissing)},
		{Name: "products", Rows: len(tables.Products), Columns: 2, MissingValues: prune(productsMissing)},
		{Name: "customers", Rows: len(tables.Customers), Columns: 3, MissingValues: prune(customersMissing)},
		{Name: "reviews", Rows: len(tables.Reviews), Columns: 3, MissingValues: prune(reviewsMissing)},
		{Name: "payments", Rows: len(tables.Payments), Columns: 5, MissingValues: prune(paymentsMissing)},
	}

	return summary
}

// prune drops the map entirely when no column has missing values, keeping
// the JSON output free of empty objects.
func prune(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	return m
}
