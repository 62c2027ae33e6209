package domain

import (
	"time"
)

// OrderRecord is one row of the denormalized record set: one order line item
// enriched with its order, product, customer, and review attributes. Orders
// with several items produce several records sharing the same OrderID, and
// per-order attributes (status, timestamps, review score) are replicated
// across those rows.
type OrderRecord struct {
	OrderID           string      `json:"order_id"`
	Status            OrderStatus `json:"order_status"`
	PurchaseTimestamp time.Time   `json:"order_purchase_timestamp"`
	OrderYear         int         `json:"order_year"`
	OrderMonth        int         `json:"order_month"`

	// DeliveryDays is nil unless both the purchase and the
	// delivered-customer timestamps were present in the source.
	DeliveryDays *int `json:"delivery_days,omitempty"`

	ProductID     string `json:"product_id"`
	CategoryClean string `json:"category_clean,omitempty"`

	CustomerState string `json:"customer_state,omitempty"`
	CustomerCity  string `json:"customer_city,omitempty"`

	Price          float64 `json:"price"`
	FreightValue   float64 `json:"freight_value"`
	TotalItemValue float64 `json:"total_item_value"`

	// ReviewScore is per-order, replicated across the order's item rows
	// by the join; nil when the order has no review.
	ReviewScore *int `json:"review_score,omitempty"`
}

// IsDelivered reports whether the record counts toward revenue, product,
// geographic, and customer-experience metrics.
func (r *OrderRecord) IsDelivered() bool {
	return r.Status == OrderStatusDelivered
}

// HasPurchaseTimestamp reports whether the purchase timestamp survived
// type coercion.
func (r *OrderRecord) HasPurchaseTimestamp() bool {
	return !r.PurchaseTimestamp.IsZero()
}
