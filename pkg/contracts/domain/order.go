package domain

import (
	"time"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusDelivered   OrderStatus = "delivered"
	OrderStatusCanceled    OrderStatus = "canceled"
	OrderStatusReturned    OrderStatus = "returned"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusProcessing  OrderStatus = "processing"
	OrderStatusInvoiced    OrderStatus = "invoiced"
	OrderStatusCreated     OrderStatus = "created"
	OrderStatusApproved    OrderStatus = "approved"
	OrderStatusUnavailable OrderStatus = "unavailable"
)

// Order represents one row of the orders source table.
// Missing or malformed timestamps are carried as the zero time.
type Order struct {
	OrderID               string      `json:"order_id"`
	CustomerID            string      `json:"customer_id"`
	Status                OrderStatus `json:"order_status"`
	PurchaseTimestamp     time.Time   `json:"order_purchase_timestamp"`
	DeliveredCustomerDate time.Time   `json:"order_delivered_customer_date,omitempty"`
	EstimatedDeliveryDate time.Time   `json:"order_estimated_delivery_date,omitempty"`
}

// OrderItem represents one row of the order_items source table
type OrderItem struct {
	OrderID      string  `json:"order_id"`
	OrderItemID  int     `json:"order_item_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// Product represents one row of the products source table
type Product struct {
	ProductID    string `json:"product_id"`
	CategoryName string `json:"product_category_name"`
}

// Customer represents one row of the customers source table
type Customer struct {
	CustomerID string `json:"customer_id"`
	City       string `json:"customer_city"`
	State      string `json:"customer_state"`
}

// Review represents one row of the reviews source table
type Review struct {
	ReviewID string `json:"review_id"`
	OrderID  string `json:"order_id"`
	Score    int    `json:"review_score"`
}

// Payment represents one row of the payments source table.
// Payments are loaded and summarized but feed no metric; the table is
// required so a partial export of the dataset fails loudly.
type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}
