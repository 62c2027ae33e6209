package dataset

import (
	"shopmetrics/pkg/contracts/domain"
)

// Join denormalizes the source tables into one order-record set: one row
// per (order, line item).
//
// The inner join of orders and items runs first and establishes the
// revenue-bearing backbone. Items without an order and orders without
// items are dropped on purpose, since neither contributes revenue. The
// left joins against products, customers, and reviews then enrich the
// backbone without ever removing rows from it. When an order carries
// several review rows the first occurrence with a valid score wins,
// keeping the score a single per-order attribute.
func Join(tables *Tables) []domain.OrderRecord {
	ordersByID := make(map[string]*domain.Order, len(tables.Orders))
	for i := range tables.Orders {
		ordersByID[tables.Orders[i].OrderID] = &tables.Orders[i]
	}

	productsByID := make(map[string]*domain.Product, len(tables.Products))
	for i := range tables.Products {
		productsByID[tables.Products[i].ProductID] = &tables.Products[i]
	}

	customersByID := make(map[string]*domain.Customer, len(tables.Customers))
	for i := range tables.Customers {
		customersByID[tables.Customers[i].CustomerID] = &tables.Customers[i]
	}

	reviewScores := make(map[string]int, len(tables.Reviews))
	for _, review := range tables.Reviews {
		if review.Score < 1 || review.Score > 5 {
			continue // blank or out-of-range score, same as no review
		}
		if _, seen := reviewScores[review.OrderID]; seen {
			continue
		}
		reviewScores[review.OrderID] = review.Score
	}

	records := make([]domain.OrderRecord, 0, len(tables.Items))
	for _, item := range tables.Items {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			continue // orphan item, no revenue-bearing order behind it
		}

		record := domain.OrderRecord{
			OrderID:           order.OrderID,
			Status:            order.Status,
			PurchaseTimestamp: order.PurchaseTimestamp,
			DeliveryDays:      DeliveryDays(order.PurchaseTimestamp, order.DeliveredCustomerDate),
			ProductID:         item.ProductID,
			Price:             item.Price,
			FreightValue:      item.FreightValue,
			TotalItemValue:    item.Price + item.FreightValue,
		}

		if !order.PurchaseTimestamp.IsZero() {
			record.OrderYear = order.PurchaseTimestamp.Year()
			record.OrderMonth = int(order.PurchaseTimestamp.Month())
		}

		if product, ok := productsByID[item.ProductID]; ok {
			record.CategoryClean = CleanCategory(product.CategoryName)
		}

		if customer, ok := customersByID[order.CustomerID]; ok {
			record.CustomerState = customer.State
			record.CustomerCity = customer.City
		}

		if score, ok := reviewScores[order.OrderID]; ok {
			s := score
			record.ReviewScore = &s
		}

		records = append(records, record)
	}

	return records
}
