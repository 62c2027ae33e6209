package dataset

import (
	"shopmetrics/pkg/contracts/domain"
)

// Tables holds the six typed source tables produced by Load.
type Tables struct {
	Orders    []domain.Order
	Items     []domain.OrderItem
	Products  []domain.Product
	Customers []domain.Customer
	Reviews   []domain.Review
	Payments  []domain.Payment
}

// RowCount returns the total number of rows across all tables.
func (t *Tables) RowCount() int {
	return len(t.Orders) + len(t.Items) + len(t.Products) +
		len(t.Customers) + len(t.Reviews) + len(t.Payments)
}
