package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/config"
	apperrors "shopmetrics/internal/errors"
)

// writeSourceDir writes all six source tables; override replaces the
// content of named files before writing.
func writeSourceDir(t *testing.T, override map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	sources := map[string]string{
		config.OrdersFile: "order_id,customer_id,order_status,order_purchase_timestamp,order_delivered_customer_date,order_estimated_delivery_date\n" +
			"O1,C1,delivered,2017-03-05 10:00:00,2017-03-10 16:00:00,2017-03-15 00:00:00\n" +
			"O2,C2,canceled,2017-03-18 14:00:00,,2017-03-28 00:00:00\n",
		config.ItemsFile: "order_id,order_item_id,product_id,price,freight_value\n" +
			"O1,1,P1,30.00,5.00\n" +
			"O1,2,P2,20.00,5.00\n" +
			"O2,1,P2,100.00,10.00\n",
		config.ProductsFile: "product_id,product_category_name\n" +
			"P1,informatica_acessorios\n" +
			"P2,\n",
		config.CustomersFile: "customer_id,customer_city,customer_state\n" +
			"C1,sao paulo,SP\n" +
			"C2,rio de janeiro,RJ\n",
		config.ReviewsFile: "review_id,order_id,review_score\n" +
			"R1,O1,4.0\n",
		config.PaymentsFile: "order_id,payment_sequential,payment_type,payment_installments,payment_value\n" +
			"O1,1,credit_card,2,60.00\n" +
			"O2,1,boleto,1,110.00\n",
	}
	for name, content := range override {
		sources[name] = content
	}
	for name, content := range sources {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeSourceDir(t, nil)
	loader := NewLoader(nil)

	tables, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, tables.Orders, 2)
	require.Len(t, tables.Items, 3)
	require.Len(t, tables.Products, 2)
	require.Len(t, tables.Customers, 2)
	require.Len(t, tables.Reviews, 1)
	require.Len(t, tables.Payments, 2)
	assert.Equal(t, 10, tables.RowCount())

	o1 := tables.Orders[0]
	assert.Equal(t, "O1", o1.OrderID)
	assert.Equal(t, time.Date(2017, 3, 5, 10, 0, 0, 0, time.UTC), o1.PurchaseTimestamp)
	assert.False(t, o1.DeliveredCustomerDate.IsZero())

	// the empty delivered date coerces to the zero time, not an error
	o2 := tables.Orders[1]
	assert.True(t, o2.DeliveredCustomerDate.IsZero())

	assert.InDelta(t, 30.0, tables.Items[0].Price, 1e-9)
	assert.InDelta(t, 5.0, tables.Items[0].FreightValue, 1e-9)

	// "4.0" style scores parse as integers
	assert.Equal(t, 4, tables.Reviews[0].Score)

	assert.Equal(t, "credit_card", tables.Payments[0].Type)
	assert.Equal(t, 2, tables.Payments[0].Installments)
}

func TestLoad_MissingTable(t *testing.T) {
	dir := writeSourceDir(t, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, config.PaymentsFile)))

	_, err := NewLoader(nil).Load(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingSource(err))
}

func TestLoad_MalformedTimestampDegradesToNull(t *testing.T) {
	dir := writeSourceDir(t, map[string]string{
		config.OrdersFile: "order_id,customer_id,order_status,order_purchase_timestamp,order_delivered_customer_date,order_estimated_delivery_date\n" +
			"O1,C1,delivered,not-a-date,2017-03-10 16:00:00,2017-03-15 00:00:00\n",
	})

	tables, err := NewLoader(nil).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, tables.Orders, 1)
	assert.True(t, tables.Orders[0].PurchaseTimestamp.IsZero())
	assert.False(t, tables.Orders[0].DeliveredCustomerDate.IsZero())
}

func TestLoad_RowsWithoutKeyAreSkipped(t *testing.T) {
	dir := writeSourceDir(t, map[string]string{
		config.ItemsFile: "order_id,order_item_id,product_id,price,freight_value\n" +
			",1,P1,30.00,5.00\n" +
			"O1,1,P1,30.00,5.00\n",
	})

	tables, err := NewLoader(nil).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, tables.Items, 1)
	assert.Equal(t, "O1", tables.Items[0].OrderID)
}

func TestLoad_BOMHeader(t *testing.T) {
	dir := writeSourceDir(t, map[string]string{
		config.ProductsFile: "\uFEFFproduct_id,product_category_name\n" +
			"P1,beleza_saude\n",
	})

	tables, err := NewLoader(nil).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, tables.Products, 1)
	assert.Equal(t, "P1", tables.Products[0].ProductID)
}

func TestLoad_CanceledContext(t *testing.T) {
	dir := writeSourceDir(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseTimestampLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2017-03-05 10:00:00", time.Date(2017, 3, 5, 10, 0, 0, 0, time.UTC)},
		{"2017-03-05T10:00:00", time.Date(2017, 3, 5, 10, 0, 0, 0, time.UTC)},
		{"2017-03-05", time.Date(2017, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"05/03/2017", time.Time{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseTimestamp(tt.in), "input %q", tt.in)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 4, parseInt("4"))
	assert.Equal(t, 4, parseInt("4.0"))
	assert.Equal(t, 0, parseInt(""))
	assert.Equal(t, 0, parseInt("n/a"))
}

func TestParseFloat(t *testing.T) {
	assert.InDelta(t, 30.5, parseFloat("30.5"), 1e-9)
	assert.InDelta(t, 1250.0, parseFloat("1,250.00"), 1e-9)
	assert.Equal(t, 0.0, parseFloat(""))
	assert.Equal(t, 0.0, parseFloat("abc"))
}
