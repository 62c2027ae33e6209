package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"shopmetrics/internal/config"
	apperrors "shopmetrics/internal/errors"
	"shopmetrics/pkg/contracts/domain"
)

// Timestamp layouts accepted in the source CSVs, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// progressLogInterval throttles per-file progress lines for large tables.
const progressLogInterval = 2 * time.Second

// Loader reads the six raw CSV tables from a source directory.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads all six source tables concurrently and returns them typed.
// A missing or unreadable file fails the whole load with a missing-source
// error; malformed field values degrade to null without failing the row.
func (l *Loader) Load(ctx context.Context, sourceDir string) (*Tables, error) {
	start := time.Now()
	tables := &Tables{}

	l.logger.InfoContext(ctx, "loading dataset",
		"source_dir", sourceDir,
		"tables", len(config.SourceFiles),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "orders", config.OrdersFile, parseOrder)
		tables.Orders = rows
		return err
	})
	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "items", config.ItemsFile, parseOrderItem)
		tables.Items = rows
		return err
	})
	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "products", config.ProductsFile, parseProduct)
		tables.Products = rows
		return err
	})
	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "customers", config.CustomersFile, parseCustomer)
		tables.Customers = rows
		return err
	})
	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "reviews", config.ReviewsFile, parseReview)
		tables.Reviews = rows
		return err
	})
	g.Go(func() error {
		rows, err := readTable(gctx, l, sourceDir, "payments", config.PaymentsFile, parsePayment)
		tables.Payments = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		"orders", len(tables.Orders),
		"items", len(tables.Items),
		"products", len(tables.Products),
		"customers", len(tables.Customers),
		"reviews", len(tables.Reviews),
		"payments", len(tables.Payments),
		"duration", time.Since(start),
	)

	return tables, nil
}

// readTable reads one CSV file, mapping each data row through parse.
// Rows whose parse reports a skip are dropped silently; structural CSV
// errors abort the table. A free function because methods cannot carry
// type parameters.
func readTable[T any](ctx context.Context, l *Loader, sourceDir, table, fileName string, parse func(header map[string]int, row []string) (T, bool)) ([]T, error) {
	path := filepath.Join(sourceDir, fileName)

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewMissingSourceError(table, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewMissingSourceError(table, path, fmt.Errorf("read header: %w", err))
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}

	limiter := rate.NewLimiter(rate.Every(progressLogInterval), 1)

	var rows []T
	lineNo := 1
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("malformed CSV in %s at line %d", fileName, lineNo+1), err)
		}
		lineNo++

		row, ok := parse(header, record)
		if !ok {
			continue
		}
		rows = append(rows, row)

		if limiter.Allow() {
			l.logger.DebugContext(ctx, "table load progress",
				"table", table,
				"rows", len(rows),
			)
		}
	}

	l.logger.DebugContext(ctx, "table loaded",
		"table", table,
		"rows", len(rows),
	)

	return rows, nil
}

// field returns the trimmed value of a named column, or "" when the column
// is absent from the header or the row is short.
func field(header map[string]int, row []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseTimestamp coerces a source timestamp string. Malformed or empty
// values become the zero time rather than failing the row.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseFloat coerces a decimal field; malformed values become 0.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}

// parseInt coerces an integer field; malformed values become 0.
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	// review scores arrive as "4.0" in some exports
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseOrder(header map[string]int, row []string) (domain.Order, bool) {
	id := field(header, row, "order_id")
	if id == "" {
		return domain.Order{}, false
	}
	return domain.Order{
		OrderID:               id,
		CustomerID:            field(header, row, "customer_id"),
		Status:                domain.OrderStatus(field(header, row, "order_status")),
		PurchaseTimestamp:     parseTimestamp(field(header, row, "order_purchase_timestamp")),
		DeliveredCustomerDate: parseTimestamp(field(header, row, "order_delivered_customer_date")),
		EstimatedDeliveryDate: parseTimestamp(field(header, row, "order_estimated_delivery_date")),
	}, true
}

func parseOrderItem(header map[string]int, row []string) (domain.OrderItem, bool) {
	id := field(header, row, "order_id")
	if id == "" {
		return domain.OrderItem{}, false
	}
	return domain.OrderItem{
		OrderID:      id,
		OrderItemID:  parseInt(field(header, row, "order_item_id")),
		ProductID:    field(header, row, "product_id"),
		Price:        parseFloat(field(header, row, "price")),
		FreightValue: parseFloat(field(header, row, "freight_value")),
	}, true
}

func parseProduct(header map[string]int, row []string) (domain.Product, bool) {
	id := field(header, row, "product_id")
	if id == "" {
		return domain.Product{}, false
	}
	return domain.Product{
		ProductID:    id,
		CategoryName: field(header, row, "product_category_name"),
	}, true
}

func parseCustomer(header map[string]int, row []string) (domain.Customer, bool) {
	id := field(header, row, "customer_id")
	if id == "" {
		return domain.Customer{}, false
	}
	return domain.Customer{
		CustomerID: id,
		City:       field(header, row, "customer_city"),
		State:      field(header, row, "customer_state"),
	}, true
}

func parseReview(header map[string]int, row []string) (domain.Review, bool) {
	orderID := field(header, row, "order_id")
	if orderID == "" {
		return domain.Review{}, false
	}
	return domain.Review{
		ReviewID: field(header, row, "review_id"),
		OrderID:  orderID,
		Score:    parseInt(field(header, row, "review_score")),
	}, true
}

func parsePayment(header map[string]int, row []string) (domain.Payment, bool) {
	orderID := field(header, row, "order_id")
	if orderID == "" {
		return domain.Payment{}, false
	}
	return domain.Payment{
		OrderID:      orderID,
		Sequential:   parseInt(field(header, row, "payment_sequential")),
		Type:         field(header, row, "payment_type"),
		Installments: parseInt(field(header, row, "payment_installments")),
		Value:        parseFloat(field(header, row, "payment_value")),
	}, true
}
