package config

import "time"

// Application constants for the shopmetrics pipeline
const (
	// Application Info
	AppName = "shopmetrics"

	// Source table file names, fixed by the dataset export format
	OrdersFile    = "orders_dataset.csv"
	ItemsFile     = "order_items_dataset.csv"
	ProductsFile  = "products_dataset.csv"
	CustomersFile = "customers_dataset.csv"
	ReviewsFile   = "order_reviews_dataset.csv"
	PaymentsFile  = "order_payments_dataset.csv"

	// Default Paths
	DefaultReportsDir = "reports"
	DefaultLogFile    = "logs/shopmetrics.log"

	// Cache Settings
	DefaultCacheMaxEntries = 8

	// Timeouts
	DefaultLoadTimeout   = 5 * time.Minute
	DefaultExportTimeout = 2 * time.Minute
	SheetsUploadTimeout  = 45 * time.Second
)

// SourceFiles lists the required tables in load order, keyed by logical
// table name
var SourceFiles = map[string]string{
	"orders":    OrdersFile,
	"items":     ItemsFile,
	"products":  ProductsFile,
	"customers": CustomersFile,
	"reviews":   ReviewsFile,
	"payments":  PaymentsFile,
}
