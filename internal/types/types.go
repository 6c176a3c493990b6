package types

import "time"

// StockLevel is the per-size availability reading taken from a product page.
// The string values are fixed: the downstream publishing pipeline keys off them.
type StockLevel string

const (
	StockNormal StockLevel = "normal" // in stock
	StockLittle StockLevel = "little" // low stock (△)
	StockOOS    StockLevel = "oos"    // out of stock
)

// StockStatus is the aggregate availability classification across all variants
// of one product.
type StockStatus string

const (
	StatusInStock      StockStatus = "in_stock"
	StatusPartialStock StockStatus = "partial_stock"
	StatusOutOfStock   StockStatus = "out_of_stock"
	StatusUnknown      StockStatus = "unknown"
)

// ColorOption describes one color control discovered on a product detail page.
type ColorOption struct {
	// Index is the ordinal position among discovered color controls.
	Index int
	// DOMIndex is the element's position in the full swatch node list,
	// including nodes the color filter rejects. In-page click activation
	// addresses swatches by this index, not by Index: the two diverge as
	// soon as a chrome label or duplicate name is filtered out.
	DOMIndex int
	// DisplayName is the human-readable label with embedded codes stripped,
	// e.g. "ネイビー" for a raw label of "ネイビー（NV00）".
	DisplayName string
	// RawLabel is the original unstripped label.
	RawLabel string
	// IsCurrent reports whether this color is the one currently rendered.
	IsCurrent bool
	// NavigationTarget is the URL or in-page selector used to bring this
	// color into view. Empty for the currently rendered color.
	NavigationTarget string
}

// SizeStockReading is one per-size availability reading for the currently
// active color.
type SizeStockReading struct {
	Size    string     `json:"size"`
	Status  StockLevel `json:"status"`
	InStock bool       `json:"inStock"`
}

// NewReading builds a SizeStockReading with InStock derived from the status,
// keeping the two fields consistent.
func NewReading(size string, status StockLevel) SizeStockReading {
	return SizeStockReading{
		Size:    size,
		Status:  status,
		InStock: status != StockOOS,
	}
}

// VariantRecord is one reconciled (color, size) inventory entry. Within one
// extraction run at most one record exists per (color, size) pair.
type VariantRecord struct {
	Color   string     `json:"color"`
	Size    string     `json:"size"`
	InStock bool       `json:"inStock"`
	Status  StockLevel `json:"status"`
}

// InventorySummary is derived from the final VariantRecord collection.
type InventorySummary struct {
	TotalVariants   int         `json:"totalVariants"`
	InStockCount    int         `json:"inStockCount"`
	OutOfStockCount int         `json:"outOfStockCount"`
	OverallStatus   StockStatus `json:"overallStatus"`
}

// SizeChart represents a product size chart table. It doubles as the fallback
// source of size tokens when the primary size controls yield none.
type SizeChart struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// DetailResult is the immutable outcome of one detail-page scrape. Field names
// variantInventory and stockStatus are part of the output contract.
type DetailResult struct {
	Success          bool            `json:"success"`
	URL              string          `json:"url"`
	ProductID        string          `json:"productId,omitempty"`
	Title            string          `json:"title,omitempty"`
	Brand            string          `json:"brand,omitempty"`
	Price            string          `json:"price,omitempty"`
	Images           []string        `json:"images,omitempty"`
	Colors           []string        `json:"colors,omitempty"`
	Sizes            []string        `json:"sizes,omitempty"`
	SizeChart        *SizeChart      `json:"sizeChart,omitempty"`
	VariantInventory []VariantRecord `json:"variantInventory"`
	StockStatus      StockStatus     `json:"stockStatus"`
	ScrapedAt        time.Time       `json:"scrapedAt"`
	Error            string          `json:"error,omitempty"`
}

// ScrapeHints carries optional caller-supplied hints for a detail scrape.
type ScrapeHints struct {
	// ProductID is used when the ID cannot be derived from the URL or page.
	ProductID string
}

// BatchItem is one product entry loaded from a batch input file.
type BatchItem struct {
	URL         string      `json:"url"`
	ProductID   string      `json:"productId,omitempty"`
	StockStatus StockStatus `json:"stockStatus,omitempty"`
}

// BatchSummary is the run summary written alongside batch results.
type BatchSummary struct {
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Skipped   int                 `json:"skipped"`
	ByStatus  map[StockStatus]int `json:"byStatus"`
	Errors    []BatchError        `json:"errors,omitempty"`
	Elapsed   string              `json:"elapsed"`
}

// BatchError records one failed product in a batch run.
type BatchError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Config holds the configuration for the extractor
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	NavigationTimeout     time.Duration
	MaxConcurrentRequests int
	UseHeadlessBrowser    bool
	UserAgent             string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		NavigationTimeout:     15 * time.Second,
		MaxConcurrentRequests: 3,
		UseHeadlessBrowser:    true,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
