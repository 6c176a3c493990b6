// Package extractor sequences page load, metadata extraction, and the
// inventory pipeline into per-product results, and runs batches of products
// with bounded concurrency.
package extractor

import (
	"context"
	"strings"
	"time"

	"golfwear-extractor/adapters"
	"golfwear-extractor/internal/types"
	"golfwear-extractor/inventory"
	"golfwear-extractor/utils"
)

// SoldOutMarker prefixes the display title of fully out-of-stock products.
// The downstream publishing pipeline keys off this exact token.
const SoldOutMarker = "【完売】"

// DetailScraper orchestrates one detail-page scrape per call. It holds no
// per-call state: every call allocates a fresh browser session and returns an
// immutable result.
type DetailScraper struct {
	profile *adapters.Profile
	config  *types.Config
	logger  types.Logger
}

// NewDetailScraper creates a detail scraper for one storefront profile.
func NewDetailScraper(profile *adapters.Profile, config *types.Config, logger types.Logger) *DetailScraper {
	return &DetailScraper{profile: profile, config: config, logger: logger}
}

// ScrapeDetailPage loads a product detail page and extracts metadata, images,
// size/color tokens, and the variant inventory, in that fixed order.
//
// Only the initial page load is fatal: it produces a Success=false result.
// Everything downstream degrades to empty or partial data with a logged
// warning. The browser session is released on every exit path.
func (d *DetailScraper) ScrapeDetailPage(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
	startTime := time.Now()
	result := types.DetailResult{
		URL:              url,
		Brand:            d.profile.Brand,
		VariantInventory: []types.VariantRecord{},
		StockStatus:      types.StatusUnknown,
		ScrapedAt:        startTime,
	}

	session, err := utils.NewBrowserSession(ctx, d.config, d.logger)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer session.Close()

	if err := session.Navigate(ctx, url); err != nil {
		d.logger.Warnf("Page load failed for %s: %v", url, err)
		result.Error = err.Error()
		return result
	}

	page := adapters.NewBrandPage(d.profile, session, d.logger)

	result.ProductID = d.profile.ProductID(url)
	if result.ProductID == "" {
		result.ProductID = hints.ProductID
	}

	meta, err := page.ExtractMetadata(ctx)
	if err != nil {
		d.logger.Warnf("Metadata extraction failed for %s: %v", url, err)
	}
	result.Title = meta.Title
	result.Price = meta.Price
	result.Images = meta.Images
	result.Sizes = meta.Sizes
	result.SizeChart = meta.SizeChart

	records, err := inventory.NewDriver(d.logger).Run(ctx, page)
	if err != nil {
		// The page itself loaded, so this degrades to empty inventory
		// rather than failing the scrape.
		d.logger.Warnf("Inventory extraction failed for %s: %v", url, err)
	}
	if records != nil {
		result.VariantInventory = records
	}

	summary := inventory.Summarize(result.VariantInventory)
	result.StockStatus = summary.OverallStatus
	result.Colors = colorNames(result.VariantInventory)

	if result.StockStatus == types.StatusOutOfStock {
		result.Title = MarkSoldOut(result.Title)
	}

	result.Success = true
	d.logger.Infof("Scraped %s in %v: %d variants, status %s",
		url, time.Since(startTime), summary.TotalVariants, result.StockStatus)
	return result
}

// MarkSoldOut prefixes a product title with the sold-out marker exactly once.
func MarkSoldOut(title string) string {
	if strings.HasPrefix(title, SoldOutMarker) {
		return title
	}
	return SoldOutMarker + title
}

// colorNames lists the distinct colors present in the variant table, in
// record order.
func colorNames(records []types.VariantRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		if !seen[rec.Color] {
			seen[rec.Color] = true
			names = append(names, rec.Color)
		}
	}
	return names
}
