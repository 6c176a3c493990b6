package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golfwear-extractor/internal/types"
)

// ScrapeFunc is the per-product scrape operation a batch run drives. The
// detail scraper satisfies it; tests substitute a stub.
type ScrapeFunc func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult

// BatchOptions control one batch run.
type BatchOptions struct {
	// Limit caps the number of products processed; zero means no cap.
	Limit int
	// Concurrent is the worker count; values below one run sequentially.
	Concurrent int
	// Delay spaces out scrape launches as backpressure against the site.
	Delay time.Duration
	// Retry is the number of additional attempts for a failed product.
	Retry int
}

// BatchRunner runs the detail pipeline over a product list, isolating
// per-product failures so one broken page never aborts the run.
type BatchRunner struct {
	scrape ScrapeFunc
	logger types.Logger
}

// NewBatchRunner creates a batch runner around a scrape operation.
func NewBatchRunner(scrape ScrapeFunc, logger types.Logger) *BatchRunner {
	return &BatchRunner{scrape: scrape, logger: logger}
}

// LoadBatchItems parses a product list from any of the tolerated input
// shapes: a bare URL array, an object array with url/productUrl/id fields, or
// a wrapper object with a products field.
func LoadBatchItems(data []byte) ([]types.BatchItem, error) {
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		items := make([]types.BatchItem, 0, len(urls))
		for _, u := range urls {
			items = append(items, types.BatchItem{URL: u})
		}
		return items, nil
	}

	var objects []rawBatchItem
	if err := json.Unmarshal(data, &objects); err == nil {
		return normalizeItems(objects)
	}

	var wrapper struct {
		Products []rawBatchItem `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Products != nil {
		return normalizeItems(wrapper.Products)
	}

	return nil, fmt.Errorf("unrecognized batch input shape")
}

// rawBatchItem tolerates the field name drift across older input files.
type rawBatchItem struct {
	URL         string            `json:"url"`
	ProductURL  string            `json:"productUrl"`
	ID          string            `json:"id"`
	ProductID   string            `json:"productId"`
	StockStatus types.StockStatus `json:"stockStatus"`
}

func normalizeItems(raw []rawBatchItem) ([]types.BatchItem, error) {
	items := make([]types.BatchItem, 0, len(raw))
	for _, r := range raw {
		url := r.URL
		if url == "" {
			url = r.ProductURL
		}
		if url == "" {
			continue
		}
		id := r.ProductID
		if id == "" {
			id = r.ID
		}
		items = append(items, types.BatchItem{URL: url, ProductID: id, StockStatus: r.StockStatus})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no product URLs found in batch input")
	}
	return items, nil
}

// Run scrapes every batch item with the configured concurrency, delay, and
// per-item retry. Items already flagged fully out-of-stock by a prior pass
// are skipped. Failed items land in the summary's errors list; the run
// itself never aborts because of one product.
func (b *BatchRunner) Run(ctx context.Context, items []types.BatchItem, opts BatchOptions) ([]types.DetailResult, types.BatchSummary) {
	startTime := time.Now()

	var pending []types.BatchItem
	skipped := 0
	for _, item := range items {
		if item.StockStatus == types.StatusOutOfStock {
			b.logger.Debugf("Skipping %s: already fully out of stock", item.URL)
			skipped++
			continue
		}
		pending = append(pending, item)
	}
	if opts.Limit > 0 && len(pending) > opts.Limit {
		pending = pending[:opts.Limit]
	}

	workers := opts.Concurrent
	if workers < 1 {
		workers = 1
	}
	b.logger.Infof("Starting batch: %d products (%d skipped), %d workers", len(pending), skipped, workers)

	results := make([]types.DetailResult, len(pending))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, item := range pending {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item types.BatchItem) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = b.scrapeWithRetry(ctx, item, opts.Retry)
		}(i, item)

		// No spacing after the last launch, and cancellation cuts the
		// wait short instead of sleeping through it.
		if opts.Delay > 0 && i < len(pending)-1 {
			select {
			case <-time.After(opts.Delay):
			case <-ctx.Done():
			}
		}
	}
	wg.Wait()

	summary := types.BatchSummary{
		Total:    len(items),
		Skipped:  skipped,
		ByStatus: make(map[types.StockStatus]int),
		Elapsed:  time.Since(startTime).Round(time.Millisecond).String(),
	}
	for _, result := range results {
		if result.URL == "" {
			continue // slot never ran due to cancellation
		}
		if result.Success {
			summary.Succeeded++
			summary.ByStatus[result.StockStatus]++
		} else {
			summary.Failed++
			summary.Errors = append(summary.Errors, types.BatchError{URL: result.URL, Error: result.Error})
		}
	}

	b.logger.Infof("Batch completed in %s: %d succeeded, %d failed, %d skipped",
		summary.Elapsed, summary.Succeeded, summary.Failed, summary.Skipped)
	return results, summary
}

// scrapeWithRetry retries a failed product up to the configured count,
// spacing attempts by a second.
func (b *BatchRunner) scrapeWithRetry(ctx context.Context, item types.BatchItem, retries int) types.DetailResult {
	hints := types.ScrapeHints{ProductID: item.ProductID}

	result := b.scrape(ctx, item.URL, hints)
	for attempt := 1; attempt <= retries && !result.Success && ctx.Err() == nil; attempt++ {
		b.logger.Warnf("Retrying %s (attempt %d/%d): %s", item.URL, attempt, retries, result.Error)
		time.Sleep(time.Second)
		result = b.scrape(ctx, item.URL, hints)
	}
	return result
}
