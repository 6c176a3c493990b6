package extractor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golfwear-extractor/internal/types"
)

func testLogger() types.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLoadBatchItems_URLArray(t *testing.T) {
	items, err := LoadBatchItems([]byte(`["https://example.jp/p/1", "https://example.jp/p/2"]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://example.jp/p/1", items[0].URL)
}

func TestLoadBatchItems_ObjectArray(t *testing.T) {
	data := []byte(`[
		{"url": "https://example.jp/p/1", "productId": "A1"},
		{"productUrl": "https://example.jp/p/2", "id": "A2", "stockStatus": "out_of_stock"}
	]`)
	items, err := LoadBatchItems(data)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A1", items[0].ProductID)
	assert.Equal(t, "https://example.jp/p/2", items[1].URL)
	assert.Equal(t, "A2", items[1].ProductID)
	assert.Equal(t, types.StatusOutOfStock, items[1].StockStatus)
}

func TestLoadBatchItems_WrapperObject(t *testing.T) {
	data := []byte(`{"products": [{"url": "https://example.jp/p/1"}]}`)
	items, err := LoadBatchItems(data)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestLoadBatchItems_Unrecognized(t *testing.T) {
	_, err := LoadBatchItems([]byte(`"just a string"`))
	assert.Error(t, err)
}

func TestBatchRunner_SkipsAlreadyOutOfStock(t *testing.T) {
	var mu sync.Mutex
	var scraped []string
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		mu.Lock()
		scraped = append(scraped, url)
		mu.Unlock()
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	items := []types.BatchItem{
		{URL: "https://example.jp/p/1"},
		{URL: "https://example.jp/p/2", StockStatus: types.StatusOutOfStock},
		{URL: "https://example.jp/p/3"},
	}

	runner := NewBatchRunner(scrape, testLogger())
	results, summary := runner.Run(context.Background(), items, BatchOptions{Concurrent: 1})

	assert.Len(t, results, 2)
	assert.NotContains(t, scraped, "https://example.jp/p/2")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 3, summary.Total)
}

func TestBatchRunner_FailuresDoNotAbortRun(t *testing.T) {
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		if url == "https://example.jp/p/2" {
			return types.DetailResult{URL: url, Error: "page load timed out"}
		}
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusPartialStock}
	}

	items := []types.BatchItem{
		{URL: "https://example.jp/p/1"},
		{URL: "https://example.jp/p/2"},
		{URL: "https://example.jp/p/3"},
	}

	runner := NewBatchRunner(scrape, testLogger())
	_, summary := runner.Run(context.Background(), items, BatchOptions{Concurrent: 2})

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "https://example.jp/p/2", summary.Errors[0].URL)
	assert.Equal(t, "page load timed out", summary.Errors[0].Error)
	assert.Equal(t, 2, summary.ByStatus[types.StatusPartialStock])
}

func TestBatchRunner_RetriesFailedProducts(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		mu.Lock()
		attempts++
		n := attempts
		mu.Unlock()
		if n == 1 {
			return types.DetailResult{URL: url, Error: "transient failure"}
		}
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	runner := NewBatchRunner(scrape, testLogger())
	results, summary := runner.Run(context.Background(),
		[]types.BatchItem{{URL: "https://example.jp/p/1"}},
		BatchOptions{Concurrent: 1, Retry: 1})

	assert.Equal(t, 2, attempts)
	assert.True(t, results[0].Success)
	assert.Equal(t, 1, summary.Succeeded)
}

func TestBatchRunner_LimitCapsRun(t *testing.T) {
	var mu sync.Mutex
	count := 0
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		mu.Lock()
		count++
		mu.Unlock()
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	items := []types.BatchItem{
		{URL: "https://example.jp/p/1"},
		{URL: "https://example.jp/p/2"},
		{URL: "https://example.jp/p/3"},
	}

	runner := NewBatchRunner(scrape, testLogger())
	results, _ := runner.Run(context.Background(), items, BatchOptions{Concurrent: 2, Limit: 2})

	assert.Equal(t, 2, count)
	assert.Len(t, results, 2)
}

func TestBatchRunner_NoDelayAfterLastLaunch(t *testing.T) {
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	runner := NewBatchRunner(scrape, testLogger())
	start := time.Now()
	runner.Run(context.Background(),
		[]types.BatchItem{{URL: "https://example.jp/p/1"}},
		BatchOptions{Concurrent: 1, Delay: 2 * time.Second})

	// A single item never waits out the launch delay.
	assert.Less(t, time.Since(start), time.Second)
}

func TestBatchRunner_CancellationCutsLaunchDelayShort(t *testing.T) {
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewBatchRunner(scrape, testLogger())
	start := time.Now()
	results, _ := runner.Run(ctx,
		[]types.BatchItem{
			{URL: "https://example.jp/p/1"},
			{URL: "https://example.jp/p/2"},
		},
		BatchOptions{Concurrent: 1, Delay: 5 * time.Second})

	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, results, 2)
}

func TestBatchRunner_HonorsWorkerLimit(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	scrape := func(ctx context.Context, url string, hints types.ScrapeHints) types.DetailResult {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		return types.DetailResult{Success: true, URL: url, StockStatus: types.StatusInStock}
	}

	var items []types.BatchItem
	for i := 0; i < 6; i++ {
		items = append(items, types.BatchItem{URL: "https://example.jp/p/x"})
	}

	runner := NewBatchRunner(scrape, testLogger())
	runner.Run(context.Background(), items, BatchOptions{Concurrent: 2})

	assert.LessOrEqual(t, maxInFlight, 2)
}
