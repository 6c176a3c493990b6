package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golfwear-extractor/internal/types"
)

func TestCrawlCollections_CancelledContextAbortsBeforeFetch(t *testing.T) {
	adapter := NewPearlyGatesAdapter(types.DefaultConfig(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Every scheduled request is aborted before it reaches the network, so
	// the crawl returns immediately with nothing collected.
	urls, err := adapter.crawlCollections(ctx)
	assert.NoError(t, err)
	assert.Empty(t, urls)
}
