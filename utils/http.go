package utils

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"golfwear-extractor/internal/types"
)

// StaticClient fetches pages that do not need a browser: Shopify products.json
// endpoints, size-chart fragments, and batch input sources. Retries and rate
// limiting are handled by resty.
type StaticClient struct {
	client *resty.Client
	logger types.Logger
}

// NewStaticClient creates a static HTTP client from the shared config.
func NewStaticClient(config *types.Config, logger types.Logger) *StaticClient {
	client := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(config.MaxRetries).
		SetRetryWaitTime(config.RequestDelay).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept-Language", "ja,en-US;q=0.8,en;q=0.6")

	return &StaticClient{client: client, logger: logger}
}

// Get performs a GET request and returns the response body. Non-2xx statuses
// are errors; resty has already exhausted its retries by the time one is
// returned here.
func (c *StaticClient) Get(ctx context.Context, url string) ([]byte, error) {
	c.logger.Debugf("Fetching %s", url)

	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), url)
	}

	c.logger.Debugf("Retrieved %d bytes from %s", len(resp.Body()), url)
	return resp.Body(), nil
}

// GetJSON performs a GET request and unmarshals the JSON response body.
func (c *StaticClient) GetJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.client.R().SetContext(ctx).SetResult(out).Get(url)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), url)
	}
	return nil
}
