package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"golfwear-extractor/internal/types"
)

// BrowserSession owns one headless browser tab for the duration of a single
// detail-page scrape. The tab is shared mutable state: the color iteration
// driver renavigates it per color, so a session must never be used by more
// than one scrape at a time, and must be closed on every exit path.
type BrowserSession struct {
	config *types.Config
	logger types.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBrowserSession allocates a fresh browser context and applies the
// configured user agent plus Japanese-storefront request headers.
func NewBrowserSession(parent context.Context, config *types.Config, logger types.Logger) (*BrowserSession, error) {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	ctx, cancel := chromedp.NewContext(parent)

	err := chromedp.Run(ctx,
		network.Enable(),
		emulation.SetUserAgentOverride(config.UserAgent),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "ja,en-US;q=0.8,en;q=0.6",
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return &BrowserSession{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Navigate loads a URL and waits briefly for dynamic content to settle. The
// timeout bounds the whole navigation; exceeding it is returned as an error
// for the caller to classify (fatal for the initial load, retryable for
// per-color navigation).
func (s *BrowserSession) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(s.ctx, s.config.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(500*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	s.logger.Debugf("Navigated to %s", url)
	return nil
}

// HTML returns an outer-HTML snapshot of the current document state.
func (s *BrowserSession) HTML(ctx context.Context) (string, error) {
	snapCtx, cancel := context.WithTimeout(s.ctx, s.config.Timeout)
	defer cancel()

	var html string
	if err := chromedp.Run(snapCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to snapshot page HTML: %w", err)
	}
	return html, nil
}

// Click clicks the first element matching the selector and waits for the DOM
// mutation to settle.
func (s *BrowserSession) Click(ctx context.Context, selector string) error {
	clickCtx, cancel := context.WithTimeout(s.ctx, s.config.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(clickCtx,
		chromedp.Click(selector, chromedp.ByQuery),
		chromedp.Sleep(500*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

// ClickNth clicks the index-th element matching the selector. Swatch
// controls share one selector, so per-color activation addresses them by
// discovery index.
func (s *BrowserSession) ClickNth(ctx context.Context, selector string, index int) error {
	clickCtx, cancel := context.WithTimeout(s.ctx, s.config.NavigationTimeout)
	defer cancel()

	expr := fmt.Sprintf(`document.querySelectorAll(%q)[%d].click()`, selector, index)
	err := chromedp.Run(clickCtx,
		chromedp.Evaluate(expr, nil),
		chromedp.Sleep(500*time.Millisecond),
	)
	if err != nil {
		return fmt.Errorf("failed to click %s[%d]: %w", selector, index, err)
	}
	return nil
}

// WaitVisible waits for the selector to become visible, bounded by the
// navigation timeout.
func (s *BrowserSession) WaitVisible(ctx context.Context, selector string) error {
	waitCtx, cancel := context.WithTimeout(s.ctx, s.config.NavigationTimeout)
	defer cancel()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed waiting for %s: %w", selector, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression on the page and unmarshals the result.
func (s *BrowserSession) Evaluate(ctx context.Context, expression string, result interface{}) error {
	evalCtx, cancel := context.WithTimeout(s.ctx, s.config.Timeout)
	defer cancel()

	if err := chromedp.Run(evalCtx, chromedp.Evaluate(expression, result)); err != nil {
		return fmt.Errorf("failed to evaluate expression: %w", err)
	}
	return nil
}

// Location returns the current page URL.
func (s *BrowserSession) Location(ctx context.Context) (string, error) {
	var url string
	if err := s.Evaluate(ctx, "window.location.href", &url); err != nil {
		return "", err
	}
	return url, nil
}

// Close releases the browser tab. Safe to call more than once.
func (s *BrowserSession) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
