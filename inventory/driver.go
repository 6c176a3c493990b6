package inventory

import (
	"context"
	"fmt"

	"golfwear-extractor/internal/types"
)

// ColorPage is the page-state capability the driver iterates over. A brand
// adapter binds it to a live browser session; tests supply a mock.
type ColorPage interface {
	// DiscoverColors queries the page once for all color controls.
	DiscoverColors(ctx context.Context) ([]types.ColorOption, error)
	// ActivateColor brings the page state to the given color, via URL
	// navigation or an in-page click, waiting for the state to settle.
	ActivateColor(ctx context.Context, color types.ColorOption) error
	// ExtractReadings scrapes per-size stock readings for the currently
	// active color.
	ExtractReadings(ctx context.Context, color types.ColorOption) ([]types.SizeStockReading, error)
}

// defaultColorName labels the implicit single pass for products that expose
// no color controls at all.
const defaultColorName = "default"

// Driver sequences per-color extraction over one shared page. Colors are
// processed strictly sequentially: the page DOM and URL are shared state, and
// a second navigation would invalidate an in-flight extraction.
type Driver struct {
	logger types.Logger
}

// NewDriver creates a color iteration driver.
func NewDriver(logger types.Logger) *Driver {
	return &Driver{logger: logger}
}

// Run discovers the color options and extracts stock readings for each one,
// returning the reconciled variant records in discovery order.
//
// Failure semantics: activation is retried once per color; after that the
// color contributes zero readings and iteration continues. An extraction
// error for one color is likewise non-fatal. Only a discovery failure aborts
// the run.
func (d *Driver) Run(ctx context.Context, page ColorPage) ([]types.VariantRecord, error) {
	colors, err := page.DiscoverColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover color options: %w", err)
	}

	// Single-variant products expose no color controls; run one implicit
	// default-color pass without any activation step.
	if len(colors) == 0 {
		d.logger.Debug("No color controls found, extracting single default variant")
		colors = []types.ColorOption{{Index: 0, DisplayName: defaultColorName, IsCurrent: true}}
	}

	reconciler := NewReconciler()
	for _, color := range colors {
		readings := d.extractColor(ctx, page, color)
		reconciler.Add(color.DisplayName, readings)
	}
	return reconciler.Records(), nil
}

// extractColor activates one color and scrapes its readings. All failures
// degrade to zero readings for this color.
func (d *Driver) extractColor(ctx context.Context, page ColorPage, color types.ColorOption) []types.SizeStockReading {
	if !color.IsCurrent {
		if err := d.activateWithRetry(ctx, page, color); err != nil {
			d.logger.Warnf("Skipping color %q: activation failed after retry: %v", color.DisplayName, err)
			return nil
		}
	}

	readings, err := page.ExtractReadings(ctx, color)
	if err != nil {
		d.logger.Warnf("No stock readings for color %q: %v", color.DisplayName, err)
		return nil
	}
	d.logger.Debugf("Color %q yielded %d stock readings", color.DisplayName, len(readings))
	return readings
}

// activateWithRetry retries a failed activation once. Transient navigation
// hiccups are common on these storefronts; anything that fails twice is
// treated as a dead color, not a dead run.
func (d *Driver) activateWithRetry(ctx context.Context, page ColorPage, color types.ColorOption) error {
	err := page.ActivateColor(ctx, color)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}
	d.logger.Debugf("Retrying activation for color %q after error: %v", color.DisplayName, err)
	return page.ActivateColor(ctx, color)
}
