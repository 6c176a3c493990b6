package adapters

import (
	"context"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"golfwear-extractor/internal/types"
	"golfwear-extractor/tokens"
	"golfwear-extractor/utils"
)

// ActivationMode selects how a color option is brought into view.
type ActivationMode int

const (
	// ActivateByURL navigates to the color's own product URL. Shopify
	// storefronts expose one URL per variant.
	ActivateByURL ActivationMode = iota
	// ActivateByClick clicks the color's swatch control in place. The
	// Descente layouts swap the rendered variant without navigating.
	ActivateByClick
)

// Profile is the full selector/strategy table for one storefront family.
// Everything brand-specific lives here; the pipeline itself is shared.
type Profile struct {
	Brand   string
	BaseURL string

	TitleSelector     string
	PriceSelector     string
	ImageSelector     string
	ImageAttr         string
	SizeSelector      string
	SizeChartSelector string

	ColorSelector     string
	ColorLabelAttr    string // attribute holding the label; empty means element text
	CurrentColorClass string
	ColorHrefAttr     string // attribute holding the variant URL in URL mode

	ProductIDPattern *regexp.Regexp
	Activation       ActivationMode
	Strategies       []StockReadingStrategy
}

// ProductID derives the product identifier from a detail-page URL.
func (p *Profile) ProductID(url string) string {
	if p.ProductIDPattern == nil {
		return ""
	}
	m := p.ProductIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// BrandPage binds a Profile to a live browser session. It implements
// inventory.ColorPage and carries the metadata extraction for the detail
// orchestrator.
type BrandPage struct {
	profile *Profile
	session *utils.BrowserSession
	logger  types.Logger
}

// NewBrandPage creates a page bound to an already navigated session.
func NewBrandPage(profile *Profile, session *utils.BrowserSession, logger types.Logger) *BrandPage {
	return &BrandPage{profile: profile, session: session, logger: logger}
}

// Snapshot parses the current DOM state into a goquery document.
func (b *BrandPage) Snapshot(ctx context.Context) (*goquery.Document, error) {
	html, err := b.session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return ParseHTML(html)
}

// DiscoverColors queries the page once for all color controls and builds the
// ColorOption list. Labels run through the color token filter, so UI chrome
// and template leaks never become colors.
func (b *BrandPage) DiscoverColors(ctx context.Context) ([]types.ColorOption, error) {
	doc, err := b.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page for color discovery: %w", err)
	}

	options := discoverColorOptions(doc, b.profile)
	b.logger.Debugf("Discovered %d color options", len(options))
	return options, nil
}

// discoverColorOptions walks the swatch node list and builds ColorOptions.
// Index counts accepted options only; DOMIndex keeps each option tied to its
// position in the full node list so click activation hits the right swatch
// even when earlier nodes were filtered out.
func discoverColorOptions(doc *goquery.Document, profile *Profile) []types.ColorOption {
	var options []types.ColorOption
	seen := make(map[string]bool)
	haveCurrent := false
	doc.Find(profile.ColorSelector).Each(func(i int, s *goquery.Selection) {
		raw := s.Text()
		if profile.ColorLabelAttr != "" {
			raw, _ = s.Attr(profile.ColorLabelAttr)
		}
		color, ok := tokens.ParseColor(raw)
		if !ok || seen[color.Name] {
			return
		}
		seen[color.Name] = true

		option := types.ColorOption{
			Index:       len(options),
			DOMIndex:    i,
			DisplayName: color.Name,
			RawLabel:    color.Raw,
		}
		// At most one option may be current; duplicate markers on broken
		// markup collapse to the first.
		if !haveCurrent && profile.CurrentColorClass != "" && s.HasClass(profile.CurrentColorClass) {
			option.IsCurrent = true
			haveCurrent = true
		}
		if profile.Activation == ActivateByURL {
			href, _ := s.Attr(profile.ColorHrefAttr)
			option.NavigationTarget = AbsoluteURL(profile.BaseURL, href)
		}
		options = append(options, option)
	})
	return options
}

// ActivateColor brings the page state to the given color, by navigation or
// in-page click depending on the profile.
func (b *BrandPage) ActivateColor(ctx context.Context, color types.ColorOption) error {
	switch b.profile.Activation {
	case ActivateByURL:
		if color.NavigationTarget == "" {
			return fmt.Errorf("color %q has no variant URL", color.DisplayName)
		}
		return b.session.Navigate(ctx, color.NavigationTarget)
	case ActivateByClick:
		return b.session.ClickNth(ctx, b.profile.ColorSelector, color.DOMIndex)
	default:
		return fmt.Errorf("unknown activation mode %d", b.profile.Activation)
	}
}

// ExtractReadings runs the profile's extraction strategies against the
// current color state, first non-empty result winning.
func (b *BrandPage) ExtractReadings(ctx context.Context, color types.ColorOption) ([]types.SizeStockReading, error) {
	doc, err := b.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot page for color %q: %w", color.DisplayName, err)
	}
	return RunStrategies(b.profile.Strategies, doc, b.logger), nil
}

// Metadata holds the basic product fields scraped from the detail page.
type Metadata struct {
	Title     string
	Price     string
	Images    []string
	Sizes     []string
	SizeChart *types.SizeChart
}

// ExtractMetadata scrapes title, price, images, sizes, and the size chart
// from the current page state. Missing fields degrade to empty values; the
// size-chart free text serves as the fallback size source when the size
// controls yield nothing.
func (b *BrandPage) ExtractMetadata(ctx context.Context) (Metadata, error) {
	doc, err := b.Snapshot(ctx)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to snapshot page for metadata: %w", err)
	}

	var meta Metadata
	if title, err := ExtractText(doc, b.profile.TitleSelector); err == nil {
		meta.Title = title
	}
	if price, err := ExtractText(doc, b.profile.PriceSelector); err == nil {
		meta.Price = price
	}
	meta.Images = RemoveDuplicateURLs(ExtractAttributeList(doc, b.profile.ImageSelector, b.profile.ImageAttr))
	for i, img := range meta.Images {
		meta.Images[i] = AbsoluteURL(b.profile.BaseURL, img)
	}
	meta.Sizes = tokens.ExtractSizes(ExtractTextList(doc, b.profile.SizeSelector))

	if b.profile.SizeChartSelector != "" {
		if chart, err := ExtractSizeChart(doc, b.profile.SizeChartSelector); err == nil {
			meta.SizeChart = chart
			if len(meta.Sizes) == 0 {
				meta.Sizes = tokens.SizesFromChartText(ChartText(chart))
			}
		}
	}

	return meta, nil
}
