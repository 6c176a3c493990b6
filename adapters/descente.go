package adapters

import (
	"context"
	"fmt"
	"regexp"

	"golfwear-extractor/internal/types"
	"golfwear-extractor/utils"
)

// Descente-hosted brand stores share one platform under store.descente.co.jp
// with per-brand paths. Markup is identical across brands; only the brand
// path and display name differ, so one profile covers all of them.
var descenteBrandPaths = map[string]string{
	"lecoqgolf":    "/f/dsg-lecoqgolf",
	"munsingwear":  "/f/dsg-munsingwear",
	"descentegolf": "/f/dsg-descentegolf",
	"srixon":       "/f/dsg-srixon",
}

var descenteProductIDRe = regexp.MustCompile(`/commodity/[A-Z0-9]+/([A-Z0-9]+)`)

// DescenteProfile builds the selector/strategy table for one Descente-hosted
// brand store. Color swatches swap the rendered variant in place, so colors
// activate by click; stock is read from the size list first, then the hidden
// stock popup, then inline description text, and finally the cart button.
func DescenteProfile(brand string) (*Profile, error) {
	if _, ok := descenteBrandPaths[brand]; !ok {
		return nil, fmt.Errorf("unknown Descente brand: %s", brand)
	}

	return &Profile{
		Brand:   brand,
		BaseURL: "https://store.descente.co.jp",

		TitleSelector:     ".item-detail h1.item-name",
		PriceSelector:     ".item-detail .item-price .price",
		ImageSelector:     ".item-images img.item-image",
		ImageAttr:         "src",
		SizeSelector:      ".item-size-list li .size-name",
		SizeChartSelector: ".size-chart table",

		ColorSelector:     ".item-color-list li a.color-swatch",
		ColorLabelAttr:    "title",
		CurrentColorClass: "is-selected",

		ProductIDPattern: descenteProductIDRe,
		Activation:       ActivateByClick,
		Strategies: []StockReadingStrategy{
			SizeListStrategy{
				ItemSelector: ".item-size-list li",
				SoldOutClass: "is-soldout",
			},
			PopupPanelStrategy{
				RowSelector:  ".stock-popup table tr",
				SizeSelector: "th, td.size",
				CellSelector: "td.stock",
			},
			InlineTextStrategy{
				Selector: ".item-detail .stock-description",
			},
			CartButtonStrategy{
				ButtonSelector: ".item-detail .cart-button, .item-detail button.add-to-cart",
				SizeSelector:   ".item-size-list li .size-name",
			},
		},
	}, nil
}

// DescenteAdapter handles listing discovery for a Descente-hosted brand
// store. Listing pages render product tiles client side, so discovery runs
// through the browser session rather than a static fetch.
type DescenteAdapter struct {
	profile *Profile
	config  *types.Config
	logger  types.Logger
}

// NewDescenteAdapter creates a listing adapter for one brand.
func NewDescenteAdapter(profile *Profile, config *types.Config, logger types.Logger) *DescenteAdapter {
	return &DescenteAdapter{profile: profile, config: config, logger: logger}
}

// DiscoverProductURLs collects detail-page URLs from the brand's listing
// pages, following the numbered pagination until a page yields nothing new.
func (a *DescenteAdapter) DiscoverProductURLs(ctx context.Context, session *utils.BrowserSession) ([]string, error) {
	listingURL := a.profile.BaseURL + descenteBrandPaths[a.profile.Brand]
	a.logger.Infof("Starting product discovery for %s", a.profile.Brand)

	var all []string
	for page := 1; ; page++ {
		pageURL := fmt.Sprintf("%s/?page=%d", listingURL, page)
		if err := session.Navigate(ctx, pageURL); err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to load listing page: %w", err)
			}
			a.logger.Warnf("Listing page %d failed to load, stopping pagination: %v", page, err)
			break
		}

		html, err := session.HTML(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot listing page: %w", err)
		}
		doc, err := ParseHTML(html)
		if err != nil {
			return nil, fmt.Errorf("failed to parse listing page: %w", err)
		}

		var pageURLs []string
		for _, href := range ExtractAttributeList(doc, "a[href*='/commodity/']", "href") {
			pageURLs = append(pageURLs, AbsoluteURL(a.profile.BaseURL, href))
		}

		before := len(all)
		all = RemoveDuplicateURLs(append(all, pageURLs...))
		a.logger.Debugf("Listing page %d yielded %d new products", page, len(all)-before)
		if len(all) == before {
			break
		}
	}

	a.logger.Infof("Product discovery completed: %d unique products", len(all))
	return all, nil
}
