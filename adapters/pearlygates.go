package adapters

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gocolly/colly/v2"

	"golfwear-extractor/internal/types"
	"golfwear-extractor/utils"
)

const (
	pearlyGatesBaseURL = "https://store.pearlygates.co.jp"
	pearlyGatesDomain  = "store.pearlygates.co.jp"
	productsPerPage    = 250
)

var pearlyGatesProductIDRe = regexp.MustCompile(`/products/([a-z0-9-]+)`)

// PearlyGatesProfile builds the selector/strategy table for the
// Shopify-hosted PEARLY GATES store. Each color variant has its own URL, so
// colors activate by navigation; stock lives in the variant option list, with
// the cart button as the fallback signal.
func PearlyGatesProfile() *Profile {
	return &Profile{
		Brand:   "pearlygates",
		BaseURL: pearlyGatesBaseURL,

		TitleSelector:     ".product__title h1",
		PriceSelector:     ".product__price .price-item--regular",
		ImageSelector:     ".product__media img",
		ImageAttr:         "src",
		SizeSelector:      "fieldset.product-form__input--size label",
		SizeChartSelector: ".size-guide table",

		ColorSelector:  ".product-form__swatch a.swatch-link",
		ColorLabelAttr: "title",
		ColorHrefAttr:  "href",

		ProductIDPattern: pearlyGatesProductIDRe,
		Activation:       ActivateByURL,
		Strategies: []StockReadingStrategy{
			SizeListStrategy{
				ItemSelector:        "fieldset.product-form__input--size label",
				SoldOutClass:        "sold-out",
				EnabledMeansInStock: true,
			},
			CartButtonStrategy{
				ButtonSelector: "button[name='add'], .product-form__submit",
				SizeSelector:   "fieldset.product-form__input--size label",
			},
		},
	}
}

// PearlyGatesAdapter handles product discovery for the Shopify storefront.
// The products.json endpoint is the primary source; a rate-limited collection
// crawl covers products the endpoint hides.
type PearlyGatesAdapter struct {
	profile *Profile
	config  *types.Config
	client  *utils.StaticClient
	logger  types.Logger
}

// NewPearlyGatesAdapter creates the listing adapter.
func NewPearlyGatesAdapter(config *types.Config, logger types.Logger) *PearlyGatesAdapter {
	return &PearlyGatesAdapter{
		profile: PearlyGatesProfile(),
		config:  config,
		client:  utils.NewStaticClient(config, logger),
		logger:  logger,
	}
}

// DiscoverProductURLs pages through products.json, then falls back to a
// collection crawl when the endpoint yields nothing.
func (a *PearlyGatesAdapter) DiscoverProductURLs(ctx context.Context) ([]string, error) {
	a.logger.Info("Starting product discovery for PEARLY GATES")

	urls, err := a.productsFromJSON(ctx)
	if err != nil {
		a.logger.Warnf("products.json discovery failed, falling back to collection crawl: %v", err)
	}
	if len(urls) == 0 {
		urls, err = a.crawlCollections(ctx)
		if err != nil {
			return nil, fmt.Errorf("collection crawl failed: %w", err)
		}
	}

	unique := RemoveDuplicateURLs(urls)
	a.logger.Infof("Product discovery completed: %d unique products", len(unique))
	return unique, nil
}

// productsFromJSON pages through the Shopify products.json endpoint.
func (a *PearlyGatesAdapter) productsFromJSON(ctx context.Context) ([]string, error) {
	var urls []string
	for page := 1; ; page++ {
		var payload struct {
			Products []struct {
				Handle string `json:"handle"`
			} `json:"products"`
		}

		endpoint := fmt.Sprintf("%s/products.json?limit=%d&page=%d", pearlyGatesBaseURL, productsPerPage, page)
		if err := a.client.GetJSON(ctx, endpoint, &payload); err != nil {
			return urls, err
		}
		if len(payload.Products) == 0 {
			break
		}

		for _, p := range payload.Products {
			urls = append(urls, fmt.Sprintf("%s/products/%s", pearlyGatesBaseURL, p.Handle))
		}
		a.logger.Debugf("products.json page %d yielded %d products", page, len(payload.Products))
	}
	return urls, nil
}

// crawlCollections walks collection pages with a rate-limited colly
// collector, gathering product links. Context cancellation aborts pending
// requests so the crawl cannot outlive the caller's deadline.
func (a *PearlyGatesAdapter) crawlCollections(ctx context.Context) ([]string, error) {
	collector := colly.NewCollector(
		colly.AllowedDomains(pearlyGatesDomain),
		colly.UserAgent(a.config.UserAgent),
		colly.URLFilters(
			regexp.MustCompile(`https://`+regexp.QuoteMeta(pearlyGatesDomain)+`/collections/.*`),
			regexp.MustCompile(`https://`+regexp.QuoteMeta(pearlyGatesDomain)+`/?$`),
		),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: a.config.MaxConcurrentRequests,
		Delay:       a.config.RequestDelay,
		RandomDelay: time.Second,
	})

	var urls []string
	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	collector.OnHTML("a[href*='/products/']", func(e *colly.HTMLElement) {
		urls = append(urls, e.Request.AbsoluteURL(e.Attr("href")))
	})
	collector.OnHTML("a[href*='/collections/']", func(e *colly.HTMLElement) {
		// visit errors here are expected for filtered or already seen URLs
		collector.Visit(e.Request.AbsoluteURL(e.Attr("href")))
	})
	collector.OnError(func(r *colly.Response, err error) {
		a.logger.Warnf("Crawl request to %s failed: %v", r.Request.URL, err)
	})

	if err := collector.Visit(pearlyGatesBaseURL + "/collections/all"); err != nil {
		return nil, err
	}
	collector.Wait()
	return urls, nil
}
