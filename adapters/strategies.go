package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"golfwear-extractor/internal/types"
	"golfwear-extractor/stock"
	"golfwear-extractor/tokens"
)

// StockReadingStrategy extracts per-size stock readings from one DOM layout.
// A profile declares its strategies in priority order; the first strategy
// that yields a non-empty result wins, and a strategy error just falls
// through to the next one.
type StockReadingStrategy interface {
	Name() string
	Extract(doc *goquery.Document) ([]types.SizeStockReading, error)
}

// RunStrategies tries each strategy in order and returns the first non-empty
// result. An empty result from every strategy means the current color has no
// stock data, which the caller treats as zero readings, not an error.
func RunStrategies(strategies []StockReadingStrategy, doc *goquery.Document, logger types.Logger) []types.SizeStockReading {
	for _, strategy := range strategies {
		readings, err := strategy.Extract(doc)
		if err != nil {
			logger.Debugf("Strategy %s failed, trying next: %v", strategy.Name(), err)
			continue
		}
		if len(readings) > 0 {
			logger.Debugf("Strategy %s yielded %d readings", strategy.Name(), len(readings))
			return readings
		}
	}
	return nil
}

// SizeListStrategy reads a size-list block: one element per size, the stock
// glyph embedded in the element text or signalled by a disabled/sold-out
// class.
type SizeListStrategy struct {
	// ItemSelector matches one element per size.
	ItemSelector string
	// SoldOutClass, when set, marks out-of-stock items that carry no glyph.
	SoldOutClass string
	// EnabledMeansInStock treats glyph-less, non-sold-out items as in stock.
	// Option lists without symbol annotations work this way: sold-out sizes
	// are disabled or removed, everything else is purchasable.
	EnabledMeansInStock bool
}

func (s SizeListStrategy) Name() string { return "size-list" }

func (s SizeListStrategy) Extract(doc *goquery.Document) ([]types.SizeStockReading, error) {
	var readings []types.SizeStockReading
	doc.Find(s.ItemSelector).Each(func(i int, item *goquery.Selection) {
		text := strings.TrimSpace(item.Text())
		size, ok := sizeFromText(text)
		if !ok {
			return
		}

		if level, ok := stock.InterpretGlyph(text); ok {
			readings = append(readings, types.NewReading(size, level))
			return
		}
		if s.SoldOutClass != "" && item.HasClass(s.SoldOutClass) {
			readings = append(readings, types.NewReading(size, types.StockOOS))
			return
		}
		if _, disabled := item.Attr("disabled"); disabled {
			readings = append(readings, types.NewReading(size, types.StockOOS))
			return
		}
		if s.EnabledMeansInStock {
			readings = append(readings, types.NewReading(size, types.StockNormal))
		}
	})
	return readings, nil
}

// PopupPanelStrategy reads the stock panel some storefronts render as a
// hidden popup table: one row per size with a dedicated stock cell.
type PopupPanelStrategy struct {
	RowSelector  string
	SizeSelector string
	CellSelector string
}

func (s PopupPanelStrategy) Name() string { return "popup-panel" }

func (s PopupPanelStrategy) Extract(doc *goquery.Document) ([]types.SizeStockReading, error) {
	var readings []types.SizeStockReading
	doc.Find(s.RowSelector).Each(func(i int, row *goquery.Selection) {
		size, ok := tokens.ParseSize(row.Find(s.SizeSelector).First().Text())
		if !ok {
			return
		}
		cell := strings.TrimSpace(row.Find(s.CellSelector).First().Text())
		level, ok := stock.Interpret(cell)
		if !ok {
			return
		}
		readings = append(readings, types.NewReading(size, level))
	})
	return readings, nil
}

// InlineTextStrategy reads symbol-annotated inline text like "S:○ M:△ L:×",
// found in product descriptions on the older Descente layouts.
type InlineTextStrategy struct {
	Selector string
}

func (s InlineTextStrategy) Name() string { return "inline-text" }

func (s InlineTextStrategy) Extract(doc *goquery.Document) ([]types.SizeStockReading, error) {
	text, err := ExtractText(doc, s.Selector)
	if err != nil {
		return nil, err
	}

	var readings []types.SizeStockReading
	for _, segment := range splitInlineSegments(text) {
		level, ok := stock.InterpretGlyph(segment)
		if !ok {
			continue
		}
		size, ok := sizeFromText(segment)
		if !ok {
			continue
		}
		readings = append(readings, types.NewReading(size, level))
	}
	return readings, nil
}

// CartButtonStrategy is the last-resort layout: no per-size markup at all,
// just a cart or restock-notify button whose label carries the product-level
// signal. Every discovered size inherits that signal; with no size controls
// the product is treated as one free-size variant.
type CartButtonStrategy struct {
	ButtonSelector string
	SizeSelector   string
}

func (s CartButtonStrategy) Name() string { return "cart-button" }

func (s CartButtonStrategy) Extract(doc *goquery.Document) ([]types.SizeStockReading, error) {
	label, err := ExtractText(doc, s.ButtonSelector)
	if err != nil {
		return nil, err
	}
	level, ok := stock.Interpret(label)
	if !ok {
		return nil, nil
	}

	sizes := tokens.ExtractSizes(ExtractTextList(doc, s.SizeSelector))
	if len(sizes) == 0 {
		sizes = []string{"FR"}
	}

	var readings []types.SizeStockReading
	for _, size := range sizes {
		readings = append(readings, types.NewReading(size, level))
	}
	return readings, nil
}

// sizeFromText finds the first valid size token inside a mixed fragment like
// "Ｌ ○ 残りわずか".
func sizeFromText(text string) (string, bool) {
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '　' || r == ':' || r == '：' || r == '/' || r == '（' || r == '）' || r == '(' || r == ')'
	}) {
		if size, ok := tokens.ParseSize(field); ok {
			return size, true
		}
	}
	return "", false
}

// splitInlineSegments cuts "S:○ M:△ L:×" style text into per-size segments.
// Separators vary by brand (spaces, slashes, full-width commas).
func splitInlineSegments(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '　' || r == '/' || r == '、' || r == ',' || r == '\n' || r == '\t'
	})
}
