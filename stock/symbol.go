// Package stock interprets raw in-page stock indicators. Japanese apparel
// storefronts mark per-size availability with circle/triangle/cross glyphs or
// short availability phrases; this package maps either form to the tri-state
// StockLevel used by the inventory pipeline.
package stock

import (
	"strings"

	"golfwear-extractor/internal/types"
)

// Glyph table. Half-width and full-width cross variants are all treated the
// same because Descente pages mix them even within one size list.
var glyphStatus = []struct {
	glyph  string
	status types.StockLevel
}{
	{"○", types.StockNormal},
	{"〇", types.StockNormal},
	{"△", types.StockLittle},
	{"×", types.StockOOS},
	{"✕", types.StockOOS},
	{"✖", types.StockOOS},
}

// Phrase fallbacks, checked only when no glyph is present. Negative phrases
// must win over the cart affordance, which stays on the page even for
// sold-out products on some layouts.
var oosPhrases = []string{
	"売り切れ",
	"売切れ",
	"在庫なし",
	"在庫切れ",
	"完売",
	"sold out",
	"out of stock",
	"再入荷",
	"入荷お知らせ",
}

var littlePhrases = []string{
	"残りわずか",
	"残り僅か",
	"在庫わずか",
	"low stock",
}

var normalPhrases = []string{
	"在庫あり",
	"in stock",
}

var cartPhrases = []string{
	"カートに入れる",
	"カートへ入れる",
	"カートに追加",
	"add to cart",
	"buy it now",
}

// Interpret maps one raw stock indicator fragment to a StockLevel. The
// fragment is expected to be short (a table cell, a button label, an
// annotated size token), already isolated by the caller.
//
// When neither a recognized glyph nor a recognized phrase is present it
// returns ok=false: an unparsed fragment is absence of data, never an implied
// in-stock default.
func Interpret(fragment string) (types.StockLevel, bool) {
	if level, ok := InterpretGlyph(fragment); ok {
		return level, true
	}

	lower := strings.ToLower(fragment)
	for _, p := range oosPhrases {
		if strings.Contains(lower, p) {
			return types.StockOOS, true
		}
	}
	for _, p := range littlePhrases {
		if strings.Contains(lower, p) {
			return types.StockLittle, true
		}
	}
	for _, p := range normalPhrases {
		if strings.Contains(lower, p) {
			return types.StockNormal, true
		}
	}
	// An actionable cart affordance with no negative phrase implies the
	// variant is purchasable.
	for _, p := range cartPhrases {
		if strings.Contains(lower, p) {
			return types.StockNormal, true
		}
	}

	return "", false
}

// InterpretGlyph recognizes only the glyph forms, ignoring phrase fallbacks.
// Size-list cells on symbol-annotated layouts use this so phrases from
// surrounding text cannot match accidentally.
func InterpretGlyph(fragment string) (types.StockLevel, bool) {
	for _, g := range glyphStatus {
		if strings.Contains(fragment, g.glyph) {
			return g.status, true
		}
	}
	// Bare X is only a cross when it stands alone; inside a word it is far
	// more likely part of a size token (XL) or a product code. Full-width
	// Ｘ/ｘ get the same treatment, since stock tables render either width.
	switch strings.TrimSpace(fragment) {
	case "X", "x", "Ｘ", "ｘ":
		return types.StockOOS, true
	}
	return "", false
}
