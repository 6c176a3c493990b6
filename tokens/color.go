package tokens

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Color is one color candidate extracted from swatch alt text or labels.
type Color struct {
	// Name is the display name with any embedded code stripped.
	Name string
	// Code is the parenthesized SKU fragment when present, e.g. "NV00".
	Code string
	// Raw is the original unstripped label.
	Raw string
}

// Name+code pairs like "ネイビー（NV00）" or "ホワイト(WH)". Both full-width
// and ASCII parentheses occur, sometimes on the same page.
var colorCodeRe = regexp.MustCompile(`^(.+?)[（(]([0-9A-Za-z]{2,8})[）)]`)

// UI chrome labels that swatch containers leak into alt text.
var chromeLabels = map[string]bool{
	"カラー":      true,
	"カラーを選択":   true,
	"color":     true,
	"colors":    true,
	"variation": true,
	"variations": true,
	"バリエーション":   true,
	"popup":      true,
	"ポップアップ":    true,
	"サムネイル":     true,
	"thumbnail":  true,
}

// Substrings that indicate a leaked template or internal identifier rather
// than a real color name.
var templateArtifacts = []string{"{{", "}}", "{%", "<", ">", "undefined", "null", "liquid"}

const maxBareNameLength = 30

// ParseColor extracts a color from one swatch label or alt text. A name+code
// pair is always accepted; a bare name only when it is short, free of
// template artifacts, and not a UI chrome label.
func ParseColor(text string) (Color, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Color{}, false
	}

	if m := colorCodeRe.FindStringSubmatch(raw); m != nil {
		name := strings.TrimSpace(m[1])
		if name == "" {
			return Color{}, false
		}
		return Color{Name: name, Code: strings.ToUpper(m[2]), Raw: raw}, true
	}

	if utf8.RuneCountInString(raw) >= maxBareNameLength {
		return Color{}, false
	}
	lower := strings.ToLower(raw)
	if chromeLabels[lower] || chromeLabels[raw] {
		return Color{}, false
	}
	for _, artifact := range templateArtifacts {
		if strings.Contains(lower, artifact) {
			return Color{}, false
		}
	}
	return Color{Name: raw, Raw: raw}, true
}

// ExtractColors parses every candidate label, dropping invalid entries and
// duplicate names. Discovery order is preserved: color order on the page is
// meaningful to the inventory pipeline.
func ExtractColors(candidates []string) []Color {
	seen := make(map[string]bool)
	var colors []Color
	for _, c := range candidates {
		color, ok := ParseColor(c)
		if !ok || seen[color.Name] {
			continue
		}
		seen[color.Name] = true
		colors = append(colors, color)
	}
	return colors
}
