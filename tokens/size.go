// Package tokens extracts size tokens and color names from loosely structured
// page text (option labels, table cells, concatenated strings), rejecting the
// rendering artifacts and UI chrome that storefront pages mix in.
package tokens

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Named sizes in their fixed display order. Numeric sizes (waist sizes like
// 76-96, brand code ranges) sort after every named size, by value.
var sizeOrder = map[string]int{
	"XS": 0,
	"S":  1,
	"M":  2,
	"L":  3,
	"XL": 4,
	"LL": 5,
	"3L": 6,
	"4L": 7,
	"5L": 8,
	"FR": 9,
}

var (
	namedSizeRe   = regexp.MustCompile(`^(XS|XL|LL|[3-5]L|[SML])$`)
	numericSizeRe = regexp.MustCompile(`^[0-9]{2,3}$`)

	// Collapsed option labels render as runs of size letters (SMLLL, MLLL3L).
	// Three or more consecutive size letters never form a real size token.
	concatArtifactRe = regexp.MustCompile(`[XSML]{3,}`)

	tokenSplitRe = regexp.MustCompile(`[^0-9A-Za-z]+`)
)

// Placeholder labels that size controls render before a selection is made.
var sizePlaceholders = map[string]bool{
	"SIZE":   true,
	"サイズ":    true,
	"サイズを選択": true,
	"選択してください": true,
	"PLEASE SELECT": true,
	"SELECT":        true,
}

// One-size labels, all normalized to the single FR token.
var freeSizeLabels = map[string]bool{
	"FR":       true,
	"FREE":     true,
	"F":        true,
	"ONE SIZE": true,
	"ONESIZE":  true,
	"フリー":      true,
	"フリーサイズ":   true,
	"ワンサイズ":    true,
}

// ParseSize normalizes one candidate text fragment to a size token. It
// returns ok=false for placeholders, concatenation artifacts, and anything
// outside the closed token set.
func ParseSize(text string) (string, bool) {
	token := normalizeWidth(strings.TrimSpace(text))
	if token == "" {
		return "", false
	}
	upper := strings.ToUpper(token)

	if sizePlaceholders[upper] {
		return "", false
	}
	if freeSizeLabels[upper] {
		return "FR", true
	}
	if concatArtifactRe.MatchString(upper) {
		return "", false
	}
	if namedSizeRe.MatchString(upper) || numericSizeRe.MatchString(upper) {
		return upper, true
	}
	return "", false
}

// ExtractSizes parses every candidate fragment, dropping invalid tokens and
// duplicates, and returns the surviving tokens in display order.
func ExtractSizes(candidates []string) []string {
	seen := make(map[string]bool)
	var sizes []string
	for _, c := range candidates {
		token, ok := ParseSize(c)
		if !ok || seen[token] {
			continue
		}
		seen[token] = true
		sizes = append(sizes, token)
	}
	SortSizes(sizes)
	return sizes
}

// SizesFromChartText scans free-form size-chart text for size tokens. This is
// the fallback source used when the primary size controls yield nothing, not
// an error path.
func SizesFromChartText(text string) []string {
	fields := tokenSplitRe.Split(normalizeWidth(text), -1)
	return ExtractSizes(fields)
}

// SortSizes sorts tokens in place: named sizes by their fixed ordinal, then
// numeric sizes by value, then anything else last in input order.
func SortSizes(sizes []string) {
	sort.SliceStable(sizes, func(i, j int) bool {
		return sizeRank(sizes[i]) < sizeRank(sizes[j])
	})
}

// sizeRank collapses the three-tier ordering into one comparable key. Named
// sizes occupy 0-9, numeric sizes 1000+value, unknown tokens the far end.
func sizeRank(token string) int {
	if ord, ok := sizeOrder[token]; ok {
		return ord
	}
	if n, err := strconv.Atoi(token); err == nil {
		return 1000 + n
	}
	return 1 << 20
}

// normalizeWidth folds full-width ASCII variants (ＬＬ, ８２) to their
// half-width forms. Descente pages mix both within one option list.
func normalizeWidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'Ａ' && r <= 'Ｚ':
			return r - 'Ａ' + 'A'
		case r >= 'ａ' && r <= 'ｚ':
			return r - 'ａ' + 'a'
		case r >= '０' && r <= '９':
			return r - '０' + '0'
		case r == '　':
			return ' '
		}
		return r
	}, s)
}
