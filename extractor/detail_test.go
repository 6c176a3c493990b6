package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golfwear-extractor/internal/types"
)

func TestMarkSoldOut_PrefixesOnce(t *testing.T) {
	marked := MarkSoldOut("メンズ 半袖ポロシャツ")
	assert.Equal(t, "【完売】メンズ 半袖ポロシャツ", marked)

	// Re-applying must not stack markers.
	assert.Equal(t, marked, MarkSoldOut(marked))
}

func TestMarkSoldOut_EmptyTitle(t *testing.T) {
	assert.Equal(t, SoldOutMarker, MarkSoldOut(""))
}

func TestColorNames_DistinctInRecordOrder(t *testing.T) {
	records := []types.VariantRecord{
		{Color: "ネイビー", Size: "S"},
		{Color: "ネイビー", Size: "M"},
		{Color: "ブラック", Size: "S"},
		{Color: "ネイビー", Size: "L"},
	}
	assert.Equal(t, []string{"ネイビー", "ブラック"}, colorNames(records))
}

func TestNewDetailScraper(t *testing.T) {
	scraper := NewDetailScraper(nil, types.DefaultConfig(), testLogger())
	assert.NotNil(t, scraper)
}
