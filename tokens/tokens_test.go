package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize_ValidTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"S", "S"},
		{"M", "M"},
		{"L", "L"},
		{"XS", "XS"},
		{"XL", "XL"},
		{"LL", "LL"},
		{"3L", "3L"},
		{"5L", "5L"},
		{"82", "82"},
		{"100", "100"},
		{" M ", "M"},
		{"ll", "LL"},
		{"ＬＬ", "LL"},
		{"８２", "82"},
		{"FREE", "FR"},
		{"フリーサイズ", "FR"},
		{"ワンサイズ", "FR"},
		{"One Size", "FR"},
	}

	for _, tt := range tests {
		got, ok := ParseSize(tt.input)
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseSize_RejectsConcatenationArtifacts(t *testing.T) {
	// Collapsed option labels where several sizes render as one string.
	for _, input := range []string{"SMLLL", "MLLL3L", "SML", "SMLXLLL"} {
		_, ok := ParseSize(input)
		assert.False(t, ok, "artifact %q must be rejected", input)
	}
}

func TestParseSize_RejectsPlaceholdersAndNoise(t *testing.T) {
	for _, input := range []string{"", "  ", "サイズ", "選択してください", "size", "XXXL", "A", "1", "1234"} {
		_, ok := ParseSize(input)
		assert.False(t, ok, "input %q must be rejected", input)
	}
}

func TestSortSizes_FixedOrder(t *testing.T) {
	sizes := []string{"3L", "S", "LL", "M"}
	SortSizes(sizes)
	assert.Equal(t, []string{"S", "M", "LL", "3L"}, sizes)
}

func TestSortSizes_NumericAfterNamed(t *testing.T) {
	sizes := []string{"88", "M", "76", "FR", "XL"}
	SortSizes(sizes)
	assert.Equal(t, []string{"M", "XL", "FR", "76", "88"}, sizes)
}

func TestExtractSizes_DedupesAndSorts(t *testing.T) {
	candidates := []string{"M", "サイズ", "L", "M", "SMLLL", "S", "ll"}
	assert.Equal(t, []string{"S", "M", "L", "LL"}, ExtractSizes(candidates))
}

func TestSizesFromChartText(t *testing.T) {
	// Size-chart fallback: tokens buried in free text.
	text := "サイズ S M L LL 3L / 胸囲 88 92 96 100 104"
	sizes := SizesFromChartText(text)
	assert.Equal(t, []string{"S", "M", "L", "LL", "3L", "88", "92", "96", "100", "104"}, sizes)
}

func TestParseColor_NameCodePairs(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantCode string
	}{
		{"ネイビー（NV00）", "ネイビー", "NV00"},
		{"ホワイト(WH)", "ホワイト", "WH"},
		{"ブラック（BK00）WOMEN", "ブラック", "BK00"},
	}

	for _, tt := range tests {
		color, ok := ParseColor(tt.input)
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.wantName, color.Name)
		assert.Equal(t, tt.wantCode, color.Code)
		assert.Equal(t, tt.input, color.Raw)
	}
}

func TestParseColor_BareNames(t *testing.T) {
	color, ok := ParseColor("ネイビー")
	require.True(t, ok)
	assert.Equal(t, "ネイビー", color.Name)
	assert.Empty(t, color.Code)

	_, ok = ParseColor("バリエーション")
	assert.False(t, ok, "UI chrome labels are not colors")

	_, ok = ParseColor("{{ product.color }}")
	assert.False(t, ok, "template artifacts are not colors")

	_, ok = ParseColor("この商品はゴルフウェアとして最適な一着でとても長い説明文です続きます")
	assert.False(t, ok, "long free text is not a color name")
}

func TestExtractColors_DedupesByName(t *testing.T) {
	colors := ExtractColors([]string{"ネイビー（NV00）", "ブラック", "ネイビー", "カラー"})
	require.Len(t, colors, 2)
	assert.Equal(t, "ネイビー", colors[0].Name)
	assert.Equal(t, "ブラック", colors[1].Name)
}
