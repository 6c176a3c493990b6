package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSizeChart(t *testing.T) {
	doc := mustParse(t, `
		<div class="size-chart"><table>
			<thead><tr><th>サイズ</th><th>胸囲</th><th>着丈</th></tr></thead>
			<tbody>
				<tr><td>M</td><td>88</td><td>66</td></tr>
				<tr><td>L</td><td>92</td><td>68</td></tr>
			</tbody>
		</table></div>`)

	chart, err := ExtractSizeChart(doc, ".size-chart table")
	require.NoError(t, err)
	assert.Equal(t, []string{"サイズ", "胸囲", "着丈"}, chart.Headers)
	require.Len(t, chart.Rows, 2)
	assert.Equal(t, "88", chart.Rows[0]["胸囲"])
	assert.Equal(t, "L", chart.Rows[1]["サイズ"])
}

func TestExtractSizeChart_MissingTable(t *testing.T) {
	doc := mustParse(t, `<div></div>`)
	_, err := ExtractSizeChart(doc, ".size-chart table")
	assert.Error(t, err)
}

func TestChartText_FeedsSizeFallback(t *testing.T) {
	doc := mustParse(t, `
		<table>
			<tr><th>サイズ</th><th>S</th><th>M</th><th>L</th></tr>
			<tr><td>胸囲</td><td>84</td><td>88</td><td>92</td></tr>
		</table>`)

	chart, err := ExtractSizeChart(doc, "table")
	require.NoError(t, err)

	text := ChartText(chart)
	assert.Contains(t, text, "S")
	assert.Contains(t, text, "88")
}

func TestRemoveDuplicateURLs(t *testing.T) {
	urls := []string{"https://a.jp/1", "https://a.jp/2", "https://a.jp/1"}
	assert.Equal(t, []string{"https://a.jp/1", "https://a.jp/2"}, RemoveDuplicateURLs(urls))
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://store.descente.co.jp"
	assert.Equal(t, "https://store.descente.co.jp/commodity/A/B", AbsoluteURL(base, "/commodity/A/B"))
	assert.Equal(t, "https://other.jp/x", AbsoluteURL(base, "https://other.jp/x"))
	assert.Equal(t, "https://cdn.shopify.com/img.jpg", AbsoluteURL(base, "//cdn.shopify.com/img.jpg"))
	assert.Equal(t, "", AbsoluteURL(base, "  "))
}

func TestDescenteProfile_ProductID(t *testing.T) {
	profile, err := DescenteProfile("lecoqgolf")
	require.NoError(t, err)

	id := profile.ProductID("https://store.descente.co.jp/commodity/DES1/QGMVJA00/")
	assert.Equal(t, "QGMVJA00", id)

	assert.Empty(t, profile.ProductID("https://store.descente.co.jp/f/dsg-lecoqgolf"))
}

func TestDescenteProfile_UnknownBrand(t *testing.T) {
	_, err := DescenteProfile("callaway")
	assert.Error(t, err)
}

func TestPearlyGatesProfile_ProductID(t *testing.T) {
	profile := PearlyGatesProfile()
	id := profile.ProductID("https://store.pearlygates.co.jp/products/mens-polo-2024?variant=123")
	assert.Equal(t, "mens-polo-2024", id)
}
