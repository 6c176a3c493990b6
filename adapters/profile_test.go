package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverColorOptions_KeepsDOMPositionWhenSwatchesAreFiltered(t *testing.T) {
	// The leading swatch is a chrome label and the trailing one repeats
	// Navy; both are filtered out. The accepted options must still point
	// at their original node-list positions, because click activation
	// addresses the full swatch list.
	doc := mustParse(t, `
		<div class="colors">
			<a class="swatch" title="カラー"></a>
			<a class="swatch is-selected" title="ネイビー（NV00）"></a>
			<a class="swatch" title="ブラック（BK00）"></a>
			<a class="swatch" title="ネイビー（NV00）"></a>
		</div>`)

	profile := &Profile{
		ColorSelector:     ".swatch",
		ColorLabelAttr:    "title",
		CurrentColorClass: "is-selected",
		Activation:        ActivateByClick,
	}

	options := discoverColorOptions(doc, profile)
	require.Len(t, options, 2)

	assert.Equal(t, "ネイビー", options[0].DisplayName)
	assert.Equal(t, 0, options[0].Index)
	assert.Equal(t, 1, options[0].DOMIndex)
	assert.True(t, options[0].IsCurrent)

	assert.Equal(t, "ブラック", options[1].DisplayName)
	assert.Equal(t, 1, options[1].Index)
	assert.Equal(t, 2, options[1].DOMIndex)
	assert.False(t, options[1].IsCurrent)
}

func TestDiscoverColorOptions_URLModeResolvesVariantTargets(t *testing.T) {
	doc := mustParse(t, `
		<ul>
			<li><a class="swatch" href="/products/polo?variant=1">ネイビー（NV00）</a></li>
			<li><a class="swatch" href="/products/polo?variant=2">ブラック（BK00）</a></li>
		</ul>`)

	profile := &Profile{
		BaseURL:       "https://store.pearlygates.co.jp",
		ColorSelector: ".swatch",
		ColorHrefAttr: "href",
		Activation:    ActivateByURL,
	}

	options := discoverColorOptions(doc, profile)
	require.Len(t, options, 2)
	assert.Equal(t, "https://store.pearlygates.co.jp/products/polo?variant=1", options[0].NavigationTarget)
	assert.Equal(t, "https://store.pearlygates.co.jp/products/polo?variant=2", options[1].NavigationTarget)
}
