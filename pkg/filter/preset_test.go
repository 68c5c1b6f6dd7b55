package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePresetCaseInsensitive(t *testing.T) {
	p, ok := ParsePreset("NO-Images")
	assert.True(t, ok)
	assert.Equal(t, PresetNoImages, p)
}

func TestParsePresetUnknown(t *testing.T) {
	_, ok := ParsePreset("no-such-preset")
	assert.False(t, ok)
}

func TestParsePresetPluralAliases(t *testing.T) {
	for _, name := range []string{"no-resource", "no-resources"} {
		p, ok := ParsePreset(name)
		assert.True(t, ok)
		assert.Equal(t, PresetNoResources, p)
	}
}

func TestNoResourcesExcludesUnionOfAllBundles(t *testing.T) {
	excl := PresetNoResources.ExcludeExtensions()
	assert.Contains(t, excl, "png")
	assert.Contains(t, excl, "ttf")
	assert.Contains(t, excl, "pdf")
	assert.Contains(t, excl, "mp3")
	assert.Contains(t, excl, "mp4")
	assert.Contains(t, excl, "js")
	assert.Contains(t, excl, "css")
	assert.Empty(t, PresetNoResources.IncludeExtensions())
}

func TestOnlyJsSetsIncludeNotExclude(t *testing.T) {
	assert.Equal(t, jsExtensions, PresetOnlyJs.IncludeExtensions())
	assert.Empty(t, PresetOnlyJs.ExcludeExtensions())
}

func TestOnlyImagesSetsIncludeNotExclude(t *testing.T) {
	// Deviates from the upstream Rust implementation, which (due to a bug)
	// also populates the exclude-extension list for this preset; the
	// include-only contract here matches the documented behavior instead.
	assert.Equal(t, imageExtensions, PresetOnlyImages.IncludeExtensions())
	assert.Empty(t, PresetOnlyImages.ExcludeExtensions())
}

func TestNoImagesExcludesOnlyImageBundle(t *testing.T) {
	assert.Equal(t, imageExtensions, PresetNoImages.ExcludeExtensions())
	assert.Empty(t, PresetNoImages.IncludeExtensions())
}

func TestCloneStringsIsIndependentCopy(t *testing.T) {
	a := PresetOnlyStyle.IncludeExtensions()
	a[0] = "mutated"
	b := PresetOnlyStyle.IncludeExtensions()
	assert.NotEqual(t, a[0], b[0])
}
