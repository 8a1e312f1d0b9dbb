package extract

import (
	"testing"

	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardVue = `<template>
  <div class="card"><slot /></div>
</template>

<script setup>
const cardVariants = {
  raised: {
    padding: '16px',
    boxShadow: '0 1px 2px #00000033',
  },
};
</script>

<style scoped>
.card {
  padding: 16px;
  color: #1f2937;
}
.card:focus {
  outline: 2px solid var(--focus-ring-color);
}
</style>
`

func TestExtractVueScriptAndStyle(t *testing.T) {
	doc, err := Extract("card.vue", styledoc.DialectVue, []byte(cardVue))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 3)

	variant := doc.Blocks[0]
	assert.Equal(t, "cardVariants.raised", variant.ID)
	assert.Equal(t, "16px", variant.PropertyMap["padding"].Raw)
	assert.Equal(t, 7, variant.Span.StartLine)

	rule := doc.Blocks[1]
	assert.Equal(t, ".card", rule.ID)
	assert.Equal(t, "16px", rule.PropertyMap["padding"].Raw)
	assert.Equal(t, "#1f2937", rule.PropertyMap["color"].Raw)
	assert.Equal(t, 15, rule.Span.StartLine)

	focus := doc.Blocks[2]
	assert.Equal(t, ".card:focus", focus.ID)
	assert.Equal(t, styledoc.TagFocusRing, focus.Tag)
}

func TestExtractVueComputedStyle(t *testing.T) {
	src := `<script setup>
const badge = computed(() => ({
  padding: '4px',
  color: '#2563eb',
}));
</script>
`
	doc, err := Extract("badge.vue", styledoc.DialectVue, []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "badge", doc.Blocks[0].ID)
	assert.Equal(t, "4px", doc.Blocks[0].PropertyMap["padding"].Raw)
}

func TestExtractVueMultipleStyleSections(t *testing.T) {
	src := `<style>
.a { padding: 4px; }
</style>
<style scoped>
.b { padding: 8px; }
</style>
`
	doc, err := Extract("split.vue", styledoc.DialectVue, []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, ".a", doc.Blocks[0].ID)
	assert.Equal(t, ".b", doc.Blocks[1].ID)
	assert.Equal(t, 5, doc.Blocks[1].Span.StartLine)
}

func TestExtractVueMissingCloseTag(t *testing.T) {
	src := `<style>
.a { padding: 4px; }
`
	_, err := Extract("bad.vue", styledoc.DialectVue, []byte(src))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestFindSectionRejectsPartialTagMatch(t *testing.T) {
	src := `<styleguide>nope</styleguide>
<style>.a { margin: 0; }</style>
`
	start, end, ok, err := findSection(src, "style")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ".a { margin: 0; }", src[start:end])
}
