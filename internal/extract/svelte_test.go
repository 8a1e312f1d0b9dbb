package extract

import (
	"testing"

	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const badgeSvelte = `<script>
  export let label;
  const badgeTheme = {
    accent: {
      color: '#2563eb',
    },
  };
</script>

<span class="badge" style="padding: 8px; color: #1f2937">{label}</span>

<style>
  .badge {
    font-size: 13px;
  }
  .badge:focus-visible {
    outline: 2px solid #2563eb;
  }
</style>
`

func TestExtractSvelte(t *testing.T) {
	doc, err := Extract("badge.svelte", styledoc.DialectSvelte, []byte(badgeSvelte))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 4)

	inline := doc.Blocks[0]
	assert.Equal(t, "style@10", inline.ID)
	assert.Equal(t, "8px", inline.PropertyMap["padding"].Raw)
	assert.Equal(t, "#1f2937", inline.PropertyMap["color"].Raw)
	assert.Equal(t, 10, inline.Span.StartLine)

	theme := doc.Blocks[1]
	assert.Equal(t, "badgeTheme.accent", theme.ID)

	rule := doc.Blocks[2]
	assert.Equal(t, ".badge", rule.ID)
	assert.Equal(t, "13px", rule.PropertyMap["font-size"].Raw)

	focus := doc.Blocks[3]
	assert.Equal(t, ".badge:focus-visible", focus.ID)
	assert.Equal(t, styledoc.TagFocusRing, focus.Tag)
}

func TestParseInlineDeclarations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]string
	}{
		{
			"two declarations",
			"padding: 8px; color: #fff",
			map[string]string{"padding": "8px", "color": "#fff"},
		},
		{
			"trailing semicolon",
			"margin: 0;",
			map[string]string{"margin": "0"},
		},
		{
			"empty and malformed segments skipped",
			"; padding: 4px; nonsense; : 3px",
			map[string]string{"padding": "4px"},
		},
		{"empty attribute", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInlineDeclarations(tt.in)
			assert.Len(t, got, len(tt.want))
			for prop, raw := range tt.want {
				require.Contains(t, got, prop)
				assert.Equal(t, raw, got[prop].Raw)
			}
		})
	}
}

func TestExtractSvelteClassContextTagsInlineStyle(t *testing.T) {
	src := `<button class="focus-target" style="outline-offset: 2px">go</button>
`
	doc, err := Extract("btn.svelte", styledoc.DialectSvelte, []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, styledoc.TagFocusRing, doc.Blocks[0].Tag)
}
