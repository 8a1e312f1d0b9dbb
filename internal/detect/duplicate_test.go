package detect

import (
	"context"
	"testing"

	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(path string, dialect styledoc.Dialect, blocks ...*styledoc.StyleBlock) *styledoc.StyleDocument {
	return &styledoc.StyleDocument{SourcePath: path, Dialect: dialect, Blocks: blocks}
}

func literalBlock(id string, props map[string]string) *styledoc.StyleBlock {
	pm := make(map[string]styledoc.StyleValue, len(props))
	for k, v := range props {
		pm[k] = styledoc.Literal(v, "")
	}
	return &styledoc.StyleBlock{ID: id, PropertyMap: pm, Span: styledoc.Span{File: id, StartLine: 1}}
}

func TestDuplicatesExactCrossFramework(t *testing.T) {
	props := map[string]string{"padding": "16px", "color": "#1f2937", "border-radius": "8px"}

	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX, literalBlock("cardStyle", props)),
		docWith("b.vue", styledoc.DialectVue, literalBlock(".card", props)),
	})

	clusters, issues, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	require.Len(t, clusters, 1)

	c := clusters[0]
	assert.True(t, c.Exact)
	assert.Equal(t, 1.0, c.Score)
	assert.Equal(t, ScopeCrossFramework, c.Scope)
	assert.Equal(t, "cardStyle", c.Canonical.Block)
	require.Len(t, c.Members, 2)
	require.Len(t, c.Pairs, 1)
	assert.Equal(t, PairScore{A: "cardStyle", B: ".card", Score: 1.0}, c.Pairs[0])

	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "canonical: cardStyle")
	assert.Len(t, issues[0].Spans, 2)
}

func TestDuplicatesTokenIdentityBridgesDialects(t *testing.T) {
	a := &styledoc.StyleBlock{ID: "a", PropertyMap: map[string]styledoc.StyleValue{
		"padding": styledoc.Token("--spacing-4", "var(--spacing-4)"),
		"color":   styledoc.Token("--color-text", "var(--color-text)"),
	}}
	b := &styledoc.StyleBlock{ID: "b", PropertyMap: map[string]styledoc.StyleValue{
		"padding": styledoc.TokenByValue("--spacing-4", "16px", "px"),
		"color":   styledoc.TokenByValue("--color-text", "#1f2937", ""),
	}}

	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX, a),
		docWith("b.svelte", styledoc.DialectSvelte, b),
	})

	clusters, _, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.True(t, clusters[0].Exact)
}

func TestDuplicatesThresholdBoundary(t *testing.T) {
	// 6 shared pairs of 7 total: similarity 6/7 ≈ 0.857.
	base := map[string]string{
		"padding": "16px", "margin": "8px", "color": "#111111",
		"background-color": "#ffffff", "border-radius": "4px", "font-size": "14px",
	}
	a := literalBlock("a", base)
	varied := make(map[string]string, len(base)+1)
	for k, v := range base {
		varied[k] = v
	}
	varied["line-height"] = "1.5"
	b := literalBlock("b", varied)

	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX, a),
		docWith("b.tsx", styledoc.DialectJSX, b),
	})

	clusters, _, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.False(t, clusters[0].Exact)
	assert.InDelta(t, 6.0/7.0, clusters[0].Score, 1e-9)

	clusters, _, err = Duplicates(context.Background(), refs, 0.9, 1)
	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestDuplicatesEmptyCompareKeyIsNotShared(t *testing.T) {
	// A whitespace-only declaration can normalize to an empty compare
	// key; a block that lacks the property entirely must not count it as
	// an intersection.
	a := &styledoc.StyleBlock{ID: "a", PropertyMap: map[string]styledoc.StyleValue{
		"color": styledoc.Literal("", ""),
	}}
	b := &styledoc.StyleBlock{ID: "b", PropertyMap: map[string]styledoc.StyleValue{
		"padding": styledoc.Literal("1px", "px"),
	}}

	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX, a),
		docWith("b.tsx", styledoc.DialectJSX, b),
	})

	clusters, issues, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	assert.Empty(t, clusters)
	assert.Empty(t, issues)
}

func TestDuplicatesTransitiveClosure(t *testing.T) {
	// a≈b and b≈c cross the threshold; a vs c alone does not. All three
	// must land in one cluster anyway.
	mk := func(id string, props ...string) *styledoc.StyleBlock {
		pm := map[string]string{}
		for _, p := range props {
			pm[p] = "1px"
		}
		return literalBlock(id, pm)
	}
	a := mk("a", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9")
	b := mk("b", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p10")
	c := mk("c", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p10", "p11")

	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX, a),
		docWith("b.tsx", styledoc.DialectJSX, b),
		docWith("c.tsx", styledoc.DialectJSX, c),
	})

	clusters, _, err := Duplicates(context.Background(), refs, 0.8, 1)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 3)
	assert.Equal(t, "a", clusters[0].Canonical.Block)

	// Only the threshold-crossing pairs carry scores; the a-c pair that
	// rode in on transitivity does not.
	require.Len(t, clusters[0].Pairs, 2)
	assert.Equal(t, PairScore{A: "a", B: "b", Score: 8.0 / 10.0}, clusters[0].Pairs[0])
	assert.Equal(t, PairScore{A: "b", B: "c", Score: 8.0 / 10.0}, clusters[0].Pairs[1])
}

func TestDuplicatesScopeIntraFile(t *testing.T) {
	props := map[string]string{"padding": "16px", "margin": "8px"}
	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX,
			literalBlock("one", props), literalBlock("two", props)),
	})

	clusters, _, err := Duplicates(context.Background(), refs, 0.85, 2)
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, ScopeIntraFile, clusters[0].Scope)
}

func TestDuplicatesEmptyBlocksIgnored(t *testing.T) {
	refs := styledoc.AllBlocks([]*styledoc.StyleDocument{
		docWith("a.tsx", styledoc.DialectJSX,
			&styledoc.StyleBlock{ID: "empty1", PropertyMap: map[string]styledoc.StyleValue{}},
			&styledoc.StyleBlock{ID: "empty2", PropertyMap: map[string]styledoc.StyleValue{}},
		),
	})

	clusters, issues, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	assert.Empty(t, clusters)
	assert.Empty(t, issues)
}

func TestDuplicatesParallelMatchesSerial(t *testing.T) {
	var docs []*styledoc.StyleDocument
	props := map[string]string{"padding": "16px", "color": "#1f2937"}
	for _, path := range []string{"a.tsx", "b.tsx", "c.vue", "d.svelte", "e.tsx"} {
		docs = append(docs, docWith(path, styledoc.DialectJSX, literalBlock(path+"#b", props)))
	}
	refs := styledoc.AllBlocks(docs)

	serial, _, err := Duplicates(context.Background(), refs, 0.85, 1)
	require.NoError(t, err)
	parallel, _, err := Duplicates(context.Background(), refs, 0.85, 4)
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}
