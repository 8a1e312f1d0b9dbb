package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(file string, line int) styledoc.Span {
	return styledoc.Span{File: file, StartLine: line, EndLine: line}
}

func TestComputeIDStableAcrossSpanOrder(t *testing.T) {
	a := span("a.tsx", 4)
	b := span("b.vue", 9)

	assert.Equal(t,
		ComputeID(KindDuplicate, []styledoc.Span{a, b}),
		ComputeID(KindDuplicate, []styledoc.Span{b, a}))
}

func TestComputeIDVariesByKindAndSpan(t *testing.T) {
	a := span("a.tsx", 4)

	assert.NotEqual(t,
		ComputeID(KindDrift, []styledoc.Span{a}),
		ComputeID(KindDuplicate, []styledoc.Span{a}))
	assert.NotEqual(t,
		ComputeID(KindDrift, []styledoc.Span{a}),
		ComputeID(KindDrift, []styledoc.Span{span("a.tsx", 5)}))
	assert.Len(t, ComputeID(KindDrift, []styledoc.Span{a}), 16)
}

func TestSortOrdersByKindThenLocation(t *testing.T) {
	issues := []Issue{
		New(KindInconsistent, SeverityWarning, "c", span("a.tsx", 1)),
		New(KindDrift, SeverityError, "b", span("z.tsx", 9)),
		New(KindDrift, SeverityError, "a", span("a.tsx", 3)),
		New(KindDuplicate, SeverityWarning, "d", span("a.tsx", 1), span("b.vue", 2)),
	}

	Sort(issues)

	got := make([]string, len(issues))
	for i, issue := range issues {
		got[i] = issue.Message
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, got)
}

func TestAggregateDeduplicatesByID(t *testing.T) {
	drift := New(KindDrift, SeverityError, "hardcoded", span("a.tsx", 3))
	dup := New(KindDuplicate, SeverityWarning, "dup", span("a.tsx", 3), span("b.vue", 1))

	merged := Aggregate([]Issue{drift}, []Issue{dup, drift})
	require.Len(t, merged, 2)
}

func TestAggregateDeterministicAcrossStreamOrder(t *testing.T) {
	a := New(KindDrift, SeverityError, "a", span("a.tsx", 1))
	b := New(KindDuplicate, SeverityWarning, "b", span("b.vue", 1))
	c := New(KindInconsistent, SeverityWarning, "c", span("c.svelte", 1))

	first := Aggregate([]Issue{a}, []Issue{b}, []Issue{c})
	second := Aggregate([]Issue{c}, []Issue{b}, []Issue{a})

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregate order differs (-first +second):\n%s", diff)
	}
}
