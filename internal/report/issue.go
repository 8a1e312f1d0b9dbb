// Package report defines the analyst-facing issue model and the aggregator
// that merges detector streams into one deterministic, deduplicated list.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

// Kind classifies an issue by the detector family that produced it.
type Kind string

const (
	KindDrift        Kind = "drift-violation"
	KindDuplicate    Kind = "duplicate-style"
	KindInconsistent Kind = "inconsistent-state"
)

// kindRank fixes the report ordering of kinds.
var kindRank = map[Kind]int{
	KindDrift:        0,
	KindDuplicate:    1,
	KindInconsistent: 2,
}

// Severity levels. Errors fail the build in the CLI's default soft-gate
// mode; warnings only fail under --strict.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is the unit of analyst-facing output. Issues are produced, never
// updated: a rerun recomputes the whole set.
type Issue struct {
	// ID is derived from the kind and the sorted involved spans, so
	// reruns over unchanged input produce identical issue sets.
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	Severity Severity        `json:"severity"`
	Spans    []styledoc.Span `json:"spans"`
	Message  string          `json:"message"`
}

// New builds an issue with its stable ID filled in.
func New(kind Kind, severity Severity, message string, spans ...styledoc.Span) Issue {
	return Issue{
		ID:       ComputeID(kind, spans),
		Kind:     kind,
		Severity: severity,
		Spans:    spans,
		Message:  message,
	}
}

// ComputeID hashes the kind plus the sorted involved spans. Span order as
// reported does not influence the ID, which keeps IDs stable when only the
// scan order changed.
func ComputeID(kind Kind, spans []styledoc.Span) string {
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = s.String()
	}
	sort.Strings(parts)

	h := sha256.New()
	h.Write([]byte(string(kind)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Sort orders issues by kind, then by first source span, then by ID as the
// final tiebreak. The order is total, so reruns print identically.
func Sort(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if kindRank[a.Kind] != kindRank[b.Kind] {
			return kindRank[a.Kind] < kindRank[b.Kind]
		}
		as, bs := firstSpan(a), firstSpan(b)
		if as.File != bs.File {
			return as.File < bs.File
		}
		if as.StartLine != bs.StartLine {
			return as.StartLine < bs.StartLine
		}
		return a.ID < b.ID
	})
}

func firstSpan(issue Issue) styledoc.Span {
	if len(issue.Spans) == 0 {
		return styledoc.Span{}
	}
	return issue.Spans[0]
}

// Aggregate merges detector issue streams: duplicate IDs collapse to the
// first occurrence and the result is deterministically ordered.
func Aggregate(streams ...[]Issue) []Issue {
	seen := make(map[string]bool)
	var merged []Issue
	for _, stream := range streams {
		for _, issue := range stream {
			if seen[issue.ID] {
				continue
			}
			seen[issue.ID] = true
			merged = append(merged, issue)
		}
	}
	Sort(merged)
	return merged
}
