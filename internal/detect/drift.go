// Package detect implements the three analysis passes over normalized
// style blocks: token drift, duplicate blocks, and intra-group
// inconsistency. All passes read immutable data and run after the
// extraction barrier.
package detect

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rlefko/uilint/internal/report"
	"github.com/rlefko/uilint/internal/styledoc"
)

// exemptValues carry no design intent and are never drift-flagged.
var exemptValues = map[string]bool{
	"0":            true,
	"none":         true,
	"transparent":  true,
	"auto":         true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"currentcolor": true,
	"100%":         true,
	"50%":          true,
	"1":            true,
}

var (
	colorLiteral = regexp.MustCompile(`^(#[0-9a-f]{6}|#[0-9a-f]{8}|rgba?\(.*\)|hsla?\(.*\))$`)
	dimension    = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)(px|em|%|vh|vw|ms|s)?$`)
)

// Drift flags every drift-eligible value that bypassed the token registry.
//
// Two severities, per how far off the token set the value is:
//   - a by-value token reference means the literal numerically equals a
//     registered token but used raw syntax: warning;
//   - a literal that no token defines at any scale step: error.
//
// A block's drifting properties merge into one issue at the worst
// severity; issue identity is (kind, spans), so per-property issues on
// the same block would collide in the aggregator.
//
// extraExempt extends the built-in exemption list from configuration.
func Drift(refs []styledoc.BlockRef, extraExempt []string) []report.Issue {
	exempt := exemptValues
	if len(extraExempt) > 0 {
		exempt = make(map[string]bool, len(exemptValues)+len(extraExempt))
		for v := range exemptValues {
			exempt[v] = true
		}
		for _, v := range extraExempt {
			exempt[strings.ToLower(strings.TrimSpace(v))] = true
		}
	}

	var issues []report.Issue
	for _, ref := range refs {
		b := ref.Block()
		var parts []string
		worst := report.Severity("")
		for _, prop := range sortedProps(b.PropertyMap) {
			part, severity, ok := driftFor(prop, b.PropertyMap[prop], exempt)
			if !ok {
				continue
			}
			parts = append(parts, part)
			if worst == "" || severity == report.SeverityError {
				worst = severity
			}
		}
		if len(parts) == 0 {
			continue
		}
		msg := fmt.Sprintf("%s: %s", b.ID, strings.Join(parts, "; "))
		issues = append(issues, report.New(report.KindDrift, worst, msg, b.Span))
	}
	return issues
}

func driftFor(prop string, v styledoc.StyleValue, exempt map[string]bool) (string, report.Severity, bool) {
	switch v.Kind {
	case styledoc.ValueToken:
		if !v.ByValue {
			return "", "", false
		}
		part := fmt.Sprintf("%s: literal %q matches token %s; use var(%s)",
			prop, v.Raw, v.TokenName, v.TokenName)
		return part, report.SeverityWarning, true

	case styledoc.ValueComposite:
		// A composite drifts when any drift-eligible child does; the
		// whole value is reported once at the worst child severity.
		worst := report.Severity("")
		for _, c := range v.Children {
			switch {
			case c.Kind == styledoc.ValueToken && c.ByValue:
				if worst == "" {
					worst = report.SeverityWarning
				}
			case c.Kind == styledoc.ValueLiteral && driftEligible(c, exempt):
				worst = report.SeverityError
			}
		}
		if worst == "" {
			return "", "", false
		}
		part := fmt.Sprintf("%s: composite value %q contains non-token parts", prop, v.Raw)
		return part, worst, true

	default:
		if !driftEligible(v, exempt) {
			return "", "", false
		}
		part := fmt.Sprintf("%s: hardcoded value %q matches no design token (off-scale)", prop, v.Raw)
		return part, report.SeverityError, true
	}
}

// driftEligible reports whether a literal carries design intent: colors,
// dimensions, and token-syntax references to unregistered tokens. Bare
// keywords are sentinels with no token equivalent and stay silent.
//
// Shorthand values are checked per component: the hardcoded color inside
// "1px solid #94a3b8" drifts the same as one standing alone.
func driftEligible(v styledoc.StyleValue, exempt map[string]bool) bool {
	raw := v.Raw
	if exempt[raw] {
		return false
	}
	if strings.HasPrefix(raw, "var(") {
		// Reference to a token the registry does not define.
		return true
	}
	for _, part := range splitShorthand(raw) {
		if exempt[part] {
			continue
		}
		if colorLiteral.MatchString(part) || dimension.MatchString(part) && part != "0" {
			return true
		}
	}
	return false
}

// splitShorthand splits a value on whitespace outside parentheses, so
// rgba()/hsla() components stay whole.
func splitShorthand(s string) []string {
	var parts []string
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
			b.WriteRune(r)
		case r == ')':
			depth--
			b.WriteRune(r)
		case r == ' ' && depth == 0:
			if b.Len() > 0 {
				parts = append(parts, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

func sortedProps(m map[string]styledoc.StyleValue) []string {
	props := make([]string, 0, len(m))
	for p := range m {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}
