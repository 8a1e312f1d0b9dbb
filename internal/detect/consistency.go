package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rlefko/uilint/internal/report"
	"github.com/rlefko/uilint/internal/styledoc"
)

// distinguishing lists the properties that define each semantic group's
// identity. Consistency compares only these, not full block equality: a
// focus ring is judged on its ring, not on unrelated layout.
var distinguishing = map[styledoc.SemanticTag][]string{
	styledoc.TagFocusRing: {
		"outline", "outline-color", "outline-width", "outline-style",
		"outline-offset", "box-shadow",
	},
	styledoc.TagSpacing: {"padding", "margin", "gap", "row-gap", "column-gap"},
	styledoc.TagColor:   {"color", "background-color", "border-color"},
	styledoc.TagTypography: {
		"font-family", "font-size", "font-weight", "line-height", "letter-spacing",
	},
}

// Consistency groups blocks by semantic tag and flags members whose
// distinguishing properties diverge from the group majority. A member is
// an outlier when it resolves a property to a different value than most
// peers, or omits a property the majority defines. One issue names each
// outlier against the majority value.
func Consistency(refs []styledoc.BlockRef) []report.Issue {
	groups := make(map[styledoc.SemanticTag][]styledoc.BlockRef)
	for _, ref := range refs {
		tag := ref.Block().Tag
		if tag == styledoc.TagNone {
			continue
		}
		groups[tag] = append(groups[tag], ref)
	}

	tags := make([]styledoc.SemanticTag, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	var issues []report.Issue
	for _, tag := range tags {
		group := groups[tag]
		if len(group) < 2 {
			continue
		}
		issues = append(issues, groupIssues(tag, group)...)
	}
	return issues
}

type divergence struct {
	prop     string
	got      string // empty when the member omits the property
	majority string
}

func groupIssues(tag styledoc.SemanticTag, group []styledoc.BlockRef) []report.Issue {
	var issues []report.Issue
	outliers := make(map[int][]divergence)

	for _, prop := range distinguishing[tag] {
		majorityKey, definers := majorityValue(group, prop)
		if majorityKey == "" {
			continue
		}
		// The property only binds the group when most members define it;
		// otherwise omission is not divergence.
		if definers*2 <= len(group) {
			continue
		}
		for i, ref := range group {
			v, ok := ref.Block().PropertyMap[prop]
			switch {
			case !ok:
				outliers[i] = append(outliers[i], divergence{prop: prop, majority: majorityKey})
			case v.CompareKey() != majorityKey:
				outliers[i] = append(outliers[i], divergence{prop: prop, got: displayValue(v), majority: majorityKey})
			}
		}
	}

	idx := make([]int, 0, len(outliers))
	for i := range outliers {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	for _, i := range idx {
		b := group[i].Block()
		parts := make([]string, len(outliers[i]))
		for j, d := range outliers[i] {
			if d.got == "" {
				parts[j] = fmt.Sprintf("%s omitted (group uses %s)", d.prop, stripKey(d.majority))
			} else {
				parts[j] = fmt.Sprintf("%s is %s (group uses %s)", d.prop, d.got, stripKey(d.majority))
			}
		}
		msg := fmt.Sprintf("%s styling in %s diverges from its group: %s",
			tag, b.ID, strings.Join(parts, "; "))
		issues = append(issues, report.New(report.KindInconsistent, report.SeverityWarning, msg, b.Span))
	}
	return issues
}

// majorityValue returns the most common compare key for a property across
// the group and how many members define the property at all. Ties break
// toward the value held by the earliest member in arena order, which is
// earliest source path by construction.
func majorityValue(group []styledoc.BlockRef, prop string) (string, int) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	definers := 0
	for i, ref := range group {
		v, ok := ref.Block().PropertyMap[prop]
		if !ok {
			continue
		}
		definers++
		key := v.CompareKey()
		counts[key]++
		if _, seen := firstSeen[key]; !seen {
			firstSeen[key] = i
		}
	}
	best, bestCount := "", 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[key] < firstSeen[best]) {
			best, bestCount = key, n
		}
	}
	return best, definers
}

func displayValue(v styledoc.StyleValue) string {
	if v.Kind == styledoc.ValueToken {
		return "var(" + v.TokenName + ")"
	}
	return v.Raw
}

func stripKey(key string) string {
	if name, ok := strings.CutPrefix(key, "token:"); ok {
		return "var(" + name + ")"
	}
	return key
}
