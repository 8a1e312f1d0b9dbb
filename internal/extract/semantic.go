package extract

import (
	"strings"

	"github.com/rlefko/uilint/internal/normalize"
	"github.com/rlefko/uilint/internal/styledoc"
)

// propertyTags maps canonical property names to the semantic tag they
// vote for. Prefix fallbacks below catch the longhand families.
var propertyTags = map[string]styledoc.SemanticTag{
	"outline":        styledoc.TagFocusRing,
	"outline-color":  styledoc.TagFocusRing,
	"outline-width":  styledoc.TagFocusRing,
	"outline-style":  styledoc.TagFocusRing,
	"outline-offset": styledoc.TagFocusRing,
	"box-shadow":     styledoc.TagFocusRing,

	"padding":    styledoc.TagSpacing,
	"margin":     styledoc.TagSpacing,
	"gap":        styledoc.TagSpacing,
	"row-gap":    styledoc.TagSpacing,
	"column-gap": styledoc.TagSpacing,

	"color":            styledoc.TagColor,
	"background-color": styledoc.TagColor,
	"border-color":     styledoc.TagColor,
	"fill":             styledoc.TagColor,
	"stroke":           styledoc.TagColor,

	"font-family":    styledoc.TagTypography,
	"font-size":      styledoc.TagTypography,
	"font-weight":    styledoc.TagTypography,
	"line-height":    styledoc.TagTypography,
	"letter-spacing": styledoc.TagTypography,
}

// nameHints maps substrings of a block's name or selector to a tag.
// Naming wins over property votes: a "focusRing" table entry is a focus
// ring even when it only declares a box-shadow.
var nameHints = []struct {
	substr string
	tag    styledoc.SemanticTag
}{
	{"focus", styledoc.TagFocusRing},
	{"ring", styledoc.TagFocusRing},
	{"spacing", styledoc.TagSpacing},
	{"space", styledoc.TagSpacing},
	{"pad", styledoc.TagSpacing},
	{"color", styledoc.TagColor},
	{"palette", styledoc.TagColor},
	{"font", styledoc.TagTypography},
	{"text", styledoc.TagTypography},
	{"type", styledoc.TagTypography},
}

// classify assigns a semantic tag to a block from its naming context and
// property shape. It runs on raw (pre-normalization) property names and
// canonicalizes them itself, so extractors can tag at extraction time.
func classify(name string, props map[string]styledoc.StyleValue) styledoc.SemanticTag {
	lower := strings.ToLower(name)

	// A :focus selector or focus-flavored name governs interactive state.
	if strings.Contains(lower, ":focus") {
		return styledoc.TagFocusRing
	}
	for _, h := range nameHints {
		if strings.Contains(lower, h.substr) {
			return h.tag
		}
	}

	// Property votes: any outline property makes it a focus-ring block,
	// otherwise the majority category wins.
	votes := make(map[styledoc.SemanticTag]int)
	for raw := range props {
		prop := normalize.CanonicalProperty(raw)
		tag, ok := propertyTags[prop]
		if !ok {
			tag = tagFromPrefix(prop)
		}
		if tag == styledoc.TagNone {
			continue
		}
		if strings.HasPrefix(prop, "outline") {
			return styledoc.TagFocusRing
		}
		votes[tag]++
	}

	best, bestCount := styledoc.TagNone, 0
	for _, tag := range []styledoc.SemanticTag{
		styledoc.TagSpacing, styledoc.TagColor, styledoc.TagTypography, styledoc.TagFocusRing,
	} {
		if votes[tag] > bestCount {
			best, bestCount = tag, votes[tag]
		}
	}
	if bestCount*2 > len(props) {
		return best
	}
	return styledoc.TagNone
}

func tagFromPrefix(prop string) styledoc.SemanticTag {
	switch {
	case strings.HasPrefix(prop, "padding-"), strings.HasPrefix(prop, "margin-"):
		return styledoc.TagSpacing
	case strings.HasPrefix(prop, "font-"), strings.HasPrefix(prop, "text-"):
		return styledoc.TagTypography
	case strings.HasPrefix(prop, "outline"):
		return styledoc.TagFocusRing
	}
	return styledoc.TagNone
}
