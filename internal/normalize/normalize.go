// Package normalize canonicalizes extracted style blocks so dialect noise
// cannot defeat comparison: property aliases collapse to one kebab-case
// spelling, units are coerced, and every value is token-resolved against
// the registry.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/rlefko/uilint/internal/tokens"
)

// RootFontSize is the px size of 1rem used for unit coercion.
const RootFontSize = 16.0

// propertyAliases maps non-canonical spellings to the canonical one.
// CamelCase JS property names are handled structurally by camelToKebab;
// this table covers the remaining spelling drift between dialects.
var propertyAliases = map[string]string{
	"bg":                 "background-color",
	"background":         "background-color",
	"webkit-box-shadow":  "box-shadow",
	"-webkit-box-shadow": "box-shadow",
	"-moz-outline":       "outline",
}

var (
	varRefPattern  = regexp.MustCompile(`^var\(\s*(--[a-zA-Z0-9-]+)\s*(?:,[^)]*)?\)$`)
	numericPattern = regexp.MustCompile(`^(-?(?:\d+\.?\d*|\.\d+))(px|rem|em|%|vh|vw|ms|s)?$`)
	shortHex       = regexp.MustCompile(`^#[0-9a-f]{3}$`)
)

// CanonicalProperty converts a dialect property name to canonical
// kebab-case CSS spelling ("backgroundColor" and "background" both become
// "background-color").
func CanonicalProperty(name string) string {
	kebab := camelToKebab(strings.TrimSpace(name))
	if canonical, ok := propertyAliases[kebab]; ok {
		return canonical
	}
	return kebab
}

func camelToKebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Value normalizes a raw value's text: quotes and excess whitespace are
// stripped, hex colors are lowercased and expanded to six digits, rem is
// coerced to px, and bare zeros lose their unit. The returned unit is the
// post-coercion unit ("" for unitless and keyword values).
func Value(raw string) (string, string) {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, `"'`)
	v = strings.Join(strings.Fields(v), " ")
	v = strings.ToLower(v)

	if shortHex.MatchString(v) {
		v = "#" + strings.Repeat(string(v[1]), 2) +
			strings.Repeat(string(v[2]), 2) +
			strings.Repeat(string(v[3]), 2)
		return v, ""
	}

	if m := numericPattern.FindStringSubmatch(v); m != nil {
		num, unit := m[1], m[2]
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return v, unit
		}
		if f == 0 {
			return "0", ""
		}
		if unit == "rem" {
			f *= RootFontSize
			unit = "px"
		}
		return formatNumber(f) + unit, unit
	}

	return v, ""
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// Resolve converts one raw value into its StyleValue form.
//
// Resolution order, per the registry contract:
//  1. var(--name) reference syntax whose name exists in the registry
//     becomes an explicit token reference;
//  2. otherwise a registry token whose resolved value equals the literal
//     after unit normalization becomes a by-value token reference;
//  3. otherwise the value stays a literal and is drift-eligible.
//
// Comma-separated multi-part values (box-shadow layers, font stacks)
// become composites with each part resolved independently.
func Resolve(raw string, reg *tokens.Registry) styledoc.StyleValue {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))

	if m := varRefPattern.FindStringSubmatch(trimmed); m != nil {
		name := m[1]
		if _, ok := reg.Lookup(name); ok {
			return styledoc.Token(name, trimmed)
		}
		// Reference to an unregistered token: stays a literal so the
		// drift detector sees it.
		return styledoc.Literal(trimmed, "")
	}

	if parts := splitTopLevel(trimmed, ','); len(parts) > 1 {
		children := make([]styledoc.StyleValue, len(parts))
		for i, p := range parts {
			children[i] = Resolve(p, reg)
		}
		return styledoc.Composite(strings.ToLower(trimmed), children)
	}

	norm, unit := Value(trimmed)
	if names := reg.NamesForValue(norm); len(names) > 0 {
		return styledoc.TokenByValue(names[0], norm, unit)
	}
	return styledoc.Literal(norm, unit)
}

// splitTopLevel splits on sep outside of parentheses, the same
// depth-tracking walk the extractors use for object literals.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			current.WriteRune(r)
		case ')':
			depth--
			current.WriteRune(r)
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

// Block canonicalizes a block's property map in place: keys collapse to
// canonical spellings and values are token-resolved. When two aliases of
// the same property collide, the later key (in sorted raw-key order) wins
// deterministically.
func Block(b *styledoc.StyleBlock, reg *tokens.Registry) error {
	canonical := make(map[string]styledoc.StyleValue, len(b.PropertyMap))
	for _, key := range sortedKeys(b.PropertyMap) {
		prop := CanonicalProperty(key)
		canonical[prop] = Resolve(b.PropertyMap[key].Raw, reg)
	}
	b.PropertyMap = canonical
	return nil
}

// Document normalizes every block of a document.
func Document(doc *styledoc.StyleDocument, reg *tokens.Registry) error {
	for _, b := range doc.Blocks {
		if err := Block(b, reg); err != nil {
			return fmt.Errorf("normalize %s %s: %w", doc.SourcePath, b.ID, err)
		}
	}
	return nil
}

func sortedKeys(m map[string]styledoc.StyleValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
