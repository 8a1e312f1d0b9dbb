package extract

import (
	"regexp"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

// objectEntry is one key of a JS object literal. Exactly one of value or
// object is set: scalar entries carry their raw value text, nested object
// entries carry their children.
type objectEntry struct {
	key     string
	value   string
	object  []objectEntry
	line    int // 1-based line of the key within the whole file
	endLine int
}

// parseJSObject reads a balanced object literal starting at the opening
// brace. It tracks nesting depth the same way the top-level value splitter
// does, and understands strings, template literals, and comments well
// enough not to miscount braces inside them.
//
// Returns the entries, the offset one past the closing brace, or an
// ErrUnparseable when the literal never closes.
func parseJSObject(text string, open int) ([]objectEntry, int, error) {
	if open >= len(text) || text[open] != '{' {
		return nil, open, Unparseable("expected '{' at offset %d", open)
	}

	var entries []objectEntry
	i := open + 1
	for {
		i = skipJSNoise(text, i)
		if i >= len(text) {
			return nil, i, Unparseable("unterminated object literal")
		}
		if text[i] == '}' {
			return entries, i + 1, nil
		}
		if text[i] == ',' {
			i++
			continue
		}

		key, next, ok := readJSKey(text, i)
		if !ok {
			// Spreads, computed keys, methods: skip to the next comma at
			// this depth rather than failing the whole file.
			i = skipToSiblingComma(text, i)
			continue
		}
		keyLine := lineAt(text, i)
		i = skipJSNoise(text, next)
		if i >= len(text) || text[i] != ':' {
			i = skipToSiblingComma(text, i)
			continue
		}
		i = skipJSNoise(text, i+1)
		if i >= len(text) {
			return nil, i, Unparseable("unterminated object literal")
		}

		if text[i] == '{' {
			children, end, err := parseJSObject(text, i)
			if err != nil {
				return nil, end, err
			}
			entries = append(entries, objectEntry{
				key:     key,
				object:  children,
				line:    keyLine,
				endLine: lineAt(text, end),
			})
			i = end
			continue
		}

		raw, end := readJSValue(text, i)
		entries = append(entries, objectEntry{
			key:     key,
			value:   strings.TrimSpace(raw),
			line:    keyLine,
			endLine: lineAt(text, end),
		})
		i = end
	}
}

// readJSKey reads an identifier or quoted key at offset i.
func readJSKey(text string, i int) (string, int, bool) {
	if i >= len(text) {
		return "", i, false
	}
	if text[i] == '"' || text[i] == '\'' {
		quote := text[i]
		j := i + 1
		for j < len(text) && text[j] != quote {
			if text[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(text) {
			return "", i, false
		}
		return text[i+1 : j], j + 1, true
	}
	j := i
	for j < len(text) && (isIdentByte(text[j]) || text[j] == '-') {
		j++
	}
	if j == i {
		return "", i, false
	}
	return text[i:j], j, true
}

// readJSValue reads a scalar value up to the sibling comma or closing
// brace, honoring nested brackets and strings.
func readJSValue(text string, i int) (string, int) {
	depth := 0
	start := i
	for i < len(text) {
		c := text[i]
		switch c {
		case '\'', '"', '`':
			i = skipJSString(text, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']':
			depth--
		case '}':
			if depth == 0 {
				return text[start:i], i
			}
			depth--
		case ',':
			if depth == 0 {
				return text[start:i], i
			}
		case '/':
			if i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*') {
				i = skipJSComment(text, i)
				continue
			}
		}
		i++
	}
	return text[start:i], i
}

// skipToSiblingComma advances past one entry the parser chose not to keep.
func skipToSiblingComma(text string, i int) int {
	_, end := readJSValue(text, i)
	if end < len(text) && text[end] == ',' {
		return end + 1
	}
	return end
}

// skipJSNoise advances past whitespace and comments.
func skipJSNoise(text string, i int) int {
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*'):
			i = skipJSComment(text, i)
		default:
			return i
		}
	}
	return i
}

func skipJSComment(text string, i int) int {
	if text[i+1] == '/' {
		for i < len(text) && text[i] != '\n' {
			i++
		}
		return i
	}
	end := strings.Index(text[i+2:], "*/")
	if end < 0 {
		return len(text)
	}
	return i + 2 + end + 2
}

func skipJSString(text string, i int) int {
	quote := text[i]
	i++
	for i < len(text) {
		if text[i] == '\\' {
			i += 2
			continue
		}
		if text[i] == quote {
			return i + 1
		}
		i++
	}
	return i
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

var numericValue = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)$`)

// entriesToProperties converts flat scalar entries into a property map,
// dropping nested objects and non-style values. A value counts as a
// style declaration only when it is a closed string literal without
// interpolation or a bare number; everything else (arrow functions,
// concatenations like size + 'px', identifiers, calls) is code. Values
// keep their raw text; normalization happens in the next stage.
func entriesToProperties(entries []objectEntry) map[string]styledoc.StyleValue {
	props := make(map[string]styledoc.StyleValue)
	for _, e := range entries {
		if e.object != nil {
			continue
		}
		raw := strings.TrimSpace(e.value)
		if raw == "" || strings.Contains(raw, "=>") {
			continue
		}
		first := raw[0]
		quoted := len(raw) >= 2 &&
			(first == '\'' || first == '"' || first == '`') &&
			raw[len(raw)-1] == first
		switch {
		case quoted && strings.Contains(raw, "${"):
			continue
		case !quoted && !numericValue.MatchString(raw):
			continue
		}
		props[e.key] = styledoc.Literal(strings.Trim(raw, "\"'`"), "")
	}
	return props
}

// isVariantTable reports whether every kept entry of an object is itself
// an object, i.e. a variant->style table rather than a flat style map.
func isVariantTable(entries []objectEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if e.object == nil {
			return false
		}
	}
	return true
}
