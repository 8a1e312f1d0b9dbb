package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

var (
	// Style tables: const buttonStyles = { primary: {...}, ... }.
	// The optional annotation group tolerates TS types on the binding.
	styleTablePattern = regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=\n]+)?=\s*(\{)`)

	// Inline style props: style={{ padding: '16px' }}.
	inlineStylePattern = regexp.MustCompile(`style=\{\s*(\{)`)
)

// extractJSX lifts style maps out of a JSX/TSX component: object literals
// bound to style-flavored identifiers (one StyleBlock per variant key for
// variant tables, one for a flat map) and object literals bound directly
// to style props.
func extractJSX(path, text string) ([]*styledoc.StyleBlock, error) {
	var blocks []*styledoc.StyleBlock

	for _, m := range styleTablePattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if !looksLikeStyleName(name) {
			continue
		}
		open := m[4]
		entries, _, err := parseJSObject(text, open)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", path, name, err)
		}
		blocks = append(blocks, tableBlocks(path, name, entries)...)
	}

	for _, m := range inlineStylePattern.FindAllStringSubmatchIndex(text, -1) {
		open := m[2]
		entries, end, err := parseJSObject(text, open)
		if err != nil {
			return nil, fmt.Errorf("%s inline style: %w", path, err)
		}
		props := entriesToProperties(entries)
		if len(props) == 0 {
			continue
		}
		line := lineAt(text, m[0])
		id := fmt.Sprintf("style@%d", line)
		blocks = append(blocks, &styledoc.StyleBlock{
			ID:          id,
			PropertyMap: props,
			Tag:         classify(id, props),
			Span:        styledoc.Span{File: path, StartLine: line, EndLine: lineAt(text, end)},
		})
	}

	return blocks, nil
}

// tableBlocks expands one bound object into blocks: variant tables yield
// one block per variant key, flat maps yield a single block.
func tableBlocks(path, name string, entries []objectEntry) []*styledoc.StyleBlock {
	var blocks []*styledoc.StyleBlock

	if isVariantTable(entries) {
		for _, e := range entries {
			props := entriesToProperties(e.object)
			if len(props) == 0 {
				continue
			}
			id := name + "." + e.key
			blocks = append(blocks, &styledoc.StyleBlock{
				ID:          id,
				PropertyMap: props,
				Tag:         classify(id, props),
				Span:        styledoc.Span{File: path, StartLine: e.line, EndLine: e.endLine},
			})
		}
		return blocks
	}

	props := entriesToProperties(entries)
	if len(props) == 0 {
		return nil
	}
	start, end := entrySpan(entries)
	return []*styledoc.StyleBlock{{
		ID:          name,
		PropertyMap: props,
		Tag:         classify(name, props),
		Span:        styledoc.Span{File: path, StartLine: start, EndLine: end},
	}}
}

func entrySpan(entries []objectEntry) (int, int) {
	start, end := entries[0].line, entries[0].endLine
	for _, e := range entries {
		if e.line < start {
			start = e.line
		}
		if e.endLine > end {
			end = e.endLine
		}
	}
	return start, end
}

// looksLikeStyleName filters object bindings down to the ones that carry
// style data. Component code binds plenty of objects; only
// style-flavored names feed the pipeline.
func looksLikeStyleName(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range []string{"style", "theme", "variant", "css", "token"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
