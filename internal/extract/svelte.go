package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

var inlineStyleAttr = regexp.MustCompile(`style\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// extractSvelte lifts styles out of a Svelte component: inline style
// attributes in the markup plus the trailing <style> block. Script-bound
// style objects occur in Svelte too and reuse the JSX table logic.
func extractSvelte(path, text string) ([]*styledoc.StyleBlock, error) {
	var blocks []*styledoc.StyleBlock

	markupEnd := len(text)
	if i := strings.Index(strings.ToLower(text), "<style"); i >= 0 {
		markupEnd = i
	}
	markup := text[:markupEnd]

	for _, m := range inlineStyleAttr.FindAllStringSubmatchIndex(markup, -1) {
		raw := submatch(markup, m, 1)
		if raw == "" {
			raw = submatch(markup, m, 2)
		}
		props := parseInlineDeclarations(raw)
		if len(props) == 0 {
			continue
		}
		line := lineAt(text, m[0])
		id := fmt.Sprintf("style@%d", line)
		blocks = append(blocks, &styledoc.StyleBlock{
			ID:          id,
			PropertyMap: props,
			Tag:         classify(elementContext(markup, m[0]), props),
			Span:        styledoc.Span{File: path, StartLine: line, EndLine: line},
		})
	}

	if start, end, ok, err := findSection(text, "script"); err != nil {
		return nil, err
	} else if ok {
		script := text[start:end]
		for _, sm := range styleTablePattern.FindAllStringSubmatchIndex(script, -1) {
			name := script[sm[2]:sm[3]]
			if !looksLikeStyleName(name) {
				continue
			}
			entries, _, perr := parseJSObject(text, start+sm[4])
			if perr != nil {
				return nil, fmt.Errorf("%s %q: %w", path, name, perr)
			}
			blocks = append(blocks, tableBlocks(path, name, entries)...)
		}
	}

	styleBlocks, err := extractStyleSection(path, text)
	if err != nil {
		return nil, err
	}
	blocks = append(blocks, styleBlocks...)

	return blocks, nil
}

// parseInlineDeclarations reads a style attribute's declaration list.
func parseInlineDeclarations(s string) map[string]styledoc.StyleValue {
	props := make(map[string]styledoc.StyleValue)
	for _, decl := range strings.Split(s, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		props[name] = styledoc.Literal(value, "")
	}
	return props
}

// elementContext recovers naming context for an inline style: the opening
// tag and its class attribute, so a focus-flavored class still tags the
// block.
func elementContext(markup string, attrOffset int) string {
	open := strings.LastIndexByte(markup[:attrOffset], '<')
	if open < 0 {
		return ""
	}
	close := strings.IndexByte(markup[open:], '>')
	if close < 0 {
		return markup[open:attrOffset]
	}
	return markup[open : open+close]
}

func submatch(s string, m []int, group int) string {
	if m[2*group] < 0 {
		return ""
	}
	return s[m[2*group]:m[2*group+1]]
}
