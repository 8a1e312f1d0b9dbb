package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

var computedStylePattern = regexp.MustCompile(`(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*computed\(\s*\(\)\s*=>\s*\(\s*(\{)`)

// extractVue lifts styles out of a Vue single-file component: style object
// literals and computed style values declared in the <script> block, plus
// the rules of the <style> block.
func extractVue(path, text string) ([]*styledoc.StyleBlock, error) {
	var blocks []*styledoc.StyleBlock

	if start, end, ok, err := findSection(text, "script"); err != nil {
		return nil, err
	} else if ok {
		script := text[start:end]

		for _, m := range styleTablePattern.FindAllStringSubmatchIndex(script, -1) {
			name := script[m[2]:m[3]]
			if !looksLikeStyleName(name) {
				continue
			}
			entries, _, perr := parseJSObject(text, start+m[4])
			if perr != nil {
				return nil, fmt.Errorf("%s %q: %w", path, name, perr)
			}
			blocks = append(blocks, tableBlocks(path, name, entries)...)
		}

		for _, m := range computedStylePattern.FindAllStringSubmatchIndex(script, -1) {
			name := script[m[2]:m[3]]
			entries, _, perr := parseJSObject(text, start+m[4])
			if perr != nil {
				return nil, fmt.Errorf("%s computed %q: %w", path, name, perr)
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

// extractStyleSection parses every <style> block of an SFC into rule
// blocks. Shared by the Vue and Svelte extractors.
func extractStyleSection(path, text string) ([]*styledoc.StyleBlock, error) {
	var blocks []*styledoc.StyleBlock
	searchFrom := 0
	for {
		rel := text[searchFrom:]
		start, end, ok, err := findSection(rel, "style")
		if err != nil {
			return nil, err
		}
		if !ok {
			return blocks, nil
		}
		content := rel[start:end]
		baseLine := lineAt(text, searchFrom+start) - 1

		for _, rule := range parseCSSRules(content) {
			props := declsToMap(rule.decls)
			if len(props) == 0 {
				continue
			}
			blocks = append(blocks, &styledoc.StyleBlock{
				ID:          rule.selector,
				PropertyMap: props,
				Tag:         classify(rule.selector, props),
				Span: styledoc.Span{
					File:      path,
					StartLine: baseLine + rule.startLine,
					EndLine:   baseLine + rule.endLine,
				},
			})
		}
		searchFrom += end
	}
}

// findSection locates the content of the first <tag ...>...</tag> section,
// returning content offsets. A section that opens but never closes is a
// malformed source.
func findSection(text, tag string) (int, int, bool, error) {
	lower := strings.ToLower(text)
	openIdx := -1
	from := 0
	for {
		i := strings.Index(lower[from:], "<"+tag)
		if i < 0 {
			return 0, 0, false, nil
		}
		i += from
		// Reject partial matches like <styleguide>.
		after := i + 1 + len(tag)
		if after < len(lower) && lower[after] != '>' && lower[after] != ' ' && lower[after] != '\t' && lower[after] != '\n' {
			from = after
			continue
		}
		openIdx = i
		break
	}

	gt := strings.IndexByte(text[openIdx:], '>')
	if gt < 0 {
		return 0, 0, false, Unparseable("unterminated <%s> tag", tag)
	}
	contentStart := openIdx + gt + 1

	closeIdx := strings.Index(lower[contentStart:], "</"+tag+">")
	if closeIdx < 0 {
		return 0, 0, false, Unparseable("missing </%s>", tag)
	}
	return contentStart, contentStart + closeIdx, true, nil
}
