package extract

import (
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssDecl is one property declaration inside a rule, order preserved.
type cssDecl struct {
	name  string
	value string
}

// cssRule is one selector plus its declaration block.
type cssRule struct {
	selector  string
	decls     []cssDecl
	startLine int // relative to the parsed fragment, 1-based
	endLine   int
}

// parseCSSRules lexes a CSS fragment into rules. At-rule preludes
// (@media, @supports) are skipped; the rules nested inside them surface
// normally since the token stream is flat. Line numbers are relative to
// the fragment; callers offset them into the enclosing file.
func parseCSSRules(src string) []cssRule {
	lexer := css.NewLexer(parse.NewInputString(src))

	var rules []cssRule
	offset := 0
	selStart := -1
	var selector strings.Builder

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		tokStart := offset
		offset += len(data)

		switch tt {
		case css.CommentToken:
			continue
		case css.AtKeywordToken:
			offset = skipAtPrelude(lexer, offset)
			selector.Reset()
			selStart = -1
			continue
		case css.LeftBraceToken:
			sel := strings.Join(strings.Fields(selector.String()), " ")
			selector.Reset()
			if sel == "" {
				selStart = -1
				continue
			}
			start := selStart
			if start < 0 {
				start = tokStart
			}
			decls, end := readDeclarations(lexer, offset)
			rules = append(rules, cssRule{
				selector:  sel,
				decls:     decls,
				startLine: lineAt(src, start),
				endLine:   lineAt(src, end),
			})
			offset = end
			selStart = -1
			continue
		case css.RightBraceToken, css.SemicolonToken:
			// Closing brace of an at-rule body, or a stray semicolon.
			selector.Reset()
			selStart = -1
			continue
		}

		if selStart < 0 && tt != css.WhitespaceToken {
			selStart = tokStart
		}
		selector.Write(data)
	}
	return rules
}

// skipAtPrelude consumes an at-rule prelude up to its '{' or ';'.
func skipAtPrelude(lexer *css.Lexer, offset int) int {
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			return offset
		}
		offset += len(data)
		if tt == css.LeftBraceToken || tt == css.SemicolonToken {
			return offset
		}
	}
}

// readDeclarations reads property: value pairs until the closing brace,
// returning them in declaration order along with the end offset.
func readDeclarations(lexer *css.Lexer, offset int) ([]cssDecl, int) {
	var decls []cssDecl
	var prop string
	var val strings.Builder

	flush := func() {
		if prop != "" && val.Len() > 0 {
			decls = append(decls, cssDecl{name: prop, value: strings.TrimSpace(val.String())})
		}
		prop = ""
		val.Reset()
	}

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			flush()
			return decls, offset
		}
		offset += len(data)

		switch {
		case tt == css.RightBraceToken:
			flush()
			return decls, offset
		case tt == css.SemicolonToken:
			flush()
		case tt == css.CommentToken:
			// ignored
		case (tt == css.IdentToken || tt == css.CustomPropertyNameToken) && prop == "":
			prop = string(data)
		case tt == css.ColonToken && prop != "" && val.Len() == 0:
			// separator
		case prop != "":
			val.Write(data)
		}
	}
}

// declsToMap converts ordered declarations into the raw property map,
// later keys overriding earlier ones the way the cascade does.
func declsToMap(decls []cssDecl) map[string]styledoc.StyleValue {
	m := make(map[string]styledoc.StyleValue, len(decls))
	for _, d := range decls {
		m[d.name] = styledoc.Literal(d.value, "")
	}
	return m
}
