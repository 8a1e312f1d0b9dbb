// Package styledoc defines the dialect-neutral style representation shared
// by every pipeline stage: one StyleDocument per source file, one StyleBlock
// per cohesive style definition, and a tagged-union StyleValue.
//
// Documents and blocks are created once by the extractors and never mutated
// afterwards. Later stages (normalizer, detectors) only read them, which is
// what makes the parallel parts of the pipeline lock-free.
package styledoc

import "fmt"

// Dialect identifies the source syntax a document was extracted from.
type Dialect string

const (
	DialectJSX    Dialect = "jsx-react"
	DialectVue    Dialect = "vue-sfc"
	DialectSvelte Dialect = "svelte-sfc"
)

// ParseDialect converts a tag string into a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case DialectJSX, DialectVue, DialectSvelte:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unknown dialect %q", s)
}

// Span is a file + line range used to point issues at exact source lines.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

func (s Span) String() string {
	if s.EndLine > s.StartLine {
		return fmt.Sprintf("%s:%d-%d", s.File, s.StartLine, s.EndLine)
	}
	return fmt.Sprintf("%s:%d", s.File, s.StartLine)
}

// SemanticTag classifies a block by interaction/role intent, independent of
// the dialect it came from.
type SemanticTag string

const (
	TagNone       SemanticTag = ""
	TagFocusRing  SemanticTag = "focus-ring"
	TagSpacing    SemanticTag = "spacing"
	TagColor      SemanticTag = "color"
	TagTypography SemanticTag = "typography"
)

// StyleBlock is one cohesive style definition unit: a variant entry of a
// style table, an inline style object or attribute, or a CSS rule.
type StyleBlock struct {
	// ID is stable within the owning document, e.g. "buttonStyles.primary"
	// or ".btn:focus".
	ID string

	// PropertyMap maps canonical CSS property names to values. Keys are
	// unique; the normalizer rewrites values in place before the detectors
	// run, which is the only mutation a block ever sees.
	PropertyMap map[string]StyleValue

	Tag  SemanticTag
	Span Span
}

// PropertyCount returns the number of declared properties, counting
// composite values once.
func (b *StyleBlock) PropertyCount() int {
	return len(b.PropertyMap)
}

// StyleDocument is the extracted form of one source file.
type StyleDocument struct {
	SourcePath string
	Dialect    Dialect
	Blocks     []*StyleBlock
}

// BlockRef names one block globally: document plus block index.
// Detectors use it to address blocks in their integer-indexed arenas.
type BlockRef struct {
	Doc   *StyleDocument
	Index int
}

// Block returns the referenced block.
func (r BlockRef) Block() *StyleBlock {
	return r.Doc.Blocks[r.Index]
}

// AllBlocks flattens a set of documents into a deterministic arena, ordered
// by source path and then by block order within each document. The arena
// order is what makes canonical-member selection independent of the order
// files were scanned in.
func AllBlocks(docs []*StyleDocument) []BlockRef {
	var refs []BlockRef
	for _, doc := range docs {
		for i := range doc.Blocks {
			refs = append(refs, BlockRef{Doc: doc, Index: i})
		}
	}
	return refs
}
