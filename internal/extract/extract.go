// Package extract turns framework source files into dialect-neutral style
// documents. Each dialect gets an independent extractor selected by tag;
// there is no shared parse tree, only the shared StyleDocument output.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rlefko/uilint/internal/styledoc"
)

// ErrUnparseable marks a per-file extraction failure. It is recoverable:
// the caller records it and continues with the rest of the corpus.
var ErrUnparseable = errors.New("unparseable source")

// Unparseable wraps a reason into an ErrUnparseable failure.
func Unparseable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnparseable, fmt.Sprintf(format, args...))
}

// Extract produces a StyleDocument from one source file's text.
func Extract(path string, dialect styledoc.Dialect, src []byte) (*styledoc.StyleDocument, error) {
	text := string(src)
	if strings.ContainsRune(text, 0) {
		return nil, Unparseable("binary content")
	}

	var (
		blocks []*styledoc.StyleBlock
		err    error
	)
	switch dialect {
	case styledoc.DialectJSX:
		blocks, err = extractJSX(path, text)
	case styledoc.DialectVue:
		blocks, err = extractVue(path, text)
	case styledoc.DialectSvelte:
		blocks, err = extractSvelte(path, text)
	default:
		return nil, fmt.Errorf("no extractor for dialect %q", dialect)
	}
	if err != nil {
		return nil, err
	}

	return &styledoc.StyleDocument{
		SourcePath: path,
		Dialect:    dialect,
		Blocks:     blocks,
	}, nil
}

// ExtractWithTimeout runs Extract with a deadline. A hang converts into an
// ErrUnparseable failure for that file only, never a pipeline abort.
func ExtractWithTimeout(ctx context.Context, path string, dialect styledoc.Dialect, src []byte) (*styledoc.StyleDocument, error) {
	type result struct {
		doc *styledoc.StyleDocument
		err error
	}
	done := make(chan result, 1)

	go func() {
		doc, err := Extract(path, dialect, src)
		done <- result{doc, err}
	}()

	select {
	case r := <-done:
		return r.doc, r.err
	case <-ctx.Done():
		return nil, Unparseable("parse timeout: %v", ctx.Err())
	}
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return 1 + strings.Count(text[:offset], "\n")
}
