package uilint

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rlefko/uilint/internal/styledoc"
	"go.uber.org/zap"
)

// Dialect tags the source syntax of an input file.
type Dialect = styledoc.Dialect

// Supported dialects.
const (
	DialectJSX    = styledoc.DialectJSX
	DialectVue    = styledoc.DialectVue
	DialectSvelte = styledoc.DialectSvelte
)

// Input is one source file plus its dialect. Discovery (directory walks,
// globs) is the caller's responsibility; the analyzer takes an explicit
// list.
type Input struct {
	Path    string
	Dialect Dialect
}

// Config controls one analysis run.
type Config struct {
	Inputs []Input

	// TokensFile is the YAML design-token registry, the analyzer's ground
	// truth for drift detection.
	TokensFile string

	// NearDuplicateThreshold is the minimum Jaccard similarity for two
	// blocks to count as near-duplicates. Exact duplicates score 1.0.
	NearDuplicateThreshold float64

	// ExemptValues extends the built-in list of literals that are never
	// drift-flagged.
	ExemptValues []string

	// Parallelism bounds concurrent extraction workers and duplicate
	// comparison shards. Defaults to GOMAXPROCS.
	Parallelism int

	// ParseTimeout bounds a single file's extraction; a hang becomes a
	// per-file failure.
	ParseTimeout time.Duration

	Logger *zap.Logger
}

// DefaultNearDuplicateThreshold is the minimum Jaccard similarity at
// which two blocks cluster when no threshold is configured.
const DefaultNearDuplicateThreshold = 0.85

func (c Config) withDefaults() Config {
	if c.NearDuplicateThreshold == 0 {
		c.NearDuplicateThreshold = DefaultNearDuplicateThreshold
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.ParseTimeout <= 0 {
		c.ParseTimeout = defaultParseTimeout
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// DialectForPath infers the dialect from a file extension.
func DialectForPath(path string) (Dialect, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx", ".tsx":
		return DialectJSX, nil
	case ".vue":
		return DialectVue, nil
	case ".svelte":
		return DialectSvelte, nil
	}
	return "", fmt.Errorf("cannot infer dialect for %q", path)
}
