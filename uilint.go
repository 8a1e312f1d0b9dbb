// Package uilint analyzes UI component sources written in three front-end
// dialects (JSX/TSX, Vue SFC, Svelte) for cross-framework style
// consistency defects.
//
// # Pipeline
//
// Each source file is reduced to a dialect-neutral style document, its
// values are canonicalized and resolved against a design-token registry,
// and three detectors run over the combined result:
//
//   - drift: hardcoded literals where a token reference was expected
//   - duplicates: exact and near-duplicate style blocks across components
//     and across frameworks
//   - consistency: divergence inside semantic groups such as focus rings
//
// Extraction is per-file and runs in parallel; the detectors need a global
// view and run after all extraction completes. A single malformed file
// degrades to a recorded failure, never a run abort.
//
// The analyzer never executes, renders, or type-checks components; it
// operates purely on their static style declarations.
package uilint

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rlefko/uilint/internal/detect"
	"github.com/rlefko/uilint/internal/extract"
	"github.com/rlefko/uilint/internal/normalize"
	"github.com/rlefko/uilint/internal/report"
	"github.com/rlefko/uilint/internal/styledoc"
	"github.com/rlefko/uilint/internal/tokens"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes one analysis run.
type Stats struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesFailed     int `json:"files_failed"`
	BlocksExtracted int `json:"blocks_extracted"`
	TokensLoaded    int `json:"tokens_loaded"`
}

// Result is the complete output of one run: the ordered issue list, the
// per-file failure list, and the duplicate clusters behind the duplicate
// issues. Failures are reported alongside issues so a malformed fixture
// never hides results for the rest of the corpus.
type Result struct {
	Issues   []Issue            `json:"issues"`
	Failures []ExtractFailure   `json:"failures"`
	Clusters []DuplicateCluster `json:"clusters"`
	Stats    Stats              `json:"stats"`
}

// ErrorCount returns the number of error-severity issues.
func (r *Result) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Analyze runs the full pipeline over the configured inputs.
//
// The token registry loads first and its failure is fatal: analysis cannot
// proceed without a token ground truth. Per-file extraction failures are
// recorded and never escalate. An internal comparison error aborts the run
// so a partial issue set is never surfaced.
func Analyze(ctx context.Context, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	reg, err := tokens.Load(cfg.TokensFile, normalize.Value)
	if err != nil {
		return nil, err
	}
	log.Debug("token registry loaded",
		zap.String("path", cfg.TokensFile),
		zap.Int("tokens", reg.Len()))

	docs, failures := extractAll(ctx, cfg, reg, log)

	// Arena order is source path then block order, fixed here so every
	// downstream choice (canonical members, majority ties) is independent
	// of input order.
	sort.Slice(docs, func(i, j int) bool { return docs[i].SourcePath < docs[j].SourcePath })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	refs := styledoc.AllBlocks(docs)

	driftIssues := detect.Drift(refs, cfg.ExemptValues)
	clusters, dupIssues, err := detect.Duplicates(ctx, refs, cfg.NearDuplicateThreshold, cfg.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("duplicate detection: %w", err)
	}
	consistencyIssues := detect.Consistency(refs)

	result := &Result{
		Issues:   report.Aggregate(driftIssues, dupIssues, consistencyIssues),
		Failures: failures,
		Clusters: clusters,
		Stats: Stats{
			FilesAnalyzed:   len(docs),
			FilesFailed:     len(failures),
			BlocksExtracted: len(refs),
			TokensLoaded:    reg.Len(),
		},
	}
	log.Debug("analysis complete",
		zap.Int("issues", len(result.Issues)),
		zap.Int("failures", len(result.Failures)),
		zap.Int("clusters", len(result.Clusters)))
	return result, nil
}

// extractAll extracts and normalizes every input concurrently, bounded by
// the parallelism limit. Each file is independent with no shared mutable
// state; the returned slices are assembled after the group barrier.
func extractAll(ctx context.Context, cfg Config, reg *tokens.Registry, log *zap.Logger) ([]*styledoc.StyleDocument, []ExtractFailure) {
	type slot struct {
		doc  *styledoc.StyleDocument
		fail *ExtractFailure
	}
	slots := make([]slot, len(cfg.Inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i, input := range cfg.Inputs {
		i, input := i, input
		g.Go(func() error {
			src, err := os.ReadFile(input.Path)
			if err != nil {
				slots[i].fail = &ExtractFailure{Path: input.Path, Reason: err.Error()}
				return nil
			}

			fctx, cancel := context.WithTimeout(gctx, cfg.ParseTimeout)
			defer cancel()
			doc, err := extract.ExtractWithTimeout(fctx, input.Path, input.Dialect, src)
			if err != nil {
				log.Warn("extraction failed",
					zap.String("path", input.Path),
					zap.Error(err))
				slots[i].fail = &ExtractFailure{Path: input.Path, Reason: err.Error()}
				return nil
			}

			if err := normalize.Document(doc, reg); err != nil {
				slots[i].fail = &ExtractFailure{Path: input.Path, Reason: err.Error()}
				return nil
			}
			slots[i].doc = doc
			return nil
		})
	}
	// Workers never return errors; per-file failures are data, not control
	// flow.
	_ = g.Wait()

	var docs []*styledoc.StyleDocument
	var failures []ExtractFailure
	for _, s := range slots {
		switch {
		case s.doc != nil:
			docs = append(docs, s.doc)
		case s.fail != nil:
			failures = append(failures, *s.fail)
		}
	}
	return docs, failures
}

// defaultParseTimeout converts a hung parse into a per-file failure.
const defaultParseTimeout = 5 * time.Second
