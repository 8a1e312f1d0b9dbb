package uilint

import (
	"github.com/rlefko/uilint/internal/detect"
	"github.com/rlefko/uilint/internal/report"
	"github.com/rlefko/uilint/internal/styledoc"
)

// Issue is the unit of analyst-facing output; see the report package for
// the ID derivation and ordering contract.
type Issue = report.Issue

// IssueKind classifies issues by detector family.
type IssueKind = report.Kind

// Issue kinds.
const (
	KindDriftViolation    = report.KindDrift
	KindDuplicateStyle    = report.KindDuplicate
	KindInconsistentState = report.KindInconsistent
)

// Severity levels.
type Severity = report.Severity

const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)

// SourceSpan points an issue at exact source lines.
type SourceSpan = styledoc.Span

// DuplicateCluster is a set of style blocks judged equivalent under the
// similarity threshold, with a deterministically chosen canonical member.
type DuplicateCluster = detect.Cluster

// Duplicate cluster scopes.
const (
	ScopeIntraFile      = detect.ScopeIntraFile
	ScopeCrossFile      = detect.ScopeCrossFile
	ScopeCrossFramework = detect.ScopeCrossFramework
)

// ExtractFailure records one file that could not be analyzed. The final
// report always distinguishes issues found from files that failed.
type ExtractFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}
