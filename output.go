package uilint

import (
	"io"
	"os"

	"github.com/rlefko/uilint/internal/report"
)

// OutputFormat selects how a Result is rendered.
type OutputFormat string

const (
	// OutputIssues shows only the issue list (CI-friendly default).
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows counts and clusters without individual issues.
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues, failures, summary, and clusters.
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data for tooling integration.
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat resolves the format flag; unknown values fall back
// to the issues-only default.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOptions control the text renderers.
type WriteOptions struct {
	UseColors     bool
	PrintDetector bool
}

// WriteOutput renders a result in the given format. The analyzer itself
// performs no formatting; this is the rendering layer callers opt into.
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts WriteOptions) {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			os.Stderr.WriteString("error writing JSON: " + err.Error() + "\n")
		}
	case OutputSummary:
		r := report.NewReporter(w, opts.UseColors, opts.PrintDetector)
		r.PrintSummary(result.Issues, len(result.Failures))
		r.PrintFailures(failureEntries(result.Failures))
	case OutputFull:
		r := report.NewReporter(w, opts.UseColors, opts.PrintDetector)
		r.PrintIssues(result.Issues)
		r.PrintFailures(failureEntries(result.Failures))
		r.PrintSummary(result.Issues, len(result.Failures))
	default:
		r := report.NewReporter(w, opts.UseColors, opts.PrintDetector)
		r.PrintIssues(result.Issues)
		r.PrintFailures(failureEntries(result.Failures))
		r.PrintSummary(result.Issues, len(result.Failures))
	}
}

func failureEntries(failures []ExtractFailure) []report.FailureEntry {
	entries := make([]report.FailureEntry, len(failures))
	for i, f := range failures {
		entries[i] = report.FailureEntry{Path: f.Path, Reason: f.Reason}
	}
	return entries
}
