package report

import (
	"fmt"
	"io"
)

// Reporter writes issues and failures in a golangci-lint-shaped text
// format: location, message, detector suffix.
type Reporter struct {
	w             io.Writer
	useColors     bool
	printDetector bool
}

// NewReporter creates a reporter.
func NewReporter(w io.Writer, useColors, printDetector bool) *Reporter {
	return &Reporter{w: w, useColors: useColors, printDetector: printDetector}
}

// UseColors reports whether color output is active.
func (r *Reporter) UseColors() bool { return r.useColors }

// PrintIssues writes one line per issue plus any extra involved spans.
// Issues are assumed to be aggregator-ordered already.
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := ""
	if len(issue.Spans) > 0 {
		location = issue.Spans[0].String() + ":"
	}

	suffix := ""
	if r.printDetector {
		suffix = fmt.Sprintf(" (%s)", issue.Kind)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Message,
		RenderStyle(StyleGray, suffix, r.useColors))

	for _, span := range issue.Spans[min(1, len(issue.Spans)):] {
		fmt.Fprintf(r.w, "\t%s %s\n",
			RenderStyle(StyleGray, "also:", r.useColors),
			span.String())
	}
}

// FailureEntry is what PrintFailures renders; declared here so the
// reporter does not depend on the public package.
type FailureEntry struct {
	Path   string
	Reason string
}

// PrintFailures lists the files that could not be analyzed. Kept separate
// from the issue list so the two are never conflated.
func (r *Reporter) PrintFailures(failures []FailureEntry) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Files that could not be analyzed:", r.useColors))
	for _, f := range failures {
		fmt.Fprintf(r.w, "  %s: %s\n", f.Path, f.Reason)
	}
}

// PrintSummary writes the issue count breakdown.
func (r *Reporter) PrintSummary(issues []Issue, failureCount int) {
	var errors, warnings int
	kindCounts := make(map[Kind]int)
	for _, issue := range issues {
		kindCounts[issue.Kind]++
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(r.w, "")
	if len(issues) == 0 && failureCount == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "no issues found", r.useColors))
		return
	}

	fmt.Fprintf(r.w, "%s (%s, %s):\n",
		pluralizeCount(len(issues), "issue", "issues"),
		RenderStyle(StyleRed, pluralizeCount(errors, "error", "errors"), r.useColors),
		RenderStyle(StyleYellow, pluralizeCount(warnings, "warning", "warnings"), r.useColors))
	for _, kind := range []Kind{KindDrift, KindDuplicate, KindInconsistent} {
		if n := kindCounts[kind]; n > 0 {
			fmt.Fprintf(r.w, "* %s: %d\n", kind, n)
		}
	}
	if failureCount > 0 {
		fmt.Fprintf(r.w, "* %s\n",
			RenderStyle(StyleRed, pluralizeCount(failureCount, "file failed extraction", "files failed extraction"), r.useColors))
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
