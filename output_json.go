package uilint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the structured export schema consumed by downstream
// tooling. The issue list keeps the aggregator's deterministic order.
type JSONOutput struct {
	Version   string             `json:"version"`
	Timestamp string             `json:"timestamp"`
	Summary   JSONSummary        `json:"summary"`
	Issues    []Issue            `json:"issues"`
	Clusters  []DuplicateCluster `json:"clusters"`
	Failures  []ExtractFailure   `json:"failures"`
	Stats     Stats              `json:"stats"`
}

// JSONSummary contains the high-level counts.
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Clusters    int `json:"clusters"`
	Failures    int `json:"failures"`
}

// WriteJSON writes the analysis result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	out := JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      errors,
			Warnings:    warnings,
			Clusters:    len(result.Clusters),
			Failures:    len(result.Failures),
		},
		Issues:   result.Issues,
		Clusters: result.Clusters,
		Failures: result.Failures,
		Stats:    result.Stats,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
