package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wlin-papers/papercite/internal/meta"
)

// Title truncation length for human-readable batch summaries.
const summaryTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// BatchResult is the response for scan and rename commands.
type BatchResult struct {
	Papers  []*meta.Paper `json:"papers"`
	Total   int           `json:"total"`
	Success int           `json:"success"`
	Errors  int           `json:"errors"`
	DryRun  bool          `json:"dry_run,omitempty"`
}

func newBatchResult(papers []*meta.Paper, dryRun bool) BatchResult {
	res := BatchResult{Papers: papers, Total: len(papers), DryRun: dryRun}
	for _, p := range papers {
		switch p.Status {
		case meta.StatusSuccess:
			res.Success++
		case meta.StatusError:
			res.Errors++
		}
	}
	return res
}

// printBatchHuman prints a batch result in human-readable format.
func printBatchHuman(res BatchResult) {
	for _, p := range res.Papers {
		switch p.Status {
		case meta.StatusSuccess:
			fmt.Printf("  %s\n    -> %s\n", p.OriginalFilename(), p.NewFilename)
		case meta.StatusError:
			fmt.Printf("  %s\n    !! %s\n", p.OriginalFilename(), p.ErrorMessage)
		default:
			fmt.Printf("  %s (%s)\n", p.OriginalFilename(), p.Status)
		}
	}
	fmt.Printf("\n%d papers: %d renamed, %d errors\n", res.Total, res.Success, res.Errors)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatAuthorsShort joins author full names with "et al." past maxCount.
func formatAuthorsShort(authors []meta.Author, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, a.FullName)
	}
	return strings.Join(names, ", ")
}
