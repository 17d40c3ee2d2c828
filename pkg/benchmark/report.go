package benchmark

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const reportWidth = 80

// Report renders the human-readable benchmark summary with a per-category
// breakdown and a failure listing.
func Report(w io.Writer, summary Summary, results []Result) {
	rule := strings.Repeat("=", reportWidth)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "  FAQ HELPDESK BENCHMARK — RESULTS")
	fmt.Fprintln(w, rule)

	fmt.Fprintf(w, "\n  %-30s %10s\n", "Metric", "Value")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 42))
	fmt.Fprintf(w, "  %-30s %10d\n", "Total queries", summary.Total)
	fmt.Fprintf(w, "  %-30s %9.1f%%\n", "Match accuracy (top-1)", summary.Accuracy*100)
	fmt.Fprintf(w, "  %-30s %9.1f%%  (%d/%d)\n", "In-scope accuracy",
		summary.InScopeAccuracy*100, summary.InScopeCorrect, summary.InScopeTotal)
	fmt.Fprintf(w, "  %-30s %9.1f%%  (%d/%d)\n", "Open-set abstain accuracy",
		summary.OpenSetAccuracy*100, summary.OpenSetCorrect, summary.OpenSetTotal)
	fmt.Fprintf(w, "  %-30s %9.1f%%\n", "Category accuracy", summary.CategoryAccuracy*100)
	fmt.Fprintf(w, "  %-30s %9.1f\n", "Latency mean (ms)", summary.LatencyMeanMS)
	fmt.Fprintf(w, "  %-30s %9.1f\n", "Latency p95 (ms)", summary.LatencyP95MS)

	fmt.Fprintf(w, "\n  %-20s %8s %4s\n", "Category", "Acc", "n")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 34))
	names := make([]string, 0, len(summary.Categories))
	for name := range summary.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := summary.Categories[name]
		fmt.Fprintf(w, "  %-20s %7.1f%% %4d\n", name, stats.Accuracy*100, stats.Total)
	}

	var failures []Result
	for _, r := range results {
		if !r.Correct {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		fmt.Fprintf(w, "\n  FAILURES (%d):\n", len(failures))
		for _, r := range failures {
			expected := "null"
			if r.ExpectedID != nil {
				expected = *r.ExpectedID
			}
			got := "null"
			if r.ResultID != nil {
				got = *r.ResultID
			}
			query := r.Query
			if len(query) > 55 {
				query = query[:55]
			}
			fmt.Fprintf(w, "    [%15s]  %-55s  exp=%s  got=%s  conf=%.3f\n",
				r.Label, query, expected, got, r.Confidence)
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
}
