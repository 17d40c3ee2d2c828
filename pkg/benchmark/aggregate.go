package benchmark

import "sort"

// CategoryStats is the per-query-category accuracy breakdown.
type CategoryStats struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Summary aggregates a benchmark run.
type Summary struct {
	Total            int                      `json:"total"`
	Correct          int                      `json:"correct"`
	Accuracy         float64                  `json:"accuracy"`
	CategoryAccuracy float64                  `json:"category_accuracy"`
	InScopeTotal     int                      `json:"in_scope_total"`
	InScopeCorrect   int                      `json:"in_scope_correct"`
	InScopeAccuracy  float64                  `json:"in_scope_accuracy"`
	OpenSetTotal     int                      `json:"oos_total"`
	OpenSetCorrect   int                      `json:"oos_correct"`
	OpenSetAccuracy  float64                  `json:"oos_accuracy"`
	LatencyMeanMS    float64                  `json:"latency_mean_ms"`
	LatencyP95MS     float64                  `json:"latency_p95_ms"`
	Categories       map[string]CategoryStats `json:"categories"`
}

// Aggregate computes the run summary. Open-set accuracy of an empty
// open-set slice is 1.0: nothing to abstain on means nothing was missed.
func Aggregate(results []Result) Summary {
	summary := Summary{
		Total:      len(results),
		Categories: make(map[string]CategoryStats),
	}

	latencies := make([]float64, 0, len(results))
	categoryCorrect := 0
	for _, r := range results {
		if r.Correct {
			summary.Correct++
		}
		if r.CategoryCorrect {
			categoryCorrect++
		}
		if r.ExpectedID != nil {
			summary.InScopeTotal++
			if r.Correct {
				summary.InScopeCorrect++
			}
		} else {
			summary.OpenSetTotal++
			if r.Correct {
				summary.OpenSetCorrect++
			}
		}
		latencies = append(latencies, r.LatencyMS)

		stats := summary.Categories[r.QueryCategory]
		stats.Total++
		if r.Correct {
			stats.Correct++
		}
		summary.Categories[r.QueryCategory] = stats
	}

	if summary.Total > 0 {
		summary.Accuracy = float64(summary.Correct) / float64(summary.Total)
		summary.CategoryAccuracy = float64(categoryCorrect) / float64(summary.Total)
	}
	if summary.InScopeTotal > 0 {
		summary.InScopeAccuracy = float64(summary.InScopeCorrect) / float64(summary.InScopeTotal)
	}
	if summary.OpenSetTotal > 0 {
		summary.OpenSetAccuracy = float64(summary.OpenSetCorrect) / float64(summary.OpenSetTotal)
	} else {
		summary.OpenSetAccuracy = 1.0
	}

	for name, stats := range summary.Categories {
		if stats.Total > 0 {
			stats.Accuracy = float64(stats.Correct) / float64(stats.Total)
		}
		summary.Categories[name] = stats
	}

	if len(latencies) > 0 {
		var sum float64
		for _, l := range latencies {
			sum += l
		}
		summary.LatencyMeanMS = sum / float64(len(latencies))

		sort.Float64s(latencies)
		idx := int(float64(len(latencies)) * 0.95)
		if idx >= len(latencies) {
			idx = len(latencies) - 1
		}
		summary.LatencyP95MS = latencies[idx]
	}

	return summary
}
