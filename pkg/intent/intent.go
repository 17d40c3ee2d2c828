// Package intent extracts advisory domain, action and keyword signals from
// query text.
//
// Extraction output is consumed only as a tie-break fallback by the
// category classifier and as the keywords role text; a failing or absent
// extractor degrades matching quality, never correctness.
package intent

import "context"

// Extraction is the advisory output of an extractor. Empty fields mean the
// extractor found nothing for that signal.
type Extraction struct {
	Domain   string `json:"domain"`
	Action   string `json:"action"`
	Keywords string `json:"keywords"`
}

// Extractor derives intent signals from cleaned query text. Extract must
// be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, text string) (Extraction, error)
}
