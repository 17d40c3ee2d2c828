package faqmatch

import (
	"context"

	"github.com/soundprediction/faqmatch/pkg/corpus"
	"github.com/soundprediction/faqmatch/pkg/types"
)

// This file defines focused interfaces so consumers can depend on the
// smallest surface that meets their needs. Client implements all of them.

// QueryMatcher answers free-text questions against the loaded corpus.
type QueryMatcher interface {
	// Match scores query against every corpus entry and applies the
	// configured confidence threshold. Abstain is a first-class outcome,
	// not an error.
	Match(ctx context.Context, query string) (*types.MatchResult, error)

	// MatchWithThreshold is Match with a per-call threshold override.
	MatchWithThreshold(ctx context.Context, query string, threshold float64) (*types.MatchResult, error)
}

// CorpusManager loads and exposes the encoded corpus snapshot.
type CorpusManager interface {
	// LoadCorpus encodes entries and atomically installs them as the
	// active snapshot.
	LoadCorpus(ctx context.Context, entries []corpus.Entry) error

	// LoadCorpusFile loads a JSONL corpus file and installs it.
	LoadCorpusFile(ctx context.Context, path string) error

	// Snapshot returns the active corpus snapshot, nil before first load.
	Snapshot() *corpus.Snapshot
}

// Matcher is the full client surface.
type Matcher interface {
	QueryMatcher
	CorpusManager

	// Close releases the encoding engine and any attached cache.
	Close(ctx context.Context) error
}

// Compile-time check that Client satisfies the composed interface.
var _ Matcher = (*Client)(nil)
