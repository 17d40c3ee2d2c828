package faqmatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soundprediction/faqmatch/pkg/classify"
	"github.com/soundprediction/faqmatch/pkg/corpus"
	"github.com/soundprediction/faqmatch/pkg/encoder"
	"github.com/soundprediction/faqmatch/pkg/intent"
	"github.com/soundprediction/faqmatch/pkg/normalize"
	"github.com/soundprediction/faqmatch/pkg/scorer"
	"github.com/soundprediction/faqmatch/pkg/types"
)

var (
	// ErrEmptyQuery is returned when a query contains no text after
	// cleaning.
	ErrEmptyQuery = errors.New("query has no text")
)

// Config holds configuration for the matcher client.
type Config struct {
	// Threshold is the confidence threshold for a match decision.
	Threshold float64
	// RoleWeights combines per-role similarities into one score. Nil
	// falls back to the calibrated defaults.
	RoleWeights scorer.RoleWeights
	// Classifier overrides the category inference tables. Nil falls
	// back to the built-in helpdesk tables.
	Classifier *classify.Classifier
	// BundleCache optionally persists encoded entry bundles across runs.
	BundleCache *corpus.BundleCache
}

// Client matches free-text questions against an encoded FAQ corpus. The
// corpus snapshot is replaced atomically, so concurrent Match calls always
// see a consistent corpus even across reloads. Everything else in the
// client is immutable after construction.
type Client struct {
	normalizer *normalize.Normalizer
	engine     encoder.Engine
	extractor  intent.Extractor
	builder    *corpus.Builder
	snapshot   atomic.Pointer[corpus.Snapshot]
	weights    scorer.RoleWeights
	threshold  float64
	cache      *corpus.BundleCache
	logger     *slog.Logger
}

// NewClient creates a matcher client. The engine is required; a nil
// extractor disables intent hints, a nil config uses calibrated defaults
// and a nil logger falls back to slog.Default().
func NewClient(engine encoder.Engine, extractor intent.Extractor, config *Config, logger *slog.Logger) (*Client, error) {
	if engine == nil {
		return nil, fmt.Errorf("encoding engine is required")
	}
	if config == nil {
		config = &Config{Threshold: scorer.DefaultThreshold}
	}
	if config.RoleWeights == nil {
		config.RoleWeights = scorer.DefaultRoleWeights()
	}
	if logger == nil {
		logger = slog.Default()
	}

	normalizer := normalize.New(config.Classifier)
	return &Client{
		normalizer: normalizer,
		engine:     engine,
		extractor:  extractor,
		builder:    corpus.NewBuilder(normalizer, engine, config.BundleCache, logger),
		weights:    config.RoleWeights,
		threshold:  config.Threshold,
		cache:      config.BundleCache,
		logger:     logger,
	}, nil
}

// LoadCorpus encodes entries and installs them as the active corpus
// snapshot. In-flight Match calls keep scoring against the previous
// snapshot until the swap.
func (c *Client) LoadCorpus(ctx context.Context, entries []corpus.Entry) error {
	snapshot, err := c.builder.Build(ctx, entries)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	c.snapshot.Store(snapshot)
	return nil
}

// LoadCorpusFile loads a JSONL corpus file and installs it.
func (c *Client) LoadCorpusFile(ctx context.Context, path string) error {
	entries, err := corpus.LoadFile(path, c.logger)
	if err != nil {
		return err
	}
	return c.LoadCorpus(ctx, entries)
}

// Snapshot returns the active corpus snapshot, which may be nil before the
// first load.
func (c *Client) Snapshot() *corpus.Snapshot {
	return c.snapshot.Load()
}

// Match scores query against every corpus entry and applies the configured
// threshold. An empty corpus degrades to the all-nil abstain result with
// confidence 0; an unparseable query is an error.
func (c *Client) Match(ctx context.Context, query string) (*types.MatchResult, error) {
	return c.MatchWithThreshold(ctx, query, c.threshold)
}

// MatchWithThreshold is Match with a per-call threshold override, used by
// the benchmark harness to sweep calibration values over one corpus.
func (c *Client) MatchWithThreshold(ctx context.Context, query string, threshold float64) (*types.MatchResult, error) {
	start := time.Now()

	cleaned := normalize.Clean(query)
	if cleaned == "" {
		return nil, fmt.Errorf("%q: %w", query, ErrEmptyQuery)
	}

	record := c.normalizer.QueryToRecord(query, c.extract(ctx, cleaned))
	concept := corpus.ConceptFromRecord(record)
	concept.Name = normalize.QueryName(query)

	bundle, err := c.engine.Encode(ctx, concept)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	queryRoles := encoder.Flatten(bundle)

	ranked, err := scorer.Rank(queryRoles, c.snapshot.Load().Candidates(), c.weights)
	if err != nil {
		return nil, fmt.Errorf("rank corpus: %w", err)
	}

	result := scorer.Decide(ranked, threshold)
	result.LatencyMS = float64(time.Since(start)) / float64(time.Millisecond)
	return result, nil
}

// extract runs the intent extractor on the cleaned query text. Extraction
// is advisory, so failures log a warning and degrade to no hints instead
// of failing the match.
func (c *Client) extract(ctx context.Context, cleaned string) intent.Extraction {
	if c.extractor == nil {
		return intent.Extraction{}
	}
	ext, err := c.extractor.Extract(ctx, cleaned)
	if err != nil {
		c.logger.Warn("intent extraction failed, matching without hints", "error", err)
		return intent.Extraction{}
	}
	return ext
}

// Threshold returns the configured confidence threshold.
func (c *Client) Threshold() float64 {
	return c.threshold
}

// Close releases the encoding engine and the bundle cache.
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	if err := c.engine.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close engine: %w", err))
	}
	if c.cache != nil {
		if err := c.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close bundle cache: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
