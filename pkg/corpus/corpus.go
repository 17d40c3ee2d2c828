package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soundprediction/faqmatch/pkg/encoder"
	"github.com/soundprediction/faqmatch/pkg/normalize"
	"github.com/soundprediction/faqmatch/pkg/scorer"
	"github.com/soundprediction/faqmatch/pkg/types"
)

// Snapshot is the encoded, read-only corpus. Build one per load; never
// mutate it. Concurrent readers need no locking as long as reloads swap a
// fresh Snapshot instead of touching an existing one.
type Snapshot struct {
	candidates []scorer.Candidate
	dimension  int
}

// Candidates returns the encoded entries in corpus order. Callers must
// treat the returned slice and its bundles as read-only.
func (s *Snapshot) Candidates() []scorer.Candidate {
	if s == nil {
		return nil
	}
	return s.candidates
}

// Len returns the number of encoded entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}

// Dimension returns the role-vector dimension shared by all entries.
func (s *Snapshot) Dimension() int {
	if s == nil {
		return 0
	}
	return s.dimension
}

// Builder normalizes and encodes corpus entries into Snapshots. An
// optional BundleCache short-circuits re-encoding of unchanged entries.
type Builder struct {
	normalizer *normalize.Normalizer
	engine     encoder.Engine
	cache      *BundleCache
	logger     *slog.Logger
}

// NewBuilder creates a Builder. The cache may be nil; a nil logger falls
// back to slog.Default().
func NewBuilder(normalizer *normalize.Normalizer, engine encoder.Engine, cache *BundleCache, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		normalizer: normalizer,
		engine:     engine,
		cache:      cache,
		logger:     logger,
	}
}

// Build encodes entries into a Snapshot. Entries the normalizer rejects
// are skipped with a warning; encoding failures abort the build because
// they signal engine misconfiguration, not bad data.
func (b *Builder) Build(ctx context.Context, entries []Entry) (*Snapshot, error) {
	snapshot := &Snapshot{
		candidates: make([]scorer.Candidate, 0, len(entries)),
		dimension:  b.engine.Dimension(),
	}

	encoded, cached := 0, 0
	for _, entry := range entries {
		record, meta, err := b.normalizer.EntryToRecord(entry.Raw())
		if err != nil {
			if errors.Is(err, normalize.ErrMissingQuestion) {
				b.logger.Warn("skipping corpus entry", "error", err)
				continue
			}
			return nil, fmt.Errorf("normalize entry: %w", err)
		}

		roles, fromCache, err := b.encodeRecord(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("encode entry %q: %w", record.ID, err)
		}
		if fromCache {
			cached++
		} else {
			encoded++
		}

		snapshot.candidates = append(snapshot.candidates, scorer.Candidate{
			Roles:    roles,
			Metadata: meta,
		})
	}

	b.logger.Info("built corpus snapshot",
		"entries", snapshot.Len(), "encoded", encoded, "cached", cached,
		"dimension", snapshot.dimension)
	return snapshot, nil
}

// encodeRecord returns the flattened role bundle for record, consulting
// the cache first when one is configured.
func (b *Builder) encodeRecord(ctx context.Context, record types.CanonicalRecord) (map[string][]float32, bool, error) {
	var key string
	if b.cache != nil {
		key = b.cache.Key(record, b.engine.Dimension())
		if roles, ok, err := b.cache.Get(key); err != nil {
			b.logger.Warn("bundle cache read failed", "id", record.ID, "error", err)
		} else if ok {
			return roles, true, nil
		}
	}

	bundle, err := b.engine.Encode(ctx, ConceptFromRecord(record))
	if err != nil {
		return nil, false, err
	}
	roles := encoder.Flatten(bundle)

	if b.cache != nil {
		if err := b.cache.Put(key, roles); err != nil {
			b.logger.Warn("bundle cache write failed", "id", record.ID, "error", err)
		}
	}
	return roles, false, nil
}

// ConceptFromRecord maps a canonical record onto the encoding engine's
// input shape. Role names double as attribute keys.
func ConceptFromRecord(record types.CanonicalRecord) encoder.Concept {
	name := record.ID
	if name == "" {
		name = normalize.QueryName(record.QuestionText)
	}
	return encoder.Concept{
		Name: name,
		Attributes: map[string]string{
			"question_id": record.ID,
			"category":    string(record.Category),
			"question":    record.QuestionText,
			"answer":      record.AnswerText,
			"keywords":    record.KeywordsText,
		},
	}
}
