package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/faqmatch/pkg/encoder"
	"github.com/soundprediction/faqmatch/pkg/normalize"
	"github.com/soundprediction/faqmatch/pkg/types"
)

func testEngine(t *testing.T) encoder.Engine {
	t.Helper()
	cfg := encoder.DefaultConfig()
	cfg.Dimension = 256
	engine, err := encoder.NewHyperEngine(cfg)
	require.NoError(t, err)
	return engine
}

func TestBuilderBuild(t *testing.T) {
	builder := NewBuilder(normalize.New(nil), testEngine(t), nil, nil)

	entries := []Entry{
		{
			QuestionID: "faq_reset_password",
			Category:   "account",
			Question:   "How do I reset my password?",
			Answer:     "Click the link.",
			Keywords:   Keywords{"password", "reset"},
		},
		{
			Question: "What is your return policy?",
			Answer:   "30 day window.",
		},
	}

	snapshot, err := builder.Build(context.Background(), entries)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Len())
	assert.Equal(t, 256, snapshot.Dimension())

	candidates := snapshot.Candidates()
	assert.Equal(t, "faq_reset_password", candidates[0].Metadata.ID)
	assert.Equal(t, types.CategoryAccount, candidates[0].Metadata.Category)
	// Missing id and category were derived during normalization.
	assert.Equal(t, "faq_what_is_your_return_policy", candidates[1].Metadata.ID)

	for _, c := range candidates {
		for _, role := range []string{"question_id", "category", "question", "answer", "keywords"} {
			require.Len(t, c.Roles[role], 256, "role %s", role)
		}
	}
}

func TestBuilderSkipsEntriesWithoutQuestion(t *testing.T) {
	builder := NewBuilder(normalize.New(nil), testEngine(t), nil, nil)

	entries := []Entry{
		{Question: "How do I track my order?"},
		{QuestionID: "faq_orphan", Answer: "answer without question"},
	}

	snapshot, err := builder.Build(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, "faq_how_do_i_track_my_order", snapshot.Candidates()[0].Metadata.ID)
}

func TestBuilderUsesCache(t *testing.T) {
	cache, err := OpenBundleCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	builder := NewBuilder(normalize.New(nil), testEngine(t), cache, nil)
	entries := []Entry{{Question: "How do I reset my password?"}}

	first, err := builder.Build(context.Background(), entries)
	require.NoError(t, err)

	// Second build hits the cache and must produce identical bundles.
	second, err := builder.Build(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, first.Candidates()[0].Roles, second.Candidates()[0].Roles)
}

func TestSnapshotNilSafe(t *testing.T) {
	var s *Snapshot
	assert.Nil(t, s.Candidates())
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Dimension())
}

func TestConceptFromRecord(t *testing.T) {
	concept := ConceptFromRecord(types.CanonicalRecord{
		ID:           "faq_x",
		Category:     types.CategoryBilling,
		QuestionText: "why was i charged",
		AnswerText:   "a retry",
		KeywordsText: "charged twice",
	})

	assert.Equal(t, "faq_x", concept.Name)
	assert.Equal(t, "billing", concept.Attributes["category"])
	assert.Equal(t, "why was i charged", concept.Attributes["question"])

	// Query records have no id; the concept name derives from the text.
	queryConcept := ConceptFromRecord(types.CanonicalRecord{QuestionText: "hello"})
	assert.Contains(t, queryConcept.Name, "query_")
}
