package faqmatch

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/faqmatch/pkg/corpus"
	"github.com/soundprediction/faqmatch/pkg/encoder"
	"github.com/soundprediction/faqmatch/pkg/intent"
	"github.com/soundprediction/faqmatch/pkg/types"
)

func testEntries() []corpus.Entry {
	return []corpus.Entry{
		{
			QuestionID: "faq_reset_password",
			Category:   "account",
			Question:   "How do I reset my password?",
			Answer:     "Click the Forgot Password link on the login page.",
			Keywords:   corpus.Keywords{"password", "reset"},
		},
		{
			QuestionID: "faq_double_charge",
			Category:   "billing",
			Question:   "Why was I charged twice?",
			Answer:     "A failed payment was retried. Contact support for a refund.",
			Keywords:   corpus.Keywords{"charged", "twice", "duplicate"},
		},
		{
			QuestionID: "faq_track_order",
			Category:   "shipping",
			Question:   "How do I track my order?",
			Answer:     "Use the tracking link in your shipping confirmation email.",
			Keywords:   corpus.Keywords{"track", "order"},
		},
		{
			QuestionID: "faq_contact_support",
			Category:   "general",
			Question:   "How do I contact customer support?",
			Answer:     "Email support or use the chat widget.",
			Keywords:   corpus.Keywords{"contact", "support"},
		},
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := encoder.DefaultConfig()
	cfg.Dimension = 8192
	engine, err := encoder.NewHyperEngine(cfg)
	require.NoError(t, err)

	client, err := NewClient(engine, intent.NewRuleExtractor(), nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, client.LoadCorpus(context.Background(), testEntries()))
	return client
}

func TestMatchExactQuestion(t *testing.T) {
	client := newTestClient(t)

	result, err := client.Match(context.Background(), "how do I reset my password")
	require.NoError(t, err)

	assert.True(t, result.Matched())
	require.NotNil(t, result.QuestionID)
	assert.Equal(t, "faq_reset_password", *result.QuestionID)
	assert.Equal(t, types.CategoryAccount, *result.Category)
	assert.NotEmpty(t, *result.Answer)
	assert.Greater(t, result.Confidence, 0.40)
	assert.GreaterOrEqual(t, result.LatencyMS, 0.0)

	require.Len(t, result.Top3, 3)
	assert.Equal(t, "faq_reset_password", result.Top3[0].QuestionID)
	assert.Equal(t, result.Confidence, result.Top3[0].Score)
}

func TestMatchParaphrase(t *testing.T) {
	client := newTestClient(t)

	result, err := client.Match(context.Background(), "why was I charged twice this month?!")
	require.NoError(t, err)

	assert.True(t, result.Matched())
	assert.Equal(t, "faq_double_charge", *result.QuestionID)
	assert.Equal(t, types.CategoryBilling, *result.Category)
}

func TestMatchAbstainsOnGibberish(t *testing.T) {
	client := newTestClient(t)

	result, err := client.Match(context.Background(), "xyzzy plugh quux")
	require.NoError(t, err)

	assert.False(t, result.Matched())
	assert.Nil(t, result.QuestionID)
	assert.Nil(t, result.Category)
	assert.Nil(t, result.Answer)
	// An abstain still reports how close the best candidate came.
	assert.Greater(t, result.Confidence, 0.0)
	assert.Less(t, result.Confidence, 0.40)
	assert.NotEmpty(t, result.Top3)
}

func TestMatchWithThreshold(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	// A partial overlap query lands between the two thresholds.
	low, err := client.MatchWithThreshold(ctx, "password help", 0.30)
	require.NoError(t, err)
	high, err := client.MatchWithThreshold(ctx, "password help", 0.60)
	require.NoError(t, err)

	assert.True(t, low.Matched())
	assert.False(t, high.Matched())
	// The threshold changes the decision, never the score.
	assert.Equal(t, low.Confidence, high.Confidence)
}

func TestMatchDeterministic(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	first, err := client.Match(ctx, "how do I track my order")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := client.Match(ctx, "how do I track my order")
		require.NoError(t, err)
		assert.Equal(t, first.Confidence, again.Confidence)
		assert.Equal(t, first.Top3, again.Top3)
	}
}

func TestMatchEmptyQuery(t *testing.T) {
	client := newTestClient(t)

	for _, query := range []string{"", "   ", "?!..."} {
		_, err := client.Match(context.Background(), query)
		assert.ErrorIs(t, err, ErrEmptyQuery, "query %q", query)
	}
}

func TestMatchEmptyCorpus(t *testing.T) {
	cfg := encoder.DefaultConfig()
	cfg.Dimension = 1024
	engine, err := encoder.NewHyperEngine(cfg)
	require.NoError(t, err)

	client, err := NewClient(engine, nil, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, client.LoadCorpus(context.Background(), nil))

	result, err := client.Match(context.Background(), "hello world")
	require.NoError(t, err)
	assert.False(t, result.Matched())
	assert.Zero(t, result.Confidence)
	assert.Empty(t, result.Top3)
}

func TestMatchWithoutExtractor(t *testing.T) {
	cfg := encoder.DefaultConfig()
	cfg.Dimension = 8192
	engine, err := encoder.NewHyperEngine(cfg)
	require.NoError(t, err)

	client, err := NewClient(engine, nil, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, client.LoadCorpus(context.Background(), testEntries()))

	// Without an extractor the cleaned text stands in for keywords.
	result, err := client.Match(context.Background(), "how do I reset my password")
	require.NoError(t, err)
	assert.True(t, result.Matched())
	assert.Equal(t, "faq_reset_password", *result.QuestionID)
}

func TestConcurrentMatchAndReload(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				result, err := client.Match(ctx, "how do I reset my password")
				assert.NoError(t, err)
				assert.NotNil(t, result)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 5; j++ {
			assert.NoError(t, client.LoadCorpus(ctx, testEntries()))
		}
	}()
	wg.Wait()
}

func TestSnapshotSwap(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	before := client.Snapshot()
	require.NoError(t, client.LoadCorpus(ctx, testEntries()[:1]))
	after := client.Snapshot()

	assert.NotSame(t, before, after)
	assert.Equal(t, 4, before.Len())
	assert.Equal(t, 1, after.Len())
}

func TestNewClientRequiresEngine(t *testing.T) {
	_, err := NewClient(nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Close(context.Background()))
}
