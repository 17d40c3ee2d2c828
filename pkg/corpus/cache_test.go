package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/faqmatch/pkg/types"
)

func TestBundleCacheRoundtrip(t *testing.T) {
	cache, err := OpenBundleCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	record := types.CanonicalRecord{
		ID:           "faq_reset_password",
		Category:     types.CategoryAccount,
		QuestionText: "how do i reset my password",
	}
	key := cache.Key(record, 256)

	_, found, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, found)

	roles := map[string][]float32{
		"question": {1, -1, 2},
		"category": {0, 0, 1},
	}
	require.NoError(t, cache.Put(key, roles))

	got, found, err := cache.Get(key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, roles, got)
}

func TestBundleCacheKeyDiscriminates(t *testing.T) {
	cache, err := OpenBundleCache(t.TempDir())
	require.NoError(t, err)
	defer cache.Close()

	base := types.CanonicalRecord{
		ID:           "faq_a",
		Category:     types.CategoryAccount,
		QuestionText: "how do i reset my password",
	}

	changedText := base
	changedText.QuestionText = "how do i reset my username"
	assert.NotEqual(t, cache.Key(base, 256), cache.Key(changedText, 256))

	// A different dimension means different vectors for the same text.
	assert.NotEqual(t, cache.Key(base, 256), cache.Key(base, 512))

	// Field boundaries must not alias: moving a token across the
	// question/answer boundary changes the key.
	ab := base
	ab.QuestionText = "one two"
	ab.AnswerText = "three"
	ba := base
	ba.QuestionText = "one"
	ba.AnswerText = "two three"
	assert.NotEqual(t, cache.Key(ab, 256), cache.Key(ba, 256))
}
