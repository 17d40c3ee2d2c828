package corpus

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/soundprediction/faqmatch/pkg/types"
)

// BundleCache persists encoded role bundles in a badger key-value store so
// a pre-built corpus (the build command) is reused by later runs instead
// of re-encoded. Keys hash the full canonical record plus the vector
// dimension: any change to an entry's text or to the engine setup misses
// the cache and re-encodes.
type BundleCache struct {
	db *badger.DB
}

// OpenBundleCache opens (or creates) the cache at dir.
func OpenBundleCache(dir string) (*BundleCache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open bundle cache %s: %w", dir, err)
	}
	return &BundleCache{db: db}, nil
}

// Close releases the underlying store.
func (c *BundleCache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for a record encoded at the given dimension.
func (c *BundleCache) Key(record types.CanonicalRecord, dimension int) string {
	h := xxhash.New()
	for _, part := range []string{
		record.ID, string(record.Category), record.QuestionText,
		record.AnswerText, record.KeywordsText,
	} {
		// NUL separators keep adjacent fields from aliasing each other.
		h.WriteString(part)
		h.Write([]byte{0})
	}
	return fmt.Sprintf("bundle:%d:%016x", dimension, h.Sum64())
}

// Get returns the cached bundle for key, reporting whether it was found.
func (c *BundleCache) Get(key string) (map[string][]float32, bool, error) {
	var roles map[string][]float32
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &roles)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("bundle cache get: %w", err)
	}
	return roles, true, nil
}

// Put stores a bundle under key.
func (c *BundleCache) Put(key string, roles map[string][]float32) error {
	data, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("bundle cache encode: %w", err)
	}
	if err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	}); err != nil {
		return fmt.Errorf("bundle cache put: %w", err)
	}
	return nil
}
