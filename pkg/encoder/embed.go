package encoder

import (
	"context"
	"fmt"

	"github.com/soundprediction/go-embedeverything/pkg/embedder"
)

// scoringRoles are the attributes an EmbedEngine vectorizes, in the order
// they are sent to the embedding model.
var scoringRoles = []string{"question_id", "category", "question", "answer", "keywords"}

// EmbedEngine encodes concepts with a sentence-embedding model: each role's
// text is embedded independently, producing one role vector per attribute
// inside a single semantic layer. Unlike HyperEngine the vector space is
// learned, so scores are not comparable across models; the fixed dimension
// must match the model and is validated on first use.
type EmbedEngine struct {
	client    *embedder.Embedder
	dimension int
}

// NewEmbedEngine loads the embedding model and builds the engine. The
// dimension is the model's output width; a model that disagrees surfaces
// ErrDimensionMismatch on the first Encode instead of scoring garbage.
func NewEmbedEngine(model string, dimension int) (*EmbedEngine, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("embed engine: dimension must be positive, got %d: %w", dimension, ErrDimensionMismatch)
	}
	client, err := embedder.NewEmbedder(model)
	if err != nil {
		return nil, fmt.Errorf("embed engine: failed to load model %q: %w", model, err)
	}
	return &EmbedEngine{client: client, dimension: dimension}, nil
}

// Dimension returns the configured vector dimension.
func (e *EmbedEngine) Dimension() int {
	return e.dimension
}

// Close releases the embedding model.
func (e *EmbedEngine) Close() error {
	e.client.Close()
	return nil
}

// Encode embeds every scoring role of the concept in one batch. Empty
// attributes become zero vectors rather than embeddings of the empty
// string, so an absent answer cannot accidentally correlate with other
// absent answers.
func (e *EmbedEngine) Encode(ctx context.Context, concept Concept) (*LayeredBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(scoringRoles))
	indexes := make([]int, len(scoringRoles))
	for i, role := range scoringRoles {
		if concept.Attributes[role] == "" {
			indexes[i] = -1
			continue
		}
		indexes[i] = len(texts)
		texts = append(texts, concept.Attributes[role])
	}

	var embeddings [][]float32
	if len(texts) > 0 {
		var err error
		// go-embedeverything does not support context yet
		embeddings, err = e.client.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("embed engine: %w", err)
		}
		if len(embeddings) != len(texts) {
			return nil, fmt.Errorf("embed engine: got %d embeddings for %d texts", len(embeddings), len(texts))
		}
	}

	roles := make(map[string][]float32, len(scoringRoles))
	for i, role := range scoringRoles {
		if indexes[i] < 0 {
			roles[role] = make([]float32, e.dimension)
			continue
		}
		vec := embeddings[indexes[i]]
		if len(vec) != e.dimension {
			return nil, fmt.Errorf("embed engine: role %q has dimension %d, configured %d: %w",
				role, len(vec), e.dimension, ErrDimensionMismatch)
		}
		roles[role] = vec
	}

	return &LayeredBundle{
		Layers: []Layer{
			{
				Name: "semantic",
				Segments: []Segment{
					{Name: "content", Roles: roles},
				},
			},
		},
	}, nil
}
