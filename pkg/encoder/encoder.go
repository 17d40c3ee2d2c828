// Package encoder defines the vector encoding engine contract and the
// adapter that flattens an engine's hierarchical output into a flat
// role-to-vector bundle.
//
// An engine maps a named concept with string attributes into layers of
// segments of named role vectors. The matcher only ever consumes the
// flattened form; the hierarchy exists for engine-side weighting and
// bookkeeping. Two implementations ship with this package: a seeded
// hyperdimensional bag-of-words engine (HyperEngine) and an embedding
// model backed engine (EmbedEngine).
package encoder

import (
	"context"
	"errors"
	"strings"
)

// InternalPrefix marks layers and segments that carry engine bookkeeping
// instead of semantic content. Flatten drops them.
const InternalPrefix = "_"

// Concept is the structured input to an encoding engine: a name plus the
// attribute fields to vectorize.
type Concept struct {
	Name       string
	Attributes map[string]string
}

// Segment is a named group of role vectors inside a layer.
type Segment struct {
	Name  string
	Roles map[string][]float32
}

// Layer is a named group of segments. Layers and segments are slices, not
// maps, so iteration order is the engine's emission order and flattening
// stays deterministic.
type Layer struct {
	Name     string
	Segments []Segment
}

// LayeredBundle is the hierarchical output of one Encode call.
type LayeredBundle struct {
	Layers []Layer
}

// Engine encodes concepts into layered role-vector bundles. Encode must be
// deterministic: identical concept and engine configuration always yield
// identical vectors. All role vectors share the engine's fixed dimension.
type Engine interface {
	Encode(ctx context.Context, concept Concept) (*LayeredBundle, error)
	Dimension() int
	Close() error
}

// ErrDimensionMismatch is returned when an engine produces vectors that do
// not match its configured dimension. This is a setup bug, not a per-query
// condition, and is never absorbed into a zero score.
var ErrDimensionMismatch = errors.New("encoder: vector dimension mismatch")

// Flatten merges a layered bundle into one role-to-vector mapping,
// iterating layers then segments in emission order. Layers and segments
// whose name starts with the internal prefix are dropped. If the engine
// ever emits the same role name in two segments, the later write wins;
// that collision policy is accepted and covered by tests rather than
// silently assumed.
func Flatten(bundle *LayeredBundle) map[string][]float32 {
	roles := make(map[string][]float32)
	if bundle == nil {
		return roles
	}
	for _, layer := range bundle.Layers {
		if strings.HasPrefix(layer.Name, InternalPrefix) {
			continue
		}
		for _, segment := range layer.Segments {
			if strings.HasPrefix(segment.Name, InternalPrefix) {
				continue
			}
			for name, vec := range segment.Roles {
				roles[name] = vec
			}
		}
	}
	return roles
}
