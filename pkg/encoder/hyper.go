package encoder

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HyperEngine is a deterministic hyperdimensional encoder. Every token maps
// to a pseudo-random but fully seed-determined ±1 vector of the configured
// dimension; bag-of-words roles sum their token vectors so shared words
// between two texts pull their cosine similarity up. The engine holds no
// mutable state and is safe for concurrent use.
type HyperEngine struct {
	config Config
}

// NewHyperEngine validates the configuration and builds the engine.
func NewHyperEngine(config Config) (*HyperEngine, error) {
	if config.Dimension <= 0 {
		return nil, fmt.Errorf("hyper engine: dimension must be positive, got %d: %w", config.Dimension, ErrDimensionMismatch)
	}
	if len(config.Layers) == 0 {
		return nil, fmt.Errorf("hyper engine: config has no layers")
	}
	return &HyperEngine{config: config}, nil
}

// Dimension returns the fixed vector dimension.
func (e *HyperEngine) Dimension() int {
	return e.config.Dimension
}

// Close implements Engine. The hyper engine holds no resources.
func (e *HyperEngine) Close() error {
	return nil
}

// Encode maps the concept's attributes into a layered bundle following the
// engine configuration. Attributes missing from the concept encode as zero
// vectors, which cosine-score 0 against everything.
func (e *HyperEngine) Encode(ctx context.Context, concept Concept) (*LayeredBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := &LayeredBundle{Layers: make([]Layer, 0, len(e.config.Layers))}
	for _, layerCfg := range e.config.Layers {
		layer := Layer{Name: layerCfg.Name, Segments: make([]Segment, 0, len(layerCfg.Segments))}
		for _, segCfg := range layerCfg.Segments {
			seg := Segment{Name: segCfg.Name, Roles: make(map[string][]float32, len(segCfg.Roles))}
			for _, roleCfg := range segCfg.Roles {
				value := concept.Attributes[roleCfg.Name]
				seg.Roles[roleCfg.Name] = e.encodeValue(roleCfg, value)
			}
			layer.Segments = append(layer.Segments, seg)
		}
		bundle.Layers = append(bundle.Layers, layer)
	}
	return bundle, nil
}

func (e *HyperEngine) encodeValue(role RoleConfig, value string) []float32 {
	vec := make([]float32, e.config.Dimension)
	if value == "" {
		return vec
	}
	switch role.TextEncoding {
	case EncodingBagOfWords:
		for _, token := range strings.Fields(value) {
			e.addTokenVector(vec, token)
		}
	default:
		e.addTokenVector(vec, value)
	}
	return vec
}

// addTokenVector adds the ±1 vector of token into dst. The token's vector
// is generated by a splitmix64 stream keyed on the engine seed and the
// token's hash, so it is stable across processes and platforms.
func (e *HyperEngine) addTokenVector(dst []float32, token string) {
	state := splitmix64Seed(e.config.Seed, xxhash.Sum64String(token))
	var bits uint64
	remaining := 0
	for i := range dst {
		if remaining == 0 {
			state, bits = splitmix64(state)
			remaining = 64
		}
		if bits&1 == 1 {
			dst[i]++
		} else {
			dst[i]--
		}
		bits >>= 1
		remaining--
	}
}

func splitmix64Seed(seed, tokenHash uint64) uint64 {
	return seed*0x9e3779b97f4a7c15 ^ tokenHash
}

// splitmix64 advances the state and returns the next 64 random bits.
func splitmix64(state uint64) (uint64, uint64) {
	state += 0x9e3779b97f4a7c15
	z := state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return state, z ^ (z >> 31)
}
