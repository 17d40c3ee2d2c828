package encoder

// Text encoding modes for role values.
const (
	// EncodingAtomic hashes the whole attribute value into one token
	// vector. The zero value of RoleConfig.TextEncoding means atomic.
	EncodingAtomic = "atomic"
	// EncodingBagOfWords sums one token vector per whitespace-separated
	// word, so partial word overlap between two texts scores.
	EncodingBagOfWords = "bag_of_words"
)

// RoleConfig describes one encodable role of a concept.
type RoleConfig struct {
	// Name is both the role name in the output bundle and the attribute
	// key looked up on the concept.
	Name string `mapstructure:"name"`
	// Weight is the engine-side similarity weight. The matcher applies
	// its own role weights to the flattened bundle, so this is carried
	// for engine parity and validation only.
	Weight float64 `mapstructure:"weight"`
	// KeyPart marks identity roles that name the concept rather than
	// describe it.
	KeyPart bool `mapstructure:"key_part"`
	// Lexicons optionally restricts the expected values of an atomic
	// role to a closed vocabulary.
	Lexicons []string `mapstructure:"lexicons"`
	// TextEncoding selects atomic or bag-of-words encoding.
	TextEncoding string `mapstructure:"text_encoding"`
}

// SegmentConfig groups roles inside a layer.
type SegmentConfig struct {
	Name  string       `mapstructure:"name"`
	Roles []RoleConfig `mapstructure:"roles"`
}

// LayerConfig groups segments with an engine-side layer weight.
type LayerConfig struct {
	Name     string          `mapstructure:"name"`
	Weight   float64         `mapstructure:"weight"`
	Segments []SegmentConfig `mapstructure:"segments"`
}

// Config is the full encoding engine configuration. Dimension and Seed fix
// the vector space; identical config and input always produce identical
// bundles.
type Config struct {
	Dimension int           `mapstructure:"dimension"`
	Seed      uint64        `mapstructure:"seed"`
	Layers    []LayerConfig `mapstructure:"layers"`
}

// DefaultConfig returns the calibrated helpdesk encoder configuration:
// a semantic layer holding identity (question_id, category) and content
// (question, answer) segments, and a context layer holding the keywords
// tag segment. Question text is the dominant bag-of-words signal.
func DefaultConfig() Config {
	return Config{
		Dimension: 10000,
		Seed:      42,
		Layers: []LayerConfig{
			{
				Name:   "semantic",
				Weight: 0.7,
				Segments: []SegmentConfig{
					{
						Name: "identity",
						Roles: []RoleConfig{
							{Name: "question_id", Weight: 0.1, KeyPart: true},
							{Name: "category", Weight: 0.6, Lexicons: []string{
								"account", "billing", "product",
								"shipping", "returns", "technical", "general",
							}},
						},
					},
					{
						Name: "content",
						Roles: []RoleConfig{
							{Name: "question", Weight: 1.0, TextEncoding: EncodingBagOfWords},
							{Name: "answer", Weight: 0.4, TextEncoding: EncodingBagOfWords},
						},
					},
				},
			},
			{
				Name:   "context",
				Weight: 0.3,
				Segments: []SegmentConfig{
					{
						Name: "tags",
						Roles: []RoleConfig{
							{Name: "keywords", Weight: 0.8, TextEncoding: EncodingBagOfWords},
						},
					},
				},
			},
		},
	}
}
