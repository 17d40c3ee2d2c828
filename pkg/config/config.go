// Package config loads the application configuration from file,
// environment variables and command-line flags via viper.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/soundprediction/faqmatch/pkg/intent"
	"github.com/soundprediction/faqmatch/pkg/scorer"
)

// Config holds all configuration for the application.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Matcher configuration
	Matcher MatcherConfig `mapstructure:"matcher"`

	// Encoder configuration
	Encoder EncoderConfig `mapstructure:"encoder"`

	// Corpus configuration
	Corpus CorpusConfig `mapstructure:"corpus"`

	// Extractor configuration
	Extractor ExtractorConfig `mapstructure:"extractor"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// MatcherConfig holds match decision configuration. The threshold is a
// deployment calibration input, never hardcoded at use sites.
type MatcherConfig struct {
	Threshold   float64            `mapstructure:"threshold"`
	RoleWeights scorer.RoleWeights `mapstructure:"role_weights"`
}

// EncoderConfig selects and parameterizes the encoding engine backend.
type EncoderConfig struct {
	Backend   string `mapstructure:"backend"` // hyper, embed
	Dimension int    `mapstructure:"dimension"`
	Seed      uint64 `mapstructure:"seed"`
	Model     string `mapstructure:"model"` // embed backend only
}

// CorpusConfig holds corpus source configuration.
type CorpusConfig struct {
	Path      string `mapstructure:"path"`
	CachePath string `mapstructure:"cache_path"` // empty disables the bundle cache
}

// ExtractorConfig selects the intent extractor backend.
type ExtractorConfig struct {
	Provider       string                      `mapstructure:"provider"` // rule, openai
	OpenAI         intent.OpenAIConfig         `mapstructure:"openai"`
	CircuitBreaker intent.CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	if config.Matcher.RoleWeights == nil {
		config.Matcher.RoleWeights = scorer.DefaultRoleWeights()
	}
	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Matcher defaults
	viper.SetDefault("matcher.threshold", scorer.DefaultThreshold)

	// Encoder defaults
	viper.SetDefault("encoder.backend", "hyper")
	viper.SetDefault("encoder.dimension", 10000)
	viper.SetDefault("encoder.seed", 42)
	viper.SetDefault("encoder.model", "all-MiniLM-L6-v2")

	// Corpus defaults
	viper.SetDefault("corpus.path", "data/faq.jsonl")
	viper.SetDefault("corpus.cache_path", "")

	// Extractor defaults
	viper.SetDefault("extractor.provider", "rule")
	viper.SetDefault("extractor.circuit_breaker.enabled", true)
	viper.SetDefault("extractor.circuit_breaker.max_requests", 3)
	viper.SetDefault("extractor.circuit_breaker.interval", 60)
	viper.SetDefault("extractor.circuit_breaker.timeout", 30)
	viper.SetDefault("extractor.circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables.
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Extractor.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.Extractor.OpenAI.BaseURL = baseURL
	}
}
