package faqmatch

import (
	"fmt"
	"log/slog"

	"github.com/soundprediction/faqmatch"
	"github.com/soundprediction/faqmatch/pkg/config"
	"github.com/soundprediction/faqmatch/pkg/corpus"
	"github.com/soundprediction/faqmatch/pkg/encoder"
	"github.com/soundprediction/faqmatch/pkg/intent"
	faqmatchLogger "github.com/soundprediction/faqmatch/pkg/logger"
)

// newLogger builds the process logger from the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	return faqmatchLogger.NewDefaultLogger(logLevel(cfg.Log.Level))
}

// newMatcher assembles a matcher client from configuration: encoding
// engine, intent extractor and optional bundle cache.
func newMatcher(cfg *config.Config, logger *slog.Logger) (*faqmatch.Client, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return nil, err
	}

	var cache *corpus.BundleCache
	if cfg.Corpus.CachePath != "" {
		cache, err = corpus.OpenBundleCache(cfg.Corpus.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open bundle cache: %w", err)
		}
	}

	client, err := faqmatch.NewClient(engine, extractor, &faqmatch.Config{
		Threshold:   cfg.Matcher.Threshold,
		RoleWeights: cfg.Matcher.RoleWeights,
		BundleCache: cache,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher: %w", err)
	}
	return client, nil
}

func newEngine(cfg *config.Config) (encoder.Engine, error) {
	switch cfg.Encoder.Backend {
	case "hyper":
		encoderConfig := encoder.DefaultConfig()
		if cfg.Encoder.Dimension > 0 {
			encoderConfig.Dimension = cfg.Encoder.Dimension
		}
		if cfg.Encoder.Seed != 0 {
			encoderConfig.Seed = cfg.Encoder.Seed
		}
		return encoder.NewHyperEngine(encoderConfig)
	case "embed":
		return encoder.NewEmbedEngine(cfg.Encoder.Model, cfg.Encoder.Dimension)
	default:
		return nil, fmt.Errorf("unsupported encoder backend: %s", cfg.Encoder.Backend)
	}
}

func newExtractor(cfg *config.Config, logger *slog.Logger) (intent.Extractor, error) {
	switch cfg.Extractor.Provider {
	case "rule":
		return intent.NewRuleExtractor(), nil
	case "openai":
		extractor, err := intent.NewOpenAIExtractor(cfg.Extractor.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai extractor: %w", err)
		}
		if cfg.Extractor.CircuitBreaker.Enabled {
			return intent.NewCircuitBreakerExtractor(extractor, cfg.Extractor.CircuitBreaker, "openai-intent", logger), nil
		}
		return extractor, nil
	default:
		return nil, fmt.Errorf("unsupported extractor provider: %s", cfg.Extractor.Provider)
	}
}
