package intent

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreakerConfig holds circuit breaking settings for a remote
// extractor.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// CircuitBreakerExtractor wraps an Extractor with circuit breaking logic,
// so a degraded remote extractor fails fast instead of adding its timeout
// to every match.
type CircuitBreakerExtractor struct {
	extractor Extractor
	cb        *gobreaker.CircuitBreaker
	logger    *slog.Logger
}

// NewCircuitBreakerExtractor wraps extractor with a circuit breaker named
// name. A nil logger falls back to slog.Default().
func NewCircuitBreakerExtractor(extractor Extractor, cfg CircuitBreakerConfig, name string, logger *slog.Logger) *CircuitBreakerExtractor {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				logger.Warn("extractor circuit breaker tripped",
					"name", name, "from", from.String(), "to", to.String())
			}
		},
	}

	return &CircuitBreakerExtractor{
		extractor: extractor,
		cb:        gobreaker.NewCircuitBreaker(st),
		logger:    logger,
	}
}

// Extract implements Extractor.
func (c *CircuitBreakerExtractor) Extract(ctx context.Context, text string) (Extraction, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.extractor.Extract(ctx, text)
	})
	if err != nil {
		return Extraction{}, err
	}
	return result.(Extraction), nil
}
