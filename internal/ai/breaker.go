package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kozaktomas/namevibe/internal/constants"
	"github.com/sony/gobreaker/v2"
)

// ErrProviderUnavailable is returned while the circuit breaker rejects calls.
var ErrProviderUnavailable = errors.New("vision provider temporarily unavailable")

// BreakerConfig configures the circuit breaker around a FaceClassifier.
type BreakerConfig struct {
	FailureThreshold uint32        // consecutive failures before opening
	OpenTimeout      time.Duration // time spent open before a half-open probe
	HalfOpenRequests uint32        // probes allowed while half-open
	OnStateChange    func(name string, from, to gobreaker.State)
}

// DefaultBreakerConfig trips after 5 consecutive failures and probes again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: constants.BreakerFailureThreshold,
		OpenTimeout:      constants.BreakerOpenTimeout,
		HalfOpenRequests: 1,
	}
}

// BreakerClassifier guards a FaceClassifier with a circuit breaker so a failing
// provider is not hammered by every request.
type BreakerClassifier struct {
	next FaceClassifier
	cb   *gobreaker.CircuitBreaker[[]FaceExpression]
}

// NewBreakerClassifier wraps next with a circuit breaker.
func NewBreakerClassifier(next FaceClassifier, cfg BreakerConfig) *BreakerClassifier {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A caller hanging up is not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: cfg.OnStateChange,
	}
	return &BreakerClassifier{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]FaceExpression](settings),
	}
}

func (b *BreakerClassifier) Name() string {
	return b.next.Name()
}

// State returns the breaker state ("closed", "open", "half-open").
func (b *BreakerClassifier) State() string {
	return b.cb.State().String()
}

// Ping reports ErrProviderUnavailable while the breaker is open, so health checks
// show a tripped provider without calling it.
func (b *BreakerClassifier) Ping(context.Context) error {
	if state := b.State(); state == gobreaker.StateOpen.String() {
		return fmt.Errorf("%w: breaker %s", ErrProviderUnavailable, state)
	}
	return nil
}

func (b *BreakerClassifier) ClassifyFaces(ctx context.Context, imageData []byte, mimeType string) ([]FaceExpression, error) {
	faces, err := b.cb.Execute(func() ([]FaceExpression, error) {
		return b.next.ClassifyFaces(ctx, imageData, mimeType)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return faces, err
}
