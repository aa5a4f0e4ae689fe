// Package admission bounds how often a caller may run the classification pipeline.
package admission

import (
	"context"
	"time"

	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/rs/zerolog"
)

// Decision describes the outcome of an admission check.
type Decision struct {
	Admitted  bool
	Limit     int
	Remaining int  // calls left in the current window after this one
	Failed    bool // the store could not be consulted; the call was rejected
}

// Gate is a sliding-window throttle backed by an append-only event log.
type Gate struct {
	store  database.RateEventStore
	limit  int
	window time.Duration
	now    func() time.Time
	log    zerolog.Logger

	onDecision func(Decision)
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithLogger sets the logger used for store failures.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// WithDecisionHook registers a callback invoked after every check (used for metrics).
func WithDecisionHook(fn func(Decision)) Option {
	return func(g *Gate) { g.onDecision = fn }
}

// NewGate creates a gate admitting at most limit calls per caller within window.
func NewGate(store database.RateEventStore, limit int, window time.Duration, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Admit records an event for caller and returns true when fewer than limit events
// fall within the trailing window. Rejected calls record nothing. When the store
// fails the gate fails closed.
func (g *Gate) Admit(ctx context.Context, caller string) bool {
	return g.Check(ctx, caller).Admitted
}

// Check is Admit with the full decision.
func (g *Gate) Check(ctx context.Context, caller string) Decision {
	now := g.now()
	since := now.Add(-g.window)

	d := Decision{Limit: g.limit}
	admitted, count, err := g.store.RecordIfUnder(ctx, caller, now, since, g.limit)
	if err != nil {
		g.log.Error().Err(err).Str("caller", caller).Msg("admission store failed, rejecting call")
		d.Failed = true
	} else {
		d.Admitted = admitted
		d.Remaining = max(g.limit-count, 0)
	}

	if g.onDecision != nil {
		g.onDecision(d)
	}
	return d
}
