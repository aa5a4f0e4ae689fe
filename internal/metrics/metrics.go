// Package metrics exposes Prometheus collectors for the recommendation pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker/v2"
)

const namespace = "namevibe"

// Metrics holds the collectors registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	Recommendations    *prometheus.CounterVec
	AdmissionDecisions *prometheus.CounterVec
	ClassifyDuration   *prometheus.HistogramVec
	BreakerState       *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry, including Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Recommendations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommendations_total",
				Help:      "Recommendation requests by outcome",
			},
			[]string{"outcome"}, // success, InvalidInput, RateLimited, NoMatch, NotFound, Unavailable, Internal
		),
		AdmissionDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admission_decisions_total",
				Help:      "Admission gate decisions",
			},
			[]string{"decision"}, // admitted, rejected, failed
		),
		ClassifyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "classify_duration_seconds",
				Help:      "Duration of vision provider calls in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"provider", "result"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "classifier_breaker_state",
				Help:      "Circuit breaker state around the vision provider (0 closed, 1 half-open, 2 open)",
			},
			[]string{"breaker"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRecommendation counts one recommendation outcome.
func (m *Metrics) ObserveRecommendation(outcome string) {
	m.Recommendations.WithLabelValues(outcome).Inc()
}

// ObserveClassify records one provider call.
func (m *Metrics) ObserveClassify(provider string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ClassifyDuration.WithLabelValues(provider, result).Observe(elapsed.Seconds())
}

// ObserveAdmission counts one admission decision.
func (m *Metrics) ObserveAdmission(admitted, failed bool) {
	decision := "rejected"
	switch {
	case failed:
		decision = "failed"
	case admitted:
		decision = "admitted"
	}
	m.AdmissionDecisions.WithLabelValues(decision).Inc()
}

// TrackBreaker publishes a new breaker as closed so the gauge exists before the
// first transition.
func (m *Metrics) TrackBreaker(name string) {
	m.BreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))
}

// ObserveBreakerState publishes a breaker transition. Its signature matches
// gobreaker's OnStateChange callback.
func (m *Metrics) ObserveBreakerState(name string, _, to gobreaker.State) {
	m.BreakerState.WithLabelValues(name).Set(float64(to))
}
