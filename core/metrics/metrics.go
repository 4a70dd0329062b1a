package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "card_tracker"

// Outcomes of a run.
const (
	OutcomeCompleted = "completed"
	OutcomeSuspended = "suspended"
	OutcomeFailed    = "failed"
)

// Metrics holds the collectors of one invocation.
type Metrics struct {
	registry *prometheus.Registry

	processed   *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	corrections *prometheus.CounterVec
	unverified  *prometheus.CounterVec
	runs        *prometheus.CounterVec
	duration    *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_processed_total",
			Help:      "Work items processed successfully.",
		}, []string{"operation"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_skipped_total",
			Help:      "Work items skipped after an error.",
		}, []string{"operation"}),
		corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_corrections_total",
			Help:      "Persisted prices divided by 100 by the unit heuristic.",
		}, []string{"operation"}),
		unverified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unverified_prices_total",
			Help:      "Persisted prices that could not be checked for lack of reference prices.",
		}, []string{"operation"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Invocations by outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last invocation.",
		}, []string{"operation"}),
	}

	m.registry.MustRegister(m.processed, m.skipped, m.corrections, m.unverified, m.runs, m.duration)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ItemProcessed(operation string) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(operation).Inc()
}

func (m *Metrics) ItemSkipped(operation string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(operation).Inc()
}

func (m *Metrics) PriceCorrections(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.corrections.WithLabelValues(operation).Add(float64(n))
}

func (m *Metrics) UnverifiedPrices(operation string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.unverified.WithLabelValues(operation).Add(float64(n))
}

// RunFinished records the outcome and duration of an invocation.
func (m *Metrics) RunFinished(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(operation, outcome).Inc()
	m.duration.WithLabelValues(operation).Set(elapsed.Seconds())
}

// Push sends the registry to the configured Pushgateway. It does nothing when
// no URL is configured.
func (m *Metrics) Push(ctx context.Context, cfg Config, operation string) error {
	if m == nil || strings.TrimSpace(cfg.PushgatewayURL) == "" {
		return nil
	}
	if strings.TrimSpace(cfg.Job) == "" {
		return errors.New("metrics.job is required")
	}

	if cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	return push.New(cfg.PushgatewayURL, cfg.Job).
		Gatherer(m.registry).
		Grouping("operation", operation).
		PushContext(ctx)
}
