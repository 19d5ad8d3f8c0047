// Package metrics exposes solver counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all solver metrics on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	SessionsStarted *prometheus.CounterVec
	SessionsEnded   *prometheus.CounterVec
	Guesses         prometheus.Counter
	Simulations     *prometheus.CounterVec

	EntropySeconds *prometheus.HistogramVec
	RequestSeconds *prometheus.HistogramVec
}

// New registers every metric on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		SessionsStarted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_sessions_started_total",
				Help: "Solver sessions started",
			},
			[]string{"strategy"},
		),
		SessionsEnded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_sessions_ended_total",
				Help: "Solver sessions that reached a terminal state",
			},
			[]string{"strategy", "state"},
		),
		Guesses: f.NewCounter(
			prometheus.CounterOpts{
				Name: "wordle_feedback_applied_total",
				Help: "Feedback codes applied to sessions",
			},
		),
		Simulations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_simulations_total",
				Help: "Simulated games by outcome",
			},
			[]string{"strategy", "solved"},
		),
		EntropySeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordle_entropy_seconds",
				Help:    "Time to produce an entropy vector",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"cached"},
		),
		RequestSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordle_http_request_seconds",
				Help:    "HTTP handler latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ObserveEntropy records one entropy computation; it satisfies solver.Observer.
func (m *Metrics) ObserveEntropy(d time.Duration, cached bool) {
	label := "false"
	if cached {
		label = "true"
	}
	m.EntropySeconds.WithLabelValues(label).Observe(d.Seconds())
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
