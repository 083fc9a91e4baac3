// Package metrics provides Prometheus-based metrics recording for the assistant.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder records routing and generation metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	intentsTotal       *prometheus.CounterVec
	intentCacheTotal   *prometheus.CounterVec
	agentDuration      *prometheus.HistogramVec
	generationAttempts *prometheus.CounterVec
	generationFailures prometheus.Counter
}

// New registers the assistant collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		intentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_intents_total",
				Help: "Total number of classified messages by intent",
			},
			[]string{"intent"},
		),
		intentCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_intent_cache_total",
				Help: "Intent cache lookups by result",
			},
			[]string{"result"},
		),
		agentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_agent_duration_seconds",
				Help:    "Time spent inside a specialist agent",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"agent_type"},
		),
		generationAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_generation_attempts_total",
				Help: "Text generation attempts by outcome",
			},
			[]string{"status"},
		),
		generationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_generation_exhausted_total",
				Help: "Generations that returned the apology after all attempts failed",
			},
		),
	}
}

func (r *Recorder) IncIntent(intent string) {
	if r == nil {
		return
	}
	r.intentsTotal.WithLabelValues(intent).Inc()
}

func (r *Recorder) IncCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.intentCacheTotal.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveAgent(agentType string, d time.Duration) {
	if r == nil {
		return
	}
	r.agentDuration.WithLabelValues(agentType).Observe(d.Seconds())
}

func (r *Recorder) IncAttempt(success bool) {
	if r == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	r.generationAttempts.WithLabelValues(status).Inc()
}

func (r *Recorder) IncExhausted() {
	if r == nil {
		return
	}
	r.generationFailures.Inc()
}
