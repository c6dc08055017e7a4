// Package metrics exports bot activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aijukucho"

type PrometheusRecorder struct {
	commandsTotal       *prometheus.CounterVec
	commandDuration     *prometheus.HistogramVec
	modelCallsTotal     *prometheus.CounterVec
	modelCallDuration   prometheus.Histogram
	historyPagesFetched prometheus.Counter
}

// NewPrometheusRecorder registers the bot metrics on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Total number of handled commands by outcome",
			},
			[]string{"command", "outcome"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Time from event receipt to final reply",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"command"},
		),
		modelCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "model_calls_total",
				Help:      "Total number of language model calls by status",
			},
			[]string{"status"},
		),
		modelCallDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "model_call_duration_seconds",
				Help:      "Duration of language model calls",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),
		historyPagesFetched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "history_pages_fetched_total",
				Help:      "Total number of channel history pages requested",
			},
		),
	}
	reg.MustRegister(r.commandsTotal, r.commandDuration, r.modelCallsTotal, r.modelCallDuration, r.historyPagesFetched)
	return r
}

func (r *PrometheusRecorder) ObserveCommand(command, outcome string, duration time.Duration) {
	r.commandsTotal.WithLabelValues(command, outcome).Inc()
	r.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) ObserveModelCall(status string, duration time.Duration) {
	r.modelCallsTotal.WithLabelValues(status).Inc()
	r.modelCallDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) AddHistoryPages(n int) {
	r.historyPagesFetched.Add(float64(n))
}
