// Package metrics records psawg activity as Prometheus metrics.
//
// psawg is a short-lived CLI, so metrics are not served over HTTP. Instead
// a Recorder collects them in its own registry and WriteTextfile dumps the
// registry in the text exposition format, ready for the node_exporter
// textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nao1215/psawg/internal/model"
)

// Namespace prefixes every metric name.
const Namespace = "psawg"

// Recorder holds the psawg metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	evaluations   *prometheus.CounterVec
	entropy       prometheus.Histogram
	auditRuns     prometheus.Counter
	auditDuration prometheus.Histogram
	candidates    prometheus.Counter
	wordlistRuns  prometheus.Counter
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "evaluations_total",
			Help:      "Total number of passwords evaluated, by strength class",
		}, []string{"class"}),
		entropy: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "entropy_bits",
			Help:      "Charset entropy of evaluated passwords",
			Buckets:   []float64{20, 28, 40, 60, 80, 100, 128},
		}),
		auditRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "audit_runs_total",
			Help:      "Total number of audit runs",
		}),
		auditDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "audit_duration_seconds",
			Help:      "Wall time of audit runs",
			Buckets:   prometheus.DefBuckets,
		}),
		candidates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "wordlist_candidates_total",
			Help:      "Total number of wordlist candidates written",
		}),
		wordlistRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "wordlist_runs_total",
			Help:      "Total number of wordlist generations",
		}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return prometheus.NewRegistry()
	}
	return r.registry
}

// ObserveEvaluation records one strength report.
func (r *Recorder) ObserveEvaluation(report model.StrengthReport) {
	if r == nil {
		return
	}
	r.evaluations.WithLabelValues(report.Class.String()).Inc()
	r.entropy.Observe(report.EntropyBits)
}

// ObserveAudit records every row of an audit run and its duration.
func (r *Recorder) ObserveAudit(report *model.AuditReport, elapsed time.Duration) {
	if r == nil || report == nil {
		return
	}
	r.auditRuns.Inc()
	r.auditDuration.Observe(elapsed.Seconds())
	for _, row := range report.Rows {
		r.ObserveEvaluation(row.Report)
	}
}

// ObserveWordlist records a wordlist generation that wrote n candidates.
func (r *Recorder) ObserveWordlist(n int) {
	if r == nil {
		return
	}
	r.wordlistRuns.Inc()
	r.candidates.Add(float64(n))
}

// WriteTextfile writes the registry to path in the Prometheus text format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry())
}
