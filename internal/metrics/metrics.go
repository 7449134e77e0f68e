// Package metrics holds the prometheus collectors for analysis runs.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysisRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "motiflab_analysis_runs_total",
			Help: "Analysis runs by kind and outcome.",
		},
		[]string{"kind", "status"},
	)

	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "motiflab_analysis_duration_seconds",
			Help:    "Wall time of analysis runs by kind.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"kind"},
	)

	sequencesComparedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motiflab_agreement_sequences_total",
			Help: "Sequences classified by the region agreement engine.",
		},
	)

	positionsComparedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "motiflab_agreement_positions_total",
			Help: "Nucleotide positions classified by the region agreement engine.",
		},
	)

	registered uint32
)

// Run outcome labels
const (
	StatusOK        = "ok"
	StatusCancelled = "cancelled"
	StatusFailed    = "failed"
)

// Register registers the collectors with the default registry once
func Register() {
	if atomic.CompareAndSwapUint32(&registered, 0, 1) {
		prometheus.MustRegister(analysisRunsTotal, analysisDuration, sequencesComparedTotal, positionsComparedTotal)
	}
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRun counts one finished analysis and observes its duration
func RecordRun(kind, status string, elapsed time.Duration) {
	analysisRunsTotal.WithLabelValues(kind, status).Inc()
	analysisDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// RecordSequence counts one classified sequence and its positions
func RecordSequence(positions int64) {
	sequencesComparedTotal.Inc()
	positionsComparedTotal.Add(float64(positions))
}
