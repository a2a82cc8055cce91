package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the cleanup metrics for one process. Metrics live in a
// private registry so they can be written as a node-exporter textfile
// after a run; nothing is served over HTTP.
type Recorder struct {
	registry *prometheus.Registry

	// ItemsTotal counts items discovered per category.
	ItemsTotal *prometheus.CounterVec

	// ItemsDeletedTotal counts items removed per category.
	ItemsDeletedTotal *prometheus.CounterVec

	// CategoryFailuresTotal counts categories that ended in failure.
	CategoryFailuresTotal *prometheus.CounterVec

	// ElevatedFallbacksTotal counts elevated deletes by outcome.
	ElevatedFallbacksTotal *prometheus.CounterVec

	// RunDuration tracks how long runs take.
	RunDuration prometheus.Histogram

	// LastRunTimestamp records the Unix time a run finished.
	LastRunTimestamp prometheus.Gauge

	// LastRunState is 1 for the state the last run ended in.
	LastRunState *prometheus.GaugeVec
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wclean_items_total",
			Help: "Items found in cleanup categories.",
		}, []string{"category"}),
		ItemsDeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wclean_items_deleted_total",
			Help: "Items successfully removed.",
		}, []string{"category"}),
		CategoryFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wclean_category_failures_total",
			Help: "Categories that could not be cleaned.",
		}, []string{"category"}),
		ElevatedFallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wclean_elevated_fallbacks_total",
			Help: "Elevated force-delete attempts by result.",
		}, []string{"result"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wclean_run_duration_seconds",
			Help:    "Duration of cleanup runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wclean_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
		LastRunState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wclean_last_run_state",
			Help: "Terminal state of the last run (1 = current).",
		}, []string{"state"}),
	}

	r.registry.MustRegister(
		r.ItemsTotal,
		r.ItemsDeletedTotal,
		r.CategoryFailuresTotal,
		r.ElevatedFallbacksTotal,
		r.RunDuration,
		r.LastRunTimestamp,
		r.LastRunState,
	)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// AddItems records n discovered items. Safe on a nil Recorder.
func (r *Recorder) AddItems(category string, n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.ItemsTotal.WithLabelValues(category).Add(float64(n))
}

// AddDeleted records n removed items. Safe on a nil Recorder.
func (r *Recorder) AddDeleted(category string, n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.ItemsDeletedTotal.WithLabelValues(category).Add(float64(n))
}

// CategoryFailed records a failed category. Safe on a nil Recorder.
func (r *Recorder) CategoryFailed(category string) {
	if r == nil {
		return
	}
	r.CategoryFailuresTotal.WithLabelValues(category).Inc()
}

// ElevatedFallback records the outcome of an elevated delete.
// Safe on a nil Recorder.
func (r *Recorder) ElevatedFallback(ok bool) {
	if r == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	r.ElevatedFallbacksTotal.WithLabelValues(result).Inc()
}

// RunFinished records duration, timestamp and terminal state of a run.
// Safe on a nil Recorder.
func (r *Recorder) RunFinished(state string, d time.Duration) {
	if r == nil {
		return
	}
	r.RunDuration.Observe(d.Seconds())
	r.LastRunTimestamp.Set(float64(time.Now().Unix()))
	r.LastRunState.Reset()
	r.LastRunState.WithLabelValues(state).Set(1)
}

// WriteTextfile writes all metrics in the Prometheus text format to path,
// atomically, for pickup by node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
