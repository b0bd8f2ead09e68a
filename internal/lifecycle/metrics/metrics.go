// Package metrics exports benchmark runs as Prometheus metrics.
//
// A Collector is a lifecycle.Observer: pass it to the sampler with
// lifecycle.WithObserver and every run, sample and layout flush is recorded.
// The collector owns its registry, so several collectors never collide and
// nothing is registered globally. Metrics can be scraped through Registry or
// written to a node_exporter textfile with WriteTextfile.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wesleyorama2/cyclebench/internal/lifecycle"
)

const metricsNamespace = "cyclebench"

// DefaultBuckets are millisecond buckets from 50µs to roughly 6.5s.
var DefaultBuckets = prometheus.ExponentialBuckets(0.05, 2, 18)

// Outcome label values for runs_completed_total.
const (
	OutcomeCompleted = "completed"
	OutcomeTimedOut  = "timed_out"
)

// Collector records lifecycle events. It is safe for concurrent use.
type Collector struct {
	registry *prometheus.Registry

	runsStarted   *prometheus.CounterVec
	runsCompleted *prometheus.CounterVec
	samples       *prometheus.HistogramVec
	layouts       *prometheus.HistogramVec
	lastMean      *prometheus.GaugeVec
	lastSamples   *prometheus.GaugeVec

	mu         sync.Mutex
	components map[string]string // run ID -> component
}

var _ lifecycle.Observer = (*Collector)(nil)

// NewCollector creates a collector with its own registry. buckets defaults
// to DefaultBuckets.
func NewCollector(buckets []float64) *Collector {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}

	c := &Collector{
		registry:   prometheus.NewRegistry(),
		components: make(map[string]string),

		runsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_started_total",
			Help:      "Benchmark runs started, by kind",
		}, []string{"kind"}),

		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_completed_total",
			Help:      "Benchmark runs finished, by kind and outcome (completed, timed_out)",
		}, []string{"kind", "outcome"}),

		samples: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sample_duration_milliseconds",
			Help:      "Render-to-commit time of each sample in milliseconds",
			Buckets:   buckets,
		}, []string{"kind"}),

		layouts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "layout_duration_milliseconds",
			Help:      "Forced layout flush time of each sample in milliseconds",
			Buckets:   buckets,
		}, []string{"kind"}),

		lastMean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_mean_milliseconds",
			Help:      "Mean sample time of the most recent run per kind and component",
		}, []string{"kind", "component"}),

		lastSamples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_samples",
			Help:      "Samples collected by the most recent run per kind and component",
		}, []string{"kind", "component"}),
	}

	c.registry.MustRegister(
		c.runsStarted,
		c.runsCompleted,
		c.samples,
		c.layouts,
		c.lastMean,
		c.lastSamples,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RunStarted implements lifecycle.Observer.
func (c *Collector) RunStarted(runID string, cfg lifecycle.Config) {
	c.runsStarted.WithLabelValues(cfg.Kind.String()).Inc()

	c.mu.Lock()
	c.components[runID] = cfg.Component
	c.mu.Unlock()
}

// SampleClosed implements lifecycle.Observer.
func (c *Collector) SampleClosed(_ string, kind lifecycle.Kind, s lifecycle.Sample) {
	c.samples.WithLabelValues(kind.String()).Observe(lifecycle.Millis(s.Elapsed))
	if s.HasLayout() {
		c.layouts.WithLabelValues(kind.String()).Observe(lifecycle.Millis(s.Layout))
	}
}

// RunCompleted implements lifecycle.Observer.
func (c *Collector) RunCompleted(r *lifecycle.Result) {
	outcome := OutcomeCompleted
	if r.TimedOut {
		outcome = OutcomeTimedOut
	}
	kind := r.Kind.String()
	c.runsCompleted.WithLabelValues(kind, outcome).Inc()

	c.mu.Lock()
	component, ok := c.components[r.RunID]
	delete(c.components, r.RunID)
	c.mu.Unlock()
	if !ok {
		component = r.Component
	}

	c.lastSamples.WithLabelValues(kind, component).Set(float64(r.SampleCount))
	if !r.Mean.IsNaN() {
		c.lastMean.WithLabelValues(kind, component).Set(float64(r.Mean))
	}
}

// WriteTextfile writes every metric to path in the Prometheus text format.
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
