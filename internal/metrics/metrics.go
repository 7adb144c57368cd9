// Package metrics records per-run analysis counters in a private prometheus
// registry. The registry is never served; it can be written to a
// node_exporter textfile after the run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/efgscan/internal/efg"
)

const namespace = "efgscan"

// Recorder holds the collectors of one process run. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	windows       *prometheus.CounterVec
	widgets       *prometheus.CounterVec
	nodeKinds     *prometheus.CounterVec
	edges         *prometheus.CounterVec
	terminals     *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		windows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Windows discovered in UI definitions.",
		}, []string{"analysis"}),
		widgets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "widgets_total",
			Help:      "Widgets in the final model, by widget kind.",
		}, []string{"analysis", "kind"}),
		nodeKinds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_kinds_total",
			Help:      "Widgets in the final model, by node kind.",
		}, []string{"analysis", "node_kind"}),
		edges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edges_total",
			Help:      "Edges in the final model.",
		}, []string{"analysis"}),
		terminals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reject_terminals_total",
			Help:      "Widgets found terminal because their handler calls reject().",
		}, []string{"analysis"}),
		stageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_failures_total",
			Help:      "Pipeline stages that hit an I/O failure.",
		}, []string{"analysis", "stage"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"analysis"}),
	}
	r.registry.MustRegister(r.windows, r.widgets, r.nodeKinds, r.edges, r.terminals, r.stageFailures, r.duration)
	return r
}

// ObserveModel records the shape of a finished model.
func (r *Recorder) ObserveModel(analysis string, m *efg.Model) {
	if r == nil {
		return
	}
	r.windows.WithLabelValues(analysis).Add(float64(len(m.Windows)))
	r.edges.WithLabelValues(analysis).Add(float64(m.EdgeCount()))
	m.Each(func(_ *efg.Window, _ int, w *efg.Widget) {
		r.widgets.WithLabelValues(analysis, w.Kind.String()).Inc()
		r.nodeKinds.WithLabelValues(analysis, w.NodeKind.String()).Inc()
	})
}

// ObserveTerminals adds to the reject() terminal counter.
func (r *Recorder) ObserveTerminals(analysis string, n int) {
	if r == nil {
		return
	}
	r.terminals.WithLabelValues(analysis).Add(float64(n))
}

// StageFailed counts one failed stage.
func (r *Recorder) StageFailed(analysis, stage string) {
	if r == nil {
		return
	}
	r.stageFailures.WithLabelValues(analysis, stage).Inc()
}

// ObserveDuration records how long an analysis took.
func (r *Recorder) ObserveDuration(analysis string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(analysis).Observe(d.Seconds())
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
