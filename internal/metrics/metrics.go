// Package metrics records run metrics on a private prometheus registry and
// writes them in the text exposition format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "friendgraph"

// Recorder holds the run metrics. A nil *Recorder is valid and records
// nothing, so library-style callers need no branches.
type Recorder struct {
	registry *prometheus.Registry

	Vertices       prometheus.Gauge
	Edges          prometheus.Gauge
	Components     prometheus.Gauge
	MalformedLines prometheus.Counter
	Iterations     *prometheus.CounterVec
	Residual       *prometheus.GaugeVec
	StageDuration  *prometheus.HistogramVec
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_vertices",
			Help:      "Number of vertices in the loaded graph",
		}),
		Edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of directed edges in the loaded graph",
		}),
		Components: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_components",
			Help:      "Number of weakly connected components",
		}),
		MalformedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loader_malformed_lines_total",
			Help:      "Input lines rejected by the loader",
		}),
		Iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagerank_iterations_total",
			Help:      "PageRank iterations performed",
		}, []string{"run"}),
		Residual: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pagerank_residual",
			Help:      "Delta of the last PageRank iteration",
		}, []string{"run"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
	}
	r.registry.MustRegister(
		r.Vertices, r.Edges, r.Components, r.MalformedLines,
		r.Iterations, r.Residual, r.StageDuration,
	)

	return r
}

// Registry exposes the private registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveGraph records the graph size.
func (r *Recorder) ObserveGraph(vertices, edges int) {
	if r == nil {
		return
	}
	r.Vertices.Set(float64(vertices))
	r.Edges.Set(float64(edges))
}

// ObserveComponents records the component count.
func (r *Recorder) ObserveComponents(n int) {
	if r == nil {
		return
	}
	r.Components.Set(float64(n))
}

// ObserveMalformed counts rejected input lines.
func (r *Recorder) ObserveMalformed(n int) {
	if r == nil {
		return
	}
	r.MalformedLines.Add(float64(n))
}

// ObservePageRank records one finished PageRank run.
func (r *Recorder) ObservePageRank(run string, iterations int, delta float64) {
	if r == nil {
		return
	}
	r.Iterations.WithLabelValues(run).Add(float64(iterations))
	r.Residual.WithLabelValues(run).Set(delta)
}

// ObserveStage records how long a pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteFile writes every metric to path in the text exposition format,
// replacing the file atomically.
func (r *Recorder) WriteFile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}
