// Package metrics owns the prometheus collectors for the pipeline and the
// preview API. Everything is registered on a dedicated registry.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Registry *prometheus.Registry

	modelsIntrospected   *prometheus.CounterVec
	propertiesClassified *prometheus.CounterVec
	artifactsEmitted     *prometheus.CounterVec
	introspectDuration   prometheus.Histogram

	HTTPDuration *prometheus.HistogramVec
	HTTPRequests *prometheus.CounterVec
}

// New builds the collectors. withRuntime adds the Go and process collectors,
// which only make sense for long-running servers.
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		modelsIntrospected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dtogen_models_introspected_total",
			Help: "Models introspected, by readability.",
		}, []string{"readable"}),
		propertiesClassified: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dtogen_properties_classified_total",
			Help: "Model properties classified, by kind.",
		}, []string{"kind"}),
		artifactsEmitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dtogen_artifacts_emitted_total",
			Help: "Artifact files emitted, by kind and action.",
		}, []string{"kind", "action"}),
		introspectDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dtogen_introspect_duration_seconds",
			Help:    "Time spent reading and classifying one model.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method", "status"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"path", "method", "status"}),
	}
}

func (m *Metrics) ModelIntrospected(readable bool, d time.Duration) {
	m.modelsIntrospected.WithLabelValues(strconv.FormatBool(readable)).Inc()
	m.introspectDuration.Observe(d.Seconds())
}

func (m *Metrics) PropertyClassified(kind string) {
	m.propertiesClassified.WithLabelValues(kind).Inc()
}

func (m *Metrics) ArtifactEmitted(kind, action string) {
	m.artifactsEmitted.WithLabelValues(kind, action).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
