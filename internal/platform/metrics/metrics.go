// Package metrics exposes Prometheus instrumentation for the analysis API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seo_insight"

// Recorder owns a private registry so several recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	scores           prometheus.Histogram
	httpRequests     *prometheus.CounterVec
}

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of page analyses by outcome.",
			},
			[]string{"outcome"},
		),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of a full analysis including the summary call.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "seo_score",
			Help:      "Distribution of computed SEO scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.analyses,
		r.analysisDuration,
		r.scores,
		r.httpRequests,
	)

	return r
}

// ObserveAnalysis records one analysis. Outcome is "ok" or an error kind name.
// A negative score means no score was computed.
func (r *Recorder) ObserveAnalysis(outcome string, score int, elapsed time.Duration) {
	r.analyses.WithLabelValues(outcome).Inc()
	r.analysisDuration.Observe(elapsed.Seconds())
	if score >= 0 {
		r.scores.Observe(float64(score))
	}
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(method, path string, status int) {
	r.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
