package infrastructure

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spectrumloader/pkg/contracts/domain"
)

const metricsNamespace = "spectrumloader"

// Metrics holds the Prometheus collectors for dump loading and table derivation
type Metrics struct {
	registry *prometheus.Registry

	dumpsLoaded   *prometheus.CounterVec
	loadDuration  prometheus.Histogram
	derivations   *prometheus.CounterVec
	deriveSeconds *prometheus.HistogramVec
	skippedProbes prometheus.Counter
	httpRequests  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on a private registry
// together with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		dumpsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dumps_loaded_total",
			Help:      "Dump load attempts partitioned by result.",
		}, []string{"result"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dump_load_duration_seconds",
			Help:      "Time spent reading and decoding a dump.",
			Buckets:   prometheus.DefBuckets,
		}),
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "table_derivations_total",
			Help:      "Table derivations partitioned by table and result.",
		}, []string{"table", "result"}),
		deriveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "table_derivation_duration_seconds",
			Help:      "Time spent deriving a table from the raw record.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"table"}),
		skippedProbes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "skipped_probes_total",
			Help:      "Probes dropped because they carried no parallel measurements.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests partitioned by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.dumpsLoaded,
		m.loadDuration,
		m.derivations,
		m.deriveSeconds,
		m.skippedProbes,
		m.httpRequests,
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLoad records one dump load attempt
func (m *Metrics) ObserveLoad(elapsed time.Duration, err error) {
	m.dumpsLoaded.WithLabelValues(resultLabel(err)).Inc()
	m.loadDuration.Observe(elapsed.Seconds())
}

// ObserveDerivation records one table derivation
func (m *Metrics) ObserveDerivation(table domain.TableID, elapsed time.Duration, err error) {
	m.derivations.WithLabelValues(table.String(), resultLabel(err)).Inc()
	m.deriveSeconds.WithLabelValues(table.String()).Observe(elapsed.Seconds())
}

// ObserveSkippedProbe counts a probe dropped for missing parallels
func (m *Metrics) ObserveSkippedProbe() {
	m.skippedProbes.Inc()
}

// ObserveRequest counts one HTTP request
func (m *Metrics) ObserveRequest(route string, code int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// codedError is satisfied by the application errors
type codedError interface {
	error
	ErrorCode() string
}

// resultLabel maps an error to a low-cardinality label value
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var coded codedError
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return "error"
}
