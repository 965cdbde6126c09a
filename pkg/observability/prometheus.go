package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/souper/pkg/errors"
)

const namespace = "souper"

// PrometheusHooks collects scan and cache events as Prometheus metrics in a
// private registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	manifests   *prometheus.CounterVec
	deps        *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	duration    prometheus.Gauge
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewPrometheusHooks creates hooks backed by a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	h := &PrometheusHooks{
		registry: prometheus.NewRegistry(),
		manifests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manifests_scanned_total",
			Help:      "Manifests passed to an extractor, by manifest kind.",
		}, []string{"kind"}),
		deps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dependencies_found_total",
			Help:      "Dependency records extracted, by manifest kind.",
		}, []string{"kind"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Manifests that failed to parse, by manifest kind.",
		}, []string{"kind"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Wall time of the most recent scan.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Extractions served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Extractions that had to parse the manifest.",
		}),
	}
	h.registry.MustRegister(h.manifests, h.deps, h.parseErrors, h.duration, h.cacheHits, h.cacheMisses)
	return h
}

// Registry returns the registry holding the collected metrics.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes the collected metrics in the text exposition format,
// suitable for the node_exporter textfile collector.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, h.registry); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write metrics to %s", path)
	}
	return nil
}

func (h *PrometheusHooks) OnScanStart(context.Context, string) {}

func (h *PrometheusHooks) OnManifestParsed(_ context.Context, kind string, deps int, _ time.Duration, err error) {
	h.manifests.WithLabelValues(kind).Inc()
	if err != nil {
		h.parseErrors.WithLabelValues(kind).Inc()
		return
	}
	h.deps.WithLabelValues(kind).Add(float64(deps))
}

func (h *PrometheusHooks) OnScanComplete(_ context.Context, _, _ int, duration time.Duration, _ error) {
	h.duration.Set(duration.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(context.Context, string)  { h.cacheHits.Inc() }
func (h *PrometheusHooks) OnCacheMiss(context.Context, string) { h.cacheMisses.Inc() }

var (
	_ ScanHooks  = (*PrometheusHooks)(nil)
	_ CacheHooks = (*PrometheusHooks)(nil)
)
