package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
	ZonesBuilt     prometheus.Counter
	ZonesSkipped   prometheus.Counter
	RingsClosed    prometheus.Counter
	RingsDropped   prometheus.Counter

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Storage metrics
	StorageOperationsTotal   *prometheus.CounterVec
	StorageOperationDuration *prometheus.HistogramVec

	// Plugin metrics
	PluginsRegistered prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbrshape_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mbrshape_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbrshape_exports_total",
				Help: "Total number of shapefile exports",
			},
			[]string{"status"},
		),
		ExportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mbrshape_export_duration_seconds",
				Help:    "Shapefile export duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"customer"},
		),
		ZonesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbrshape_zones_built_total",
			Help: "Total number of zone geometries built",
		}),
		ZonesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbrshape_zones_skipped_total",
			Help: "Total number of zones skipped for lack of usable geometry",
		}),
		RingsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbrshape_rings_closed_total",
			Help: "Total number of rings closed during repair",
		}),
		RingsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mbrshape_rings_dropped_total",
			Help: "Total number of degenerate rings dropped during repair",
		}),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbrshape_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbrshape_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
		StorageOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mbrshape_storage_operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"operation", "backend", "status"},
		),
		StorageOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mbrshape_storage_operation_duration_seconds",
				Help:    "Storage operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "backend"},
		),
		PluginsRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mbrshape_plugins_registered",
			Help: "Number of plugins currently registered",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ExportsTotal,
		m.ExportDuration,
		m.ZonesBuilt,
		m.ZonesSkipped,
		m.RingsClosed,
		m.RingsDropped,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.StorageOperationsTotal,
		m.StorageOperationDuration,
		m.PluginsRegistered,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
