// Package metrics expone las métricas Prometheus de la API en un registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors de HTTP, escaneo y tiempo real.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ScansTotal          *prometheus.CounterVec
	WarehouseScansTotal *prometheus.CounterVec

	RealtimeSubscribers prometheus.Gauge
	RealtimeDropped     prometheus.Counter
}

// New registra todos los collectors bajo namespace.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "almacen"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
	m.HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Peticiones HTTP en curso",
	})

	m.ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Escaneos enviados, por resultado",
		},
		[]string{"result"},
	)
	m.WarehouseScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warehouse_scans_total",
			Help:      "Copias de almacén, guardadas o rechazadas por duplicado",
		},
		[]string{"result"},
	)

	m.RealtimeSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_subscribers",
		Help:      "Clientes websocket conectados",
	})
	m.RealtimeDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_dropped_total",
		Help:      "Notificaciones descartadas por suscriptores sin espacio",
	})

	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration, m.HTTPRequestsInFlight,
		m.ScansTotal, m.WarehouseScansTotal,
		m.RealtimeSubscribers, m.RealtimeDropped,
	)
	return m
}

// Handler devuelve el handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry devuelve el registro Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest registra una petición terminada.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Middleware mide cada petición usando la ruta registrada (no la URL) como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		m.RecordHTTPRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}

// ScanSubmitted implementa scan.Recorder.
func (m *Metrics) ScanSubmitted(found bool) {
	result := "not_found"
	if found {
		result = "found"
	}
	m.ScansTotal.WithLabelValues(result).Inc()
}

// WarehouseScanSaved implementa scan.Recorder.
func (m *Metrics) WarehouseScanSaved(duplicate bool) {
	result := "saved"
	if duplicate {
		result = "duplicate"
	}
	m.WarehouseScansTotal.WithLabelValues(result).Inc()
}

// SubscribersChanged implementa realtime.Observer.
func (m *Metrics) SubscribersChanged(n int) {
	m.RealtimeSubscribers.Set(float64(n))
}

// MessageDropped implementa realtime.Observer.
func (m *Metrics) MessageDropped() {
	m.RealtimeDropped.Inc()
}
