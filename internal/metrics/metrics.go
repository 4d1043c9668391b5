// Package metrics expone las métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once
	registry     *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	loginAttemptsTotal *prometheus.CounterVec
)

// setup registra los collectors una sola vez.
func setup() {
	registerOnce.Do(func() {
		registry = prometheus.NewRegistry()

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método",
		}, []string{"method"})

		loginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Intentos de login por resultado",
		}, []string{"result"}) // result: ok|not_found|bad_password|disabled|error

		registry.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight, loginAttemptsTotal)
	})
}

// Handler devuelve el handler para GET /metrics.
func Handler() http.Handler {
	setup()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveRequest registra un request terminado.
// path debe ser el patrón de ruta (baja cardinalidad), no la URL cruda.
func ObserveRequest(method, path string, status int, dur time.Duration) {
	setup()
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

// IncInflight / DecInflight marcan requests en vuelo.
func IncInflight(method string) {
	setup()
	httpInflight.WithLabelValues(method).Inc()
}

func DecInflight(method string) {
	setup()
	httpInflight.WithLabelValues(method).Dec()
}

// IncLoginAttempt registra un intento de login por resultado.
func IncLoginAttempt(result string) {
	setup()
	loginAttemptsTotal.WithLabelValues(result).Inc()
}
