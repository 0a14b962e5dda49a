// Package obs содержит метрики Prometheus: общие HTTP-метрики
// и доменные счётчики пожертвований.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Общие HTTP-метрики
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Доменные метрики пожертвований
var (
	donationsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "donations_created_total",
		Help: "Total number of completed donations recorded.",
	})

	donationsAmountTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "donations_amount_total",
		Help: "Total amount of completed donations recorded.",
	})
)

// Init регистрирует метрики в default-регистре.
func Init() {
	prometheus.MustRegister(httpInFlight, httpRequestsTotal, httpRequestDuration,
		donationsCreatedTotal, donationsAmountTotal)
}

// Handler возвращает хэндлер Prometheus для маршрута /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDonation учитывает созданное пожертвование в доменных счётчиках.
func ObserveDonation(amount float64) {
	donationsCreatedTotal.Inc()
	donationsAmountTotal.Add(amount)
}

// Instrument — обёртка для измерения RPS, задержек и числа запросов в полёте.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		method := r.Method

		httpInFlight.Inc()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: 200}
		next.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(sw.code)

		httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpInFlight.Dec()
	})
}

// statusWriter запоминает код ответа для меток метрик.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
