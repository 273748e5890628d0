package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/dkurganov/weather-tracker/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weathertracker",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weathertracker",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Upstream provider metrics

	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weathertracker",
		Name:      "provider_requests_total",
		Help:      "Upstream weather provider requests, by outcome.",
	}, []string{"outcome"})

	ProviderRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weathertracker",
		Name:      "provider_request_duration_seconds",
		Help:      "Upstream weather provider request latency.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})

	// Snapshot cache metrics

	WeatherCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "weathertracker",
		Name:      "weather_cache_hits_total",
		Help:      "Weather snapshot cache hits.",
	})

	WeatherCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "weathertracker",
		Name:      "weather_cache_misses_total",
		Help:      "Weather snapshot cache misses.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		ProviderRequestsTotal,
		ProviderRequestDuration,
		WeatherCacheHits,
		WeatherCacheMisses,
	)
}

// NewServer serves /metrics plus the liveness and readiness probes on their
// own port, away from the public API.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, status int, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
