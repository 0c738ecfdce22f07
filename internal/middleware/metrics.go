package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simonev_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ContentSubmissions counts content entering the verification queue.
	ContentSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "simonev_content_submissions_total",
		Help: "Total number of content submissions",
	})

	// VerificationVerdicts counts operator verdicts by outcome.
	VerificationVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simonev_verification_verdicts_total",
		Help: "Total number of verification verdicts by outcome",
	}, []string{"outcome"})
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The underlying collectors register once; repeated calls return the
// same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}

// MetricsMiddleware returns the Fiber handler that records per-request
// Prometheus metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
