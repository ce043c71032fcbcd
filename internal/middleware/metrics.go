package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// InitMetrics creates the Prometheus middleware for the given service name.
// Each call gets its own registry, so constructing more than one Server in a
// process never trips duplicate collector registration.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), serviceName, "http", "", nil)
}

// MetricsMiddleware returns a Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
