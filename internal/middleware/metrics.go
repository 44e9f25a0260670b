package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// PhotoUploads counts accepted photo uploads.
	PhotoUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photoshare_photo_uploads_total",
		Help: "Total number of photos uploaded",
	})

	// PhotoUploadBytes records the size distribution of uploaded photos.
	PhotoUploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "photoshare_photo_upload_bytes",
		Help:    "Size of uploaded photo files in bytes",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	})

	// AccountDeletions counts completed account deletion cascades.
	AccountDeletions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photoshare_account_deletions_total",
		Help: "Total number of account deletion cascades completed",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-level Prometheus middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
