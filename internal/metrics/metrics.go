package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emogo_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "emogo_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	RecordsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emogo_records_created_total",
		Help: "Records inserted per collection",
	}, []string{"collection"})

	UploadBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "emogo_video_upload_bytes_total",
		Help: "Bytes of video written to file storage",
	})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, RecordsCreated, UploadBytes)
	})
}

// Handler returns an http.Handler for Prometheus scraping
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts every request against its matched route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
