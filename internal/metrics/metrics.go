// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the upstream image API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapseek_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snapseek_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snapseek_searches_total",
		Help: "Search submissions by outcome (ok, upstream_auth, upstream_timeout, upstream_error).",
	}, []string{"outcome"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "snapseek_upstream_duration_seconds",
		Help:    "Latency of Unsplash search calls.",
		Buckets: prometheus.DefBuckets,
	})
)

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveSearch records one search submission outcome.
func ObserveSearch(outcome string, upstreamElapsed time.Duration) {
	searchesTotal.WithLabelValues(outcome).Inc()
	if upstreamElapsed > 0 {
		upstreamDuration.Observe(upstreamElapsed.Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
