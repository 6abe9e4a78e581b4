// Package metrics collects Prometheus metrics for the HTTP surface, the
// detection proxy and the event publisher.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the service exports.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	detections      *prometheus.CounterVec
	detectLatency   prometheus.Histogram
	eventsPublished *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sightings_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sightings_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sightings_detect_requests_total",
			Help: "Calls to the species-detection service by outcome.",
		}, []string{"outcome"}),
		detectLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sightings_detect_latency_seconds",
			Help:    "Latency of the species-detection call.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sightings_events_published_total",
			Help: "Domain events published to the broker by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.detections,
		c.detectLatency,
		c.eventsPublished,
	)
	return c
}

// RecordHTTP records one served request.
func (c *Collector) RecordHTTP(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordDetection records one call to the detection service.
func (c *Collector) RecordDetection(outcome string, d time.Duration) {
	c.detections.WithLabelValues(outcome).Inc()
	c.detectLatency.Observe(d.Seconds())
}

// RecordEvent records one publish attempt.
func (c *Collector) RecordEvent(outcome string) {
	c.eventsPublished.WithLabelValues(outcome).Inc()
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
