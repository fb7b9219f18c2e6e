// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors of the portfolio front
// end. All methods are safe on a nil *Collector, which records nothing.
package metrics

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry and the collectors registered on it.
type Collector struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	itemsRendered   *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	archivesHidden  prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Collector {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_listing_cache_lookups_total",
		Help: "Listing cache lookups by result",
	}, []string{"result"})

	itemsRendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_items_rendered_total",
		Help: "Portfolio items rendered by template",
	}, []string{"template"})

	renderDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_render_duration_seconds",
		Help:    "Time spent rendering a portfolio module",
		Buckets: prometheus.DefBuckets,
	}, []string{"module"})

	archivesHidden := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_archives_hidden_total",
		Help: "Requested archives removed by the access filter",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLookups, itemsRendered, renderDuration, archivesHidden, goroutines)

	return &Collector{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLookups:    cacheLookups,
		itemsRendered:   itemsRendered,
		renderDuration:  renderDuration,
		archivesHidden:  archivesHidden,
	}
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return c.handler
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveHTTPRequest records one served request. route is the matched
// route pattern, not the raw path.
func (c *Collector) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	s := strconv.Itoa(status)
	c.requestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
	c.requestTotal.WithLabelValues(method, route, s).Inc()
}

// CacheLookup records a listing cache hit or miss.
func (c *Collector) CacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

// ItemsRendered adds n rendered items for a template.
func (c *Collector) ItemsRendered(template string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.itemsRendered.WithLabelValues(template).Add(float64(n))
}

// ObserveRender records how long a module took to render.
func (c *Collector) ObserveRender(module string, d time.Duration) {
	if c == nil {
		return
	}
	c.renderDuration.WithLabelValues(module).Observe(d.Seconds())
}

// ArchivesHidden adds n archives removed by the access filter.
func (c *Collector) ArchivesHidden(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.archivesHidden.Add(float64(n))
}
