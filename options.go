package cascade

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/pedia/cascade/pattern"
)

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger routes the router's logging through e. Without it, logs are
// discarded.
func WithLogger(e *logrus.Entry) Option {
	return func(router *Router) {
		if e != nil {
			router.log = e
		}
	}
}

// WithHost sets the prefix URLFor places before generated paths, e.g.
// "https://example.com". A trailing slash is trimmed.
func WithHost(host string) Option {
	return func(router *Router) {
		router.host = strings.TrimSuffix(host, "/")
	}
}

// WithCache replaces the process-wide matcher cache with a private one, for
// example to bound or instrument it.
func WithCache(c pattern.Cache) Option {
	return func(router *Router) {
		if c != nil {
			router.cache = c
		}
	}
}

// WithMetrics registers dispatch counters and a latency histogram with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(router *Router) {
		router.metrics = newMetrics(reg)
	}
}

// WithTracing starts one span per dispatch from the global tracer provider.
// An empty name selects "cascade".
func WithTracing(name string) Option {
	return func(router *Router) {
		if name == "" {
			name = defaultTracerName
		}
		router.tracer = otel.Tracer(name)
	}
}
