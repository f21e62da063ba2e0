package cascade

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the per-router dispatch instruments. Built through
// WithMetrics; a nil *metrics means instrumentation is off.
type metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cascade",
			Name:      "dispatches_total",
			Help:      "Dispatch passes by method and resulting status code.",
		}, []string{"method", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cascade",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent inside Dispatch, including error chains.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *metrics) observe(method string, status int, elapsed time.Duration) {
	m.dispatches.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
