package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/avatarctic/qrcode-service/go/internal/core/ports"
)

// CacheMetrics records memoizer outcomes as Prometheus counters.
type CacheMetrics struct {
	lookups       *prometheus.CounterVec
	backendErrors *prometheus.CounterVec
	producerCalls *prometheus.CounterVec
}

var _ ports.CacheRecorder = (*CacheMetrics)(nil)

// NewCacheMetrics creates the collectors and registers them with reg.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcache_lookups_total",
				Help: "Cache lookups by channel and result",
			},
			[]string{"channel", "result"},
		),
		backendErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcache_backend_errors_total",
				Help: "Cache backend failures absorbed by the fail-open policy",
			},
			[]string{"op"},
		),
		producerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcache_producer_calls_total",
				Help: "Calls that reached the wrapped producer",
			},
			[]string{"function"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.lookups, m.backendErrors, m.producerCalls)
	}
	return m
}

func (m *CacheMetrics) Hit(channel string) {
	m.lookups.WithLabelValues(channel, "hit").Inc()
}

func (m *CacheMetrics) Miss() {
	m.lookups.WithLabelValues("none", "miss").Inc()
}

func (m *CacheMetrics) BackendError(op string) {
	m.backendErrors.WithLabelValues(op).Inc()
}

func (m *CacheMetrics) ProducerCall(function string) {
	m.producerCalls.WithLabelValues(function).Inc()
}
