// Package metrics содержит коллекторы Prometheus сервиса taskflow.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "api"
	subsystem = "taskflow"
)

// Metrics объединяет коллекторы сервиса.
type Metrics struct {
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	breakerState   *prometheus.GaugeVec
	cacheLookups   *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_latency_seconds",
			Help:      "Duration of requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}, []string{"name"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "user_cache_lookups_total",
			Help:      "User cache lookups by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestLatency, m.breakerState, m.cacheLookups} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

// ObserveRequest учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(took.Seconds())
}

// SetBreakerState публикует состояние предохранителя.
func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}

// CacheLookup учитывает обращение к кэшу: hit, miss или error.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
