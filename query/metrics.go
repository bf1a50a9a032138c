package query

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	requests *prometheus.CounterVec
	attempts *prometheus.CounterVec
	entries  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fabdash",
			Subsystem: "query_cache",
			Name:      "requests_total",
			Help:      "Query cache lookups by resource and result (hit, stale, miss).",
		}, []string{"resource", "result"}),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fabdash",
			Subsystem: "query_cache",
			Name:      "fetch_attempts_total",
			Help:      "Upstream fetch attempts by resource and outcome.",
		}, []string{"resource", "outcome"}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fabdash",
			Subsystem: "query_cache",
			Name:      "entries",
			Help:      "Entries currently held by the query cache.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.attempts, m.entries)
	}
	return m
}
