package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal             = "http_requests_total"
	HTTPRequestDurationSeconds   = "http_request_duration_seconds"
	MediatorRequestTotal         = "mediator_requests_total"
	MediatorRequestDuration      = "mediator_request_duration_seconds"
	RealtimeSessions             = "realtime_sessions"
	RealtimeDroppedSessionsTotal = "realtime_dropped_sessions_total"
	RealtimeBroadcastEventsTotal = "realtime_broadcast_events_total"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{
		RealtimeSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: RealtimeSessions,
			Help: "Number of connected realtime sessions",
		}, []string{}),
	}

	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
		MediatorRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MediatorRequestTotal,
			Help: "Count of all dispatched commands and queries",
		}, []string{"kind", "outcome"}),
		RealtimeDroppedSessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RealtimeDroppedSessionsTotal,
			Help: "Count of sessions closed because their buffer was full",
		}, []string{}),
		RealtimeBroadcastEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RealtimeBroadcastEventsTotal,
			Help: "Count of events fanned out to activity subscribers",
		}, []string{"event"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "path", "status_code"}),
		MediatorRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: MediatorRequestDuration,
			Help: "Duration of all dispatched commands and queries",
		}, []string{"kind"}),
	}
)
