package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики агрегатора; отдаются наружу через /metrics в main.
var (
	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_events_processed_total",
		Help: "Interaction events folded into the trending store.",
	})
	eventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_events_skipped_total",
		Help: "Malformed interaction events terminated without retry.",
	})
	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_events_failed_total",
		Help: "Interaction events NAK-ed due to transient store failures.",
	})
)
