package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// trendingServed — статьи, отданные из трендового кэша.
	trendingServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_cache_articles_served_total",
		Help: "Articles served from the trending cache.",
	})

	// fallbackRequests — запросы, дошедшие до fallback-ранжирования.
	fallbackRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_fallback_requests_total",
		Help: "Trending requests that required fallback ranking.",
	})

	// eventsAccepted — события, принятые и опубликованные в шину.
	eventsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trending_events_accepted_total",
		Help: "Interaction events accepted and published to the event bus.",
	})
)
