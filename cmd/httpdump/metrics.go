package main

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "httpdump_events_total",
		Help: "Number of parser events emitted, by event type.",
	}, []string{"type"})

	parseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "httpdump_parse_duration_seconds",
		Help:    "Wall-clock time spent inside Feed per connection-read cycle.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(eventsTotal, parseDuration)
}
