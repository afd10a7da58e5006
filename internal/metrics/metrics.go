package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons reported on ChangesDropped.
const (
	ReasonMalformed   = "malformed"
	ReasonFiltered    = "filtered"
	ReasonEnrichError = "enrich_error"
)

// Metrics holds the flight-status pipeline metrics.
type Metrics struct {
	ChangesReceived   prometheus.Counter
	ChangesDropped    *prometheus.CounterVec
	EventsPublished   prometheus.Counter
	DeliveriesDropped prometheus.Counter
	Subscribers       prometheus.Gauge
	FeedSubscribed    prometheus.Gauge
	EnrichDuration    prometheus.Histogram
}

// New registers the pipeline metrics on reg under namespace.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChangesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_changes_received_total",
			Help:      "The total number of flight row changes received from the change feed",
		}),
		ChangesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_changes_dropped_total",
			Help:      "The total number of flight row changes that did not produce an event",
		}, []string{"reason"}),
		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_status_events_published_total",
			Help:      "The total number of status events published to the broker",
		}),
		DeliveriesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_status_deliveries_dropped_total",
			Help:      "The total number of queued events evicted from slow subscribers",
		}),
		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flight_status_subscribers",
			Help:      "The number of currently registered stream subscribers",
		}),
		FeedSubscribed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flight_change_feed_subscribed",
			Help:      "1 while the change feed subscription is established, 0 otherwise",
		}),
		EnrichDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_status_enrich_duration_seconds",
			Help:      "Time taken to enrich a status transition into an event",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// NewNop returns metrics registered on a private registry, for tests and tools.
func NewNop() *Metrics {
	return New("nop", prometheus.NewRegistry())
}
