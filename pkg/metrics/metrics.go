package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LineItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eshop_line_items_total",
			Help: "Line items by outcome",
		},
		[]string{"outcome"}, // success|failed|skipped
	)
	Batches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eshop_batches_total",
			Help: "Order batches processed",
		},
	)
	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eshop_batch_duration_seconds",
			Help:    "Time spent processing one order batch",
			Buckets: prometheus.DefBuckets,
		},
	)
	RevenueCents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eshop_revenue_cents_total",
			Help: "Accumulated revenue in cents",
		},
	)
)

var (
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eshop_active_connections",
			Help: "Client connections currently being served",
		},
	)
	ConnectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eshop_connections_total",
			Help: "Client connections accepted since start",
		},
	)
	AcceptErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eshop_accept_errors_total",
			Help: "Transient accept errors",
		},
	)
)

func MustRegister() {
	prometheus.MustRegister(LineItems, Batches, BatchDuration, RevenueCents,
		ActiveConnections, ConnectionsTotal, AcceptErrors)
}
