package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "takeout"

// Recorder holds the kiosk's Prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry

	OrdersPlaced       *prometheus.CounterVec
	LineItems          prometheus.Counter
	SelectionsRejected *prometheus.CounterVec
	QuantitiesCoerced  prometheus.Counter
	OrderTotals        prometheus.Histogram
}

// New creates a recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders checked out, by channel.",
		}, []string{"channel"}),
		LineItems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_items_total",
			Help:      "Line items appended to orders.",
		}),
		SelectionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_rejected_total",
			Help:      "Menu selections rejected, by reason.",
		}, []string{"reason"}),
		QuantitiesCoerced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quantities_coerced_total",
			Help:      "Quantities defaulted to 1 after invalid input.",
		}),
		OrderTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_amount",
			Help:      "Distribution of order totals.",
			Buckets:   []float64{5, 10, 20, 40, 80, 160},
		}),
	}

	r.registry.MustRegister(
		r.OrdersPlaced,
		r.LineItems,
		r.SelectionsRejected,
		r.QuantitiesCoerced,
		r.OrderTotals,
	)
	return r
}

func (r *Recorder) ItemAdded() {
	r.LineItems.Inc()
}

func (r *Recorder) SelectionRejected(reason string) {
	r.SelectionsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) QuantityCoerced() {
	r.QuantitiesCoerced.Inc()
}

// OrderPlaced records a checkout and its total.
func (r *Recorder) OrderPlaced(channel string, total decimal.Decimal) {
	r.OrdersPlaced.WithLabelValues(channel).Inc()
	r.OrderTotals.Observe(total.InexactFloat64())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
