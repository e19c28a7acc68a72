package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// OrderMetrics counts order outcomes. It implements usecase.OrderMetrics
// and queue.IntegrityReporter.
type OrderMetrics struct {
	placed     prometheus.Counter
	rejections *prometheus.CounterVec
	value      prometheus.Counter
	integrity  prometheus.Counter
}

// NewOrderMetrics registers the order counters on reg.
// A nil reg uses the default registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &OrderMetrics{
		placed: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_placed_total",
			Help: "Orders accepted and persisted",
		}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_order_rejections_total",
			Help: "Order submissions refused, by reason",
		}, []string{"reason"}),
		value: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_order_value_total",
			Help: "Sum of accepted order totals",
		}),
		integrity: f.NewCounter(prometheus.CounterOpts{
			Name: "shop_order_integrity_faults_total",
			Help: "Stored orders whose total disagrees with their line items",
		}),
	}
}

func (m *OrderMetrics) OrderPlaced(total decimal.Decimal) {
	m.placed.Inc()
	f, _ := total.Float64()
	m.value.Add(f)
}

func (m *OrderMetrics) OrderRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *OrderMetrics) IntegrityFault() {
	m.integrity.Inc()
}
