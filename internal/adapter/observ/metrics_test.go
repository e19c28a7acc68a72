package observ

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.OrderPlaced(decimal.RequireFromString("20.00"))
	m.OrderPlaced(decimal.RequireFromString("5.50"))
	m.OrderRejected("price_mismatch")
	m.OrderRejected("price_mismatch")
	m.OrderRejected("validation")
	m.IntegrityFault()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.placed))
	assert.InDelta(t, 25.5, testutil.ToFloat64(m.value), 1e-9)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejections.WithLabelValues("price_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.integrity))
}
