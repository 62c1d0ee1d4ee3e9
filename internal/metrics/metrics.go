// Package metrics exposes order, payment and access-guard counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what services and guards report to.
type Recorder interface {
	RecordOrderPlaced()
	RecordPaymentConfirmed()
	RecordInconsistentPayment()
	RecordGuardRejection(reason string)
}

type Collector struct {
	ordersPlaced      prometheus.Counter
	paymentsConfirmed prometheus.Counter
	inconsistent      prometheus.Counter
	guardRejections   *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders created through POST /orders.",
		}),
		paymentsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payments_confirmed_total",
			Help: "Orders moved to paid with a matching payment record.",
		}),
		inconsistent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payment_reconcile_inconsistent_total",
			Help: "Payment records written whose order could not be marked paid.",
		}),
		guardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guard_rejections_total",
			Help: "Requests rejected by an access guard, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.ordersPlaced,
		c.paymentsConfirmed,
		c.inconsistent,
		c.guardRejections,
	)

	return c
}

func (c *Collector) RecordOrderPlaced() {
	c.ordersPlaced.Inc()
}

func (c *Collector) RecordPaymentConfirmed() {
	c.paymentsConfirmed.Inc()
}

func (c *Collector) RecordInconsistentPayment() {
	c.inconsistent.Inc()
}

func (c *Collector) RecordGuardRejection(reason string) {
	c.guardRejections.WithLabelValues(reason).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordOrderPlaced()          {}
func (Nop) RecordPaymentConfirmed()     {}
func (Nop) RecordInconsistentPayment()  {}
func (Nop) RecordGuardRejection(string) {}
