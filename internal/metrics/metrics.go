// Package metrics exposes Prometheus counters for cellar activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus collectors.
type Metrics struct {
	PoursLogged     prometheus.Counter
	BlendTransfers  prometheus.Counter
	Reconciliations prometheus.Counter
	OrphansAdopted  prometheus.Counter
}

// New creates the collectors and registers them with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PoursLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dramcellar",
			Name:      "pours_logged_total",
			Help:      "Tasting notes logged with a bottle deduction.",
		}),
		BlendTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dramcellar",
			Name:      "blend_transfers_total",
			Help:      "Transfers into infinity bottles.",
		}),
		Reconciliations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dramcellar",
			Name:      "reconciliations_total",
			Help:      "Legacy reconciliation runs that provisioned a collection.",
		}),
		OrphansAdopted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dramcellar",
			Name:      "orphan_bottles_adopted_total",
			Help:      "Bottles adopted into a collection during reconciliation.",
		}),
	}

	reg.MustRegister(m.PoursLogged, m.BlendTransfers, m.Reconciliations, m.OrphansAdopted)
	return m
}
