// Package metrics exposes Prometheus instrumentation for the ledger
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutations counts project mutations by operation name.
var Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tally",
	Name:      "mutations_total",
	Help:      "Number of project mutations, labelled by operation.",
}, []string{"op"})

// SettlementPlans counts settlement plan computations.
var SettlementPlans = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tally",
	Name:      "settlement_plans_total",
	Help:      "Number of settlement plans computed.",
})
