package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OperationsTotal mutating operations by name and outcome
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "dsc",
		Subsystem: "engine",
		Name:      "operations_total",
		Help:      "Total number of mutating engine operations",
	},
	[]string{"op", "result"}, // result: ok, rejected, reentrant
)
