package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FactoryMetrics holds all Prometheus metrics for the factory module
type FactoryMetrics struct {
	ExchangesCreated prometheus.Counter
}

var (
	factoryMetricsOnce sync.Once
	factoryMetrics     *FactoryMetrics
)

// NewFactoryMetrics creates and registers factory metrics (singleton pattern)
func NewFactoryMetrics() *FactoryMetrics {
	factoryMetricsOnce.Do(func() {
		factoryMetrics = &FactoryMetrics{
			ExchangesCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "factory",
					Name:      "exchanges_created_total",
					Help:      "Total number of exchanges created",
				},
			),
		}
	})
	return factoryMetrics
}
