// Package metrics holds the Prometheus collectors exported by `monitor serve`.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Action result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// ActionsTotal counts operator writes by action and result.
	ActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "monitor_actions_total",
		Help: "Operator actions written to the remote store",
	}, []string{"action", "result"})

	// LoadDuration observes full dashboard loads.
	LoadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "monitor_load_duration_seconds",
		Help:    "Latency of loading buckets and products from the remote store",
		Buckets: prometheus.DefBuckets,
	})

	// ProductsLoaded is the size of the in-memory product collection.
	ProductsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "monitor_products_loaded",
		Help: "Products currently held in memory",
	})

	registerOnce sync.Once
)

// Init registers every collector with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ActionsTotal, LoadDuration, ProductsLoaded)
	})
}

// ObserveAction records the outcome of one write.
func ObserveAction(action string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	ActionsTotal.WithLabelValues(action, result).Inc()
}
