package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OptimizerCollector exports optimization run metrics to Prometheus.
type OptimizerCollector struct {
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	combinations    prometheus.Gauge
	savingsEstimate *prometheus.GaugeVec
}

// NewOptimizerCollector creates the collector and registers its metrics on
// the given registry.
func NewOptimizerCollector(registry *prometheus.Registry) *OptimizerCollector {
	c := &OptimizerCollector{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Total optimization runs by vessel and safety outcome",
		}, []string{"vessel", "safe"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of optimization runs",
			Buckets:   prometheus.DefBuckets,
		}),
		combinations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "combinations_evaluated",
			Help:      "Strategy combinations evaluated in the most recent run",
		}),
		savingsEstimate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_savings",
			Help:      "Savings of the top-ranked plan against the reactive baseline, by vessel",
		}, []string{"vessel"}),
	}

	registry.MustRegister(c.runsTotal, c.runDuration, c.combinations, c.savingsEstimate)
	return c
}

// RecordOptimization records one completed optimization run.
func (c *OptimizerCollector) RecordOptimization(vesselIMO string, combinations int, elapsed time.Duration, savings float64, safe bool) {
	c.runsTotal.WithLabelValues(vesselIMO, strconv.FormatBool(safe)).Inc()
	c.runDuration.Observe(elapsed.Seconds())
	c.combinations.Set(float64(combinations))
	c.savingsEstimate.WithLabelValues(vesselIMO).Set(savings)
}
