package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "lubeplan"
	// Subsystem for optimizer metrics
	subsystem = "optimizer"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalCollector is the singleton optimizer metrics collector
	// Set by SetGlobalCollector() when metrics are enabled
	globalCollector OptimizationRecorder
)

// OptimizationRecorder defines the interface for recording optimization run
// events. Application code records through the package-level functions so a
// disabled metrics stack costs one nil check.
type OptimizationRecorder interface {
	RecordOptimization(vesselIMO string, combinations int, elapsed time.Duration, savings float64, safe bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalCollector sets the global optimizer metrics collector
func SetGlobalCollector(collector OptimizationRecorder) {
	globalCollector = collector
}

// RecordOptimization records an optimization run event globally
func RecordOptimization(vesselIMO string, combinations int, elapsed time.Duration, savings float64, safe bool) {
	if globalCollector != nil {
		globalCollector.RecordOptimization(vesselIMO, combinations, elapsed, savings, safe)
	}
}
