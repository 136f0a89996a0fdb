package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

const (
	// Namespace for all metrics
	namespace = "colonysim"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is the singleton simulation metrics collector
	// Set by SetGlobalSimulationCollector() when metrics are enabled
	globalSimulationCollector SimulationMetricsRecorder
)

// SimulationMetricsRecorder defines the interface for recording simulation runs
// This interface is used by application code to record metrics
type SimulationMetricsRecorder interface {
	RecordSimulationAdvance(report *planetary.SimulationReport, duration time.Duration, err error)
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

// SetGlobalSimulationCollector sets the global simulation metrics collector
func SetGlobalSimulationCollector(collector SimulationMetricsRecorder) {
	globalSimulationCollector = collector
}

// RecordSimulationAdvance records one simulator run globally.
// report may be nil when the run was rejected before any event was applied.
func RecordSimulationAdvance(report *planetary.SimulationReport, duration time.Duration, err error) {
	if globalSimulationCollector != nil {
		globalSimulationCollector.RecordSimulationAdvance(report, duration, err)
	}
}
