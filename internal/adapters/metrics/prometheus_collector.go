package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

const (
	// Namespace for all metrics
	namespace = "complex_planner"
	// Subsystem for calculation engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording engine events
type PlannerMetricsRecorder interface {
	RecordOptimization(stats factorycomplex.OptimizationStats)
	RecordTemplate(operation string, valid bool)
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

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordOptimization records an optimizer run globally
func RecordOptimization(stats factorycomplex.OptimizationStats) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordOptimization(stats)
	}
}

// RecordTemplate records a template encode, decode or validation globally
func RecordTemplate(operation string, valid bool) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordTemplate(operation, valid)
	}
}

// recorderFunc adapts the global recording function to factorycomplex.Recorder
type recorderFunc func(stats factorycomplex.OptimizationStats)

func (f recorderFunc) RecordOptimization(stats factorycomplex.OptimizationStats) { f(stats) }

// GlobalRecorder returns a factorycomplex.Recorder forwarding to the global
// planner collector
func GlobalRecorder() factorycomplex.Recorder {
	return recorderFunc(RecordOptimization)
}

// WriteTextfile writes the registry in the node exporter textfile format.
// A one-shot CLI run has no scrape endpoint, so its metrics go to a file.
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
