package helpers

import (
	"sync"

	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// TemplateEvent is one recorded template operation
type TemplateEvent struct {
	Operation string
	Valid     bool
}

// MockRecorder captures engine events for assertions
type MockRecorder struct {
	mu            sync.Mutex
	Optimizations []factorycomplex.OptimizationStats
	Templates     []TemplateEvent
}

// NewMockRecorder creates an empty recorder
func NewMockRecorder() *MockRecorder {
	return &MockRecorder{}
}

// RecordOptimization stores optimizer statistics
func (r *MockRecorder) RecordOptimization(stats factorycomplex.OptimizationStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Optimizations = append(r.Optimizations, stats)
}

// RecordTemplate stores a template operation
func (r *MockRecorder) RecordTemplate(operation string, valid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Templates = append(r.Templates, TemplateEvent{Operation: operation, Valid: valid})
}

// LastOptimization returns the latest optimizer statistics
func (r *MockRecorder) LastOptimization() (factorycomplex.OptimizationStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Optimizations) == 0 {
		return factorycomplex.OptimizationStats{}, false
	}
	return r.Optimizations[len(r.Optimizations)-1], true
}
