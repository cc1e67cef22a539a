package factorycomplex

import (
	"context"
	"time"
)

// Recorder receives optimizer statistics
type Recorder interface {
	RecordOptimization(stats OptimizationStats)
}

// Summary is the stored metadata of a complex
type Summary struct {
	ID           string
	Name         string
	GameID       string
	TemplateCode string
	UpdatedAt    time.Time
}

// Repository defines the persistence interface for complexes
type Repository interface {
	// Save inserts or updates a complex
	Save(ctx context.Context, c *Complex) error

	// FindByID retrieves a complex by ID
	FindByID(ctx context.Context, id string) (*Complex, error)

	// FindByName retrieves the most recently updated complex with the name
	FindByName(ctx context.Context, name string) (*Complex, error)

	// List returns summaries of all stored complexes, newest first
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a complex
	Delete(ctx context.Context, id string) error
}
