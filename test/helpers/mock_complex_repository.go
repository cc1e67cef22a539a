package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// MockComplexRepository is a test double for factorycomplex.Repository
type MockComplexRepository struct {
	mu        sync.RWMutex
	complexes map[string]*factorycomplex.Complex
	updated   map[string]time.Time
	nextID    int

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockComplexRepository creates a new mock complex repository
func NewMockComplexRepository() *MockComplexRepository {
	return &MockComplexRepository{
		complexes: make(map[string]*factorycomplex.Complex),
		updated:   make(map[string]time.Time),
	}
}

// Save stores the complex, assigning sequential IDs to new ones
func (m *MockComplexRepository) Save(ctx context.Context, c *factorycomplex.Complex) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	if c.ID() == "" {
		m.nextID++
		c.SetID(fmt.Sprintf("complex-%d", m.nextID))
	}
	m.complexes[c.ID()] = c
	m.updated[c.ID()] = time.Now()
	return nil
}

// FindByID retrieves a complex by ID
func (m *MockComplexRepository) FindByID(ctx context.Context, id string) (*factorycomplex.Complex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.complexes[id]
	if !ok {
		return nil, &factorycomplex.NotFoundError{Key: id}
	}
	return c, nil
}

// FindByName retrieves the most recently saved complex with the name
func (m *MockComplexRepository) FindByName(ctx context.Context, name string) (*factorycomplex.Complex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		found  *factorycomplex.Complex
		latest time.Time
	)
	for id, c := range m.complexes {
		if c.Name() == name && !m.updated[id].Before(latest) {
			found, latest = c, m.updated[id]
		}
	}
	if found == nil {
		return nil, &factorycomplex.NotFoundError{Key: name}
	}
	return found, nil
}

// List returns summaries of all stored complexes, newest first
func (m *MockComplexRepository) List(ctx context.Context) ([]factorycomplex.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]factorycomplex.Summary, 0, len(m.complexes))
	for id, c := range m.complexes {
		summaries = append(summaries, factorycomplex.Summary{
			ID:        id,
			Name:      c.Name(),
			GameID:    c.Catalog().Game().ID(),
			UpdatedAt: m.updated[id],
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

// Delete removes a complex
func (m *MockComplexRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.complexes[id]; !ok {
		return &factorycomplex.NotFoundError{Key: id}
	}
	delete(m.complexes, id)
	delete(m.updated, id)
	return nil
}

// Count returns the number of stored complexes
func (m *MockComplexRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.complexes)
}
