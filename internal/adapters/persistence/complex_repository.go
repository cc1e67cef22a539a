package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/complex-planner/internal/adapters/document"
	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
)

// GormComplexRepository implements factorycomplex.Repository using GORM
type GormComplexRepository struct {
	db       *gorm.DB
	registry *catalog.Registry
	opts     []factorycomplex.Option
}

// NewGormComplexRepository creates a new GORM complex repository. opts are
// applied to every complex it loads.
func NewGormComplexRepository(db *gorm.DB, registry *catalog.Registry, opts ...factorycomplex.Option) *GormComplexRepository {
	return &GormComplexRepository{db: db, registry: registry, opts: opts}
}

// Save inserts or updates a complex, assigning an ID to new ones. A new
// complex keeps an empty ID when the save fails.
func (r *GormComplexRepository) Save(ctx context.Context, c *factorycomplex.Complex) (err error) {
	if c.ID() == "" {
		c.SetID(uuid.New().String())
		defer func() {
			if err != nil {
				c.SetID("")
			}
		}()
	}

	model, err := r.complexToModel(c)
	if err != nil {
		return fmt.Errorf("failed to convert complex to model: %w", err)
	}

	var existing ComplexModel
	result := r.db.WithContext(ctx).Where("id = ?", model.ID).First(&existing)
	switch {
	case result.Error == nil:
		model.CreatedAt = existing.CreatedAt
	case !errors.Is(result.Error, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to check complex: %w", result.Error)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save complex: %w", err)
	}
	return nil
}

// FindByID retrieves a complex by ID
func (r *GormComplexRepository) FindByID(ctx context.Context, id string) (*factorycomplex.Complex, error) {
	var model ComplexModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &factorycomplex.NotFoundError{Key: id}
		}
		return nil, fmt.Errorf("failed to find complex: %w", result.Error)
	}

	return r.modelToComplex(&model)
}

// FindByName retrieves the most recently updated complex with the name
func (r *GormComplexRepository) FindByName(ctx context.Context, name string) (*factorycomplex.Complex, error) {
	var model ComplexModel
	result := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("updated_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &factorycomplex.NotFoundError{Key: name}
		}
		return nil, fmt.Errorf("failed to find complex: %w", result.Error)
	}

	return r.modelToComplex(&model)
}

// List returns summaries of all stored complexes, newest first
func (r *GormComplexRepository) List(ctx context.Context) ([]factorycomplex.Summary, error) {
	var models []ComplexModel
	result := r.db.WithContext(ctx).
		Select("id", "name", "game_id", "template_code", "updated_at").
		Order("updated_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list complexes: %w", result.Error)
	}

	summaries := make([]factorycomplex.Summary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, factorycomplex.Summary{
			ID:           m.ID,
			Name:         m.Name,
			GameID:       m.GameID,
			TemplateCode: m.TemplateCode,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return summaries, nil
}

// Delete removes a complex
func (r *GormComplexRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ComplexModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete complex: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &factorycomplex.NotFoundError{Key: id}
	}
	return nil
}

// modelToComplex rebuilds the domain complex from its stored document
func (r *GormComplexRepository) modelToComplex(model *ComplexModel) (*factorycomplex.Complex, error) {
	c, err := document.Unmarshal(r.registry, []byte(model.Document), r.opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid complex document %s: %w", model.ID, err)
	}
	c.SetID(model.ID)
	return c, nil
}

// complexToModel stores the full document plus the template code for listing
func (r *GormComplexRepository) complexToModel(c *factorycomplex.Complex) (*ComplexModel, error) {
	doc, err := document.Marshal(c)
	if err != nil {
		return nil, err
	}
	code, err := template.Encode(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}

	return &ComplexModel{
		ID:           c.ID(),
		Name:         c.Name(),
		GameID:       c.Catalog().Game().ID(),
		TemplateCode: code,
		Document:     string(doc),
	}, nil
}
