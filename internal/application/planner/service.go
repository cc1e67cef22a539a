package planner

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/complex-planner/internal/application/logging"
	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
)

// Template operation labels passed to Recorder.RecordTemplate
const (
	OperationEncode   = "encode"
	OperationDecode   = "decode"
	OperationValidate = "validate"
)

// Recorder receives engine events
type Recorder interface {
	factorycomplex.Recorder
	RecordTemplate(operation string, valid bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordOptimization(factorycomplex.OptimizationStats) {}
func (noopRecorder) RecordTemplate(string, bool)                         {}

// Settings are the engine defaults applied to every complex the service builds
type Settings struct {
	DefaultGame      string
	ExcludedFactions []string
	MaxPasses        int
	AutoFill         bool
}

// Service is the input boundary of the calculation engine
type Service struct {
	registry *catalog.Registry
	repo     factorycomplex.Repository
	settings Settings
	recorder Recorder
	validate *validator.Validate
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithRepository enables the storage operations
func WithRepository(repo factorycomplex.Repository) ServiceOption {
	return func(s *Service) { s.repo = repo }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates a planner service
func NewService(registry *catalog.Registry, settings Settings, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		settings: settings,
		recorder: noopRecorder{},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the catalogs the service plans against
func (s *Service) Registry() *catalog.Registry { return s.registry }

// ComplexOptions returns the options applied to every complex built for ctx
func (s *Service) ComplexOptions(ctx context.Context, extra ...factorycomplex.Option) []factorycomplex.Option {
	opts := []factorycomplex.Option{
		factorycomplex.WithLogger(logging.LoggerFromContext(ctx)),
		factorycomplex.WithRecorder(s.recorder),
		factorycomplex.WithExcludedFactions(s.settings.ExcludedFactions...),
		factorycomplex.WithMaxPasses(s.settings.MaxPasses),
	}
	return append(opts, extra...)
}

func (s *Service) check(request interface{}) error {
	if err := s.validate.Struct(request); err != nil {
		return newValidationError(err)
	}
	return nil
}

func (s *Service) game(id string) (*catalog.Catalog, error) {
	if id == "" {
		id = s.settings.DefaultGame
	}
	if id == "" {
		return s.registry.Default(), nil
	}
	return s.registry.Game(id)
}

// Plan builds a complex from a request. Buildings are added with auto-fill
// off so the optimizer runs once the complex is complete.
func (s *Service) Plan(ctx context.Context, cmd *PlanCommand) (*factorycomplex.Complex, error) {
	if err := s.check(cmd); err != nil {
		return nil, err
	}

	cat, err := s.game(cmd.Game)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game: %w", err)
	}

	opts := []factorycomplex.Option{
		factorycomplex.WithAutoFill(false),
		factorycomplex.WithExcludedFactions(cmd.ExcludedFactions...),
	}
	if cmd.Name != "" {
		opts = append(opts, factorycomplex.WithName(cmd.Name))
	}
	c := factorycomplex.New(cat, s.ComplexOptions(ctx, opts...)...)

	if cmd.BandPercent != nil {
		if err := c.SetBand(*cmd.BandPercent); err != nil {
			return nil, err
		}
	}
	if cmd.LocationID != "" {
		if err := c.SetLocation(cmd.LocationID); err != nil {
			return nil, err
		}
	}

	prices := make(map[string]factorycomplex.CustomPrice, len(cmd.Prices))
	for _, p := range cmd.Prices {
		if p.Unused {
			prices[p.GoodID] = factorycomplex.InactivePrice(p.Price)
		} else {
			prices[p.GoodID] = factorycomplex.ActivePrice(p.Price)
		}
	}
	if err := c.SetCustomPrices(prices); err != nil {
		return nil, err
	}

	for _, b := range cmd.Buildings {
		switch {
		case len(b.Yields) > 0 && b.Disabled:
			err = c.AddDisabledExtraction(b.BuildingID, b.Yields)
		case len(b.Yields) > 0:
			err = c.AddExtraction(b.BuildingID, b.Yields)
		case b.Disabled:
			err = c.AddDisabledBuilding(b.BuildingID, b.Quantity)
		default:
			err = c.AddBuilding(b.BuildingID, b.Quantity)
		}
		if err != nil {
			return nil, err
		}
	}

	autoFill := s.settings.AutoFill
	if cmd.AutoFill != nil {
		autoFill = *cmd.AutoFill
	}
	c.SetAutoFill(autoFill)

	logging.LoggerFromContext(ctx).Sugar().Infow("complex planned",
		"game", cat.Game().ID(),
		"buildings", c.TotalQuantity(),
		"synthesized", len(c.Synthesized()),
	)
	return c, nil
}

// DecodeTemplate builds a complex from a template code
func (s *Service) DecodeTemplate(ctx context.Context, cmd *DecodeTemplateCommand) (*factorycomplex.Complex, error) {
	if err := s.check(cmd); err != nil {
		return nil, err
	}

	opts := []factorycomplex.Option{factorycomplex.WithAutoFill(cmd.AutoFill)}
	if cmd.Name != "" {
		opts = append(opts, factorycomplex.WithName(cmd.Name))
	}

	c, err := template.Decode(s.registry, cmd.Code, s.ComplexOptions(ctx, opts...)...)
	s.recorder.RecordTemplate(OperationDecode, err == nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ValidateTemplate reports whether a template code decodes
func (s *Service) ValidateTemplate(ctx context.Context, query *ValidateTemplateQuery) *ValidateTemplateResponse {
	err := template.Check(s.registry, query.Code)
	s.recorder.RecordTemplate(OperationValidate, err == nil)

	resp := &ValidateTemplateResponse{Valid: err == nil}
	if err != nil {
		resp.Reason = err.Error()
	}
	return resp
}

// EncodeTemplate returns the template code of a complex
func (s *Service) EncodeTemplate(ctx context.Context, query *EncodeTemplateQuery) (string, error) {
	if err := s.check(query); err != nil {
		return "", err
	}

	code, err := template.Encode(query.Complex)
	s.recorder.RecordTemplate(OperationEncode, err == nil)
	return code, err
}

// SaveComplex stores a complex and returns its id
func (s *Service) SaveComplex(ctx context.Context, cmd *SaveComplexCommand) (string, error) {
	if s.repo == nil {
		return "", &NoRepositoryError{}
	}
	if err := s.check(cmd); err != nil {
		return "", err
	}

	if cmd.Name != "" {
		cmd.Complex.SetName(cmd.Name)
	}
	if err := s.repo.Save(ctx, cmd.Complex); err != nil {
		return "", fmt.Errorf("failed to save complex: %w", err)
	}

	logging.LoggerFromContext(ctx).Sugar().Infow("complex saved", "id", cmd.Complex.ID(), "name", cmd.Complex.Name())
	return cmd.Complex.ID(), nil
}

// LoadComplex loads a stored complex by id, or by name when no id is given
func (s *Service) LoadComplex(ctx context.Context, query *LoadComplexQuery) (*factorycomplex.Complex, error) {
	if s.repo == nil {
		return nil, &NoRepositoryError{}
	}
	if err := s.check(query); err != nil {
		return nil, err
	}

	if query.ID != "" {
		return s.repo.FindByID(ctx, query.ID)
	}
	return s.repo.FindByName(ctx, query.Name)
}

// ListComplexes returns the stored complexes, newest first
func (s *Service) ListComplexes(ctx context.Context) ([]factorycomplex.Summary, error) {
	if s.repo == nil {
		return nil, &NoRepositoryError{}
	}
	return s.repo.List(ctx)
}

// DeleteComplex removes a stored complex
func (s *Service) DeleteComplex(ctx context.Context, cmd *DeleteComplexCommand) error {
	if s.repo == nil {
		return &NoRepositoryError{}
	}
	if err := s.check(cmd); err != nil {
		return err
	}
	return s.repo.Delete(ctx, cmd.ID)
}

// Report builds the derived view of a complex
func (s *Service) Report(ctx context.Context, query *ReportQuery) (*Report, error) {
	if err := s.check(query); err != nil {
		return nil, err
	}

	code, err := s.EncodeTemplate(ctx, &EncodeTemplateQuery{Complex: query.Complex})
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return newReport(query.Complex, code), nil
}
