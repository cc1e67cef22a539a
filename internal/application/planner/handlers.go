package planner

import (
	"context"
	"fmt"

	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// RegisterHandlers registers a mediator handler for every planner request
func RegisterHandlers(m mediator.Mediator, s *Service) error {
	registrations := []error{
		mediator.RegisterHandler[*PlanCommand](m, mediator.HandlerFunc(s.handlePlan)),
		mediator.RegisterHandler[*DecodeTemplateCommand](m, mediator.HandlerFunc(s.handleDecodeTemplate)),
		mediator.RegisterHandler[*ValidateTemplateQuery](m, mediator.HandlerFunc(s.handleValidateTemplate)),
		mediator.RegisterHandler[*EncodeTemplateQuery](m, mediator.HandlerFunc(s.handleEncodeTemplate)),
		mediator.RegisterHandler[*SaveComplexCommand](m, mediator.HandlerFunc(s.handleSaveComplex)),
		mediator.RegisterHandler[*LoadComplexQuery](m, mediator.HandlerFunc(s.handleLoadComplex)),
		mediator.RegisterHandler[*ListComplexesQuery](m, mediator.HandlerFunc(s.handleListComplexes)),
		mediator.RegisterHandler[*DeleteComplexCommand](m, mediator.HandlerFunc(s.handleDeleteComplex)),
		mediator.RegisterHandler[*ReportQuery](m, mediator.HandlerFunc(s.handleReport)),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register planner handler: %w", err)
		}
	}
	return nil
}

func invalidRequest(request mediator.Request) error {
	return fmt.Errorf("invalid request type %T", request)
}

// withReport pairs a complex with its report
func (s *Service) withReport(ctx context.Context, c *factorycomplex.Complex, err error) (mediator.Response, error) {
	if err != nil {
		return nil, err
	}
	report, err := s.Report(ctx, &ReportQuery{Complex: c})
	if err != nil {
		return nil, err
	}
	return &PlanResponse{Complex: c, Report: report}, nil
}

func (s *Service) handlePlan(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlanCommand)
	if !ok {
		return nil, invalidRequest(request)
	}
	c, err := s.Plan(ctx, cmd)
	return s.withReport(ctx, c, err)
}

func (s *Service) handleDecodeTemplate(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DecodeTemplateCommand)
	if !ok {
		return nil, invalidRequest(request)
	}
	c, err := s.DecodeTemplate(ctx, cmd)
	return s.withReport(ctx, c, err)
}

func (s *Service) handleValidateTemplate(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ValidateTemplateQuery)
	if !ok {
		return nil, invalidRequest(request)
	}
	return s.ValidateTemplate(ctx, query), nil
}

func (s *Service) handleEncodeTemplate(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*EncodeTemplateQuery)
	if !ok {
		return nil, invalidRequest(request)
	}
	code, err := s.EncodeTemplate(ctx, query)
	if err != nil {
		return nil, err
	}
	return &EncodeTemplateResponse{Code: code}, nil
}

func (s *Service) handleSaveComplex(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SaveComplexCommand)
	if !ok {
		return nil, invalidRequest(request)
	}
	id, err := s.SaveComplex(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &SaveComplexResponse{ID: id}, nil
}

func (s *Service) handleLoadComplex(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*LoadComplexQuery)
	if !ok {
		return nil, invalidRequest(request)
	}
	c, err := s.LoadComplex(ctx, query)
	return s.withReport(ctx, c, err)
}

func (s *Service) handleListComplexes(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListComplexesQuery); !ok {
		return nil, invalidRequest(request)
	}
	summaries, err := s.ListComplexes(ctx)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *Service) handleDeleteComplex(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*DeleteComplexCommand)
	if !ok {
		return nil, invalidRequest(request)
	}
	return nil, s.DeleteComplex(ctx, cmd)
}

func (s *Service) handleReport(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ReportQuery)
	if !ok {
		return nil, invalidRequest(request)
	}
	return s.Report(ctx, query)
}
