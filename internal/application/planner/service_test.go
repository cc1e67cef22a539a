package planner_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/application/mediator"
	"github.com/andrescamacho/complex-planner/internal/application/planner"
	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
	"github.com/andrescamacho/complex-planner/test/fixtures"
	"github.com/andrescamacho/complex-planner/test/helpers"
)

func newService(t *testing.T, settings planner.Settings) (*planner.Service, *helpers.MockComplexRepository, *helpers.MockRecorder) {
	t.Helper()
	repo := helpers.NewMockComplexRepository()
	rec := helpers.NewMockRecorder()
	svc := planner.NewService(fixtures.NewTestRegistry(t), settings,
		planner.WithRepository(repo),
		planner.WithRecorder(rec))
	return svc, repo, rec
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestService_PlanAutoFill(t *testing.T) {
	// Arrange
	svc, _, rec := newService(t, planner.Settings{AutoFill: true})
	cmd := &planner.PlanCommand{
		Name:      "Energy",
		Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1}},
	}

	// Act
	c, err := svc.Plan(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Energy", c.Name())
	assert.Len(t, c.Synthesized(), 3)
	assert.Equal(t, int64(2970000), c.TotalPrice())

	last, ok := rec.LastOptimization()
	require.True(t, ok)
	assert.Equal(t, "beta", last.WinningFaction)
	assert.Equal(t, "testgame", last.Game)
}

func TestService_PlanHonoursExcludedFactions(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{AutoFill: true, ExcludedFactions: []string{"beta"}})

	// Act
	c, err := svc.Plan(context.Background(), &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1}},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3000000), c.TotalPrice())
	assert.Equal(t, []string{"beta"}, c.ExcludedFactions())
}

func TestService_PlanRequestOverridesAutoFill(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{AutoFill: true})

	// Act
	c, err := svc.Plan(context.Background(), &planner.PlanCommand{
		AutoFill:  boolPtr(false),
		Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 2}},
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, c.AutoFill())
	assert.Empty(t, c.Synthesized())
	assert.Len(t, c.Deficits(), 1)
}

func TestService_PlanExtractionAtLocation(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{})

	// Act
	c, err := svc.Plan(context.Background(), &planner.PlanCommand{
		LocationID: "void",
		Buildings:  []planner.BuildingRequest{{BuildingID: "wafer-mine-m", Yields: []int{25, 10}}},
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, c.Buildings(), 1)
	assert.Equal(t, 2, c.Buildings()[0].Quantity())
	assert.Equal(t, 0, c.Band().Percent)
	assert.Equal(t, "void", c.Location().ID())
}

func TestService_PlanRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		cmd  *planner.PlanCommand
	}{
		{"missing quantity", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha"}}}},
		{"quantity above limit", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1000}}}},
		{"yield above limit", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{BuildingID: "wafer-mine-m", Yields: []int{1000}}}}},
		{"negative yield", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{BuildingID: "wafer-mine-m", Yields: []int{-1}}}}},
		{"quantity and yields", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{BuildingID: "wafer-mine-m", Quantity: 2, Yields: []int{10}}}}},
		{"missing building", &planner.PlanCommand{
			Buildings: []planner.BuildingRequest{{Quantity: 1}}}},
		{"negative band", &planner.PlanCommand{BandPercent: intPtr(-100)}},
		{"negative price", &planner.PlanCommand{
			Prices: []planner.PriceRequest{{GoodID: "energy", Price: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc, _, _ := newService(t, planner.Settings{})

			// Act
			_, err := svc.Plan(context.Background(), tt.cmd)

			// Assert
			var validationErr *planner.ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.NotEmpty(t, validationErr.Fields)
		})
	}
}

func TestService_PlanReportsEngineErrors(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{})

	// Act
	_, errGame := svc.Plan(context.Background(), &planner.PlanCommand{Game: "nogame"})
	_, errBuilding := svc.Plan(context.Background(), &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "nothing", Quantity: 1}},
	})
	_, errKind := svc.Plan(context.Background(), &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "wafer-mine-m", Quantity: 1}},
	})
	_, errBand := svc.Plan(context.Background(), &planner.PlanCommand{BandPercent: intPtr(42)})

	// Assert
	var notFound *catalog.NotFoundError
	assert.True(t, errors.As(errGame, &notFound))
	assert.True(t, errors.As(errBuilding, &notFound))
	var kindErr *factorycomplex.BuildingKindError
	assert.True(t, errors.As(errKind, &kindErr))
	assert.Error(t, errBand)
}

func TestService_PlanPricesAndDisabledBuildings(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{AutoFill: true})
	cmd := &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1, Disabled: true}},
		Prices:    []planner.PriceRequest{{GoodID: "energy", Price: 20}, {GoodID: "crystals", Price: 900, Unused: true}},
	}

	// Act
	c, err := svc.Plan(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.False(t, c.Buildings()[0].Enabled())
	assert.Empty(t, c.Synthesized())
	assert.Equal(t, factorycomplex.ActivePrice(20), c.CustomPrice("energy"))
	assert.Equal(t, factorycomplex.InactivePrice(900), c.CustomPrice("crystals"))
}

func TestService_PlanMixedEnabledAndDisabledRequests(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{})
	cmd := &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{
			{BuildingID: "spp-m-alpha", Quantity: 2},
			{BuildingID: "spp-m-alpha", Quantity: 1, Disabled: true},
			{BuildingID: "wafer-mine-m", Yields: []int{30, 25}},
			{BuildingID: "wafer-mine-m", Yields: []int{10}, Disabled: true},
		},
	}

	// Act
	c, err := svc.Plan(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	enabled := map[string]int{}
	disabled := map[string]int{}
	for _, inst := range c.Buildings() {
		key := inst.Building().ID()
		if inst.Building().IsExtraction() {
			key += fmt.Sprint(inst.Yields())
		}
		if inst.Enabled() {
			enabled[key] += inst.Quantity()
		} else {
			disabled[key] += inst.Quantity()
		}
	}
	assert.Equal(t, map[string]int{"spp-m-alpha": 2, "wafer-mine-m[30 25]": 2}, enabled)
	assert.Equal(t, map[string]int{"spp-m-alpha": 1, "wafer-mine-m[10]": 1}, disabled)

	for _, n := range c.NetGoods() {
		if n.Good().ID() == "energy" {
			assert.InDelta(t, 2000, n.Produced(), 1e-9)
		}
	}
}

func TestService_TemplateRoundTrip(t *testing.T) {
	// Arrange
	svc, _, rec := newService(t, planner.Settings{})
	planned, err := svc.Plan(context.Background(), &planner.PlanCommand{
		BandPercent: intPtr(150),
		Buildings:   []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 2}},
	})
	require.NoError(t, err)

	// Act
	code, err := svc.EncodeTemplate(context.Background(), &planner.EncodeTemplateQuery{Complex: planned})
	require.NoError(t, err)
	decoded, err := svc.DecodeTemplate(context.Background(), &planner.DecodeTemplateCommand{Code: code, Name: "Copy"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Copy", decoded.Name())
	assert.Equal(t, 150, decoded.Band().Percent)
	assert.Equal(t, planned.TotalQuantity(), decoded.TotalQuantity())
	assert.Equal(t, []helpers.TemplateEvent{
		{Operation: planner.OperationEncode, Valid: true},
		{Operation: planner.OperationDecode, Valid: true},
	}, rec.Templates)
}

func TestService_ValidateTemplate(t *testing.T) {
	// Arrange
	svc, _, rec := newService(t, planner.Settings{})

	// Act
	bad := svc.ValidateTemplate(context.Background(), &planner.ValidateTemplateQuery{Code: "not base64!"})
	good := svc.ValidateTemplate(context.Background(), &planner.ValidateTemplateQuery{Code: "AJYBAQIA"})

	// Assert
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Reason)
	assert.True(t, good.Valid)
	assert.Empty(t, good.Reason)
	assert.Equal(t, []helpers.TemplateEvent{
		{Operation: planner.OperationValidate, Valid: false},
		{Operation: planner.OperationValidate, Valid: true},
	}, rec.Templates)
}

func TestService_DecodeTemplateRejectsInvalidCode(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{})

	// Act
	_, errEmpty := svc.DecodeTemplate(context.Background(), &planner.DecodeTemplateCommand{})
	_, errCode := svc.DecodeTemplate(context.Background(), &planner.DecodeTemplateCommand{Code: "AA=="})

	// Assert
	var validationErr *planner.ValidationError
	assert.True(t, errors.As(errEmpty, &validationErr))
	var codeErr *template.InvalidCodeError
	assert.True(t, errors.As(errCode, &codeErr))
}

func TestService_Storage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, repo, _ := newService(t, planner.Settings{})
	c, err := svc.Plan(ctx, &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "food-b-m", Quantity: 3}},
	})
	require.NoError(t, err)

	// Act
	id, err := svc.SaveComplex(ctx, &planner.SaveComplexCommand{Complex: c, Name: "Farms"})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, repo.Count())

	byID, err := svc.LoadComplex(ctx, &planner.LoadComplexQuery{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "Farms", byID.Name())

	byName, err := svc.LoadComplex(ctx, &planner.LoadComplexQuery{Name: "Farms"})
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID())

	summaries, err := svc.ListComplexes(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Farms", summaries[0].Name)

	// Act
	require.NoError(t, svc.DeleteComplex(ctx, &planner.DeleteComplexCommand{ID: id}))
	errMissing := svc.DeleteComplex(ctx, &planner.DeleteComplexCommand{ID: id})
	_, errQuery := svc.LoadComplex(ctx, &planner.LoadComplexQuery{})

	// Assert
	var notFound *factorycomplex.NotFoundError
	assert.True(t, errors.As(errMissing, &notFound))
	var validationErr *planner.ValidationError
	assert.True(t, errors.As(errQuery, &validationErr))
}

func TestService_StorageWithoutRepository(t *testing.T) {
	// Arrange
	svc := planner.NewService(fixtures.NewTestRegistry(t), planner.Settings{})

	// Act
	_, err := svc.ListComplexes(context.Background())

	// Assert
	var noRepo *planner.NoRepositoryError
	assert.True(t, errors.As(err, &noRepo))
}

func TestService_ListHandlerWithoutRepositoryReturnsNilResponse(t *testing.T) {
	// Arrange
	svc := planner.NewService(fixtures.NewTestRegistry(t), planner.Settings{})
	m := mediator.NewMediator()
	require.NoError(t, planner.RegisterHandlers(m, svc))

	// Act
	resp, err := m.Send(context.Background(), &planner.ListComplexesQuery{})

	// Assert
	var noRepo *planner.NoRepositoryError
	assert.True(t, errors.As(err, &noRepo))
	assert.Nil(t, resp)
}

func TestService_Report(t *testing.T) {
	// Arrange
	svc, _, _ := newService(t, planner.Settings{AutoFill: true})
	c, err := svc.Plan(context.Background(), &planner.PlanCommand{
		LocationID: "home",
		Buildings:  []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1}},
	})
	require.NoError(t, err)
	require.True(t, c.BuildBuilding("spp-m-alpha"))

	// Act
	report, err := svc.Report(context.Background(), &planner.ReportQuery{Complex: c})

	// Assert
	require.NoError(t, err)
	expectedCode, err := template.Encode(c)
	require.NoError(t, err)
	assert.Equal(t, expectedCode, report.TemplateCode)
	assert.Equal(t, "Home", report.Location)
	assert.Equal(t, 4, report.TotalCount)
	assert.Equal(t, 3, report.KitQuantity)
	assert.Equal(t, "Home", report.KitSeller)
	assert.Len(t, report.Buildings, 4)
	assert.Empty(t, report.Deficits)
	assert.Equal(t, c.TotalPrice(), report.TotalPrice)

	var spp planner.ShoppingLine
	for _, line := range report.Shopping {
		if line.BuildingID == "spp-m-alpha" {
			spp = line
		}
	}
	assert.Equal(t, 2, spp.Quantity)
	assert.Equal(t, 1, spp.Built)
	assert.Equal(t, 1, spp.Left)
}

func TestService_MediatorHandlers(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, _, _ := newService(t, planner.Settings{AutoFill: true})
	m := mediator.NewMediator()
	require.NoError(t, planner.RegisterHandlers(m, svc))

	// Act
	planned, err := mediator.SendTyped[*planner.PlanResponse](ctx, m, &planner.PlanCommand{
		Buildings: []planner.BuildingRequest{{BuildingID: "spp-m-alpha", Quantity: 1}},
	})
	require.NoError(t, err)
	saved, err := mediator.SendTyped[*planner.SaveComplexResponse](ctx, m, &planner.SaveComplexCommand{Complex: planned.Complex})
	require.NoError(t, err)
	listed, err := mediator.SendTyped[[]factorycomplex.Summary](ctx, m, &planner.ListComplexesQuery{})
	require.NoError(t, err)
	validated, err := mediator.SendTyped[*planner.ValidateTemplateResponse](ctx, m, &planner.ValidateTemplateQuery{Code: planned.Report.TemplateCode})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(2970000), planned.Report.TotalPrice)
	assert.Equal(t, planned.Complex.ID(), saved.ID)
	assert.Len(t, listed, 1)
	assert.True(t, validated.Valid)
	assert.Error(t, planner.RegisterHandlers(m, svc))
}
