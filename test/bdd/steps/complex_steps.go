package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/test/fixtures"
)

// Shared between step contexts: the complex under test and the last error
var (
	sharedCatalog  *catalog.Catalog
	sharedRegistry *catalog.Registry
	sharedComplex  *factorycomplex.Complex
	sharedErr      error
)

type complexContext struct {
	excluded []string
	recorder *statsRecorder
}

// statsRecorder keeps the statistics of every optimizer run
type statsRecorder struct {
	runs []factorycomplex.OptimizationStats
}

func (r *statsRecorder) RecordOptimization(stats factorycomplex.OptimizationStats) {
	r.runs = append(r.runs, stats)
}

func (r *statsRecorder) last() (factorycomplex.OptimizationStats, error) {
	if len(r.runs) == 0 {
		return factorycomplex.OptimizationStats{}, fmt.Errorf("the optimizer never ran")
	}
	return r.runs[len(r.runs)-1], nil
}

func (ctx *complexContext) reset() {
	ctx.excluded = nil
	ctx.recorder = &statsRecorder{}
	sharedCatalog = nil
	sharedRegistry = nil
	sharedComplex = nil
	sharedErr = nil
}

func InitializeComplexScenario(sc *godog.ScenarioContext) {
	cc := &complexContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	sc.Step(`^the test catalog$`, cc.theTestCatalog)
	sc.Step(`^faction "([^"]*)" is excluded$`, cc.factionIsExcluded)
	sc.Step(`^a new complex with auto-fill (enabled|disabled)$`, cc.aNewComplex)
	sc.Step(`^I add (\d+) "([^"]*)" buildings?$`, cc.iAddBuildings)
	sc.Step(`^I add an extraction "([^"]*)" with yields "([^"]*)"$`, cc.iAddExtraction)
	sc.Step(`^I set the location to "([^"]*)"$`, cc.iSetLocation)
	sc.Step(`^I clear the location$`, cc.iClearLocation)
	sc.Step(`^I set the sun band to (\d+)%$`, cc.iSetBand)
	sc.Step(`^I (enable|disable) auto-fill$`, cc.iToggleAutoFill)
	sc.Step(`^I disable the "([^"]*)" building$`, cc.iDisableBuilding)
	sc.Step(`^I set the quantity of "([^"]*)" to (\d+)$`, cc.iSetQuantity)
	sc.Step(`^I set the price of "([^"]*)" to (\d+)( as unused)?$`, cc.iSetPrice)

	sc.Step(`^the synthesized buildings should be:$`, cc.synthesizedBuildingsShouldBe)
	sc.Step(`^no buildings should be synthesized$`, cc.noBuildingsShouldBeSynthesized)
	sc.Step(`^the total price should be (\d+)$`, cc.totalPriceShouldBe)
	sc.Step(`^the total building count should be (\d+)$`, cc.totalCountShouldBe)
	sc.Step(`^the kit quantity should be (\d+)$`, cc.kitQuantityShouldBe)
	sc.Step(`^the winning faction should be "([^"]*)"$`, cc.winningFactionShouldBe)
	sc.Step(`^no faction should win$`, cc.noFactionShouldWin)
	sc.Step(`^(\d+) factions? should have been tried$`, cc.factionsTried)
	sc.Step(`^there should be no deficits$`, cc.noDeficits)
	sc.Step(`^the deficit of "([^"]*)" should be ([\d.]+) per hour$`, cc.deficitShouldBe)
	sc.Step(`^the production of "([^"]*)" should be ([\d.]+) per hour$`, cc.productionShouldBe)
	sc.Step(`^the consumption of "([^"]*)" should be ([\d.]+) per hour$`, cc.consumptionShouldBe)
	sc.Step(`^the profit should be (-?[\d.]+) per hour$`, cc.profitShouldBe)
	sc.Step(`^the effective sun band should be (\d+)%$`, cc.effectiveBandShouldBe)
	sc.Step(`^the operation should fail with a "([^"]*)" error$`, cc.operationShouldFail)
	sc.Step(`^the operation should succeed$`, cc.operationShouldSucceed)
}

func (ctx *complexContext) theTestCatalog() error {
	cat, err := catalog.New(fixtures.TestDefinition())
	if err != nil {
		return err
	}
	registry, err := catalog.NewRegistry(cat.Game().ID(), cat)
	if err != nil {
		return err
	}
	sharedCatalog = cat
	sharedRegistry = registry
	return nil
}

func (ctx *complexContext) factionIsExcluded(factionID string) error {
	ctx.excluded = append(ctx.excluded, factionID)
	return nil
}

func (ctx *complexContext) aNewComplex(state string) error {
	if sharedCatalog == nil {
		if err := ctx.theTestCatalog(); err != nil {
			return err
		}
	}
	sharedComplex = factorycomplex.New(sharedCatalog,
		factorycomplex.WithRecorder(ctx.recorder),
		factorycomplex.WithExcludedFactions(ctx.excluded...),
		factorycomplex.WithAutoFill(state == "enabled"),
	)
	return nil
}

func (ctx *complexContext) iAddBuildings(quantity int, buildingID string) error {
	sharedErr = sharedComplex.AddBuilding(buildingID, quantity)
	return nil
}

func (ctx *complexContext) iAddExtraction(buildingID, yields string) error {
	var list []int
	for _, part := range strings.Split(yields, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("bad yield %q: %w", part, err)
		}
		list = append(list, y)
	}
	sharedErr = sharedComplex.AddExtraction(buildingID, list)
	return nil
}

func (ctx *complexContext) iSetLocation(locationID string) error {
	sharedErr = sharedComplex.SetLocation(locationID)
	return nil
}

func (ctx *complexContext) iClearLocation() error {
	sharedComplex.ClearLocation()
	return nil
}

func (ctx *complexContext) iSetBand(percent int) error {
	sharedErr = sharedComplex.SetBand(percent)
	return nil
}

func (ctx *complexContext) iToggleAutoFill(state string) error {
	sharedComplex.SetAutoFill(state == "enable")
	return nil
}

// userIndex finds the position of the first user instance of a building type
func userIndex(buildingID string) (int, error) {
	for i, inst := range sharedComplex.Buildings() {
		if inst.Building().ID() == buildingID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no %s building in the complex", buildingID)
}

func (ctx *complexContext) iDisableBuilding(buildingID string) error {
	i, err := userIndex(buildingID)
	if err != nil {
		return err
	}
	sharedErr = sharedComplex.Disable(i)
	return nil
}

func (ctx *complexContext) iSetQuantity(buildingID string, quantity int) error {
	i, err := userIndex(buildingID)
	if err != nil {
		return err
	}
	sharedErr = sharedComplex.SetQuantity(i, quantity)
	return nil
}

func (ctx *complexContext) iSetPrice(goodID string, price int, unused string) error {
	p := factorycomplex.ActivePrice(price)
	if unused != "" {
		p = factorycomplex.InactivePrice(price)
	}
	sharedErr = sharedComplex.SetCustomPrice(goodID, p)
	return nil
}

func (ctx *complexContext) synthesizedBuildingsShouldBe(table *godog.Table) error {
	got := sharedComplex.Synthesized()
	rows := table.Rows[1:]
	if len(got) != len(rows) {
		return fmt.Errorf("expected %d synthesized buildings, got %d (%s)", len(rows), len(got), describe(got))
	}
	for i, row := range rows {
		id := row.Cells[0].Value
		quantity, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		if got[i].Building().ID() != id || got[i].Quantity() != quantity {
			return fmt.Errorf("row %d: expected %s x%d, got %s", i+1, id, quantity, describe(got))
		}
	}
	return nil
}

func describe(instances []factorycomplex.Instance) string {
	parts := make([]string, 0, len(instances))
	for _, inst := range instances {
		parts = append(parts, fmt.Sprintf("%s x%d", inst.Building().ID(), inst.Quantity()))
	}
	return strings.Join(parts, ", ")
}

func (ctx *complexContext) noBuildingsShouldBeSynthesized() error {
	if got := sharedComplex.Synthesized(); len(got) > 0 {
		return fmt.Errorf("expected no synthesized buildings, got %s", describe(got))
	}
	return nil
}

func (ctx *complexContext) totalPriceShouldBe(expected int64) error {
	if got := sharedComplex.TotalPrice(); got != expected {
		return fmt.Errorf("expected total price %d, got %d", expected, got)
	}
	return nil
}

func (ctx *complexContext) totalCountShouldBe(expected int) error {
	if got := sharedComplex.TotalQuantity(); got != expected {
		return fmt.Errorf("expected %d buildings, got %d", expected, got)
	}
	return nil
}

func (ctx *complexContext) kitQuantityShouldBe(expected int) error {
	if got := sharedComplex.KitQuantity(); got != expected {
		return fmt.Errorf("expected %d kits, got %d", expected, got)
	}
	return nil
}

func (ctx *complexContext) winningFactionShouldBe(factionID string) error {
	stats, err := ctx.recorder.last()
	if err != nil {
		return err
	}
	if stats.WinningFaction != factionID {
		return fmt.Errorf("expected winning faction %q, got %q", factionID, stats.WinningFaction)
	}
	return nil
}

func (ctx *complexContext) noFactionShouldWin() error {
	if winner := sharedComplex.LastOptimization().WinningFaction; winner != "" {
		return fmt.Errorf("expected the baseline to win, got faction %q", winner)
	}
	return nil
}

func (ctx *complexContext) factionsTried(expected int) error {
	stats, err := ctx.recorder.last()
	if err != nil {
		return err
	}
	if stats.FactionTrials != expected {
		return fmt.Errorf("expected %d faction trials, got %d", expected, stats.FactionTrials)
	}
	return nil
}

func (ctx *complexContext) noDeficits() error {
	if deficits := sharedComplex.Deficits(); len(deficits) > 0 {
		return fmt.Errorf("expected no deficits, %s is short by %.2f", deficits[0].Good().ID(), deficits[0].Deficit())
	}
	return nil
}

func netGood(goodID string) (factorycomplex.NetGood, error) {
	for _, n := range sharedComplex.NetGoods() {
		if n.Good().ID() == goodID {
			return n, nil
		}
	}
	return factorycomplex.NetGood{}, fmt.Errorf("good %s is not produced or consumed", goodID)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func (ctx *complexContext) deficitShouldBe(goodID string, expected float64) error {
	n, err := netGood(goodID)
	if err != nil {
		return err
	}
	if !approx(n.Deficit(), expected) {
		return fmt.Errorf("expected %s deficit %.2f, got %.2f", goodID, expected, n.Deficit())
	}
	return nil
}

func (ctx *complexContext) productionShouldBe(goodID string, expected float64) error {
	n, err := netGood(goodID)
	if err != nil {
		return err
	}
	if !approx(n.Produced(), expected) {
		return fmt.Errorf("expected %s production %.2f, got %.2f", goodID, expected, n.Produced())
	}
	return nil
}

func (ctx *complexContext) consumptionShouldBe(goodID string, expected float64) error {
	n, err := netGood(goodID)
	if err != nil {
		return err
	}
	if !approx(n.Consumed(), expected) {
		return fmt.Errorf("expected %s consumption %.2f, got %.2f", goodID, expected, n.Consumed())
	}
	return nil
}

func (ctx *complexContext) profitShouldBe(expected float64) error {
	if got := sharedComplex.Profit(); !approx(got, expected) {
		return fmt.Errorf("expected profit %.2f, got %.2f", expected, got)
	}
	return nil
}

func (ctx *complexContext) effectiveBandShouldBe(expected int) error {
	if got := sharedComplex.Band().Percent; got != expected {
		return fmt.Errorf("expected sun band %d%%, got %d%%", expected, got)
	}
	return nil
}

func (ctx *complexContext) operationShouldFail(kind string) error {
	if sharedErr == nil {
		return fmt.Errorf("expected a %s error, got none", kind)
	}

	var (
		kindErr     *factorycomplex.BuildingKindError
		invalidErr  *factorycomplex.InvalidValueError
		indexErr    *factorycomplex.IndexError
		notFoundErr *catalog.NotFoundError
		bandErr     *environment.UnknownBandError
	)
	var matched bool
	switch kind {
	case "building kind":
		matched = errors.As(sharedErr, &kindErr)
	case "invalid value":
		matched = errors.As(sharedErr, &invalidErr)
	case "index":
		matched = errors.As(sharedErr, &indexErr)
	case "not found":
		matched = errors.As(sharedErr, &notFoundErr)
	case "unknown band":
		matched = errors.As(sharedErr, &bandErr)
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !matched {
		return fmt.Errorf("expected a %s error, got %v", kind, sharedErr)
	}
	return nil
}

func (ctx *complexContext) operationShouldSucceed() error {
	if sharedErr != nil {
		return fmt.Errorf("expected success, got %v", sharedErr)
	}
	return nil
}
