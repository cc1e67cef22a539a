package factorycomplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
	"github.com/andrescamacho/complex-planner/test/fixtures"
)

func newTestOptimizer(t *testing.T, cat *catalog.Catalog, band int, user ...*Instance) *optimizer {
	t.Helper()
	b, err := cat.Band(band)
	require.NoError(t, err)
	return &optimizer{
		cat:       cat,
		band:      b,
		user:      user,
		price:     func(g *catalog.Good) int { return g.AvgPrice() },
		maxPasses: DefaultMaxPasses,
		logger:    zap.NewNop(),
	}
}

func production(t *testing.T, cat *catalog.Catalog, id string, quantity int) *Instance {
	t.Helper()
	b, err := cat.Building(id)
	require.NoError(t, err)
	return newProduction(b, quantity)
}

func TestOptimizer_BaselinePicksCheapestPerSize(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	o := newTestOptimizer(t, cat, 100, production(t, cat, "spp-m-alpha", 1))

	// Act
	baseline := o.fill(nil)

	// Assert
	ids := make([]string, 0, len(baseline.instances))
	sortInstances(baseline.instances)
	for _, inst := range baseline.instances {
		ids = append(ids, inst.building.ID())
	}
	assert.Equal(t, []string{"crystal-m-alpha", "food-a-m", "spp-m-alpha"}, ids)
	assert.Equal(t, int64(3000000), baseline.price)
	assert.False(t, baseline.capped)
}

func TestOptimizer_ExplorationNeverIncreasesPrice(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	for _, user := range [][]*Instance{
		{production(t, cat, "spp-m-alpha", 1)},
		{production(t, cat, "crystal-m-alpha", 4)},
		{production(t, cat, "food-b-m", 3), production(t, cat, "spp-l-alpha", 1)},
	} {
		o := newTestOptimizer(t, cat, 100, user...)

		// Act
		baseline := o.fill(nil)
		best, stats := o.run()

		// Assert
		assert.LessOrEqual(t, o.totalPrice(best), baseline.price)
		assert.Equal(t, len(best), stats.Synthesized)
	}
}

func TestOptimizer_Idempotent(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	o := newTestOptimizer(t, cat, 100, production(t, cat, "crystal-m-alpha", 4))
	first, _ := o.run()

	// Act
	again := newTestOptimizer(t, cat, 100, o.all(first)...)
	second, stats := again.run()

	// Assert
	assert.Empty(t, second)
	assert.Equal(t, 0, stats.Unresolved)
}

func TestOptimizer_SizesLargestFirst(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	energy, err := cat.Good("energy")
	require.NoError(t, err)
	o := newTestOptimizer(t, cat, 100)
	need := NetGood{good: energy, consumed: 5200}

	// Act
	auto, ok := o.fillGood(nil, need, nil)

	// Assert
	require.True(t, ok)
	require.Len(t, auto, 2)
	assert.Equal(t, "spp-l-alpha", auto[0].building.ID())
	assert.Equal(t, 2, auto[0].quantity)
	assert.Equal(t, "spp-m-alpha", auto[1].building.ID())
	assert.Equal(t, 1, auto[1].quantity)
}

func TestOptimizer_FillGoodReplacesPreviousProducers(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	energy, _ := cat.Good("energy")
	o := newTestOptimizer(t, cat, 100)
	previous := []*Instance{production(t, cat, "spp-m-alpha", 1), production(t, cat, "food-a-m", 1)}
	need := NetGood{good: energy, produced: 1000, consumed: 3400}

	// Act
	auto, ok := o.fillGood(previous, need, nil)

	// Assert
	require.True(t, ok)
	var energyOutput float64
	for _, inst := range auto {
		if inst.building.Product().Good == energy {
			energyOutput += inst.Output(o.band)
		}
	}
	assert.GreaterOrEqual(t, energyOutput, 3400.0)
	assert.Equal(t, "food-a-m", auto[0].building.ID())
}

func TestOptimizer_BandScalesOutput(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	energy, _ := cat.Good("energy")
	o := newTestOptimizer(t, cat, 300)

	// Act
	auto, ok := o.fillGood(nil, NetGood{good: energy, consumed: 1900}, nil)

	// Assert
	require.True(t, ok)
	require.Len(t, auto, 1)
	assert.Equal(t, "spp-m-alpha", auto[0].building.ID())
	assert.Equal(t, 1, auto[0].quantity)
}

func TestOptimizer_NegligibleNeedIsUnresolvable(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	energy, _ := cat.Good("energy")
	o := newTestOptimizer(t, cat, 100)

	// Act
	auto, ok := o.fillGood(nil, NetGood{good: energy, consumed: 0.05}, nil)

	// Assert
	assert.False(t, ok)
	assert.Empty(t, auto)
}

func TestOptimizer_NoProducerLeavesDeficit(t *testing.T) {
	// Arrange
	def := fixtures.TestDefinition()
	def.Buildings = def.Buildings[:1]
	cat, err := catalog.New(def)
	require.NoError(t, err)
	o := newTestOptimizer(t, cat, 100, production(t, cat, "spp-m-alpha", 1))

	// Act
	auto, stats := o.run()

	// Assert
	assert.Empty(t, auto)
	assert.Equal(t, 1, stats.Unresolved)
	assert.Equal(t, 0, stats.FactionTrials)
}

func TestOptimizer_PassLimit(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	o := newTestOptimizer(t, cat, 100, production(t, cat, "crystal-m-alpha", 4))
	o.maxPasses = 1

	// Act
	_, stats := o.run()

	// Assert
	assert.True(t, stats.Capped)
}

func TestOptimizer_ExcludedFactionsAreNotTried(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	o := newTestOptimizer(t, cat, 100, production(t, cat, "spp-m-alpha", 1))
	o.excluded = func(f *catalog.Faction) bool { return f.ID() == "beta" }

	// Act
	_, stats := o.run()

	// Assert
	assert.Equal(t, 1, stats.FactionTrials)
	assert.Empty(t, stats.WinningFaction)
	assert.Equal(t, "testgame", stats.Game)
}

func TestNet_AggregatesEnabledInstances(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	band := environment.Band{Percent: 150, Multiplier: 1.25}
	mine, _ := cat.Building("wafer-mine-m")
	disabled := production(t, cat, "food-a-m", 5)
	disabled.disabled = true
	instances := []*Instance{
		production(t, cat, "spp-m-alpha", 2),
		newExtraction(mine, []int{10, 30}),
		disabled,
	}

	// Act
	net := Net(instances, band, func(g *catalog.Good) int { return g.AvgPrice() })

	// Assert
	require.Len(t, net, 3)
	assert.Equal(t, "crystals", net[0].Good().ID())
	assert.InDelta(t, 25, net[0].Consumed(), 1e-9)
	assert.Equal(t, "energy", net[1].Good().ID())
	assert.InDelta(t, 2500, net[1].Produced(), 1e-9)
	assert.InDelta(t, 500, net[1].Consumed(), 1e-9)
	assert.True(t, net[1].Satisfied())
	assert.Equal(t, "wafers", net[2].Good().ID())
	assert.InDelta(t, 100, net[2].Produced(), 1e-9)
	assert.InDelta(t, 100*500, net[2].Profit(), 1e-9)
}

func TestCanonical_MergesAndOrders(t *testing.T) {
	// Arrange
	cat := fixtures.NewTestCatalog(t)
	mine, _ := cat.Building("wafer-mine-m")
	input := []Instance{
		*production(t, cat, "spp-m-alpha", 1),
		*newExtraction(mine, []int{5}),
		*production(t, cat, "food-a-m", 2),
		*production(t, cat, "spp-m-alpha", 2),
		*newExtraction(mine, []int{30, 40}),
	}

	// Act
	out := Canonical(input)

	// Assert
	require.Len(t, out, 4)
	assert.Equal(t, "food-a-m", out[0].Building().ID())
	assert.Equal(t, "spp-m-alpha", out[1].Building().ID())
	assert.Equal(t, 3, out[1].Quantity())
	assert.Equal(t, []int{30, 40}, out[2].Yields())
	assert.Equal(t, []int{5}, out[3].Yields())
	assert.Equal(t, 1, input[0].Quantity())
}

func TestCustomPrice_States(t *testing.T) {
	tests := []struct {
		name     string
		price    CustomPrice
		expected int
		state    PriceState
	}{
		{"not set uses average", CustomPrice{}, 16, PriceNotSet},
		{"active overrides", ActivePrice(30), 30, PriceActive},
		{"inactive is free", InactivePrice(30), 0, PriceInactive},
		{"deactivated keeps price", ActivePrice(30).Deactivate(), 0, PriceInactive},
		{"activated restores price", InactivePrice(30).Activate(), 30, PriceActive},
		{"activate without price", CustomPrice{}.Activate(), 16, PriceNotSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.price.Resolve(16))
			assert.Equal(t, tt.state, tt.price.State())
		})
	}
}
