package fixtures

import (
	"testing"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
)

// Kit values of the test catalog
const (
	TestKitPrice  = 100000
	TestKitVolume = 1000
)

// TestDefinition returns a small, hand-checkable catalog definition.
//
// Energy comes from solar plants (alpha, M and L) which burn crystals.
// Crystals come from alpha or beta fabs; each faction's fab needs its own
// food. The alpha fab is the cheapest fab, but alpha food is expensive, so
// the beta chain is cheaper overall. Gamma owns a wafer mine and no fab.
func TestDefinition() catalog.Definition {
	return catalog.Definition{
		GameID:      "testgame",
		GameNID:     0,
		GameName:    "Test Game",
		PivotalGood: "crystals",
		Kit:         catalog.KitSpec{Price: TestKitPrice, Volume: TestKitVolume},
		DefaultBand: 100,
		Bands: []catalog.BandDefinition{
			{Percent: 0, Multiplier: 0.5},
			{Percent: 100, Multiplier: 1.0},
			{Percent: 150, Multiplier: 1.25},
			{Percent: 200, Multiplier: 1.5},
			{Percent: 300, Multiplier: 2.0},
		},
		Goods: []catalog.GoodDefinition{
			{ID: "energy", Name: "Energy", MinPrice: 12, AvgPrice: 16, MaxPrice: 20, Volume: 1},
			{ID: "crystals", Name: "Crystals", MinPrice: 800, AvgPrice: 1000, MaxPrice: 1200, Volume: 6},
			{ID: "wafers", Name: "Wafers", Mineral: true, MinPrice: 300, AvgPrice: 500, MaxPrice: 700, Volume: 18},
			{ID: "food-a", Name: "Food A", MinPrice: 40, AvgPrice: 50, MaxPrice: 60, Volume: 1},
			{ID: "food-b", Name: "Food B", MinPrice: 50, AvgPrice: 60, MaxPrice: 70, Volume: 1},
		},
		Factions: []catalog.FactionDefinition{
			{ID: "alpha", Name: "Alpha", SellsKits: true},
			{ID: "beta", Name: "Beta", SellsKits: true},
			{ID: "gamma", Name: "Gamma", SellsKits: false},
		},
		Buildings: []catalog.BuildingDefinition{
			{
				ID: "spp-m-alpha", NID: 1, Name: "Solar Plant M (Alpha)", Faction: "alpha", Size: "M",
				Price: 800000, Volume: 3000,
				Product:   catalog.RateDefinition{Good: "energy", Rate: 1000},
				Resources: []catalog.RateDefinition{{Good: "crystals", Rate: 10}},
			},
			{
				ID: "spp-l-alpha", NID: 2, Name: "Solar Plant L (Alpha)", Faction: "alpha", Size: "L",
				Price: 1900000, Volume: 6000,
				Product:   catalog.RateDefinition{Good: "energy", Rate: 2500},
				Resources: []catalog.RateDefinition{{Good: "crystals", Rate: 25}},
			},
			{
				ID: "crystal-m-alpha", NID: 3, Name: "Crystal Fab M (Alpha)", Faction: "alpha", Size: "M",
				Price: 1000000, Volume: 2000,
				Product: catalog.RateDefinition{Good: "crystals", Rate: 40},
				Resources: []catalog.RateDefinition{
					{Good: "energy", Rate: 1200},
					{Good: "wafers", Rate: 40},
					{Good: "food-a", Rate: 100},
				},
			},
			{
				ID: "crystal-m-beta", NID: 4, Name: "Crystal Fab M (Beta)", Faction: "beta", Size: "M",
				Price: 1020000, Volume: 2000,
				Product: catalog.RateDefinition{Good: "crystals", Rate: 40},
				Resources: []catalog.RateDefinition{
					{Good: "energy", Rate: 1200},
					{Good: "wafers", Rate: 40},
					{Good: "food-b", Rate: 100},
				},
			},
			{
				ID: "food-a-m", NID: 5, Name: "Food Farm M (Alpha)", Faction: "alpha", Size: "M",
				Price: 100000, Volume: 1500,
				Product:   catalog.RateDefinition{Good: "food-a", Rate: 200},
				Resources: []catalog.RateDefinition{{Good: "energy", Rate: 200}},
			},
			{
				ID: "food-b-m", NID: 6, Name: "Food Farm M (Beta)", Faction: "beta", Size: "M",
				Price: 50000, Volume: 1500,
				Product:   catalog.RateDefinition{Good: "food-b", Rate: 200},
				Resources: []catalog.RateDefinition{{Good: "energy", Rate: 200}},
			},
			{
				ID: "wafer-mine-m", NID: 7, Name: "Wafer Mine M (Gamma)", Faction: "gamma", Size: "M",
				Extraction: true, Price: 300000, Volume: 4000,
				Product:   catalog.RateDefinition{Good: "wafers", Rate: 2},
				Resources: []catalog.RateDefinition{{Good: "energy", Rate: 10}},
			},
		},
		Locations: []catalog.LocationDefinition{
			{ID: "home", Name: "Home", X: 0, Y: 0, Faction: "alpha", Band: 100, Shipyard: true, East: "mid"},
			{ID: "mid", Name: "Mid", X: 1, Y: 0, Faction: "gamma", Band: 150, Shipyard: true, West: "home", East: "far"},
			{ID: "far", Name: "Far", X: 2, Y: 0, Faction: "beta", Band: 200, Shipyard: true, West: "mid"},
			{
				ID: "void", Name: "Void", X: 0, Y: 1, Faction: "gamma", Band: 0,
				Asteroids: []catalog.AsteroidDefinition{{Good: "wafers", Yield: 10}, {Good: "wafers", Yield: 25}},
			},
		},
	}
}

// NewTestCatalog returns the test catalog
func NewTestCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(TestDefinition())
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return c
}

// NewTestRegistry returns a registry holding only the test catalog
func NewTestRegistry(t testing.TB) *catalog.Registry {
	t.Helper()
	r, err := catalog.NewRegistry("testgame", NewTestCatalog(t))
	if err != nil {
		t.Fatalf("failed to build test registry: %v", err)
	}
	return r
}
