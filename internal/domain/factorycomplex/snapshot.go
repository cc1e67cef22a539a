package factorycomplex

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
)

// Snapshot is the complete user-owned state of a complex. Synthesized
// instances and the shopping list are derived and not part of it.
type Snapshot struct {
	ID             string
	Name           string
	GameID         string
	BandPercent    int
	LocationID     string
	AutoFill       bool
	Buildings      []BuildingSnapshot
	CustomPrices   []PriceSnapshot
	BuiltBuildings map[string]int
	BuiltKits      int
}

// BuildingSnapshot is one user instance
type BuildingSnapshot struct {
	BuildingID string
	Quantity   int
	Yields     []int
	Disabled   bool
}

// PriceSnapshot is one custom price override
type PriceSnapshot struct {
	Good   string
	Price  int
	Active bool
}

// Snapshot captures the user-owned state
func (c *Complex) Snapshot() Snapshot {
	snap := Snapshot{
		ID:             c.id,
		Name:           c.name,
		GameID:         c.cat.Game().ID(),
		BandPercent:    c.band.Percent,
		AutoFill:       c.autoFill,
		BuiltBuildings: c.BuiltBuildings(),
		BuiltKits:      c.builtKits,
	}
	if c.location != nil {
		snap.LocationID = c.location.ID()
	}
	for _, inst := range c.user {
		snap.Buildings = append(snap.Buildings, BuildingSnapshot{
			BuildingID: inst.building.ID(),
			Quantity:   inst.quantity,
			Yields:     inst.Yields(),
			Disabled:   inst.disabled,
		})
	}
	for id, p := range c.customPrices {
		snap.CustomPrices = append(snap.CustomPrices, PriceSnapshot{
			Good:   id,
			Price:  p.Price(),
			Active: p.State() == PriceActive,
		})
	}
	sort.Slice(snap.CustomPrices, func(i, j int) bool {
		return snap.CustomPrices[i].Good < snap.CustomPrices[j].Good
	})
	return snap
}

// FromSnapshot rebuilds a complex, recomputing derived state once
func FromSnapshot(cat *catalog.Catalog, snap Snapshot, opts ...Option) (*Complex, error) {
	if snap.GameID != "" && snap.GameID != cat.Game().ID() {
		return nil, fmt.Errorf("snapshot is for game %s, catalog is %s", snap.GameID, cat.Game().ID())
	}

	c := &Complex{
		id:             snap.ID,
		name:           snap.Name,
		cat:            cat,
		band:           cat.Bands().Default(),
		autoFill:       snap.AutoFill,
		customPrices:   make(map[string]CustomPrice),
		builtBuildings: make(map[string]int),
		builtKits:      snap.BuiltKits,
		excluded:       make(map[string]bool),
		maxPasses:      DefaultMaxPasses,
	}
	if c.name == "" {
		c.name = DefaultName
	}
	c.logger = zap.NewNop()
	for _, opt := range opts {
		opt(c)
	}

	band, err := cat.Band(snap.BandPercent)
	if err != nil {
		return nil, fmt.Errorf("failed to restore band: %w", err)
	}
	c.band = band

	if snap.LocationID != "" {
		location, err := cat.Location(snap.LocationID)
		if err != nil {
			return nil, fmt.Errorf("failed to restore location: %w", err)
		}
		c.location = location
	}

	for _, b := range snap.Buildings {
		building, err := cat.Building(b.BuildingID)
		if err != nil {
			return nil, fmt.Errorf("failed to restore building: %w", err)
		}
		var inst *Instance
		if building.IsExtraction() {
			if err := checkYields(b.Yields); err != nil {
				return nil, fmt.Errorf("building %s: %w", b.BuildingID, err)
			}
			inst = newExtraction(building, b.Yields)
		} else {
			if b.Quantity < 1 {
				return nil, fmt.Errorf("building %s: %w", b.BuildingID,
					&InvalidValueError{Field: "quantity", Message: "must be at least 1"})
			}
			inst = newProduction(building, b.Quantity)
		}
		inst.disabled = b.Disabled
		c.user = insert(c.user, inst)
	}

	for _, p := range snap.CustomPrices {
		if _, err := cat.Good(p.Good); err != nil {
			return nil, fmt.Errorf("failed to restore custom price: %w", err)
		}
		if p.Active {
			c.customPrices[p.Good] = ActivePrice(p.Price)
		} else {
			c.customPrices[p.Good] = InactivePrice(p.Price)
		}
	}

	for id, n := range snap.BuiltBuildings {
		if n > 0 {
			c.builtBuildings[id] = n
		}
	}

	c.recalculate()
	return c, nil
}
