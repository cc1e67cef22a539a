package factorycomplex

import (
	"sort"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/environment"
)

// Instance is a number of buildings of one type inside a complex. Production
// buildings carry a quantity, extraction buildings one yield per slot.
type Instance struct {
	building *catalog.BuildingType
	quantity int
	yields   []int
	disabled bool
}

func newProduction(building *catalog.BuildingType, quantity int) *Instance {
	return &Instance{building: building, quantity: quantity}
}

func newExtraction(building *catalog.BuildingType, yields []int) *Instance {
	return &Instance{building: building, yields: append([]int(nil), yields...)}
}

func (i *Instance) clone() *Instance {
	c := *i
	c.yields = append([]int(nil), i.yields...)
	return &c
}

// Building returns the building type
func (i Instance) Building() *catalog.BuildingType { return i.building }

// Quantity returns the number of buildings; for extraction buildings this is
// the number of slots
func (i Instance) Quantity() int {
	if i.building.IsExtraction() {
		return len(i.yields)
	}
	return i.quantity
}

// Yields returns the per-slot yields of an extraction building
func (i Instance) Yields() []int {
	return append([]int(nil), i.yields...)
}

// Yield returns the integer mean of the slot yields, 0 for production buildings
func (i Instance) Yield() int {
	if len(i.yields) == 0 {
		return 0
	}
	sum := 0
	for _, y := range i.yields {
		sum += y
	}
	return sum / len(i.yields)
}

func (i Instance) Enabled() bool { return !i.disabled }

// Price returns the purchase price of all buildings in the instance
func (i Instance) Price() int64 {
	return int64(i.building.Price()) * int64(i.Quantity())
}

// scale converts a nominal rate into the effective per-hour rate of the
// whole instance
func (i Instance) scale(rate float64, band environment.Band) float64 {
	if i.building.IsExtraction() {
		total := 0.0
		for _, y := range i.yields {
			total += band.ScaleSlot(rate, y)
		}
		return total
	}
	return band.Scale(rate) * float64(i.quantity)
}

// Output returns the effective per-hour output under the band
func (i Instance) Output(band environment.Band) float64 {
	return i.scale(i.building.Product().Rate, band)
}

// Inputs returns the effective per-hour consumption per good under the band
func (i Instance) Inputs(band environment.Band) []catalog.Product {
	resources := i.building.Resources()
	for n := range resources {
		resources[n].Rate = i.scale(resources[n].Rate, band)
	}
	return resources
}

// less orders instances by building name, then id, then yield descending
func less(a, b *Instance) bool {
	if a.building.Name() != b.building.Name() {
		return a.building.Name() < b.building.Name()
	}
	if a.building.ID() != b.building.ID() {
		return a.building.ID() < b.building.ID()
	}
	return a.Yield() > b.Yield()
}

func sortInstances(list []*Instance) {
	sort.SliceStable(list, func(x, y int) bool { return less(list[x], list[y]) })
}

// insert adds an instance to a sorted list. A production instance is merged
// into an existing one of the same type and enabled state.
func insert(list []*Instance, inst *Instance) []*Instance {
	if !inst.building.IsExtraction() {
		for _, cur := range list {
			if cur.building == inst.building && cur.disabled == inst.disabled {
				cur.quantity += inst.quantity
				return list
			}
		}
	}
	list = append(list, inst)
	sortInstances(list)
	return list
}

// Canonical merges and orders instances exactly the way adding them one by
// one to an empty complex would
func Canonical(instances []Instance) []Instance {
	var list []*Instance
	for n := range instances {
		list = insert(list, instances[n].clone())
	}
	return values(list)
}

func values(list []*Instance) []Instance {
	out := make([]Instance, len(list))
	for n, inst := range list {
		out[n] = *inst.clone()
	}
	return out
}
