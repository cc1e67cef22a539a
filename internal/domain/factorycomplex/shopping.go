package factorycomplex

import (
	"github.com/andrescamacho/complex-planner/internal/domain/shopping"
	"github.com/andrescamacho/complex-planner/pkg/utils"
)

// ShoppingList returns the purchase plan for all buildings, disabled ones
// included
func (c *Complex) ShoppingList() *shopping.List { return c.shoppingList }

// BuiltBuildings returns the per-building-type built counters
func (c *Complex) BuiltBuildings() map[string]int {
	out := make(map[string]int, len(c.builtBuildings))
	for id, n := range c.builtBuildings {
		out[id] = n
	}
	return out
}

func (c *Complex) BuiltKits() int { return c.builtKits }

func (c *Complex) buildShoppingList() *shopping.List {
	list := shopping.NewList(c.cat.Kit(), c.cat.NearestKitSeller(c.location, c.isExcluded), c.builtKits)
	for _, inst := range c.all() {
		building := inst.building
		list.AddItem(shopping.NewItem(
			building,
			inst.Quantity(),
			c.cat.NearestManufacturer(building, c.location),
			c.builtBuildings[building.ID()],
		))
	}
	return list
}

// updateShoppingList rebuilds the list and clamps the built counters to what
// the current configuration still needs
func (c *Complex) updateShoppingList() {
	list := c.buildShoppingList()

	c.builtKits = utils.Clamp(c.builtKits, 0, list.KitQuantity())

	built := make(map[string]int, len(c.builtBuildings))
	for id, n := range c.builtBuildings {
		item, ok := list.Item(id)
		if !ok {
			continue
		}
		if n = utils.Clamp(n, 0, item.Quantity()); n > 0 {
			built[id] = n
		}
	}
	c.builtBuildings = built

	c.shoppingList = c.buildShoppingList()
}

// BuildBuilding marks one more building of the type as built. It reports
// false when the type is not on the list or all of them are built.
func (c *Complex) BuildBuilding(buildingID string) bool {
	item, ok := c.shoppingList.Item(buildingID)
	if !ok || item.QuantityLeft() <= 0 {
		return false
	}
	c.builtBuildings[buildingID]++
	c.updateShoppingList()
	return true
}

// DestroyBuilding reverts one built building of the type
func (c *Complex) DestroyBuilding(buildingID string) bool {
	if c.builtBuildings[buildingID] <= 0 {
		return false
	}
	c.builtBuildings[buildingID]--
	c.updateShoppingList()
	return true
}

// BuildKit marks one more construction kit as built
func (c *Complex) BuildKit() bool {
	if c.builtKits >= c.shoppingList.KitQuantity() {
		return false
	}
	c.builtKits++
	c.updateShoppingList()
	return true
}

// DestroyKit reverts one built construction kit
func (c *Complex) DestroyKit() bool {
	if c.builtKits <= 0 {
		return false
	}
	c.builtKits--
	c.updateShoppingList()
	return true
}
