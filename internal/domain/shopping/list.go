package shopping

import (
	"sort"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
)

// Item is one building type to buy, with its partial-completion state
type Item struct {
	building            *catalog.BuildingType
	quantity            int
	built               int
	nearestManufacturer *catalog.Location
}

// NewItem creates a shopping list item. nearestManufacturer may be nil.
func NewItem(building *catalog.BuildingType, quantity int, nearestManufacturer *catalog.Location, built int) Item {
	return Item{
		building:            building,
		quantity:            quantity,
		built:               built,
		nearestManufacturer: nearestManufacturer,
	}
}

func (i Item) Building() *catalog.BuildingType { return i.building }
func (i Item) Quantity() int { return i.quantity }
func (i Item) QuantityBuilt() int { return i.built }
func (i Item) QuantityLeft() int { return i.quantity - i.built }
func (i Item) NearestManufacturer() *catalog.Location { return i.nearestManufacturer }

func (i Item) TotalPrice() int64 { return int64(i.building.Price()) * int64(i.quantity) }
func (i Item) RestPrice() int64 { return int64(i.building.Price()) * int64(i.QuantityLeft()) }
func (i Item) TotalVolume() int64 { return int64(i.building.Volume()) * int64(i.quantity) }
func (i Item) RestVolume() int64 { return int64(i.building.Volume()) * int64(i.QuantityLeft()) }

// List is the bill of materials for a complex: buildings plus the
// construction kits linking them
type List struct {
	items            []Item
	kit              catalog.KitSpec
	kitsBuilt        int
	nearestKitSeller *catalog.Location
}

// NewList creates an empty list. nearestKitSeller may be nil.
func NewList(kit catalog.KitSpec, nearestKitSeller *catalog.Location, kitsBuilt int) *List {
	return &List{
		kit:              kit,
		kitsBuilt:        kitsBuilt,
		nearestKitSeller: nearestKitSeller,
	}
}

// AddItem adds an item. An item for a building type already on the list is
// merged into it: quantities are summed, the built count and nearest
// manufacturer are taken from the new item.
func (l *List) AddItem(item Item) {
	for i, old := range l.items {
		if old.building == item.building {
			l.items[i] = NewItem(item.building, item.quantity+old.quantity, item.nearestManufacturer, item.built)
			return
		}
	}
	l.items = append(l.items, item)
	sort.SliceStable(l.items, func(a, b int) bool {
		x, y := l.items[a].building, l.items[b].building
		if x.Name() != y.Name() {
			return x.Name() < y.Name()
		}
		return x.ID() < y.ID()
	})
}

// Items returns the entries in display order
func (l *List) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Item returns the entry for a building type
func (l *List) Item(buildingID string) (Item, bool) {
	for _, item := range l.items {
		if item.building.ID() == buildingID {
			return item, true
		}
	}
	return Item{}, false
}

// NearestKitSeller returns the closest kit-selling location, or nil
func (l *List) NearestKitSeller() *catalog.Location { return l.nearestKitSeller }

// BuildingQuantity is the number of buildings over all entries
func (l *List) BuildingQuantity() int {
	total := 0
	for _, item := range l.items {
		total += item.quantity
	}
	return total
}

func (l *List) KitQuantity() int {
	if n := l.BuildingQuantity() - 1; n > 0 {
		return n
	}
	return 0
}

func (l *List) KitQuantityBuilt() int { return l.kitsBuilt }
func (l *List) KitQuantityLeft() int { return l.KitQuantity() - l.kitsBuilt }
func (l *List) KitPrice() int { return l.kit.Price }
func (l *List) KitVolume() int { return l.kit.Volume }

func (l *List) TotalKitPrice() int64 { return int64(l.kit.Price) * int64(l.KitQuantity()) }
func (l *List) RestKitPrice() int64 { return int64(l.kit.Price) * int64(l.KitQuantityLeft()) }
func (l *List) TotalKitVolume() int64 { return int64(l.kit.Volume) * int64(l.KitQuantity()) }
func (l *List) RestKitVolume() int64 { return int64(l.kit.Volume) * int64(l.KitQuantityLeft()) }

// TotalQuantity counts buildings and kits
func (l *List) TotalQuantity() int {
	return l.BuildingQuantity() + l.KitQuantity()
}

func (l *List) TotalQuantityBuilt() int {
	total := l.kitsBuilt
	for _, item := range l.items {
		total += item.built
	}
	return total
}

func (l *List) TotalQuantityLeft() int {
	return l.TotalQuantity() - l.TotalQuantityBuilt()
}

func (l *List) TotalPrice() int64 {
	total := l.TotalKitPrice()
	for _, item := range l.items {
		total += item.TotalPrice()
	}
	return total
}

func (l *List) TotalRestPrice() int64 {
	total := l.RestKitPrice()
	for _, item := range l.items {
		total += item.RestPrice()
	}
	return total
}

func (l *List) TotalVolume() int64 {
	total := l.TotalKitVolume()
	for _, item := range l.items {
		total += item.TotalVolume()
	}
	return total
}

func (l *List) TotalRestVolume() int64 {
	total := l.RestKitVolume()
	for _, item := range l.items {
		total += item.RestVolume()
	}
	return total
}
