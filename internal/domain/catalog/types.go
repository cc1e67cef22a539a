package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Size is the building size class. Sizes are ordered S < M < L < XL.
type Size int

const (
	SizeS Size = iota + 1
	SizeM
	SizeL
	SizeXL
)

// ParseSize parses a size class name (case-insensitive)
func ParseSize(s string) (Size, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S":
		return SizeS, nil
	case "M":
		return SizeM, nil
	case "L":
		return SizeL, nil
	case "XL":
		return SizeXL, nil
	default:
		return 0, fmt.Errorf("invalid size class: %q", s)
	}
}

func (s Size) String() string {
	switch s {
	case SizeS:
		return "S"
	case SizeM:
		return "M"
	case SizeL:
		return "L"
	case SizeXL:
		return "XL"
	default:
		return "?"
	}
}

// Game identifies one set of reference data. The numeric id is stored in
// three bits of a template code.
type Game struct {
	id   string
	nid  int
	name string
}

func (g Game) ID() string { return g.id }
func (g Game) NID() int { return g.nid }
func (g Game) Name() string { return g.name }

// Good is a tradeable commodity
type Good struct {
	id       string
	name     string
	mineral  bool
	minPrice int
	avgPrice int
	maxPrice int
	volume   int
}

func (g *Good) ID() string { return g.id }
func (g *Good) Name() string { return g.name }
func (g *Good) IsMineral() bool { return g.mineral }
func (g *Good) MinPrice() int { return g.minPrice }
func (g *Good) AvgPrice() int { return g.avgPrice }
func (g *Good) MaxPrice() int { return g.maxPrice }
func (g *Good) Volume() int { return g.volume }

func (g *Good) String() string { return g.name }

// Faction owns buildings and locations
type Faction struct {
	id        string
	name      string
	sellsKits bool
}

func (f *Faction) ID() string { return f.id }
func (f *Faction) Name() string { return f.name }
func (f *Faction) SellsKits() bool { return f.sellsKits }

func (f *Faction) String() string { return f.name }

// Product is a good with a nominal per-hour rate
type Product struct {
	Good *Good
	Rate float64
}

// BuildingType is a production or extraction facility definition
type BuildingType struct {
	id         string
	nid        int
	name       string
	faction    *Faction
	size       Size
	product    Product
	resources  []Product
	price      int
	volume     int
	extraction bool
}

func (b *BuildingType) ID() string { return b.id }
func (b *BuildingType) NID() int { return b.nid }
func (b *BuildingType) Name() string { return b.name }
func (b *BuildingType) Faction() *Faction { return b.faction }
func (b *BuildingType) Size() Size { return b.size }
func (b *BuildingType) Product() Product { return b.product }
func (b *BuildingType) Price() int { return b.price }
func (b *BuildingType) Volume() int { return b.volume }
func (b *BuildingType) IsExtraction() bool { return b.extraction }
func (b *BuildingType) String() string { return b.name }

// Resources returns the consumed goods with their nominal rates
func (b *BuildingType) Resources() []Product {
	out := make([]Product, len(b.resources))
	copy(out, b.resources)
	return out
}

// Uses reports whether the building produces or consumes the good
func (b *BuildingType) Uses(good *Good) bool {
	if b.product.Good == good {
		return true
	}
	for _, r := range b.resources {
		if r.Good == good {
			return true
		}
	}
	return false
}

// Asteroid is an extraction site inside a location
type Asteroid struct {
	Good  *Good
	Yield int
}

// Location is a sector on the galaxy grid
type Location struct {
	id          string
	name        string
	x           int
	y           int
	faction     *Faction
	bandPercent int
	shipyard    bool
	north       string
	east        string
	south       string
	west        string
	asteroids   []Asteroid
}

func (l *Location) ID() string { return l.id }
func (l *Location) Name() string { return l.name }
func (l *Location) X() int { return l.x }
func (l *Location) Y() int { return l.y }
func (l *Location) Faction() *Faction { return l.faction }
func (l *Location) BandPercent() int { return l.bandPercent }
func (l *Location) HasShipyard() bool { return l.shipyard }
func (l *Location) String() string { return l.name }

// Yields returns the asteroid yields for a good, highest first
func (l *Location) Yields(good *Good) []int {
	var yields []int
	for _, a := range l.asteroids {
		if a.Good == good {
			yields = append(yields, a.Yield)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yields)))
	return yields
}

// neighbours returns neighbour ids in north, east, west, south order
func (l *Location) neighbours() []string {
	return []string{l.north, l.east, l.west, l.south}
}

// KitSpec describes the construction kit that links buildings into a complex
type KitSpec struct {
	Price  int
	Volume int
}
