// Package document reads and writes complete complex documents. Unlike
// template codes a document keeps everything the user set: the name, disabled
// buildings, custom prices and built counters.
package document

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// CurrentVersion is the version written by Marshal
const CurrentVersion = 4

// Document is the on-disk form of a complex
type Document struct {
	Version        int        `json:"version"`
	Game           string     `json:"game,omitempty"`
	ID             string     `json:"id,omitempty"`
	Name           string     `json:"name,omitempty"`
	Suns           int        `json:"suns"`
	Location       string     `json:"location,omitempty"`
	AddBaseComplex bool       `json:"addBaseComplex"`
	Buildings      []Building `json:"buildings"`
	Prices         []Price    `json:"prices,omitempty"`
	Built          *Built     `json:"built,omitempty"`
}

// Building is one user instance. Documents before version 4 may carry a
// single Yield with a Quantity instead of Yields.
type Building struct {
	Building string `json:"building"`
	Quantity int    `json:"quantity,omitempty"`
	Yield    *int   `json:"yield,omitempty"`
	Yields   []int  `json:"yields,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Price is a custom price override
type Price struct {
	Good  string `json:"good"`
	Use   bool   `json:"use"`
	Price int    `json:"price"`
}

// Built holds the partial-completion counters
type Built struct {
	Kits      int            `json:"kits"`
	Buildings []BuiltCounter `json:"buildings,omitempty"`
}

// BuiltCounter is the built count of one building type
type BuiltCounter struct {
	Building string `json:"building"`
	Quantity int    `json:"quantity"`
}

// TooNewError indicates a document written by a newer version of the planner
type TooNewError struct {
	Version int
}

func (e *TooNewError) Error() string {
	return fmt.Sprintf("document version %d is newer than supported version %d", e.Version, CurrentVersion)
}

// FromComplex builds the current-version document of a complex
func FromComplex(c *factorycomplex.Complex) Document {
	snap := c.Snapshot()
	doc := Document{
		Version:        CurrentVersion,
		Game:           snap.GameID,
		ID:             snap.ID,
		Name:           snap.Name,
		Suns:           snap.BandPercent,
		Location:       snap.LocationID,
		AddBaseComplex: snap.AutoFill,
		Buildings:      make([]Building, 0, len(snap.Buildings)),
	}
	for _, b := range snap.Buildings {
		entry := Building{Building: b.BuildingID, Disabled: b.Disabled}
		if len(b.Yields) > 0 {
			entry.Yields = b.Yields
		} else {
			entry.Quantity = b.Quantity
		}
		doc.Buildings = append(doc.Buildings, entry)
	}
	for _, p := range snap.CustomPrices {
		doc.Prices = append(doc.Prices, Price{Good: p.Good, Use: p.Active, Price: p.Price})
	}
	if snap.BuiltKits > 0 || len(snap.BuiltBuildings) > 0 {
		doc.Built = &Built{Kits: snap.BuiltKits}
		for id, n := range snap.BuiltBuildings {
			doc.Built.Buildings = append(doc.Built.Buildings, BuiltCounter{Building: id, Quantity: n})
		}
		sort.Slice(doc.Built.Buildings, func(i, j int) bool {
			return doc.Built.Buildings[i].Building < doc.Built.Buildings[j].Building
		})
	}
	return doc
}

// ToComplex rebuilds a complex from a document of any supported version
func (d Document) ToComplex(registry *catalog.Registry, opts ...factorycomplex.Option) (*factorycomplex.Complex, error) {
	version := d.Version
	if version == 0 {
		version = 1
	}
	if version > CurrentVersion {
		return nil, &TooNewError{Version: version}
	}

	cat := registry.Default()
	if version == CurrentVersion {
		var err error
		if cat, err = registry.Game(d.Game); err != nil {
			return nil, fmt.Errorf("failed to resolve game: %w", err)
		}
	}

	snap := factorycomplex.Snapshot{
		ID:          d.ID,
		Name:        d.Name,
		GameID:      cat.Game().ID(),
		BandPercent: d.Suns,
		LocationID:  d.Location,
		AutoFill:    d.AddBaseComplex,
	}

	for _, b := range d.Buildings {
		building, err := cat.Building(b.Building)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve building: %w", err)
		}
		entry := factorycomplex.BuildingSnapshot{BuildingID: b.Building, Disabled: b.Disabled}
		switch {
		case !building.IsExtraction():
			entry.Quantity = b.Quantity
		case len(b.Yields) > 0:
			entry.Yields = b.Yields
		default:
			yield := 0
			if b.Yield != nil {
				yield = *b.Yield
			}
			for n := 0; n < b.Quantity; n++ {
				entry.Yields = append(entry.Yields, yield)
			}
		}
		snap.Buildings = append(snap.Buildings, entry)
	}

	for _, p := range d.Prices {
		snap.CustomPrices = append(snap.CustomPrices, factorycomplex.PriceSnapshot{
			Good:   p.Good,
			Price:  p.Price,
			Active: p.Use,
		})
	}

	if d.Built != nil {
		snap.BuiltKits = d.Built.Kits
		snap.BuiltBuildings = make(map[string]int, len(d.Built.Buildings))
		for _, b := range d.Built.Buildings {
			snap.BuiltBuildings[b.Building] = b.Quantity
		}
	}

	return factorycomplex.FromSnapshot(cat, snap, opts...)
}

// Marshal returns the indented JSON document of a complex
func Marshal(c *factorycomplex.Complex) ([]byte, error) {
	data, err := json.MarshalIndent(FromComplex(c), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// Unmarshal parses a JSON document and rebuilds its complex
func Unmarshal(registry *catalog.Registry, data []byte, opts ...factorycomplex.Option) (*factorycomplex.Complex, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc.ToComplex(registry, opts...)
}
