package catalog

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/complex-planner/internal/domain/environment"
)

// MaxGameNID is the highest game id a template code can carry
const MaxGameNID = 7

type coordinate struct {
	x, y int
}

// Catalog is the immutable reference data of one game
type Catalog struct {
	game    Game
	kit     KitSpec
	pivotal *Good
	bands   *environment.Table

	goods     map[string]*Good
	goodList  []*Good
	factions  map[string]*Faction
	factList  []*Faction
	buildings map[string]*BuildingType
	byNID     map[int]*BuildingType
	buildList []*BuildingType
	producers map[*Good][]*BuildingType

	locations map[string]*Location
	byCoord   map[coordinate]*Location
	locList   []*Location
}

// New resolves a definition into a catalog
func New(def Definition) (*Catalog, error) {
	invalid := func(format string, args ...interface{}) error {
		return &DefinitionError{Game: def.GameID, Message: fmt.Sprintf(format, args...)}
	}

	if def.GameID == "" {
		return nil, invalid("game id is required")
	}
	if def.GameNID < 0 || def.GameNID > MaxGameNID {
		return nil, invalid("game nid %d out of range 0..%d", def.GameNID, MaxGameNID)
	}

	bands := make([]environment.Band, 0, len(def.Bands))
	for _, b := range def.Bands {
		bands = append(bands, environment.Band{Percent: b.Percent, Multiplier: b.Multiplier})
	}
	table, err := environment.NewTable(bands, def.DefaultBand)
	if err != nil {
		return nil, invalid("%v", err)
	}

	c := &Catalog{
		game:      Game{id: def.GameID, nid: def.GameNID, name: def.GameName},
		kit:       def.Kit,
		bands:     table,
		goods:     make(map[string]*Good),
		factions:  make(map[string]*Faction),
		buildings: make(map[string]*BuildingType),
		byNID:     make(map[int]*BuildingType),
		producers: make(map[*Good][]*BuildingType),
		locations: make(map[string]*Location),
		byCoord:   make(map[coordinate]*Location),
	}

	for _, g := range def.Goods {
		if _, exists := c.goods[g.ID]; exists || g.ID == "" {
			return nil, invalid("duplicate or empty good id %q", g.ID)
		}
		good := &Good{
			id:       g.ID,
			name:     g.Name,
			mineral:  g.Mineral,
			minPrice: g.MinPrice,
			avgPrice: g.AvgPrice,
			maxPrice: g.MaxPrice,
			volume:   g.Volume,
		}
		c.goods[g.ID] = good
		c.goodList = append(c.goodList, good)
	}
	sort.Slice(c.goodList, func(i, j int) bool { return c.goodList[i].id < c.goodList[j].id })

	pivotal, ok := c.goods[def.PivotalGood]
	if !ok {
		return nil, invalid("pivotal good %q is not defined", def.PivotalGood)
	}
	c.pivotal = pivotal

	for _, f := range def.Factions {
		if _, exists := c.factions[f.ID]; exists || f.ID == "" {
			return nil, invalid("duplicate or empty faction id %q", f.ID)
		}
		faction := &Faction{id: f.ID, name: f.Name, sellsKits: f.SellsKits}
		c.factions[f.ID] = faction
		c.factList = append(c.factList, faction)
	}
	sort.Slice(c.factList, func(i, j int) bool { return c.factList[i].id < c.factList[j].id })

	for _, b := range def.Buildings {
		building, err := c.resolveBuilding(b)
		if err != nil {
			return nil, invalid("building %q: %v", b.ID, err)
		}
		c.buildings[b.ID] = building
		c.byNID[b.NID] = building
		c.buildList = append(c.buildList, building)
		if !building.extraction {
			good := building.product.Good
			c.producers[good] = append(c.producers[good], building)
		}
	}
	sort.Slice(c.buildList, func(i, j int) bool { return c.buildList[i].id < c.buildList[j].id })

	for _, l := range def.Locations {
		location, err := c.resolveLocation(l)
		if err != nil {
			return nil, invalid("location %q: %v", l.ID, err)
		}
		c.locations[l.ID] = location
		c.byCoord[coordinate{l.X, l.Y}] = location
		c.locList = append(c.locList, location)
	}
	for _, l := range c.locList {
		for _, n := range l.neighbours() {
			if n == "" {
				continue
			}
			if _, ok := c.locations[n]; !ok {
				return nil, invalid("location %q: unknown neighbour %q", l.id, n)
			}
		}
	}
	sort.Slice(c.locList, func(i, j int) bool { return c.locList[i].id < c.locList[j].id })

	return c, nil
}

func (c *Catalog) resolveBuilding(b BuildingDefinition) (*BuildingType, error) {
	if b.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if _, exists := c.buildings[b.ID]; exists {
		return nil, fmt.Errorf("duplicate id")
	}
	if b.NID <= 0 {
		return nil, fmt.Errorf("nid must be positive")
	}
	if _, exists := c.byNID[b.NID]; exists {
		return nil, fmt.Errorf("duplicate nid %d", b.NID)
	}
	faction, ok := c.factions[b.Faction]
	if !ok {
		return nil, fmt.Errorf("unknown faction %q", b.Faction)
	}
	size, err := ParseSize(b.Size)
	if err != nil {
		return nil, err
	}
	product, err := c.resolveRate(b.Product)
	if err != nil {
		return nil, fmt.Errorf("product: %w", err)
	}
	if product.Rate <= 0 {
		return nil, fmt.Errorf("product rate must be positive")
	}
	resources := make([]Product, 0, len(b.Resources))
	for _, r := range b.Resources {
		resource, err := c.resolveRate(r)
		if err != nil {
			return nil, fmt.Errorf("resource: %w", err)
		}
		resources = append(resources, resource)
	}

	return &BuildingType{
		id:         b.ID,
		nid:        b.NID,
		name:       b.Name,
		faction:    faction,
		size:       size,
		product:    product,
		resources:  resources,
		price:      b.Price,
		volume:     b.Volume,
		extraction: b.Extraction,
	}, nil
}

func (c *Catalog) resolveRate(r RateDefinition) (Product, error) {
	good, ok := c.goods[r.Good]
	if !ok {
		return Product{}, fmt.Errorf("unknown good %q", r.Good)
	}
	return Product{Good: good, Rate: r.Rate}, nil
}

func (c *Catalog) resolveLocation(l LocationDefinition) (*Location, error) {
	if l.ID == "" {
		return nil, fmt.Errorf("id is required")
	}
	if _, exists := c.locations[l.ID]; exists {
		return nil, fmt.Errorf("duplicate id")
	}
	if _, exists := c.byCoord[coordinate{l.X, l.Y}]; exists {
		return nil, fmt.Errorf("duplicate coordinates %d,%d", l.X, l.Y)
	}
	if l.X < 0 || l.Y < 0 {
		return nil, fmt.Errorf("coordinates must not be negative")
	}
	faction, ok := c.factions[l.Faction]
	if !ok {
		return nil, fmt.Errorf("unknown faction %q", l.Faction)
	}
	if _, err := c.bands.Lookup(l.Band); err != nil {
		return nil, err
	}
	asteroids := make([]Asteroid, 0, len(l.Asteroids))
	for _, a := range l.Asteroids {
		good, ok := c.goods[a.Good]
		if !ok {
			return nil, fmt.Errorf("asteroid: unknown good %q", a.Good)
		}
		asteroids = append(asteroids, Asteroid{Good: good, Yield: a.Yield})
	}

	return &Location{
		id:          l.ID,
		name:        l.Name,
		x:           l.X,
		y:           l.Y,
		faction:     faction,
		bandPercent: l.Band,
		shipyard:    l.Shipyard,
		north:       l.North,
		east:        l.East,
		south:       l.South,
		west:        l.West,
		asteroids:   asteroids,
	}, nil
}

// Game returns the game this catalog belongs to
func (c *Catalog) Game() Game { return c.game }

// Kit returns the construction kit specification
func (c *Catalog) Kit() KitSpec { return c.kit }

// PivotalGood returns the good whose producing faction is explored exhaustively
func (c *Catalog) PivotalGood() *Good { return c.pivotal }

// Bands returns the environmental band table
func (c *Catalog) Bands() *environment.Table { return c.bands }

// Band looks up an environmental band by percent
func (c *Catalog) Band(percent int) (environment.Band, error) {
	return c.bands.Lookup(percent)
}

// Good returns a good by id
func (c *Catalog) Good(id string) (*Good, error) {
	if g, ok := c.goods[id]; ok {
		return g, nil
	}
	return nil, notFound("good", id)
}

// Goods returns all goods ordered by id
func (c *Catalog) Goods() []*Good {
	return append([]*Good(nil), c.goodList...)
}

// Faction returns a faction by id
func (c *Catalog) Faction(id string) (*Faction, error) {
	if f, ok := c.factions[id]; ok {
		return f, nil
	}
	return nil, notFound("faction", id)
}

// Factions returns all factions ordered by id
func (c *Catalog) Factions() []*Faction {
	return append([]*Faction(nil), c.factList...)
}

// Building returns a building type by id
func (c *Catalog) Building(id string) (*BuildingType, error) {
	if b, ok := c.buildings[id]; ok {
		return b, nil
	}
	return nil, notFound("building", id)
}

// BuildingByNID returns a building type by its template id
func (c *Catalog) BuildingByNID(nid int) (*BuildingType, error) {
	if b, ok := c.byNID[nid]; ok {
		return b, nil
	}
	return nil, notFound("building", nid)
}

// Buildings returns all building types ordered by id
func (c *Catalog) Buildings() []*BuildingType {
	return append([]*BuildingType(nil), c.buildList...)
}

// ProducerSizes returns the sizes of non-extraction buildings producing the
// good, ascending. A nil faction matches every faction.
func (c *Catalog) ProducerSizes(good *Good, faction *Faction) []Size {
	seen := make(map[Size]bool)
	var sizes []Size
	for _, b := range c.producers[good] {
		if faction != nil && b.faction != faction {
			continue
		}
		if !seen[b.size] {
			seen[b.size] = true
			sizes = append(sizes, b.size)
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

// CheapestProducer returns the cheapest non-extraction producer of the good
// in the given size, or nil
func (c *Catalog) CheapestProducer(good *Good, size Size) *BuildingType {
	return c.Producer(good, size, nil)
}

// Producer returns the cheapest non-extraction producer of the good in the
// given size owned by the faction, or nil. A nil faction matches every faction.
func (c *Catalog) Producer(good *Good, size Size, faction *Faction) *BuildingType {
	var best *BuildingType
	for _, b := range c.producers[good] {
		if b.size != size || (faction != nil && b.faction != faction) {
			continue
		}
		if best == nil || b.price < best.price || (b.price == best.price && b.id < best.id) {
			best = b
		}
	}
	return best
}

// HasProducer reports whether the faction owns a non-extraction producer of the good
func (c *Catalog) HasProducer(good *Good, faction *Faction) bool {
	return len(c.ProducerSizes(good, faction)) > 0
}

// Location returns a location by id
func (c *Catalog) Location(id string) (*Location, error) {
	if l, ok := c.locations[id]; ok {
		return l, nil
	}
	return nil, notFound("location", id)
}

// LocationAt returns the location at grid coordinates
func (c *Catalog) LocationAt(x, y int) (*Location, error) {
	if l, ok := c.byCoord[coordinate{x, y}]; ok {
		return l, nil
	}
	return nil, notFound("location", fmt.Sprintf("%d,%d", x, y))
}

// Locations returns all locations ordered by id
func (c *Catalog) Locations() []*Location {
	return append([]*Location(nil), c.locList...)
}
