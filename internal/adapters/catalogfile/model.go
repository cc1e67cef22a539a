package catalogfile

import "github.com/andrescamacho/complex-planner/internal/domain/catalog"

// catalogFile is the on-disk YAML layout of one game's reference data
type catalogFile struct {
	Game struct {
		ID   string `yaml:"id"`
		NID  int    `yaml:"nid"`
		Name string `yaml:"name"`
	} `yaml:"game"`
	PivotalGood string `yaml:"pivotal_good"`
	Kit         struct {
		Price  int `yaml:"price"`
		Volume int `yaml:"volume"`
	} `yaml:"kit"`
	DefaultBand int             `yaml:"default_band"`
	Bands       []bandEntry     `yaml:"bands"`
	Goods       []goodEntry     `yaml:"goods"`
	Factions    []factionEntry  `yaml:"factions"`
	Buildings   []buildingEntry `yaml:"buildings"`
	Locations   []locationEntry `yaml:"locations"`
}

type bandEntry struct {
	Percent    int     `yaml:"percent"`
	Multiplier float64 `yaml:"multiplier"`
}

type goodEntry struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Mineral bool   `yaml:"mineral"`
	Price   struct {
		Min int `yaml:"min"`
		Avg int `yaml:"avg"`
		Max int `yaml:"max"`
	} `yaml:"price"`
	Volume int `yaml:"volume"`
}

type factionEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	SellsKits bool   `yaml:"sells_kits"`
}

type rateEntry struct {
	Good string  `yaml:"good"`
	Rate float64 `yaml:"rate"`
}

type buildingEntry struct {
	ID         string      `yaml:"id"`
	NID        int         `yaml:"nid"`
	Name       string      `yaml:"name"`
	Faction    string      `yaml:"faction"`
	Size       string      `yaml:"size"`
	Extraction bool        `yaml:"extraction"`
	Price      int         `yaml:"price"`
	Volume     int         `yaml:"volume"`
	Product    rateEntry   `yaml:"product"`
	Resources  []rateEntry `yaml:"resources"`
}

type asteroidEntry struct {
	Good  string `yaml:"good"`
	Yield int    `yaml:"yield"`
}

type locationEntry struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	X         int             `yaml:"x"`
	Y         int             `yaml:"y"`
	Faction   string          `yaml:"faction"`
	Band      int             `yaml:"band"`
	Shipyard  bool            `yaml:"shipyard"`
	North     string          `yaml:"north"`
	East      string          `yaml:"east"`
	South     string          `yaml:"south"`
	West      string          `yaml:"west"`
	Asteroids []asteroidEntry `yaml:"asteroids"`
}

func (f *catalogFile) toDefinition() catalog.Definition {
	def := catalog.Definition{
		GameID:      f.Game.ID,
		GameNID:     f.Game.NID,
		GameName:    f.Game.Name,
		PivotalGood: f.PivotalGood,
		Kit:         catalog.KitSpec{Price: f.Kit.Price, Volume: f.Kit.Volume},
		DefaultBand: f.DefaultBand,
	}

	for _, b := range f.Bands {
		def.Bands = append(def.Bands, catalog.BandDefinition{Percent: b.Percent, Multiplier: b.Multiplier})
	}
	for _, g := range f.Goods {
		def.Goods = append(def.Goods, catalog.GoodDefinition{
			ID:       g.ID,
			Name:     g.Name,
			Mineral:  g.Mineral,
			MinPrice: g.Price.Min,
			AvgPrice: g.Price.Avg,
			MaxPrice: g.Price.Max,
			Volume:   g.Volume,
		})
	}
	for _, fa := range f.Factions {
		def.Factions = append(def.Factions, catalog.FactionDefinition{ID: fa.ID, Name: fa.Name, SellsKits: fa.SellsKits})
	}
	for _, b := range f.Buildings {
		building := catalog.BuildingDefinition{
			ID:         b.ID,
			NID:        b.NID,
			Name:       b.Name,
			Faction:    b.Faction,
			Size:       b.Size,
			Extraction: b.Extraction,
			Price:      b.Price,
			Volume:     b.Volume,
			Product:    catalog.RateDefinition{Good: b.Product.Good, Rate: b.Product.Rate},
		}
		for _, r := range b.Resources {
			building.Resources = append(building.Resources, catalog.RateDefinition{Good: r.Good, Rate: r.Rate})
		}
		def.Buildings = append(def.Buildings, building)
	}
	for _, l := range f.Locations {
		location := catalog.LocationDefinition{
			ID:       l.ID,
			Name:     l.Name,
			X:        l.X,
			Y:        l.Y,
			Faction:  l.Faction,
			Band:     l.Band,
			Shipyard: l.Shipyard,
			North:    l.North,
			East:     l.East,
			South:    l.South,
			West:     l.West,
		}
		for _, a := range l.Asteroids {
			location.Asteroids = append(location.Asteroids, catalog.AsteroidDefinition{Good: a.Good, Yield: a.Yield})
		}
		def.Locations = append(def.Locations, location)
	}

	return def
}
