package catalog

// Definition is the raw reference data for one game. Adapters fill it from
// data files; New resolves and validates every reference in it.
type Definition struct {
	GameID      string
	GameNID     int
	GameName    string
	PivotalGood string
	Kit         KitSpec
	DefaultBand int
	Bands       []BandDefinition
	Goods       []GoodDefinition
	Factions    []FactionDefinition
	Buildings   []BuildingDefinition
	Locations   []LocationDefinition
}

// BandDefinition is one environmental band
type BandDefinition struct {
	Percent    int
	Multiplier float64
}

// GoodDefinition describes a good
type GoodDefinition struct {
	ID       string
	Name     string
	Mineral  bool
	MinPrice int
	AvgPrice int
	MaxPrice int
	Volume   int
}

// FactionDefinition describes a faction
type FactionDefinition struct {
	ID        string
	Name      string
	SellsKits bool
}

// RateDefinition is a good id with a nominal per-hour rate
type RateDefinition struct {
	Good string
	Rate float64
}

// BuildingDefinition describes a building type
type BuildingDefinition struct {
	ID         string
	NID        int
	Name       string
	Faction    string
	Size       string
	Extraction bool
	Price      int
	Volume     int
	Product    RateDefinition
	Resources  []RateDefinition
}

// AsteroidDefinition describes an extraction site
type AsteroidDefinition struct {
	Good  string
	Yield int
}

// LocationDefinition describes a sector
type LocationDefinition struct {
	ID        string
	Name      string
	X         int
	Y         int
	Faction   string
	Band      int
	Shipyard  bool
	North     string
	East      string
	South     string
	West      string
	Asteroids []AsteroidDefinition
}
