package catalog

// walk visits locations breadth-first starting at from. visit returns true to
// stop the walk. Neighbours are expanded in north, east, west, south order.
func (c *Catalog) walk(from *Location, visit func(l *Location, distance int) bool) {
	if from == nil {
		return
	}
	seen := map[string]bool{from.id: true}
	frontier := []*Location{from}
	for distance := 0; len(frontier) > 0; distance++ {
		var next []*Location
		for _, l := range frontier {
			if visit(l, distance) {
				return
			}
			for _, id := range l.neighbours() {
				if id == "" || seen[id] {
					continue
				}
				seen[id] = true
				next = append(next, c.locations[id])
			}
		}
		frontier = next
	}
}

// Distance returns the number of jumps between two locations, or -1 when
// the destination cannot be reached
func (c *Catalog) Distance(from, to *Location) int {
	result := -1
	c.walk(from, func(l *Location, distance int) bool {
		if l == to {
			result = distance
			return true
		}
		return false
	})
	return result
}

// NearestKitSeller returns the closest location with a shipyard whose
// faction sells construction kits. Factions for which excluded returns true
// are skipped. Returns nil when no seller is reachable.
func (c *Catalog) NearestKitSeller(from *Location, excluded func(*Faction) bool) *Location {
	var found *Location
	c.walk(from, func(l *Location, _ int) bool {
		if !l.shipyard || !l.faction.sellsKits {
			return false
		}
		if excluded != nil && excluded(l.faction) {
			return false
		}
		found = l
		return true
	})
	return found
}

// NearestManufacturer returns the closest shipyard owned by the faction that
// builds the given building type, or nil
func (c *Catalog) NearestManufacturer(building *BuildingType, from *Location) *Location {
	var found *Location
	c.walk(from, func(l *Location, _ int) bool {
		if l.shipyard && l.faction == building.faction {
			found = l
			return true
		}
		return false
	})
	return found
}
