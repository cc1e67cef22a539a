package catalog

import (
	"fmt"
	"sort"
)

// Registry holds the catalogs of every known game
type Registry struct {
	byID        map[string]*Catalog
	byNID       map[int]*Catalog
	defaultGame string
}

// NewRegistry creates a registry. defaultGame is used for documents that
// predate per-game data and must name one of the catalogs.
func NewRegistry(defaultGame string, catalogs ...*Catalog) (*Registry, error) {
	r := &Registry{
		byID:        make(map[string]*Catalog),
		byNID:       make(map[int]*Catalog),
		defaultGame: defaultGame,
	}
	for _, c := range catalogs {
		g := c.Game()
		if _, exists := r.byID[g.id]; exists {
			return nil, fmt.Errorf("duplicate game id: %s", g.id)
		}
		if _, exists := r.byNID[g.nid]; exists {
			return nil, fmt.Errorf("duplicate game nid: %d", g.nid)
		}
		r.byID[g.id] = c
		r.byNID[g.nid] = c
	}
	if _, ok := r.byID[defaultGame]; !ok {
		return nil, fmt.Errorf("default game %q is not registered", defaultGame)
	}
	return r, nil
}

// Game returns the catalog of a game by id
func (r *Registry) Game(id string) (*Catalog, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, notFound("game", id)
}

// GameByNID returns the catalog of a game by its template id
func (r *Registry) GameByNID(nid int) (*Catalog, error) {
	if c, ok := r.byNID[nid]; ok {
		return c, nil
	}
	return nil, notFound("game", nid)
}

// Default returns the default game catalog
func (r *Registry) Default() *Catalog {
	return r.byID[r.defaultGame]
}

// Games returns all catalogs ordered by game nid
func (r *Registry) Games() []*Catalog {
	out := make([]*Catalog, 0, len(r.byNID))
	for _, c := range r.byNID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].game.nid < out[j].game.nid })
	return out
}
