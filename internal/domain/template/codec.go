// Package template converts complexes to and from template codes: a compact
// binary layout carried as standard base-64 text.
//
// Layout, every field an unsigned varint:
//
//	settings      hasLocation | gameNID<<1
//	x, y          when hasLocation
//	percent       otherwise
//	repeated      building nid, 0 ends the list
//	  extraction  yield+1 per slot, 0 ends the slots
//	  production  quantity
package template

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// MaxEncodedYield is the largest yield+1 value a code may carry
const MaxEncodedYield = 256

const (
	locationFlag = 1
	gameMask     = 7
)

// Encode returns the template code of the enabled user and synthesized
// buildings of a complex
func Encode(c *factorycomplex.Complex) (string, error) {
	data, err := EncodeBytes(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// EncodeBytes returns the binary form of the template code
func EncodeBytes(c *factorycomplex.Complex) ([]byte, error) {
	game := c.Catalog().Game()
	if game.NID() < 0 || game.NID() > catalog.MaxGameNID {
		return nil, fmt.Errorf("game %s: nid %d cannot be encoded", game.ID(), game.NID())
	}

	var buf []byte
	put := func(v int) {
		buf = binary.AppendUvarint(buf, uint64(v))
	}

	settings := game.NID() << 1
	if c.Location() != nil {
		settings |= locationFlag
	}
	put(settings)

	if location := c.Location(); location != nil {
		put(location.X())
		put(location.Y())
	} else {
		put(c.ConfiguredBand().Percent)
	}

	var enabled []factorycomplex.Instance
	for _, inst := range append(c.Buildings(), c.Synthesized()...) {
		if inst.Enabled() {
			enabled = append(enabled, inst)
		}
	}
	for _, inst := range factorycomplex.Canonical(enabled) {
		put(inst.Building().NID())
		if inst.Building().IsExtraction() {
			for _, y := range inst.Yields() {
				put(y + 1)
			}
			put(0)
		} else {
			put(inst.Quantity())
		}
	}
	put(0)

	return buf, nil
}

// Validate reports whether Decode would accept the code
func Validate(registry *catalog.Registry, code string) bool {
	return Check(registry, code) == nil
}

// Check returns the reason Decode would reject the code, or nil
func Check(registry *catalog.Registry, code string) error {
	_, err := parse(registry, code)
	return err
}

// Decode builds a complex from a template code. Auto-fill stays off unless
// an option turns it on, so buildings synthesized when the code was made
// come back as user buildings.
func Decode(registry *catalog.Registry, code string, opts ...factorycomplex.Option) (*factorycomplex.Complex, error) {
	l, err := parse(registry, code)
	if err != nil {
		return nil, err
	}

	snap := factorycomplex.Snapshot{
		GameID:      l.game.Game().ID(),
		BandPercent: l.bandPercent,
	}
	if l.location != nil {
		snap.LocationID = l.location.ID()
	}
	for _, e := range l.entries {
		snap.Buildings = append(snap.Buildings, factorycomplex.BuildingSnapshot{
			BuildingID: e.building.ID(),
			Quantity:   e.quantity,
			Yields:     e.yields,
		})
	}

	c, err := factorycomplex.FromSnapshot(l.game, snap, opts...)
	if err != nil {
		return nil, invalid("cannot build complex", err)
	}
	return c, nil
}

// layout is a parsed and resolved template code
type layout struct {
	game        *catalog.Catalog
	location    *catalog.Location
	bandPercent int
	entries     []entry
}

type entry struct {
	building *catalog.BuildingType
	quantity int
	yields   []int
}

// parse walks a code and resolves every catalog reference it holds
func parse(registry *catalog.Registry, code string) (*layout, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return nil, invalid("not base-64", err)
	}
	if len(data) == 0 {
		return nil, invalid("empty code", nil)
	}

	r := &reader{r: bytes.NewReader(data)}

	settings := r.next("settings")
	if r.err != nil {
		return nil, r.err
	}
	game, err := registry.GameByNID((settings >> 1) & gameMask)
	if err != nil {
		return nil, invalid("unknown game", err)
	}

	l := &layout{game: game, bandPercent: game.Bands().Default().Percent}

	if settings&locationFlag != 0 {
		x, y := r.next("location x"), r.next("location y")
		if r.err != nil {
			return nil, r.err
		}
		if l.location, err = game.LocationAt(x, y); err != nil {
			return nil, invalid("unknown location", err)
		}
	} else {
		percent := r.next("band")
		if r.err != nil {
			return nil, r.err
		}
		band, err := game.Band(percent)
		if err != nil {
			return nil, invalid("unknown band", err)
		}
		l.bandPercent = band.Percent
	}

	for {
		nid := r.next("building")
		if r.err != nil {
			return nil, r.err
		}
		if nid == 0 {
			break
		}
		building, err := game.BuildingByNID(nid)
		if err != nil {
			return nil, invalid("unknown building", err)
		}

		e := entry{building: building}
		if building.IsExtraction() {
			for {
				v := r.next("yield")
				if r.err != nil {
					return nil, r.err
				}
				if v == 0 {
					break
				}
				if v > MaxEncodedYield {
					return nil, invalid(fmt.Sprintf("yield %d out of range", v-1), nil)
				}
				e.yields = append(e.yields, v-1)
			}
			if len(e.yields) == 0 {
				return nil, invalid(fmt.Sprintf("building %s has no slots", building.ID()), nil)
			}
		} else {
			e.quantity = r.next("quantity")
			if r.err != nil {
				return nil, r.err
			}
			if e.quantity == 0 {
				return nil, invalid(fmt.Sprintf("building %s has quantity 0", building.ID()), nil)
			}
		}
		l.entries = append(l.entries, e)
	}

	return l, nil
}

// reader reads varint fields and keeps the first error
type reader struct {
	r   io.ByteReader
	err error
}

func (r *reader) next(field string) int {
	if r.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.err = invalid(fmt.Sprintf("truncated at %s", field), nil)
		} else {
			r.err = invalid(fmt.Sprintf("bad %s", field), err)
		}
		return 0
	}
	if v > math.MaxInt32 {
		r.err = invalid(fmt.Sprintf("%s out of range", field), nil)
		return 0
	}
	return int(v)
}
