package environment

import (
	"fmt"
	"sort"
)

// Band is an environmental intensity level (sun power in percent) together
// with the production multiplier it applies to every nominal rate.
type Band struct {
	Percent    int
	Multiplier float64
}

// Scale applies the band multiplier to a nominal per-hour rate
func (b Band) Scale(rate float64) float64 {
	return rate * b.Multiplier
}

// ScaleSlot applies the band multiplier and a slot yield to a nominal rate
func (b Band) ScaleSlot(rate float64, yield int) float64 {
	return rate * b.Multiplier * float64(yield)
}

// String renders the band the way it is shown to users
func (b Band) String() string {
	return fmt.Sprintf("%d %%", b.Percent)
}

// Table holds the bands known to one game, ordered by percent
type Table struct {
	bands       []Band
	defaultBand Band
}

// NewTable creates a band table. defaultPercent must name one of the bands.
func NewTable(bands []Band, defaultPercent int) (*Table, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("band table must not be empty")
	}

	sorted := make([]Band, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Percent < sorted[j].Percent })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Percent == sorted[i-1].Percent {
			return nil, fmt.Errorf("duplicate band: %d %%", sorted[i].Percent)
		}
	}

	t := &Table{bands: sorted}
	def, err := t.exact(defaultPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid default band: %w", err)
	}
	t.defaultBand = def
	return t, nil
}

// Lookup returns the band for a percent value. Values above the highest band
// resolve to the highest band; any other unknown value is an error.
func (t *Table) Lookup(percent int) (Band, error) {
	highest := t.bands[len(t.bands)-1]
	if percent > highest.Percent {
		return highest, nil
	}
	return t.exact(percent)
}

// Default returns the band used by new complexes
func (t *Table) Default() Band {
	return t.defaultBand
}

// Bands returns all bands ordered by percent
func (t *Table) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

func (t *Table) exact(percent int) (Band, error) {
	i := sort.Search(len(t.bands), func(i int) bool { return t.bands[i].Percent >= percent })
	if i < len(t.bands) && t.bands[i].Percent == percent {
		return t.bands[i], nil
	}
	return Band{}, &UnknownBandError{Percent: percent}
}

// UnknownBandError indicates a percent value that matches no band
type UnknownBandError struct {
	Percent int
}

func (e *UnknownBandError) Error() string {
	return fmt.Sprintf("unknown environmental band: %d %%", e.Percent)
}
