package environment_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/domain/environment"
)

func newTable(t *testing.T) *environment.Table {
	t.Helper()
	table, err := environment.NewTable([]environment.Band{
		{Percent: 300, Multiplier: 2.0},
		{Percent: 0, Multiplier: 0.5},
		{Percent: 100, Multiplier: 1.0},
		{Percent: 150, Multiplier: 1.25},
		{Percent: 200, Multiplier: 1.5},
	}, 100)
	require.NoError(t, err)
	return table
}

func TestTable_LookupExact(t *testing.T) {
	table := newTable(t)

	band, err := table.Lookup(150)

	require.NoError(t, err)
	assert.Equal(t, 1.25, band.Multiplier)
}

func TestTable_LookupAboveHighestResolvesToHighest(t *testing.T) {
	table := newTable(t)

	band, err := table.Lookup(450)

	require.NoError(t, err)
	assert.Equal(t, 300, band.Percent)
}

func TestTable_LookupUnknown(t *testing.T) {
	table := newTable(t)

	_, err := table.Lookup(120)

	var unknown *environment.UnknownBandError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 120, unknown.Percent)
}

func TestTable_DefaultAndOrdering(t *testing.T) {
	table := newTable(t)

	assert.Equal(t, 100, table.Default().Percent)
	bands := table.Bands()
	require.Len(t, bands, 5)
	assert.Equal(t, 0, bands[0].Percent)
	assert.Equal(t, 300, bands[4].Percent)
}

func TestNewTable_RejectsBadInput(t *testing.T) {
	_, err := environment.NewTable(nil, 100)
	assert.Error(t, err)

	_, err = environment.NewTable([]environment.Band{{Percent: 100, Multiplier: 1}, {Percent: 100, Multiplier: 2}}, 100)
	assert.Error(t, err)

	_, err = environment.NewTable([]environment.Band{{Percent: 100, Multiplier: 1}}, 50)
	assert.Error(t, err)
}

func TestBand_Scaling(t *testing.T) {
	band := environment.Band{Percent: 150, Multiplier: 1.25}

	assert.InDelta(t, 125.0, band.Scale(100), 1e-9)
	assert.InDelta(t, 3750.0, band.ScaleSlot(100, 30), 1e-9)
	assert.Equal(t, "150 %", band.String())
}
