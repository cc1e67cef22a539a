package template_test

import (
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/domain/catalog"
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
	"github.com/andrescamacho/complex-planner/internal/domain/template"
	"github.com/andrescamacho/complex-planner/test/fixtures"
)

func code(data ...byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func TestEncodeBytes_BandLayout(t *testing.T) {
	// Arrange
	c := factorycomplex.New(fixtures.NewTestCatalog(t))
	require.NoError(t, c.SetBand(150))
	require.NoError(t, c.AddBuilding("spp-m-alpha", 2))

	// Act
	data, err := template.EncodeBytes(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x96, 0x01, 0x01, 0x02, 0x00}, data)
}

func TestEncodeBytes_LocationLayout(t *testing.T) {
	// Arrange
	c := factorycomplex.New(fixtures.NewTestCatalog(t))
	require.NoError(t, c.SetLocation("mid"))
	require.NoError(t, c.AddExtraction("wafer-mine-m", []int{10, 25}))

	// Act
	data, err := template.EncodeBytes(c)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x01, 0x00, 0x07, 11, 26, 0x00, 0x00}, data)
}

func TestEncode_RoundTripIsByteIdentical(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)
	c := factorycomplex.New(registry.Default(), factorycomplex.WithAutoFill(true))
	require.NoError(t, c.AddBuilding("crystal-m-alpha", 4))
	require.NoError(t, c.AddExtraction("wafer-mine-m", []int{30, 40}))
	require.NoError(t, c.AddExtraction("wafer-mine-m", []int{5}))
	require.NoError(t, c.SetBand(200))

	// Act
	first, err := template.Encode(c)
	require.NoError(t, err)
	decoded, err := template.Decode(registry, first)
	require.NoError(t, err)
	second, err := template.Encode(decoded)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, first, second)
	assert.False(t, decoded.AutoFill())
	assert.Empty(t, decoded.Synthesized())
	assert.Equal(t, c.TotalQuantity(), decoded.TotalQuantity())
	assert.Equal(t, c.TotalPrice(), decoded.TotalPrice())
	assert.Equal(t, 200, decoded.Band().Percent)
}

func TestEncode_DropsDisabledInstances(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)
	c := factorycomplex.New(registry.Default())
	require.NoError(t, c.AddBuilding("food-a-m", 1))
	require.NoError(t, c.AddBuilding("spp-m-alpha", 3))
	require.NoError(t, c.Disable(0))

	// Act
	encoded, err := template.Encode(c)
	require.NoError(t, err)
	decoded, err := template.Decode(registry, encoded)

	// Assert
	require.NoError(t, err)
	require.Len(t, decoded.Buildings(), 1)
	assert.Equal(t, "spp-m-alpha", decoded.Buildings()[0].Building().ID())
	assert.Equal(t, 3, decoded.TotalQuantity())
}

func TestDecode_RestoresLocation(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)

	// Act
	c, err := template.Decode(registry, " \n"+code(0x01, 0x02, 0x00, 0x05, 0x03, 0x00)+"\n")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, c.Location())
	assert.Equal(t, "far", c.Location().ID())
	assert.Equal(t, 200, c.Band().Percent)
	require.Len(t, c.Buildings(), 1)
	assert.Equal(t, "food-a-m", c.Buildings()[0].Building().ID())
	assert.Equal(t, 3, c.Buildings()[0].Quantity())
}

func TestDecode_SelectsGameByNID(t *testing.T) {
	// Arrange
	def := fixtures.TestDefinition()
	def.GameID = "othergame"
	def.GameNID = 3
	other, err := catalog.New(def)
	require.NoError(t, err)
	registry, err := catalog.NewRegistry("testgame", fixtures.NewTestCatalog(t), other)
	require.NoError(t, err)
	c := factorycomplex.New(other)
	require.NoError(t, c.AddBuilding("spp-m-alpha", 1))

	// Act
	data, err := template.EncodeBytes(c)
	require.NoError(t, err)
	decoded, err := template.Decode(registry, code(data...))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, byte(3<<1), data[0])
	assert.Equal(t, "othergame", decoded.Catalog().Game().ID())
}

func TestValidate_MatchesDecode(t *testing.T) {
	registry := fixtures.NewTestRegistry(t)

	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{"band only", code(0x00, 100, 0x00), true},
		{"production", code(0x00, 100, 0x01, 0x02, 0x00), true},
		{"extraction", code(0x00, 100, 0x07, 0x01, 0x0b, 0x00, 0x00), true},
		{"largest yield", code(0x00, 100, 0x07, 0x80, 0x02, 0x00, 0x00), true},
		{"trailing bytes ignored", code(0x00, 100, 0x00, 0x42), true},
		{"empty", "", false},
		{"not base64", "%%%", false},
		{"unknown game", code(0x02<<1, 100, 0x00), false},
		{"unknown location", code(0x01, 0x09, 0x09, 0x00), false},
		{"unknown band", code(0x00, 42, 0x00), false},
		{"unknown building", code(0x00, 100, 0x63, 0x01, 0x00), false},
		{"truncated list", code(0x00, 100, 0x01), false},
		{"truncated varint", code(0x00, 0x96), false},
		{"yield above limit", code(0x00, 100, 0x07, 0x81, 0x02, 0x00, 0x00), false},
		{"extraction without slots", code(0x00, 100, 0x07, 0x00, 0x00), false},
		{"zero quantity", code(0x00, 100, 0x01, 0x00, 0x00), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			valid := template.Validate(registry, tt.code)
			c, err := template.Decode(registry, tt.code)

			// Assert
			assert.Equal(t, tt.valid, valid)
			if tt.valid {
				require.NoError(t, err)
				assert.NotNil(t, c)
				return
			}
			var invalid *template.InvalidCodeError
			assert.True(t, errors.As(err, &invalid), "expected InvalidCodeError, got %v", err)
		})
	}
}

// assertValidateMatchesDecode checks one code: Validate accepts exactly the
// codes Decode accepts, and Decode rejects with InvalidCodeError
func assertValidateMatchesDecode(t *testing.T, registry *catalog.Registry, encoded string) {
	t.Helper()
	valid := template.Validate(registry, encoded)
	c, err := template.Decode(registry, encoded)
	if valid {
		require.NoError(t, err, "code %q validated but did not decode", encoded)
		require.NotNil(t, c)
		return
	}
	var invalid *template.InvalidCodeError
	require.True(t, errors.As(err, &invalid), "code %q: expected InvalidCodeError, got %v", encoded, err)
}

func TestValidate_MatchesDecodeForRandomBytes(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)
	rng := rand.New(rand.NewSource(20261017))
	bands := []byte{100, 150, 42}

	for n := 0; n < 20000; n++ {
		data := make([]byte, rng.Intn(12))
		rng.Read(data)
		// half of the samples start with a plausible header to reach the building list
		if len(data) >= 2 && n%2 == 0 {
			data[0] = byte(rng.Intn(2))
			data[1] = bands[rng.Intn(len(bands))]
		}

		// Act / Assert
		assertValidateMatchesDecode(t, registry, code(data...))
	}
}

func FuzzValidateImpliesDecode(f *testing.F) {
	f.Add([]byte{0x00, 100, 0x00})
	f.Add([]byte{0x00, 150, 0x01, 0x02, 0x00})
	f.Add([]byte{0x01, 0x01, 0x00, 0x07, 0x0b, 0x1a, 0x00, 0x00})
	f.Add([]byte{0x00, 100, 0x07, 0x81, 0x02, 0x00, 0x00})
	f.Add([]byte{})
	registry := fixtures.NewTestRegistry(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		assertValidateMatchesDecode(t, registry, code(data...))
	})
}

func TestEncode_YieldAboveCodeLimitIsNotValid(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)
	c := factorycomplex.New(registry.Default())
	require.NoError(t, c.AddExtraction("wafer-mine-m", []int{300}))

	// Act
	encoded, err := template.Encode(c)

	// Assert
	require.NoError(t, err)
	assert.False(t, template.Validate(registry, encoded))
}

func TestDecode_AutoFillOption(t *testing.T) {
	// Arrange
	registry := fixtures.NewTestRegistry(t)

	// Act
	c, err := template.Decode(registry, code(0x00, 100, 0x01, 0x01, 0x00), factorycomplex.WithAutoFill(true))

	// Assert
	require.NoError(t, err)
	assert.True(t, c.AutoFill())
	assert.NotEmpty(t, c.Synthesized())
}
