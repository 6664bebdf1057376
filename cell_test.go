package nissen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCellType(t *testing.T) {
	tests := []struct {
		in   string
		want CellType
	}{
		{"TE", Trophectoderm},
		{"trophectoderm", Trophectoderm},
		{"EPI", Epiblast},
		{"Epiblast", Epiblast},
		{"PrE", PrimitiveEndoderm},
		{"primitive endoderm", PrimitiveEndoderm},
		{"ICM", UndeterminedICM},
		{"transit", UndeterminedICM},
		{" other ", Other},
		{"", Other},
	}
	for _, tt := range tests {
		got, err := ParseCellType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseCellType("stem")
	assert.Error(t, err)
}

func TestCellTypeText(t *testing.T) {
	for _, ct := range append([]CellType{Other}, lineages...) {
		text, err := ct.MarshalText()
		require.NoError(t, err)
		var back CellType
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, ct, back)
	}
	assert.Equal(t, "PrE", PrimitiveEndoderm.String())
	assert.Equal(t, "CellType(9)", CellType(9).String())
}

func TestCellTypeSupported(t *testing.T) {
	for _, ct := range lineages {
		assert.True(t, ct.Supported(), ct.String())
	}
	assert.False(t, Other.Supported())
	assert.False(t, CellType(-1).Supported())
	assert.False(t, CellType(numCellTypes).Valid())
}

func TestOrientation(t *testing.T) {
	c := Cell{Type: Trophectoderm, Angle: 1}
	_, ok := c.Orientation()
	assert.False(t, ok)

	c.Polar = true
	θ, ok := c.Orientation()
	assert.True(t, ok)
	assert.Equal(t, 1.0, θ)
}
