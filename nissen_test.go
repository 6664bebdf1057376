package nissen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var lineages = []CellType{Trophectoderm, Epiblast, PrimitiveEndoderm, UndeterminedICM}

// twoCells returns a 2D tissue with a at the origin and b at pos.
func twoCells(a, b Cell, pos r3.Vec) *Tissue {
	a.Pos = r3.Vec{}
	b.Pos = pos
	return &Tissue{Cells: []Cell{a, b}, Env: Environment{Dim: 2}}
}

func polar(θ float64) Cell {
	return Cell{Type: Trophectoderm, Polar: true, Angle: θ}
}

func lineage(t CellType) Cell {
	if t == Trophectoderm {
		return polar(0)
	}
	return Cell{Type: t}
}

func assertVecInDelta(t *testing.T, want, got r3.Vec, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func TestTissueDefaults(t *testing.T) {
	ts := &Tissue{Cells: []Cell{{Pos: r3.Vec{X: 1}}, {Pos: r3.Vec{X: 3, Y: 1}}}}
	assert.Equal(t, 2, ts.Len())
	assert.Equal(t, 2, ts.Dim())
	assert.Equal(t, r3.Vec{X: 2, Y: 1}, ts.Vec(ts.Location(0), ts.Location(1)))

	ts.Cell(1).Type = Epiblast
	assert.Equal(t, Epiblast, ts.Cells[1].Type, "Cell must return a reference")
}

func TestSum(t *testing.T) {
	p := DefaultParameters()
	ts := twoCells(Cell{Type: Epiblast}, Cell{Type: UndeterminedICM}, r3.Vec{X: 1.3})

	one, err := NewForce(p).ForceBetween(0, 1, ts)
	require.NoError(t, err)
	two, err := Sum{NewForce(p), NewForce(p)}.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assertVecInDelta(t, r3.Scale(2, one), two, 1e-15)

	zero, err := Sum{}.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, zero)

	_, err = Sum{NewForce(p)}.ForceBetween(1, 1, ts)
	assert.ErrorIs(t, err, ErrSameCell)
}

func TestSumCoversAllLineages(t *testing.T) {
	p := DefaultTrophectodermParameters()
	law := Sum{NewTrophectodermForce(p), NewNoTrophForce(p)}
	for _, a := range lineages {
		for _, b := range lineages {
			ts := twoCells(lineage(a), lineage(b), r3.Vec{X: 1.2, Y: 0.3})
			f, err := law.ForceBetween(0, 1, ts)
			require.NoError(t, err, "%v-%v", a, b)
			assert.NotEqual(t, r3.Vec{}, f, "%v-%v should interact", a, b)
			assert.False(t, math.IsNaN(f.X) || math.IsNaN(f.Y), "%v-%v", a, b)
		}
	}
}
