package nissen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// fourFoci sums the focus kernel over the four focus pairs of two TE cells
// at a and b (raw coordinates), independently of the law.
func fourFoci(bx, by, θa, θb, s float64) (fx, fy float64) {
	offs := func(θ float64) [2][2]float64 {
		return [2][2]float64{
			{-0.5 * math.Sin(θ), 0.5 * math.Cos(θ)},
			{0.5 * math.Sin(θ), -0.5 * math.Cos(θ)},
		}
	}
	for _, oa := range offs(θa) {
		for _, ob := range offs(θb) {
			rx, ry := bx+ob[0]-oa[0], by+ob[1]-oa[1]
			n := math.Hypot(rx, ry)
			x, y := anisotropicScalar(2*n, rx/n, ry/n, θa, θb, s, FocusKernel)
			fx += x
			fy += y
		}
	}
	return fx, fy
}

func TestTrophectodermFourFoci(t *testing.T) {
	p := DefaultTrophectodermParameters()
	law := NewTrophectodermForce(p)

	ts := twoCells(polar(0), polar(0), r3.Vec{X: 3})
	f, err := law.ForceBetween(0, 1, ts)
	require.NoError(t, err)

	fx, fy := fourFoci(3, 0, 0, 0, p.TETE)
	assert.InDelta(t, fx, f.X, 1e-12)
	assert.InDelta(t, fy, f.Y, 1e-12)
	assertVecInDelta(t, r3.Vec{X: 0.03034872731511215}, f, 1e-12)

	for _, θ := range []float64{0.4, -2, math.Pi / 3} {
		ts := twoCells(polar(θ), polar(-θ/2), r3.Vec{X: 1.7, Y: -0.9})
		f, err := law.ForceBetween(0, 1, ts)
		require.NoError(t, err)
		fx, fy := fourFoci(1.7, -0.9, θ, -θ/2, p.TETE)
		assert.InDelta(t, fx, f.X, 1e-12, "θ=%v", θ)
		assert.InDelta(t, fy, f.Y, 1e-12, "θ=%v", θ)
	}
}

func TestTrophectodermOpposedAngles(t *testing.T) {
	law := NewTrophectodermForce(DefaultTrophectodermParameters())
	// three radii apart, so the focus branch applies
	ts := twoCells(polar(0), polar(math.Pi), r3.Vec{X: 1.5})
	f, err := law.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assert.InDelta(t, -0.40783348756133675, f.X, 1e-12)
	assert.InDelta(t, 0, f.Y, 1e-12)
}

func TestTrophectodermContact(t *testing.T) {
	p := DefaultTrophectodermParameters()
	law := NewTrophectodermForce(p)

	ts := twoCells(polar(0.3), polar(-1.1), r3.Vec{X: 0.8})
	f, err := law.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	want, err := Anisotropic(1.6, r3.Vec{X: 1}, 0.3, -1.1, p.TETE, ContactKernel)
	require.NoError(t, err)
	assert.Equal(t, want, f)
}

// The force jumps where the contact kernel hands over to the focus pairs.
func TestTrophectodermDiscontinuity(t *testing.T) {
	law := NewTrophectodermForce(DefaultTrophectodermParameters())
	at := func(x float64) r3.Vec {
		f, err := law.ForceBetween(0, 1, twoCells(polar(0), polar(0), r3.Vec{X: x}))
		require.NoError(t, err)
		return f
	}
	below, above := at(1-1e-9), at(1)
	assert.Greater(t, math.Abs(above.X-below.X), 1e-3)
}

func TestTrophectodermCutOff(t *testing.T) {
	p := DefaultTrophectodermParameters()
	p.SetCutOffLength(2.5)
	law := NewTrophectodermForce(p)

	// only A1-B1 and A2-B2 are closer than the cutoff (in radii)
	ts := twoCells(polar(0), polar(0), r3.Vec{X: 1.2})
	f, err := law.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	g, err := Anisotropic(2.4, r3.Vec{X: 1}, 0, 0, p.TETE, FocusKernel)
	require.NoError(t, err)
	assertVecInDelta(t, r3.Scale(2, g), f, 1e-15)

	// no focus pair in range
	ts = twoCells(polar(0), polar(0), r3.Vec{X: 1.5})
	f, err = law.ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)

	// the node distance cuts off first
	p.SetCutOffLength(0.9)
	ts = twoCells(polar(0), polar(0), r3.Vec{X: 0.95})
	f, err = NewTrophectodermForce(p).ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)
}

func TestTrophectodermFocusGateIgnoresFlag(t *testing.T) {
	p := DefaultTrophectodermParameters()
	p.CutOffLength = 2.5
	ts := twoCells(polar(0), polar(0), r3.Vec{X: 1.5})
	f, err := NewTrophectodermForce(p).ForceBetween(0, 1, ts)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)
}

func TestTrophectodermPointAggregation(t *testing.T) {
	p := DefaultTrophectodermParameters()
	p.TEEPI = 0.5
	p.TEPrE = 0.5
	p.TEICM = 0.5
	law := NewTrophectodermForce(p)

	at := func(a, b Cell) r3.Vec {
		f, err := law.ForceBetween(0, 1, twoCells(a, b, r3.Vec{X: 1.4, Y: 0.2}))
		require.NoError(t, err)
		return f
	}

	// EPI and PrE average over the foci, ICM adds them up
	epi := at(polar(0.2), Cell{Type: Epiblast})
	assert.Equal(t, epi, at(polar(0.2), Cell{Type: PrimitiveEndoderm}))
	assertVecInDelta(t, r3.Scale(2, epi), at(polar(0.2), Cell{Type: UndeterminedICM}), 1e-15)

	epi = at(Cell{Type: Epiblast}, polar(0.2))
	assert.Equal(t, epi, at(Cell{Type: PrimitiveEndoderm}, polar(0.2)))
	assertVecInDelta(t, r3.Scale(2, epi), at(Cell{Type: UndeterminedICM}, polar(0.2)), 1e-15)
}

func TestTrophectodermFocusScale(t *testing.T) {
	p := DefaultTrophectodermParameters()
	law := NewTrophectodermForce(p)

	// a point cell one diameter to the right of a TE cell whose foci
	// lie at (0, 0.5) and (0, -0.5)
	f, err := law.ForceBetween(0, 1, twoCells(polar(0), Cell{Type: Epiblast}, r3.Vec{X: 1}))
	require.NoError(t, err)

	n := math.Sqrt(1.25)
	u1 := r3.Vec{X: 1 / n, Y: -0.5 / n}
	u2 := r3.Vec{X: 1 / n, Y: 0.5 / n}
	want := r3.Scale(0.5, r3.Add(
		StandardPotential.Force(4*n, u1, p.TEEPI),
		StandardPotential.Force(n, u2, p.TEEPI),
	))
	assertVecInDelta(t, want, f, 1e-15)

	// the reverse direction uses the true distance of both foci
	g, err := law.ForceBetween(0, 1, twoCells(Cell{Type: Epiblast}, polar(0), r3.Vec{X: -1}))
	require.NoError(t, err)
	v1 := r3.Vec{X: -1 / n, Y: 0.5 / n}
	v2 := r3.Vec{X: -1 / n, Y: -0.5 / n}
	want = r3.Scale(0.5, r3.Add(
		StandardPotential.Force(2*n, v1, p.TEEPI),
		StandardPotential.Force(2*n, v2, p.TEEPI),
	))
	assertVecInDelta(t, want, g, 1e-15)
}

func TestTrophectodermPointCutOff(t *testing.T) {
	p := DefaultTrophectodermParameters()
	p.SetCutOffLength(1.1)
	law := NewTrophectodermForce(p)

	// the scaled first focus (2.24 diameters) is out, the second (0.56) in
	f, err := law.ForceBetween(0, 1, twoCells(polar(0), Cell{Type: Epiblast}, r3.Vec{X: 1}))
	require.NoError(t, err)
	n := math.Sqrt(1.25)
	want := StandardPotential.Force(n, r3.Vec{X: 1 / n, Y: 0.5 / n}, p.TEEPI)
	assertVecInDelta(t, want, f, 1e-15)

	f, err = law.ForceBetween(0, 1, twoCells(polar(0), Cell{Type: Epiblast}, r3.Vec{X: 5}))
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)
}

func TestTrophectodermIgnoresInnerCellMass(t *testing.T) {
	law := NewTrophectodermForce(DefaultTrophectodermParameters())
	for _, a := range lineages[1:] {
		for _, b := range append([]CellType{Other}, lineages[1:]...) {
			f, err := law.ForceBetween(0, 1, twoCells(Cell{Type: a}, Cell{Type: b}, r3.Vec{X: 1}))
			require.NoError(t, err)
			assert.Equal(t, r3.Vec{}, f, "%v-%v", a, b)
		}
	}
	f, err := law.ForceBetween(0, 1, twoCells(polar(0), Cell{Type: Other}, r3.Vec{X: 1}))
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)
}

func TestTrophectodermAllLineagesFinite(t *testing.T) {
	law := NewTrophectodermForce(DefaultTrophectodermParameters())
	for _, a := range lineages {
		for _, b := range lineages {
			for _, x := range []float64{0.3, 0.99, 1, 2.7} {
				f, err := law.ForceBetween(0, 1, twoCells(lineage(a), lineage(b), r3.Vec{X: x, Y: 0.1}))
				require.NoError(t, err, "%v-%v at %v", a, b, x)
				assert.True(t, finite(f), "%v-%v at %v", a, b, x)
			}
		}
	}
}

func TestTrophectodermErrors(t *testing.T) {
	law := NewTrophectodermForce(DefaultTrophectodermParameters())

	unpolar := Cell{Type: Trophectoderm}
	_, err := law.ForceBetween(0, 1, twoCells(unpolar, polar(0), r3.Vec{X: 2}))
	assert.ErrorIs(t, err, ErrNoPolarity)
	_, err = law.ForceBetween(0, 1, twoCells(Cell{Type: Epiblast}, unpolar, r3.Vec{X: 2}))
	assert.ErrorIs(t, err, ErrNoPolarity)

	line := twoCells(polar(0), polar(0), r3.Vec{X: 2})
	line.Env.Dim = 1
	_, err = law.ForceBetween(0, 1, line)
	assert.ErrorIs(t, err, ErrDimension)

	// a point cell sitting on a focus
	_, err = law.ForceBetween(0, 1, twoCells(polar(0), Cell{Type: Epiblast}, r3.Vec{Y: 0.5}))
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = law.ForceBetween(0, 0, line)
	assert.ErrorIs(t, err, ErrSameCell)
}
