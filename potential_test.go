package nissen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGradients(t *testing.T) {
	u := r3.Vec{X: 0.6, Y: 0.8}
	att, rep := StandardPotential.Gradients(2, u)
	assertVecInDelta(t, r3.Scale(math.Exp(-0.4)/5, u), att, 1e-15)
	assertVecInDelta(t, r3.Scale(-math.Exp(-2), u), rep, 1e-15)

	// the attraction prefactor does not follow the decay length
	att, rep = TrophectodermPotential.Gradients(2, u)
	assertVecInDelta(t, r3.Scale(math.Exp(-0.2)/5, u), att, 1e-15)
	assertVecInDelta(t, r3.Scale(-math.Exp(-1), u), rep, 1e-15)
}

func TestForceLinearInStrength(t *testing.T) {
	u := r3.Unit(r3.Vec{X: 1, Y: -2, Z: 0.5})
	for _, p := range []Potential{StandardPotential, TrophectodermPotential, ContactPotential} {
		for _, d := range []float64{0.5, 2, 7} {
			base := p.Force(d, u, 0)
			f1 := r3.Sub(p.Force(d, u, 0.4), base)
			f3 := r3.Sub(p.Force(d, u, 1.2), base)
			assertVecInDelta(t, r3.Scale(3, f1), f3, 1e-14, "%v at %v", p, d)
		}
	}
}

func TestForceDecay(t *testing.T) {
	u := r3.Vec{X: 1}
	s := 0.6

	// short range: the fast exponential pushes a away from b
	near := StandardPotential.Force(0.2, u, s)
	assert.Less(t, near.X, 0.0)

	// long range: only the slow attraction survives
	far := StandardPotential.Force(30, u, s)
	assert.Greater(t, far.X, 0.0)
	assert.InEpsilon(t, s*math.Exp(-30.0/5)/5, far.X, 1e-9)

	prev := math.Inf(1)
	for d := 6.0; d < 40; d += 2 {
		f := StandardPotential.Force(d, u, s).X
		assert.Less(t, f, prev, "attraction must decay, d=%v", d)
		prev = f
	}
}

func TestRadii(t *testing.T) {
	u, d, err := radii(r3.Vec{X: 3, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)
	assertVecInDelta(t, r3.Vec{X: 0.6, Y: 0.8}, u, 1e-15)

	for _, r := range []r3.Vec{{}, {X: math.NaN()}, {Y: math.Inf(-1)}} {
		_, _, err := radii(r)
		assert.ErrorIs(t, err, ErrDegenerate, "%v", r)
	}
}
