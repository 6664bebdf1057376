package nissen

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// blastocyst returns a honeycomb of mixed lineages with TE cells on the rim.
func blastocyst(rows, cols int) *Tissue {
	ts := &Tissue{Env: Environment{Dim: 2}}
	inner := []CellType{Epiblast, PrimitiveEndoderm, UndeterminedICM}
	for k, pos := range Honeycomb(rows, cols, 1) {
		i, j := k%cols, k/cols
		c := Cell{Pos: pos, Type: inner[k%len(inner)]}
		if i == 0 || j == 0 || i == cols-1 || j == rows-1 {
			c.Type = Trophectoderm
			c.Polar = true
			c.Angle = math.Atan2(pos.Y, pos.X) + 0.1*float64(k)
		}
		ts.Cells = append(ts.Cells, c)
	}
	return ts
}

func TestAccumulate(t *testing.T) {
	ts := blastocyst(6, 5)
	p := DefaultTrophectodermParameters()
	law := Sum{NewTrophectodermForce(p), NewNoTrophForce(p)}

	forces, err := Accumulate(context.Background(), law, ts)
	require.NoError(t, err)
	require.Len(t, forces, ts.Len())

	want := make([]r3.Vec, ts.Len())
	for i := 0; i < ts.Len(); i++ {
		for j := i + 1; j < ts.Len(); j++ {
			f, err := law.ForceBetween(i, j, ts)
			require.NoError(t, err)
			want[i] = r3.Add(want[i], f)
			want[j] = r3.Sub(want[j], f)
		}
	}

	var net r3.Vec
	for i := range forces {
		assertVecInDelta(t, want[i], forces[i], 1e-12, "node %d", i)
		net = r3.Add(net, forces[i])
	}
	assertVecInDelta(t, r3.Vec{}, net, 1e-12)
}

func TestAccumulateDeterministic(t *testing.T) {
	ts := blastocyst(5, 5)
	law := NewForce(DefaultParameters())
	first, err := Accumulate(context.Background(), law, ts)
	require.NoError(t, err)
	for k := 0; k < 5; k++ {
		again, err := Accumulate(context.Background(), law, ts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAccumulateErrors(t *testing.T) {
	ts := blastocyst(4, 4)
	ts.Cells[5].Age = math.NaN()
	_, err := Accumulate(context.Background(), NewForce(DefaultParameters()), ts)
	require.ErrorIs(t, err, ErrNaNAge)
	var pe *PairError
	require.True(t, errors.As(err, &pe))
	assert.True(t, pe.A == 5 || pe.B == 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Accumulate(ctx, NewForce(DefaultParameters()), blastocyst(3, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccumulateEmpty(t *testing.T) {
	forces, err := Accumulate(context.Background(), NewForce(DefaultParameters()), &Tissue{})
	require.NoError(t, err)
	assert.Empty(t, forces)

	forces, err = Accumulate(context.Background(), NewForce(DefaultParameters()), &Tissue{Cells: []Cell{{Type: Epiblast}}})
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{{}}, forces)
}
