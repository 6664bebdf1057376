package nissen

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Euclidean is the trivial vector function of an unbounded world.
func Euclidean(u, v r3.Vec) r3.Vec {
	return r3.Sub(v, u)
}

// Periodic returns a vector function for a cube of side size with
// periodic boundary conditions. The shortest image is always chosen.
func Periodic(size float64) func(u, v r3.Vec) r3.Vec {
	wrap := func(x float64) float64 {
		if 2*x <= -size {
			x += size
		} else if 2*x > size {
			x -= size
		}
		return x
	}
	return func(u, v r3.Vec) r3.Vec {
		return r3.Vec{X: wrap(v.X - u.X), Y: wrap(v.Y - u.Y), Z: wrap(v.Z - u.Z)}
	}
}

// Honeycomb returns node positions on a hexagonal lattice with cols nodes
// across and rows nodes up, every other row shifted by half a spacing.
// It matches the layout of the honeycomb mesh generator used to seed
// node-based blastocyst simulations.
func Honeycomb(rows, cols int, spacing float64) []r3.Vec {
	pos := make([]r3.Vec, 0, rows*cols)
	h := spacing * math.Sqrt(3) / 2
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			x := spacing * float64(i)
			if j%2 == 1 {
				x += spacing / 2
			}
			pos = append(pos, r3.Vec{X: x, Y: h * float64(j)})
		}
	}
	return pos
}
