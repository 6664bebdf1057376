package nissen

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// A Potential holds the decay lengths, in cell radii, of the attractive and
// repulsive exponentials of a Nissen interaction.
type Potential struct {
	Attraction float64 // slow decay length
	Repulsion  float64 // fast decay length
}

var (
	// StandardPotential is used by every isotropic pair and by focus pairs.
	StandardPotential = Potential{Attraction: 5, Repulsion: 1}

	// TrophectodermPotential is used by unpolarized TE-TE pairs in Force.
	TrophectodermPotential = Potential{Attraction: 10, Repulsion: 2}

	// ContactPotential is used by TrophectodermForce for TE-TE pairs
	// closer than one cell diameter.
	ContactPotential = Potential{Attraction: 15, Repulsion: 3}
)

// Gradients returns the attraction and repulsion gradients at distance d
// (in radii) along the unit vector u pointing from a to b.
// The attraction prefactor is 1/5 whatever the decay length.
func (p Potential) Gradients(d float64, u r3.Vec) (attraction, repulsion r3.Vec) {
	a := math.Exp(-d / p.Attraction)
	attraction = r3.Vec{X: a * u.X / 5, Y: a * u.Y / 5, Z: a * u.Z / 5}
	repulsion = r3.Scale(-math.Exp(-d/p.Repulsion), u)
	return attraction, repulsion
}

// Force returns the isotropic force of strength s at distance d along u.
func (p Potential) Force(d float64, u r3.Vec, s float64) r3.Vec {
	attraction, repulsion := p.Gradients(d, u)
	return r3.Add(r3.Scale(s, attraction), repulsion)
}

// radii converts a node-to-node vector into a unit vector and a distance
// in cell radii. It fails on coincident nodes.
func radii(r r3.Vec) (u r3.Vec, d float64, err error) {
	n := r3.Norm(r)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}, 0, ErrDegenerate
	}
	return r3.Vec{X: r.X / n, Y: r.Y / n, Z: r.Z / n}, 2 * n, nil
}

// finite reports whether every component of v is finite.
func finite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
