package nissen

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction returns the unit polarity vector of a cell with polarity angle θ.
// Polarity lives in the XY plane.
func Direction(θ float64) r3.Vec {
	sin, cos := math.Sincos(θ)
	return r3.Vec{X: cos, Y: sin}
}

// Perpendicular returns the unit vector perpendicular to the polarity
// vector of angle θ. It is the long axis of a polar cell.
func Perpendicular(θ float64) r3.Vec {
	sin, cos := math.Sincos(θ)
	return r3.Vec{X: -sin, Y: cos}
}

// Foci are the two virtual points of a polar cell, half a diameter on
// either side of its node along the perpendicular axis.
type Foci [2]r3.Vec

// FociOf returns the foci of a cell at pos with polarity angle θ.
func FociOf(pos r3.Vec, θ float64) Foci {
	off := focusOffsets(θ)
	return Foci{r3.Add(pos, off[0]), r3.Add(pos, off[1])}
}

// focusOffsets returns the displacement of each focus from the node.
func focusOffsets(θ float64) [2]r3.Vec {
	p := Perpendicular(θ)
	return [2]r3.Vec{r3.Scale(0.5, p), r3.Scale(-0.5, p)}
}

// A Kernel parameterizes the anisotropic interaction of two polar points.
type Kernel struct {
	Potential
	Central    float64 // prefactor of the term acting along the connecting line
	Correction float64 // prefactor of the terms acting along each polarity
}

var (
	// ContactKernel is used between the nodes of two close TE cells.
	ContactKernel = Kernel{Potential: ContactPotential, Central: 6, Correction: 3}

	// FocusKernel is used between the foci of two distant TE cells.
	FocusKernel = Kernel{Potential: StandardPotential, Central: 2, Correction: 1}
)

// Anisotropic returns the force between two polar points a and b with
// polarity angles θa and θb, at distance d (in radii) along the unit vector u
// pointing from a to b, for a strength s.
//
// The polarity factor -sin(φ-θa)sin(φ-θb), φ being the direction of u,
// is 1 for cells lying side by side and modulates the attraction.
// Two additional terms pull the force along the connecting line and along
// each cell's polarity.
func Anisotropic(d float64, u r3.Vec, θa, θb, s float64, k Kernel) (r3.Vec, error) {
	d = math.Max(d, 0)
	if d == 0 {
		return r3.Vec{}, ErrDegenerate
	}

	φ := math.Atan2(u.Y, u.X)
	polarity := -math.Sin(φ-θa) * math.Sin(φ-θb)

	attraction, repulsion := k.Gradients(d, u)

	ea, eb := Direction(θa), Direction(θb)
	eau, ebu := r3.Dot(ea, u), r3.Dot(eb, u)

	decay := math.Exp(-d / k.Attraction)
	central := r3.Scale(((k.Central*s)/d)*eau*ebu*decay, u)
	extraA := r3.Scale(-s*decay*ebu*(k.Correction/d), ea)
	extraB := r3.Scale(-s*decay*eau*(k.Correction/d), eb)

	f := r3.Scale(s, r3.Scale(polarity, attraction))
	f = r3.Add(f, repulsion)
	f = r3.Add(f, central)
	f = r3.Add(f, extraA)
	f = r3.Add(f, extraB)
	if !finite(f) {
		return r3.Vec{}, ErrDegenerate
	}
	return f, nil
}
