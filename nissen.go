// Package nissen computes the pairwise mechanical forces between cells
// of an early embryo (blastocyst) following the Nissen force laws.
//
// Cells belong to one of four lineages: trophectoderm (TE), epiblast (EPI),
// primitive endoderm (PrE) and undetermined inner cell mass (ICM).
// All interactions derive from a pair of exponential potentials, one
// attractive and one repulsive. Trophectoderm cells may additionally carry
// a polarity angle which turns them into elongated two-focus bodies whose
// adhesion depends on their relative orientation.
//
// Distances handed to the potentials are expressed in cell radii,
// i.e. twice the node-to-node distance in the population.
package nissen

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// An Environment contains the geometry of the space cells live in.
type Environment struct {
	// Dim is the dimension of space (1, 2 or 3).
	// Polarity requires at least 2 dimensions.
	Dim int

	// Vec returns the vector pointing from u to v.
	// It can be used to create periodic boundary conditions.
	Vec func(u, v r3.Vec) r3.Vec
}

// A Population gives access to the cells and the geometry they live in.
type Population interface {
	// Len returns the number of cells.
	Len() int

	// Dim returns the dimension of space.
	Dim() int

	// Location returns the location of node i.
	Location(i int) r3.Vec

	// Cell returns the cell attached to node i.
	Cell(i int) *Cell

	// Vec returns the vector pointing from u to v. This is the only source
	// of geometry and may wrap around periodic boundaries.
	Vec(u, v r3.Vec) r3.Vec
}

// A Tissue is a Population backed by a slice of cells.
type Tissue struct {
	Cells []Cell
	Env   Environment
}

// Len returns the number of cells.
func (t *Tissue) Len() int { return len(t.Cells) }

// Dim returns the dimension of space, 2 when unset.
func (t *Tissue) Dim() int {
	if t.Env.Dim == 0 {
		return 2
	}
	return t.Env.Dim
}

// Location returns the position of cell i.
func (t *Tissue) Location(i int) r3.Vec { return t.Cells[i].Pos }

// Cell returns cell i.
func (t *Tissue) Cell(i int) *Cell { return &t.Cells[i] }

// Vec returns the vector from u to v using the environment,
// falling back to Euclidean geometry.
func (t *Tissue) Vec(u, v r3.Vec) r3.Vec {
	if t.Env.Vec == nil {
		return Euclidean(u, v)
	}
	return t.Env.Vec(u, v)
}

// A Law computes the force exerted on node a by node b.
type Law interface {
	// ForceBetween returns the force acting on node a due to node b.
	// The caller applies the opposite force to b.
	ForceBetween(a, b int, p Population) (r3.Vec, error)
}

// Sum is a Law adding up the forces of several laws.
type Sum []Law

// ForceBetween returns the sum of the forces of all laws in s.
func (s Sum) ForceBetween(a, b int, p Population) (r3.Vec, error) {
	var f r3.Vec
	for _, l := range s {
		g, err := l.ForceBetween(a, b, p)
		if err != nil {
			return r3.Vec{}, err
		}
		f = r3.Add(f, g)
	}
	return f, nil
}
