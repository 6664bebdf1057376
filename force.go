package nissen

import (
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// A pair is the resolved geometry of an interaction between two nodes.
type pair struct {
	a, b *Cell
	r    r3.Vec  // vector from a to b, in diameters
	u    r3.Vec  // unit vector from a to b
	d    float64 // distance in radii
}

// resolve fetches both cells and the vector between them.
func resolve(i, j int, p Population) (pair, error) {
	if i == j {
		return pair{}, ErrSameCell
	}
	r := p.Vec(p.Location(i), p.Location(j))
	u, d, err := radii(r)
	if err != nil {
		return pair{}, err
	}
	a, b := p.Cell(i), p.Cell(j)
	if math.IsNaN(a.Age) || math.IsNaN(b.Age) {
		return pair{}, ErrNaNAge
	}
	return pair{a: a, b: b, r: r, u: u, d: d}, nil
}

// A cutOff selects how a branch compares the distance to the cutoff length.
type cutOff int

const (
	noCutOff       cutOff = iota // always interact
	radiiCutOff                  // no interaction if d >= cutoff
	diameterCutOff               // no interaction if d/2 >= cutoff
)

// excludes reports whether a pair at distance d (in radii) is out of range.
func (c cutOff) excludes(d float64, p *Parameters) bool {
	if !p.UseCutOffLength {
		return false
	}
	switch c {
	case radiiCutOff:
		return d >= p.CutOffLength
	case diameterCutOff:
		return d/2 >= p.CutOffLength
	}
	return false
}

// A branch is the rule applied to one ordered pair of lineages.
type branch struct {
	ok        bool      // whether the pair interacts at all
	cutOff    cutOff    // cutoff convention
	potential Potential // decay lengths
	sign      float64   // sign applied to the strength
}

var (
	isotropic   = branch{ok: true, cutOff: noCutOff, potential: StandardPotential, sign: 1}
	withTE      = branch{ok: true, cutOff: diameterCutOff, potential: StandardPotential, sign: 1}
	betweenTE   = branch{ok: true, cutOff: radiiCutOff, potential: TrophectodermPotential, sign: -1}
	nissenTable = [numCellTypes][numCellTypes]branch{
		Trophectoderm: {
			Trophectoderm:     betweenTE,
			Epiblast:          withTE,
			UndeterminedICM:   withTE,
			PrimitiveEndoderm: withTE,
		},
		UndeterminedICM: {
			UndeterminedICM:   isotropic,
			Epiblast:          isotropic,
			PrimitiveEndoderm: isotropic,
			Trophectoderm:     withTE,
		},
		Epiblast: {
			Epiblast:          isotropic,
			UndeterminedICM:   isotropic,
			PrimitiveEndoderm: isotropic,
			Trophectoderm:     withTE,
		},
		PrimitiveEndoderm: {
			UndeterminedICM:   isotropic,
			Epiblast:          isotropic,
			PrimitiveEndoderm: isotropic,
			Trophectoderm:     withTE,
		},
	}
)

// lookup returns the branch of the ordered pair (a, b).
func lookup(table *[numCellTypes][numCellTypes]branch, a, b CellType) branch {
	if !a.Valid() || !b.Valid() {
		return branch{}
	}
	return table[a][b]
}

// Force is the Nissen force law where every lineage interacts isotropically.
// Trophectoderm pairs use longer decay lengths and a reversed strength but
// ignore polarity.
type Force struct {
	params Parameters
}

// NewForce returns a Force using a copy of p.
func NewForce(p Parameters) *Force {
	return &Force{params: p}
}

// Parameters returns a copy of the parameters of f.
func (f *Force) Parameters() Parameters { return f.params }

// ForceBetween returns the force acting on node a due to node b.
func (f *Force) ForceBetween(a, b int, p Population) (r3.Vec, error) {
	v, err := f.forceBetween(a, b, p)
	if err != nil {
		return r3.Vec{}, &PairError{A: a, B: b, Err: err}
	}
	return v, nil
}

func (f *Force) forceBetween(a, b int, p Population) (r3.Vec, error) {
	c, err := resolve(a, b, p)
	if err != nil {
		return r3.Vec{}, err
	}
	return evaluate(&nissenTable, &f.params, c), nil
}

// evaluate applies the isotropic branch of the pair c.
func evaluate(table *[numCellTypes][numCellTypes]branch, params *Parameters, c pair) r3.Vec {
	br := lookup(table, c.a.Type, c.b.Type)
	if !br.ok || br.cutOff.excludes(c.d, params) {
		return r3.Vec{}
	}
	s, _ := params.Strength(c.a.Type, c.b.Type)
	return br.potential.Force(c.d, c.u, br.sign*s)
}

// WriteParameters writes the parameters of f as tagged lines.
func (f *Force) WriteParameters(w io.Writer) (int64, error) {
	return f.params.WriteTo(w)
}
