package nissen

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// TrophectodermForce is the Nissen force law for interactions involving
// at least one trophectoderm cell. A TE cell is modelled as an elongated body
// with two foci along the axis perpendicular to its polarity. Pairs without
// TE cells do not interact; combine with NoTrophForce to cover them.
type TrophectodermForce struct {
	params Parameters
}

// NewTrophectodermForce returns a TrophectodermForce using a copy of p.
func NewTrophectodermForce(p Parameters) *TrophectodermForce {
	return &TrophectodermForce{params: p}
}

// Parameters returns a copy of the parameters of f.
func (f *TrophectodermForce) Parameters() Parameters { return f.params }

// ForceBetween returns the force acting on node a due to node b.
func (f *TrophectodermForce) ForceBetween(a, b int, p Population) (r3.Vec, error) {
	v, err := f.forceBetween(a, b, p)
	if err != nil {
		return r3.Vec{}, &PairError{A: a, B: b, Err: err}
	}
	return v, nil
}

func (f *TrophectodermForce) forceBetween(a, b int, p Population) (r3.Vec, error) {
	c, err := resolve(a, b, p)
	if err != nil {
		return r3.Vec{}, err
	}
	ta, tb := c.a.Type, c.b.Type
	switch {
	case ta == Trophectoderm && tb == Trophectoderm:
		return f.polarPair(c, p)
	case ta == Trophectoderm && tb.Supported():
		return f.polarPoint(c, p)
	case tb == Trophectoderm && ta.Supported():
		return f.pointPolar(c, p)
	}
	return r3.Vec{}, nil
}

// orientation returns the polarity angle of a TE cell.
func orientation(c *Cell, p Population) (float64, error) {
	if p.Dim() < 2 {
		return 0, ErrDimension
	}
	θ, ok := c.Orientation()
	if !ok {
		return 0, ErrNoPolarity
	}
	return θ, nil
}

// polarPair computes the force between two TE cells. Closer than one
// diameter the nodes interact directly through the contact kernel; further
// apart the four focus pairs interact through the focus kernel and their
// forces are summed. The switch at d = 2 radii is discontinuous.
func (f *TrophectodermForce) polarPair(c pair, p Population) (r3.Vec, error) {
	if diameterCutOff.excludes(c.d, &f.params) {
		return r3.Vec{}, nil
	}
	θa, err := orientation(c.a, p)
	if err != nil {
		return r3.Vec{}, err
	}
	θb, err := orientation(c.b, p)
	if err != nil {
		return r3.Vec{}, err
	}
	s := f.params.TETE

	if c.d < 2 {
		return Anisotropic(c.d, c.u, θa, θb, s, ContactKernel)
	}

	offA, offB := focusOffsets(θa), focusOffsets(θb)
	var force r3.Vec
	var active int
	for i := range offA {
		for j := range offB {
			u, d, err := radii(r3.Sub(r3.Add(c.r, offB[j]), offA[i]))
			if err != nil {
				return r3.Vec{}, err
			}
			// focus pairs are always gated, in radii, by the cutoff length
			if d >= f.params.CutOffLength {
				continue
			}
			g, err := Anisotropic(d, u, θa, θb, s, FocusKernel)
			if err != nil {
				return r3.Vec{}, err
			}
			force = r3.Add(force, g)
			active++
		}
	}
	return sumFoci.combine(force, active), nil
}

// An aggregation combines the forces of the active focus pairs.
type aggregation int

const (
	sumFoci  aggregation = iota // add the focus forces
	meanFoci                    // average the focus forces over the active pairs
)

func (g aggregation) combine(f r3.Vec, active int) r3.Vec {
	if active == 0 {
		return r3.Vec{}
	}
	if g == meanFoci {
		return r3.Scale(1/float64(active), f)
	}
	return f
}

// pointAggregation is the aggregation of a TE cell interacting with a
// non-polar lineage, in either order.
var pointAggregation = [numCellTypes]aggregation{
	Epiblast:          meanFoci,
	PrimitiveEndoderm: meanFoci,
	UndeterminedICM:   sumFoci,
}

// polarPointScale rescales the focus distances when a is the TE cell.
// The first focus is counted twice in radii and the second not at all;
// existing simulation results depend on it.
var polarPointScale = [2]float64{2, 0.5}

// polarPoint computes the force on a TE cell a due to a non-polar cell b,
// with each focus of a interacting isotropically with the node of b.
func (f *TrophectodermForce) polarPoint(c pair, p Population) (r3.Vec, error) {
	θa, err := orientation(c.a, p)
	if err != nil {
		return r3.Vec{}, err
	}
	s, _ := f.params.Strength(Trophectoderm, c.b.Type)

	offA := focusOffsets(θa)
	var force r3.Vec
	var active int
	for i := range offA {
		u, d, err := radii(r3.Sub(c.r, offA[i]))
		if err != nil {
			return r3.Vec{}, err
		}
		d *= polarPointScale[i]
		if d/2 >= f.params.CutOffLength {
			continue
		}
		force = r3.Add(force, StandardPotential.Force(d, u, s))
		active++
	}
	return pointAggregation[c.b.Type].combine(force, active), nil
}

// pointPolar computes the force on a non-polar cell a due to a TE cell b,
// with the node of a interacting isotropically with each focus of b.
func (f *TrophectodermForce) pointPolar(c pair, p Population) (r3.Vec, error) {
	θb, err := orientation(c.b, p)
	if err != nil {
		return r3.Vec{}, err
	}
	s, _ := f.params.Strength(c.a.Type, Trophectoderm)

	offB := focusOffsets(θb)
	var force r3.Vec
	var active int
	for j := range offB {
		u, d, err := radii(r3.Add(c.r, offB[j]))
		if err != nil {
			return r3.Vec{}, err
		}
		if d/2 >= f.params.CutOffLength {
			continue
		}
		force = r3.Add(force, StandardPotential.Force(d, u, s))
		active++
	}
	return pointAggregation[c.a.Type].combine(force, active), nil
}

// WriteParameters writes the trophectoderm strengths, the growth duration
// and the cutoff as tagged lines.
func (f *TrophectodermForce) WriteParameters(w io.Writer) (int64, error) {
	p := f.params
	lines := []taggedValue{
		{"S_TE_TE", p.TETE},
		{"S_TE_ICM", p.TEICM},
		{"S_TE_EPI", p.TEEPI},
		{"S_TE_PrE", p.TEPrE},
		{"GrowthDuration", p.GrowthDuration},
	}
	return writeTagged(w, append(lines, p.cutOffLines()...))
}
