package nissen

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// noTrophTable keeps the inner cell mass branches of nissenTable.
var noTrophTable = func() [numCellTypes][numCellTypes]branch {
	t := nissenTable
	for i := range t {
		t[Trophectoderm][i] = branch{}
		t[i][Trophectoderm] = branch{}
	}
	return t
}()

// NoTrophForce is the Nissen force law restricted to inner cell mass
// lineages (EPI, PrE, ICM). Any pair involving a trophectoderm cell does
// not interact; TrophectodermForce covers those.
type NoTrophForce struct {
	params Parameters
}

// NewNoTrophForce returns a NoTrophForce using a copy of p.
func NewNoTrophForce(p Parameters) *NoTrophForce {
	return &NoTrophForce{params: p}
}

// Parameters returns a copy of the parameters of f.
func (f *NoTrophForce) Parameters() Parameters { return f.params }

// ForceBetween returns the force acting on node a due to node b.
func (f *NoTrophForce) ForceBetween(a, b int, p Population) (r3.Vec, error) {
	c, err := resolve(a, b, p)
	if err != nil {
		return r3.Vec{}, &PairError{A: a, B: b, Err: err}
	}
	return evaluate(&noTrophTable, &f.params, c), nil
}

// WriteParameters writes the inner cell mass strengths, the growth duration
// and the cutoff as tagged lines.
func (f *NoTrophForce) WriteParameters(w io.Writer) (int64, error) {
	p := f.params
	lines := []taggedValue{
		{"S_ICM_ICM", p.ICMICM},
		{"S_PrE_PrE", p.PrEPrE},
		{"S_PrE_EPI", p.PrEEPI},
		{"S_PrE_ICM", p.PrEICM},
		{"S_EPI_EPI", p.EPIEPI},
		{"S_EPI_ICM", p.EPIICM},
		{"GrowthDuration", p.GrowthDuration},
	}
	return writeTagged(w, append(lines, p.cutOffLines()...))
}
