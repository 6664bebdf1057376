package nissen

import (
	"fmt"
	"io"
	"math"
)

// Parameters contains the interaction strengths of every unordered pair of
// lineages together with the cutoff shared by all two-body forces.
//
// A positive strength makes the slow exponential attractive. The TE-TE
// strength is only a prefactor; polarity modulates it.
type Parameters struct {
	ICMICM float64 `toml:"S_ICM_ICM"` // before TE specification every cell is ICM-like
	TEICM  float64 `toml:"S_TE_ICM"`
	TEEPI  float64 `toml:"S_TE_EPI"`
	TEPrE  float64 `toml:"S_TE_PrE"`
	TETE   float64 `toml:"S_TE_TE"`
	PrEPrE float64 `toml:"S_PrE_PrE"`
	PrEEPI float64 `toml:"S_PrE_EPI"`
	PrEICM float64 `toml:"S_PrE_ICM"`
	EPIEPI float64 `toml:"S_EPI_EPI"`
	EPIICM float64 `toml:"S_EPI_ICM"`

	// GrowthDuration is kept for parameter files only: no force law
	// softens newly divided pairs.
	GrowthDuration float64 `toml:"GrowthDuration"` // unit: hours

	UseCutOffLength bool    `toml:"UseCutOffLength"`
	CutOffLength    float64 `toml:"CutOffLength"` // unit: cell diameters
}

// DefaultParameters returns the strengths used by Force.
func DefaultParameters() Parameters {
	return Parameters{
		ICMICM:         0.6,
		TEICM:          0.4,
		TEEPI:          0.6,
		TEPrE:          0.6,
		TETE:           -1.4,
		PrEPrE:         0.4,
		PrEEPI:         0.4,
		PrEICM:         0.4,
		EPIEPI:         0.6,
		EPIICM:         0.6,
		GrowthDuration: 3.0,
		CutOffLength:   math.MaxFloat64,
	}
}

// DefaultTrophectodermParameters returns the strengths used by
// TrophectodermForce. They differ from DefaultParameters for TE-ICM and TE-PrE.
func DefaultTrophectodermParameters() Parameters {
	p := DefaultParameters()
	p.TEICM = 0.6
	p.TEPrE = 0.4
	return p
}

// SetCutOffLength enables the cutoff and sets its length in cell diameters.
func (p *Parameters) SetCutOffLength(l float64) {
	p.UseCutOffLength = true
	p.CutOffLength = l
}

// strength returns a pointer to the coefficient of the unordered pair (a, b).
func (p *Parameters) strength(a, b CellType) *float64 {
	if a > b {
		a, b = b, a
	}
	switch [2]CellType{a, b} {
	case [2]CellType{Trophectoderm, Trophectoderm}:
		return &p.TETE
	case [2]CellType{Trophectoderm, Epiblast}:
		return &p.TEEPI
	case [2]CellType{Trophectoderm, PrimitiveEndoderm}:
		return &p.TEPrE
	case [2]CellType{Trophectoderm, UndeterminedICM}:
		return &p.TEICM
	case [2]CellType{Epiblast, Epiblast}:
		return &p.EPIEPI
	case [2]CellType{Epiblast, PrimitiveEndoderm}:
		return &p.PrEEPI
	case [2]CellType{Epiblast, UndeterminedICM}:
		return &p.EPIICM
	case [2]CellType{PrimitiveEndoderm, PrimitiveEndoderm}:
		return &p.PrEPrE
	case [2]CellType{PrimitiveEndoderm, UndeterminedICM}:
		return &p.PrEICM
	case [2]CellType{UndeterminedICM, UndeterminedICM}:
		return &p.ICMICM
	}
	return nil
}

// Strength returns the interaction strength between lineages a and b.
// It is symmetric. ok is false if either lineage is unsupported.
func (p Parameters) Strength(a, b CellType) (s float64, ok bool) {
	if ps := p.strength(a, b); ps != nil {
		return *ps, true
	}
	return 0, false
}

// SetStrength sets the interaction strength between lineages a and b.
// It must only be used while configuring a simulation: laws copy their
// parameters when they are created.
func (p *Parameters) SetStrength(a, b CellType, s float64) error {
	ps := p.strength(a, b)
	if ps == nil {
		return fmt.Errorf("nissen: no interaction strength between %v and %v", a, b)
	}
	*ps = s
	return nil
}

// A taggedValue is a single line of a parameter file.
type taggedValue struct {
	name  string
	value interface{}
}

// parameterLines lists the coefficients in parameter file order.
func (p Parameters) parameterLines() []taggedValue {
	return []taggedValue{
		{"S_TE_TE", p.TETE},
		{"S_TE_ICM", p.TEICM},
		{"S_TE_EPI", p.TEEPI},
		{"S_TE_PrE", p.TEPrE},
		{"S_ICM_ICM", p.ICMICM},
		{"S_PrE_ICM", p.PrEICM},
		{"S_EPI_ICM", p.EPIICM},
		{"S_PrE_EPI", p.PrEEPI},
		{"S_PrE_PrE", p.PrEPrE},
		{"S_EPI_EPI", p.EPIEPI},
	}
}

// cutOffLines lists the state shared by all two-body forces.
func (p Parameters) cutOffLines() []taggedValue {
	return []taggedValue{
		{"UseCutOffLength", p.UseCutOffLength},
		{"CutOffLength", p.CutOffLength},
	}
}

// writeTagged writes one <Name>value</Name> line per value.
// Numbers use six significant digits and booleans are written as 0 or 1.
func writeTagged(w io.Writer, lines []taggedValue) (int64, error) {
	var n int64
	for _, l := range lines {
		var v string
		switch x := l.value.(type) {
		case bool:
			v = "0"
			if x {
				v = "1"
			}
		case float64:
			v = fmt.Sprintf("%.6g", x)
		default:
			v = fmt.Sprint(x)
		}
		m, err := fmt.Fprintf(w, "\t\t\t<%s>%s</%s>\n", l.name, v, l.name)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteTo writes every coefficient, the growth duration and the cutoff
// as tagged lines for run provenance.
func (p Parameters) WriteTo(w io.Writer) (int64, error) {
	lines := append(p.parameterLines(), taggedValue{"GrowthDuration", p.GrowthDuration})
	return writeTagged(w, append(lines, p.cutOffLines()...))
}
