package nissen

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// A CellType is the differentiation state of a cell.
// Only the four blastocyst lineages interact mechanically.
type CellType int

const (
	Other             CellType = iota // unsupported type, mechanically inert
	Trophectoderm                     // outer, polarizable epithelium (TE)
	Epiblast                          // EPI
	PrimitiveEndoderm                 // PrE
	UndeterminedICM                   // inner cell mass before EPI/PrE specification
)

// numCellTypes bounds the dispatch tables.
const numCellTypes = int(UndeterminedICM) + 1

var cellTypeNames = [numCellTypes]string{
	Other:             "Other",
	Trophectoderm:     "TE",
	Epiblast:          "EPI",
	PrimitiveEndoderm: "PrE",
	UndeterminedICM:   "ICM",
}

// String returns the short lineage name (TE, EPI, PrE, ICM).
func (t CellType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("CellType(%d)", int(t))
	}
	return cellTypeNames[t]
}

// Valid reports whether t is one of the declared constants.
func (t CellType) Valid() bool {
	return t >= Other && int(t) < numCellTypes
}

// Supported reports whether t takes part in Nissen interactions.
func (t CellType) Supported() bool {
	return t != Other && t.Valid()
}

// ParseCellType parses a short or long lineage name, case-insensitively.
func ParseCellType(s string) (CellType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "te", "trophectoderm":
		return Trophectoderm, nil
	case "epi", "epiblast":
		return Epiblast, nil
	case "pre", "primitiveendoderm", "primitive endoderm":
		return PrimitiveEndoderm, nil
	case "icm", "undeterminedicm", "transit":
		return UndeterminedICM, nil
	case "other", "":
		return Other, nil
	}
	return Other, fmt.Errorf("nissen: unknown cell type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t CellType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CellType) UnmarshalText(text []byte) error {
	v, err := ParseCellType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// A Cell is what the force laws see of a cell: where it is, what it is,
// how old it is and, for polar cells, which way it points.
type Cell struct {
	Pos   r3.Vec   // node location in cell diameters
	Type  CellType // differentiation state
	Age   float64  // must not be NaN
	Polar bool     // whether Angle is meaningful
	Angle float64  // polarity angle in radians
}

// Orientation returns the polarity angle of the cell and whether it has one.
func (c *Cell) Orientation() (float64, bool) {
	return c.Angle, c.Polar
}
