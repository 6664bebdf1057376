// Package opengl displays a blastocyst simulation in an OpenGL window.
//
// Cells are drawn as discs of one diameter coloured by lineage. Polar
// cells show their long axis, the segment joining their two foci.
// Net forces can be drawn as segments starting at each node.
package opengl

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	MaxCells   int          // maximum number of cells
	Step       func() error // go to next step
	ForcePause bool         // step manually only?

	// Forces returns the net force on each cell. Forces are not drawn
	// when it is nil.
	Forces     func() []r3.Vec
	ForceScale float64 // length of a unit force, in cell diameters

	// bounds of default viewport
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64

	Logger *zap.Logger
}
