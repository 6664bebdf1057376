package opengl

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PrincetonUniversity/nissen"
)

// A vertex is what is sent to OpenGL for each point of the scene.
type vertex struct {
	Pos   [2]float32
	Color [4]float32
}

// palette maps cell types to colours.
var palette = map[nissen.CellType][4]float32{
	nissen.Trophectoderm:     {0.3, 0.8, 0.3, 1},
	nissen.Epiblast:          {0.9, 0.3, 0.3, 1},
	nissen.PrimitiveEndoderm: {0.3, 0.5, 1, 1},
	nissen.UndeterminedICM:   {0.9, 0.8, 0.2, 1},
}

var (
	otherColor = [4]float32{0.5, 0.5, 0.5, 1}
	focalColor = [4]float32{1, 1, 1, 1}
	axisColor  = [4]float32{0, 0, 0, 0.8}
	forceColor = [4]float32{1, 0.5, 0, 1}
)

func point(v r3.Vec, color [4]float32) vertex {
	return vertex{Pos: [2]float32{float32(v.X), float32(v.Y)}, Color: color}
}

// cellVertices returns one vertex per cell, the focal cell highlighted.
func cellVertices(t *nissen.Tissue, focal int) []vertex {
	vs := make([]vertex, t.Len())
	for i, c := range t.Cells {
		color, ok := palette[c.Type]
		if !ok {
			color = otherColor
		}
		if i == focal {
			color = focalColor
		}
		vs[i] = point(c.Pos, color)
	}
	return vs
}

// axisVertices returns a segment between the foci of each polar cell.
func axisVertices(t *nissen.Tissue) []vertex {
	var vs []vertex
	for _, c := range t.Cells {
		θ, ok := c.Orientation()
		if !ok {
			continue
		}
		f := nissen.FociOf(c.Pos, θ)
		vs = append(vs, point(f[0], axisColor), point(f[1], axisColor))
	}
	return vs
}

// forceVertices returns a segment from each node along the force acting on it.
func forceVertices(t *nissen.Tissue, forces []r3.Vec, scale float64) []vertex {
	vs := make([]vertex, 0, 2*len(forces))
	for i, f := range forces {
		if i >= t.Len() {
			break
		}
		p := t.Cells[i].Pos
		vs = append(vs, point(p, forceColor), point(r3.Add(p, r3.Scale(scale, f)), forceColor))
	}
	return vs
}

// A viewport is a rectangle delimiting the area of simulation space shown on screen.
// The first point is the bottom left corner, the second point is the top right corner.
type viewport [2]struct{ X, Y float32 }

func newViewport(conf *Config) viewport {
	return viewport{{float32(conf.Xmin), float32(conf.Ymin)}, {float32(conf.Xmax), float32(conf.Ymax)}}
}

// zoom zooms by a factor 1-z around (x, y), expressed as a fraction of
// the viewport.
func (vp *viewport) zoom(x, y, z float32) {
	dx, dy := vp[1].X-vp[0].X, vp[1].Y-vp[0].Y
	vp[0].X += z * (x * dx)
	vp[0].Y += z * (y * dy)
	vp[1].X -= z * (1 - x) * dx
	vp[1].Y -= z * (1 - y) * dy
}

// cycle moves the focal index by step, going through -1 (no focal cell).
func cycle(focal, step, n int) int {
	return (n+1+focal+1+step)%(n+1) - 1
}
