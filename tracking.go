package nissen

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TrackPolarity returns, for every cell of p, the sum of the sines of the
// polarity angles of its neighbours, i.e. the cells whose nodes lie within
// radius (in diameters). Neighbours without polarity count as angle zero.
// Cells without neighbours get -1.
func TrackPolarity(p Population, radius float64) []float64 {
	n := p.Len()
	sum := make([]float64, n)
	count := make([]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r3.Norm(p.Vec(p.Location(i), p.Location(j))) > radius {
				continue
			}
			count[i]++
			count[j]++
			sum[i] += sinPolarity(p.Cell(j))
			sum[j] += sinPolarity(p.Cell(i))
		}
	}
	for i := range sum {
		if count[i] == 0 {
			sum[i] = -1
		}
	}
	return sum
}

func sinPolarity(c *Cell) float64 {
	θ, ok := c.Orientation()
	if !ok {
		return 0
	}
	return math.Sin(θ)
}
