package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PrincetonUniversity/nissen"
	"github.com/PrincetonUniversity/nissen/hdf5"
)

// A law is a force law that can describe its parameters.
type law interface {
	nissen.Law
	WriteParameters(w io.Writer) (int64, error)
}

// laws is a blastocyst law: its parameter file is the concatenation of
// those of its terms.
type laws []law

func (l laws) ForceBetween(a, b int, p nissen.Population) (r3.Vec, error) {
	s := make(nissen.Sum, len(l))
	for i, x := range l {
		s[i] = x
	}
	return s.ForceBetween(a, b, p)
}

func (l laws) WriteParameters(w io.Writer) (int64, error) {
	var n int64
	for _, x := range l {
		m, err := x.WriteParameters(w)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// newLaw returns the force law named in the config.
func newLaw(conf *Config) (law, error) {
	p := conf.Parameters
	if conf.CutOffLength > 0 {
		p.SetCutOffLength(conf.CutOffLength)
	}
	switch conf.Force {
	case "nissen":
		return nissen.NewForce(p), nil
	case "trophectoderm":
		return nissen.NewTrophectodermForce(p), nil
	case "notroph":
		return nissen.NewNoTrophForce(p), nil
	case "blastocyst":
		return laws{nissen.NewTrophectodermForce(p), nissen.NewNoTrophForce(p)}, nil
	}
	return nil, fmt.Errorf("bad force %q", conf.Force)
}

// A simulation sweeps the polarity of every polar cell and keeps the net
// forces of the current step.
type simulation struct {
	tissue *nissen.Tissue
	law    law
	spin   float64
	forces []r3.Vec
	step   int
	log    *zap.Logger
}

// Step rotates every polarity by the spin and updates the forces.
func (s *simulation) Step() error {
	for i := range s.tissue.Cells {
		if s.tissue.Cells[i].Polar {
			s.tissue.Cells[i].Angle = math.Remainder(s.tissue.Cells[i].Angle+s.spin, 2*math.Pi)
		}
	}
	s.step++
	return s.update()
}

// Forces returns the net forces of the current step.
func (s *simulation) Forces() []r3.Vec { return s.forces }

func (s *simulation) update() error {
	f, err := nissen.Accumulate(context.Background(), s.law, s.tissue)
	if err != nil {
		return err
	}
	s.forces = f
	if s.log.Core().Enabled(zap.DebugLevel) {
		var max float64
		for _, v := range f {
			max = math.Max(max, r3.Norm(v))
		}
		s.log.Debug("forces updated", zap.Int("step", s.step), zap.Float64("max_force", max))
	}
	return nil
}

// setup initializes the cells and the force law.
func setup(conf *Config, log *zap.Logger) (*simulation, error) {
	t, err := layout(conf)
	if err != nil {
		return nil, err
	}
	t.Env.Dim = conf.Dim
	switch conf.DomainType {
	case "infinite":
		t.Env.Vec = nissen.Euclidean
	case "periodic":
		t.Env.Vec = nissen.Periodic(conf.DomainSize)
	default:
		return nil, fmt.Errorf("bad domain type %q", conf.DomainType)
	}
	if err := polarize(t, conf); err != nil {
		return nil, err
	}

	l, err := newLaw(conf)
	if err != nil {
		return nil, err
	}
	s := &simulation{tissue: t, law: l, spin: conf.PolaritySpin, log: log}
	if err := s.update(); err != nil {
		return nil, err
	}
	log.Info("simulation ready", zap.String("force", conf.Force), zap.Int("cells", t.Len()))
	return s, nil
}

// layout places the initial cells.
func layout(conf *Config) (*nissen.Tissue, error) {
	t := new(nissen.Tissue)
	switch conf.Layout {
	case "honeycomb":
		var ct nissen.CellType
		if conf.CellType != "mixed" {
			var err error
			if ct, err = nissen.ParseCellType(conf.CellType); err != nil {
				return nil, err
			}
		}
		inner := []nissen.CellType{nissen.Epiblast, nissen.PrimitiveEndoderm}
		for k, pos := range nissen.Honeycomb(conf.Rows, conf.Cols, conf.Spacing) {
			c := nissen.Cell{Pos: pos, Type: ct}
			if conf.CellType == "mixed" {
				i, j := k%conf.Cols, k/conf.Cols
				if i == 0 || j == 0 || i == conf.Cols-1 || j == conf.Rows-1 {
					c.Type = nissen.Trophectoderm
				} else {
					c.Type = inner[(i+j)%len(inner)]
				}
			}
			t.Cells = append(t.Cells, c)
		}
	case "cells":
		for _, c := range conf.Cells {
			t.Cells = append(t.Cells, nissen.Cell{
				Pos:   r3.Vec{X: c.X, Y: c.Y, Z: c.Z},
				Type:  c.Type,
				Age:   c.Age,
				Polar: c.Polar,
				Angle: c.Angle,
			})
		}
	case "data":
		l, err := hdf5.NewLoader(conf.DataPath, "cells")
		if err != nil {
			return nil, err
		}
		defer l.Close()
		if err := l.Load(&t.Cells); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("bad layout %q", conf.Layout)
	}
	return t, nil
}

// polarize gives a polarity to every trophectoderm cell without one.
// Radial polarity points away from the centroid of the tissue.
func polarize(t *nissen.Tissue, conf *Config) error {
	var centroid r3.Vec
	for _, c := range t.Cells {
		centroid = r3.Add(centroid, c.Pos)
	}
	if t.Len() > 0 {
		centroid = r3.Scale(1/float64(t.Len()), centroid)
	}
	rng := rand.New(rand.NewSource(conf.Seed))

	for i := range t.Cells {
		c := &t.Cells[i]
		if c.Type != nissen.Trophectoderm || c.Polar {
			continue
		}
		switch conf.Polarity {
		case "none":
			continue
		case "radial":
			r := r3.Sub(c.Pos, centroid)
			c.Angle = math.Atan2(r.Y, r.X)
		case "uniform":
			c.Angle = conf.Angle
		case "random":
			c.Angle = 2*math.Pi*rng.Float64() - math.Pi
		default:
			return fmt.Errorf("bad polarity %q", conf.Polarity)
		}
		c.Polar = true
	}
	return nil
}

// bounds returns a square containing every cell with a margin of one diameter.
func bounds(t *nissen.Tissue) (xmin, ymin, xmax, ymax float64) {
	if t.Len() == 0 {
		return -1, -1, 1, 1
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, c := range t.Cells {
		xmin, xmax = math.Min(xmin, c.Pos.X), math.Max(xmax, c.Pos.X)
		ymin, ymax = math.Min(ymin, c.Pos.Y), math.Max(ymax, c.Pos.Y)
	}
	// keep the aspect ratio of the square window
	half := math.Max(xmax-xmin, ymax-ymin)/2 + 1
	xc, yc := (xmin+xmax)/2, (ymin+ymax)/2
	return xc - half, yc - half, xc + half, yc + half
}
