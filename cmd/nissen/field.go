package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/PrincetonUniversity/nissen"
	"github.com/PrincetonUniversity/nissen/hdf5"
)

// A fieldMap is the force felt by a probe cell at each point of a grid
// around the tissue. Points where the probe would coincide with a cell
// or a focus are NaN.
type fieldMap struct {
	sim    *simulation
	xs, ys []float64
	probe  nissen.Cell
	field  []hdf5.Vector
}

func newFieldMap(conf *Config, s *simulation) (*fieldMap, error) {
	if conf.GridXcount < 2 || conf.GridYcount < 2 {
		return nil, fmt.Errorf("field needs at least 2 grid points per axis, got %dx%d", conf.GridXcount, conf.GridYcount)
	}
	ct, err := nissen.ParseCellType(conf.ProbeType)
	if err != nil {
		return nil, err
	}
	m := &fieldMap{
		sim:   s,
		xs:    linspace(conf.GridXmin, conf.GridXmax, conf.GridXcount),
		ys:    linspace(conf.GridYmin, conf.GridYmax, conf.GridYcount),
		probe: nissen.Cell{Type: ct, Polar: ct == nissen.Trophectoderm, Angle: conf.ProbeAngle},
	}
	return m, m.update()
}

// Step advances the simulation and recomputes the field.
func (m *fieldMap) Step() error {
	if err := m.sim.Step(); err != nil {
		return err
	}
	return m.update()
}

func (m *fieldMap) update() error {
	t := m.sim.tissue
	pt := &nissen.Tissue{Cells: append(append([]nissen.Cell(nil), t.Cells...), m.probe), Env: t.Env}
	probe := t.Len()

	m.field = make([]hdf5.Vector, len(m.xs)*len(m.ys))
	for i, y := range m.ys {
		for j, x := range m.xs {
			pt.Cells[probe].Pos = r3.Vec{X: x, Y: y}
			var f r3.Vec
			for k := 0; k < probe; k++ {
				g, err := m.sim.law.ForceBetween(probe, k, pt)
				if errors.Is(err, nissen.ErrDegenerate) {
					f = r3.Vec{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
					break
				}
				if err != nil {
					return err
				}
				f = r3.Add(f, g)
			}
			m.field[i*len(m.xs)+j] = hdf5.Vector{X: f.X, Y: f.Y, Z: f.Z}
		}
	}
	return nil
}

// dataset returns the HDF5 dataset of the field, one row per grid line.
func (m *fieldMap) dataset() *hdf5.Dataset {
	return &hdf5.Dataset{
		Name: "field",
		Val:  hdf5.Vector{},
		Dims: []int{len(m.ys), len(m.xs)},
		Data: func(*nissen.Tissue) interface{} { return &m.field },
	}
}

// linspace generates count equally spaced points between min and max.
func linspace(min, max float64, count int) []float64 {
	s := make([]float64, count)
	for i := 0; i < count; i++ {
		s[i] = min + (float64(i)/float64(count-1))*(max-min)
	}
	return s
}

// RunField sweeps the polarities and saves the cells and the probe
// force field to an HDF5 file.
func RunField(conf *Config, s *simulation, log *zap.Logger) error {
	if conf.Output == "" {
		return errors.New("field needs an Output file")
	}
	m, err := newFieldMap(conf, s)
	if err != nil {
		return err
	}
	n := s.tissue.Len()
	return hdf5.Run(s.tissue, &hdf5.Config{
		Output:   conf.Output,
		Steps:    conf.Steps,
		Step:     m.Step,
		MaxCells: n,
		Datasets: []*hdf5.Dataset{hdf5.Cells(n), m.dataset()},
		Attrs:    conf,
		Progress: log.Core().Enabled(zap.InfoLevel),
		Logger:   log,
	})
}

func newFieldCmd(logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "field [config_file]",
		Short: "Map the force felt by a probe cell on a grid to an HDF5 file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			conf, err := loadConfig(args)
			if err != nil {
				return err
			}
			s, err := setup(conf, log)
			if err != nil {
				return err
			}
			return RunField(conf, s, log)
		},
	}
}
