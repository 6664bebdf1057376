package main

import (
	"go.uber.org/zap"

	"github.com/PrincetonUniversity/nissen/hdf5"
	"github.com/PrincetonUniversity/nissen/opengl"
)

// RunHDF5 runs a polarity sweep and saves cells, forces and polarity
// tracking to an HDF5 file.
func RunHDF5(conf *Config, s *simulation, log *zap.Logger) error {
	n := s.tissue.Len()
	return hdf5.Run(s.tissue, &hdf5.Config{
		Output:   conf.Output,
		Steps:    conf.Steps,
		Step:     s.Step,
		MaxCells: n,
		Datasets: []*hdf5.Dataset{
			hdf5.Cells(n),
			hdf5.Forces(n, s.Forces),
			hdf5.Polarity(n, conf.NeighbourRadius),
		},
		Attrs:    conf,
		Progress: log.Core().Enabled(zap.InfoLevel),
		Logger:   log,
	})
}

// RunOpenGL runs an interactive polarity sweep in an OpenGL window.
func RunOpenGL(conf *Config, s *simulation, log *zap.Logger) error {
	xmin, ymin, xmax, ymax := bounds(s.tissue)
	return opengl.Run(s.tissue, &opengl.Config{
		MaxCells:   s.tissue.Len(),
		Step:       s.Step,
		Forces:     s.Forces,
		ForceScale: conf.ForceScale,
		Xmin:       xmin,
		Ymin:       ymin,
		Xmax:       xmax,
		Ymax:       ymax,
		Logger:     log,
	})
}
