package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/PrincetonUniversity/nissen"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive OpenGL simulation.
	Output string

	Steps int    // number of steps (hdf5 only)
	Force string // possible values: nissen, trophectoderm, notroph, blastocyst

	// Geometry parameters
	Dim          int     // dimension of space (1, 2 or 3)
	DomainType   string  // possible values: infinite, periodic
	DomainSize   float64 // unit: cell diameter
	CutOffLength float64 // unit: cell diameter, 0 to disable

	// Initial layout parameters
	Layout   string  // possible values: honeycomb, cells, data
	Rows     int     // honeycomb only
	Cols     int     // honeycomb only
	Spacing  float64 // honeycomb only, unit: cell diameter
	CellType string  // honeycomb only: TE, EPI, PrE, ICM or mixed
	Polarity string  // possible values: none, radial, uniform, random
	Angle    float64 // uniform polarity angle, unit: rad
	Seed     int64   // random polarity seed
	DataPath string  // data only: HDF5 file with a cells dataset

	// Cells are the initial cells of the cells layout.
	Cells []CellConfig

	// Sweep parameters
	PolaritySpin    float64 // rotation of every polarity between steps, unit: rad
	NeighbourRadius float64 // polarity tracking radius, unit: cell diameter
	ForceScale      float64 // length of a unit force on screen, unit: cell diameter

	// Field parameters (field command only)
	GridXmin, GridXmax float64 // unit: cell diameter
	GridYmin, GridYmax float64 // unit: cell diameter
	GridXcount         int     // number of grid points along X
	GridYcount         int     // number of grid points along Y
	ProbeType          string  // type of the probe cell: TE, EPI, PrE or ICM
	ProbeAngle         float64 // polarity of a trophectoderm probe, unit: rad

	// Parameters are the interaction strengths. S_TE_ICM and S_TE_PrE
	// default to the trophectoderm values for laws that use them.
	Parameters nissen.Parameters
}

// CellConfig describes a single cell of the cells layout.
type CellConfig struct {
	X, Y, Z float64
	Type    nissen.CellType
	Age     float64
	Polar   bool
	Angle   float64 // unit: rad
}

// DefaultConf returns the default parameters.
func DefaultConf() *Config {
	return &Config{
		Output:          "",
		Steps:           100,
		Force:           "blastocyst",
		Dim:             2,
		DomainType:      "infinite",
		DomainSize:      50,
		CutOffLength:    0,
		Layout:          "honeycomb",
		Rows:            8,
		Cols:            8,
		Spacing:         1,
		CellType:        "mixed",
		Polarity:        "radial",
		PolaritySpin:    0.05,
		NeighbourRadius: 1.5,
		ForceScale:      2,
		GridXmin:        -2,
		GridXmax:        10,
		GridYmin:        -2,
		GridYmax:        10,
		GridXcount:      49,
		GridYcount:      49,
		ProbeType:       "EPI",
		Parameters:      nissen.DefaultParameters(),
	}
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := DefaultConf()
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", keys)
	}
	conf.lawDefaults(md.IsDefined)
	return conf, conf.Validate()
}

// lawDefaults replaces the strengths that differ between laws, unless they
// were defined explicitly.
func (c *Config) lawDefaults(defined func(key ...string) bool) {
	if !c.usesTrophectoderm() {
		return
	}
	te := nissen.DefaultTrophectodermParameters()
	if !defined("Parameters", "S_TE_ICM") {
		c.Parameters.TEICM = te.TEICM
	}
	if !defined("Parameters", "S_TE_PrE") {
		c.Parameters.TEPrE = te.TEPrE
	}
}

func (c *Config) usesTrophectoderm() bool {
	return c.Force == "trophectoderm" || c.Force == "blastocyst"
}

// Validate checks the consistency of the configuration.
func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Sprintf(format, args...))
		}
	}
	check(c.Steps > 0, "Steps must be positive, got %d", c.Steps)
	check(oneOf(c.Force, "nissen", "trophectoderm", "notroph", "blastocyst"), "bad force %q", c.Force)
	check(c.Dim >= 1 && c.Dim <= 3, "Dim must be 1, 2 or 3, got %d", c.Dim)
	check(oneOf(c.DomainType, "infinite", "periodic"), "bad domain type %q", c.DomainType)
	check(c.DomainType != "periodic" || c.DomainSize > 0, "DomainSize must be positive, got %g", c.DomainSize)
	check(c.CutOffLength >= 0, "CutOffLength must not be negative, got %g", c.CutOffLength)
	check(oneOf(c.Polarity, "none", "radial", "uniform", "random"), "bad polarity %q", c.Polarity)
	check(c.NeighbourRadius >= 0, "NeighbourRadius must not be negative, got %g", c.NeighbourRadius)
	_, err := nissen.ParseCellType(c.ProbeType)
	check(err == nil, "bad probe type %q", c.ProbeType)
	switch c.Layout {
	case "honeycomb":
		check(c.Rows > 0 && c.Cols > 0, "honeycomb needs positive Rows and Cols, got %dx%d", c.Rows, c.Cols)
		check(c.Spacing > 0, "Spacing must be positive, got %g", c.Spacing)
		if c.CellType != "mixed" {
			_, err := nissen.ParseCellType(c.CellType)
			check(err == nil, "bad cell type %q", c.CellType)
		}
	case "cells":
		check(len(c.Cells) > 0, "cells layout needs at least one cell")
	case "data":
		check(c.DataPath != "", "data layout needs a DataPath")
	default:
		check(false, "bad layout %q", c.Layout)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func oneOf(s string, values ...string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
