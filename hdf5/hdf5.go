// Package hdf5 records blastocyst simulations in HDF5 files and loads
// cell states back from them.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/hdf5"

	"github.com/PrincetonUniversity/nissen"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data
	// as a pointer to a slice of row-major concrete values.
	Data func(t *nissen.Tissue) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string       // path of output file
	Steps    int          // total number of steps
	Step     func() error // go to next step
	MaxCells int          // maximum number of cells
	Datasets []*Dataset   // list of datasets

	// RunID identifies the run in the config dataset.
	// A random UUID is used when empty.
	RunID string

	// Attrs is a pointer to a struct whose exported scalar fields are
	// stored as attributes of the config dataset. Nested structs are
	// flattened with dotted names.
	Attrs interface{}

	// Progress shows the completion percentage on the standard error.
	Progress bool

	Logger *zap.Logger
}

// Run runs a simulation and saves data to an HDF5 file.
func Run(t *nissen.Tissue, conf *Config) (err error) {
	log := conf.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if conf.RunID == "" {
		conf.RunID = uuid.NewString()
	}
	if t.Len() > conf.MaxCells {
		return fmt.Errorf("hdf5: %d cells exceed the maximum of %d", t.Len(), conf.MaxCells)
	}

	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	log.Info("recording simulation",
		zap.String("output", conf.Output),
		zap.String("run_id", conf.RunID),
		zap.Int("steps", conf.Steps),
		zap.Int("cells", t.Len()),
	)
	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		if conf.Progress {
			fmt.Fprintf(os.Stderr, "\r% 3d%%", 100*k/uint(conf.Steps))
		}

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(t), d.mspace, d.fspace); err != nil {
				return fmt.Errorf("hdf5: writing %s at step %d: %w", d.Name, k, err)
			}
		}

		if err := conf.Step(); err != nil {
			return fmt.Errorf("hdf5: step %d: %w", k, err)
		}
	}
	if conf.Progress {
		fmt.Fprintf(os.Stderr, "\r100%%\n")
	}
	log.Info("simulation recorded", zap.String("output", conf.Output))
	return nil
}

// A Record is what is recorded in the HDF5 file for each cell at each step.
// This structure is mapped to a compound datatype in HDF5 so member names are important.
type Record struct {
	X, Y, Z float64 // node location
	Type    int32   // cell type, -1 for padding
	Age     float64 // unit: hours
	Polar   int8    // 1 if Angle is meaningful
	Angle   float64 // polarity angle
}

// NewRecord returns the record of cell c.
func NewRecord(c nissen.Cell) Record {
	r := Record{
		X:     c.Pos.X,
		Y:     c.Pos.Y,
		Z:     c.Pos.Z,
		Type:  int32(c.Type),
		Age:   c.Age,
		Angle: c.Angle,
	}
	if c.Polar {
		r.Polar = 1
	}
	return r
}

// Cell returns the cell recorded in r.
func (r Record) Cell() nissen.Cell {
	return nissen.Cell{
		Pos:   r3.Vec{X: r.X, Y: r.Y, Z: r.Z},
		Type:  nissen.CellType(r.Type),
		Age:   r.Age,
		Polar: r.Polar != 0,
		Angle: r.Angle,
	}
}

// padding marks unused rows of a dataset.
var padding = Record{Type: -1}

// A Vector is a force recorded in the HDF5 file.
type Vector struct {
	X, Y, Z float64
}

// Cells returns the dataset of cell records. Rows beyond the number of
// cells are padded.
func Cells(maxCells int) *Dataset {
	return &Dataset{
		Name: "cells",
		Val:  Record{},
		Dims: []int{maxCells},
		Data: func(t *nissen.Tissue) interface{} {
			rows := make([]Record, maxCells)
			for i := range rows {
				if i < t.Len() {
					rows[i] = NewRecord(t.Cells[i])
				} else {
					rows[i] = padding
				}
			}
			return &rows
		},
	}
}

// Forces returns the dataset of the net force on each cell.
// forces is called once per step, after the cells were recorded.
func Forces(maxCells int, forces func() []r3.Vec) *Dataset {
	return &Dataset{
		Name: "forces",
		Val:  Vector{},
		Dims: []int{maxCells},
		Data: func(t *nissen.Tissue) interface{} {
			rows := make([]Vector, maxCells)
			for i, f := range forces() {
				rows[i] = Vector{X: f.X, Y: f.Y, Z: f.Z}
			}
			return &rows
		},
	}
}

// Polarity returns the dataset of the polarity of the neighbourhood of each
// cell, as computed by nissen.TrackPolarity.
func Polarity(maxCells int, radius float64) *Dataset {
	return &Dataset{
		Name: "polarity",
		Val:  0.0,
		Dims: []int{maxCells},
		Data: func(t *nissen.Tissue) interface{} {
			rows := make([]float64, maxCells)
			copy(rows, nissen.TrackPolarity(t, radius))
			return &rows
		},
	}
}

// An attribute is a named scalar stored in the config dataset.
type attribute struct {
	name  string
	value interface{}
}

// attributes flattens the exported scalar fields of the struct pointed to by v.
// Booleans are stored as 0 or 1 and integers as int64.
func attributes(prefix string, v reflect.Value) []attribute {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	var attrs []attribute
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := prefix + f.Name
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Struct:
			attrs = append(attrs, attributes(name+".", fv)...)
		case reflect.Bool:
			var b uint8
			if fv.Bool() {
				b = 1
			}
			attrs = append(attrs, attribute{name, b})
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			attrs = append(attrs, attribute{name, fv.Int()})
		case reflect.Float32, reflect.Float64:
			attrs = append(attrs, attribute{name, fv.Float()})
		case reflect.String:
			attrs = append(attrs, attribute{name, fv.String()})
		}
	}
	return attrs
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	attrs := []attribute{
		{"Time", time.Now().String()},
		{"RunID", conf.RunID},
	}
	if conf.Attrs != nil {
		attrs = append(attrs, attributes("", reflect.ValueOf(conf.Attrs))...)
	}
	for _, a := range attrs {
		if err := writeAttribute(dset, scalar, a); err != nil {
			return fmt.Errorf("hdf5: attribute %s: %w", a.name, err)
		}
	}
	return nil
}

// writeAttribute writes a as a scalar attribute of dset.
func writeAttribute(dset *hdf5.Dataset, scalar *hdf5.Dataspace, a attribute) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(a.value)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(a.name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	v := reflect.New(reflect.TypeOf(a.value))
	v.Elem().Set(reflect.ValueOf(a.value))
	return attr.Write(v.Interface(), dtype)
}

// init creates the dataset and its dataspaces.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
