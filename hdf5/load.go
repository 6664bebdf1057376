package hdf5

import (
	"fmt"

	"gonum.org/v1/hdf5"

	"github.com/PrincetonUniversity/nissen"
)

// A Loader sequentially loads cell states from an HDF5 dataset of records.
type Loader struct {
	i uint // index of current slice
	n uint // total number of slices

	data []Record // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	if len(dims) != 2 {
		err = fmt.Errorf("loader: expected 2 dimensions, got %d", len(dims))
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	l.n = dims[0]

	l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.Close()
		return nil, err
	}

	l.data = make([]Record, dims[1])

	return l, nil
}

// Len returns the number of steps stored in the dataset.
func (l *Loader) Len() int { return int(l.n) }

// Load loads the next step available
// and cycles when everything has already been loaded.
func (l *Loader) Load(cells *[]nissen.Cell) error {
	start := []uint{l.i, 0}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	l.i = (l.i + 1) % l.n

	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return err
	}

	// resize cells (data valid until first padding row)
	*cells = (*cells)[:0]
	for _, r := range l.data {
		if r.Type < 0 {
			break
		}
		*cells = append(*cells, r.Cell())
	}

	return nil
}

// Close releases the dataset and closes the file.
func (l *Loader) Close() (err error) {
	checkClose(&err, l.mspace)
	checkClose(&err, l.fspace)
	checkClose(&err, l.dset)
	checkClose(&err, l.file)
	return err
}
