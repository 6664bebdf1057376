package nissen

import (
	"errors"
	"fmt"
)

var (
	// ErrSameCell is returned when a force is requested between a node and itself.
	ErrSameCell = errors.New("nissen: force between a node and itself")

	// ErrNaNAge is returned when either cell has a NaN age.
	ErrNaNAge = errors.New("nissen: cell age is NaN")

	// ErrNoPolarity is returned when a trophectoderm cell needs an orientation
	// and does not carry one.
	ErrNoPolarity = errors.New("nissen: trophectoderm cell has no polarity angle")

	// ErrDimension is returned when polarity geometry is requested in 1D.
	ErrDimension = errors.New("nissen: polarity requires at least 2 dimensions")

	// ErrDegenerate is returned when two interacting points coincide or
	// a force component is not finite.
	ErrDegenerate = errors.New("nissen: degenerate interaction")
)

// A PairError records a failed force evaluation and the pair of nodes involved.
type PairError struct {
	A, B int
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%v (nodes %d and %d)", e.Err, e.A, e.B)
}

func (e *PairError) Unwrap() error { return e.Err }
