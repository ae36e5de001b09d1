package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports a non-square (or empty) input matrix.
	ErrShapeMismatch = errors.New("solver: matrix is not square")
	// ErrNotInvertible reports a singular or too-ill-conditioned matrix.
	ErrNotInvertible = errors.New("solver: matrix is not invertible")
)

// Error carries the failure kind plus the input's shape and, when known, its
// condition estimate. Matches ErrShapeMismatch / ErrNotInvertible via
// errors.Is.
type Error struct {
	Kind       error   // ErrShapeMismatch or ErrNotInvertible
	Rows, Cols int     // input dimensions
	Cond       float64 // condition estimate; 0 when unknown
	Err        error   // underlying cause, when any
}

func (e *Error) Error() string {
	switch {
	case e.Cond != 0:
		return fmt.Sprintf("invert %dx%d: %v (cond=%.3g)", e.Rows, e.Cols, e.Kind, e.Cond)
	case e.Err != nil:
		return fmt.Sprintf("invert %dx%d: %v: %v", e.Rows, e.Cols, e.Kind, e.Err)
	default:
		return fmt.Sprintf("invert %dx%d: %v", e.Rows, e.Cols, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
