package solver

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// LU inverts via LU decomposition with partial pivoting (gonum). The zero
// value is ready to use.
type LU struct{}

var _ Solver = LU{}

func (LU) Invert(a mat.Matrix, opts ...Option) (*mat.Dense, error) {
	cfg := applyOptions(opts)

	r, c := a.Dims()
	if r != c || r == 0 {
		return nil, &Error{Kind: ErrShapeMismatch, Rows: r, Cols: c}
	}

	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		e := &Error{Kind: ErrNotInvertible, Rows: r, Cols: c, Err: err}
		var cond mat.Condition
		if errors.As(err, &cond) {
			e.Cond = float64(cond)
		}
		return nil, e
	}

	if cfg.maxCond > 0 {
		if cond := mat.Cond(a, 1); cond > cfg.maxCond {
			return nil, &Error{Kind: ErrNotInvertible, Rows: r, Cols: c, Cond: cond}
		}
	}
	return &inv, nil
}
