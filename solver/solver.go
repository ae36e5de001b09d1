// Package solver defines the linear-algebra boundary consumed by matcache.
//
// Implementations MUST treat the input matrix as read-only and return a
// freshly allocated result: the cache hands its owned matrix to Invert, and a
// solver that mutates it or aliases it in the result would silently
// desynchronize cached state from source state.
package solver

import "gonum.org/v1/gonum/mat"

// Solver inverts square matrices. Safe for concurrent use.
type Solver interface {
	// Invert returns the inverse of a. It fails with ErrShapeMismatch when a
	// is not square (or empty) and with ErrNotInvertible when a is singular
	// or its condition number exceeds the configured limit.
	Invert(a mat.Matrix, opts ...Option) (*mat.Dense, error)
}

// Option tunes a single Invert call.
type Option func(*config)

type config struct {
	maxCond float64
}

// WithMaxCond rejects matrices whose 1-norm condition number exceeds c,
// even when the decomposition itself succeeds. Zero or negative c leaves
// the solver's default tolerance in effect.
func WithMaxCond(c float64) Option {
	return func(cfg *config) { cfg.maxCond = c }
}

func applyOptions(opts []Option) config {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
