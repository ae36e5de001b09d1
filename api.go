package matcache

import (
	"gonum.org/v1/gonum/mat"

	"github.com/unkn0wn-root/matcache/solver"
)

// Options tune the behavior of a Cache. All fields are optional.
type Options struct {
	Solver solver.Solver // if nil, solver.LU{} is used
	Logger Logger        // if nil, NopLogger is used
	Hooks  Hooks         // if nil, NopHooks is used
}

// New constructs a Cache. Zero-value Options give an LU-backed cache with
// logging and hooks disabled.
func New(opts Options) *Cache {
	return &Cache{
		solver: coalesce[solver.Solver](opts.Solver, solver.LU{}),
		log:    coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

var defaultCache = New(Options{})

// Solve is Cache.Solve on a package-level default Cache (LU solver, no
// logging, no hooks).
func Solve(h *Handle, opts ...solver.Option) (*mat.Dense, error) {
	return defaultCache.Solve(h, opts...)
}
