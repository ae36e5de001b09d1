// Package matcache implements a lazy, invalidating cache for matrix inverses.
// A Handle owns a square source matrix and an optional cached inverse; any
// replacement of the source matrix clears the cached inverse in the same
// critical section, so a present inverse always corresponds to the current
// matrix.
//
// Components:
//   - Handle: single-slot container for a source matrix and its cached inverse.
//   - Cache: decides between "return cached" and "compute, store, return",
//     delegating the actual inversion to a pluggable Solver.
//   - Solver: the linear-algebra boundary (solver package; LU by default).
//   - Hooks / Logger: observability seams for the hit/miss/failure paths.
//
// Solve pattern:
//
//	h := matcache.NewHandle(m)
//	inv, err := cache.Solve(h)  // miss: inverts and populates
//	inv, err  = cache.Solve(h)  // hit: served from the handle
//	h.SetMatrix(m2)             // invalidates; next Solve recomputes
//
// For memoizing inverses across many matrices (keyed by matrix content rather
// than held in a handle), see the memo subpackage.
package matcache
