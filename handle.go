package matcache

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Handle owns a source matrix and, when present, its cached inverse.
// Replacing the matrix clears the cached inverse in the same critical section,
// so a present inverse always belongs to the current matrix. The zero value is
// ready to use and holds an empty matrix with no cached inverse.
//
// A Handle is safe for concurrent use. All accessors copy: callers can mutate
// what they pass in or get back without desynchronizing the cache.
type Handle struct {
	mu  sync.RWMutex
	m   *mat.Dense
	inv *mat.Dense // nil => no cached inverse
}

// NewHandle returns a Handle owning a copy of m. A nil m yields an empty
// matrix; the cached inverse starts absent.
func NewHandle(m *mat.Dense) *Handle {
	return &Handle{m: denseCopy(m)}
}

// SetMatrix replaces the source matrix with a copy of m and unconditionally
// clears the cached inverse, regardless of prior state. m is not validated;
// shape checks happen at inversion time.
func (h *Handle) SetMatrix(m *mat.Dense) {
	h.mu.Lock()
	h.m = denseCopy(m)
	h.inv = nil
	h.mu.Unlock()
}

// Matrix returns a copy of the current source matrix. Never fails; a
// default-constructed Handle returns an empty matrix.
func (h *Handle) Matrix() *mat.Dense {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return denseCopy(h.m)
}

// SetCachedInverse stores a copy of inv as the cached inverse, overwriting any
// prior cached value. No check is made that inv actually inverts the current
// matrix: the caller must only store a value it just computed from the current
// source matrix. Storing anything else silently violates the cache invariant.
func (h *Handle) SetCachedInverse(inv *mat.Dense) {
	h.mu.Lock()
	h.inv = denseCopy(inv)
	h.mu.Unlock()
}

// CachedInverse returns a copy of the cached inverse and true when present,
// or (nil, false) when absent. No side effects, no computation.
func (h *Handle) CachedInverse() (*mat.Dense, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.inv == nil {
		return nil, false
	}
	return denseCopy(h.inv), true
}

// denseCopy deep-copies a. nil and empty matrices map to an empty Dense,
// which keeps gonum's panic-on-empty out of the accessor paths.
func denseCopy(a *mat.Dense) *mat.Dense {
	if a == nil {
		return &mat.Dense{}
	}
	if r, c := a.Dims(); r == 0 || c == 0 {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(a)
}
