package matcache

import (
	"gonum.org/v1/gonum/mat"

	"github.com/unkn0wn-root/matcache/solver"
)

// Cache resolves a Handle's inverse: served from the handle when cached,
// otherwise computed by the Solver and stored back. Stateless apart from its
// collaborators; one Cache can serve any number of handles.
type Cache struct {
	solver solver.Solver
	log    Logger
	hooks  Hooks
}

// Solve returns the inverse of h's current matrix. On a hit the cached
// inverse is returned as-is; on a miss the solver runs on the current matrix,
// the result populates the handle, and the same value is returned. Solver
// options are forwarded unchanged.
//
// Solver errors (singular or non-square input) propagate to the caller and
// leave the cache slot absent, so a corrected matrix set via SetMatrix can be
// retried.
//
// The whole check-else-compute-store sequence holds the handle's lock: two
// concurrent misses cannot both invert, and a concurrent SetMatrix cannot
// slip between the cache read and the cache write.
func (c *Cache) Solve(h *Handle, opts ...solver.Option) (*mat.Dense, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.m == nil { // zero-value Handle
		h.m = &mat.Dense{}
	}
	r, cols := h.m.Dims()
	if h.inv != nil {
		c.log.Debug("returning cached inverse", Fields{"rows": r, "cols": cols})
		c.hooks.Hit(r, cols)
		return denseCopy(h.inv), nil
	}

	c.hooks.Miss(r, cols)
	inv, err := c.solver.Invert(h.m, opts...)
	if err != nil {
		// leave the slot absent; inversion is deterministic, so only a
		// changed matrix can make a retry succeed
		c.log.Warn("inversion failed", Fields{"rows": r, "cols": cols, "err": err})
		c.hooks.InversionFailed(r, cols, err)
		return nil, err
	}

	h.inv = inv
	c.log.Debug("computed and cached inverse", Fields{"rows": r, "cols": cols})
	return denseCopy(inv), nil
}
