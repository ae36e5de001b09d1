package matcache

import (
	"errors"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/unkn0wn-root/matcache/solver"
)

// countingSolver wraps an inner solver and counts Invert calls, so tests can
// tell a recomputation from a cache hit without parsing logs.
type countingSolver struct {
	mu    sync.Mutex
	calls int
	inner solver.Solver
	fail  error // when set, Invert fails without touching inner
}

var _ solver.Solver = (*countingSolver)(nil)

func (s *countingSolver) Invert(a mat.Matrix, opts ...solver.Option) (*mat.Dense, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	return s.inner.Invert(a, opts...)
}

func (s *countingSolver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// invertible fixture: rows (1,3),(2,1); column-major data [1,3,2,1].
func fixture() *mat.Dense { return mat.NewDense(2, 2, []float64{1, 3, 2, 1}) }

func fixtureInverse() *mat.Dense {
	return mat.NewDense(2, 2, []float64{-0.2, 0.6, 0.4, -0.2})
}

func singular() *mat.Dense { return mat.NewDense(2, 2, []float64{1, 2, 2, 4}) }

// ==============================
// Solve: miss/hit paths
// ==============================

// TestSolveMissThenHit verifies the first call computes and the second is
// served from the handle, observed through hooks and the solver call count.
func TestSolveMissThenHit(t *testing.T) {
	cs := &countingSolver{inner: solver.LU{}}
	hooks := &CounterHooks{}
	cc := New(Options{Solver: cs, Hooks: hooks})
	h := NewHandle(fixture())

	inv, err := cc.Solve(h)
	if err != nil {
		t.Fatalf("Solve (miss): %v", err)
	}
	if !mat.EqualApprox(inv, fixtureInverse(), 1e-9) {
		t.Fatalf("Solve returned wrong inverse:\n%v", mat.Formatted(inv))
	}
	if hooks.Hits() != 0 || hooks.Misses() != 1 {
		t.Fatalf("after miss: hits=%d misses=%d", hooks.Hits(), hooks.Misses())
	}

	inv2, err := cc.Solve(h)
	if err != nil {
		t.Fatalf("Solve (hit): %v", err)
	}
	if !mat.Equal(inv, inv2) {
		t.Fatalf("hit returned a different value")
	}
	if hooks.Hits() != 1 || hooks.Misses() != 1 {
		t.Fatalf("after hit: hits=%d misses=%d", hooks.Hits(), hooks.Misses())
	}
	if cs.count() != 1 {
		t.Fatalf("solver ran %d times, want 1", cs.count())
	}
}

// TestSolveIdempotent: N calls with no intervening SetMatrix return equal
// values and run the solver exactly once.
func TestSolveIdempotent(t *testing.T) {
	cs := &countingSolver{inner: solver.LU{}}
	cc := New(Options{Solver: cs})
	h := NewHandle(fixture())

	first, err := cc.Solve(h)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i := 0; i < 4; i++ {
		got, err := cc.Solve(h)
		if err != nil {
			t.Fatalf("Solve #%d: %v", i+2, err)
		}
		if !mat.Equal(first, got) {
			t.Fatalf("Solve #%d returned a different value", i+2)
		}
	}
	if cs.count() != 1 {
		t.Fatalf("solver ran %d times, want 1", cs.count())
	}
}

// TestSetMatrixInvalidates: replacing the matrix clears the cached inverse
// and the next Solve recomputes against the new matrix.
func TestSetMatrixInvalidates(t *testing.T) {
	cs := &countingSolver{inner: solver.LU{}}
	cc := New(Options{Solver: cs})
	h := NewHandle(fixture())

	if _, err := cc.Solve(h); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if _, ok := h.CachedInverse(); !ok {
		t.Fatalf("cache should be populated after Solve")
	}

	m2 := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	h.SetMatrix(m2)
	if _, ok := h.CachedInverse(); ok {
		t.Fatalf("SetMatrix must clear the cached inverse")
	}

	inv, err := cc.Solve(h)
	if err != nil {
		t.Fatalf("Solve after SetMatrix: %v", err)
	}
	want := mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5})
	if !mat.EqualApprox(inv, want, 1e-9) {
		t.Fatalf("inverse of replaced matrix wrong:\n%v", mat.Formatted(inv))
	}
	if cs.count() != 2 {
		t.Fatalf("solver ran %d times, want 2", cs.count())
	}
}

// ==============================
// Solve: failure paths
// ==============================

// TestSolveSingularDoesNotPoison: a failed inversion propagates and leaves
// the cache absent, so a repaired matrix can be retried.
func TestSolveSingularDoesNotPoison(t *testing.T) {
	hooks := &CounterHooks{}
	cc := New(Options{Hooks: hooks})
	h := NewHandle(singular())

	if _, err := cc.Solve(h); !errors.Is(err, solver.ErrNotInvertible) {
		t.Fatalf("Solve singular: err=%v, want ErrNotInvertible", err)
	}
	if _, ok := h.CachedInverse(); ok {
		t.Fatalf("failed inversion must not populate the cache")
	}
	if hooks.Failures() != 1 {
		t.Fatalf("failures=%d, want 1", hooks.Failures())
	}

	// repair and retry
	h.SetMatrix(fixture())
	inv, err := cc.Solve(h)
	if err != nil {
		t.Fatalf("Solve after repair: %v", err)
	}
	if !mat.EqualApprox(inv, fixtureInverse(), 1e-9) {
		t.Fatalf("inverse after repair wrong:\n%v", mat.Formatted(inv))
	}
}

func TestSolveNonSquare(t *testing.T) {
	cc := New(Options{})
	h := NewHandle(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	if _, err := cc.Solve(h); !errors.Is(err, solver.ErrShapeMismatch) {
		t.Fatalf("Solve non-square: err=%v, want ErrShapeMismatch", err)
	}
}

func TestSolveEmptyHandle(t *testing.T) {
	for name, h := range map[string]*Handle{
		"zero value": {},
		"nil matrix": NewHandle(nil),
	} {
		if _, err := Solve(h); !errors.Is(err, solver.ErrShapeMismatch) {
			t.Fatalf("%s: Solve err=%v, want ErrShapeMismatch", name, err)
		}
		if _, ok := h.CachedInverse(); ok {
			t.Fatalf("%s: empty handle must not cache", name)
		}
	}
}

// ==============================
// Concurrency
// ==============================

// TestConcurrentSolve: concurrent misses on one handle perform exactly one
// inversion; no caller observes a torn or stale value.
func TestConcurrentSolve(t *testing.T) {
	cs := &countingSolver{inner: solver.LU{}}
	cc := New(Options{Solver: cs})
	h := NewHandle(fixture())

	const workers = 16
	results := make([]*mat.Dense, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cc.Solve(h)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !mat.Equal(results[0], results[i]) {
			t.Fatalf("worker %d saw a different inverse", i)
		}
	}
	if cs.count() != 1 {
		t.Fatalf("solver ran %d times, want 1", cs.count())
	}
}

// ==============================
// Defaults / package-level API
// ==============================

func TestSolvePackageDefault(t *testing.T) {
	h := NewHandle(fixture())
	inv, err := Solve(h)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !mat.EqualApprox(inv, fixtureInverse(), 1e-9) {
		t.Fatalf("package-level Solve wrong inverse:\n%v", mat.Formatted(inv))
	}
}

func TestNewDefaults(t *testing.T) {
	cc := New(Options{})
	if cc.solver == nil || cc.log == nil || cc.hooks == nil {
		t.Fatalf("New must default all collaborators")
	}
	if _, ok := cc.solver.(solver.LU); !ok {
		t.Fatalf("default solver should be solver.LU, got %T", cc.solver)
	}
}
