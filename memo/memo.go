// Package memo memoizes matrix inverses across many matrices, keyed by
// matrix content rather than held in a single Handle. Entries live in a
// pluggable in-process byte Store (see store/ristretto, store/bigcache)
// behind a validated envelope; corrupt or foreign entries are deleted on
// read and recomputed.
//
// An entry can never go stale: a changed matrix is a different key. Eviction
// is the store's business, so a memo lookup is always "correct value or
// recompute", never "maybe stale".
package memo

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/unkn0wn-root/matcache"
	"github.com/unkn0wn-root/matcache/codec"
	"github.com/unkn0wn-root/matcache/internal/keys"
	"github.com/unkn0wn-root/matcache/internal/wire"
	"github.com/unkn0wn-root/matcache/solver"
)

// Store is a minimal byte store with TTLs. Must be safe for concurrent use
// and byte-for-byte transparent: Get must return exactly the []byte
// previously passed to Set for the same key. Implementations must not
// prepend/append metadata, transcode, or otherwise mutate values.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}

type SetCostFunc func(key string, raw []byte) int64

// Options tune a Memo. Namespace and Store are required.
type Options struct {
	// Required
	Namespace string // logical namespace to avoid collisions, e.g. "pricing"
	Store     Store

	Codec          codec.Codec     // nil => codec.Msgpack{}
	Solver         solver.Solver   // nil => solver.LU{}
	Logger         matcache.Logger // nil => NopLogger
	Hooks          matcache.Hooks  // nil => NopHooks
	TTL            time.Duration   // 0 => no expiry (inverses never stale; eviction only)
	ComputeSetCost SetCostFunc     // nil => len(raw)
}

// Memo is the content-addressed inverse cache.
type Memo struct {
	ns      string
	store   Store
	codec   codec.Codec
	solver  solver.Solver
	log     matcache.Logger
	hooks   matcache.Hooks
	ttl     time.Duration
	setCost SetCostFunc
}

func New(opts Options) (*Memo, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("memo: store is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("memo: namespace is required")
	}

	m := &Memo{
		ns:    opts.Namespace,
		store: opts.Store,
		ttl:   opts.TTL,
	}

	// defaults
	if opts.Codec != nil {
		m.codec = opts.Codec
	} else {
		m.codec = codec.Msgpack{}
	}
	if opts.Solver != nil {
		m.solver = opts.Solver
	} else {
		m.solver = solver.LU{}
	}
	if opts.Logger != nil {
		m.log = opts.Logger
	} else {
		m.log = matcache.NopLogger{}
	}
	if opts.Hooks != nil {
		m.hooks = opts.Hooks
	} else {
		m.hooks = matcache.NopHooks{}
	}
	if opts.ComputeSetCost != nil {
		m.setCost = opts.ComputeSetCost
	} else {
		m.setCost = func(_ string, raw []byte) int64 { return int64(len(raw)) }
	}

	return m, nil
}

func (m *Memo) Close(ctx context.Context) error {
	return m.store.Close(ctx)
}

// Invert returns the inverse of a, served from the store when a previous call
// computed it, otherwise computed by the solver and stored. Solver errors
// propagate and leave no entry behind. Solver options are forwarded
// unchanged on the compute path; they do not participate in the key, so
// callers mixing different options for the same matrix must use distinct
// namespaces.
func (m *Memo) Invert(ctx context.Context, a *mat.Dense, opts ...solver.Option) (*mat.Dense, error) {
	r, c := a.Dims()
	fp := keys.Fingerprint(a)
	k := keys.MemoKey(m.ns, r, c, fp)

	if raw, ok, err := m.store.Get(ctx, k); err == nil && ok {
		if inv, ok := m.decode(ctx, k, fp, raw); ok {
			m.log.Debug("returning memoized inverse", matcache.Fields{"key": k})
			m.hooks.Hit(r, c)
			return inv, nil
		}
	} else if err != nil {
		// store trouble degrades to a miss; the solver still answers
		m.log.Warn("memo store get error", matcache.Fields{"key": k, "err": err})
	}

	m.hooks.Miss(r, c)
	inv, err := m.solver.Invert(a, opts...)
	if err != nil {
		m.hooks.InversionFailed(r, c, err)
		return nil, err
	}

	payload, err := m.codec.Encode(inv)
	if err != nil {
		// computed fine; just can't memoize
		m.log.Error("memo encode error", matcache.Fields{"key": k, "err": err})
		return inv, nil
	}
	wireb := wire.Encode(fp, payload)
	ok, err := m.store.Set(ctx, k, wireb, m.setCost(k, wireb), m.ttl)
	if err != nil {
		m.log.Warn("memo store set error", matcache.Fields{"key": k, "err": err})
	} else if !ok {
		m.log.Debug("memo set rejected by store (pressure)", matcache.Fields{"key": k})
		m.hooks.StoreSetRejected(k)
	}
	return inv, nil
}

// Invalidate removes the memoized inverse for a, if any. Rarely needed (a
// changed matrix is a new key); exists for callers that must drop entries
// early, e.g. after feeding the memo a matrix they should not have.
func (m *Memo) Invalidate(ctx context.Context, a *mat.Dense) error {
	r, c := a.Dims()
	k := keys.MemoKey(m.ns, r, c, keys.Fingerprint(a))
	if err := m.store.Del(ctx, k); err != nil {
		return &InvalidateError{Key: k, Err: err}
	}
	return nil
}

// decode validates the envelope and decodes the inverse. Invalid entries are
// deleted (self-heal) and reported as a miss.
func (m *Memo) decode(ctx context.Context, k string, fp uint64, raw []byte) (*mat.Dense, bool) {
	gotFP, payload, err := wire.Decode(raw)
	if err != nil {
		m.selfHeal(ctx, k, "corrupt")
		return nil, false
	}
	if gotFP != fp {
		// foreign write or xxhash collision
		m.selfHeal(ctx, k, "fingerprint_mismatch")
		return nil, false
	}
	inv, err := m.codec.Decode(payload)
	if err != nil {
		m.selfHeal(ctx, k, "value_decode")
		return nil, false
	}
	return inv, true
}

func (m *Memo) selfHeal(ctx context.Context, k, reason string) {
	_ = m.store.Del(ctx, k)
	m.log.Debug("memo self-heal", matcache.Fields{"key": k, "reason": reason})
	m.hooks.SelfHeal(k, reason)
}
