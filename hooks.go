package matcache

// Hooks lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A cached inverse was served without recomputation.
	Hit(rows, cols int)

	// No cached inverse was present; an inversion is about to run.
	Miss(rows, cols int)

	// The solver rejected the matrix (singular or non-square).
	// The cache slot is left absent so a repaired matrix can be retried.
	InversionFailed(rows, cols int, err error)

	// A memo entry was deleted on read.
	// reason ∈ {"corrupt", "fingerprint_mismatch", "value_decode"}
	SelfHeal(storageKey, reason string)

	// The memo store returned ok=false on Set (backpressure/eviction).
	StoreSetRejected(storageKey string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(int, int)                    {}
func (NopHooks) Miss(int, int)                   {}
func (NopHooks) InversionFailed(int, int, error) {}
func (NopHooks) SelfHeal(string, string)         {}
func (NopHooks) StoreSetRejected(string)         {}
