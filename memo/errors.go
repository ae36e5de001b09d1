package memo

import "fmt"

// InvalidateError reports a failed entry deletion. The entry may still be
// served until the store expires or evicts it.
type InvalidateError struct {
	Key string
	Err error
}

func (e *InvalidateError) Error() string {
	return fmt.Sprintf("invalidate %q: delete failed: %v", e.Key, e.Err)
}

func (e *InvalidateError) Unwrap() error { return e.Err }
