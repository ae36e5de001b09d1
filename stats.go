package matcache

import "sync/atomic"

// CounterHooks counts cache events with atomic counters. Useful as a cheap
// metrics source and for asserting hit/miss paths in tests without parsing
// log output.
type CounterHooks struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	failures  atomic.Uint64
	selfHeals atomic.Uint64
	rejected  atomic.Uint64
}

var _ Hooks = (*CounterHooks)(nil)

func (c *CounterHooks) Hit(int, int)                    { c.hits.Add(1) }
func (c *CounterHooks) Miss(int, int)                   { c.misses.Add(1) }
func (c *CounterHooks) InversionFailed(int, int, error) { c.failures.Add(1) }
func (c *CounterHooks) SelfHeal(string, string)         { c.selfHeals.Add(1) }
func (c *CounterHooks) StoreSetRejected(string)         { c.rejected.Add(1) }

func (c *CounterHooks) Hits() uint64      { return c.hits.Load() }
func (c *CounterHooks) Misses() uint64    { return c.misses.Load() }
func (c *CounterHooks) Failures() uint64  { return c.failures.Load() }
func (c *CounterHooks) SelfHeals() uint64 { return c.selfHeals.Load() }
func (c *CounterHooks) Rejected() uint64  { return c.rejected.Load() }
