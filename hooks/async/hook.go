// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/matcache"
//	asynchook "github.com/unkn0wn-root/matcache/hooks/async"
//	"github.com/unkn0wn-root/matcache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    HitEvery: 100, // sample logs: ~every 100th hit
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache := matcache.New(matcache.Options{
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/matcache"
)

type Hooks struct {
	inner matcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ matcache.Hooks = (*Hooks)(nil)

func New(inner matcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Events enqueued after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

// enqueue never blocks the caller; events are dropped when the queue is full
// or closed.
func (h *Hooks) enqueue(f func()) {
	defer func() { _ = recover() }() // send on closed channel
	select {
	case h.q <- f:
	default:
	}
}

func (h *Hooks) Hit(rows, cols int)  { h.enqueue(func() { h.inner.Hit(rows, cols) }) }
func (h *Hooks) Miss(rows, cols int) { h.enqueue(func() { h.inner.Miss(rows, cols) }) }
func (h *Hooks) InversionFailed(rows, cols int, err error) {
	h.enqueue(func() { h.inner.InversionFailed(rows, cols, err) })
}
func (h *Hooks) SelfHeal(storageKey, reason string) {
	h.enqueue(func() { h.inner.SelfHeal(storageKey, reason) })
}
func (h *Hooks) StoreSetRejected(storageKey string) {
	h.enqueue(func() { h.inner.StoreSetRejected(storageKey) })
}
