// Package sloghooks logs matcache hook events through log/slog. Hits and
// misses can flood on hot handles, so both support sampling.
package sloghooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/matcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ matcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(rows, cols int) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("matcache.hit", "rows", rows, "cols", cols)
}

func (h *Hooks) Miss(rows, cols int) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("matcache.miss", "rows", rows, "cols", cols)
}

func (h *Hooks) InversionFailed(rows, cols int, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("matcache.inversion_failed", "rows", rows, "cols", cols, "err", err)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil {
		return
	}
	h.l.Debug("matcache.self_heal", "key", storageKey, "reason", reason)
}

func (h *Hooks) StoreSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Info("matcache.store_set_rejected", "key", storageKey)
}
