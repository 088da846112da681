// SPDX-License-Identifier: MIT

package schedule

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchFunc processes the half-open batch [lo, hi).
// It should return ctx.Err() promptly once ctx is done.
type BatchFunc func(ctx context.Context, lo, hi int) error

// Config tunes Run.
type Config struct {
	Workers  int    // <= 0 ⇒ runtime.GOMAXPROCS(0)
	Policy   Policy // Guided by default
	MinBatch int    // <= 0 ⇒ 1
}

// EffectiveWorkers returns the number of goroutines Run starts for n items.
func (c Config) EffectiveWorkers(n int) int {
	w := c.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}

	return max(1, min(w, n))
}

// Run calls fn over disjoint batches covering [0, n) using cfg.Workers goroutines.
//
// Implementation:
//   - Stage 1: build a Dispenser for cfg.Policy.
//   - Stage 2: with one worker, drain the dispenser on the caller's goroutine.
//   - Stage 3: otherwise start workers under errgroup.WithContext; each pulls
//     batches until the dispenser is empty or the group context is done.
//
// Cancellation is cooperative: ctx is checked before every batch, so a batch in
// flight completes (or returns early if fn honours ctx). The first error
// cancels the remaining workers and is returned.
func Run(ctx context.Context, n int, cfg Config, fn BatchFunc) error {
	if n <= 0 {
		return nil
	}
	workers := cfg.EffectiveWorkers(n)
	d := NewDispenser(cfg.Policy, n, workers, cfg.MinBatch)

	if workers == 1 {
		return drain(ctx, d, fn)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return drain(gctx, d, fn)
		})
	}

	return g.Wait()
}

// drain pulls batches from d until it is exhausted, ctx is done or fn fails.
func drain(ctx context.Context, d Dispenser, fn BatchFunc) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		lo, hi, ok := d.Next()
		if !ok {
			return nil
		}
		if err := fn(ctx, lo, hi); err != nil {
			return err
		}
	}
}
