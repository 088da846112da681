// SPDX-License-Identifier: MIT

// Package schedule - batch dispensers and a parallel fan-out over [0, n).
//
// Purpose:
//   - Spread strongly non-uniform work (the rows of a triangular block, where
//     early rows are longest) across workers without per-item synchronization.
//
// Policies:
//   - Guided: each claim takes ceil(remaining / (2·workers)) items, never less
//     than minBatch. Early claims are large and later ones shrink with the
//     remaining work, so workers finish close together.
//   - Static: each claim takes exactly minBatch items in claim order; with
//     minBatch == 1 neighbouring rows (of nearly equal cost) interleave across workers.
//
// Both dispensers are lock-free (one atomic word) and safe for concurrent Next.
package schedule

import (
	"fmt"
	"sync/atomic"
)

// Policy selects how a Dispenser sizes its batches.
type Policy int

const (
	// Guided hands out shrinking batches proportional to the remaining work.
	Guided Policy = iota

	// Static hands out fixed-size batches.
	Static
)

// String returns the policy name for logs.
func (p Policy) String() string {
	switch p {
	case Guided:
		return "guided"
	case Static:
		return "static"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Dispenser hands out disjoint half-open batches [lo, hi) covering [0, n) exactly once.
type Dispenser interface {
	// Next claims the next batch; ok is false once [0, n) is exhausted.
	Next() (lo, hi int, ok bool)
}

// NewDispenser returns a dispenser over [0, n) for the given policy.
// workers and minBatch are clamped to [1, max(n, 1)]; unknown policies fall back to Guided.
func NewDispenser(p Policy, n, workers, minBatch int) Dispenser {
	n = max(n, 0)
	workers = min(max(workers, 1), max(n, 1))
	minBatch = min(max(minBatch, 1), max(n, 1))
	if p == Static {
		return &static{n: int64(n), chunk: int64(minBatch)}
	}

	return &guided{n: int64(n), divisor: 2 * int64(workers), minBatch: int64(minBatch)}
}

// guided implements the shrinking-batch policy with a CAS loop.
type guided struct {
	n        int64
	divisor  int64
	minBatch int64
	next     atomic.Int64
}

func (g *guided) Next() (int, int, bool) {
	for {
		cur := g.next.Load()
		rem := g.n - cur
		if rem <= 0 {
			return 0, 0, false
		}
		size := (rem + g.divisor - 1) / g.divisor
		size = min(max(size, g.minBatch), rem)
		if g.next.CompareAndSwap(cur, cur+size) {
			return int(cur), int(cur + size), true
		}
	}
}

// static implements fixed-size batches with a CAS loop; the cursor never moves past n.
type static struct {
	n     int64
	chunk int64
	next  atomic.Int64
}

func (s *static) Next() (int, int, bool) {
	for {
		lo := s.next.Load()
		if lo >= s.n {
			return 0, 0, false
		}
		hi := lo + min(s.chunk, s.n-lo)
		if s.next.CompareAndSwap(lo, hi) {
			return int(lo), int(hi), true
		}
	}
}
