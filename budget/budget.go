// SPDX-License-Identifier: MIT

// Package budget caps the memory that planning may reserve for index arrays.
//
// A nil *Budget is valid and unlimited, so callers that do not care about
// memory never construct one.
package budget

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrExhausted is returned when a reservation does not fit the remaining budget.
var ErrExhausted = errors.New("budget: memory budget exhausted")

// Budget tracks reserved bytes against an optional hard limit.
type Budget struct {
	limit int64
	sem   *semaphore.Weighted // nil if unlimited
	used  atomic.Int64
}

// New creates a Budget of limitBytes. A limit <= 0 only tracks usage.
func New(limitBytes int64) *Budget {
	b := &Budget{limit: limitBytes}
	if limitBytes > 0 {
		b.sem = semaphore.NewWeighted(limitBytes)
	}

	return b
}

// TryReserve reserves n bytes without blocking.
// It returns ErrExhausted when the reservation does not fit.
func (b *Budget) TryReserve(n int64) error {
	if b == nil || n <= 0 {
		return nil
	}
	if b.sem != nil && !b.sem.TryAcquire(n) {
		return ErrExhausted
	}
	b.used.Add(n)

	return nil
}

// Release returns n previously reserved bytes.
func (b *Budget) Release(n int64) {
	if b == nil || n <= 0 {
		return
	}
	b.used.Add(-n)
	if b.sem != nil {
		b.sem.Release(n)
	}
}

// Used returns the bytes currently reserved.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}

	return b.used.Load()
}

// Limit returns the hard limit, or 0 when unlimited.
func (b *Budget) Limit() int64 {
	if b == nil || b.limit < 0 {
		return 0
	}

	return b.limit
}
