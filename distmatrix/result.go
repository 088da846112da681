// SPDX-License-Identifier: MIT

package distmatrix

import (
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Status discriminates the outcome of a computation.
type Status int

const (
	// StatusFailed means nothing in the output buffer may be trusted.
	StatusFailed Status = iota

	// StatusComputed means Count slots were written.
	StatusComputed

	// StatusEmpty means the block was valid but holds no upper-triangular pair.
	StatusEmpty

	// StatusCanceled means the context ended the fan-out; only the rows in
	// Result.Completed hold valid values.
	StatusCanceled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusComputed:
		return "computed"
	case StatusEmpty:
		return "empty"
	case StatusCanceled:
		return "canceled"
	default:
		return "failed"
	}
}

// Result reports what a computation did.
//
// Count is the number of scalars written when Status is StatusComputed, and 0
// otherwise. Completed is never nil: it holds the sequence indexes of rows
// whose output slots are fully written (every row of the block on StatusEmpty,
// none on a planning or capacity failure). On cancellation a caller may resume
// with the remaining rows.
type Result struct {
	Count     int
	Status    Status
	Rows      int // row span of the normalized block
	Workers   int // goroutines used by the fan-out
	Written   int // slots written by completed rows
	Elapsed   time.Duration
	Completed *roaring64.Bitmap
}

// failedResult is the Result of a call rejected before planning.
func failedResult() Result {
	return Result{Status: StatusFailed, Completed: roaring64.New()}
}

// OK reports whether the output buffer is fully valid.
func (r Result) OK() bool {
	return r.Status == StatusComputed || r.Status == StatusEmpty
}

// rowSet is a concurrency-safe set of finished rows.
type rowSet struct {
	mu sync.Mutex
	bm *roaring64.Bitmap
}

func newRowSet() *rowSet {
	return &rowSet{bm: roaring64.New()}
}

func (s *rowSet) add(row int) {
	s.mu.Lock()
	s.bm.Add(uint64(row))
	s.mu.Unlock()
}

// addRange marks rows [lo, hi).
func (s *rowSet) addRange(lo, hi int) {
	if hi <= lo {
		return
	}
	s.mu.Lock()
	s.bm.AddRange(uint64(lo), uint64(hi))
	s.mu.Unlock()
}

// bitmap returns the underlying bitmap; call only after the fan-out joined.
func (s *rowSet) bitmap() *roaring64.Bitmap {
	return s.bm
}
