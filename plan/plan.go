// SPDX-License-Identifier: MIT

// Package plan - the index planner behind compact distance matrices.
//
// Purpose:
//   - Map the ragged, strictly upper-triangular pairs of a block onto one dense
//     output buffer with no padding.
//   - Precompute, for each row of the block, the first evaluated column and the
//     output offset of that row, so a parallel fan-out needs no coordination.
//
// Layout:
//
//	For row i (r = RowBegin+i):
//	  ColumnStart[i]  = max(r+1, ColBegin)
//	  OutputOffset[i] = Σ_{k<i} max(0, ColEnd - ColumnStart[k])
//	and the pair (r, c) lands at OutputOffset[i] + (c - ColumnStart[i]).
//
// Invariants (checked by tests):
//   - len(ColumnStart) == len(OutputOffset) == RowEnd-RowBegin (row span).
//   - OutputOffset[0] == 0; OutputOffset[i+1] == OutputOffset[i] + Span(i).
//   - OutputOffset[last] + Span(last) == Length.
//   - Row ranges are disjoint and contiguous, so concurrent writers never overlap.
//
// Determinism & Performance:
//   - Prepare is single threaded and O(rows); the arrays are read-only afterwards.
package plan

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/budget"
)

// indexBytesPerRow is the footprint of one ColumnStart and one OutputOffset entry.
const indexBytesPerRow = 2 * bits.UintSize / 8

// Plan is the precomputed work partition of one block.
// Plans are not safe for concurrent Release; concurrent reads are safe.
type Plan struct {
	Block        block.Block // normalized block
	N            int         // number of sequences
	ColumnStart  []int       // per row offset i: first evaluated column
	OutputOffset []int       // per row offset i: first output slot
	Length       int         // total pairs (== len of the compact output)

	budget   *budget.Budget
	reserved int64
	released bool
}

// Row is one record of the explicit work partition.
type Row struct {
	Index        int // sequence index of the row (RowBegin + offset)
	ColumnStart  int // first evaluated column
	OutputOffset int // first output slot
	Span         int // number of evaluated columns (may be 0)
}

// Prepare normalizes b in place, validates it and builds the index arrays.
//
// Implementation:
//   - Stage 1: normalize b (zero ends ⇒ n); the caller observes the change.
//   - Stage 2: validate; ErrInvalidBlock / ErrOutOfRange produce no arrays.
//   - Stage 3: count pairs with the configured width (block.Length).
//   - Stage 4: reserve 2×rowSpan ints from the budget; refusal ⇒ ErrAllocation.
//   - Stage 5: fill ColumnStart/OutputOffset with a running sum, clamping each
//     row's span at zero so rows starting past ColEnd add nothing.
//
// Returns:
//   - *Plan: call Release when done (typically deferred).
//
// Errors:
//   - ErrNilBlock, block.ErrInvalidBlock, block.ErrOutOfRange,
//     block.ErrLengthOverflow, ErrAllocation.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func Prepare(b *block.Block, n int, opts ...Option) (*Plan, error) {
	if b == nil {
		return nil, ErrNilBlock
	}
	o := gatherOptions(opts...)

	b.Normalize(n)
	if err := b.Validate(n); err != nil {
		return nil, err
	}
	length, err := block.Length(*b, n, o.wide)
	if err != nil {
		return nil, err
	}

	rows := b.RowSpan()
	if int64(rows) > math.MaxInt64/indexBytesPerRow {
		o.logger.Error("plan: row span too large for index arrays",
			"block", b.String(), "rows", rows)

		return nil, planErrorf(*b, ErrAllocation)
	}
	reserved := int64(rows) * indexBytesPerRow
	if err = o.budget.TryReserve(reserved); err != nil {
		o.logger.Error("plan: cannot reserve index arrays",
			"block", b.String(), "rows", rows, "bytes", reserved, "error", err)

		return nil, planErrorf(*b, fmt.Errorf("%w: %w", ErrAllocation, err))
	}

	p := &Plan{
		Block:        *b,
		N:            n,
		ColumnStart:  make([]int, rows), // sized by row span, never by column span
		OutputOffset: make([]int, rows),
		Length:       length,
		budget:       o.budget,
		reserved:     reserved,
	}

	var running, start, r int
	for i := 0; i < rows; i++ {
		r = b.RowBegin + i
		start = max(r+1, b.ColBegin)
		p.ColumnStart[i] = start
		p.OutputOffset[i] = running
		running += max(0, b.ColEnd-start)
	}

	return p, nil
}

// Release returns the reservation and drops the arrays. Idempotent; safe on nil.
func (p *Plan) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.budget.Release(p.reserved)
	p.ColumnStart, p.OutputOffset = nil, nil
}

// RowCount returns the row span of the plan.
func (p *Plan) RowCount() int { return len(p.ColumnStart) }

// Span returns the number of evaluated columns of row offset i.
func (p *Plan) Span(i int) int {
	return max(0, p.Block.ColEnd-p.ColumnStart[i])
}

// Row returns the work record of row offset i.
func (p *Plan) Row(i int) Row {
	return Row{
		Index:        p.Block.RowBegin + i,
		ColumnStart:  p.ColumnStart[i],
		OutputOffset: p.OutputOffset[i],
		Span:         p.Span(i),
	}
}

// Rows materializes the work partition as a list of records.
func (p *Plan) Rows() []Row {
	out := make([]Row, p.RowCount())
	for i := range out {
		out[i] = p.Row(i)
	}

	return out
}

// Offset returns the output slot of pair (r, c), or false when the pair is
// not evaluated by this plan (outside the block, or c <= r).
func (p *Plan) Offset(r, c int) (int, bool) {
	i := r - p.Block.RowBegin
	if i < 0 || i >= p.RowCount() {
		return 0, false
	}
	if c < p.ColumnStart[i] || c >= p.Block.ColEnd {
		return 0, false
	}

	return p.OutputOffset[i] + c - p.ColumnStart[i], true
}

// planErrorf attaches the block to a sentinel.
func planErrorf(b block.Block, err error) error {
	return fmt.Errorf("Prepare(%s): %w", b, err)
}
