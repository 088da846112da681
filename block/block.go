// SPDX-License-Identifier: MIT

// Package block - half-open rectangular regions of the N×N comparison space.
//
// Purpose:
//   - Describe which (row, column) pairs of a distance matrix a call evaluates.
//   - Normalize the "zero end means N" convention in exactly one place.
//   - Count the strictly upper-triangular pairs of a region without overflow.
//
// Determinism & Performance:
//   - All operations are O(1), allocation-free and pure (Normalize mutates only its receiver).
package block

import "fmt"

// Block is the region [RowBegin,RowEnd) × [ColBegin,ColEnd) over N sequences.
//
// A zero RowEnd or ColEnd means "N" and is filled in by Normalize. Zero is
// overloaded as "unset": a caller cannot express "no rows" with RowEnd == 0.
type Block struct {
	RowBegin int // first row (inclusive)
	RowEnd   int // last row (exclusive); 0 ⇒ N
	ColBegin int // first column (inclusive)
	ColEnd   int // last column (exclusive); 0 ⇒ N
}

// Full returns the block covering every pair of n sequences.
func Full(n int) Block {
	return Block{RowBegin: 0, RowEnd: n, ColBegin: 0, ColEnd: n}
}

// Normalize expands zero ends to n in place.
// The mutation is visible to the caller; later stages rely on the normalized value.
func (b *Block) Normalize(n int) {
	if b.RowEnd == 0 {
		b.RowEnd = n
	}
	if b.ColEnd == 0 {
		b.ColEnd = n
	}
}

// Validate checks a normalized block against n sequences.
//
// Implementation:
//   - Stage 1: reject negative n or negative bounds (ErrOutOfRange).
//   - Stage 2: reject empty spans (ErrInvalidBlock).
//   - Stage 3: reject ends beyond n (ErrOutOfRange).
//
// Returns:
//   - nil, or a wrapped sentinel; match with errors.Is.
//
// Complexity:
//   - Time O(1), Space O(1).
func (b Block) Validate(n int) error {
	if n < 0 || b.RowBegin < 0 || b.RowEnd < 0 || b.ColBegin < 0 || b.ColEnd < 0 {
		return blockErrorf("Validate", b, ErrOutOfRange)
	}
	if b.RowEnd <= b.RowBegin || b.ColEnd <= b.ColBegin {
		return blockErrorf("Validate", b, ErrInvalidBlock)
	}
	if b.RowEnd > n || b.ColEnd > n {
		return blockErrorf("Validate", b, ErrOutOfRange)
	}

	return nil
}

// RowSpan returns RowEnd-RowBegin (meaningful after Normalize).
func (b Block) RowSpan() int { return b.RowEnd - b.RowBegin }

// ColSpan returns ColEnd-ColBegin (meaningful after Normalize).
func (b Block) ColSpan() int { return b.ColEnd - b.ColBegin }

// String renders the block as [rb,re)x[cb,ce).
func (b Block) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", b.RowBegin, b.RowEnd, b.ColBegin, b.ColEnd)
}

// blockErrorf attaches the method tag and the offending block to a sentinel.
func blockErrorf(method string, b Block, err error) error {
	return fmt.Errorf("Block.%s(%s): %w", method, b, err)
}
