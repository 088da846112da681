// SPDX-License-Identifier: MIT

package block

import (
	"math"
	"math/bits"
)

// Counting limits for Length.
const (
	// NarrowLimit is the largest pair count accepted without WideCount.
	NarrowLimit = math.MaxInt32

	// WideLimit is the largest pair count accepted with WideCount.
	WideLimit = math.MaxInt
)

// Length returns the number of pairs (r, c) with r ∈ [RowBegin,RowEnd),
// c ∈ [ColBegin,ColEnd) and c > r, i.e.
//
//	Σ_{r=rb}^{re-1} max(0, ce - max(cb, r+1)).
//
// Implementation:
//   - Stage 1: normalize a copy of b (the caller's value is untouched) and validate it.
//   - Stage 2: rows r < cb all start at cb and contribute ce-cb each.
//   - Stage 3: rows cb ≤ r < ce-1 start at r+1 and contribute the arithmetic
//     series ce-1-r, summed in closed form.
//   - Stage 4: every product and sum is carried in 128 bits (math/bits), then
//     checked against NarrowLimit or WideLimit.
//
// Returns:
//   - count, or 0 with ErrInvalidBlock / ErrOutOfRange / ErrLengthOverflow.
//
// Complexity:
//   - Time O(1), Space O(1).
func Length(b Block, n int, wide bool) (int, error) {
	b.Normalize(n)
	if err := b.Validate(n); err != nil {
		return 0, err
	}
	var (
		rb, re = uint64(b.RowBegin), uint64(b.RowEnd)
		cb, ce = uint64(b.ColBegin), uint64(b.ColEnd)
		total  uint64
		carry  uint64
	)

	// Rows whose effective column start is clamped to cb.
	if hi := min(re, cb); hi > rb {
		part, ok := mul(hi-rb, ce-cb)
		if !ok {
			return 0, blockErrorf("Length", b, ErrLengthOverflow)
		}
		total = part
	}

	// Rows whose effective column start is r+1 and still below ce.
	lo, hi := max(rb, cb), min(re, ce-1)
	if hi > lo {
		k := hi - lo
		first, last := ce-1-lo, ce-hi
		h, l := bits.Mul64(k, first+last)
		if h >= 2 {
			return 0, blockErrorf("Length", b, ErrLengthOverflow)
		}
		series, _ := bits.Div64(h, l, 2)
		total, carry = bits.Add64(total, series, 0)
		if carry != 0 {
			return 0, blockErrorf("Length", b, ErrLengthOverflow)
		}
	}

	limit := uint64(NarrowLimit)
	if wide {
		limit = uint64(WideLimit)
	}
	if total > limit {
		return 0, blockErrorf("Length", b, ErrLengthOverflow)
	}

	return int(total), nil
}

// mul returns x*y and whether it fits in 64 bits.
func mul(x, y uint64) (uint64, bool) {
	h, l := bits.Mul64(x, y)

	return l, h == 0
}
