// SPDX-License-Identifier: MIT

package distmatrix

import (
	"fmt"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/matrix"
	"github.com/katalvlaran/dtwmatrix/plan"
)

// Square expands the compact output of block b into a symmetric n×n matrix.
//
// The diagonal is 0, every evaluated pair (r, c) is stored at both (r, c) and
// (c, r), and all other cells hold fill (typically math.Inf(1)). b is taken by
// value and normalized on a copy.
//
// Errors:
//   - matrix.ErrInvalidDimensions when n <= 0, block errors from planning,
//     ErrOutputTooSmall when out is shorter than the block length.
//
// Complexity:
//   - Time O(n^2), Space O(n^2).
func Square(out []float64, b block.Block, n int, fill float64) (*matrix.Dense, error) {
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Square(n=%d): %w", n, err)
	}
	p, err := plan.Prepare(&b, n, plan.WithWideCount(true))
	if err != nil {
		return nil, err
	}
	defer p.Release()
	if len(out) < p.Length {
		return nil, fmt.Errorf("Square(%s): need %d slots, have %d: %w", p.Block, p.Length, len(out), ErrOutputTooSmall)
	}

	m.Fill(fill)
	for i := 0; i < n; i++ {
		_ = m.Set(i, i, 0)
	}
	for _, row := range p.Rows() {
		for k := 0; k < row.Span; k++ {
			v := out[row.OutputOffset+k]
			c := row.ColumnStart + k
			_ = m.Set(row.Index, c, v)
			_ = m.Set(c, row.Index, v)
		}
	}

	return m, nil
}
