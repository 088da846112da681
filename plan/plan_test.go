// SPDX-License-Identifier: MIT

package plan_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/budget"
	"github.com/katalvlaran/dtwmatrix/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireContiguous asserts the offset invariants of a plan.
func requireContiguous(t *testing.T, p *plan.Plan) {
	t.Helper()
	rows := p.RowCount()
	require.Len(t, p.OutputOffset, rows)
	if rows == 0 {
		return
	}
	require.Zero(t, p.OutputOffset[0], "first row starts at slot 0")
	for i := 0; i+1 < rows; i++ {
		require.Equal(t, p.OutputOffset[i]+p.Span(i), p.OutputOffset[i+1], "row %d", i)
	}
	require.Equal(t, p.Length, p.OutputOffset[rows-1]+p.Span(rows-1), "last row closes the buffer")
}

// TestPrepare_SubBlock checks the documented rows 1..2 example.
func TestPrepare_SubBlock(t *testing.T) {
	b := block.Block{RowBegin: 1, RowEnd: 3, ColBegin: 0, ColEnd: 4}
	p, err := plan.Prepare(&b, 4)
	require.NoError(t, err)
	defer p.Release()

	assert.Equal(t, []int{2, 3}, p.ColumnStart)
	assert.Equal(t, []int{0, 2}, p.OutputOffset)
	assert.Equal(t, 3, p.Length)
	requireContiguous(t, p)
}

// TestPrepare_FullMatrix checks N(N-1)/2 and the triangular start columns.
func TestPrepare_FullMatrix(t *testing.T) {
	b := block.Full(4)
	p, err := plan.Prepare(&b, 4)
	require.NoError(t, err)
	defer p.Release()

	assert.Equal(t, 6, p.Length)
	assert.Equal(t, []int{1, 2, 3, 4}, p.ColumnStart)
	assert.Equal(t, []int{0, 3, 5, 6}, p.OutputOffset)
	requireContiguous(t, p)
}

// TestPrepare_DefaultExpansion verifies that zero ends are filled in on the caller's block.
func TestPrepare_DefaultExpansion(t *testing.T) {
	b := block.Block{RowBegin: 1, ColBegin: 2}
	p, err := plan.Prepare(&b, 5)
	require.NoError(t, err)
	defer p.Release()

	assert.Equal(t, block.Block{RowBegin: 1, RowEnd: 5, ColBegin: 2, ColEnd: 5}, b, "normalization is visible")

	explicit := block.Block{RowBegin: 1, RowEnd: 5, ColBegin: 2, ColEnd: 5}
	q, err := plan.Prepare(&explicit, 5)
	require.NoError(t, err)
	defer q.Release()

	assert.Equal(t, q.ColumnStart, p.ColumnStart)
	assert.Equal(t, q.OutputOffset, p.OutputOffset)
	assert.Equal(t, q.Length, p.Length)
}

// TestPrepare_TallBlock covers a row span larger than the column span; the
// arrays must be sized by rows.
func TestPrepare_TallBlock(t *testing.T) {
	b := block.Block{RowBegin: 0, RowEnd: 6, ColBegin: 4, ColEnd: 6}
	p, err := plan.Prepare(&b, 6)
	require.NoError(t, err)
	defer p.Release()

	require.Len(t, p.ColumnStart, 6)
	assert.Equal(t, []int{4, 4, 4, 4, 5, 6}, p.ColumnStart)
	assert.Equal(t, []int{0, 2, 4, 6, 8, 9}, p.OutputOffset)
	assert.Equal(t, 9, p.Length)
	assert.Zero(t, p.Span(5), "row 5 starts at ColEnd and adds nothing")
	requireContiguous(t, p)
}

// TestPrepare_AllBlocks sweeps every valid block of small universes.
func TestPrepare_AllBlocks(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for rb := 0; rb < n; rb++ {
			for re := rb + 1; re <= n; re++ {
				for cb := 0; cb < n; cb++ {
					for ce := cb + 1; ce <= n; ce++ {
						b := block.Block{RowBegin: rb, RowEnd: re, ColBegin: cb, ColEnd: ce}
						p, err := plan.Prepare(&b, n)
						require.NoError(t, err, "block=%s", b)
						requireContiguous(t, p)

						// Every evaluated pair maps to a distinct slot in [0, Length).
						seen := make([]bool, p.Length)
						for r := rb; r < re; r++ {
							for c := cb; c < ce; c++ {
								slot, ok := p.Offset(r, c)
								require.Equal(t, c > r, ok, "pair (%d,%d) in %s", r, c, b)
								if ok {
									require.False(t, seen[slot], "slot %d reused", slot)
									seen[slot] = true
								}
							}
						}
						p.Release()
					}
				}
			}
		}
	}
}

// TestPrepare_Degenerate ensures invalid blocks produce no plan.
func TestPrepare_Degenerate(t *testing.T) {
	b := block.Block{RowBegin: 3, RowEnd: 2, ColBegin: 0, ColEnd: 4}
	p, err := plan.Prepare(&b, 4)
	assert.ErrorIs(t, err, block.ErrInvalidBlock)
	assert.Nil(t, p)

	b = block.Block{RowBegin: 0, RowEnd: 4, ColBegin: 2, ColEnd: 2}
	p, err = plan.Prepare(&b, 4)
	assert.ErrorIs(t, err, block.ErrInvalidBlock)
	assert.Nil(t, p)

	_, err = plan.Prepare(nil, 4)
	assert.ErrorIs(t, err, plan.ErrNilBlock)
}

// TestPrepare_BudgetRefusal maps a refused reservation to ErrAllocation and logs it.
func TestPrepare_BudgetRefusal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	bud := budget.New(16) // room for exactly one row of index arrays

	b := block.Full(4)
	p, err := plan.Prepare(&b, 4, plan.WithBudget(bud), plan.WithLogger(logger))
	require.ErrorIs(t, err, plan.ErrAllocation)
	assert.ErrorIs(t, err, budget.ErrExhausted)
	assert.Nil(t, p)
	assert.Zero(t, bud.Used())
	assert.Contains(t, logs.String(), "cannot reserve index arrays")

	one := block.Block{RowBegin: 0, RowEnd: 1, ColBegin: 0, ColEnd: 4}
	p, err = plan.Prepare(&one, 4, plan.WithBudget(bud))
	require.NoError(t, err)
	assert.Equal(t, int64(16), bud.Used())

	p.Release()
	p.Release() // idempotent
	assert.Zero(t, bud.Used(), "Release returns the reservation")
	assert.Nil(t, p.ColumnStart)
}

// TestPrepare_HugeRowSpan rejects row spans whose index arrays cannot be addressed.
func TestPrepare_HugeRowSpan(t *testing.T) {
	const n = 1 << 62
	b := block.Block{RowBegin: 0, RowEnd: n, ColBegin: 0, ColEnd: 1}
	p, err := plan.Prepare(&b, n, plan.WithWideCount(true))
	assert.ErrorIs(t, err, plan.ErrAllocation)
	assert.Nil(t, p)
}

// TestPrepare_WideCount forwards the counting width to block.Length.
func TestPrepare_WideCount(t *testing.T) {
	const n = 70000
	b := block.Block{RowBegin: 0, RowEnd: 1, ColBegin: 0, ColEnd: n}

	// A single row never overflows, whatever the width.
	p, err := plan.Prepare(&b, n)
	require.NoError(t, err)
	assert.Equal(t, n-1, p.Length)
	p.Release()

	full := block.Full(n)
	_, err = plan.Prepare(&full, n, plan.WithWideCount(false))
	assert.ErrorIs(t, err, block.ErrLengthOverflow)

	// Wide counting is the default.
	full = block.Full(n)
	p, err = plan.Prepare(&full, n)
	require.NoError(t, err)
	assert.Equal(t, 2449965000, p.Length)
	p.Release()
}

// TestPlan_Rows checks the explicit work-partition records.
func TestPlan_Rows(t *testing.T) {
	b := block.Block{RowBegin: 1, RowEnd: 3, ColBegin: 0, ColEnd: 4}
	p, err := plan.Prepare(&b, 4)
	require.NoError(t, err)
	defer p.Release()

	assert.Equal(t, []plan.Row{
		{Index: 1, ColumnStart: 2, OutputOffset: 0, Span: 2},
		{Index: 2, ColumnStart: 3, OutputOffset: 2, Span: 1},
	}, p.Rows())

	_, ok := p.Offset(0, 3)
	assert.False(t, ok, "row 0 is outside the block")
	slot, ok := p.Offset(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 2, slot)
}
