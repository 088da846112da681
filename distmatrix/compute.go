// SPDX-License-Identifier: MIT

package distmatrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/dtw"
	"github.com/katalvlaran/dtwmatrix/plan"
	"github.com/katalvlaran/dtwmatrix/schedule"
)

// pairFunc evaluates the pair (r, c) of the current layout.
type pairFunc func(r, c int) (float64, error)

// Pointers computes the compact distance matrix of independently stored 1-D sequences.
//
// Row r resolves to seqs[r]; each sequence keeps its own length. The block b is
// normalized in place. out must hold at least Length(*b, len(seqs), s) slots.
// A nil s means dtw.DefaultSettings, which counts pairs in the int range; with
// s.WideCount false a block holding more than block.NarrowLimit pairs fails
// with block.ErrLengthOverflow.
//
// Returns:
//   - Result with Status and Count (== block length on success, 0 on failure).
//
// Errors:
//   - block.ErrInvalidBlock / block.ErrOutOfRange / block.ErrLengthOverflow,
//     plan.ErrAllocation, ErrOutputTooSmall, context errors, and distance
//     errors wrapped with the failing pair.
func Pointers(ctx context.Context, seqs [][]float64, out []float64, b *block.Block, s *dtw.Settings, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)
	s = settingsOrDefault(s)
	pair := func(r, c int) (float64, error) {
		return o.dist(seqs[r], seqs[c], s)
	}

	return run(ctx, len(seqs), out, b, s, pair, &o)
}

// PointersNdim computes the compact distance matrix of independently stored
// n-D sequences; seqs[r] holds len(seqs[r])/ndim samples of ndim components.
func PointersNdim(ctx context.Context, seqs [][]float64, ndim int, out []float64, b *block.Block, s *dtw.Settings, opts ...Option) (Result, error) {
	if ndim <= 0 {
		return failedResult(), fmt.Errorf("PointersNdim(ndim=%d): %w", ndim, ErrShape)
	}
	o := gatherOptions(opts...)
	s = settingsOrDefault(s)
	pair := func(r, c int) (float64, error) {
		return o.ndimDist(seqs[r], seqs[c], ndim, s)
	}

	return run(ctx, len(seqs), out, b, s, pair, &o)
}

// Matrix computes the compact distance matrix of rows fixed-length sequences
// stored contiguously: row r is data[r*cols : (r+1)*cols].
func Matrix(ctx context.Context, data []float64, rows, cols int, out []float64, b *block.Block, s *dtw.Settings, opts ...Option) (Result, error) {
	if err := checkShape(len(data), rows, cols, 1); err != nil {
		return failedResult(), fmt.Errorf("Matrix(%dx%d): %w", rows, cols, err)
	}
	o := gatherOptions(opts...)
	s = settingsOrDefault(s)
	pair := func(r, c int) (float64, error) {
		return o.dist(rowOf(data, r, cols), rowOf(data, c, cols), s)
	}

	return run(ctx, rows, out, b, s, pair, &o)
}

// MatrixNdim computes the compact distance matrix of rows fixed-length n-D
// sequences stored contiguously: row r is data[r*cols*ndim : (r+1)*cols*ndim],
// i.e. cols samples of ndim components each.
func MatrixNdim(ctx context.Context, data []float64, rows, cols, ndim int, out []float64, b *block.Block, s *dtw.Settings, opts ...Option) (Result, error) {
	if ndim <= 0 {
		return failedResult(), fmt.Errorf("MatrixNdim(ndim=%d): %w", ndim, ErrShape)
	}
	if err := checkShape(len(data), rows, cols, ndim); err != nil {
		return failedResult(), fmt.Errorf("MatrixNdim(%dx%dx%d): %w", rows, cols, ndim, err)
	}
	o := gatherOptions(opts...)
	s = settingsOrDefault(s)
	stride := cols * ndim
	pair := func(r, c int) (float64, error) {
		return o.ndimDist(rowOf(data, r, stride), rowOf(data, c, stride), ndim, s)
	}

	return run(ctx, rows, out, b, s, pair, &o)
}

// Distances allocates the output and runs Pointers. A nil b means the full matrix.
// The counting width follows s as in Pointers.
func Distances(ctx context.Context, seqs [][]float64, b *block.Block, s *dtw.Settings, opts ...Option) ([]float64, Result, error) {
	if b == nil {
		full := block.Full(len(seqs))
		b = &full
	}
	length, err := Length(*b, len(seqs), s)
	if err != nil {
		return nil, failedResult(), err
	}
	out := make([]float64, length)
	res, err := Pointers(ctx, seqs, out, b, s, opts...)
	if err != nil {
		return nil, res, err
	}

	return out, res, nil
}

// Length returns the number of output slots a block needs, without mutating b.
// s selects the counting width (s.WideCount); nil means wide, as DefaultSettings.
func Length(b block.Block, n int, s *dtw.Settings) (int, error) {
	return block.Length(b, n, s == nil || s.WideCount)
}

// run is the layout-independent engine.
//
// Implementation:
//   - Stage 1: plan on the caller's goroutine (normalize, validate, allocate).
//     Any failure returns before a single worker starts.
//   - Stage 2: verify the output capacity.
//   - Stage 3: fan out over row offsets with the configured policy; each row
//     writes out[OutputOffset[i] : OutputOffset[i]+Span(i)] and nothing else.
//   - Stage 4: join, release the plan, classify the outcome.
func run(ctx context.Context, n int, out []float64, b *block.Block, s *dtw.Settings, pair pairFunc, o *options) (Result, error) {
	start := time.Now()
	completed := newRowSet()
	res := Result{Status: StatusFailed, Completed: completed.bitmap()}

	p, err := plan.Prepare(b, n,
		plan.WithWideCount(s.WideCount),
		plan.WithBudget(o.budget),
		plan.WithLogger(o.logger),
	)
	if err != nil {
		o.logger.DebugContext(ctx, "distmatrix: planning failed", "n", n, "error", err)

		return res, err
	}
	defer p.Release()

	res.Rows = p.RowCount()
	if len(out) < p.Length {
		return res, fmt.Errorf("%s: need %d slots, have %d: %w", p.Block, p.Length, len(out), ErrOutputTooSmall)
	}

	cfg := schedule.Config{Workers: o.workers, Policy: o.policy, MinBatch: o.minBatch}
	res.Workers = cfg.EffectiveWorkers(p.RowCount())

	if p.Length == 0 {
		// Every row of the block is trivially complete.
		completed.addRange(p.Block.RowBegin, p.Block.RowEnd)
		res.Status = StatusEmpty
		res.Elapsed = time.Since(start)
		o.logger.DebugContext(ctx, "distmatrix: block holds no pairs", "block", p.Block.String(), "n", n)

		return res, nil
	}

	track := newProgress(p.Length, o)
	err = schedule.Run(ctx, p.RowCount(), cfg, func(ctx context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := p.Block.RowBegin + i
			dst := out[p.OutputOffset[i] : p.OutputOffset[i]+p.Span(i)]
			for k, c := 0, p.ColumnStart[i]; c < p.Block.ColEnd; k, c = k+1, c+1 {
				v, err := pair(r, c)
				if err != nil {
					return fmt.Errorf("pair (%d,%d): %w", r, c, err)
				}
				dst[k] = v
			}
			completed.add(r)
			track.add(ctx, len(dst))
		}

		return nil
	})
	res.Elapsed = time.Since(start)
	res.Written = track.written()

	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			res.Status = StatusCanceled
			o.logger.WarnContext(ctx, "distmatrix: computation canceled",
				"block", p.Block.String(), "rows_done", completed.bitmap().GetCardinality(), "rows", p.RowCount())
		} else {
			o.logger.ErrorContext(ctx, "distmatrix: computation failed", "block", p.Block.String(), "error", err)
		}

		return res, err
	}

	track.finish()
	res.Status = StatusComputed
	res.Count = p.Length
	o.logger.DebugContext(ctx, "distmatrix: computation completed",
		"block", p.Block.String(),
		"n", n,
		"length", p.Length,
		"workers", res.Workers,
		"policy", o.policy.String(),
		"elapsed", res.Elapsed,
	)

	return res, nil
}

// settingsOrDefault substitutes dtw.DefaultSettings for a nil s.
func settingsOrDefault(s *dtw.Settings) *dtw.Settings {
	if s != nil {
		return s
	}
	def := dtw.DefaultSettings()

	return &def
}

// rowOf returns row r of a contiguous buffer with the given stride, capped so
// an append by the distance function cannot spill into the next row.
func rowOf(data []float64, r, stride int) []float64 {
	lo := r * stride

	return data[lo : lo+stride : lo+stride]
}

// checkShape validates a contiguous rows×cols×ndim layout without overflowing.
func checkShape(size, rows, cols, ndim int) error {
	if rows < 0 || cols <= 0 {
		return ErrShape
	}
	if rows == 0 {
		return nil
	}
	if cols > size/ndim {
		return ErrShape
	}
	if rows > size/(cols*ndim) {
		return ErrShape
	}

	return nil
}
