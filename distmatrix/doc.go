// SPDX-License-Identifier: MIT

// Package distmatrix computes compact DTW distance matrices in parallel.
//
// Purpose:
//   - Evaluate every pair (r, c), c > r, inside a block [rb,re)x[cb,ce) of the
//     N×N comparison space and write it to a flat, unpadded output.
//   - Accept the four input layouts: independent sequences (Pointers,
//     PointersNdim) or one contiguous row-major buffer (Matrix, MatrixNdim).
//   - Report the outcome explicitly: Result.Status tells "computed", "empty",
//     "canceled" and "failed" apart, and errors carry sentinels.
//
// Contracts:
//   - The block is normalized in place (zero ends mean N) and validated before
//     any worker starts; nothing is written on a planning or capacity error.
//   - Each row writes out[OutputOffset[i] : OutputOffset[i]+span] only, so
//     workers never share a slot and the result does not depend on the
//     number of workers or the batch policy.
//   - Cancellation is observed between rows; rows in Result.Completed are valid.
//
// Options:
//   - WithWorkers, WithSchedule, WithMinBatch: the fan-out.
//   - WithDistance, WithNdimDistance: replace the dtw kernel.
//   - WithBudget, WithLogger, WithProgress, WithProgressInterval: resources
//     and observability.
//
// Complexity:
//   - Planning O(rows); evaluation O(Length × cost of one distance).
package distmatrix
