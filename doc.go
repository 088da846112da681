// SPDX-License-Identifier: MIT

// Package dtwmatrix computes pairwise Dynamic Time Warping distances between
// large collections of numeric sequences, in parallel, over arbitrary
// rectangular blocks of the N×N comparison space.
//
// 🚀 What is in the box?
//
//	• dtw/       : the DTW kernel: Sakoe–Chiba window, slope penalty, early abandon, n-D samples
//	• block/     : block bounds, normalization and the closed-form pair count
//	• plan/      : per-row column starts and output offsets of one block
//	• schedule/  : guided and static batch dispensers over an errgroup fan-out
//	• distmatrix/: the four input layouts, Result/Status, cancellation, Square
//	• budget/    : a byte budget that turns oversized plans into errors
//	• condensed/ : LZ4/Zstd persistence of a computed block
//	• matrix/    : the Dense matrix behind Square
//
// Output layout:
//
// Only pairs (r, c) with c > r are evaluated. Inside block [rb,re)x[cb,ce) the
// values are stored row by row without padding, so a full matrix of N
// sequences needs N(N-1)/2 slots and blocks can be split across processes:
//
//	     c→  0  1  2  3
//	r  0     ·  0  1  2
//	↓  1     ·  ·  3  4
//	   2     ·  ·  ·  5
//	   3     ·  ·  ·  ·
//
// Quick start:
//
//	b := block.Full(len(seqs))
//	out := make([]float64, len(seqs)*(len(seqs)-1)/2)
//	res, err := distmatrix.Pointers(ctx, seqs, out, &b, nil)
//
// See examples/ for a block-split run persisted with package condensed.
package dtwmatrix
