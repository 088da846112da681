// SPDX-License-Identifier: MIT

// Package dtw computes Dynamic Time Warping (DTW) distances between
// numeric time series. It is the pairwise kernel behind package distmatrix.
//
// 🚀 What is DTW?
//
//	DTW finds the best match between two sequences by warping the time
//	axis to minimize cumulative distance.  It’s widely used in:
//	  • Speech recognition & audio alignment
//	  • Gesture / motion matching
//	  • Time-series clustering & anomaly detection
//
// ✨ Key features:
//   - full-matrix mode: exact O(N·M) time & memory, optional alignment path
//   - two-rows mode: O(M) memory (pooled scratch rows, no path)
//   - optional Sakoe–Chiba window (|i−j| ≤ w)
//   - slope penalty to discourage excessive stretching
//   - MaxDist early abandoning (+Inf once a whole row exceeds the bound)
//   - n-dimensional sequences (Euclidean local cost per sample)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/dtwmatrix/dtw"
//
//	s := dtw.DefaultSettings()
//	s.Window = 10
//	s.SlopePenalty = 0.5
//
//	dist, err := dtw.Distance(a, b, &s)
//
// Distance and DistanceNdim are pure and safe for concurrent use; their
// signatures match distmatrix.Func and distmatrix.NdimFunc.
//
// Performance:
//
//   - Time:   O(N·M)
//   - Memory: O(N·M) (FullMatrix) or O(M) (TwoRows, Distance, DistanceNdim)
package dtw
