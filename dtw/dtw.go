// SPDX-License-Identifier: MIT

package dtw

import (
	"math"
	"sync"
)

// DTW: Dynamic Time Warping
//
// Description:
//
//	DTW measures similarity between two sequences that may vary
//	in time or speed by finding an optimal “warping path”.
//
// Algorithm Outline (Full-Matrix):
//  1. Let n = len(a), m = len(b). Allocate (n+1)x(m+1) DP matrix D.
//  2. Initialize:
//     D[0][0] = 0
//     D[i][0] = +∞ for i=1..n
//     D[0][j] = +∞ for j=1..m
//  3. For i = 1..n:
//     For j = 1..m (and |i-j| ≤ Window, if constrained):
//     cost = |a[i-1] - b[j-1]|
//     ins   = D[i-1][j]   + SlopePenalty
//     del   = D[i][j-1]   + SlopePenalty
//     match = D[i-1][j-1]
//     D[i][j] = cost + min(ins, del, match)
//     If MaxDist > 0 and every D[i][·] > MaxDist, stop with +∞.
//  4. distance = D[n][m].
//  5. If ReturnPath && MemoryMode==FullMatrix, backtrack from (n,m) to (1,1)
//     following the cheapest predecessor (diagonal wins ties).
//
// Complexity:
//
//	Time   = O(n·m)
//	Memory = O(n·m) (FullMatrix) or O(m) (TwoRows)
//
// Errors:
//   - ErrEmptyInput     : if either input is empty.
//   - ErrBadInput       : if settings are out of domain.
//   - ErrPathNeedsMatrix: if ReturnPath=true with TwoRows mode.
func DTW(a, b []float64, s *Settings) (distance float64, path []Coord, err error) {
	cfg, err := resolve(s)
	if err != nil {
		return 0, nil, err
	}
	if cfg.ReturnPath && cfg.MemoryMode != FullMatrix {
		return 0, nil, ErrPathNeedsMatrix
	}
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, nil, ErrEmptyInput
	}

	cost := func(i, j int) float64 { return math.Abs(a[i] - b[j]) }
	if cfg.MemoryMode != FullMatrix {
		return rolling(n, m, cost, &cfg), nil, nil
	}

	distance, dp := full(n, m, cost, &cfg)
	if cfg.ReturnPath && dp != nil && !math.IsInf(distance, 1) {
		path = backtrack(dp, n, m, cfg.SlopePenalty)
	}

	return distance, path, nil
}

// Distance returns the DTW distance between a and b using two rolling rows.
// MemoryMode and ReturnPath are ignored. Safe for concurrent use.
func Distance(a, b []float64, s *Settings) (float64, error) {
	cfg, err := resolve(s)
	if err != nil {
		return 0, err
	}
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyInput
	}

	return rolling(len(a), len(b), func(i, j int) float64 { return math.Abs(a[i] - b[j]) }, &cfg), nil
}

// resolve applies defaults to a nil s and validates the numeric fields.
func resolve(s *Settings) (Settings, error) {
	if s == nil {
		return DefaultSettings(), nil
	}
	cfg := *s
	if cfg.Window < Unlimited {
		return cfg, ErrBadInput
	}
	if !finite(cfg.SlopePenalty) || cfg.SlopePenalty < 0 {
		return cfg, ErrBadInput
	}
	if !finite(cfg.MaxDist) || cfg.MaxDist < 0 {
		return cfg, ErrBadInput
	}

	return cfg, nil
}

// rowPool recycles the two scratch rows of the rolling kernel; matrix
// computations call Distance once per pair.
var rowPool = sync.Pool{
	New: func() any { return new([]float64) },
}

// rolling runs the recurrence keeping only the previous and current row.
func rolling(n, m int, cost func(i, j int) float64, s *Settings) float64 {
	buf := rowPool.Get().(*[]float64)
	defer rowPool.Put(buf)
	if cap(*buf) < 2*(m+1) {
		*buf = make([]float64, 2*(m+1))
	}
	rows := (*buf)[:2*(m+1)]
	prev, curr := rows[:m+1], rows[m+1:]

	inf := math.Inf(1)
	prev[0] = 0
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}
	for i := 1; i <= n; i++ {
		if !step(prev, curr, i, m, cost, s) {
			return inf
		}
		prev, curr = curr, prev
	}

	return prev[m]
}

// full runs the recurrence keeping every row. A nil table means the
// computation was abandoned under MaxDist.
func full(n, m int, cost func(i, j int) float64, s *Settings) (float64, [][]float64) {
	inf := math.Inf(1)
	dp := make([][]float64, n+1)
	backing := make([]float64, (n+1)*(m+1))
	for i := range dp {
		dp[i] = backing[i*(m+1) : (i+1)*(m+1)]
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = inf
	}
	for i := 1; i <= n; i++ {
		if !step(dp[i-1], dp[i], i, m, cost, s) {
			return inf, nil
		}
	}

	return dp[n][m], dp
}

// step fills row i of the DP table from row i-1. It reports false when the
// row lies entirely above MaxDist.
func step(prev, curr []float64, i, m int, cost func(i, j int) float64, s *Settings) bool {
	inf := math.Inf(1)
	penalty := s.SlopePenalty
	rowMin := inf

	curr[0] = inf
	for j := 1; j <= m; j++ {
		if s.Window >= 0 && abs(i-j) > s.Window {
			curr[j] = inf
			continue
		}
		best := min3(prev[j]+penalty, curr[j-1]+penalty, prev[j-1])
		curr[j] = cost(i-1, j-1) + best
		if curr[j] < rowMin {
			rowMin = curr[j]
		}
	}

	return s.MaxDist <= 0 || rowMin <= s.MaxDist
}

// backtrack walks from (n,m) to (1,1) and returns the zero-based path in
// forward order.
func backtrack(dp [][]float64, n, m int, penalty float64) []Coord {
	path := make([]Coord, 0, n+m)
	i, j := n, m
	for {
		path = append(path, Coord{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}
		switch {
		case i == 1:
			j--
		case j == 1:
			i--
		default:
			diag := dp[i-1][j-1]
			up := dp[i-1][j] + penalty
			left := dp[i][j-1] + penalty
			if diag <= up && diag <= left {
				i--
				j--
			} else if up <= left {
				i--
			} else {
				j--
			}
		}
	}
	// reverse path in-place
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// min3 returns the minimum of three float64 values.
func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
