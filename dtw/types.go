// SPDX-License-Identifier: MIT

package dtw

// MemoryMode controls how DTW stores its DP matrix.
//
//   - FullMatrix: keep the entire (n+1)x(m+1) matrix in memory.
//     Allows distance + full backtrace for the optimal warping path.
//     Memory: O(n·m).
//
//   - TwoRows: only keep two rows (current and previous).
//     Greatly reduces memory to O(m), but cannot recover the path.
//     Use when you only need the distance.
type MemoryMode int

const (
	// FullMatrix mode: store all rows, support path recovery, uses O(N·M) memory.
	FullMatrix MemoryMode = iota

	// TwoRows mode: keep only two rows, no path recovery, uses O(M) memory.
	TwoRows
)

// String returns a short label for logs.
func (m MemoryMode) String() string {
	switch m {
	case FullMatrix:
		return "full-matrix"
	case TwoRows:
		return "two-rows"
	default:
		return "unknown"
	}
}

// Unlimited disables the Sakoe–Chiba band.
const Unlimited = -1

// Coord is one step (I in a, J in b) of a warping path, zero-based.
type Coord struct {
	I, J int
}

// Settings configures Dynamic Time Warping.
//
// Fields:
//   - Window      : maximum deviation |i-j| allowed (Sakoe–Chiba band).
//     Unlimited (-1) disables the band; 0 keeps only the diagonal.
//   - SlopePenalty: penalty cost for insertion/deletion steps (controls locality bias).
//   - MaxDist     : early-abandon bound. Once every cell of a DP row exceeds it the
//     distance is reported as +Inf. 0 disables the bound.
//   - MemoryMode  : choose FullMatrix or TwoRows storage.
//   - ReturnPath  : if true, DTW will backtrack and return the optimal warping path.
//     Requires MemoryMode=FullMatrix.
//   - WideCount   : counting width for distance-matrix lengths; see block.Length.
//     DefaultSettings enables it. With false a block is capped at
//     block.NarrowLimit (2^31-1) pairs, i.e. a full matrix of at most 65,536
//     sequences. The distance functions ignore it.
//
// Example:
//
//	s := dtw.DefaultSettings()
//	s.Window = 10          // only compare elements within ±10 steps
//	s.SlopePenalty = 0.5   // small penalty for non-diagonal moves
//	s.ReturnPath = true    // we need the path, not just the distance
//	s.MemoryMode = dtw.FullMatrix
//
//	dist, path, err := dtw.DTW(seqA, seqB, &s)
type Settings struct {
	Window       int
	SlopePenalty float64
	MaxDist      float64
	MemoryMode   MemoryMode
	ReturnPath   bool
	WideCount    bool
}

// DefaultSettings returns unconstrained, distance-only settings.
func DefaultSettings() Settings {
	return Settings{
		Window:       Unlimited,
		SlopePenalty: 0,
		MaxDist:      0,
		MemoryMode:   TwoRows,
		ReturnPath:   false,
		WideCount:    true,
	}
}
