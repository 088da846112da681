// SPDX-License-Identifier: MIT

package dtw

import "math"

// DistanceNdim returns the DTW distance between two n-dimensional sequences.
//
// Each sequence is a flat row-major buffer of length × ndim samples: sample i
// occupies a[i*ndim : (i+1)*ndim]. The local cost of matching two samples is
// their Euclidean distance, so ndim == 1 yields exactly Distance(a, b, s).
//
// Errors:
//   - ErrDimension : ndim <= 0, or len(a)/len(b) not a multiple of ndim.
//   - ErrEmptyInput: either sequence has no samples.
//   - ErrBadInput  : settings out of domain.
func DistanceNdim(a, b []float64, ndim int, s *Settings) (float64, error) {
	if ndim <= 0 || len(a)%ndim != 0 || len(b)%ndim != 0 {
		return 0, ErrDimension
	}
	if ndim == 1 {
		return Distance(a, b, s)
	}
	cfg, err := resolve(s)
	if err != nil {
		return 0, err
	}
	n, m := len(a)/ndim, len(b)/ndim
	if n == 0 || m == 0 {
		return 0, ErrEmptyInput
	}

	cost := func(i, j int) float64 {
		x := a[i*ndim : (i+1)*ndim]
		y := b[j*ndim : (j+1)*ndim]
		var sum float64
		for d := range x {
			diff := x[d] - y[d]
			sum += diff * diff
		}
		return math.Sqrt(sum)
	}

	return rolling(n, m, cost, &cfg), nil
}
