// SPDX-License-Identifier: MIT

package dtw_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dtwmatrix/dtw"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleDTW
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A short sequence matched against a copy with one repeated sample.
//	  a = [1, 2, 3]
//	  b = [1, 2, 2, 3]
//
// Options:
//   - ReturnPath = true  (retrieve alignment path)
//   - MemoryMode = FullMatrix (O(N·M) mem)
//
// Complexity: O(N·M) time, O(N·M) memory
func ExampleDTW() {
	a := []float64{1, 2, 3}
	b := []float64{1, 2, 2, 3}
	opts := dtw.DefaultSettings()
	opts.ReturnPath = true
	opts.MemoryMode = dtw.FullMatrix

	dist, path, err := dtw.DTW(a, b, &opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("distance=%.0f\npath=%v\n", dist, path)
	// Output:
	// distance=0
	// path=[{0 0} {1 1} {1 2} {2 3}]
}

// ExampleDistance shows the distance-only kernel used by distance matrices.
func ExampleDistance() {
	a := []float64{0, 1, 2, 1, 0}
	b := []float64{0, 1, 1, 2, 1, 0}

	dist, err := dtw.Distance(a, b, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("distance=%.0f\n", dist)
	// Output:
	// distance=0
}

// ExampleDistance_window shows strict diagonal alignment forcing infinite distance.
func ExampleDistance_window() {
	a := []float64{2, 3, 4}
	b := []float64{2, 3, 4, 5}
	opts := dtw.DefaultSettings()
	opts.Window = 0

	dist, _ := dtw.Distance(a, b, &opts)
	if math.IsInf(dist, 1) {
		fmt.Println("distance=+Inf")
	}
	// Output:
	// distance=+Inf
}

// ExampleDistanceNdim compares two trajectories of 2-D points.
func ExampleDistanceNdim() {
	x := []float64{0, 0, 3, 4} // (0,0) → (3,4)
	y := []float64{0, 0, 0, 0} // (0,0) → (0,0)

	dist, err := dtw.DistanceNdim(x, y, 2, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("distance=%.0f\n", dist)
	// Output:
	// distance=5
}
