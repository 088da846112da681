// SPDX-License-Identifier: MIT

package distmatrix_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/dtwmatrix/block"
	"github.com/katalvlaran/dtwmatrix/distmatrix"
	"github.com/katalvlaran/dtwmatrix/dtw"
	"github.com/katalvlaran/dtwmatrix/schedule"
)

// benchmarkPointers runs a full n×n block of length-l sequences.
func benchmarkPointers(b *testing.B, n, l int, opts ...distmatrix.Option) {
	seqs := randomSeqs(n, l, l)
	s := dtw.DefaultSettings()
	s.Window = l / 10
	out := make([]float64, n*(n-1)/2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		blk := block.Full(n)
		if _, err := distmatrix.Pointers(context.Background(), seqs, out, &blk, &s, opts...); err != nil {
			b.Fatalf("Pointers failed: %v", err)
		}
	}
}

func BenchmarkPointers_Workers(b *testing.B) {
	for _, w := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			benchmarkPointers(b, 200, 100, distmatrix.WithWorkers(w))
		})
	}
}

// BenchmarkPointers_Policy compares guided and static batching on the
// triangular cost profile.
func BenchmarkPointers_Policy(b *testing.B) {
	for _, p := range []schedule.Policy{schedule.Guided, schedule.Static} {
		b.Run(p.String(), func(b *testing.B) {
			benchmarkPointers(b, 200, 100, distmatrix.WithSchedule(p))
		})
	}
}
