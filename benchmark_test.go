// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vring_test

import (
	"testing"

	"github.com/brineforge/vring"
)

// =============================================================================
// SPSC Baselines
// =============================================================================

func BenchmarkSPSC_SingleOp(b *testing.B) {
	r := vring.NewSPSC[int](1024, 1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		r.Write(&v)
		var out int
		r.Read(&out)
	}
}

func BenchmarkSPSC_CoarseGranularity(b *testing.B) {
	r := vring.NewSPSC[int](1024, 16)

	b.ResetTimer()
	for i := range b.N {
		v := i
		r.Write(&v)
		var out int
		r.Read(&out)
	}
}

// =============================================================================
// MPSC Baselines
// =============================================================================

func BenchmarkMPSC_SingleOp(b *testing.B) {
	r := vring.NewMPSC[int](1024, 1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		r.Write(&v)
		var out int
		r.Read(&out)
	}
}

func BenchmarkMPSC_Contended(b *testing.B) {
	r := vring.NewMPSC[int](1024, 64)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		v := 0
		for pb.Next() {
			r.Write(&v)
			v++
		}
	})
}
