// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vringtest provides randomized interleaving helpers for the
// ring buffer's concurrency tests.
package vringtest

import (
	"runtime"

	"github.com/valyala/fastrand"
)

// Jitter returns a pseudo-random spin count in [0, max), used to stagger
// goroutine scheduling in stress tests so producer/consumer interleavings
// vary from run to run instead of settling into one fixed ordering.
func Jitter(max uint32) uint32 {
	if max == 0 {
		return 0
	}
	return fastrand.Uint32n(max)
}

// Burn spins the CPU for a jittered number of iterations. Used between
// goroutine-local operations in stress tests to widen the window in which
// other goroutines can interleave, making races in the synchronization
// protocol more likely to surface.
func Burn(maxSpins uint32) {
	n := Jitter(maxSpins)
	for i := uint32(0); i < n; i++ {
		runtime.Gosched()
	}
}

// Shuffle permutes s in place using a Fisher-Yates shuffle driven by
// fastrand, so stress tests can randomize producer submission order
// without paying for the stdlib math/rand state machine.
func Shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		s[i], s[j] = s[j], s[i]
	}
}
