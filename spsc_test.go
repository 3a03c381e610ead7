// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vring_test

import (
	"testing"

	"github.com/brineforge/vring"
)

// TestSPSCBasic covers Scenario A: write two, read two successfully, then
// observe failure on an empty buffer.
func TestSPSCBasic(t *testing.T) {
	r := vring.NewSPSC[int](4, 4)

	a, b := 10, 20
	r.Write(&a)
	r.Write(&b)

	var out int
	if ok := r.Read(&out); !ok || out != 10 {
		t.Fatalf("Read 1: got (%d, %v), want (10, true)", out, ok)
	}
	if ok := r.Read(&out); !ok || out != 20 {
		t.Fatalf("Read 2: got (%d, %v), want (20, true)", out, ok)
	}
	if ok := r.Read(&out); ok {
		t.Fatalf("Read 3: got (%d, true), want false", out)
	}
}

// TestSPSCReadBeforeWrite covers Scenario C: a read on a fresh buffer fails
// and does not advance the consumer cursor.
func TestSPSCReadBeforeWrite(t *testing.T) {
	r := vring.NewSPSC[int](4, 4)

	var out int
	if ok := r.Read(&out); ok {
		t.Fatalf("Read on fresh buffer: got true, want false")
	}

	v := 1
	r.Write(&v)
	if ok := r.Read(&out); !ok || out != 1 {
		t.Fatalf("Read after write: got (%d, %v), want (1, true)", out, ok)
	}
}

// TestSPSCWraparound covers Scenario B: three writes into a length-2 ring
// overwrite slot 0 before it is drained, but the embedded sequence number
// still lets the consumer recover the correct element.
func TestSPSCWraparound(t *testing.T) {
	r := vring.NewSPSC[int](2, 2)

	a, b, c := 1, 2, 3
	r.Write(&a)
	r.Write(&b)
	r.Write(&c)

	var out int
	if ok := r.Read(&out); !ok || out != 1 {
		t.Fatalf("Read 1: got (%d, %v), want (1, true)", out, ok)
	}
	if ok := r.Read(&out); !ok || out != 2 {
		t.Fatalf("Read 2: got (%d, %v), want (2, true)", out, ok)
	}
	if ok := r.Read(&out); !ok || out != 3 {
		t.Fatalf("Read 3: got (%d, %v), want (3, true)", out, ok)
	}
}

// TestSPSCRoundTripOrder writes a full buffer's worth of distinct values and
// checks the round-trip law: n <= length writes with no intervening reads
// come back out in the same order, all successful.
func TestSPSCRoundTripOrder(t *testing.T) {
	const length = 64
	r := vring.NewSPSC[int](length, 16)

	for i := range length {
		v := i * 7
		r.Write(&v)
	}
	for i := range length {
		var out int
		if ok := r.Read(&out); !ok {
			t.Fatalf("Read(%d): got false, want true", i)
		}
		if want := i * 7; out != want {
			t.Fatalf("Read(%d): got %d, want %d", i, out, want)
		}
	}
}

// TestSPSCCap verifies Cap reports the slot count, not the granularity.
func TestSPSCCap(t *testing.T) {
	r := vring.NewSPSC[int](128, 16)
	if got := r.Cap(); got != 128 {
		t.Fatalf("Cap: got %d, want 128", got)
	}
}

// TestSPSCCoarseGranularity covers Scenario F: a single version counter for
// the whole buffer (G=1) still preserves basic read/write correctness.
func TestSPSCCoarseGranularity(t *testing.T) {
	r := vring.NewSPSC[int](8, 1)

	for i := range 8 {
		v := i
		r.Write(&v)
	}
	for i := range 8 {
		var out int
		if ok := r.Read(&out); !ok || out != i {
			t.Fatalf("Read(%d): got (%d, %v), want (%d, true)", i, out, ok, i)
		}
	}
}

func TestSPSCConstructionPanics(t *testing.T) {
	cases := []struct {
		name        string
		length      int
		granularity int
	}{
		{"zero length", 0, 4},
		{"non-pow2 length", 3, 1},
		{"non-pow2 granularity", 4, 3},
		{"granularity exceeds length", 4, 8},
		{"granularity does not divide length", 8, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("NewSPSC(%d, %d): want panic, got none", tc.length, tc.granularity)
				}
			}()
			vring.NewSPSC[int](tc.length, tc.granularity)
		})
	}
}

func TestSPSCConstructionValidDoesNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("NewSPSC(8, 4): unexpected panic: %v", r)
		}
	}()
	_ = vring.NewSPSC[int](8, 4)
}
