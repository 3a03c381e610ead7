// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vring

import "code.hybscloud.com/atomix"

// pad is cache-line-pair padding. Two lines (128 bytes) rather than one
// defeats adjacent-line hardware prefetch, which would otherwise still
// pull a neighboring hot word into the same prefetch unit.
type pad [128]byte

// padTrailing pads a slot after its 8-byte sequence number and payload, so
// a slot occupies 128 bytes plus the payload size and the hot words of
// neighboring slots sit at least 128 bytes apart; slots are not aligned to
// a 128-byte boundary. It assumes a small DataType, the same assumption the
// teacher library makes for its own per-slot padding (padShort) — Go's
// generics cannot size an array field by sizeof(T), so callers storing a
// large payload per slot should budget their own spacing between slots.
type padTrailing [128 - 8]byte

// versionedSlot is one element of the ring's backing array: a payload plus
// the sequence number that doubles as the staleness check on read.
//
// sequenceNumber is deliberately a plain field, not an atomic one: its
// bytes are protected entirely by the surrounding version-counter
// protocol (see versionCounter), exactly like the payload. The consumer
// bulk-copies the whole slot non-atomically and only trusts the copy once
// the paired version counter confirms no writer was active during the copy.
type versionedSlot[T any] struct {
	sequenceNumber uint64
	data           T
	_              padTrailing
}

// versionCounter is one per region: a single cache-line-pair aligned
// atomic word. SPSC treats it as a parity flag (even = quiescent, odd =
// write in progress); MPSC treats it as a writer refcount (zero = no
// writer currently claims the region). Stored as an array of these
// wrapper structs, never as a packed []atomix.Uint64, so that neighboring
// regions never share a cache line.
type versionCounter struct {
	v atomix.Uint64
	_ pad
}

// validateRingParams enforces the compile-time parameter constraints from
// the data model: length and granularity must each be a power of two, and
// granularity must divide length.
//
// Unlike the teacher's queues (which silently round capacity up to the
// next power of two for caller convenience), a misused length or
// granularity here is a contract violation and is rejected immediately —
// per the error handling design, parameter misuse must be caught as early
// as the host language allows, not silently reinterpreted.
func validateRingParams(length, granularity int) {
	if length <= 0 || length&(length-1) != 0 {
		panic("vring: length must be a power of two")
	}
	if granularity <= 0 || granularity&(granularity-1) != 0 {
		panic("vring: granularity must be a power of two")
	}
	if granularity > length || length%granularity != 0 {
		panic("vring: granularity must divide length")
	}
}

// decRelaxed subtracts 1 from an atomix.Uint64 with relaxed ordering.
// Unsigned atomics decrement by adding the two's-complement bit pattern of
// -1, which is the idiomatic way to subtract on an unsigned atomic word.
func decRelaxed(c *atomix.Uint64) uint64 {
	return c.AddRelaxed(^uint64(0))
}

// decRelease subtracts 1 from an atomix.Uint64 with release ordering.
func decRelease(c *atomix.Uint64) uint64 {
	return c.AddRelease(^uint64(0))
}
