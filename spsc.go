// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vring

import "code.hybscloud.com/spin"

// SPSC is a single-producer single-consumer bounded ring buffer.
//
// Writes are wait-free: bounded in instructions regardless of consumer
// progress. Reads never block indefinitely — they spin only while the
// producer is mid-write on the region the read cursor currently lands in.
//
// length and granularity are fixed at construction and are powers of two;
// granularity must divide length. A granularity equal to length gives
// per-slot versioning; a smaller granularity trades detection precision
// for less cache traffic between producer and consumer (every producer
// write and every consumer read touches one shared version counter per
// region instead of one per slot).
type SPSC[T any] struct {
	_           pad
	slots       []versionedSlot[T]
	_           pad
	versions    []versionCounter
	_           pad
	writeCursor uint64 // producer-owned, never read by the consumer
	_           pad
	readCursor  uint64 // consumer-owned, never read by the producer
	_           pad
	length      uint64
	granularity uint64
}

// NewSPSC constructs an SPSC ring buffer of the given length with version
// counters grouped into the given granularity.
//
// length and granularity must each be a power of two, and granularity must
// divide length; violating either panics immediately rather than silently
// rounding, since this is a contract the caller is expected to get right
// at compile time.
func NewSPSC[T any](length, granularity int) *SPSC[T] {
	validateRingParams(length, granularity)
	return &SPSC[T]{
		slots:       make([]versionedSlot[T], length),
		versions:    make([]versionCounter, granularity),
		length:      uint64(length),
		granularity: uint64(granularity),
	}
}

// Write publishes data into the next slot. Never fails; the caller is
// responsible for sizing the buffer so producers never lap the consumer
// (see the package-level overrun note).
func (r *SPSC[T]) Write(data *T) {
	region := (r.writeCursor & (r.length - 1)) / (r.length / r.granularity)
	counter := &r.versions[region].v

	// Relaxed fetch-add; the returned (new) value is a guard that the
	// payload copy below is syntactically conditioned on, forcing the
	// copy to be ordered after this increment for compiler purposes. The
	// branch is always taken — a fresh increment off an even counter yields
	// an odd value, which is never zero.
	guard := counter.AddRelaxed(1)
	if guard != 0 {
		slot := &r.slots[r.writeCursor&(r.length-1)]
		slot.data = *data
		slot.sequenceNumber = r.writeCursor + 1
	}

	r.writeCursor++

	// Release publishes the slot write above: any consumer that observes
	// this store via an acquire load has the happens-before edge to every
	// prior store in this call, including the non-atomic slot write.
	counter.AddRelease(1)
}

// Read attempts to deliver the next fresh record into out. Returns true
// iff a fresh record was delivered; out is unspecified on false and the
// read cursor is not advanced.
func (r *SPSC[T]) Read(out *T) bool {
	region := (r.readCursor & (r.length - 1)) / (r.length / r.granularity)
	counter := &r.versions[region].v

	var tmp versionedSlot[T]
	sw := spin.Wait{}
	for {
		// Unconditional copy-then-check: copying first and validating
		// after avoids a branch on the hot path. The outer retry excludes
		// tearing — if the version counter is still even/zero by the time
		// we check, the bytes we just copied cannot have been disturbed
		// mid-copy by a writer, by the release/acquire pairing below.
		tmp = r.slots[r.readCursor&(r.length-1)]
		if counter.LoadAcquire()&1 == 0 {
			break
		}
		sw.Once()
	}

	// Branchless staleness check: success iff sequenceNumber > readCursor.
	diff := r.readCursor - tmp.sequenceNumber
	success := diff>>63 != 0
	if success {
		*out = tmp.data
		r.readCursor++
	}
	return success
}

// Cap returns the ring's length (total slot count).
func (r *SPSC[T]) Cap() int {
	return int(r.length)
}
