// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vring

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MPSC is a multi-producer single-consumer bounded ring buffer.
//
// Writes are lock-free but not wait-free: a producer may retry arbitrarily
// many times under contention with other producers, though the system as
// a whole always makes progress. The consumer read protocol is identical
// to SPSC's, checking the region's version counter for non-zero (a writer
// refcount) rather than for odd parity.
//
// MPSC does not promise FIFO ordering between concurrent producers — the
// order two producers' writes land in is decided by which one wins the
// producer-cursor CAS, not by submission time.
type MPSC[T any] struct {
	_              pad
	slots          []versionedSlot[T]
	_              pad
	versions       []versionCounter
	_              pad
	producerCursor atomix.Uint64
	_              pad
	readCursor     uint64 // consumer-owned, never touched by producers
	_              pad
	length         uint64
	granularity    uint64
}

// NewMPSC constructs an MPSC ring buffer of the given length with version
// counters grouped into the given granularity. See NewSPSC for the
// parameter constraints.
func NewMPSC[T any](length, granularity int) *MPSC[T] {
	validateRingParams(length, granularity)
	return &MPSC[T]{
		slots:       make([]versionedSlot[T], length),
		versions:    make([]versionCounter, granularity),
		length:      uint64(length),
		granularity: uint64(granularity),
	}
}

// Write claims the next sequence number via a CAS loop and publishes data
// into its slot. Never fails; under contention the call may retry, but
// always eventually succeeds (lock-free, not wait-free).
func (r *MPSC[T]) Write(data *T) {
	var held *versionCounter
	var guard uint64
	sw := spin.Wait{}

	for {
		seq := r.producerCursor.LoadRelaxed()
		region := (seq & (r.length - 1)) / (r.length / r.granularity)
		next := &r.versions[region]

		switch {
		case held == nil:
			// First iteration: claim this region.
			guard = next.v.AddRelaxed(1)
		case next != held:
			// Retry landed in a different region than our last claim —
			// correct the stale claim before taking the new one. Doing
			// the correction here, at the top of the next iteration,
			// rather than at the bottom of the failing one, keeps the
			// invariant "some counter in the in-progress region is
			// non-zero throughout the producer's presence there" true
			// without ever leaving a window where the consumer could
			// observe a falsely-quiescent region.
			decRelaxed(&held.v)
			guard = next.v.AddRelaxed(1)
		default:
			// Retry landed in the same region as our last claim: the
			// increment already in place still applies, no counter work
			// needed. guard keeps its value from the earlier iteration.
		}
		held = next

		if r.producerCursor.CompareAndSwapAcqRel(seq, seq+1) {
			if guard != 0 {
				slot := &r.slots[seq&(r.length-1)]
				slot.data = *data
				slot.sequenceNumber = seq + 1
			}
			// Release publishes the slot write above and relinquishes
			// this producer's claim on the region.
			decRelease(&held.v)
			return
		}
		sw.Once()
	}
}

// Read attempts to deliver the next fresh record into out. Returns true
// iff a fresh record was delivered; out is unspecified on false and the
// read cursor is not advanced.
//
// Identical to SPSC.Read except the region's version counter is checked
// against zero (a refcount) rather than against parity.
func (r *MPSC[T]) Read(out *T) bool {
	region := (r.readCursor & (r.length - 1)) / (r.length / r.granularity)
	counter := &r.versions[region].v

	var tmp versionedSlot[T]
	sw := spin.Wait{}
	for {
		tmp = r.slots[r.readCursor&(r.length-1)]
		if counter.LoadAcquire() == 0 {
			break
		}
		sw.Once()
	}

	diff := r.readCursor - tmp.sequenceNumber
	success := diff>>63 != 0
	if success {
		*out = tmp.data
		r.readCursor++
	}
	return success
}

// Cap returns the ring's length (total slot count).
func (r *MPSC[T]) Cap() int {
	return int(r.length)
}
