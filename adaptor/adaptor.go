// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package adaptor wraps the core ring buffers with an admission-control
// layer so callers get ErrWouldBlock-style backpressure instead of the
// core's silent overrun behavior.
//
// The core vring.SPSC/vring.MPSC Write never fails — overrun is the
// caller's responsibility to avoid by sizing the buffer (see the vring
// package doc's Overrun section). This package is the external collaborator
// the core spec delegates that concern to: it keeps its own admission
// counters alongside the core ring and refuses Enqueue once they show the
// buffer full, rather than letting the producer lap the consumer.
package adaptor

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"

	"github.com/brineforge/vring"
)

// ErrWouldBlock indicates Enqueue or Dequeue cannot proceed immediately.
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// the rest of the iox-based tooling.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// SPSC wraps a vring.SPSC with admission control, turning the core's
// "never fails, overwrites on overrun" write into a bounded Enqueue that
// reports ErrWouldBlock instead of overrunning the consumer.
type SPSC[T any] struct {
	ring *vring.SPSC[T]
	cap  uint64

	_    [128]byte
	tail atomix.Uint64 // producer-owned admission count
	_    [128]byte
	head atomix.Uint64 // consumer-owned release count
}

// NewSPSC constructs an admission-controlled SPSC wrapper around a fresh
// vring.SPSC of the given length and version granularity.
func NewSPSC[T any](length, granularity int) *SPSC[T] {
	return &SPSC[T]{
		ring: vring.NewSPSC[T](length, granularity),
		cap:  uint64(length),
	}
}

// Enqueue publishes elem, or returns ErrWouldBlock if the admission count
// shows the ring already holds cap un-released writes.
func (s *SPSC[T]) Enqueue(elem *T) error {
	tail := s.tail.LoadRelaxed()
	head := s.head.LoadAcquire()
	if tail-head >= s.cap {
		return ErrWouldBlock
	}
	s.ring.Write(elem)
	s.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue returns the next fresh record, or ErrWouldBlock if none is
// available yet.
func (s *SPSC[T]) Dequeue() (T, error) {
	var out T
	if !s.ring.Read(&out) {
		var zero T
		return zero, ErrWouldBlock
	}
	head := s.head.LoadRelaxed()
	s.head.StoreRelease(head + 1)
	return out, nil
}

// Cap returns the ring's length.
func (s *SPSC[T]) Cap() int {
	return int(s.cap)
}

// MPSC wraps a vring.MPSC with admission control shared across all
// producer goroutines via a CAS-based reservation counter.
type MPSC[T any] struct {
	ring *vring.MPSC[T]
	cap  uint64

	_        [128]byte
	reserved atomix.Uint64 // producers' shared reservation count
	_        [128]byte
	released atomix.Uint64 // consumer-owned release count
}

// NewMPSC constructs an admission-controlled MPSC wrapper around a fresh
// vring.MPSC of the given length and version granularity.
func NewMPSC[T any](length, granularity int) *MPSC[T] {
	return &MPSC[T]{
		ring: vring.NewMPSC[T](length, granularity),
		cap:  uint64(length),
	}
}

// Enqueue publishes elem, or returns ErrWouldBlock if the ring's admission
// count is already at capacity. Producers race on the reservation counter
// exactly as the teacher's FAA-based queues race on their tail counter;
// only the reservation is CAS-raced here, the actual slot claim still
// happens inside vring.MPSC.Write's own CAS loop.
func (m *MPSC[T]) Enqueue(elem *T) error {
	for {
		reserved := m.reserved.LoadAcquire()
		released := m.released.LoadRelaxed()
		if reserved-released >= m.cap {
			return ErrWouldBlock
		}
		if m.reserved.CompareAndSwapAcqRel(reserved, reserved+1) {
			m.ring.Write(elem)
			return nil
		}
	}
}

// Dequeue returns the next fresh record, or ErrWouldBlock if none is
// available yet.
func (m *MPSC[T]) Dequeue() (T, error) {
	var out T
	if !m.ring.Read(&out) {
		var zero T
		return zero, ErrWouldBlock
	}
	m.released.AddRelease(1)
	return out, nil
}

// Cap returns the ring's length.
func (m *MPSC[T]) Cap() int {
	return int(m.cap)
}
