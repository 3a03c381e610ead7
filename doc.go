// ©Brineforge Systems 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package vring provides a lock-free bounded ring buffer for exchanging
// fixed-size, trivially-copyable payloads between threads without locks.
//
// Two producer disciplines are supported, chosen at construction time and
// immutable thereafter:
//
//   - SPSC: Single-Producer Single-Consumer, wait-free writes.
//   - MPSC: Multi-Producer Single-Consumer, lock-free writes.
//
// In both disciplines the consumer is unique. There is no multi-consumer
// variant, no dynamic resizing, and no blocking API — reads spin only
// while a write is in progress in the region (the group of slots sharing
// one version counter) they land on, never otherwise.
//
// # Quick Start
//
//	r := vring.NewSPSC[Event](1024, 1024) // length, version granularity
//
//	// Producer
//	ev := Event{ID: 1}
//	r.Write(&ev)
//
//	// Consumer
//	var out Event
//	if r.Read(&out) {
//	    process(out)
//	}
//
// # Versioning and Granularity
//
// Each ring is parameterized by a length (slot count, a power of two) and
// a version granularity G (also a power of two, dividing length). Every
// length/G contiguous slots share one version counter. G == length gives
// per-slot versioning at the cost of one counter touched per write; G <
// length trades detection precision for less cross-core traffic, since
// writers across a wider region and the consumer contend on fewer
// counters:
//
//	r := vring.NewSPSC[Event](1024, 1024) // per-slot versioning
//	r := vring.NewSPSC[Event](1024, 64)    // 16 slots share each counter
//
// # Producer Disciplines
//
// SPSC (wait-free write, spin-bounded read):
//
//	r := vring.NewSPSC[Reading](4096, 4096)
//
//	go func() { // sole producer
//	    for v := range sensor.Values() {
//	        r.Write(&v)
//	    }
//	}()
//
//	go func() { // sole consumer
//	    var v Reading
//	    for {
//	        if r.Read(&v) {
//	            aggregate(v)
//	        }
//	    }
//	}()
//
// MPSC (lock-free write, spin-bounded read):
//
//	r := vring.NewMPSC[Event](4096, 256)
//
//	for _, src := range sources { // many producers
//	    go func(s Source) {
//	        for ev := range s.Events() {
//	            r.Write(&ev)
//	        }
//	    }(src)
//	}
//
//	go func() { // sole consumer
//	    var ev Event
//	    for {
//	        if r.Read(&ev) {
//	            aggregate(ev)
//	        }
//	    }
//	}()
//
// # Overrun
//
// Write never fails and never signals backpressure. If producers lap the
// consumer before it catches up, the consumer observes as-if-successful
// reads of payloads it never actually saw — the overwritten slot's
// sequence number simply moves past what the consumer was waiting for.
// Callers who cannot tolerate loss must size length generously enough
// that producers cannot outrun the consumer; this package does not detect
// or report the condition (see the adaptor subpackage,
// [github.com/brineforge/vring/adaptor], for an ErrWouldBlock-flavored
// wrapper built for callers who want to react to backpressure instead of
// sizing around it, at the cost of losing the wait-free write guarantee
// on SPSC).
//
// # Thread Safety
//
//   - SPSC: exactly one producer goroutine, exactly one consumer goroutine.
//   - MPSC: any number of producer goroutines, exactly one consumer goroutine.
//
// Violating these constraints (e.g. two goroutines calling Write on an
// SPSC ring) is undefined behavior: the protocol's correctness depends on
// the producer-side invariants holding for exactly the declared discipline.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutexes,
// channels, WaitGroups) but cannot observe the happens-before edges this
// package establishes through acquire/release pairs on the version
// counters alone. The slot's payload and sequence number are plain,
// non-atomic fields — by design, per the versioning protocol — so the
// race detector will flag concurrent access to them even though the
// access is correctly ordered by the surrounding atomic operations.
// Concurrency tests that rely on this pattern are gated by RaceEnabled
// (see race.go / race_off.go) and skipped under -race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives with
// explicit memory ordering and [code.hybscloud.com/spin] for bounded
// spin-wait backoff. The [adaptor] subpackage additionally uses
// [code.hybscloud.com/iox] for semantic sentinel errors.
package vring
