// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import "sync/atomic"

const cacheLinePad = 64

// Sequence is a monotonically increasing 64-bit counter, padded to a
// cache line on both sides to prevent false sharing with neighboring
// fields. It never wraps in practice.
//
// Hot-path atomics deliberately stay on sync/atomic rather than an
// ecosystem wrapper: the claim CAS and cursor publish/observe calls are
// the single most contended operations in the sequencer, and the core
// explicitly favors inlinable dispatch over any added indirection there.
type Sequence struct {
	_ [cacheLinePad]byte
	v atomic.Uint64
	_ [cacheLinePad - 8]byte
}

// newSequence returns a Sequence initialized to v.
func newSequence(v uint64) *Sequence {
	s := &Sequence{}
	s.v.Store(v)
	return s
}

// Load performs a relaxed-style load for a cursor's own owner inspecting
// its own progress. Go's memory model does not expose relaxed atomics, so
// this is a plain atomic load; the distinction from LoadAcquire is
// documentation of intent, not a different instruction.
func (s *Sequence) Load() uint64 { return s.v.Load() }

// LoadAcquire loads a cursor published by another goroutine. Paired with
// the writer's StoreRelease, it establishes happens-before so that payload
// writes made before the publish are visible after this load observes it.
func (s *Sequence) LoadAcquire() uint64 { return s.v.Load() }

// Store performs an ordinary store for a cursor inspected only by its own
// owner (no cross-goroutine synchronization is required).
func (s *Sequence) Store(v uint64) { s.v.Store(v) }

// StoreRelease publishes v so that a paired LoadAcquire by another
// goroutine observes every write that happened before this call.
func (s *Sequence) StoreRelease(v uint64) { s.v.Store(v) }

// CAS attempts to move the sequence from old to new, release-ordered on
// success. Used by multi-producer claim loops racing over a shared
// counter.
func (s *Sequence) CAS(old, new uint64) bool { return s.v.CompareAndSwap(old, new) }

// Add atomically adds delta and returns the new value. The sequencers do
// not call it: the single-producer path advances its cursor with
// StoreRelease and the multi-producer path claims with CAS.
func (s *Sequence) Add(delta uint64) uint64 { return s.v.Add(delta) }
