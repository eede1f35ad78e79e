// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// spSequencer is the single-producer claim/publish policy shared by the
// SPSC and SPMC topologies. There is no CAS on the hot path: a single
// writer advances the producer cursor directly.
//
// Gating differs between the two topologies (a lone consumer cursor for
// SPSC, a registered set's minimum for SPMC) and is abstracted behind
// gater so this type needs no topology-specific branch.
type spSequencer[T any] struct {
	r              *ring[T]
	capacity       uint64
	producerCursor *Sequence
	gate           gater
	pw             ProducerWaiter
	cw             ConsumerWaiter
}

func newSPSequencer[T any](capacity uint64, gate gater, pw ProducerWaiter, cw ConsumerWaiter) *spSequencer[T] {
	return &spSequencer[T]{
		r:              newRing[T](capacity),
		capacity:       capacity,
		producerCursor: newSequence(0),
		gate:           gate,
		pw:             pw,
		cw:             cw,
	}
}

// claim reserves [next, target] for the sole producer, blocking via the
// producer wait strategy until there's room.
func (sp *spSequencer[T]) claim(k uint64) (lo, hi uint64) {
	next := sp.producerCursor.Load() + 1
	target := next + k - 1
	sp.pw.WaitForFree(func() (uint64, bool) {
		g := sp.gate.min()
		return g, target <= g+sp.capacity
	})
	return next, target
}

// publish makes [lo, hi] visible. SP publish is strictly contiguous: a
// publish of hi is impossible without the producer cursor already being
// hi's predecessor, since claim/publish pairs are issued in order by the
// single producer goroutine.
func (sp *spSequencer[T]) publish(lo, hi uint64) {
	sp.producerCursor.StoreRelease(hi)
	sp.cw.Signal()
}

func (sp *spSequencer[T]) highestAvailable(_ uint64) uint64 {
	return sp.producerCursor.LoadAcquire()
}

func (sp *spSequencer[T]) snapshotCursor() uint64 {
	return sp.producerCursor.Load()
}
