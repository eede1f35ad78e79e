// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// mpSequencer is the multi-producer claim/publish policy shared by the
// MPSC and MPMC topologies. Producers coordinate via CAS on a shared
// claim counter; the availability buffer bridges the resulting
// non-contiguous publication back into a single readable cursor.
type mpSequencer[T any] struct {
	r        *ring[T]
	capacity uint64
	claim_   *Sequence // shared claim counter, C_claim
	avail    *availabilityBuffer
	gate     gater
	pw       ProducerWaiter
	cw       ConsumerWaiter
}

func newMPSequencer[T any](capacity uint64, gate gater, pw ProducerWaiter, cw ConsumerWaiter) *mpSequencer[T] {
	return &mpSequencer[T]{
		r:        newRing[T](capacity),
		capacity: capacity,
		claim_:   newSequence(0),
		avail:    newAvailabilityBuffer(capacity),
		gate:     gate,
		pw:       pw,
		cw:       cw,
	}
}

// claim reserves [old+1, target] for the calling producer. Multiple
// producers race the same CAS; a loser retries from a freshly loaded
// claim value rather than assuming its snapshot is still current.
func (mp *mpSequencer[T]) claim(k uint64) (lo, hi uint64) {
	for {
		old := mp.claim_.Load()
		target := old + k
		g := mp.gate.min()
		if target > g+mp.capacity {
			mp.pw.WaitForFree(func() (uint64, bool) {
				g2 := mp.gate.min()
				return g2, target <= g2+mp.capacity
			})
			continue
		}
		if mp.claim_.CAS(old, target) {
			return old + 1, target
		}
	}
}

// publish marks every sequence in [lo, hi] available. No single
// release-store of a contiguous cursor is possible here: two producers
// may finish out of order, so each slot's marker is the unit of
// visibility. Markers are stored from hi down to lo, so a reader that
// observes lo as available also observes the rest of the batch.
func (mp *mpSequencer[T]) publish(lo, hi uint64) {
	for s := hi; ; s-- {
		mp.avail.publish(s)
		if s == lo {
			break
		}
	}
	mp.cw.Signal()
}

// highestAvailable bridges non-contiguous publication: it scans forward
// from 'from' while the availability marker matches, bounded above by
// the highest sequence any producer has claimed so far. This bound is
// what keeps the scan's cost proportional to a consumer's lag rather
// than to the total sequence count.
func (mp *mpSequencer[T]) highestAvailable(from uint64) uint64 {
	upTo := mp.claim_.Load()
	if from > upTo {
		return from - 1
	}
	return mp.avail.highestContiguous(from, upTo)
}

func (mp *mpSequencer[T]) snapshotCursor() uint64 {
	return mp.claim_.Load()
}
