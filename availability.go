// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"math/bits"
	"sync/atomic"
)

// availabilityBuffer records, per slot, the "round" at which that slot
// was last published. It lets multi-producer sequencers bridge
// non-contiguous claims: two producers can finish publishing out of
// order, and a reader derives the highest *contiguously* published
// sequence by scanning markers forward from its last known point.
//
// N entries of 32 bits are sufficient since round numbers only need to
// distinguish a slot's current generation from its previous one; a
// 64-bit field would simplify alignment at the cost of doubling the
// marker footprint. Markers are not individually cache-line padded:
// false sharing between adjacent slots during a contended publish burst
// is the accepted trade-off for keeping this buffer's footprint at
// 4 bytes/slot rather than 64.
type availabilityBuffer struct {
	markers  []atomic.Uint32
	mask     uint64
	log2Size uint
}

func newAvailabilityBuffer(capacity uint64) *availabilityBuffer {
	a := &availabilityBuffer{
		markers:  make([]atomic.Uint32, capacity),
		mask:     capacity - 1,
		log2Size: uint(bits.TrailingZeros64(capacity)),
	}
	// Nothing is published yet: start every marker at a value that is not
	// round 0, so first-lap sequences do not read as available.
	for i := range a.markers {
		a.markers[i].Store(^uint32(0))
	}
	return a
}

func (a *availabilityBuffer) round(seq uint64) uint32 { return uint32(seq >> a.log2Size) }

// publish marks sequence seq as available with release ordering, so a
// reader's acquire-load of the same marker observes every payload write
// that happened before this call.
func (a *availabilityBuffer) publish(seq uint64) {
	a.markers[seq&a.mask].Store(a.round(seq))
}

// isAvailable reports whether seq has been published, i.e. whether the
// marker at seq's slot equals seq's round.
func (a *availabilityBuffer) isAvailable(seq uint64) bool {
	return a.markers[seq&a.mask].Load() == a.round(seq)
}

// highestContiguous scans forward from 'from' while consecutive
// sequences are available, returning the last one that was. This is the
// only place non-contiguous multi-producer publication is bridged back
// into a single cursor value; it returns from-1 if nothing new is
// available.
func (a *availabilityBuffer) highestContiguous(from, upTo uint64) uint64 {
	seq := from
	for seq <= upTo && a.isAvailable(seq) {
		seq++
	}
	return seq - 1
}
