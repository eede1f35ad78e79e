// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// ring is a fixed-capacity, power-of-two slot array with index wrap via a
// mask. Slots are value-owned: a write transfers ownership of T from
// producer to consumer until the consumer's handler returns and the
// slot is eligible to be overwritten again (enforced by the gating
// sequence, not by the ring itself).
//
// Bounds checks are unnecessary: every index passed in is first reduced
// by mask, so it can never escape [0, len(slots)).
type ring[T any] struct {
	slots []T
	mask  uint64
}

func newRing[T any](capacity uint64) *ring[T] {
	return &ring[T]{
		slots: make([]T, capacity),
		mask:  capacity - 1,
	}
}

func (r *ring[T]) index(seq uint64) uint64 { return seq & r.mask }

func (r *ring[T]) at(seq uint64) *T { return &r.slots[r.index(seq)] }

func (r *ring[T]) capacity() uint64 { return uint64(len(r.slots)) }
