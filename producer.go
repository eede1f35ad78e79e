// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// Tx is a single-producer handle, returned by SPSC and SPMC. Only one
// goroutine may call its methods; concurrent calls from multiple
// goroutines violate the single-producer contract and are undefined.
type Tx[T any] struct {
	seq          *spSequencer[T]
	metricsLabel string
}

// cursorSnapshot exposes the producer cursor for metrics collection.
func (tx *Tx[T]) cursorSnapshot() uint64 { return tx.seq.snapshotCursor() }

// Send claims one slot, writes v, and publishes it. It blocks per the
// producer wait strategy when the ring is full. It never fails absent a
// panic in T's assignment.
//
// If the caller's surrounding code panics between claim and publish (not
// possible here since write is a plain assignment, but relevant for
// callers wrapping Send), the producer cursor is simply never advanced
// past the claimed slot, and the next Send reclaims the same position.
func (tx *Tx[T]) Send(v T) {
	lo, hi := tx.seq.claim(1)
	*tx.seq.r.at(lo) = v
	tx.seq.publish(lo, hi)
}

// SendN claims len(values) slots, writes them in order, and publishes
// the whole batch as one contiguous, atomically-visible range: no reader
// ever observes a partial batch. It returns the claimed [lo, hi] range.
func (tx *Tx[T]) SendN(values []T) (lo, hi uint64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = tx.seq.claim(uint64(len(values)))
	for i, v := range values {
		*tx.seq.r.at(lo + uint64(i)) = v
	}
	tx.seq.publish(lo, hi)
	return lo, hi
}

// TxMP is a multi-producer handle, returned by MPSC and MPMC. It is
// clonable: every clone shares the same underlying sequencer and may
// call Send/SendN concurrently with any other clone.
type TxMP[T any] struct {
	seq          *mpSequencer[T]
	metricsLabel string
}

// cursorSnapshot exposes the claim counter for metrics collection.
func (tx *TxMP[T]) cursorSnapshot() uint64 { return tx.seq.snapshotCursor() }

// Clone returns an independent handle sharing this producer's
// sequencer. Clones may send concurrently with each other and with the
// original handle.
func (tx *TxMP[T]) Clone() *TxMP[T] {
	return &TxMP[T]{seq: tx.seq, metricsLabel: tx.metricsLabel}
}

// Send claims one slot from the shared claim counter, writes v, and
// publishes it via the availability buffer. It blocks per the producer
// wait strategy when the ring is full.
func (tx *TxMP[T]) Send(v T) {
	lo, hi := tx.seq.claim(1)
	*tx.seq.r.at(lo) = v
	tx.seq.publish(lo, hi)
}

// SendN claims len(values) contiguous sequences from the shared claim
// counter, writes them in order, and marks each available. Concurrent
// SendN calls from distinct clones may interleave with this batch at
// slot granularity, but no reader ever observes a partial batch from a
// single call. It returns the claimed [lo, hi] range.
func (tx *TxMP[T]) SendN(values []T) (lo, hi uint64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = tx.seq.claim(uint64(len(values)))
	for i, v := range values {
		*tx.seq.r.at(lo + uint64(i)) = v
	}
	tx.seq.publish(lo, hi)
	return lo, hi
}
