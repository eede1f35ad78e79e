// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import "go.uber.org/zap"

// RxSC is a single-consumer handle, returned by SPSC and MPSC. It is not
// clonable: a single-consumer handle is refused at compile time by
// simply not exposing a Clone method on this type.
type RxSC[T any] struct {
	r      *ring[T]
	pv     producerView
	cursor *Sequence
	pw     ProducerWaiter
	cw     ConsumerWaiter
	log    *zap.Logger
}

// Recv is non-blocking. It processes every available slot up to the
// highest currently published sequence, in order, then releases by
// advancing the consumer cursor and signaling the producer wait
// strategy. If nothing is available it returns Idle immediately.
//
// handler receives each event by value; it must not retain references
// beyond the call, since the slot may be overwritten as soon as this
// call advances the cursor.
func (rx *RxSC[T]) Recv(handler func(T)) Status {
	next := rx.cursor.Load() + 1
	high, ok := rx.cw.PeekAvailable(func() (uint64, bool) {
		h := rx.pv.highestAvailable(next)
		return h, h >= next
	})
	if !ok {
		return Status{Kind: Idle}
	}
	n := rx.drain(next, high, handler)
	return Status{Kind: Processed, N: n}
}

// BlockingRecv blocks via the consumer wait strategy until at least one
// sequence is available, then processes up to maxBatch slots and
// returns. It is the steady-state consumer loop.
func (rx *RxSC[T]) BlockingRecv(maxBatch int, handler func(T)) {
	next := rx.cursor.Load() + 1
	high := rx.cw.WaitForAvailable(func() (uint64, bool) {
		h := rx.pv.highestAvailable(next)
		return h, h >= next
	})
	if maxBatch < 1 {
		maxBatch = 1
	}
	if cap64 := next + uint64(maxBatch) - 1; high > cap64 {
		high = cap64
	}
	rx.drain(next, high, handler)
}

// Lag reports how far behind the highest published sequence this
// consumer is: a diagnostic, not part of the core contract.
func (rx *RxSC[T]) Lag() uint64 {
	c := rx.cursor.Load()
	high := rx.pv.highestAvailable(c + 1)
	if high < c {
		return 0
	}
	return high - c
}

// lagsByID exposes this consumer's lag keyed by a fixed label, for
// metrics collection; single-consumer topologies have exactly one
// gating cursor.
func (rx *RxSC[T]) lagsByID() map[string]uint64 {
	return map[string]uint64{"sc": rx.Lag()}
}

func (rx *RxSC[T]) drain(next, high uint64, handler func(T)) int {
	n := 0
	for s := next; s <= high; s++ {
		handler(*rx.r.at(s))
		n++
	}
	rx.cursor.StoreRelease(high)
	rx.pw.Signal()
	return n
}

// RxMC is a multi-consumer handle, returned by SPMC and MPMC. It is
// clonable: every clone registers its own cursor in the gating set and
// sees every future event independently of the others.
type RxMC[T any] struct {
	r      *ring[T]
	pv     producerView
	gating *gatingSet
	cc     *consumerCursor
	pw     ProducerWaiter
	cw     ConsumerWaiter
	log    *zap.Logger
}

// Recv mirrors RxSC.Recv.
func (rx *RxMC[T]) Recv(handler func(T)) Status {
	next := rx.cc.seq.Load() + 1
	high, ok := rx.cw.PeekAvailable(func() (uint64, bool) {
		h := rx.pv.highestAvailable(next)
		return h, h >= next
	})
	if !ok {
		return Status{Kind: Idle}
	}
	n := rx.drain(next, high, handler)
	return Status{Kind: Processed, N: n}
}

// BlockingRecv mirrors RxSC.BlockingRecv.
func (rx *RxMC[T]) BlockingRecv(maxBatch int, handler func(T)) {
	next := rx.cc.seq.Load() + 1
	high := rx.cw.WaitForAvailable(func() (uint64, bool) {
		h := rx.pv.highestAvailable(next)
		return h, h >= next
	})
	if maxBatch < 1 {
		maxBatch = 1
	}
	if cap64 := next + uint64(maxBatch) - 1; high > cap64 {
		high = cap64
	}
	rx.drain(next, high, handler)
}

// Lag mirrors RxSC.Lag.
func (rx *RxMC[T]) Lag() uint64 {
	c := rx.cc.seq.Load()
	high := rx.pv.highestAvailable(c + 1)
	if high < c {
		return 0
	}
	return high - c
}

// Clone registers a fresh cursor initialized to the sequencer's current
// producer-side snapshot and returns an independent handle bound to it.
// The clone never sees history: it starts reading from the next
// sequence not yet guaranteed published at clone time.
func (rx *RxMC[T]) Clone() *RxMC[T] {
	startAt := rx.pv.snapshotCursor()
	cc := rx.gating.register(startAt)
	rx.log.Debug("consumer cloned", zap.String("consumer_id", cc.id.String()), zap.Uint64("start_at", startAt))
	return &RxMC[T]{r: rx.r, pv: rx.pv, gating: rx.gating, cc: cc, pw: rx.pw, cw: rx.cw, log: rx.log}
}

// Close deregisters this consumer's cursor, so it stops gating
// producers. Dropping a receiver without calling Close is well-defined
// but does not unblock a producer already parked behind it — the API
// makes no close-signal guarantee.
func (rx *RxMC[T]) Close() {
	rx.gating.deregister(rx.cc)
	rx.log.Debug("consumer closed", zap.String("consumer_id", rx.cc.id.String()))
}

// lagsByID exposes every registered consumer's lag keyed by its id, for
// metrics collection. It walks the same snapshot the gating hot path
// reads, so it never blocks behind a concurrent clone/close.
func (rx *RxMC[T]) lagsByID() map[string]uint64 {
	cursors := *rx.gating.snapshot.Load()
	out := make(map[string]uint64, len(cursors))
	for _, cc := range cursors {
		c := cc.seq.Load()
		high := rx.pv.highestAvailable(c + 1)
		if high < c {
			out[cc.id.String()] = 0
			continue
		}
		out[cc.id.String()] = high - c
	}
	return out
}

func (rx *RxMC[T]) drain(next, high uint64, handler func(T)) int {
	n := 0
	for s := next; s <= high; s++ {
		handler(*rx.r.at(s))
		n++
	}
	rx.cc.seq.StoreRelease(high)
	rx.pw.Signal()
	return n
}
