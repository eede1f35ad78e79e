// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// consumerCursor is one registered reader's progress, tagged with a
// stable id so logging and metrics can identify which consumer a
// producer is gated behind.
type consumerCursor struct {
	id  uuid.UUID
	seq *Sequence
}

// gatingSet is the register/deregister side of multi-consumer gating.
// Registration and deregistration are lock-protected since they happen
// at clone/close, not on the hot path. The hot path reads a stable
// snapshot slice captured under the lock, so readers never block behind
// a concurrent register/deregister beyond the snapshot copy.
type gatingSet struct {
	mu       sync.Mutex
	cursors  []*consumerCursor
	snapshot atomic.Pointer[[]*consumerCursor]
	// frozenMin holds the gating minimum from the instant the set last
	// went from one consumer to zero. Once there are no registered
	// consumers left, min() returns this instead of "no pressure", so a
	// producer already gated on that boundary keeps being gated rather
	// than losing backpressure and overwriting unread data forever. It
	// stays at its sentinel value for a set that never had a consumer.
	frozenMin atomic.Uint64
}

func newGatingSet(initial ...*Sequence) *gatingSet {
	g := &gatingSet{}
	g.frozenMin.Store(^uint64(0))
	cursors := make([]*consumerCursor, 0, len(initial))
	for _, s := range initial {
		cursors = append(cursors, &consumerCursor{id: uuid.New(), seq: s})
	}
	g.cursors = cursors
	g.snapshot.Store(&cursors)
	return g
}

// register adds a new consumer cursor initialized to startAt (the
// producer cursor at clone time): the clone starts reading from the
// next unpublished sequence and never sees history.
func (g *gatingSet) register(startAt uint64) *consumerCursor {
	g.mu.Lock()
	defer g.mu.Unlock()
	cc := &consumerCursor{id: uuid.New(), seq: newSequence(startAt)}
	next := make([]*consumerCursor, len(g.cursors)+1)
	copy(next, g.cursors)
	next[len(g.cursors)] = cc
	g.cursors = next
	g.snapshot.Store(&next)
	return cc
}

// deregister removes cc. A configuration that drops the last consumer
// continues to accept sends only until the buffer fills, at which point
// producers block forever: the gating minimum freezes at the set's last
// observed value rather than being treated as "no consumers, no
// pressure" (see frozenMin).
func (g *gatingSet) deregister(cc *consumerCursor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := make([]*consumerCursor, 0, len(g.cursors))
	for _, existing := range g.cursors {
		if existing != cc {
			next = append(next, existing)
		}
	}
	if len(next) == 0 && len(g.cursors) > 0 {
		m := g.cursors[0].seq.LoadAcquire()
		for _, existing := range g.cursors[1:] {
			if v := existing.seq.LoadAcquire(); v < m {
				m = v
			}
		}
		g.frozenMin.Store(m)
	}
	g.cursors = next
	g.snapshot.Store(&next)
}

// min returns G = min(Cᵢ) over the current snapshot. If there are no
// registered consumers, it returns frozenMin: the last gating minimum
// observed before the set emptied, or ^uint64(0) (no pressure) for a
// set that never had a consumer.
func (g *gatingSet) min() uint64 {
	cursors := *g.snapshot.Load()
	if len(cursors) == 0 {
		return g.frozenMin.Load()
	}
	m := cursors[0].seq.LoadAcquire()
	for _, cc := range cursors[1:] {
		if v := cc.seq.LoadAcquire(); v < m {
			m = v
		}
	}
	return m
}
