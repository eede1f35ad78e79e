// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatingSet_EmptyMinIsMaxUint64(t *testing.T) {
	g := newGatingSet()
	assert.Equal(t, ^uint64(0), g.min())
}

func TestGatingSet_MinTracksSlowestConsumer(t *testing.T) {
	g := newGatingSet()
	a := g.register(0)
	b := g.register(0)
	a.seq.Store(10)
	b.seq.Store(3)
	assert.Equal(t, uint64(3), g.min())
	b.seq.Store(20)
	assert.Equal(t, uint64(10), g.min())
}

func TestGatingSet_RegisterStartsAtGivenSequence(t *testing.T) {
	g := newGatingSet()
	cc := g.register(42)
	assert.Equal(t, uint64(42), cc.seq.Load())
}

func TestGatingSet_DeregisterRemovesFromMin(t *testing.T) {
	g := newGatingSet()
	slow := g.register(0)
	fast := g.register(0)
	fast.seq.Store(100)
	assert.Equal(t, uint64(0), g.min())
	g.deregister(slow)
	assert.Equal(t, uint64(100), g.min())
}

func TestGatingSet_MinFreezesWhenLastConsumerDeregisters(t *testing.T) {
	g := newGatingSet()
	cc := g.register(0)
	cc.seq.Store(17)
	g.deregister(cc)
	assert.Equal(t, uint64(17), g.min(), "min must freeze at the last consumer's position, not report no pressure")
	assert.Equal(t, uint64(17), g.min(), "frozen min must stay stable across repeated calls")
}

func TestGatingSet_FreezeUnaffectedByConsumersRegisteredBeforeTheLastOne(t *testing.T) {
	g := newGatingSet()
	a := g.register(0)
	b := g.register(0)
	a.seq.Store(5)
	b.seq.Store(9)
	g.deregister(a)
	g.deregister(b)
	assert.Equal(t, uint64(9), g.min(), "freezing the final deregister must use the remaining cursor's value, not a stale one")
}

func TestGatingSet_EachCursorHasUniqueID(t *testing.T) {
	g := newGatingSet()
	a := g.register(0)
	b := g.register(0)
	assert.NotEqual(t, a.id, b.id)
}

func TestGatingSet_ConcurrentRegisterDeregister(t *testing.T) {
	g := newGatingSet()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cc := g.register(0)
			g.min()
			g.deregister(cc)
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(0), g.min())
}
