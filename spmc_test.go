// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPMC_EachClonedConsumerSeesEveryEvent(t *testing.T) {
	tx, rx1, err := SPMC[int](16, Spinning, CSpinning)
	require.NoError(t, err)
	rx2 := rx1.Clone()

	for i := 0; i < 5; i++ {
		tx.Send(i)
	}

	var got1, got2 []int
	rx1.Recv(func(v int) { got1 = append(got1, v) })
	rx2.Recv(func(v int) { got2 = append(got2, v) })

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got1)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got2)
}

func TestSPMC_ClonedConsumerNeverSeesHistory(t *testing.T) {
	tx, rx1, err := SPMC[int](16, Spinning, CSpinning)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		tx.Send(i)
	}
	rx1.Recv(func(int) {}) // rx1 catches up before rx2 ever exists

	rx2 := rx1.Clone()
	tx.Send(99)

	var got []int
	rx2.Recv(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{99}, got, "a clone must never observe events published before it existed")
}

func TestSPMC_ClosedConsumerStopsGatingProducer(t *testing.T) {
	tx, rx1, err := SPMC[int](2, Spinning, CSpinning)
	require.NoError(t, err)
	rx2 := rx1.Clone()
	rx2.Close()

	tx.Send(1)
	tx.Send(2)

	sendDone := make(chan struct{})
	go func() {
		tx.Send(3) // only rx1 gates now; rx1 hasn't read anything, so this still blocks
		close(sendDone)
	}()
	select {
	case <-sendDone:
		t.Fatal("producer should still be gated by the remaining live consumer")
	case <-time.After(30 * time.Millisecond):
	}

	rx1.Recv(func(int) {})
	select {
	case <-sendDone:
	case <-time.After(time.Second):
		t.Fatal("producer never unblocked once the live consumer advanced")
	}
}

func TestSPMC_AllConsumersClosedFreezesBackpressureForever(t *testing.T) {
	// BlockingWait so the final, permanently-gated Send parks on a
	// condition variable instead of burning a core for the rest of the
	// test run.
	tx, rx1, err := SPMC[int](2, BlockingWait, CSpinning)
	require.NoError(t, err)
	rx2 := rx1.Clone()

	tx.Send(1)
	tx.Send(2)
	rx1.Recv(func(int) {})
	rx2.Recv(func(int) {})

	rx1.Close()
	rx2.Close()

	sendDone := make(chan struct{})
	go func() {
		tx.Send(3)
		tx.Send(4) // fills the now-unread buffer relative to the frozen gate
		close(sendDone)
	}()
	select {
	case <-sendDone:
	case <-time.After(time.Second):
		t.Fatal("producer should still fill up to the frozen gating boundary")
	}

	blocked := make(chan struct{})
	go func() {
		tx.Send(5) // ring is now full relative to the frozen min; must block forever
		close(blocked)
	}()
	select {
	case <-blocked:
		t.Fatal("producer unblocked after every consumer closed; backpressure was lost")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSPMC_FanOutStressAllConsumersComplete(t *testing.T) {
	const n = 5000
	const consumers = 4

	tx, rx0, err := SPMC[int](128, YieldingSpin, CYieldingSpin)
	require.NoError(t, err)

	rxs := []*RxMC[int]{rx0}
	for i := 1; i < consumers; i++ {
		rxs = append(rxs, rx0.Clone())
	}

	go func() {
		for i := 0; i < n; i++ {
			tx.Send(i)
		}
	}()

	var wg sync.WaitGroup
	wg.Add(consumers)
	for _, rx := range rxs {
		go func(rx *RxMC[int]) {
			defer wg.Done()
			count := 0
			for count < n {
				status := rx.Recv(func(int) {})
				count += status.N
			}
		}(rx)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("not every cloned consumer drained all events")
	}
}
