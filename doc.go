// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package flux is a low-latency, in-process, lock-free message passing
// core built on a bounded ring buffer with a Disruptor-style sequencer.
//
// # Topologies
//
// Four constructors bind a ring buffer to a sequencer variant:
//
//	SPSC: single producer, single consumer
//	MPSC: multiple producers, single consumer
//	SPMC: single producer, multiple consumers
//	MPMC: multiple producers, multiple consumers
//
// Each returns a producer handle and a consumer handle bound to that
// topology. Producer handles expose Send and SendN; consumer handles
// expose Recv (non-blocking) and BlockingRecv.
//
// # Wait strategies
//
// Both sides of a sequencer take an independent wait strategy kind,
// chosen once at construction:
//
//	Spinning:     tight re-check loop, lowest latency, burns a core
//	YieldingSpin: bounded spin then runtime.Gosched
//	SleepingWait: bounded spin then exponentially-growing bounded sleep
//	BlockingWait: park on a condition variable, zero idle CPU
//
// # Quick start
//
//	tx, rx, err := flux.SPSC[int](1024, flux.Spinning, flux.CSpinning)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go func() {
//	    for i := 0; i < 1000; i++ {
//	        tx.Send(i)
//	    }
//	}()
//	for n := 0; n < 1000; {
//	    rx.BlockingRecv(64, func(v int) { n++ })
//	}
//
// # Non-goals
//
// No persistence, no cross-process transport, no resizing, no dynamic
// element types, no priority or fairness beyond per-producer FIFO.
package flux
