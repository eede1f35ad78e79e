// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"runtime"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// ProducerWaitKind enumerates the producer-side wait strategies. It is a
// distinct type from ConsumerWaitKind so that passing one where the other
// is expected is a compile error, per the core's "incompatible pairings
// refused at compile time" contract.
type ProducerWaitKind int

const (
	// Spinning is a tight re-check loop with no signaling: lowest
	// latency, burns a core.
	Spinning ProducerWaitKind = iota
	// YieldingSpin spins a bounded number of iterations, then yields to
	// the scheduler.
	YieldingSpin
	// SleepingWait spins briefly, then sleeps for an
	// exponentially-growing bounded interval.
	SleepingWait
	// BlockingWait parks on a condition variable and wakes via Signal
	// from the opposite side.
	BlockingWait
)

// ConsumerWaitKind enumerates the consumer-side wait strategies. See
// ProducerWaitKind.
type ConsumerWaitKind int

const (
	// CSpinning mirrors Spinning on the consumer side.
	CSpinning ConsumerWaitKind = iota
	// CYieldingSpin mirrors YieldingSpin on the consumer side.
	CYieldingSpin
	// CSleepingWait mirrors SleepingWait on the consumer side.
	CSleepingWait
	// CBlockingWait mirrors BlockingWait on the consumer side.
	CBlockingWait
)

// DefaultProducerWait is the strategy used when a caller has no
// preference.
const DefaultProducerWait = Spinning

// DefaultConsumerWait is the strategy used when a caller has no
// preference.
const DefaultConsumerWait = CSpinning

const spinThreshold = 100

// poll reports the currently observed sequence value and whether the
// caller's wait condition (sufficient free capacity, or sufficient
// published data) is satisfied.
type poll func() (observed uint64, ok bool)

// ProducerWaiter blocks a producer until enough capacity has been freed:
// gating.LoadAcquire()+N >= claim+needed. Signal wakes a parked producer;
// it is a no-op for strategies that never park.
type ProducerWaiter interface {
	WaitForFree(p poll) uint64
	Signal()
}

// ConsumerWaiter blocks a consumer until data is available. PeekAvailable
// is the non-blocking variant used by Recv.
type ConsumerWaiter interface {
	WaitForAvailable(p poll) uint64
	PeekAvailable(p poll) (uint64, bool)
	Signal()
}

// spinWait is the Spinning strategy: a tight re-check loop.
type spinWait struct{}

func (spinWait) waitUntil(p poll) uint64 {
	for {
		if v, ok := p(); ok {
			return v
		}
	}
}
func (s spinWait) WaitForFree(p poll) uint64           { return s.waitUntil(p) }
func (s spinWait) WaitForAvailable(p poll) uint64      { return s.waitUntil(p) }
func (spinWait) PeekAvailable(p poll) (uint64, bool)   { return p() }
func (spinWait) Signal()                               {}

// yieldWait is YieldingSpin: spin spinThreshold times, then
// runtime.Gosched. Grounded on five-vee-go-disruptor's yield-on-contention
// loop, which uses runtime.Gosched for exactly this purpose.
type yieldWait struct{}

func (yieldWait) waitUntil(p poll) uint64 {
	spins := 0
	for {
		if v, ok := p(); ok {
			return v
		}
		spins++
		if spins >= spinThreshold {
			runtime.Gosched()
		}
	}
}
func (y yieldWait) WaitForFree(p poll) uint64         { return y.waitUntil(p) }
func (y yieldWait) WaitForAvailable(p poll) uint64    { return y.waitUntil(p) }
func (yieldWait) PeekAvailable(p poll) (uint64, bool) { return p() }
func (yieldWait) Signal()                             {}

// sleepWait is Sleeping: spin spinThreshold times, then sleep for an
// exponentially-growing, bounded interval using cenkalti/backoff's
// ExponentialBackOff. A fresh BackOff is built per wait session (never
// shared across goroutines), since multiple producers or consumers may
// be waiting concurrently.
type sleepWait struct {
	initialInterval time.Duration
	maxInterval     time.Duration
}

func newSleepWait() sleepWait {
	return sleepWait{initialInterval: 50 * time.Microsecond, maxInterval: 5 * time.Millisecond}
}

func (s sleepWait) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.initialInterval
	b.MaxInterval = s.maxInterval
	b.MaxElapsedTime = 0 // never stop retrying on its own; the poll loop owns termination
	return b
}

func (s sleepWait) waitUntil(p poll) uint64 {
	spins := 0
	var b *backoff.ExponentialBackOff
	for {
		if v, ok := p(); ok {
			return v
		}
		spins++
		if spins < spinThreshold {
			continue
		}
		if b == nil {
			b = s.newBackOff()
		}
		d := b.NextBackOff()
		if d == backoff.Stop {
			d = s.maxInterval
		}
		time.Sleep(d)
	}
}
func (s sleepWait) WaitForFree(p poll) uint64         { return s.waitUntil(p) }
func (s sleepWait) WaitForAvailable(p poll) uint64    { return s.waitUntil(p) }
func (sleepWait) PeekAvailable(p poll) (uint64, bool) { return p() }
func (sleepWait) Signal()                             {}

// blockWait is Blocking: park on a condition variable, wake via Signal
// from the opposite side. Highest latency, zero idle CPU.
//
// stallThreshold and log are diagnostics only: if a wait session runs
// past the threshold, it is logged once so an operator can tell a
// genuinely stuck pipeline from ordinary backpressure. Neither field is
// read on any other wait strategy's path.
type blockWait struct {
	mu             sync.Mutex
	cond           *sync.Cond
	stallThreshold time.Duration
	role           string
	log            stallLogger
}

// stallLogger is the minimal surface blockWait needs from *zap.Logger,
// kept as an interface so wait.go has no compile-time dependency on the
// logging option wiring in options.go.
type stallLogger interface {
	Warn(msg string, fields ...zap.Field)
}

func newBlockWait(role string, threshold time.Duration, log stallLogger) *blockWait {
	b := &blockWait{stallThreshold: threshold, role: role, log: log}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *blockWait) waitUntil(p poll) uint64 {
	start := time.Now()
	warned := false
	b.mu.Lock()
	defer b.mu.Unlock()
	for {
		if v, ok := p(); ok {
			return v
		}
		if !warned && b.stallThreshold > 0 && time.Since(start) > b.stallThreshold && b.log != nil {
			warned = true
			b.log.Warn("wait strategy stalled past threshold",
				zap.String("role", b.role), zap.Duration("elapsed", time.Since(start)))
		}
		b.cond.Wait()
	}
}
func (b *blockWait) WaitForFree(p poll) uint64           { return b.waitUntil(p) }
func (b *blockWait) WaitForAvailable(p poll) uint64      { return b.waitUntil(p) }
func (b *blockWait) PeekAvailable(p poll) (uint64, bool) { return p() }
func (b *blockWait) Signal() {
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}

func newProducerWaiter(kind ProducerWaitKind, cfg *config) ProducerWaiter {
	switch kind {
	case YieldingSpin:
		return yieldWait{}
	case SleepingWait:
		return newSleepWait()
	case BlockingWait:
		return newBlockWait("producer", cfg.stallThreshold, cfg.logger)
	default:
		return spinWait{}
	}
}

func newConsumerWaiter(kind ConsumerWaitKind, cfg *config) ConsumerWaiter {
	switch kind {
	case CYieldingSpin:
		return yieldWait{}
	case CSleepingWait:
		return newSleepWait()
	case CBlockingWait:
		return newBlockWait("consumer", cfg.stallThreshold, cfg.logger)
	default:
		return spinWait{}
	}
}
