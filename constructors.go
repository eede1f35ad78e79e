// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import "go.uber.org/zap"

// SPSC builds a single-producer, single-consumer sequencer. capacity
// must be a power of two >= 2.
func SPSC[T any](capacity uint64, pk ProducerWaitKind, ck ConsumerWaitKind, opts ...Option) (*Tx[T], *RxSC[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, nil, err
	}
	cfg := applyOptions(opts)
	consumerCursor := newSequence(0)
	pw := newProducerWaiter(pk, cfg)
	cw := newConsumerWaiter(ck, cfg)
	seq := newSPSequencer[T](capacity, seqGater{consumerCursor}, pw, cw)
	cfg.logger.Info("sequencer constructed",
		zap.String("topology", TopologySPSC.String()), zap.Uint64("capacity", capacity))
	tx := &Tx[T]{seq: seq, metricsLabel: cfg.metricsLabel}
	rx := &RxSC[T]{r: seq.r, pv: seq, cursor: consumerCursor, pw: pw, cw: cw, log: cfg.logger}
	return tx, rx, nil
}

// MPSC builds a multi-producer, single-consumer sequencer. capacity
// must be a power of two >= 2. The returned *TxMP[T] is clonable.
func MPSC[T any](capacity uint64, pk ProducerWaitKind, ck ConsumerWaitKind, opts ...Option) (*TxMP[T], *RxSC[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, nil, err
	}
	cfg := applyOptions(opts)
	consumerCursor := newSequence(0)
	pw := newProducerWaiter(pk, cfg)
	cw := newConsumerWaiter(ck, cfg)
	seq := newMPSequencer[T](capacity, seqGater{consumerCursor}, pw, cw)
	cfg.logger.Info("sequencer constructed",
		zap.String("topology", TopologyMPSC.String()), zap.Uint64("capacity", capacity))
	tx := &TxMP[T]{seq: seq, metricsLabel: cfg.metricsLabel}
	rx := &RxSC[T]{r: seq.r, pv: seq, cursor: consumerCursor, pw: pw, cw: cw, log: cfg.logger}
	return tx, rx, nil
}

// SPMC builds a single-producer, multi-consumer sequencer. capacity
// must be a power of two >= 2. The returned *RxMC[T] is clonable.
func SPMC[T any](capacity uint64, pk ProducerWaitKind, ck ConsumerWaitKind, opts ...Option) (*Tx[T], *RxMC[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, nil, err
	}
	cfg := applyOptions(opts)
	gating := newGatingSet()
	pw := newProducerWaiter(pk, cfg)
	cw := newConsumerWaiter(ck, cfg)
	seq := newSPSequencer[T](capacity, gating, pw, cw)
	cc := gating.register(0)
	cfg.logger.Info("sequencer constructed",
		zap.String("topology", TopologySPMC.String()), zap.Uint64("capacity", capacity))
	tx := &Tx[T]{seq: seq, metricsLabel: cfg.metricsLabel}
	rx := &RxMC[T]{r: seq.r, pv: seq, gating: gating, cc: cc, pw: pw, cw: cw, log: cfg.logger}
	return tx, rx, nil
}

// MPMC builds a multi-producer, multi-consumer sequencer. capacity must
// be a power of two >= 2. Both returned handles are clonable.
func MPMC[T any](capacity uint64, pk ProducerWaitKind, ck ConsumerWaitKind, opts ...Option) (*TxMP[T], *RxMC[T], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, nil, err
	}
	cfg := applyOptions(opts)
	gating := newGatingSet()
	pw := newProducerWaiter(pk, cfg)
	cw := newConsumerWaiter(ck, cfg)
	seq := newMPSequencer[T](capacity, gating, pw, cw)
	cc := gating.register(0)
	cfg.logger.Info("sequencer constructed",
		zap.String("topology", TopologyMPMC.String()), zap.Uint64("capacity", capacity))
	tx := &TxMP[T]{seq: seq, metricsLabel: cfg.metricsLabel}
	rx := &RxMC[T]{r: seq.r, pv: seq, gating: gating, cc: cc, pw: pw, cw: cw, log: cfg.logger}
	return tx, rx, nil
}
