// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// Topology tags the producer/consumer multiplicity a sequencer was built
// with. Dispatch inside Send/SendN/Recv/BlockingRecv never branches on
// Topology — each constructor materializes a distinct concrete sequencer
// type instead, favoring monomorphization over a runtime branch on the
// hot path. Topology exists for introspection: the "topology" field of
// each constructor's log line.
type Topology int

const (
	TopologySPSC Topology = iota
	TopologySPMC
	TopologyMPSC
	TopologyMPMC
)

func (t Topology) String() string {
	switch t {
	case TopologySPSC:
		return "spsc"
	case TopologySPMC:
		return "spmc"
	case TopologyMPSC:
		return "mpsc"
	case TopologyMPMC:
		return "mpmc"
	default:
		return "unknown"
	}
}

// gater abstracts "the producer-side gating minimum," letting the SP and
// MP sequencers share claim logic regardless of whether gating comes
// from a single consumer cursor (SC) or a registered set (MC).
type gater interface {
	min() uint64
}

// seqGater adapts a lone *Sequence (the single-consumer case) to gater.
type seqGater struct{ s *Sequence }

func (g seqGater) min() uint64 { return g.s.LoadAcquire() }

// producerView abstracts "what is the highest sequence currently safe
// to read," letting consumer handles share logic across SP (directly
// published) and MP (bridged via the availability buffer) sequencers.
type producerView interface {
	highestAvailable(from uint64) uint64
	// snapshotCursor returns a cheap upper bound on published sequences,
	// used to initialize a newly cloned MC consumer's cursor so it
	// never observes history.
	snapshotCursor() uint64
}
