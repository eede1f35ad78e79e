// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a prometheus.Collector exposing a sequencer's producer
// cursor and per-consumer lag. It never touches the hot path: Collect
// is only invoked by a scraper or test, out of band from Send/Recv.
//
// Unlike the per-metric-sink pattern go-arcade/arcade's metrics server
// uses for arbitrary named series, flux's Metrics is a purpose-built
// custom collector — there are exactly two series shapes here (a cursor
// gauge and a per-consumer lag gauge), so a generic sink adds indirection
// with nothing to generalize over.
type Metrics struct {
	label          string
	cursorDesc     *prometheus.Desc
	lagDesc        *prometheus.Desc
	producerCursor func() uint64
	consumerLags   func() map[string]uint64
}

func newMetrics(label string, cursor func() uint64, lags func() map[string]uint64) *Metrics {
	return &Metrics{
		label: label,
		cursorDesc: prometheus.NewDesc(
			"flux_producer_cursor",
			"Highest sequence published (or claimed, for multi-producer sequencers).",
			nil, prometheus.Labels{"sequencer": label},
		),
		lagDesc: prometheus.NewDesc(
			"flux_consumer_lag",
			"Sequences published but not yet consumed by this consumer.",
			[]string{"consumer_id"}, prometheus.Labels{"sequencer": label},
		),
		producerCursor: cursor,
		consumerLags:   lags,
	}
}

// NewSPSCMetrics returns a Collector for an SPSC tx/rx pair. An empty
// label falls back to the WithMetricsLabel value given at construction.
func NewSPSCMetrics[T any](tx *Tx[T], rx *RxSC[T], label string) *Metrics {
	return newMetrics(resolveLabel(label, tx.metricsLabel), tx.cursorSnapshot, rx.lagsByID)
}

// NewMPSCMetrics returns a Collector for an MPSC tx/rx pair. An empty
// label falls back to the WithMetricsLabel value given at construction.
func NewMPSCMetrics[T any](tx *TxMP[T], rx *RxSC[T], label string) *Metrics {
	return newMetrics(resolveLabel(label, tx.metricsLabel), tx.cursorSnapshot, rx.lagsByID)
}

// NewSPMCMetrics returns a Collector for an SPMC tx/rx pair. An empty
// label falls back to the WithMetricsLabel value given at construction.
func NewSPMCMetrics[T any](tx *Tx[T], rx *RxMC[T], label string) *Metrics {
	return newMetrics(resolveLabel(label, tx.metricsLabel), tx.cursorSnapshot, rx.lagsByID)
}

// NewMPMCMetrics returns a Collector for an MPMC tx/rx pair. An empty
// label falls back to the WithMetricsLabel value given at construction.
func NewMPMCMetrics[T any](tx *TxMP[T], rx *RxMC[T], label string) *Metrics {
	return newMetrics(resolveLabel(label, tx.metricsLabel), tx.cursorSnapshot, rx.lagsByID)
}

// resolveLabel prefers an explicit label argument over the sequencer's
// configured default, so WithMetricsLabel has an observable effect when
// a caller doesn't override it per call.
func resolveLabel(explicit, configured string) string {
	if explicit != "" {
		return explicit
	}
	return configured
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.cursorDesc
	ch <- m.lagDesc
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(m.cursorDesc, prometheus.GaugeValue, float64(m.producerCursor()))
	for id, lag := range m.consumerLags() {
		ch <- prometheus.MustNewConstMetric(m.lagDesc, prometheus.GaugeValue, float64(lag), id)
	}
}
