// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"time"

	"go.uber.org/zap"
)

// config collects the ambient, non-hot-path concerns every constructor
// accepts on top of its positional (capacity, producer wait kind,
// consumer wait kind) signature, following the fluent options-builder
// idiom hayabusa-cloud/lfq's Builder uses for algorithm selection.
type config struct {
	logger         *zap.Logger
	stallThreshold time.Duration
	metricsLabel   string
}

func defaultConfig() *config {
	return &config{
		logger:         zap.NewNop(),
		stallThreshold: 100 * time.Millisecond,
	}
}

// Option configures ambient behavior of a constructed sequencer.
type Option func(*config)

// WithLogger attaches a zap logger for lifecycle and backpressure
// diagnostics. Nothing on the Send/SendN/Recv/BlockingRecv hot path
// logs; a nil logger is replaced with zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithStallThreshold sets how long a Blocking wait strategy may park
// before it is logged as a diagnostic stall. It has no effect on
// non-blocking wait strategies.
func WithStallThreshold(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.stallThreshold = d
		}
	}
}

// WithMetricsLabel sets the constant label value Metrics attaches to
// every series this sequencer reports, so multiple sequencers in the
// same process can be told apart in a shared registry.
func WithMetricsLabel(label string) Option {
	return func(c *config) { c.metricsLabel = label }
}

func applyOptions(opts []Option) *config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}
