// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	assert.NotNil(t, c.logger)
	assert.Equal(t, 100*time.Millisecond, c.stallThreshold)
	assert.Empty(t, c.metricsLabel)
}

func TestWithLogger_NilReplacedWithNop(t *testing.T) {
	c := applyOptions([]Option{WithLogger(nil)})
	assert.NotNil(t, c.logger)
}

func TestWithLogger_SetsProvidedLogger(t *testing.T) {
	logger := zap.NewExample()
	c := applyOptions([]Option{WithLogger(logger)})
	assert.Same(t, logger, c.logger)
}

func TestWithStallThreshold_IgnoresNonPositive(t *testing.T) {
	c := applyOptions([]Option{WithStallThreshold(0)})
	assert.Equal(t, 100*time.Millisecond, c.stallThreshold)

	c2 := applyOptions([]Option{WithStallThreshold(-time.Second)})
	assert.Equal(t, 100*time.Millisecond, c2.stallThreshold)

	c3 := applyOptions([]Option{WithStallThreshold(5 * time.Second)})
	assert.Equal(t, 5*time.Second, c3.stallThreshold)
}

func TestWithMetricsLabel(t *testing.T) {
	c := applyOptions([]Option{WithMetricsLabel("orders")})
	assert.Equal(t, "orders", c.metricsLabel)
}

func TestWithMetricsLabel_IsUsedAsDefaultBySequencerMetrics(t *testing.T) {
	tx, _, err := SPSC[int](4, Spinning, CSpinning, WithMetricsLabel("orders"))
	assert.NoError(t, err)
	assert.Equal(t, "orders", tx.metricsLabel)
}
