// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityBuffer_PublishAndIsAvailable(t *testing.T) {
	a := newAvailabilityBuffer(8)
	assert.False(t, a.isAvailable(0))
	a.publish(0)
	assert.True(t, a.isAvailable(0))
	assert.False(t, a.isAvailable(1))
}

func TestAvailabilityBuffer_RoundDistinguishesWraps(t *testing.T) {
	a := newAvailabilityBuffer(4)
	a.publish(1) // round 0, slot 1
	assert.True(t, a.isAvailable(1))
	assert.False(t, a.isAvailable(5)) // same slot, round 1, not yet published
	a.publish(5)
	assert.True(t, a.isAvailable(5))
	assert.False(t, a.isAvailable(1), "old round's marker is now stale")
}

func TestAvailabilityBuffer_HighestContiguous(t *testing.T) {
	a := newAvailabilityBuffer(8)
	a.publish(0)
	a.publish(1)
	a.publish(3) // gap at 2
	assert.Equal(t, uint64(1), a.highestContiguous(0, 3))
	a.publish(2)
	assert.Equal(t, uint64(3), a.highestContiguous(0, 3))
}

func TestAvailabilityBuffer_HighestContiguousNoneAvailable(t *testing.T) {
	a := newAvailabilityBuffer(8)
	assert.Equal(t, uint64(4), a.highestContiguous(5, 10))
}
