// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import "errors"

// ErrCapacityNotPowerOfTwo is returned by a constructor when capacity is
// not a power of two.
var ErrCapacityNotPowerOfTwo = errors.New("flux: capacity must be a power of two")

// ErrCapacityTooSmall is returned by a constructor when capacity is less
// than 2.
var ErrCapacityTooSmall = errors.New("flux: capacity must be at least 2")

func validateCapacity(capacity uint64) error {
	if capacity < 2 {
		return ErrCapacityTooSmall
	}
	if capacity&(capacity-1) != 0 {
		return ErrCapacityNotPowerOfTwo
	}
	return nil
}
