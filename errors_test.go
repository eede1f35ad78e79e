// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCapacity(t *testing.T) {
	cases := []struct {
		name     string
		capacity uint64
		want     error
	}{
		{"zero", 0, ErrCapacityTooSmall},
		{"one", 1, ErrCapacityTooSmall},
		{"power of two", 16, nil},
		{"smallest valid", 2, nil},
		{"not a power of two", 6, ErrCapacityNotPowerOfTwo},
		{"large power of two", 1 << 20, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateCapacity(tc.capacity)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.want))
		})
	}
}
