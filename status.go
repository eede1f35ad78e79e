// Copyright (c) 2026 flux contributors
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package flux

// StatusKind distinguishes the two outcomes of a non-blocking Recv.
// Idle is not an error: the hot path never returns an error value.
type StatusKind int

const (
	// Idle means no new sequence was available.
	Idle StatusKind = iota
	// Processed means N slots were handed to the handler.
	Processed
)

// Status is the result of a non-blocking Recv call.
type Status struct {
	Kind StatusKind
	N    int
}
