// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidMaxHops is returned when the maximum number of hops is outside 1..255
	ErrInvalidMaxHops = errors.New("invalid max hops")
	// ErrInvalidProbes is returned when the number of probes per hop is below 1
	ErrInvalidProbes = errors.New("invalid probes per hop")
	// ErrInvalidTimeout is returned when the probe timeout is not positive
	ErrInvalidTimeout = errors.New("invalid probe timeout")
	// ErrSequenceOverflow is returned when the sequence numbers of a run do not fit 16 bits
	ErrSequenceOverflow = errors.New("probe sequence numbers overflow")
	// ErrInvalidRetryCount is returned when the resolution retry count is invalid
	ErrInvalidRetryCount = errors.New("invalid retry count")
	// ErrInvalidOutput is returned when the output format is unknown
	ErrInvalidOutput = errors.New("invalid output format")
)
