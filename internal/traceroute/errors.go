// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
)

// ErrResolve is returned when the destination cannot be resolved
// to an IPv4 address. No probes are sent in that case.
var ErrResolve = errors.New("cannot resolve destination")

// errICMPNotAvailable is returned when ICMP is not available due to lack of NET_RAW capabilities.
// This typically occurs when the process does not have the necessary permissions to create a raw ICMP socket
// or when running in an environment where ICMP is restricted (e.g., some containerized environments).
var errICMPNotAvailable = errors.New("no NET_RAW capabilities, ICMP not available")

// isTimeout checks if the error means that no response
// arrived within the probe timeout.
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
