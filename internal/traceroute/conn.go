// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net/netip"
)

// mtuSize is the size of the buffer a datagram is received into.
const mtuSize = 1500

// probeConn is the socket a single probe is sent and answered on.
// A probeConn is created for exactly one probe and closed afterwards.
//
//go:generate go tool moq -out conn_moq.go . probeConn
type probeConn interface {
	// SetTTL sets the time to live of outgoing packets.
	SetTTL(ttl int) error
	// WriteTo sends the ICMP message b to dst.
	WriteTo(b []byte, dst netip.Addr) error
	// ReadFrom blocks until a datagram is received or the deadline of ctx passes,
	// in which case [context.DeadlineExceeded] is returned.
	// The returned datagram includes the IPv4 header.
	ReadFrom(ctx context.Context) (datagram, error)
	// Close releases the socket.
	Close() error
}

// datagram is a raw IPv4 datagram received on a [probeConn].
type datagram struct {
	// data holds exactly the received bytes, starting with the IPv4 header.
	data []byte
	// src is the address of the host that sent the datagram.
	src netip.Addr
}
