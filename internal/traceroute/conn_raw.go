// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"golang.org/x/sys/unix"
)

var _ probeConn = (*rawConn)(nil)

// rawConn is a raw IPv4 ICMP socket.
// Unlike [net.IPConn] it hands out received datagrams including
// their IPv4 header. It requires NET_RAW capabilities.
type rawConn struct {
	fd  int
	buf []byte
}

// newRawConn opens a raw ICMP socket.
// Returns [errICMPNotAvailable] if the process lacks the permission to do so.
func newRawConn() (probeConn, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("%w: %w", errICMPNotAvailable, err)
		}
		return nil, fmt.Errorf("failed to create raw ICMP socket: %w", err)
	}
	return &rawConn{fd: fd, buf: make([]byte, mtuSize)}, nil
}

// SetTTL sets IP_TTL on the socket.
func (c *rawConn) SetTTL(ttl int) error {
	if err := unix.SetsockoptInt(c.fd, unix.IPPROTO_IP, unix.IP_TTL, ttl); err != nil {
		return fmt.Errorf("failed to set IP_TTL to %d: %w", ttl, err)
	}
	return nil
}

func (c *rawConn) WriteTo(b []byte, dst netip.Addr) error {
	if !dst.Is4() {
		return fmt.Errorf("destination %s is not an IPv4 address", dst)
	}
	if err := unix.Sendto(c.fd, b, 0, &unix.SockaddrInet4{Addr: dst.As4()}); err != nil {
		return fmt.Errorf("failed to send ICMP message to %s: %w", dst, err)
	}
	return nil
}

// ReadFrom receives the next datagram. The receive timeout of the socket
// is set to the time left until the deadline of ctx.
func (c *rawConn) ReadFrom(ctx context.Context) (datagram, error) {
	if err := ctx.Err(); err != nil {
		return datagram{}, err
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return datagram{}, errors.New("no deadline set for ICMP read")
	}

	// A zero timeval disables the receive timeout, so anything
	// below its resolution counts as expired.
	remaining := time.Until(deadline)
	if remaining < time.Microsecond {
		return datagram{}, context.DeadlineExceeded
	}
	tv := unix.NsecToTimeval(remaining.Nanoseconds())
	if err := unix.SetsockoptTimeval(c.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return datagram{}, fmt.Errorf("failed to set receive timeout: %w", err)
	}

	for {
		n, from, err := unix.Recvfrom(c.fd, c.buf, 0)
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK):
			return datagram{}, context.DeadlineExceeded
		case err != nil:
			return datagram{}, fmt.Errorf("failed to read from ICMP socket: %w", err)
		}

		data := make([]byte, n)
		copy(data, c.buf[:n])
		return datagram{data: data, src: addrFromSockaddr(from)}, nil
	}
}

// Close closes the socket.
func (c *rawConn) Close() error {
	return unix.Close(c.fd)
}

// addrFromSockaddr extracts the IPv4 address of a [unix.Sockaddr].
func addrFromSockaddr(sa unix.Sockaddr) netip.Addr {
	if a, ok := sa.(*unix.SockaddrInet4); ok {
		return netip.AddrFrom4(a.Addr)
	}
	return netip.Addr{}
}
