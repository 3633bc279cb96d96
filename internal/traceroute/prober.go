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

	"github.com/telekom/icmptrace/internal/logger"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var _ prober = (*icmpProber)(nil)

// outcomeKind tags the result of a single probe.
type outcomeKind int

const (
	// outcomeSuccess means a valid response for the probe was received.
	outcomeSuccess outcomeKind = iota
	// outcomeTimeout means no valid response arrived within the probe timeout.
	outcomeTimeout
	// outcomeError means the probe failed on the socket level.
	outcomeError
)

// outcome is the result of a single probe.
type outcome struct {
	kind outcomeKind
	// rtt and addr are only set for [outcomeSuccess].
	rtt  time.Duration
	addr netip.Addr
	// err is only set for [outcomeError].
	err error
}

// prober sends a single echo request and waits for its response.
//
//go:generate go tool moq -out prober_moq.go . prober
type prober interface {
	// probe sends the probe with the given index at the given ttl to dst.
	probe(ctx context.Context, dst netip.Addr, ttl, index int) outcome
}

// icmpProber sends echo requests on a fresh [probeConn] per probe.
type icmpProber struct {
	newConn func() (probeConn, error)
	opts    Options
}

// probe sends one echo request with the given ttl and reads datagrams
// until one validates against the probe's identifier and sequence or
// the probe timeout passes. Datagrams not answering this probe are skipped.
// The socket is closed before probe returns.
func (p *icmpProber) probe(ctx context.Context, dst netip.Addr, ttl, index int) outcome {
	log := logger.FromContext(ctx)
	seq := p.opts.sequence(ttl, index)

	conn, err := p.newConn()
	if err != nil {
		return outcome{kind: outcomeError, err: fmt.Errorf("failed to open ICMP socket: %w", err)}
	}
	defer func() {
		if cErr := conn.Close(); cErr != nil {
			log.WarnContext(ctx, "Failed to close ICMP socket", "error", cErr)
		}
	}()

	if err = conn.SetTTL(ttl); err != nil {
		return outcome{kind: outcomeError, err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	start := time.Now()
	if err = conn.WriteTo(EncodeEchoRequest(p.opts.Identifier, seq), dst); err != nil {
		return outcome{kind: outcomeError, err: err}
	}

	for {
		dg, rErr := conn.ReadFrom(ctx)
		switch {
		case isTimeout(rErr):
			return outcome{kind: outcomeTimeout}
		// An interrupted run leaves the probe unanswered, the hopper reports the cancellation.
		case errors.Is(rErr, context.Canceled):
			return outcome{kind: outcomeTimeout}
		case rErr != nil:
			return outcome{kind: outcomeError, err: rErr}
		}

		if ValidateResponse(dg.data, p.opts.Identifier, seq) {
			return outcome{kind: outcomeSuccess, rtt: time.Since(start), addr: dg.src}
		}
		log.DebugContext(ctx, "Skipping ICMP datagram not matching the probe",
			"from", dg.src,
			"type", describeDatagram(dg.data),
			"ttl", ttl,
			"seq", seq,
		)
	}
}

// describeDatagram returns the ICMP message type of a raw IPv4 datagram for logging.
func describeDatagram(b []byte) string {
	if len(b) < 1 {
		return "empty"
	}
	hl := headerLen(b[0])
	if hl < ipv4.HeaderLen || len(b) < hl {
		return "truncated"
	}
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), b[hl:])
	if err != nil {
		return "malformed"
	}
	return fmt.Sprint(msg.Type)
}
