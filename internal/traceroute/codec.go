// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/binary"

	"golang.org/x/net/ipv4"
)

const (
	// icmpHeaderLen is the length of an ICMP echo or time exceeded header.
	icmpHeaderLen = 8
	// ihlMask is the mask to extract the internet header length
	// from the first byte of an IPv4 header.
	ihlMask = 0x0F
	// byteMultiplier is used to convert the header length from 4-byte words to bytes.
	byteMultiplier = 4
)

// ResponseKind classifies a received ICMP datagram.
type ResponseKind int

const (
	// Unrecognized is any datagram that is neither a well-formed
	// echo reply nor a well-formed time exceeded message.
	Unrecognized ResponseKind = iota
	// EchoReply is an ICMP echo reply sent by the destination.
	EchoReply
	// TimeExceeded is an ICMP time exceeded message sent by a router
	// that discarded one of our probes.
	TimeExceeded
)

func (k ResponseKind) String() string {
	switch k {
	case EchoReply:
		return "echo-reply"
	case TimeExceeded:
		return "time-exceeded"
	default:
		return "unrecognized"
	}
}

// Response is the decoded identity of the probe a datagram answers.
// For [TimeExceeded] the ID and Seq are taken from the embedded
// copy of the original echo request.
type Response struct {
	Kind ResponseKind
	ID   uint16
	Seq  uint16
}

// EncodeEchoRequest builds an 8 byte ICMP echo request with the
// given identifier and sequence number and a valid checksum.
func EncodeEchoRequest(id, seq uint16) []byte {
	b := make([]byte, icmpHeaderLen)
	b[0] = byte(ipv4.ICMPTypeEcho)
	b[1] = 0
	binary.BigEndian.PutUint16(b[4:6], id)
	binary.BigEndian.PutUint16(b[6:8], seq)
	binary.BigEndian.PutUint16(b[2:4], Checksum(b))
	return b
}

// DecodeResponse decodes a raw IPv4 datagram as received from a raw ICMP socket.
// The slice must be bounded to the number of bytes actually received.
//
// Both the outer header length and, for time exceeded messages, the length of
// the embedded header are taken from their own IHL fields. The minimal IPv4
// header length is only used as a guard before the embedded IHL is read.
func DecodeResponse(b []byte) (Response, bool) {
	if len(b) < 1 {
		return Response{}, false
	}

	outerLen := headerLen(b[0])
	if len(b) < outerLen+icmpHeaderLen {
		return Response{}, false
	}

	switch ipv4.ICMPType(b[outerLen]) {
	case ipv4.ICMPTypeEchoReply:
		return Response{
			Kind: EchoReply,
			ID:   binary.BigEndian.Uint16(b[outerLen+4 : outerLen+6]),
			Seq:  binary.BigEndian.Uint16(b[outerLen+6 : outerLen+8]),
		}, true

	case ipv4.ICMPTypeTimeExceeded:
		innerHeader := outerLen + icmpHeaderLen
		if len(b) < innerHeader+ipv4.HeaderLen+icmpHeaderLen {
			return Response{}, false
		}

		innerStart := innerHeader + headerLen(b[innerHeader])
		if len(b) < innerStart+icmpHeaderLen {
			return Response{}, false
		}

		return Response{
			Kind: TimeExceeded,
			ID:   binary.BigEndian.Uint16(b[innerStart+4 : innerStart+6]),
			Seq:  binary.BigEndian.Uint16(b[innerStart+6 : innerStart+8]),
		}, true

	default:
		return Response{}, false
	}
}

// ValidateResponse reports whether b is an echo reply or time exceeded
// message answering the echo request with the given identifier and sequence.
func ValidateResponse(b []byte, id, seq uint16) bool {
	resp, ok := DecodeResponse(b)
	return ok && resp.ID == id && resp.Seq == seq
}

// headerLen returns the IPv4 header length in bytes encoded in the
// version/IHL byte of a header.
func headerLen(versionIHL byte) int {
	return int(versionIHL&ihlMask) * byteMultiplier
}
