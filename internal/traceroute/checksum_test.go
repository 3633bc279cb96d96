// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint16
	}{
		{"empty buffer", []byte{}, 0xffff},
		{"nil buffer", nil, 0xffff},
		{"single zero word", []byte{0, 0}, 0xffff},
		{"odd length pads low byte", []byte{0x01}, ^uint16(0x0100)},
		{"carry is folded", []byte{0xff, 0xff, 0x00, 0x01}, ^uint16(0x0001)},
		{"echo request id 1 seq 1", []byte{8, 0, 0, 0, 0, 1, 0, 1}, 0xf7fd},
		{
			// Example from RFC 1071 section 3.
			name: "rfc 1071 example",
			in:   []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7},
			want: ^uint16(0xddf2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.in))
		})
	}
}

func TestChecksum_selfVerifies(t *testing.T) {
	buffers := [][]byte{
		{0, 0, 0, 0},
		{8, 0, 0, 0, 0x12, 0x34, 0x00, 0x07},
		{0xff, 0xff, 0, 0, 0xff, 0xff, 0xff, 0xff},
		{0x45, 0x00, 0, 0, 0x00, 0x54, 0xab, 0xcd, 0x40, 0x00, 0x40, 0x01},
	}

	for _, b := range buffers {
		pkt := append([]byte(nil), b...)
		// The checksum field is bytes 2-3 in every buffer above.
		binary.BigEndian.PutUint16(pkt[2:4], 0)
		binary.BigEndian.PutUint16(pkt[2:4], Checksum(pkt))
		assert.Equal(t, uint16(0), Checksum(pkt), "checksum over completed packet % x", pkt)
	}
}

// referenceChecksum sums 32-bit halves so no carry of any buffer size is lost.
func referenceChecksum(b []byte) uint16 {
	var sum uint64
	for i := 0; i < len(b); i += 2 {
		w := uint64(b[i]) << 8
		if i+1 < len(b) {
			w |= uint64(b[i+1])
		}
		sum += w
	}
	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}

func TestChecksum_largeBuffers(t *testing.T) {
	// Every 0xffff word is congruent to zero in one's complement arithmetic,
	// so an even buffer of 0xff bytes sums to 0xffff and an odd one to 0xff00.
	tests := []struct {
		n    int
		want uint16
	}{
		{131074, 0x0000},
		{131076, 0x0000},
		{200000, 0x0000},
		{1 << 20, 0x0000},
		{1<<20 + 1, 0x00ff},
	}

	for _, tt := range tests {
		b := make([]byte, tt.n)
		for i := range b {
			b[i] = 0xff
		}
		assert.Equal(t, tt.want, Checksum(b), "%d bytes of 0xff", tt.n)
		assert.Equal(t, referenceChecksum(b), Checksum(b), "%d bytes of 0xff", tt.n)
	}
}
