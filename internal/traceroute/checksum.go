// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

// Checksum calculates the Internet checksum (RFC 1071) of b.
//
// A trailing odd byte is treated as the high byte of a zero-padded word.
// The checksum of an empty buffer is 0xFFFF. Running Checksum over a packet
// that already carries its correct checksum yields 0.
func Checksum(b []byte) uint16 {
	var sum uint64
	n := len(b)
	for i := 0; i+1 < n; i += 2 {
		sum += uint64(b[i])<<8 | uint64(b[i+1])
	}
	if n%2 == 1 {
		sum += uint64(b[n-1]) << 8
	}

	for sum > 0xffff {
		sum = (sum >> 16) + (sum & 0xffff)
	}
	return ^uint16(sum)
}
