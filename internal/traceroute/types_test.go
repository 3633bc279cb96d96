// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"single hop single probe", Options{MaxHops: 1, Probes: 1, Timeout: time.Millisecond}, false},
		{"zero hops", Options{MaxHops: 0, Probes: 3, Timeout: time.Second}, true},
		{"ttl above 255", Options{MaxHops: 256, Probes: 1, Timeout: time.Second}, true},
		{"zero probes", Options{MaxHops: 30, Probes: 0, Timeout: time.Second}, true},
		{"zero timeout", Options{MaxHops: 30, Probes: 3}, true},
		{"largest sequence fits", Options{MaxHops: 255, Probes: 256, Timeout: time.Second}, false},
		{"sequence overflow", Options{MaxHops: 255, Probes: 257, Timeout: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Options.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions_sequence(t *testing.T) {
	opts := Options{MaxHops: 30, Probes: 3, Timeout: time.Second}
	seen := map[uint16]bool{}
	for ttl := 1; ttl <= opts.MaxHops; ttl++ {
		for i := 0; i < opts.Probes; i++ {
			seq := opts.sequence(ttl, i)
			assert.Equal(t, uint16(ttl*3+i), seq)
			assert.False(t, seen[seq], "duplicate sequence %d", seq)
			seen[seq] = true
		}
	}
}

func TestTarget_Validate(t *testing.T) {
	assert.NoError(t, Target{Address: "example.com"}.Validate())
	assert.NoError(t, Target{Address: "192.0.2.1"}.Validate())
	assert.Error(t, Target{}.Validate())
	assert.Error(t, Target{Address: "  "}.Validate())
}

func TestNewHop(t *testing.T) {
	probes := []Probe{
		{Addr: hopB, Latency: 3 * time.Millisecond},
		{},
		{Addr: hopA, Latency: 5 * time.Millisecond},
		{Addr: hopB, Latency: 4 * time.Millisecond},
	}

	hop := newHop(7, probes, dest)
	assert.Equal(t, 7, hop.TTL)
	assert.Equal(t, probes, hop.Probes)
	assert.Equal(t, []netip.Addr{hopB, hopA}, hop.Responders)
	assert.False(t, hop.Reached)
	assert.Equal(t, 1, hop.Lost())

	reached := newHop(8, []Probe{{}, {Addr: dest, Latency: time.Millisecond}}, dest)
	assert.True(t, reached.Reached)
}

func TestHop_String(t *testing.T) {
	tests := []struct {
		name     string
		hop      Hop
		expected string
	}{
		{
			name:     "no response",
			hop:      Hop{TTL: 3, Probes: []Probe{{}, {}}},
			expected: "3   *",
		},
		{
			name:     "two responders",
			hop:      newHop(12, []Probe{{Addr: hopA}, {}, {Addr: hopB}}, dest),
			expected: "12  10.0.0.1 10.0.0.2  2/3",
		},
		{
			name:     "reached",
			hop:      newHop(4, []Probe{{Addr: dest}}, dest),
			expected: "4   192.0.2.7  1/1  (reached)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.hop.String())
		})
	}
}

func TestMillis(t *testing.T) {
	assert.InDelta(t, 12.345, Millis(12345*time.Microsecond), 1e-9)
	assert.Equal(t, 0.0, Millis(0))
}
