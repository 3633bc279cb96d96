// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"encoding/binary"
	"errors"
	"net/netip"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmptrace/internal/helper"
)

// network simulates the routers between us and the destination.
// routers[i] answers probes with ttl i+1 with a time exceeded message,
// probes with a larger ttl are answered by the destination.
type network struct {
	t       *testing.T
	dst     netip.Addr
	routers []netip.Addr
	// silent ttls never answer.
	silent map[int]bool
	// noise is delivered before the real answer of every probe.
	noise [][]byte

	mu     sync.Mutex
	conns  []*probeConnMock
	probed []int
}

// newConn returns a scripted [probeConn] answering the probe written to it.
func (n *network) newConn() (probeConn, error) {
	var (
		ttl     int
		written []byte
		pending [][]byte
	)
	conn := &probeConnMock{
		SetTTLFunc: func(v int) error {
			ttl = v
			return nil
		},
		WriteToFunc: func(b []byte, dst netip.Addr) error {
			assert.Equal(n.t, n.dst, dst)
			written = append([]byte(nil), b...)
			n.mu.Lock()
			n.probed = append(n.probed, ttl)
			n.mu.Unlock()
			pending = append(pending, n.noise...)
			if !n.silent[ttl] {
				pending = append(pending, n.answer(ttl, written))
			}
			return nil
		},
		ReadFromFunc: func(_ context.Context) (datagram, error) {
			if len(pending) == 0 {
				return datagram{}, context.DeadlineExceeded
			}
			b := pending[0]
			pending = pending[1:]
			src := n.dst
			if ttl <= len(n.routers) {
				src = n.routers[ttl-1]
			}
			return datagram{data: b, src: src}, nil
		},
		CloseFunc: func() error { return nil },
	}

	n.mu.Lock()
	n.conns = append(n.conns, conn)
	n.mu.Unlock()
	return conn, nil
}

func (n *network) answer(ttl int, probe []byte) []byte {
	if ttl <= len(n.routers) {
		b := ipHeader(5)
		b = append(b, 11, 0, 0, 0, 0, 0, 0, 0)
		b = append(b, ipHeader(5)...)
		return append(b, probe...)
	}
	reply := append([]byte(nil), probe...)
	reply[0] = 0
	return append(ipHeader(5), reply...)
}

func newTestClient(n *network) *icmpClient {
	return &icmpClient{
		newConn: n.newConn,
		resolve: func(_ context.Context, _ string) (netip.Addr, error) { return n.dst, nil },
	}
}

// collectHops runs a trace and collects the emitted hops.
func collectHops(t *testing.T, c Client, dst netip.Addr, opts Options) ([]Hop, error) {
	t.Helper()
	ch := make(chan Hop)
	errCh := make(chan error, 1)
	go func() { errCh <- c.Trace(t.Context(), dst, &opts, ch) }()

	var hops []Hop
	for hop := range ch {
		hops = append(hops, hop)
	}
	return hops, <-errCh
}

var ignoreLatency = cmpopts.IgnoreFields(Probe{}, "Latency")

func TestClient_Trace(t *testing.T) {
	n := &network{t: t, dst: dest, routers: []netip.Addr{hopA, hopB}}
	opts := Options{MaxHops: 3, Probes: 1, Timeout: time.Second, Identifier: 0x1f2e}

	hops, err := collectHops(t, newTestClient(n), dest, opts)
	require.NoError(t, err)

	want := []Hop{
		{TTL: 1, Probes: []Probe{{Addr: hopA}}, Responders: []netip.Addr{hopA}},
		{TTL: 2, Probes: []Probe{{Addr: hopB}}, Responders: []netip.Addr{hopB}},
		{TTL: 3, Probes: []Probe{{Addr: dest}}, Responders: []netip.Addr{dest}, Reached: true},
	}
	if diff := cmp.Diff(want, hops, ignoreLatency, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Errorf("unexpected hops (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{1, 2, 3}, n.probed, "no probe beyond the destination")
}

func TestClient_Trace_stopsAtDestination(t *testing.T) {
	n := &network{t: t, dst: dest, routers: []netip.Addr{hopA}}
	opts := Options{MaxHops: 30, Probes: 3, Timeout: time.Second, Identifier: 7}

	hops, err := collectHops(t, newTestClient(n), dest, opts)
	require.NoError(t, err)
	require.Len(t, hops, 2)
	assert.True(t, hops[1].Reached)
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, n.probed)

	// Every probe of the run used its own sequence number and socket.
	seen := map[uint16]bool{}
	for _, c := range n.conns {
		require.Len(t, c.WriteToCalls(), 1)
		pkt := c.WriteToCalls()[0].B
		require.Len(t, pkt, 8)
		assert.Equal(t, uint16(7), binary.BigEndian.Uint16(pkt[4:6]))
		seq := binary.BigEndian.Uint16(pkt[6:8])
		assert.False(t, seen[seq], "sequence %d used twice", seq)
		seen[seq] = true
		assert.Len(t, c.CloseCalls(), 1, "every socket is closed")
	}
}

func TestClient_Trace_skipsUnrelatedDatagrams(t *testing.T) {
	otherRun := echoReply(5, 0x9999, 4)
	n := &network{t: t, dst: dest, noise: [][]byte{{0x45}, otherRun, timeExceeded(5, 5, 1, 1)}}
	opts := Options{MaxHops: 3, Probes: 2, Timeout: time.Second, Identifier: 1}

	hops, err := collectHops(t, newTestClient(n), dest, opts)
	require.NoError(t, err)
	require.Len(t, hops, 1)
	assert.True(t, hops[0].Reached)
	assert.Equal(t, []netip.Addr{dest}, hops[0].Responders)
	assert.Equal(t, 0, hops[0].Lost())
}

func TestClient_Trace_timeouts(t *testing.T) {
	n := &network{t: t, dst: dest, routers: []netip.Addr{hopA, hopB}, silent: map[int]bool{2: true}}
	opts := Options{MaxHops: 5, Probes: 2, Timeout: time.Second, Identifier: 3}

	hops, err := collectHops(t, newTestClient(n), dest, opts)
	require.NoError(t, err)
	require.Len(t, hops, 3)
	assert.Equal(t, []Probe{{}, {}}, hops[1].Probes)
	assert.Empty(t, hops[1].Responders)
	assert.False(t, hops[1].Reached)
	assert.True(t, hops[2].Reached)
}

func TestClient_Trace_transportErrors(t *testing.T) {
	n := &network{t: t, dst: dest}
	calls := 0
	c := &icmpClient{
		newConn: func() (probeConn, error) {
			calls++
			switch calls {
			case 1:
				return nil, errICMPNotAvailable
			case 2:
				return &probeConnMock{
					SetTTLFunc:  func(int) error { return nil },
					WriteToFunc: func([]byte, netip.Addr) error { return errors.New("network is unreachable") },
					CloseFunc:   func() error { return nil },
				}, nil
			default:
				return n.newConn()
			}
		},
	}
	opts := Options{MaxHops: 2, Probes: 3, Timeout: time.Second}

	hops, err := collectHops(t, c, dest, opts)
	require.NoError(t, err)
	require.Len(t, hops, 1)
	assert.Equal(t, 2, hops[0].Lost())
	assert.True(t, hops[0].Reached)
}

func TestClient_Trace_invalidOptions(t *testing.T) {
	n := &network{t: t, dst: dest}
	hops, err := collectHops(t, newTestClient(n), dest, Options{MaxHops: 0, Probes: 3, Timeout: time.Second})
	require.Error(t, err)
	assert.Empty(t, hops)
	assert.Empty(t, n.probed)
}

func TestClient_Resolve(t *testing.T) {
	errLookup := errors.New("no such host")
	tests := []struct {
		name      string
		target    Target
		results   []error
		retry     helper.RetryConfig
		want      netip.Addr
		wantErr   bool
		wantCalls int
	}{
		{name: "resolved", target: Target{Address: "example.com"}, results: []error{nil}, want: dest, wantCalls: 1},
		{name: "resolved after retry", target: Target{Address: "example.com"}, results: []error{errLookup, nil}, retry: helper.RetryConfig{Count: 1}, want: dest, wantCalls: 2},
		{name: "lookup fails", target: Target{Address: "nope.invalid"}, results: []error{errLookup, errLookup}, retry: helper.RetryConfig{Count: 1}, wantErr: true, wantCalls: 2},
		{name: "empty target", target: Target{Address: " "}, wantErr: true, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := &icmpClient{
				resolve: func(_ context.Context, _ string) (netip.Addr, error) {
					err := tt.results[calls]
					calls++
					if err != nil {
						return netip.Addr{}, err
					}
					return dest, nil
				},
			}

			got, err := c.Resolve(t.Context(), tt.target, &Options{Retry: tt.retry})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrResolve)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIPv4_literals(t *testing.T) {
	tests := []struct {
		host    string
		want    netip.Addr
		wantErr bool
	}{
		{"192.0.2.1", netip.MustParseAddr("192.0.2.1"), false},
		{"::ffff:192.0.2.1", netip.MustParseAddr("192.0.2.1"), false},
		{"2001:db8::1", netip.Addr{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got, err := resolveIPv4(t.Context(), tt.host)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
