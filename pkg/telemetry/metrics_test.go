// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"net/netip"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/icmptrace/internal/traceroute"
)

var (
	router = netip.MustParseAddr("10.0.0.1")
	dest   = netip.MustParseAddr("192.0.2.7")
)

func reachedHop() traceroute.Hop {
	return traceroute.Hop{
		TTL: 2,
		Probes: []traceroute.Probe{
			{Addr: dest, Latency: 2 * time.Millisecond},
			{},
			{Addr: dest, Latency: 3 * time.Millisecond},
		},
		Responders: []netip.Addr{dest},
		Reached:    true,
	}
}

func TestMetrics_ObserveHop(t *testing.T) {
	m := NewMetrics()
	m.ObserveHop(traceroute.Hop{
		TTL:        1,
		Probes:     []traceroute.Probe{{Addr: router, Latency: time.Millisecond}, {}, {}},
		Responders: []netip.Addr{router},
	})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.reached))

	m.ObserveHop(reachedHop())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.hops))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reached))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.probes.WithLabelValues(outcomeSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.probes.WithLabelValues(outcomeTimeout)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.rtt), "one histogram per ttl with answers")
}

func TestMetrics_Register(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics()
	require.NoError(t, m.Register(registry))
	assert.Len(t, m.Collectors(), 4)
	assert.Error(t, m.Register(registry), "collectors are registered once")
}
