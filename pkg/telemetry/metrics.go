// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/icmptrace/internal/traceroute"
)

const (
	outcomeSuccess = "success"
	outcomeTimeout = "timeout"
)

// Metrics defines the metric collectors of a trace run
type Metrics struct {
	rtt     *prometheus.HistogramVec
	probes  *prometheus.CounterVec
	hops    prometheus.Gauge
	reached prometheus.Gauge
}

// NewMetrics initializes the metric collectors of a trace run
func NewMetrics() *Metrics {
	return &Metrics{
		rtt: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "icmptrace_hop_rtt_seconds",
				Help:    "Round trip time of answered probes per hop in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"ttl"},
		),
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icmptrace_probes_total",
				Help: "Number of probes sent, by outcome.",
			},
			[]string{"outcome"},
		),
		hops: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "icmptrace_hops",
				Help: "Number of hops probed in the run.",
			},
		),
		reached: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "icmptrace_destination_reached",
				Help: "Specifies if the destination answered.",
			},
		),
	}
}

// Collectors returns all metric collectors
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rtt,
		m.probes,
		m.hops,
		m.reached,
	}
}

// Register registers all collectors on the registry
func (m *Metrics) Register(registry *prometheus.Registry) error {
	for _, c := range m.Collectors() {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveHop records the probes of a hop
func (m *Metrics) ObserveHop(hop traceroute.Hop) {
	ttl := strconv.Itoa(hop.TTL)
	for _, p := range hop.Probes {
		if !p.OK() {
			m.probes.WithLabelValues(outcomeTimeout).Inc()
			continue
		}
		m.probes.WithLabelValues(outcomeSuccess).Inc()
		m.rtt.WithLabelValues(ttl).Observe(p.Latency.Seconds())
	}
	m.hops.Inc()
	if hop.Reached {
		m.reached.Set(1)
	}
}
