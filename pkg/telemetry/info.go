// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	runInfoMetricName = "icmptrace_run_info"
	runInfoHelp       = "Destination of the trace run. Always 1, the labels carry the information."
)

// RegisterRunInfo registers the icmptrace_run_info info-style metric on the given registry.
// It sets the gauge to 1 with the labels destination, address and version.
func RegisterRunInfo(registry *prometheus.Registry, destination, address, version string) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: runInfoMetricName,
			Help: runInfoHelp,
		},
		[]string{"destination", "address", "version"},
	)
	info.WithLabelValues(destination, address, version).Set(1)
	return registry.Register(info)
}
