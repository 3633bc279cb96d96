// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/telekom/icmptrace/internal/traceroute"
	"github.com/telekom/icmptrace/pkg/report"
	"github.com/telekom/icmptrace/pkg/telemetry"
)

type Config struct {
	// Trace holds the probing options of the run
	Trace traceroute.Options `yaml:"trace" mapstructure:"trace"`
	// Output is the report format, one of text, json or yaml
	Output report.Format `yaml:"output" mapstructure:"output"`
	// Numeric disables the reverse lookup of responder addresses
	Numeric bool `yaml:"numeric" mapstructure:"numeric"`
	// GeoIP is the configuration for the ASN annotation of responders
	GeoIP GeoIPConfig `yaml:"geoip" mapstructure:"geoip"`
	// Metrics is the configuration for the prometheus textfile
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	// Telemetry is the configuration for the telemetry
	Telemetry telemetry.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// GeoIPConfig is the configuration for the ASN annotation
type GeoIPConfig struct {
	// ASNPath is the path to a GeoLite2 ASN database, empty disables the annotation
	ASNPath string `yaml:"asnPath" mapstructure:"asnPath"`
}

// MetricsConfig is the configuration for the prometheus textfile
type MetricsConfig struct {
	// File is the path the metrics are written to after the run, empty disables it
	File string `yaml:"file" mapstructure:"file"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Trace:  traceroute.DefaultOptions(),
		Output: report.FormatText,
	}
}

// HasGeoIP returns true if an ASN database is configured
func (c *Config) HasGeoIP() bool {
	return c.GeoIP.ASNPath != ""
}

// HasMetricsFile returns true if metrics should be written after the run
func (c *Config) HasMetricsFile() bool {
	return c.Metrics.File != ""
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}
