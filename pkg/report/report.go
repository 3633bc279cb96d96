// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/telekom/icmptrace/internal/logger"
	"github.com/telekom/icmptrace/internal/traceroute"
	"gopkg.in/yaml.v3"
)

// Format is the output format of a [Reporter].
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an output format other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Validate returns an error if the format is not supported.
func (f Format) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
}

// timeoutToken is printed in place of the latency of a probe without a valid response.
const timeoutToken = "       *"

// Report is the structured result of a trace run.
type Report struct {
	// Destination is the host as given by the user.
	Destination string `json:"destination" yaml:"destination"`
	// Address is the resolved IPv4 address of the destination.
	Address string `json:"address" yaml:"address"`
	// MaxHops is the largest TTL that was allowed.
	MaxHops int `json:"maxHops" yaml:"maxHops"`
	// Reached is true if the destination answered.
	Reached bool `json:"reached" yaml:"reached"`
	// Hops holds one entry per probed TTL.
	Hops []HopReport `json:"hops" yaml:"hops"`
}

// HopReport is the structured result of one TTL.
type HopReport struct {
	TTL        int           `json:"ttl" yaml:"ttl"`
	Probes     []ProbeReport `json:"probes" yaml:"probes"`
	Responders []Responder   `json:"responders" yaml:"responders"`
	Reached    bool          `json:"reached" yaml:"reached"`
}

// ProbeReport is one probe of a hop. Address and LatencyMs are empty on timeout.
type ProbeReport struct {
	Address   string   `json:"address,omitempty" yaml:"address,omitempty"`
	LatencyMs *float64 `json:"latencyMs,omitempty" yaml:"latencyMs,omitempty"`
	Timeout   bool     `json:"timeout" yaml:"timeout"`
}

// Responder is a distinct address that answered at a hop.
type Responder struct {
	Address string `json:"address" yaml:"address"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	ASN     string `json:"asn,omitempty" yaml:"asn,omitempty"`
}

// Reporter prints hops as they arrive and collects them into a [Report].
// A Reporter is used for a single run and is not safe for concurrent use.
type Reporter struct {
	out      io.Writer
	format   Format
	resolver Resolver
	geo      *GeoIP
	// names caches reverse lookups for the run, failures included.
	names  map[netip.Addr]string
	report Report
}

// NewReporter creates a reporter writing to out.
// resolver and geo may be nil to disable reverse lookups or ASN annotation.
func NewReporter(out io.Writer, format Format, resolver Resolver, geo *GeoIP) *Reporter {
	return &Reporter{
		out:      out,
		format:   format,
		resolver: resolver,
		geo:      geo,
		names:    map[netip.Addr]string{},
	}
}

// Start records the destination of the run and prints the header line in text format.
func (r *Reporter) Start(destination string, addr netip.Addr, maxHops int) error {
	r.report = Report{
		Destination: destination,
		Address:     addr.String(),
		MaxHops:     maxHops,
		Hops:        []HopReport{},
	}
	if r.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintf(r.out, "traceroute to %s (%s), %d hops max\n", destination, addr, maxHops)
	return err
}

// Hop records a hop and prints its line in text format.
func (r *Reporter) Hop(ctx context.Context, hop traceroute.Hop) error {
	hr := HopReport{
		TTL:        hop.TTL,
		Probes:     make([]ProbeReport, 0, len(hop.Probes)),
		Responders: make([]Responder, 0, len(hop.Responders)),
		Reached:    hop.Reached,
	}
	for _, p := range hop.Probes {
		if !p.OK() {
			hr.Probes = append(hr.Probes, ProbeReport{Timeout: true})
			continue
		}
		ms := traceroute.Millis(p.Latency)
		hr.Probes = append(hr.Probes, ProbeReport{Address: p.Addr.String(), LatencyMs: &ms})
	}
	for _, addr := range hop.Responders {
		hr.Responders = append(hr.Responders, Responder{
			Address: addr.String(),
			Name:    r.lookup(ctx, addr),
			ASN:     r.geo.ASN(addr),
		})
	}

	r.report.Hops = append(r.report.Hops, hr)
	r.report.Reached = r.report.Reached || hop.Reached

	if r.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintln(r.out, FormatHop(hr))
	return err
}

// Finish writes the collected report in json or yaml format.
// It does nothing in text format.
func (r *Reporter) Finish() error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r.report)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(r.report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return nil
	}
}

// Report returns the report collected so far.
func (r *Reporter) Report() Report {
	return r.report
}

// FormatHop renders a hop as a single text line.
func FormatHop(hop HopReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%2d", hop.TTL)
	for _, p := range hop.Probes {
		sb.WriteString(" ")
		if p.Timeout || p.LatencyMs == nil {
			sb.WriteString(timeoutToken)
			continue
		}
		fmt.Fprintf(&sb, "%8.3f ms", *p.LatencyMs)
	}

	sb.WriteString("  ")
	if len(hop.Responders) == 0 {
		sb.WriteString("*")
		return sb.String()
	}
	for i, resp := range hop.Responders {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(resp.String())
	}
	return sb.String()
}

// String renders the responder as "name [ip]" or "ip",
// followed by the autonomous system if known.
func (r Responder) String() string {
	s := r.Address
	if r.Name != "" && r.Name != r.Address {
		s = fmt.Sprintf("%s [%s]", r.Name, r.Address)
	}
	if r.ASN != "" {
		s = fmt.Sprintf("%s [%s]", s, r.ASN)
	}
	return s
}

// lookup returns the first reverse name of addr or an empty string.
func (r *Reporter) lookup(ctx context.Context, addr netip.Addr) string {
	if r.resolver == nil {
		return ""
	}
	if name, ok := r.names[addr]; ok {
		return name
	}

	var name string
	names, err := r.resolver.LookupAddr(ctx, addr.String())
	if err != nil {
		logger.FromContext(ctx).DebugContext(ctx, "Reverse lookup failed", "address", addr.String(), "error", err)
	} else if len(names) > 0 {
		name = strings.TrimSuffix(names[0], ".")
	}
	r.names[addr] = name
	return name
}
