// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"time"

	"github.com/telekom/icmptrace/internal/helper"
)

// Default values for the [Options].
const (
	DefaultMaxHops = 30
	DefaultTimeout = 3 * time.Second
	DefaultProbes  = 3
)

// maxSequence is the number of distinct ICMP sequence numbers.
const maxSequence = 1 << 16

// Options contains the configuration for a traceroute run.
type Options struct {
	// MaxHops is the highest TTL that is probed.
	MaxHops int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Timeout is how long a single probe waits for a response.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Probes is the number of echo requests sent per TTL.
	Probes int `json:"probes" yaml:"probes" mapstructure:"probes"`
	// Identifier is the ICMP identifier shared by all probes of the run.
	Identifier uint16 `json:"identifier" yaml:"identifier" mapstructure:"identifier"`
	// Parallel sends the probes of one TTL concurrently.
	Parallel bool `json:"parallel" yaml:"parallel" mapstructure:"parallel"`
	// Retry is applied to resolving the destination, never to probes.
	Retry helper.RetryConfig `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{
		MaxHops: DefaultMaxHops,
		Timeout: DefaultTimeout,
		Probes:  DefaultProbes,
	}
}

// Validate checks that the options describe a run whose sequence
// numbers fit into 16 bits without wrapping.
func (o *Options) Validate() error {
	var err error
	if o.MaxHops < 1 || o.MaxHops > 255 {
		err = errors.Join(err, fmt.Errorf("max hops must be between 1 and 255, got %d", o.MaxHops))
	}
	if o.Probes < 1 {
		err = errors.Join(err, fmt.Errorf("probes per hop must be at least 1, got %d", o.Probes))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("timeout must be greater than 0, got %v", o.Timeout))
	}
	if o.MaxHops > 0 && o.Probes > 0 && (o.MaxHops+1)*o.Probes > maxSequence {
		err = errors.Join(err, fmt.Errorf("%d hops with %d probes each exceed the ICMP sequence space", o.MaxHops, o.Probes))
	}
	return err
}

// sequence returns the ICMP sequence number of the probe with the given
// index at the given ttl. It is unique for every probe of a run.
func (o *Options) sequence(ttl, index int) uint16 {
	return uint16(ttl*o.Probes + index) // #nosec G115 // bounded by Validate
}

// Target represents the destination of a traceroute.
type Target struct {
	// Address is the host name or literal IPv4 address to trace to.
	Address string `json:"address" yaml:"address" mapstructure:"address"`
}

func (t Target) String() string {
	return t.Address
}

func (t Target) Validate() error {
	if strings.TrimSpace(t.Address) == "" {
		return errors.New("target address cannot be empty")
	}
	return nil
}

// Probe is the result of a single echo request.
// A probe without a valid Addr timed out or received no valid response.
type Probe struct {
	// Latency is the round trip time. It is only set when Addr is valid.
	Latency time.Duration
	// Addr is the address of the responder.
	Addr netip.Addr
}

// OK reports whether the probe received a valid response.
func (p Probe) OK() bool {
	return p.Addr.IsValid()
}

// Hop contains the results of all probes sent with one TTL.
type Hop struct {
	// TTL is the time to live the probes were sent with.
	TTL int
	// Probes holds the probe results in the order the probes were sent.
	Probes []Probe
	// Responders are the distinct responder addresses in the order
	// they were first observed.
	Responders []netip.Addr
	// Reached is true if the destination answered at this TTL.
	Reached bool
}

// newHop builds a [Hop] from the given probe results.
// Responders are de-duplicated in probe order and the destination
// is only considered reached once all probes are known.
func newHop(ttl int, probes []Probe, dst netip.Addr) Hop {
	hop := Hop{TTL: ttl, Probes: probes, Responders: []netip.Addr{}}
	for _, p := range probes {
		if !p.OK() {
			continue
		}
		if !slices.Contains(hop.Responders, p.Addr) {
			hop.Responders = append(hop.Responders, p.Addr)
		}
		if p.Addr == dst {
			hop.Reached = true
		}
	}
	return hop
}

// Lost returns the number of probes that did not receive a valid response.
func (h Hop) Lost() int {
	lost := 0
	for _, p := range h.Probes {
		if !p.OK() {
			lost++
		}
	}
	return lost
}

func (h Hop) String() string {
	reached := ""
	if h.Reached {
		reached = "  (reached)"
	}
	if len(h.Responders) == 0 {
		return fmt.Sprintf("%-2d  *%s", h.TTL, reached)
	}

	addrs := make([]string, 0, len(h.Responders))
	for _, a := range h.Responders {
		addrs = append(addrs, a.String())
	}
	return fmt.Sprintf("%-2d  %s  %d/%d%s", h.TTL, strings.Join(addrs, " "), len(h.Probes)-h.Lost(), len(h.Probes), reached)
}

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
