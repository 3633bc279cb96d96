// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"
	"net/netip"

	"github.com/telekom/icmptrace/internal/helper"
	"github.com/telekom/icmptrace/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Client = (*icmpClient)(nil)

// Client is able to run an ICMP traceroute to a destination.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Resolve resolves the target to the IPv4 address that is traced.
	// The returned error wraps [ErrResolve] if the target cannot be resolved.
	Resolve(ctx context.Context, target Target, opts *Options) (netip.Addr, error)
	// Trace probes the path to dst and sends one [Hop] per ttl to hops.
	// Trace closes hops before it returns.
	Trace(ctx context.Context, dst netip.Addr, opts *Options, hops chan<- Hop) error
}

type icmpClient struct {
	// newConn opens the socket of a single probe.
	newConn func() (probeConn, error)
	// resolve looks up the IPv4 address of a host.
	resolve func(ctx context.Context, host string) (netip.Addr, error)
}

// NewClient returns a [Client] sending ICMP echo requests over raw sockets.
func NewClient() Client {
	return &icmpClient{
		newConn: newRawConn,
		resolve: resolveIPv4,
	}
}

// Resolve validates the target and resolves it to an IPv4 address,
// retrying the lookup as configured in the options.
func (c *icmpClient) Resolve(ctx context.Context, target Target, opts *Options) (netip.Addr, error) {
	if err := target.Validate(); err != nil {
		return netip.Addr{}, fmt.Errorf("%w: invalid target %q: %w", ErrResolve, target, err)
	}

	var dst netip.Addr
	lookup := helper.Retry(func(ctx context.Context) error {
		addr, err := c.resolve(ctx, target.Address)
		if err != nil {
			return err
		}
		dst = addr
		return nil
	}, opts.Retry)

	if err := lookup(ctx); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Failed to resolve target", "target", target, "error", err)
		return netip.Addr{}, fmt.Errorf("%w %q: %w", ErrResolve, target, err)
	}
	return dst, nil
}

// Trace runs the ttl sweep towards dst.
func (c *icmpClient) Trace(ctx context.Context, dst netip.Addr, opts *Options, hops chan<- Hop) error {
	defer close(hops)
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid traceroute options: %w", err)
	}

	tracer := otel.Tracer("traceroute.icmpClient")
	ctx, sp := tracer.Start(ctx, "Trace", trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", dst),
		attribute.Int("traceroute.options.max_hops", opts.MaxHops),
		attribute.Int("traceroute.options.probes", opts.Probes),
		attribute.Stringer("traceroute.options.timeout", opts.Timeout),
	))
	defer sp.End()

	log := logger.FromContext(ctx)
	log.DebugContext(ctx, "Starting ICMP traceroute", "dst", dst, "maxHops", opts.MaxHops, "probes", opts.Probes, "identifier", opts.Identifier)

	h := &hopper{
		prober:     &icmpProber{newConn: c.newConn, opts: *opts},
		otelTracer: tracer,
		dst:        dst,
		opts:       *opts,
	}
	if err := h.run(ctx, hops); err != nil {
		sp.SetStatus(codes.Error, "Traceroute interrupted")
		sp.RecordError(err)
		return fmt.Errorf("traceroute interrupted: %w", err)
	}
	return nil
}
