// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net/netip"
	"strconv"

	"github.com/telekom/icmptrace/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// hopper is responsible for managing the execution of traceroute hops for a destination.
type hopper struct {
	prober     prober
	otelTracer trace.Tracer
	dst        netip.Addr
	opts       Options
}

// run probes every ttl from 1 up to the configured maximum, one after another,
// and sends one [Hop] per ttl to the hops channel. It stops after the first
// hop that reached the destination. It returns the context error if the
// context is canceled between two hops.
func (h *hopper) run(ctx context.Context, hops chan<- Hop) error {
	for ttl := 1; ttl <= h.opts.MaxHops; ttl++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		hop := h.probeHop(ctx, ttl)
		hops <- hop
		if hop.Reached {
			return nil
		}
	}
	return nil
}

// probeHop sends all probes of one ttl and assembles their results.
// Probes run sequentially unless the parallel option is set. In both cases
// probe results keep their send order and the destination is only
// evaluated after all probes completed.
func (h *hopper) probeHop(ctx context.Context, ttl int) Hop {
	ctx, span := h.otelTracer.Start(ctx, "hop "+strconv.Itoa(ttl), trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", h.dst),
		attribute.Int("traceroute.target.ttl", ttl),
	))
	defer span.End()

	probes := make([]Probe, h.opts.Probes)
	send := func(i int) {
		probes[i] = h.record(ctx, ttl, i, h.prober.probe(ctx, h.dst, ttl, i))
	}

	if h.opts.Parallel {
		var g errgroup.Group
		for i := range probes {
			g.Go(func() error {
				send(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range probes {
			send(i)
		}
	}

	hop := newHop(ttl, probes, h.dst)
	span.SetAttributes(
		attribute.Bool("traceroute.target.reached", hop.Reached),
		attribute.Int("traceroute.hop.lost", hop.Lost()),
	)
	logger.FromContext(ctx).DebugContext(ctx, hop.String())
	return hop
}

// record turns the outcome of one probe into a [Probe] and
// reports it on the current span.
func (h *hopper) record(ctx context.Context, ttl, index int, o outcome) Probe {
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)

	switch o.kind {
	case outcomeSuccess:
		log.DebugContext(ctx, "Received ICMP response", "ttl", ttl, "probe", index, "from", o.addr, "rtt", o.rtt)
		span.AddEvent("ICMP response received", trace.WithAttributes(
			attribute.Int("traceroute.probe.index", index),
			attribute.Stringer("traceroute.probe.addr", o.addr),
			attribute.Stringer("traceroute.probe.rtt", o.rtt),
		))
		return Probe{Latency: o.rtt, Addr: o.addr}

	case outcomeTimeout:
		log.DebugContext(ctx, "ICMP read timeout exceeded, no response received", "ttl", ttl, "probe", index)
		span.AddEvent("ICMP read timeout exceeded", trace.WithAttributes(
			attribute.Int("traceroute.probe.index", index),
		))
		return Probe{}

	case outcomeError:
		_ = wrapError(ctx, o.err, "probe %d at ttl %d failed", index, ttl)
		return Probe{}

	default:
		log.ErrorContext(ctx, "Unknown probe outcome", "kind", int(o.kind))
		return Probe{}
	}
}
