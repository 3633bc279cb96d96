// Package traceroute provides an ICMP echo based traceroute for IPv4.
//
// It exposes a [Client] that resolves a [Target] and sweeps the TTL from 1 up
// to a configurable maximum, sending a fixed number of echo requests per TTL
// and collecting the "time exceeded" and "echo reply" answers into one [Hop]
// per TTL. The sweep stops at the first hop the destination answered.
//
// Key features:
//   - A small codec for ICMP echo requests with RFC 1071 checksums
//     ([EncodeEchoRequest], [Checksum]) and for validating raw IPv4 datagrams
//     against the probe that caused them ([DecodeResponse], [ValidateResponse]).
//     All header offsets are derived from the IHL fields of the outer and the
//     embedded IPv4 header.
//   - Raw ICMP sockets via x/sys/unix, one socket per probe with IP_TTL set,
//     closed before the next probe is sent
//   - Timeouts and socket errors degrade a single probe, never the run
//   - Optional concurrent probes per hop that keep the probe order
//   - Built-in OpenTelemetry spans and events for every hop and probe
//
// Typical usage:
//
//	client := traceroute.NewClient()
//	opts := traceroute.DefaultOptions()
//	opts.Identifier = uint16(os.Getpid())
//	dst, err := client.Resolve(ctx, traceroute.Target{Address: "example.com"}, &opts)
//	hops := make(chan traceroute.Hop)
//	go func() { err = client.Trace(ctx, dst, &opts, hops) }()
//	for hop := range hops {
//		fmt.Println(hop)
//	}
package traceroute
