// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/icmptrace/internal/logger"
	"github.com/telekom/icmptrace/internal/traceroute"
	"github.com/telekom/icmptrace/pkg/config"
	"github.com/telekom/icmptrace/pkg/report"
	"github.com/telekom/icmptrace/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// NewCmdTrace creates the command tracing the route to a destination
func NewCmdTrace(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <destination>",
		Short: "Trace the route to a destination",
		Long: "Sends ICMP echo requests with increasing TTL to the destination and prints\n" +
			"every router answering with time exceeded until the destination replies.\n" +
			"Opening raw ICMP sockets requires root or the CAP_NET_RAW capability.",
		Args: cobra.ExactArgs(1),
		RunE: runTrace(version, traceroute.NewClient),
	}

	defaults := config.Default()
	cmd.Flags().IntP("max-hops", "m", defaults.Trace.MaxHops, "maximum number of hops (max TTL) to probe")
	cmd.Flags().DurationP("timeout", "w", defaults.Trace.Timeout, "time to wait for the answer of a single probe")
	cmd.Flags().Int("timeout-ms", 0, "probe timeout in milliseconds, overrides --timeout")
	cmd.Flags().IntP("probes", "q", defaults.Trace.Probes, "number of probes per hop")
	cmd.Flags().Uint16("identifier", 0, "ICMP identifier of the run (default is the process id)")
	cmd.Flags().Bool("parallel", false, "send the probes of a hop concurrently")
	cmd.Flags().Int("retries", 0, "number of retries of a failed destination lookup")
	cmd.Flags().Duration("retry-delay", time.Second, "initial delay between destination lookup retries")
	cmd.Flags().StringP("output", "o", string(defaults.Output), "output format, one of text, json or yaml")
	cmd.Flags().BoolP("numeric", "n", false, "print addresses only, skip reverse lookups")
	cmd.Flags().String("geoip-asn", "", "path to a GeoLite2 ASN database to annotate responders")
	cmd.Flags().String("metrics-file", "", "write prometheus metrics of the run to this file")
	cmd.Flags().Bool("telemetry.enabled", false, "enable tracing of the run with OpenTelemetry")
	cmd.Flags().String("telemetry.exporter", "", "span exporter, one of stdout, grpc or http")
	cmd.Flags().String("telemetry.url", "", "url of the otlp collector")
	cmd.Flags().String("telemetry.token", "", "bearer token for the otlp collector")

	_ = viper.BindPFlag("trace.maxHops", cmd.Flags().Lookup("max-hops"))
	_ = viper.BindPFlag("trace.timeout", cmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("trace.probes", cmd.Flags().Lookup("probes"))
	_ = viper.BindPFlag("trace.identifier", cmd.Flags().Lookup("identifier"))
	_ = viper.BindPFlag("trace.parallel", cmd.Flags().Lookup("parallel"))
	_ = viper.BindPFlag("trace.retry.count", cmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag("trace.retry.delay", cmd.Flags().Lookup("retry-delay"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("numeric", cmd.Flags().Lookup("numeric"))
	_ = viper.BindPFlag("geoip.asnPath", cmd.Flags().Lookup("geoip-asn"))
	_ = viper.BindPFlag("metrics.file", cmd.Flags().Lookup("metrics-file"))
	_ = viper.BindPFlag("telemetry.enabled", cmd.Flags().Lookup("telemetry.enabled"))
	_ = viper.BindPFlag("telemetry.exporter", cmd.Flags().Lookup("telemetry.exporter"))
	_ = viper.BindPFlag("telemetry.url", cmd.Flags().Lookup("telemetry.url"))
	_ = viper.BindPFlag("telemetry.token", cmd.Flags().Lookup("telemetry.token"))

	return cmd
}

// runTrace returns the run function of the trace command.
// Failures of the run itself are printed and do not change the exit code.
func runTrace(version string, newClient func() traceroute.Client) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := logger.NewContextWithLogger(cmd.Context())
		defer cancel()
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		log := logger.FromContext(ctx)

		if err = cfg.Validate(ctx); err != nil {
			return err
		}

		r := newRunner(cfg, version, cmd.OutOrStdout(), newClient())
		if err = r.run(ctx, args[0]); err != nil {
			log.ErrorContext(ctx, "Trace run failed", "destination", args[0], "error", err)
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		return nil
	}
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.Flags().Changed("timeout-ms") {
		ms, err := cmd.Flags().GetInt("timeout-ms")
		if err != nil {
			return cfg, err
		}
		cfg.Trace.Timeout = time.Duration(ms) * time.Millisecond
	}

	if cfg.Trace.Identifier == 0 {
		cfg.Trace.Identifier = uint16(os.Getpid() & 0xffff) // #nosec G115 // masked to 16 bits
	}
	return cfg, nil
}

// runner executes a single trace run and reports its hops
type runner struct {
	cfg      config.Config
	version  string
	out      io.Writer
	client   traceroute.Client
	resolver report.Resolver
	provider telemetry.Provider
	openGeo  func(path string) (*report.GeoIP, error)
}

func newRunner(cfg config.Config, version string, out io.Writer, client traceroute.Client) *runner {
	r := &runner{
		cfg:      cfg,
		version:  version,
		out:      out,
		client:   client,
		provider: telemetry.New(cfg.Telemetry, version),
		openGeo:  report.OpenGeoIP,
	}
	if !cfg.Numeric {
		r.resolver = report.NewResolver()
	}
	return r
}

// run resolves the destination, traces the route to it and writes the report.
// Hops received before a failure are still reported.
func (r *runner) run(ctx context.Context, destination string) (err error) {
	log := logger.FromContext(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorContext(ctx, "Trace run panicked", "panic", rec)
			err = fmt.Errorf("unexpected failure: %v", rec)
		}
	}()

	if r.cfg.HasTelemetry() {
		if err = r.provider.InitTracing(ctx); err != nil {
			return err
		}
		defer func() {
			sCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if sErr := r.provider.Shutdown(sCtx); sErr != nil {
				log.WarnContext(ctx, "Failed to flush spans", "error", sErr)
			}
		}()
	}

	geo := r.geoIP(ctx)
	defer func() {
		if cErr := geo.Close(); cErr != nil {
			log.WarnContext(ctx, "Failed to close ASN database", "error", cErr)
		}
	}()

	dst, err := r.client.Resolve(ctx, traceroute.Target{Address: destination}, &r.cfg.Trace)
	if err != nil {
		return err
	}

	metrics := telemetry.NewMetrics()
	if err = metrics.Register(r.provider.Registry()); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	rep := report.NewReporter(r.out, r.cfg.Output, r.resolver, geo)
	if err = rep.Start(destination, dst, r.cfg.Trace.MaxHops); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	hops := make(chan traceroute.Hop)
	done := make(chan error, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("unexpected failure: %v", rec)
			}
		}()
		done <- r.client.Trace(ctx, dst, &r.cfg.Trace, hops)
	}()

	var reportErr error
	for hop := range hops {
		metrics.ObserveHop(hop)
		if hErr := rep.Hop(ctx, hop); hErr != nil && reportErr == nil {
			reportErr = fmt.Errorf("failed to write report: %w", hErr)
		}
	}
	traceErr := <-done

	if fErr := rep.Finish(); fErr != nil && reportErr == nil {
		reportErr = fmt.Errorf("failed to write report: %w", fErr)
	}

	var metricsErr error
	if r.cfg.HasMetricsFile() {
		metricsErr = r.writeMetrics(destination, dst)
	}

	return errors.Join(traceErr, reportErr, metricsErr)
}

// geoIP opens the configured ASN database. A database that cannot be
// opened disables the annotation instead of failing the run.
func (r *runner) geoIP(ctx context.Context) *report.GeoIP {
	if !r.cfg.HasGeoIP() {
		return nil
	}
	geo, err := r.openGeo(r.cfg.GeoIP.ASNPath)
	if err != nil {
		logger.FromContext(ctx).WarnContext(ctx, "ASN annotation disabled", "error", err)
		return nil
	}
	return geo
}

func (r *runner) writeMetrics(destination string, dst netip.Addr) error {
	registry := r.provider.Registry()
	if err := telemetry.RegisterRunInfo(registry, destination, dst.String(), r.version); err != nil {
		return fmt.Errorf("failed to register run info: %w", err)
	}
	return r.provider.WriteTextfile(r.cfg.Metrics.File)
}
