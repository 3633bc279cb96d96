// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc/credentials"
)

// Exporter selects where spans are exported to.
type Exporter string

const (
	// HTTP exports spans to an otlp collector over http
	HTTP Exporter = "http"
	// GRPC exports spans to an otlp collector over grpc
	GRPC Exporter = "grpc"
	// STDOUT prints spans to stderr, stdout is reserved for the report
	STDOUT Exporter = "stdout"
	// NOOP discards all spans
	NOOP Exporter = "noop"
)

var errUnsupportedExporter = errors.New("unsupported exporter")

// String returns the string representation of the exporter
func (e Exporter) String() string {
	return string(e)
}

// Validate returns an error if the exporter is not supported.
// An empty exporter is treated as [NOOP].
func (e Exporter) Validate() error {
	switch e {
	case HTTP, GRPC, STDOUT, NOOP, "":
		return nil
	}
	return fmt.Errorf("%w: %q", errUnsupportedExporter, string(e))
}

// IsExporting returns true if spans are sent to a collector
func (e Exporter) IsExporting() bool {
	return e == HTTP || e == GRPC
}

// Create creates the span exporter for the configuration
func (e Exporter) Create(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	switch e {
	case HTTP:
		return newHTTPExporter(ctx, config)
	case GRPC:
		return newGRPCExporter(ctx, config)
	case STDOUT:
		return stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(os.Stderr))
	case NOOP, "":
		return tracetest.NewNoopExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedExporter, string(e))
	}
}

func newHTTPExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(config.Url),
		otlptracehttp.WithHeaders(authHeaders(config.Token)),
	}
	if !config.TLS.Enabled {
		opts = append(opts, otlptracehttp.WithInsecure())
		return otlptracehttp.New(ctx, opts...)
	}

	tlsCfg, err := tlsConfig(config.TLS.CertPath)
	if err != nil {
		return nil, err
	}
	opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsCfg))
	return otlptracehttp.New(ctx, opts...)
}

func newGRPCExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpointURL(config.Url),
		otlptracegrpc.WithHeaders(authHeaders(config.Token)),
	}
	if !config.TLS.Enabled {
		opts = append(opts, otlptracegrpc.WithInsecure())
		return otlptracegrpc.New(ctx, opts...)
	}

	tlsCfg, err := tlsConfig(config.TLS.CertPath)
	if err != nil {
		return nil, err
	}
	opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewTLS(tlsCfg)))
	return otlptracegrpc.New(ctx, opts...)
}

func authHeaders(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": fmt.Sprintf("Bearer %s", token)}
}

// tlsConfig returns a tls configuration trusting the certificate at certPath
// in addition to the system pool. An empty path uses the system pool only.
func tlsConfig(certPath string) (*tls.Config, error) {
	if certPath == "" {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}
	pem, err := os.ReadFile(certPath) // #nosec G304 // path is user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %q", certPath)
	}
	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
