// Package telemetry installs the OpenTelemetry tracer provider behind
// the spans emitted across the cue pipeline.
//
// Tracing is off by default: without a provider the global tracer is a
// no-op and span creation costs next to nothing. When enabled, spans go
// to an OTLP gRPC collector or to stdout. Exporter failures degrade
// back to no-op tracing; a storybook session never fails because a
// collector is down.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/olincollege/fairytale-sound-effects/internal/log"
)

const serviceName = "fairytale"

// Config controls span export. Stdout wins over Endpoint when both are
// set.
type Config struct {
	Enabled  bool
	Endpoint string // OTLP gRPC collector, host:port; empty uses the exporter default
	Stdout   bool   // pretty-print spans to stdout instead of exporting
	Version  string // service version stamped on every span
}

// Telemetry owns the tracer provider lifecycle. The zero value and nil
// are usable no-ops.
type Telemetry struct {
	provider *trace.TracerProvider
}

// New builds and installs the global tracer provider. A disabled config
// returns a no-op instance; exporter construction failures are logged
// and degrade to no-op rather than failing startup.
func New(ctx context.Context, cfg Config) *Telemetry {
	t := &Telemetry{}
	if !cfg.Enabled {
		return t
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Telemetry exporter failed, tracing disabled", err)
		return t
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(cfg.Version),
	)

	t.provider = trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(t.provider)

	// W3C trace context propagation
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info(log.CatConfig, "Telemetry enabled", "stdout", cfg.Stdout, "endpoint", cfg.Endpoint)
	return t
}

func newExporter(ctx context.Context, cfg Config) (trace.SpanExporter, error) {
	if cfg.Stdout {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}
		return exporter, nil
	}

	// Collectors run next to the app, so plaintext is the norm here.
	opts := []otlptracegrpc.Option{otlptracegrpc.WithInsecure()}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(cfg.Endpoint))
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}
	return exporter, nil
}

// Enabled reports whether a real provider is installed.
func (t *Telemetry) Enabled() bool {
	return t != nil && t.provider != nil
}

// Shutdown flushes pending spans. Safe on a no-op instance.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("trace provider shutdown: %w", err)
	}
	return nil
}
