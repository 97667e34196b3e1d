// Package trace holds the process-wide OpenTelemetry tracer. Spans are
// batched and printed as JSON, to stdout unless Options names a writer.
package trace

import (
	"context"
	"io"
	"runtime/debug"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "company-analyzer"

type Options struct {
	Enabled bool
	Writer  io.Writer // nil means stdout
	Pretty  bool
}

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	enabled  bool
)

// Setup installs the tracer provider. It is a no-op when tracing is off or
// a provider is already installed; Shutdown clears it.
func Setup(opts Options) error {
	if !opts.Enabled || provider != nil {
		enabled = opts.Enabled && provider != nil
		return nil
	}

	var exportOpts []stdouttrace.Option
	if opts.Writer != nil {
		exportOpts = append(exportOpts, stdouttrace.WithWriter(opts.Writer))
	}
	if opts.Pretty {
		exportOpts = append(exportOpts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(exportOpts...)
	if err != nil {
		return err
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version()),
		))
	if err != nil {
		return err
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(serviceName)
	enabled = true
	return nil
}

// version is the main module version stamped by the go tool.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}

// Shutdown flushes pending spans and turns tracing off.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	provider, tracer, enabled = nil, nil, false
	return err
}

// StartSpan starts a span, or returns ctx untouched with its current
// (possibly no-op) span while tracing is off.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

func Enabled() bool { return enabled }

// GetTraceFields returns the hex trace and span ids of the span in ctx.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !enabled || !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
