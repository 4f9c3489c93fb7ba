package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"keymirror/internal/logging"
)

// InstrumentationName names the tracer used for conversion spans
const InstrumentationName = "keymirror"

// Provider hands out tracers and flushes them on shutdown
type Provider struct {
	provider oteltrace.TracerProvider
	shutdown func(context.Context) error
	enabled  bool
}

// NewProvider exports spans over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT
// is set. Otherwise it returns a no-op provider.
func NewProvider(ctx context.Context, version string) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(endpoint)}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "keymirror"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	logging.Logger.Debug("OTLP tracing enabled", "endpoint", endpoint, "service", serviceName)

	return &Provider{
		provider: provider,
		shutdown: provider.Shutdown,
		enabled:  true,
	}, nil
}

// Enabled reports whether spans are exported
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Tracer returns the conversion tracer
func (p *Provider) Tracer() oteltrace.Tracer {
	return p.provider.Tracer(InstrumentationName)
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.shutdown(ctx)
}
