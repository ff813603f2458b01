// Package telemetry provides OpenTelemetry integration for the catalog.
//
// Telemetry is disabled by default and installs no-op providers.
//
// # Configuration
//
//	telemetry.enabled / CATALOG_TELEMETRY_ENABLED=true   enable telemetry
//	telemetry.stdout  / CATALOG_TELEMETRY_STDOUT=true    write spans/metrics to stdout
//	OTEL_EXPORTER_OTLP_ENDPOINT=...                      OTLP/HTTP metrics endpoint
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationScope = "github.com/Silvia-Panaite/Finalproject-Catalog"

// Options selects exporters. The zero value disables telemetry.
type Options struct {
	Enabled bool
	Stdout  bool
	Writer  io.Writer // stdout exporter target; defaults to os.Stdout
}

var (
	enabled     bool
	shutdownFns []func(context.Context) error
)

// Enabled reports whether Init installed real providers.
func Enabled() bool {
	return enabled
}

// Init configures OTel providers. When opts.Enabled is false this installs
// no-op providers and returns immediately.
func Init(ctx context.Context, serviceName, version string, opts Options) error {
	enabled = opts.Enabled
	if !opts.Enabled {
		otel.SetTracerProvider(tracenoop.NewTracerProvider())
		otel.SetMeterProvider(metricnoop.NewMeterProvider())
		return nil
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
		resource.WithProcess(),
	)
	if err != nil {
		return fmt.Errorf("telemetry: resource: %w", err)
	}

	tp, err := buildTraceProvider(res, opts)
	if err != nil {
		return fmt.Errorf("telemetry: trace provider: %w", err)
	}
	otel.SetTracerProvider(tp)
	shutdownFns = append(shutdownFns, tp.Shutdown)

	mp, err := buildMetricProvider(ctx, res, opts)
	if err != nil {
		return fmt.Errorf("telemetry: metric provider: %w", err)
	}
	otel.SetMeterProvider(mp)
	shutdownFns = append(shutdownFns, mp.Shutdown)

	return nil
}

func buildTraceProvider(res *resource.Resource, opts Options) (*sdktrace.TracerProvider, error) {
	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	if opts.Stdout {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(opts.Writer), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, err
		}
		// The CLI is short-lived; export synchronously so nothing is lost at exit.
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exp))
	}
	return sdktrace.NewTracerProvider(tpOpts...), nil
}

func buildMetricProvider(ctx context.Context, res *resource.Resource, opts Options) (*sdkmetric.MeterProvider, error) {
	mpOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}

	if opts.Stdout {
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(opts.Writer))
		if err != nil {
			return nil, err
		}
		mpOpts = append(mpOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(15*time.Second)),
		))
	}

	if endpoint := firstNonEmpty(
		os.Getenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"),
		os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	); endpoint != "" {
		exp, err := buildOTLPMetricExporter(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("otlp metric exporter: %w", err)
		}
		mpOpts = append(mpOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(30*time.Second)),
		))
	}

	return sdkmetric.NewMeterProvider(mpOpts...), nil
}

// Tracer returns a tracer with the given instrumentation name (or the global scope).
func Tracer(name string) trace.Tracer {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Tracer(name)
}

// Meter returns a meter with the given instrumentation name (or the global scope).
func Meter(name string) metric.Meter {
	if name == "" {
		name = instrumentationScope
	}
	return otel.Meter(name)
}

// Shutdown flushes all spans/metrics and shuts down OTel providers.
func Shutdown(ctx context.Context) {
	for _, fn := range shutdownFns {
		_ = fn(ctx)
	}
	shutdownFns = nil
	enabled = false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
