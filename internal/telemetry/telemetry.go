package telemetry

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"usersvc/internal/config"
	"usersvc/internal/logging"
)

type ShutdownFunc func(ctx context.Context) error

// Setup configures OpenTelemetry (traces + metrics) and returns a shutdown
// function. Data goes via OTLP/gRPC to a collector. When telemetry is
// disabled the global providers stay as no-ops.
func Setup(
	ctx context.Context,
	cfg config.ObservabilityConfig,
	env string,
	logger logging.Logger,
) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(ctx context.Context) error { return nil }, nil
	}

	res, err := resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			attribute.String("deployment.environment", env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}

	endpoint := cfg.OtelEndpoint
	if endpoint == "" {
		if e := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); e != "" {
			endpoint = e
		} else {
			endpoint = "localhost:4317"
		}
	}

	grpcOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}

	traceExp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpcOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricExp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithDialOption(grpcOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	metricReader := sdkmetric.NewPeriodicReader(
		metricExp,
		sdkmetric.WithInterval(10*time.Second),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(metricReader),
	)
	otel.SetMeterProvider(mp)

	logger.Info("otel configured",
		"otlp_endpoint", endpoint,
		"service_name", cfg.ServiceName,
	)

	shutdown := func(ctx context.Context) error {
		var firstErr error

		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer provider", "error", err)
			firstErr = err
		}

		if err := mp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown meter provider", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}

		return firstErr
	}

	return shutdown, nil
}
