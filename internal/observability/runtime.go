package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/syncfit/syncfit-backend/internal/config"
)

// Runtime owns the OTel provider trio for the process. LoggerProvider is nil
// when log export is disabled; the other two fall back to no-op providers so
// instrumentation call sites never branch.
type Runtime struct {
	LoggerProvider *sdklog.LoggerProvider
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

// InitRuntime builds the OTLP log, metric and trace pipelines against a single
// shared service resource. On a partial failure the providers constructed so
// far are shut down so a botched boot does not leak exporter connections.
func InitRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	res, err := newServiceResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{}
	if rt.LoggerProvider, err = newLoggerProvider(ctx, cfg, res, logger); err != nil {
		return nil, err
	}
	if rt.MeterProvider, err = newMeterProvider(ctx, cfg, res, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	if rt.TracerProvider, err = newTracerProvider(ctx, cfg, res, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	return rt, nil
}

// Shutdown flushes and closes every pipeline, collecting errors rather than
// stopping at the first one.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	flush := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s shutdown: %w", name, err))
		}
	}
	if r.TracerProvider != nil {
		flush("tracer", r.TracerProvider.Shutdown)
	}
	if r.MeterProvider != nil {
		flush("meter", r.MeterProvider.Shutdown)
	}
	if r.LoggerProvider != nil {
		flush("logger", r.LoggerProvider.Shutdown)
	}
	return errors.Join(errs...)
}

func newServiceResource(ctx context.Context, cfg *config.Config) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.OTELServiceName),
			attribute.String("deployment.environment", cfg.OTELEnvironment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}
	return res, nil
}
