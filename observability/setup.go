package observability

import (
	"context"
	"errors"
)

// ShutdownFunc flushes and stops the providers started by Setup.
type ShutdownFunc func(context.Context) error

// Setup installs the OTLP tracer and meter providers when cfg is enabled.
// When export is disabled the returned function is a no-op.
func Setup(ctx context.Context, cfg Config, service, version, environment string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	svc := Service{Name: service, Version: version, Environment: environment}
	tp, err := InitTracer(ctx, cfg, svc)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg, svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
