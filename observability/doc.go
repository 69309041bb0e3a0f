// Package observability wires OpenTelemetry tracing and metrics for the
// planner and the HTTP plan service.
//
// Export is off unless enabled in configuration; spans and instruments then
// go to the global no-op providers.
//
//	shutdown, err := observability.Setup(ctx, cfg.Observability, "depbatch", version.Version, cfg.Environment)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPlan)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("depbatch"))
//	metrics.RecordOperation(ctx, "plan", "ok", time.Since(start))
//
// Health:
//
//	health := observability.NewServiceHealth("depbatch", version.Version)
//	health.AddComponent(observability.TelemetryHealth(cfg.Observability).CheckHealth(ctx))
package observability
