package observability

import (
	"context"
	"strconv"
)

// HealthStatus is the health state of a component or the whole service.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
)

// severity orders statuses so the worst component decides the service status.
func (s HealthStatus) severity() int {
	switch s {
	case HealthStatusDown:
		return 2
	case HealthStatusDegraded:
		return 1
	default:
		return 0
	}
}

// Health is the result of one component check.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ServiceHealth is the body of the /health endpoint.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	Components []Health     `json:"components,omitempty"`
}

// HealthChecker reports the health of one component.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) Health

// CheckHealth implements HealthChecker.
func (f HealthCheckFunc) CheckHealth(ctx context.Context) Health { return f(ctx) }

// NewServiceHealth returns a healthy ServiceHealth without components.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{Service: service, Status: HealthStatusUp, Version: version}
}

// AddComponent records h. The service status becomes the worst status seen.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)
	if h.Status.severity() > sh.Status.severity() {
		sh.Status = h.Status
	}
}

// TelemetryHealth reports where spans and metrics are exported to. Export
// failures surface in the SDK's error handler, so the check is always up.
func TelemetryHealth(cfg Config) HealthChecker {
	return HealthCheckFunc(func(context.Context) Health {
		h := Health{Name: "telemetry", Status: HealthStatusUp, Details: map[string]string{
			"export": "disabled",
		}}
		if cfg.Enabled {
			h.Details["export"] = "otlp"
			h.Details["endpoint"] = cfg.Endpoint
			h.Details["sample_rate"] = strconv.FormatFloat(cfg.SampleRate, 'f', -1, 64)
		}
		return h
	})
}
