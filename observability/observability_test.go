package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func withRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter
}

// --- Config ---

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.MetricInterval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", cfg.MetricInterval)
	}
	if cfg.Enabled {
		t.Error("expected export disabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (&Config{SampleRate: 1.5}).Validate(); err == nil {
		t.Fatal("expected error for sample rate above 1")
	}
	if err := (&Config{MetricInterval: -time.Second}).Validate(); err == nil {
		t.Fatal("expected error for negative interval")
	}
	if err := (&Config{SampleRate: 0.5}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSampler(t *testing.T) {
	tid := trace.TraceID{1}
	sampledParent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
	}))

	tests := []struct {
		name string
		rate float64
		ctx  context.Context
		want sdktrace.SamplingDecision
	}{
		{"always", 1, context.Background(), sdktrace.RecordAndSample},
		{"above one", 2, context.Background(), sdktrace.RecordAndSample},
		{"never", 0, context.Background(), sdktrace.Drop},
		{"sampled parent wins", 0, sampledParent, sdktrace.RecordAndSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := sampler(tt.rate).ShouldSample(sdktrace.SamplingParameters{
				ParentContext: tt.ctx,
				TraceID:       tid,
				Name:          SpanPlan,
			})
			if res.Decision != tt.want {
				t.Fatalf("expected decision %v, got %v", tt.want, res.Decision)
			}
		})
	}
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "depbatch", "dev", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("unexpected shutdown error: %v", err)
	}
}

// --- Metrics ---

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "/v1/plan", "POST", 200, 100*time.Millisecond)
	metrics.RecordOperation(ctx, "plan", "ok", 50*time.Millisecond)
	metrics.RecordPlanShape(ctx, 3, 7)
	metrics.RecordError(ctx, "CYCLIC_GRAPH", "planner")
}

func TestMetrics_RecordsToReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	metrics.RecordOperation(ctx, "plan", "ok", time.Millisecond)
	metrics.RecordOperation(ctx, "plan", "ok", time.Millisecond)
	metrics.RecordPlanShape(ctx, 3, 7)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name == "operation.total" {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 2 {
					t.Fatalf("expected operation.total=2, got %+v", m.Data)
				}
			}
		}
	}
	for _, name := range []string{"operation.total", "operation.duration", "plan.batches", "plan.nodes"} {
		if !found[name] {
			t.Errorf("expected metric %s to be collected", name)
		}
	}
}

// --- Tracing ---

func TestStartSpan_Recorded(t *testing.T) {
	exporter := withRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanPlanBatches)
	SetSpanAttribute(ctx, AttrBatches, 3)
	SetSpanAttribute(ctx, AttrRoots, []string{"a", "b"})
	SetSpanAttribute(ctx, "ignored", struct{}{})
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != SpanPlanBatches {
		t.Errorf("expected span %q, got %q", SpanPlanBatches, spans[0].Name)
	}
	if len(spans[0].Attributes) != 2 {
		t.Errorf("expected 2 attributes, got %v", spans[0].Attributes)
	}
}

func TestSetSpanError_MarksStatus(t *testing.T) {
	exporter := withRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanPlan)
	SetSpanError(ctx, fmt.Errorf("cycle"))
	span.End()

	got := exporter.GetSpans()[0]
	if got.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", got.Status.Code)
	}
	if len(got.Events) != 1 {
		t.Errorf("expected recorded error event, got %d events", len(got.Events))
	}
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil span (noop)")
	}
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span error"))
	if Tracer("t") == nil || Meter("m") == nil {
		t.Fatal("expected global tracer and meter")
	}
}

// --- Health ---

func TestServiceHealth_AddComponent(t *testing.T) {
	sh := NewServiceHealth("depbatch", "1.0.0")
	if sh.Status != HealthStatusUp {
		t.Fatalf("expected status 'up', got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "catalog", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Errorf("expected status 'up' after healthy component, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "watch", Status: HealthStatusDegraded, Message: "stale"})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected status 'degraded', got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "catalog", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "other", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Errorf("expected 'down' not overridden by 'degraded', got %s", sh.Status)
	}
	if len(sh.Components) != 4 {
		t.Errorf("expected 4 components, got %d", len(sh.Components))
	}
}

func TestTelemetryHealth(t *testing.T) {
	h := TelemetryHealth(Config{}).CheckHealth(context.Background())
	if h.Name != "telemetry" || h.Status != HealthStatusUp || h.Details["export"] != "disabled" {
		t.Fatalf("unexpected disabled health: %+v", h)
	}

	h = TelemetryHealth(Config{Enabled: true, Endpoint: "collector:4318", SampleRate: 0.25}).CheckHealth(context.Background())
	want := map[string]string{"export": "otlp", "endpoint": "collector:4318", "sample_rate": "0.25"}
	if diff := cmp.Diff(want, h.Details); diff != "" {
		t.Fatalf("details mismatch (-want +got):\n%s", diff)
	}
}

// --- Exporters ---

func TestInitTracer(t *testing.T) {
	svc := Service{Name: "test", Version: "1.0.0", Environment: "test"}
	for _, rate := range []float64{1.0, 0.0, 0.5} {
		cfg := Config{Enabled: true, Endpoint: "localhost:4318", Insecure: true, SampleRate: rate}
		prev := otel.GetTracerProvider()
		tp, err := InitTracer(context.Background(), cfg, svc)
		if err != nil {
			t.Fatalf("rate %v: unexpected error: %v", rate, err)
		}
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	}
}

func TestInitMeter(t *testing.T) {
	cfg := Config{Enabled: true, Endpoint: "localhost:4318", Insecure: true, MetricInterval: time.Minute}
	prev := otel.GetMeterProvider()
	mp, err := InitMeter(context.Background(), cfg, Service{Name: "test-service", Version: "1.0.0", Environment: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = mp.Shutdown(ctx)
	otel.SetMeterProvider(prev)
}
