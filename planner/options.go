package planner

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
)

const tracerName = "github.com/kbukum/depbatch/planner"

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger plans are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records plan operations on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Planner) { p.metrics = m }
}

// WithTracer sets the tracer plan stages are recorded with.
func WithTracer(t trace.Tracer) Option {
	return func(p *Planner) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDGenerator replaces uuid.New for plan IDs.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(p *Planner) { p.newID = gen }
}

// Options tune a single plan.
type Options struct {
	// ExcludeRoots leaves the roots out of the plan, keeping only what they
	// depend on.
	ExcludeRoots bool
}
