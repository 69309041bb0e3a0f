package planner

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/depbatch/checkout"
	"github.com/kbukum/depbatch/dag"
	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/project"
)

// Entry is one project of a plan.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Directory   string `json:"directory" yaml:"directory"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Branch      string `json:"branch" yaml:"branch"`
	VCS         string `json:"vcs" yaml:"vcs"`
	Command     string `json:"command" yaml:"command"`
}

// Plan is an ordered sequence of batches. Batches run in order; entries of
// one batch are independent of each other.
type Plan struct {
	ID        uuid.UUID `json:"id" yaml:"id"`
	Roots     []string  `json:"roots" yaml:"roots"`
	Batches   [][]Entry `json:"batches" yaml:"batches"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Len returns the number of entries over all batches.
func (p *Plan) Len() int {
	n := 0
	for _, b := range p.Batches {
		n += len(b)
	}
	return n
}

// Entries returns the entries of all batches in plan order.
func (p *Plan) Entries() []Entry {
	out := make([]Entry, 0, p.Len())
	for _, b := range p.Batches {
		out = append(out, b...)
	}
	return out
}

// Planner builds plans. It is safe for concurrent use.
type Planner struct {
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() uuid.UUID
}

// New creates a Planner. Without options it logs nowhere and records no
// metrics; spans go to the global tracer provider.
func New(opts ...Option) *Planner {
	p := &Planner{
		log:    logger.Nop(),
		tracer: observability.Tracer(tracerName),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("planner")
	return p
}

// Plan builds the checkout plan for roots. Without roots the catalog's
// default projects are planned. Unknown roots fail with NOT_FOUND, cycles
// with CYCLIC_GRAPH and disabled projects in the closure with
// DEPENDENCY_RESOLUTION.
func (p *Planner) Plan(ctx context.Context, c *project.Catalog, roots []string, opts Options) (plan *Plan, err error) {
	start := p.now()
	id := p.newID()

	ctx, span := p.tracer.Start(ctx, observability.SpanPlan)
	defer span.End()
	log := p.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldPlanID, id.String()))

	defer func() {
		p.finish(ctx, log, "plan", start, err)
		if err == nil {
			span.SetAttributes(
				attribute.Int(observability.AttrBatches, len(plan.Batches)),
				attribute.Int(observability.AttrNodes, plan.Len()),
			)
			if p.metrics != nil {
				p.metrics.RecordPlanShape(ctx, len(plan.Batches), plan.Len())
			}
			fields := logger.DurationFields("plan", p.now().Sub(start))
			fields[logger.FieldBatches] = len(plan.Batches)
			fields[logger.FieldNodes] = plan.Len()
			log.Info("plan built", fields)
		}
	}()

	if c == nil {
		return nil, errors.InvalidInput("catalog", "catalog is nil")
	}
	if len(roots) == 0 {
		roots = c.Defaults()
		if len(roots) == 0 {
			log.Warn("no roots given and no default projects defined")
		}
	}
	span.SetAttributes(
		attribute.String(observability.AttrPlanID, id.String()),
		attribute.StringSlice(observability.AttrRoots, roots),
	)

	nodes, err := c.Nodes(roots...)
	if err != nil {
		return nil, err
	}

	var working *dag.Set
	err = p.stage(ctx, c, observability.SpanPlanClosure, func(context.Context) error {
		var err error
		working, err = dag.BuildRecursiveDependencySet(nodes, !opts.ExcludeRoots)
		return err
	})
	if err != nil {
		return nil, err
	}

	var batches []*dag.Set
	err = p.stage(ctx, c, observability.SpanPlanBatches, func(context.Context) error {
		var err error
		batches, err = dag.BuildBatches(working)
		return err
	})
	if err != nil {
		return nil, err
	}

	plan = &Plan{
		ID:        id,
		Roots:     append([]string{}, roots...),
		Batches:   make([][]Entry, 0, len(batches)),
		CreatedAt: start.UTC(),
	}
	err = p.stage(ctx, c, observability.SpanPlanCommands, func(context.Context) error {
		for _, b := range batches {
			entries, err := entriesOf(c, b)
			if err != nil {
				return err
			}
			plan.Batches = append(plan.Batches, entries)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// entriesOf renders a batch sorted by project name.
func entriesOf(c *project.Catalog, batch *dag.Set) ([]Entry, error) {
	entries := make([]Entry, 0, batch.Len())
	for n := range batch.All() {
		e, err := entryOf(c, n)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func entryOf(c *project.Catalog, n dag.Node) (Entry, error) {
	pn, ok := n.(project.Node)
	if !ok || pn.Catalog() != c {
		return Entry{}, errors.Internal(nil).WithDetail("node", c.Name(n))
	}
	id := pn.ID()
	proj := c.Project(id)
	src := c.Source(id)
	e := Entry{
		Name:        proj.Name,
		Directory:   c.Directory(id),
		Description: proj.Description,
		Branch:      c.Branch(id),
		VCS:         src.Type,
	}
	cmd, err := checkout.Command(src.Type, src.PathPattern, checkout.Params{
		Project:   proj.Name,
		Branch:    e.Branch,
		Directory: e.Directory,
	})
	if err != nil {
		return Entry{}, err
	}
	e.Command = cmd
	return e, nil
}

// stage runs fn inside a child span and maps graph errors.
func (p *Planner) stage(ctx context.Context, c *project.Catalog, name string, fn func(context.Context) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		appErr := errors.FromGraph(err, c.Name)
		observability.SetSpanError(ctx, appErr)
		return appErr
	}
	return nil
}

func (p *Planner) finish(ctx context.Context, log *logger.Logger, op string, start time.Time, err error) {
	d := p.now().Sub(start)
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		if p.metrics != nil {
			p.metrics.RecordError(ctx, code, "planner")
		}
		log.WithError(err).Warn(op+" failed", logger.MergeWithDuration(logger.Fields("code", code), d))
	}
	if p.metrics != nil {
		p.metrics.RecordOperation(ctx, op, status, d)
	}
}
