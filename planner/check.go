package planner

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/depbatch/dag"
	"github.com/kbukum/depbatch/errors"
	"github.com/kbukum/depbatch/logger"
	"github.com/kbukum/depbatch/observability"
	"github.com/kbukum/depbatch/project"
)

// Status reports whether a root can be planned.
type Status struct {
	Name string `json:"name" yaml:"name"`
	// Enabled reports the root's own state.
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Fulfilled reports whether every transitive dependency is enabled.
	Fulfilled bool `json:"fulfilled" yaml:"fulfilled"`
	// Blocking lists the disabled dependencies, sorted.
	Blocking []string `json:"blocking,omitempty" yaml:"blocking,omitempty"`
}

// Ready reports whether the root and all its dependencies are enabled.
func (s Status) Ready() bool { return s.Enabled && s.Fulfilled }

// Check reports the status of each root, defaulting to the catalog's
// default projects. A cycle below any root fails the whole check.
func (p *Planner) Check(ctx context.Context, c *project.Catalog, roots []string) (statuses []Status, err error) {
	start := p.now()
	ctx, span := p.tracer.Start(ctx, observability.SpanCheck)
	defer span.End()
	log := p.log.WithContext(ctx)
	defer func() { p.finish(ctx, log, "check", start, err) }()

	if c == nil {
		return nil, errors.InvalidInput("catalog", "catalog is nil")
	}
	if len(roots) == 0 {
		roots = c.Defaults()
	}
	span.SetAttributes(attribute.StringSlice(observability.AttrRoots, roots))

	nodes, err := c.Nodes(roots...)
	if err != nil {
		return nil, err
	}

	statuses = make([]Status, 0, len(nodes))
	for _, n := range nodes {
		s, err := status(c, n)
		if err != nil {
			return nil, errors.FromGraph(err, c.Name)
		}
		statuses = append(statuses, s)
	}
	log.Debug("check finished", logger.Fields(logger.FieldNodes, len(statuses)))
	return statuses, nil
}

func status(c *project.Catalog, n dag.Node) (Status, error) {
	ok, err := dag.DependenciesFulfilled(n)
	if err != nil {
		return Status{}, err
	}
	s := Status{Name: c.Name(n), Enabled: n.IsFulfilled(), Fulfilled: ok}
	if ok {
		return s, nil
	}
	deps, err := dag.DependsOnRecursive(n)
	if err != nil {
		return Status{}, err
	}
	for d := range deps.All() {
		if !d.IsFulfilled() {
			s.Blocking = append(s.Blocking, c.Name(d))
		}
	}
	sort.Strings(s.Blocking)
	return s, nil
}
