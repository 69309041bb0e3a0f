// Package planner turns a project catalog into an ordered checkout plan.
//
// A plan starts from a set of root projects, takes the closure of their
// dependencies and levels it into batches with the dag package. Projects in
// one batch do not depend on each other; every batch only depends on the
// batches before it. Each project becomes an Entry carrying its checkout
// command.
//
// Usage:
//
//	p := planner.New(planner.WithLogger(log), planner.WithMetrics(metrics))
//	plan, err := p.Plan(ctx, catalog, []string{"app"}, planner.Options{})
package planner
