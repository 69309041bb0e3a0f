package testutil

import (
	"fmt"

	"github.com/kbukum/depbatch/dag"
)

// Graph builds tasks by name. Dependencies must be added before the tasks
// that reference them.
type Graph struct {
	tasks map[string]*Task
	order []string
}

// NewGraph creates an empty graph builder.
func NewGraph() *Graph {
	return &Graph{tasks: make(map[string]*Task)}
}

// Add creates a task named name depending on the named tasks.
// It panics on an unknown dependency or a duplicate name.
func (g *Graph) Add(name string, deps ...string) *Graph {
	if _, dup := g.tasks[name]; dup {
		panic(fmt.Sprintf("testutil: duplicate task %q", name))
	}
	g.tasks[name] = NewTask(name, g.lookup(deps)...)
	g.order = append(g.order, name)
	return g
}

// Link replaces the dependencies of an existing task. It allows building
// cycles, which Add cannot.
func (g *Graph) Link(name string, deps ...string) *Graph {
	g.Task(name).SetDependencies(g.lookup(deps)...)
	return g
}

// Task returns the named task. It panics when the name is unknown.
func (g *Graph) Task(name string) *Task {
	t, ok := g.tasks[name]
	if !ok {
		panic(fmt.Sprintf("testutil: unknown task %q", name))
	}
	return t
}

// Nodes returns the named tasks as dag nodes, in argument order.
func (g *Graph) Nodes(names ...string) []dag.Node {
	out := make([]dag.Node, len(names))
	for i, n := range names {
		out[i] = g.Task(n)
	}
	return out
}

// Set returns a dag.Set holding the named tasks.
func (g *Graph) Set(names ...string) *dag.Set {
	return dag.NewSet(g.Nodes(names...)...)
}

// All returns every task in insertion order.
func (g *Graph) All() []*Task {
	out := make([]*Task, len(g.order))
	for i, n := range g.order {
		out[i] = g.tasks[n]
	}
	return out
}

// ResetChecks clears the check counters of every task.
func (g *Graph) ResetChecks() {
	for _, t := range g.tasks {
		t.ResetChecks()
	}
}

// Checks returns the summed check counters of every task.
func (g *Graph) Checks() int {
	total := 0
	for _, t := range g.tasks {
		total += t.Checks()
	}
	return total
}

func (g *Graph) lookup(names []string) []*Task {
	out := make([]*Task, len(names))
	for i, n := range names {
		out[i] = g.Task(n)
	}
	return out
}
