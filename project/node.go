package project

import "github.com/kbukum/depbatch/dag"

// Node is the graph view of a catalog project. It is a comparable handle:
// two nodes are the same node exactly when they address the same project of
// the same catalog.
type Node struct {
	c  *Catalog
	id ID
}

var _ dag.Node = Node{}

// ID returns the project handle.
func (n Node) ID() ID { return n.id }

// Catalog returns the catalog n belongs to.
func (n Node) Catalog() *Catalog { return n.c }

// DependsOn implements dag.Node.
func (n Node) DependsOn() []dag.Node {
	deps := n.c.entries[n.id].deps
	out := make([]dag.Node, len(deps))
	for i, d := range deps {
		out[i] = Node{c: n.c, id: d}
	}
	return out
}

// IsFulfilled implements dag.Node. A project is fulfilled while enabled.
func (n Node) IsFulfilled() bool { return n.c.IsEnabled(n.id) }

// String returns the project name.
func (n Node) String() string {
	if n.c == nil {
		return "<nil>"
	}
	return n.c.entries[n.id].project.Name
}
