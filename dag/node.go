package dag

// Node is a participant in a dependency graph. Edges are only ever walked
// downwards, from a node towards the nodes it depends on.
//
// Nodes are compared by identity. Implementations must be comparable and two
// distinct nodes must never compare equal: pointer types and small handle
// values (an arena pointer plus an index) both qualify, plain value structs
// with structural equality do not.
type Node interface {
	// DependsOn returns the nodes this node directly depends on.
	// The result must not change while a traversal is running.
	DependsOn() []Node

	// IsFulfilled reports whether the node itself is ready,
	// ignoring its dependencies entirely.
	IsFulfilled() bool
}

// HasDependencies reports whether n depends on at least one node.
func HasDependencies(n Node) bool {
	return len(n.DependsOn()) > 0
}
