package dag

// DependenciesFulfilled reports whether every node in the dependency subgraph
// of n is fulfilled. The fulfillment of n itself is not consulted, so a node
// without dependencies always passes.
//
// The walk stops at the first unfulfilled dependency and checks a shared
// dependency once. A cycle is reported as an error rather than as false.
func DependenciesFulfilled(n Node) (bool, error) {
	return FoldDistinct(n, Node.IsFulfilled, func(acc, ok bool) Step[bool] {
		if acc && ok {
			return Continue(true)
		}
		return Stop(false)
	}, true)
}
