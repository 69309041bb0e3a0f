package dag

import "fmt"

// BuildBatches levels the working set into batches using Kahn's algorithm.
//
// Each round collects every remaining node whose dependencies have all been
// placed in earlier batches and which is fulfilled itself. Those nodes form
// the next batch and are removed from the pending dependencies of the rest.
// When a round finds nothing ready while nodes remain, a *ResolutionError
// carrying the remaining nodes is returned.
//
// Only dependencies inside the working set can ever be satisfied, so the set
// must be closed under DependsOn (see BuildRecursiveDependencySet). The
// caller's set is not modified.
func BuildBatches(working *Set) ([]*Set, error) {
	if working == nil {
		return nil, fmt.Errorf("%w: working set is nil", ErrInvalidNode)
	}

	remaining := working.Nodes()
	pending := make(map[Node]map[Node]struct{}, len(remaining))
	for _, n := range remaining {
		if n == nil {
			return nil, fmt.Errorf("%w: working set holds a nil node", ErrInvalidNode)
		}
		deps := n.DependsOn()
		unresolved := make(map[Node]struct{}, len(deps))
		for _, d := range deps {
			if d == nil {
				return nil, fmt.Errorf("%w: %v depends on a nil node", ErrInvalidNode, n)
			}
			unresolved[d] = struct{}{}
		}
		pending[n] = unresolved
	}

	batches := make([]*Set, 0)
	for len(remaining) > 0 {
		ready := NewSet()
		for _, n := range remaining {
			if len(pending[n]) == 0 && n.IsFulfilled() {
				ready.Add(n)
			}
		}
		if ready.Len() == 0 {
			return nil, &ResolutionError{Unresolved: NewSet(remaining...)}
		}

		next := remaining[:0]
		for _, n := range remaining {
			if ready.Has(n) {
				delete(pending, n)
				continue
			}
			for d := range pending[n] {
				if ready.Has(d) {
					delete(pending[n], d)
				}
			}
			next = append(next, n)
		}
		remaining = next
		batches = append(batches, ready)
	}
	return batches, nil
}

// BuildBatchesFrom levels n together with its full closure. Everything else
// in the working set is a dependency of n, so n always forms the last batch.
func BuildBatchesFrom(n Node) ([]*Set, error) {
	working, err := DependsOnRecursive(n)
	if err != nil {
		return nil, err
	}
	working.Add(n)
	return BuildBatches(working)
}
