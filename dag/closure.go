package dag

import "fmt"

// DependsOnRecursive returns every direct and indirect dependency of n.
// n itself is only included when it is reachable from its own dependencies,
// which is a cycle and therefore reported as an error instead. Each
// dependency is expanded once however many paths lead to it.
func DependsOnRecursive(n Node) (*Set, error) {
	if n == nil {
		return nil, ErrInvalidNode
	}
	return FoldDistinct(n,
		func(d Node) *Set { return NewSet(d.DependsOn()...) },
		func(acc, deps *Set) Step[*Set] {
			acc.Merge(deps)
			return Continue(acc)
		},
		NewSet(n.DependsOn()...),
	)
}

// BuildRecursiveDependencySet returns the union of the transitive
// dependencies of every root, plus the roots themselves when includeRoots is
// set. The result is closed under DependsOn and can be passed straight to
// BuildBatches. A nil root fails with ErrInvalidNode before any traversal.
func BuildRecursiveDependencySet(roots []Node, includeRoots bool) (*Set, error) {
	for i, r := range roots {
		if r == nil {
			return nil, fmt.Errorf("%w: root %d is nil", ErrInvalidNode, i)
		}
	}

	result := NewSet()
	for _, r := range roots {
		deps, err := DependsOnRecursive(r)
		if err != nil {
			return nil, err
		}
		result.Merge(deps)
	}
	if includeRoots {
		result.Add(roots...)
	}
	return result, nil
}
