package dag

import "fmt"

// Step is the outcome of combining one visited node into the accumulator.
type Step[T any] struct {
	Value T
	Stop  bool
}

// Continue carries v forward and lets the traversal go on.
func Continue[T any](v T) Step[T] { return Step[T]{Value: v} }

// Stop ends the traversal at once; v becomes the result of Fold.
func Stop[T any](v T) Step[T] { return Step[T]{Value: v, Stop: true} }

// Fold walks the dependency subgraph of root depth-first and post-order.
//
// Dependencies are visited in DependsOn order. For each dependency d the
// dependencies of d are folded first, seeded with the running accumulator,
// and the result is then combined with f(d) through op. The root itself is
// never passed to f; init seeds the deepest accumulation. A node reachable
// along several paths is visited once per path.
//
// When op returns a Stop step the walk ends immediately, remaining siblings
// are not visited, and the step's value is returned.
//
// Reaching a node that is already on the current path, the root included,
// fails with a *CyclicGraphError.
func Fold[T any](root Node, f func(Node) T, op func(acc, v T) Step[T], init T) (T, error) {
	if root == nil {
		var zero T
		return zero, ErrInvalidNode
	}
	return newWalker(root, f, op).fold(root, init)
}

// FoldDistinct is Fold for operators where combining a node's contribution
// again changes nothing, such as set union or logical and. A dependency
// whose subgraph was already folded without error is skipped on later
// paths, so every node is expanded at most once and the walk stays linear
// in the size of the graph. Cycles are still reported.
func FoldDistinct[T any](root Node, f func(Node) T, op func(acc, v T) Step[T], init T) (T, error) {
	if root == nil {
		var zero T
		return zero, ErrInvalidNode
	}
	w := newWalker(root, f, op)
	w.done = make(map[Node]struct{})
	return w.fold(root, init)
}

// ApplyDependencies folds f over the dependency subgraph of node with an
// associative operator op. Callers must not rely on sibling order affecting
// the result, only on a node being combined after all of its dependencies.
func ApplyDependencies[T any](node Node, f func(Node) T, op func(T, T) T, init T) (T, error) {
	return Fold(node, f, func(acc, v T) Step[T] {
		return Continue(op(acc, v))
	}, init)
}

// Visit calls fn for every node in the dependency subgraph of node, in
// post-order, for its side effects.
func Visit(node Node, fn func(Node)) error {
	_, err := ApplyDependencies(node, func(n Node) struct{} {
		fn(n)
		return struct{}{}
	}, func(struct{}, struct{}) struct{} { return struct{}{} }, struct{}{})
	return err
}

type walker[T any] struct {
	f      func(Node) T
	op     func(acc, v T) Step[T]
	path   []Node
	onPath map[Node]struct{}
	done   map[Node]struct{} // fully folded nodes; nil folds per path
}

func newWalker[T any](root Node, f func(Node) T, op func(acc, v T) Step[T]) *walker[T] {
	return &walker[T]{
		f:      f,
		op:     op,
		path:   []Node{root},
		onPath: map[Node]struct{}{root: {}},
	}
}

func (w *walker[T]) fold(root Node, init T) (T, error) {
	step, err := w.descend(root, init)
	return step.Value, err
}

// descend folds every dependency of n, and its subgraph, into acc.
func (w *walker[T]) descend(n Node, acc T) (Step[T], error) {
	for _, dep := range n.DependsOn() {
		if dep == nil {
			return Continue(acc), fmt.Errorf("%w: %v depends on a nil node", ErrInvalidNode, n)
		}
		if _, seen := w.onPath[dep]; seen {
			return Continue(acc), w.cycle(dep)
		}
		if _, folded := w.done[dep]; folded {
			continue
		}

		w.enter(dep)
		step, err := w.descend(dep, acc)
		if err == nil && !step.Stop {
			step = w.op(step.Value, w.f(dep))
		}
		w.leave(dep)

		if err != nil || step.Stop {
			return step, err
		}
		if w.done != nil {
			w.done[dep] = struct{}{}
		}
		acc = step.Value
	}
	return Continue(acc), nil
}

func (w *walker[T]) enter(n Node) {
	w.path = append(w.path, n)
	w.onPath[n] = struct{}{}
}

func (w *walker[T]) leave(n Node) {
	w.path = w.path[:len(w.path)-1]
	delete(w.onPath, n)
}

func (w *walker[T]) cycle(closing Node) error {
	path := make([]Node, len(w.path), len(w.path)+1)
	copy(path, w.path)
	return &CyclicGraphError{Root: w.path[0], Path: append(path, closing)}
}
