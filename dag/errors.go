package dag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCyclicGraph is matched by every *CyclicGraphError.
	ErrCyclicGraph = errors.New("dag: circular dependencies detected")
	// ErrDependencyResolution is matched by every *ResolutionError.
	ErrDependencyResolution = errors.New("dag: some dependencies could not be resolved")
	// ErrInvalidNode reports a contract violation such as a nil node.
	ErrInvalidNode = errors.New("dag: invalid node")
)

// CyclicGraphError is returned when a traversal reaches a node that is
// already on its current path.
type CyclicGraphError struct {
	// Root is the node the traversal started from.
	Root Node
	// Path runs from Root to the node that closes the cycle; the last
	// element appears earlier in Path as well.
	Path []Node
}

func (e *CyclicGraphError) Error() string {
	if names := describe(e.Path, " -> "); names != "" {
		return fmt.Sprintf("%s: %s", ErrCyclicGraph, names)
	}
	return ErrCyclicGraph.Error()
}

func (e *CyclicGraphError) Unwrap() error { return ErrCyclicGraph }

// ResolutionError is returned by BuildBatches when a round produces no ready
// node while nodes remain. The cause may be a cycle, a permanently
// unfulfilled node, or a dependency outside the working set; the error does
// not tell them apart.
type ResolutionError struct {
	// Unresolved holds the nodes still waiting when leveling stopped.
	Unresolved *Set
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("%s: %d node(s) unresolved", ErrDependencyResolution, e.Unresolved.Len())
	if names := describe(e.Unresolved.Nodes(), ", "); names != "" {
		msg += " (" + names + ")"
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return ErrDependencyResolution }

// describe joins node names when every node can name itself.
func describe(nodes []Node, sep string) string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		s, ok := n.(fmt.Stringer)
		if !ok {
			return ""
		}
		names = append(names, s.String())
	}
	return strings.Join(names, sep)
}
