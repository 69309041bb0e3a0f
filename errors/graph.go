package errors

import (
	stderrors "errors"

	"github.com/kbukum/depbatch/dag"
)

// FromGraph converts an error returned by the dag package into an AppError.
// name renders a node for the error details. Errors that already are
// AppErrors pass through, anything else becomes an internal error.
func FromGraph(err error, name func(dag.Node) string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	var cyc *dag.CyclicGraphError
	if stderrors.As(err, &cyc) {
		return CyclicGraph(names(cyc.Path, name)).WithCause(err)
	}
	var res *dag.ResolutionError
	if stderrors.As(err, &res) {
		return DependencyResolution(names(res.Unresolved.Nodes(), name)).WithCause(err)
	}
	if stderrors.Is(err, dag.ErrCyclicGraph) {
		return CyclicGraph(nil).WithCause(err)
	}
	if stderrors.Is(err, dag.ErrDependencyResolution) {
		return DependencyResolution(nil).WithCause(err)
	}
	if stderrors.Is(err, dag.ErrInvalidNode) {
		return InvalidInput("", err.Error()).WithCause(err)
	}
	return Internal(err)
}

func names(nodes []dag.Node, name func(dag.Node) string) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = name(n)
	}
	return out
}
