package testutil

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/depbatch/dag"
)

// Task is a dag.Node carrying an arbitrary payload. It is fulfilled while
// enabled and counts how often its fulfillment was checked.
type Task struct {
	payload any

	mu       sync.Mutex
	deps     []*Task
	disabled bool
	checks   int
}

var _ dag.Node = (*Task)(nil)

// NewTask creates an enabled task depending on deps.
func NewTask(payload any, deps ...*Task) *Task {
	t := &Task{payload: payload}
	t.SetDependencies(deps...)
	return t
}

// Payload returns the value the task was created with.
func (t *Task) Payload() any { return t.payload }

// SetDependencies replaces the direct dependencies of t.
func (t *Task) SetDependencies(deps ...*Task) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deps = append([]*Task(nil), deps...)
}

// DependsOn implements dag.Node.
func (t *Task) DependsOn() []dag.Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]dag.Node, len(t.deps))
	for i, d := range t.deps {
		out[i] = d
	}
	return out
}

// IsFulfilled implements dag.Node.
func (t *Task) IsFulfilled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checks++
	return !t.disabled
}

// IsEnabled reports whether the task is enabled, without counting a check.
func (t *Task) IsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.disabled
}

// Enable marks the task as fulfilled.
func (t *Task) Enable() {
	t.mu.Lock()
	t.disabled = false
	t.mu.Unlock()
}

// Disable marks the task as unfulfilled.
func (t *Task) Disable() {
	t.mu.Lock()
	t.disabled = true
	t.mu.Unlock()
}

// EnableAll enables t and every task it transitively depends on.
func (t *Task) EnableAll() error {
	err := dag.Visit(t, func(n dag.Node) {
		n.(*Task).Enable()
	})
	if err != nil {
		return err
	}
	t.Enable()
	return nil
}

// Checks returns how many times IsFulfilled was called.
func (t *Task) Checks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checks
}

// ResetChecks clears the fulfillment check counter.
func (t *Task) ResetChecks() {
	t.mu.Lock()
	t.checks = 0
	t.mu.Unlock()
}

// String renders the payload with an enabled marker, e.g. "c[X]".
func (t *Task) String() string { return t.label() }

// Describe renders t followed by its direct dependencies, e.g.
// "c[X] -> [b[X] a[ ]]". Dependencies are not expanded further.
func (t *Task) Describe() string {
	deps := t.DependsOn()
	if len(deps) == 0 {
		return t.label()
	}
	labels := make([]string, len(deps))
	for i, d := range deps {
		labels[i] = d.(*Task).label()
	}
	return t.label() + " -> [" + strings.Join(labels, " ") + "]"
}

func (t *Task) label() string {
	mark := "X"
	if !t.IsEnabled() {
		mark = " "
	}
	return fmt.Sprintf("%v[%s]", t.payload, mark)
}

// Names returns the payloads of the nodes in s as sorted strings.
// Nodes that are not tasks are rendered with %v.
func Names(s *dag.Set) []string {
	names := make([]string, 0, s.Len())
	for n := range s.All() {
		if t, ok := n.(*Task); ok {
			names = append(names, fmt.Sprint(t.payload))
			continue
		}
		names = append(names, fmt.Sprint(n))
	}
	sort.Strings(names)
	return names
}

// BatchNames converts a batch sequence into sorted payload names per batch.
func BatchNames(batches []*dag.Set) [][]string {
	out := make([][]string, len(batches))
	for i, b := range batches {
		out[i] = Names(b)
	}
	return out
}
