package dag

import "iter"

// Set is an insertion-ordered set of nodes keyed by identity.
// The zero value is an empty set ready to use. A nil *Set reads as empty.
type Set struct {
	index map[Node]int
	nodes []Node
}

// NewSet creates a set holding the given nodes in order, dropping repeats.
func NewSet(nodes ...Node) *Set {
	s := &Set{
		index: make(map[Node]int, len(nodes)),
		nodes: make([]Node, 0, len(nodes)),
	}
	s.Add(nodes...)
	return s
}

// Add inserts nodes that are not yet members and returns how many were new.
func (s *Set) Add(nodes ...Node) int {
	if s.index == nil {
		s.index = make(map[Node]int, len(nodes))
	}
	added := 0
	for _, n := range nodes {
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = len(s.nodes)
		s.nodes = append(s.nodes, n)
		added++
	}
	return added
}

// Merge adds every member of other to s.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	s.Add(other.nodes...)
}

// Union returns a new set holding the members of s followed by those of other.
func (s *Set) Union(other *Set) *Set {
	out := s.Clone()
	out.Merge(other)
	return out
}

// Remove deletes n and reports whether it was a member.
func (s *Set) Remove(n Node) bool {
	if s == nil {
		return false
	}
	i, ok := s.index[n]
	if !ok {
		return false
	}
	delete(s.index, n)
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j]] = j
	}
	return true
}

// Has reports whether n is a member.
func (s *Set) Has(n Node) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[n]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.nodes)
}

// Nodes returns the members in insertion order. The slice is a copy.
func (s *Set) Nodes() []Node {
	if s == nil {
		return nil
	}
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// All iterates over the members in insertion order.
func (s *Set) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if s == nil {
			return
		}
		for _, n := range s.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	if s == nil {
		return NewSet()
	}
	return NewSet(s.nodes...)
}

// Equal reports whether s and other hold the same members, in any order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for n := range s.All() {
		if !other.Has(n) {
			return false
		}
	}
	return true
}
