package dag

import "testing"

type stub struct{ name string }

func (s *stub) DependsOn() []Node { return nil }
func (s *stub) IsFulfilled() bool { return true }
func (s *stub) String() string    { return s.name }

// --- Set ---

func TestSet_AddKeepsInsertionOrder(t *testing.T) {
	a, b, c := &stub{"a"}, &stub{"b"}, &stub{"c"}
	s := NewSet(b, a)
	if added := s.Add(a, c, c); added != 1 {
		t.Fatalf("expected 1 new member, got %d", added)
	}
	got := s.Nodes()
	want := []Node{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSet_IdentityNotValue(t *testing.T) {
	s := NewSet(&stub{"a"})
	if s.Has(&stub{"a"}) {
		t.Fatal("expected distinct pointers with equal fields to be distinct members")
	}
}

func TestSet_RemoveReindexes(t *testing.T) {
	a, b, c := &stub{"a"}, &stub{"b"}, &stub{"c"}
	s := NewSet(a, b, c)
	if !s.Remove(a) {
		t.Fatal("expected a to be removed")
	}
	if s.Remove(a) {
		t.Fatal("expected second removal to report false")
	}
	if !s.Remove(c) || s.Len() != 1 || !s.Has(b) {
		t.Fatalf("expected only b to remain, got %v", s.Nodes())
	}
}

func TestSet_NilReadsAsEmpty(t *testing.T) {
	var s *Set
	if s.Len() != 0 || s.Has(&stub{"a"}) || s.Nodes() != nil {
		t.Fatal("expected nil set to read as empty")
	}
	for range s.All() {
		t.Fatal("expected no iteration over nil set")
	}
	if s.Clone().Len() != 0 {
		t.Fatal("expected clone of nil set to be empty")
	}
}

func TestSet_ZeroValueUsable(t *testing.T) {
	var s Set
	s.Add(&stub{"a"})
	if s.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", s.Len())
	}
}

func TestSet_UnionAndEqual(t *testing.T) {
	a, b, c := &stub{"a"}, &stub{"b"}, &stub{"c"}
	left := NewSet(a, b)
	right := NewSet(c, b)
	u := left.Union(right)
	if u.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", u.Len())
	}
	if left.Len() != 2 {
		t.Fatal("expected Union to leave the receiver untouched")
	}
	if !u.Equal(NewSet(c, a, b)) {
		t.Fatal("expected order-insensitive equality")
	}
	if u.Equal(left) {
		t.Fatal("expected sets of different size to differ")
	}
}

func TestSet_AllStopsEarly(t *testing.T) {
	s := NewSet(&stub{"a"}, &stub{"b"}, &stub{"c"})
	seen := 0
	for range s.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected 2 iterations, got %d", seen)
	}
}

// --- describe ---

func TestDescribe(t *testing.T) {
	if got := describe([]Node{&stub{"a"}, &stub{"b"}}, " -> "); got != "a -> b" {
		t.Fatalf("expected %q, got %q", "a -> b", got)
	}
	if got := describe([]Node{&stub{"a"}, unnamed{}}, ", "); got != "" {
		t.Fatalf("expected empty description for unnamed node, got %q", got)
	}
}

type unnamed struct{}

func (unnamed) DependsOn() []Node { return nil }
func (unnamed) IsFulfilled() bool { return true }
