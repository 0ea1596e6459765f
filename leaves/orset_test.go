package leaves

import "testing"

func TestORSetAddAndRemove(t *testing.T) {
	s := NewORSet[string, string]()

	add := s.Add("alice", s.ReadCtx("alice").DeriveAddCtx("replica1"))
	s.Apply(add)

	if !s.Contains("alice") {
		t.Fatal("expected alice to be present after add")
	}

	rm := s.Rm("alice", s.ReadCtx("alice").DeriveRmCtx())
	s.Apply(rm)

	if s.Contains("alice") {
		t.Fatal("expected alice to be gone after remove")
	}
}

func TestORSetConcurrentAddSurvivesConcurrentRemove(t *testing.T) {
	a := NewORSet[string, string]()
	add := a.Add("bob", a.ReadCtx("bob").DeriveAddCtx("r1"))
	a.Apply(add)

	// b replicates from a, then removes bob.
	b := a.Clone()
	rm := b.Rm("bob", b.ReadCtx("bob").DeriveRmCtx())
	b.Apply(rm)

	// meanwhile, a concurrently re-adds bob under a fresh dot.
	add2 := a.Add("bob", a.ReadCtx("bob").DeriveAddCtx("r2"))
	a.Apply(add2)

	a.Merge(b)
	if !a.Contains("bob") {
		t.Fatal("concurrent re-add must survive a concurrent remove")
	}
}

func TestORSetMembersSorted(t *testing.T) {
	s := NewORSet[string, string]()
	s.Apply(s.Add("charlie", s.ReadCtx("charlie").DeriveAddCtx("r1")))
	s.Apply(s.Add("alice", s.ReadCtx("alice").DeriveAddCtx("r1")))
	s.Apply(s.Add("bob", s.ReadCtx("bob").DeriveAddCtx("r1")))

	got := s.Members()
	want := []string{"alice", "bob", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if s.Len() != 3 {
		t.Fatalf("expected length 3, got %d", s.Len())
	}
}
