package leaves

import "testing"

func TestPNCounterIncDec(t *testing.T) {
	c := NewPNCounter[string]()
	c.Apply(c.Inc("a"))
	c.Apply(c.Inc("a"))
	c.Apply(c.Dec("a"))

	if got := c.Value(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestPNCounterCanReadNegative(t *testing.T) {
	a := NewPNCounter[string]()
	a.Apply(a.Dec("a"))

	if got := a.Value(); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestPNCounterMergeIsCommutative(t *testing.T) {
	a := NewPNCounter[string]()
	a.Apply(a.Inc("a"))
	a.Apply(a.Inc("a"))

	b := NewPNCounter[string]()
	b.Apply(b.Dec("b"))

	left := a.Clone()
	left.Merge(b)
	right := b.Clone()
	right.Merge(a)

	if left.Value() != right.Value() {
		t.Fatalf("merge not commutative: %d vs %d", left.Value(), right.Value())
	}
	if left.Value() != 1 {
		t.Fatalf("expected 1, got %d", left.Value())
	}
}
