package vclock

import "cmp"

// Actor identifies a mutator of a VClock. It must be totally ordered and
// hashable so it can key a map and sort deterministically; every type
// satisfying cmp.Ordered (the builtin integers, floats and strings) meets
// both requirements.
type Actor interface {
	cmp.Ordered
}

// Counter tracks causality at a single actor. It only ever increases.
type Counter = uint64

// Dot identifies a single event: the Counter-th mutation performed by Actor.
// Two dots are the same event iff both fields are equal.
type Dot[A Actor] struct {
	Actor   A
	Counter Counter
}

// Clock returns the one-entry VClock this dot implies.
func (d Dot[A]) Clock() *VClock[A] {
	vc := New[A]()
	vc.Witness(d.Actor, d.Counter)
	return vc
}
