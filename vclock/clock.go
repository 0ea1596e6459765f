// Package vclock implements a vector clock: a partially ordered timestamp
// mapping actor to highest counter witnessed, plus the algebra every
// higher-level CRDT in this module builds on (witness, merge, subtract,
// intersection, truncate).
//
// VClock itself is a plain, unsynchronized value type, exactly as a CRDT
// primitive must be (see crdtmap.Map, which embeds one per entry). Callers
// who need to share a single clock across goroutines should wrap it in
// SyncClock, which serializes access through a single goroutine's request
// channel rather than a mutex, giving a mutual-exclusion facade around the
// pure core.
package vclock

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// VClock is a mapping from actor to the highest counter witnessed for that
// actor. An actor absent from the map has an implied counter of 0; no entry
// is ever stored with counter 0 (zero entries are pruned on the way out).
type VClock[A Actor] struct {
	dots map[A]Counter
}

// New returns the empty clock, the bottom of the lattice.
func New[A Actor]() *VClock[A] {
	return &VClock[A]{dots: map[A]Counter{}}
}

// FromMap builds a VClock from a plain map, pruning any zero entries so the
// invariant "no zero counters" holds regardless of what the caller passed.
func FromMap[A Actor](m map[A]Counter) *VClock[A] {
	vc := New[A]()
	for a, c := range m {
		vc.Witness(a, c)
	}
	return vc
}

// Get returns the counter recorded for actor a, or 0 if a has never been
// witnessed.
func (vc *VClock[A]) Get(a A) Counter {
	if vc == nil {
		return 0
	}
	return vc.dots[a]
}

// Inc is a pure query: it returns the Dot that would result from actor a
// performing its next mutation, without recording anything. The caller
// commits the dot by applying an Op that carries it; a discarded dot (e.g.
// because the surrounding transaction aborted) never corrupts the clock.
func (vc *VClock[A]) Inc(a A) Dot[A] {
	return Dot[A]{Actor: a, Counter: vc.Get(a) + 1}
}

// Witness raises the counter for actor a to max(current, c). It never
// decreases a counter; witnessing a counter no greater than the current one
// is a no-op.
func (vc *VClock[A]) Witness(a A, c Counter) {
	if c == 0 {
		return
	}
	if vc.dots == nil {
		vc.dots = map[A]Counter{}
	}
	if c > vc.dots[a] {
		vc.dots[a] = c
	}
}

// Apply witnesses the dot's (actor, counter) pair. It is the CmRDT op-based
// mutation for VClock: re-delivering the same dot is idempotent.
func (vc *VClock[A]) Apply(d Dot[A]) {
	vc.Witness(d.Actor, d.Counter)
}

// IsEmpty reports whether the clock has witnessed anything at all.
func (vc *VClock[A]) IsEmpty() bool {
	return len(vc.dots) == 0
}

// Len returns the number of actors with a non-zero counter.
func (vc *VClock[A]) Len() int {
	return len(vc.dots)
}

// Actors returns the clock's actors in sorted order, for deterministic
// iteration and serialization.
func (vc *VClock[A]) Actors() []A {
	keys := maps.Keys(vc.dots)
	slices.Sort(keys)
	return keys
}

// Clone returns an independent copy of the clock.
func (vc *VClock[A]) Clone() *VClock[A] {
	out := New[A]()
	for a, c := range vc.dots {
		out.dots[a] = c
	}
	return out
}

// Merge is the CvRDT state-based join: componentwise max with other. It is
// commutative, associative and idempotent.
func (vc *VClock[A]) Merge(other *VClock[A]) {
	for a, c := range other.dots {
		vc.Witness(a, c)
	}
}

// Merged returns a new clock equal to vc merged with other, leaving both
// arguments untouched.
func (vc *VClock[A]) Merged(other *VClock[A]) *VClock[A] {
	out := vc.Clone()
	out.Merge(other)
	return out
}

// Intersection returns the entries (a, c) present identically in both vc
// and other: self.Get(a) == other.Get(a) == c.
func (vc *VClock[A]) Intersection(other *VClock[A]) *VClock[A] {
	out := New[A]()
	for a, c := range vc.dots {
		if other.Get(a) == c {
			out.dots[a] = c
		}
	}
	return out
}

// Subtract removes from vc every actor that other dominates or matches:
// for every actor a with other.Get(a) >= vc.Get(a), a is dropped. What
// remains is exactly the set of dots in vc not causally dominated by other.
func (vc *VClock[A]) Subtract(other *VClock[A]) {
	for a, c := range other.dots {
		if c >= vc.dots[a] {
			delete(vc.dots, a)
		}
	}
}

// Subtracted returns a new clock equal to vc with other subtracted, leaving
// both arguments untouched.
func (vc *VClock[A]) Subtracted(other *VClock[A]) *VClock[A] {
	out := vc.Clone()
	out.Subtract(other)
	return out
}

// Truncate replaces each of vc's counters with min(vc.Get(a), other.Get(a)),
// pruning zero results: it forgets any event not also witnessed by other.
// This is not the all-or-nothing rule crdt.Causal values follow (that is
// Subtract's rule). The result is the greatest lower bound of vc and
// other, so Truncate is a lattice meet and commutes:
// a.Clone().Truncate(b) == b.Clone().Truncate(a).
func (vc *VClock[A]) Truncate(other *VClock[A]) {
	for a, c := range vc.dots {
		min := c
		if oc := other.Get(a); oc < min {
			min = oc
		}
		if min == 0 {
			delete(vc.dots, a)
		} else {
			vc.dots[a] = min
		}
	}
}

// Truncated returns a new clock equal to vc truncated by other, leaving
// both arguments untouched.
func (vc *VClock[A]) Truncated(other *VClock[A]) *VClock[A] {
	out := vc.Clone()
	out.Truncate(other)
	return out
}

// Equal reports whether vc and other record identical counters.
func (vc *VClock[A]) Equal(other *VClock[A]) bool {
	return vc.PartialCompare(other) == Equal
}

// LessEq reports whether vc <= other: every actor's counter in vc is no
// greater than its counter in other.
func (vc *VClock[A]) LessEq(other *VClock[A]) bool {
	o := vc.PartialCompare(other)
	return o == Less || o == Equal
}

// Less reports whether vc < other: LessEq holds and the clocks differ.
func (vc *VClock[A]) Less(other *VClock[A]) bool {
	return vc.PartialCompare(other) == Less
}

// Concurrent reports whether neither vc <= other nor other <= vc holds.
func (vc *VClock[A]) Concurrent(other *VClock[A]) bool {
	return vc.PartialCompare(other) == Concurrent
}

// CanonicalKey returns a deterministic string encoding of the clock's
// entries, suitable for use as a Go map key where a VClock itself cannot be
// (maps aren't comparable). It encodes structural equality only, never the
// semantic partial order: two clocks with the same CanonicalKey are equal,
// but clocks related by <= generally have different keys. crdtmap.Map's
// deferred set relies on exactly this property.
func (vc *VClock[A]) CanonicalKey() string {
	var b []byte
	for _, a := range vc.Actors() {
		b = append(b, []byte(formatEntry(a, vc.dots[a]))...)
	}
	return string(b)
}
