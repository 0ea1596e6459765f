package leaves

import (
	"cmp"

	"github.com/gford1000-go/go-mapcrdt/crdtmap"
	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

// ORSet is an observed-remove set: membership with reset-remove semantics,
// built directly on top of crdtmap.Map keyed by member with a trivial Flag
// value. Every member's presence is exactly the Map's existing add/remove/
// merge algorithm; ORSet adds nothing but a narrower, set-shaped surface
// over it.
type ORSet[M cmp.Ordered, A vclock.Actor] struct {
	m *crdtmap.Map[M, *Flag[A], FlagOp, A]
}

// NewORSet returns an empty set.
func NewORSet[M cmp.Ordered, A vclock.Actor]() *ORSet[M, A] {
	return &ORSet[M, A]{
		m: crdtmap.New[M, *Flag[A], FlagOp, A](func() *Flag[A] { return NewFlag[A]() }),
	}
}

// Add computes the Op that adds member to the set under c.
func (s *ORSet[M, A]) Add(member M, c ctx.AddCtx[A]) crdtmap.Op[M, FlagOp, A] {
	return s.m.Update(member, c, func(v *Flag[A], c ctx.AddCtx[A]) FlagOp { return FlagOp{} })
}

// Rm computes the Op that removes member under c.
func (s *ORSet[M, A]) Rm(member M, c ctx.RmCtx[A]) crdtmap.Op[M, FlagOp, A] {
	return s.m.Rm(member, c)
}

// ReadCtx returns the causal context for member, for deriving a follow-up
// Add or Rm the way crdtmap.Map.Get does.
func (s *ORSet[M, A]) ReadCtx(member M) ctx.ReadCtx[*Flag[A], A] {
	return s.m.Get(member)
}

// Apply folds op into the set.
func (s *ORSet[M, A]) Apply(op crdtmap.Op[M, FlagOp, A]) {
	s.m.Apply(op)
}

// Merge is the CvRDT join, delegated entirely to the backing Map.
func (s *ORSet[M, A]) Merge(other *ORSet[M, A]) {
	s.m.Merge(other.m)
}

// Truncate forgets the contribution of clock, delegated to the backing Map.
func (s *ORSet[M, A]) Truncate(clock *vclock.VClock[A]) {
	s.m.Truncate(clock)
}

// Clone returns an independent copy.
func (s *ORSet[M, A]) Clone() *ORSet[M, A] {
	return &ORSet[M, A]{m: s.m.Clone()}
}

// Contains reports whether member is currently in the set.
func (s *ORSet[M, A]) Contains(member M) bool {
	return s.m.Get(member).Val != nil
}

// Members returns the set's current members in sorted order.
func (s *ORSet[M, A]) Members() []M {
	return s.m.Keys()
}

// Len returns the number of members currently in the set.
func (s *ORSet[M, A]) Len() int {
	return s.m.Len().Val
}
