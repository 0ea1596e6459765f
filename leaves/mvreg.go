package leaves

import (
	"sort"

	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

// MVReg is a multi-value register: concurrent writes are kept side by side
// as siblings rather than resolved to a single winner, surfacing the
// conflict to the caller instead of silently picking one side.
type MVReg[T any, A vclock.Actor] struct {
	siblings []mvSibling[T, A]
}

type mvSibling[T any, A vclock.Actor] struct {
	clock *vclock.VClock[A]
	val   T
}

// MVRegOp is a Put: a candidate value together with the clock it was
// written under.
type MVRegOp[T any, A vclock.Actor] struct {
	Clock *vclock.VClock[A]
	Val   T
}

// NewMVReg returns a register with no siblings.
func NewMVReg[T any, A vclock.Actor]() *MVReg[T, A] {
	return &MVReg[T, A]{}
}

// Write computes the Put Op that would replace every sibling this read
// observed with val.
func (r *MVReg[T, A]) Write(val T, c ctx.AddCtx[A]) MVRegOp[T, A] {
	clock := c.Clock.Clone()
	clock.Apply(c.Dot)
	return MVRegOp[T, A]{Clock: clock, Val: val}
}

// Apply drops every sibling dominated by op.Clock, then adds op as a new
// sibling unless it's already present (so redelivery is a no-op) or a
// surviving sibling already dominates it (so a late, stale op is a no-op).
func (r *MVReg[T, A]) Apply(op MVRegOp[T, A]) {
	var kept []mvSibling[T, A]
	alreadyPresent := false
	superseded := false
	for _, s := range r.siblings {
		if s.clock.Equal(op.Clock) {
			alreadyPresent = true
			kept = append(kept, s)
			continue
		}
		if s.clock.LessEq(op.Clock) {
			continue
		}
		if op.Clock.LessEq(s.clock) {
			superseded = true
		}
		kept = append(kept, s)
	}
	if !alreadyPresent && !superseded {
		kept = append(kept, mvSibling[T, A]{clock: op.Clock, val: op.Val})
	}
	r.siblings = kept
}

// Merge keeps the union of both sibling sets, filtering out any sibling
// whose clock is dominated by another surviving sibling's clock.
func (r *MVReg[T, A]) Merge(other *MVReg[T, A]) {
	all := append(append([]mvSibling[T, A]{}, r.siblings...), other.siblings...)
	var kept []mvSibling[T, A]
	for i, s := range all {
		dominated := false
		for j, t := range all {
			if i == j {
				continue
			}
			if s.clock.LessEq(t.clock) && !s.clock.Equal(t.clock) {
				dominated = true
				break
			}
			// break ties between structurally-equal clocks by keeping the
			// lower index only, so exact duplicates collapse to one.
			if s.clock.Equal(t.clock) && j < i {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, s)
		}
	}
	r.siblings = kept
}

// Truncate forgets the contribution of clock from every sibling, dropping
// any sibling whose clock becomes empty.
func (r *MVReg[T, A]) Truncate(clock *vclock.VClock[A]) {
	var kept []mvSibling[T, A]
	for _, s := range r.siblings {
		s.clock.Subtract(clock)
		if s.clock.IsEmpty() {
			continue
		}
		kept = append(kept, s)
	}
	r.siblings = kept
}

// Clone returns an independent copy.
func (r *MVReg[T, A]) Clone() *MVReg[T, A] {
	out := &MVReg[T, A]{siblings: make([]mvSibling[T, A], len(r.siblings))}
	for i, s := range r.siblings {
		out.siblings[i] = mvSibling[T, A]{clock: s.clock.Clone(), val: s.val}
	}
	return out
}

// Values returns every concurrent value currently held, ordered
// deterministically by each sibling's clock so replicas agree on the
// slice's order without needing a total order on T itself.
func (r *MVReg[T, A]) Values() []T {
	sorted := append([]mvSibling[T, A]{}, r.siblings...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].clock.CanonicalKey() < sorted[j].clock.CanonicalKey()
	})
	out := make([]T, len(sorted))
	for i, s := range sorted {
		out[i] = s.val
	}
	return out
}
