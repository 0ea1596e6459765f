package leaves

import (
	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

// LWWReg is a last-writer-wins register, ordered by causal clock rather
// than wall time: a write strictly dominating the current clock always
// wins, and concurrent writes are resolved by a deterministic tie-break on
// CanonicalKey so every replica picks the same winner without a clock
// source.
type LWWReg[T any, A vclock.Actor] struct {
	clock *vclock.VClock[A]
	val   T
}

// LWWRegOp carries a candidate value and the clock it was written under.
type LWWRegOp[T any, A vclock.Actor] struct {
	Clock *vclock.VClock[A]
	Val   T
}

// NewLWWReg returns a register holding T's zero value with an empty clock.
func NewLWWReg[T any, A vclock.Actor]() *LWWReg[T, A] {
	var zero T
	return &LWWReg[T, A]{clock: vclock.New[A](), val: zero}
}

// Write computes the Op that would set the register to val under c. The
// Op's clock is c's observed clock advanced by c's fresh dot, so it strictly
// dominates everything the writer observed: precedence is decided by the
// clock comparison in Apply, not per-actor dot tracking.
func (r *LWWReg[T, A]) Write(val T, c ctx.AddCtx[A]) LWWRegOp[T, A] {
	clock := c.Clock.Clone()
	clock.Apply(c.Dot)
	return LWWRegOp[T, A]{Clock: clock, Val: val}
}

// Apply keeps whichever of the current and incoming state dominates the
// other, breaking concurrent ties deterministically.
func (r *LWWReg[T, A]) Apply(op LWWRegOp[T, A]) {
	switch r.clock.PartialCompare(op.Clock) {
	case vclock.Less:
		r.clock = op.Clock.Clone()
		r.val = op.Val
	case vclock.Equal, vclock.Greater:
		// op is already reflected, or causally behind: no change.
	case vclock.Concurrent:
		if op.Clock.CanonicalKey() > r.clock.CanonicalKey() {
			r.clock = op.Clock.Clone()
			r.val = op.Val
		}
	}
}

// Merge applies the same precedence rule as Apply, treating other's state
// as a single candidate write.
func (r *LWWReg[T, A]) Merge(other *LWWReg[T, A]) {
	r.Apply(LWWRegOp[T, A]{Clock: other.clock, Val: other.val})
}

// Truncate forgets the contribution of clock from the register's own
// clock; if nothing survives, the value resets to T's zero value, since no
// surviving write justifies holding onto it.
func (r *LWWReg[T, A]) Truncate(clock *vclock.VClock[A]) {
	r.clock.Subtract(clock)
	if r.clock.IsEmpty() {
		var zero T
		r.val = zero
	}
}

// Clone returns an independent copy.
func (r *LWWReg[T, A]) Clone() *LWWReg[T, A] {
	return &LWWReg[T, A]{clock: r.clock.Clone(), val: r.val}
}

// Value returns the register's current value.
func (r *LWWReg[T, A]) Value() T {
	return r.val
}
