// Package crdt defines the capability contracts every value type nestable
// under crdtmap.Map must satisfy: CmRDT (op-based mutation), CvRDT
// (state-based merge) and Causal (truncate by a vector clock). They mirror
// VClock's own Apply/Merge/Truncate methods generalized to any value type,
// so crdtmap.Map can recurse into arbitrarily nested CRDTs without knowing
// their concrete type.
package crdt

import "github.com/gford1000-go/go-mapcrdt/vclock"

// CmRDT is a commutative, op-based replicated data type. Applying the same
// Op twice must be indistinguishable from applying it once; two Ops that
// arise on concurrent replicas must produce identical states regardless of
// delivery order.
type CmRDT[Op any] interface {
	Apply(op Op)
}

// CvRDT is a convergent, state-based replicated data type: a join
// semilattice. Merge must be commutative, associative and idempotent.
type CvRDT[T any] interface {
	Merge(other T)
}

// Causal can forget the causal contribution of every event dominated by a
// given clock, as if those events had never happened. Unlike VClock.Truncate
// (a componentwise lattice meet), a Value's Truncate must be all-or-nothing
// per actor, the same rule as VClock.Subtract: an actor's contribution is
// forgotten only once clock fully dominates it, never shrunk to a partial
// overlap. crdtmap.Map's merge relies on this — it truncates a freshly
// merged value by a clock that can be empty, and an all-or-nothing Truncate
// makes that a guaranteed no-op, where a meet-style Truncate would wipe the
// value instead.
type Causal[A vclock.Actor] interface {
	Truncate(clock *vclock.VClock[A])
}

// Value is the full capability set required of anything nested under
// crdtmap.Map[K,V,A]. Clone is required because Map.Merge must never mutate
// the state of the Map it is merging from: merging truncates and folds
// values it reads out of the peer, so it needs an independent copy to
// mutate rather than the peer's own value. Go has no derivable Clone, so
// the capability set spells it out explicitly.
type Value[Op any, A vclock.Actor, T any] interface {
	CmRDT[Op]
	CvRDT[T]
	Causal[A]
	Clone() T
}
