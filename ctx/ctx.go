// Package ctx provides the small causal-context records produced by reads
// and consumed by writes, so a write only ever depends on exactly the state
// its caller observed.
package ctx

import "github.com/gford1000-go/go-mapcrdt/vclock"

// ReadCtx bundles a read value with the two clocks a caller needs to build
// a safe follow-up write: AddClock for deriving an AddCtx, RmClock for
// deriving an RmCtx.
type ReadCtx[V any, A vclock.Actor] struct {
	AddClock *vclock.VClock[A]
	RmClock  *vclock.VClock[A]
	Val      V
}

// DeriveAddCtx produces the AddCtx for a write by actor, atomically
// computing the next dot against the clock this ReadCtx observed.
func (r ReadCtx[V, A]) DeriveAddCtx(actor A) AddCtx[A] {
	return AddCtx[A]{Clock: r.AddClock, Dot: r.AddClock.Inc(actor)}
}

// DeriveRmCtx produces the RmCtx for a remove, carrying exactly the clock
// this ReadCtx observed for the entry being removed.
func (r ReadCtx[V, A]) DeriveRmCtx() RmCtx[A] {
	return RmCtx[A]{Clock: r.RmClock}
}

// AddCtx is the causal context for an addition or update: the dot the
// writer is about to commit, plus the clock it was derived from.
type AddCtx[A vclock.Actor] struct {
	Clock *vclock.VClock[A]
	Dot   vclock.Dot[A]
}

// RmCtx is the causal context for a remove: the clock the remover observed,
// which the Map subtracts from the target entry's clock on apply.
type RmCtx[A vclock.Actor] struct {
	Clock *vclock.VClock[A]
}
