// Package leaves provides reference value types satisfying crdt.Value, so
// crdtmap.Map has something concrete to nest over. Nested values are
// external collaborators identified only by the crdt.Value capability set;
// this package is one faithful set of implementations of that contract,
// not a requirement on other ones.
package leaves

import "github.com/gford1000-go/go-mapcrdt/vclock"

// GCounter is a grow-only counter: one monotonic count per actor, merged by
// componentwise max. It is built directly atop vclock.VClock, because a
// per-actor monotonic counter merged by max *is* exactly a vector clock;
// Inc/Apply/Merge/Truncate below are thin renamings of that same algebra.
type GCounter[A vclock.Actor] struct {
	counts *vclock.VClock[A]
}

// GCounterOp carries the new running total for one actor. It is idempotent
// and commutative because it's applied via Witness, never by adding a
// delta on top of whatever's currently stored.
type GCounterOp[A vclock.Actor] struct {
	Actor A
	Total vclock.Counter
}

// NewGCounter returns the identity element: a counter with no increments.
func NewGCounter[A vclock.Actor]() *GCounter[A] {
	return &GCounter[A]{counts: vclock.New[A]()}
}

// Inc computes the Op that would increment actor's own count by one,
// without mutating the counter. Apply it to commit.
func (g *GCounter[A]) Inc(actor A) GCounterOp[A] {
	return GCounterOp[A]{Actor: actor, Total: g.counts.Get(actor) + 1}
}

// Apply folds op into the counter.
func (g *GCounter[A]) Apply(op GCounterOp[A]) {
	g.counts.Witness(op.Actor, op.Total)
}

// Merge is the componentwise max join.
func (g *GCounter[A]) Merge(other *GCounter[A]) {
	g.counts.Merge(other.counts)
}

// Truncate forgets a per-actor contribution only once clock fully
// dominates it (the same all-or-nothing rule as vclock.VClock.Subtract): a
// partially-observed contribution is left untouched rather than shrunk,
// since nothing less than full domination proves the remainder was seen.
func (g *GCounter[A]) Truncate(clock *vclock.VClock[A]) {
	g.counts.Subtract(clock)
}

// Clone returns an independent copy.
func (g *GCounter[A]) Clone() *GCounter[A] {
	return &GCounter[A]{counts: g.counts.Clone()}
}

// Value returns the counter's current total: the sum of every actor's
// count.
func (g *GCounter[A]) Value() uint64 {
	var total uint64
	for _, a := range g.counts.Actors() {
		total += g.counts.Get(a)
	}
	return total
}
