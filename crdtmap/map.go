// Package crdtmap implements the recursively-composable Map CRDT: a
// composable key/value map with reset-remove semantics. A remove erases
// only the causal history the remover observed; concurrent edits to the
// same key survive. The value under each key is itself any type satisfying
// crdt.Value, so Maps nest inside Maps without limit.
package crdtmap

import (
	"cmp"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gford1000-go/go-mapcrdt/crdt"
	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

// entry is the internal (clock, value) pair: clock records which actor
// events have touched this key, val is the nested CRDT.
type entry[V any, A vclock.Actor] struct {
	clock *vclock.VClock[A]
	val   V
}

// deferredRemove records a remove whose causal context hasn't been observed
// locally yet, and the set of keys it applies to once it has.
type deferredRemove[K cmp.Ordered, A vclock.Actor] struct {
	clock *vclock.VClock[A]
	keys  map[K]struct{}
}

// Map is the CRDT: clock summarizes every event (add or remove) this
// replica has observed; entries maps live keys to their (clock, value)
// pairs; deferred holds remove requests referencing causal context this
// replica hasn't caught up to yet. The invariant clock >= entry.clock holds
// for every entry, in every reachable state.
type Map[K cmp.Ordered, V crdt.Value[VOp, A, V], VOp any, A vclock.Actor] struct {
	clock    *vclock.VClock[A]
	entries  map[K]*entry[V, A]
	deferred map[string]*deferredRemove[K, A]
	newVal   func() V
}

// New constructs an empty Map. newVal must return a fresh identity-element
// value each time it's called; Go generics have no static "default
// constructor" a type parameter can supply on its own, so the caller
// provides one explicitly (see DESIGN.md).
func New[K cmp.Ordered, V crdt.Value[VOp, A, V], VOp any, A vclock.Actor](newVal func() V) *Map[K, V, VOp, A] {
	return &Map[K, V, VOp, A]{
		clock:    vclock.New[A](),
		entries:  map[K]*entry[V, A]{},
		deferred: map[string]*deferredRemove[K, A]{},
		newVal:   newVal,
	}
}

// OpKind tags which variant of Op is populated.
type OpKind int

const (
	OpNop OpKind = iota
	OpRm
	OpUp
)

// Op is the Map's wire form: a tagged union of Nop, Rm{Clock, Key} and
// Up{Dot, Key, Op}. Field names are stable across variants so that, when a
// Map nests inside another Map, its own Op serializes as a valid nested
// V.Op verbatim.
type Op[K cmp.Ordered, VOp any, A vclock.Actor] struct {
	Kind  OpKind
	Clock *vclock.VClock[A] // Rm
	Key   K                 // Rm, Up
	Dot   vclock.Dot[A]     // Up
	Op    VOp               // Up
}

// Len returns the number of live entries, with both context clocks equal
// to the Map's current clock.
func (m *Map[K, V, VOp, A]) Len() ctx.ReadCtx[int, A] {
	return ctx.ReadCtx[int, A]{
		AddClock: m.clock.Clone(),
		RmClock:  m.clock.Clone(),
		Val:      len(m.entries),
	}
}

// Get retrieves the value stored under key. RmClock is precisely the set of
// dots a future remove must carry to subsume exactly the information this
// read observed; Val is the zero value of V (nil, for the pointer value
// types this module expects) when key is absent.
func (m *Map[K, V, VOp, A]) Get(key K) ctx.ReadCtx[V, A] {
	addClock := m.clock.Clone()
	e, ok := m.entries[key]
	if !ok {
		var zero V
		return ctx.ReadCtx[V, A]{AddClock: addClock, RmClock: vclock.New[A](), Val: zero}
	}
	return ctx.ReadCtx[V, A]{AddClock: addClock, RmClock: e.clock.Clone(), Val: e.val}
}

// Keys returns the Map's live keys in sorted order, for deterministic
// iteration and serialization.
func (m *Map[K, V, VOp, A]) Keys() []K {
	keys := maps.Keys(m.entries)
	slices.Sort(keys)
	return keys
}

// Update computes the Op that would apply f to the value under key —
// either the existing value, or a fresh default if key is absent — without
// mutating the Map. f must treat its v argument as read-only and return
// only the resulting nested Op; mutation happens later, and only via
// Apply.
func (m *Map[K, V, VOp, A]) Update(key K, c ctx.AddCtx[A], f func(v V, c ctx.AddCtx[A]) VOp) Op[K, VOp, A] {
	e, ok := m.entries[key]
	var val V
	if ok {
		val = e.val
	} else {
		val = m.newVal()
	}
	return Op[K, VOp, A]{Kind: OpUp, Dot: c.Dot, Key: key, Op: f(val, c)}
}

// Rm synthesizes the Op that removes key under the given causal context.
// Like Update, it does not mutate the Map; apply it to take effect.
func (m *Map[K, V, VOp, A]) Rm(key K, c ctx.RmCtx[A]) Op[K, VOp, A] {
	return Op[K, VOp, A]{Kind: OpRm, Clock: c.Clock.Clone(), Key: key}
}

// Apply mutates the Map in place according to op's variant.
func (m *Map[K, V, VOp, A]) Apply(op Op[K, VOp, A]) {
	switch op.Kind {
	case OpNop:
		// no change
	case OpRm:
		m.applyRm(op.Key, op.Clock)
	case OpUp:
		actor, counter := op.Dot.Actor, op.Dot.Counter
		if m.clock.Get(actor) >= counter {
			return // already observed, directly or via merge
		}

		e, ok := m.entries[op.Key]
		if !ok {
			e = &entry[V, A]{clock: vclock.New[A](), val: m.newVal()}
		}
		e.clock.Witness(actor, counter)
		e.val.Apply(op.Op)
		m.entries[op.Key] = e

		m.clock.Witness(actor, counter)
		m.drainDeferred()
	}
}

// applyRm is the internal Rm handler shared by Apply(Rm) and deferred
// replay: it removes from clock the dots the remover witnessed for key,
// dropping the entry entirely if nothing survives.
func (m *Map[K, V, VOp, A]) applyRm(key K, clock *vclock.VClock[A]) {
	if !clock.LessEq(m.clock) {
		ck := clock.CanonicalKey()
		d, ok := m.deferred[ck]
		if !ok {
			d = &deferredRemove[K, A]{clock: clock.Clone(), keys: map[K]struct{}{}}
			m.deferred[ck] = d
		}
		d.keys[key] = struct{}{}
	}

	e, ok := m.entries[key]
	if !ok {
		return
	}
	e.clock.Subtract(clock)
	if e.clock.IsEmpty() {
		delete(m.entries, key)
		return
	}
	// Subtracting clock from entry.clock removes exactly the dots the
	// remover witnessed; val.Truncate(clock) forgets that same portion at
	// the value level, leaving whatever the remover never saw.
	e.val.Truncate(clock)
}

// drainDeferred replays every stored deferred remove once against the
// current clock, as required after every successful Up and at the end of
// every Merge. applyRm re-inserts anything whose precondition still isn't
// met into the next round's deferred set.
func (m *Map[K, V, VOp, A]) drainDeferred() {
	snapshot := m.deferred
	m.deferred = map[string]*deferredRemove[K, A]{}
	for _, d := range snapshot {
		for key := range d.keys {
			m.applyRm(key, d.clock)
		}
	}
}

// Truncate implements Causal: forget every dot in clock, recursively
// propagating into each surviving entry's nested value.
func (m *Map[K, V, VOp, A]) Truncate(clock *vclock.VClock[A]) {
	keep := map[K]*entry[V, A]{}
	for k, e := range m.entries {
		e.clock.Subtract(clock)
		if e.clock.IsEmpty() {
			continue
		}
		e.val.Truncate(clock)
		keep[k] = e
	}
	m.entries = keep

	newDeferred := map[string]*deferredRemove[K, A]{}
	for _, d := range m.deferred {
		d.clock.Subtract(clock)
		if !d.clock.IsEmpty() {
			newDeferred[d.clock.CanonicalKey()] = d
		}
	}
	m.deferred = newDeferred

	m.clock.Subtract(clock)
}

// Clone returns an independent copy of the Map: a Merge target must never
// observe mutations made to the Map it was merged from.
func (m *Map[K, V, VOp, A]) Clone() *Map[K, V, VOp, A] {
	out := New[K, V, VOp, A](m.newVal)
	out.clock = m.clock.Clone()
	for k, e := range m.entries {
		out.entries[k] = &entry[V, A]{clock: e.clock.Clone(), val: e.val.Clone()}
	}
	for ck, d := range m.deferred {
		keys := make(map[K]struct{}, len(d.keys))
		for k := range d.keys {
			keys[k] = struct{}{}
		}
		out.deferred[ck] = &deferredRemove[K, A]{clock: d.clock.Clone(), keys: keys}
	}
	return out
}

// Merge is the CvRDT state-based join: commutative, associative and
// idempotent. other is never mutated.
func (m *Map[K, V, VOp, A]) Merge(other *Map[K, V, VOp, A]) {
	keep := map[K]*entry[V, A]{}
	otherRemaining := map[K]*entry[V, A]{}
	for k, e := range other.entries {
		otherRemaining[k] = e
	}

	for k, eL := range m.entries {
		eR, ok := other.entries[k]
		if !ok {
			// other has no entry for k at all: either it never saw k, or it
			// deleted it outright. What survives is exactly the portion of
			// our clock other hasn't witnessed.
			surviving := eL.clock.Subtracted(other.clock)
			if surviving.IsEmpty() {
				continue
			}
			// The dots other actually witnessed and then deleted: other's
			// clock with whatever survived subtracted back out.
			deletedByOther := other.clock.Clone()
			deletedByOther.Subtract(surviving)
			val := eL.val.Clone()
			val.Truncate(deletedByOther)
			keep[k] = &entry[V, A]{clock: surviving, val: val}
			continue
		}

		common := eL.clock.Intersection(eR.clock)
		aliveL := eL.clock.Subtracted(common)
		aliveL.Subtract(other.clock)
		aliveR := eR.clock.Subtracted(common)
		aliveR.Subtract(m.clock)

		union := common.Clone()
		union.Merge(aliveL)
		union.Merge(aliveR)

		delete(otherRemaining, k)

		if union.IsEmpty() {
			// both sides agree this entry is dead
			continue
		}

		// Both sides still hold k live. aliveL/aliveR are each entirely
		// absorbed into union (union dominates both by construction), so
		// this truncation is always a no-op against an empty clock —
		// nothing either side marked concurrent-and-surviving gets
		// forgotten, only whatever both sides agree is dead already isn't
		// here to begin with.
		val := eL.val.Clone()
		val.Merge(eR.val)
		deleted := aliveL.Clone()
		deleted.Merge(aliveR)
		deleted.Subtract(union)
		val.Truncate(deleted)
		keep[k] = &entry[V, A]{clock: union, val: val}
	}

	for k, eR := range otherRemaining {
		surviving := eR.clock.Subtracted(m.clock)
		if surviving.IsEmpty() {
			continue
		}
		deletedByUs := m.clock.Clone()
		deletedByUs.Subtract(surviving)
		val := eR.val.Clone()
		val.Truncate(deletedByUs)
		keep[k] = &entry[V, A]{clock: surviving, val: val}
	}

	m.entries = keep

	// Replay the peer's deferred removes against the now-merged entries,
	// then fold in its clock, then do a final drain. Ordering matters:
	// replaying deferred removes before entries is overwritten would
	// silently discard their effect once entries is replaced, and would
	// never re-examine the local deferred set against the newly merged
	// clock.
	for _, d := range other.deferred {
		for key := range d.keys {
			m.applyRm(key, d.clock)
		}
	}

	m.clock.Merge(other.clock)
	m.drainDeferred()
}
