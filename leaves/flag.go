package leaves

import "github.com/gford1000-go/go-mapcrdt/vclock"

// Flag is the trivial presence marker: it carries no state of its own, and
// exists only so ORSet can nest crdtmap.Map over "member is present" rather
// than reimplementing a standalone observed-remove set algorithm — the
// Map's own reset-remove semantics over a key already give a set exactly
// the add/remove/merge behaviour a set needs.
type Flag[A vclock.Actor] struct{}

// FlagOp is the only Op a Flag accepts: set presence. It carries no
// payload because presence is the key's existence in the enclosing Map,
// not anything stored in the value.
type FlagOp struct{}

// NewFlag returns the identity element.
func NewFlag[A vclock.Actor]() *Flag[A] {
	return &Flag[A]{}
}

func (f *Flag[A]) Apply(op FlagOp) {}

func (f *Flag[A]) Merge(other *Flag[A]) {}

func (f *Flag[A]) Truncate(clock *vclock.VClock[A]) {}

func (f *Flag[A]) Clone() *Flag[A] {
	return &Flag[A]{}
}
