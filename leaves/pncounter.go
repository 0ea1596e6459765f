package leaves

import "github.com/gford1000-go/go-mapcrdt/vclock"

// PNCounter is a counter that supports both increment and decrement: two
// GCounters, one tracking increments and one tracking decrements, whose
// value is their difference.
type PNCounter[A vclock.Actor] struct {
	p *GCounter[A]
	n *GCounter[A]
}

// pnSign distinguishes which side of a PNCounterOp a GCounterOp applies to.
type pnSign int

const (
	pnInc pnSign = iota
	pnDec
)

// PNCounterOp is a GCounterOp tagged with which side it targets.
type PNCounterOp[A vclock.Actor] struct {
	Sign pnSign
	Op   GCounterOp[A]
}

// NewPNCounter returns the identity element.
func NewPNCounter[A vclock.Actor]() *PNCounter[A] {
	return &PNCounter[A]{p: NewGCounter[A](), n: NewGCounter[A]()}
}

// Inc computes the Op that would increment actor's count by one.
func (c *PNCounter[A]) Inc(actor A) PNCounterOp[A] {
	return PNCounterOp[A]{Sign: pnInc, Op: c.p.Inc(actor)}
}

// Dec computes the Op that would decrement actor's count by one.
func (c *PNCounter[A]) Dec(actor A) PNCounterOp[A] {
	return PNCounterOp[A]{Sign: pnDec, Op: c.n.Inc(actor)}
}

// Apply folds op into whichever side it targets.
func (c *PNCounter[A]) Apply(op PNCounterOp[A]) {
	switch op.Sign {
	case pnInc:
		c.p.Apply(op.Op)
	case pnDec:
		c.n.Apply(op.Op)
	}
}

// Merge joins both sides independently.
func (c *PNCounter[A]) Merge(other *PNCounter[A]) {
	c.p.Merge(other.p)
	c.n.Merge(other.n)
}

// Truncate forgets the contribution of clock from both sides.
func (c *PNCounter[A]) Truncate(clock *vclock.VClock[A]) {
	c.p.Truncate(clock)
	c.n.Truncate(clock)
}

// Clone returns an independent copy.
func (c *PNCounter[A]) Clone() *PNCounter[A] {
	return &PNCounter[A]{p: c.p.Clone(), n: c.n.Clone()}
}

// Value returns increments minus decrements. The result is signed because
// a replica that has only observed decrements (via merge, before seeing
// the matching increments) can transiently read negative.
func (c *PNCounter[A]) Value() int64 {
	return int64(c.p.Value()) - int64(c.n.Value())
}
