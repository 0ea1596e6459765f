package crdtmap

import (
	"cmp"
	"time"

	"github.com/gford1000-go/go-mapcrdt/crdt"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

// Replicator disseminates the Ops one Map produces to a peer Map over an
// in-process mailbox. It's the production-facing counterpart to calling
// Apply directly by hand: Publish enqueues an Op, and a goroutine running
// Listen dequeues and applies it to the target Map as it arrives. Each Op
// carries the dot its target Map needs to de-duplicate redelivery, so a
// listener that ends up applying the same Op twice is harmless. Several
// Listen goroutines may share one mailbox, but each Op is delivered to only
// one of them, whichever receives it first.
type Replicator[K cmp.Ordered, V crdt.Value[VOp, A, V], VOp any, A vclock.Actor] struct {
	mailbox *vclock.Channel[Op[K, VOp, A]]
}

// NewReplicator returns a Replicator backed by a mailbox of the given
// buffer size. A size of 0 makes Publish block until some Listen is ready
// to receive, the same backpressure an unbuffered channel always gives.
func NewReplicator[K cmp.Ordered, V crdt.Value[VOp, A, V], VOp any, A vclock.Actor](buffer int) *Replicator[K, V, VOp, A] {
	return &Replicator[K, V, VOp, A]{mailbox: vclock.NewChannel[Op[K, VOp, A]](buffer)}
}

// NewReplicatorWithTimeout is NewReplicator for a Listen loop that should
// give up and return once d elapses without a new Op arriving, rather than
// blocking indefinitely.
func NewReplicatorWithTimeout[K cmp.Ordered, V crdt.Value[VOp, A, V], VOp any, A vclock.Actor](d time.Duration, buffer int) *Replicator[K, V, VOp, A] {
	return &Replicator[K, V, VOp, A]{mailbox: vclock.NewChannelWithTimeout[Op[K, VOp, A]](d, buffer)}
}

// Publish enqueues op for delivery to whichever Listen goroutine picks it
// up next, blocking if the buffer is full.
func (r *Replicator[K, V, VOp, A]) Publish(op Op[K, VOp, A]) error {
	return r.mailbox.Send(op)
}

// TryPublish is Publish's non-blocking counterpart, for producers that must
// never stall behind a slow or absent listener.
func (r *Replicator[K, V, VOp, A]) TryPublish(op Op[K, VOp, A]) error {
	return r.mailbox.TrySend(op)
}

// Pending reports how many published Ops are buffered and not yet
// delivered to a Listen.
func (r *Replicator[K, V, VOp, A]) Pending() int {
	return r.mailbox.Len()
}

// Listen drains published Ops and applies each to target in delivery
// order, until the mailbox closes or, for a Replicator built with
// NewReplicatorWithTimeout, until a receive times out. Intended to run in
// its own goroutine,
// one per subscribing replica.
func (r *Replicator[K, V, VOp, A]) Listen(target *Map[K, V, VOp, A]) {
	for {
		op, err := r.mailbox.Recv()
		if err != nil {
			return
		}
		target.Apply(op)
	}
}

// Close shuts down the mailbox; any goroutine blocked in Listen or Publish
// returns with an error.
func (r *Replicator[K, V, VOp, A]) Close() error {
	return r.mailbox.Close()
}
