package vclock

import "context"

type reqGet[A Actor] struct{ actor A }
type reqSnap struct{}
type reqHistory struct{}
type reqFullHistory struct{}
type reqLastUpdate struct{}
type reqPrune struct{}
type reqTick[A Actor] struct{ actor A }
type reqMerge[A Actor] struct{ dots map[A]Counter }

type respErr struct{ err error }
type respGetter[A Actor] struct {
	actor A
	v     Counter
	found bool
}

// SyncClock is a concurrency-safe facade around a pure VClock: a single
// goroutine owns the clock and serializes every request through channels,
// so many goroutines may share one SyncClock without an external mutex.
// The core VClock itself carries no internal synchronization by design;
// SyncClock is the external mutual exclusion a caller must supply on top
// if it wants to share one replica's clock across threads.
type SyncClock[A Actor] struct {
	req    chan any
	resp   chan any
	cancel context.CancelFunc
}

// NewSyncClock starts a SyncClock seeded with init (which may be nil) and
// bound to ctx: cancelling ctx closes the clock. maintainHistory controls
// whether every change is retained (GetHistory/GetFullHistory) or pruned
// to just the latest snapshot after each request.
func NewSyncClock[A Actor](ctx context.Context, init map[A]Counter, maintainHistory bool) *SyncClock[A] {
	ctx, cancel := context.WithCancel(ctx)

	sc := &SyncClock[A]{
		req:    make(chan any),
		resp:   make(chan any),
		cancel: cancel,
	}

	seed := FromMap(init).dots

	go sc.run(ctx, seed, maintainHistory)

	return sc
}

func (sc *SyncClock[A]) run(ctx context.Context, seed map[A]Counter, maintainHistory bool) {
	defer func() {
		close(sc.req)
		close(sc.resp)
	}()

	h := newHistory(seed)

	for {
		select {
		case <-ctx.Done():
			return
		case r := <-sc.req:
			if !maintainHistory {
				h.prune()
			}
			sc.handle(h, r)
		}
	}
}

func (sc *SyncClock[A]) handle(h *history[A], r any) {
	switch t := r.(type) {
	case *reqGet[A]:
		vc := FromMap(h.latest())
		c := vc.Get(t.actor)
		sc.resp <- &respGetter[A]{actor: t.actor, v: c, found: c > 0}
	case *reqSnap:
		sc.resp <- h.latestCopy()
	case *reqHistory:
		sc.resp <- h.getAll()
	case *reqFullHistory:
		sc.resp <- h.getFullAll()
	case *reqLastUpdate:
		var best A
		var last Counter
		for a, c := range h.latest() {
			if c > last {
				best, last = a, c
			}
		}
		sc.resp <- &respGetter[A]{actor: best, v: last}
	case *reqPrune:
		h.prune()
		sc.resp <- &respErr{}
	case *reqTick[A]:
		sc.resp <- &respErr{err: h.apply(&Event[A]{Type: EventTick, Tick: t.actor})}
	case *SetInfo[A]:
		sc.resp <- &respErr{err: h.apply(&Event[A]{Type: EventSet, Set: t})}
	case *reqMerge[A]:
		sc.resp <- &respErr{err: h.apply(&Event[A]{Type: EventMerge, Merge: t.dots})}
	default:
		sc.resp <- &respErr{err: errUnknownRequestType}
	}
}

func sendRecv[A Actor, T any](sc *SyncClock[A], req any) (t T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errClosedSyncClock
		}
	}()
	sc.req <- req
	resp := <-sc.resp
	if e, ok := resp.(*respErr); ok {
		return t, e.err
	}
	return resp.(T), nil
}

// Close releases the goroutine backing the clock. Further calls return
// errClosedSyncClock.
func (sc *SyncClock[A]) Close() error {
	sc.cancel()
	return nil
}

// Set assigns counter to actor. It fails if actor already has a non-zero
// counter: use Tick to advance an existing actor.
func (sc *SyncClock[A]) Set(actor A, counter Counter) error {
	_, err := sendRecv[A, *respErr](sc, &SetInfo[A]{Actor: actor, Value: counter})
	return err
}

// Tick increments the counter for actor by one.
func (sc *SyncClock[A]) Tick(actor A) error {
	_, err := sendRecv[A, *respErr](sc, &reqTick[A]{actor: actor})
	return err
}

// Get returns the current counter for actor, and whether it has ever been
// witnessed.
func (sc *SyncClock[A]) Get(actor A) (Counter, bool, error) {
	g, err := sendRecv[A, *respGetter[A]](sc, &reqGet[A]{actor: actor})
	if err != nil {
		return 0, false, err
	}
	return g.v, g.found, nil
}

// GetClock returns a snapshot of the full clock as a pure VClock.
func (sc *SyncClock[A]) GetClock() (*VClock[A], error) {
	m, err := sendRecv[A, map[A]Counter](sc, &reqSnap{})
	if err != nil {
		return nil, err
	}
	return FromMap(m), nil
}

// GetHistory returns every recorded clock snapshot, oldest first.
func (sc *SyncClock[A]) GetHistory() ([]map[A]Counter, error) {
	return sendRecv[A, []map[A]Counter](sc, &reqHistory{})
}

// GetFullHistory returns every recorded change and the clock it produced.
func (sc *SyncClock[A]) GetFullHistory() ([]*HistoryItem[A], error) {
	return sendRecv[A, []*HistoryItem[A]](sc, &reqFullHistory{})
}

// LastUpdate returns the actor with the highest counter, and that counter.
func (sc *SyncClock[A]) LastUpdate() (A, Counter, error) {
	g, err := sendRecv[A, *respGetter[A]](sc, &reqLastUpdate{})
	if err != nil {
		var zero A
		return zero, 0, err
	}
	return g.actor, g.v, nil
}

// Prune discards all history but the current snapshot.
func (sc *SyncClock[A]) Prune() error {
	_, err := sendRecv[A, *respErr](sc, &reqPrune{})
	return err
}

// Merge folds other's dots into this clock, componentwise-max per actor.
func (sc *SyncClock[A]) Merge(other *SyncClock[A]) error {
	if other == nil {
		return errSyncClockMustNotBeNil
	}
	m, err := other.GetClock()
	if err != nil {
		return err
	}
	_, err = sendRecv[A, *respErr](sc, &reqMerge[A]{dots: m.dots})
	return err
}
