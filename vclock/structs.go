package vclock

// SetInfo carries the value to assign to an identifier in a SyncClock. Set
// exists alongside Tick because a SyncClock is sometimes seeded with an
// actor whose counter is already known (e.g. recovered from a snapshot)
// rather than incremented from zero.
type SetInfo[A Actor] struct {
	Actor A
	Value Counter
}

func (s *SetInfo[A]) copy() *SetInfo[A] {
	return &SetInfo[A]{Actor: s.Actor, Value: s.Value}
}

// EventType describes which field of an Event carries the change.
type EventType uint

const (
	EventSet EventType = 1 << iota
	EventTick
	EventMerge
)

// Event captures one state change applied to a SyncClock's history. Only
// the field matching Type is populated.
type Event[A Actor] struct {
	Type  EventType
	Set   *SetInfo[A]
	Tick  A
	Merge map[A]Counter
}

func (e *Event[A]) copy() *Event[A] {
	out := &Event[A]{Type: e.Type}
	switch e.Type {
	case EventSet:
		out.Set = e.Set.copy()
	case EventTick:
		out.Tick = e.Tick
	case EventMerge:
		out.Merge = copyMap(e.Merge)
	}
	return out
}

// apply folds the event into the pure clock vc.
func (e *Event[A]) apply(vc *VClock[A]) error {
	switch e.Type {
	case EventSet:
		if vc.Get(e.Set.Actor) != 0 {
			return errAttemptToResetExistingActor
		}
		vc.Witness(e.Set.Actor, e.Set.Value)
	case EventTick:
		vc.Apply(vc.Inc(e.Tick))
	case EventMerge:
		for a, c := range e.Merge {
			vc.Witness(a, c)
		}
	}
	return nil
}

// HistoryItem records one Event and the resulting clock snapshot.
type HistoryItem[A Actor] struct {
	HistoryID uint64
	Change    *Event[A]
	Clock     map[A]Counter
}

func (h *HistoryItem[A]) copy() *HistoryItem[A] {
	var change *Event[A]
	if h.Change != nil {
		change = h.Change.copy()
	}
	return &HistoryItem[A]{HistoryID: h.HistoryID, Change: change, Clock: copyMap(h.Clock)}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
