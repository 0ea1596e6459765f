package vclock

// history records every Event applied to a SyncClock (subject to Prune),
// each alongside the resulting clock snapshot, so GetHistory/GetFullHistory
// can replay a replica's causal evolution for debugging.
type history[A Actor] struct {
	lastID uint64
	items  []*HistoryItem[A]
}

func newHistory[A Actor](seed map[A]Counter) *history[A] {
	return &history[A]{items: []*HistoryItem[A]{{HistoryID: 0, Clock: copyMap(seed)}}}
}

// apply extends the history by folding event into the latest clock.
func (h *history[A]) apply(event *Event[A]) error {
	vc := FromMap(h.latest())
	if err := event.apply(vc); err != nil {
		return err
	}

	nextID := h.lastID + 1
	h.items = append(h.items, &HistoryItem[A]{HistoryID: nextID, Change: event, Clock: vc.dots})
	h.lastID = nextID
	return nil
}

// latest returns the current clock, unaltered.
func (h *history[A]) latest() map[A]Counter {
	return h.items[h.lastID].Clock
}

// latestCopy returns an independent copy of the current clock.
func (h *history[A]) latestCopy() map[A]Counter {
	return copyMap(h.latest())
}

// getAll returns every recorded clock snapshot, oldest first.
func (h *history[A]) getAll() []map[A]Counter {
	out := make([]map[A]Counter, 0, h.lastID+1)
	for i := uint64(0); i <= h.lastID; i++ {
		out = append(out, copyMap(h.items[i].Clock))
	}
	return out
}

// getFullAll returns every recorded HistoryItem, oldest first.
func (h *history[A]) getFullAll() []*HistoryItem[A] {
	out := make([]*HistoryItem[A], 0, h.lastID+1)
	for i := uint64(0); i <= h.lastID; i++ {
		out = append(out, h.items[i].copy())
	}
	return out
}

// prune discards all history but the latest snapshot.
func (h *history[A]) prune() {
	*h = history[A]{items: []*HistoryItem[A]{{HistoryID: 0, Clock: h.latestCopy()}}}
}
