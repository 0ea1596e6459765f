package vclock

import (
	"context"
	"fmt"
)

func ExampleNewSyncClock() {
	ctx := context.Background()

	c := NewSyncClock[string](ctx, map[string]Counter{"x": 0, "y": 0}, false)
	defer c.Close()

	c.Tick("x")
	c.Tick("x")
	c.Tick("y")

	vc, _ := c.GetClock()
	fmt.Println(vc)
	// Output: (x->2, y->1)
}

func ExampleVClock_merge() {
	// This illustrates the classic vector-clock exchange between three
	// processes described at https://en.wikipedia.org/wiki/Vector_clock.
	a := New[string]()
	b := New[string]()
	c := New[string]()

	a.Apply(a.Inc("a"))
	b.Apply(b.Inc("b"))
	c.Apply(c.Inc("c"))

	// c -> b
	b.Apply(b.Inc("b"))
	b.Merge(c)

	// b -> a
	a.Apply(a.Inc("a"))
	a.Merge(b)

	fmt.Println(a)
	// Output: (a->2, b->2, c->1)
}
