package vclock

import "fmt"

// formatEntry renders a single (actor, counter) pair for CanonicalKey.
// Separators are chosen to be vanishingly unlikely in
// an actor's own string form, not to be unambiguous against adversarial
// input: this module never parses its own canonical form back, it only
// compares it for equality.
func formatEntry[A Actor](a A, c Counter) string {
	return fmt.Sprintf("%v\x1f%d\x1e", a, c)
}

// String renders the clock as a sorted list of actor->counter pairs.
func (vc *VClock[A]) String() string {
	s := "("
	for i, a := range vc.Actors() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v->%d", a, vc.dots[a])
	}
	return s + ")"
}
