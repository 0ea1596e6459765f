package leaves

import (
	"testing"

	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

func addCtx(vc *vclock.VClock[string], actor string) ctx.AddCtx[string] {
	return ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc(actor)}
}

func TestLWWRegLaterWriteWins(t *testing.T) {
	r := NewLWWReg[string, string]()
	vc := vclock.New[string]()

	op1 := r.Write("first", addCtx(vc, "a"))
	r.Apply(op1)
	vc.Apply(vc.Inc("a"))

	op2 := r.Write("second", addCtx(vc, "a"))
	r.Apply(op2)

	if got := r.Value(); got != "second" {
		t.Fatalf("expected %q, got %q", "second", got)
	}
}

func TestLWWRegConcurrentWritesPickDeterministicWinner(t *testing.T) {
	mkReg := func() *LWWReg[string, string] {
		return NewLWWReg[string, string]()
	}

	opA := LWWRegOp[string, string]{Clock: vclock.FromMap(map[string]vclock.Counter{"a": 1}), Val: "from-a"}
	opB := LWWRegOp[string, string]{Clock: vclock.FromMap(map[string]vclock.Counter{"b": 1}), Val: "from-b"}

	left := mkReg()
	left.Apply(opA)
	left.Apply(opB)

	right := mkReg()
	right.Apply(opB)
	right.Apply(opA)

	if left.Value() != right.Value() {
		t.Fatalf("concurrent tie-break not deterministic: %q vs %q", left.Value(), right.Value())
	}
}

func TestLWWRegTruncateResetsWhenEmptied(t *testing.T) {
	r := NewLWWReg[string, string]()
	vc := vclock.New[string]()
	op := r.Write("hello", addCtx(vc, "a"))
	r.Apply(op)

	r.Truncate(op.Clock.Clone())
	if got := r.Value(); got != "" {
		t.Fatalf("expected zero value after full truncate, got %q", got)
	}
}
