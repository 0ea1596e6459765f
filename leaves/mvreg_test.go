package leaves

import (
	"testing"

	"github.com/gford1000-go/go-mapcrdt/ctx"
	"github.com/gford1000-go/go-mapcrdt/vclock"
)

func TestMVRegSingleWriterReplacesValue(t *testing.T) {
	r := NewMVReg[int, string]()
	vc := vclock.New[string]()

	op1 := r.Write(1, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})
	r.Apply(op1)
	vc.Apply(vc.Inc("a"))

	op2 := r.Write(2, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})
	r.Apply(op2)

	vals := r.Values()
	if len(vals) != 1 || vals[0] != 2 {
		t.Fatalf("expected single sibling [2], got %v", vals)
	}
}

func TestMVRegConcurrentWritesKeepBothSiblings(t *testing.T) {
	r := NewMVReg[int, string]()
	vc := vclock.New[string]()

	// both writers observe the same empty clock, so neither write
	// dominates the other: both survive as siblings.
	opA := r.Write(1, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})
	opB := r.Write(2, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("b")})

	r.Apply(opA)
	r.Apply(opB)

	vals := r.Values()
	if len(vals) != 2 {
		t.Fatalf("expected 2 concurrent siblings, got %v", vals)
	}
}

func TestMVRegMergeDropsDominatedSiblings(t *testing.T) {
	vc := vclock.New[string]()

	left := NewMVReg[int, string]()
	opA := left.Write(1, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})
	left.Apply(opA)

	right := NewMVReg[int, string]()
	right.Apply(opA)
	vc.Apply(vc.Inc("a"))
	opA2 := right.Write(2, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})
	right.Apply(opA2)

	left.Merge(right)
	vals := left.Values()
	if len(vals) != 1 || vals[0] != 2 {
		t.Fatalf("expected only the dominating write to survive, got %v", vals)
	}
}

func TestMVRegApplyIsIdempotent(t *testing.T) {
	r := NewMVReg[int, string]()
	vc := vclock.New[string]()
	op := r.Write(7, ctx.AddCtx[string]{Clock: vc, Dot: vc.Inc("a")})

	r.Apply(op)
	r.Apply(op)

	vals := r.Values()
	if len(vals) != 1 || vals[0] != 7 {
		t.Fatalf("expected redelivery to be a no-op, got %v", vals)
	}
}
