package floattheory

import (
	"testing"

	catsat "github.com/ianhorswill/catsat-go"
)

func TestUnitIntervalBoundPropositions(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		pp := catsat.New(catsat.WithSeed(int64(trial)+1), catsat.WithMaxTries(200), catsat.WithMaxFlips(5000))
		fresh := NewSolver(pp)
		fx := fresh.NewVariable("x", NewDomain(0, 1))
		fa := fresh.AtLeastConst(fx, 0.2)
		fb := fresh.AtLeastConst(fx, 0.3)
		fc := fresh.AtMostConst(fx, 0.5)
		fd := fresh.AtMostConst(fx, 0.8)
		pp.AddTheory(fresh)

		soln, err := pp.Solve()
		if err != nil {
			t.Fatalf("trial %d: Solve: %v", trial, err)
		}
		v := Value(soln, fx)
		if soln.Holds(fa) && v < 0.2 {
			t.Errorf("trial %d: a true but x=%v < 0.2", trial, v)
		}
		if soln.Holds(fb) && v < 0.3 {
			t.Errorf("trial %d: b true but x=%v < 0.3", trial, v)
		}
		if soln.Holds(fc) && v > 0.5 {
			t.Errorf("trial %d: c true but x=%v > 0.5", trial, v)
		}
		if soln.Holds(fd) && v > 0.8 {
			t.Errorf("trial %d: d true but x=%v > 0.8", trial, v)
		}
	}
}

func TestQuantizedDomainSampling(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		p := catsat.New(catsat.WithSeed(int64(trial)+1), catsat.WithMaxTries(200), catsat.WithMaxFlips(5000))
		ft := NewSolver(p)
		v := ft.NewVariable("v", NewQuantizedDomain(0, 10, 0.5))
		lower := ft.AtLeastConst(v, 2.3)
		upper := ft.AtMostConst(v, 4.6)
		if err := p.Assert(lower); err != nil {
			t.Fatalf("Assert: %v", err)
		}
		if err := p.Assert(upper); err != nil {
			t.Fatalf("Assert: %v", err)
		}
		p.AddTheory(ft)

		soln, err := p.Solve()
		if err != nil {
			t.Fatalf("trial %d: Solve: %v", trial, err)
		}
		x := Value(soln, v)
		if x < 2.5-1e-4 || x > 4.5+1e-4 {
			t.Fatalf("trial %d: sampled %v outside [2.5,4.5]", trial, x)
		}
		if !onGrid(x, 0.5) {
			t.Fatalf("trial %d: sampled %v not on 0.5 grid", trial, x)
		}
	}
}

// onGrid reports whether x is within a small tolerance of a multiple of
// q, used only by this test to check the sampler's quantization.
func onGrid(x, q float32) bool {
	n := x / q
	frac := n - float32(int(n+0.5))
	if frac < 0 {
		frac = -frac
	}
	return frac <= 1e-3
}

func TestTransitiveConstantBoundsPreprocess(t *testing.T) {
	p := catsat.New(catsat.WithSeed(1), catsat.WithMaxTries(200), catsat.WithMaxFlips(5000))
	ft := NewSolver(p)
	v := ft.NewVariable("v", NewDomain(0, 10))
	a := ft.AtMostConst(v, 1)
	b := ft.AtMostConst(v, 2)
	p.AddTheory(ft)

	if err := p.Assert(a); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !soln.Holds(b) {
		t.Fatalf("transitivity clause should force b true whenever a is true")
	}
}

func TestSumConstraintPropagation(t *testing.T) {
	p := catsat.New(catsat.WithSeed(1), catsat.WithMaxTries(200), catsat.WithMaxFlips(5000))
	ft := NewSolver(p)
	a := ft.NewVariable("a", NewDomain(0, 5))
	b := ft.NewVariable("b", NewDomain(0, 5))
	sum := ft.Plus(a, b)
	lit := ft.AtLeastConst(sum, 8)
	if err := p.Assert(lit); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	p.AddTheory(ft)

	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	av, bv := Value(soln, a), Value(soln, b)
	if av+bv < 8-1e-3 {
		t.Fatalf("a+b = %v+%v = %v, want >= 8", av, bv, av+bv)
	}
}

func TestDivideConstraintPropagation(t *testing.T) {
	p := catsat.New(catsat.WithSeed(1), catsat.WithMaxTries(200), catsat.WithMaxFlips(5000))
	ft := NewSolver(p)
	a := ft.NewVariable("a", NewDomain(10, 20))
	b := ft.NewVariable("b", NewDomain(2, 4))
	quotient, err := ft.Divide(a, b)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	p.AddTheory(ft)

	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	av, bv, qv := Value(soln, a), Value(soln, b), Value(soln, quotient)
	if d := av/bv - qv; d > 1e-2 || d < -1e-2 {
		t.Fatalf("a/b = %v/%v = %v, want ~%v", av, bv, qv, av/bv)
	}
}

func TestDivideRejectsZeroConstantDivisor(t *testing.T) {
	p := catsat.New(catsat.WithSeed(1))
	ft := NewSolver(p)
	a := ft.NewVariable("a", NewDomain(1, 2))
	zero := ft.NewVariable("zero", NewDomain(0, 0))
	if _, err := ft.Divide(a, zero); err == nil {
		t.Fatalf("expected an error dividing by a domain fixed at 0")
	}
}
