package catsat

import "testing"

func TestNonTightProgramDetected(t *testing.T) {
	p := New(WithSeed(1))
	q := p.GetProposition("q")
	r := p.GetProposition("r")
	pp := p.GetProposition("p")
	if err := p.AssertRule(Pos(pp), Pos(q), Pos(r)); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.AssertRule(Pos(q), Pos(pp), Pos(r)); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.Assert(Pos(r)); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	_, err := p.Solve()
	if err == nil {
		t.Fatalf("expected a NonTightProgramError")
	}
	if _, ok := err.(*NonTightProgramError); !ok {
		t.Fatalf("expected *NonTightProgramError, got %T: %v", err, err)
	}
}

func TestTightRuleCompletesToSupportedModel(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(50), WithMaxFlips(500))
	q := Pos(p.GetProposition("q"))
	head := Pos(p.GetProposition("head"))
	if err := p.AssertRule(head, q); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.Assert(q); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !soln.Holds(head) {
		t.Fatalf("completion should make head true when its only rule body (q) is true")
	}
}

func TestRuleWithUnsupportedHeadFoldsFalse(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(50), WithMaxFlips(500))
	q := Pos(p.GetProposition("q"))
	head := Pos(p.GetProposition("head"))
	if err := p.AssertRule(head, q); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.Assert(q.Negate()); err != nil {
		t.Fatalf("Assert(not q): %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if soln.Holds(head) {
		t.Fatalf("head should be false: its only rule body is false")
	}
}

func TestMultipleRuleBodiesCompletion(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(100), WithMaxFlips(2000))
	a := Pos(p.GetProposition("a"))
	b := Pos(p.GetProposition("b"))
	head := Pos(p.GetProposition("head"))
	if err := p.AssertRule(head, a); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.AssertRule(head, b); err != nil {
		t.Fatalf("AssertRule: %v", err)
	}
	if err := p.Assert(a.Negate()); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if err := p.Assert(b.Negate()); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if soln.Holds(head) {
		t.Fatalf("head should be false when every rule body is false")
	}
}
