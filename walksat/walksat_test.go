package walksat

import (
	"math/rand"
	"testing"
)

func mustSolve(t *testing.T, nbVars int, clauses []Clause) []bool {
	t.Helper()
	s := New(nbVars, clauses, nil, Params{MaxTries: 50, MaxFlips: 2000, Noise: 50}, rand.New(rand.NewSource(1)))
	model, ok := s.Solve()
	if !ok {
		t.Fatalf("expected a solution, found none after %d tries / %d flips", s.Stats.Tries, s.Stats.Flips)
	}
	for ci, c := range clauses {
		count := 0
		for _, lit := range c.Lits {
			v := lit.Var()
			if model[v] == lit.Positive() {
				count++
			}
		}
		if !c.satisfiedByCount(count) {
			t.Errorf("clause %d (%+v) unsatisfied by model %v", ci, c, model)
		}
	}
	return model
}

func TestSolveSimpleDisjunction(t *testing.T) {
	// (x1 or x2) and (not x1 or x2) and (x1 or not x2)
	clauses := []Clause{
		{Min: 1, Max: 0, Lits: []Lit{1, 2}},
		{Min: 1, Max: 0, Lits: []Lit{-1, 2}},
		{Min: 1, Max: 0, Lits: []Lit{1, -2}},
	}
	model := mustSolve(t, 2, clauses)
	if !model[0] || !model[1] {
		t.Fatalf("expected both variables true, got %v", model)
	}
}

func TestSolveCardinalityExactlyOne(t *testing.T) {
	// exactly one of x1,x2,x3 true
	clauses := []Clause{
		{Min: 1, Max: 1, Lits: []Lit{1, 2, 3}},
	}
	model := mustSolve(t, 3, clauses)
	count := 0
	for _, b := range model {
		if b {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one true variable, got %v", model)
	}
}

func TestSolveAtMostTwo(t *testing.T) {
	clauses := []Clause{
		{Min: 0, Max: 2, Lits: []Lit{1, 2, 3, 4}},
		{Min: 1, Max: 0, Lits: []Lit{1, 2, 3, 4}},
	}
	model := mustSolve(t, 4, clauses)
	count := 0
	for _, b := range model {
		if b {
			count++
		}
	}
	if count < 1 || count > 2 {
		t.Fatalf("expected between 1 and 2 true variables, got %v", model)
	}
}

func TestSolveWithFixedVariable(t *testing.T) {
	clauses := []Clause{
		{Min: 1, Max: 0, Lits: []Lit{1, 2}},
	}
	fixed := []int8{-1, 0} // variable 0 forced false
	s := New(2, clauses, fixed, Params{MaxTries: 20, MaxFlips: 500, Noise: 50}, rand.New(rand.NewSource(2)))
	model, ok := s.Solve()
	if !ok {
		t.Fatalf("expected a solution")
	}
	if model[0] {
		t.Fatalf("variable 0 should remain forced false, got %v", model)
	}
	if !model[1] {
		t.Fatalf("variable 1 must be true to satisfy the clause, got %v", model)
	}
}

func TestTheoryHookRejectsUntilAcceptable(t *testing.T) {
	clauses := []Clause{
		{Min: 1, Max: 0, Lits: []Lit{1, 2}},
	}
	s := New(2, clauses, nil, Params{MaxTries: 50, MaxFlips: 2000, Noise: 50}, rand.New(rand.NewSource(3)))
	s.Theory = func(assignment []bool) bool {
		// only accept models where both variables are true
		return assignment[0] && assignment[1]
	}
	model, ok := s.Solve()
	if !ok {
		t.Fatalf("expected a solution accepted by the theory")
	}
	if !model[0] || !model[1] {
		t.Fatalf("expected both true, got %v", model)
	}
	if s.Stats.TheoryCalls == 0 {
		t.Errorf("expected at least one theory call")
	}
}

func TestUnsatisfiableExhaustsBudget(t *testing.T) {
	// x1 and not x1: unsatisfiable
	clauses := []Clause{
		{Min: 1, Max: 0, Lits: []Lit{1}},
		{Min: 1, Max: 0, Lits: []Lit{-1}},
	}
	s := New(1, clauses, nil, Params{MaxTries: 10, MaxFlips: 100, Noise: 50}, rand.New(rand.NewSource(4)))
	_, ok := s.Solve()
	if ok {
		t.Fatalf("expected no solution for an unsatisfiable problem")
	}
}

func TestUnsatSetAddRemoveRandomMember(t *testing.T) {
	u := newUnsatSet(5)
	for i := 0; i < 5; i++ {
		u.add(i)
	}
	if u.len() != 5 {
		t.Fatalf("expected 5 members, got %d", u.len())
	}
	u.remove(2)
	if u.len() != 4 {
		t.Fatalf("expected 4 members after remove, got %d", u.len())
	}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		m := u.randomMember(rng)
		if m == 2 {
			t.Fatalf("removed member 2 should never be returned")
		}
	}
	u.reset()
	if u.len() != 0 {
		t.Fatalf("expected 0 members after reset, got %d", u.len())
	}
}
