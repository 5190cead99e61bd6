package catsat

import (
	"strings"
	"testing"
)

func TestDimacsWritesPlainClauses(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(20), WithMaxFlips(200))
	x := Pos(p.GetProposition("x"))
	y := Pos(p.GetProposition("y"))
	if err := p.Exists(x, y); err != nil {
		t.Fatalf("Exists: %v", err)
	}
	var buf strings.Builder
	if err := p.Dimacs(&buf); err != nil {
		t.Fatalf("Dimacs: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "p cnf 2 1\n") {
		t.Fatalf("unexpected DIMACS header: %q", out)
	}
}

func TestDimacsRejectsCardinalityClause(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(20), WithMaxFlips(200))
	lits := make([]Literal, 3)
	for i := range lits {
		lits[i] = Pos(p.GetProposition(i))
	}
	if err := p.Unique(lits...); err != nil {
		t.Fatalf("Unique: %v", err)
	}
	var buf strings.Builder
	err := p.Dimacs(&buf)
	if _, ok := err.(*DomainError); !ok {
		t.Fatalf("expected *DomainError for a cardinality clause, got %T: %v", err, err)
	}
}

func TestStatsPopulatedAfterSolve(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(20), WithMaxFlips(200))
	x := Pos(p.GetProposition("x"))
	if err := p.Assert(x); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if soln.Stats.Tries == 0 && soln.Stats.Flips == 0 {
		t.Fatalf("expected nonzero search stats, got %+v", soln.Stats)
	}
	if p.Stats() != soln.Stats {
		t.Fatalf("Problem.Stats() = %+v, want %+v", p.Stats(), soln.Stats)
	}
}

func TestAssertConstants(t *testing.T) {
	p := New(WithSeed(1))
	if err := p.Assert(Pos(p.True)); err != nil {
		t.Errorf("Assert(True) should be a no-op, got %v", err)
	}
	if err := p.Assert(Pos(p.False)); err == nil {
		t.Errorf("Assert(False) should fail")
	}
}

func TestAssertFoldsProposition(t *testing.T) {
	p := New(WithSeed(1))
	x := p.GetProposition("x")
	if err := p.Assert(Pos(x)); err != nil {
		t.Fatalf("Assert: %v", err)
	}
	if !x.IsConstant() {
		t.Fatalf("x should have folded to a constant")
	}
}

func TestGetPropositionInterns(t *testing.T) {
	p := New(WithSeed(1))
	a := p.GetProposition("x")
	b := p.GetProposition("x")
	if a != b {
		t.Fatalf("GetProposition should return the same pointer for equal keys")
	}
	c := p.GetProposition(Call{Fn: "rook", Args: []interface{}{1, 2}})
	d := p.GetProposition(Call{Fn: "rook", Args: []interface{}{1, 2}})
	if c != d {
		t.Fatalf("GetProposition should intern equal Calls to the same proposition")
	}
	e := p.GetProposition(Call{Fn: "rook", Args: []interface{}{1, 3}})
	if c == e {
		t.Fatalf("distinct Call args should produce distinct propositions")
	}
}

func TestSolveSimpleClause(t *testing.T) {
	p := New(WithSeed(1), WithMaxTries(20), WithMaxFlips(200))
	x := Pos(p.GetProposition("x"))
	y := Pos(p.GetProposition("y"))
	if err := p.Exists(x, y); err != nil {
		t.Fatalf("Exists: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !soln.Holds(x) && !soln.Holds(y) {
		t.Fatalf("expected at least one of x,y true")
	}
}

func TestUniqueCardinality(t *testing.T) {
	p := New(WithSeed(2), WithMaxTries(50), WithMaxFlips(500))
	lits := make([]Literal, 5)
	for i := range lits {
		lits[i] = Pos(p.GetProposition(i))
	}
	if err := p.Unique(lits...); err != nil {
		t.Fatalf("Unique: %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	count := 0
	for _, l := range lits {
		if soln.Holds(l) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one true literal, got %d", count)
	}
}

func TestAndCombinator(t *testing.T) {
	p := New(WithSeed(3), WithMaxTries(20), WithMaxFlips(200))
	x := Pos(p.GetProposition("x"))
	y := Pos(p.GetProposition("y"))
	conj := p.And(x, y)
	if err := p.Assert(conj); err != nil {
		t.Fatalf("Assert(And(x,y)): %v", err)
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !soln.Holds(x) || !soln.Holds(y) {
		t.Fatalf("expected both x and y true, since And(x,y) was asserted")
	}
}

func TestNRooks(t *testing.T) {
	const n = 6
	p := New(WithSeed(4), WithMaxTries(200), WithMaxFlips(20000))
	rook := p.Predicate("rook")
	var all []Literal
	board := make([][]Literal, n)
	for i := 0; i < n; i++ {
		board[i] = make([]Literal, n)
		for j := 0; j < n; j++ {
			board[i][j] = rook(i, j)
			all = append(all, board[i][j])
		}
	}
	if err := p.Exactly(n, all...); err != nil {
		t.Fatalf("Exactly: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := p.Unique(board[i]...); err != nil {
			t.Fatalf("row Unique: %v", err)
		}
	}
	for j := 0; j < n; j++ {
		col := make([]Literal, n)
		for i := 0; i < n; i++ {
			col[i] = board[i][j]
		}
		if err := p.Unique(col...); err != nil {
			t.Fatalf("col Unique: %v", err)
		}
	}
	soln, err := p.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i := 0; i < n; i++ {
		rowCount := 0
		for j := 0; j < n; j++ {
			if soln.Holds(board[i][j]) {
				rowCount++
			}
		}
		if rowCount != 1 {
			t.Errorf("row %d has %d rooks, want 1", i, rowCount)
		}
	}
	for j := 0; j < n; j++ {
		colCount := 0
		for i := 0; i < n; i++ {
			if soln.Holds(board[i][j]) {
				colCount++
			}
		}
		if colCount != 1 {
			t.Errorf("col %d has %d rooks, want 1", j, colCount)
		}
	}
}
