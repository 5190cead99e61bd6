// Package catsat implements CatSAT: a library for procedural content
// generation via constraint satisfaction. A caller builds a Problem by
// declaring propositions, rules, and cardinality constraints, optionally
// attaches theory solvers (see package floattheory), and calls Solve to
// get back a randomized satisfying Solution.
package catsat

import (
	"math/rand"
	"time"
)

// Problem accumulates propositions, clauses, and rule bodies, then
// compiles and solves them. It is not safe for concurrent use; distinct
// Problems may be solved concurrently so long as they don't share
// Proposition pointers (spec §5 — no process-wide "current problem").
type Problem struct {
	propsByKey map[string]*Proposition
	props      []*Proposition // 1-based: props[i-1] has Index i

	True  *Proposition
	False *Proposition

	clauses []clauseSpec

	theories []Theory

	opts options

	finalized bool
	tight     bool

	rng *rand.Rand

	lastStats Stats
}

// Stats returns the diagnostic counters from the most recent Solve call
// (zero value if Solve has not been called yet), regardless of whether
// that call succeeded.
func (p *Problem) Stats() Stats { return p.lastStats }

// New creates an empty Problem configured by opts.
func New(opts ...Option) *Problem {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	p := &Problem{
		propsByKey: make(map[string]*Proposition),
		opts:       o,
	}
	p.True = &Proposition{Key: "true", Index: 0, constValue: 1}
	p.False = &Proposition{Key: "false", Index: 0, constValue: -1}
	if o.useSeed {
		p.rng = rand.New(rand.NewSource(o.seed))
	} else {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// growClauseLists is a hook called whenever a new proposition is
// interned; present for parity with the teacher's eager per-variable
// bookkeeping even though this builder defers clause-list construction
// to compile time (see Solve).
func (p *Problem) growClauseLists() {}

// AddTheory registers a theory solver to be consulted after every
// boolean-satisfying candidate model (spec §4.5). Must be called before
// Solve.
func (p *Problem) AddTheory(t Theory) {
	p.theories = append(p.theories, t)
}

// AddClause asserts a generalized cardinality clause directly: satisfied
// iff the number of true lits lies in [min,max], max==0 meaning no upper
// bound. Most callers use the higher-level Assert/Quantify helpers
// instead.
func (p *Problem) AddClause(min, max int, lits ...Literal) error {
	if p.finalized {
		return &MalformedProgramError{Msg: "AddClause called after Solve finalized the program"}
	}
	folded, trivial, ok := foldConstants(clauseSpec{Min: min, Max: max, Lits: lits})
	if !ok {
		return &CompileTimeUnsatError{Reason: "clause folds to a contradiction"}
	}
	if trivial {
		return nil
	}
	p.clauses = append(p.clauses, folded)
	return nil
}

// Assert asserts a single literal as a fact. Asserting True is a no-op;
// asserting False is a build error; otherwise the literal's proposition
// becomes a constant of that polarity (it is not added as a unit
// clause — spec §4.1). Asserting a literal whose proposition is already
// a constant of the opposite polarity is a CompileTimeUnsatError.
func (p *Problem) Assert(lit Literal) error {
	if p.finalized {
		return &MalformedProgramError{Msg: "Assert called after Solve finalized the program"}
	}
	if truth, isConst := lit.constFolds(); isConst {
		if truth {
			return nil
		}
		if lit.Prop.Index == 0 {
			return &MalformedProgramError{Msg: "Assert(False)"}
		}
		return &CompileTimeUnsatError{Reason: "asserted literal contradicts a constant"}
	}
	if lit.Positive {
		lit.Prop.constValue = 1
	} else {
		lit.Prop.constValue = -1
	}
	return nil
}

// AssertImplication compiles head ⇐ body to the single clause
// {head, ¬b1, …, ¬bk} (spec §4.1).
func (p *Problem) AssertImplication(head Literal, body ...Literal) error {
	lits := make([]Literal, 0, len(body)+1)
	lits = append(lits, head)
	for _, b := range body {
		lits = append(lits, b.Negate())
	}
	return p.AddClause(1, 0, lits...)
}

// AssertRule appends body (a conjunction of literals) to head's rule-body
// list and records each positively-occurring body proposition as a
// dependency of head, for later Clark completion (spec §4.1). head must
// not be a constant, and rules may not be added after Solve has
// finalized the program.
func (p *Problem) AssertRule(head Literal, body ...Literal) error {
	if p.finalized {
		return &MalformedProgramError{Msg: "AssertRule called after Solve finalized the program"}
	}
	if head.Prop.IsConstant() {
		return &MalformedProgramError{Msg: "rule head may not be a constant"}
	}
	bodyCopy := append([]Literal(nil), body...)
	head.Prop.ruleBodies = append(head.Prop.ruleBodies, bodyCopy)
	for _, b := range body {
		if b.Positive {
			head.Prop.addDependency(b.Prop)
		}
	}
	return nil
}

// AssertBiconditional asserts head ≡ body (body read as a conjunction):
// the forward implication head ⇐ body, plus for each body literal bi the
// reverse implication head ⇒ bi, compiled to the clause {¬head, bi}
// (spec §4.1).
func (p *Problem) AssertBiconditional(head Literal, body ...Literal) error {
	if err := p.AssertImplication(head, body...); err != nil {
		return err
	}
	for _, b := range body {
		if err := p.AddClause(1, 0, head.Negate(), b); err != nil {
			return err
		}
	}
	return nil
}

// Quantify asserts a generalized cardinality constraint: the number of
// true lits must lie in [min,max].
func (p *Problem) Quantify(min, max int, lits ...Literal) error {
	return p.AddClause(min, max, lits...)
}

// All asserts that every literal in lits is true.
func (p *Problem) All(lits ...Literal) error { return p.Quantify(len(lits), len(lits), lits...) }

// Exists asserts that at least one literal in lits is true.
func (p *Problem) Exists(lits ...Literal) error { return p.Quantify(1, 0, lits...) }

// Exactly asserts that exactly n of lits are true.
func (p *Problem) Exactly(n int, lits ...Literal) error {
	if n == 0 {
		return p.AtMost(0, lits...)
	}
	return p.Quantify(n, n, lits...)
}

// AtMost asserts that at most n of lits are true.
func (p *Problem) AtMost(n int, lits ...Literal) error {
	if n == 0 {
		// Max==0 would read as "no upper bound"; require every negation.
		negated := make([]Literal, len(lits))
		for i, l := range lits {
			negated[i] = l.Negate()
		}
		return p.All(negated...)
	}
	return p.Quantify(0, n, lits...)
}

// AtLeast asserts that at least n of lits are true.
func (p *Problem) AtLeast(n int, lits ...Literal) error { return p.Quantify(n, 0, lits...) }

// Unique asserts that exactly one literal in lits is true.
func (p *Problem) Unique(lits ...Literal) error { return p.Exactly(1, lits...) }

// Not returns the negation of lit; negation of a constant folds to the
// other constant automatically since Literal.Negate just flips polarity
// against the same (possibly constant) Proposition.
func (p *Problem) Not(lit Literal) Literal { return lit.Negate() }

// And returns a literal for a fresh proposition equivalent to the
// conjunction of lits, interning on the literal set so repeated calls
// with the same arguments return the same proposition (spec §6:
// "Arithmetic operations memoize").
func (p *Problem) And(lits ...Literal) Literal {
	args := make([]interface{}, len(lits))
	for i, l := range lits {
		args[i] = l
	}
	prop := p.GetProposition(Call{Fn: "and", Args: args})
	if !prop.conjunctionDefined {
		prop.conjunctionDefined = true
		_ = p.AssertBiconditional(Pos(prop), lits...)
	}
	return Pos(prop)
}
