// Package walksat implements a stochastic local-search SAT solver over
// generalized cardinality clauses: a clause (Min, Max, lits) is satisfied
// iff the number of true literals among lits lies in [Min, Max] (Max==0
// meaning "no upper bound"). It generalizes the classic WalkSAT algorithm
// (alternating greedy hill-climbing with random-walk noise moves) the way
// spec.md §4.2 describes, grounded on the incremental per-clause
// bookkeeping style of the teacher's watch-literal updates
// (github.com/cespare/saturday) and on the noise/greedy split in the
// WalkSAT reference implementation retrieved from bendatsko/dacroq
// (other_examples/9f2c4d8d_bendatsko-dacroq__...walksat.go.go).
package walksat

import (
	"math/rand"

	"github.com/kr/pretty"
)

// A Lit is a signed 1-based variable index: positive means the variable
// asserted true, negative means negated. Zero is never a valid literal.
type Lit int32

// Var returns the 0-based variable index of l.
func (l Lit) Var() int { return int(abs(l)) - 1 }

// Positive reports whether l is an unnegated literal.
func (l Lit) Positive() bool { return l > 0 }

func abs(l Lit) Lit {
	if l < 0 {
		return -l
	}
	return l
}

// A Clause is a generalized cardinality clause: satisfied iff the number
// of true literals among Lits lies in [Min, Max], with Max==0 meaning
// "no upper bound" (so Min=1,Max=0 is an ordinary disjunction).
type Clause struct {
	Min, Max int
	Lits     []Lit
}

// satisfiedByCount reports whether a clause with the given number of true
// disjuncts is satisfied.
func (c *Clause) satisfiedByCount(trueCount int) bool {
	if trueCount < c.Min {
		return false
	}
	if c.Max == 0 {
		return true
	}
	return trueCount <= c.Max
}

// Params are the WalkSAT search budget and noise policy, per spec.md §4.2.
type Params struct {
	MaxTries int // number of random restarts
	MaxFlips int // number of flips per try
	Noise    int // percent chance, in [0,100], of a random-walk move
}

// DefaultParams returns the conventional WalkSAT defaults.
func DefaultParams() Params {
	return Params{MaxTries: 100, MaxFlips: 10000, Noise: 50}
}

// TheoryHook is called with a candidate boolean model whenever the
// search finds one satisfying every clause. It returns true to accept
// the model (search stops and reports success) or false to reject it and
// keep flipping (spec.md §4.2's "Theory hook").
type TheoryHook func(assignment []bool) bool

// Stats records information about a solve, for diagnostic purposes only.
type Stats struct {
	Tries          int
	Flips          int
	TheoryCalls    int
	TheoryRejected int
}

// Solver runs WalkSAT over a fixed set of clauses.
type Solver struct {
	params  Params
	rng     *rand.Rand
	nbVars  int
	clauses []Clause
	fixed   []int8 // per var: 0 = free, 1 = forced true, -1 = forced false

	posClauses [][]int // per var: indices of clauses where it appears positive
	negClauses [][]int // per var: indices of clauses where it appears negative

	assignment []bool
	trueCount  []int // per clause, current count of true disjuncts
	unsatSet   unsatSet

	Theory TheoryHook
	Stats  Stats
}

// New builds a Solver for nbVars variables (1-based in clause literals,
// 0-based internally) and the given clauses. fixed, if non-nil, gives a
// forced truth value per variable (0 = unconstrained, 1 = forced true, -1
// = forced false); fixed variables are never flipped or chosen at
// random, per spec.md §4.2 ("constants forced to their fixed value").
func New(nbVars int, clauses []Clause, fixed []int8, params Params, rng *rand.Rand) *Solver {
	s := &Solver{
		params:     params,
		rng:        rng,
		nbVars:     nbVars,
		clauses:    clauses,
		fixed:      make([]int8, nbVars),
		posClauses: make([][]int, nbVars),
		negClauses: make([][]int, nbVars),
		assignment: make([]bool, nbVars),
		trueCount:  make([]int, len(clauses)),
	}
	if fixed != nil {
		copy(s.fixed, fixed)
	}
	for ci := range clauses {
		for _, lit := range clauses[ci].Lits {
			v := lit.Var()
			if lit.Positive() {
				s.posClauses[v] = append(s.posClauses[v], ci)
			} else {
				s.negClauses[v] = append(s.negClauses[v], ci)
			}
		}
	}
	s.unsatSet = newUnsatSet(len(clauses))
	return s
}

// Dump renders the solver's current assignment and per-clause true
// counts for debugging, using kr/pretty for structured output rather
// than a hand-rolled formatter.
func (s *Solver) Dump() string {
	return pretty.Sprintf("assignment: %# v\ntrueCount: %# v\nunsat: %d clauses",
		s.assignment, s.trueCount, s.unsatSet.len())
}

// Solve attempts to find a satisfying assignment within the configured
// budget, per the algorithm in spec.md §4.2. It returns the assignment
// and true on success, or nil and false if the budget was exhausted
// without finding (and the theory, if any, accepting) a model.
func (s *Solver) Solve() ([]bool, bool) {
	for try := 1; try <= s.params.MaxTries; try++ {
		s.Stats.Tries++
		s.randomAssignment()
		s.recomputeCounts()
		for flip := 1; flip <= s.params.MaxFlips; flip++ {
			s.Stats.Flips++
			if s.unsatSet.len() == 0 {
				if s.acceptedByTheory() {
					return append([]bool(nil), s.assignment...), true
				}
				// Theory rejected: keep flipping from here, per spec.md
				// §4.2 ("the search continues ... it does not restart").
			}
			if s.unsatSet.len() == 0 {
				// All clauses are satisfied but the theory rejects every
				// model in this boolean neighborhood; force a noise move
				// so the search doesn't stall on a theory-infeasible
				// fixpoint.
				v := s.randomFreeVar()
				if v >= 0 {
					s.flip(v)
				}
				continue
			}
			v := s.chooseVar()
			if v < 0 {
				break
			}
			s.flip(v)
		}
	}
	return nil, false
}

func (s *Solver) acceptedByTheory() bool {
	if s.Theory == nil {
		return true
	}
	s.Stats.TheoryCalls++
	if s.Theory(s.assignment) {
		return true
	}
	s.Stats.TheoryRejected++
	return false
}

func (s *Solver) randomAssignment() {
	for v := 0; v < s.nbVars; v++ {
		switch s.fixed[v] {
		case 1:
			s.assignment[v] = true
		case -1:
			s.assignment[v] = false
		default:
			s.assignment[v] = s.rng.Intn(2) == 1
		}
	}
}

func (s *Solver) randomFreeVar() int {
	free := make([]int, 0, s.nbVars)
	for v := 0; v < s.nbVars; v++ {
		if s.fixed[v] == 0 {
			free = append(free, v)
		}
	}
	if len(free) == 0 {
		return -1
	}
	return free[s.rng.Intn(len(free))]
}

func (s *Solver) recomputeCounts() {
	for ci := range s.clauses {
		s.trueCount[ci] = 0
	}
	for v := 0; v < s.nbVars; v++ {
		if s.assignment[v] {
			for _, ci := range s.posClauses[v] {
				s.trueCount[ci]++
			}
		} else {
			for _, ci := range s.negClauses[v] {
				s.trueCount[ci]++
			}
		}
	}
	s.unsatSet.reset()
	for ci := range s.clauses {
		if !s.clauses[ci].satisfiedByCount(s.trueCount[ci]) {
			s.unsatSet.add(ci)
		}
	}
}

// chooseVar implements the noise/greedy choice in spec.md §4.2.
func (s *Solver) chooseVar() int {
	if s.rng.Intn(100) < s.params.Noise {
		ci := s.unsatSet.randomMember(s.rng)
		return s.randomVarFromClause(ci)
	}
	ci := s.unsatSet.randomMember(s.rng)
	return s.bestVarFromClause(ci)
}

func (s *Solver) randomVarFromClause(ci int) int {
	c := &s.clauses[ci]
	var candidates []int
	for _, lit := range c.Lits {
		v := lit.Var()
		if s.fixed[v] == 0 {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// bestVarFromClause picks the variable in clause ci whose flip minimizes
// the "break count" (number of clauses transitioning from satisfied to
// unsatisfied), with a fast path for a zero-break flip and a uniformly
// random choice among tied variables for sample diversity.
func (s *Solver) bestVarFromClause(ci int) int {
	c := &s.clauses[ci]
	best := -1
	bestBreak := -1
	tieCount := 0
	for _, lit := range c.Lits {
		v := lit.Var()
		if s.fixed[v] != 0 {
			continue
		}
		breakCount := s.breakCount(v)
		if breakCount == 0 {
			return v // fast path
		}
		switch {
		case best == -1 || breakCount < bestBreak:
			best = v
			bestBreak = breakCount
			tieCount = 1
		case breakCount == bestBreak:
			tieCount++
			// Replace the current winner with probability 1/tieCount, so
			// each tied variable wins with equal probability.
			if s.rng.Intn(tieCount) == 0 {
				best = v
			}
		}
	}
	return best
}

// breakCount returns the number of currently-satisfied clauses that
// would become unsatisfied if v were flipped.
func (s *Solver) breakCount(v int) int {
	count := 0
	cur := s.assignment[v]
	// Clauses where v appears with the same polarity as its current
	// value are the ones currently counting v as true; flipping removes
	// that contribution. The clauses with the opposite polarity gain one
	// true disjunct, which can exceed a clause's Max.
	var losing, gaining []int
	if cur {
		losing, gaining = s.posClauses[v], s.negClauses[v]
	} else {
		losing, gaining = s.negClauses[v], s.posClauses[v]
	}
	for _, ci := range losing {
		c := &s.clauses[ci]
		k := s.trueCount[ci]
		if c.satisfiedByCount(k) && !c.satisfiedByCount(k-1) {
			count++
		}
	}
	for _, ci := range gaining {
		c := &s.clauses[ci]
		k := s.trueCount[ci]
		if c.satisfiedByCount(k) && !c.satisfiedByCount(k+1) {
			count++
		}
	}
	return count
}

// flip toggles v's assignment and updates all incremental state:
// trueDisjunctCount per affected clause and unsatisfied-set membership,
// per the invariants in spec.md §3.
func (s *Solver) flip(v int) {
	cur := s.assignment[v]
	s.assignment[v] = !cur
	var gaining, losing []int
	if cur {
		losing, gaining = s.posClauses[v], s.negClauses[v]
	} else {
		losing, gaining = s.negClauses[v], s.posClauses[v]
	}
	for _, ci := range losing {
		c := &s.clauses[ci]
		before := c.satisfiedByCount(s.trueCount[ci])
		s.trueCount[ci]--
		after := c.satisfiedByCount(s.trueCount[ci])
		s.updateUnsat(ci, before, after)
	}
	for _, ci := range gaining {
		c := &s.clauses[ci]
		before := c.satisfiedByCount(s.trueCount[ci])
		s.trueCount[ci]++
		after := c.satisfiedByCount(s.trueCount[ci])
		s.updateUnsat(ci, before, after)
	}
}

func (s *Solver) updateUnsat(ci int, wasSat, isSat bool) {
	if wasSat && !isSat {
		s.unsatSet.add(ci)
	} else if !wasSat && isSat {
		s.unsatSet.remove(ci)
	}
}
