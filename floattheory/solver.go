package floattheory

import (
	"fmt"
	"sort"

	catsat "github.com/ianhorswill/catsat-go"
	"github.com/ianhorswill/catsat-go/interval"
)

// Solver is CatSAT's float theory: it implements catsat.Theory, narrowing
// and sampling a registered set of Variables once per candidate boolean
// model (spec §4.4). Construct with NewSolver and register variables
// with NewVariable before calling Problem.AddTheory.
type Solver struct {
	problem *catsat.Problem
	vars    []*Variable

	constantBounds map[int]constantBoundFact
	variableBounds map[int]variableBoundFact
	equations      map[int]equationFact

	functionalResultProps map[int]bool // props it's a build-time error to depend on

	resultCache map[string]*Variable

	maxTries int
}

// NewSolver creates a float theory solver attached to p. Register it
// with p.AddTheory once all variables and constraints have been built.
func NewSolver(p *catsat.Problem) *Solver {
	return &Solver{
		problem:               p,
		constantBounds:        make(map[int]constantBoundFact),
		variableBounds:        make(map[int]variableBoundFact),
		equations:             make(map[int]equationFact),
		functionalResultProps: make(map[int]bool),
		maxTries:              p.MaxFloatTries(),
	}
}

// NewVariable registers and returns a fresh float variable with domain
// dom. If dom.Tolerance is unset, it defaults to the owning Problem's
// configured WithQuantizationTolerance.
func (s *Solver) NewVariable(name string, dom Domain) *Variable {
	if dom.Tolerance == 0 {
		dom.Tolerance = s.problem.QuantizationTolerance()
	}
	v := &Variable{Name: name, Domain: dom}
	v.parent = v
	v.index = len(s.vars)
	s.vars = append(s.vars, v)
	return v
}

// NewConditionalVariable is like NewVariable but marks the variable as
// only defined in models where cond holds (spec §3's conditional
// existence).
func (s *Solver) NewConditionalVariable(name string, dom Domain, cond catsat.Literal) *Variable {
	v := s.NewVariable(name, dom)
	v.Condition = &cond
	return v
}

// Predetermine fixes v to a single value for every solve, bypassing
// sampling.
func (v *Variable) Predetermine(x float32) { v.predetermined = &x }

// Preprocess adds the constant-bound transitivity clauses described in
// spec §4.4: given all "v <= c_i" propositions on the same variable
// sorted by c_i, assert ¬(v <= c_i) ∨ (v <= c_i+1); symmetrically for
// lower bounds. It also rejects (as a MalformedProgramError) any bound
// or equation proposition on a functional-constraint result variable
// that is used as a rule dependency.
func (s *Solver) Preprocess(p *catsat.Problem) error {
	byVarUpper := map[*Variable][]constantBoundFact{}
	byVarLower := map[*Variable][]constantBoundFact{}
	for _, f := range s.constantBounds {
		if f.Op == opLE {
			byVarUpper[f.V] = append(byVarUpper[f.V], f)
		} else {
			byVarLower[f.V] = append(byVarLower[f.V], f)
		}
	}
	for _, facts := range byVarUpper {
		sort.Slice(facts, func(i, j int) bool { return facts[i].C < facts[j].C })
		for i := 0; i+1 < len(facts); i++ {
			if err := p.AssertImplication(facts[i+1].Lit, facts[i].Lit); err != nil {
				return err
			}
		}
	}
	for _, facts := range byVarLower {
		sort.Slice(facts, func(i, j int) bool { return facts[i].C > facts[j].C })
		for i := 0; i+1 < len(facts); i++ {
			if err := p.AssertImplication(facts[i+1].Lit, facts[i].Lit); err != nil {
				return err
			}
		}
	}
	for propIdx := range s.functionalResultProps {
		prop := p.Proposition(propIdx)
		if prop != nil && prop.IsDependency() {
			return &catsat.MalformedProgramError{
				Msg: fmt.Sprintf("functional-constraint proposition %v used as a rule dependency", prop),
			}
		}
	}
	return nil
}

// PropagatePredetermined forces a constant-bound proposition's truth
// value whenever its variable has a predetermined value (spec §4.5).
func (s *Solver) PropagatePredetermined(p *catsat.Problem) error {
	for _, f := range s.constantBounds {
		r := f.V.Find()
		if r.predetermined == nil {
			continue
		}
		holds := f.Op == opLE && *r.predetermined <= f.C
		holds = holds || (f.Op == opGE && *r.predetermined >= f.C)
		lit := f.Lit
		if !holds {
			lit = lit.Negate()
		}
		if err := p.Assert(lit); err != nil {
			return err
		}
	}
	return nil
}

// Solution holds the float theory's sampled value per representative,
// for Variable.Value to read back.
type Solution struct {
	values map[int]float32
}

// Solve extends the candidate boolean model sol with consistent float
// values, per the pipeline in spec §4.4.
func (s *Solver) Solve(sol *catsat.Solution) bool {
	for _, v := range s.vars {
		v.resetForSolve()
	}

	for _, f := range s.equations {
		if !sol.Holds(f.Lit) {
			continue
		}
		if !defined(sol, f.Lhs) || !defined(sol, f.Rhs) {
			continue
		}
		if !union(f.Lhs, f.Rhs) {
			return false
		}
	}

	for _, v := range s.vars {
		if !defined(sol, v) {
			continue
		}
		for _, c := range v.constraints {
			allDefined := true
			for _, p := range c.Vars() {
				if !defined(sol, p) {
					allDefined = false
					break
				}
			}
			if allDefined {
				v.Find().activeConstraints = appendUnique(v.Find().activeConstraints, c)
			}
		}
	}

	for _, f := range s.constantBounds {
		if !defined(sol, f.V) {
			continue
		}
		r := f.V.Find()
		holds := sol.Holds(f.Lit)
		isDep := f.Lit.Prop.IsDependency()
		if !holds && !isDep {
			continue
		}
		op := f.Op
		if !holds {
			// Dependency's complementary bound: the opposite direction.
			if op == opLE {
				op = opGE
			} else {
				op = opLE
			}
		}
		var ok bool
		if op == opLE {
			ok = BoundAbove(r, f.C, nil)
		} else {
			ok = BoundBelow(r, f.C, nil)
		}
		if !ok {
			return false
		}
	}

	for _, f := range s.variableBounds {
		if !defined(sol, f.Lhs) || !defined(sol, f.Rhs) {
			continue
		}
		holds := sol.Holds(f.Lit)
		isDep := f.Lit.Prop.IsDependency()
		if !holds && !isDep {
			continue
		}
		upper, lower := f.Rhs, f.Lhs // default lhs <= rhs: rhs is upper neighbor of lhs
		if f.Op == opGE {
			upper, lower = f.Lhs, f.Rhs
		}
		if !holds {
			upper, lower = lower, upper
		}
		lr, ur := lower.Find(), upper.Find()
		ur.lowerNeighbors = append(ur.lowerNeighbors, lr)
		lr.upperNeighbors = append(lr.upperNeighbors, ur)
	}

	q := newWorkQueue()
	seen := map[*Variable]bool{}
	for _, v := range s.vars {
		r := v.Find()
		if seen[r] {
			continue
		}
		seen[r] = true
		q.push(r, Upper)
		q.push(r, Lower)
	}
	if !propagate(q) {
		return false
	}

	reps := map[*Variable]bool{}
	for _, v := range s.vars {
		r := v.Find()
		r.solutionBounds = r.bounds
		reps[r] = true
	}

	tries := s.maxTries
	if tries <= 0 {
		tries = 1
	}
	for attempt := 0; attempt < tries; attempt++ {
		for r := range reps {
			r.bounds = r.solutionBounds
		}
		if sample(s, reps) {
			values := make(map[int]float32, len(reps))
			for r := range reps {
				values[r.index] = r.bounds.Lo
			}
			sol.TheoryData = &Solution{values: values}
			return true
		}
	}
	return false
}

func appendUnique(cs []Constraint, c Constraint) []Constraint {
	for _, existing := range cs {
		if existing == c {
			return cs
		}
	}
	return append(cs, c)
}

// propagate drains q, invoking every active constraint and neighbor
// relation touched by each dequeued (variable, side) (spec §4.4.1).
func propagate(q *workQueue) bool {
	for {
		item, ok := q.pop()
		if !ok {
			return true
		}
		v := item.v
		for _, c := range v.activeConstraints {
			if !c.Propagate(v, item.which, q) {
				return false
			}
		}
		if item.which == Upper {
			for _, w := range v.lowerNeighbors {
				if !BoundAbove(w, v.bounds.Hi, q) {
					return false
				}
			}
		} else {
			for _, w := range v.upperNeighbors {
				if !BoundBelow(w, v.bounds.Lo, q) {
					return false
				}
			}
		}
	}
}

// sample implements spec §4.4.2: shuffle representatives (PickLast ones
// deferred to the tail), narrow each to a randomly chosen legal point,
// and propagate; any propagation failure fails the whole sampling
// attempt.
func sample(s *Solver, reps map[*Variable]bool) bool {
	ordered := make([]*Variable, 0, len(reps))
	var deferred []*Variable
	for r := range reps {
		if r.PickLast {
			deferred = append(deferred, r)
		} else {
			ordered = append(ordered, r)
		}
	}
	rng := s.problem.Rand()
	rng.Shuffle(len(ordered), func(i, j int) { ordered[i], ordered[j] = ordered[j], ordered[i] })
	rng.Shuffle(len(deferred), func(i, j int) { deferred[i], deferred[j] = deferred[j], deferred[i] })
	ordered = append(ordered, deferred...)

	q := newWorkQueue()
	for _, r := range ordered {
		if r.bounds.Empty() {
			return false
		}
		var x float32
		if r.Domain.Quantization == 0 {
			x = r.bounds.Lo + rng.Float32()*(r.bounds.Hi-r.bounds.Lo)
		} else {
			steps := int((r.bounds.Hi-r.bounds.Lo)/r.Domain.Quantization + 0.5)
			if steps <= 0 {
				x = r.bounds.Lo
			} else {
				x = r.bounds.Lo + float32(rng.Intn(steps+1))*r.Domain.Quantization
			}
		}
		r.bounds = interval.Point(x)
		q.push(r, Upper)
		q.push(r, Lower)
		if !propagate(q) {
			return false
		}
	}
	return true
}

// Value returns v's sampled value from sol, reading the float theory's
// result out of catsat.Solution's TheoryData slot.
func Value(sol *catsat.Solution, v *Variable) float32 {
	fs := sol.TheoryData.(*Solution)
	return fs.values[v.Find().index]
}
