package catsat

import "github.com/ianhorswill/catsat-go/walksat"

// Stats records diagnostic counters from a Solve call: tries and flips
// spent by the boolean WalkSAT search, and how many times (and how many
// rejections) registered theories were consulted (spec §6). Available
// both on the returned Solution and, for a failed Solve, via
// Problem.Stats.
type Stats struct {
	Tries          int
	Flips          int
	TheoryCalls    int
	TheoryRejected int
}

// Solve finalizes the program (tightness check, Clark completion, unit
// propagation, theory preprocessing), then runs the WalkSAT search,
// consulting every registered theory on each candidate boolean model
// (spec §4.2, §4.4, §4.5). On success it returns a Solution; on failure
// it returns a non-nil error (NonTightProgramError, MalformedProgramError,
// CompileTimeUnsatError, or UnsatisfiableError). Problem.Stats reflects the search's counters
// either way.
func (p *Problem) Solve() (*Solution, error) {
	if err := p.finalize(); err != nil {
		return nil, err
	}

	wClauses := make([]walksat.Clause, len(p.clauses))
	for i, c := range p.clauses {
		wClauses[i] = c.compile()
	}
	fixed := make([]int8, len(p.props))
	for i, prop := range p.props {
		if prop.constValue != 0 {
			fixed[i] = prop.constValue
		}
	}

	solver := walksat.New(len(p.props), wClauses, fixed,
		walksat.Params{MaxTries: p.opts.maxTries, MaxFlips: p.opts.maxFlips, Noise: p.opts.noise},
		p.rng)

	sol := &Solution{problem: p}
	if len(p.theories) > 0 {
		solver.Theory = func(assignment []bool) bool {
			sol.assignment = assignment
			for _, th := range p.theories {
				if !th.Solve(sol) {
					return false
				}
			}
			return true
		}
	}

	model, ok := solver.Solve()
	p.lastStats = Stats{
		Tries:          solver.Stats.Tries,
		Flips:          solver.Stats.Flips,
		TheoryCalls:    solver.Stats.TheoryCalls,
		TheoryRejected: solver.Stats.TheoryRejected,
	}
	if !ok {
		return nil, &UnsatisfiableError{MaxTries: p.opts.maxTries, MaxFlips: p.opts.maxFlips}
	}
	sol.assignment = model
	sol.Stats = p.lastStats
	return sol, nil
}

// finalize runs the one-time compilation pipeline: tightness check,
// Clark completion, theory preprocessing, and unit propagation. It is
// idempotent — calling Solve more than once does not re-run it.
func (p *Problem) finalize() error {
	if p.finalized {
		return nil
	}
	if err := p.checkTight(); err != nil {
		return err
	}
	if err := p.completeRules(); err != nil {
		return err
	}
	for _, th := range p.theories {
		if err := th.Preprocess(p); err != nil {
			return err
		}
	}
	if err := p.unitPropagate(); err != nil {
		return err
	}
	for _, th := range p.theories {
		if err := th.PropagatePredetermined(p); err != nil {
			return err
		}
	}
	p.finalized = true
	return nil
}
