package catsat

import "github.com/kr/pretty"

// Solution is a satisfying assignment returned by Solve: a boolean value
// for every proposition, plus whatever values registered theories have
// attached (see package floattheory for the float theory's Value
// accessor).
type Solution struct {
	problem    *Problem
	assignment []bool // 0-based, indexed by Proposition.Index-1

	// TheoryData is a slot a single registered Theory may use to stash
	// its own per-solution result (e.g. floattheory's sampled values),
	// read back through that theory's own accessor.
	TheoryData interface{}

	// Stats records the boolean search's diagnostic counters for the
	// Solve call that produced this Solution (spec §6).
	Stats Stats
}

// Holds reports whether lit is true in this solution.
func (s *Solution) Holds(lit Literal) bool {
	truth, isConst := lit.constFolds()
	if isConst {
		return truth
	}
	v := s.assignment[lit.Prop.Index-1]
	if !lit.Positive {
		v = !v
	}
	return v
}

// Value reports the raw assignment (ignoring polarity) of the
// proposition at the given 1-based index, for use by theory solvers that
// track propositions by index rather than by Literal.
func (s *Solution) Value(index int) bool {
	if index == 0 {
		return true // index 0 is reserved for the True constant
	}
	return s.assignment[index-1]
}

// Problem returns the Problem this Solution was produced from.
func (s *Solution) Problem() *Problem { return s.problem }

func (s *Solution) String() string {
	m := make(map[string]bool, len(s.problem.props))
	for _, prop := range s.problem.props {
		m[prop.String()] = s.assignment[prop.Index-1]
	}
	return pretty.Sprint(m)
}
