package floattheory

import catsat "github.com/ianhorswill/catsat-go"

// boundOp is the comparison operator of a constant- or variable-bound
// proposition.
type boundOp int8

const (
	opLE boundOp = iota
	opGE
)

// constantBoundFact records that proposition Lit means "v op c".
type constantBoundFact struct {
	V   *Variable
	Op  boundOp
	C   float32
	Lit catsat.Literal
}

// variableBoundFact records that proposition Lit means "Lhs op Rhs".
type variableBoundFact struct {
	Lhs, Rhs *Variable
	Op       boundOp
	Lit      catsat.Literal
}

// equationFact records that proposition Lit means "Lhs == Rhs".
type equationFact struct {
	Lhs, Rhs *Variable
	Lit      catsat.Literal
}

// defined reports whether v participates in the current model: true
// unless it has a Condition literal that is false.
func defined(sol *catsat.Solution, v *Variable) bool {
	if v.Condition == nil {
		return true
	}
	return sol.Holds(*v.Condition)
}

// markIfFunctionalResult records propIdx when any of vars is the result
// variable of an arithmetic builder (marked PickLast), so Preprocess can
// reject that proposition as a rule dependency (spec §4.4.1).
func (s *Solver) markIfFunctionalResult(propIdx int, vars ...*Variable) {
	for _, v := range vars {
		if v.PickLast {
			s.functionalResultProps[propIdx] = true
			return
		}
	}
}

// AtMostConst asserts the proposition "v <= c" and returns its literal.
func (s *Solver) AtMostConst(v *Variable, c float32) catsat.Literal {
	prop := s.problem.GetProposition(catsat.Call{Fn: "<=", Args: []interface{}{v.Name, c}})
	lit := catsat.Pos(prop)
	s.constantBounds[prop.Index] = constantBoundFact{V: v, Op: opLE, C: c, Lit: lit}
	s.markIfFunctionalResult(prop.Index, v)
	return lit
}

// AtLeastConst asserts the proposition "v >= c" and returns its literal.
func (s *Solver) AtLeastConst(v *Variable, c float32) catsat.Literal {
	prop := s.problem.GetProposition(catsat.Call{Fn: ">=", Args: []interface{}{v.Name, c}})
	lit := catsat.Pos(prop)
	s.constantBounds[prop.Index] = constantBoundFact{V: v, Op: opGE, C: c, Lit: lit}
	s.markIfFunctionalResult(prop.Index, v)
	return lit
}

// LessThanConst asserts "v < c"; treated, like the rest of this package's
// strict comparisons, as the non-strict "v <= c" (see DESIGN.md).
func (s *Solver) LessThanConst(v *Variable, c float32) catsat.Literal { return s.AtMostConst(v, c) }

// GreaterThanConst asserts "v > c", non-strict (see LessThanConst).
func (s *Solver) GreaterThanConst(v *Variable, c float32) catsat.Literal {
	return s.AtLeastConst(v, c)
}

// LessOrEqualVar asserts "lhs <= rhs" and returns its literal.
func (s *Solver) LessOrEqualVar(lhs, rhs *Variable) catsat.Literal {
	prop := s.problem.GetProposition(catsat.Call{Fn: "<=v", Args: []interface{}{lhs.Name, rhs.Name}})
	lit := catsat.Pos(prop)
	s.variableBounds[prop.Index] = variableBoundFact{Lhs: lhs, Rhs: rhs, Op: opLE, Lit: lit}
	s.markIfFunctionalResult(prop.Index, lhs, rhs)
	return lit
}

// GreaterOrEqualVar asserts "lhs >= rhs" and returns its literal.
func (s *Solver) GreaterOrEqualVar(lhs, rhs *Variable) catsat.Literal {
	prop := s.problem.GetProposition(catsat.Call{Fn: ">=v", Args: []interface{}{lhs.Name, rhs.Name}})
	lit := catsat.Pos(prop)
	s.variableBounds[prop.Index] = variableBoundFact{Lhs: lhs, Rhs: rhs, Op: opGE, Lit: lit}
	s.markIfFunctionalResult(prop.Index, lhs, rhs)
	return lit
}

// Equal asserts "lhs == rhs" and returns its literal.
func (s *Solver) Equal(lhs, rhs *Variable) catsat.Literal {
	prop := s.problem.GetProposition(catsat.Call{Fn: "==v", Args: []interface{}{lhs.Name, rhs.Name}})
	lit := catsat.Pos(prop)
	s.equations[prop.Index] = equationFact{Lhs: lhs, Rhs: rhs, Lit: lit}
	s.markIfFunctionalResult(prop.Index, lhs, rhs)
	return lit
}
