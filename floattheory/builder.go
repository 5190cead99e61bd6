package floattheory

import (
	"fmt"

	catsat "github.com/ianhorswill/catsat-go"
	"github.com/ianhorswill/catsat-go/interval"
)

// memo returns the existing result variable for key if one was already
// built, or calls build to construct (and remember) a fresh one. This is
// the memoization spec §6 requires: "a+b returns the same synthetic
// variable on each call".
func (s *Solver) memo(key string, build func() *Variable) *Variable {
	if s.resultCache == nil {
		s.resultCache = make(map[string]*Variable)
	}
	if v, ok := s.resultCache[key]; ok {
		return v
	}
	v := build()
	s.resultCache[key] = v
	return v
}

// Plus returns a+b as a memoized result variable related to a and b by a
// SumConstraint.
func (s *Solver) Plus(a, b *Variable) *Variable {
	key := fmt.Sprintf("+(%s,%s)", a.Name, b.Name)
	return s.memo(key, func() *Variable {
		dom := NewDomain(a.Domain.Lo+b.Domain.Lo, a.Domain.Hi+b.Domain.Hi)
		r := s.NewVariable(key, dom)
		r.PickLast = true
		c := &SumConstraint{R: r, A: a, B: b}
		attach(c)
		return r
	})
}

// Minus returns a-b, built as a+(-b) via Negate and Plus.
func (s *Solver) Minus(a, b *Variable) *Variable {
	return s.Plus(a, s.Negate(b))
}

// Negate returns -a as a memoized result variable, via the scaled-sum
// constraint with a single argument and scale -1.
func (s *Solver) Negate(a *Variable) *Variable {
	key := fmt.Sprintf("-(%s)", a.Name)
	return s.memo(key, func() *Variable {
		dom := NewDomain(-a.Domain.Hi, -a.Domain.Lo)
		r := s.NewVariable(key, dom)
		r.PickLast = true
		c := &ScaledSumConstraint{R: r, Args: []*Variable{a}, Scale: -1}
		attach(c)
		return r
	})
}

// Times returns a*b as a memoized result variable related by a
// ProductConstraint.
func (s *Solver) Times(a, b *Variable) *Variable {
	key := fmt.Sprintf("*(%s,%s)", a.Name, b.Name)
	return s.memo(key, func() *Variable {
		dom := productDomain(a.Domain, b.Domain)
		r := s.NewVariable(key, dom)
		r.PickLast = true
		c := &ProductConstraint{R: r, A: a, B: b}
		attach(c)
		return r
	})
}

func productDomain(a, b Domain) Domain {
	prod := interval.New(a.Lo, a.Hi).Mul(interval.New(b.Lo, b.Hi))
	return NewDomain(prod.Lo, prod.Hi)
}

// Divide returns a/b as a memoized result variable, rejecting (spec §7)
// a divisor whose domain is the single constant 0 or a NaN bound on
// either operand at build time rather than producing an unusable
// Full()-width result. It is implemented as a ProductConstraint relating
// a (the product), the result, and b (the other factor), reusing that
// constraint's existing a=r*b / r=a/b / b=a/r narrowing instead of a
// separate division propagator.
func (s *Solver) Divide(a, b *Variable) (*Variable, error) {
	if isNaN(a.Domain.Lo) || isNaN(a.Domain.Hi) || isNaN(b.Domain.Lo) || isNaN(b.Domain.Hi) {
		return nil, &catsat.DomainError{Msg: fmt.Sprintf("Divide(%s,%s): NaN domain bound", a.Name, b.Name)}
	}
	if b.Domain.Lo == 0 && b.Domain.Hi == 0 {
		return nil, &catsat.DomainError{Msg: fmt.Sprintf("Divide(%s,%s): divisor's domain is the constant 0", a.Name, b.Name)}
	}
	key := fmt.Sprintf("/(%s,%s)", a.Name, b.Name)
	return s.memo(key, func() *Variable {
		dom := quotientDomain(a.Domain, b.Domain)
		r := s.NewVariable(key, dom)
		r.PickLast = true
		c := &ProductConstraint{R: a, A: r, B: b}
		attach(c)
		return r
	}), nil
}

func quotientDomain(a, b Domain) Domain {
	q := interval.New(a.Lo, a.Hi).Div(interval.New(b.Lo, b.Hi))
	return NewDomain(q.Lo, q.Hi)
}

func isNaN(x float32) bool { return x != x }

// PowN returns a^n as a memoized result variable related by a
// PowConstraint.
func (s *Solver) PowN(a *Variable, n int) *Variable {
	key := fmt.Sprintf("^(%s,%d)", a.Name, n)
	return s.memo(key, func() *Variable {
		pow := interval.New(a.Domain.Lo, a.Domain.Hi).Pow(n)
		r := s.NewVariable(key, NewDomain(pow.Lo, pow.Hi))
		r.PickLast = true
		c := &PowConstraint{R: r, A: a, N: n}
		attach(c)
		return r
	})
}

// Sum returns the sum of vars as a memoized result variable related by a
// ScaledSumConstraint with scale 1. It rejects (spec §7) any conditional
// variable in vars.
func (s *Solver) Sum(vars ...*Variable) (*Variable, error) {
	if err := rejectConditional("Sum", vars); err != nil {
		return nil, err
	}
	key := "sum("
	lo, hi := float32(0), float32(0)
	names := make([]interface{}, 0, len(vars))
	for _, v := range vars {
		lo += v.Domain.Lo
		hi += v.Domain.Hi
		names = append(names, v.Name)
	}
	key += fmt.Sprint(names...) + ")"
	return s.memo(key, func() *Variable {
		r := s.NewVariable(key, NewDomain(lo, hi))
		r.PickLast = true
		c := &ScaledSumConstraint{R: r, Args: append([]*Variable(nil), vars...), Scale: 1}
		attach(c)
		return r
	}), nil
}

// Average returns the arithmetic mean of vars as a memoized result
// variable: Sum(vars) scaled by 1/len(vars). Rejects conditional vars.
func (s *Solver) Average(vars ...*Variable) (*Variable, error) {
	if err := rejectConditional("Average", vars); err != nil {
		return nil, err
	}
	sum, err := s.Sum(vars...)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("avg(%s)", sum.Name)
	return s.memo(key, func() *Variable {
		n := float32(len(vars))
		dom := NewDomain(sum.Domain.Lo/n, sum.Domain.Hi/n)
		r := s.NewVariable(key, dom)
		r.PickLast = true
		c := &ScaledSumConstraint{R: r, Args: []*Variable{sum}, Scale: 1 / n}
		attach(c)
		return r
	}), nil
}

// Variance returns the population variance of vars:
// Average(vars.^2) - Average(vars)^2. Rejects conditional vars.
func (s *Solver) Variance(vars ...*Variable) (*Variable, error) {
	if err := rejectConditional("Variance", vars); err != nil {
		return nil, err
	}
	squares := make([]*Variable, len(vars))
	for i, v := range vars {
		squares[i] = s.PowN(v, 2)
	}
	meanOfSquares, err := s.Average(squares...)
	if err != nil {
		return nil, err
	}
	mean, err := s.Average(vars...)
	if err != nil {
		return nil, err
	}
	meanSquared := s.PowN(mean, 2)
	return s.Minus(meanOfSquares, meanSquared), nil
}

func rejectConditional(fn string, vars []*Variable) error {
	for _, v := range vars {
		if v.Condition != nil {
			return &catsat.MalformedProgramError{
				Msg: fmt.Sprintf("%s rejects conditionally-existing variable %s", fn, v.Name),
			}
		}
	}
	return nil
}

// MonotoneUnary returns fn(a) as a memoized result variable related by a
// MonotoneUnaryConstraint.
func (s *Solver) MonotoneUnary(a *Variable, fn MonotoneFunc) *Variable {
	key := fmt.Sprintf("%s(%s)", fn.Name, a.Name)
	return s.memo(key, func() *Variable {
		lo, hi := fn.F(a.Domain.Lo), fn.F(a.Domain.Hi)
		if !fn.Increasing {
			lo, hi = hi, lo
		}
		r := s.NewVariable(key, NewDomain(lo, hi))
		r.PickLast = true
		c := &MonotoneUnaryConstraint{R: r, X: a, Fn: fn}
		attach(c)
		return r
	})
}
