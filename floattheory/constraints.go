package floattheory

import "github.com/ianhorswill/catsat-go/interval"

// SumConstraint is the functional constraint r = a + b (spec §4.4.3).
type SumConstraint struct {
	R, A, B *Variable
}

func (c *SumConstraint) Vars() []*Variable { return []*Variable{c.R, c.A, c.B} }

func (c *SumConstraint) Propagate(_ *Variable, _ Side, q *workQueue) bool {
	r, a, b := c.R.Find(), c.A.Find(), c.B.Find()
	sum := a.bounds.Add(b.bounds)
	if !BoundAbove(r, sum.Hi, q) || !BoundBelow(r, sum.Lo, q) {
		return false
	}
	aFromR := r.bounds.Sub(b.bounds)
	if !BoundAbove(a, aFromR.Hi, q) || !BoundBelow(a, aFromR.Lo, q) {
		return false
	}
	bFromR := r.bounds.Sub(a.bounds)
	if !BoundAbove(b, bFromR.Hi, q) || !BoundBelow(b, bFromR.Lo, q) {
		return false
	}
	return true
}

// ProductConstraint is the functional constraint r = a * b.
type ProductConstraint struct {
	R, A, B *Variable
}

func (c *ProductConstraint) Vars() []*Variable { return []*Variable{c.R, c.A, c.B} }

func (c *ProductConstraint) Propagate(_ *Variable, _ Side, q *workQueue) bool {
	r, a, b := c.R.Find(), c.A.Find(), c.B.Find()
	prod := a.bounds.Mul(b.bounds)
	if !BoundAbove(r, prod.Hi, q) || !BoundBelow(r, prod.Lo, q) {
		return false
	}
	if !b.bounds.Contains(0) || b.bounds.Unique() {
		aFromR := r.bounds.Div(b.bounds)
		if !BoundAbove(a, aFromR.Hi, q) || !BoundBelow(a, aFromR.Lo, q) {
			return false
		}
	}
	if !a.bounds.Contains(0) || a.bounds.Unique() {
		bFromR := r.bounds.Div(a.bounds)
		if !BoundAbove(b, bFromR.Hi, q) || !BoundBelow(b, bFromR.Lo, q) {
			return false
		}
	}
	return true
}

// PowConstraint is the functional constraint r = a^n for a non-negative
// integer n. Even-power narrowing of a always uses the sound symmetric
// envelope [-ⁿ√|r.hi|, +ⁿ√|r.hi|]: r.lo and the sign of a are not used to
// narrow further — see DESIGN.md's open-question decision.
type PowConstraint struct {
	R, A *Variable
	N    int
}

func (c *PowConstraint) Vars() []*Variable { return []*Variable{c.R, c.A} }

func (c *PowConstraint) Propagate(_ *Variable, _ Side, q *workQueue) bool {
	r, a := c.R.Find(), c.A.Find()
	pow := a.bounds.Pow(c.N)
	if !BoundAbove(r, pow.Hi, q) || !BoundBelow(r, pow.Lo, q) {
		return false
	}
	root := nthRoot(r.bounds, c.N)
	if !BoundAbove(a, root.Hi, q) || !BoundBelow(a, root.Lo, q) {
		return false
	}
	return true
}

// nthRoot returns the interval of a-values consistent with a^n in r.
func nthRoot(r interval.Interval, n int) interval.Interval {
	if n == 0 {
		return interval.Full()
	}
	if n == 1 {
		return r
	}
	if n%2 != 0 {
		return interval.New(signedRoot(r.Lo, n), signedRoot(r.Hi, n))
	}
	// Even power: the narrowed result can never be negative, but a
	// negative r.Lo from prior (looser) bounds is still possible; clamp
	// to the non-negative part before rooting.
	hi := r.Hi
	if hi < 0 {
		return interval.Interval{Lo: 1, Hi: -1} // empty
	}
	bound := signedRoot(hi, n)
	return interval.New(-bound, bound)
}

func signedRoot(x float32, n int) float32 {
	if x < 0 {
		return -magnitudeRoot(-x, n)
	}
	return magnitudeRoot(x, n)
}

func magnitudeRoot(mag float32, n int) float32 {
	if mag <= 0 {
		return 0
	}
	lo, hi := float32(0), mag
	if hi < 1 {
		hi = 1
	}
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if powN(mid, n) < mag {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func powN(x float32, n int) float32 {
	r := float32(1)
	for i := 0; i < n; i++ {
		r *= x
	}
	return r
}

// ScaledSumConstraint is the functional constraint r = scale * Σ args
// (spec §4.4.3's "scaled general sum"), generalizing SumConstraint to
// any number of addends and a constant scale factor.
type ScaledSumConstraint struct {
	R     *Variable
	Args  []*Variable
	Scale float32
}

func (c *ScaledSumConstraint) Vars() []*Variable {
	vars := make([]*Variable, 0, len(c.Args)+1)
	vars = append(vars, c.R)
	vars = append(vars, c.Args...)
	return vars
}

func (c *ScaledSumConstraint) totalBounds() interval.Interval {
	total := interval.Point(0)
	for _, a := range c.Args {
		total = total.Add(a.Find().bounds)
	}
	return total
}

func (c *ScaledSumConstraint) Propagate(_ *Variable, _ Side, q *workQueue) bool {
	r := c.R.Find()
	total := c.totalBounds()
	scaled := total.Scale(c.Scale)
	if !BoundAbove(r, scaled.Hi, q) || !BoundBelow(r, scaled.Lo, q) {
		return false
	}
	if c.Scale == 0 {
		return true
	}
	rOverScale := r.bounds.Scale(1 / c.Scale)
	for j, aj := range c.Args {
		other := interval.Point(0)
		for k, ak := range c.Args {
			if k == j {
				continue
			}
			other = other.Add(ak.Find().bounds)
		}
		target := rOverScale.Sub(other)
		a := aj.Find()
		if !BoundAbove(a, target.Hi, q) || !BoundBelow(a, target.Lo, q) {
			return false
		}
	}
	return true
}

// MonotoneFunc is a scalar function together with its inverse, used by
// MonotoneUnaryConstraint. Increasing reports whether f is
// non-decreasing (true) or non-increasing (false) over its domain.
type MonotoneFunc struct {
	Name       string
	F, Inverse func(float32) float32
	Increasing bool
}

// MonotoneUnaryConstraint is the functional constraint r = f(x) for a
// monotone scalar function f (spec §4.4.3).
type MonotoneUnaryConstraint struct {
	R, X *Variable
	Fn   MonotoneFunc
}

func (c *MonotoneUnaryConstraint) Vars() []*Variable { return []*Variable{c.R, c.X} }

func (c *MonotoneUnaryConstraint) Propagate(_ *Variable, _ Side, q *workQueue) bool {
	r, x := c.R.Find(), c.X.Find()
	lo, hi := c.Fn.F(x.bounds.Lo), c.Fn.F(x.bounds.Hi)
	if !c.Fn.Increasing {
		lo, hi = hi, lo
	}
	if !BoundAbove(r, hi, q) || !BoundBelow(r, lo, q) {
		return false
	}
	xlo, xhi := c.Fn.Inverse(r.bounds.Lo), c.Fn.Inverse(r.bounds.Hi)
	if !c.Fn.Increasing {
		xlo, xhi = xhi, xlo
	}
	if !BoundAbove(x, xhi, q) || !BoundBelow(x, xlo, q) {
		return false
	}
	return true
}
