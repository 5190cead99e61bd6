package floattheory

import (
	catsat "github.com/ianhorswill/catsat-go"
	"github.com/ianhorswill/catsat-go/interval"
)

// Variable is a bounded float value participating in ordering and
// arithmetic constraints (spec §3, "FloatVariable").
type Variable struct {
	Name   string
	Domain Domain

	// Condition, if non-nil, is the literal that must hold for this
	// variable to be defined in a given model (conditional existence).
	Condition *catsat.Literal

	// PickLast defers this variable's sampling until every variable it
	// might functionally depend on has already been sampled (spec
	// §4.4.2): variables that are themselves the result of an arithmetic
	// expression are marked PickLast so their bounds are as narrow as
	// possible before a value is chosen for them.
	PickLast bool

	bounds         interval.Interval
	solutionBounds interval.Interval
	predetermined  *float32

	parent *Variable // union-find parent; self if root
	rank   int

	constUpperBounds []constantBoundFact
	constLowerBounds []constantBoundFact

	lowerNeighbors []*Variable // w with w <= this
	upperNeighbors []*Variable // w with w >= this

	constraints       []Constraint
	activeConstraints []Constraint

	upperEnqueued, lowerEnqueued bool

	index int
}

// Find returns v's union-find representative, path-compressing as it
// walks (spec Design Notes §9).
func (v *Variable) Find() *Variable {
	root := v
	for root.parent != root {
		root = root.parent
	}
	for v != root {
		next := v.parent
		v.parent = root
		v = next
	}
	return root
}

// union merges the equivalence classes of a and b, intersecting their
// bounds domains. Returns false if the intersection is empty.
func union(a, b *Variable) bool {
	ra, rb := a.Find(), b.Find()
	if ra == rb {
		return true
	}
	if ra.rank < rb.rank {
		ra, rb = rb, ra
	}
	merged := ra.bounds.Intersect(rb.bounds)
	if merged.Empty() {
		return false
	}
	rb.parent = ra
	if ra.rank == rb.rank {
		ra.rank++
	}
	ra.bounds = merged
	ra.constUpperBounds = append(ra.constUpperBounds, rb.constUpperBounds...)
	ra.constLowerBounds = append(ra.constLowerBounds, rb.constLowerBounds...)
	ra.lowerNeighbors = append(ra.lowerNeighbors, rb.lowerNeighbors...)
	ra.upperNeighbors = append(ra.upperNeighbors, rb.upperNeighbors...)
	ra.activeConstraints = append(ra.activeConstraints, rb.activeConstraints...)
	return true
}

// resetForSolve resets v's per-solve state to the start of §4.4's
// pipeline: bounds from the (quantized) domain, or the predetermined
// point value if set; self-representative; cleared active-constraint and
// bound-fact lists (they are rebuilt from the current model on every
// Solve call).
func (v *Variable) resetForSolve() {
	if v.predetermined != nil {
		v.bounds = interval.Point(*v.predetermined)
	} else {
		v.bounds = v.Domain.interval()
	}
	v.parent = v
	v.rank = 0
	v.constUpperBounds = nil
	v.constLowerBounds = nil
	v.lowerNeighbors = nil
	v.upperNeighbors = nil
	v.activeConstraints = nil
	v.upperEnqueued = false
	v.lowerEnqueued = false
}

// BoundAbove tightens v's representative's upper bound to at most x,
// requantizing if the domain is quantized, and enqueues the change if
// it's new (spec §4.4.1). Returns whether the resulting bounds are still
// nonempty.
func BoundAbove(v *Variable, x float32, q *workQueue) bool {
	r := v.Find()
	if r.Domain.Quantization > 0 {
		x = interval.RoundDown(x, r.Domain.Quantization, r.Domain.Tolerance)
	}
	if x >= r.bounds.Hi {
		return !r.bounds.Empty()
	}
	r.bounds.Hi = x
	if q != nil {
		q.push(r, Upper)
	}
	return !r.bounds.Empty()
}

// BoundBelow is the symmetric counterpart of BoundAbove, tightening the
// lower bound.
func BoundBelow(v *Variable, x float32, q *workQueue) bool {
	r := v.Find()
	if r.Domain.Quantization > 0 {
		x = interval.RoundUp(x, r.Domain.Quantization, r.Domain.Tolerance)
	}
	if x <= r.bounds.Lo {
		return !r.bounds.Empty()
	}
	r.bounds.Lo = x
	if q != nil {
		q.push(r, Lower)
	}
	return !r.bounds.Empty()
}
