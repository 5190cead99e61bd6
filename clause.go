package catsat

import "github.com/ianhorswill/catsat-go/walksat"

// clauseSpec is a generalized cardinality clause over Literals, as
// entered by the builder before constant folding and index compilation
// translate it into a walksat.Clause. Satisfied iff the number of true
// Lits lies in [Min, Max], Max==0 meaning "no upper bound" (spec §3).
type clauseSpec struct {
	Min, Max int
	Lits     []Literal
}

// foldConstants drops constant-true disjuncts (each always counts, so
// Min and a nonzero Max are lowered by one per such disjunct) and removes
// constant-false disjuncts (which can never contribute).
// It returns ok=false if the clause folds to an outright contradiction
// (e.g. an empty clause requiring at least one true disjunct).
func foldConstants(c clauseSpec) (folded clauseSpec, triviallyTrue bool, ok bool) {
	lits := make([]Literal, 0, len(c.Lits))
	min, max := c.Min, c.Max
	bounded := max > 0
	for _, lit := range c.Lits {
		if truth, isConst := lit.constFolds(); isConst {
			if truth {
				// A constant-true disjunct always contributes 1 to the
				// true count; the clause is satisfied regardless of the
				// rest iff that's compatible with [min,max] once every
				// other constant is also accounted for. We conservatively
				// fold it into the bookkeeping by decrementing both
				// bounds by one (it always counts) and dropping it.
				min--
				if bounded {
					max--
				}
				continue
			}
			// Constant-false disjuncts never contribute; just drop them.
			continue
		}
		lits = append(lits, lit)
	}
	if bounded && max <= 0 {
		// The constants already use up the upper bound (Max==0 would read
		// as "no upper bound"), so every remaining disjunct must be false.
		if max < 0 || min > 0 {
			return clauseSpec{}, false, false
		}
		if len(lits) == 0 {
			return clauseSpec{}, true, true
		}
		negated := make([]Literal, len(lits))
		for i, lit := range lits {
			negated[i] = lit.Negate()
		}
		return clauseSpec{Min: len(negated), Max: len(negated), Lits: negated}, false, true
	}
	if min <= 0 && (max == 0 || max >= len(lits)) {
		return clauseSpec{}, true, true
	}
	if min < 0 {
		min = 0
	}
	if max != 0 && max < min {
		return clauseSpec{}, false, false
	}
	if min > len(lits) {
		return clauseSpec{}, false, false
	}
	return clauseSpec{Min: min, Max: max, Lits: lits}, false, true
}

// compile converts a folded clauseSpec (no remaining constant literals)
// into a walksat.Clause of signed 1-based variable indices.
func (c clauseSpec) compile() walksat.Clause {
	wl := make([]walksat.Lit, len(c.Lits))
	for i, lit := range c.Lits {
		idx := int32(lit.Prop.Index)
		if !lit.Positive {
			idx = -idx
		}
		wl[i] = walksat.Lit(idx)
	}
	return walksat.Clause{Min: c.Min, Max: c.Max, Lits: wl}
}
