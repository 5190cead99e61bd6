package catsat

import (
	"io"

	"github.com/ianhorswill/catsat-go/cnf"
)

// Dimacs finalizes the program and writes its compiled clause set in
// DIMACS CNF format (spec §6), for interchange with other SAT tooling.
// It only covers plain disjunctive clauses (Min=1, Max=0); a surviving
// generalized cardinality clause (e.g. from Exactly/AtMost/AtLeast with
// bounds DIMACS can't express) returns a DomainError rather than silently
// dropping or misrepresenting it.
func (p *Problem) Dimacs(w io.Writer) error {
	if err := p.finalize(); err != nil {
		return err
	}
	clauses := make([]cnf.Clause, 0, len(p.clauses))
	for _, c := range p.clauses {
		if len(c.Lits) == 0 {
			continue
		}
		if c.Min != 1 || c.Max != 0 {
			return &DomainError{Msg: "Dimacs: a generalized cardinality clause has no plain-DIMACS representation"}
		}
		lits := make([]int, len(c.Lits))
		for i, lit := range c.Lits {
			idx := lit.Prop.Index
			if !lit.Positive {
				idx = -idx
			}
			lits[i] = idx
		}
		clauses = append(clauses, lits)
	}
	return cnf.WriteDIMACS(w, clauses)
}
