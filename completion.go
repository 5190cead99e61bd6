package catsat

// completeRules performs Clark completion over every proposition that
// has at least one asserted rule body, per spec §4.1. Must run after the
// tightness check (which needs the raw rule bodies) and before clause
// compilation.
func (p *Problem) completeRules() error {
	// Snapshot the proposition list: completion may intern fresh
	// justification propositions, which must not themselves be visited
	// for completion.
	heads := p.props[:len(p.props)]
	for _, prop := range heads {
		if len(prop.ruleBodies) == 0 {
			continue
		}
		anyTrue := false
		remaining := make([][]Literal, 0, len(prop.ruleBodies))
		for _, body := range prop.ruleBodies {
			allConstTrue := true
			anyConstFalse := false
			for _, lit := range body {
				truth, isConst := lit.constFolds()
				if isConst {
					if !truth {
						anyConstFalse = true
					}
				} else {
					allConstTrue = false
				}
			}
			if anyConstFalse {
				continue
			}
			if allConstTrue {
				anyTrue = true
				break
			}
			remaining = append(remaining, body)
		}
		switch {
		case anyTrue:
			if err := p.Assert(Pos(prop)); err != nil {
				return err
			}
		case len(remaining) == 0:
			if err := p.Assert(Neg(prop)); err != nil {
				return err
			}
		case len(remaining) == 1:
			if err := p.AssertBiconditional(Pos(prop), remaining[0]...); err != nil {
				return err
			}
		default:
			if err := p.completeMultipleBodies(prop, remaining); err != nil {
				return err
			}
		}
	}
	return nil
}

// completeMultipleBodies handles a head with more than one surviving
// rule body: forward implications for each, plus a completion clause
// ¬head ∨ j1 ∨ … ∨ jm where each ji is the body itself (if a single
// literal) or a fresh justification proposition equivalent to it.
func (p *Problem) completeMultipleBodies(head *Proposition, bodies [][]Literal) error {
	justs := make([]Literal, 0, len(bodies))
	for i, body := range bodies {
		if err := p.AssertImplication(Pos(head), body...); err != nil {
			return err
		}
		if len(body) == 1 {
			justs = append(justs, body[0])
			continue
		}
		jProp := p.GetProposition(Call{Fn: "justifies", Args: []interface{}{head.Key, i}})
		if err := p.AssertBiconditional(Pos(jProp), body...); err != nil {
			return err
		}
		justs = append(justs, Pos(jProp))
	}
	lits := make([]Literal, 0, len(justs)+1)
	lits = append(lits, Neg(head))
	lits = append(lits, justs...)
	return p.AddClause(1, 0, lits...)
}

// checkTight depth-first-searches the head→positive-dependency graph
// over every proposition with rule bodies, coloring nodes unvisited (0),
// pending (1), or complete (2). Revisiting a pending node means the
// program has a positive cycle and is not tight (spec §4.1).
func (p *Problem) checkTight() error {
	if !p.opts.tight {
		return nil
	}
	color := make([]int8, len(p.props)+1)
	var visit func(idx int) error
	visit = func(idx int) error {
		switch color[idx] {
		case 2:
			return nil
		case 1:
			return &NonTightProgramError{Head: p.props[idx-1].Key}
		}
		color[idx] = 1
		prop := p.props[idx-1]
		for dep := range prop.positiveDeps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[idx] = 2
		return nil
	}
	for _, prop := range p.props {
		if len(prop.ruleBodies) == 0 {
			continue
		}
		if err := visit(prop.Index); err != nil {
			return err
		}
	}
	return nil
}

// unitPropagate iterates normal disjunctions (clauses with Min=1, Max=0)
// to a fixpoint: whenever exactly one disjunct isn't already folded
// false, that literal is asserted (its proposition becomes a constant of
// the literal's polarity). Contradictions
// abort with CompileTimeUnsatError (spec §4.1).
func (p *Problem) unitPropagate() error {
	changed := true
	for changed {
		changed = false
		for i, c := range p.clauses {
			folded, trivial, ok := foldConstants(c)
			if !ok {
				return &CompileTimeUnsatError{Reason: "unit propagation derived a contradiction"}
			}
			if trivial {
				p.clauses[i] = clauseSpec{}
				continue
			}
			p.clauses[i] = folded
			if folded.Min == 1 && folded.Max == 0 && len(folded.Lits) == 1 {
				if err := p.Assert(folded.Lits[0]); err != nil {
					return err
				}
				changed = true
			}
		}
	}
	filtered := p.clauses[:0]
	for _, c := range p.clauses {
		if len(c.Lits) == 0 && c.Min == 0 && c.Max == 0 {
			continue
		}
		filtered = append(filtered, c)
	}
	p.clauses = filtered
	return nil
}
