package catsat

import (
	"fmt"
	"strings"
)

// Call is a structured proposition key: a function symbol applied to an
// ordered argument tuple, e.g. Call{"rook", []interface{}{3, 5}} for the
// proposition named rook(3,5). Two Calls with the same Fn and
// elementwise-equal Args name the same proposition, mirroring the
// function-symbol-plus-argument-tuple key scheme described for predicate
// factories.
type Call struct {
	Fn   string
	Args []interface{}
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Fn)
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", a)
	}
	b.WriteByte(')')
	return b.String()
}

// cacheKey returns a string uniquely identifying key for interning
// purposes. Plain strings and Calls get disjoint prefixes so a bare
// string key can never collide with a Call's rendering.
func cacheKey(key interface{}) string {
	switch k := key.(type) {
	case string:
		return "s\x1f" + k
	case Call:
		return "c\x1f" + k.String()
	default:
		return fmt.Sprintf("o\x1f%v", k)
	}
}

// Proposition is an interned boolean variable. Index is its 1-based
// position in the problem's variable list; index 0 is reserved for the
// True/False constants and is never assigned to a user proposition.
type Proposition struct {
	Key   interface{}
	Index int

	// constValue is 0 if Index is an ordinary free proposition, +1 if it
	// has been folded to the constant True, -1 if folded to False (either
	// because it's the Problem's True/False singleton, or because Assert
	// pinned an ordinary proposition to a fixed polarity).
	constValue int8

	// conjunctionDefined is set the first time And(...) defines this
	// proposition's biconditional, so repeated calls with the same
	// memoized key don't re-assert it.
	conjunctionDefined bool

	// ruleBodies holds each asserted rule body for this head, as a
	// conjunction of literals, awaiting Clark completion.
	ruleBodies [][]Literal

	// positiveDeps is the set (by index) of propositions that appear
	// positively in some rule body for this head; used by both the
	// tightness check and the float theory's "dependency" marker.
	positiveDeps map[int]struct{}

	// isDependency is set on a proposition the first time it appears
	// positively in some other proposition's rule body — the "dependency"
	// marker used by the float theory's complementary constant-bound rule
	// (spec §4.4 step 4, §9's open-question resolution).
	isDependency bool
}

// IsDependency reports whether p has ever appeared positively in another
// proposition's rule body.
func (p *Proposition) IsDependency() bool { return p.isDependency }

func (p *Proposition) String() string {
	if p.Index == 0 {
		if p.constValue >= 0 {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%v", p.Key)
}

// IsConstant reports whether p has been folded to True or False.
func (p *Proposition) IsConstant() bool { return p.Index == 0 || p.constValue != 0 }

// addDependency records dep as a positive dependency of p's rule heads,
// the same marker the tightness checker walks (spec's Design Notes §9).
func (p *Proposition) addDependency(dep *Proposition) {
	if p.positiveDeps == nil {
		p.positiveDeps = make(map[int]struct{})
	}
	p.positiveDeps[dep.Index] = struct{}{}
	dep.isDependency = true
}

// A Literal is a proposition together with a polarity: Positive true
// means the proposition asserted as-is, false means its negation.
type Literal struct {
	Prop     *Proposition
	Positive bool
}

// Pos returns the positive literal for prop.
func Pos(prop *Proposition) Literal { return Literal{Prop: prop, Positive: true} }

// Neg returns the negative literal for prop.
func Neg(prop *Proposition) Literal { return Literal{Prop: prop, Positive: false} }

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return Literal{Prop: l.Prop, Positive: !l.Positive} }

func (l Literal) String() string {
	if l.Positive {
		return l.Prop.String()
	}
	return "¬" + l.Prop.String()
}

// constFolds reports whether l is a reference to a folded constant, and
// if so, its truth value.
func (l Literal) constFolds() (value bool, isConst bool) {
	if !l.Prop.IsConstant() {
		return false, false
	}
	truth := l.Prop.constValue >= 0
	if !l.Positive {
		truth = !truth
	}
	return truth, true
}

// GetProposition interns and returns the proposition for key, creating it
// (with a fresh index) on first lookup. Constants are never produced by
// GetProposition: use Problem.True / Problem.False for those.
func (p *Problem) GetProposition(key interface{}) *Proposition {
	ck := cacheKey(key)
	if prop, ok := p.propsByKey[ck]; ok {
		return prop
	}
	prop := &Proposition{Key: key, Index: len(p.props) + 1}
	p.props = append(p.props, prop)
	p.propsByKey[ck] = prop
	p.growClauseLists()
	return prop
}

// Proposition returns the proposition with the given 1-based index, or
// nil if index is out of range. Intended for theory solvers that track
// propositions by index.
func (p *Problem) Proposition(index int) *Proposition {
	if index < 1 || index > len(p.props) {
		return nil
	}
	return p.props[index-1]
}

// Predicate returns a factory function that interns a Call{name, args}
// proposition and returns its positive literal, the idiom the builder
// uses for rook(i,j)-style relations (spec §6).
func (p *Problem) Predicate(name string) func(args ...interface{}) Literal {
	return func(args ...interface{}) Literal {
		return Pos(p.GetProposition(Call{Fn: name, Args: args}))
	}
}
