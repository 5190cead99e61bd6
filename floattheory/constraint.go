package floattheory

// Constraint is a functional constraint result = f(args): a theory-level
// relation that narrows bounds bidirectionally whenever any participant
// changes (spec §4.4.3). Solver.Solve activates a constraint for a model
// only when all of its participants are defined (condition true /
// unconditional).
type Constraint interface {
	// Propagate is invoked when changed's `which` bound has just
	// tightened; it should narrow every other participant it can, using
	// BoundAbove/BoundBelow, and report false if that drives any
	// participant's bounds empty.
	Propagate(changed *Variable, which Side, q *workQueue) bool

	// Vars lists every variable this constraint relates, for attaching it
	// to each participant's constraint list at registration time.
	Vars() []*Variable
}

// attach registers c on every variable it relates, so propagation on any
// one of them finds its way back to c.
func attach(c Constraint) {
	for _, v := range c.Vars() {
		v.constraints = append(v.constraints, c)
	}
}
