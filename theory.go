package catsat

// Theory is the contract a theory solver (e.g. package floattheory)
// implements to extend boolean models with non-boolean values (spec
// §4.5). A Problem may have any number of registered theories; all are
// consulted, in registration order, on every candidate boolean model.
type Theory interface {
	// Preprocess runs once, before the first Solve, and may add clauses
	// to p (e.g. the float theory's constant-bound transitivity clauses).
	Preprocess(p *Problem) error

	// PropagatePredetermined is called after Preprocess, before search
	// begins, so a theory can fold further propositions to constants from
	// ones already pinned (e.g. a bound on a variable with a
	// predetermined value becomes a forced constant itself).
	PropagatePredetermined(p *Problem) error

	// Solve is called with a candidate boolean model; it should try to
	// extend that model with consistent theory values and report whether
	// it succeeded. A false return sends the boolean search back to
	// flipping rather than restarting.
	Solve(s *Solution) bool
}
