package catsat

import "fmt"

// MalformedProgramError reports a build-time misuse of the Problem API:
// asserting False, a constant rule head, a rule added after Solve
// finalized the program, or similar (spec §7).
type MalformedProgramError struct {
	Msg string
}

func (e *MalformedProgramError) Error() string {
	return fmt.Sprintf("catsat: malformed program: %s", e.Msg)
}

// NonTightProgramError reports a positive dependency cycle discovered by
// the tightness check (spec §4.1, §7).
type NonTightProgramError struct {
	Head interface{}
}

func (e *NonTightProgramError) Error() string {
	return fmt.Sprintf("catsat: program is not tight: cycle through %v", e.Head)
}

// CompileTimeUnsatError reports that constant folding or unit propagation
// derived a contradiction before any search began (spec §7).
type CompileTimeUnsatError struct {
	Reason string
}

func (e *CompileTimeUnsatError) Error() string {
	return fmt.Sprintf("catsat: unsatisfiable at compile time: %s", e.Reason)
}

// UnsatisfiableError reports that the WalkSAT search exhausted its
// budget (maxTries × maxFlips) without finding a model (spec §7). The
// Problem itself remains usable; callers may adjust parameters and
// retry.
type UnsatisfiableError struct {
	MaxTries, MaxFlips int
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("catsat: no solution found within %d tries x %d flips", e.MaxTries, e.MaxFlips)
}

// DomainError reports an arithmetic domain violation in a theory (e.g. a
// NaN bound, or a divisor whose domain is the constant 0), or, from
// Problem.Dimacs, a clause that plain DIMACS cannot represent.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("catsat: domain error: %s", e.Msg)
}
