package gochroma

import "context"

// A Lit is a 1-based signed literal over the variables of a [Backend]:
// positive for the variable itself, negative for its negation. Lit 0 is
// never valid.
type Lit int32

// Var returns the 1-based variable underlying l.
func (l Lit) Var() int { return int(abs32(int32(l))) }

// Negate returns ¬l.
func (l Lit) Negate() Lit { return -l }

// IsPositive reports whether l is a positive (unnegated) literal.
func (l Lit) IsPositive() bool { return l > 0 }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Status is the outcome of a [Backend.Solve] call.
type Status int

const (
	// Unknown indicates the backend gave up (timeout, resource limit, or
	// an unsupported incremental reuse). Surfaced as [ErrBackend].
	Unknown Status = iota
	Sat
	Unsat
)

// A Result is what [Backend.Solve] returns.
type Result struct {
	Status Status
	// Model holds the sign of every variable 1..NumVars, indexed 1-based
	// (Model[0] is unused); only meaningful when Status == Sat.
	Model []bool
	// Core holds a subset of the assumptions sufficient to explain
	// unsatisfiability, when the backend can produce one. May be nil even
	// when Status == Unsat.
	Core []Lit
}

// A PropagatorBackend is a [Backend] that can hold an attached propagator
// check: a callback run against every satisfying model before Solve
// returns it, so an external propagator participates in each solve. Only
// [LogicBackend] has this capability, which is why configuration
// validation refuses the Glucose slot for the Zykov encoding.
type PropagatorBackend interface {
	Backend

	// ConnectPropagator attaches check; passing nil detaches it. A check
	// error fails the Solve call and is returned from it unchanged.
	ConnectPropagator(check func(model []bool) error)
}

// A Backend is the uniform SAT interface the encoders and the k-search
// driver are written against. Two concrete backends are provided:
// [NewGophersatBackend] (non-incremental, wraps crillab/gophersat) and
// [NewLogicBackend] (incremental, wraps xDarkicex/logic/sat). Both
// implement Backend.
type Backend interface {
	// NewVars allocates n fresh variables and returns the first one's
	// index; the allocated range is [first, first+n).
	NewVars(n int) (first int)

	// AddClause adds a clause (disjunction of lits) to the problem. Valid
	// between solves for incremental backends; for non-incremental
	// backends it is only valid before the first [Backend.Solve] call
	// after construction or [Backend.Reset].
	AddClause(lits ...Lit) error

	// Assume pins lits for the next [Backend.Solve] call only.
	Assume(lits ...Lit)

	// Solve runs the SAT search under the clauses added so far and the
	// current assumptions (which are consumed whether or not Solve
	// succeeds).
	Solve(ctx context.Context) (Result, error)

	// Incremental reports whether AddClause may be called again after a
	// Solve, without an intervening Reset.
	Incremental() bool

	// Reset discards all clauses, variables, and assumptions, returning
	// the backend to its just-constructed state.
	Reset()

	// NumVars returns the number of variables allocated so far.
	NumVars() int
}
