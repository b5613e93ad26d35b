// Package sat defines the abstract incremental CNF SAT oracle the
// DQBF core is built on. The core never assumes anything about a
// concrete implementation beyond this contract — in particular it
// does not rely on any learning or restart behavior beyond the
// primitives below, and it treats Phase purely as a best-effort hint.
package sat

import "github.com/fslivovsky/pedantic/internal/ids"

// Status is the result of a Solve call.
type Status int

const (
	// Unknown is never returned by a correct Oracle; it exists so
	// callers can detect a non-{SAT,UNSAT} result as an
	// OracleFailure rather than silently misinterpreting it.
	Unknown Status = iota
	SAT
	UNSAT
)

// Oracle is an incremental CNF SAT solver with assumptions and
// failed-assumption core extraction. Two independent instances are
// used by the DQBF core: one for the counterexample detector, one for
// the expansion blocker.
type Oracle interface {
	// AddClause adds a clause to the database. Monotonic: clauses are
	// never retracted.
	AddClause(lits ...ids.Lit)

	// Assume holds the given literals for the next Solve call only.
	Assume(lits ...ids.Lit)

	// Phase hints that the next search should try l's polarity
	// first. Best-effort: an Oracle that ignores this must still be
	// correct.
	Phase(l ids.Lit)

	// Solve runs the search under the assumptions accumulated via
	// Assume since the last Solve call, then discards them.
	Solve() Status

	// Value returns the signed literal for v in the most recent
	// satisfying assignment.
	Value(v ids.Var) ids.Lit

	// Values is the vectorized form of Value.
	Values(vs []ids.Var) []ids.Lit

	// Failed returns the subset of lits that participated in the
	// unsatisfiable core of the most recent UNSAT result. Only valid
	// to call after Solve returns UNSAT with lits among (a subset of)
	// the literals assumed for that call.
	Failed(lits []ids.Lit) []ids.Lit
}
