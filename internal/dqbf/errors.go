package dqbf

import "fmt"

// InvariantViolation signals a programmer error: an existential
// referenced before it was registered, a premise reaching outside
// deps(e), set_default called before init_model, or an internal
// verification re-solve returning something other than UNSAT. It is
// always fatal.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Reason)
}

// CycleDetected signals that two successive CEGAR iterations produced
// an identical (universal assignment, existential core) pair, meaning
// refinement made no progress.
type CycleDetected struct {
	Iteration int
}

func (e *CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected at iteration %d: refinement repeated the previous counterexample", e.Iteration)
}

// ModelExtractionFailure signals that the Model Extractor hit UNSAT
// while reading back existential values for some universal
// assignment, after the CEGAR loop had already reported SAT. This
// indicates a bug in the encoding or the oracle.
type ModelExtractionFailure struct {
	Assignment []int
}

func (e *ModelExtractionFailure) Error() string {
	return fmt.Sprintf("model extraction failed for universal assignment %v: expected SAT, got UNSAT", e.Assignment)
}

// OracleFailure signals that a SAT oracle returned neither SAT nor
// UNSAT.
type OracleFailure struct {
	Context string
}

func (e *OracleFailure) Error() string {
	return fmt.Sprintf("oracle returned an indeterminate result: %s", e.Context)
}
