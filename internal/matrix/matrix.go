// Package matrix holds the propositional body of a DQBF instance,
// after Tseitin translation into CNF. It has no dependency on the
// solver core; it is the shape the parser hands to it.
package matrix

import "github.com/fslivovsky/pedantic/internal/ids"

// Clause is a disjunction of literals.
type Clause []ids.Lit

// Matrix is the immutable set of clauses over original and
// Tseitin-auxiliary variables, plus the designated output gate
// literal. The matrix is satisfied iff Output evaluates to true.
type Matrix struct {
	Clauses []Clause
	Output  ids.Lit
}

// New returns a Matrix over the given clauses with the given output
// literal.
func New(clauses []Clause, output ids.Lit) *Matrix {
	return &Matrix{Clauses: clauses, Output: output}
}
