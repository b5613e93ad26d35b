package dqcir

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/matrix"
)

// createAux allocates a fresh auxiliary variable, named the way the
// source this package is grounded on names them: "_aux_<hint>_<id>".
func (d *Document) createAux(hint string) ids.Var {
	v := d.Counter.Allocate()
	d.Names.Set(v, fmt.Sprintf("_aux_%s_%d", hint, v))
	return v
}

// Tseitin translates every gate definition in d into CNF clauses
// equisatisfiable with the combinational circuit they describe,
// returning a matrix whose output literal is the positive literal of
// the document's declared output gate. Gates are walked in ascending
// Var order so translation is deterministic.
func (d *Document) Tseitin() (*matrix.Matrix, error) {
	var clauses []matrix.Clause

	for _, v := range d.gatesInOrder() {
		g := d.gates[v]
		var err error
		switch g.typ {
		case gateAnd:
			clauses, err = tseitinAnd(clauses, v, g.inputs)
		case gateOr:
			clauses, err = tseitinOr(clauses, v, g.inputs)
		case gateXor:
			clauses, err = d.tseitinXor(clauses, v, g.inputs)
		default:
			err = errors.Errorf("unknown gate type for %s", d.Names.Name(v))
		}
		if err != nil {
			return nil, err
		}
	}

	return matrix.New(clauses, ids.Of(d.output, true)), nil
}

// tseitinAnd encodes v <-> (i1 & i2 & ... & in):
//   for each input i: (-v | i)
//   one clause:        (v | -i1 | -i2 | ... | -in)
func tseitinAnd(clauses []matrix.Clause, v ids.Var, inputs []input) ([]matrix.Clause, error) {
	vLit := ids.Of(v, true)
	wide := make(matrix.Clause, 0, len(inputs)+1)
	wide = append(wide, vLit)
	for _, in := range inputs {
		clauses = append(clauses, matrix.Clause{vLit.Negate(), in.lit()})
		wide = append(wide, in.lit().Negate())
	}
	clauses = append(clauses, wide)
	return clauses, nil
}

// tseitinOr encodes v <-> (i1 | i2 | ... | in):
//   for each input i: (v | -i)
//   one clause:        (-v | i1 | i2 | ... | in)
func tseitinOr(clauses []matrix.Clause, v ids.Var, inputs []input) ([]matrix.Clause, error) {
	vLit := ids.Of(v, true)
	wide := make(matrix.Clause, 0, len(inputs)+1)
	wide = append(wide, vLit.Negate())
	for _, in := range inputs {
		clauses = append(clauses, matrix.Clause{vLit, in.lit().Negate()})
		wide = append(wide, in.lit())
	}
	clauses = append(clauses, wide)
	return clauses, nil
}

// tseitinXor2 encodes v <-> (a XOR b) with the four standard clauses.
// The 0- and 1-input cases are handled by tseitinXor, not here: a
// 0-input XOR gate is definitionally false, a 1-input XOR gate is the
// identity.
func tseitinXor2(clauses []matrix.Clause, v ids.Var, a, b ids.Lit) []matrix.Clause {
	vLit := ids.Of(v, true)
	clauses = append(clauses,
		matrix.Clause{vLit.Negate(), a, b},
		matrix.Clause{vLit.Negate(), a.Negate(), b.Negate()},
		matrix.Clause{vLit, a.Negate(), b},
		matrix.Clause{vLit, a, b.Negate()},
	)
	return clauses
}

// tseitinXor encodes an n-ary XOR gate. Two inputs go straight to
// tseitinXor2; more than two are folded pairwise through fresh
// auxiliary variables, the same associative reduction the source this
// is grounded on performs via repeated two-input folding.
func (d *Document) tseitinXor(clauses []matrix.Clause, v ids.Var, inputs []input) ([]matrix.Clause, error) {
	switch len(inputs) {
	case 0:
		// Definitionally false: assert both unit clauses ruling out
		// either polarity being satisfiable is wrong; instead force v
		// false directly.
		clauses = append(clauses, matrix.Clause{ids.Of(v, false)})
		return clauses, nil
	case 1:
		lit := inputs[0].lit()
		vLit := ids.Of(v, true)
		clauses = append(clauses,
			matrix.Clause{vLit.Negate(), lit},
			matrix.Clause{vLit, lit.Negate()},
		)
		return clauses, nil
	case 2:
		return tseitinXor2(clauses, v, inputs[0].lit(), inputs[1].lit()), nil
	}

	acc := inputs[0].lit()
	for i := 1; i < len(inputs)-1; i++ {
		aux := d.createAux("xor")
		clauses = tseitinXor2(clauses, aux, acc, inputs[i].lit())
		acc = ids.Of(aux, true)
	}
	return tseitinXor2(clauses, v, acc, inputs[len(inputs)-1].lit()), nil
}
