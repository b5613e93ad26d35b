package dqbf

import (
	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/sat"
)

// extractModel implements spec.md §4.8: for each of the 2^|universals|
// total universal assignments, solve the counterexample instance with
// the standard assumption set minus the negated-output assumption,
// plus the fixed universal assignment, and read back the induced
// existential tuple. Any UNSAT result here is a ModelExtractionFailure
// — the CEGAR loop's SAT exit guarantees SAT for every assignment.
func (c *Controller) extractModel() ([]ModelRow, error) {
	n := len(c.universals)
	total := 1 << n
	rows := make([]ModelRow, 0, total)

	for i := 0; i < total; i++ {
		assignment := make([]ids.Lit, n)
		for j, v := range c.universals {
			assignment[j] = ids.Of(v, (i>>j)&1 == 1)
		}

		c.queryAssumptions()
		c.counterexample.Assume(assignment...)

		switch c.counterexample.Solve() {
		case sat.SAT:
		case sat.UNSAT:
			ints := make([]int, n)
			for j, lit := range assignment {
				ints[j] = int(lit)
			}
			return nil, &ModelExtractionFailure{Assignment: ints}
		default:
			return nil, &OracleFailure{Context: "model extraction"}
		}

		existentialValues := c.counterexample.Values(c.existentialVars())
		rows = append(rows, ModelRow{Universals: assignment, Existentials: existentialValues})
	}

	return rows, nil
}
