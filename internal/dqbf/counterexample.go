package dqbf

import (
	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/sat"
)

// counterexamplePair is the (universal assignment, existential core)
// pair a counterexample query returns, cached for cycle detection
// (spec.md §4.7 step 4, §8 P6).
type counterexamplePair struct {
	universals   []ids.Lit
	existentials []ids.Lit
}

func sameLits(a, b []ids.Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *counterexamplePair) equal(q *counterexamplePair) bool {
	return sameLits(p.universals, q.universals) && sameLits(p.existentials, q.existentials)
}

// queryAssumptions replays the assumption set spec.md §4.5 says must
// accompany every counterexample query: the permanent conclusion
// literals, the current tail fire var and (possibly signed) tail value
// var for every existential, and the current expansion-blocker hint.
// It does not assume the negated output; detectCounterexample adds
// that itself, and extractModel omits it. Phase-hints the last
// observed universal assignment as a warm start.
func (c *Controller) queryAssumptions() {
	c.counterexample.Assume(c.permanentAssumptions...)
	for _, v := range c.order {
		st := c.existentials[v]
		c.counterexample.Assume(ids.Of(st.fireVar, true))
	}
	for _, v := range c.order {
		st := c.existentials[v]
		c.counterexample.Assume(st.currentValueLit())
	}
	c.counterexample.Assume(c.expansionHint...)
	for _, lit := range c.lastUniversal {
		c.counterexample.Phase(lit)
	}
}

func (c *Controller) existentialVars() []ids.Var {
	vars := make([]ids.Var, len(c.order))
	copy(vars, c.order)
	return vars
}

// detectCounterexample implements spec.md §4.5: it queries the
// counterexample instance for a universal assignment that falsifies
// the current candidate, then re-solves to minimize the existential
// literals that actually forced the falsification. Returns ok=false
// when no such assignment exists (the candidate is valid).
func (c *Controller) detectCounterexample() (*counterexamplePair, bool, error) {
	c.counterexample.Assume(c.output.Negate())
	c.queryAssumptions()

	switch c.counterexample.Solve() {
	case sat.UNSAT:
		return nil, false, nil
	case sat.SAT:
	default:
		return nil, false, &OracleFailure{Context: "counterexample query"}
	}

	universalValues := c.counterexample.Values(c.universals)
	existentialValues := c.counterexample.Values(c.existentialVars())

	c.counterexample.Assume(universalValues...)
	c.counterexample.Assume(existentialValues...)
	c.counterexample.Assume(c.output)
	switch c.counterexample.Solve() {
	case sat.UNSAT:
	case sat.SAT:
		return nil, false, &InvariantViolation{Reason: "counterexample verification re-solve returned SAT, expected UNSAT"}
	default:
		return nil, false, &OracleFailure{Context: "counterexample verification"}
	}

	core := c.counterexample.Failed(existentialValues)

	return &counterexamplePair{universals: universalValues, existentials: core}, true, nil
}

// refine implements spec.md §4.7 step 5-6: for each existential
// literal in the counterexample core, install (or reuse) an expansion
// variable keyed on the counterexample's universal assignment
// restricted to that existential's dependencies, flip its default
// polarity to the opposite of what the counterexample forced, and
// collect a blocking clause over expansion variables that the next
// expansion-blocker solve must satisfy differently.
func (c *Controller) refine(core *counterexamplePair) error {
	blocking := make([]ids.Lit, 0, len(core.existentials))

	for _, lit := range core.existentials {
		v := lit.Var()
		st, ok := c.existentials[v]
		if !ok {
			return &InvariantViolation{Reason: "counterexample core references an unregistered existential"}
		}

		premise := make([]ids.Lit, 0, len(st.existential.Deps))
		for _, u := range core.universals {
			if st.existential.DependsOn(u.Var()) {
				premise = append(premise, u)
			}
		}

		x := c.expansionVariable(v, premise)
		c.setDefault(v, !lit.Positive())

		blocking = append(blocking, ids.Of(x, !lit.Positive()))
	}

	c.expansion.AddClause(blocking...)
	return nil
}
