package dqbf

import (
	"strconv"

	"github.com/fslivovsky/pedantic/internal/ids"
)

// initModel allocates the three "current tail" variables for e and
// asserts the base clauses of spec.md §4.3: no rule has fired through
// position 0, and the default branch binds e to its initial value
// variable whenever the default rule (kept assumed true at every
// counterexample query) is the one to fire.
func (c *Controller) initModel(v ids.Var) {
	st, ok := c.existentials[v]
	if !ok {
		panic(&InvariantViolation{Reason: "initModel called for unregistered existential"})
	}

	valueVar := c.counter.Allocate()
	noFiredVar := c.counter.Allocate()
	fireVar := c.counter.Allocate()

	st.valueVar = valueVar
	st.valueSign = true
	st.noFiredVar = noFiredVar
	st.fireVar = fireVar
	st.ruleCount = 1

	if c.names != nil {
		base := c.names.Name(v)
		c.names.Set(valueVar, base+"_value_1")
		c.names.Set(noFiredVar, base+"_nofired_0")
		c.names.Set(fireVar, base+"_fire_1")
	}

	c.counterexample.AddClause(ids.Of(noFiredVar, true))

	c.counterexample.AddClause(
		ids.Of(noFiredVar, false), ids.Of(fireVar, false),
		ids.Of(v, false), ids.Of(valueVar, true))
	c.counterexample.AddClause(
		ids.Of(noFiredVar, false), ids.Of(fireVar, false),
		ids.Of(v, true), ids.Of(valueVar, false))
}

// setDefault flips the polarity the tail default branch asserts for
// e's value var, per spec.md §4.3 "Set default value". Panics with an
// InvariantViolation if e has not been initialized, matching
// original_source's "Variable not initialized" check.
func (c *Controller) setDefault(v ids.Var, b bool) {
	st, ok := c.existentials[v]
	if !ok || st.valueVar == 0 {
		panic(&InvariantViolation{Reason: "setDefault called before initModel"})
	}
	st.valueSign = b
}

// addRule appends a new rule to e's decision list: it fires when
// premise holds and no earlier rule fired, and then forces e to equal
// the fixed Boolean conclusion, or (when valueVar != 0) to equal
// valueVar. It returns nothing; the new tail pointers are stored in
// e's existentialState.
func (c *Controller) addRule(v ids.Var, premise []ids.Lit, conclusion bool, valueVar ids.Var) {
	st, ok := c.existentials[v]
	if !ok || st.valueVar == 0 {
		panic(&InvariantViolation{Reason: "addRule called before initModel"})
	}
	for _, lit := range premise {
		if !st.existential.DependsOn(lit.Var()) {
			panic(&InvariantViolation{Reason: "premise references a universal outside deps(e)"})
		}
	}

	prevNoFired := st.noFiredVar
	thisFire := st.fireVar
	thisValue := st.valueVar

	st.ruleCount++
	ruleNum := st.ruleCount

	nextFire := c.counter.Allocate()
	thisNoFired := c.counter.Allocate()
	nextValue := c.counter.Allocate()

	st.fireVar = nextFire
	st.noFiredVar = thisNoFired
	st.valueVar = nextValue
	st.valueSign = true

	if c.names != nil {
		base := c.names.Name(v)
		c.names.Set(nextFire, base+"_fire_"+strconv.Itoa(ruleNum))
		c.names.Set(thisNoFired, base+"_nofired_"+strconv.Itoa(ruleNum-1))
		c.names.Set(nextValue, base+"_value_"+strconv.Itoa(ruleNum))
	}

	// (1) thisFire <-> (AND premise) AND prevNoFired.
	for _, lit := range premise {
		c.counterexample.AddClause(ids.Of(thisFire, false), lit)
	}
	c.counterexample.AddClause(ids.Of(thisFire, false), ids.Of(prevNoFired, true))
	reverse := make([]ids.Lit, 0, len(premise)+2)
	reverse = append(reverse, ids.Of(thisFire, true))
	for _, lit := range premise {
		reverse = append(reverse, lit.Negate())
	}
	reverse = append(reverse, ids.Of(prevNoFired, false))
	c.counterexample.AddClause(reverse...)

	// (2) thisNoFired <-> prevNoFired AND NOT thisFire.
	c.counterexample.AddClause(ids.Of(thisNoFired, false), ids.Of(prevNoFired, true))
	c.counterexample.AddClause(ids.Of(thisNoFired, false), ids.Of(thisFire, false))
	c.counterexample.AddClause(ids.Of(thisNoFired, true), ids.Of(prevNoFired, false), ids.Of(thisFire, true))

	// (3) successor default branch: when reached, e <-> nextValue.
	c.counterexample.AddClause(
		ids.Of(nextFire, false), ids.Of(thisNoFired, false),
		ids.Of(v, false), ids.Of(nextValue, true))
	c.counterexample.AddClause(
		ids.Of(nextFire, false), ids.Of(thisNoFired, false),
		ids.Of(v, true), ids.Of(nextValue, false))

	// (4) conclusion linkage.
	thisValueLit := ids.Of(thisValue, conclusion)
	if valueVar == 0 {
		c.permanentAssumptions = append(c.permanentAssumptions, thisValueLit)
	} else {
		c.counterexample.AddClause(ids.Of(thisValue, false), ids.Of(valueVar, true))
		c.counterexample.AddClause(ids.Of(thisValue, true), ids.Of(valueVar, false))
	}

	st.rules = append(st.rules, rule{
		premise:    append([]ids.Lit(nil), premise...),
		hasValue:   valueVar == 0,
		conclusion: conclusion,
		valueVar:   valueVar,
		fireVar:    thisFire,
		noFiredVar: prevNoFired,
	})
}

