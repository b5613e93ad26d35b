package dqbf

import "github.com/fslivovsky/pedantic/internal/ids"

// EquivalenceClasses groups existentials for the --detect-equiv
// surface. Per spec.md §9's first Open Question, the source this
// repository is grounded on groups existentials by dependency-set
// size but never actually performs the SAT-based equivalence check
// its own comments promise — every existential ends up in its own
// singleton class. This repository preserves that exact behavior
// rather than guessing at the intended check: implementers are told
// explicitly not to guess here.
func (c *Controller) EquivalenceClasses() [][]ids.Var {
	classes := make([][]ids.Var, 0, len(c.order))
	for _, v := range c.order {
		classes = append(classes, []ids.Var{v})
	}
	return classes
}
