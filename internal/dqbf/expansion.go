package dqbf

import (
	"sort"
	"strconv"
	"strings"

	"github.com/fslivovsky/pedantic/internal/ids"
)

// cacheKey identifies an (existential, canonicalized partial universal
// assignment) pair. canonical is the premise sorted by ascending
// Var, per spec.md §4.4.
type cacheKey struct {
	existential ids.Var
	canonical   string // encoded premise, suitable as a map key
}

func canonicalize(premise []ids.Lit) []ids.Lit {
	sorted := append([]ids.Lit(nil), premise...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Var() < sorted[j].Var() })
	return sorted
}

func encodeKey(lits []ids.Lit) string {
	var b strings.Builder
	for i, l := range lits {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(l)))
	}
	return b.String()
}

// expansionVariable returns the dedicated propositional variable for
// (v, premise), allocating it (and the rule that installs it) on
// first request. Subsequent lookups for the same canonicalized pair
// return the same variable and add no new clauses (spec.md §4.4 I4,
// P2).
func (c *Controller) expansionVariable(v ids.Var, premise []ids.Lit) ids.Var {
	st, ok := c.existentials[v]
	if !ok {
		panic(&InvariantViolation{Reason: "expansionVariable called for unregistered existential"})
	}
	for _, lit := range premise {
		if !st.existential.DependsOn(lit.Var()) {
			panic(&InvariantViolation{Reason: "expansion cache premise references a universal outside deps(e)"})
		}
	}

	canonical := canonicalize(premise)
	key := cacheKey{existential: v, canonical: encodeKey(canonical)}
	if x, ok := c.cache[key]; ok {
		return x
	}

	x := c.counter.Allocate()
	if c.names != nil {
		var b strings.Builder
		b.WriteString("exp_")
		b.WriteString(c.names.Name(v))
		for _, lit := range canonical {
			b.WriteByte('_')
			b.WriteString(strconv.Itoa(int(lit.Var())))
			if lit.Positive() {
				b.WriteByte('T')
			} else {
				b.WriteByte('F')
			}
		}
		c.names.Set(x, b.String())
	}

	c.cache[key] = x
	c.addRule(v, premise, true, x)
	c.expansionOrder = append(c.expansionOrder, x)

	return x
}
