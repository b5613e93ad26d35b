// Package ids provides the variable/literal types shared by the DQBF
// parser and solver, and the monotonic counter that allocates fresh
// propositional variable identifiers for both.
package ids

import "fmt"

// Var is a propositional variable identifier. Identifiers are global
// and monotonic: original formula variables (universals, existentials,
// gate outputs, Tseitin auxiliaries) and core-allocated encoding
// variables (value vars, rule-fire vars, no-rule-fired vars, expansion
// vars) share one identifier space, but no caller ever reuses one.
type Var int32

// Lit is a signed literal over a Var: the absolute value names the
// variable, the sign its polarity.
type Lit int32

// Of builds the literal naming v with the given polarity.
func Of(v Var, positive bool) Lit {
	if positive {
		return Lit(v)
	}
	return Lit(-v)
}

// Var returns the variable named by l, irrespective of polarity.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

// Positive reports whether l asserts its variable true.
func (l Lit) Positive() bool {
	return l > 0
}

// Negate returns the literal with the opposite polarity.
func (l Lit) Negate() Lit {
	return -l
}

func (l Lit) String() string {
	if l < 0 {
		return fmt.Sprintf("-%d", -l)
	}
	return fmt.Sprintf("%d", l)
}

// Counter is a monotonic source of fresh Vars, initialized to the
// maximum identifier already in use by the matrix and the name table
// supplied at construction. It is shared between the parser and the
// core so that identifiers allocated by either side never collide;
// the parser completes all of its allocations before the core is
// constructed from its output, so no interleaving is possible.
type Counter struct {
	next Var
}

// NewCounter returns a Counter whose first Allocate call yields
// max+1.
func NewCounter(max Var) *Counter {
	return &Counter{next: max}
}

// Allocate returns a Var one greater than any previously allocated or
// supplied to NewCounter.
func (c *Counter) Allocate() Var {
	c.next++
	return c.next
}

// Peek returns the highest Var allocated so far (or the seed value if
// Allocate has not yet been called), without allocating.
func (c *Counter) Peek() Var {
	return c.next
}

// Names is a diagnostic-only name table. Nothing in the solver's
// correctness depends on its contents; implementations are free to
// skip populating it in a release build.
type Names struct {
	byVar  map[Var]string
	byName map[string]Var
}

// NewNames returns an empty name table.
func NewNames() *Names {
	return &Names{byVar: make(map[Var]string), byName: make(map[string]Var)}
}

// Set records name as the diagnostic label for v, overwriting any
// previous label.
func (n *Names) Set(v Var, name string) {
	n.byVar[v] = name
}

// Name returns the label for v, or a synthetic "var<N>" label if none
// was recorded.
func (n *Names) Name(v Var) string {
	if name, ok := n.byVar[v]; ok {
		return name
	}
	return fmt.Sprintf("var%d", v)
}

// Lookup returns the Var registered under name, if any.
func (n *Names) Lookup(name string) (Var, bool) {
	v, ok := n.byName[name]
	return v, ok
}

// Register assigns a fresh Var to name if it is not already known,
// returning the (possibly pre-existing) Var.
func (n *Names) Register(name string, c *Counter) Var {
	if v, ok := n.byName[name]; ok {
		return v
	}
	v := c.Allocate()
	n.byName[name] = v
	n.byVar[v] = name
	return v
}
