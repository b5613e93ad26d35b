package dqbf

import "github.com/fslivovsky/pedantic/internal/ids"

// Existential describes one existentially quantified variable and the
// (sub)set of universal variables its Skolem function may read.
type Existential struct {
	Var  ids.Var
	Deps map[ids.Var]struct{}
}

// DependsOn reports whether v is a declared dependency of e.
func (e *Existential) DependsOn(v ids.Var) bool {
	_, ok := e.Deps[v]
	return ok
}

// rule is one entry of an existential's decision list: it fires when
// premise holds and no earlier rule has fired, and then forces the
// existential to equal conclusion (a fixed Boolean, or the value of
// valueVar when conclusion came from the expansion-variable cache).
type rule struct {
	premise    []ids.Lit
	hasValue   bool // true if conclusion is a fixed Boolean rather than linked to valueVar
	conclusion bool
	valueVar   ids.Var // recorded for diagnostics only; no code path reads it
	fireVar    ids.Var
	noFiredVar ids.Var
}

// existentialState is the per-existential bookkeeping the
// Decision-List Encoder maintains: the "current tail" pointers plus
// the full rule history (recorded for diagnostics; neither the CEGAR
// loop nor the Model Extractor reads it back).
type existentialState struct {
	existential *Existential

	// current tail pointers (spec.md §3 "Lifecycle")
	valueVar   ids.Var // V(e), unsigned; sign lives in valueSign
	valueSign  bool    // true => e equals valueVar when the tail default fires
	fireVar    ids.Var // F(e)
	noFiredVar ids.Var // N(e)
	ruleCount  int     // k(e)

	rules []rule // append-only history, oldest first
}

// currentValueLit returns the signed literal the tail default branch
// asserts: +valueVar if valueSign, else -valueVar.
func (s *existentialState) currentValueLit() ids.Lit {
	return ids.Of(s.valueVar, s.valueSign)
}
