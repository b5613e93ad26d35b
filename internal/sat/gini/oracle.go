// Package gini adapts github.com/go-air/gini's incremental CNF SAT
// solver to the sat.Oracle contract the DQBF core is built on.
package gini

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/sat"
)

const (
	giniSAT   = 1
	giniUNSAT = -1
)

// Oracle wraps a *gini.Gini instance behind sat.Oracle. gini does not
// expose a public phase-hint API, so Phase is a documented no-op — per
// sat.Oracle's contract this is permitted, since phase hints are
// advisory only.
type Oracle struct {
	g *gini.Gini
}

var _ sat.Oracle = (*Oracle)(nil)

// New returns a fresh Oracle with an empty clause database.
func New() *Oracle {
	return &Oracle{g: gini.New()}
}

func toLit(l ids.Lit) z.Lit {
	return z.Dimacs2Lit(int(l))
}

func fromLit(m z.Lit) ids.Lit {
	return ids.Lit(m.Dimacs())
}

func (o *Oracle) AddClause(lits ...ids.Lit) {
	for _, l := range lits {
		o.g.Add(toLit(l))
	}
	o.g.Add(z.LitNull)
}

func (o *Oracle) Assume(lits ...ids.Lit) {
	ms := make([]z.Lit, len(lits))
	for i, l := range lits {
		ms[i] = toLit(l)
	}
	o.g.Assume(ms...)
}

// Phase is a best-effort hint; this backend does not act on it.
func (o *Oracle) Phase(ids.Lit) {}

func (o *Oracle) Solve() sat.Status {
	switch o.g.Solve() {
	case giniSAT:
		return sat.SAT
	case giniUNSAT:
		return sat.UNSAT
	default:
		return sat.Unknown
	}
}

func (o *Oracle) Value(v ids.Var) ids.Lit {
	m := z.Var(v).Pos()
	if o.g.Value(m) {
		return ids.Of(v, true)
	}
	return ids.Of(v, false)
}

func (o *Oracle) Values(vs []ids.Var) []ids.Lit {
	out := make([]ids.Lit, len(vs))
	for i, v := range vs {
		out[i] = o.Value(v)
	}
	return out
}

func (o *Oracle) Failed(lits []ids.Lit) []ids.Lit {
	why := o.g.Why(nil)
	failed := make(map[ids.Lit]struct{}, len(why))
	for _, m := range why {
		failed[fromLit(m)] = struct{}{}
	}
	out := make([]ids.Lit, 0, len(lits))
	for _, l := range lits {
		if _, ok := failed[l]; ok {
			out = append(out, l)
		}
	}
	return out
}
