// Package dqbf implements the CEGAR decision procedure for
// Dependency Quantified Boolean Formulas: a symbolic, SAT-encoded
// representation of candidate Skolem functions as ordered decision
// lists, a counterexample SAT query that detects spurious candidates,
// and an expansion SAT instance that guides refinement.
package dqbf

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/matrix"
	"github.com/fslivovsky/pedantic/internal/sat"
)

// Input bundles everything the core needs to construct a Controller:
// the identifier dictionary, the quantifier structure, the matrix,
// and the shared ID counter (whose current value must already be at
// least the largest identifier appearing in Matrix or Names).
type Input struct {
	Names        *ids.Names
	Universals   []ids.Var
	Existentials []*Existential
	Matrix       *matrix.Matrix
	Counter      *ids.Counter
}

// Verdict is the final answer to a DQBF instance.
type Verdict int

const (
	SAT Verdict = iota
	UNSAT
)

func (v Verdict) String() string {
	if v == SAT {
		return "SAT"
	}
	return "UNSAT"
}

// ExitCode maps a Verdict onto the process exit codes named in
// spec.md §6.
func (v Verdict) ExitCode() int {
	if v == SAT {
		return 10
	}
	return 20
}

// ModelRow is one line of an enumerated model: the universal
// assignment and the existential values it induces.
type ModelRow struct {
	Universals   []ids.Lit
	Existentials []ids.Lit
}

// Result is the outcome of a Controller.Run call.
type Result struct {
	Verdict       Verdict
	Iterations    int
	ExpansionVars int
	Universals    int
	Existentials  int
	Model         []ModelRow // populated only when model extraction was requested and Verdict == SAT
}

// Controller owns both SAT oracles and the ID counter, and drives the
// CEGAR loop described in spec.md §4.7. Nothing inside it is safe for
// concurrent use; spec.md's concurrency model is single-threaded.
type Controller struct {
	counterexample sat.Oracle
	expansion      sat.Oracle
	counter        *ids.Counter
	names          *ids.Names
	log            *logrus.Logger

	universals   []ids.Var
	existentials map[ids.Var]*existentialState
	order        []ids.Var // existentials in input order, for stable iteration

	permanentAssumptions []ids.Lit

	cache          map[cacheKey]ids.Var
	expansionOrder []ids.Var

	expansionHint []ids.Lit // H: current satisfying assignment of the expansion blocker
	lastUniversal []ids.Lit // phase-hint warm start

	lastCore *counterexamplePair // for cycle detection; nil before the first iteration

	output ids.Lit
}

// Option configures a Controller constructed by New.
type Option func(*Controller)

// WithLogger installs a logrus.Logger the controller reports
// iteration-level diagnostics to. If omitted, a logger with output
// discarded is used.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithOracles overrides the two sat.Oracle instances the controller
// uses, one for the counterexample instance and one for the expansion
// blocker. If omitted, New constructs a pair of gini-backed oracles.
func WithOracles(counterexample, expansion sat.Oracle) Option {
	return func(c *Controller) {
		c.counterexample = counterexample
		c.expansion = expansion
	}
}

// New constructs a Controller from in and initializes the
// counterexample instance with in.Matrix's clauses and a decision
// list (initially just a default rule) for every existential.
func New(in *Input, opts ...Option) (*Controller, error) {
	c := &Controller{
		counter:      in.Counter,
		names:        in.Names,
		universals:   append([]ids.Var(nil), in.Universals...),
		existentials: make(map[ids.Var]*existentialState, len(in.Existentials)),
		cache:        make(map[cacheKey]ids.Var),
		log:          discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.counterexample == nil || c.expansion == nil {
		ce, ex := defaultOracles()
		if c.counterexample == nil {
			c.counterexample = ce
		}
		if c.expansion == nil {
			c.expansion = ex
		}
	}

	for _, clause := range in.Matrix.Clauses {
		c.counterexample.AddClause(clause...)
	}

	for _, e := range in.Existentials {
		c.order = append(c.order, e.Var)
		c.existentials[e.Var] = &existentialState{existential: e}
		c.initModel(e.Var)
	}

	c.output = in.Matrix.Output
	return c, nil
}

// Run drives the CEGAR loop to completion: detect a counterexample,
// refine, test the expansion blocker for termination, and repeat.
// extractModel additionally requests enumeration of the induced
// existential tuple for every universal assignment once SAT is
// established.
//
// InvariantViolation conditions (spec.md §7) are raised internally as
// panics, since they signal a programmer error in the caller's Input
// rather than a condition the loop can recover from; Run recovers
// them at this boundary and returns them as ordinary errors.
func (c *Controller) Run(ctx context.Context, extractModel bool) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*InvariantViolation); ok {
				result, err = nil, iv
				return
			}
			panic(r)
		}
	}()
	return c.run(ctx, extractModel)
}

func (c *Controller) run(ctx context.Context, extractModel bool) (*Result, error) {
	iterations := 0
	for {
		iterations++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		core, ok, err := c.detectCounterexample()
		if err != nil {
			return nil, err
		}
		if !ok {
			c.log.WithField("iterations", iterations).Info("no counterexample found, formula is satisfiable")
			result := &Result{
				Verdict:       SAT,
				Iterations:    iterations,
				ExpansionVars: len(c.expansionOrder),
				Universals:    len(c.universals),
				Existentials:  len(c.order),
			}
			if extractModel {
				rows, err := c.extractModel()
				if err != nil {
					return nil, err
				}
				result.Model = rows
			}
			return result, nil
		}

		if c.lastCore != nil && c.lastCore.equal(core) {
			return nil, &CycleDetected{Iteration: iterations}
		}
		c.lastCore = core
		c.lastUniversal = core.universals

		c.log.WithFields(logrus.Fields{
			"iteration":  iterations,
			"universals": litsString(core.universals),
			"core":       litsString(core.existentials),
		}).Debug("refining on counterexample")

		if err := c.refine(core); err != nil {
			return nil, err
		}

		switch c.expansion.Solve() {
		case sat.SAT:
			c.expansionHint = c.expansion.Values(c.expansionOrder)
		case sat.UNSAT:
			c.log.WithField("iterations", iterations).Info("expansion blocker unsatisfiable, formula is unsatisfiable")
			return &Result{
				Verdict:       UNSAT,
				Iterations:    iterations,
				ExpansionVars: len(c.expansionOrder),
				Universals:    len(c.universals),
				Existentials:  len(c.order),
			}, nil
		default:
			return nil, &OracleFailure{Context: "expansion blocker solve"}
		}
	}
}

func litsString(lits []ids.Lit) string {
	s := make([]byte, 0, len(lits)*4)
	for i, l := range lits {
		if i > 0 {
			s = append(s, ' ')
		}
		s = append(s, []byte(l.String())...)
	}
	return string(s)
}
