package gini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/sat"
)

func TestOracleSolveAndValue(t *testing.T) {
	o := New()
	a, b := ids.Var(1), ids.Var(2)

	o.AddClause(ids.Of(a, true), ids.Of(b, true))
	o.AddClause(ids.Of(a, false), ids.Of(b, false))

	require.Equal(t, sat.SAT, o.Solve())
	av, bv := o.Value(a), o.Value(b)
	assert.NotEqual(t, av.Positive(), bv.Positive())
}

func TestOracleAssumeAndFailed(t *testing.T) {
	o := New()
	a, b := ids.Var(1), ids.Var(2)

	o.AddClause(ids.Of(a, false), ids.Of(b, true))

	o.Assume(ids.Of(a, true), ids.Of(b, false))
	require.Equal(t, sat.UNSAT, o.Solve())

	failed := o.Failed([]ids.Lit{ids.Of(a, true), ids.Of(b, false)})
	assert.NotEmpty(t, failed)
}

func TestOracleAssumptionsDoNotPersistAcrossSolves(t *testing.T) {
	o := New()
	a := ids.Var(1)

	o.AddClause(ids.Of(a, true), ids.Of(a, false))

	o.Assume(ids.Of(a, true))
	require.Equal(t, sat.SAT, o.Solve())
	assert.True(t, o.Value(a).Positive())

	// The opposite assumption must now be satisfiable: the previous
	// Assume must not have stuck around.
	o.Assume(ids.Of(a, false))
	require.Equal(t, sat.SAT, o.Solve())
	assert.False(t, o.Value(a).Positive())
}
