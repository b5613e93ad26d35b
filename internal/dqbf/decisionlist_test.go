package dqbf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/pedantic/internal/ids"
	ginioracle "github.com/fslivovsky/pedantic/internal/sat/gini"
)

func newBareController(t *testing.T, universals ...ids.Var) *Controller {
	t.Helper()
	c := &Controller{
		counter:      ids.NewCounter(0),
		names:        ids.NewNames(),
		universals:   universals,
		existentials: make(map[ids.Var]*existentialState),
		cache:        make(map[cacheKey]ids.Var),
		log:          discardLogger(),
	}
	c.counterexample, c.expansion = ginioracle.New(), ginioracle.New()
	return c
}

// TestDefaultSemantics is property P4: after initModel and setDefault,
// the tail default forces e to the chosen value under any universal
// assumptions, before any rule is added.
func TestDefaultSemantics(t *testing.T) {
	c := newBareController(t)
	counter := c.counter
	y := counter.Allocate()
	c.order = []ids.Var{y}
	c.existentials[y] = &existentialState{existential: ex(y)}
	c.initModel(y)
	c.setDefault(y, true)
	c.output = ids.Of(y, true)

	assert.Equal(t, true, c.existentials[y].valueSign)

	result, err := c.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, SAT, result.Verdict)
}

// TestCacheIdempotence is property P2: two expansionVariable calls
// for the same (existential, premise) return the same variable and
// the second adds no rule.
func TestCacheIdempotence(t *testing.T) {
	c := newBareController(t, 1)
	x := ids.Var(1)
	y := c.counter.Allocate()
	c.order = []ids.Var{y}
	c.existentials[y] = &existentialState{existential: ex(y, x)}
	c.initModel(y)

	premise := []ids.Lit{ids.Of(x, true)}
	first := c.expansionVariable(y, premise)
	ruleCountAfterFirst := c.existentials[y].ruleCount

	second := c.expansionVariable(y, premise)
	ruleCountAfterSecond := c.existentials[y].ruleCount

	assert.Equal(t, first, second)
	assert.Equal(t, ruleCountAfterFirst, ruleCountAfterSecond)
}

// TestDependencyContainment is property P3: installing a premise
// literal over a universal outside deps(e) is an InvariantViolation.
func TestDependencyContainment(t *testing.T) {
	c := newBareController(t, 1, 2)
	x1, x2 := ids.Var(1), ids.Var(2)
	y := c.counter.Allocate()
	c.order = []ids.Var{y}
	c.existentials[y] = &existentialState{existential: ex(y, x1)}
	c.initModel(y)

	assert.Panics(t, func() {
		c.expansionVariable(y, []ids.Lit{ids.Of(x2, true)})
	})
}
