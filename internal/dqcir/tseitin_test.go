package dqcir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/pedantic/internal/ids"
)

// solveAssignment reports whether the translated circuit's output is
// true under the given assignment to its input variables. Variables the
// assignment leaves out (gate outputs, Tseitin auxiliaries) are searched
// over: the result is true iff some extension satisfies every clause
// with the output literal true.
func solveAssignment(doc *Document, assignment map[ids.Var]bool) bool {
	m, err := doc.Tseitin()
	if err != nil {
		panic(err)
	}
	full := make(map[ids.Var]bool, len(assignment))
	for v, b := range assignment {
		full[v] = b
	}
	var free []ids.Var
	for _, clause := range m.Clauses {
		for _, lit := range clause {
			if _, ok := full[lit.Var()]; !ok {
				full[lit.Var()] = false
				free = append(free, lit.Var())
			}
		}
	}
	allSatisfied := func() bool {
		for _, clause := range m.Clauses {
			satisfied := false
			for _, lit := range clause {
				if lit.Positive() == full[lit.Var()] {
					satisfied = true
					break
				}
			}
			if !satisfied {
				return false
			}
		}
		return true
	}
	for mask := 0; mask < 1<<len(free); mask++ {
		for i, v := range free {
			full[v] = (mask>>i)&1 == 1
		}
		if allSatisfied() && full[m.Output.Var()] == m.Output.Positive() {
			return true
		}
	}
	return false
}

func TestTseitinAndGate(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x1,x2)\ng = and(x1,x2)\noutput(g)\n"), nil)
	require.NoError(t, err)

	x1, _ := doc.Names.Lookup("x1")
	x2, _ := doc.Names.Lookup("x2")

	type tc struct {
		Name string
		X1   bool
		X2   bool
		Want bool
	}
	for _, tt := range []tc{
		{"both true", true, true, true},
		{"first false", false, true, false},
		{"second false", true, false, false},
		{"both false", false, false, false},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, solveAssignment(doc, map[ids.Var]bool{x1: tt.X1, x2: tt.X2}))
		})
	}
}

func TestTseitinOrGate(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x1,x2)\ng = or(x1,x2)\noutput(g)\n"), nil)
	require.NoError(t, err)

	x1, _ := doc.Names.Lookup("x1")
	x2, _ := doc.Names.Lookup("x2")

	type tc struct {
		Name string
		X1   bool
		X2   bool
		Want bool
	}
	for _, tt := range []tc{
		{"both true", true, true, true},
		{"first true", true, false, true},
		{"second true", false, true, true},
		{"both false", false, false, false},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, solveAssignment(doc, map[ids.Var]bool{x1: tt.X1, x2: tt.X2}))
		})
	}
}

func TestTseitinXorGateBinary(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x1,x2)\ng = xor(x1,x2)\noutput(g)\n"), nil)
	require.NoError(t, err)

	x1, _ := doc.Names.Lookup("x1")
	x2, _ := doc.Names.Lookup("x2")

	assert.False(t, solveAssignment(doc, map[ids.Var]bool{x1: true, x2: true}))
	assert.True(t, solveAssignment(doc, map[ids.Var]bool{x1: true, x2: false}))
	assert.True(t, solveAssignment(doc, map[ids.Var]bool{x1: false, x2: true}))
	assert.False(t, solveAssignment(doc, map[ids.Var]bool{x1: false, x2: false}))
}

func TestTseitinXorGateNary(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x1,x2,x3)\ng = xor(x1,x2,x3)\noutput(g)\n"), nil)
	require.NoError(t, err)

	x1, _ := doc.Names.Lookup("x1")
	x2, _ := doc.Names.Lookup("x2")
	x3, _ := doc.Names.Lookup("x3")

	// 3-input XOR is true iff an odd number of inputs are true.
	assert.True(t, solveAssignment(doc, map[ids.Var]bool{x1: true, x2: false, x3: false}))
	assert.False(t, solveAssignment(doc, map[ids.Var]bool{x1: true, x2: true, x3: false}))
	assert.True(t, solveAssignment(doc, map[ids.Var]bool{x1: true, x2: true, x3: true}))
	assert.False(t, solveAssignment(doc, map[ids.Var]bool{x1: false, x2: false, x3: false}))
}

func TestTseitinNegatedInput(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x)\ng = and(-x)\noutput(g)\n"), nil)
	require.NoError(t, err)

	x, _ := doc.Names.Lookup("x")
	assert.True(t, solveAssignment(doc, map[ids.Var]bool{x: false}))
	assert.False(t, solveAssignment(doc, map[ids.Var]bool{x: true}))
}

func TestTseitinAllocatesAuxiliariesThroughSharedCounter(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x1,x2,x3,x4)\ng = xor(x1,x2,x3,x4)\noutput(g)\n"), nil)
	require.NoError(t, err)

	before := doc.Counter.Peek()
	_, err = doc.Tseitin()
	require.NoError(t, err)
	assert.Greater(t, doc.Counter.Peek(), before, "n-ary xor folding should allocate at least one auxiliary variable")
}
