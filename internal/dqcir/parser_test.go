package dqcir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fslivovsky/pedantic/internal/ids"
)

func TestParseQuantifierPrefix(t *testing.T) {
	type tc struct {
		Name         string
		Input        string
		Universals   []string
		Existentials []string
		Deps         map[string][]string
	}

	for _, tt := range []tc{
		{
			Name:         "implicit dependency on every preceding forall",
			Input:        "forall(x1,x2)\nexists(y)\noutput(y)\ny = and(x1)\n",
			Universals:   []string{"x1", "x2"},
			Existentials: []string{"y"},
			Deps:         map[string][]string{"y": {"x1", "x2"}},
		},
		{
			Name:         "depend overrides the default dependency set",
			Input:        "forall(x1,x2)\ndepend(y,x1)\noutput(y)\ny = and(x1)\n",
			Universals:   []string{"x1", "x2"},
			Existentials: []string{"y"},
			Deps:         map[string][]string{"y": {"x1"}},
		},
		{
			Name:         "comments and blank lines are ignored",
			Input:        "# a DQBF instance\n\nforall(x)\n\n# comment\nexists(y)\noutput(y)\ny = and(x)\n",
			Universals:   []string{"x"},
			Existentials: []string{"y"},
			Deps:         map[string][]string{"y": {"x"}},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.Input), nil)
			require.NoError(t, err)

			assert.Equal(t, tt.Universals, names(doc, doc.Universals))
			assert.Equal(t, tt.Existentials, names(doc, doc.Existentials))

			for e, want := range tt.Deps {
				v, ok := doc.Names.Lookup(e)
				require.True(t, ok)
				assert.Equal(t, want, names(doc, doc.Dependencies[v]))
			}
		})
	}
}

func names(doc *Document, vars []ids.Var) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = doc.Names.Name(v)
	}
	return out
}

func TestParseGateNegatedArgument(t *testing.T) {
	doc, err := Parse(strings.NewReader("forall(x)\nexists(y)\noutput(g)\ng = or(-x,y)\n"), nil)
	require.NoError(t, err)

	g, ok := doc.Names.Lookup("g")
	require.True(t, ok)
	gate := doc.gates[g]
	require.Equal(t, gateOr, gate.typ)
	require.Len(t, gate.inputs, 2)
	assert.True(t, gate.inputs[0].negated)
	assert.False(t, gate.inputs[1].negated)
}

func TestParseMissingOutputIsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("forall(x)\nexists(y)\ny = and(x)\n"), nil)
	require.Error(t, err)
}

func TestParseUnrecognizedDirectiveReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("forall(x)\nbogus(x)\n"), nil)
	require.Error(t, err)
	var malformed *MalformedInput
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

func TestParseSharedCounterAvoidsCollisions(t *testing.T) {
	counter := ids.NewCounter(100)
	doc, err := Parse(strings.NewReader("forall(x)\nexists(y)\noutput(y)\ny = and(x)\n"), counter)
	require.NoError(t, err)

	for _, v := range append(append([]ids.Var(nil), doc.Universals...), doc.Existentials...) {
		assert.True(t, v > 100, "identifier %d should be allocated above the seeded counter value", v)
	}
}
