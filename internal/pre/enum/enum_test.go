package enum

import (
	"testing"

	"github.com/dekarrin/pregex/internal/pre/ast"
	"github.com/dekarrin/pregex/internal/pre/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDFA(t *testing.T, src string) *automaton.DFA {
	t.Helper()
	tree, err := ast.Parse(src)
	require.NoError(t, err)
	nfa, err := automaton.LowerToNFA(tree)
	require.NoError(t, err)
	return automaton.Trim(automaton.Determinize(nfa))
}

func drain(e *Enumerator) []string {
	var out []string
	for {
		plan, ok := e.Next()
		if !ok {
			return out
		}
		out = append(out, plan)
	}
}

func Test_Enumerator_concatSingle(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "A B C")
	e := New(d, false)

	plans := drain(e)
	assert.Equal([]string{"A B C "}, plans)
}

func Test_Enumerator_unionLexicographicOrder(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "C|A|B")
	e := New(d, false)

	plans := drain(e)
	assert.Equal([]string{"A ", "B ", "C "}, plans)
}

func Test_Enumerator_shuffleCardinalityAndOrder(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "A&B")
	e := New(d, false)

	plans := drain(e)
	assert.ElementsMatch([]string{"A B ", "B A "}, plans)
	assert.Len(plans, 2)
}

func Test_Enumerator_exhaustedStaysExhausted(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "A")
	e := New(d, false)

	first, ok := e.Next()
	assert.True(ok)
	assert.Equal("A ", first)

	_, ok = e.Next()
	assert.False(ok)

	// further calls keep returning no plan.
	_, ok = e.Next()
	assert.False(ok)
}

func Test_Enumerator_emptyDFAIsExhaustedImmediately(t *testing.T) {
	assert := assert.New(t)

	empty := &automaton.DFA{NumStates: 0, Trans: nil, Start: -1, Accept: map[int]bool{}}
	e := New(empty, false)

	_, ok := e.Next()
	assert.False(ok)
}

func Test_Enumerator_determinism(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "s (A & B) f")
	e1 := New(d, false)
	e2 := New(d, false)

	assert.Equal(drain(e1), drain(e2))
}

func Test_Enumerator_reset(t *testing.T) {
	assert := assert.New(t)

	d := buildDFA(t, "A|B")
	e := New(d, false)

	first := drain(e)
	e.Reset()
	second := drain(e)

	assert.Equal(first, second)
}

func Test_Enumerator_boundedCycle(t *testing.T) {
	assert := assert.New(t)

	// A* is cyclic once determinized (not trimmed-to-acyclic): confirm the
	// enumerator terminates and produces a finite, bounded prefix instead
	// of hanging.
	tree, err := ast.Parse("A*")
	require.NoError(t, err)
	nfa, err := automaton.LowerToNFA(tree)
	require.NoError(t, err)
	d := automaton.Trim(automaton.Determinize(nfa))
	require.True(t, d.HasCycle())

	e := New(d, true)
	plans := drain(e)

	assert.NotEmpty(plans)
	for _, p := range plans {
		assert.LessOrEqual(len(p), len("A A A "))
	}
}
