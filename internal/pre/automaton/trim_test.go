package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Trim_removesDeadStates(t *testing.T) {
	assert := assert.New(t)

	// hand-built DFA: 0 -A-> 1 (accept), 0 -B-> 2 (dead end, no path to
	// accept), 1 has no outgoing edges.
	d := &DFA{
		NumStates: 3,
		Trans: []map[string]int{
			{"A": 1, "B": 2},
			{},
			{},
		},
		Start:  0,
		Accept: map[int]bool{1: true},
	}

	trimmed := Trim(d)
	assert.Equal(2, trimmed.NumStates)
	_, ok := trimmed.Next(trimmed.Start, "B")
	assert.False(ok, "dead branch must be pruned")
	s, ok := trimmed.Next(trimmed.Start, "A")
	assert.True(ok)
	assert.True(trimmed.IsAccepting(s))
}

func Test_Trim_startCannotReachAccept(t *testing.T) {
	assert := assert.New(t)

	d := &DFA{
		NumStates: 2,
		Trans: []map[string]int{
			{"A": 1},
			{},
		},
		Start:  0,
		Accept: map[int]bool{},
	}

	trimmed := Trim(d)
	assert.Equal(0, trimmed.NumStates)
	assert.Equal(-1, trimmed.Start)
}

func Test_Trim_noOpOnAlreadyTrim(t *testing.T) {
	assert := assert.New(t)

	tree := mustParse(t, "A&B")
	nfa, err := LowerToNFA(tree)
	if !assert.NoError(err) {
		return
	}
	dfa := Trim(Determinize(nfa))
	twice := Trim(dfa)
	assert.Equal(dfa.NumStates, twice.NumStates)
}
