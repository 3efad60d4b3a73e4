package pre

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/pregex/internal/preerrors"
	"github.com/dekarrin/pregex/internal/prelog"
)

func drainPlans(t *testing.T, c *Compiled) []string {
	t.Helper()
	var out []string
	for {
		p, ok, err := c.NextPlan()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, string(p))
	}
}

func Test_Compile_parseError(t *testing.T) {
	_, err := Compile("A|", Options{})
	assert.Error(t, err)
}

func Test_Compile_scenario1_shuffleCardinality(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A&B&C", Options{})
	require.NoError(t, err)

	plans := drainPlans(t, c)
	assert.ElementsMatch([]string{
		"A B C ", "A C B ", "B A C ", "B C A ", "C A B ", "C B A ",
	}, plans)
}

func Test_Compile_scenario5_union(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A|B|C", Options{})
	require.NoError(t, err)

	plans := drainPlans(t, c)
	assert.ElementsMatch([]string{"A ", "B ", "C "}, plans)
}

func Test_Compile_scenario6_concat(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A B C", Options{})
	require.NoError(t, err)

	plans := drainPlans(t, c)
	assert.Equal([]string{"A B C "}, plans)
}

func Test_Plan_Symbols(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"A", "B", "C"}, Plan("A B C ").Symbols())
	assert.Equal([]string{"A"}, Plan("A ").Symbols())
	assert.Nil(Plan("").Symbols())
}

func Test_Compiled_Reset_isIdempotent(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A&B", Options{})
	require.NoError(t, err)

	first := drainPlans(t, c)
	c.Reset()
	second := drainPlans(t, c)

	assert.ElementsMatch(first, second)
}

func Test_Compiled_optionChangeImpliesReset(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("(A C)|(B C)", Options{Minimize: false})
	require.NoError(t, err)

	unminimized, err := c.DFA()
	require.NoError(t, err)
	unminimizedStates := unminimized.NumStates

	c.opts.Minimize = true
	minimized, err := c.DFA()
	require.NoError(t, err)

	assert.Less(minimized.NumStates, unminimizedStates)
}

func Test_Compiled_RunOnce(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A&B", Options{Namespace: "ns"})
	require.NoError(t, err)

	var seenNamespaces []string
	dispatch := func(namespace, name string, scope any) (any, error) {
		seenNamespaces = append(seenNamespaces, namespace)
		names := scope.([]string)
		return append(names, name), nil
	}

	scope, consumed, err := c.RunOnce([]string{}, dispatch)
	require.NoError(t, err)
	assert.True(consumed)
	names := scope.([]string)
	assert.Len(names, 2)
	for _, ns := range seenNamespaces {
		assert.Equal("ns", ns)
	}
}

func Test_Compiled_RunOnce_dispatchError(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A", Options{})
	require.NoError(t, err)

	boom := errors.New("boom")
	dispatch := func(namespace, name string, scope any) (any, error) {
		return scope, boom
	}

	_, consumed, err := c.RunOnce(nil, dispatch)
	assert.True(consumed)
	assert.Error(err)
	assert.True(errors.Is(err, boom))
}

func Test_Compiled_RunOnce_exhausted(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A", Options{})
	require.NoError(t, err)

	dispatch := func(namespace, name string, scope any) (any, error) { return scope, nil }

	_, _, err = c.RunOnce(nil, dispatch)
	require.NoError(t, err)

	_, consumed, err := c.RunOnce(nil, dispatch)
	require.NoError(t, err)
	assert.False(consumed)
}

func Test_Compiled_Fingerprint_stable(t *testing.T) {
	assert := assert.New(t)

	c1, err := Compile("A&B", Options{})
	require.NoError(t, err)
	c2, err := Compile("A&B", Options{})
	require.NoError(t, err)

	f1, err := c1.Fingerprint()
	require.NoError(t, err)
	f2, err := c2.Fingerprint()
	require.NoError(t, err)

	assert.Equal(f1, f2)
	assert.NotEqual(c1.InstanceID(), c2.InstanceID())
}

func Test_Compile_stateCeilingTooLarge(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A&B", Options{StateCeiling: 1})
	require.NoError(t, err)

	_, _, err = c.NextPlan()
	require.Error(t, err)

	var tooLarge *preerrors.TooLargeError
	assert.True(errors.As(err, &tooLarge))
}

func Test_Compiled_cyclicWarningLoggedOnce(t *testing.T) {
	assert := assert.New(t)

	c, err := Compile("A*", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	c.logger = prelog.New(&buf, false)

	_, err = c.DFA()
	require.NoError(t, err)
	_, err = c.DFA()
	require.NoError(t, err)
	_, _, err = c.NextPlan()
	require.NoError(t, err)

	msg := buf.String()
	assert.Contains(msg, "WARN")
	assert.Contains(msg, "cyclic")
	assert.Equal(1, strings.Count(msg, "cyclic"))
}

func Test_Compiled_exhaustedYieldsNoPlan(t *testing.T) {
	assert := assert.New(t)

	// a PRE with no reachable accept after trimming would need a construct
	// this grammar can't express (no intersection/negation), so this checks
	// that the driver reports "no plan" as an absence, not an error, once a
	// normal finite PRE's plans are exhausted.
	c, err := Compile("A", Options{})
	require.NoError(t, err)

	_, ok, err := c.NextPlan()
	require.NoError(t, err)
	assert.True(ok)

	_, ok, err = c.NextPlan()
	require.NoError(t, err)
	assert.False(ok)
}
