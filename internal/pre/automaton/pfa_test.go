package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildPFA_shuffleLambdaPairsAreMated(t *testing.T) {
	assert := assert.New(t)

	tree := mustParse(t, "A&B")
	pfa := BuildPFA(tree)

	var lambdaIdx []int
	for i, e := range pfa.Edges {
		if e.Kind == pfaEdgeLambda {
			lambdaIdx = append(lambdaIdx, i)
		}
	}
	// two λ-pairs, four λ-edges total, per spec §4.2's shuffle case.
	assert.Len(lambdaIdx, 4)

	for _, i := range lambdaIdx {
		mate, ok := pfa.Mate(i)
		if !assert.True(ok) {
			continue
		}
		// the mate shares the edge's pair id and is a different edge (its
		// target differs).
		assert.Equal(pfa.Edges[i].Pair, mate.Pair)
		assert.NotEqual(pfa.Edges[i].To, mate.To)
	}
}

func Test_BuildPFA_symbolFragmentHasOneEdge(t *testing.T) {
	assert := assert.New(t)

	tree := mustParse(t, "A")
	pfa := BuildPFA(tree)

	assert.Len(pfa.Edges, 1)
	assert.Equal(pfaEdgeSymbol, pfa.Edges[0].Kind)
	assert.Equal("A", pfa.Edges[0].Symbol)
	assert.Len(pfa.Accept, 1)
}

func Test_BuildPFA_starEntryAccepts(t *testing.T) {
	assert := assert.New(t)

	tree := mustParse(t, "A*")
	pfa := BuildPFA(tree)

	assert.True(pfa.Accept[pfa.Start], "star's entry must also accept (zero repetitions)")
}
