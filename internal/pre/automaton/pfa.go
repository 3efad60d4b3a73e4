package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/pregex/internal/pre/ast"
)

// pfaEdgeKind distinguishes the three transition kinds spec §3 allows on a
// PFA: an ordinary symbol move, a plain ε-move, and a λ-move that must fire
// together with its mate.
type pfaEdgeKind uint8

const (
	pfaEdgeSymbol pfaEdgeKind = iota
	pfaEdgeEpsilon
	pfaEdgeLambda
)

// PFAEdge is one transition of a PFA. Pair is only meaningful when Kind is
// pfaEdgeLambda: it names the λ-pair this edge belongs to, and is shared
// with exactly one other edge (its mate), satisfying the "mate is symmetric
// and a fixed-point involution" invariant of spec §3 by construction — a
// pair id is allocated for exactly two edges and never reused.
type PFAEdge struct {
	Kind   pfaEdgeKind
	Symbol string
	From   int
	To     int
	Pair   int
}

// PFA is the Parallel Finite Automaton of spec §4.2: an ε-NFA plus λ-pairs
// encoding shuffle's fork/join structure. It is not consumed by the rest of
// the pipeline (LowerToNFA lowers straight from the parse tree — see its
// doc comment); BuildPFA exists for data-model fidelity and for the
// diagnostic dump spec §9's Design Notes call out as the PFA's main
// remaining use ("The PFA representation is... preferable for diagnostic
// dumps").
type PFA struct {
	NumStates int
	Edges     []PFAEdge
	Start     int
	Accept    map[int]bool
}

// Mate returns the edge mated to Edges[i], and whether i names a λ-edge at
// all.
func (p *PFA) Mate(i int) (PFAEdge, bool) {
	if p.Edges[i].Kind != pfaEdgeLambda {
		return PFAEdge{}, false
	}
	pair := p.Edges[i].Pair
	for j, e := range p.Edges {
		if j != i && e.Kind == pfaEdgeLambda && e.Pair == pair {
			return e, true
		}
	}
	return PFAEdge{}, false
}

func (p *PFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PFA(start=%d, accept=%s) {\n", p.Start, intSetString(p.Accept))
	for _, e := range p.Edges {
		switch e.Kind {
		case pfaEdgeSymbol:
			fmt.Fprintf(&sb, "  %d --%s--> %d\n", e.From, e.Symbol, e.To)
		case pfaEdgeEpsilon:
			fmt.Fprintf(&sb, "  %d --ε--> %d\n", e.From, e.To)
		case pfaEdgeLambda:
			fmt.Fprintf(&sb, "  %d --λ(%d)--> %d\n", e.From, e.Pair, e.To)
		}
	}
	sb.WriteString("}")
	return sb.String()
}

type pfaBuilder struct {
	edges    []PFAEdge
	numStates int
	nextPair int
}

func (b *pfaBuilder) newState() int {
	id := b.numStates
	b.numStates++
	return id
}

func (b *pfaBuilder) addSym(from int, sym string, to int) {
	b.edges = append(b.edges, PFAEdge{Kind: pfaEdgeSymbol, Symbol: sym, From: from, To: to})
}

func (b *pfaBuilder) addEps(from, to int) {
	b.edges = append(b.edges, PFAEdge{Kind: pfaEdgeEpsilon, From: from, To: to})
}

// addLambdaPair records the two mated λ-edges of a single shuffle fork/join
// pairing: (aFrom -> aTo) mated with (bFrom -> bTo).
func (b *pfaBuilder) addLambdaPair(aFrom, aTo, bFrom, bTo int) {
	pair := b.nextPair
	b.nextPair++
	b.edges = append(b.edges,
		PFAEdge{Kind: pfaEdgeLambda, From: aFrom, To: aTo, Pair: pair},
		PFAEdge{Kind: pfaEdgeLambda, From: bFrom, To: bTo, Pair: pair},
	)
}

// build implements spec §4.2's fragment constructions verbatim, including
// the two λ-pairs of the Shuffle case.
func (b *pfaBuilder) build(n *ast.Node) (entry, accept int) {
	switch n.Kind {
	case ast.KindSymbol:
		a := b.newState()
		c := b.newState()
		b.addSym(a, n.Value, c)
		return a, c

	case ast.KindEmpty:
		a := b.newState()
		return a, a

	case ast.KindConcat:
		lEntry, lAccept := b.build(n.Left)
		rEntry, rAccept := b.build(n.Right)
		b.addEps(lAccept, rEntry)
		return lEntry, rAccept

	case ast.KindUnion:
		lEntry, lAccept := b.build(n.Left)
		rEntry, rAccept := b.build(n.Right)
		a := b.newState()
		c := b.newState()
		b.addEps(a, lEntry)
		b.addEps(a, rEntry)
		b.addEps(lAccept, c)
		b.addEps(rAccept, c)
		return a, c

	case ast.KindStar:
		eEntry, eAccept := b.build(n.Left)
		a := b.newState()
		b.addEps(a, eEntry)
		b.addEps(eAccept, a)
		return a, a

	case ast.KindShuffle:
		lEntry, lAccept := b.build(n.Left)
		rEntry, rAccept := b.build(n.Right)
		start := b.newState()
		acc := b.newState()
		// λ-pair 1: (start -> entry(l)) mated with (exit(r) -> accept)
		b.addLambdaPair(start, lEntry, rAccept, acc)
		// λ-pair 2: (start -> entry(r)) mated with (exit(l) -> accept)
		b.addLambdaPair(start, rEntry, lAccept, acc)
		return start, acc

	default:
		a := b.newState()
		return a, a
	}
}

// BuildPFA builds the Parallel Finite Automaton for tree, per spec §4.2.
// This is component C2.
func BuildPFA(tree *ast.Node) *PFA {
	b := &pfaBuilder{}
	entry, accept := b.build(tree)
	return &PFA{
		NumStates: b.numStates,
		Edges:     b.edges,
		Start:     entry,
		Accept:    map[int]bool{accept: true},
	}
}
