// Package automaton holds the PFA, NFA, and DFA representations and the
// construction, lowering, determinization, minimization, and trimming
// stages of the compiler pipeline (spec components C2-C6). The data
// structures follow spec §9's recommendation directly: states are dense
// integer ids, and transitions are (id, symbol, id) triples held in
// arrays indexed by state id, rather than an owning graph of pointers.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/pregex/internal/pre/ast"
	"github.com/dekarrin/pregex/internal/preerrors"
)

// edgeKind distinguishes an ordinary symbol transition from an ε-move. NFA
// edges never carry a λ marker: the shuffle product construction in
// LowerToNFA resolves λ-pairs before a single NFA edge is ever recorded, per
// the alternative construction spec §9's Design Notes sanctions ("implementations
// may skip the PFA and construct the product NFA directly from the parse
// tree, provided the language is identical").
type edgeKind uint8

const (
	edgeSymbol edgeKind = iota
	edgeEpsilon
)

// Edge is one outgoing transition of an NFA state.
type Edge struct {
	Kind   edgeKind
	Symbol string // meaningful only when Kind == edgeSymbol
	To     int
}

func symEdge(sym string, to int) Edge { return Edge{Kind: edgeSymbol, Symbol: sym, To: to} }
func epsEdge(to int) Edge             { return Edge{Kind: edgeEpsilon, To: to} }

// NFA is a nondeterministic finite automaton over Σ ∪ {ε}. States are
// 0..NumStates-1; Trans[s] holds every outgoing edge of state s.
type NFA struct {
	NumStates int
	Trans     [][]Edge
	Start     int
	Accept    map[int]bool
}

// IsAccepting returns whether s is one of the NFA's accepting states.
func (n *NFA) IsAccepting(s int) bool { return n.Accept[s] }

// InputSymbols returns the NFA's input alphabet in no particular order.
func (n *NFA) InputSymbols() []string {
	seen := map[string]bool{}
	var syms []string
	for _, edges := range n.Trans {
		for _, e := range edges {
			if e.Kind == edgeSymbol && !seen[e.Symbol] {
				seen[e.Symbol] = true
				syms = append(syms, e.Symbol)
			}
		}
	}
	return syms
}

// EpsilonClosure returns every state reachable from any state in from using
// only ε-edges, including the states in from themselves.
func (n *NFA) EpsilonClosure(from []int) []int {
	visited := map[int]bool{}
	stack := append([]int{}, from...)
	for _, s := range from {
		visited[s] = true
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.Trans[s] {
			if e.Kind == edgeEpsilon && !visited[e.To] {
				visited[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}

	out := make([]int, 0, len(visited))
	for s := range visited {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Move returns the set of states reachable from any state in from by
// consuming a single occurrence of sym. This is MOVE(T, a) from the purple
// dragon book's algorithm 3.20, the same subset-construction helper
// ictiobus's NFA[E].MOVE implements.
func (n *NFA) Move(from []int, sym string) []int {
	seen := map[int]bool{}
	var out []int
	for _, s := range from {
		for _, e := range n.Trans[s] {
			if e.Kind == edgeSymbol && e.Symbol == sym && !seen[e.To] {
				seen[e.To] = true
				out = append(out, e.To)
			}
		}
	}
	sort.Ints(out)
	return out
}

// String renders a line-based dump of the NFA, used for verbose-mode
// diagnostics and test comparisons, in the spirit of ictiobus's DFA/NFA
// String() debug dumps.
func (n *NFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "NFA(start=%d, accept=%s) {\n", n.Start, intSetString(n.Accept))
	for s := 0; s < n.NumStates; s++ {
		for _, e := range n.Trans[s] {
			if e.Kind == edgeEpsilon {
				fmt.Fprintf(&sb, "  %d --ε--> %d\n", s, e.To)
			} else {
				fmt.Fprintf(&sb, "  %d --%s--> %d\n", s, e.Symbol, e.To)
			}
		}
	}
	sb.WriteString("}")
	return sb.String()
}

func intSetString(m map[int]bool) string {
	ids := make([]int, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// nfaBuilder incrementally allocates states and records edges while folding
// an *ast.Node into an NFA fragment, mirroring Toasa's Generator/StateCount
// pattern but producing ε-NFA fragments with an explicit (entry, accept)
// pair instead of Toasa's accept-states slice, since every fragment this
// grammar's constructors emit has exactly one accept state (§4.2 always
// funnels union/shuffle/star into a single fresh join state).
type nfaBuilder struct {
	trans [][]Edge
	limit int
}

func newNFABuilder(limit int) *nfaBuilder {
	return &nfaBuilder{limit: limit}
}

func (b *nfaBuilder) newState() int {
	id := len(b.trans)
	b.trans = append(b.trans, nil)
	return id
}

func (b *nfaBuilder) addEdge(from int, e Edge) {
	b.trans[from] = append(b.trans[from], e)
}

func (b *nfaBuilder) numStates() int { return len(b.trans) }

// build implements spec §4.2's fragment constructions directly at the NFA
// level (ordinary ε-edges, no λ) for every node kind except Shuffle, and
// spec §4.3's product construction for Shuffle.
func (b *nfaBuilder) build(n *ast.Node) (entry, accept int, err error) {
	switch n.Kind {
	case ast.KindSymbol:
		a := b.newState()
		c := b.newState()
		b.addEdge(a, symEdge(n.Value, c))
		return a, c, nil

	case ast.KindEmpty:
		a := b.newState()
		return a, a, nil

	case ast.KindConcat:
		lEntry, lAccept, err := b.build(n.Left)
		if err != nil {
			return 0, 0, err
		}
		rEntry, rAccept, err := b.build(n.Right)
		if err != nil {
			return 0, 0, err
		}
		b.addEdge(lAccept, epsEdge(rEntry))
		return lEntry, rAccept, nil

	case ast.KindUnion:
		lEntry, lAccept, err := b.build(n.Left)
		if err != nil {
			return 0, 0, err
		}
		rEntry, rAccept, err := b.build(n.Right)
		if err != nil {
			return 0, 0, err
		}
		a := b.newState()
		c := b.newState()
		b.addEdge(a, epsEdge(lEntry))
		b.addEdge(a, epsEdge(rEntry))
		b.addEdge(lAccept, epsEdge(c))
		b.addEdge(rAccept, epsEdge(c))
		return a, c, nil

	case ast.KindStar:
		eEntry, eAccept, err := b.build(n.Left)
		if err != nil {
			return 0, 0, err
		}
		a := b.newState()
		b.addEdge(a, epsEdge(eEntry))
		b.addEdge(eAccept, epsEdge(a))
		return a, a, nil

	case ast.KindShuffle:
		return b.buildShuffle(n)

	default:
		return 0, 0, fmt.Errorf("automaton: unrecognized node kind %v", n.Kind)
	}
}

// buildShuffle implements spec §4.3's product construction: each arm is
// first lowered in isolation into its own self-contained NFA fragment, then
// the shuffle's states are the cross product of the two arms' states, with
// every edge of one arm replayed against every state of the other arm
// unchanged. This realizes "every interleaving that preserves each arm's
// internal order" without ever materializing a λ edge.
func (b *nfaBuilder) buildShuffle(n *ast.Node) (entry, accept int, err error) {
	lb := newNFABuilder(b.limit)
	lEntry, lAccept, err := lb.build(n.Left)
	if err != nil {
		return 0, 0, err
	}

	rb := newNFABuilder(b.limit)
	rEntry, rAccept, err := rb.build(n.Right)
	if err != nil {
		return 0, 0, err
	}

	total := lb.numStates() * rb.numStates()
	if b.limit > 0 && b.numStates()+total > b.limit {
		return 0, 0, preerrors.TooLarge(b.limit, b.numStates()+total)
	}

	base := b.numStates()
	idOf := func(p, q int) int { return base + p*rb.numStates() + q }

	for i := 0; i < total; i++ {
		b.newState()
	}

	for p := 0; p < lb.numStates(); p++ {
		for q := 0; q < rb.numStates(); q++ {
			for _, e := range lb.trans[p] {
				if e.Kind == edgeEpsilon {
					b.addEdge(idOf(p, q), epsEdge(idOf(e.To, q)))
				} else {
					b.addEdge(idOf(p, q), symEdge(e.Symbol, idOf(e.To, q)))
				}
			}
			for _, e := range rb.trans[q] {
				if e.Kind == edgeEpsilon {
					b.addEdge(idOf(p, q), epsEdge(idOf(p, e.To)))
				} else {
					b.addEdge(idOf(p, q), symEdge(e.Symbol, idOf(p, e.To)))
				}
			}
		}
	}

	return idOf(lEntry, rEntry), idOf(lAccept, rAccept), nil
}

// DefaultStateCeiling is the advisory state-count ceiling LowerToNFA enforces
// when the caller does not supply one (limit <= 0 to LowerToNFAWithLimit
// disables the check entirely).
const DefaultStateCeiling = 1 << 16

// LowerToNFA lowers a parsed PRE tree directly into an ε-NFA, performing the
// shuffle product expansion of spec §4.3 along the way. This is component
// C3. It is equivalent to first building the PFA of §4.2 and then
// eliminating every λ-pair, but is implemented as a single recursive pass
// per the alternative construction spec's Design Notes permit.
func LowerToNFA(tree *ast.Node) (*NFA, error) {
	return LowerToNFAWithLimit(tree, DefaultStateCeiling)
}

// LowerToNFAWithLimit is LowerToNFA with an explicit state ceiling; limit <=
// 0 disables the TooLarge check.
func LowerToNFAWithLimit(tree *ast.Node, limit int) (*NFA, error) {
	b := newNFABuilder(limit)
	entry, accept, err := b.build(tree)
	if err != nil {
		return nil, err
	}
	return &NFA{
		NumStates: b.numStates(),
		Trans:     b.trans,
		Start:     entry,
		Accept:    map[int]bool{accept: true},
	}, nil
}
