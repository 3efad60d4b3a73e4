package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/pregex/internal/util"
)

// DFA is a deterministic finite automaton. Trans[s][sym] gives the target
// state of the transition on sym out of s; an absent entry means sym is
// undefined at s (an implicit sink, per spec §3).
type DFA struct {
	NumStates int
	Trans     []map[string]int
	Start     int
	Accept    map[int]bool
}

// IsAccepting returns whether s is an accepting state.
func (d *DFA) IsAccepting(s int) bool { return d.Accept[s] }

// Next returns the state reached from s on sym, and whether the transition
// is defined.
func (d *DFA) Next(s int, sym string) (int, bool) {
	to, ok := d.Trans[s][sym]
	return to, ok
}

// Alphabet returns every symbol appearing on some transition, sorted
// lexicographically, so that callers such as Minimize walk the symbols in a
// fixed order.
func (d *DFA) Alphabet() []string {
	seen := util.NewStringSet()
	for _, edges := range d.Trans {
		for sym := range edges {
			seen.Add(sym)
		}
	}
	return seen.Sorted()
}

// HasCycle reports whether the DFA's state graph contains a directed cycle
// reachable from Start. Used to detect the InfiniteLanguageWarning
// condition of spec §7 before enumeration.
func (d *DFA) HasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, d.NumStates)

	var visit func(s int) bool
	visit = func(s int) bool {
		color[s] = gray
		syms := make([]string, 0, len(d.Trans[s]))
		for sym := range d.Trans[s] {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			to := d.Trans[s][sym]
			switch color[to] {
			case gray:
				return true
			case white:
				if visit(to) {
					return true
				}
			}
		}
		color[s] = black
		return false
	}

	return visit(d.Start)
}

func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DFA(start=%d, accept=%s) {\n", d.Start, intSetString(d.Accept))
	for s := 0; s < d.NumStates; s++ {
		syms := make([]string, 0, len(d.Trans[s]))
		for sym := range d.Trans[s] {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			fmt.Fprintf(&sb, "  %d --%s--> %d\n", s, sym, d.Trans[s][sym])
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// Determinize performs subset construction on n, yielding a DFA accepting
// the same language. This is component C4, the same algorithm (purple
// dragon book 3.20) ictiobus's NFA[E].ToDFA implements: Dstates are keyed by
// their canonical sorted-id string so that state identity — and therefore
// enumeration order downstream — is fully deterministic.
func Determinize(n *NFA) *DFA {
	alphabet := n.InputSymbols()
	sort.Strings(alphabet)

	startSet := n.EpsilonClosure([]int{n.Start})
	startKey := util.NewIntSet(startSet...).Key()

	type dstate struct {
		members []int
		trans   map[string]int
	}

	order := []string{startKey}
	indexByKey := map[string]int{startKey: 0}
	states := map[string]*dstate{startKey: {members: startSet, trans: map[string]int{}}}
	queue := []string{startKey}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		st := states[key]

		for _, sym := range alphabet {
			moved := n.Move(st.members, sym)
			if len(moved) == 0 {
				continue
			}
			closure := n.EpsilonClosure(moved)
			closureKey := util.NewIntSet(closure...).Key()

			if _, ok := states[closureKey]; !ok {
				states[closureKey] = &dstate{members: closure, trans: map[string]int{}}
				indexByKey[closureKey] = len(order)
				order = append(order, closureKey)
				queue = append(queue, closureKey)
			}
			st.trans[sym] = indexByKey[closureKey]
		}
	}

	dfa := &DFA{
		NumStates: len(order),
		Trans:     make([]map[string]int, len(order)),
		Start:     0,
		Accept:    map[int]bool{},
	}

	for i, key := range order {
		st := states[key]
		dfa.Trans[i] = st.trans
		for _, m := range st.members {
			if n.IsAccepting(m) {
				dfa.Accept[i] = true
				break
			}
		}
	}

	return dfa
}
