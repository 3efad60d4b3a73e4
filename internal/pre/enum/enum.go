// Package enum implements the lazy acyclic plan enumerator of spec §4.7
// (component C7): a depth-first walk of a trimmed DFA that yields one plan
// per call, visiting outgoing edges in a deterministic total order
// (lexicographic on symbol, then on target state id) so that two
// enumerators built over identical DFAs always produce identical
// sequences.
package enum

import (
	"sort"
	"strings"

	"github.com/dekarrin/pregex/internal/pre/automaton"
)

// MaxCycleRevisits bounds how many times a single DFA state may *reappear*
// on one DFS path, beyond its first visit, before that branch is pruned
// (so a path may visit a given state at most MaxCycleRevisits+1 times).
// This only matters when the caller opted in to infinite languages
// (allowInfinite) and the underlying DFA is actually cyclic — see New's doc
// comment for the Open Question this resolves.
const MaxCycleRevisits = 1

type status uint8

const (
	statusFresh status = iota
	statusReady
	statusExhausted
)

type labeledEdge struct {
	symbol string
	to     int
}

type frame struct {
	state int
	edges []labeledEdge
	idx   int
}

// Enumerator is the stateful iterator described by spec §4.7's Fresh ->
// Ready -> Exhausted state machine. It holds an explicit DFS stack rather
// than recursing, so that each call to Next can pause and resume the
// traversal exactly where the previous call left off.
type Enumerator struct {
	dfa           *automaton.DFA
	allowInfinite bool
	maxRevisits   int

	edges      [][]labeledEdge
	stack      []frame
	path       []string
	visitCount []int
	status     status
}

// New builds an enumerator over d. allowInfinite is recorded but does not
// change how cycles are handled:
//
// Open Question resolution (spec §9): when d is cyclic and allowInfinite is
// true, the enumerator does not actually enumerate an infinite language —
// no caller could ever drain it. Instead it performs bounded DFS, allowing
// any state to recur at most MaxCycleRevisits times along a single root-to-
// leaf path before pruning that branch. This yields a large but finite,
// deterministic, lexicographically-ordered set of plans that is a faithful
// fair prefix of the true infinite language: every finite plan reachable
// within the revisit bound is produced, shorter plans sort before longer
// ones on any path that shares a prefix, and the walk always terminates.
// When d is cyclic and allowInfinite is false, per spec §4.7 the caller is
// expected to have already been warned and enumeration is unspecified; this
// implementation applies the same revisit bound defensively so that Next
// still terminates rather than looping forever.
func New(d *automaton.DFA, allowInfinite bool) *Enumerator {
	return NewWithRevisitLimit(d, allowInfinite, MaxCycleRevisits)
}

// NewWithRevisitLimit is New with an explicit revisit bound, exposed for
// callers that want to tune how deep a cyclic enumeration goes before a
// branch is pruned.
func NewWithRevisitLimit(d *automaton.DFA, allowInfinite bool, maxRevisits int) *Enumerator {
	edges := make([][]labeledEdge, d.NumStates)
	for s := 0; s < d.NumStates; s++ {
		list := make([]labeledEdge, 0, len(d.Trans[s]))
		for sym, to := range d.Trans[s] {
			list = append(list, labeledEdge{symbol: sym, to: to})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].symbol != list[j].symbol {
				return list[i].symbol < list[j].symbol
			}
			return list[i].to < list[j].to
		})
		edges[s] = list
	}

	return &Enumerator{
		dfa:           d,
		allowInfinite: allowInfinite,
		maxRevisits:   maxRevisits,
		edges:         edges,
		visitCount:    make([]int, d.NumStates),
		status:        statusFresh,
	}
}

// Next advances the enumerator and returns the next plan in lexicographic
// order, rendered as its symbol sequence separated by single spaces with a
// trailing space, and true — or "", false once the enumerator is
// Exhausted. A zero-state DFA (spec §4.6's trimmed-to-empty case) is
// Exhausted from the first call.
func (e *Enumerator) Next() (string, bool) {
	if e.status == statusExhausted {
		return "", false
	}

	if e.status == statusFresh {
		if e.dfa.NumStates == 0 {
			e.status = statusExhausted
			return "", false
		}
		e.status = statusReady
		e.push(e.dfa.Start, "")
		if e.dfa.IsAccepting(e.dfa.Start) {
			return e.plan(), true
		}
	}

	return e.advance()
}

// advance resumes the DFS from the top of the stack, descending into the
// next unvisited edge (in order) and backtracking when a frame is
// exhausted, stopping as soon as it reaches a state that accepts.
func (e *Enumerator) advance() (string, bool) {
	for len(e.stack) > 0 {
		top := &e.stack[len(e.stack)-1]

		if top.idx >= len(top.edges) {
			e.pop()
			continue
		}

		edge := top.edges[top.idx]
		top.idx++

		if e.visitCount[edge.to] > e.maxRevisits {
			continue
		}

		e.push(edge.to, edge.symbol)
		if e.dfa.IsAccepting(edge.to) {
			return e.plan(), true
		}
	}

	e.status = statusExhausted
	return "", false
}

func (e *Enumerator) push(state int, viaSymbol string) {
	if len(e.stack) > 0 {
		e.path = append(e.path, viaSymbol)
	}
	e.stack = append(e.stack, frame{state: state, edges: e.edges[state]})
	e.visitCount[state]++
}

func (e *Enumerator) pop() {
	last := e.stack[len(e.stack)-1]
	e.visitCount[last.state]--
	e.stack = e.stack[:len(e.stack)-1]
	if len(e.path) > 0 {
		e.path = e.path[:len(e.path)-1]
	}
}

func (e *Enumerator) plan() string {
	if len(e.path) == 0 {
		return ""
	}
	return strings.Join(e.path, " ") + " "
}

// Reset returns the enumerator to its initial Fresh state, so the same
// plan sequence can be walked again from the beginning.
func (e *Enumerator) Reset() {
	e.stack = nil
	e.path = nil
	for i := range e.visitCount {
		e.visitCount[i] = 0
	}
	e.status = statusFresh
}
