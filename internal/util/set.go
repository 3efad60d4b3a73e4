// Package util holds small collection helpers shared by the compiler
// pipeline. It is adapted from the set helpers ictiobus used for
// subset-construction bookkeeping, trimmed to the two concrete element types
// the automaton packages actually need: state ids (int) and symbols
// (string). The original ISet[E]/VSet[E] generic container hierarchy is not
// carried over; nothing here needs to be polymorphic over an arbitrary
// element type, so the generic interface layer would be unused abstraction.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// IntSet is a set of int, used by the determinizer to name NFA-state
// subsets.
type IntSet map[int]bool

// NewIntSet returns a new IntSet containing the given elements.
func NewIntSet(of ...int) IntSet {
	s := IntSet{}
	for _, v := range of {
		s.Add(v)
	}
	return s
}

// Add adds v to the set. Has no effect if v is already present.
func (s IntSet) Add(v int) { s[v] = true }

// Has returns whether v is in the set.
func (s IntSet) Has(v int) bool { return s[v] }

// Len returns the number of elements in the set.
func (s IntSet) Len() int { return len(s) }

// Sorted returns the elements of the set in ascending order. Used anywhere a
// deterministic iteration order over a state subset is required, such as
// canonical subset naming in the determinizer.
func (s IntSet) Sorted() []int {
	elems := make([]int, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	sort.Ints(elems)
	return elems
}

// Key returns a canonical string identity for the set, suitable for use as a
// map key when the set represents a DFA state built from an NFA subset
// (the purple-dragon-book "Dstates" keying scheme).
func (s IntSet) Key() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

// StringSet is a set of string, used for the automaton input alphabet and
// for small bookkeeping sets keyed by symbol name.
type StringSet map[string]bool

// NewStringSet returns a new StringSet containing the given elements.
func NewStringSet(of ...string) StringSet {
	s := StringSet{}
	for _, v := range of {
		s.Add(v)
	}
	return s
}

// Add adds v to the set. Has no effect if v is already present.
func (s StringSet) Add(v string) { s[v] = true }

// Sorted returns the elements of the set in lexicographic order.
// DFA.Alphabet relies on this for its fixed symbol order.
func (s StringSet) Sorted() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	sort.Strings(elems)
	return elems
}
