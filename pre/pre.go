// Package pre is the public driver for the Parallel Regular Expression
// compiler (component C8): it parses a PRE string, lazily builds and caches
// its automaton pipeline, and exposes a pull-based plan enumerator plus a
// small action-dispatch loop, in the same spirit as tunaq's top-level
// Engine wrapping its game/command/world internals behind one entry point.
package pre

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/dekarrin/pregex/internal/pre/ast"
	"github.com/dekarrin/pregex/internal/pre/automaton"
	"github.com/dekarrin/pregex/internal/pre/enum"
	"github.com/dekarrin/pregex/internal/preerrors"
	"github.com/dekarrin/pregex/internal/prelog"
)

// Options configures a single Compile call. The zero value is a usable
// configuration: an unminimized cache, no forced reset, infinite-language
// warnings enabled, an empty dispatcher namespace, and non-verbose
// logging.
type Options struct {
	// Minimize applies Hopcroft-style (here, Moore's fixed-point)
	// minimization to the determinized DFA before it is trimmed and cached.
	Minimize bool

	// Reset discards any cached DFA and enumerator and forces a rebuild on
	// the next access, even if Minimize and AllowInfinite are unchanged
	// from the build that produced the current cache. It is consumed: once
	// acted on, it reads back as false.
	Reset bool

	// AllowInfinite suppresses the cyclic-DFA warning that is otherwise
	// logged the first time a cyclic automaton is built. It does not change
	// enumeration: with or without it, a cyclic automaton's plans are
	// produced up to enum.MaxCycleRevisits extra visits per state.
	AllowInfinite bool

	// Namespace is passed verbatim as the first argument to every
	// Dispatcher call.
	Namespace string

	// Verbose enables DEBUG-level diagnostics on the driver's logger; INFO
	// and higher levels are logged either way.
	Verbose bool

	// StateCeiling overrides automaton.DefaultStateCeiling for this
	// compilation. Zero means use the default.
	StateCeiling int
}

// Plan is one accepted string of a compiled automaton, rendered as its
// symbol sequence separated by single spaces with a trailing space, per
// spec §6's "Plan rendering".
type Plan string

// Symbols splits a Plan back into its constituent symbol names, discarding
// any empty tokens produced by the trailing space.
func (p Plan) Symbols() []string {
	var out []string
	start := -1
	for i := 0; i <= len(p); i++ {
		if i < len(p) && p[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, string(p[start:i]))
			start = -1
		}
	}
	return out
}

// Dispatcher is the collaborator-supplied action executor: given the
// driver's namespace, the plan symbol being invoked, and the current
// scope, it returns the next scope or an error that aborts the run.
type Dispatcher func(namespace, name string, scope any) (any, error)

// Compiled is a parsed PRE together with its lazily-built and cached
// automaton pipeline and enumerator. A Compiled value owns its parse tree
// and cached automata; those automata are immutable once built and safe
// for concurrent read-only use, but a Compiled instance itself is not safe
// for concurrent mutation (concurrent NextPlan/Reset/RunOnce calls), per
// spec §5's shared-resource policy.
type Compiled struct {
	src  string
	tree *ast.Node
	opts Options

	logger *prelog.Logger
	id     uuid.UUID

	pfa *automaton.PFA
	nfa *automaton.NFA
	dfa *automaton.DFA
	enu *enum.Enumerator

	builtMinimize      bool
	builtAllowInfinite bool
	warnedCycle        bool
}

// Compile parses src and returns a Compiled driver over it. Parsing happens
// immediately, so a malformed PRE is reported here as a ParseError; the
// automaton pipeline itself is built lazily on first access (NextPlan,
// RunOnce, DFA, Fingerprint, ...), matching spec §4.8's description of
// dfa() as the operation that actually materializes the cache.
func Compile(src string, opts Options) (*Compiled, error) {
	tree, err := ast.Parse(src)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		src:    src,
		tree:   tree,
		opts:   opts,
		logger: prelog.New(os.Stderr, opts.Verbose),
		id:     uuid.New(),
	}, nil
}

// InstanceID returns the unique identity assigned to this Compiled value at
// construction, for correlating diagnostics across multiple compiled
// instances of what may be the same PRE text.
func (c *Compiled) InstanceID() uuid.UUID { return c.id }

// Source returns the original PRE text this instance was compiled from.
func (c *Compiled) Source() string { return c.src }

// ensureBuilt materializes (or rebuilds) the cached PFA/NFA/DFA and
// enumerator if needed: on first access, after an explicit Reset, or after
// Minimize/AllowInfinite changed since the last build — the Open Question
// resolution of implicit reset-on-option-change recorded for this driver.
func (c *Compiled) ensureBuilt() error {
	needsRebuild := c.dfa == nil ||
		c.opts.Reset ||
		c.builtMinimize != c.opts.Minimize ||
		c.builtAllowInfinite != c.opts.AllowInfinite

	if !needsRebuild {
		if c.enu == nil {
			c.enu = enum.New(c.dfa, c.opts.AllowInfinite)
		}
		return nil
	}

	ceiling := c.opts.StateCeiling
	if ceiling == 0 {
		ceiling = automaton.DefaultStateCeiling
	}

	c.pfa = automaton.BuildPFA(c.tree)

	nfa, err := automaton.LowerToNFAWithLimit(c.tree, ceiling)
	if err != nil {
		return err
	}
	c.nfa = nfa

	dfa := automaton.Determinize(nfa)
	if c.opts.Minimize {
		dfa = automaton.Minimize(dfa)
	}
	dfa = automaton.Trim(dfa)
	c.dfa = dfa

	if dfa.HasCycle() && !c.opts.AllowInfinite && !c.warnedCycle {
		c.logger.Warnf("compiled automaton for %q is cyclic; only a bounded prefix of its plans is enumerated", c.src)
		c.warnedCycle = true
	}

	c.enu = enum.New(dfa, c.opts.AllowInfinite)
	c.builtMinimize = c.opts.Minimize
	c.builtAllowInfinite = c.opts.AllowInfinite
	c.opts.Reset = false

	c.logger.Debugf("rebuilt automaton for %q: %d states, minimize=%v, allow_infinite=%v", c.src, dfa.NumStates, c.opts.Minimize, c.opts.AllowInfinite)

	return nil
}

// DFA returns the cached, trimmed (and, if Options.Minimize is set,
// minimized) DFA, building it first if necessary.
func (c *Compiled) DFA() (*automaton.DFA, error) {
	if err := c.ensureBuilt(); err != nil {
		return nil, err
	}
	return c.dfa, nil
}

// NFA returns the cached ε-NFA the DFA was determinized from, building it
// first if necessary.
func (c *Compiled) NFA() (*automaton.NFA, error) {
	if err := c.ensureBuilt(); err != nil {
		return nil, err
	}
	return c.nfa, nil
}

// PFA returns the diagnostic Parallel Finite Automaton (λ-pair form) for
// this instance's parse tree, building it first if necessary. It is never
// consumed by the rest of the pipeline; see automaton.PFA's doc comment.
func (c *Compiled) PFA() (*automaton.PFA, error) {
	if err := c.ensureBuilt(); err != nil {
		return nil, err
	}
	return c.pfa, nil
}

// NextPlan advances the enumerator and returns the next plan, building the
// automaton pipeline first if this is the first call (or if Reset or an
// option change has invalidated the cache). ok is false once every plan
// has been produced; per spec §7, this is reported as an absence, not an
// error.
func (c *Compiled) NextPlan() (Plan, bool, error) {
	if err := c.ensureBuilt(); err != nil {
		return "", false, err
	}
	s, ok := c.enu.Next()
	return Plan(s), ok, nil
}

// Reset discards the cached enumerator (and, per spec §6's Options.reset,
// the cached DFA along with it) so the next NextPlan call rebuilds from
// scratch and restarts enumeration from the beginning.
func (c *Compiled) Reset() {
	c.opts.Reset = true
	c.enu = nil
}

// RunOnce consumes one plan, invoking dispatch once per symbol in order
// and threading scope through each call, per spec §4.8. It stops at the
// first error dispatch raises, wrapping it as a DispatchError and leaving
// the cached automata untouched. consumed is false (with scope returned
// unchanged) if the enumerator was already exhausted.
func (c *Compiled) RunOnce(scope any, dispatch Dispatcher) (result any, consumed bool, err error) {
	plan, ok, err := c.NextPlan()
	if err != nil {
		return scope, false, err
	}
	if !ok {
		return scope, false, nil
	}

	for _, sym := range plan.Symbols() {
		scope, err = dispatch(c.opts.Namespace, sym, scope)
		if err != nil {
			return scope, true, preerrors.Dispatch(sym, err)
		}
	}

	return scope, true, nil
}

// RunAny is a convenience wrapper documented separately in spec §4.8, but
// is identical to RunOnce: both lazily initialize the pipeline if needed,
// obtain exactly one plan, and run it to completion or first error.
func (c *Compiled) RunAny(scope any, dispatch Dispatcher) (result any, consumed bool, err error) {
	return c.RunOnce(scope, dispatch)
}

// Fingerprint returns a hex-encoded BLAKE2b-256 digest of this instance's
// cached DFA's canonical dump, building the pipeline first if necessary.
// Two Compiled values over the same PRE and options produce identical
// fingerprints; this is used to detect accidental automaton drift across
// builds without comparing full dumps by hand.
func (c *Compiled) Fingerprint() (string, error) {
	if _, err := c.DFA(); err != nil {
		return "", err
	}
	sum := blake2b.Sum256([]byte(c.dfa.String()))
	return hex.EncodeToString(sum[:]), nil
}

// String renders a short diagnostic summary of the instance, suitable for
// log lines; it does not trigger automaton construction.
func (c *Compiled) String() string {
	return fmt.Sprintf("Compiled{id=%s, src=%q, minimize=%v, allow_infinite=%v}", c.id, c.src, c.opts.Minimize, c.opts.AllowInfinite)
}
