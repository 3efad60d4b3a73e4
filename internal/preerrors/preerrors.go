// Package preerrors holds the typed error values raised by the PRE compiler
// pipeline. It follows the same shape as tqerrors did for the game
// interpreter: small unexported struct types that implement error, exported
// constructor functions, and Unwrap support where an error wraps another one
// so callers can use errors.As/errors.Is.
package preerrors

import "fmt"

// ParseError reports that a PRE string could not be tokenized or parsed. It
// carries the rune offset and the offending token text so a caller can point
// a user at the exact spot in the source.
type ParseError struct {
	Pos        int
	Unexpected string
	msg        string
}

func (e *ParseError) Error() string {
	return e.msg
}

// Parse returns a new ParseError for an unexpected token found at pos.
func Parse(pos int, unexpected string) error {
	return &ParseError{
		Pos:        pos,
		Unexpected: unexpected,
		msg:        fmt.Sprintf("parse error at position %d: unexpected %q", pos, unexpected),
	}
}

// Parsef returns a new ParseError with a caller-supplied message, still
// carrying the position for programmatic inspection via errors.As.
func Parsef(pos int, unexpected string, format string, a ...interface{}) error {
	return &ParseError{
		Pos:        pos,
		Unexpected: unexpected,
		msg:        fmt.Sprintf("parse error at position %d: %s", pos, fmt.Sprintf(format, a...)),
	}
}

// TooLargeError reports that an intermediate automaton exceeded the
// implementation-defined state ceiling during NFA lowering. This is
// advisory, not a correctness condition: callers may raise the ceiling and
// retry.
type TooLargeError struct {
	Limit int
	Got   int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("automaton exceeded state ceiling of %d states (needs %d)", e.Limit, e.Got)
}

// TooLarge returns a new TooLargeError for an automaton that would need got
// states, more than limit. It is raised before those states are allocated.
func TooLarge(limit, got int) error {
	return &TooLargeError{Limit: limit, Got: got}
}

// DispatchError wraps an error raised by a host-supplied dispatcher during
// Compiled.RunOnce. RunOnce wraps every error a dispatcher returns in one, so
// a host error can be distinguished from a core one with errors.As without
// the host needing to define its own wrapper type; Unwrap keeps the original
// error reachable with errors.Is/errors.As.
type DispatchError struct {
	Symbol string
	wrap   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %q: %s", e.Symbol, e.wrap.Error())
}

func (e *DispatchError) Unwrap() error {
	return e.wrap
}

// Dispatch wraps err, raised while dispatching symbol, as a DispatchError.
// Returns nil if err is nil.
func Dispatch(symbol string, err error) error {
	if err == nil {
		return nil
	}
	return &DispatchError{Symbol: symbol, wrap: err}
}
