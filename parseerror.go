package packrat

import (
	"fmt"
	"strings"
)

// ParseError is the single error kind this package produces. It carries a
// snapshot of the source it was raised against, the position at which the
// failure was detected, and a human-readable reason. ParseErrors are
// returned as values, never panicked, and are equal under structural
// comparison (see Equal).
type ParseError struct {
	Source Input
	Pos    Position
	Reason string
}

// newParseError builds a ParseError tagged with the given reason at pos.
func newParseError(in Input, pos Position, reason string) *ParseError {
	return &ParseError{Source: in, Pos: pos, Reason: reason}
}

// Error implements the error interface. It returns a single-line summary;
// use Render for the full three-line diagnostic.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Reason)
}

// Render renders the error as three lines: the source, a caret pointing at
// Pos, and the reason string.
func (e *ParseError) Render() string {
	src := e.Source.String()
	caret := strings.Repeat(" ", int(e.Pos)) + "^"
	return fmt.Sprintf("%s\n%s\n%s", src, caret, e.Reason)
}

// Equal reports whether e and other describe the same failure: same
// position, same reason, same source snapshot.
func (e *ParseError) Equal(other *ParseError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Pos == other.Pos && e.Reason == other.Reason && e.Source.String() == other.Source.String()
}

// reasonExpectedGot formats the standard "expected X got Y" reason used by
// satisfy and its derivatives.
func reasonExpectedGot(name string, got rune, isEOF bool) string {
	if isEOF {
		return fmt.Sprintf("expected %s got EOF", name)
	}
	return fmt.Sprintf("expected %s got %q", name, got)
}
