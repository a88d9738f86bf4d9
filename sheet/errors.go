package sheet

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// SyntaxError reports text that does not match the grammar.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// UnresolvedReferenceError reports a name used before (or without) being
// declared.
type UnresolvedReferenceError struct {
	Pos  lexer.Position
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: tune %q has never been declared", e.Pos, e.Name)
}

// RangeError reports a literal that parses but cannot be played: a repeat
// count below one, an inverted random range, a zero duration or rest.
type RangeError struct {
	Pos lexer.Position
	Msg string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
