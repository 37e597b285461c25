package parser

import (
	"fmt"

	"github.com/neuroevolutus/simple-c-compiler/pkg/lexer"
	"github.com/neuroevolutus/simple-c-compiler/pkg/token"
)

// ----------------------------------------------------------------------------
// Parser error taxonomy

// Error is implemented by every parser failure. Every non-terminal grammar
// rule wraps whatever error its children produced in a NonTerminalError
// bearing its own name before propagating it up, so the fully unwound
// error prints as a stack of grammar-rule frames bottoming out in one of
// the leaf kinds below.
type Error interface {
	error
	isParseError()
}

// NonTerminalError wraps a child parse error with the name of the
// grammar rule that was being parsed when it surfaced.
type NonTerminalError struct {
	NonTerminal string
	Child       error
}

func (NonTerminalError) isParseError() {}
func (e NonTerminalError) Error() string {
	return fmt.Sprintf("Parser error: invalid non-terminal <%s>:\n%s", e.NonTerminal, e.Child.Error())
}

// Unwrap exposes the child error to the standard errors.Is/errors.As so
// the driver can inspect the root cause without string-matching the
// rendered message.
func (e NonTerminalError) Unwrap() error { return e.Child }

// wrap builds a NonTerminalError for 'name', or returns nil untouched.
func wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return NonTerminalError{NonTerminal: name, Child: err}
}

// TokenExpectationError reports that a specific expected token value
// didn't match the specific token actually present.
type TokenExpectationError struct{ Expected, Actual token.Token }

func (TokenExpectationError) isParseError() {}
func (e TokenExpectationError) Error() string {
	return fmt.Sprintf("Parser error: Expected (%s) but got (%s)", e.Expected, e.Actual)
}

// TokenCreationError reports that the parser tried to interpret the
// current token as some destination syntactic kind (an identifier, a
// literal, a factor, ...) and the token's actual variant doesn't support it.
type TokenCreationError struct {
	Source          token.Token
	DestinationKind string
}

func (TokenCreationError) isParseError() {}
func (e TokenCreationError) Error() string {
	return fmt.Sprintf("Parser error: Cannot create (%s) from (%s)", e.DestinationKind, e.Source)
}

// UnmatchedParenthesesError reports a parenthesised expression whose
// closing ')' was never found.
type UnmatchedParenthesesError struct{}

func (UnmatchedParenthesesError) isParseError()   {}
func (UnmatchedParenthesesError) Error() string { return "Parser error: Unmatched parentheses" }

// ExtraneousTokenError reports leftover input after a complete `program`
// was parsed.
type ExtraneousTokenError struct{ Token token.Token }

func (ExtraneousTokenError) isParseError() {}
func (e ExtraneousTokenError) Error() string {
	return fmt.Sprintf("Parser error: Extraneous token: (%s)", e.Token)
}

// EOFError reports that a token was required but the input was already
// exhausted.
type EOFError struct{}

func (EOFError) isParseError() {}
func (EOFError) Error() string  { return "Parser error: reached end of file" }

// LiftedLexError wraps a lexer-stage error (InvalidToken/OverflowedLiteral)
// so it can flow through the parser's error chain as a leaf, unchanged in
// meaning.
type LiftedLexError struct{ Cause lexer.Error }

func (LiftedLexError) isParseError()    {}
func (e LiftedLexError) Error() string  { return e.Cause.Error() }
func (e LiftedLexError) Unwrap() error  { return e.Cause }
