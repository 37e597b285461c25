// Package parser implements the compiler's recursive-descent parser: it
// consumes the token sequence pkg/lexer produces and builds the pkg/ast
// tree, using precedence climbing for binary expressions.
package parser

import (
	"github.com/neuroevolutus/simple-c-compiler/pkg/ast"
	"github.com/neuroevolutus/simple-c-compiler/pkg/lexer"
	"github.com/neuroevolutus/simple-c-compiler/pkg/token"
)

// ----------------------------------------------------------------------------
// Precedence table

// binOp pairs a binary operator's parsed AST form with its precedence
// level; encoding this as data, rather than one parse method per level,
// isolates the grammar's change surface to this single table.
type binOp struct {
	Prec int
	Op   ast.BinaryOp
}

// precedenceTable ranks every binary operator this grammar supports,
// keyed on the lexical operator.
var precedenceTable = map[token.OpKind]binOp{
	token.Asterisk: {50, ast.Multiply},
	token.Slash:    {50, ast.Divide},
	token.Percent:  {50, ast.Remainder},
	token.Plus:     {45, ast.Add},
	token.Hyphen:   {45, ast.Subtract},
	token.Shl:      {40, ast.ShiftLeft},
	token.Shr:      {40, ast.ShiftRight},
	token.Lt:       {35, ast.LessThan},
	token.Le:       {35, ast.LessOrEqual},
	token.Gt:       {35, ast.GreaterThan},
	token.Ge:       {35, ast.GreaterOrEqual},
	token.Eq:       {30, ast.Equal},
	token.Ne:       {30, ast.NotEqual},
	token.Amp:      {25, ast.BitAnd},
	token.Caret:    {20, ast.BitXor},
	token.Pipe:     {15, ast.BitOr},
	token.AndAnd:   {10, ast.LogicalAnd},
	token.OrOr:     {5, ast.LogicalOr},
}

// ----------------------------------------------------------------------------
// Parser

// A Parser holds one token of lookahead pulled lazily from a Lexer.
type Parser struct {
	lex   *lexer.Lexer
	tok   token.Token
	atEnd bool
}

// Parse runs the full `program → function EOF` grammar over 'source'
// and returns the resulting AST, or the NonTerminalError chain (outermost
// frame <program>) describing where parsing failed. A lex error on the
// very first token is returned as a bare LiftedLexError.
func Parse(source string) (ast.Program, error) {
	p := &Parser{lex: lexer.New(source)}
	if err := p.advance(); err != nil {
		return ast.Program{}, err
	}
	return p.parseProgram()
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		if _, isEOF := err.(lexer.EOFError); isEOF {
			p.tok, p.atEnd = nil, true
			return nil
		}
		return LiftedLexError{Cause: err.(lexer.Error)}
	}
	p.tok, p.atEnd = tok, false
	return nil
}

// expect consumes the current token if it equals 'expected' exactly,
// advancing past it; otherwise it fails without consuming.
func (p *Parser) expect(expected token.Token) error {
	if p.atEnd {
		return EOFError{}
	}
	if p.tok != expected {
		return TokenExpectationError{Expected: expected, Actual: p.tok}
	}
	return p.advance()
}

// expectIdentifier consumes the current token if it's an Identifier,
// returning its name; otherwise fails without consuming.
func (p *Parser) expectIdentifier() (string, error) {
	if p.atEnd {
		return "", EOFError{}
	}
	ident, ok := p.tok.(token.Identifier)
	if !ok {
		return "", TokenCreationError{Source: p.tok, DestinationKind: "identifier"}
	}
	return ident.Name, p.advance()
}

// ----------------------------------------------------------------------------
// Grammar

// program → function EOF
func (p *Parser) parseProgram() (ast.Program, error) {
	fn, err := p.parseFunction()
	if err != nil {
		return ast.Program{}, wrap("program", err)
	}
	if !p.atEnd {
		return ast.Program{}, wrap("program", ExtraneousTokenError{Token: p.tok})
	}
	return ast.Program{Function: fn}, nil
}

// function → "int" identifier "(" "void" ")" "{" statement "}"
func (p *Parser) parseFunction() (ast.Function, error) {
	fail := func(err error) (ast.Function, error) { return ast.Function{}, wrap("function", err) }

	if err := p.expect(token.Keyword{Kind: token.Int}); err != nil {
		return fail(err)
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return fail(err)
	}
	if err := p.expect(token.Punct{Kind: token.LeftParenthesis}); err != nil {
		return fail(err)
	}
	if err := p.expect(token.Keyword{Kind: token.Void}); err != nil {
		return fail(err)
	}
	if err := p.expect(token.Punct{Kind: token.RightParenthesis}); err != nil {
		return fail(err)
	}
	if err := p.expect(token.Punct{Kind: token.LeftBrace}); err != nil {
		return fail(err)
	}
	body, err := p.parseStatement()
	if err != nil {
		return fail(err)
	}
	if err := p.expect(token.Punct{Kind: token.RightBrace}); err != nil {
		return fail(err)
	}
	return ast.Function{Name: name, Body: body}, nil
}

// statement → "return" expression ";"
func (p *Parser) parseStatement() (ast.Statement, error) {
	fail := func(err error) (ast.Statement, error) { return nil, wrap("statement", err) }

	if err := p.expect(token.Keyword{Kind: token.Return}); err != nil {
		return fail(err)
	}
	expr, err := p.parseExpression(0)
	if err != nil {
		return fail(err)
	}
	if err := p.expect(token.Punct{Kind: token.Semicolon}); err != nil {
		return fail(err)
	}
	return ast.Return{Expr: expr}, nil
}

// expression → precedence-climbing over binary ops, base = factor
//
// parseExpression(minPrec) parses one factor, then repeatedly consumes a
// binary operator whose precedence is >= minPrec and folds in its
// right-hand side, parsed at one precedence level higher so the result
// is left-associative.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, wrap("expression", err)
	}

	for {
		entry, isBinOp := p.peekBinaryOp()
		if !isBinOp || entry.Prec < minPrec {
			break
		}
		if err := p.advance(); err != nil {
			return nil, wrap("expression", err)
		}
		right, err := p.parseExpression(entry.Prec + 1)
		if err != nil {
			return nil, wrap("expression", err)
		}
		left = ast.Binary{Op: entry.Op, Left: left, Right: right}
	}

	return left, nil
}

func (p *Parser) peekBinaryOp() (binOp, bool) {
	if p.atEnd {
		return binOp{}, false
	}
	op, ok := p.tok.(token.Operator)
	if !ok {
		return binOp{}, false
	}
	entry, ok := precedenceTable[op.Kind]
	return entry, ok
}

// factor → literal | unary-op factor | "(" expression ")"
//
// unary-op → "-" | "~" | "!"
func (p *Parser) parseFactor() (ast.Expression, error) {
	fail := func(err error) (ast.Expression, error) { return nil, wrap("factor", err) }

	if p.atEnd {
		return fail(EOFError{})
	}

	switch t := p.tok.(type) {
	case token.LiteralConstant:
		if err := p.advance(); err != nil {
			return fail(err)
		}
		return ast.LiteralConstant{Value: t.Value}, nil

	case token.Operator:
		unaryOp, ok := unaryOpFor(t.Kind)
		if !ok {
			return fail(TokenCreationError{Source: t, DestinationKind: "factor"})
		}
		if err := p.advance(); err != nil {
			return fail(err)
		}
		inner, err := p.parseFactor()
		if err != nil {
			return fail(err)
		}
		return ast.Unary{Op: unaryOp, Inner: inner}, nil

	case token.Punct:
		if t.Kind != token.LeftParenthesis {
			return fail(TokenCreationError{Source: t, DestinationKind: "factor"})
		}
		if err := p.advance(); err != nil {
			return fail(err)
		}
		inner, err := p.parseExpression(0)
		if err != nil {
			return fail(err)
		}
		if p.atEnd || p.tok != (token.Punct{Kind: token.RightParenthesis}) {
			return fail(UnmatchedParenthesesError{})
		}
		if err := p.advance(); err != nil {
			return fail(err)
		}
		return inner, nil

	default:
		return fail(TokenCreationError{Source: t, DestinationKind: "factor"})
	}
}

// unaryOpFor maps the lexical operator token to its AST unary-op form.
// Note that Decrement ("--") is deliberately absent: `--2` must fail to
// parse, since this grammar never accepts the decrement operator as a
// factor start even though the lexer tokenizes it.
func unaryOpFor(kind token.OpKind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Hyphen:
		return ast.Negate, true
	case token.Tilde:
		return ast.Complement, true
	case token.Bang:
		return ast.Not, true
	default:
		return 0, false
	}
}
