package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/neuroevolutus/simple-c-compiler/pkg/ast"
	"github.com/neuroevolutus/simple-c-compiler/pkg/parser"
)

func mustParse(t *testing.T, source string) ast.Program {
	t.Helper()
	program, err := parser.Parse(source)
	require.NoError(t, err)
	return program
}

func TestParseReturnConstant(t *testing.T) {
	got := mustParse(t, "int main(void) { return 2; }")
	want := ast.Program{Function: ast.Function{
		Name: "main",
		Body: ast.Return{Expr: ast.LiteralConstant{Value: 2}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected AST (-want +got):\n%s", diff)
	}
}

func TestParseNestedUnary(t *testing.T) {
	got := mustParse(t, "int main(void) { return -(~2); }")
	want := ast.Program{Function: ast.Function{
		Name: "main",
		Body: ast.Return{Expr: ast.Unary{
			Op:    ast.Negate,
			Inner: ast.Unary{Op: ast.Complement, Inner: ast.LiteralConstant{Value: 2}},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected AST (-want +got):\n%s", diff)
	}
}

func TestParsePrecedenceClimbing(t *testing.T) {
	// `2 + 3 * 4` should bind as `2 + (3 * 4)`, not `(2 + 3) * 4`.
	got := mustParse(t, "int main(void) { return 2 + 3 * 4; }")
	want := ast.Binary{
		Op:   ast.Add,
		Left: ast.LiteralConstant{Value: 2},
		Right: ast.Binary{
			Op:    ast.Multiply,
			Left:  ast.LiteralConstant{Value: 3},
			Right: ast.LiteralConstant{Value: 4},
		},
	}
	if diff := cmp.Diff(want, got.Function.Body.(ast.Return).Expr); diff != "" {
		t.Errorf("unexpected precedence (-want +got):\n%s", diff)
	}
}

func TestParseDoubleNegationRejected(t *testing.T) {
	// `--2` decrement-lexes as a single Decrement operator token, which
	// has no unary-prefix meaning in this grammar, so parsing must fail
	// rather than silently treat it as `-(-2)`.
	_, err := parser.Parse("int main(void) { return --2; }")
	require.Error(t, err)
}

func TestParseMismatchedParenWrapsNonTerminalChain(t *testing.T) {
	_, err := parser.Parse("int main(void) { return (2; }")
	require.Error(t, err)

	var nt parser.NonTerminalError
	require.ErrorAs(t, err, &nt)
	assert_contains := func(name string) {
		t.Helper()
		var cursor error = err
		for cursor != nil {
			if e, ok := cursor.(parser.NonTerminalError); ok && e.NonTerminal == name {
				return
			}
			cursor = unwrapOnce(cursor)
		}
		t.Fatalf("expected a NonTerminalError for %q in the chain", name)
	}
	assert_contains("program")
	assert_contains("function")
}

func unwrapOnce(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}

func TestParseExtraneousTrailingToken(t *testing.T) {
	_, err := parser.Parse("int main(void) { return 2; } }")
	require.Error(t, err)
	var extra parser.ExtraneousTokenError
	require.ErrorAs(t, err, &extra)
}
