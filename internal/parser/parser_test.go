package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/scanner"
)

func parseSource(t *testing.T, source string) ([]ast.Stmt, *ifaceerr.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := ifaceerr.NewReporter(&buf)
	tokens, _ := scanner.Scan(source, reporter)
	p := New(tokens, reporter)
	return p.Parse(), reporter
}

func TestParseExpressionStatement(t *testing.T) {
	stmts, reporter := parseSource(t, "1 + 2 * 3;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ast.Expression)
	require.True(t, ok)
	assert.Equal(t, "(+ 1 (* 2 3))", ast.PrintExpr(exprStmt.Expression))
}

func TestParseVarDeclaration(t *testing.T) {
	stmts, reporter := parseSource(t, "var x = 1;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	varStmt, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "x", varStmt.Name.Lexeme)
	assert.Equal(t, "1", ast.PrintExpr(varStmt.Initializer))
}

func TestParseAssignmentTarget(t *testing.T) {
	stmts, reporter := parseSource(t, "a.b = 1;")
	require.False(t, reporter.HadError)

	exprStmt := stmts[0].(*ast.Expression)
	_, ok := exprStmt.Expression.(*ast.Set)
	assert.True(t, ok, "expected a Set expression, got %T", exprStmt.Expression)
}

func TestParseInvalidAssignmentTargetReportsButDoesNotPanic(t *testing.T) {
	_, reporter := parseSource(t, "1 = 2;")
	assert.True(t, reporter.HadError)
}

func TestParseForDesugaring(t *testing.T) {
	stmts, reporter := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	// With an initializer present, the whole thing is wrapped in an outer
	// block: (block (var i) (while ...))
	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*ast.Var)
	assert.True(t, isVar)

	whileStmt, isWhile := block.Statements[1].(*ast.While)
	require.True(t, isWhile)

	// The body is itself a block containing the original body plus the
	// appended increment expression statement.
	bodyBlock, ok := whileStmt.Body.(*ast.Block)
	require.True(t, ok)
	assert.Len(t, bodyBlock.Statements, 2)
}

func TestParseForWithoutInitializerHasNoOuterBlock(t *testing.T) {
	stmts, reporter := parseSource(t, "for (; true; ) print 1;")
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 1)

	_, ok := stmts[0].(*ast.While)
	assert.True(t, ok, "expected no wrapping block when there is no initializer, got %T", stmts[0])
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, reporter := parseSource(t, `
		class Base { greet() { print "base"; } }
		class Derived < Base { greet() { print "derived"; } }
	`)
	require.False(t, reporter.HadError)
	require.Len(t, stmts, 2)

	derived, ok := stmts[1].(*ast.Class)
	require.True(t, ok)
	require.NotNil(t, derived.Superclass)
	assert.Equal(t, "Base", derived.Superclass.Name.Lexeme)
	require.Len(t, derived.Methods, 1)
	assert.Equal(t, "greet", derived.Methods[0].Name.Lexeme)
}

func TestParseMissingSemicolonReportsError(t *testing.T) {
	_, reporter := parseSource(t, "var x = 1")
	assert.True(t, reporter.HadError)
}

func TestParseTooManyArgumentsReportsButContinues(t *testing.T) {
	var args bytes.Buffer
	for i := 0; i < 256; i++ {
		if i > 0 {
			args.WriteString(", ")
		}
		args.WriteString("1")
	}
	stmts, reporter := parseSource(t, "f("+args.String()+");")
	assert.True(t, reporter.HadError)
	assert.Len(t, stmts, 1)
}

func TestSynchronizeRecoversAtNextStatement(t *testing.T) {
	stmts, reporter := parseSource(t, "var ; var y = 2;")
	assert.True(t, reporter.HadError)
	require.Len(t, stmts, 1)
	varStmt, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "y", varStmt.Name.Lexeme)
}
