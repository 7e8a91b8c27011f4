package resolver

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/parser"
	"github.com/sagark4/golox/internal/scanner"
)

func resolveSource(t *testing.T, source string) ([]ast.Stmt, Locals, *ifaceerr.Reporter) {
	t.Helper()
	var buf bytes.Buffer
	reporter := ifaceerr.NewReporter(&buf)
	tokens, _ := scanner.Scan(source, reporter)
	p := parser.New(tokens, reporter)
	statements := p.Parse()
	require.False(t, reporter.HadError, "parse errors: %s", buf.String())
	locals := Resolve(statements, reporter)
	return statements, locals, reporter
}

func TestResolveLocalClosureDepth(t *testing.T) {
	statements, locals, reporter := resolveSource(t, `
		var a = "global";
		{
			var a = "outer";
			{
				print a;
			}
		}
	`)
	assert.False(t, reporter.HadError)

	outerBlock := statements[1].(*ast.Block)
	innerBlock := outerBlock.Statements[1].(*ast.Block)
	printStmt := innerBlock.Statements[0].(*ast.Print)
	variable := printStmt.Expression.(*ast.Variable)

	depth, ok := locals[variable.ID]
	require.True(t, ok, "expected a resolved local depth for the inner-block reference")
	assert.Equal(t, 1, depth)
}

func TestResolveGlobalHasNoEntry(t *testing.T) {
	statements, locals, reporter := resolveSource(t, `
		var a = "global";
		print a;
	`)
	assert.False(t, reporter.HadError)

	printStmt := statements[1].(*ast.Print)
	variable := printStmt.Expression.(*ast.Variable)

	_, ok := locals[variable.ID]
	assert.False(t, ok, "global references should have no resolved depth")
}

func TestResolveSelfInitializationIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		var a = "outer";
		{
			var a = a;
		}
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveDuplicateLocalDeclarationIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		{
			var a = 1;
			var a = 2;
		}
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveReturnOutsideFunctionIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `return 1;`)
	assert.True(t, reporter.HadError)
}

func TestResolveReturnValueFromInitializerIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		class Foo {
			init() {
				return 1;
			}
		}
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveReturnNilFromInitializerIsAllowed(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		class Foo {
			init() {
				return;
			}
		}
	`)
	assert.False(t, reporter.HadError)
}

func TestResolveThisOutsideClassIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `print this;`)
	assert.True(t, reporter.HadError)
}

func TestResolveSuperWithoutSuperclassIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		class Foo {
			bar() {
				super.bar();
			}
		}
	`)
	assert.True(t, reporter.HadError)
}

func TestResolveClassInheritingFromItselfIsAnError(t *testing.T) {
	_, _, reporter := resolveSource(t, `class Foo < Foo {}`)
	assert.True(t, reporter.HadError)
}

func TestResolveValidSuperUsage(t *testing.T) {
	_, _, reporter := resolveSource(t, `
		class Base {
			greet() { print "base"; }
		}
		class Derived < Base {
			greet() {
				super.greet();
			}
		}
	`)
	assert.False(t, reporter.HadError)
}
