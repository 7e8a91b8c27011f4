package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/parser"
	"github.com/sagark4/golox/internal/resolver"
	"github.com/sagark4/golox/internal/scanner"
)

// run scans, parses, resolves, and interprets source, returning whatever
// was written to stdout and the Reporter that collected diagnostics.
func run(t *testing.T, source string) (string, *ifaceerr.Reporter) {
	t.Helper()
	var out bytes.Buffer
	reporter := ifaceerr.NewReporter(&out)

	tokens, hadErr := scanner.Scan(source, reporter)
	require.False(t, hadErr)
	require.False(t, reporter.HadError)

	p := parser.New(tokens, reporter)
	statements := p.Parse()
	require.False(t, reporter.HadError)

	locals := resolver.Resolve(statements, reporter)
	require.False(t, reporter.HadError)

	in := New(&out, reporter)
	in.Interpret(statements, locals)

	return out.String(), reporter
}

func TestArithmeticPrecedence(t *testing.T) {
	out, reporter := run(t, `print 1 + 2 * 3;`)
	assert.False(t, reporter.HadRuntimeError)
	assert.Equal(t, "7\n", out)
}

func TestIntegralNumberPrintsWithoutDecimalPoint(t *testing.T) {
	out, _ := run(t, `print 10 / 2;`)
	assert.Equal(t, "5\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestMixedPlusOperandsIsARuntimeError(t *testing.T) {
	_, reporter := run(t, `print "foo" + 1;`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestTruthiness(t *testing.T) {
	out, _ := run(t, `
		if (0) print "zero is truthy"; else print "zero is falsy";
		if ("") print "empty string is truthy"; else print "empty string is falsy";
		if (nil) print "nil is truthy"; else print "nil is falsy";
	`)
	assert.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsy\n", out)
}

func TestLogicalShortCircuit(t *testing.T) {
	out, _ := run(t, `
		fun sideEffect() { print "called"; return true; }
		print false and sideEffect();
		print true or sideEffect();
	`)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestVariableScopingShadowsAndRestores(t *testing.T) {
	out, _ := run(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	assert.Equal(t, "inner\nouter\n", out)
}

func TestClosureCapturesBindingNotValue(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForDesugaredLoop(t *testing.T) {
	out, _ := run(t, `
		for (var i = 0; i < 3; i = i + 1) print i;
	`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestFunctionReturn(t *testing.T) {
	out, _ := run(t, `
		fun add(a, b) { return a + b; }
		print add(2, 3);
	`)
	assert.Equal(t, "5\n", out)
}

func TestFunctionFallsOffEndReturnsNil(t *testing.T) {
	out, _ := run(t, `
		fun noop() {}
		print noop();
	`)
	assert.Equal(t, "nil\n", out)
}

func TestCallArityMismatchIsARuntimeError(t *testing.T) {
	_, reporter := run(t, `
		fun add(a, b) { return a + b; }
		add(1);
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestCallingANonCallableIsARuntimeError(t *testing.T) {
	_, reporter := run(t, `
		var notAFunction = 1;
		notAFunction();
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestClassInstantiationAndFieldAccess(t *testing.T) {
	out, _ := run(t, `
		class Point {}
		var p = Point();
		p.x = 1;
		p.y = 2;
		print p.x + p.y;
	`)
	assert.Equal(t, "3\n", out)
}

func TestMethodCallBindsThis(t *testing.T) {
	out, _ := run(t, `
		class Counter {
			init() { this.count = 0; }
			increment() { this.count = this.count + 1; return this.count; }
		}
		var c = Counter();
		print c.increment();
		print c.increment();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestInitializerAlwaysReturnsInstance(t *testing.T) {
	out, _ := run(t, `
		class Thing {
			init() { return; }
		}
		var t = Thing();
		print t;
	`)
	assert.True(t, strings.HasSuffix(out, "Thing instance\n"))
}

func TestInheritanceAndSuperCall(t *testing.T) {
	out, _ := run(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof!";
			}
		}
		Dog().speak();
	`)
	assert.Equal(t, "...\nWoof!\n", out)
}

func TestUndefinedPropertyIsARuntimeError(t *testing.T) {
	_, reporter := run(t, `
		class Empty {}
		print Empty().missing;
	`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestUndefinedVariableIsARuntimeError(t *testing.T) {
	_, reporter := run(t, `print undeclared;`)
	assert.True(t, reporter.HadRuntimeError)
}

func TestEqualityAcrossVariantsIsAlwaysFalse(t *testing.T) {
	out, _ := run(t, `
		print 1 == "1";
		print nil == false;
	`)
	assert.Equal(t, "false\nfalse\n", out)
}

func TestClockIsCallableWithZeroArity(t *testing.T) {
	_, reporter := run(t, `print clock();`)
	assert.False(t, reporter.HadRuntimeError)
}
