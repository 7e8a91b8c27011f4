package lox_test

import (
	"bytes"
	"fmt"
	"log"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagark4/golox/pkg/lox"
)

// Example shows basic usage of the engine.
func Example() {
	var buf bytes.Buffer
	engine := lox.New(lox.WithOutput(&buf))

	if err := engine.Run(`print "Hello, World!";`); err != nil {
		log.Fatal(err)
	}

	fmt.Print(buf.String())
	// Output: Hello, World!
}

// Example_compile demonstrates parsing once and running the same program
// repeatedly against the engine's persistent global scope.
func Example_compile() {
	var buf bytes.Buffer
	engine := lox.New(lox.WithOutput(&buf))

	program, err := engine.Parse(`
		var count = 0;
		fun increment() { count = count + 1; print count; }
	`)
	if err != nil {
		log.Fatal(err)
	}
	if err := engine.RunProgram(program); err != nil {
		log.Fatal(err)
	}

	_ = engine.Run(`increment();`)
	_ = engine.Run(`increment();`)

	fmt.Print(buf.String())
	// Output:
	// 1
	// 2
}

func TestRunReportsScanFailuresAsErrors(t *testing.T) {
	var buf bytes.Buffer
	engine := lox.New(lox.WithOutput(&buf))

	err := engine.Run(`print @;`)
	assert.Error(t, err)
}

func TestRunReportsRuntimeErrors(t *testing.T) {
	var buf bytes.Buffer
	engine := lox.New(lox.WithOutput(&buf))

	err := engine.Run(`print 1 + "two";`)
	assert.Error(t, err)
}

func TestRunPersistsGlobalStateAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	engine := lox.New(lox.WithOutput(&buf))

	require.NoError(t, engine.Run(`var x = 10;`))
	require.NoError(t, engine.Run(`print x;`))

	assert.Equal(t, "10\n", buf.String())
}

func TestWithMetricsRegistersCollectors(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	engine := lox.New(lox.WithOutput(&buf), lox.WithMetrics(reg))

	require.NoError(t, engine.Run(`print 1;`))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestProgramFixturesSnapshot(t *testing.T) {
	fixtures := map[string]string{
		"arithmetic": `print (1 + 2) * 3 - 4 / 2;`,
		"closures": `
			fun makeAdder(n) {
				fun adder(x) { return x + n; }
				return adder;
			}
			var addFive = makeAdder(5);
			print addFive(10);
		`,
		"classes": `
			class Greeter {
				init(name) { this.name = name; }
				greet() { print "Hello, " + this.name + "!"; }
			}
			Greeter("Lox").greet();
		`,
		"inheritance": `
			class Shape {
				area() { return 0; }
			}
			class Square < Shape {
				init(side) { this.side = side; }
				area() { return this.side * this.side; }
			}
			print Square(4).area();
		`,
	}

	for name, source := range fixtures {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			engine := lox.New(lox.WithOutput(&buf))
			require.NoError(t, engine.Run(source))
			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
