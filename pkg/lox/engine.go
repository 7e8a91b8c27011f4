// Package lox is the embedding API: construct an Engine with functional
// options, then Parse, Run or RunProgram source against it. It exists as a thin,
// stable surface over the internal scanner/parser/resolver/interp
// pipeline so host programs never import internal packages directly.
package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/interp"
	"github.com/sagark4/golox/internal/parser"
	"github.com/sagark4/golox/internal/resolver"
	"github.com/sagark4/golox/internal/scanner"
)

// metrics holds the optional Prometheus collectors an Engine reports
// through when WithMetrics is supplied. Left nil (and never touched) for
// an Engine built without that option, so metrics collection costs
// nothing for embedders who don't ask for it.
type metrics struct {
	runsTotal       prometheus.Counter
	errorsTotal     *prometheus.CounterVec
	evalDurationSec prometheus.Histogram
}

// Engine is a reusable Lox execution context: one global scope persists
// across calls to Run, matching the REPL's line-by-line accumulation
// model from spec.md §6.
type Engine struct {
	out      io.Writer
	reporter *ifaceerr.Reporter
	interp   *interp.Interpreter
	metrics  *metrics
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput directs `print` output and diagnostics to w instead of
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithMetrics registers Prometheus collectors for run count, error count
// (labeled by stage: scan/parse/resolve/runtime), and eval latency on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		m := &metrics{
			runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "golox_engine_runs_total",
				Help: "Total number of source snippets evaluated by this engine.",
			}),
			errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "golox_engine_errors_total",
				Help: "Total number of errors by pipeline stage.",
			}, []string{"stage"}),
			evalDurationSec: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name: "golox_engine_eval_duration_seconds",
				Help: "Wall-clock duration of Engine.Run calls.",
			}),
		}
		reg.MustRegister(m.runsTotal, m.errorsTotal, m.evalDurationSec)
		e.metrics = m
	}
}

// New creates an Engine with a fresh global scope, applying opts in
// order. The default output is os.Stdout.
func New(opts ...Option) *Engine {
	e := &Engine{out: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}
	e.reporter = ifaceerr.NewReporter(e.out)
	e.interp = interp.New(e.out, e.reporter)
	return e
}

// Program is the result of a successful Parse: the resolved statement
// list plus the scope-depth map the interpreter needs to execute it.
type Program struct {
	statements []ast.Stmt
	locals     resolver.Locals
}

// AST exposes the parsed statement tree, for tooling (debug dump,
// linting) that wants to inspect structure without executing it.
func (p *Program) AST() []ast.Stmt { return p.statements }

// Parse scans, parses, and resolves source, returning a reusable Program.
// It reports diagnostics through the Engine's configured output and
// returns an error naming the first stage that failed; Program is
// nil whenever any stage failed, since a partially-resolved tree is not
// safe to execute.
func (e *Engine) Parse(source string) (*Program, error) {
	return e.parseWithReporter(source, ifaceerr.NewReporter(e.out))
}

// Run scans, parses, resolves, and executes source against the Engine's
// persistent global scope, returning an error if any stage failed. A
// runtime error is reported through the Engine's output the same way the
// CLI driver does and is also returned, so embedders can distinguish a
// clean run from a failed one without scraping output.
func (e *Engine) Run(source string) error {
	stop := e.startTimer()
	defer stop()

	e.reporter.Reset()
	program, err := e.parseWithReporter(source, e.reporter)
	if err != nil {
		return err
	}

	e.interp.Interpret(program.statements, program.locals)
	if e.reporter.HadRuntimeError {
		e.bumpError("runtime")
		return fmt.Errorf("runtime error")
	}
	return nil
}

// RunProgram executes a Program produced by Parse, reusing the Engine's
// persistent global scope. Prefer this over re-parsing the same source
// repeatedly (a REPL's history replay, a test harness running one script
// many times).
func (e *Engine) RunProgram(program *Program) error {
	stop := e.startTimer()
	defer stop()

	e.reporter.Reset()
	e.interp.Interpret(program.statements, program.locals)
	if e.reporter.HadRuntimeError {
		e.bumpError("runtime")
		return fmt.Errorf("runtime error")
	}
	return nil
}

func (e *Engine) parseWithReporter(source string, reporter *ifaceerr.Reporter) (*Program, error) {
	tokens, hadErr := scanner.Scan(source, reporter)
	if hadErr || reporter.HadError {
		e.bumpError("scan")
		return nil, fmt.Errorf("scanning failed")
	}

	p := parser.New(tokens, reporter)
	statements := p.Parse()
	if reporter.HadError {
		e.bumpError("parse")
		return nil, fmt.Errorf("parsing failed")
	}

	locals := resolver.Resolve(statements, reporter)
	if reporter.HadError {
		e.bumpError("resolve")
		return nil, fmt.Errorf("resolution failed")
	}

	return &Program{statements: statements, locals: locals}, nil
}

func (e *Engine) bumpError(stage string) {
	if e.metrics != nil {
		e.metrics.errorsTotal.WithLabelValues(stage).Inc()
	}
}

func (e *Engine) startTimer() func() {
	if e.metrics == nil {
		return func() {}
	}
	e.metrics.runsTotal.Inc()
	timer := prometheus.NewTimer(e.metrics.evalDurationSec)
	return func() { timer.ObserveDuration() }
}
