// Package ifaceerr renders scan/parse/resolve/runtime diagnostics to a
// writer and tracks the process-wide error flags the driver consults to
// pick an exit code. Named ifaceerr (interface errors) rather than
// "errors" purely to avoid shadowing the standard library package of the
// same name at every import site.
package ifaceerr

import (
	"fmt"
	"io"

	"github.com/sagark4/golox/internal/token"
)

// RuntimeError is raised by the interpreter for a type mismatch, an
// undefined name, an arity mismatch, or any other class-4 error from
// spec.md §7. It carries the offending token so diagnostics can report a
// line number.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// NewRuntimeError builds a RuntimeError anchored at tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Reporter is the "cleaner refactor" of the classic global had_error /
// had_runtime_error flags: one object threaded through Scanner, Parser,
// Resolver, and Interpreter that both renders diagnostics and accumulates
// the summary the driver needs to choose an exit code.
type Reporter struct {
	out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// NewReporter creates a Reporter that writes diagnostics to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Reset clears both error flags. The REPL calls this between lines so
// that a mistake on one line doesn't poison exit-code accounting for the
// next (script mode never needs to call it — the process exits after one
// run).
func (r *Reporter) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
}

// ReportLine reports a scan-time error with no location suffix. Satisfies
// scanner.ErrorSink.
func (r *Reporter) ReportLine(line int, message string) {
	r.report(line, "", message)
}

// ErrorAtToken reports a parse- or resolve-time error located at tok,
// choosing the " at end" / " at '<lexeme>'" suffix spec.md §6 requires.
func (r *Reporter) ErrorAtToken(tok token.Token, message string) {
	if tok.Type == token.Eof {
		r.report(tok.Line, " at end", message)
	} else {
		r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
	}
}

func (r *Reporter) report(line int, where, message string) {
	r.HadError = true
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", line, where, message)
}

// RuntimeErr reports a runtime error: message first, location on the
// following line, per spec.md §6.
func (r *Reporter) RuntimeErr(err *RuntimeError) {
	r.HadRuntimeError = true
	fmt.Fprintf(r.out, "%s\n[line %d]\n", err.Message, err.Token.Line)
}
