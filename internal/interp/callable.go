package interp

import (
	"time"

	"github.com/sagark4/golox/internal/ast"
)

// Callable is any Value that can appear as the callee of a Call
// expression: the builtin clock, a user-defined Function, or a Class
// (calling a class constructs an Instance).
type Callable interface {
	Value
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// ---- clock ----

// clockFn is the sole builtin: zero-arity, returns wall time in seconds.
type clockFn struct{}

func (clockFn) Type() string   { return "native function" }
func (clockFn) String() string { return "<native fn>" }
func (clockFn) Arity() int     { return 0 }

func (clockFn) Call(*Interpreter, []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / 1e9), nil
}

// ---- user function ----

// Function is a user-defined function or method: the AST declaration plus
// the environment node captured at definition time (the closure).
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (*Function) Type() string { return "function" }
func (f *Function) String() string {
	return "<fn " + f.Declaration.Name.Lexeme + ">"
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

// Call implements the function call protocol from spec.md §4.5: bind each
// parameter in a fresh environment parented to the closure, execute the
// body, and translate the in-band return signal into a normal result. An
// initializer always yields `this`, whether it returns explicitly or
// falls off the end (spec.md §4.5/§4.6, scenario (e)).
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := interp.executeBlock(f.Declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.IsInitializer {
				return f.Closure.GetAt(0, "this"), nil
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// Bind returns a new Function whose closure is a fresh environment node,
// parented to this function's closure, with `this` bound to instance
// (spec.md §4.5 "Method binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// returnSignal is the in-band, non-error control-flow channel a `return`
// statement raises (spec.md §4.7). It satisfies the error interface so it
// can travel through the same (Value, error) / error return paths as a
// genuine RuntimeError; call frames distinguish the two with a type
// assertion and must consume a returnSignal rather than let it escape.
type returnSignal struct {
	Value Value
}

func (*returnSignal) Error() string { return "return" }
