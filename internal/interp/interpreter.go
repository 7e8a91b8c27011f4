// Package interp implements the tree-walking evaluator: the runtime Value
// union (value.go), callables (callable.go), classes and instances
// (class.go, instance.go), the environment tree (environment.go), and here
// the Interpreter itself, which walks a resolved AST and executes it.
package interp

import (
	"fmt"
	"io"

	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/resolver"
	"github.com/sagark4/golox/internal/token"
)

// Interpreter holds the mutable state of one program run: the fixed global
// scope, the environment currently in scope, the resolver's depth map, and
// where `print` output goes.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Locals
	out         io.Writer
	reporter    *ifaceerr.Reporter
}

// New creates an Interpreter with a fresh global scope seeded with the
// `clock` builtin, writing `print` output to out and reporting runtime
// errors through reporter.
func New(out io.Writer, reporter *ifaceerr.Reporter) *Interpreter {
	globals := NewEnvironment()
	globals.Define("clock", clockFn{})
	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(resolver.Locals),
		out:         out,
		reporter:    reporter,
	}
}

// Interpret runs statements, which must already have been resolved with
// locals (the map Resolve returned for the same tree). locals is merged
// into the depths kept from earlier calls, so functions defined by an
// earlier call still find their resolved references. A runtime error
// aborts the run and is reported through the Interpreter's Reporter,
// matching spec.md §4.7: one RuntimeError halts the whole program, it is
// not caught and resumed statement-by-statement.
func (in *Interpreter) Interpret(statements []ast.Stmt, locals resolver.Locals) {
	for id, depth := range locals {
		in.locals[id] = depth
	}
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*ifaceerr.RuntimeError); ok {
				in.reporter.RuntimeErr(rerr)
				return
			}
			// A bare returnSignal escaping every call frame is a resolver/
			// parser bug (top-level return is rejected statically), not a
			// reportable Lox error.
			panic(err)
		}
	}
}

// ---- statement execution ----

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.Print:
		value, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, stringify(value))
		return nil

	case *ast.Var:
		var value Value = Nil{}
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.environment))

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.execute(s.ThenBranch)
		}
		if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.Function:
		fn := &Function{Declaration: s, Closure: in.environment}
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.Return:
		var value Value = Nil{}
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}

	case *ast.Class:
		return in.executeClass(s)
	}
	return nil
}

// executeClass implements spec.md §4.6's two-phase class binding: the
// superclass expression (if any) is evaluated and checked first, then the
// name is defined as Nil, then reassigned to the real Class once its method
// table is built — so a method body that closes over the class name sees
// the finished class, never the placeholder.
func (in *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		value, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := value.(*Class)
		if !ok {
			return ifaceerr.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(s.Name.Lexeme, Nil{})

	if s.Superclass != nil {
		in.environment = NewEnclosedEnvironment(in.environment)
		in.environment.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = &Function{
			Declaration:   method,
			Closure:       in.environment,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &Class{Declaration: s, Superclass: superclass, Methods: methods}

	if s.Superclass != nil {
		in.environment = in.environment.enclosing
	}

	return in.environment.AssignGlobal(s.Name, class)
}

// executeBlock runs statements in env, restoring the interpreter's previous
// environment afterward regardless of how the block exits (normal
// completion, a return signal, or a runtime error) — called both for brace
// blocks and, with a parameter-bound env, for function call frames.
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- expression evaluation ----

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e.ID)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e.ID]; ok {
			in.environment.AssignAt(distance, e.Name, value)
		} else if err := in.globals.AssignGlobal(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, ifaceerr.NewRuntimeError(e.Name, "Only instances have properties.")
		}
		return instance.Get(e.Name)

	case *ast.Set:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, ifaceerr.NewRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name, value)
		return value, nil

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e.ID)

	case *ast.Super:
		return in.evalSuper(e)
	}
	return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	default:
		return Nil{}
	}
}

func (in *Interpreter) lookUpVariable(name token.Token, id ast.ID) (Value, error) {
	if distance, ok := in.locals[id]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.GetGlobal(name)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.Minus:
		n, err := checkNumberOperand(e.Operator, right)
		if err != nil {
			return nil, err
		}
		return -n, nil
	case token.Bang:
		return Bool(!Truthy(right)), nil
	}
	return nil, fmt.Errorf("interp: unhandled unary operator %s", e.Operator.Type)
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.Or {
		if Truthy(left) {
			return left, nil
		}
	} else if !Truthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

// evalBinary implements spec.md §4.6's binary operators: both operands are
// always evaluated, left before right. `+` overloads between two numbers
// (add) and two strings (concatenate); every other arithmetic/comparison
// operator requires two numbers.
func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Plus:
		if ln, lok := left.(Number); lok {
			if rn, rok := right.(Number); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(String); lok {
			if rs, rok := right.(String); rok {
				return ls + rs, nil
			}
		}
		return nil, ifaceerr.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case token.Minus:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.Star:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.Slash:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case token.Greater:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln > rn), nil
	case token.GreaterEqual:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln >= rn), nil
	case token.Less:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln < rn), nil
	case token.LessEqual:
		ln, rn, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(ln <= rn), nil
	case token.BangEqual:
		return Bool(!Equal(left, right)), nil
	case token.EqualEqual:
		return Bool(Equal(left, right)), nil
	}
	return nil, fmt.Errorf("interp: unhandled binary operator %s", e.Operator.Type)
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Arguments))
	for i, arg := range e.Arguments {
		v, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, ifaceerr.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, ifaceerr.NewRuntimeError(e.Paren, "Expected %d arguments but got %d.", callable.Arity(), len(args))
	}
	return callable.Call(in, args)
}

// evalSuper resolves `super.method`: `super` itself is bound one scope
// above `this`, so method lookup starts at the superclass but Bind still
// uses the `this` from the enclosing method scope, not the superclass.
func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	distance := in.locals[e.ID]
	superclass, _ := in.environment.GetAt(distance, "super").(*Class)
	instance, _ := in.environment.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, ifaceerr.NewRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func checkNumberOperand(operator token.Token, operand Value) (Number, error) {
	if n, ok := operand.(Number); ok {
		return n, nil
	}
	return 0, ifaceerr.NewRuntimeError(operator, "Operand must be a number.")
}

func checkNumberOperands(operator token.Token, left, right Value) (Number, Number, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if lok && rok {
		return ln, rn, nil
	}
	return 0, 0, ifaceerr.NewRuntimeError(operator, "Operands must be numbers.")
}
