package interp

import (
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/token"
)

// Environment is one node of the lexical scope chain from spec.md §4.4: a
// name→value map plus a parent link. Nodes are shared-mutable — a
// returned closure, a bound method, or the currently executing frame can
// all hold a reference to the same node, which is exactly how closures
// keep their captured bindings alive after the enclosing call returns.
type Environment struct {
	values    map[string]Value
	enclosing *Environment
}

// NewEnvironment creates a root environment with no parent — used once,
// for the interpreter's global scope.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a new child node parented to enclosing —
// used for blocks, function-call frames, and the implicit `this`/`super`
// scopes a class declaration pushes.
func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]Value), enclosing: enclosing}
}

// Define inserts or overwrites name in this node's own bindings. No error
// if the name already existed here — redeclaring a local is legal at
// runtime (the resolver already rejected it statically, same-scope only).
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// ancestor walks exactly distance parents up from e. The resolver
// guarantees distance never exceeds the actual chain depth for any
// resolved reference, so running off the root here is a bug in the
// resolver/interpreter pairing, not a reportable Lox error.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name at exactly distance hops up the chain, per spec.md
// §4.4's get_at: used only for names the resolver guarantees are present
// (`this`, `super`), so there is no error path.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt overwrites name at exactly distance hops up the chain.
func (e *Environment) AssignAt(distance int, name token.Token, value Value) {
	e.ancestor(distance).values[name.Lexeme] = value
}

// GetGlobal looks a name up directly in this node, with no parent
// fallback — used by the interpreter when a variable reference has no
// resolver entry (meaning it is global).
func (e *Environment) GetGlobal(name token.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	return nil, ifaceerr.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// AssignGlobal overwrites a name directly in this node, only if it is
// already present — mirrors GetGlobal's no-parent-fallback semantics.
func (e *Environment) AssignGlobal(name token.Token, value Value) error {
	if _, ok := e.values[name.Lexeme]; !ok {
		return ifaceerr.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}
	e.values[name.Lexeme] = value
	return nil
}
