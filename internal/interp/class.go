package interp

import (
	"github.com/sagark4/golox/internal/ast"
)

// Class is a runtime class value: its declaration, an optional
// superclass, and its own (non-inherited) method table.
type Class struct {
	Declaration *ast.Class
	Superclass  *Class
	Methods     map[string]*Function
}

func (*Class) Type() string { return "class" }

func (c *Class) String() string {
	if c.Superclass != nil {
		return "<cls " + c.Declaration.Name.Lexeme + " extends " + c.Superclass.Declaration.Name.Lexeme + ">"
	}
	return "<cls " + c.Declaration.Name.Lexeme + ">"
}

// FindMethod searches this class's own method table, then recurses into
// the superclass; the first hit wins (spec.md §4.5 "Method lookup").
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the arity of `init` if the class (or an ancestor) defines one,
// else 0.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a fresh Instance and, if an `init` method exists
// anywhere up the superclass chain, binds and calls it with the supplied
// arguments; the instance itself — not init's return value — is the
// result (spec.md §4.5 "Classes as callables").
func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, Fields: make(map[string]Value)}
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
