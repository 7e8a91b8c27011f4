package interp

import (
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/token"
)

// Instance is a class instance. It is a shared-mutable handle — callers
// always hold a *Instance, so a value passed to multiple locations
// observes each other's field writes, per spec.md §3.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) Type() string { return "instance" }

func (i *Instance) String() string {
	return i.Class.Declaration.Name.Lexeme + " instance"
}

// Get implements property read for a Get expression: fields shadow
// methods, and an unbound method found via FindMethod is bound to this
// instance before being returned (spec.md §4.6).
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, ifaceerr.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

// Set implements property write for a Set expression: it always writes a
// field, regardless of whether a same-named method exists.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
