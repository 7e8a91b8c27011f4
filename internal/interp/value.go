package interp

import (
	"math"
	"strconv"
)

// Value is the tagged union of every runtime value Lox can produce:
// Nil, Bool, Number, String, Callable (native/user function, class, or
// bound method), and Instance. Concrete Go types implement the interface
// directly rather than being wrapped in a discriminated struct, so the
// "tag" is just the dynamic type — idiomatic for a closed value set
// consumed almost entirely through type switches.
type Value interface {
	// Type names the variant, used in type-mismatch diagnostics.
	Type() string
	// String renders the value the way `print` does (spec.md §6).
	String() string
}

// Nil is the sole value of the Nil variant.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Bool wraps a Go bool as a Value.
type Bool bool

func (Bool) Type() string     { return "boolean" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Number is the sole numeric type: IEEE-754 double precision.
type Number float64

func (Number) Type() string { return "number" }

// String renders a Number the way spec.md §3 requires: integral values
// print without a decimal point (with their full integer representation,
// never truncated to 32 bits), everything else via the host's default
// float formatting.
func (n Number) String() string {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == math.Trunc(f) {
		// 'f' with precision -1 prints the minimal exact decimal
		// representation with no exponent, so an integral float comes out
		// with no fractional part regardless of magnitude — no 32-bit cast,
		// per spec.md §9's integer-printing mandate.
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// String is the Lox string value, a plain immutable Go string.
type String string

func (String) Type() string     { return "string" }
func (s String) String() string { return string(s) }

// Truthy implements spec.md §3's truthiness rule: Nil and Bool(false) are
// falsy, every other value — including 0 and "" — is truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(val)
	default:
		return true
	}
}

// Equal implements spec.md §3's equality rule: reflexive for Nil,
// structural for Bool/String, bitwise (IEEE-754) for Number, and always
// false across variants — including between two different Callables or
// Instances that aren't the identical value.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	default:
		// Callables (native fn, Function, Class, bound method) compare by
		// identity only; == across distinct variants is always false.
		return a == b
	}
}

// stringify is a nil-safe wrapper around Value.String, used wherever a
// Value might be a bare Go nil (an uninitialized variable slot) rather
// than the Nil{} sentinel.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
