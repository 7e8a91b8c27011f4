// Package resolver implements the static name-resolution pass: for every
// variable-referencing AST node it records the exact number of lexical
// scope hops from the node's execution-time environment to the one
// holding its binding (spec.md §4.3). It also rejects several errors that
// are detectable without running the program.
package resolver

import (
	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/token"
)

// functionType tracks what kind of function body the resolver is
// currently walking, so `return` and `this` can be validated contextually.
type functionType int

const (
	ftNone functionType = iota
	ftFunction
	ftMethod
	ftInitializer
)

// classType tracks whether the resolver is inside a class body, and
// whether that class has a superclass — `super` is only legal in the
// latter case.
type classType int

const (
	ctNone classType = iota
	ctClass
	ctSubclass
)

// Locals is the resolution map from spec.md §3: AST node ID to scope
// depth. A missing entry means the reference is global.
type Locals map[ast.ID]int

// Resolver walks a parsed program exactly once, before execution, and
// never aborts early: every input is walked so every resolvable reference
// is recorded even when some references along the way are erroneous.
type Resolver struct {
	reporter        *ifaceerr.Reporter
	scopes          []map[string]bool
	locals          Locals
	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver that reports errors through reporter.
func New(reporter *ifaceerr.Reporter) *Resolver {
	return &Resolver{reporter: reporter, locals: make(Locals)}
}

// Resolve walks statements and returns the completed resolution map.
func Resolve(statements []ast.Stmt, reporter *ifaceerr.Reporter) Locals {
	r := New(reporter)
	r.resolveStmts(statements)
	return r.locals
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, ftFunction)
	case *ast.Expression:
		r.resolveExpr(s.Expression)
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *ast.Print:
		r.resolveExpr(s.Expression)
	case *ast.Return:
		if r.currentFunction == ftNone {
			r.reporter.ErrorAtToken(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == ftInitializer {
				if !isNilLiteral(s.Value) {
					r.reporter.ErrorAtToken(s.Keyword, "Can't return a value from an initializer.")
				}
			}
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Class:
		r.resolveClass(s)
	}
}

func isNilLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Value == nil
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = ctClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.reporter.ErrorAtToken(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = ctSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		defer r.endScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	defer r.endScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range s.Methods {
		declaration := ftMethod
		if method.Name.Lexeme == "init" {
			declaration = ftInitializer
		}
		r.resolveFunction(method, declaration)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.ErrorAtToken(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ID, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID, e.Name)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Grouping:
		r.resolveExpr(e.Expression)
	case *ast.Literal:
		// no sub-expressions, no name to resolve
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.Super:
		switch r.currentClass {
		case ctNone:
			r.reporter.ErrorAtToken(e.Keyword, "Can't use 'super' outside of a class.")
		case ctClass:
			r.reporter.ErrorAtToken(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e.ID, e.Keyword)
	case *ast.This:
		if r.currentClass == ctNone {
			r.reporter.ErrorAtToken(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.ID, e.Keyword)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare inserts name into the innermost scope as not-yet-defined. The
// global scope is implicit (spec.md §4.3) — declare/define are no-ops
// outside of any block, function, or class scope.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.ErrorAtToken(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal scans scopes from innermost outward; a hit at index i
// records depth = len(scopes)-1-i. A miss records nothing — the name is
// resolved as global at runtime.
func (r *Resolver) resolveLocal(id ast.ID, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[id] = len(r.scopes) - 1 - i
			return
		}
	}
}
