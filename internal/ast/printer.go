package ast

import (
	"fmt"
	"strings"
)

// PrintExpr renders an expression as a fully-parenthesized Lisp-like string,
// used by the `golox parse --dump-ast` debug subcommand. Grounded on the
// classic Lox AstPrinter: each operator application is wrapped in
// parentheses with the operator first, so precedence is visible without
// needing to know it.
func PrintExpr(e Expr) string {
	switch expr := e.(type) {
	case *Literal:
		return printLiteral(expr.Value)
	case *Grouping:
		return parenthesize("group", expr.Expression)
	case *Unary:
		return parenthesize(expr.Operator.Lexeme, expr.Right)
	case *Binary:
		return parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
	case *Logical:
		return parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
	case *Variable:
		return expr.Name.Lexeme
	case *Assign:
		return parenthesize("= "+expr.Name.Lexeme, expr.Value)
	case *Call:
		return parenthesize("call", append([]Expr{expr.Callee}, expr.Arguments...)...)
	case *Get:
		return parenthesize(". "+expr.Name.Lexeme, expr.Object)
	case *Set:
		return parenthesize(". "+expr.Name.Lexeme+" =", expr.Object, expr.Value)
	case *This:
		return "this"
	case *Super:
		return "(super . " + expr.Method.Lexeme + ")"
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", value)
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(PrintExpr(e))
	}
	sb.WriteByte(')')
	return sb.String()
}

// PrintStmt renders a single statement for the AST dump; it recurses into
// sub-expressions via PrintExpr.
func PrintStmt(s Stmt) string {
	switch stmt := s.(type) {
	case *Expression:
		return parenthesize(";", stmt.Expression)
	case *Print:
		return parenthesize("print", stmt.Expression)
	case *Var:
		if stmt.Initializer == nil {
			return fmt.Sprintf("(var %s)", stmt.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s = %s)", stmt.Name.Lexeme, PrintExpr(stmt.Initializer))
	case *Block:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, inner := range stmt.Statements {
			sb.WriteByte(' ')
			sb.WriteString(PrintStmt(inner))
		}
		sb.WriteByte(')')
		return sb.String()
	case *If:
		if stmt.ElseBranch == nil {
			return fmt.Sprintf("(if %s %s)", PrintExpr(stmt.Condition), PrintStmt(stmt.ThenBranch))
		}
		return fmt.Sprintf("(if %s %s %s)", PrintExpr(stmt.Condition), PrintStmt(stmt.ThenBranch), PrintStmt(stmt.ElseBranch))
	case *While:
		return fmt.Sprintf("(while %s %s)", PrintExpr(stmt.Condition), PrintStmt(stmt.Body))
	case *Function:
		return fmt.Sprintf("(fun %s)", stmt.Name.Lexeme)
	case *Return:
		if stmt.Value == nil {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", PrintExpr(stmt.Value))
	case *Class:
		return fmt.Sprintf("(class %s)", stmt.Name.Lexeme)
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}
