package cmd

import (
	"fmt"

	"github.com/sagark4/golox/internal/ast"
)

// dumpStatements prints one parenthesized s-expression per top-level
// statement, used by --dump-ast in the root command and run (the parse
// subcommand prints its own dump; lex has none).
func dumpStatements(statements []ast.Stmt) {
	for _, stmt := range statements {
		fmt.Println(ast.PrintStmt(stmt))
	}
}
