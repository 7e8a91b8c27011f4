// Command golox is the Lox language interpreter's command-line entry
// point.
package main

import (
	"fmt"
	"os"

	"github.com/sagark4/golox/cmd/golox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
