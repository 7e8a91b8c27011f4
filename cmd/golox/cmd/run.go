package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sagark4/golox/pkg/lox"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Lox script, or start the REPL with no arguments",
	Long: `Execute a Lox program from a file, from an inline expression, or
interactively from a REPL when given neither.

Examples:
  golox run script.lox
  golox run -e "print 1 + 2;"
  golox run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.RunE = runScript
	rootCmd.Args = usageArgs

	rootCmd.PersistentFlags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")

	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before executing")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "announce each REPL line with a session id")
}

// usageArgs implements the "more args" invocation row: more than one
// positional argument is a usage error, reported and exited directly with
// the host's EX_USAGE code rather than routed through Cobra's own usage
// text.
func usageArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: rlox [script].")
		os.Exit(64)
	}
	return nil
}

func runScript(_ *cobra.Command, args []string) error {
	if evalExpr != "" {
		engine := lox.New(lox.WithOutput(os.Stdout))
		return runOne(engine, evalExpr)
	}
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}

// runFile implements spec.md §6's "one arg" row: read the whole file,
// run it once, and translate any reported error into the matching exit
// code — 65 for a scan/parse/resolve error, 70 for a runtime error.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		exitWithError("could not read file %q: %v", path, err)
	}

	engine := lox.New(lox.WithOutput(os.Stdout))
	if dumpAST {
		if program, perr := engine.Parse(string(content)); perr == nil {
			dumpStatements(program.AST())
		}
	}

	runErr := engine.Run(string(content))
	if runErr == nil {
		return nil
	}
	switch runErr.Error() {
	case "runtime error":
		os.Exit(70)
	default:
		os.Exit(65)
	}
	return nil
}

// runOne runs a single inline snippet (the -e flag) with the same
// exit-code mapping runFile uses.
func runOne(engine *lox.Engine, source string) error {
	if dumpAST {
		if program, perr := engine.Parse(source); perr == nil {
			dumpStatements(program.AST())
		}
	}
	runErr := engine.Run(source)
	if runErr == nil {
		return nil
	}
	switch runErr.Error() {
	case "runtime error":
		os.Exit(70)
	default:
		os.Exit(65)
	}
	return nil
}

// runREPL implements spec.md §6's "no args" row: prompt, read one line,
// run it, loop; a reported error never aborts the session (the Engine
// resets its Reporter's flags at the top of every Run call). The prompt
// is suppressed when stdin isn't a terminal, so piped input behaves like
// a script fed line-by-line rather than printing a prompt into a pipe.
func runREPL() error {
	interactive := isatty.IsTerminal(os.Stdin.Fd())
	sessionID := uuid.NewString()

	engine := lox.New(lox.WithOutput(os.Stdout))
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()

		if trace {
			fmt.Fprintf(os.Stderr, "[trace %s] %s\n", sessionID, line)
		}
		if dumpAST {
			if program, err := engine.Parse(line); err == nil {
				dumpStatements(program.AST())
			}
		}

		// Run's error return is intentionally ignored here: the REPL
		// contract is "report and continue", not "report and exit".
		_ = engine.Run(line)
	}
}
