package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/scanner"
)

var lexExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression and print the resulting tokens",
	Long: `Tokenize a Lox program and print the resulting tokens, one per line.

Examples:
  golox lex script.lox
  golox lex -e "var x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, err := sourceFromArgs(lexExpr, args)
	if err != nil {
		return err
	}

	reporter := ifaceerr.NewReporter(os.Stderr)
	tokens, _ := scanner.Scan(source, reporter)
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	if reporter.HadError {
		return fmt.Errorf("scanning failed")
	}
	return nil
}

// sourceFromArgs resolves the input source for a debug subcommand: the
// -e flag value if set, the named file if one arg was given, or stdin
// otherwise.
func sourceFromArgs(expr string, args []string) (string, error) {
	if expr != "" {
		return expr, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("could not read file %q: %w", args[0], err)
		}
		return string(content), nil
	}
	content, err := readAllStdin()
	if err != nil {
		return "", fmt.Errorf("could not read stdin: %w", err)
	}
	return content, nil
}
