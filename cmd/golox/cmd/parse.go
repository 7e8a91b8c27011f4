package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagark4/golox/internal/ast"
	"github.com/sagark4/golox/internal/ifaceerr"
	"github.com/sagark4/golox/internal/parser"
	"github.com/sagark4/golox/internal/scanner"
)

var (
	parseExpr     string
	parseDumpAST  bool
	parseFixtures string
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Lox source and print the resulting AST",
	Long: `Parse a Lox program and display its abstract syntax tree.

If no file is given, reads from stdin. --fixtures batch-parses a list of
scripts named in a YAML file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", true, "print the AST in Lisp-style printer form (default); when false, only report whether the source parses")
	parseCmd.Flags().StringVar(&parseFixtures, "fixtures", "", "YAML file listing script paths to batch-parse")
}

// fixtureList is the schema for --fixtures: a flat list of script paths,
// each read as given, so a relative path is resolved against the current
// working directory, not the YAML file's own directory.
type fixtureList struct {
	Scripts []string `yaml:"scripts"`
}

func runParse(_ *cobra.Command, args []string) error {
	if parseFixtures != "" {
		return runParseFixtures(parseFixtures)
	}

	source, err := sourceFromArgs(parseExpr, args)
	if err != nil {
		return err
	}
	return parseAndPrint(source)
}

func runParseFixtures(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read fixtures file %q: %w", path, err)
	}

	var fixtures fixtureList
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("could not parse fixtures YAML %q: %w", path, err)
	}

	var failures int
	for _, scriptPath := range fixtures.Scripts {
		content, err := os.ReadFile(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", scriptPath, err)
			failures++
			continue
		}
		fmt.Printf("=== %s ===\n", scriptPath)
		if err := parseAndPrint(string(content)); err != nil {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d fixture(s) failed to parse", failures)
	}
	return nil
}

func parseAndPrint(source string) error {
	reporter := ifaceerr.NewReporter(os.Stderr)

	tokens, hadErr := scanner.Scan(source, reporter)
	if hadErr || reporter.HadError {
		return fmt.Errorf("scanning failed")
	}

	p := parser.New(tokens, reporter)
	statements := p.Parse()
	if reporter.HadError {
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		for _, stmt := range statements {
			fmt.Println(ast.PrintStmt(stmt))
		}
	}
	return nil
}

func readAllStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
