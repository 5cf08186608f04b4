package cmd

import (
	"fmt"
	"os"

	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/lexer"
	"github.com/Robotnik08/dosato/internal/parser"
	"github.com/Robotnik08/dosato/internal/stdlib"
	"github.com/spf13/cobra"
)

var (
	evalCode string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Dosato program",
	Long: `Execute a Dosato program from a file or inline code.

Examples:
  # Run a script file
  dosato run script.dosato

  # Evaluate inline code instead of reading from file
  dosato run -e "DO SAYLN(\"hello\");"

  # Run with an AST dump (for debugging)
  dosato run --dump-ast script.dosato`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalCode, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
}

func readSource(args []string) (src, filename string, err error) {
	if evalCode != "" {
		return evalCode, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

func runScript(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	toks, err := lexer.Lex(src)
	if err != nil {
		return reportDiag(err, src, filename)
	}

	program, err := parser.Parse(src, toks)
	if err != nil {
		return reportDiag(err, src, filename)
	}

	if dumpAST {
		dumpNode(os.Stdout, program, toks, src, 0)
	}

	registry := stdlib.New()
	process := interp.New(src, toks, program, registry)
	if err := interp.Run(process); err != nil {
		return reportDiag(err, src, filename)
	}
	if process.Err != nil {
		return reportDiag(process.Err, src, filename)
	}
	os.Exit(process.ExitCode)
	return nil
}
