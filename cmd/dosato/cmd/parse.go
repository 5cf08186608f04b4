package cmd

import (
	"os"

	"github.com/Robotnik08/dosato/internal/lexer"
	"github.com/Robotnik08/dosato/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Dosato file and dump its AST",
	Long: `Lex and parse a Dosato program without running it, printing the
resulting AST. Useful for debugging the parser.

Examples:
  dosato parse script.dosato
  dosato parse -e "DO SAYLN(\"hi\");"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalCode, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
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

	dumpNode(os.Stdout, program, toks, src, 0)
	return nil
}
