package cmd

import (
	"fmt"
	"os"

	"github.com/Robotnik08/dosato/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Dosato file or expression",
	Long: `Tokenize a Dosato program and print the resulting tokens, one per
line. Useful for debugging the lexer.

Examples:
  dosato lex script.dosato
  dosato lex -e "DO SAYLN(\"hi\");"
  dosato lex --show-pos script.dosato`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalCode, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's byte offset range")
}

func lexScript(_ *cobra.Command, args []string) error {
	src, filename, err := readSource(args)
	if err != nil {
		return err
	}

	toks, err := lexer.Lex(src)
	if err != nil {
		return reportDiag(err, src, filename)
	}

	for _, t := range toks {
		if showPos {
			fmt.Printf("[%-14s] %q @%d:%d\n", t.Kind, t.Text(src), t.Start, t.End)
		} else {
			fmt.Printf("[%-14s] %q\n", t.Kind, t.Text(src))
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%d token(s)\n", len(toks))
	}
	return nil
}
