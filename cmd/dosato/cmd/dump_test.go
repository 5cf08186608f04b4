package cmd

import (
	"strings"
	"testing"

	"github.com/Robotnik08/dosato/internal/lexer"
	"github.com/Robotnik08/dosato/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDumpNodeSnapshot pins the --dump-ast rendering of a representative
// script covering MakeVar, call chains with CATCH and with INTO, and a
// function declaration, so an unintended AST shape change shows up as a diff.
func TestDumpNodeSnapshot(t *testing.T) {
	src := `
MAKE INT total = 0;
MAKE FUNC INT double(INT n) {
	DO RETURN(n * 2);
};
DO SAYLN(double(21)) CATCH SAYLN("failed");
DO double(21) INTO total;
`
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	program, err := parser.Parse(src, toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var out strings.Builder
	dumpNode(&out, program, toks, src, 0)

	snaps.MatchSnapshot(t, out.String())
}
