package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
)

// reportDiag re-attaches source/filename to a *diag.Error (if that's what
// err actually is) so Format can render a file:line:col caret, then
// returns it as a plain error for cobra to print.
func reportDiag(err error, src, filename string) error {
	if de, ok := err.(*diag.Error); ok {
		de = de.WithSource(src, filename)
		return fmt.Errorf("%s", de.Format(true))
	}
	return err
}

// dumpNode pretty-prints an AST, one node per line, indented by depth —
// used by the run subcommand's --dump-ast flag and by the parse subcommand.
func dumpNode(w io.Writer, n ast.Node, toks []token.Token, src string, depth int) {
	indent := strings.Repeat("  ", depth)
	text := ""
	if n.Start >= 0 && n.Start < len(toks) && n.End >= 0 && n.End <= len(toks) && n.End > n.Start {
		text = fmt.Sprintf(" %q", src[toks[n.Start].Start:toks[n.End-1].End])
	}
	fmt.Fprintf(w, "%s%s(carry=%d)%s\n", indent, n.Kind, n.Carry, text)
	for _, child := range n.Children {
		dumpNode(w, child, toks, src, depth+1)
	}
}
