package interp

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
)

// errAt builds a located diag.Error anchored at node's first token.
func (p *Process) errAt(node ast.Node, code diag.Code, msg string, args ...any) *diag.Error {
	pos := 0
	if node.Start >= 0 && node.Start < len(p.Tokens) {
		pos = p.Tokens[node.Start].Start
	}
	return diag.New(code, pos, msg, args...).WithSource(p.Src, "")
}
