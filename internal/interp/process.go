// Package interp is the tree-walking interpreter: it advances a Process
// one statement at a time, executing MakeVar/SetVar/FunctionDeclaration/
// ArrayDeclaration statements directly and delegating FunctionCall nodes
// to the call-chain executor (spec §4.6).
package interp

import (
	"io"
	"os"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/scope"
	"github.com/Robotnik08/dosato/internal/token"
	"github.com/Robotnik08/dosato/internal/value"
)

// Registry is the built-in function dispatch contract (spec §6's
// `invoke(process, name, args, argc)`). A concrete implementation lives
// outside this package (internal/stdlib) so the core interpreter never
// depends on what SAY, file I/O, or math functions actually do.
type Registry interface {
	// Names lists every built-in function name this registry answers to,
	// used to seed the root scope's function table at startup.
	Names() []string
	// Invoke runs name with args already evaluated left to right. The
	// callee is responsible for writing its result into the current
	// scope's `_` (via Process.SetResult) and for setting Break/Continue/
	// Return termination flags when appropriate (BREAK, CONTINUE, RETURN).
	Invoke(p *Process, name string, args []*value.Variable) error
}

// Process is one running program: its source, parsed AST, scope chain,
// registry, and runtime error/exit state.
type Process struct {
	Src      string
	Tokens   []token.Token
	Program  ast.Node
	Root     *scope.Scope
	Registry Registry

	// Out and In are the process's standard output and input streams
	// (SAY/SAYLN write to Out, LISTEN reads a line from In). They default
	// to os.Stdout/os.Stdin and are swapped out in tests.
	Out io.Writer
	In  io.Reader

	Running  bool
	ExitCode int
	Err      *diag.Error
}

// New builds a Process ready to run program, with the root scope seeded
// from registry's built-in names.
func New(src string, toks []token.Token, program ast.Node, registry Registry) *Process {
	root := scope.NewRoot(&program, registry.Names())
	return &Process{Src: src, Tokens: toks, Program: program, Root: root, Registry: registry, Running: true, Out: os.Stdout, In: os.Stdin}
}

// tokenText returns the source text of the token at index i (used for
// Identifier/Literal/TypeIdentifier nodes, whose Carry is a token index).
func (p *Process) tokenText(i int) string {
	return p.Tokens[i].Text(p.Src)
}

// Innermost returns the currently active scope.
func (p *Process) Innermost() *scope.Scope { return p.Root.Innermost() }

// SetResult stores v into the innermost scope's `_`, bypassing the
// constant check — the path every built-in result write takes. A RETURN
// value is instead written by Process.Return into the function scope's `_`.
func (p *Process) SetResult(v *value.Variable) {
	p.Innermost().SetInternal(value.ResultName, v)
}

// Fail records a runtime error and stops the process, mirroring the
// driver-visible behavior of an uncaught error (spec's error-handling
// section): running flips false, the error is retained for the CLI to
// report.
func (p *Process) Fail(err *diag.Error) {
	p.Err = err
	p.Running = false
}

// Run drives the process to completion: it repeatedly executes the
// root scope's next statement until the root scope itself finishes (its
// body is exhausted) or an uncaught error stops it. Nested scopes
// (function bodies, inline blocks) are driven recursively by the same
// step logic from within statement execution — see runScope.
func Run(p *Process) error {
	for p.Running {
		root := p.Root
		if root.RunningLine >= len(root.Body.Children) {
			p.Running = false
			break
		}
		stmt := root.Body.Children[root.RunningLine]
		root.RunningLine++
		if err := p.execStatement(root, stmt); err != nil {
			de := asDiagError(err)
			p.Fail(de)
			return de
		}
	}
	return nil
}

func asDiagError(err error) *diag.Error {
	if de, ok := err.(*diag.Error); ok {
		return de
	}
	return diag.New(diag.Internal, 0, "%s", err.Error())
}
