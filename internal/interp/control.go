package interp

import (
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/scope"
	"github.com/Robotnik08/dosato/internal/value"
)

// Break and Continue are called by the built-in registry's BREAK/
// CONTINUE implementations. They mark a contiguous run of scopes — from
// the Nth enclosing Block scope down to the innermost — as terminated,
// which every runScope loop notices on its next check and unwinds
// through without any other propagation code (spec §4.6.1/glossary's
// "Break/Continue are caught by Block").
func (p *Process) Break(n int) error {
	_, err := p.terminateUpward(scope.TermBreak, scope.Block, n)
	if err != nil {
		return diag.New(diag.BreakOutsideOfLoop, 0, "BREAK used outside of a loop")
	}
	return nil
}

func (p *Process) Continue(n int) error {
	_, err := p.terminateUpward(scope.TermContinue, scope.Block, n)
	if err != nil {
		return diag.New(diag.ContinueOutsideOfLoop, 0, "CONTINUE used outside of a loop")
	}
	return nil
}

// Return writes v, cast to the returning function's declared return
// type, into that function's own `_` slot directly (not the currently
// innermost scope's, which may be a nested block inside that function)
// and marks every scope from the function's own frame down to the
// innermost as terminated.
func (p *Process) Return(v *value.Variable) error {
	target, err := p.terminateUpward(scope.TermReturn, scope.Function, 1)
	if err != nil {
		return diag.New(diag.ReturnOutsideOfFunction, 0, "RETURN used outside of a function")
	}
	cast, err := value.Cast(v, target.ReturnType)
	if err != nil {
		return err
	}
	target.SetLocal(value.ResultName, cast)
	return nil
}

// End marks every active scope as terminated and stops the process, so
// END unwinds out of however deeply nested a call it was issued from
// instead of only stopping the next statement at its own level.
func (p *Process) End(code int) {
	for _, s := range p.Root.Chain() {
		s.Terminated = scope.TermEnd
	}
	p.ExitCode = code
	p.Running = false
}

// terminateUpward finds the Nth matching scope counting from the
// innermost, marks it and every scope below it (towards the innermost,
// inclusive) with kind, and returns the matching scope itself.
func (p *Process) terminateUpward(kind scope.Termination, matchKind scope.CallKind, count int) (*scope.Scope, error) {
	chain := p.Root.Chain()
	target := -1
	remaining := count
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].CallKind == matchKind {
			remaining--
			if remaining == 0 {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return nil, diag.New(diag.Internal, 0, "no enclosing scope of the requested kind")
	}
	for i := target; i < len(chain); i++ {
		chain[i].Terminated = kind
	}
	return chain[target], nil
}
