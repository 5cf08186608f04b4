package interp

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/scope"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// chain is a FunctionCall statement's children split by role (spec
// §4.6.1): calls is the first callable plus every THEN-chained callable,
// catch/into is the optional tail, and when/els/while are the mutually
// exclusive control extensions.
type chain struct {
	calls []ast.Node
	catch *ast.Node
	into  *ast.Node
	when  *ast.Node
	els   *ast.Node
	while *ast.Node
}

func splitChain(node ast.Node) chain {
	var c chain
	for _, child := range node.Children {
		switch child.Kind {
		case ast.FunctionCall:
			c.calls = append(c.calls, child)
		case ast.Then:
			c.calls = append(c.calls, child.Children[0])
		case ast.Catch:
			n := child
			c.catch = &n
		case ast.Into:
			n := child
			c.into = &n
		case ast.When:
			n := child
			c.when = &n
		case ast.Else:
			n := child
			c.els = &n
		case ast.While:
			n := child
			c.while = &n
		}
	}
	return c
}

// execCallChain runs one FunctionCall statement's full chain: WHILE loops
// its call portion while its condition holds; WHEN runs the portion once
// if its condition holds, recursing into ELSE's nested chain otherwise;
// absent either, the portion just runs once.
func (p *Process) execCallChain(s *scope.Scope, node ast.Node) error {
	c := splitChain(node)

	portion := func(ps *scope.Scope) error {
		return p.runCallPortion(ps, c.calls, c.catch, c.into)
	}

	switch {
	case c.while != nil:
		return p.execWhileChain(s, portion, c.while.Children[0])
	case c.when != nil:
		cond, err := p.evalExpr(s, c.when.Children[0])
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return portion(s)
		}
		if c.els != nil {
			return p.execCallChain(s, c.els.Children[0])
		}
		return nil
	default:
		return portion(s)
	}
}

// runCallPortion executes calls in order, stopping as soon as one fails
// or signals Break/Continue/Return (THEN only continues after success).
// A failure is handed to catch, if present; into then binds whatever `_`
// holds after a successful (or caught) run into a named variable.
func (p *Process) runCallPortion(s *scope.Scope, calls []ast.Node, catch, into *ast.Node) error {
	var err error
	for _, call := range calls {
		err = p.execCallable(s, call)
		if err != nil || s.Terminated != scope.NoTermination {
			break
		}
	}

	if err != nil {
		de, ok := err.(*diag.Error)
		if !ok || catch == nil {
			return err
		}
		s.SetInternal(value.ResultName, value.NewString(value.ResultName, string(de.Code)))
		if cerr := p.execCallable(s, catch.Children[0]); cerr != nil {
			return cerr
		}
		err = nil
	}

	if err == nil && into != nil {
		name := p.tokenText(into.Children[0].Carry)
		result, ok := s.LocalVariable(value.ResultName)
		if ok {
			bound := result.Clone()
			bound.Name = name
			bound.Constant = false
			if existing, exists := s.LocalVariable(name); exists {
				*existing = *bound
			} else {
				_ = s.AddVariable(bound)
			}
		}
	}
	return err
}

// execWhileChain repeats portion, each time in a fresh Block-kind scope
// so BREAK/CONTINUE invoked inside it (spec's glossary: "Break/Continue
// are caught by Block") have a frame to target, until cond goes false or
// a Break/Return ends the loop early. A `{ ... }` callable nested inside
// the loop body is itself a further Block scope and would equally catch
// a BREAK meant for the loop — this follows the glossary's literal
// wording rather than introducing a dedicated loop-scope kind.
func (p *Process) execWhileChain(s *scope.Scope, portion func(*scope.Scope) error, condNode ast.Node) error {
	for {
		cond, err := p.evalExpr(s, condNode)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}

		emptyBody := ast.Node{Kind: ast.Block}
		loopScope := p.Root.PushChild(scope.Block, &emptyBody, types.Scalar(types.Void))
		err = portion(loopScope)
		popped := p.Root.PopInnermost()
		if err != nil {
			return err
		}
		switch popped.Terminated {
		case scope.TermBreak, scope.TermReturn:
			return nil
		default:
			// TermContinue or NoTermination both just advance to the next
			// condition check.
		}
	}
}

// execCallable runs one call unit: a named function/builtin call or an
// inline block.
func (p *Process) execCallable(s *scope.Scope, node ast.Node) error {
	inner := node.Children[0]
	switch inner.Kind {
	case ast.FunctionIdentifier:
		return p.execNamedCall(s, inner)
	case ast.Block:
		bodyCopy := inner
		popped, err := p.runScope(scope.Block, &bodyCopy, types.Scalar(types.Void), nil)
		if err != nil {
			return err
		}
		if popped != nil && popped.Terminated != scope.NoTermination {
			s.Terminated = popped.Terminated
		}
		return nil
	default:
		return p.errAt(node, diag.Internal, "unexpected callable node kind %s", inner.Kind)
	}
}

// execNamedCall evaluates arguments left to right, then dispatches to a
// built-in via the registry or to a user function via runScope.
func (p *Process) execNamedCall(s *scope.Scope, node ast.Node) error {
	identNode, argsNode := node.Children[0], node.Children[1]
	name := p.tokenText(identNode.Carry)

	fn, ok := p.Root.GetFunction(name)
	if !ok {
		return p.errAt(node, diag.FunctionNotFound, "function %q is not defined", name)
	}

	args := make([]*value.Variable, 0, len(argsNode.Children))
	for _, argNode := range argsNode.Children {
		v, err := p.evalExpr(s, argNode.Children[0])
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	if fn.IsBuiltin {
		return p.Registry.Invoke(p, name, args)
	}

	if len(args) > len(fn.Arguments) {
		return p.errAt(node, diag.TooManyArguments, "function %q takes at most %d arguments", name, len(fn.Arguments))
	}
	params := make([]*value.Variable, len(fn.Arguments))
	for i, param := range fn.Arguments {
		var raw *value.Variable
		if i < len(args) {
			raw = args[i]
		} else if param.Default != nil {
			v, err := p.evalExpr(s, *param.Default)
			if err != nil {
				return err
			}
			raw = v
		} else {
			return p.errAt(node, diag.TooFewArguments, "function %q requires argument %q", name, param.Name)
		}
		cast, err := value.Cast(raw, param.Type)
		if err != nil {
			return p.wrapOpErr(node, err)
		}
		cast.Name = param.Name
		params[i] = cast
	}

	popped, err := p.runScope(scope.Function, fn.Body, fn.ReturnType, params)
	if err != nil {
		return err
	}
	if popped == nil {
		return nil
	}
	if result, ok := popped.LocalVariable(value.ResultName); ok {
		s.SetInternal(value.ResultName, result)
	}
	return nil
}
