package interp

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/operators"
	"github.com/Robotnik08/dosato/internal/scope"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// execStatement dispatches one statement node per spec §4.6's statement
// dispatch table.
func (p *Process) execStatement(s *scope.Scope, node ast.Node) error {
	switch node.Kind {
	case ast.FunctionCall:
		return p.execCallChain(s, node)
	case ast.MakeVar:
		return p.execMakeVar(s, node)
	case ast.ArrayDeclaration:
		return p.execArrayDeclaration(s, node)
	case ast.SetVar:
		return p.execSetVar(s, node)
	case ast.FunctionDeclaration:
		return p.execFunctionDeclaration(node)
	default:
		return p.errAt(node, diag.Internal, "unexpected statement node kind %s", node.Kind)
	}
}

func declaredType(elemCarry, depth int) types.Type {
	t := types.Scalar(types.FromTokenIndex(elemCarry))
	for i := 0; i < depth; i++ {
		t = types.ArrayOf(t)
	}
	return t
}

func (p *Process) execMakeVar(s *scope.Scope, node ast.Node) error {
	typeNode, identNode, exprNode := node.Children[0], node.Children[1], node.Children[2]
	declared := declaredType(typeNode.Carry, 0)
	val, err := p.evalExpr(s, exprNode)
	if err != nil {
		return err
	}
	cast, err := value.Cast(val, declared)
	if err != nil {
		return err
	}
	cast.Name = p.tokenText(identNode.Carry)
	return s.AddVariable(cast)
}

// execArrayDeclaration mirrors execMakeVar but the declared type carries
// node.Carry levels of array nesting (spec's "like MakeVar but expects
// the declared type's array depth >= 1").
func (p *Process) execArrayDeclaration(s *scope.Scope, node ast.Node) error {
	typeNode, identNode, exprNode := node.Children[0], node.Children[1], node.Children[2]
	declared := declaredType(typeNode.Carry, node.Carry)
	val, err := p.evalExpr(s, exprNode)
	if err != nil {
		return err
	}
	cast, err := value.Cast(val, declared)
	if err != nil {
		return err
	}
	cast.Name = p.tokenText(identNode.Carry)
	return s.AddVariable(cast)
}

func (p *Process) execSetVar(s *scope.Scope, node ast.Node) error {
	lhs, opNode, rhs := node.Children[0], node.Children[1], node.Children[2]
	target, err := p.evalReference(s, lhs)
	if err != nil {
		return err
	}
	if target.Constant {
		return p.errAt(lhs, diag.CannotModifyConstant, "cannot modify constant %q", target.Name)
	}
	rv, err := p.evalExpr(s, rhs)
	if err != nil {
		return err
	}
	if !target.Type.IsArray() {
		rv, err = value.Cast(rv, target.Type)
		if err != nil {
			return err
		}
	}
	result, err := operators.CompoundResult(opNode.Carry, target, rv)
	if err != nil {
		return err
	}
	casted, err := value.Cast(result, target.Type)
	if err != nil {
		return err
	}
	name := target.Name
	constant := target.Constant
	*target = *casted
	target.Name = name
	target.Constant = constant
	return nil
}

// execFunctionDeclaration registers a user function into the root scope
// (function lookup only ever consults the root, spec §4.5), rejecting a
// duplicate name. node.Carry carries the return type's ARRAY nesting
// depth, mirroring FunctionDeclarationArgument's own depth encoding.
func (p *Process) execFunctionDeclaration(node ast.Node) error {
	typeNode, identNode, argsNode, bodyNode := node.Children[0], node.Children[1], node.Children[2], node.Children[3]
	name := p.tokenText(identNode.Carry)
	returnType := declaredType(typeNode.Carry, node.Carry)
	fn := &scope.Function{Name: name, Body: &bodyNode, ReturnType: returnType}
	for _, argNode := range argsNode.Children {
		typeNode, paramIdent := argNode.Children[0], argNode.Children[1]
		param := scope.Param{Name: p.tokenText(paramIdent.Carry), Type: declaredType(typeNode.Carry, argNode.Carry)}
		if len(argNode.Children) > 2 {
			def := argNode.Children[2]
			param.Default = &def
		}
		fn.Arguments = append(fn.Arguments, param)
	}
	return p.Root.AddFunction(fn)
}

// runScope pushes a new child scope, drives it statement by statement
// until its body is exhausted or it is terminated, then pops and returns
// it so the caller can inspect Terminated and any bound return value.
// This realizes spec's "driver repeatedly calls step() until completion"
// recursively: each nested scope is driven to completion by its own call
// to runScope before the statement that pushed it returns.
func (p *Process) runScope(kind scope.CallKind, body *ast.Node, returnType types.Type, params []*value.Variable) (*scope.Scope, error) {
	child := p.Root.PushChild(kind, body, returnType)
	for _, param := range params {
		if err := child.AddVariable(param); err != nil {
			return nil, err
		}
	}
	for {
		if child.Terminated != scope.NoTermination || child.RunningLine >= len(child.Body.Children) {
			return p.Root.PopInnermost(), nil
		}
		stmt := child.Body.Children[child.RunningLine]
		child.RunningLine++
		if err := p.execStatement(child, stmt); err != nil {
			p.Root.PopInnermost()
			return nil, err
		}
	}
}
