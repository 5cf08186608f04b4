package interp

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/operators"
	"github.com/Robotnik08/dosato/internal/scope"
	"github.com/Robotnik08/dosato/internal/token"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// evalExpr evaluates node to a fresh, owned value (spec §4.6.2): an
// Identifier reads and clones the named variable, a Literal is parsed
// from its lexeme, an Expression node dispatches its operator over its
// two evaluated children, an UnaryExpression applies a unary operator or
// a C-style cast, and an ArrayExpression evaluates each element in order.
func (p *Process) evalExpr(s *scope.Scope, node ast.Node) (*value.Variable, error) {
	switch node.Kind {
	case ast.Identifier:
		name := p.tokenText(node.Carry)
		v, ok := p.Root.GetVariable(name)
		if !ok {
			return nil, p.errAt(node, diag.UndefinedVariable, "undefined variable %q", name)
		}
		return v.AsLiteral(), nil

	case ast.Literal:
		return p.evalLiteral(node)

	case ast.Expression:
		left, err := p.evalExpr(s, node.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := p.evalExpr(s, node.Children[2])
		if err != nil {
			return nil, err
		}
		result, err := operators.Binary(node.Carry, left, right)
		if err != nil {
			return nil, p.wrapOpErr(node, err)
		}
		return result.AsLiteral(), nil

	case ast.UnaryExpression:
		if node.Carry == ast.CastOperator {
			inner, err := p.evalExpr(s, node.Children[1])
			if err != nil {
				return nil, err
			}
			dest := types.Scalar(types.FromTokenIndex(node.Children[0].Carry))
			cast, err := value.Cast(inner, dest)
			if err != nil {
				return nil, p.wrapOpErr(node, err)
			}
			return cast.AsLiteral(), nil
		}
		operand, err := p.evalExpr(s, node.Children[1])
		if err != nil {
			return nil, err
		}
		result, err := operators.Unary(node.Carry, operand)
		if err != nil {
			return nil, p.wrapOpErr(node, err)
		}
		return result.AsLiteral(), nil

	case ast.ArrayExpression:
		elemType := types.Scalar(types.Void)
		elems := make([]*value.Variable, 0, len(node.Children))
		for _, c := range node.Children {
			v, err := p.evalExpr(s, c)
			if err != nil {
				return nil, err
			}
			elemType = v.Type
			elems = append(elems, v)
		}
		return value.NewArray(value.LiteralName, elemType, elems), nil

	default:
		return nil, p.errAt(node, diag.Internal, "unexpected expression node kind %s", node.Kind)
	}
}

// evalReference resolves node to the actual storage cell it names, per
// spec §4.6.2's reference-expression rule: only a bare Identifier or an
// `array # integer` indexing expression (nested arbitrarily deep) is a
// valid reference; anything else is InvalidReferenceExpression.
func (p *Process) evalReference(s *scope.Scope, node ast.Node) (*value.Variable, error) {
	switch {
	case node.Kind == ast.Identifier:
		name := p.tokenText(node.Carry)
		v, ok := p.Root.GetVariable(name)
		if !ok {
			return nil, p.errAt(node, diag.UndefinedVariable, "undefined variable %q", name)
		}
		return v, nil

	case node.Kind == ast.Expression && node.Carry == token.OpHash:
		container, err := p.evalReference(s, node.Children[0])
		if err != nil {
			return nil, err
		}
		idx, err := p.evalExpr(s, node.Children[2])
		if err != nil {
			return nil, err
		}
		elem, err := operators.Hash(container, idx)
		if err != nil {
			return nil, p.wrapOpErr(node, err)
		}
		return elem, nil

	default:
		return nil, p.errAt(node, diag.InvalidReferenceExpression, "not a valid reference expression")
	}
}

// wrapOpErr attaches node's position to an error already coded by the
// operators package (which carries no position of its own).
func (p *Process) wrapOpErr(node ast.Node, err error) error {
	if de, ok := err.(*diag.Error); ok {
		return p.errAt(node, de.Code, "%s", de.Message)
	}
	return err
}
