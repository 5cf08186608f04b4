package parser

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
)

// parseFunctionCall parses a full call chain: one call unit followed by
// zero or more extensions (spec §4.2/§4.6.1). It is also used to parse
// an ELSE branch's payload, which may itself carry further extensions.
func (p *Parser) parseFunctionCall(start, end int) (ast.Node, error) {
	node := ast.Node{Kind: ast.FunctionCall, Start: start, End: end}

	first, pos, err := p.parseCallable(start, end)
	if err != nil {
		return ast.Node{}, err
	}
	node.Children = append(node.Children, first)

	for pos < end && p.tok(pos).Kind == token.Extension && p.tok(pos).Carry == token.ExtThen {
		thenStart := pos
		callable, next, err := p.parseCallable(pos+1, end)
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, ast.Node{Kind: ast.Then, Start: thenStart, End: next, Children: []ast.Node{callable}})
		pos = next
	}

	if pos < end && p.tok(pos).Kind == token.Extension && p.tok(pos).Carry == token.ExtCatch {
		catchStart := pos
		callable, next, err := p.parseCallable(pos+1, end)
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, ast.Node{Kind: ast.Catch, Start: catchStart, End: next, Children: []ast.Node{callable}})
		pos = next
	} else if pos < end && p.tok(pos).Kind == token.Extension && p.tok(pos).Carry == token.ExtInto {
		intoStart := pos
		if pos+1 >= end || p.tok(pos+1).Kind != token.Identifier {
			return ast.Node{}, p.errAt(pos+1, diag.ExpectedIdentifier, "expected a variable name after INTO")
		}
		identNode := ast.Node{Kind: ast.Identifier, Start: pos + 1, End: pos + 2, Carry: pos + 1}
		node.Children = append(node.Children, ast.Node{Kind: ast.Into, Start: intoStart, End: pos + 2, Children: []ast.Node{identNode}})
		pos += 2
	}

	if pos < end && p.tok(pos).Kind == token.Extension {
		switch p.tok(pos).Carry {
		case token.ExtWhen:
			whenStart := pos
			condEnd := end
			if elseIdx := p.findTopLevelExtension(pos+1, end, token.ExtElse); elseIdx >= 0 {
				condEnd = elseIdx
			}
			cond, err := p.parseExpression(pos+1, condEnd)
			if err != nil {
				return ast.Node{}, err
			}
			node.Children = append(node.Children, ast.Node{Kind: ast.When, Start: whenStart, End: condEnd, Children: []ast.Node{cond}})
			pos = condEnd
			if pos < end && p.tok(pos).Kind == token.Extension && p.tok(pos).Carry == token.ExtElse {
				elseStart := pos
				nested, err := p.parseFunctionCall(pos+1, end)
				if err != nil {
					return ast.Node{}, err
				}
				node.Children = append(node.Children, ast.Node{Kind: ast.Else, Start: elseStart, End: end, Children: []ast.Node{nested}})
				pos = end
			}
		case token.ExtWhile:
			whileStart := pos
			cond, err := p.parseExpression(pos+1, end)
			if err != nil {
				return ast.Node{}, err
			}
			node.Children = append(node.Children, ast.Node{Kind: ast.While, Start: whileStart, End: end, Children: []ast.Node{cond}})
			pos = end
		default:
			return ast.Node{}, p.errAt(pos, diag.ExtensionNotFinal, "unexpected extension %q here", p.text(pos))
		}
	}

	if pos != end {
		return ast.Node{}, p.errAt(pos, diag.ExtensionNotFinal, "unexpected tokens after call chain")
	}
	return node, nil
}

// parseCallable parses exactly one call unit: an identifier call
// `name(args)` or an inline block `{ ... }`. It returns the index just
// past the consumed tokens so the caller can keep chaining extensions.
func (p *Parser) parseCallable(start, end int) (ast.Node, int, error) {
	if start >= end {
		return ast.Node{}, 0, p.errAt(start, diag.ExpectedExpression, "expected a function call or block")
	}
	t := p.tok(start)

	if t.Kind == token.Identifier {
		openIdx := start + 1
		if openIdx >= end || p.tok(openIdx).Kind != token.Parenthesis ||
			token.BracketShape(p.tok(openIdx).Carry) != token.BracketRound || !isOpenerText(p.text(openIdx)) {
			return ast.Node{}, 0, p.errAt(openIdx, diag.ExpectedArguments, "expected '(' after function name")
		}
		closeIdx, err := p.matchClose(openIdx, end)
		if err != nil {
			return ast.Node{}, 0, err
		}
		argsNode, err := p.parseArguments(openIdx+1, closeIdx)
		if err != nil {
			return ast.Node{}, 0, err
		}
		identNode := ast.Node{Kind: ast.Identifier, Start: start, End: start + 1, Carry: start}
		fiNode := ast.Node{Kind: ast.FunctionIdentifier, Start: start, End: closeIdx + 1, Children: []ast.Node{identNode, argsNode}}
		call := ast.Node{Kind: ast.FunctionCall, Start: start, End: closeIdx + 1, Children: []ast.Node{fiNode}}
		return call, closeIdx + 1, nil
	}

	if t.Kind == token.Parenthesis && token.BracketShape(t.Carry) == token.BracketCurly && isOpenerText(p.text(start)) {
		closeIdx, err := p.matchClose(start, end)
		if err != nil {
			return ast.Node{}, 0, err
		}
		blockNode, err := p.parseStatements(ast.Block, start+1, closeIdx)
		if err != nil {
			return ast.Node{}, 0, err
		}
		call := ast.Node{Kind: ast.FunctionCall, Start: start, End: closeIdx + 1, Children: []ast.Node{blockNode}}
		return call, closeIdx + 1, nil
	}

	return ast.Node{}, 0, p.errAt(start, diag.ExpectedArguments, "expected an identifier call or a block")
}

// parseArguments parses a comma-separated list of Expression arguments,
// each wrapped in an Argument node. An empty range is a zero-argument call.
func (p *Parser) parseArguments(start, end int) (ast.Node, error) {
	node := ast.Node{Kind: ast.Arguments, Start: start, End: end}
	if start >= end {
		return node, nil
	}
	segs, err := p.splitTopLevel(start, end, token.OpComma)
	if err != nil {
		return ast.Node{}, err
	}
	for _, seg := range segs {
		if seg[0] >= seg[1] {
			return ast.Node{}, p.errAt(seg[0], diag.ExpectedArgument, "expected an argument")
		}
		expr, err := p.parseExpression(seg[0], seg[1])
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, ast.Node{Kind: ast.Argument, Start: seg[0], End: seg[1], Children: []ast.Node{expr}})
	}
	return node, nil
}

// parseMakeVar dispatches on the declared type: FUNC builds a
// FunctionDeclaration, ARRAY builds an ArrayDeclaration, anything else is
// a scalar MakeVar (spec §4.2).
func (p *Parser) parseMakeVar(start, end int) (ast.Node, error) {
	if start >= end || p.tok(start).Kind != token.VarType {
		return ast.Node{}, p.errAt(start, diag.ExpectedType, "expected a type after MAKE")
	}
	switch p.tok(start).Carry {
	case token.TypeFunc:
		return p.parseFunctionDeclaration(start, end)
	case token.TypeArray:
		return p.parseArrayDeclaration(start, end)
	default:
		return p.parseScalarMakeVar(start, end)
	}
}

func (p *Parser) parseScalarMakeVar(start, end int) (ast.Node, error) {
	typeNode := ast.Node{Kind: ast.TypeIdentifier, Start: start, End: start + 1, Carry: p.tok(start).Carry}
	if start+1 >= end || p.tok(start+1).Kind != token.Identifier {
		return ast.Node{}, p.errAt(start+1, diag.ExpectedIdentifier, "expected a variable name")
	}
	identNode := ast.Node{Kind: ast.Identifier, Start: start + 1, End: start + 2, Carry: start + 1}
	if start+2 >= end || p.tok(start+2).Kind != token.Operator || p.tok(start+2).Carry != token.OpAssign {
		return ast.Node{}, p.errAt(start+2, diag.ExpectedAssignOperator, "expected '=' in declaration")
	}
	expr, err := p.parseExpression(start+3, end)
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Kind: ast.MakeVar, Start: start, End: end, Children: []ast.Node{typeNode, identNode, expr}}, nil
}

// parseArrayDeclaration counts the leading ARRAY depth, then parses the
// element type, name, and initializer the same way a scalar MakeVar does.
func (p *Parser) parseArrayDeclaration(start, end int) (ast.Node, error) {
	i := start
	depth := 0
	for i < end && p.tok(i).Kind == token.VarType && p.tok(i).Carry == token.TypeArray {
		depth++
		i++
	}
	if i >= end || p.tok(i).Kind != token.VarType {
		return ast.Node{}, p.errAt(i, diag.ExpectedType, "expected an element type after ARRAY")
	}
	typeNode := ast.Node{Kind: ast.TypeIdentifier, Start: start, End: i + 1, Carry: p.tok(i).Carry}
	if i+1 >= end || p.tok(i+1).Kind != token.Identifier {
		return ast.Node{}, p.errAt(i+1, diag.ExpectedIdentifier, "expected a variable name")
	}
	identNode := ast.Node{Kind: ast.Identifier, Start: i + 1, End: i + 2, Carry: i + 1}
	if i+2 >= end || p.tok(i+2).Kind != token.Operator || p.tok(i+2).Carry != token.OpAssign {
		return ast.Node{}, p.errAt(i+2, diag.ExpectedAssignOperator, "expected '=' in array declaration")
	}
	expr, err := p.parseExpression(i+3, end)
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Kind: ast.ArrayDeclaration, Start: start, End: end, Carry: depth, Children: []ast.Node{typeNode, identNode, expr}}, nil
}

// parseFunctionDeclaration parses `FUNC <returnType> name(args) { body }`
// (spec §8 scenario 6 gives the literal shape). The statement terminator
// is required to sit directly after the body's closing brace (spec §4.2).
func (p *Parser) parseFunctionDeclaration(start, end int) (ast.Node, error) {
	i := start + 1
	depth := 0
	for i < end && p.tok(i).Kind == token.VarType && p.tok(i).Carry == token.TypeArray {
		depth++
		i++
	}
	if i >= end || p.tok(i).Kind != token.VarType {
		return ast.Node{}, p.errAt(i, diag.ExpectedType, "expected a return type after FUNC")
	}
	typeNode := ast.Node{Kind: ast.TypeIdentifier, Start: start + 1, End: i + 1, Carry: p.tok(i).Carry}

	if i+1 >= end || p.tok(i+1).Kind != token.Identifier {
		return ast.Node{}, p.errAt(i+1, diag.ExpectedIdentifier, "expected a function name")
	}
	identNode := ast.Node{Kind: ast.Identifier, Start: i + 1, End: i + 2, Carry: i + 1}

	argOpen := i + 2
	if argOpen >= end || p.tok(argOpen).Kind != token.Parenthesis ||
		token.BracketShape(p.tok(argOpen).Carry) != token.BracketRound || !isOpenerText(p.text(argOpen)) {
		return ast.Node{}, p.errAt(argOpen, diag.ExpectedArguments, "expected '(' after function name")
	}
	argClose, err := p.matchClose(argOpen, end)
	if err != nil {
		return ast.Node{}, err
	}
	argsNode, err := p.parseFunctionDeclarationArguments(argOpen+1, argClose)
	if err != nil {
		return ast.Node{}, err
	}

	bodyOpen := argClose + 1
	if bodyOpen >= end || p.tok(bodyOpen).Kind != token.Parenthesis ||
		token.BracketShape(p.tok(bodyOpen).Carry) != token.BracketCurly || !isOpenerText(p.text(bodyOpen)) {
		return ast.Node{}, p.errAt(bodyOpen, diag.ExpectedBlock, "expected '{' to open function body")
	}
	bodyClose, err := p.matchClose(bodyOpen, end)
	if err != nil {
		return ast.Node{}, err
	}
	blockNode, err := p.parseStatements(ast.Block, bodyOpen+1, bodyClose)
	if err != nil {
		return ast.Node{}, err
	}
	if bodyClose+1 != end {
		return ast.Node{}, p.errAt(bodyClose+1, diag.ExpectedSeparator, "statement terminator must follow the function body directly")
	}

	return ast.Node{Kind: ast.FunctionDeclaration, Start: start, End: end, Carry: depth, Children: []ast.Node{typeNode, identNode, argsNode, blockNode}}, nil
}

func (p *Parser) parseFunctionDeclarationArguments(start, end int) (ast.Node, error) {
	node := ast.Node{Kind: ast.FunctionDeclarationArguments, Start: start, End: end}
	if start >= end {
		return node, nil
	}
	segs, err := p.splitTopLevel(start, end, token.OpComma)
	if err != nil {
		return ast.Node{}, err
	}
	for _, seg := range segs {
		argNode, err := p.parseFunctionDeclarationArgument(seg[0], seg[1])
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, argNode)
	}
	return node, nil
}

// parseFunctionDeclarationArgument parses one parameter: leading ARRAY
// depth, a scalar type, a name, and an optional default-value expression.
func (p *Parser) parseFunctionDeclarationArgument(start, end int) (ast.Node, error) {
	i := start
	depth := 0
	for i < end && p.tok(i).Kind == token.VarType && p.tok(i).Carry == token.TypeArray {
		depth++
		i++
	}
	if i >= end || p.tok(i).Kind != token.VarType {
		return ast.Node{}, p.errAt(i, diag.InvalidFunctionDeclarationArgument, "expected a parameter type")
	}
	typeNode := ast.Node{Kind: ast.TypeIdentifier, Start: start, End: i + 1, Carry: p.tok(i).Carry}
	if i+1 >= end || p.tok(i+1).Kind != token.Identifier {
		return ast.Node{}, p.errAt(i+1, diag.InvalidFunctionDeclarationArgument, "expected a parameter name")
	}
	identNode := ast.Node{Kind: ast.Identifier, Start: i + 1, End: i + 2, Carry: i + 1}
	node := ast.Node{Kind: ast.FunctionDeclarationArgument, Start: start, End: end, Carry: depth, Children: []ast.Node{typeNode, identNode}}

	if i+2 < end {
		if p.tok(i+2).Kind != token.Operator || p.tok(i+2).Carry != token.OpAssign {
			return ast.Node{}, p.errAt(i+2, diag.InvalidFunctionDeclarationArgument, "expected '=' before a default value")
		}
		defExpr, err := p.parseExpression(i+3, end)
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, defExpr)
	}
	return node, nil
}

// parseSetVar splits on the first top-level assignment operator: the set
// target (parsed as a reference expression by the interpreter, not here)
// on the left, the value expression on the right.
func (p *Parser) parseSetVar(start, end int) (ast.Node, error) {
	splitIdx := -1
	i := start
	for i < end {
		t := p.tok(i)
		if t.Kind == token.Parenthesis && isOpenerText(p.text(i)) {
			closeIdx, err := p.matchClose(i, end)
			if err != nil {
				return ast.Node{}, err
			}
			i = closeIdx + 1
			continue
		}
		if t.Kind == token.Operator && token.IsAssignmentOperator(t.Carry) {
			splitIdx = i
			break
		}
		i++
	}
	if splitIdx < 0 {
		return ast.Node{}, p.errAt(end-1, diag.ExpectedAssignOperator, "expected an assignment operator")
	}

	lhs, err := p.parseExpression(start, splitIdx)
	if err != nil {
		return ast.Node{}, err
	}
	opNode := ast.Node{Kind: ast.Operator, Start: splitIdx, End: splitIdx + 1, Carry: p.tok(splitIdx).Carry}
	rhs, err := p.parseExpression(splitIdx+1, end)
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Node{Kind: ast.SetVar, Start: start, End: end, Children: []ast.Node{lhs, opNode, rhs}}, nil
}
