package parser

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
)

// parseExpression parses [start,end) by precedence climbing: symmetric
// outer parentheses are trimmed first, then each precedence level 15
// down to 1 is scanned right-to-left for a binary split point. This
// mirrors the original implementation's flat-token approach rather than
// building a recursive grammar per operator.
func (p *Parser) parseExpression(start, end int) (ast.Node, error) {
	for start < end-1 && p.tok(start).Kind == token.Parenthesis &&
		token.BracketShape(p.tok(start).Carry) == token.BracketRound && isOpenerText(p.text(start)) {
		closeIdx, err := p.matchClose(start, end)
		if err != nil || closeIdx != end-1 {
			break
		}
		start++
		end--
	}
	if start >= end {
		return ast.Node{}, p.errAt(start, diag.ExpectedExpression, "expected an expression")
	}

	for prec := token.MaxPrecedence; prec >= 1; prec-- {
		for i := end - 1; i >= start; i-- {
			t := p.tok(i)
			if t.Kind == token.Parenthesis && isCloserText(p.text(i)) {
				openIdx, err := p.matchOpenBackward(i, start)
				if err != nil {
					return ast.Node{}, err
				}
				i = openIdx
				continue
			}
			if t.Kind == token.Operator && token.Precedence[t.Carry] == prec && i > start && p.endsOperand(i-1) {
				left, err := p.parseExpression(start, i)
				if err != nil {
					return ast.Node{}, err
				}
				right, err := p.parseExpression(i+1, end)
				if err != nil {
					return ast.Node{}, err
				}
				opNode := ast.Node{Kind: ast.Operator, Start: i, End: i + 1, Carry: t.Carry}
				return ast.Node{Kind: ast.Expression, Start: start, End: end, Carry: t.Carry, Children: []ast.Node{left, opNode, right}}, nil
			}
		}
	}

	return p.parseExpressionAtom(start, end)
}

// endsOperand reports whether the token at i can be the right edge of a
// left operand — i.e. the operator one position later is genuinely
// binary rather than a unary prefix.
func (p *Parser) endsOperand(i int) bool {
	t := p.tok(i)
	switch t.Kind {
	case token.Identifier, token.Number, token.String:
		return true
	case token.Parenthesis:
		return isCloserText(p.text(i))
	}
	return false
}

// parseExpressionAtom handles every shape with no top-level binary
// operator: a cast, an array literal, a unary prefix, or a bare
// identifier/literal.
func (p *Parser) parseExpressionAtom(start, end int) (ast.Node, error) {
	if start >= end {
		return ast.Node{}, p.errAt(start, diag.ExpectedExpression, "expected an expression")
	}
	t := p.tok(start)

	if t.Kind == token.Parenthesis && token.BracketShape(t.Carry) == token.BracketRound && isOpenerText(p.text(start)) &&
		start+2 < end && p.tok(start+1).Kind == token.VarType &&
		p.tok(start+2).Kind == token.Parenthesis && p.tok(start+2).Carry == t.Carry {
		typeNode := ast.Node{Kind: ast.TypeIdentifier, Start: start + 1, End: start + 2, Carry: p.tok(start+1).Carry}
		inner, err := p.parseExpression(start+3, end)
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Node{Kind: ast.UnaryExpression, Start: start, End: end, Carry: ast.CastOperator, Children: []ast.Node{typeNode, inner}}, nil
	}

	if t.Kind == token.Parenthesis && token.BracketShape(t.Carry) == token.BracketSquare && isOpenerText(p.text(start)) {
		closeIdx, err := p.matchClose(start, end)
		if err != nil {
			return ast.Node{}, err
		}
		if closeIdx != end-1 {
			return ast.Node{}, p.errAt(closeIdx+1, diag.InvalidExpression, "unexpected tokens after array literal")
		}
		return p.parseArrayExpression(start+1, closeIdx)
	}

	if t.Kind == token.Operator && isUnaryOperator(t.Carry) {
		inner, err := p.parseExpression(start+1, end)
		if err != nil {
			return ast.Node{}, err
		}
		opNode := ast.Node{Kind: ast.Operator, Start: start, End: start + 1, Carry: t.Carry}
		return ast.Node{Kind: ast.UnaryExpression, Start: start, End: end, Carry: t.Carry, Children: []ast.Node{opNode, inner}}, nil
	}

	if end-start == 1 {
		switch t.Kind {
		case token.Identifier:
			return ast.Node{Kind: ast.Identifier, Start: start, End: end, Carry: start}, nil
		case token.Number, token.String:
			return ast.Node{Kind: ast.Literal, Start: start, End: end, Carry: start}, nil
		}
	}

	return ast.Node{}, p.errAt(start, diag.InvalidExpression, "invalid expression")
}

func isUnaryOperator(carry int) bool {
	switch carry {
	case token.OpSubtract, token.OpNot, token.OpNotBitwise:
		return true
	}
	return false
}

// parseArrayExpression parses a comma-separated element list, already
// stripped of its enclosing square brackets. An empty range is a valid
// empty array literal.
func (p *Parser) parseArrayExpression(start, end int) (ast.Node, error) {
	node := ast.Node{Kind: ast.ArrayExpression, Start: start, End: end}
	if start >= end {
		return node, nil
	}
	segs, err := p.splitTopLevel(start, end, token.OpComma)
	if err != nil {
		return ast.Node{}, err
	}
	for _, seg := range segs {
		expr, err := p.parseExpression(seg[0], seg[1])
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, expr)
	}
	return node, nil
}

// splitTopLevel splits [start,end) on every Operator token carrying
// opCarry that sits at bracket depth zero, returning the resulting
// sub-ranges (always at least one, even for an empty range).
func (p *Parser) splitTopLevel(start, end, opCarry int) ([][2]int, error) {
	var segs [][2]int
	segStart := start
	i := start
	for i < end {
		t := p.tok(i)
		if t.Kind == token.Parenthesis && isOpenerText(p.text(i)) {
			closeIdx, err := p.matchClose(i, end)
			if err != nil {
				return nil, err
			}
			i = closeIdx + 1
			continue
		}
		if t.Kind == token.Operator && t.Carry == opCarry {
			segs = append(segs, [2]int{segStart, i})
			segStart = i + 1
		}
		i++
	}
	segs = append(segs, [2]int{segStart, end})
	return segs, nil
}

// findTopLevelExtension scans forward for an Extension token carrying
// carry at bracket depth zero, returning -1 if none is found.
func (p *Parser) findTopLevelExtension(start, end, carry int) int {
	i := start
	for i < end {
		t := p.tok(i)
		if t.Kind == token.Parenthesis && isOpenerText(p.text(i)) {
			closeIdx, err := p.matchClose(i, end)
			if err != nil {
				return -1
			}
			i = closeIdx + 1
			continue
		}
		if t.Kind == token.Extension && t.Carry == carry {
			return i
		}
		i++
	}
	return -1
}
