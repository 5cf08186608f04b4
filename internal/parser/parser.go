// Package parser builds a Dosato AST from a token stream by recursive
// descent, keyed on the target node kind at each call (spec §4.2). Every
// parse function receives a token index range [start, end) and returns
// the node it built.
package parser

import (
	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
)

// Parser holds the token stream and source text being parsed. It carries
// no mutable cursor state of its own — every parse method is a pure
// function of the [start,end) range it's given — which is what lets the
// call-chain and expression parsers freely recurse into arbitrary
// sub-ranges.
type Parser struct {
	src  string
	toks []token.Token
}

// Parse parses range [0,len(toks)) into a Program node.
func Parse(src string, toks []token.Token) (ast.Node, error) {
	p := &Parser{src: src, toks: toks}
	return p.parseStatements(ast.Program, 0, len(toks))
}

func (p *Parser) tok(i int) token.Token { return p.toks[i] }

func (p *Parser) text(i int) string { return p.toks[i].Text(p.src) }

func (p *Parser) errAt(i int, code diag.Code, msg string, args ...any) error {
	pos := 0
	if i >= 0 && i < len(p.toks) {
		pos = p.toks[i].Start
	} else if len(p.toks) > 0 {
		pos = p.toks[len(p.toks)-1].End
	}
	return diag.New(code, pos, msg, args...).WithSource(p.src, "")
}

// parseStatements parses a flat sequence of master-keyword statements in
// [start,end) into a node of the given kind (Program or Block).
func (p *Parser) parseStatements(kind ast.Kind, start, end int) (ast.Node, error) {
	node := ast.Node{Kind: kind, Start: start, End: end}
	i := start
	for i < end {
		stmt, next, err := p.parseStatement(i, end)
		if err != nil {
			return ast.Node{}, err
		}
		node.Children = append(node.Children, stmt)
		i = next
	}
	if kind == ast.Block && len(node.Children) == 0 {
		return ast.Node{}, p.errAt(start, diag.EmptyBlock, "block must contain at least one statement")
	}
	return node, nil
}

// parseStatement parses exactly one master-keyword statement starting at
// start, returning the node and the index just after its terminating ';'.
func (p *Parser) parseStatement(start, end int) (ast.Node, int, error) {
	if start >= end || p.tok(start).Kind != token.MasterKeyword {
		return ast.Node{}, 0, p.errAt(start, diag.ExpectedMaster, "expected DO, MAKE, or SET")
	}
	semi, err := p.findStatementEnd(start+1, end)
	if err != nil {
		return ast.Node{}, 0, err
	}

	var stmt ast.Node
	switch p.tok(start).Carry {
	case token.MasterDo:
		stmt, err = p.parseFunctionCall(start+1, semi)
	case token.MasterMake:
		stmt, err = p.parseMakeVar(start+1, semi)
	case token.MasterSet:
		stmt, err = p.parseSetVar(start+1, semi)
	default:
		err = p.errAt(start, diag.ExpectedMaster, "unknown master keyword")
	}
	if err != nil {
		return ast.Node{}, 0, err
	}
	stmt.Start = start
	stmt.End = semi
	return stmt, semi + 1, nil
}

// findStatementEnd scans forward from start for the statement-terminating
// ';', skipping over any balanced bracketed region encountered along the
// way (so semicolons inside `( )`, `[ ]`, or `{ }` don't end the
// statement early).
func (p *Parser) findStatementEnd(start, end int) (int, error) {
	i := start
	for i < end {
		t := p.tok(i)
		switch {
		case t.Kind == token.Separator:
			return i, nil
		case t.Kind == token.Parenthesis && isOpenerText(p.text(i)):
			closeIdx, err := p.matchClose(i, end)
			if err != nil {
				return 0, err
			}
			i = closeIdx + 1
			continue
		}
		i++
	}
	return 0, p.errAt(end-1, diag.ExpectedSeparator, "expected ';' to terminate statement")
}

func isOpenerText(s string) bool { return s == "(" || s == "[" || s == "{" }
func isCloserText(s string) bool { return s == ")" || s == "]" || s == "}" }

// matchClose finds the index of the Parenthesis token matching the
// opener at index i (same Carry, first occurrence scanning forward).
func (p *Parser) matchClose(i, end int) (int, error) {
	carry := p.tok(i).Carry
	for j := i + 1; j < end; j++ {
		if p.tok(j).Kind == token.Parenthesis && p.tok(j).Carry == carry && isCloserText(p.text(j)) {
			return j, nil
		}
	}
	return 0, p.bracketError(p.tok(i))
}

// matchOpenBackward finds the index of the Parenthesis token matching the
// closer at index i, scanning backward for the first prior occurrence of
// the same Carry.
func (p *Parser) matchOpenBackward(i, start int) (int, error) {
	carry := p.tok(i).Carry
	for j := i - 1; j >= start; j-- {
		if p.tok(j).Kind == token.Parenthesis && p.tok(j).Carry == carry && isOpenerText(p.text(j)) {
			return j, nil
		}
	}
	return 0, p.bracketError(p.tok(i))
}

func (p *Parser) bracketError(t token.Token) error {
	switch token.BracketShape(t.Carry) {
	case token.BracketRound:
		return p.errAt(t.Start, diag.WrongBracketRound, "unmatched round bracket")
	case token.BracketSquare:
		return p.errAt(t.Start, diag.WrongBracketSquare, "unmatched square bracket")
	default:
		return p.errAt(t.Start, diag.WrongBracketCurly, "unmatched curly bracket")
	}
}
