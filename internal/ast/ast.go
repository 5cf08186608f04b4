// Package ast defines the Dosato abstract syntax tree: a closed set of
// node kinds, each an ordered sequence of child nodes plus the token
// range it was parsed from (for diagnostics and source recovery).
package ast

import "fmt"

// Kind is the closed enum of AST node kinds.
type Kind int

const (
	Program Kind = iota
	Block
	FunctionCall
	MakeVar
	SetVar
	FunctionDeclaration
	Expression
	UnaryExpression
	Literal
	Identifier
	Operator
	FunctionIdentifier
	Arguments
	Argument
	TypeIdentifier
	ArrayDeclaration
	ArrayExpression
	FunctionDeclarationArguments
	FunctionDeclarationArgument
	When
	While
	Else
	Catch
	Into
	Then
)

var kindNames = [...]string{
	"Program", "Block", "FunctionCall", "MakeVar", "SetVar", "FunctionDeclaration",
	"Expression", "UnaryExpression", "Literal", "Identifier", "Operator",
	"FunctionIdentifier", "Arguments", "Argument", "TypeIdentifier", "ArrayDeclaration",
	"ArrayExpression", "FunctionDeclarationArguments", "FunctionDeclarationArgument",
	"When", "While", "Else", "Catch", "Into", "Then",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// CastOperator is the sentinel UnaryExpression.Carry value for a C-style
// cast `(TYPE)expr`, distinguishing it from the three real unary operator
// indices (-, !, ~) a UnaryExpression can otherwise carry.
const CastOperator = -2

// Node is a single AST node. Start/End are token indices (not byte
// offsets) spanning the source this node was parsed from. Carry mirrors
// the lexer's per-token integer payload for nodes that need one (e.g. an
// Operator node's operator index, a Literal node's token index, an
// Identifier node's token index).
type Node struct {
	Kind     Kind
	Start    int
	End      int
	Carry    int
	Children []Node
}

// Text recovers the node's source slice given the full token stream and
// source text.
func (n Node) Text(src string, startOffset, endOffset func(i int) int) string {
	if n.Start < 0 || n.End < 0 {
		return ""
	}
	return src[startOffset(n.Start):endOffset(n.End)]
}
