package parser

import (
	"testing"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/lexer"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	node, err := Parse(src, toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return node
}

func TestParseSimpleCall(t *testing.T) {
	node := mustParse(t, `DO SAYLN("hi");`)
	if node.Kind != ast.Program || len(node.Children) != 1 {
		t.Fatalf("unexpected program shape: %+v", node)
	}
	call := node.Children[0]
	if call.Kind != ast.FunctionCall || len(call.Children) != 1 {
		t.Fatalf("unexpected call shape: %+v", call)
	}
}

func TestParseMakeVar(t *testing.T) {
	node := mustParse(t, `MAKE INT x = 5;`)
	decl := node.Children[0]
	if decl.Kind != ast.MakeVar || len(decl.Children) != 3 {
		t.Fatalf("unexpected decl shape: %+v", decl)
	}
}

func TestParseArrayDeclaration(t *testing.T) {
	node := mustParse(t, `MAKE ARRAY ARRAY INT matrix = [[1,2],[3,4]];`)
	decl := node.Children[0]
	if decl.Kind != ast.ArrayDeclaration || decl.Carry != 2 {
		t.Fatalf("expected array depth 2, got %+v", decl)
	}
}

func TestParseSetVar(t *testing.T) {
	node := mustParse(t, `SET x += 1;`)
	set := node.Children[0]
	if set.Kind != ast.SetVar || len(set.Children) != 3 {
		t.Fatalf("unexpected set shape: %+v", set)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	node := mustParse(t, `MAKE FUNC INT add(INT a, INT b) { DO RETURN(a + b); };`)
	decl := node.Children[0]
	if decl.Kind != ast.FunctionDeclaration {
		t.Fatalf("expected FunctionDeclaration, got %s", decl.Kind)
	}
	args := decl.Children[2]
	if len(args.Children) != 2 {
		t.Fatalf("expected 2 params, got %d", len(args.Children))
	}
}

func TestParseCallChainThenCatch(t *testing.T) {
	node := mustParse(t, `DO RISKY() THEN NEXT() CATCH HANDLE();`)
	call := node.Children[0]
	if len(call.Children) != 3 {
		t.Fatalf("expected [call, Then, Catch], got %d children", len(call.Children))
	}
	if call.Children[1].Kind != ast.Then || call.Children[2].Kind != ast.Catch {
		t.Fatalf("unexpected extension kinds: %s, %s", call.Children[1].Kind, call.Children[2].Kind)
	}
}

func TestParseCallChainWhenElse(t *testing.T) {
	node := mustParse(t, `DO A() WHEN x > 0 ELSE B();`)
	call := node.Children[0]
	if len(call.Children) != 3 {
		t.Fatalf("expected [call, When, Else], got %d", len(call.Children))
	}
	if call.Children[1].Kind != ast.When || call.Children[2].Kind != ast.Else {
		t.Fatalf("unexpected shape: %+v", call.Children)
	}
	elseBranch := call.Children[2].Children[0]
	if elseBranch.Kind != ast.FunctionCall {
		t.Fatalf("expected nested call in ELSE, got %s", elseBranch.Kind)
	}
}

func TestParseCallChainWhile(t *testing.T) {
	node := mustParse(t, `DO STEP() WHILE x < 10;`)
	call := node.Children[0]
	if len(call.Children) != 2 || call.Children[1].Kind != ast.While {
		t.Fatalf("unexpected shape: %+v", call.Children)
	}
}

func TestParseInlineBlockCall(t *testing.T) {
	node := mustParse(t, `DO { SET x = 1; } WHEN x == 0;`)
	call := node.Children[0]
	block := call.Children[0].Children[0]
	if block.Kind != ast.Block {
		t.Fatalf("expected inline Block, got %s", block.Kind)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	node := mustParse(t, `SET x = 1 - 2 - 3;`)
	rhs := node.Children[0].Children[2]
	// (1-2)-3: the outer node's left child should itself be a subtraction.
	if rhs.Kind != ast.Expression || rhs.Children[0].Kind != ast.Expression {
		t.Fatalf("expected left-associative nesting, got %+v", rhs)
	}
}

func TestParseCast(t *testing.T) {
	node := mustParse(t, `SET x = (DOUBLE) y;`)
	rhs := node.Children[0].Children[2]
	if rhs.Kind != ast.UnaryExpression || rhs.Carry != ast.CastOperator {
		t.Fatalf("expected cast unary, got %+v", rhs)
	}
}

func TestParseUnmatchedParenErrors(t *testing.T) {
	src := `DO SAYLN("hi";`
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(src, toks); err == nil {
		t.Fatal("expected an error for an unmatched paren")
	}
}
