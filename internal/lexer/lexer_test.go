package lexer

import (
	"testing"

	"github.com/Robotnik08/dosato/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicStatement(t *testing.T) {
	toks, err := Lex(`MAKE INT x = 2 + 3 * 4;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{
		token.MasterKeyword, token.VarType, token.Identifier, token.Operator,
		token.Number, token.Operator, token.Number, token.Operator, token.Number,
		token.Separator,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexCommentsStripped(t *testing.T) {
	toks, err := Lex("DO SAYLN(1); // trailing comment\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range toks {
		if tok.Kind == token.Comment {
			t.Fatalf("comment token leaked into output: %+v", tok)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, err := Lex(`MAKE STRING s = "a\"b";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == token.String {
			found = true
			if tok.Text(`MAKE STRING s = "a\"b";`) != `"a\"b"` {
				t.Errorf("unexpected string slice: %q", tok.Text(`MAKE STRING s = "a\"b";`))
			}
		}
	}
	if !found {
		t.Fatal("expected a string token")
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex(`MAKE STRING s = "abc;`)
	if err == nil {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestLexOperatorsTwoCharBeforeOneChar(t *testing.T) {
	toks, err := Lex(`SET x += 1;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var opText string
	for _, tok := range toks {
		if tok.Kind == token.Operator {
			opText = tok.Text(`SET x += 1;`)
		}
	}
	if opText != "+=" {
		t.Errorf("expected '+=' operator, got %q", opText)
	}
}

func TestLexBracketNesting(t *testing.T) {
	toks, err := Lex(`DO f([1, [2, 3]]);`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parens []token.Token
	for _, tok := range toks {
		if tok.Kind == token.Parenthesis {
			parens = append(parens, tok)
		}
	}
	for _, p := range parens {
		if p.Carry == -1 {
			t.Errorf("unexpected unmatched bracket: %+v", p)
		}
	}
}

func TestLexUnmatchedCloserCarriesNegativeOne(t *testing.T) {
	toks, err := Lex(`DO f(1));`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sawUnmatched := false
	for _, tok := range toks {
		if tok.Kind == token.Parenthesis && tok.Carry == -1 {
			sawUnmatched = true
		}
	}
	if !sawUnmatched {
		t.Fatal("expected an unmatched closing bracket to carry -1")
	}
}

func TestLexStability(t *testing.T) {
	src := `MAKE ARRAY INT a = [10, 20, 30]; DO SAY(a#-1);`
	first, err := Lex(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Lex(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("retokenizing changed token count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLexNumberFloatSuffix(t *testing.T) {
	toks, err := Lex(`MAKE FLOAT f = 3.5F;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := `MAKE FLOAT f = 3.5F;`
	for _, tok := range toks {
		if tok.Kind == token.Number {
			if tok.Text(src) != "3.5F" {
				t.Errorf("got number text %q, want 3.5F", tok.Text(src))
			}
		}
	}
}
