package interp_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/lexer"
	"github.com/Robotnik08/dosato/internal/parser"
	"github.com/Robotnik08/dosato/internal/stdlib"
)

// runSource lexes, parses and executes src with a real stdlib.Registry,
// capturing SAY/SAYLN output; it's the shared scaffolding every scenario
// below builds on.
func runSource(t *testing.T, src string) (string, *interp.Process) {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	program, err := parser.Parse(src, toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	var out bytes.Buffer
	p := interp.New(src, toks, program, stdlib.New())
	p.Out = &out
	if err := interp.Run(p); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out.String(), p
}

func TestSayPrintsArgument(t *testing.T) {
	out, p := runSource(t, `DO SAYLN("hello");`)
	if out != "hello\n" {
		t.Fatalf("got %q", out)
	}
	if p.Err != nil {
		t.Fatalf("unexpected error: %v", p.Err)
	}
}

func TestMakeVarAndSetVar(t *testing.T) {
	out, _ := runSource(t, `
MAKE INT x = 1;
SET x += 41;
DO SAYLN(x);
`)
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestWhileLoopWithBreak(t *testing.T) {
	out, _ := runSource(t, `
MAKE INT i = 0;
DO {
	DO SAYLN(i);
	SET i += 1;
	DO BREAK() WHEN i >= 3;
} WHILE i < 10;
`)
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUserFunctionReturn(t *testing.T) {
	out, _ := runSource(t, `
MAKE FUNC INT double(INT n) {
	DO RETURN(n * 2);
};
DO SAYLN(double(21));
`)
	if out != "42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCatchHandlesError(t *testing.T) {
	out, _ := runSource(t, `
DO READ("/does/not/exist") CATCH SAYLN("caught");
`)
	if strings.TrimSpace(out) != "caught" {
		t.Fatalf("got %q", out)
	}
}

func TestIntoBindsResult(t *testing.T) {
	out, _ := runSource(t, `
MAKE FUNC STRING greet() {
	DO RETURN("hi");
};
DO greet() INTO result;
DO SAYLN(result);
`)
	if out != "hi\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEndStopsImmediatelyInsideFunction(t *testing.T) {
	out, p := runSource(t, `
MAKE FUNC VOID stop() {
	DO SAYLN("before");
	DO END(7);
	DO SAYLN("after");
};
DO stop();
DO SAYLN("unreachable");
`)
	if out != "before\n" {
		t.Fatalf("got %q", out)
	}
	if p.ExitCode != 7 {
		t.Fatalf("exit code = %d", p.ExitCode)
	}
}
