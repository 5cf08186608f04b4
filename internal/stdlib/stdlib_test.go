package stdlib_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/stdlib"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// newProcess builds a minimal Process whose only purpose is to give a
// built-in somewhere to write its output and its `_` result into; no
// source is ever lexed, parsed or run against it.
func newProcess() *interp.Process {
	registry := stdlib.New()
	p := interp.New("", nil, ast.Node{Kind: ast.Block}, registry)
	p.Out = &bytes.Buffer{}
	return p
}

func invoke(t *testing.T, p *interp.Process, name string, args ...*value.Variable) error {
	t.Helper()
	return p.Registry.Invoke(p, name, args)
}

func result(p *interp.Process) *value.Variable {
	v, _ := p.Innermost().LocalVariable(value.ResultName)
	return v
}

func diagCode(err error) diag.Code {
	de, ok := err.(*diag.Error)
	if !ok {
		return ""
	}
	return de.Code
}

func TestSayWritesToOut(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "SAYLN", value.NewString("", "hi")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Out.(*bytes.Buffer).String(); got != "hi\n" {
		t.Fatalf("got %q", got)
	}
}

func TestSqrtComputesRoot(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "SQRT", value.NewDouble("", 16)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result(p).F; got != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestSqrtRejectsNegative(t *testing.T) {
	p := newProcess()
	err := invoke(t, p, "SQRT", value.NewDouble("", -1))
	if diagCode(err) != diag.MathDomainError {
		t.Fatalf("expected MathDomainError, got %v", err)
	}
}

func TestAbsKeepsArgumentType(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "ABS", value.NewInt("", -5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := result(p)
	if r.Type.DataType != types.Int || r.I != 5 {
		t.Fatalf("got %+v", r)
	}
}

func TestMinMaxReturnOriginalOperand(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "MIN", value.NewInt("", 7), value.NewInt("", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := result(p); r.Type.DataType != types.Int || r.I != 3 {
		t.Fatalf("got %+v", r)
	}
	if err := invoke(t, p, "MAX", value.NewInt("", 7), value.NewInt("", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := result(p); r.Type.DataType != types.Int || r.I != 7 {
		t.Fatalf("got %+v", r)
	}
}

func TestRandintIsDeterministicAfterSrand(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "SRAND", value.NewInt("", 42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := invoke(t, p, "RANDINT", value.NewInt("", 1), value.NewInt("", 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := result(p).I
	if first < 1 || first > 10 {
		t.Fatalf("out of range: %d", first)
	}

	if err := invoke(t, p, "SRAND", value.NewInt("", 42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := invoke(t, p, "RANDINT", value.NewInt("", 1), value.NewInt("", 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second := result(p).I; second != first {
		t.Fatalf("reseeding with the same seed produced %d, then %d", first, second)
	}
}

func TestRandintRejectsInvertedRange(t *testing.T) {
	p := newProcess()
	err := invoke(t, p, "RANDINT", value.NewInt("", 10), value.NewInt("", 1))
	if diagCode(err) != diag.NumberCannotBeNegative {
		t.Fatalf("expected NumberCannotBeNegative, got %v", err)
	}
}

func TestSplitAndLength(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "SPLIT", value.NewString("", "a,b,c"), value.NewString("", ",")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr := result(p)
	if len(arr.Elements) != 3 || arr.Elements[1].Str != "b" {
		t.Fatalf("got %+v", arr)
	}
	if err := invoke(t, p, "LENGTH", arr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result(p).I != 3 {
		t.Fatalf("got %d", result(p).I)
	}
}

func TestSubstringOutOfBounds(t *testing.T) {
	p := newProcess()
	err := invoke(t, p, "SUBSTRING", value.NewString("", "hi"), value.NewInt("", 0), value.NewInt("", 5))
	if diagCode(err) != diag.ArrayOutOfBounds {
		t.Fatalf("expected ArrayOutOfBounds, got %v", err)
	}
}

func TestReverseString(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "REVERSE", value.NewString("", "abc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result(p).Str; got != "cba" {
		t.Fatalf("got %q", got)
	}
}

func TestRemoveFirstMatchFromArray(t *testing.T) {
	p := newProcess()
	arr := value.NewArray("", types.Scalar(types.Int), []*value.Variable{
		value.NewInt("", 1), value.NewInt("", 2), value.NewInt("", 1),
	})
	if err := invoke(t, p, "REMOVE", arr, value.NewInt("", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result(p)
	if len(got.Elements) != 2 || got.Elements[0].I != 2 || got.Elements[1].I != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestInsertAppendsToArray(t *testing.T) {
	p := newProcess()
	arr := value.NewArray("", types.Scalar(types.Int), []*value.Variable{value.NewInt("", 1)})
	if err := invoke(t, p, "INSERT", arr, value.NewInt("", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result(p)
	if len(got.Elements) != 2 || got.Elements[1].I != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestInsertConcatenatesStrings(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "INSERT", value.NewString("", "foo"), value.NewString("", "bar")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result(p).Str; got != "foobar" {
		t.Fatalf("got %q", got)
	}
}

func TestArrayRemoveNegativeIndex(t *testing.T) {
	p := newProcess()
	arr := value.NewArray("", types.Scalar(types.Int), []*value.Variable{
		value.NewInt("", 10), value.NewInt("", 20), value.NewInt("", 30),
	})
	if err := invoke(t, p, "ARRAYREMOVE", arr, value.NewInt("", -1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result(p)
	if len(got.Elements) != 2 || got.Elements[0].I != 10 || got.Elements[1].I != 20 {
		t.Fatalf("got %+v", got)
	}
}

func TestArraySliceHalfOpenRange(t *testing.T) {
	p := newProcess()
	arr := value.NewArray("", types.Scalar(types.Int), []*value.Variable{
		value.NewInt("", 1), value.NewInt("", 2), value.NewInt("", 3), value.NewInt("", 4),
	})
	if err := invoke(t, p, "ARRAYSLICE", arr, value.NewInt("", 1), value.NewInt("", 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result(p)
	if len(got.Elements) != 2 || got.Elements[0].I != 2 || got.Elements[1].I != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestStringToIntRejectsGarbage(t *testing.T) {
	p := newProcess()
	err := invoke(t, p, "STRINGTOINT", value.NewString("", "not-a-number"))
	if diagCode(err) != diag.InvalidNumber {
		t.Fatalf("expected InvalidNumber, got %v", err)
	}
}

func TestStringToDoubleParses(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "STRINGTODOUBLE", value.NewString("", "3.5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result(p).F; got != 3.5 {
		t.Fatalf("got %v", got)
	}
}

func TestReadMissingFileFails(t *testing.T) {
	p := newProcess()
	err := invoke(t, p, "READ", value.NewString("", "/does/not/exist/dosato.txt"))
	if diagCode(err) != diag.FileNotFound {
		t.Fatalf("expected FileNotFound, got %v", err)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	p := newProcess()
	path := t.TempDir() + "/out.txt"
	if err := invoke(t, p, "WRITE", value.NewString("", path), value.NewString("", "hello")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if err := invoke(t, p, "APPEND", value.NewString("", path), value.NewString("", " world")); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}
	if err := invoke(t, p, "READ", value.NewString("", path)); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if got := result(p).Str; got != "hello world" {
		t.Fatalf("got %q", got)
	}
}

func TestSleepZeroReturnsImmediately(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "SLEEP", value.NewInt("", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDateFormat(t *testing.T) {
	p := newProcess()
	if err := invoke(t, p, "DATE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := result(p).Str
	if len(strings.Split(got, "-")) != 3 {
		t.Fatalf("expected YYYY-MM-DD, got %q", got)
	}
}

func TestUnknownBuiltinFails(t *testing.T) {
	p := newProcess()
	err := p.Registry.Invoke(p, "NOTAREALBUILTIN", nil)
	if diagCode(err) != diag.FunctionNotFound {
		t.Fatalf("expected FunctionNotFound, got %v", err)
	}
}
