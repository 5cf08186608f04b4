package scope

import (
	"testing"

	"github.com/Robotnik08/dosato/internal/value"
)

func builtins() []string { return []string{"SAY", "SAYLN", "END"} }

func TestSeedsConstants(t *testing.T) {
	root := NewRoot(nil, builtins())
	for _, name := range []string{"_", "TRUE", "FALSE", "MATH_PI", "MATH_E", "__depth"} {
		if _, ok := root.GetVariable(name); !ok {
			t.Errorf("expected seeded constant %q", name)
		}
	}
}

func TestShadowing(t *testing.T) {
	root := NewRoot(nil, builtins())
	if err := root.AddVariable(value.NewInt("x", 1)); err != nil {
		t.Fatal(err)
	}
	child := root.PushChild(Block, nil, value.NewInt("", 0).Type)
	if err := child.AddVariable(value.NewInt("x", 2)); err != nil {
		t.Fatal(err)
	}
	got, _ := root.GetVariable("x")
	if got.I != 2 {
		t.Errorf("expected inner shadow to win, got %d", got.I)
	}
	root.PopInnermost()
	got, _ = root.GetVariable("x")
	if got.I != 1 {
		t.Errorf("expected outer binding restored, got %d", got.I)
	}
}

func TestDuplicateVariableInSameScopeErrors(t *testing.T) {
	root := NewRoot(nil, builtins())
	if err := root.AddVariable(value.NewInt("x", 1)); err != nil {
		t.Fatal(err)
	}
	if err := root.AddVariable(value.NewInt("x", 2)); err == nil {
		t.Fatal("expected duplicate variable declaration to error")
	}
}

func TestConstantCannotBeAssigned(t *testing.T) {
	root := NewRoot(nil, builtins())
	if err := root.Assign("TRUE", value.NewBool("", false)); err == nil {
		t.Fatal("expected assignment to TRUE to fail")
	}
	if err := root.Assign("_", value.NewInt("", 5)); err == nil {
		t.Fatal("expected user-level assignment to _ to fail")
	}
}

func TestSetInternalBypassesConstantCheck(t *testing.T) {
	root := NewRoot(nil, builtins())
	root.SetInternal(value.ResultName, value.NewInt("", 42))
	got, _ := root.GetVariable("_")
	if got.I != 42 {
		t.Errorf("expected SetInternal to write 42, got %d", got.I)
	}
}

func TestFunctionLookupOnlyRoot(t *testing.T) {
	root := NewRoot(nil, builtins())
	if _, ok := root.GetFunction("SAY"); !ok {
		t.Fatal("expected builtin SAY to be registered")
	}
	if err := root.AddFunction(&Function{Name: "add"}); err != nil {
		t.Fatal(err)
	}
	if err := root.AddFunction(&Function{Name: "add"}); err == nil {
		t.Fatal("expected duplicate function declaration to error")
	}
}
