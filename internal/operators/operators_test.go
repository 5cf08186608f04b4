package operators

import (
	"testing"

	"github.com/Robotnik08/dosato/internal/token"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

func TestAddNumeric(t *testing.T) {
	res, err := Binary(token.OpAdd, value.NewInt("", 2), value.NewInt("", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.I != 5 {
		t.Errorf("got %d want 5", res.I)
	}
}

func TestAddStringConcatenation(t *testing.T) {
	res, err := Binary(token.OpAdd, value.NewString("", "hi"), value.NewString("", " there"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Str != "hi there" {
		t.Errorf("got %q want %q", res.Str, "hi there")
	}
}

func TestAddArrayConcatenation(t *testing.T) {
	a := value.NewArray("", types.Scalar(types.Int), []*value.Variable{value.NewInt("", 1)})
	b := value.NewArray("", types.Scalar(types.Int), []*value.Variable{value.NewInt("", 2)})
	res, err := Binary(token.OpAdd, a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Elements) != 2 {
		t.Fatalf("got %d elements want 2", len(res.Elements))
	}
}

func TestSubtractArrayRemovesFromEnd(t *testing.T) {
	a := value.NewArray("", types.Scalar(types.Int), []*value.Variable{value.NewInt("", 1), value.NewInt("", 2), value.NewInt("", 3)})
	res, err := Binary(token.OpSubtract, a, value.NewInt("", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Elements) != 2 || res.Elements[1].I != 2 {
		t.Fatalf("unexpected result %v", res)
	}
}

func TestModuloOnFloatErrors(t *testing.T) {
	_, err := Binary(token.OpModulo, value.NewDouble("", 3.0), value.NewDouble("", 2.0))
	if err == nil {
		t.Fatal("expected modulo on floats to error")
	}
}

func TestDivideByZero(t *testing.T) {
	_, err := Binary(token.OpDivide, value.NewInt("", 1), value.NewInt("", 0))
	if err == nil {
		t.Fatal("expected division by zero to error")
	}
}

func TestEqualityAcrossStringAndNumberIsFalse(t *testing.T) {
	res, err := Binary(token.OpEqual, value.NewString("", "1"), value.NewInt("", 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AsBool() {
		t.Error("expected string==number to be false")
	}
}

func TestHashArrayNegativeIndex(t *testing.T) {
	a := value.NewArray("", types.Scalar(types.Int), []*value.Variable{
		value.NewInt("", 10), value.NewInt("", 20), value.NewInt("", 30),
	})
	res, err := Hash(a, value.NewInt("", -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.I != 30 {
		t.Errorf("got %d want 30", res.I)
	}
}

func TestHashOutOfBounds(t *testing.T) {
	a := value.NewArray("", types.Scalar(types.Int), []*value.Variable{value.NewInt("", 1)})
	if _, err := Hash(a, value.NewInt("", 5)); err == nil {
		t.Fatal("expected out-of-bounds index to error")
	}
}

func TestUnaryNegateAndNot(t *testing.T) {
	neg, err := Unary(token.OpSubtract, value.NewInt("", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if neg.I != -5 {
		t.Errorf("got %d want -5", neg.I)
	}
	not, err := Unary(token.OpNot, value.NewBool("", true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if not.AsBool() {
		t.Error("expected !true to be false")
	}
}

func TestCompoundAssignAdd(t *testing.T) {
	x := value.NewInt("x", 10)
	res, err := CompoundResult(token.OpAddAssign, x, value.NewInt("", 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.I != 15 {
		t.Errorf("got %d want 15", res.I)
	}
}
