package value

import (
	"testing"

	"github.com/Robotnik08/dosato/internal/types"
)

func TestCastRoundTrip(t *testing.T) {
	original := NewInt("x", 42)
	asDouble, err := Cast(original, types.Scalar(types.Double))
	if err != nil {
		t.Fatalf("cast to double: %v", err)
	}
	back, err := Cast(asDouble, types.Scalar(types.Int))
	if err != nil {
		t.Fatalf("cast back to int: %v", err)
	}
	if back.I != 42 {
		t.Errorf("round trip changed value: got %d want 42", back.I)
	}
}

func TestCastTruncation(t *testing.T) {
	big := NewInt("x", 300)
	asByte, err := Cast(big, types.Scalar(types.Byte))
	if err != nil {
		t.Fatalf("cast to byte: %v", err)
	}
	if asByte.I != 44 {
		t.Errorf("expected 300 truncated to a signed byte to be 44, got %d", asByte.I)
	}
}

func TestCastFloatTowardZero(t *testing.T) {
	f := NewDouble("x", -3.9)
	asInt, err := Cast(f, types.Scalar(types.Int))
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if asInt.I != -3 {
		t.Errorf("expected truncation toward zero: got %d want -3", asInt.I)
	}
}

func TestCastStringRejected(t *testing.T) {
	s := NewString("x", "hi")
	if _, err := Cast(s, types.Scalar(types.Int)); err == nil {
		t.Fatal("expected cast from string to int to fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	arr := NewArray("a", types.Scalar(types.Int), []*Variable{NewInt("", 1), NewInt("", 2)})
	clone := arr.Clone()
	clone.Elements[0].I = 99
	if arr.Elements[0].I == 99 {
		t.Error("clone shared underlying element storage")
	}
}
