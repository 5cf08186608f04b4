// Package types defines Dosato's static type descriptor: a scalar data
// type plus an array-nesting depth.
package types

import "github.com/Robotnik08/dosato/internal/token"

// DataType is one of the eleven scalar kinds plus string/void/func/struct.
// Values match internal/token's VarType carry indices 1:1.
type DataType int

const (
	Int DataType = iota
	Bool
	String
	Float
	Double
	Char
	Short
	Long
	Byte
	Void
	ArrayMarker // only appears transiently while parsing "ARRAY <type>"
	Func
	Uint
	Ushort
	Ulong
	Ubyte
	Struct
)

// FromTokenIndex maps a VarType token's Carry to a DataType.
func FromTokenIndex(carry int) DataType {
	return DataType(carry)
}

func (d DataType) String() string {
	if int(d) >= 0 && int(d) < len(token.VarTypes) {
		return token.VarTypes[d]
	}
	return "?"
}

// IsNumeric reports whether d is one of the eleven scalar numeric kinds
// that the operator kernel and caster treat as inter-castable.
func (d DataType) IsNumeric() bool {
	switch d {
	case Int, Float, Double, Char, Short, Long, Byte, Uint, Ushort, Ulong, Ubyte:
		return true
	}
	return false
}

// IsFloating reports whether d is Float or Double.
func (d DataType) IsFloating() bool {
	return d == Float || d == Double
}

// IsUnsigned reports whether d is one of the unsigned integer kinds.
// Bool is treated as an unsigned 1-bit kind for casting purposes; Char is
// signed (matches the original implementation's 8-bit signed char).
func (d DataType) IsUnsigned() bool {
	switch d {
	case Uint, Ushort, Ulong, Ubyte, Bool:
		return true
	}
	return false
}

// Type is { dataType, array-depth }. array == 0 means a scalar; array ==
// N means an N-deep nested array of DataType.
type Type struct {
	DataType DataType
	Array    int
}

// Scalar builds a non-array Type.
func Scalar(d DataType) Type { return Type{DataType: d, Array: 0} }

// ArrayOf builds a Type nested one level deeper than inner.
func ArrayOf(inner Type) Type { return Type{DataType: inner.DataType, Array: inner.Array + 1} }

func (t Type) String() string {
	s := t.DataType.String()
	for i := 0; i < t.Array; i++ {
		s = "ARRAY " + s
	}
	return s
}

func (t Type) IsArray() bool { return t.Array > 0 }
