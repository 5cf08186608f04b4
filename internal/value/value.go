// Package value implements Dosato's runtime Variable: a tagged payload
// over the eleven scalar kinds plus string and array, with C-style
// numeric casting, deep cloning, and the sentinel names the interpreter
// uses to track ownership roles (temporary literals, the implicit `_`
// result slot, the `__depth` constant).
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/types"
)

// Sentinel variable names with a special runtime role (spec §3).
const (
	LiteralName = "-lit"
	ResultName  = "_"
	DepthName   = "__depth"
)

// Variable is a named, typed runtime value. Exactly one of the I/F/Str/
// Elements fields is meaningful, chosen by Type.
type Variable struct {
	Name     string
	Type     types.Type
	Constant bool

	I        int64   // integer-family payload, raw bit pattern of the declared width
	F        float64 // Float/Double payload (Float values are pre-truncated to float32 precision)
	Str      string  // String payload
	Elements []*Variable // Array payload, named "#0", "#1", ...
}

// NewInt builds a scalar Int variable.
func NewInt(name string, v int64) *Variable {
	return &Variable{Name: name, Type: types.Scalar(types.Int), I: v}
}

// NewBool builds a scalar Bool variable.
func NewBool(name string, v bool) *Variable {
	i := int64(0)
	if v {
		i = 1
	}
	return &Variable{Name: name, Type: types.Scalar(types.Bool), I: i}
}

// NewDouble builds a scalar Double variable.
func NewDouble(name string, v float64) *Variable {
	return &Variable{Name: name, Type: types.Scalar(types.Double), F: v}
}

// NewString builds a scalar String variable.
func NewString(name string, v string) *Variable {
	return &Variable{Name: name, Type: types.Scalar(types.String), Str: v}
}

// NewArray builds an array variable from already-constructed elements;
// their names are renumbered to "#0", "#1", ...
func NewArray(name string, elemType types.Type, elements []*Variable) *Variable {
	for i, e := range elements {
		e.Name = fmt.Sprintf("#%d", i)
	}
	return &Variable{Name: name, Type: types.ArrayOf(elemType), Elements: elements}
}

// Truthy reports the variable's truthiness: numeric kinds are truthy when
// nonzero, strings when non-empty, arrays when non-empty.
func (v *Variable) Truthy() bool {
	switch {
	case v.Type.IsArray():
		return len(v.Elements) > 0
	case v.Type.DataType == types.String:
		return v.Str != ""
	case v.Type.DataType.IsFloating():
		return v.F != 0
	default:
		return v.I != 0
	}
}

// AsBool reads a Bool-typed scalar.
func (v *Variable) AsBool() bool { return v.I != 0 }

// Clone performs a deep copy: arrays recurse, strings copy by value (Go
// strings are already immutable so this is just a value copy).
func (v *Variable) Clone() *Variable {
	if v == nil {
		return nil
	}
	out := &Variable{Name: v.Name, Type: v.Type, Constant: v.Constant, I: v.I, F: v.F, Str: v.Str}
	if v.Elements != nil {
		out.Elements = make([]*Variable, len(v.Elements))
		for i, e := range v.Elements {
			out.Elements[i] = e.Clone()
		}
	}
	return out
}

// AsLiteral returns a clone renamed to the "-lit" temporary sentinel,
// used by expression evaluation so callers can treat every intermediate
// result uniformly.
func (v *Variable) AsLiteral() *Variable {
	c := v.Clone()
	c.Name = LiteralName
	c.Constant = false
	return c
}

// String renders the value's display form.
func (v *Variable) String() string {
	switch {
	case v.Type.IsArray():
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case v.Type.DataType == types.String:
		return v.Str
	case v.Type.DataType == types.Char:
		return string(rune(byte(v.I)))
	case v.Type.DataType == types.Bool:
		if v.I != 0 {
			return "true"
		}
		return "false"
	case v.Type.DataType.IsFloating():
		return strconv.FormatFloat(v.F, 'g', -1, 64)
	default:
		if v.Type.DataType.IsUnsigned() {
			return strconv.FormatUint(uint64(v.I), 10)
		}
		return strconv.FormatInt(v.I, 10)
	}
}

// readAsInt64 reads a non-array, non-string, non-float variable as a
// signed 64-bit integer (the raw bit pattern, which for unsigned kinds is
// already within range so the reinterpretation is exact).
func readAsInt64(v *Variable) int64 { return v.I }

func readAsUint64(v *Variable) uint64 { return uint64(v.I) }

func readAsFloat64(v *Variable) float64 { return v.F }

func truncateSigned(i int64, d types.DataType) int64 {
	switch d {
	case types.Byte, types.Char:
		return int64(int8(i))
	case types.Short:
		return int64(int16(i))
	case types.Int:
		return int64(int32(i))
	default: // Long
		return i
	}
}

// TruncateInt re-applies d's width/signedness mask to a raw bit pattern.
// Used by the unary negate/bitwise-not operators, which must re-truncate
// after flipping bits without going through a full Cast.
func TruncateInt(i int64, d types.DataType) int64 {
	if d.IsUnsigned() {
		return int64(truncateUnsigned(uint64(i), d))
	}
	return truncateSigned(i, d)
}

func truncateUnsigned(u uint64, d types.DataType) uint64 {
	switch d {
	case types.Ubyte:
		return uint64(uint8(u))
	case types.Ushort:
		return uint64(uint16(u))
	case types.Uint:
		return uint64(uint32(u))
	case types.Bool:
		if u != 0 {
			return 1
		}
		return 0
	default: // Ulong
		return u
	}
}

// Cast converts v to dest following the documented C-style castability
// matrix: all numeric scalar kinds (signed/unsigned integers and
// float/double) are inter-castable. Strings, chars-as-text, and arrays
// are not silently castable from numerics. Float->integer truncates
// toward zero; integer->float preserves magnitude (within float64/float32
// precision).
func Cast(v *Variable, dest types.Type) (*Variable, error) {
	if v.Type.IsArray() || dest.IsArray() {
		if v.Type.Array != dest.Array || v.Type.DataType != dest.DataType {
			return nil, diag.New(diag.TypeMismatch, 0, "cannot cast %s to %s", v.Type, dest)
		}
		return v.Clone(), nil
	}
	if v.Type.DataType == types.String || dest.DataType == types.String {
		if v.Type.DataType != dest.DataType {
			return nil, diag.New(diag.CantConvertToString, 0, "cannot cast %s to %s", v.Type, dest)
		}
		return v.Clone(), nil
	}
	if !v.Type.DataType.IsNumeric() || !dest.DataType.IsNumeric() {
		if v.Type.DataType == dest.DataType {
			return v.Clone(), nil
		}
		return nil, diag.New(diag.TypeMismatch, 0, "cannot cast %s to %s", v.Type, dest)
	}

	switch {
	case dest.DataType.IsFloating():
		var f float64
		switch {
		case v.Type.DataType.IsFloating():
			f = readAsFloat64(v)
		case v.Type.DataType.IsUnsigned():
			f = float64(readAsUint64(v))
		default:
			f = float64(readAsInt64(v))
		}
		if dest.DataType == types.Float {
			f = float64(float32(f))
		}
		return &Variable{Type: dest, F: f}, nil

	case dest.DataType.IsUnsigned():
		var u uint64
		switch {
		case v.Type.DataType.IsFloating():
			u = uint64(int64(readAsFloat64(v)))
		case v.Type.DataType.IsUnsigned():
			u = readAsUint64(v)
		default:
			u = uint64(readAsInt64(v))
		}
		return &Variable{Type: dest, I: int64(truncateUnsigned(u, dest.DataType))}, nil

	default:
		var i int64
		switch {
		case v.Type.DataType.IsFloating():
			i = int64(readAsFloat64(v))
		case v.Type.DataType.IsUnsigned():
			i = int64(readAsUint64(v))
		default:
			i = readAsInt64(v)
		}
		return &Variable{Type: dest, I: truncateSigned(i, dest.DataType)}, nil
	}
}
