// Package operators implements the pure functions behind every binary and
// unary operator in the Dosato expression language (spec §4.4). Each
// function takes already-evaluated operands and returns a freshly
// allocated result Variable or an error; none of them mutate their
// inputs (compound assignment, which does mutate in place, lives in
// internal/interp since it needs the target's storage cell).
package operators

import (
	"strings"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/token"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

func asFloat(v *value.Variable) (float64, error) {
	c, err := value.Cast(v, types.Scalar(types.Double))
	if err != nil {
		return 0, err
	}
	return c.F, nil
}

func asLong(v *value.Variable) (int64, error) {
	c, err := value.Cast(v, types.Scalar(types.Long))
	if err != nil {
		return 0, err
	}
	return c.I, nil
}

func longResult(i int64) *value.Variable {
	return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Long), I: i}
}

func doubleResult(f float64) *value.Variable {
	return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Double), F: f}
}

func boolResult(b bool) *value.Variable {
	v := value.NewBool(value.LiteralName, b)
	return v
}

// Binary dispatches a binary operator over already-evaluated operands.
func Binary(op int, left, right *value.Variable) (*value.Variable, error) {
	switch op {
	case token.OpAdd:
		return add(left, right)
	case token.OpSubtract:
		return subtract(left, right)
	case token.OpMultiply:
		return arith(left, right, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b })
	case token.OpDivide:
		return divide(left, right)
	case token.OpModulo:
		return modulo(left, right)
	case token.OpGreater:
		return compare(left, right, func(c int) bool { return c > 0 })
	case token.OpLess:
		return compare(left, right, func(c int) bool { return c < 0 })
	case token.OpGreaterEqual:
		return compare(left, right, func(c int) bool { return c >= 0 })
	case token.OpLessEqual:
		return compare(left, right, func(c int) bool { return c <= 0 })
	case token.OpEqual:
		return equality(left, right, true)
	case token.OpNotEqual:
		return equality(left, right, false)
	case token.OpAnd:
		return bitwise(left, right, func(a, b int64) int64 { return a & b })
	case token.OpOr:
		return bitwise(left, right, func(a, b int64) int64 { return a | b })
	case token.OpXor:
		return bitwise(left, right, func(a, b int64) int64 { return a ^ b })
	case token.OpShiftLeft:
		return bitwise(left, right, func(a, b int64) int64 { return a << uint(b) })
	case token.OpShiftRight:
		return bitwise(left, right, func(a, b int64) int64 { return a >> uint(b) })
	case token.OpAndAnd:
		return logical(left, right, func(a, b bool) bool { return a && b })
	case token.OpOrOr:
		return logical(left, right, func(a, b bool) bool { return a || b })
	case token.OpHash:
		return Hash(left, right)
	default:
		return nil, diag.New(diag.InvalidOperator, 0, "operator %s is not a binary operator", token.Operators[op])
	}
}

// Unary dispatches a unary operator over an already-evaluated operand.
func Unary(op int, operand *value.Variable) (*value.Variable, error) {
	switch op {
	case token.OpSubtract:
		return negate(operand)
	case token.OpNot:
		return boolResult(!operand.Truthy()), nil
	case token.OpNotBitwise:
		return bitwiseNot(operand)
	default:
		return nil, diag.New(diag.OperatorNotUnary, 0, "operator %s is not a unary operator", token.Operators[op])
	}
}

func add(left, right *value.Variable) (*value.Variable, error) {
	switch {
	case left.Type.IsArray() && right.Type.IsArray():
		if left.Type.DataType != right.Type.DataType || left.Type.Array != right.Type.Array {
			return nil, diag.New(diag.CantUseTypeInAddition, 0, "cannot concatenate arrays of different element type")
		}
		elems := make([]*value.Variable, 0, len(left.Elements)+len(right.Elements))
		for _, e := range left.Elements {
			elems = append(elems, e.Clone())
		}
		for _, e := range right.Elements {
			elems = append(elems, e.Clone())
		}
		return value.NewArray(value.LiteralName, types.Type{DataType: left.Type.DataType, Array: left.Type.Array - 1}, elems), nil

	case left.Type.IsArray() != right.Type.IsArray():
		arr, other := left, right
		if !left.Type.IsArray() {
			arr, other = right, left
		}
		n, err := asLong(other)
		if err != nil {
			return nil, err
		}
		return longResult(int64(len(arr.Elements)) + n), nil

	case left.Type.DataType == types.String || right.Type.DataType == types.String:
		return value.NewString(value.LiteralName, left.String()+right.String()), nil

	case left.Type.DataType.IsFloating() || right.Type.DataType.IsFloating():
		lf, err := asFloat(left)
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right)
		if err != nil {
			return nil, err
		}
		return doubleResult(lf + rf), nil

	default:
		li, err := asLong(left)
		if err != nil {
			return nil, err
		}
		ri, err := asLong(right)
		if err != nil {
			return nil, err
		}
		return longResult(li + ri), nil
	}
}

func subtract(left, right *value.Variable) (*value.Variable, error) {
	if left.Type.IsArray() && !right.Type.IsArray() {
		n, err := asLong(right)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, diag.New(diag.NumberCannotBeNegative, 0, "cannot remove a negative count of elements")
		}
		remove := int(n)
		if remove > len(left.Elements) {
			remove = len(left.Elements)
		}
		kept := left.Elements[:len(left.Elements)-remove]
		elems := make([]*value.Variable, len(kept))
		for i, e := range kept {
			elems[i] = e.Clone()
		}
		return value.NewArray(value.LiteralName, types.Type{DataType: left.Type.DataType, Array: left.Type.Array - 1}, elems), nil
	}
	if left.Type.DataType == types.String || right.Type.DataType == types.String {
		return nil, diag.New(diag.CantUseTypeInAddition, 0, "strings do not support subtraction")
	}
	return arith(left, right, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b })
}

func arith(left, right *value.Variable, ffn func(a, b float64) float64, ifn func(a, b int64) int64) (*value.Variable, error) {
	if left.Type.DataType.IsFloating() || right.Type.DataType.IsFloating() {
		lf, err := asFloat(left)
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right)
		if err != nil {
			return nil, err
		}
		return doubleResult(ffn(lf, rf)), nil
	}
	li, err := asLong(left)
	if err != nil {
		return nil, err
	}
	ri, err := asLong(right)
	if err != nil {
		return nil, err
	}
	return longResult(ifn(li, ri)), nil
}

func divide(left, right *value.Variable) (*value.Variable, error) {
	if left.Type.DataType.IsFloating() || right.Type.DataType.IsFloating() {
		lf, err := asFloat(left)
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right)
		if err != nil {
			return nil, err
		}
		if rf == 0 {
			return nil, diag.New(diag.MathDomainError, 0, "division by zero")
		}
		return doubleResult(lf / rf), nil
	}
	li, err := asLong(left)
	if err != nil {
		return nil, err
	}
	ri, err := asLong(right)
	if err != nil {
		return nil, err
	}
	if ri == 0 {
		return nil, diag.New(diag.MathDomainError, 0, "division by zero")
	}
	return longResult(li / ri), nil
}

func modulo(left, right *value.Variable) (*value.Variable, error) {
	if left.Type.DataType.IsFloating() || right.Type.DataType.IsFloating() {
		return nil, diag.New(diag.CantUseTypeInModulo, 0, "modulo is not defined on floating point operands")
	}
	li, err := asLong(left)
	if err != nil {
		return nil, err
	}
	ri, err := asLong(right)
	if err != nil {
		return nil, err
	}
	if ri == 0 {
		return nil, diag.New(diag.MathDomainError, 0, "modulo by zero")
	}
	return longResult(li % ri), nil
}

func bitwise(left, right *value.Variable, fn func(a, b int64) int64) (*value.Variable, error) {
	if left.Type.DataType.IsFloating() || right.Type.DataType.IsFloating() {
		return nil, diag.New(diag.CantUseTypeInBitwiseExpression, 0, "bitwise operators require integer operands")
	}
	li, err := asLong(left)
	if err != nil {
		return nil, err
	}
	ri, err := asLong(right)
	if err != nil {
		return nil, err
	}
	return longResult(fn(li, ri)), nil
}

func logical(left, right *value.Variable, fn func(a, b bool) bool) (*value.Variable, error) {
	return boolResult(fn(left.Truthy(), right.Truthy())), nil
}

func negate(operand *value.Variable) (*value.Variable, error) {
	if !operand.Type.DataType.IsNumeric() {
		return nil, diag.New(diag.InvalidOperator, 0, "cannot negate a %s", operand.Type)
	}
	out := operand.Clone()
	if operand.Type.DataType.IsFloating() {
		out.F = -out.F
	} else {
		out.I = value.TruncateInt(-out.I, out.Type.DataType)
	}
	return out, nil
}

func bitwiseNot(operand *value.Variable) (*value.Variable, error) {
	if !operand.Type.DataType.IsNumeric() || operand.Type.DataType.IsFloating() {
		return nil, diag.New(diag.CantUseTypeInBitwiseExpression, 0, "bitwise not requires an integer operand")
	}
	out := operand.Clone()
	out.I = value.TruncateInt(^out.I, out.Type.DataType)
	return out, nil
}

// compare implements the four ordering operators (> < >= <=) via a 3-way compare
// function, after widening both operands to a common numeric kind.
func compare(left, right *value.Variable, accept func(cmp int) bool) (*value.Variable, error) {
	if left.Type.DataType == types.String && right.Type.DataType == types.String {
		return boolResult(accept(strings.Compare(left.Str, right.Str))), nil
	}
	if left.Type.DataType == types.String || right.Type.DataType == types.String {
		return nil, diag.New(diag.TypeMismatch, 0, "cannot order-compare a string against %s", nonString(left, right).Type)
	}
	lf, err := asFloat(left)
	if err != nil {
		return nil, err
	}
	rf, err := asFloat(right)
	if err != nil {
		return nil, err
	}
	switch {
	case lf < rf:
		return boolResult(accept(-1)), nil
	case lf > rf:
		return boolResult(accept(1)), nil
	default:
		return boolResult(accept(0)), nil
	}
}

func nonString(left, right *value.Variable) *value.Variable {
	if left.Type.DataType != types.String {
		return left
	}
	return right
}

func equality(left, right *value.Variable, wantEqual bool) (*value.Variable, error) {
	leftStr := left.Type.DataType == types.String
	rightStr := right.Type.DataType == types.String
	if leftStr != rightStr {
		return boolResult(!wantEqual), nil
	}
	if leftStr && rightStr {
		eq := left.Str == right.Str
		return boolResult(eq == wantEqual), nil
	}
	if left.Type.IsArray() || right.Type.IsArray() {
		eq := arraysEqual(left, right)
		return boolResult(eq == wantEqual), nil
	}
	lf, err := asFloat(left)
	if err != nil {
		return nil, err
	}
	rf, err := asFloat(right)
	if err != nil {
		return nil, err
	}
	return boolResult((lf == rf) == wantEqual), nil
}

func arraysEqual(left, right *value.Variable) bool {
	if !left.Type.IsArray() || !right.Type.IsArray() || len(left.Elements) != len(right.Elements) {
		return false
	}
	for i := range left.Elements {
		eq, err := equality(left.Elements[i], right.Elements[i], true)
		if err != nil || !eq.AsBool() {
			return false
		}
	}
	return true
}

// Hash implements the `#` operator: array indexing and string char
// indexing, both with Python-style negative indices. For arrays this
// returns the actual element pointer (the interpreter clones it for
// rvalue use, or keeps it as-is for a reference expression); for strings
// it returns a fresh Char value since individual string bytes aren't
// individually addressable.
func Hash(container, index *value.Variable) (*value.Variable, error) {
	idx, err := asLong(index)
	if err != nil {
		return nil, err
	}
	switch {
	case container.Type.IsArray():
		n := int64(len(container.Elements))
		resolved := idx
		if resolved < 0 {
			resolved += n
		}
		if resolved < 0 || resolved >= n {
			return nil, diag.New(diag.ArrayOutOfBounds, 0, "index %d out of bounds for array of length %d", idx, n)
		}
		return container.Elements[resolved], nil
	case container.Type.DataType == types.String:
		n := int64(len(container.Str))
		resolved := idx
		if resolved < 0 {
			resolved += n
		}
		if resolved < 0 || resolved >= n {
			return nil, diag.New(diag.ArrayOutOfBounds, 0, "index %d out of bounds for string of length %d", idx, n)
		}
		return &value.Variable{Name: value.LiteralName, Type: types.Scalar(types.Char), I: int64(container.Str[resolved])}, nil
	default:
		return nil, diag.New(diag.InvalidOperator, 0, "operator # requires an array or string left-hand side")
	}
}

// CompoundResult computes the new value for `x op= y` (spec §4.4's
// compound assignment rule), given x's current value and y (already cast
// to x's type when x is a scalar; passed as evaluated when x is an
// array). It does not write the result back; the caller (SetVar
// execution) owns the target's storage cell.
func CompoundResult(assignOp int, x, rhs *value.Variable) (*value.Variable, error) {
	switch assignOp {
	case token.OpAssign:
		return rhs.Clone(), nil
	case token.OpAddAssign, token.OpIncrement:
		return Binary(token.OpAdd, x, rhs)
	case token.OpSubtractAssign, token.OpDecrement:
		return Binary(token.OpSubtract, x, rhs)
	case token.OpMultiplyAssign:
		return Binary(token.OpMultiply, x, rhs)
	case token.OpDivideAssign:
		return Binary(token.OpDivide, x, rhs)
	case token.OpModuloAssign:
		return Binary(token.OpModulo, x, rhs)
	case token.OpAndAssign:
		return Binary(token.OpAnd, x, rhs)
	case token.OpOrAssign:
		return Binary(token.OpOr, x, rhs)
	case token.OpXorAssign:
		return Binary(token.OpXor, x, rhs)
	case token.OpNotNot:
		return Unary(token.OpNotBitwise, rhs)
	default:
		return nil, diag.New(diag.InvalidOperator, 0, "operator %s is not an assignment operator", token.Operators[assignOp])
	}
}
