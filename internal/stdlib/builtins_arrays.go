package stdlib

import (
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

func requireArray(v *value.Variable, name string) error {
	if !v.Type.IsArray() {
		return diag.New(diag.TypeMismatch, 0, "%s expects an array argument", name)
	}
	return nil
}

// builtinArrayShift drops the first element, returning the shortened
// array (the rest of the elements keep their relative order).
func builtinArrayShift(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ARRAYSHIFT", 1); err != nil {
		return err
	}
	v := args[0]
	if err := requireArray(v, "ARRAYSHIFT"); err != nil {
		return err
	}
	if len(v.Elements) == 0 {
		return diag.New(diag.ArrayOutOfBounds, 0, "ARRAYSHIFT: array is empty")
	}
	elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
	out := make([]*value.Variable, len(v.Elements)-1)
	for i, e := range v.Elements[1:] {
		out[i] = e.Clone()
	}
	p.SetResult(value.NewArray(value.ResultName, elemType, out))
	return nil
}

// builtinArrayRemove deletes the element at index (ARRAYREMOVE(a,
// index)), accepting the documented negative-index wraparound.
func builtinArrayRemove(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ARRAYREMOVE", 2); err != nil {
		return err
	}
	v := args[0]
	if err := requireArray(v, "ARRAYREMOVE"); err != nil {
		return err
	}
	idx, err := intArg(args, 1)
	if err != nil {
		return err
	}
	i, err := resolveIndex(idx, len(v.Elements))
	if err != nil {
		return err
	}
	elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
	out := make([]*value.Variable, 0, len(v.Elements)-1)
	for j, e := range v.Elements {
		if j == i {
			continue
		}
		out = append(out, e.Clone())
	}
	p.SetResult(value.NewArray(value.ResultName, elemType, out))
	return nil
}

// builtinArrayInsert inserts value at index (ARRAYINSERT(a, index,
// value)), shifting later elements up by one.
func builtinArrayInsert(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ARRAYINSERT", 3); err != nil {
		return err
	}
	v := args[0]
	if err := requireArray(v, "ARRAYINSERT"); err != nil {
		return err
	}
	idx, err := intArg(args, 1)
	if err != nil {
		return err
	}
	if idx < 0 || idx > int64(len(v.Elements)) {
		return diag.New(diag.ArrayOutOfBounds, 0, "ARRAYINSERT: index out of bounds")
	}
	elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
	cast, err := value.Cast(args[2], elemType)
	if err != nil {
		return err
	}
	out := make([]*value.Variable, 0, len(v.Elements)+1)
	for _, e := range v.Elements[:idx] {
		out = append(out, e.Clone())
	}
	out = append(out, cast)
	for _, e := range v.Elements[idx:] {
		out = append(out, e.Clone())
	}
	p.SetResult(value.NewArray(value.ResultName, elemType, out))
	return nil
}

// builtinArraySlice returns the half-open range [start, end) of an array
// (ARRAYSLICE(a, start, end)).
func builtinArraySlice(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ARRAYSLICE", 3); err != nil {
		return err
	}
	v := args[0]
	if err := requireArray(v, "ARRAYSLICE"); err != nil {
		return err
	}
	start, err := intArg(args, 1)
	if err != nil {
		return err
	}
	end, err := intArg(args, 2)
	if err != nil {
		return err
	}
	n := int64(len(v.Elements))
	if start < 0 || end < start || end > n {
		return diag.New(diag.ArrayOutOfBounds, 0, "ARRAYSLICE: range out of bounds")
	}
	elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
	out := make([]*value.Variable, 0, end-start)
	for _, e := range v.Elements[start:end] {
		out = append(out, e.Clone())
	}
	p.SetResult(value.NewArray(value.ResultName, elemType, out))
	return nil
}
