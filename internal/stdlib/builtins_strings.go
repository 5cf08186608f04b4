package stdlib

import (
	"strings"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

func strArg(args []*value.Variable, i int) (string, error) {
	s, err := value.Cast(args[i], types.Scalar(types.String))
	if err != nil {
		return "", err
	}
	return s.Str, nil
}

func intArg(args []*value.Variable, i int) (int64, error) {
	n, err := value.Cast(args[i], types.Scalar(types.Long))
	if err != nil {
		return 0, err
	}
	return n.I, nil
}

// builtinSplit breaks a string into an array of strings on every
// occurrence of sep.
func builtinSplit(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SPLIT", 2); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	sep, err := strArg(args, 1)
	if err != nil {
		return err
	}
	parts := strings.Split(s, sep)
	elems := make([]*value.Variable, len(parts))
	for i, part := range parts {
		elems[i] = value.NewString("", part)
	}
	p.SetResult(value.NewArray(value.ResultName, types.Scalar(types.String), elems))
	return nil
}

func builtinLowercase(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "LOWERCASE", 1); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, strings.ToLower(s)))
	return nil
}

func builtinUppercase(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "UPPERCASE", 1); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, strings.ToUpper(s)))
	return nil
}

// builtinLength returns a string's byte length or an array's element
// count.
func builtinLength(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "LENGTH", 1); err != nil {
		return err
	}
	v := args[0]
	switch {
	case v.Type.IsArray():
		p.SetResult(value.NewInt(value.ResultName, int64(len(v.Elements))))
	case v.Type.DataType == types.String:
		p.SetResult(value.NewInt(value.ResultName, int64(len(v.Str))))
	default:
		return diag.New(diag.TypeMismatch, 0, "LENGTH expects a string or array argument")
	}
	return nil
}

// builtinSubstring returns len characters of s starting at start
// (SUBSTRING(s, start, len)).
func builtinSubstring(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SUBSTRING", 3); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	start, err := intArg(args, 1)
	if err != nil {
		return err
	}
	n, err := intArg(args, 2)
	if err != nil {
		return err
	}
	if start < 0 || n < 0 || start > int64(len(s)) || start+n > int64(len(s)) {
		return diag.New(diag.ArrayOutOfBounds, 0, "SUBSTRING: range out of bounds")
	}
	p.SetResult(value.NewString(value.ResultName, s[start:start+n]))
	return nil
}

func builtinIndexOf(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "INDEXOF", 2); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	needle, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewInt(value.ResultName, int64(strings.Index(s, needle))))
	return nil
}

func builtinLastIndexOf(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "LASTINDEXOF", 2); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	needle, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewInt(value.ResultName, int64(strings.LastIndex(s, needle))))
	return nil
}

func builtinStartsWith(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "STARTSWITH", 2); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	prefix, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewBool(value.ResultName, strings.HasPrefix(s, prefix)))
	return nil
}

func builtinEndsWith(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ENDSWITH", 2); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	suffix, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewBool(value.ResultName, strings.HasSuffix(s, suffix)))
	return nil
}

func builtinTrim(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "TRIM", 1); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, strings.TrimSpace(s)))
	return nil
}

// builtinReverse reverses a string or an array, whichever it's given.
func builtinReverse(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "REVERSE", 1); err != nil {
		return err
	}
	v := args[0]
	if v.Type.IsArray() {
		n := len(v.Elements)
		out := make([]*value.Variable, n)
		for i, e := range v.Elements {
			out[n-1-i] = e.Clone()
		}
		p.SetResult(value.NewArray(value.ResultName, types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}, out))
		return nil
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	p.SetResult(value.NewString(value.ResultName, string(runes)))
	return nil
}

func builtinReplace(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "REPLACE", 3); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	old, err := strArg(args, 1)
	if err != nil {
		return err
	}
	new_, err := strArg(args, 2)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, strings.ReplaceAll(s, old, new_)))
	return nil
}

func builtinContains(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "CONTAINS", 2); err != nil {
		return err
	}
	v := args[0]
	if v.Type.IsArray() {
		for _, e := range v.Elements {
			cast, err := value.Cast(args[1], e.Type)
			if err != nil {
				continue
			}
			if elementsEqual(e, cast) {
				p.SetResult(value.NewBool(value.ResultName, true))
				return nil
			}
		}
		p.SetResult(value.NewBool(value.ResultName, false))
		return nil
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	needle, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewBool(value.ResultName, strings.Contains(s, needle)))
	return nil
}

func elementsEqual(a, b *value.Variable) bool {
	if a.Type.DataType.IsFloating() {
		return a.F == b.F
	}
	if a.Type.DataType == types.String {
		return a.Str == b.Str
	}
	return a.I == b.I
}

// builtinRemove removes the first occurrence of value from an array, or
// the first occurrence of a substring from a string (REMOVE(container,
// value)); the index-addressed counterpart is ARRAYREMOVE.
func builtinRemove(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "REMOVE", 2); err != nil {
		return err
	}
	v := args[0]
	if v.Type.IsArray() {
		elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
		out := make([]*value.Variable, 0, len(v.Elements))
		removed := false
		for _, e := range v.Elements {
			if !removed {
				if cast, err := value.Cast(args[1], e.Type); err == nil && elementsEqual(e, cast) {
					removed = true
					continue
				}
			}
			out = append(out, e.Clone())
		}
		p.SetResult(value.NewArray(value.ResultName, elemType, out))
		return nil
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	needle, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, strings.Replace(s, needle, "", 1)))
	return nil
}

// builtinInsert appends value into an array, or concatenates a substring
// onto the end of a string (INSERT(container, value)); the
// index-addressed counterpart is ARRAYINSERT.
func builtinInsert(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "INSERT", 2); err != nil {
		return err
	}
	v := args[0]
	if v.Type.IsArray() {
		elemType := types.Type{DataType: v.Type.DataType, Array: v.Type.Array - 1}
		cast, err := value.Cast(args[1], elemType)
		if err != nil {
			return err
		}
		out := make([]*value.Variable, 0, len(v.Elements)+1)
		for _, e := range v.Elements {
			out = append(out, e.Clone())
		}
		out = append(out, cast)
		p.SetResult(value.NewArray(value.ResultName, elemType, out))
		return nil
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	suffix, err := strArg(args, 1)
	if err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, s+suffix))
	return nil
}

// resolveIndex applies the documented negative-index wraparound and
// bounds check for ARRAYREMOVE; ARRAYINSERT and ARRAYSLICE accept only
// non-negative indices.
func resolveIndex(idx int64, n int) (int, error) {
	if n == 0 {
		return 0, diag.New(diag.ArrayOutOfBounds, 0, "index out of bounds on an empty array")
	}
	if idx < 0 {
		idx += int64(n)
	}
	if idx < 0 || idx >= int64(n) {
		return 0, diag.New(diag.ArrayOutOfBounds, 0, "index out of bounds")
	}
	return int(idx), nil
}

func builtinStringToInt(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "STRINGTOINT", 1); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	n, perr := parseInt(s)
	if perr != nil {
		return diag.New(diag.InvalidNumber, 0, "STRINGTOINT: %q is not a valid integer", s)
	}
	p.SetResult(value.NewInt(value.ResultName, n))
	return nil
}

func builtinStringToDouble(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "STRINGTODOUBLE", 1); err != nil {
		return err
	}
	s, err := strArg(args, 0)
	if err != nil {
		return err
	}
	f, perr := parseFloat(s)
	if perr != nil {
		return diag.New(diag.InvalidNumber, 0, "STRINGTODOUBLE: %q is not a valid number", s)
	}
	p.SetResult(value.NewDouble(value.ResultName, f))
	return nil
}
