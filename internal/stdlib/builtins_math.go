package stdlib

import (
	"math"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// argAsDouble casts arg to Double, the working precision the math
// built-ins compute in. Their results stay Double, except ABS, MIN and
// MAX, which keep the argument's own type.
func argAsDouble(arg *value.Variable) (float64, error) {
	d, err := value.Cast(arg, types.Scalar(types.Double))
	if err != nil {
		return 0, err
	}
	return d.F, nil
}

func oneArgMath(p *interp.Process, args []*value.Variable, name string, fn func(float64) float64) error {
	if err := argc(args, name, 1); err != nil {
		return err
	}
	x, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	p.SetResult(value.NewDouble(value.ResultName, fn(x)))
	return nil
}

func builtinSqrt(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SQRT", 1); err != nil {
		return err
	}
	x, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	if x < 0 {
		return diag.New(diag.MathDomainError, 0, "SQRT of a negative number")
	}
	p.SetResult(value.NewDouble(value.ResultName, math.Sqrt(x)))
	return nil
}

func builtinPow(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "POW", 2); err != nil {
		return err
	}
	base, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	exp, err := argAsDouble(args[1])
	if err != nil {
		return err
	}
	p.SetResult(value.NewDouble(value.ResultName, math.Pow(base, exp)))
	return nil
}

func builtinRound(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "ROUND", math.Round)
}

func builtinFloor(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "FLOOR", math.Floor)
}

func builtinCeil(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "CEIL", math.Ceil)
}

// builtinAbs preserves the argument's own numeric type rather than
// promoting to Double, matching the teacher's ABS (an unsigned input
// stays unsigned; a signed input stays signed).
func builtinAbs(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ABS", 1); err != nil {
		return err
	}
	v := args[0]
	switch {
	case v.Type.DataType.IsFloating():
		out := v.Clone()
		out.F = math.Abs(out.F)
		out.Name = value.ResultName
		p.SetResult(out)
	case v.Type.DataType.IsUnsigned():
		p.SetResult(v.Clone())
	default:
		out := v.Clone()
		if out.I < 0 {
			out.I = -out.I
		}
		out.Name = value.ResultName
		p.SetResult(out)
	}
	return nil
}

func builtinMin(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "MIN", 2); err != nil {
		return err
	}
	a, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	b, err := argAsDouble(args[1])
	if err != nil {
		return err
	}
	if a <= b {
		p.SetResult(args[0].AsLiteral())
	} else {
		p.SetResult(args[1].AsLiteral())
	}
	return nil
}

func builtinMax(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "MAX", 2); err != nil {
		return err
	}
	a, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	b, err := argAsDouble(args[1])
	if err != nil {
		return err
	}
	if a >= b {
		p.SetResult(args[0].AsLiteral())
	} else {
		p.SetResult(args[1].AsLiteral())
	}
	return nil
}

func builtinLog(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "LOG", math.Log)
}

func builtinLog10(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "LOG10", math.Log10)
}

func builtinSin(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "SIN", math.Sin)
}

func builtinCos(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "COS", math.Cos)
}

func builtinTan(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "TAN", math.Tan)
}

func builtinAsin(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "ASIN", math.Asin)
}

func builtinAcos(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "ACOS", math.Acos)
}

func builtinAtan(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "ATAN", math.Atan)
}

func builtinAtan2(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "ATAN2", 2); err != nil {
		return err
	}
	y, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	x, err := argAsDouble(args[1])
	if err != nil {
		return err
	}
	p.SetResult(value.NewDouble(value.ResultName, math.Atan2(y, x)))
	return nil
}

func builtinExp(p *interp.Process, args []*value.Variable) error {
	return oneArgMath(p, args, "EXP", math.Exp)
}
