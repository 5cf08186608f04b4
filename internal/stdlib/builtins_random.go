package stdlib

import (
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// builtinSrand reseeds the registry's random source for reproducible runs.
func (r *Registry) builtinSrand(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SRAND", 1); err != nil {
		return err
	}
	seed, err := value.Cast(args[0], types.Scalar(types.Long))
	if err != nil {
		return err
	}
	r.rng.Seed(seed.I)
	return nil
}

// builtinRandint returns a uniform random integer in [min, max].
func (r *Registry) builtinRandint(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "RANDINT", 2); err != nil {
		return err
	}
	min, err := value.Cast(args[0], types.Scalar(types.Long))
	if err != nil {
		return err
	}
	max, err := value.Cast(args[1], types.Scalar(types.Long))
	if err != nil {
		return err
	}
	if max.I < min.I {
		return diag.New(diag.NumberCannotBeNegative, 0, "RANDINT: max must not be less than min")
	}
	span := max.I - min.I + 1
	p.SetResult(value.NewInt(value.ResultName, min.I+r.rng.Int63n(span)))
	return nil
}

// builtinRand returns a uniform random double in [0, 1).
func (r *Registry) builtinRand(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "RAND", 0); err != nil {
		return err
	}
	p.SetResult(value.NewDouble(value.ResultName, r.rng.Float64()))
	return nil
}

// builtinRandrange returns a uniform random double in [min, max).
func (r *Registry) builtinRandrange(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "RANDRANGE", 2); err != nil {
		return err
	}
	min, err := argAsDouble(args[0])
	if err != nil {
		return err
	}
	max, err := argAsDouble(args[1])
	if err != nil {
		return err
	}
	if max < min {
		return diag.New(diag.NumberCannotBeNegative, 0, "RANDRANGE: max must not be less than min")
	}
	p.SetResult(value.NewDouble(value.ResultName, min+r.rng.Float64()*(max-min)))
	return nil
}
