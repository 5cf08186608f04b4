// Package stdlib is the concrete built-in function registry the core
// interpreter dispatches to (spec §6's `invoke(process, name, args,
// argc)`). Each functional family lives in its own file, mirroring the
// teacher's own `builtins_*.go` split, and each built-in is a plain Go
// function operating on *value.Variable.
package stdlib

import (
	"math/rand"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/value"
)

// builtinFunc is one registry entry: already-evaluated args in, an
// error out. Output and control-flow side effects go through p.
type builtinFunc func(p *interp.Process, args []*value.Variable) error

// Registry implements interp.Registry over every name spec §6 lists.
type Registry struct {
	rng   *rand.Rand
	funcs map[string]builtinFunc
}

// New builds a Registry whose random source starts from the fixed seed 1
// (SRAND reseeds it deterministically per spec's RANDOM family).
func New() *Registry {
	r := &Registry{rng: rand.New(rand.NewSource(1))}
	r.funcs = map[string]builtinFunc{
		"SAY":      builtinSay,
		"SAYLN":    builtinSayln,
		"END":      builtinEnd,
		"PAUSE":    builtinPause,
		"BREAK":    builtinBreak,
		"CONTINUE": builtinContinue,
		"RETURN":   builtinReturn,
		"LISTEN":   builtinListen,
		"CLEAR":    builtinClear,
		"SYSTEM":   builtinSystem,

		"SQRT":  builtinSqrt,
		"POW":   builtinPow,
		"ROUND": builtinRound,
		"FLOOR": builtinFloor,
		"CEIL":  builtinCeil,
		"ABS":   builtinAbs,
		"MIN":   builtinMin,
		"MAX":   builtinMax,
		"LOG":   builtinLog,
		"LOG10": builtinLog10,
		"SIN":   builtinSin,
		"COS":   builtinCos,
		"TAN":   builtinTan,
		"ASIN":  builtinAsin,
		"ACOS":  builtinAcos,
		"ATAN":  builtinAtan,
		"ATAN2": builtinAtan2,
		"EXP":   builtinExp,

		"SRAND":     r.builtinSrand,
		"RANDINT":   r.builtinRandint,
		"RAND":      r.builtinRand,
		"RANDRANGE": r.builtinRandrange,

		"TIME":      builtinTime,
		"DATE":      builtinDate,
		"DATETIME":  builtinDatetime,
		"TIMESTAMP": builtinTimestamp,
		"CLOCK":     builtinClock,
		"SLEEP":     builtinSleep,

		"READ":   builtinRead,
		"WRITE":  builtinWrite,
		"APPEND": builtinAppend,

		"SPLIT":       builtinSplit,
		"LOWERCASE":   builtinLowercase,
		"UPPERCASE":   builtinUppercase,
		"LENGTH":      builtinLength,
		"SUBSTRING":   builtinSubstring,
		"INDEXOF":     builtinIndexOf,
		"LASTINDEXOF": builtinLastIndexOf,
		"STARTSWITH":  builtinStartsWith,
		"ENDSWITH":    builtinEndsWith,
		"TRIM":        builtinTrim,
		"REVERSE":     builtinReverse,
		"REPLACE":     builtinReplace,
		"CONTAINS":    builtinContains,
		"REMOVE":      builtinRemove,
		"INSERT":      builtinInsert,

		"STRINGTOINT":    builtinStringToInt,
		"STRINGTODOUBLE": builtinStringToDouble,

		"ARRAYSHIFT":  builtinArrayShift,
		"ARRAYREMOVE": builtinArrayRemove,
		"ARRAYINSERT": builtinArrayInsert,
		"ARRAYSLICE":  builtinArraySlice,
	}
	return r
}

// Names lists every built-in this registry answers to.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	return names
}

// Invoke dispatches name to its implementation.
func (r *Registry) Invoke(p *interp.Process, name string, args []*value.Variable) error {
	fn, ok := r.funcs[name]
	if !ok {
		return diag.New(diag.FunctionNotFound, 0, "built-in %q is not registered", name)
	}
	return fn(p, args)
}

func argc(args []*value.Variable, name string, want int) error {
	if len(args) != want {
		return diag.New(diag.TooFewArguments, 0, "%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func argRange(args []*value.Variable, name string, min, max int) error {
	if len(args) < min || len(args) > max {
		return diag.New(diag.TooFewArguments, 0, "%s expects between %d and %d argument(s), got %d", name, min, max, len(args))
	}
	return nil
}
