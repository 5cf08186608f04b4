package stdlib

import (
	"time"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// builtinTime returns the current hour:minute:second clock reading as a
// string, HH:MM:SS.
func builtinTime(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "TIME", 0); err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, time.Now().Format("15:04:05")))
	return nil
}

// builtinDate returns the current calendar date as YYYY-MM-DD.
func builtinDate(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "DATE", 0); err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, time.Now().Format("2006-01-02")))
	return nil
}

// builtinDatetime combines DATE and TIME into one string.
func builtinDatetime(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "DATETIME", 0); err != nil {
		return err
	}
	p.SetResult(value.NewString(value.ResultName, time.Now().Format("2006-01-02 15:04:05")))
	return nil
}

// builtinTimestamp returns Unix seconds since epoch.
func builtinTimestamp(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "TIMESTAMP", 0); err != nil {
		return err
	}
	p.SetResult(value.NewInt(value.ResultName, time.Now().Unix()))
	return nil
}

// builtinClock returns the wall-clock time in milliseconds since the Unix
// epoch, used for timing code rather than for display.
func builtinClock(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "CLOCK", 0); err != nil {
		return err
	}
	p.SetResult(&value.Variable{Name: value.ResultName, Type: types.Scalar(types.Long), I: time.Now().UnixMilli()})
	return nil
}

// builtinSleep blocks for the given number of milliseconds.
func builtinSleep(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SLEEP", 1); err != nil {
		return err
	}
	ms, err := value.Cast(args[0], types.Scalar(types.Long))
	if err != nil {
		return err
	}
	if ms.I < 0 {
		return diag.New(diag.NumberCannotBeNegative, 0, "SLEEP duration cannot be negative")
	}
	time.Sleep(time.Duration(ms.I) * time.Millisecond)
	return nil
}
