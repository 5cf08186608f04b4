package stdlib

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// builtinSay and builtinSayln print every argument's display form in
// order, with builtinSayln appending a trailing newline.
func builtinSay(p *interp.Process, args []*value.Variable) error {
	for _, a := range args {
		fmt.Fprint(p.Out, a.String())
	}
	return nil
}

func builtinSayln(p *interp.Process, args []*value.Variable) error {
	if err := builtinSay(p, args); err != nil {
		return err
	}
	fmt.Fprintln(p.Out)
	return nil
}

// builtinEnd stops the process with an optional exit code (0 if absent).
func builtinEnd(p *interp.Process, args []*value.Variable) error {
	if err := argRange(args, "END", 0, 1); err != nil {
		return err
	}
	code := int64(0)
	if len(args) == 1 {
		c, err := value.Cast(args[0], types.Scalar(types.Long))
		if err != nil {
			return err
		}
		code = c.I
	}
	p.End(int(code))
	return nil
}

// builtinPause blocks until a line is read from the process's input.
func builtinPause(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "PAUSE", 0); err != nil {
		return err
	}
	bufio.NewReader(p.In).ReadString('\n')
	return nil
}

func repeatCount(args []*value.Variable, name string) (int, error) {
	if err := argRange(args, name, 0, 1); err != nil {
		return 0, err
	}
	if len(args) == 0 {
		return 1, nil
	}
	c, err := value.Cast(args[0], types.Scalar(types.Long))
	if err != nil {
		return 0, err
	}
	if c.I <= 0 {
		return 0, diag.New(diag.NumberCannotBeNegative, 0, "%s requires a positive repeat count", name)
	}
	return int(c.I), nil
}

func builtinBreak(p *interp.Process, args []*value.Variable) error {
	n, err := repeatCount(args, "BREAK")
	if err != nil {
		return err
	}
	return p.Break(n)
}

func builtinContinue(p *interp.Process, args []*value.Variable) error {
	n, err := repeatCount(args, "CONTINUE")
	if err != nil {
		return err
	}
	return p.Continue(n)
}

// builtinReturn carries an optional value back to the caller (a Void
// value if absent) and terminates the enclosing function.
func builtinReturn(p *interp.Process, args []*value.Variable) error {
	if err := argRange(args, "RETURN", 0, 1); err != nil {
		return err
	}
	var v *value.Variable
	if len(args) == 1 {
		v = args[0].Clone()
	} else {
		v = &value.Variable{Name: value.ResultName, Type: types.Scalar(types.Void)}
	}
	return p.Return(v)
}

// builtinListen reads one line from the process's input into `_`.
func builtinListen(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "LISTEN", 0); err != nil {
		return err
	}
	line, _ := bufio.NewReader(p.In).ReadString('\n')
	line = trimNewline(line)
	p.SetResult(value.NewString(value.ResultName, line))
	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

// builtinClear clears the terminal via an ANSI escape sequence.
func builtinClear(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "CLEAR", 0); err != nil {
		return err
	}
	fmt.Fprint(p.Out, "\033[H\033[2J")
	return nil
}

// builtinSystem runs a shell command through /bin/sh, storing its exit
// code in `_`. A command that cannot even be started (not found,
// permission denied: the shell's exit statuses 127 and 126) fails the
// call so an enclosing CATCH can handle it.
func builtinSystem(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "SYSTEM", 1); err != nil {
		return err
	}
	cmdStr, err := value.Cast(args[0], types.Scalar(types.String))
	if err != nil {
		return err
	}
	cmd := exec.Command("/bin/sh", "-c", cmdStr.Str)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	runErr := cmd.Run()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			if code == 126 || code == 127 {
				return diag.New(diag.SayError, 0, "SYSTEM: command could not be run (shell exit status %d)", code)
			}
			p.SetResult(value.NewInt(value.ResultName, int64(code)))
			return nil
		}
		return diag.New(diag.SayError, 0, "SYSTEM: %s", runErr.Error())
	}
	p.SetResult(value.NewInt(value.ResultName, 0))
	return nil
}
