package stdlib

import (
	"os"

	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/interp"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

func pathArg(args []*value.Variable) (string, error) {
	p, err := value.Cast(args[0], types.Scalar(types.String))
	if err != nil {
		return "", err
	}
	return p.Str, nil
}

// builtinRead returns a file's entire contents as a string, failing (so
// CATCH can handle it) when the file doesn't exist or can't be read.
func builtinRead(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "READ", 1); err != nil {
		return err
	}
	path, err := pathArg(args)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return diag.New(diag.FileNotFound, 0, "READ: %s not found", path)
		}
		return diag.New(diag.PermissionDenied, 0, "READ: %s", err.Error())
	}
	p.SetResult(value.NewString(value.ResultName, string(data)))
	return nil
}

// builtinWrite overwrites a file with the given contents, creating it if
// necessary.
func builtinWrite(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "WRITE", 2); err != nil {
		return err
	}
	path, err := pathArg(args)
	if err != nil {
		return err
	}
	content, err := value.Cast(args[1], types.Scalar(types.String))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content.Str), 0644); err != nil {
		return diag.New(diag.PermissionDenied, 0, "WRITE: %s", err.Error())
	}
	return nil
}

// builtinAppend adds to the end of a file, creating it if necessary.
func builtinAppend(p *interp.Process, args []*value.Variable) error {
	if err := argc(args, "APPEND", 2); err != nil {
		return err
	}
	path, err := pathArg(args)
	if err != nil {
		return err
	}
	content, err := value.Cast(args[1], types.Scalar(types.String))
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return diag.New(diag.PermissionDenied, 0, "APPEND: %s", err.Error())
	}
	defer f.Close()
	if _, err := f.WriteString(content.Str); err != nil {
		return diag.New(diag.PermissionDenied, 0, "APPEND: %s", err.Error())
	}
	return nil
}
