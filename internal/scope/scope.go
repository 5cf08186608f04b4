// Package scope implements Dosato's nested variable/function environment:
// a singly-linked stack of Scopes rooted at the program's root scope.
// Variable lookup walks from the root scope down to the innermost active
// scope, letting an inner shadow override an outer binding; function
// lookup only ever consults the root scope, since user and built-in
// functions are process-global (spec §4.5).
package scope

import (
	"fmt"

	"github.com/Robotnik08/dosato/internal/ast"
	"github.com/Robotnik08/dosato/internal/diag"
	"github.com/Robotnik08/dosato/internal/types"
	"github.com/Robotnik08/dosato/internal/value"
)

// CallKind classifies why a Scope was pushed; it decides which
// Termination flags it catches.
type CallKind int

const (
	Root CallKind = iota
	Block
	Function
	ExpressionCall
)

func (k CallKind) String() string {
	switch k {
	case Root:
		return "Root"
	case Block:
		return "Block"
	case Function:
		return "Function"
	case ExpressionCall:
		return "Expression"
	default:
		return "?"
	}
}

// Termination is the scope-level flag set by BREAK/CONTINUE/RETURN. None
// means the scope is still running normally.
type Termination int

const (
	NoTermination Termination = iota
	TermBreak
	TermContinue
	TermReturn
	TermEnd
)

// Param is one declared parameter of a user function.
type Param struct {
	Name    string
	Type    types.Type
	Default *ast.Node // nil when the parameter has no default value
}

// Function is a callable: either a user function with a Body, or a
// built-in whose body is dispatched externally (spec §6).
type Function struct {
	Name       string
	Body       *ast.Node
	Arguments  []Param
	ReturnType types.Type
	IsBuiltin  bool
	// Variadic builtins skip the TooFewArguments/TooManyArguments arity
	// check the core otherwise enforces for user functions; their actual
	// argument handling is the registry's concern (spec §1's "deliberately
	// out of scope" builtin bodies).
	Variadic bool
}

// Scope is one frame of the environment chain.
type Scope struct {
	Body        *ast.Node
	RunningLine int
	ASTIndex    int
	CallKind    CallKind
	ReturnType  types.Type
	Terminated  Termination
	Depth       int

	variables []*value.Variable
	functions []*Function // only ever populated on the root scope
	Child     *Scope
}

// NewRoot creates the process-lifetime root scope, seeded with the
// built-in constants and the built-in function signature table.
func NewRoot(body *ast.Node, builtinNames []string) *Scope {
	s := &Scope{Body: body, CallKind: Root, Depth: 0}
	seedConstants(s)
	for _, name := range builtinNames {
		s.functions = append(s.functions, &Function{Name: name, IsBuiltin: true, Variadic: true, ReturnType: types.Scalar(types.Void)})
	}
	return s
}

func seedConstants(s *Scope) {
	result := value.NewInt(value.ResultName, 0)
	result.Constant = true // constant to user code; mutated only via SetInternal

	trueV := value.NewBool("TRUE", true)
	falseV := value.NewBool("FALSE", false)
	piV := value.NewDouble("MATH_PI", 3.14159265358979323846)
	eV := value.NewDouble("MATH_E", 2.71828182845904523536)
	depthV := value.NewInt(value.DepthName, int64(s.Depth))
	trueV.Constant, falseV.Constant, piV.Constant, eV.Constant, depthV.Constant = true, true, true, true, true

	s.variables = append(s.variables, result, trueV, falseV, piV, eV, depthV)
}

// Innermost walks the chain to the last, currently active scope.
func (s *Scope) Innermost() *Scope {
	cur := s
	for cur.Child != nil {
		cur = cur.Child
	}
	return cur
}

// PushChild creates and attaches a new child scope below the innermost
// active scope, seeded with the same built-in constants (at the new
// depth) per spec §4.5.
func (s *Scope) PushChild(kind CallKind, body *ast.Node, returnType types.Type) *Scope {
	parent := s.Innermost()
	child := &Scope{Body: body, CallKind: kind, ReturnType: returnType, Depth: parent.Depth + 1}
	seedConstants(child)
	parent.Child = child
	return child
}

// Chain returns every scope from the root (s) to the innermost active
// scope, in that order. Used by BREAK/CONTINUE/RETURN to mark a
// contiguous run of scopes as terminated without back-pointers.
func (s *Scope) Chain() []*Scope {
	var out []*Scope
	for cur := s; cur != nil; cur = cur.Child {
		out = append(out, cur)
	}
	return out
}

// PopInnermost detaches and returns the innermost scope (nil if s itself
// has no child, i.e. s is the only/innermost scope — the root may never
// be removed this way).
func (s *Scope) PopInnermost() *Scope {
	parent := s
	for parent.Child != nil && parent.Child.Child != nil {
		parent = parent.Child
	}
	if parent.Child == nil {
		return nil
	}
	removed := parent.Child
	parent.Child = nil
	return removed
}

// AddVariable declares a new variable in s's own table. It is an error
// for the name to already exist in this exact scope (shadowing an outer
// scope's variable of the same name is legal, per spec's shadowing
// property).
func (s *Scope) AddVariable(v *value.Variable) error {
	for _, existing := range s.variables {
		if existing.Name == v.Name {
			return diag.New(diag.VariableAlreadyExists, 0, "variable %q already exists in this scope", v.Name)
		}
	}
	s.variables = append(s.variables, v)
	return nil
}

// GetVariable walks from the root (s, which callers always pass as the
// root scope) down to the innermost active scope, returning the
// innermost matching Variable — an inner shadow wins over an outer
// declaration of the same name.
func (s *Scope) GetVariable(name string) (*value.Variable, bool) {
	var found *value.Variable
	cur := s
	for cur != nil {
		for _, v := range cur.variables {
			if v.Name == name {
				found = v
			}
		}
		cur = cur.Child
	}
	return found, found != nil
}

// LocalVariable looks up name only within s's own table, without walking
// into children. Used to read/write the calling scope's own `_` slot
// after a nested call returns.
func (s *Scope) LocalVariable(name string) (*value.Variable, bool) {
	for _, v := range s.variables {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// AddFunction registers a user function in the root scope. Only the root
// scope's table is ever consulted by GetFunction, so this should always
// be called on the root Scope.
func (s *Scope) AddFunction(fn *Function) error {
	for _, existing := range s.functions {
		if existing.Name == fn.Name {
			return diag.New(diag.FunctionAlreadyExists, 0, "function %q already exists", fn.Name)
		}
	}
	s.functions = append(s.functions, fn)
	return nil
}

// GetFunction looks up a function by name. Callers must pass the root
// scope: function lookup never walks the chain (spec §4.5).
func (s *Scope) GetFunction(name string) (*Function, bool) {
	for _, fn := range s.functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// Assign finds the innermost matching variable (like GetVariable) and
// writes newValue into it in place, rejecting writes to constants such as
// `_`. The interpreter's SET statement does not call Assign: execSetVar
// resolves its target with evalReference and applies the same constant
// check itself.
func (s *Scope) Assign(name string, newValue *value.Variable) error {
	target, ok := s.GetVariable(name)
	if !ok {
		return diag.New(diag.UndefinedVariable, 0, "undefined variable %q", name)
	}
	if target.Constant {
		return diag.New(diag.CannotModifyConstant, 0, "cannot modify constant %q", name)
	}
	*target = *newValue
	target.Name = name
	return nil
}

// SetLocal writes newValue into name's slot in s's own table only, without
// walking into children or consulting outer scopes. Used to write a
// RETURN value directly into the returning function's own scope, as
// distinct from SetInternal's innermost-shadow walk (which would instead
// hit a deeper, currently-innermost block scope inside that function).
func (s *Scope) SetLocal(name string, newValue *value.Variable) {
	for _, v := range s.variables {
		if v.Name == name {
			wasConstant := v.Constant
			*v = *newValue
			v.Name = name
			v.Constant = wasConstant
			return
		}
	}
}

// SetInternal writes newValue into name's innermost visible cell without
// the constant check, bypassing it. Used by the runtime itself to store
// return values and error codes into `_`.
func (s *Scope) SetInternal(name string, newValue *value.Variable) {
	target, ok := s.GetVariable(name)
	if !ok {
		return
	}
	wasConstant := target.Constant
	*target = *newValue
	target.Name = name
	target.Constant = wasConstant
}

func (s *Scope) String() string {
	return fmt.Sprintf("Scope{kind=%s depth=%d vars=%d}", s.CallKind, s.Depth, len(s.variables))
}
