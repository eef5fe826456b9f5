/*
File    : atto/eval/evaluator.go
Author  : akashmaji(@iisc.ac.in)

Package eval is the tree-walking evaluator (spec §5): one Eval
dispatch arm per ast.Kind, no virtual dispatch, grounded on
values.cpp's operator semantics (already encoded in package value)
and on the teacher's eval.Evaluator shape (a struct carrying a Writer
and a buffered Reader for builtin I/O).
*/
package eval

import (
	"bufio"
	"io"
	"os"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/module"
	"github.com/akashmaji946/atto/value"
)

// Evaluator holds the state threaded through a tree walk: the module
// registry functions are resolved against, and the I/O streams __input
// and __print act on.
type Evaluator struct {
	Reg    *module.Registry
	Writer io.Writer
	Reader *bufio.Reader
}

// New returns an Evaluator over reg, defaulting I/O to os.Stdout/Stdin.
func New(reg *module.Registry) *Evaluator {
	return &Evaluator{
		Reg:    reg,
		Writer: os.Stdout,
		Reader: bufio.NewReader(os.Stdin),
	}
}

// SetWriter redirects __print's output, primarily for tests and the
// REPL's per-connection server mode.
func (e *Evaluator) SetWriter(w io.Writer) { e.Writer = w }

// SetReader redirects __input's source.
func (e *Evaluator) SetReader(r io.Reader) { e.Reader = bufio.NewReader(r) }

// RunMain resolves and calls moduleName's zero-argument main function.
func (e *Evaluator) RunMain(moduleName string) (value.Value, error) {
	fn, ok := e.Reg.ResolveCall(moduleName, "main")
	if !ok {
		return value.Null, errs.New(errs.RuntimeError, moduleName, "no main function defined", 0, 0)
	}
	return e.CallFunction(fn, nil)
}

// CallFunction evaluates fn's body with args bound to its formal
// parameters by position, returning the last expression's value
// (spec §3: a function's result is the value of its final top-level
// expression).
func (e *Evaluator) CallFunction(fn *module.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Null, errs.Newf(errs.RuntimeError, fn.Module, 0, 0,
			"%q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	return e.evalSeq(fn.Body, fn.Module, args)
}

func (e *Evaluator) evalSeq(body []*ast.Node, moduleName string, args []value.Value) (value.Value, error) {
	result := value.Null
	for _, node := range body {
		v, err := e.Eval(node, moduleName, args)
		if err != nil {
			return value.Null, err
		}
		result = v
	}
	return result, nil
}

// Eval evaluates a single node within moduleName, with args bound to
// the enclosing function's formal parameters. This is the one and
// only dispatch point in the evaluator: every ast.Kind gets exactly
// one case.
func (e *Evaluator) Eval(node *ast.Node, moduleName string, args []value.Value) (value.Value, error) {
	switch node.Kind {
	case ast.KindValue:
		return node.Val, nil

	case ast.KindIdent:
		if node.Index < 0 || node.Index >= len(args) {
			return value.Null, errs.Newf(errs.RuntimeError, moduleName, node.Tok.Line, node.Tok.Col,
				"parameter index %d out of range (have %d)", node.Index, len(args))
		}
		return args[node.Index], nil

	case ast.KindIf:
		return e.evalIf(node, moduleName, args)

	case ast.KindPrim:
		return e.evalPrim(node, moduleName, args)

	case ast.KindCall:
		return e.evalCall(node, moduleName, args)

	case ast.KindFn:
		return e.evalSeq(node.Body, moduleName, args)

	default:
		return value.Null, errs.Newf(errs.RuntimeError, moduleName, node.Tok.Line, node.Tok.Col, "unevaluable node kind %s", node.Kind)
	}
}

// evalIf evaluates only the branch the condition selects; the other
// branch is never touched, per the short-circuit requirement.
func (e *Evaluator) evalIf(node *ast.Node, moduleName string, args []value.Value) (value.Value, error) {
	cond, err := e.Eval(node.Cond, moduleName, args)
	if err != nil {
		return value.Null, err
	}
	if cond.AsBool() {
		return e.Eval(node.Then, moduleName, args)
	}
	return e.Eval(node.Else, moduleName, args)
}

func (e *Evaluator) evalCall(node *ast.Node, moduleName string, args []value.Value) (value.Value, error) {
	callArgs := make([]value.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := e.Eval(a, moduleName, args)
		if err != nil {
			return value.Null, err
		}
		callArgs[i] = v
	}
	fn, ok := e.Reg.ResolveCall(node.Module, node.FnName)
	if !ok {
		return value.Null, errs.Newf(errs.RuntimeError, moduleName, node.Tok.Line, node.Tok.Col,
			"call to undefined function %q in module %q", node.FnName, node.Module)
	}
	return e.CallFunction(fn, callArgs)
}
