/*
File    : atto/eval/primitives.go
Author  : akashmaji(@iisc.ac.in)

The 17 fixed-arity primitives (spec §6), dispatched by lexer.TokenType
off the arity already fixed at parse time. __head/__tail on a Str walk
one grapheme cluster at a time via uniseg rather than one byte, so
multi-byte UTF-8 text behaves the way a reader of the string would
expect.
*/
package eval

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/lexer"
	"github.com/akashmaji946/atto/value"
)

func (e *Evaluator) evalPrim(node *ast.Node, moduleName string, args []value.Value) (value.Value, error) {
	vals := make([]value.Value, len(node.Children))
	for i, c := range node.Children {
		v, err := e.Eval(c, moduleName, args)
		if err != nil {
			return value.Null, err
		}
		vals[i] = v
	}

	switch node.Op {
	case lexer.Head:
		return primHead(vals[0]), nil
	case lexer.Tail:
		return primTail(vals[0]), nil
	case lexer.Litr:
		return value.FromLiteral(vals[0].AsStr()), nil
	case lexer.Str:
		return value.Str(vals[0].AsStr()), nil
	case lexer.Words:
		return primWords(vals[0]), nil
	case lexer.Input:
		return e.primInput(vals[0])
	case lexer.Print:
		return e.primPrint(vals[0])
	case lexer.Neg:
		return vals[0].Neg(), nil
	case lexer.Fuse:
		return primFuse(vals[0], vals[1]), nil
	case lexer.Pair:
		return primPair(vals[0], vals[1]), nil
	case lexer.Eq:
		return value.Bool(vals[0].Equal(vals[1])), nil
	case lexer.Add:
		return vals[0].Add(vals[1]), nil
	case lexer.Mul:
		return vals[0].Mul(vals[1]), nil
	case lexer.Div:
		return vals[0].Div(vals[1]), nil
	case lexer.Rem:
		return vals[0].Rem(vals[1]), nil
	case lexer.Less:
		// __less a b means b > a (spec §6, note the reversed operand order).
		return value.Bool(vals[1].Greater(vals[0])), nil
	case lexer.LessEq:
		return value.Bool(vals[1].GreaterEq(vals[0])), nil
	default:
		return value.Null, errs.Newf(errs.RuntimeError, moduleName, node.Tok.Line, node.Tok.Col, "unknown primitive %s", node.Op)
	}
}

// primHead returns a list's first element (deep-cloned), a string's
// first grapheme cluster, or the value itself for any other kind. An
// empty list's head is the empty list, matching __tail's empty-list
// identity rather than Null.
func primHead(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindList:
		if v.Len() == 0 {
			return value.List(nil)
		}
		return v.At(0).Clone()
	case value.KindStr:
		s := v.RawStr()
		if s == "" {
			return value.Str("")
		}
		cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		return value.Str(cluster)
	default:
		return v
	}
}

// primTail returns every element but a list's first (deep-cloned), a
// string with its first grapheme cluster removed, or the value itself
// for any other kind. A Str shorter than two bytes has no tail to
// speak of and yields Null rather than an empty string.
func primTail(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindList:
		items := v.RawList()
		if len(items) == 0 {
			return value.List(nil)
		}
		rest := make([]value.Value, len(items)-1)
		for i, item := range items[1:] {
			rest[i] = item.Clone()
		}
		return value.List(rest)
	case value.KindStr:
		s := v.RawStr()
		if len(s) < 2 {
			return value.Null
		}
		_, remainder, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
		return value.Str(remainder)
	default:
		return v
	}
}

// primWords splits a Str on whitespace into a list of Str; any other
// kind yields Null.
func primWords(v value.Value) value.Value {
	if v.Kind() != value.KindStr {
		return value.Null
	}
	fields := strings.Fields(v.RawStr())
	out := make([]value.Value, len(fields))
	for i, f := range fields {
		out[i] = value.Str(f)
	}
	return value.List(out)
}

// primInput writes prompt's textual rendering to the evaluator's
// writer and reads one line from its reader, stripping the trailing
// newline.
func (e *Evaluator) primInput(prompt value.Value) (value.Value, error) {
	fmt.Fprint(e.Writer, prompt.AsStr())
	line, err := e.Reader.ReadString('\n')
	if err != nil && line == "" {
		return value.Str(""), nil
	}
	return value.Str(strings.TrimRight(line, "\r\n")), nil
}

// primPrint writes arg's textual rendering followed by a newline and
// returns arg unchanged, so __print can sit inline in an expression.
func (e *Evaluator) primPrint(arg value.Value) (value.Value, error) {
	if _, err := fmt.Fprintln(e.Writer, arg.AsStr()); err != nil {
		return value.Null, err
	}
	return arg, nil
}

// primFuse concatenates. AsList already implements "itself for a
// non-list, its elements for a list", so flattening one level and
// building a two-element list from two scalars fall out of the same
// code path.
func primFuse(a, b value.Value) value.Value {
	combined := append(append([]value.Value{}, a.AsList()...), b.AsList()...)
	cloned := make([]value.Value, len(combined))
	for i, v := range combined {
		cloned[i] = v.Clone()
	}
	return value.List(cloned)
}

// primPair always builds a two-element list [a, b], never flattening
// either operand even if it is itself a list.
func primPair(a, b value.Value) value.Value {
	return value.List([]value.Value{a.Clone(), b.Clone()})
}
