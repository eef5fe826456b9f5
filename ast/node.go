/*
File    : atto/ast/node.go
Author  : akashmaji(@iisc.ac.in)

Package ast defines the single tagged-sum AST node used by the parser
and evaluator. The teacher's visitor-pattern hierarchy (parser/node.go:
~20 concrete structs each with Accept(visitor)) is collapsed here into
one Node struct carrying a Kind discriminant, per the REDESIGN FLAGS:
no virtual dispatch, the evaluator is a single type switch on Kind.
*/
package ast

import (
	"github.com/akashmaji946/atto/lexer"
	"github.com/akashmaji946/atto/value"
)

// Kind discriminates which fields of a Node are meaningful.
type Kind int

const (
	KindValue Kind = iota
	KindIdent
	KindPrim
	KindIf
	KindCall
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "Value"
	case KindIdent:
		return "Ident"
	case KindPrim:
		return "Prim"
	case KindIf:
		return "If"
	case KindCall:
		return "Call"
	case KindFn:
		return "Fn"
	default:
		return "?"
	}
}

// Node is atto's single AST node type. Every node carries its source
// Tok for diagnostics; only the fields relevant to Kind are populated.
type Node struct {
	Kind Kind
	Tok  lexer.Token

	// KindValue: a literal-derived constant.
	Val value.Value

	// KindIdent: a reference to the i-th formal parameter of the
	// enclosing function, resolved at parse time.
	Index int

	// KindPrim: a built-in with fixed arity; len(Children) == the
	// arity lexer.PrimitiveArity(Op) reports.
	Op       lexer.TokenType
	Children []*Node

	// KindIf: condition, consequent, alternative.
	Cond, Then, Else *Node

	// KindCall: moduleRef identifies the module that defines FnName;
	// Args has exactly len(params(Module,FnName)) entries.
	Module string
	FnName string
	Args   []*Node

	// KindFn: a function definition. Never occurs as a child of
	// another expression — it exists only as a module table entry.
	Name   string
	Params []string
	Body   []*Node
}

// NewValue builds a KindValue node.
func NewValue(tok lexer.Token, v value.Value) *Node {
	return &Node{Kind: KindValue, Tok: tok, Val: v}
}

// NewIdent builds a KindIdent node referencing formal parameter index.
func NewIdent(tok lexer.Token, index int) *Node {
	return &Node{Kind: KindIdent, Tok: tok, Index: index}
}

// NewPrim builds a KindPrim node for the given primitive op.
func NewPrim(tok lexer.Token, op lexer.TokenType, children ...*Node) *Node {
	return &Node{Kind: KindPrim, Tok: tok, Op: op, Children: children}
}

// NewIf builds a KindIf node.
func NewIf(tok lexer.Token, cond, then, els *Node) *Node {
	return &Node{Kind: KindIf, Tok: tok, Cond: cond, Then: then, Else: els}
}

// NewCall builds a KindCall node resolved to module/fnName.
func NewCall(tok lexer.Token, module, fnName string, args ...*Node) *Node {
	return &Node{Kind: KindCall, Tok: tok, Module: module, FnName: fnName, Args: args}
}

// NewFn builds a KindFn node (a module-table entry, never nested).
func NewFn(tok lexer.Token, name string, params []string, body []*Node) *Node {
	return &Node{Kind: KindFn, Tok: tok, Name: name, Params: params, Body: body}
}
