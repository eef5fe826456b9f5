/*
File    : atto/parser/repl.go
Author  : akashmaji(@iisc.ac.in)

Incremental parsing for the REPL (spec §4.3): after lexing only the
newly appended suffix of __main__'s source, new `fn` definitions are
added to the module and any new top-level expression sequence becomes
(replacing) __main__'s implicit `main` body.
*/
package parser

import (
	"strings"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/lexer"
	"github.com/akashmaji946/atto/module"
)

// EnsureMainModule registers __main__ if it doesn't exist yet and
// returns it.
func (p *Parser) EnsureMainModule() *module.Module {
	m, _ := p.reg.Ensure(module.MainModule, "<repl>", "")
	return m
}

// ParseReplLine lexes and parses one line of interactive input
// appended to __main__. It returns the freshly (re)parsed body to
// evaluate immediately, or nil if the line only declared a function
// or processed an import (nothing to run).
func (p *Parser) ParseReplLine(line string) ([]*ast.Node, error) {
	m := p.EnsureMainModule()

	offset := p.reg.AppendCode(module.MainModule, line+"\n")
	newToks, lexErr := lexer.LexFrom(m.Code, offset, p.mainLine)
	if lexErr != nil {
		if le, ok := lexErr.(*lexer.LexError); ok {
			return nil, errs.New(errs.LexError, m.Name, le.Msg, le.Line, le.Col)
		}
		return nil, errs.New(errs.LexError, m.Name, lexErr.Error(), 0, 0)
	}
	p.mainLine += strings.Count(line, "\n") + 1

	base := len(m.Tokens)
	m.Tokens = append(m.Tokens, newToks...)
	toks := m.Tokens
	i := base
	if i >= len(toks) {
		return nil, nil
	}

	switch toks[i].Type {
	case lexer.Import:
		i++
		if i >= len(toks) || toks[i].Type != lexer.StrLitr {
			return nil, parseErr(errs.ParseError, m.Name, toks[base], "expected a string literal after __import")
		}
		importPath := toks[i].Lexeme
		if err := p.resolveImport(m, importPath); err != nil {
			return nil, err
		}
		return nil, nil

	case lexer.Fn:
		nameTok, params, bodyStart, bodyEnd, name, err := p.scanReplFnHeader(m, toks, i)
		if err != nil {
			return nil, err
		}
		prev, hadPrev := m.Functions[name]
		restore := func() {
			p.reg.Invalidate(m.Name, name)
			if hadPrev {
				m.Functions[name] = prev
			} else {
				delete(m.Functions, name)
			}
		}
		p.reg.Invalidate(m.Name, name)
		fn := &module.Function{Name: name, Params: params, Module: m.Name}
		m.Functions[name] = fn
		ctx := &exprCtx{toks: toks, pos: bodyStart, end: bodyEnd, moduleName: m.Name, params: params, reg: p.reg}
		body, err := p.parseExprSeq(ctx)
		if err != nil {
			restore()
			return nil, err
		}
		if len(body) == 0 {
			restore()
			return nil, parseErr(errs.ParseError, m.Name, nameTok, "function %q has an empty body", name)
		}
		fn.Body = body
		return nil, nil

	default:
		ctx := &exprCtx{toks: toks, pos: i, end: len(toks), moduleName: m.Name, params: nil, reg: p.reg}
		body, err := p.parseExprSeq(ctx)
		if err != nil {
			return nil, err
		}
		p.reg.Invalidate(m.Name, "main")
		m.Functions["main"] = &module.Function{Name: "main", Module: m.Name, Body: body}
		return body, nil
	}
}

func (p *Parser) scanReplFnHeader(m *module.Module, toks []lexer.Token, i int) (nameTok lexer.Token, params []string, bodyStart, bodyEnd int, name string, err error) {
	i++ // past `fn`
	if i >= len(toks) || toks[i].Type != lexer.Ident {
		return nameTok, nil, 0, 0, "", parseErr(errs.ParseError, m.Name, toks[i-1], "expected a function name after fn")
	}
	nameTok = toks[i]
	name = nameTok.Lexeme
	i++
	for i < len(toks) && toks[i].Type == lexer.Ident {
		params = append(params, toks[i].Lexeme)
		i++
	}
	if i >= len(toks) || toks[i].Type != lexer.Is {
		return nameTok, nil, 0, 0, "", parseErr(errs.ParseError, m.Name, nameTok, "expected 'is' in definition of %q", name)
	}
	i++
	bodyStart = i
	bodyEnd = len(toks)
	return nameTok, params, bodyStart, bodyEnd, name, nil
}
