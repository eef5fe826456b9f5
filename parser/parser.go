/*
File    : atto/parser/parser.go
Author  : akashmaji(@iisc.ac.in)

Package parser turns a module's tokens into an AST plus a populated
function table, in two passes (spec §4.3): a declaration scan that
registers every function header (enabling forward reference, mutual
and self recursion) before any body is parsed, then a body parse that
is pure recursive descent driven by the current token's kind. Grounded
structurally on original_source/src/modules.hpp's Module/FuncDef shape.
Errors are not accumulated: each parse step returns a Go error rather
than panicking, and parsing of a module stops at the first one.
*/
package parser

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/internal/errs"
	"github.com/akashmaji946/atto/internal/logging"
	"github.com/akashmaji946/atto/lexer"
	"github.com/akashmaji946/atto/module"
	"github.com/akashmaji946/atto/value"
)

// defaultLogger reports module-loaded and import-resolved events
// (spec's ambient logging stack) to stderr, so they never interleave
// with a program's own stdout. cmd/atto's server mode logs separately
// at the connection level.
var defaultLogger = logging.New(os.Stderr, slog.LevelInfo)

// SourceLoader reads the contents of an import path as text. The core
// only asks a collaborator to turn a path into a string; filesystem
// policy (extensions, search paths) lives outside this package.
type SourceLoader interface {
	Load(path string) (string, error)
}

type span struct{ start, end int }

// Parser drives module registration, lexing and the two parsing
// passes against an owned module.Registry.
type Parser struct {
	reg       *module.Registry
	loader    SourceLoader
	bodySpans map[string]span // "module.function" -> token span within that module

	mainLine int // REPL: current line counter carried across appended lines
}

// New creates a Parser over reg, using loader to resolve __import paths.
func New(reg *module.Registry, loader SourceLoader) *Parser {
	return &Parser{
		reg:       reg,
		loader:    loader,
		bodySpans: make(map[string]span),
		mainLine:  1,
	}
}

func parseErr(kind errs.Kind, moduleName string, tok lexer.Token, format string, args ...any) *errs.Error {
	return errs.Newf(kind, moduleName, tok.Line, tok.Col, format, args...)
}

// ParseModule loads and fully parses the module at path under name,
// recursively resolving its imports, unless a module by that name is
// already registered (the registry guarantees each module exists
// once). This is the entry point for __main__ (file mode) and is
// re-entered recursively for every __import.
func (p *Parser) ParseModule(name, path string) error {
	code, err := p.loader.Load(path)
	if err != nil {
		return errs.Newf(errs.FileIOError, name, 0, 0, "could not read %q: %v", path, err)
	}
	return p.parseModuleSource(name, path, code)
}

// ParseModuleFromSource parses pre-loaded source text as a module
// (used for the embedded __core__ standard library, which has no
// real file path).
func (p *Parser) ParseModuleFromSource(name, code string) error {
	return p.parseModuleSource(name, "<"+name+">", code)
}

func (p *Parser) parseModuleSource(name, path, code string) error {
	m, created := p.reg.Ensure(name, path, code)
	if !created {
		return nil
	}
	toks, lexErr := lexer.Lex(code)
	if lexErr != nil {
		if le, ok := lexErr.(*lexer.LexError); ok {
			return errs.New(errs.LexError, name, le.Msg, le.Line, le.Col)
		}
		return errs.New(errs.LexError, name, lexErr.Error(), 0, 0)
	}
	m.Tokens = toks

	if err := p.declScan(m); err != nil {
		return err
	}
	if err := p.bodyParse(m); err != nil {
		return err
	}
	m.Parsed = true
	defaultLogger.Info("module loaded", "module", name, "path", path, "functions", len(m.Functions))
	return nil
}

// declScan is pass 1: it walks m's tokens top to bottom, registering
// every fn header (name + params + body span) and recursively loading
// every __import before any body is parsed.
func (p *Parser) declScan(m *module.Module) error {
	toks := m.Tokens
	i := 0
	for i < len(toks) {
		tok := toks[i]
		switch tok.Type {
		case lexer.Import:
			i++
			if i >= len(toks) || toks[i].Type != lexer.StrLitr {
				return parseErr(errs.ParseError, m.Name, tok, "expected a string literal after __import")
			}
			importPath := toks[i].Lexeme
			i++
			if err := p.resolveImport(m, importPath); err != nil {
				return err
			}

		case lexer.Fn:
			i++
			if i >= len(toks) || toks[i].Type != lexer.Ident {
				return parseErr(errs.ParseError, m.Name, tok, "expected a function name after fn")
			}
			nameTok := toks[i]
			name := nameTok.Lexeme
			i++

			var params []string
			for i < len(toks) && toks[i].Type == lexer.Ident {
				params = append(params, toks[i].Lexeme)
				i++
			}
			if i >= len(toks) || toks[i].Type != lexer.Is {
				return parseErr(errs.ParseError, m.Name, nameTok, "expected 'is' in definition of %q", name)
			}
			i++

			bodyStart := i
			for i < len(toks) && toks[i].Type != lexer.Fn && toks[i].Type != lexer.Import {
				i++
			}

			if _, exists := m.Functions[name]; exists {
				return parseErr(errs.ParseError, m.Name, nameTok, "function %q redeclared", name)
			}
			m.Functions[name] = &module.Function{Name: name, Params: params, Module: m.Name}
			p.bodySpans[spanKey(m.Name, name)] = span{bodyStart, i}

		default:
			return parseErr(errs.ParseError, m.Name, tok, "unexpected token %s at top level", tok.Type)
		}
	}
	return nil
}

func spanKey(moduleName, fnName string) string { return moduleName + "." + fnName }

// resolveImport resolves importPath relative to m's own directory,
// registers the target module under its file stem if not already
// present, recursively lexes and parses it, and appends its name to
// m's import list in declared order.
func (p *Parser) resolveImport(m *module.Module, importPath string) error {
	dir := filepath.Dir(m.Path)
	resolved := importPath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, importPath)
	}
	if filepath.Ext(resolved) == "" {
		resolved += ".atto"
	}
	stem := strings.TrimSuffix(filepath.Base(resolved), filepath.Ext(resolved))

	if err := p.ParseModule(stem, resolved); err != nil {
		return err
	}
	m.Imports = append(m.Imports, stem)
	defaultLogger.Info("import resolved", "from", m.Name, "to", stem, "path", resolved)
	return nil
}

// bodyParse is pass 2: for every function declared during declScan,
// parse its recorded body span into the function's Body expressions.
func (p *Parser) bodyParse(m *module.Module) error {
	for name, fn := range m.Functions {
		sp := p.bodySpans[spanKey(m.Name, name)]
		ctx := &exprCtx{toks: m.Tokens, pos: sp.start, end: sp.end, moduleName: m.Name, params: fn.Params, reg: p.reg}
		body, err := p.parseExprSeq(ctx)
		if err != nil {
			return err
		}
		if len(body) == 0 {
			tok := lexer.Token{Line: 0, Col: 0}
			if sp.start > 0 && sp.start-1 < len(m.Tokens) {
				tok = m.Tokens[sp.start-1]
			}
			return parseErr(errs.ParseError, m.Name, tok, "function %q has an empty body", name)
		}
		fn.Body = body
	}
	return nil
}

// exprCtx is the state threaded through recursive-descent body
// parsing for a single function's body span.
type exprCtx struct {
	toks       []lexer.Token
	pos, end   int
	moduleName string
	params     []string
	reg        *module.Registry
}

func (c *exprCtx) peek() (lexer.Token, bool) {
	if c.pos >= c.end {
		return lexer.Token{}, false
	}
	return c.toks[c.pos], true
}

// parseExprSeq parses every expression in [pos, end) and returns them
// in order; this is how a function body ("a sequence of top-level
// expressions whose last produced value is the result") is read.
func (p *Parser) parseExprSeq(ctx *exprCtx) ([]*ast.Node, error) {
	var nodes []*ast.Node
	for ctx.pos < ctx.end {
		node, err := p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// parseExpr parses exactly one expression, dispatched entirely by the
// current token's kind: a primitive with fixed arity, `if`, a literal,
// a formal-parameter reference, or a resolved function call.
func (p *Parser) parseExpr(ctx *exprCtx) (*ast.Node, error) {
	tok, ok := ctx.peek()
	if !ok {
		return nil, errs.New(errs.ParseError, ctx.moduleName, "unexpected end of input, expected an expression", 0, 0)
	}

	switch tok.Type {
	case lexer.If:
		ctx.pos++
		cond, err := p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}
		then, err := p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}
		els, err := p.parseExpr(ctx)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(tok, cond, then, els), nil

	case lexer.NumLitr:
		ctx.pos++
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, parseErr(errs.ParseError, ctx.moduleName, tok, "invalid number literal %q", tok.Lexeme)
		}
		return ast.NewValue(tok, value.Num(n)), nil

	case lexer.StrLitr:
		ctx.pos++
		return ast.NewValue(tok, value.Str(lexer.Unescape(tok.Lexeme))), nil

	case lexer.TrueLitr:
		ctx.pos++
		return ast.NewValue(tok, value.Bool(true)), nil

	case lexer.FalseLitr:
		ctx.pos++
		return ast.NewValue(tok, value.Bool(false)), nil

	case lexer.NullLitr:
		ctx.pos++
		return ast.NewValue(tok, value.Null), nil

	case lexer.Ident:
		for i, param := range ctx.params {
			if param == tok.Lexeme {
				ctx.pos++
				return ast.NewIdent(tok, i), nil
			}
		}
		moduleName, fn, found := resolveName(ctx.reg, ctx.moduleName, p.importsOf(ctx.moduleName), tok.Lexeme)
		if !found {
			return nil, parseErr(errs.ParseError, ctx.moduleName, tok, "unresolved name %q", tok.Lexeme)
		}
		ctx.pos++
		args := make([]*ast.Node, len(fn.Params))
		for i := range args {
			arg, err := p.parseExpr(ctx)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return ast.NewCall(tok, moduleName, tok.Lexeme, args...), nil

	default:
		if arity, isPrim := lexer.PrimitiveArity(tok.Type); isPrim {
			ctx.pos++
			children := make([]*ast.Node, arity)
			for i := range children {
				child, err := p.parseExpr(ctx)
				if err != nil {
					return nil, err
				}
				children[i] = child
			}
			return ast.NewPrim(tok, tok.Type, children...), nil
		}
		return nil, parseErr(errs.ParseError, ctx.moduleName, tok, "unexpected token %s", tok.Type)
	}
}

func (p *Parser) importsOf(moduleName string) []string {
	if m, ok := p.reg.Get(moduleName); ok {
		return m.Imports
	}
	return nil
}

// resolveName implements the three-tier name resolution order (spec
// §4.3): the current module's own function table, then __core__, then
// each imported module in import order. The first match wins.
func resolveName(reg *module.Registry, moduleName string, imports []string, name string) (string, *module.Function, bool) {
	if fn, ok := reg.ResolveCall(moduleName, name); ok {
		return moduleName, fn, true
	}
	if fn, ok := reg.ResolveCall(module.CoreModule, name); ok {
		return module.CoreModule, fn, true
	}
	for _, imp := range imports {
		if fn, ok := reg.ResolveCall(imp, name); ok {
			return imp, fn, true
		}
	}
	return "", nil, false
}
