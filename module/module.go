/*
File    : atto/module/module.go
Author  : akashmaji(@iisc.ac.in)

Package module holds the canonical store of loaded atto modules,
grounded on original_source/src/modules.hpp's Module/FuncDef/allModules
shape. Per the REDESIGN FLAGS, cross-module references from the AST
are plain name strings resolved through a Registry at use time, never
raw pointers, and the registry itself is an owned value passed through
parse and eval rather than a package-level mutable static.
*/
package module

import (
	"log/slog"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/internal/logging"
	"github.com/akashmaji946/atto/lexer"
)

// defaultLogger reports module registration, the step before parser
// fills a module in (spec's ambient logging stack).
var defaultLogger = logging.New(os.Stderr, slog.LevelInfo)

// Function is a named, parsed atto function: its parameter names (in
// declaration order, which is what Ident(i) indexes into) and its
// body expressions, plus the name of the module it was declared in.
type Function struct {
	Name   string
	Params []string
	Body   []*ast.Node
	Module string
}

// Module is a named collection of functions loaded from one source
// text, together with the tokens it was parsed from and the ordered
// list of modules it imports.
type Module struct {
	Name      string
	Path      string
	Code      string
	Tokens    []lexer.Token
	Functions map[string]*Function
	Imports   []string
	Parsed    bool
}

func newModule(name, path, code string) *Module {
	return &Module{
		Name:      name,
		Path:      path,
		Code:      code,
		Functions: make(map[string]*Function),
	}
}

// Reserved module names.
const (
	CoreModule = "__core__"
	MainModule = "__main__"
)

type callKey struct {
	module, fn string
}

// Registry is the process-wide (but owned, not static) mapping from
// module name to Module. It guarantees each module exists once;
// resolved (module, function) lookups are additionally served from an
// LRU front cache, so repeated calls into a commonly imported helper
// module skip the map scan — a cache in front of the canonical map,
// not a replacement for it. All mutation happens during parsing; once
// parsing completes the registry is treated as read-only, so no
// additional locking discipline is required at eval time so long as
// evaluation never triggers a parse (spec §5).
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*Module
	cache   *lru.Cache[callKey, *Function]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	cache, _ := lru.New[callKey, *Function](256)
	return &Registry{
		modules: make(map[string]*Module),
		cache:   cache,
	}
}

// Get returns the module by name, if it has been registered.
func (r *Registry) Get(name string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Ensure returns the existing module by name, or creates and stores a
// fresh, unparsed one at path/code if none exists yet. It reports
// whether a new module was created.
func (r *Registry) Ensure(name, path, code string) (m *Module, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.modules[name]; ok {
		return existing, false
	}
	m = newModule(name, path, code)
	r.modules[name] = m
	defaultLogger.Info("module registered", "module", name, "path", path)
	return m, true
}

// AppendCode appends code to an existing module (REPL incremental
// input) and returns the byte offset the new code starts at.
func (r *Registry) AppendCode(name, code string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.modules[name]
	offset := len(m.Code)
	m.Code += code
	return offset
}

// ResolveCall looks up fnName within moduleName's function table,
// serving the lookup from the LRU cache when possible.
func (r *Registry) ResolveCall(moduleName, fnName string) (*Function, bool) {
	key := callKey{moduleName, fnName}
	if fn, ok := r.cache.Get(key); ok {
		return fn, true
	}
	r.mu.RLock()
	m, ok := r.modules[moduleName]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	fn, ok := m.Functions[fnName]
	if ok {
		r.cache.Add(key, fn)
	}
	return fn, ok
}

// Invalidate purges any cached resolution for (moduleName, fnName).
// Required whenever a function's body is replaced in place rather
// than being registered for the first time — currently only the REPL
// redefining a name across appended lines does this.
func (r *Registry) Invalidate(moduleName, fnName string) {
	r.cache.Remove(callKey{moduleName, fnName})
}

// Names returns every registered module name, primarily for
// diagnostics and tests.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}
