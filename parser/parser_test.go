package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/atto/ast"
	"github.com/akashmaji946/atto/module"
)

type fakeLoader map[string]string

func (f fakeLoader) Load(path string) (string, error) { return f[path], nil }

func TestParseModuleForwardAndSelfRecursion(t *testing.T) {
	reg := module.NewRegistry()
	p := New(reg, fakeLoader{})
	code := `
fn fact n is if __eq n 0 1 __mul n fact __add n __neg 1
fn main is __print __str fact 5
`
	require.NoError(t, p.ParseModuleFromSource(module.MainModule, code))

	fn, ok := reg.ResolveCall(module.MainModule, "fact")
	require.True(t, ok)
	assert.Len(t, fn.Params, 1)
}

// TestArityCheck checks testable property 3: every Call node's args
// count matches the callee's declared parameter count.
func TestArityCheck(t *testing.T) {
	reg := module.NewRegistry()
	p := New(reg, fakeLoader{})
	code := `
fn add a b is __add a b
fn main is __print __str add 1 2
`
	require.NoError(t, p.ParseModuleFromSource(module.MainModule, code))

	main, ok := reg.ResolveCall(module.MainModule, "main")
	require.True(t, ok)
	call := findCall(t, main.Body, "add")
	assert.Len(t, call.Args, 2)
}

// TestParameterIndexRange checks testable property 4.
func TestParameterIndexRange(t *testing.T) {
	reg := module.NewRegistry()
	p := New(reg, fakeLoader{})
	require.NoError(t, p.ParseModuleFromSource(module.MainModule, "fn add a b is __add a b\nfn main is add 1 2\n"))

	fn, ok := reg.ResolveCall(module.MainModule, "add")
	require.True(t, ok)
	prim := fn.Body[0]
	require.Equal(t, ast.KindPrim, prim.Kind)
	for _, child := range prim.Children {
		require.Equal(t, ast.KindIdent, child.Kind)
		assert.True(t, child.Index >= 0 && child.Index < len(fn.Params))
	}
}

// TestResolutionOrderCurrentModuleWinsOverCore checks testable
// property 5: a name defined in both the current module and __core__
// resolves to the current module's definition.
func TestResolutionOrderCurrentModuleWinsOverCore(t *testing.T) {
	reg := module.NewRegistry()
	p := New(reg, fakeLoader{})
	require.NoError(t, p.ParseModuleFromSource(module.CoreModule, "fn id x is x\n"))
	require.NoError(t, p.ParseModuleFromSource(module.MainModule, "fn id x is __add x 1\nfn main is id 1\n"))

	main, _ := reg.ResolveCall(module.MainModule, "main")
	call := findCall(t, main.Body, "id")
	assert.Equal(t, module.MainModule, call.Module)
}

func TestImportMakesCalleeFunctionsVisible(t *testing.T) {
	reg := module.NewRegistry()
	loader := fakeLoader{
		"/src/util.atto": "fn double x is __mul x 2\n",
		"/src/main.atto": "__import \"util\"\nfn main is __print __str double 21\n",
	}
	p := New(reg, loader)
	require.NoError(t, p.ParseModule(module.MainModule, "/src/main.atto"))

	main, ok := reg.ResolveCall(module.MainModule, "main")
	require.True(t, ok)
	call := findCall(t, main.Body, "double")
	assert.Equal(t, "util", call.Module)
}

func findCall(t *testing.T, body []*ast.Node, name string) *ast.Node {
	t.Helper()
	var found *ast.Node
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n == nil || found != nil {
			return
		}
		switch n.Kind {
		case ast.KindCall:
			if n.FnName == name {
				found = n
				return
			}
			for _, a := range n.Args {
				walk(a)
			}
		case ast.KindPrim:
			for _, c := range n.Children {
				walk(c)
			}
		case ast.KindIf:
			walk(n.Cond)
			walk(n.Then)
			walk(n.Else)
		}
	}
	for _, n := range body {
		walk(n)
	}
	require.NotNil(t, found, "expected a call to %q somewhere in the body", name)
	return found
}
