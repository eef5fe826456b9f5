package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesOnceAndReturnsExisting(t *testing.T) {
	reg := NewRegistry()

	m1, created1 := reg.Ensure("a", "/tmp/a.atto", "code")
	require.True(t, created1)

	m2, created2 := reg.Ensure("a", "/tmp/other.atto", "different code")
	assert.False(t, created2)
	assert.Same(t, m1, m2)
	assert.Equal(t, "code", m2.Code)
}

func TestResolveCallAndInvalidate(t *testing.T) {
	reg := NewRegistry()
	m, _ := reg.Ensure("a", "/tmp/a.atto", "")
	m.Functions["f"] = &Function{Name: "f", Module: "a"}

	fn, ok := reg.ResolveCall("a", "f")
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)

	replacement := &Function{Name: "f", Module: "a", Params: []string{"x"}}
	m.Functions["f"] = replacement
	reg.Invalidate("a", "f")

	fn, ok = reg.ResolveCall("a", "f")
	require.True(t, ok)
	assert.Same(t, replacement, fn)
}

func TestAppendCodeReturnsPriorOffset(t *testing.T) {
	reg := NewRegistry()
	reg.Ensure(MainModule, "<repl>", "abc")
	offset := reg.AppendCode(MainModule, "def")
	assert.Equal(t, 3, offset)

	m, _ := reg.Get(MainModule)
	assert.Equal(t, "abcdef", m.Code)
}
