package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsStrFormatting(t *testing.T) {
	assert.Equal(t, "null", Null.AsStr())
	assert.Equal(t, "true", Bool(true).AsStr())
	assert.Equal(t, "5", Num(5).AsStr())
	assert.Equal(t, "2.5", Num(2.5).AsStr())
	assert.Equal(t, "[1, 2, 3]", List([]Value{Num(1), Num(2), Num(3)}).AsStr())
}

// TestNumericLiteralRoundTrip checks testable property 1: __litr(__str(Num(d))) == Num(d).
func TestNumericLiteralRoundTrip(t *testing.T) {
	for _, d := range []float64{0, 1, -1, 42, 3.5, -17.25, 1000000} {
		v := Num(d)
		got := FromLiteral(v.AsStr())
		assert.Equal(t, KindNum, got.Kind())
		assert.Equal(t, d, got.RawNum())
	}
}

func TestFromLiteral(t *testing.T) {
	assert.Equal(t, Null, FromLiteral("null"))
	assert.Equal(t, Bool(true), FromLiteral("true"))
	assert.Equal(t, Bool(false), FromLiteral("false"))
	assert.Equal(t, Num(42), FromLiteral("42"))
	assert.Equal(t, Str("hello"), FromLiteral("hello"))
	assert.Equal(t, Num(7), FromLiteral("  7  "))
}

func TestEqualListAlwaysFalse(t *testing.T) {
	a := List([]Value{Num(1)})
	b := List([]Value{Num(1)})
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(a))
}

func TestLessAndLessEqOperandOrder(t *testing.T) {
	// __less a b == b > a, so __less 1 2 should read as 2 > 1 == true.
	assert.True(t, Num(2).Greater(Num(1)))
	assert.True(t, Num(2).GreaterEq(Num(2)))
}

func TestAddStrConcatenatesNumAdds(t *testing.T) {
	assert.Equal(t, Num(5), Num(2).Add(Num(3)))
	assert.Equal(t, Str("ab"), Str("a").Add(Str("b")))
	assert.Equal(t, Null, Num(1).Add(Str("x")))
}

func TestRemZeroDivisorIsNull(t *testing.T) {
	assert.Equal(t, Null, Num(5).Rem(Num(0)))
	assert.Equal(t, Num(1), Num(7).Rem(Num(3)))
}

func TestCloneDeepCopiesLists(t *testing.T) {
	inner := List([]Value{Num(1), Num(2)})
	outer := List([]Value{inner})
	cloned := outer.Clone()

	clonedInner := cloned.RawList()[0]
	assert.Equal(t, inner.AsStr(), clonedInner.AsStr())

	// Mutating the original's backing slice must not affect the clone.
	outer.RawList()[0].RawList()[0] = Num(99)
	assert.Equal(t, float64(1), clonedInner.RawList()[0].RawNum())
}

func TestAsListWrapsNonListInSingleton(t *testing.T) {
	assert.Equal(t, []Value{Num(5)}, Num(5).AsList())
	items := List([]Value{Num(1), Num(2)})
	assert.Equal(t, items.RawList(), items.AsList())
}
