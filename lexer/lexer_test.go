package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexBasicTokens(t *testing.T) {
	toks, err := Lex(`fn main is __print "hi"`)
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, Fn, toks[0].Type)
	assert.Equal(t, Ident, toks[1].Type)
	assert.Equal(t, "main", toks[1].Lexeme)
	assert.Equal(t, Is, toks[2].Type)
	assert.Equal(t, Print, toks[3].Type)
	assert.Equal(t, StrLitr, toks[4].Type)
	assert.Equal(t, "hi", toks[4].Lexeme)
}

func TestLexEmptyString(t *testing.T) {
	toks, err := Lex(`__str ""`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, StrLitr, toks[1].Type)
	assert.Equal(t, "", toks[1].Lexeme)
}

func TestLexNumberRejectsDecimalPoint(t *testing.T) {
	_, err := Lex("3.14")
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexInvalidEscape(t *testing.T) {
	_, err := Lex(`"bad\tvalue"`)
	require.Error(t, err)
}

func TestLexPrimitiveAndImportClassification(t *testing.T) {
	toks, err := Lex(`__import "core" __head __tail __litr __words __lesseq`)
	require.NoError(t, err)
	require.Len(t, toks, 7)
	assert.Equal(t, Import, toks[0].Type)
	assert.Equal(t, StrLitr, toks[1].Type)
	assert.Equal(t, Head, toks[2].Type)
	assert.Equal(t, Tail, toks[3].Type)
	assert.Equal(t, Litr, toks[4].Type)
	assert.Equal(t, Words, toks[5].Type)
	assert.Equal(t, LessEq, toks[6].Type)
}

// TestIncrementalLexEquivalence checks testable property 6: lexing
// "A+B" from offset 0 equals lexing A then B from |A|, provided A ends
// on a token boundary.
func TestIncrementalLexEquivalence(t *testing.T) {
	a := "fn main is __print "
	b := `"hi"`
	whole, err := Lex(a + b)
	require.NoError(t, err)

	first, err := LexFrom(a, 0, 1)
	require.NoError(t, err)
	second, err := LexFrom(a+b, len(a), 1)
	require.NoError(t, err)

	combined := append(append([]Token{}, first...), second...)
	require.Equal(t, len(whole), len(combined))
	for i := range whole {
		assert.Equal(t, whole[i].Type, combined[i].Type)
		assert.Equal(t, whole[i].Lexeme, combined[i].Lexeme)
	}
}

func TestPrimitiveArity(t *testing.T) {
	n, ok := PrimitiveArity(Head)
	require.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = PrimitiveArity(Fuse)
	require.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = PrimitiveArity(If)
	assert.False(t, ok)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "a\nb", Unescape(`a\nb`))
	assert.Equal(t, "", Unescape(""))
}
