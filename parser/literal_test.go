package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigenform/firrtl-go/ast"
)

func litStream(t *testing.T, src string) *TokenStream {
	t.Helper()
	return newTestStream(t, src)
}

func TestNumericLiteralDecimal(t *testing.T) {
	s := litStream(t, "255")
	lit, err := parseNumericLiteral(s, false)
	require.Nil(t, err)
	assert.Equal(t, ast.UIntLit(255), lit)
}

func TestNumericLiteralBasedHexOctal(t *testing.T) {
	cases := []struct {
		src  string
		want ast.LiteralNumeric
	}{
		{`"hff"`, ast.UIntLit(255)},
		{`"o17"`, ast.UIntLit(15)},
		{`"b101"`, ast.UIntLit(5)},
	}
	for _, c := range cases {
		s := litStream(t, c.src)
		lit, err := parseNumericLiteral(s, false)
		require.Nil(t, err, "src=%s", c.src)
		assert.Equal(t, c.want, lit, "src=%s", c.src)
	}
}

func TestNumericLiteralSignedConstructorDerivesSign(t *testing.T) {
	s := litStream(t, `"hff"`)
	lit, err := parseNumericLiteral(s, true)
	require.Nil(t, err)
	assert.Equal(t, ast.SIntLit(255), lit)
}

func TestNumericLiteralBasedSignRejected(t *testing.T) {
	s := litStream(t, `"b-1"`)
	_, err := parseNumericLiteral(s, true)
	require.NotNil(t, err)
	assert.Equal(t, KindOther, err.Kind)
}
