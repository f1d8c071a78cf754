package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigenform/firrtl-go/ast"
)

func exprStream(t *testing.T, src string, ctxIds ...string) *TokenStream {
	t.Helper()
	s := newTestStream(t, src)
	for _, id := range ctxIds {
		s.AddModuleContext(id)
	}
	return s
}

func TestParseExprBareReference(t *testing.T) {
	s := exprStream(t, "a\n", "a")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "a", e.String())
}

func TestParseExprSubfieldAndSubindex(t *testing.T) {
	s := exprStream(t, "io.a[0].b\n", "io")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "io.a[0].b", e.String())
}

func TestParseExprDynamicIndex(t *testing.T) {
	s := exprStream(t, "v[idx]\n", "v", "idx")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "v[idx]", e.String())
}

func TestParseExprPrimOp2(t *testing.T) {
	s := exprStream(t, "add(a, b)\n", "a", "b")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "add(a, b)", e.String())
}

func TestParseExprPrimOp1(t *testing.T) {
	s := exprStream(t, "not(a)\n", "a")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "not(a)", e.String())
}

func TestParseExprPrimOp1Int(t *testing.T) {
	s := exprStream(t, "pad(a, 4)\n", "a")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "pad(a, 4)", e.String())
}

func TestParseExprPrimOp1Int2Bits(t *testing.T) {
	s := exprStream(t, "bits(a, 3, 0)\n", "a")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "bits(a, 3, 0)", e.String())
}

func TestParseExprMux(t *testing.T) {
	s := exprStream(t, "mux(a, b, c)\n", "a", "b", "c")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "mux(a, b, c)", e.String())
}

func TestParseExprConstUInt(t *testing.T) {
	s := exprStream(t, `UInt<2>("b11")`+"\n")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, ast.ExprConst, e.Kind)
	assert.Equal(t, "UInt<2>(3)", e.String())
}

func TestParseExprConstSIntNoWidth(t *testing.T) {
	s := exprStream(t, "SInt(4)\n")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "SInt(4)", e.String())
}

func TestParseExprReadOfProbe(t *testing.T) {
	s := exprStream(t, "read(probe(a))\n", "a")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, ast.ExprRead, e.Kind)
}

func TestParseExprNestedPrimOp(t *testing.T) {
	s := exprStream(t, "add(sub(a, b), not(c))\n", "a", "b", "c")
	e, err := parseExpr(s)
	require.Nil(t, err)
	assert.Equal(t, "add(sub(a, b), not(c))", e.String())
}

func TestCheckReferenceUsesModuleContext(t *testing.T) {
	s := exprStream(t, "wire\n", "wire")
	assert.True(t, checkReference(s))
}

func TestCheckReferenceDetectsIsInvalid(t *testing.T) {
	s := exprStream(t, "a is invalid\n")
	assert.True(t, checkReference(s))
}
