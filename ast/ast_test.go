package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eigenform/firrtl-go/ast"
)

func width(n int) *int { return &n }

func TestGroundTypeString(t *testing.T) {
	assert.Equal(t, "UInt<1>", ast.GroundT(ast.GroundUInt, width(1)).String())
	assert.Equal(t, "UInt", ast.GroundT(ast.GroundUInt, nil).String())
	assert.Equal(t, "Clock", ast.GroundT(ast.GroundClock, nil).String())
}

func TestVectorAndBundleString(t *testing.T) {
	v := ast.VectorT(ast.GroundT(ast.GroundUInt, width(1)), 4)
	assert.Equal(t, "UInt<1>[4]", v.String())

	b := ast.BundleT([]ast.BundleField{
		{Flip: true, ID: "a", Type: ast.GroundT(ast.GroundUInt, width(1))},
		{ID: "b", Type: ast.GroundT(ast.GroundSInt, width(2))},
	})
	assert.Equal(t, "{ flip a : UInt<1>, b : SInt<2> }", b.String())
}

func TestRefTypeString(t *testing.T) {
	r := ast.RefT(ast.RefRWProbe, ast.GroundT(ast.GroundClock, nil))
	assert.Equal(t, "RWProbe<Clock>", r.String())
}

func TestStaticReferenceString(t *testing.T) {
	leaf := ast.LeafRef("x")
	sub := ast.SubfieldRef(leaf, "a")
	idx := ast.SubindexRef(sub, 3)
	assert.Equal(t, "x.a[3]", idx.String())
}

func TestPrimOpRoundNames(t *testing.T) {
	assert.Equal(t, "neq", ast.Neq.String())
	assert.Equal(t, "dshr", ast.Dshr.String())
	op, ok := ast.PrimOp2FromName("neq")
	assert.True(t, ok)
	assert.Equal(t, ast.Neq, op)
}

func TestTypeNonePanics(t *testing.T) {
	assert.Panics(t, func() { _ = ast.NoneType.String() })
}

func TestCircuitDumpMinimal(t *testing.T) {
	c := ast.NewCircuit("Top")
	ports := []ast.PortDecl{
		ast.NewPortDecl("a", ast.Input, ast.GroundT(ast.GroundUInt, width(1))),
		ast.NewPortDecl("b", ast.Output, ast.GroundT(ast.GroundUInt, width(1))),
	}
	stmts := []ast.Statement{
		{
			Kind:    ast.StmtConnect,
			ConnLHS: ast.StaticRef(ast.LeafRef("b")),
			ConnRHS: ast.RefExprAsExpr(ast.StaticRef(ast.LeafRef("a"))),
		},
	}
	c.AddModule(ast.NewModule("Top", ports, stmts))

	want := "circuit Top :\n" +
		"  module Top :\n" +
		"    input a : UInt<1>\n" +
		"    output b : UInt<1>\n" +
		"    connect b a\n"
	assert.Equal(t, want, c.Dump())
}

func TestMemDeclDump(t *testing.T) {
	mem := &ast.MemDecl{
		ID:             "m",
		Type:           ast.GroundT(ast.GroundUInt, width(8)),
		Depth:          16,
		ReadLatency:    1,
		WriteLatency:   1,
		ReadUnderWrite: ast.RUWOld,
		Readers:        []string{"r1", "r2"},
		Writers:        []string{"w1"},
	}
	c := ast.NewCircuit("Top")
	c.AddModule(ast.NewModule("Top", nil, []ast.Statement{{Kind: ast.StmtMem, Mem: mem}}))
	out := c.Dump()
	assert.Contains(t, out, "mem m :\n")
	assert.Contains(t, out, "reader => r1\n")
	assert.Contains(t, out, "reader => r2\n")
	assert.Contains(t, out, "writer => w1\n")
	assert.Contains(t, out, "read-under-write => old\n")
}
