package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigenform/firrtl-go/ast"
)

// TestParseMinimalCircuit is spec scenario 1.
func TestParseMinimalCircuit(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    input a : UInt<1>\n" +
		"    output b : UInt<1>\n" +
		"    connect b, a\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	assert.Equal(t, "Top", c.ID)
	require.Len(t, c.Modules, 1)

	m := c.Modules[0]
	assert.Equal(t, "Top", m.ID)
	require.Len(t, m.Ports, 2)
	assert.Equal(t, ast.Input, m.Ports[0].Direction)
	assert.Equal(t, "a", m.Ports[0].ID)
	assert.Equal(t, ast.Output, m.Ports[1].Direction)
	assert.Equal(t, "b", m.Ports[1].ID)

	require.Len(t, m.Statements, 1)
	st := m.Statements[0]
	assert.Equal(t, ast.StmtConnect, st.Kind)
	assert.Equal(t, "b", st.ConnLHS.String())
	assert.Equal(t, "a", st.ConnRHS.String())
}

// TestParsePrimopNesting is spec scenario 2.
func TestParsePrimopNesting(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    input a : UInt<1>\n" +
		"    input b : UInt<1>\n" +
		"    node c = add(a, mul(b, UInt<2>(3)))\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	st := c.Modules[0].Statements[0]
	assert.Equal(t, ast.StmtNode, st.Kind)
	assert.Equal(t, "c", st.NodeID)
	assert.Equal(t, "add(a, mul(b, UInt<2>(3)))", st.NodeExpr.String())
}

// TestParseWhenElseSingleLine is spec scenario 3.
func TestParseWhenElseSingleLine(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    input cond : UInt<1>\n" +
		"    input a : UInt<1>\n" +
		"    input b : UInt<1>\n" +
		"    input c : UInt<1>\n" +
		"    when cond : connect a, b else : connect a, c\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	st := c.Modules[0].Statements[0]
	assert.Equal(t, ast.StmtWhen, st.Kind)
	assert.Equal(t, "cond", st.WhenCond.String())
	require.Len(t, st.WhenBlock, 1)
	require.Len(t, st.ElseBlock, 1)
	assert.Equal(t, ast.StmtConnect, st.WhenBlock[0].Kind)
	assert.Equal(t, ast.StmtConnect, st.ElseBlock[0].Kind)
	assert.Equal(t, "c", st.ElseBlock[0].ConnRHS.String())
}

// TestParseBundleWithFlip is spec scenario 4.
func TestParseBundleWithFlip(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    wire x : {flip a : UInt<1>, b : {c : UInt<2>}}\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	st := c.Modules[0].Statements[0]
	assert.Equal(t, ast.StmtWire, st.Kind)
	assert.Equal(t, "x", st.WireID)
	assert.Equal(t, "{ flip a : UInt<1>, b : { c : UInt<2> } }", st.WireType.String())
}

// TestParseLegacyAssignment is spec scenario 5.
func TestParseLegacyAssignment(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    wire w : UInt<1>\n" +
		"    w <= UInt<1>(0)\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	require.Len(t, c.Modules[0].Statements, 2)
	st := c.Modules[0].Statements[1]
	assert.Equal(t, ast.StmtConnect, st.Kind)
	assert.Equal(t, "w", st.ConnLHS.String())
	assert.Equal(t, "UInt<1>(0)", st.ConnRHS.String())
}

// TestParseMemBlockScenario is spec scenario 6.
func TestParseMemBlockScenario(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    mem m :\n" +
		"      data-type => UInt<8>\n" +
		"      depth => 4\n" +
		"      read-latency => 1\n" +
		"      write-latency => 1\n" +
		"      read-under-write => old\n" +
		"      reader => r1 r2\n" +
		"      writer => w1\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	st := c.Modules[0].Statements[0]
	require.Equal(t, ast.StmtMem, st.Kind)
	require.NotNil(t, st.Mem)
	assert.Equal(t, []string{"r1", "r2"}, st.Mem.Readers)
	assert.Equal(t, []string{"w1"}, st.Mem.Writers)
	assert.Empty(t, st.Mem.ReadWriters)
}

// TestKeywordIdentifierAmbiguity exercises the §8 testable property: a
// wire named after a statement keyword is resolved by module context,
// not by its spelling.
func TestKeywordIdentifierAmbiguity(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    wire connect : UInt<1>\n" +
		"    connect <= UInt<1>(0)\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	require.Len(t, c.Modules[0].Statements, 2)
	st := c.Modules[0].Statements[1]
	assert.Equal(t, ast.StmtConnect, st.Kind)
	assert.Equal(t, "connect", st.ConnLHS.String())
}

func TestParseExtModuleWithParameterDefnameAndRef(t *testing.T) {
	src := "circuit Top :\n" +
		"  extmodule BB :\n" +
		"    input a : UInt<1>\n" +
		"    defname = BlackBox\n" +
		"    parameter WIDTH = 4\n" +
		"    ref r : Clock\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	require.Len(t, c.ExtModules, 1)
	m := c.ExtModules[0]
	assert.Equal(t, "BB", m.ID)
	assert.True(t, m.HasDefname)
	assert.Equal(t, "BlackBox", m.Defname)
	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "WIDTH", m.Parameters[0].ID)
	assert.Equal(t, "4", m.Parameters[0].Value.Text)
	require.Len(t, m.Refs, 1)
	assert.Equal(t, "r", m.Refs[0].ID)
	assert.Equal(t, "Clock", m.Refs[0].Type.String())
}

func TestParseIntModule(t *testing.T) {
	src := "circuit Top :\n" +
		"  intmodule IM :\n" +
		"    output y : UInt<1>\n" +
		"    intrinsic = circt_some_intrinsic\n" +
		"    parameter X = 1\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	require.Len(t, c.IntModules, 1)
	m := c.IntModules[0]
	assert.Equal(t, "circt_some_intrinsic", m.IntrinsicID)
	require.Len(t, m.Parameters, 1)
}

func TestParseIndentationBoundaryEndsModuleBody(t *testing.T) {
	src := "circuit Top :\n" +
		"  module A :\n" +
		"    wire a : UInt<1>\n" +
		"  module B :\n" +
		"    wire b : UInt<1>\n"

	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	require.Len(t, c.Modules, 2)
	assert.Len(t, c.Modules[0].Statements, 1)
	assert.Len(t, c.Modules[1].Statements, 1)
}

func TestParseRejectsMissingCircuitHeader(t *testing.T) {
	_, err := Parse("t.fir", "module Top :\n  input a : UInt<1>\n")
	require.NotNil(t, err)
}

func TestParseVersionLineIsSkipped(t *testing.T) {
	src := "FIRRTL version 4.0.0\n" +
		"circuit Top :\n" +
		"  module Top :\n" +
		"    skip\n"
	c, err := Parse("t.fir", src)
	require.Nil(t, err)
	assert.Equal(t, "Top", c.ID)
}

func TestParseRoundTripDump(t *testing.T) {
	src := "circuit Top :\n" +
		"  module Top :\n" +
		"    input a : UInt<1>\n" +
		"    output b : UInt<1>\n" +
		"    connect b, a\n"
	c, err := Parse("t.fir", src)
	require.Nil(t, err)

	dumped := c.Dump()
	c2, err2 := Parse("t.fir", dumped)
	require.Nil(t, err2)
	assert.Equal(t, c.Dump(), c2.Dump())
}
