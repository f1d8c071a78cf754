package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(t *testing.T, src string) *TokenStream {
	t.Helper()
	lines, err := tokenizeAll("t.fir", src)
	require.Nil(t, err)
	return newTokenStream("t.fir", lines)
}

func TestStreamAdvanceWrapsLines(t *testing.T) {
	s := newTestStream(t, "wire a : UInt<1>\nwire b : UInt<1>\n")
	for i := 0; i < 7; i++ {
		s.AdvanceToken()
	}
	id, err := s.GetIdentKw()
	require.Nil(t, err)
	assert.Equal(t, "wire", id)
	assert.True(t, s.AtStartOfLine())
}

func TestStreamIndentLevelAndEOF(t *testing.T) {
	s := newTestStream(t, "  wire a : UInt<1>\n")
	assert.Equal(t, 2, s.IndentLevel())
	for !s.atEOF() {
		s.AdvanceToken()
	}
	assert.Equal(t, 0, s.IndentLevel())
}

func TestStreamPeekNNeverCrossesLine(t *testing.T) {
	s := newTestStream(t, "a b\nc d\n")
	tok := s.PeekN(5)
	assert.Equal(t, "", tok.Literal)
}

func TestStreamModuleContext(t *testing.T) {
	s := newTestStream(t, "wire connect : UInt<1>\n")
	assert.False(t, s.CheckModuleContext("connect"))
	s.AddModuleContext("connect")
	assert.True(t, s.CheckModuleContext("connect"))
	s.ClearModuleContext()
	assert.False(t, s.CheckModuleContext("connect"))
}

func TestStreamMatchers(t *testing.T) {
	s := newTestStream(t, "circuit Top :\n")
	require.Nil(t, s.MatchIdentKw("circuit"))
	s.AdvanceToken()
	_, err := s.GetIdentKw()
	require.Nil(t, err)
	s.AdvanceToken()
	require.Nil(t, s.MatchPunc(":"))
}
