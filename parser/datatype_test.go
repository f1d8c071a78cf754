package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigenform/firrtl-go/ast"
)

func parseTypeFromSrc(t *testing.T, src string) ast.Type {
	t.Helper()
	s := newTestStream(t, src)
	ty, err := parseType(s)
	require.Nil(t, err, "src=%s", src)
	return ty
}

func TestParseGroundTypes(t *testing.T) {
	assert.Equal(t, "UInt<4>", parseTypeFromSrc(t, "UInt<4>\n").String())
	assert.Equal(t, "UInt", parseTypeFromSrc(t, "UInt\n").String())
	assert.Equal(t, "Clock", parseTypeFromSrc(t, "Clock\n").String())
}

func TestParseVectorType(t *testing.T) {
	assert.Equal(t, "UInt<1>[4]", parseTypeFromSrc(t, "UInt<1>[4]\n").String())
}

func TestParseBundleTypeWithFlipAndDigitField(t *testing.T) {
	ty := parseTypeFromSrc(t, "{flip a : UInt<1> 0 : UInt<2>}\n")
	assert.Equal(t, "{ flip a : UInt<1>, 0 : UInt<2> }", ty.String())
}

func TestParseConstQualifierDiscarded(t *testing.T) {
	assert.Equal(t, "UInt<1>", parseTypeFromSrc(t, "const UInt<1>\n").String())
}

func TestParseProbeType(t *testing.T) {
	assert.Equal(t, "Probe<Clock>", parseTypeFromSrc(t, "Probe<Clock>\n").String())
	assert.Equal(t, "RWProbe<UInt<1>>", parseTypeFromSrc(t, "RWProbe<UInt<1>>\n").String())
}

func TestParseBadGroundType(t *testing.T) {
	s := newTestStream(t, "Widget\n")
	_, err := parseType(s)
	require.NotNil(t, err)
	assert.Equal(t, KindBadGroundType, err.Kind)
}

func TestParseBundleRequiresAtLeastOneField(t *testing.T) {
	s := newTestStream(t, "{}\n")
	_, err := parseType(s)
	require.NotNil(t, err)
}
