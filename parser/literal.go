package parser

import (
	"strconv"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/token"
)

// parseNumericLiteral consumes one numeric-literal token and resolves
// it to an ast.LiteralNumeric. signed selects which enclosing
// constructor (UInt vs SInt) is asking, since a based literal
// ("h..."/"o..."/"b...") never carries its own sign — sign comes
// entirely from the constructor, never from the literal text (spec
// §8 "Numeric literal forms").
func parseNumericLiteral(s *TokenStream, signed bool) (ast.LiteralNumeric, *ParseError) {
	tok := s.Token()
	switch tok.Type {
	case token.LiteralInt:
		v, err := strconv.ParseUint(tok.Literal, 10, 64)
		if err != nil {
			return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "malformed integer literal: "+tok.Literal)
		}
		s.AdvanceToken()
		if signed {
			return ast.SIntLit(int64(v)), nil
		}
		return ast.UIntLit(v), nil

	case token.LiteralSInt:
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "malformed signed integer literal: "+tok.Literal)
		}
		s.AdvanceToken()
		if signed {
			return ast.SIntLit(v), nil
		}
		if v < 0 {
			return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "negative literal not permitted in UInt context")
		}
		return ast.UIntLit(uint64(v)), nil

	case token.LiteralString:
		lit, perr := parseBasedLiteral(tok, signed)
		if perr != nil {
			return ast.LiteralNumeric{}, perr
		}
		s.AdvanceToken()
		return lit, nil

	default:
		return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span,
			"expected a numeric literal, found "+tok.String())
	}
}

// parseBasedLiteral decodes a based literal embedded in a quoted
// string token: "h..." hex, "o..." octal, "b..." binary.
func parseBasedLiteral(tok token.Token, signed bool) (ast.LiteralNumeric, *ParseError) {
	inner := tok.Literal
	if len(inner) >= 2 && inner[0] == '"' && inner[len(inner)-1] == '"' {
		inner = inner[1 : len(inner)-1]
	}
	if len(inner) < 2 {
		return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "malformed based literal: "+tok.Literal)
	}

	prefix := inner[0]
	digits := inner[1:]
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span,
			"based literal must not carry an explicit sign: "+tok.Literal)
	}

	var base int
	switch prefix {
	case 'h':
		base = 16
	case 'o':
		base = 8
	case 'b':
		base = 2
	default:
		return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "unknown based-literal prefix: "+string(prefix))
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return ast.LiteralNumeric{}, errOther(tok.Pos, tok.Span, "malformed based literal: "+tok.Literal)
	}
	if signed {
		return ast.SIntLit(int64(v)), nil
	}
	return ast.UIntLit(v), nil
}
