package parser

import (
	"strconv"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/token"
)

// checkReference reports whether the cursor starts a reference
// statement (spec §4.4 point 1): an identifier immediately followed by
// "." or "[", by "<=" or "<-", by the pair "is invalid", or already
// present in the module context.
func checkReference(s *TokenStream) bool {
	tok := s.Token()
	if tok.Type != token.IdentKw {
		return false
	}
	next := s.PeekN(1)
	switch next.Type {
	case token.Period, token.LBracket, token.LessEqual, token.LessMinus:
		return true
	}
	if next.Type == token.IdentKw && next.Literal == "is" {
		if nn := s.PeekN(2); nn.Type == token.IdentKw && nn.Literal == "invalid" {
			return true
		}
	}
	return s.CheckModuleContext(tok.Literal)
}

func checkMuxExpr(s *TokenStream) bool {
	tok := s.Token()
	return tok.Type == token.IdentKw && tok.Literal == "mux" && s.PeekN(1).Type == token.LParen
}

func checkReadExpr(s *TokenStream) bool {
	tok := s.Token()
	return tok.Type == token.IdentKw && tok.Literal == "read" && s.PeekN(1).Type == token.LParen
}

func checkConstExpr(s *TokenStream) bool {
	tok := s.Token()
	if tok.Type != token.IdentKw || (tok.Literal != "UInt" && tok.Literal != "SInt") {
		return false
	}
	n := 1
	if s.PeekN(n).Type == token.Less {
		n++
		if s.PeekN(n).Type == token.LiteralInt {
			n++
		}
		if s.PeekN(n).Type == token.Greater {
			n++
		}
	}
	return s.PeekN(n).Type == token.LParen
}

func checkPrimOpExpr(s *TokenStream) bool {
	tok := s.Token()
	if tok.Type != token.IdentKw {
		return false
	}
	if _, ok := ast.PrimOp2FromName(tok.Literal); ok {
		return s.PeekN(1).Type == token.LParen
	}
	if _, ok := ast.PrimOp1FromName(tok.Literal); ok {
		return s.PeekN(1).Type == token.LParen
	}
	if _, ok := ast.PrimOp1IntFromName(tok.Literal); ok {
		return s.PeekN(1).Type == token.LParen
	}
	if _, ok := ast.PrimOp1Int2FromName(tok.Literal); ok {
		return s.PeekN(1).Type == token.LParen
	}
	return false
}

// parseExpr disambiguates by one-token lookahead per spec §4.4.
func parseExpr(s *TokenStream) (ast.Expr, *ParseError) {
	if s.RemainingOnLine() == 1 {
		tok := s.Token()
		name, err := s.GetIdentKw()
		if err != nil {
			return ast.Expr{}, err
		}
		s.AdvanceToken()
		_ = tok
		return ast.RefExprAsExpr(ast.StaticRef(ast.LeafRef(name))), nil
	}

	switch {
	case checkPrimOpExpr(s):
		return parsePrimOpExpr(s)
	case checkConstExpr(s):
		return parseConstExpr(s)
	case checkMuxExpr(s):
		return parseMuxExpr(s)
	case checkReadExpr(s):
		return parseReadExpr(s)
	default:
		ref, err := parseReference(s)
		if err != nil {
			return ast.Expr{}, err
		}
		return ast.RefExprAsExpr(ref), nil
	}
}

func parseMuxExpr(s *TokenStream) (ast.Expr, *ParseError) {
	if err := s.MatchIdentKw("mux"); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()

	cond, err := parseExpr(s)
	if err != nil {
		return ast.Expr{}, err
	}
	then, err := parseExpr(s)
	if err != nil {
		return ast.Expr{}, err
	}
	els, err := parseExpr(s)
	if err != nil {
		return ast.Expr{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()
	return ast.MuxExpr(cond, then, els), nil
}

func parseReadExpr(s *TokenStream) (ast.Expr, *ParseError) {
	if err := s.MatchIdentKw("read"); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()

	re, err := parseRefExpr(s)
	if err != nil {
		return ast.Expr{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()
	return ast.ReadExpr(re), nil
}

// parseRefExpr parses a bare static reference or one wrapped in
// probe(...)/rwprobe(...).
func parseRefExpr(s *TokenStream) (ast.RefExpr, *ParseError) {
	tok := s.Token()
	if tok.Type == token.IdentKw && (tok.Literal == "probe" || tok.Literal == "rwprobe") && s.PeekN(1).Type == token.LParen {
		kind := ast.RefExprProbe
		if tok.Literal == "rwprobe" {
			kind = ast.RefExprRWProbe
		}
		s.AdvanceToken() // keyword
		s.AdvanceToken() // "("
		sref, err := parseStaticReference(s)
		if err != nil {
			return ast.RefExpr{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.RefExpr{}, err
		}
		s.AdvanceToken()
		return ast.RefExpr{Kind: kind, Ref: sref}, nil
	}

	sref, err := parseStaticReference(s)
	if err != nil {
		return ast.RefExpr{}, err
	}
	return ast.RefExpr{Kind: ast.RefExprStatic, Ref: sref}, nil
}

func parsePrimOpExpr(s *TokenStream) (ast.Expr, *ParseError) {
	tok := s.Token()
	name := tok.Literal
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()

	switch {
	case isPrimOp2(name):
		op, _ := ast.PrimOp2FromName(name)
		e1, err := parseExpr(s)
		if err != nil {
			return ast.Expr{}, err
		}
		e2, err := parseExpr(s)
		if err != nil {
			return ast.Expr{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.Expr{}, err
		}
		s.AdvanceToken()
		return ast.PrimOp2Expr(op, e1, e2), nil

	case isPrimOp1Int2(name):
		op, _ := ast.PrimOp1Int2FromName(name)
		e, err := parseExpr(s)
		if err != nil {
			return ast.Expr{}, err
		}
		a, err := parseIntLiteralArg(s)
		if err != nil {
			return ast.Expr{}, err
		}
		b, err := parseIntLiteralArg(s)
		if err != nil {
			return ast.Expr{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.Expr{}, err
		}
		s.AdvanceToken()
		return ast.PrimOp1Int2Expr(op, e, a, b), nil

	case isPrimOp1Int(name):
		op, _ := ast.PrimOp1IntFromName(name)
		e, err := parseExpr(s)
		if err != nil {
			return ast.Expr{}, err
		}
		n, err := parseIntLiteralArg(s)
		if err != nil {
			return ast.Expr{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.Expr{}, err
		}
		s.AdvanceToken()
		return ast.PrimOp1IntExpr(op, e, n), nil

	case isPrimOp1(name):
		op, _ := ast.PrimOp1FromName(name)
		e, err := parseExpr(s)
		if err != nil {
			return ast.Expr{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.Expr{}, err
		}
		s.AdvanceToken()
		return ast.PrimOp1Expr(op, e), nil

	default:
		return ast.Expr{}, errOther(tok.Pos, tok.Span, "not a primitive operation: "+name)
	}
}

func isPrimOp2(name string) bool     { _, ok := ast.PrimOp2FromName(name); return ok }
func isPrimOp1(name string) bool     { _, ok := ast.PrimOp1FromName(name); return ok }
func isPrimOp1Int(name string) bool  { _, ok := ast.PrimOp1IntFromName(name); return ok }
func isPrimOp1Int2(name string) bool { _, ok := ast.PrimOp1Int2FromName(name); return ok }

func parseIntLiteralArg(s *TokenStream) (int, *ParseError) {
	tok := s.Token()
	text, err := s.GetLitInt()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(text)
	if convErr != nil {
		return 0, errOther(tok.Pos, tok.Span, "malformed integer argument: "+text)
	}
	s.AdvanceToken()
	return n, nil
}

func parseConstExpr(s *TokenStream) (ast.Expr, *ParseError) {
	tok := s.Token()
	name, err := s.GetIdentKw()
	if err != nil {
		return ast.Expr{}, err
	}
	signed := name == "SInt"
	kind := ast.GroundUInt
	if signed {
		kind = ast.GroundSInt
	}
	s.AdvanceToken()

	width, err := parseOptionalWidth(s)
	if err != nil {
		return ast.Expr{}, err
	}

	if err := s.MatchPunc("("); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()

	lit, err := parseNumericLiteral(s, signed)
	if err != nil {
		return ast.Expr{}, err
	}

	if err := s.MatchPunc(")"); err != nil {
		return ast.Expr{}, err
	}
	s.AdvanceToken()

	_ = tok
	return ast.ConstExpr(ast.GroundT(kind, width), lit), nil
}

// parseStaticReference parses an identifier followed by zero or more
// ".field" or "[intLit]" postfixes. A "[" whose next token is not an
// integer literal is left for the enclosing Reference to consume as a
// dynamic-index suffix.
func parseStaticReference(s *TokenStream) (ast.StaticReference, *ParseError) {
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.StaticReference{}, err
	}
	s.AdvanceToken()
	ref := ast.LeafRef(id)

	for {
		switch s.Token().Type {
		case token.Period:
			s.AdvanceToken()
			if text, err := s.GetLitInt(); err == nil {
				s.AdvanceToken()
				ref = ast.SubfieldRef(ref, text)
				continue
			}
			name, err := s.GetIdentKw()
			if err != nil {
				return ast.StaticReference{}, err
			}
			s.AdvanceToken()
			ref = ast.SubfieldRef(ref, name)

		case token.LBracket:
			if s.PeekN(1).Type != token.LiteralInt {
				return ref, nil
			}
			s.AdvanceToken() // "["
			text, err := s.GetLitInt()
			if err != nil {
				return ast.StaticReference{}, err
			}
			idx, _ := strconv.Atoi(text)
			s.AdvanceToken()
			if err := s.MatchPunc("]"); err != nil {
				return ast.StaticReference{}, err
			}
			s.AdvanceToken()
			ref = ast.SubindexRef(ref, idx)

		default:
			return ref, nil
		}
	}
}

// parseReference parses a StaticReference followed optionally by one
// "[expr]" dynamic-index suffix.
func parseReference(s *TokenStream) (ast.Reference, *ParseError) {
	sref, err := parseStaticReference(s)
	if err != nil {
		return ast.Reference{}, err
	}
	if s.Token().Type == token.LBracket {
		s.AdvanceToken()
		idx, err := parseExpr(s)
		if err != nil {
			return ast.Reference{}, err
		}
		if err := s.MatchPunc("]"); err != nil {
			return ast.Reference{}, err
		}
		s.AdvanceToken()
		return ast.DynamicIndexRef(sref, idx), nil
	}
	return ast.StaticRef(sref), nil
}
