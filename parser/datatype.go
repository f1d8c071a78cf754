package parser

import (
	"strconv"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/token"
)

var groundKindByName = map[string]ast.GroundKind{
	"Clock":      ast.GroundClock,
	"Reset":      ast.GroundReset,
	"AsyncReset": ast.GroundAsyncReset,
	"UInt":       ast.GroundUInt,
	"SInt":       ast.GroundSInt,
	"Analog":     ast.GroundAnalog,
}

func groundKindHasWidth(k ast.GroundKind) bool {
	return k == ast.GroundUInt || k == ast.GroundSInt || k == ast.GroundAnalog
}

// parseType implements the priority order in spec §4.4: Probe/RWProbe
// wrapper, optional discarded "const", bundle, ground type (with
// optional width), then an optional trailing vector suffix.
func parseType(s *TokenStream) (ast.Type, *ParseError) {
	if tok := s.Token(); tok.Type == token.IdentKw && (tok.Literal == "Probe" || tok.Literal == "RWProbe") {
		kind := ast.RefProbe
		if tok.Literal == "RWProbe" {
			kind = ast.RefRWProbe
		}
		s.AdvanceToken()
		if err := s.MatchPunc("<"); err != nil {
			return ast.Type{}, err
		}
		s.AdvanceToken()
		inner, err := parseType(s)
		if err != nil {
			return ast.Type{}, err
		}
		if err := s.MatchPunc(">"); err != nil {
			return ast.Type{}, err
		}
		s.AdvanceToken()
		return ast.RefT(kind, inner), nil
	}

	// An evolving-spec "const" qualifier is accepted and discarded.
	if tok := s.Token(); tok.Type == token.IdentKw && tok.Literal == "const" {
		s.AdvanceToken()
	}

	var base ast.Type
	if s.Token().Type == token.LBrace {
		bundle, err := parseBundle(s)
		if err != nil {
			return ast.Type{}, err
		}
		base = bundle
	} else {
		tok := s.Token()
		name, err := s.GetIdentKw()
		if err != nil {
			return ast.Type{}, err
		}
		kind, ok := groundKindByName[name]
		if !ok {
			return ast.Type{}, errBadGroundType(tok, name)
		}
		s.AdvanceToken()

		var width *int
		if groundKindHasWidth(kind) {
			w, err := parseOptionalWidth(s)
			if err != nil {
				return ast.Type{}, err
			}
			width = w
		}
		base = ast.GroundT(kind, width)
	}

	if s.Token().Type == token.LBracket {
		s.AdvanceToken()
		sizeTok := s.Token()
		sizeText, err := s.GetLitInt()
		if err != nil {
			return ast.Type{}, err
		}
		size, convErr := strconv.Atoi(sizeText)
		if convErr != nil || size < 0 {
			return ast.Type{}, errOther(sizeTok.Pos, sizeTok.Span, "vector size must be a non-negative integer")
		}
		s.AdvanceToken()
		if err := s.MatchPunc("]"); err != nil {
			return ast.Type{}, err
		}
		s.AdvanceToken()
		base = ast.VectorT(base, size)
	}

	return base, nil
}

// parseOptionalWidth parses an optional "<decimal>" width annotation.
func parseOptionalWidth(s *TokenStream) (*int, *ParseError) {
	if s.Token().Type != token.Less {
		return nil, nil
	}
	s.AdvanceToken()
	tok := s.Token()
	text, err := s.GetLitInt()
	if err != nil {
		return nil, err
	}
	w, convErr := strconv.Atoi(text)
	if convErr != nil {
		return nil, errOther(tok.Pos, tok.Span, "malformed width literal: "+text)
	}
	s.AdvanceToken()
	if err := s.MatchPunc(">"); err != nil {
		return nil, err
	}
	s.AdvanceToken()
	return &w, nil
}

// parseBundle parses "{" field ("," field)* "}" — commas are
// whitespace at the tokenizer level, so fields are simply adjacent.
// At least one field is required.
func parseBundle(s *TokenStream) (ast.Type, *ParseError) {
	if err := s.MatchPunc("{"); err != nil {
		return ast.Type{}, err
	}
	s.AdvanceToken()

	first, err := parseBundleField(s)
	if err != nil {
		return ast.Type{}, err
	}
	fields := []ast.BundleField{first}

	for {
		if s.Token().Type == token.RBrace {
			s.AdvanceToken()
			break
		}
		f, err := parseBundleField(s)
		if err != nil {
			return ast.Type{}, err
		}
		fields = append(fields, f)
	}
	return ast.BundleT(fields), nil
}

// parseBundleField parses an optional "flip" keyword, a field id (an
// integer literal or an identifier — digit-named fields are a
// documented spec wrinkle, tried first), ":", and a Type.
func parseBundleField(s *TokenStream) (ast.BundleField, *ParseError) {
	flip := false
	if tok := s.Token(); tok.Type == token.IdentKw && tok.Literal == "flip" {
		s.AdvanceToken()
		flip = true
	}

	var id string
	if text, err := s.GetLitInt(); err == nil {
		id = text
		s.AdvanceToken()
	} else if name, err := s.GetIdentKw(); err == nil {
		id = name
		s.AdvanceToken()
	} else {
		return ast.BundleField{}, err
	}

	if err := s.MatchPunc(":"); err != nil {
		return ast.BundleField{}, err
	}
	s.AdvanceToken()

	ty, err := parseType(s)
	if err != nil {
		return ast.BundleField{}, err
	}
	return ast.BundleField{Flip: flip, ID: id, Type: ty}, nil
}
