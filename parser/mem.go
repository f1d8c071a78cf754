package parser

import (
	"strconv"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/token"
)

// parseMemStmt parses a `mem` declaration block (spec §4.4.1). Fields
// are order-independent; all five scalars must appear exactly once.
func parseMemStmt(s *TokenStream) (ast.Statement, *ParseError) {
	headerTok := s.Token()
	blockIndent := s.IndentLevel()

	if err := s.MatchIdentKw("mem"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.Statement{}, err
	}
	s.AddModuleContext(id)
	s.AdvanceToken()
	if err := s.MatchPunc(":"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()

	mem := &ast.MemDecl{ID: id}
	var hasType, hasDepth, hasReadLat, hasWriteLat, hasRUW bool
	seen := map[string]bool{}

	for !s.atEOF() && s.IndentLevel() > blockIndent {
		tok := s.Token()
		if tok.Type != token.IdentKw {
			return ast.Statement{}, errOther(tok.Pos, tok.Span, "expected a mem field keyword, found "+tok.String())
		}
		switch tok.Literal {
		case "data-type", "depth", "read-latency", "write-latency", "read-under-write":
			if seen[tok.Literal] {
				return ast.Statement{}, errOther(tok.Pos, tok.Span, "duplicate mem field: "+tok.Literal)
			}
			seen[tok.Literal] = true
		}

		switch tok.Literal {
		case "data-type":
			s.AdvanceToken()
			if err := s.MatchPunc("=>"); err != nil {
				return ast.Statement{}, err
			}
			s.AdvanceToken()
			ty, err := parseType(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.Type = ty
			hasType = true

		case "depth":
			n, err := parseMemIntField(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.Depth = n
			hasDepth = true

		case "read-latency":
			n, err := parseMemIntField(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.ReadLatency = n
			hasReadLat = true

		case "write-latency":
			n, err := parseMemIntField(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.WriteLatency = n
			hasWriteLat = true

		case "read-under-write":
			s.AdvanceToken()
			if err := s.MatchPunc("=>"); err != nil {
				return ast.Statement{}, err
			}
			s.AdvanceToken()
			kwTok := s.Token()
			kw, err := s.GetIdentKw()
			if err != nil {
				return ast.Statement{}, err
			}
			ruw, ok := ast.ReadUnderWriteFromString(kw)
			if !ok {
				return ast.Statement{}, errOther(kwTok.Pos, kwTok.Span, "unexpected read-under-write keyword: "+kw)
			}
			s.AdvanceToken()
			mem.ReadUnderWrite = ruw
			hasRUW = true

		case "reader":
			ids, err := parseMemPortIDs(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.Readers = append(mem.Readers, ids...)

		case "writer":
			ids, err := parseMemPortIDs(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.Writers = append(mem.Writers, ids...)

		case "readwriter":
			ids, err := parseMemPortIDs(s)
			if err != nil {
				return ast.Statement{}, err
			}
			mem.ReadWriters = append(mem.ReadWriters, ids...)

		default:
			return ast.Statement{}, errOther(tok.Pos, tok.Span, "unexpected mem field: "+tok.Literal)
		}
	}

	if !hasType {
		return ast.Statement{}, errMissingMemField(headerTok.Pos, headerTok.Span, "data-type")
	}
	if !hasDepth {
		return ast.Statement{}, errMissingMemField(headerTok.Pos, headerTok.Span, "depth")
	}
	if !hasReadLat {
		return ast.Statement{}, errMissingMemField(headerTok.Pos, headerTok.Span, "read-latency")
	}
	if !hasWriteLat {
		return ast.Statement{}, errMissingMemField(headerTok.Pos, headerTok.Span, "write-latency")
	}
	if !hasRUW {
		return ast.Statement{}, errMissingMemField(headerTok.Pos, headerTok.Span, "read-under-write")
	}

	return ast.Statement{Kind: ast.StmtMem, Mem: mem}, nil
}

// parseMemIntField parses `<kw> => <intLit>` for a single scalar mem
// field whose keyword was already confirmed as the current token.
func parseMemIntField(s *TokenStream) (int, *ParseError) {
	s.AdvanceToken()
	if err := s.MatchPunc("=>"); err != nil {
		return 0, err
	}
	s.AdvanceToken()
	tok := s.Token()
	text, err := s.GetLitInt()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(text)
	if convErr != nil {
		return 0, errOther(tok.Pos, tok.Span, "malformed integer field: "+text)
	}
	s.AdvanceToken()
	return n, nil
}

// parseMemPortIDs parses `<kw> => <id>+` for reader/writer/readwriter
// lines; a single line may declare more than one port id.
func parseMemPortIDs(s *TokenStream) ([]string, *ParseError) {
	s.AdvanceToken()
	if err := s.MatchPunc("=>"); err != nil {
		return nil, err
	}
	s.AdvanceToken()

	var ids []string
	for !s.AtStartOfLine() {
		id, err := s.GetIdentKw()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		s.AdvanceToken()
	}
	return ids, nil
}
