package parser

import (
	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/config"
	"github.com/eigenform/firrtl-go/token"
)

// Parse tokenizes and parses a complete FIRRTL source file into a
// Circuit with the default configuration; ParseWithConfig is the
// same entry point with an explicit configuration (spec §4.4
// "Top level"): an optional `FIRRTL version ...` line, then
// `circuit <id> :`, then a sequence of module/extmodule/intmodule
// definitions each indented strictly more than the circuit header.
func Parse(filename, source string) (*ast.Circuit, *ParseError) {
	return ParseWithConfig(filename, source, config.DefaultConfig())
}

// ParseWithConfig is Parse with an explicit configuration, used by the
// firrtl package to thread through parser behavior knobs (currently
// the module-context growth cap).
func ParseWithConfig(filename, source string, cfg *config.Config) (*ast.Circuit, *ParseError) {
	lines, err := tokenizeAll(filename, source)
	if err != nil {
		return nil, err
	}
	s := newTokenStream(filename, lines)
	if cfg != nil {
		s.SetModuleContextLimit(cfg.Parser.ModuleContextLimit)
	}
	return parseCircuit(s)
}

func parseCircuit(s *TokenStream) (*ast.Circuit, *ParseError) {
	if tok := s.Token(); tok.Type == token.IdentKw && tok.Literal == "FIRRTL" {
		s.AdvanceLine()
	}

	if err := s.MatchIdentKw("circuit"); err != nil {
		return nil, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return nil, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc(":"); err != nil {
		return nil, err
	}
	s.AdvanceToken()

	if !s.atEOF() && s.IndentLevel() == 0 {
		tok := s.Token()
		return nil, errOther(tok.Pos, tok.Span, "circuit body must be indented")
	}

	circuit := ast.NewCircuit(id)
	for !s.atEOF() && s.IndentLevel() > 0 {
		s.ClearModuleContext()
		tok := s.Token()
		kw, err := s.GetIdentKw()
		if err != nil {
			return nil, err
		}
		switch kw {
		case "module":
			m, err := parseModule(s)
			if err != nil {
				return nil, err
			}
			circuit.AddModule(m)
		case "extmodule":
			m, err := parseExtModule(s)
			if err != nil {
				return nil, err
			}
			circuit.AddExtModule(m)
		case "intmodule":
			m, err := parseIntModule(s)
			if err != nil {
				return nil, err
			}
			circuit.AddIntModule(m)
		default:
			return nil, errOther(tok.Pos, tok.Span, "expected module, extmodule, or intmodule, found "+kw)
		}
	}
	return circuit, nil
}

// parseModuleHeader parses `<kw> <id> :` and returns the declared id
// and the body's required minimum indentation (the header's own
// indentation — the body must be strictly greater).
func parseModuleHeader(s *TokenStream, kw string) (string, int, *ParseError) {
	headerIndent := s.IndentLevel()
	if err := s.MatchIdentKw(kw); err != nil {
		return "", 0, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return "", 0, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc(":"); err != nil {
		return "", 0, err
	}
	s.AdvanceToken()
	return id, headerIndent, nil
}

func parseModule(s *TokenStream) (*ast.Module, *ParseError) {
	id, headerIndent, err := parseModuleHeader(s, "module")
	if err != nil {
		return nil, err
	}
	ports, err := parsePortlist(s)
	if err != nil {
		return nil, err
	}
	if s.atEOF() || s.IndentLevel() <= headerIndent {
		return ast.NewModule(id, ports, nil), nil
	}
	stmts, err := parseStatementsBlock(s)
	if err != nil {
		return nil, err
	}
	return ast.NewModule(id, ports, stmts), nil
}

func parseIntModule(s *TokenStream) (*ast.IntModule, *ParseError) {
	id, headerIndent, err := parseModuleHeader(s, "intmodule")
	if err != nil {
		return nil, err
	}
	ports, err := parsePortlist(s)
	if err != nil {
		return nil, err
	}

	if err := s.MatchIdentKw("intrinsic"); err != nil {
		return nil, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("="); err != nil {
		return nil, err
	}
	s.AdvanceToken()
	intrinsicID, err := s.GetIdentKw()
	if err != nil {
		return nil, err
	}
	s.AdvanceToken()

	m := ast.NewIntModule(id, ports, intrinsicID)
	for !s.atEOF() && s.IndentLevel() > headerIndent {
		p, err := parseParameter(s)
		if err != nil {
			return nil, err
		}
		m.Parameters = append(m.Parameters, p)
	}
	return m, nil
}

// parseExtModule parses an `extmodule` body: ports, then an
// interleaved sequence of `parameter`, `defname`, and `ref`
// declarations in any order (original_source notes the spec gives
// these a definite order, but real corpora do not honor it).
func parseExtModule(s *TokenStream) (*ast.ExtModule, *ParseError) {
	id, headerIndent, err := parseModuleHeader(s, "extmodule")
	if err != nil {
		return nil, err
	}
	ports, err := parsePortlist(s)
	if err != nil {
		return nil, err
	}

	m := ast.NewExtModule(id, ports)
	for !s.atEOF() && s.IndentLevel() > headerIndent {
		tok := s.Token()
		if tok.Type != token.IdentKw {
			return nil, errOther(tok.Pos, tok.Span, "expected parameter, defname, or ref, found "+tok.String())
		}
		switch tok.Literal {
		case "parameter":
			p, err := parseParameter(s)
			if err != nil {
				return nil, err
			}
			m.Parameters = append(m.Parameters, p)
		case "defname":
			name, err := parseDefname(s)
			if err != nil {
				return nil, err
			}
			m.Defname = name
			m.HasDefname = true
		case "ref":
			r, err := parseRefDecl(s)
			if err != nil {
				return nil, err
			}
			m.Refs = append(m.Refs, r)
		default:
			return nil, errOther(tok.Pos, tok.Span, "expected parameter, defname, or ref, found "+tok.Literal)
		}
	}
	return m, nil
}

func parseDefname(s *TokenStream) (string, *ParseError) {
	if err := s.MatchIdentKw("defname"); err != nil {
		return "", err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("="); err != nil {
		return "", err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return "", err
	}
	s.AdvanceToken()
	return id, nil
}

// parseRefDecl parses `ref <id> : <Type>`, fully typed — unlike
// original_source, which stubs this as a skip-to-end-of-line FIXME.
func parseRefDecl(s *TokenStream) (ast.RefDecl, *ParseError) {
	if err := s.MatchIdentKw("ref"); err != nil {
		return ast.RefDecl{}, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.RefDecl{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc(":"); err != nil {
		return ast.RefDecl{}, err
	}
	s.AdvanceToken()
	ty, err := parseType(s)
	if err != nil {
		return ast.RefDecl{}, err
	}
	return ast.RefDecl{ID: id, Type: ty}, nil
}

// parseParameter tries each literal accessor in turn, matching
// original_source's priority order: int, sint, float, string, raw
// string.
func parseParameter(s *TokenStream) (ast.Parameter, *ParseError) {
	if err := s.MatchIdentKw("parameter"); err != nil {
		return ast.Parameter{}, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.Parameter{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("="); err != nil {
		return ast.Parameter{}, err
	}
	s.AdvanceToken()

	tok := s.Token()
	if text, err := s.GetLitInt(); err == nil {
		s.AdvanceToken()
		return ast.Parameter{ID: id, Value: ast.ParamValue{Kind: ast.ParamInt, Text: text}}, nil
	}
	if text, err := s.GetLitSInt(); err == nil {
		s.AdvanceToken()
		return ast.Parameter{ID: id, Value: ast.ParamValue{Kind: ast.ParamSInt, Text: text}}, nil
	}
	if text, err := s.GetLitFloat(); err == nil {
		s.AdvanceToken()
		return ast.Parameter{ID: id, Value: ast.ParamValue{Kind: ast.ParamFloat, Text: text}}, nil
	}
	if text, err := s.GetLitStr(); err == nil {
		s.AdvanceToken()
		return ast.Parameter{ID: id, Value: ast.ParamValue{Kind: ast.ParamString, Text: text}}, nil
	}
	if text, err := s.GetLitRawStr(); err == nil {
		s.AdvanceToken()
		return ast.Parameter{ID: id, Value: ast.ParamValue{Kind: ast.ParamRawString, Text: text}}, nil
	}
	return ast.Parameter{}, errOther(tok.Pos, tok.Span, "expected a parameter literal, found "+tok.String())
}

// checkPort reports whether the cursor starts a port declaration: a
// 4-token lookahead of IdentKw("input"|"output"), IdentKw(_), ":",
// and a type-starting token.
func checkPort(s *TokenStream) bool {
	tok := s.Token()
	if tok.Type != token.IdentKw || (tok.Literal != "input" && tok.Literal != "output") {
		return false
	}
	if s.PeekN(1).Type != token.IdentKw {
		return false
	}
	if s.PeekN(2).Type != token.Colon {
		return false
	}
	next := s.PeekN(3).Type
	return next == token.IdentKw || next == token.LBrace
}

func parsePort(s *TokenStream) (ast.PortDecl, *ParseError) {
	tok := s.Token()
	dir := ast.Input
	switch tok.Literal {
	case "input":
		dir = ast.Input
	case "output":
		dir = ast.Output
	default:
		return ast.PortDecl{}, errOther(tok.Pos, tok.Span, "expected 'input' or 'output', found "+tok.Literal)
	}
	s.AdvanceToken()

	id, err := s.GetIdentKw()
	if err != nil {
		return ast.PortDecl{}, err
	}
	s.AddModuleContext(id)
	s.AdvanceToken()

	if err := s.MatchPunc(":"); err != nil {
		return ast.PortDecl{}, err
	}
	s.AdvanceToken()

	ty, err := parseType(s)
	if err != nil {
		return ast.PortDecl{}, err
	}
	return ast.NewPortDecl(id, dir, ty), nil
}

func parsePortlist(s *TokenStream) ([]ast.PortDecl, *ParseError) {
	bodyIndent := s.IndentLevel()
	var ports []ast.PortDecl
	for {
		if s.atEOF() || s.IndentLevel() < bodyIndent || !checkPort(s) {
			break
		}
		p, err := parsePort(s)
		if err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	return ports, nil
}
