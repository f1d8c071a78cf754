package parser

import (
	"strconv"

	"github.com/eigenform/firrtl-go/ast"
	"github.com/eigenform/firrtl-go/token"
)

// parseStatementsBlock parses statements until indentation falls below
// the level of the first statement in the block.
func parseStatementsBlock(s *TokenStream) ([]ast.Statement, *ParseError) {
	blockIndent := s.IndentLevel()
	var stmts []ast.Statement
	for {
		if s.atEOF() || s.IndentLevel() < blockIndent {
			break
		}
		st, err := parseStatement(s)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	return stmts, nil
}

func parseStatement(s *TokenStream) (ast.Statement, *ParseError) {
	if checkReference(s) {
		return parseReferenceStmt(s)
	}

	tok := s.Token()
	kw, err := s.GetIdentKw()
	if err != nil {
		return ast.Statement{}, err
	}

	switch kw {
	case "wire":
		return parseWireStmt(s)
	case "reg":
		return parseRegStmt(s)
	case "mem":
		return parseMemStmt(s)
	case "inst":
		return parseInstStmt(s)
	case "node":
		return parseNodeStmt(s)
	case "attach":
		return parseAttachStmt(s)
	case "when":
		return parseWhenStmt(s)
	case "stop":
		return parseStopStmt(s)
	case "printf":
		return parsePrintfStmt(s)
	case "skip":
		s.AdvanceToken()
		return ast.Statement{Kind: ast.StmtSkip}, nil
	case "define":
		return parseDefineStmt(s)
	case "connect":
		return parseConnectStmt(s)
	case "invalidate":
		return parseInvalidateStmt(s)
	case "force":
		return parseForceStmt(s)
	case "release":
		return parseReleaseStmt(s)
	case "force_initial":
		return parseForceInitialStmt(s)
	case "release_initial":
		return parseReleaseInitialStmt(s)
	case "cmem", "smem", "infer", "read", "write", "rdwr", "assert", "assume", "cover":
		return parseUnimplementedStmt(s, kw)
	default:
		return ast.Statement{}, errOther(tok.Pos, tok.Span, "unexpected statement keyword: "+kw)
	}
}

// parseUnimplementedStmt consumes the rest of the current line verbatim
// for statement forms outside this implementation's scope.
func parseUnimplementedStmt(s *TokenStream, tag string) (ast.Statement, *ParseError) {
	s.AdvanceLine()
	return ast.Statement{Kind: ast.StmtUnimplemented, UnimplementedTag: tag}, nil
}

func parseWireStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("wire"); err != nil {
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
	ty, err := parseType(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtWire, WireID: id, WireType: ty}, nil
}

func parseNodeStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("node"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.Statement{}, err
	}
	s.AddModuleContext(id)
	s.AdvanceToken()
	if err := s.MatchPunc("="); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	e, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtNode, NodeID: id, NodeExpr: e}, nil
}

func parseInstStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("inst"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	id, err := s.GetIdentKw()
	if err != nil {
		return ast.Statement{}, err
	}
	s.AddModuleContext(id)
	s.AdvanceToken()
	if err := s.MatchIdentKw("of"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	moduleID, err := s.GetIdentKw()
	if err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtInst, InstID: id, InstModule: moduleID}, nil
}

// parseRegStmt parses `reg <id> : <Type> <ClkExpr>` with an optional
// `with : [(] reset => (<resetExpr> <initExpr>) [)]` clause — the
// outer parens are accepted either way, matching original_source's
// "apparently optional parenthesis" observation.
func parseRegStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("reg"); err != nil {
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

	ty, err := parseType(s)
	if err != nil {
		return ast.Statement{}, err
	}
	clk, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}

	stmt := ast.Statement{Kind: ast.StmtReg, RegID: id, RegType: ty, RegClock: clk}

	if s.Token().Type == token.IdentKw && s.Token().Literal == "with" {
		s.AdvanceToken()
		if err := s.MatchPunc(":"); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()

		if s.Token().Type == token.LParen {
			s.AdvanceToken()
		}

		if err := s.MatchIdentKw("reset"); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()
		if err := s.MatchPunc("=>"); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()
		if err := s.MatchPunc("("); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()

		resetCond, err := parseExpr(s)
		if err != nil {
			return ast.Statement{}, err
		}
		initVal, err := parseExpr(s)
		if err != nil {
			return ast.Statement{}, err
		}
		if err := s.MatchPunc(")"); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()

		if s.Token().Type == token.RParen {
			s.AdvanceToken()
		}

		stmt.RegReset = ast.RegReset{Present: true, Reset: resetCond, Init: initVal}
	}

	return stmt, nil
}

func parseAttachStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("attach"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()

	var refs []ast.Reference
	for s.Token().Type != token.RParen {
		ref, err := parseReference(s)
		if err != nil {
			return ast.Statement{}, err
		}
		refs = append(refs, ref)
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtAttach, AttachRefs: refs}, nil
}

func parseConnectStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("connect"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	lhs, err := parseReference(s)
	if err != nil {
		return ast.Statement{}, err
	}
	rhs, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtConnect, ConnLHS: lhs, ConnRHS: rhs}, nil
}

func parseInvalidateStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("invalidate"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	ref, err := parseReference(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtInvalidate, InvalidateRef: ref}, nil
}

func parseDefineStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("define"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	lhs, err := parseStaticReference(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc("="); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	rhs, err := parseRefExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtDefine, DefineLHS: lhs, DefineRHS: rhs}, nil
}

func parseForceStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("force"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	clk, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	cond, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	ref, err := parseRefExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	val, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtForce, FRClock: clk, FRCond: cond, FRRef: ref, FRValue: val}, nil
}

func parseReleaseStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("release"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	clk, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	cond, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	ref, err := parseRefExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtRelease, FRClock: clk, FRCond: cond, FRRef: ref}, nil
}

func parseForceInitialStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("force_initial"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	ref, err := parseRefExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	val, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtForceInitial, FRRef: ref, FRValue: val}, nil
}

func parseReleaseInitialStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("release_initial"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	ref, err := parseRefExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc(")"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	return ast.Statement{Kind: ast.StmtReleaseInitial, FRRef: ref}, nil
}

func parseStopStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("stop"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	clk, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	cond, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	codeTok := s.Token()
	codeText, err := s.GetLitInt()
	if err != nil {
		return ast.Statement{}, err
	}
	code, convErr := strconv.Atoi(codeText)
	if convErr != nil {
		return ast.Statement{}, errOther(codeTok.Pos, codeTok.Span, "malformed stop exit code: "+codeText)
	}
	s.AdvanceToken()
	if err := s.MatchPunc(")"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()

	label, err := parseOptionalLabel(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{Kind: ast.StmtStop, StopClock: clk, StopCond: cond, StopCode: code, StopLabel: label}, nil
}

func parsePrintfStmt(s *TokenStream) (ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("printf"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	if err := s.MatchPunc("("); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	clk, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	cond, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	fmtText, err := s.GetLitStr()
	if err != nil {
		return ast.Statement{}, err
	}
	fmtText = unquoteStringLiteral(fmtText)
	s.AdvanceToken()

	var args []ast.Expr
	for s.Token().Type != token.RParen {
		e, err := parseExpr(s)
		if err != nil {
			return ast.Statement{}, err
		}
		args = append(args, e)
	}
	s.AdvanceToken()

	label, err := parseOptionalLabel(s)
	if err != nil {
		return ast.Statement{}, err
	}
	return ast.Statement{
		Kind:        ast.StmtPrintf,
		PrintfClock: clk,
		PrintfCond:  cond,
		PrintfFmt:   fmtText,
		PrintfArgs:  args,
		PrintfLabel: label,
	}, nil
}

// unquoteStringLiteral strips the surrounding double quotes a
// LiteralString token carries verbatim; escape sequences inside are
// left untouched, matching the tokenizer's validate-only treatment of
// quoted literals.
func unquoteStringLiteral(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// parseOptionalLabel parses a trailing `: <id>` label used by `stop`
// and `printf`.
func parseOptionalLabel(s *TokenStream) (string, *ParseError) {
	if s.Token().Type != token.Colon {
		return "", nil
	}
	s.AdvanceToken()
	label, err := s.GetIdentKw()
	if err != nil {
		return "", err
	}
	s.AdvanceToken()
	return label, nil
}

// parseReferenceStmt parses the legacy reference-led statement forms:
// connect (`<=`), partial connect (`<-`), and invalidate (`is
// invalid`).
func parseReferenceStmt(s *TokenStream) (ast.Statement, *ParseError) {
	ref, err := parseReference(s)
	if err != nil {
		return ast.Statement{}, err
	}

	tok := s.Token()
	switch {
	case tok.Type == token.LessEqual:
		s.AdvanceToken()
		rhs, err := parseExpr(s)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtConnect, ConnLHS: ref, ConnRHS: rhs}, nil

	case tok.Type == token.LessMinus:
		s.AdvanceToken()
		rhs, err := parseExpr(s)
		if err != nil {
			return ast.Statement{}, err
		}
		return ast.Statement{Kind: ast.StmtPartialConnect, ConnLHS: ref, ConnRHS: rhs}, nil

	case tok.Type == token.IdentKw && tok.Literal == "is":
		s.AdvanceToken()
		if err := s.MatchIdentKw("invalid"); err != nil {
			return ast.Statement{}, err
		}
		s.AdvanceToken()
		return ast.Statement{Kind: ast.StmtInvalidate, InvalidateRef: ref}, nil

	default:
		return ast.Statement{}, errOther(tok.Pos, tok.Span, "expected '<=', '<-', or 'is invalid' after reference")
	}
}

// parseWhenStmt parses the single-line or indented-block forms of
// `when`/`else` (spec §4.4.2). A chained `else when` is represented
// as a single nested When statement inside the outer ElseBlock. Both
// the when-body and any else-tail independently choose between the
// single-line and indented-block shape, since an `else` is only
// required to share the `when`'s indentation — not its line form.
func parseWhenStmt(s *TokenStream) (ast.Statement, *ParseError) {
	currentIndent := s.IndentLevel()

	if err := s.MatchIdentKw("when"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()
	cond, err := parseExpr(s)
	if err != nil {
		return ast.Statement{}, err
	}
	if err := s.MatchPunc(":"); err != nil {
		return ast.Statement{}, err
	}
	s.AdvanceToken()

	body, err := parseWhenBody(s, currentIndent)
	if err != nil {
		return ast.Statement{}, err
	}
	stmt := ast.Statement{Kind: ast.StmtWhen, WhenCond: cond, WhenBlock: body}

	if hasElseAt(s, currentIndent) {
		elseBlock, err := parseElseTail(s, currentIndent)
		if err != nil {
			return ast.Statement{}, err
		}
		stmt.ElseBlock = elseBlock
	}
	return stmt, nil
}

// parseWhenBody parses what follows "when <cond> :" (or "else :"):
// an indented block if the cursor already wrapped to a new line,
// otherwise a single same-line statement. headerIndent is the
// indentation of the "when"/"else" keyword itself; a block body must
// be indented strictly more than it (spec §8's nested-block
// invariant), matching the check parseModule makes against its own
// header indentation.
func parseWhenBody(s *TokenStream, headerIndent int) ([]ast.Statement, *ParseError) {
	if s.AtStartOfLine() {
		if s.atEOF() || s.IndentLevel() <= headerIndent {
			tok := s.Token()
			return nil, errOther(tok.Pos, tok.Span, "when body must be indented more than its header")
		}
		return parseStatementsBlock(s)
	}
	single, err := parseStatement(s)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{single}, nil
}

// hasElseAt reports whether the cursor sits on an "else" keyword at
// exactly the given indentation.
func hasElseAt(s *TokenStream, indent int) bool {
	return !s.atEOF() && s.IndentLevel() == indent &&
		s.Token().Type == token.IdentKw && s.Token().Literal == "else"
}

// parseElseTail parses the continuation after an "else" keyword: a
// chained "else when ...", or "else :" followed by a single statement
// or an indented block. headerIndent is the indentation shared by the
// originating "when" and this "else", against which a block-form body
// must be checked.
func parseElseTail(s *TokenStream, headerIndent int) ([]ast.Statement, *ParseError) {
	if err := s.MatchIdentKw("else"); err != nil {
		return nil, err
	}
	s.AdvanceToken()

	if s.Token().Type == token.IdentKw && s.Token().Literal == "when" {
		nested, err := parseWhenStmt(s)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{nested}, nil
	}

	if err := s.MatchPunc(":"); err != nil {
		return nil, err
	}
	s.AdvanceToken()
	return parseWhenBody(s, headerIndent)
}
