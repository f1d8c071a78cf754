package parser

import (
	"github.com/eigenform/firrtl-go/token"
)

// TokenStream is the parser's two-dimensional cursor over a tokenized
// file: a (line, token-in-line) pair, plus the current module's
// identifier set. It never peeks across a line boundary, since FIRRTL
// block structure is established by indentation, not by lookahead.
//
// Grounded directly on original_source's FirrtlStream (lex.rs).
type TokenStream struct {
	filename string
	lines    []TokenizedLine
	ctx      *moduleContext

	lineIdx int // index into lines
	tokIdx  int // index into lines[lineIdx].Tokens
}

func newTokenStream(filename string, lines []TokenizedLine) *TokenStream {
	return &TokenStream{filename: filename, lines: lines, ctx: newModuleContext()}
}

// atEOF reports whether the cursor has walked past the last line.
func (s *TokenStream) atEOF() bool {
	return s.lineIdx >= len(s.lines)
}

func (s *TokenStream) curLine() TokenizedLine {
	return s.lines[s.lineIdx]
}

// eofToken synthesizes a Token for diagnostics once the cursor has run
// past the last line.
func (s *TokenStream) eofToken() token.Token {
	line := 1
	col := 1
	if n := len(s.lines); n > 0 {
		line = s.lines[n-1].LineNumber + 1
	}
	pos := token.Position{Filename: s.filename, Line: line, Column: col}
	return token.Token{Type: token.EOF, Pos: pos, Span: token.Span{Start: col, End: col}}
}

// Token returns the token under the cursor.
func (s *TokenStream) Token() token.Token {
	if s.atEOF() {
		return s.eofToken()
	}
	line := s.curLine()
	if s.tokIdx >= len(line.Tokens) {
		// Empty line (should not occur post-preprocessing) or cursor
		// parked one past the line's last token; report the same EOF
		// marker as past the last line of the file.
		return s.eofToken()
	}
	return line.Tokens[s.tokIdx]
}

// PeekN returns the token n positions ahead within the current line,
// or an EOF token if that falls off the end of the line. The stream
// never peeks across a line boundary.
func (s *TokenStream) PeekN(n int) token.Token {
	if s.atEOF() {
		return s.eofToken()
	}
	line := s.curLine()
	idx := s.tokIdx + n
	if idx < 0 || idx >= len(line.Tokens) {
		return s.eofToken()
	}
	return line.Tokens[idx]
}

// AdvanceToken moves to the next token, wrapping to the first token of
// the next line when the current line is exhausted.
func (s *TokenStream) AdvanceToken() {
	if s.atEOF() {
		return
	}
	s.tokIdx++
	if s.tokIdx >= len(s.curLine().Tokens) {
		s.lineIdx++
		s.tokIdx = 0
	}
}

// AdvanceLine unconditionally jumps to the first token of the next
// line, used when the grammar guarantees the remainder of the current
// line has already been consumed or is being deliberately discarded.
func (s *TokenStream) AdvanceLine() {
	s.lineIdx++
	s.tokIdx = 0
}

// RemainingOnLine is the number of tokens from the cursor to the end
// of the current line (0 at EOF).
func (s *TokenStream) RemainingOnLine() int {
	if s.atEOF() {
		return 0
	}
	n := len(s.curLine().Tokens) - s.tokIdx
	if n < 0 {
		return 0
	}
	return n
}

// AtStartOfLine reports whether the cursor sits on the first token of
// its line.
func (s *TokenStream) AtStartOfLine() bool {
	return s.tokIdx == 0
}

// IndentLevel is the indentation of the current line, or 0 at EOF.
func (s *TokenStream) IndentLevel() int {
	if s.atEOF() {
		return 0
	}
	return s.curLine().IndentLevel
}

// Module context.
func (s *TokenStream) ClearModuleContext()        { s.ctx.clear() }
func (s *TokenStream) AddModuleContext(id string) { s.ctx.insert(id) }
func (s *TokenStream) CheckModuleContext(id string) bool {
	return s.ctx.contains(id)
}

// SetModuleContextLimit bounds how many identifiers a single module's
// context set may hold; 0 (the zero value) means unlimited.
func (s *TokenStream) SetModuleContextLimit(n int) { s.ctx.limit = n }

// Typed accessors. Each fails with ExpectedToken if the current token
// is of the wrong kind.

func (s *TokenStream) GetIdentKw() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.IdentKw {
		return "", errExpectedToken(tok, token.IdentKw)
	}
	return tok.Literal, nil
}

func (s *TokenStream) GetLitInt() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.LiteralInt {
		return "", errExpectedToken(tok, token.LiteralInt)
	}
	return tok.Literal, nil
}

func (s *TokenStream) GetLitSInt() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.LiteralSInt {
		return "", errExpectedToken(tok, token.LiteralSInt)
	}
	return tok.Literal, nil
}

func (s *TokenStream) GetLitFloat() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.LiteralFloat {
		return "", errExpectedToken(tok, token.LiteralFloat)
	}
	return tok.Literal, nil
}

func (s *TokenStream) GetLitStr() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.LiteralString {
		return "", errExpectedToken(tok, token.LiteralString)
	}
	return tok.Literal, nil
}

func (s *TokenStream) GetLitRawStr() (string, *ParseError) {
	tok := s.Token()
	if tok.Type != token.RawString {
		return "", errExpectedToken(tok, token.RawString)
	}
	return tok.Literal, nil
}

// Matchers. Each fails with ExpectedPunctuation / ExpectedKeyword.

func (s *TokenStream) MatchPunc(p string) *ParseError {
	tok := s.Token()
	typ, ok := token.PunctuationFromText(p)
	if !ok || tok.Type != typ {
		return errExpectedPunctuation(tok, p)
	}
	return nil
}

func (s *TokenStream) MatchIdentKw(kw string) *ParseError {
	tok := s.Token()
	if tok.Type != token.IdentKw || tok.Literal != kw {
		return errExpectedKeyword(tok, kw)
	}
	return nil
}

// MatchIdentKwOneOf succeeds if the current token is an IdentKw equal
// to one of the given candidates, and returns which one matched.
func (s *TokenStream) MatchIdentKwOneOf(candidates ...string) (string, *ParseError) {
	tok := s.Token()
	if tok.Type == token.IdentKw {
		for _, c := range candidates {
			if tok.Literal == c {
				return c, nil
			}
		}
	}
	return "", errExpectedKeyword(tok, joinOr(candidates))
}

func joinOr(candidates []string) string {
	out := ""
	for i, c := range candidates {
		if i > 0 {
			out += "|"
		}
		out += c
	}
	return out
}
