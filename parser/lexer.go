package parser

import (
	"fmt"
	"strings"

	"github.com/eigenform/firrtl-go/token"
)

// TokenizedLine is one EffectiveLine after lexing: its tokens (with
// spans in original-file coordinates), its optional file-info
// annotation, its indentation width, and enough of the original text
// to render a diagnostic.
type TokenizedLine struct {
	Tokens      []token.Token
	Info        string // verbatim "@[...]" annotation, including brackets; empty if absent
	IndentLevel int
	LineNumber  int
	Content     string // the line's content before file-info was split off
}

const identStartChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
const identContChars = identStartChars + "0123456789$-"

func isIdentStart(b byte) bool { return strings.IndexByte(identStartChars, b) >= 0 }
func isIdentCont(b byte) bool  { return strings.IndexByte(identContChars, b) >= 0 }
func isDigit(b byte) bool      { return b >= '0' && b <= '9' }

// tokenizeAll runs the line preprocessor then the tokenizer over the
// full source, stopping at the first lexical error (no recovery).
func tokenizeAll(filename, source string) ([]TokenizedLine, *ParseError) {
	effective := readEffectiveLines(source)
	lines := make([]TokenizedLine, 0, len(effective))
	for _, el := range effective {
		tl, err := tokenizeLine(filename, el)
		if err != nil {
			return nil, err
		}
		lines = append(lines, tl)
	}
	return lines, nil
}

// tokenizeLine lexes a single EffectiveLine into a TokenizedLine.
func tokenizeLine(filename string, el EffectiveLine) (TokenizedLine, *ParseError) {
	// FIRRTL file-info optionally trails a line, introduced by the
	// first '@' in the content (quotes are not taken into account). It
	// is not interpreted, only preserved.
	content, info := el.Content, ""
	if idx := strings.IndexByte(el.Content, '@'); idx >= 0 {
		content, info = el.Content[:idx], el.Content[idx:]
	}

	lx := &lineLexer{
		filename: filename,
		line:     el.LineNumber,
		lineCol:  el.LineStart,
		src:      content,
	}
	tokens, err := lx.lex()
	if err != nil {
		return TokenizedLine{}, err
	}

	return TokenizedLine{
		Tokens:      tokens,
		Info:        info,
		IndentLevel: el.IndentLevel(),
		LineNumber:  el.LineNumber,
		Content:     el.Content,
	}, nil
}

// lineLexer tokenizes the content of a single effective line. Columns
// are reported as lineCol + byte offset within src, matching
// original-file coordinates.
type lineLexer struct {
	filename string
	line     int
	lineCol  int // column of src[0] in the original source
	src      string
	pos      int // byte offset into src
}

func (lx *lineLexer) col(offset int) int { return lx.lineCol + offset }

func (lx *lineLexer) pos2(start, end int) (token.Position, token.Span) {
	p := token.Position{Filename: lx.filename, Line: lx.line, Column: lx.col(start)}
	s := token.Span{Start: lx.col(start), End: lx.col(end)}
	return p, s
}

func (lx *lineLexer) lex() ([]token.Token, *ParseError) {
	var tokens []token.Token
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]

		// Commas and intra-line whitespace are ignored.
		if ch == ' ' || ch == '\t' || ch == ',' {
			lx.pos++
			continue
		}

		start := lx.pos
		switch {
		case isIdentStart(ch):
			for lx.pos < len(lx.src) && isIdentCont(lx.src[lx.pos]) {
				lx.pos++
			}
			tokens = append(tokens, lx.emit(token.IdentKw, start, lx.pos))

		case ch == '"':
			end, ok := lx.scanQuoted('"', isQuotedEscape)
			if !ok {
				pos, span := lx.pos2(start, lx.pos)
				return nil, errLex(pos, span, "unterminated string literal")
			}
			tokens = append(tokens, lx.emit(token.LiteralString, start, end))
			lx.pos = end

		case ch == '\'':
			end, ok := lx.scanQuoted('\'', isRawStringEscape)
			if !ok {
				pos, span := lx.pos2(start, lx.pos)
				return nil, errLex(pos, span, "unterminated raw string literal")
			}
			tokens = append(tokens, lx.emit(token.RawString, start, end))
			lx.pos = end

		case (ch == '+' || ch == '-') && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]):
			lx.pos++
			for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
				lx.pos++
			}
			tokens = append(tokens, lx.emit(token.LiteralSInt, start, lx.pos))

		case isDigit(ch):
			for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
				lx.pos++
			}
			if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]) {
				lx.pos++ // '.'
				for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
					lx.pos++
				}
				tokens = append(tokens, lx.emit(token.LiteralFloat, start, lx.pos))
			} else {
				tokens = append(tokens, lx.emit(token.LiteralInt, start, lx.pos))
			}

		default:
			tok, width, ok := lx.scanPunctuation()
			if !ok {
				pos, span := lx.pos2(start, start+1)
				return nil, errLex(pos, span, fmt.Sprintf("unrecognized character %q", string(ch)))
			}
			tokens = append(tokens, tok)
			lx.pos += width
		}
	}
	return tokens, nil
}

// scanPunctuation resolves the two-character punctuation forms before
// the one-character ones so "<=" "<-" and "=>" win over "<" and "=".
func (lx *lineLexer) scanPunctuation() (token.Token, int, bool) {
	rest := lx.src[lx.pos:]
	if len(rest) >= 2 {
		if two := rest[:2]; two == "<=" || two == "<-" || two == "=>" {
			typ, _ := token.PunctuationFromText(two)
			return lx.emit(typ, lx.pos, lx.pos+2), 2, true
		}
	}
	typ, ok := token.PunctuationFromText(rest[:1])
	if !ok {
		return token.Token{}, 0, false
	}
	return lx.emit(typ, lx.pos, lx.pos+1), 1, true
}

// scanQuoted scans a quote-delimited literal starting at lx.pos (which
// must be the opening quote byte), recognizing the escape pairs
// isEscape reports as not terminating the literal. Returns the byte
// offset one past the closing quote.
func (lx *lineLexer) scanQuoted(quote byte, isEscape func(string, int) (int, bool)) (int, bool) {
	i := lx.pos + 1
	for i < len(lx.src) {
		if lx.src[i] == '\\' {
			if width, ok := isEscape(lx.src, i); ok {
				i += width
				continue
			}
		}
		if lx.src[i] == quote {
			return i + 1, true
		}
		i++
	}
	return i, false
}

func (lx *lineLexer) emit(typ token.Type, start, end int) token.Token {
	pos, span := lx.pos2(start, end)
	return token.Token{Type: typ, Literal: lx.src[start:end], Pos: pos, Span: span}
}
