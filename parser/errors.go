package parser

import (
	"fmt"
	"strings"

	"github.com/eigenform/firrtl-go/token"
)

// ErrorKind categorizes a ParseError. All kinds are fatal: the parser
// never recovers and never reports more than one error per Parse call.
type ErrorKind int

const (
	KindLexError ErrorKind = iota
	KindExpectedToken
	KindExpectedKeyword
	KindExpectedPunctuation
	KindBadGroundType
	KindMissingMemField
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexError:
		return "LexError"
	case KindExpectedToken:
		return "ExpectedToken"
	case KindExpectedKeyword:
		return "ExpectedKeyword"
	case KindExpectedPunctuation:
		return "ExpectedPunctuation"
	case KindBadGroundType:
		return "BadGroundType"
	case KindMissingMemField:
		return "MissingMemField"
	default:
		return "Other"
	}
}

// ParseError is the single error type returned anywhere along the
// tokenizing/parsing pipeline. Every failure carries the byte span and
// line number of the offending token.
type ParseError struct {
	Kind    ErrorKind
	Pos     token.Position
	Span    token.Span
	Message string
	Context string // the source line the error occurred on, if known
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: error: %s", e.Pos, e.Message))
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n    %s", e.Context))
	}
	return sb.String()
}

// NewParseError builds a ParseError with no source context line.
func NewParseError(kind ErrorKind, pos token.Position, span token.Span, message string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Span: span, Message: message}
}

// NewParseErrorWithContext builds a ParseError that also quotes the
// offending source line.
func NewParseErrorWithContext(kind ErrorKind, pos token.Position, span token.Span, message, context string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Span: span, Message: message, Context: context}
}

func errExpectedToken(tok token.Token, want token.Type) *ParseError {
	return NewParseError(KindExpectedToken, tok.Pos, tok.Span,
		fmt.Sprintf("expected %s, found %s", want, tok))
}

func errExpectedKeyword(tok token.Token, want string) *ParseError {
	return NewParseError(KindExpectedKeyword, tok.Pos, tok.Span,
		fmt.Sprintf("expected keyword %q, found %s", want, tok))
}

func errExpectedPunctuation(tok token.Token, want string) *ParseError {
	return NewParseError(KindExpectedPunctuation, tok.Pos, tok.Span,
		fmt.Sprintf("expected %q, found %s", want, tok))
}

func errBadGroundType(tok token.Token, name string) *ParseError {
	return NewParseError(KindBadGroundType, tok.Pos, tok.Span,
		fmt.Sprintf("%q is not a legal ground type", name))
}

func errMissingMemField(pos token.Position, span token.Span, which string) *ParseError {
	return NewParseError(KindMissingMemField, pos, span,
		fmt.Sprintf("mem block is missing required field %q", which))
}

func errOther(pos token.Position, span token.Span, message string) *ParseError {
	return NewParseError(KindOther, pos, span, message)
}

func errLex(pos token.Position, span token.Span, message string) *ParseError {
	return NewParseError(KindLexError, pos, span, message)
}
