package parser

// isQuotedEscape reports whether s[i] starts a recognized escape pair
// inside a double-quoted string literal, and returns how many bytes the
// pair occupies. FIRRTL string lexemes are stored verbatim (see
// token.Token doc), so this does not decode the escape to its
// underlying byte value — it only tells the lexer that the escaped
// character (in particular an escaped quote) does not terminate the
// literal.
//
// Recognized forms: \t \n \u \".
func isQuotedEscape(s string, i int) (width int, ok bool) {
	if i+1 >= len(s) || s[i] != '\\' {
		return 0, false
	}
	switch s[i+1] {
	case 't', 'n', 'u', '"':
		return 2, true
	default:
		return 0, false
	}
}

// isRawStringEscape reports the same thing as isQuotedEscape but for
// single-quoted raw-string literals, which additionally permit an
// escaped backslash and an escaped single quote.
func isRawStringEscape(s string, i int) (width int, ok bool) {
	if i+1 >= len(s) || s[i] != '\\' {
		return 0, false
	}
	switch s[i+1] {
	case 't', 'n', 'u', '\\', '\'':
		return 2, true
	default:
		return 0, false
	}
}
