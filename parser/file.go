package parser

import "strings"

// EffectiveLine is a physical source line after indentation and
// comment stripping: its original 1-based line number, the 1-based
// starting column of its content (after indentation), its indentation
// width, and its trimmed content.
type EffectiveLine struct {
	LineNumber int    // 1-based, in the original source
	LineStart  int    // 1-based column of the first content byte
	Content    string // no leading whitespace, no trailing comment
}

// IndentLevel is the count of leading space/tab characters that were
// stripped to produce Content.
func (l EffectiveLine) IndentLevel() int {
	return l.LineStart - 1
}

// readEffectiveLines splits raw FIRRTL source into the sequence of
// EffectiveLine the tokenizer will consume. Tabs count as one
// indentation unit, never expanded. A line whose only content is a
// comment is dropped entirely, so the line numbers of surviving lines
// need not be contiguous.
func readEffectiveLines(content string) []EffectiveLine {
	var lines []EffectiveLine

	for i, raw := range splitSourceLines(content) {
		indent := 0
		for indent < len(raw) && (raw[indent] == ' ' || raw[indent] == '\t') {
			indent++
		}
		postIndent := raw[indent:]

		// A FIRRTL comment begins with an unquoted ';' and runs to end
		// of line; comments do not nest and never cross lines.
		lineContent := postIndent
		var quote byte
		for j := 0; j < len(postIndent); j++ {
			c := postIndent[j]
			if quote != 0 {
				if c == '\\' {
					j++
				} else if c == quote {
					quote = 0
				}
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
			} else if c == ';' {
				lineContent = postIndent[:j]
				break
			}
		}

		if lineContent == "" {
			continue
		}

		lines = append(lines, EffectiveLine{
			LineNumber: i + 1,
			LineStart:  indent + 1,
			Content:    lineContent,
		})
	}
	return lines
}

// splitSourceLines splits on LF, tolerating a preceding CR so CRLF
// line endings are handled without leaving a trailing '\r' in content.
func splitSourceLines(content string) []string {
	raw := strings.Split(content, "\n")
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}
	// strings.Split on a string ending in '\n' yields a trailing empty
	// element; that element carries no content and is filtered out
	// naturally by the empty-line check in readEffectiveLines.
	return raw
}
