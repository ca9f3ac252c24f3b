package parser

import (
	"bufio"
	"bytes"
	"strings"
)

// logicalLine is one joined configuration line with its physical origin.
// A physical line ending in a backslash continues onto the next one; the
// logical line keeps the number of the first physical line.
type logicalLine struct {
	text string
	line int // 1-based
}

// scanLines splits raw bytes into logical lines, joining backslash
// continuations.
func scanLines(data []byte) []logicalLine {
	var out []logicalLine

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	physical := 0
	continuing := false
	pending := ""
	pendingStart := 0

	for scanner.Scan() {
		physical++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		trimmed := strings.TrimRight(line, " \t")
		if strings.HasSuffix(trimmed, "\\") {
			content := strings.TrimSuffix(trimmed, "\\")
			if !continuing {
				continuing = true
				pendingStart = physical
				pending = content
			} else {
				pending += content
			}
			continue
		}

		if continuing {
			out = append(out, logicalLine{text: pending + line, line: pendingStart})
			continuing = false
			pending = ""
			continue
		}

		out = append(out, logicalLine{text: line, line: physical})
	}

	// A continuation on the last line has nothing to join with; keep what
	// was accumulated so the content is not lost.
	if continuing {
		out = append(out, logicalLine{text: pending, line: pendingStart})
	}

	return out
}

// stripComment removes a trailing # comment from a logical line. A # inside
// a double-quoted string is literal text; backslash escapes inside strings
// are honored.
func stripComment(s string) string {
	inQuote := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inQuote {
				escaped = true
			}
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

// indentOf returns the 1-based column of the first non-blank character.
func indentOf(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t")) + 1
}
