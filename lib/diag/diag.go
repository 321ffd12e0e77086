// Package diag holds the positioned error type shared by the lexer and
// parser. Code generation errors have no source position and use plain
// errors instead.
package diag

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column location in a source file.
type Position struct {
	Line   int
	Column int
}

// Error is a compile error tied to a location in the source. Its Error
// method renders the message together with the offending source line, a
// caret pointing at the column, and a fixed hint.
type Error struct {
	Path    string
	Pos     Position
	Message string
	Hint    string

	sourceLine string
	hasLine    bool
}

// New builds an Error for the given position, capturing the matching
// source line for context.
func New(path, source string, pos Position, message, hint string) *Error {
	e := &Error{
		Path:    path,
		Pos:     pos,
		Message: message,
		Hint:    hint,
	}

	lines := strings.Split(source, "\n")
	if pos.Line >= 1 && pos.Line <= len(lines) {
		e.sourceLine = strings.TrimSuffix(lines[pos.Line-1], "\r")
		e.hasLine = true
	}
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.Path, e.Pos.Line, e.Pos.Column)
	fmt.Fprintf(&sb, "  %s\n", e.Message)

	if e.hasLine {
		fmt.Fprintf(&sb, "\n%4d | %s\n", e.Pos.Line, e.sourceLine)
		fmt.Fprintf(&sb, "     | %s^\n", strings.Repeat(" ", e.Pos.Column-1))
	}

	fmt.Fprintf(&sb, "\nHint: %s\n", e.Hint)

	return sb.String()
}
