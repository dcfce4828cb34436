package gura

import (
	"fmt"
	"strings"
)

// Position locates a point in a Gura source buffer: Offset is the byte
// index, Line the 1-based line number. Both refer to whichever text buffer
// was active in the parser at the moment the error was raised — after
// import splicing that is the spliced buffer, not the original file text.
type Position struct {
	Offset int
	Line   int
}

// GuraError is the common supertype for every error the parser can raise.
type GuraError interface {
	error
	Position() Position
}

// ParseError reports a grammar mismatch: an unexpected character, an
// invalid number lexeme, an invalid pair, or unexpected trailing input.
type ParseError struct {
	Pos   Position
	Msg   string
	Input string
}

func (e *ParseError) Position() Position { return e.Pos }

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg + snippet(e.Input, e.Pos)
}

// InvalidIndentationError reports a violation of the indentation rules: a
// tab used for indentation, a width not divisible by 4, or an illegal
// parent/child relationship between indentation levels.
type InvalidIndentationError struct {
	Pos   Position
	Msg   string
	Input string
}

func (e *InvalidIndentationError) Position() Position { return e.Pos }

func (e *InvalidIndentationError) Error() string {
	return "invalid indentation: " + e.Msg + snippet(e.Input, e.Pos)
}

// DuplicatedKeyError reports a key defined twice within one object.
type DuplicatedKeyError struct {
	Pos   Position
	Key   string
	Input string
}

func (e *DuplicatedKeyError) Position() Position { return e.Pos }

func (e *DuplicatedKeyError) Error() string {
	return fmt.Sprintf("the key %q has already been defined%s", e.Key, snippet(e.Input, e.Pos))
}

// DuplicatedVariableError reports a variable name defined twice.
type DuplicatedVariableError struct {
	Pos   Position
	Name  string
	Input string
}

func (e *DuplicatedVariableError) Position() Position { return e.Pos }

func (e *DuplicatedVariableError) Error() string {
	return fmt.Sprintf("the variable %q has already been declared%s", e.Name, snippet(e.Input, e.Pos))
}

// VariableNotDefinedError reports a $name reference that resolves neither
// in the parser's variable table nor in the process environment.
type VariableNotDefinedError struct {
	Pos   Position
	Name  string
	Input string
}

func (e *VariableNotDefinedError) Position() Position { return e.Pos }

func (e *VariableNotDefinedError) Error() string {
	return fmt.Sprintf("variable %q is not defined in Gura nor as an environment variable%s", e.Name, snippet(e.Input, e.Pos))
}

// DuplicatedImportError reports the same resolved file path imported more
// than once across one import chain.
type DuplicatedImportError struct {
	Pos   Position
	Path  string
	Input string
}

func (e *DuplicatedImportError) Position() Position { return e.Pos }

func (e *DuplicatedImportError) Error() string {
	return fmt.Sprintf("the file %q has already been imported%s", e.Path, snippet(e.Input, e.Pos))
}

// TypeError is raised by Dump when a Value carries an unrecognized Kind.
// It is not positional and does not implement GuraError.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return "type error: " + e.Msg }

// snippet renders a Rust/Clang-style pointer at Pos within input:
//
//	  --> 3:5
//	   |
//	 3 |     year: 1890
//	   |     ^
//
// Returns "" if input is empty or Pos.Line is out of range (e.g. a
// synthetic or zero-value position).
func snippet(input string, pos Position) string {
	if input == "" || pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(input, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	lineContent := lines[pos.Line-1]
	column := columnOf(input, pos)

	var b strings.Builder
	fmt.Fprintf(&b, "\n  --> %d:%d\n", pos.Line, column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", pos.Line, lineContent)
	b.WriteString("   | ")
	if column > 0 {
		b.WriteString(strings.Repeat(" ", column-1))
		b.WriteByte('^')
	}
	return b.String()
}

// columnOf computes the 1-based column of an offset by scanning back to the
// most recent line break.
func columnOf(input string, pos Position) int {
	offset := pos.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		offset = len(input)
	}
	lineStart := 0
	for i := offset - 1; i >= 0; i-- {
		if input[i] == '\n' {
			lineStart = i + 1
			break
		}
	}
	return offset - lineStart + 1
}

// describeByte renders a byte for an error message, or "end of string" past
// the end of input.
func describeByte(text string, offset int) string {
	if offset < 0 || offset >= len(text) {
		return "end of string"
	}
	return string(text[offset])
}
