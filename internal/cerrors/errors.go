// Package cerrors defines the closed diagnostic taxonomy shared by every
// compiler pass: Lexical, Syntax, and CodeGen errors. Each carries one
// message and its locus; formatting is deterministic so it can be captured
// in golden-file tests.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/tutara-lang/tutara/internal/lexer"
)

// Kind tags which pass raised the error.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	CodeGen
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Lexical"
	case Syntax:
		return "Syntax"
	case CodeGen:
		return "CodeGen"
	default:
		return "Unknown"
	}
}

// Error is the single error type propagated through every compiler pass.
// A CodeGen error has no locus: Pos is the zero value and HasPos is false.
type Error struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	HasPos  bool
	Token   *lexer.Token // set for Syntax errors; names the offending token
}

func (e *Error) Error() string {
	var sb strings.Builder

	switch e.Kind {
	case Lexical:
		sb.WriteString(fmt.Sprintf("Error at line %d on column %d: %s", e.Pos.Line, e.Pos.Column, e.Message))
	case Syntax:
		if e.Token != nil {
			sb.WriteString(fmt.Sprintf("Syntax error on %s: at line %d on column %d, message: %s",
				e.Token.Kind, e.Pos.Line, e.Pos.Column, e.Message))
		} else {
			sb.WriteString(fmt.Sprintf("Syntax error at line %d on column %d: %s", e.Pos.Line, e.Pos.Column, e.Message))
		}
	case CodeGen:
		sb.WriteString(fmt.Sprintf("CodeGen error: %s", e.Message))
	}

	return sb.String()
}

// NewLexical builds a Lexical error at the given position.
func NewLexical(pos lexer.Position, message string) *Error {
	return &Error{Kind: Lexical, Message: message, Pos: pos, HasPos: true}
}

// NewSyntax builds a Syntax error naming the offending token.
func NewSyntax(message string, tok lexer.Token) *Error {
	t := tok
	return &Error{Kind: Syntax, Message: message, Pos: tok.Pos, HasPos: true, Token: &t}
}

// NewCodeGen builds a locus-less CodeGen error.
func NewCodeGen(message string) *Error {
	return &Error{Kind: CodeGen, Message: message}
}

// FormatWithSource renders the error with the offending source line and a
// caret pointing at the column, mirroring how a terminal-facing driver would
// present it. CodeGen errors have no locus and print their message alone.
func FormatWithSource(err *Error, source, file string) string {
	var sb strings.Builder

	if !err.HasPos {
		sb.WriteString(err.Message)
		return sb.String()
	}

	if file != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", file, err.Pos.Line, err.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", err.Pos.Line, err.Pos.Column))
	}

	if line := sourceLine(source, err.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", err.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+err.Pos.Column))
		sb.WriteString("^\n")
	}

	sb.WriteString(err.Message)
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
