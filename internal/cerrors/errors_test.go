package cerrors

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/tutara-lang/tutara/internal/lexer"
)

func TestLexicalErrorFormatting(t *testing.T) {
	err := NewLexical(lexer.Position{Line: 2, Column: 4}, "unexpected character '@'")
	snaps.MatchSnapshot(t, err.Error())
}

func TestSyntaxErrorFormatting(t *testing.T) {
	tok := lexer.Token{Kind: lexer.Identifier, Pos: lexer.Position{Line: 1, Column: 6}}
	err := NewSyntax("expected an expression", tok)
	snaps.MatchSnapshot(t, err.Error())
}

func TestCodeGenErrorFormatting(t *testing.T) {
	err := NewCodeGen("No return statement found in script")
	snaps.MatchSnapshot(t, err.Error())
	if err.HasPos {
		t.Fatal("a CodeGen error should carry no locus")
	}
}

func TestFormatWithSourceRendersCaret(t *testing.T) {
	err := NewLexical(lexer.Position{Line: 1, Column: 4}, "unexpected character '@'")
	got := FormatWithSource(err, "val @ = 1", "script.l")
	snaps.MatchSnapshot(t, got)
}

func TestFormatWithSourceWithoutLocusPrintsMessageAlone(t *testing.T) {
	err := NewCodeGen("No return statement found in script")
	got := FormatWithSource(err, "val a = 1", "script.l")
	if got != err.Message {
		t.Fatalf("got %q, want the bare message %q", got, err.Message)
	}
}
