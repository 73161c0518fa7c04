package ast

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/parser"
)

func parseProgram(t *testing.T, source string) []Statement {
	t.Helper()
	p := parser.New(lexer.New(source))
	var stmts []Statement
	for {
		stmt, err, ok := p.Next()
		if err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if !ok {
			return stmts
		}
		stmts = append(stmts, stmt)
	}
}

// TestStatementJSONRoundTrips checks the invariant from spec §8: re-serializing
// token/statement JSON and deserializing (into the generic JSON form every
// consumer without a typed AST would use) yields an equal structure.
func TestStatementJSONRoundTrips(t *testing.T) {
	stmts := parseProgram(t, `val a = 1 + 2 * 3
if (a == 3) { return a } else { return 0 }`)

	first, err := json.Marshal(stmts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic []interface{}
	if err := json.Unmarshal(first, &generic); err != nil {
		t.Fatalf("unmarshal into generic form: %v", err)
	}

	second, err := json.Marshal(generic)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}

	var a, b interface{}
	if err := json.Unmarshal(first, &a); err != nil {
		t.Fatalf("unmarshal first: %v", err)
	}
	if err := json.Unmarshal(second, &b); err != nil {
		t.Fatalf("unmarshal second: %v", err)
	}

	firstCanonical, _ := json.Marshal(a)
	secondCanonical, _ := json.Marshal(b)
	if string(firstCanonical) != string(secondCanonical) {
		t.Fatalf("round-trip mismatch:\nfirst:  %s\nsecond: %s", firstCanonical, secondCanonical)
	}
}

func TestTokenListSnapshot(t *testing.T) {
	l := lexer.New("val a = -3 + 8")
	var tokens TokenList
	for {
		tok, err, ok := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	out, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snaps.MatchSnapshot(t, string(out))
}

func TestStatementsSnapshot(t *testing.T) {
	stmts := parseProgram(t, "fun: Int add(a: Int, b: Int){ return a + b } return add(2, 3)")

	out, err := json.MarshalIndent(stmts, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snaps.MatchSnapshot(t, string(out))
}
