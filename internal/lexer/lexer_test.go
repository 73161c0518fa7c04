package lexer

import "testing"

func collectAll(t *testing.T, source string) ([]Token, error) {
	t.Helper()
	l := New(source)
	var tokens []Token
	for {
		tok, err, ok := l.Next()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func TestNextBasicTokens(t *testing.T) {
	tokens, err := collectAll(t, `val a = 1 + 2`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []TokenKind{Val, Identifier, Assign, Integer, Plus, Integer}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Kind, kind)
		}
	}
}

func TestCompoundAssignmentUpgrade(t *testing.T) {
	tests := map[string]TokenKind{
		"+=":  AssignPlus,
		"-=":  AssignMinus,
		"*=":  AssignMultiply,
		"/=":  AssignDivision,
		"**=": AssignExponentiation,
		"%=":  AssignModulo,
	}
	for lexeme, want := range tests {
		tokens, err := collectAll(t, "a "+lexeme+" 1")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", lexeme, err)
		}
		if len(tokens) != 3 || tokens[1].Kind != want {
			t.Fatalf("%s: got %v, want operator %s", lexeme, tokens, want)
		}
	}
}

func TestComparisonUpgrade(t *testing.T) {
	tests := map[string]TokenKind{
		"==": Equal,
		"!=": NotEqual,
		">=": GreaterOrEqual,
		"<=": LesserOrEqual,
	}
	for lexeme, want := range tests {
		tokens, err := collectAll(t, "a "+lexeme+" b")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", lexeme, err)
		}
		if len(tokens) != 3 || tokens[1].Kind != want {
			t.Fatalf("%s: got %v, want operator %s", lexeme, tokens, want)
		}
	}
}

func TestAndOrRequireDoubleCharacter(t *testing.T) {
	if _, err := collectAll(t, "a & b"); err == nil {
		t.Fatal("expected a lone & to be a lexical error")
	}
	if _, err := collectAll(t, "a | b"); err == nil {
		t.Fatal("expected a lone | to be a lexical error")
	}

	tokens, err := collectAll(t, "a && b || c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[1].Kind != And || tokens[3].Kind != Or {
		t.Fatalf("got %v", tokens)
	}
}

func TestIntegerOverflowBoundary(t *testing.T) {
	if _, err := collectAll(t, "4294967295"); err != nil {
		t.Fatalf("2^32-1 should lex cleanly, got %v", err)
	}
	if _, err := collectAll(t, "4294967296"); err == nil {
		t.Fatal("2^32 should fail as a Lexical error")
	}
}

func TestStringEscapes(t *testing.T) {
	tokens, err := collectAll(t, `'a\nb'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Literal.Text != "a\nb" {
		t.Fatalf("got %v", tokens)
	}
}

func TestUnescapedNewlineInStringFails(t *testing.T) {
	if _, err := collectAll(t, "'a\nb'"); err == nil {
		t.Fatal("expected unescaped newline in a string literal to be a Lexical error")
	}
}

func TestCommentsSkippedByDefault(t *testing.T) {
	tokens, err := collectAll(t, "val a = 1 // trailing comment\nval b = 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range tokens {
		if tok.Kind == Comment {
			t.Fatalf("comment token leaked without WithPreserveComments: %v", tokens)
		}
	}
}

func TestCommentsPreservedWithOption(t *testing.T) {
	l := New("// hi\nval a = 1", WithPreserveComments(true))
	tok, err, ok := l.Next()
	if err != nil || !ok {
		t.Fatalf("expected a comment token, got err=%v ok=%v", err, ok)
	}
	if tok.Kind != Comment || tok.Literal.Text != " hi" {
		t.Fatalf("got %v", tok)
	}
}

func TestReservedWords(t *testing.T) {
	tokens, err := collectAll(t, "val var fun return if else match break continue while loop for in true false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenKind{Val, Var, Function, Return, If, Else, Match, Break, Continue, While, Loop, For, In, Boolean, Boolean}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Kind, kind)
		}
	}
	if !tokens[13].Literal.Bool || tokens[14].Literal.Bool {
		t.Fatalf("true/false literal payload wrong: %v", tokens[13:15])
	}
}

func TestPositionTracking(t *testing.T) {
	tokens, err := collectAll(t, "val a\n= 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 0 {
		t.Fatalf("first token position wrong: %+v", tokens[0].Pos)
	}
	assignTok := tokens[2]
	if assignTok.Pos.Line != 2 || assignTok.Pos.Column != 0 {
		t.Fatalf("assign token should be at line 2 column 0, got %+v", assignTok.Pos)
	}
}
