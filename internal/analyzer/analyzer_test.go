package analyzer

import (
	"testing"

	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/parser"
)

func analyzeAll(t *testing.T, source string) ([]ast.Statement, error) {
	t.Helper()
	a := New(parser.New(lexer.New(source)))
	var stmts []ast.Statement
	for {
		stmt, err, ok := a.Next()
		if err != nil {
			return stmts, err
		}
		if !ok {
			return stmts, nil
		}
		stmts = append(stmts, stmt)
	}
}

func TestLoopDesugarsToWhileTrue(t *testing.T) {
	stmts, err := analyzeAll(t, "loop { break }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	while, ok := stmts[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileStatement", stmts[0])
	}
	lit, ok := while.Condition.(*ast.LiteralExpr)
	if !ok || !lit.Token.Literal.Bool {
		t.Fatalf("expected the condition to be a synthetic `true` literal, got %v", while.Condition)
	}
}

func TestNoLoopNodeSurvivesAnalysis(t *testing.T) {
	stmts, err := analyzeAll(t, "loop { loop { break } break }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var walk func(ast.Statement)
	walk = func(s ast.Statement) {
		if _, ok := s.(*ast.LoopStatement); ok {
			t.Fatal("a Loop statement survived analysis")
		}
		if w, ok := s.(*ast.WhileStatement); ok {
			for _, inner := range w.Body.Statements {
				walk(inner)
			}
		}
	}
	for _, s := range stmts {
		walk(s)
	}
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	tests := map[string]lexer.TokenKind{
		"a += 1":  lexer.Plus,
		"a -= 1":  lexer.Minus,
		"a *= 1":  lexer.Multiply,
		"a /= 1":  lexer.Division,
		"a **= 1": lexer.Exponentiation,
		"a %= 1":  lexer.Modulo,
	}
	for source, wantOp := range tests {
		stmts, err := analyzeAll(t, source)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", source, err)
		}
		exprStmt := stmts[0].(*ast.ExpressionStatement)
		assign, ok := exprStmt.Expr.(*ast.AssignmentExpr)
		if !ok {
			t.Fatalf("%s: got %T", source, exprStmt.Expr)
		}
		if assign.Operator.Kind != lexer.Assign {
			t.Fatalf("%s: operator not rewritten to Assign, got %s", source, assign.Operator.Kind)
		}
		binary, ok := assign.Value.(*ast.BinaryExpr)
		if !ok {
			t.Fatalf("%s: assignment value is %T, want *ast.BinaryExpr", source, assign.Value)
		}
		if binary.Operator.Kind != wantOp {
			t.Fatalf("%s: got pure operator %s, want %s", source, binary.Operator.Kind, wantOp)
		}
		ident, ok := binary.Left.(*ast.IdentifierExpr)
		if !ok || ident.Name() != "a" {
			t.Fatalf("%s: binary left operand should re-read the identifier, got %v", source, binary.Left)
		}
	}
}

func TestPlainAssignmentPassesThroughUnchanged(t *testing.T) {
	stmts, err := analyzeAll(t, "a = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assign := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.AssignmentExpr)
	if assign.Operator.Kind != lexer.Assign {
		t.Fatalf("got %s", assign.Operator.Kind)
	}
	if _, ok := assign.Value.(*ast.BinaryExpr); ok {
		t.Fatal("a plain assignment should not gain a synthetic binary expression")
	}
}
