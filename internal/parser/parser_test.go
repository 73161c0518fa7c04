package parser

import (
	"testing"

	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/lexer"
)

func parseAll(t *testing.T, source string) ([]ast.Statement, error) {
	t.Helper()
	p := New(lexer.New(source))
	var stmts []ast.Statement
	for {
		stmt, err, ok := p.Next()
		if err != nil {
			return stmts, err
		}
		if !ok {
			return stmts, nil
		}
		stmts = append(stmts, stmt)
	}
}

func TestDeclarationProducesAssignment(t *testing.T) {
	stmts, err := parseAll(t, "val a = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements", len(stmts))
	}
	decl, ok := stmts[0].(*ast.DeclarationStatement)
	if !ok {
		t.Fatalf("got %T", stmts[0])
	}
	assign, ok := decl.Value.(*ast.AssignmentExpr)
	if !ok {
		t.Fatalf("declaration value is %T, want *ast.AssignmentExpr", decl.Value)
	}
	if assign.Operator.Kind != lexer.Assign {
		t.Fatalf("got operator %s, want Assign", assign.Operator.Kind)
	}
	if assign.Name.Kind != lexer.Identifier {
		t.Fatalf("assignment LHS is %s, want Identifier", assign.Name.Kind)
	}
}

func TestExponentIsLeftAssociative(t *testing.T) {
	stmts, err := parseAll(t, "2 ** 3 ** 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exprStmt := stmts[0].(*ast.ExpressionStatement)
	outer, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %T", exprStmt.Expr)
	}
	// Left-associative means the outer node's Left operand is itself the
	// (2 ** 3) binary expression, not the Right operand.
	if _, ok := outer.Left.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected left-nested exponentiation, got Left=%T Right=%T", outer.Left, outer.Right)
	}
	if _, ok := outer.Right.(*ast.LiteralExpr); !ok {
		t.Fatalf("expected a literal on the right of a left-associative **, got %T", outer.Right)
	}
}

func TestPrecedenceClimbsCorrectly(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the top node is a Plus whose
	// right operand is the Multiply.
	stmts, err := parseAll(t, "1 + 2 * 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.BinaryExpr)
	if top.Operator.Kind != lexer.Plus {
		t.Fatalf("got top operator %s, want Plus", top.Operator.Kind)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Operator.Kind != lexer.Multiply {
		t.Fatalf("got right=%T, want a Multiply binary expr", top.Right)
	}
}

func TestFunctionWithReturnTypeAndParams(t *testing.T) {
	stmts, err := parseAll(t, "fun: Int add(a: Int, b: Int){ return a + b }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := stmts[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("got %T", stmts[0])
	}
	if fn.ReturnType == nil || fn.ReturnType.Literal.Text != "Int" {
		t.Fatalf("got return type %v", fn.ReturnType)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params", len(fn.Params))
	}
}

func TestIfElseStatement(t *testing.T) {
	stmts, err := parseAll(t, "if (a == b) { val x = 1 } else { val x = 2 }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ifStmt, ok := stmts[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T", stmts[0])
	}
	if ifStmt.Then == nil || ifStmt.Else == nil {
		t.Fatal("expected both branches to be present")
	}
}

func TestReturnWithoutExpressionAtEOF(t *testing.T) {
	stmts, err := parseAll(t, "return")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret, ok := stmts[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("got %T", stmts[0])
	}
	if ret.Value != nil {
		t.Fatalf("expected no return value, got %v", ret.Value)
	}
}

func TestReturnWithoutExpressionBeforeClosingBraceDoesNotEatTheBrace(t *testing.T) {
	// A bare "return" immediately followed by the brace ending its
	// enclosing body must leave that brace for the body parser to consume,
	// not swallow it as a failed expression attempt.
	stmts, err := parseAll(t, "fun: Int f(){ return } return 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: %v", len(stmts), stmts)
	}
	fn, ok := stmts[0].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionStatement", stmts[0])
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.ReturnStatement", fn.Body.Statements[0])
	}
	if ret.Value != nil {
		t.Fatalf("expected no return value, got %v", ret.Value)
	}
}

func TestDeclarationWithoutAssignmentIsSyntaxError(t *testing.T) {
	if _, err := parseAll(t, "val a"); err == nil {
		t.Fatal("expected a syntax error for a declaration missing its assignment")
	}
}

func TestIfAsDeclarationValueIsSyntaxError(t *testing.T) {
	// "val a = if" : "if" isn't a valid primary expression, so the RHS parse fails.
	if _, err := parseAll(t, "val a = if"); err == nil {
		t.Fatal("expected a syntax error")
	}
}

func TestCallWithTrailingComma(t *testing.T) {
	stmts, err := parseAll(t, "add(1, 2,)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, ok := stmts[0].(*ast.ExpressionStatement).Expr.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T", stmts[0].(*ast.ExpressionStatement).Expr)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args", len(call.Args))
	}
}
