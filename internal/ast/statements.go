package ast

import (
	"strings"

	"github.com/tutara-lang/tutara/internal/lexer"
)

// ExpressionStatement is an expression evaluated for its side effects,
// discarding its value.
type ExpressionStatement struct {
	Expr Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Expr.TokenLiteral() }
func (s *ExpressionStatement) Pos() lexer.Position  { return s.Expr.Pos() }
func (s *ExpressionStatement) String() string       { return s.Expr.String() }

// DeclarationStatement introduces a binding with val (immutable) or var
// (mutable), indicated by Keyword. TypeName is nil when no ":Type"
// annotation was written.
type DeclarationStatement struct {
	Keyword  lexer.Token // Val or Var
	TypeName *lexer.Token
	Value    Expression // always an *AssignmentExpr
}

// Name returns the declared identifier, taken from the assignment's LHS.
func (s *DeclarationStatement) Name() lexer.Token {
	return s.Value.(*AssignmentExpr).Name
}

func (s *DeclarationStatement) statementNode()      {}
func (s *DeclarationStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *DeclarationStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *DeclarationStatement) Mutable() bool        { return s.Keyword.Kind == lexer.Var }
func (s *DeclarationStatement) String() string {
	return s.Keyword.Kind.String() + " " + s.Name().Literal.Text + " = " + s.Value.String()
}

// CommentStatement preserves a source comment, only yielded when the lexer
// is configured to preserve them.
type CommentStatement struct {
	Token lexer.Token
}

func (s *CommentStatement) statementNode()      {}
func (s *CommentStatement) TokenLiteral() string { return s.Token.Kind.String() }
func (s *CommentStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *CommentStatement) String() string       { return "//" + s.Token.Literal.Text }

// BodyStatement is a brace-delimited, ordered sequence of statements: a
// function body, loop body, or branch arm.
type BodyStatement struct {
	Open       lexer.Token // '{'
	Statements []Statement
	Close      lexer.Token // '}'
}

func (s *BodyStatement) statementNode()      {}
func (s *BodyStatement) TokenLiteral() string { return s.Open.Kind.String() }
func (s *BodyStatement) Pos() lexer.Position  { return s.Open.Pos }
func (s *BodyStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, st := range s.Statements {
		sb.WriteString(st.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Param is a single declared function parameter: an identifier and its
// mandatory type annotation.
type Param struct {
	Name lexer.Token
	Type lexer.Token
}

// FunctionStatement declares a named function. ReturnType is nil when no
// ":Type" annotation precedes the name.
type FunctionStatement struct {
	Keyword    lexer.Token // 'fun'
	ReturnType *lexer.Token
	Name       lexer.Token
	Params     []Param
	Body       *BodyStatement
}

func (s *FunctionStatement) statementNode()      {}
func (s *FunctionStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *FunctionStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *FunctionStatement) String() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name.Literal.Text
	}
	return "fun " + s.Name.Literal.Text + "(" + strings.Join(names, ", ") + ") " + s.Body.String()
}

// LoopStatement is an unconditional loop. The analyzer desugars it into a
// WhileStatement guarded by a synthetic literal true before code generation
// ever sees it.
type LoopStatement struct {
	Keyword lexer.Token // 'loop'
	Body    *BodyStatement
}

func (s *LoopStatement) statementNode()      {}
func (s *LoopStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *LoopStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *LoopStatement) String() string       { return "loop " + s.Body.String() }

// WhileStatement runs Body for as long as Condition evaluates true.
type WhileStatement struct {
	Keyword   lexer.Token // 'while'
	Condition Expression
	Body      *BodyStatement
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *WhileStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *WhileStatement) String() string {
	return "while " + s.Condition.String() + " " + s.Body.String()
}

// ForStatement iterates Variable over Iterable.
type ForStatement struct {
	Keyword  lexer.Token // 'for'
	Variable lexer.Token
	Iterable Expression
	Body     *BodyStatement
}

func (s *ForStatement) statementNode()      {}
func (s *ForStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *ForStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *ForStatement) String() string {
	return "for " + s.Variable.Literal.Text + " in " + s.Iterable.String() + " " + s.Body.String()
}

// IfStatement branches on Condition. Else is nil when there is no else
// clause.
type IfStatement struct {
	Keyword   lexer.Token // 'if'
	Condition Expression
	Then      *BodyStatement
	Else      *BodyStatement
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *IfStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *IfStatement) String() string {
	out := "if " + s.Condition.String() + " " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// BreakStatement exits the nearest enclosing loop.
type BreakStatement struct {
	Token lexer.Token
}

func (s *BreakStatement) statementNode()      {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Kind.String() }
func (s *BreakStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *BreakStatement) String() string       { return "break" }

// ContinueStatement jumps to the next iteration of the nearest enclosing
// loop.
type ContinueStatement struct {
	Token lexer.Token
}

func (s *ContinueStatement) statementNode()      {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Kind.String() }
func (s *ContinueStatement) Pos() lexer.Position  { return s.Token.Pos }
func (s *ContinueStatement) String() string       { return "continue" }

// ReturnStatement yields Value from the enclosing function, or, when found
// outside any function, ends the program with Value as its result.
type ReturnStatement struct {
	Keyword lexer.Token
	Value   Expression
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) TokenLiteral() string { return s.Keyword.Kind.String() }
func (s *ReturnStatement) Pos() lexer.Position  { return s.Keyword.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}
