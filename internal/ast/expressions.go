package ast

import (
	"strings"

	"github.com/tutara-lang/tutara/internal/lexer"
)

// LiteralExpr wraps a token that carries its own value (Integer, String, or
// Boolean).
type LiteralExpr struct {
	Token lexer.Token
}

func (e *LiteralExpr) expressionNode()          {}
func (e *LiteralExpr) TokenLiteral() string     { return e.Token.Kind.String() }
func (e *LiteralExpr) Pos() lexer.Position      { return e.Token.Pos }
func (e *LiteralExpr) String() string           { return e.Token.Literal.String() }

// IdentifierExpr names a variable or function by its declared identifier.
type IdentifierExpr struct {
	Token lexer.Token
}

func (e *IdentifierExpr) expressionNode()      {}
func (e *IdentifierExpr) TokenLiteral() string { return e.Token.Kind.String() }
func (e *IdentifierExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *IdentifierExpr) Name() string         { return e.Token.Literal.Text }
func (e *IdentifierExpr) String() string       { return e.Token.Literal.Text }

// BinaryExpr binds two expressions with an infix operator.
type BinaryExpr struct {
	Left     Expression
	Operator lexer.Token
	Right    Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) TokenLiteral() string { return e.Operator.Kind.String() }
func (e *BinaryExpr) Pos() lexer.Position  { return e.Operator.Pos }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Kind.String() + " " + e.Right.String() + ")"
}

// UnaryExpr binds a prefix operator to an expression.
type UnaryExpr struct {
	Operator lexer.Token
	Right    Expression
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) TokenLiteral() string { return e.Operator.Kind.String() }
func (e *UnaryExpr) Pos() lexer.Position  { return e.Operator.Pos }
func (e *UnaryExpr) String() string       { return "(" + e.Operator.Kind.String() + e.Right.String() + ")" }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Token lexer.Token // the '(' token
	Inner Expression
}

func (e *GroupingExpr) expressionNode()      {}
func (e *GroupingExpr) TokenLiteral() string { return e.Token.Kind.String() }
func (e *GroupingExpr) Pos() lexer.Position  { return e.Token.Pos }
func (e *GroupingExpr) String() string       { return "(" + e.Inner.String() + ")" }

// AssignmentExpr assigns Value to an identifier via Operator (Assign, or one
// of the compound forms before the analyzer rewrites them away).
type AssignmentExpr struct {
	Name     lexer.Token
	Operator lexer.Token
	Value    Expression
}

func (e *AssignmentExpr) expressionNode()      {}
func (e *AssignmentExpr) TokenLiteral() string { return e.Name.Kind.String() }
func (e *AssignmentExpr) Pos() lexer.Position  { return e.Name.Pos }
func (e *AssignmentExpr) String() string {
	return e.Name.Literal.Text + " " + e.Operator.Kind.String() + " " + e.Value.String()
}

// GetExpr is dotted member access. Reserved surface syntax: the code
// generator rejects it outright, L has no composite types.
type GetExpr struct {
	Receiver Expression
	Member   lexer.Token
}

func (e *GetExpr) expressionNode()      {}
func (e *GetExpr) TokenLiteral() string { return e.Member.Kind.String() }
func (e *GetExpr) Pos() lexer.Position  { return e.Member.Pos }
func (e *GetExpr) String() string       { return e.Receiver.String() + "." + e.Member.Literal.Text }

// CallExpr invokes Callee with Args.
type CallExpr struct {
	Callee Expression
	Open   lexer.Token
	Args   []Expression
	Close  lexer.Token
}

func (e *CallExpr) expressionNode()      {}
func (e *CallExpr) TokenLiteral() string { return e.Open.Kind.String() }
func (e *CallExpr) Pos() lexer.Position  { return e.Callee.Pos() }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}
