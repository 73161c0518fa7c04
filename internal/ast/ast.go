// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the analyzer and code generator.
package ast

import "github.com/tutara-lang/tutara/internal/lexer"

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed (and, after analysis, desugared) source
// file: a document-ordered sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out []byte
	for _, s := range p.Statements {
		out = append(out, s.String()...)
		out = append(out, '\n')
	}
	return string(out)
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 0}
}
