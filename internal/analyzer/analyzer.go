// Package analyzer desugars the statement stream produced by the parser
// into the canonical forms the code generator expects: loops rewritten to
// while-true, and compound-assignment operators expanded into a plain
// assignment of a binary expression.
package analyzer

import (
	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/parser"
)

// Analyzer wraps a Parser, yielding the same statements after desugaring.
type Analyzer struct {
	parser *parser.Parser
	done   bool
}

// New wraps p.
func New(p *parser.Parser) *Analyzer {
	return &Analyzer{parser: p}
}

// Next yields the next desugared statement. ok is false once the sequence
// is drained.
func (a *Analyzer) Next() (ast.Statement, error, bool) {
	if a.done {
		return nil, nil, false
	}

	stmt, err, ok := a.parser.Next()
	if err != nil {
		a.done = true
		return nil, err, false
	}
	if !ok {
		a.done = true
		return nil, nil, false
	}

	analyzed, err := a.analyze(stmt)
	if err != nil {
		a.done = true
		return nil, err, false
	}
	return analyzed, nil, true
}

func (a *Analyzer) analyze(stmt ast.Statement) (ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.LoopStatement:
		body, err := a.analyzeBody(s.Body)
		if err != nil {
			return nil, err
		}
		condition := &ast.LiteralExpr{Token: lexer.Token{
			Kind:    lexer.Boolean,
			Literal: lexer.Literal{Kind: lexer.BooleanLiteral, Bool: true},
			Pos:     lexer.Position{Line: s.Keyword.Pos.Line, Column: s.Keyword.Pos.Column},
		}}
		return &ast.WhileStatement{Keyword: s.Keyword, Condition: condition, Body: body}, nil

	case *ast.WhileStatement:
		body, err := a.analyzeBody(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Keyword: s.Keyword, Condition: s.Condition, Body: body}, nil

	case *ast.ForStatement:
		body, err := a.analyzeBody(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Keyword: s.Keyword, Variable: s.Variable, Iterable: s.Iterable, Body: body}, nil

	case *ast.IfStatement:
		then, err := a.analyzeBody(s.Then)
		if err != nil {
			return nil, err
		}
		var elseBody *ast.BodyStatement
		if s.Else != nil {
			elseBody, err = a.analyzeBody(s.Else)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Keyword: s.Keyword, Condition: s.Condition, Then: then, Else: elseBody}, nil

	case *ast.FunctionStatement:
		body, err := a.analyzeBody(s.Body)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionStatement{
			Keyword:    s.Keyword,
			ReturnType: s.ReturnType,
			Name:       s.Name,
			Params:     s.Params,
			Body:       body,
		}, nil

	case *ast.ExpressionStatement:
		expr, err := a.analyzeExpression(s.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expr: expr}, nil

	case *ast.DeclarationStatement:
		value, err := a.analyzeExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return &ast.DeclarationStatement{Keyword: s.Keyword, TypeName: s.TypeName, Value: value}, nil

	default:
		return stmt, nil
	}
}

func (a *Analyzer) analyzeBody(body *ast.BodyStatement) (*ast.BodyStatement, error) {
	statements := make([]ast.Statement, len(body.Statements))
	for i, stmt := range body.Statements {
		analyzed, err := a.analyze(stmt)
		if err != nil {
			return nil, err
		}
		statements[i] = analyzed
	}
	return &ast.BodyStatement{Open: body.Open, Statements: statements, Close: body.Close}, nil
}

// analyzeExpression rewrites a compound-assignment expression into a plain
// assignment of a binary expression. Every other expression passes through
// unchanged. Only the statement's top-level expression is inspected: an
// assignment nested inside it (such as the right-hand side of
// "a = b += 1") is not rewritten.
func (a *Analyzer) analyzeExpression(expr ast.Expression) (ast.Expression, error) {
	assign, ok := expr.(*ast.AssignmentExpr)
	if !ok {
		return expr, nil
	}

	if assign.Name.Literal.Kind != lexer.StringLiteralKind || assign.Name.Literal.Text == "" {
		return nil, cerrors.NewCodeGen("unsupported identifier")
	}

	pureOp, compound := pureOperator(assign.Operator.Kind)
	if !compound {
		return assign, nil
	}

	rewrittenOperator := assign.Operator
	rewrittenOperator.Kind = lexer.Assign

	pureToken := assign.Operator
	pureToken.Kind = pureOp

	return &ast.AssignmentExpr{
		Name:     assign.Name,
		Operator: rewrittenOperator,
		Value: &ast.BinaryExpr{
			Left:     &ast.IdentifierExpr{Token: assign.Name},
			Operator: pureToken,
			Right:    assign.Value,
		},
	}, nil
}

func pureOperator(kind lexer.TokenKind) (lexer.TokenKind, bool) {
	switch kind {
	case lexer.AssignPlus:
		return lexer.Plus, true
	case lexer.AssignMinus:
		return lexer.Minus, true
	case lexer.AssignMultiply:
		return lexer.Multiply, true
	case lexer.AssignDivision:
		return lexer.Division, true
	case lexer.AssignExponentiation:
		return lexer.Exponentiation, true
	case lexer.AssignModulo:
		return lexer.Modulo, true
	default:
		return kind, false
	}
}
