// Package parser turns a lexer's token stream into a lazy, fail-fast
// sequence of statements via recursive-descent, precedence-climbing
// expression parsing.
package parser

import (
	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/lexer"
)

// Parser consumes tokens from a lexer one at a time, buffering a single
// token of lookahead.
type Parser struct {
	lex *lexer.Lexer

	tok    lexer.Token
	err    error
	tokOk  bool
	filled bool

	done bool
}

// New constructs a Parser over lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

func (p *Parser) fill() {
	if p.filled {
		return
	}
	p.tok, p.err, p.tokOk = p.lex.Next()
	p.filled = true
}

func (p *Parser) peek() (lexer.Token, error, bool) {
	p.fill()
	return p.tok, p.err, p.tokOk
}

func (p *Parser) advance() (lexer.Token, error, bool) {
	p.fill()
	tok, err, ok := p.tok, p.err, p.tokOk
	p.filled = false
	return tok, err, ok
}

// Next yields the next statement. ok is false once the sequence is
// drained, either because the tokens are exhausted or because a prior call
// returned an error.
func (p *Parser) Next() (ast.Statement, error, bool) {
	if p.done {
		return nil, nil, false
	}

	_, err, ok := p.peek()
	if err != nil {
		p.done = true
		return nil, err, false
	}
	if !ok {
		p.done = true
		return nil, nil, false
	}

	stmt, err := p.statement()
	if err != nil {
		p.done = true
		return nil, err, false
	}
	return stmt, nil, true
}

func (p *Parser) peekIsKind(kind lexer.TokenKind) bool {
	tok, err, ok := p.peek()
	return err == nil && ok && tok.Kind == kind
}

func (p *Parser) peekIsAnyKind(kinds ...lexer.TokenKind) bool {
	tok, err, ok := p.peek()
	if err != nil || !ok {
		return false
	}
	for _, k := range kinds {
		if tok.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) nextIfKind(kind lexer.TokenKind) (lexer.Token, bool) {
	if p.peekIsKind(kind) {
		tok, _, _ := p.advance()
		return tok, true
	}
	return lexer.Token{}, false
}

func (p *Parser) nextIfAnyKind(kinds ...lexer.TokenKind) (lexer.Token, bool) {
	if p.peekIsAnyKind(kinds...) {
		tok, _, _ := p.advance()
		return tok, true
	}
	return lexer.Token{}, false
}

// nextIfSpecifier consumes an optional ":" Identifier annotation, returning
// the identifier token naming the type.
func (p *Parser) nextIfSpecifier() (*lexer.Token, error, bool) {
	specifier, ok := p.nextIfKind(lexer.Specifier)
	if !ok {
		return nil, nil, false
	}
	typeName, ok := p.nextIfKind(lexer.Identifier)
	if !ok {
		return nil, cerrors.NewSyntax("Expected type", specifier), true
	}
	return &typeName, nil, true
}

// peekStartsExpression reports whether the next token could begin an
// expression, without consuming it. return's trailing expression is
// optional and its parse error is swallowed (see statement's Return case),
// so the attempt must not run at all when the next token plainly can't
// start one — otherwise a token that belongs to the enclosing body (a
// closing brace ending the return's containing block) would be consumed
// by the failed attempt before the swallow discards the error.
func (p *Parser) peekStartsExpression() bool {
	return p.peekIsAnyKind(
		lexer.Identifier, lexer.Integer, lexer.String, lexer.Boolean,
		lexer.OpenParenthesis, lexer.Minus, lexer.Plus, lexer.Not,
	)
}

// ---- statement parsing ----

func (p *Parser) statement() (ast.Statement, error) {
	tok, ok := p.nextIfAnyKind(
		lexer.Val, lexer.Var, lexer.Comment, lexer.Function, lexer.Return,
		lexer.Loop, lexer.While, lexer.For, lexer.Break, lexer.Continue, lexer.If,
	)
	if !ok {
		return p.expressionStatement()
	}

	switch tok.Kind {
	case lexer.Val, lexer.Var:
		return p.declaration(tok)
	case lexer.Comment:
		return &ast.CommentStatement{Token: tok}, nil
	case lexer.Function:
		return p.function(tok)
	case lexer.Return:
		var expr ast.Expression
		if p.peekStartsExpression() {
			parsed, err := p.expressionRoot()
			if err == nil {
				expr = parsed
			}
		}
		return &ast.ReturnStatement{Keyword: tok, Value: expr}, nil
	case lexer.Loop:
		return p.loopStatement(tok)
	case lexer.While:
		return p.whileStatement(tok)
	case lexer.For:
		return p.forStatement(tok)
	case lexer.Break:
		return &ast.BreakStatement{Token: tok}, nil
	case lexer.Continue:
		return &ast.ContinueStatement{Token: tok}, nil
	case lexer.If:
		return p.ifStatement(tok)
	default:
		return nil, cerrors.NewSyntax("statement not implemented", tok)
	}
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expressionRoot()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

func (p *Parser) declaration(keyword lexer.Token) (ast.Statement, error) {
	typeName, err, _ := p.nextIfSpecifier()
	if err != nil {
		return nil, err
	}

	if !p.peekIsKind(lexer.Identifier) {
		return nil, cerrors.NewSyntax("Expected variable name", keyword)
	}

	value, err := p.expressionRoot()
	if err != nil {
		return nil, err
	}
	if _, ok := value.(*ast.AssignmentExpr); !ok {
		return nil, cerrors.NewSyntax("Expected assignment", keyword)
	}

	return &ast.DeclarationStatement{Keyword: keyword, TypeName: typeName, Value: value}, nil
}

func (p *Parser) function(keyword lexer.Token) (ast.Statement, error) {
	returnType, err, _ := p.nextIfSpecifier()
	if err != nil {
		return nil, err
	}

	name, ok := p.nextIfKind(lexer.Identifier)
	if !ok {
		return nil, cerrors.NewSyntax("Expected identifier", keyword)
	}

	var params []ast.Param
	if open, ok := p.nextIfKind(lexer.OpenParenthesis); ok {
		for !p.peekIsKind(lexer.CloseParenthesis) {
			param, err := p.parameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		if _, ok := p.nextIfKind(lexer.CloseParenthesis); !ok {
			return nil, cerrors.NewSyntax("Expected closing parenthesis", open)
		}
	}

	openCurly, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected function body", name)
	}

	body, err := p.body(openCurly)
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStatement{
		Keyword:    keyword,
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Body:       body,
	}, nil
}

func (p *Parser) parameter() (ast.Param, error) {
	identifier, ok := p.nextIfKind(lexer.Identifier)
	if !ok {
		tok, _, _ := p.advance()
		return ast.Param{}, cerrors.NewSyntax("Expected identifier", tok)
	}

	typeName, err, hasSpecifier := p.nextIfSpecifier()
	if err != nil {
		return ast.Param{}, err
	}
	if !hasSpecifier {
		return ast.Param{}, cerrors.NewSyntax("Expected type specification", identifier)
	}

	if _, ok := p.nextIfKind(lexer.Separator); ok {
		return ast.Param{Name: identifier, Type: *typeName}, nil
	}
	if p.peekIsKind(lexer.CloseParenthesis) {
		return ast.Param{Name: identifier, Type: *typeName}, nil
	}
	return ast.Param{}, cerrors.NewSyntax("Expected separator", identifier)
}

func (p *Parser) body(open lexer.Token) (*ast.BodyStatement, error) {
	var statements []ast.Statement

	for {
		if close, ok := p.nextIfKind(lexer.CloseCurlyBracket); ok {
			return &ast.BodyStatement{Open: open, Statements: statements, Close: close}, nil
		}

		_, err, ok := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, cerrors.NewSyntax("Expected end of body", open)
		}

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
}

func (p *Parser) loopStatement(keyword lexer.Token) (ast.Statement, error) {
	open, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected loop body", keyword)
	}
	body, err := p.body(open)
	if err != nil {
		return nil, err
	}
	return &ast.LoopStatement{Keyword: keyword, Body: body}, nil
}

func (p *Parser) whileStatement(keyword lexer.Token) (ast.Statement, error) {
	if _, ok := p.nextIfKind(lexer.OpenParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected open parenthesis", keyword)
	}
	condition, err := p.expressionRoot()
	if err != nil {
		return nil, err
	}
	if _, ok := p.nextIfKind(lexer.CloseParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected close parenthesis", keyword)
	}
	open, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected loop body", keyword)
	}
	body, err := p.body(open)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Keyword: keyword, Condition: condition, Body: body}, nil
}

func (p *Parser) forStatement(keyword lexer.Token) (ast.Statement, error) {
	if _, ok := p.nextIfKind(lexer.OpenParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected open parenthesis", keyword)
	}

	variableExpr, err := p.terms()
	if err != nil {
		return nil, err
	}
	variable, ok := variableExpr.(*ast.IdentifierExpr)
	if !ok {
		return nil, cerrors.NewSyntax("Expected identifier", keyword)
	}

	if _, ok := p.nextIfKind(lexer.In); !ok {
		return nil, cerrors.NewSyntax("Expected in", keyword)
	}

	iterable, err := p.expressionRoot()
	if err != nil {
		return nil, err
	}

	if _, ok := p.nextIfKind(lexer.CloseParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected close parenthesis", keyword)
	}

	open, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected loop body", keyword)
	}
	body, err := p.body(open)
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{Keyword: keyword, Variable: variable.Token, Iterable: iterable, Body: body}, nil
}

func (p *Parser) ifStatement(keyword lexer.Token) (ast.Statement, error) {
	if _, ok := p.nextIfKind(lexer.OpenParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected open parenthesis", keyword)
	}
	condition, err := p.expressionRoot()
	if err != nil {
		return nil, err
	}
	if _, ok := p.nextIfKind(lexer.CloseParenthesis); !ok {
		return nil, cerrors.NewSyntax("Expected close parenthesis", keyword)
	}
	open, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected body", keyword)
	}
	thenBody, err := p.body(open)
	if err != nil {
		return nil, err
	}

	if elseKeyword, ok := p.nextIfKind(lexer.Else); ok {
		elseBody, err := p.elseClause(elseKeyword)
		if err != nil {
			return nil, err
		}
		return &ast.IfStatement{Keyword: keyword, Condition: condition, Then: thenBody, Else: elseBody}, nil
	}

	return &ast.IfStatement{Keyword: keyword, Condition: condition, Then: thenBody}, nil
}

func (p *Parser) elseClause(keyword lexer.Token) (*ast.BodyStatement, error) {
	open, ok := p.nextIfKind(lexer.OpenCurlyBracket)
	if !ok {
		return nil, cerrors.NewSyntax("Expected body", keyword)
	}
	return p.body(open)
}

// ---- expression parsing ----

func (p *Parser) expressionRoot() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	op, ok := p.nextIfAnyKind(
		lexer.Assign, lexer.AssignPlus, lexer.AssignMinus, lexer.AssignMultiply,
		lexer.AssignDivision, lexer.AssignExponentiation, lexer.AssignModulo,
	)
	if !ok {
		return expr, nil
	}

	identifier, ok := expr.(*ast.IdentifierExpr)
	if !ok {
		return nil, cerrors.NewSyntax("Failed on assignment", op)
	}

	rhs, err := p.assignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpr{Name: identifier.Token, Operator: op, Value: rhs}, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfKind(lexer.Or)
		if !ok {
			return expr, nil
		}
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfKind(lexer.And)
		if !ok {
			return expr, nil
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfAnyKind(
			lexer.Equal, lexer.NotEqual, lexer.Greater, lexer.GreaterOrEqual,
			lexer.Lesser, lexer.LesserOrEqual,
		)
		if !ok {
			return expr, nil
		}
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

func (p *Parser) additive() (ast.Expression, error) {
	expr, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfAnyKind(lexer.Minus, lexer.Plus)
		if !ok {
			return expr, nil
		}
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

func (p *Parser) multiplicative() (ast.Expression, error) {
	expr, err := p.exponent()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfAnyKind(lexer.Multiply, lexer.Division, lexer.Modulo)
		if !ok {
			return expr, nil
		}
		right, err := p.exponent()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

// exponent is left-associative, preserved deliberately from the original
// source despite mathematical convention favoring right-associativity.
func (p *Parser) exponent() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.nextIfKind(lexer.Exponentiation)
		if !ok {
			return expr, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: op, Right: right}
	}
}

func (p *Parser) unary() (ast.Expression, error) {
	if op, ok := p.nextIfAnyKind(lexer.Minus, lexer.Plus, lexer.Not); ok {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Operator: op, Right: right}, nil
	}
	return p.get()
}

func (p *Parser) get() (ast.Expression, error) {
	expr, err := p.terms()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.nextIfAnyKind(lexer.OpenParenthesis, lexer.Dot)
		if !ok {
			return expr, nil
		}

		switch tok.Kind {
		case lexer.OpenParenthesis:
			expr, err = p.call(expr, tok)
			if err != nil {
				return nil, err
			}
		case lexer.Dot:
			member, ok := p.nextIfKind(lexer.Identifier)
			if !ok {
				return nil, cerrors.NewSyntax("expected identifier", tok)
			}
			get := &ast.GetExpr{Receiver: expr, Member: member}
			open, ok := p.nextIfKind(lexer.OpenParenthesis)
			if !ok {
				return get, nil
			}
			expr, err = p.call(get, open)
			if err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) call(callee ast.Expression, open lexer.Token) (ast.Expression, error) {
	var args []ast.Expression

	for !p.peekIsKind(lexer.CloseParenthesis) {
		arg, err := p.expressionRoot()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if _, ok := p.nextIfKind(lexer.Separator); !ok {
			break
		}
		if p.peekIsKind(lexer.CloseParenthesis) {
			break
		}
	}

	close, ok := p.nextIfKind(lexer.CloseParenthesis)
	if !ok {
		return nil, cerrors.NewSyntax("Incorrectly formatted parameters", open)
	}
	return &ast.CallExpr{Callee: callee, Open: open, Args: args, Close: close}, nil
}

func (p *Parser) terms() (ast.Expression, error) {
	if tok, ok := p.nextIfKind(lexer.Identifier); ok {
		return &ast.IdentifierExpr{Token: tok}, nil
	}
	if tok, ok := p.nextIfAnyKind(lexer.String, lexer.Integer, lexer.Boolean); ok {
		return &ast.LiteralExpr{Token: tok}, nil
	}
	if open, ok := p.nextIfKind(lexer.OpenParenthesis); ok {
		inner, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if _, ok := p.nextIfKind(lexer.CloseParenthesis); ok {
			return &ast.GroupingExpr{Token: open, Inner: inner}, nil
		}
	}

	tok, err, ok := p.advance()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, cerrors.NewSyntax("Unexpected end of file", tok)
	}
	return nil, cerrors.NewSyntax("Unexpected token", tok)
}
