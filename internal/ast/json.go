package ast

import (
	"encoding/json"

	"github.com/tutara-lang/tutara/internal/lexer"
)

// tokenJSON is the wire shape of a lexer.Token, used by the "tokens" output
// format and embedded wherever a node wants to expose its anchoring token.
type tokenJSON struct {
	Kind    string      `json:"kind"`
	Literal interface{} `json:"literal,omitempty"`
	Line    int         `json:"line"`
	Column  int         `json:"column"`
	Length  int         `json:"length"`
}

func tokenToJSON(t lexer.Token) tokenJSON {
	tj := tokenJSON{
		Kind:   t.Kind.String(),
		Line:   t.Pos.Line,
		Column: t.Pos.Column,
		Length: t.Pos.Length,
	}
	switch t.Literal.Kind {
	case lexer.NumberLiteral:
		tj.Literal = t.Literal.Number
	case lexer.StringLiteralKind:
		tj.Literal = t.Literal.Text
	case lexer.BooleanLiteral:
		tj.Literal = t.Literal.Bool
	}
	return tj
}

// TokenList implements the "tokens" output format: one tokenJSON object
// per lexed token. It is a flat slice built by the CLI driver, not a node
// in the tree.
type TokenList []lexer.Token

func (tl TokenList) MarshalJSON() ([]byte, error) {
	out := make([]tokenJSON, len(tl))
	for i, t := range tl {
		out[i] = tokenToJSON(t)
	}
	return json.Marshal(out)
}

func (e *LiteralExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string    `json:"kind"`
		Token tokenJSON `json:"token"`
	}{"Literal", tokenToJSON(e.Token)})
}

func (e *IdentifierExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string    `json:"kind"`
		Name string    `json:"name"`
		Token tokenJSON `json:"token"`
	}{"Identifier", e.Name(), tokenToJSON(e.Token)})
}

func (e *BinaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string     `json:"kind"`
		Left     Expression `json:"left"`
		Operator tokenJSON  `json:"operator"`
		Right    Expression `json:"right"`
	}{"Binary", e.Left, tokenToJSON(e.Operator), e.Right})
}

func (e *UnaryExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string     `json:"kind"`
		Operator tokenJSON  `json:"operator"`
		Right    Expression `json:"right"`
	}{"Unary", tokenToJSON(e.Operator), e.Right})
}

func (e *GroupingExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Inner Expression `json:"inner"`
	}{"Grouping", e.Inner})
}

func (e *AssignmentExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string     `json:"kind"`
		Name     tokenJSON  `json:"name"`
		Operator tokenJSON  `json:"operator"`
		Value    Expression `json:"value"`
	}{"Assignment", tokenToJSON(e.Name), tokenToJSON(e.Operator), e.Value})
}

func (e *GetExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string     `json:"kind"`
		Receiver Expression `json:"receiver"`
		Member   tokenJSON  `json:"member"`
	}{"Get", e.Receiver, tokenToJSON(e.Member)})
}

func (e *CallExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string       `json:"kind"`
		Callee Expression   `json:"callee"`
		Args   []Expression `json:"arguments"`
	}{"Call", e.Callee, e.Args})
}

func (s *ExpressionStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string     `json:"kind"`
		Expr Expression `json:"expression"`
	}{"ExpressionStatement", s.Expr})
}

func (s *DeclarationStatement) MarshalJSON() ([]byte, error) {
	var typeName *tokenJSON
	if s.TypeName != nil {
		tj := tokenToJSON(*s.TypeName)
		typeName = &tj
	}
	return json.Marshal(struct {
		Kind     string     `json:"kind"`
		Mutable  bool       `json:"mutable"`
		TypeName *tokenJSON `json:"typeName,omitempty"`
		Name     tokenJSON  `json:"name"`
		Value    Expression `json:"value"`
	}{"Declaration", s.Mutable(), typeName, tokenToJSON(s.Name()), s.Value})
}

func (s *CommentStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string    `json:"kind"`
		Text string    `json:"text"`
		Token tokenJSON `json:"token"`
	}{"Comment", s.Token.Literal.Text, tokenToJSON(s.Token)})
}

func (s *BodyStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind       string      `json:"kind"`
		Statements []Statement `json:"statements"`
	}{"Body", s.Statements})
}

type paramJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func paramsToJSON(params []Param) []paramJSON {
	out := make([]paramJSON, len(params))
	for i, p := range params {
		out[i] = paramJSON{Name: p.Name.Literal.Text, Type: p.Type.Literal.Text}
	}
	return out
}

func (s *FunctionStatement) MarshalJSON() ([]byte, error) {
	var returnType *tokenJSON
	if s.ReturnType != nil {
		tj := tokenToJSON(*s.ReturnType)
		returnType = &tj
	}
	return json.Marshal(struct {
		Kind       string         `json:"kind"`
		ReturnType *tokenJSON     `json:"returnType,omitempty"`
		Name       string         `json:"name"`
		Params     []paramJSON    `json:"parameters"`
		Body       *BodyStatement `json:"body"`
	}{"Function", returnType, s.Name.Literal.Text, paramsToJSON(s.Params), s.Body})
}

func (s *LoopStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string        `json:"kind"`
		Body *BodyStatement `json:"body"`
	}{"Loop", s.Body})
}

func (s *WhileStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string        `json:"kind"`
		Condition Expression    `json:"condition"`
		Body      *BodyStatement `json:"body"`
	}{"While", s.Condition, s.Body})
}

func (s *ForStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string        `json:"kind"`
		Variable string        `json:"variable"`
		Iterable Expression    `json:"iterable"`
		Body     *BodyStatement `json:"body"`
	}{"For", s.Variable.Literal.Text, s.Iterable, s.Body})
}

func (s *IfStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      string        `json:"kind"`
		Condition Expression    `json:"condition"`
		Then      *BodyStatement `json:"then"`
		Else      *BodyStatement `json:"else,omitempty"`
	}{"If", s.Condition, s.Then, s.Else})
}

func (s *BreakStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"Break"})
}

func (s *ContinueStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"Continue"})
}

func (s *ReturnStatement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  string     `json:"kind"`
		Value Expression `json:"value,omitempty"`
	}{"Return", s.Value})
}

func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Statements []Statement `json:"statements"`
	}{p.Statements})
}
