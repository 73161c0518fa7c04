package codegen

import (
	"tinygo.org/x/go-llvm"

	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/lexer"
)

// lowerBinary evaluates both operands and dispatches on their combined
// kind. Mixed-kind and unsupported combinations are a CodeGen error rather
// than an implicit conversion — L has no numeric coercion.
func (g *Generator) lowerBinary(e *ast.BinaryExpr) (Result, error) {
	left, err := g.lowerExpression(e.Left)
	if err != nil {
		return Result{}, err
	}
	right, err := g.lowerExpression(e.Right)
	if err != nil {
		return Result{}, err
	}

	switch {
	case left.Kind == FloatValue && right.Kind == FloatValue:
		return g.lowerFloatBinary(left.Value, right.Value, e.Operator.Kind)
	case left.Kind == BoolValue && right.Kind == BoolValue:
		return g.lowerBoolBinary(left.Value, right.Value, e.Operator.Kind)
	default:
		return Result{}, cerrors.NewCodeGen("Unexpected token")
	}
}

func (g *Generator) lowerFloatBinary(lhs, rhs llvm.Value, op lexer.TokenKind) (Result, error) {
	switch op {
	case lexer.Plus:
		return Result{Kind: FloatValue, Value: g.builder.CreateFAdd(lhs, rhs, "tmpadd")}, nil
	case lexer.Minus:
		return Result{Kind: FloatValue, Value: g.builder.CreateFSub(lhs, rhs, "tmpsub")}, nil
	case lexer.Multiply:
		return Result{Kind: FloatValue, Value: g.builder.CreateFMul(lhs, rhs, "tmpmul")}, nil
	case lexer.Division:
		return Result{Kind: FloatValue, Value: g.builder.CreateFDiv(lhs, rhs, "tmpdiv")}, nil
	case lexer.Modulo:
		return Result{Kind: FloatValue, Value: g.builder.CreateFRem(lhs, rhs, "tmprem")}, nil
	case lexer.Exponentiation:
		pow := g.powIntrinsic()
		call := g.builder.CreateCall(pow.fnType, pow.value, []llvm.Value{lhs, rhs}, "tmppow")
		return Result{Kind: FloatValue, Value: call}, nil
	case lexer.Equal:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatOEQ, lhs, rhs, "Equal")}, nil
	case lexer.NotEqual:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatONE, lhs, rhs, "NotEqual")}, nil
	case lexer.GreaterOrEqual:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatOGE, lhs, rhs, "GreaterOrEqual")}, nil
	case lexer.LesserOrEqual:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatOLE, lhs, rhs, "LesserOrEqual")}, nil
	case lexer.Greater:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatOGT, lhs, rhs, "Greater")}, nil
	case lexer.Lesser:
		return Result{Kind: BoolValue, Value: g.builder.CreateFCmp(llvm.FloatOLT, lhs, rhs, "Lesser")}, nil
	default:
		return Result{}, cerrors.NewCodeGen("Unexpected token")
	}
}

func (g *Generator) lowerBoolBinary(lhs, rhs llvm.Value, op lexer.TokenKind) (Result, error) {
	switch op {
	case lexer.And:
		return Result{Kind: BoolValue, Value: g.builder.CreateAnd(lhs, rhs, "And")}, nil
	case lexer.Or:
		return Result{Kind: BoolValue, Value: g.builder.CreateOr(lhs, rhs, "Or")}, nil
	case lexer.Equal:
		return Result{Kind: BoolValue, Value: g.builder.CreateICmp(llvm.IntEQ, lhs, rhs, "Equal")}, nil
	case lexer.NotEqual:
		return Result{Kind: BoolValue, Value: g.builder.CreateICmp(llvm.IntNE, lhs, rhs, "NotEqual")}, nil
	default:
		return Result{}, cerrors.NewCodeGen("Unexpected token")
	}
}

// powIntrinsic declares llvm.pow.f64 the first time exponentiation is
// lowered and reuses the declaration afterward.
func (g *Generator) powIntrinsic() funcInfo {
	const name = "llvm.pow.f64"
	if fn, ok := g.functions[name]; ok {
		return fn
	}
	doubleTy := g.ctx.DoubleType()
	fnType := llvm.FunctionType(doubleTy, []llvm.Type{doubleTy, doubleTy}, false)
	fn := funcInfo{
		value:   llvm.AddFunction(g.module, name, fnType),
		fnType:  fnType,
		retKind: FloatValue,
	}
	g.functions[name] = fn
	return fn
}
