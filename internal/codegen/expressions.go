package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/lexer"
)

// lowerExpression lowers any expression node to a Result, dispatching by
// concrete type the way lowerStatement dispatches statements.
func (g *Generator) lowerExpression(expr ast.Expression) (Result, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return g.lowerLiteral(e)
	case *ast.IdentifierExpr:
		return g.lowerIdentifier(e)
	case *ast.AssignmentExpr:
		return g.lowerAssignment(e)
	case *ast.UnaryExpr:
		return g.lowerUnary(e)
	case *ast.BinaryExpr:
		return g.lowerBinary(e)
	case *ast.GroupingExpr:
		return g.lowerExpression(e.Inner)
	case *ast.CallExpr:
		return g.lowerCall(e)
	case *ast.GetExpr:
		return Result{}, cerrors.NewCodeGen("Unsupported expression: Get")
	default:
		return Result{}, cerrors.NewCodeGen(fmt.Sprintf("unsupported expression %T", expr))
	}
}

func (g *Generator) lowerLiteral(e *ast.LiteralExpr) (Result, error) {
	switch e.Token.Literal.Kind {
	case lexer.NumberLiteral:
		v := llvm.ConstFloat(g.ctx.DoubleType(), float64(e.Token.Literal.Number))
		return Result{Kind: FloatValue, Value: v}, nil
	case lexer.BooleanLiteral:
		ty := g.ctx.Int1Type()
		if e.Token.Literal.Bool {
			return Result{Kind: BoolValue, Value: llvm.ConstAllOnes(ty)}, nil
		}
		return Result{Kind: BoolValue, Value: llvm.ConstInt(ty, 0, false)}, nil
	default:
		return Result{}, cerrors.NewCodeGen("Unsupported literal")
	}
}

func (g *Generator) lowerIdentifier(e *ast.IdentifierExpr) (Result, error) {
	name := e.Name()
	binding, ok := g.scope.Lookup(name)
	if !ok {
		return Result{}, cerrors.NewCodeGen("Variable not found in this scope")
	}
	value := g.builder.CreateLoad(binding.Type, binding.Addr, name)
	kind, err := valueKindOf(binding.Type)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: kind, Value: value}, nil
}

// valueKindOf classifies an LLVM type the way the backend's result kinds
// distinguish values: double is FloatValue, i1 is BoolValue, anything else
// is rejected rather than silently coerced.
func valueKindOf(ty llvm.Type) (ValueKind, error) {
	switch ty.TypeKind() {
	case llvm.DoubleTypeKind:
		return FloatValue, nil
	case llvm.IntegerTypeKind:
		if ty.IntTypeWidth() == 1 {
			return BoolValue, nil
		}
		return NoOp, cerrors.NewCodeGen("Unsupported bit width")
	default:
		return NoOp, cerrors.NewCodeGen("Unsupported type for operation")
	}
}

// lowerAssignment stores a value into an already-declared variable. By the
// time this runs, the analyzer has rewritten every compound-assignment
// operator away, so only a plain Assign should ever reach here.
func (g *Generator) lowerAssignment(e *ast.AssignmentExpr) (Result, error) {
	if e.Operator.Kind != lexer.Assign {
		return Result{}, cerrors.NewCodeGen("Unsupported assignment operator")
	}

	name := e.Name.Literal.Text
	binding, ok := g.scope.Lookup(name)
	if !ok {
		return Result{}, cerrors.NewCodeGen("Variable not found in this scope")
	}

	value, err := g.lowerExpression(e.Value)
	if err != nil {
		return Result{}, err
	}

	switch value.Kind {
	case FloatValue, BoolValue:
		g.builder.CreateStore(value.Value, binding.Addr)
		return Result{Kind: NoOp}, nil
	default:
		return Result{}, cerrors.NewCodeGen("Unsupported assignment operation")
	}
}

func (g *Generator) lowerUnary(e *ast.UnaryExpr) (Result, error) {
	value, err := g.lowerExpression(e.Right)
	if err != nil {
		return Result{}, err
	}

	switch e.Operator.Kind {
	case lexer.Not:
		if value.Kind != BoolValue {
			return Result{}, cerrors.NewCodeGen("Unsupported type for operation")
		}
		return Result{Kind: BoolValue, Value: g.builder.CreateNot(value.Value, "not")}, nil
	case lexer.Minus:
		if value.Kind != FloatValue {
			return Result{}, cerrors.NewCodeGen("Unsupported type for operation")
		}
		return Result{Kind: FloatValue, Value: g.builder.CreateFNeg(value.Value, "neg")}, nil
	case lexer.Plus:
		return value, nil
	default:
		return Result{}, cerrors.NewCodeGen("Unsupported unary operator")
	}
}

// lowerCall resolves Callee as a previously declared function by name and
// invokes it; L has no function values, so anything other than a bare
// identifier callee is rejected.
func (g *Generator) lowerCall(e *ast.CallExpr) (Result, error) {
	callee, ok := e.Callee.(*ast.IdentifierExpr)
	if !ok {
		return Result{}, cerrors.NewCodeGen("Unsupported call")
	}

	name := callee.Name()
	fn, ok := g.functions[name]
	if !ok {
		return Result{}, cerrors.NewCodeGen("Unknown function " + name)
	}

	args := make([]llvm.Value, len(e.Args))
	for i, argExpr := range e.Args {
		arg, err := g.lowerExpression(argExpr)
		if err != nil {
			return Result{}, err
		}
		if arg.Kind != FloatValue && arg.Kind != BoolValue {
			return Result{}, cerrors.NewCodeGen("Unsupported return operation")
		}
		args[i] = arg.Value
	}

	callName := name
	if fn.retKind == NoOp {
		callName = ""
	}
	result := g.builder.CreateCall(fn.fnType, fn.value, args, callName)
	return Result{Kind: fn.retKind, Value: result}, nil
}
