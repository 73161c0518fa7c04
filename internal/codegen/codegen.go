// Package codegen walks the analyzer's desugared statement stream and
// emits LLVM IR for it, mirroring the control-flow and scoping rules the
// original interpreter's evaluator enforced.
package codegen

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/scope"
)

// ValueKind tags what a lowered statement or expression produced.
type ValueKind int

const (
	// NoOp carries nothing; statements that don't produce a usable value
	// (declarations, comments, control-flow statements) reduce to it.
	NoOp ValueKind = iota
	// FloatValue is an IEEE-754 double.
	FloatValue
	// BoolValue is an i1.
	BoolValue
	// ReturnValue signals a top-level return: the driver must stop
	// consuming statements and verify the module.
	ReturnValue
)

// Result is the outcome of lowering one statement or expression.
type Result struct {
	Kind  ValueKind
	Value llvm.Value
}

// Statements is the minimal iterator interface Compile consumes, satisfied
// by *analyzer.Analyzer without codegen importing it directly.
type Statements interface {
	Next() (ast.Statement, error, bool)
}

// funcInfo records what Compile needs to call a previously declared
// function again: its value, the type CreateCall needs under opaque
// pointers, and the ValueKind its return type lowers to.
type funcInfo struct {
	value   llvm.Value
	fnType  llvm.Type
	retKind ValueKind
}

// Generator owns one LLVM context, module, and builder for the lifetime of
// a single compilation. JIT execution engines and bitcode writers must not
// outlive it.
type Generator struct {
	ctx     llvm.Context
	module  llvm.Module
	builder llvm.Builder
	scope   *scope.Stack

	functions map[string]funcInfo

	currentFunction   llvm.Value
	currentReturnKind ValueKind
	terminated        bool
}

// New constructs a Generator with a fresh context, a module named "init",
// and a builder, all owned together.
func New() *Generator {
	ctx := llvm.NewContext()
	return &Generator{
		ctx:       ctx,
		module:    ctx.ModuleCreateWithName("init"),
		builder:   ctx.NewBuilder(),
		scope:     scope.NewStack(),
		functions: make(map[string]funcInfo),
	}
}

// Module returns the module under construction.
func (g *Generator) Module() llvm.Module { return g.module }

// Context returns the owning context.
func (g *Generator) Context() llvm.Context { return g.ctx }

// Close disposes the module, builder, and context together. Use this path
// when the module was never handed to an execution engine (the bitcode
// writer, or any compilation that failed before reaching one).
func (g *Generator) Close() {
	g.module.Dispose()
	g.builder.Dispose()
	g.ctx.Dispose()
}

// DisposeAfterJIT disposes the builder and context only. Call it once an
// ExecutionEngine has taken ownership of the module, which then frees the
// module itself when the engine is disposed.
func (g *Generator) DisposeAfterJIT() {
	g.builder.Dispose()
	g.ctx.Dispose()
}

// Compile lowers stmts into a "main: () -> f64" function, stopping at the
// first top-level return and verifying the module. Exhausting stmts
// without encountering one is a CodeGen error.
func (g *Generator) Compile(stmts Statements) (llvm.Value, error) {
	mainType := llvm.FunctionType(g.ctx.DoubleType(), nil, false)
	mainFn := llvm.AddFunction(g.module, "main", mainType)
	entry := llvm.AddBasicBlock(mainFn, "entry")

	g.currentFunction = mainFn
	g.currentReturnKind = FloatValue
	g.builder.SetInsertPointAtEnd(entry)
	g.terminated = false
	g.scope.Push(scope.NewFrame(scope.Main))
	defer g.scope.Pop()

	for {
		stmt, err, ok := stmts.Next()
		if err != nil {
			return llvm.Value{}, err
		}
		if !ok {
			return llvm.Value{}, cerrors.NewCodeGen("No return statement found in script")
		}

		res, err := g.lowerStatement(stmt)
		if err != nil {
			return llvm.Value{}, err
		}
		if res.Kind == ReturnValue {
			if err := llvm.VerifyModule(g.module, llvm.ReturnStatusAction); err != nil {
				return llvm.Value{}, cerrors.NewCodeGen(err.Error())
			}
			return mainFn, nil
		}
	}
}

func (g *Generator) openGCBlock() {
	gc := llvm.AddBasicBlock(g.currentFunction, "gc")
	g.builder.SetInsertPointAtEnd(gc)
	g.terminated = false
}

// ---- statement lowering ----

func (g *Generator) lowerStatement(stmt ast.Statement) (Result, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return g.lowerExpression(s.Expr)
	case *ast.DeclarationStatement:
		return g.lowerDeclaration(s)
	case *ast.CommentStatement:
		return Result{Kind: NoOp}, nil
	case *ast.FunctionStatement:
		return g.lowerFunction(s)
	case *ast.WhileStatement:
		return g.lowerWhile(s)
	case *ast.IfStatement:
		return g.lowerIf(s)
	case *ast.BreakStatement:
		return g.lowerBreak(s)
	case *ast.ContinueStatement:
		return g.lowerContinue(s)
	case *ast.ReturnStatement:
		return g.lowerReturn(s)
	case *ast.LoopStatement:
		return Result{}, cerrors.NewCodeGen("unexpected Loop statement reached the code generator; the analyzer must desugar it first")
	case *ast.ForStatement:
		return Result{}, cerrors.NewCodeGen("for loops are not supported by the code generator")
	default:
		return Result{}, cerrors.NewCodeGen(fmt.Sprintf("unsupported statement %T", stmt))
	}
}

// lowerBody lowers every statement in body in order, stopping early once a
// terminator has been emitted so later statements aren't appended after it.
// It always reports NoOp to its caller: a return reachable only through a
// nested body is the body's own business, not a signal to the top-level
// driver that the program has exited.
func (g *Generator) lowerBody(body *ast.BodyStatement) (Result, error) {
	for _, stmt := range body.Statements {
		if g.terminated {
			break
		}
		if _, err := g.lowerStatement(stmt); err != nil {
			return Result{}, err
		}
	}
	return Result{Kind: NoOp}, nil
}

func (g *Generator) lowerDeclaration(stmt *ast.DeclarationStatement) (Result, error) {
	assign, ok := stmt.Value.(*ast.AssignmentExpr)
	if !ok {
		return Result{}, cerrors.NewCodeGen("declaration missing its assignment")
	}

	value, err := g.lowerExpression(assign.Value)
	if err != nil {
		return Result{}, err
	}

	var ty llvm.Type
	switch value.Kind {
	case FloatValue:
		ty = g.ctx.DoubleType()
	case BoolValue:
		ty = g.ctx.Int1Type()
	default:
		return Result{}, cerrors.NewCodeGen("cannot declare a variable from this expression")
	}

	name := assign.Name.Literal.Text
	addr := g.builder.CreateAlloca(ty, name)
	g.builder.CreateStore(value.Value, addr)
	g.scope.Define(name, addr, ty)

	return Result{Kind: NoOp}, nil
}

func annotationType(ctx llvm.Context, tok *lexer.Token) (llvm.Type, ValueKind, error) {
	if tok == nil {
		return ctx.VoidType(), NoOp, nil
	}
	switch tok.Literal.Text {
	case "Int":
		return ctx.DoubleType(), FloatValue, nil
	case "Bool":
		return ctx.Int1Type(), BoolValue, nil
	default:
		return llvm.Type{}, NoOp, cerrors.NewCodeGen("unsupported type annotation " + tok.Literal.Text)
	}
}

func (g *Generator) lowerFunction(stmt *ast.FunctionStatement) (Result, error) {
	paramTypes := make([]llvm.Type, len(stmt.Params))
	for i, p := range stmt.Params {
		ty, _, err := annotationType(g.ctx, &p.Type)
		if err != nil {
			return Result{}, err
		}
		paramTypes[i] = ty
	}

	returnType, retKind, err := annotationType(g.ctx, stmt.ReturnType)
	if err != nil {
		return Result{}, err
	}

	fnType := llvm.FunctionType(returnType, paramTypes, false)
	fn := llvm.AddFunction(g.module, stmt.Name.Literal.Text, fnType)
	entry := llvm.AddBasicBlock(fn, stmt.Name.Literal.Text+"_entry")
	g.functions[stmt.Name.Literal.Text] = funcInfo{value: fn, fnType: fnType, retKind: retKind}

	savedBlock := g.builder.GetInsertBlock()
	savedFunction := g.currentFunction
	savedReturnKind := g.currentReturnKind
	savedTerminated := g.terminated

	g.currentFunction = fn
	g.currentReturnKind = retKind
	g.builder.SetInsertPointAtEnd(entry)
	g.terminated = false
	g.scope.Push(scope.NewFrame(scope.Function))

	for i, p := range stmt.Params {
		paramName := p.Name.Literal.Text
		paramType := paramTypes[i]
		addr := g.builder.CreateAlloca(paramType, paramName)
		g.builder.CreateStore(fn.Param(i), addr)
		g.scope.Define(paramName, addr, paramType)
	}

	if _, err := g.lowerBody(stmt.Body); err != nil {
		g.scope.Pop()
		return Result{}, err
	}
	g.scope.Pop()

	g.currentFunction = savedFunction
	g.currentReturnKind = savedReturnKind
	g.builder.SetInsertPointAtEnd(savedBlock)
	g.terminated = savedTerminated

	return Result{Kind: NoOp}, nil
}

func (g *Generator) lowerWhile(stmt *ast.WhileStatement) (Result, error) {
	fn := g.currentFunction
	bodyBlock := llvm.AddBasicBlock(fn, "while_body_block")
	evalBlock := llvm.AddBasicBlock(fn, "while_evaluation_block")
	contBlock := llvm.AddBasicBlock(fn, "while_continuation_block")

	g.builder.CreateBr(evalBlock)
	g.terminated = true

	frame := scope.NewFrame(scope.While)
	frame.Body = bodyBlock
	frame.Evaluation = evalBlock
	frame.Continuation = contBlock
	g.scope.Push(frame)

	g.builder.SetInsertPointAtEnd(bodyBlock)
	g.terminated = false
	if _, err := g.lowerBody(stmt.Body); err != nil {
		g.scope.Pop()
		return Result{}, err
	}
	if !g.terminated {
		g.builder.CreateBr(evalBlock)
	}
	g.scope.Pop()

	g.builder.SetInsertPointAtEnd(evalBlock)
	g.terminated = false
	cond, err := g.lowerExpression(stmt.Condition)
	if err != nil {
		return Result{}, err
	}
	if cond.Kind != BoolValue {
		return Result{}, cerrors.NewCodeGen("while condition must be boolean")
	}
	g.builder.CreateCondBr(cond.Value, bodyBlock, contBlock)
	g.terminated = true

	g.builder.SetInsertPointAtEnd(contBlock)
	g.terminated = false

	return Result{Kind: NoOp}, nil
}

func (g *Generator) lowerIf(stmt *ast.IfStatement) (Result, error) {
	fn := g.currentFunction
	trueBlock := llvm.AddBasicBlock(fn, "if_true_block")
	falseBlock := llvm.AddBasicBlock(fn, "if_false_block")
	contBlock := llvm.AddBasicBlock(fn, "if_continuation_block")

	cond, err := g.lowerExpression(stmt.Condition)
	if err != nil {
		return Result{}, err
	}
	if cond.Kind != BoolValue {
		return Result{}, cerrors.NewCodeGen("if condition must be boolean")
	}
	g.builder.CreateCondBr(cond.Value, trueBlock, falseBlock)
	g.terminated = true

	thenFrame := scope.NewFrame(scope.If)
	thenFrame.Continuation = contBlock
	g.scope.Push(thenFrame)
	g.builder.SetInsertPointAtEnd(trueBlock)
	g.terminated = false
	if _, err := g.lowerBody(stmt.Then); err != nil {
		g.scope.Pop()
		return Result{}, err
	}
	if !g.terminated {
		g.builder.CreateBr(contBlock)
	}
	g.scope.Pop()

	elseFrame := scope.NewFrame(scope.If)
	elseFrame.Continuation = contBlock
	g.scope.Push(elseFrame)
	g.builder.SetInsertPointAtEnd(falseBlock)
	g.terminated = false
	if stmt.Else != nil {
		if _, err := g.lowerBody(stmt.Else); err != nil {
			g.scope.Pop()
			return Result{}, err
		}
	}
	if !g.terminated {
		g.builder.CreateBr(contBlock)
	}
	g.scope.Pop()

	g.builder.SetInsertPointAtEnd(contBlock)
	g.terminated = false

	return Result{Kind: NoOp}, nil
}

func (g *Generator) lowerBreak(stmt *ast.BreakStatement) (Result, error) {
	frame, ok := g.scope.NearestWhile()
	if !ok {
		return Result{}, cerrors.NewCodeGen("Unable to break, no enclosing loop found")
	}
	g.builder.CreateBr(frame.Continuation)
	g.terminated = true
	g.openGCBlock()
	return Result{Kind: NoOp}, nil
}

func (g *Generator) lowerContinue(stmt *ast.ContinueStatement) (Result, error) {
	frame, ok := g.scope.NearestWhile()
	if !ok {
		return Result{}, cerrors.NewCodeGen("Unable to continue, no enclosing loop found")
	}
	g.builder.CreateBr(frame.Evaluation)
	g.terminated = true
	g.openGCBlock()
	return Result{Kind: NoOp}, nil
}

// lowerReturn emits the terminator for a return statement. Its expected
// kind is whatever the enclosing function (or main, if top-level) declares:
// a mismatch between that and the returned expression is a CodeGen error. A
// bare "return" with no expression still needs a terminator matching that
// kind, so it supplies an unspecified value of it (the zero value) rather
// than an ill-typed void return.
func (g *Generator) lowerReturn(stmt *ast.ReturnStatement) (Result, error) {
	_, inFunction := g.scope.NearestFunction()

	switch {
	case stmt.Value != nil:
		value, err := g.lowerExpression(stmt.Value)
		if err != nil {
			return Result{}, err
		}
		if value.Kind != g.currentReturnKind {
			return Result{}, cerrors.NewCodeGen("return type does not match the declared return type")
		}
		g.builder.CreateRet(value.Value)
	case g.currentReturnKind == NoOp:
		g.builder.CreateRetVoid()
	case g.currentReturnKind == FloatValue:
		g.builder.CreateRet(llvm.ConstFloat(g.ctx.DoubleType(), 0))
	case g.currentReturnKind == BoolValue:
		g.builder.CreateRet(llvm.ConstInt(g.ctx.Int1Type(), 0, false))
	}
	g.terminated = true

	if inFunction {
		return Result{Kind: NoOp}, nil
	}
	return Result{Kind: ReturnValue}, nil
}
