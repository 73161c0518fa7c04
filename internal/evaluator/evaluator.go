// Package evaluator is the outermost façade over the compiler core: it
// owns the LLVM context for one compilation request and either JIT-runs
// the result or writes its bitcode to disk. Neither path lets a context,
// module, or execution engine outlive the call that created it.
package evaluator

import (
	"os"

	"tinygo.org/x/go-llvm"

	"github.com/tutara-lang/tutara/internal/analyzer"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/codegen"
	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/parser"
)

// pipeline wires a fresh lexer, parser, and analyzer over source, matching
// the L→R lazy producer chain every entry point into the core builds.
func pipeline(source string) *analyzer.Analyzer {
	return analyzer.New(parser.New(lexer.New(source)))
}

// Evaluate lexes, parses, desugars, and compiles source, then JIT-executes
// the resulting main function at optimization level None and returns its
// f64 result.
func Evaluate(source string) (float64, error) {
	gen := codegen.New()

	mainFn, err := gen.Compile(pipeline(source))
	if err != nil {
		gen.Close()
		return 0, err
	}

	engine, err := llvm.NewJITCompiler(gen.Module(), 0)
	if err != nil {
		gen.Close()
		return 0, cerrors.NewCodeGen(err.Error())
	}

	result := engine.RunFunction(mainFn, nil)
	value := result.Float(gen.Context().DoubleType())

	engine.Dispose()
	gen.DisposeAfterJIT()

	return value, nil
}

// Save lexes, parses, desugars, and compiles source, then writes the
// resulting module's LLVM bitcode to path instead of executing it.
func Save(source, path string) error {
	gen := codegen.New()
	defer gen.Close()

	if _, err := gen.Compile(pipeline(source)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return cerrors.NewCodeGen(err.Error())
	}
	defer f.Close()

	if ok := gen.Module().WriteBitcodeToFile(f); !ok {
		return cerrors.NewCodeGen("failed to write bitcode to " + path)
	}
	return nil
}
