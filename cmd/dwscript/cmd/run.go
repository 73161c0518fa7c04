package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tutara-lang/tutara/internal/analyzer"
	"github.com/tutara-lang/tutara/internal/ast"
	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/evaluator"
	"github.com/tutara-lang/tutara/internal/lexer"
	"github.com/tutara-lang/tutara/internal/parser"
)

var (
	runInput  string
	runOutput string
	runFormat string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an L program and print its output",
	Long: `Run lexes, parses, desugars, and either JIT-executes or renders an L
program, depending on -f.

Formats:
  highlight           every token (literal value, or kind name) colorized by kind
  tokens              JSON array of every lexed token
  statements          JSON array of the parsed (pre-desugaring) AST
  analyzed_statements JSON array of the desugared AST
  result              JIT-execute and print the program's f64 result`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", `source path, or "-" for stdin`)
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "-", `output path, or "-" for stdout`)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "result", "highlight|tokens|statements|analyzed_statements|result")
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func openSink(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	source, err := readSource(runInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	sink, closeSink, err := openSink(runOutput)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer closeSink()

	switch runFormat {
	case "highlight":
		return renderHighlight(sink, source)
	case "tokens":
		return renderTokens(sink, source)
	case "statements":
		return renderStatements(sink, source, false)
	case "analyzed_statements":
		return renderStatements(sink, source, true)
	case "result":
		return renderResult(sink, source)
	default:
		return fmt.Errorf("unknown format %q", runFormat)
	}
}

func reportError(err error) error {
	if ce, ok := err.(*cerrors.Error); ok {
		return fmt.Errorf("%s", ce.Error())
	}
	return err
}

func renderTokens(sink io.Writer, source string) error {
	var tokens ast.TokenList
	l := lexer.New(source)
	for {
		tok, err, ok := l.Next()
		if err != nil {
			return reportError(err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	enc := json.NewEncoder(sink)
	enc.SetIndent("", "  ")
	return enc.Encode(tokens)
}

func collectStatements(source string, analyzed bool) ([]ast.Statement, error) {
	var stmts []ast.Statement

	if analyzed {
		a := analyzer.New(parser.New(lexer.New(source)))
		for {
			stmt, err, ok := a.Next()
			if err != nil {
				return nil, reportError(err)
			}
			if !ok {
				break
			}
			stmts = append(stmts, stmt)
		}
		return stmts, nil
	}

	p := parser.New(lexer.New(source))
	for {
		stmt, err, ok := p.Next()
		if err != nil {
			return nil, reportError(err)
		}
		if !ok {
			break
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func renderStatements(sink io.Writer, source string, analyzed bool) error {
	stmts, err := collectStatements(source, analyzed)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(sink)
	enc.SetIndent("", "  ")
	return enc.Encode(stmts)
}

func renderResult(sink io.Writer, source string) error {
	value, err := evaluator.Evaluate(source)
	if err != nil {
		return reportError(err)
	}
	_, err = fmt.Fprintf(sink, "%v\n", value)
	return err
}

// ansiByKind assigns each token kind a display color the way a terminal
// syntax highlighter would, grouping kinds into the handful of classes L's
// small grammar actually has.
func ansiByKind(kind lexer.TokenKind) string {
	switch kind {
	case lexer.Identifier:
		return "\x1b[36m"
	case lexer.Integer, lexer.String, lexer.Boolean:
		return "\x1b[33m"
	case lexer.Comment:
		return "\x1b[90m"
	case lexer.Val, lexer.Var, lexer.Function, lexer.Return,
		lexer.If, lexer.Else, lexer.Match, lexer.Break, lexer.Continue,
		lexer.While, lexer.Loop, lexer.For, lexer.In:
		return "\x1b[35m"
	default:
		return "\x1b[37m"
	}
}

func renderHighlight(sink io.Writer, source string) error {
	l := lexer.New(source, lexer.WithPreserveComments(true))
	for {
		tok, err, ok := l.Next()
		if err != nil {
			return reportError(err)
		}
		if !ok {
			break
		}
		text := tok.Kind.String()
		if tok.HasLiteral() {
			text = tok.Literal.String()
		}
		if _, err := fmt.Fprintf(sink, "%s%s\x1b[0m ", ansiByKind(tok.Kind), text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(sink)
	return err
}
