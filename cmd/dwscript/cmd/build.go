package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/evaluator"
)

var (
	buildInput  string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile an L program to an LLVM bitcode file",
	Long: `build lexes, parses, desugars, and compiles an L program, then writes the
resulting module's LLVM bitcode to -o without executing it.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "-", `source path, or "-" for stdin`)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "init.bc", "bitcode output path")
}

func runBuild(cmd *cobra.Command, args []string) error {
	source, err := readSource(buildInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if err := evaluator.Save(source, buildOutput); err != nil {
		if ce, ok := err.(*cerrors.Error); ok {
			return fmt.Errorf("%s", ce.Error())
		}
		return err
	}
	return nil
}
