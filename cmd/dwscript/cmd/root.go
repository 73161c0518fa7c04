package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dwscript",
	Short: "L compiler and JIT driver",
	Long: `dwscript is a Go implementation of the L compiler: a lexer, parser,
and desugaring pass feeding an LLVM IR code generator.

A program is a sequence of statements; every execution path ends in a
return statement whose value becomes the program's result. L has no
implicit widening or coercion, and every control form lowers to
explicit basic blocks in the generated module.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
