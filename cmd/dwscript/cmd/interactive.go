package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tutara-lang/tutara/internal/cerrors"
	"github.com/tutara-lang/tutara/internal/evaluator"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an L REPL",
	Long: `interactive reads statements from stdin, accumulating them into one
program. A line starting with "return" flushes the accumulated program to
the JIT and prints its result, then starts a fresh program. ".exit" leaves
the REPL.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	var buf strings.Builder
	fmt.Fprint(out, "> ")

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ".exit") {
			break
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		if strings.HasPrefix(strings.TrimSpace(line), "return") {
			value, err := evaluator.Evaluate(buf.String())
			if err != nil {
				if ce, ok := err.(*cerrors.Error); ok {
					fmt.Fprintln(out, ce.Error())
				} else {
					fmt.Fprintln(out, err)
				}
			} else {
				fmt.Fprintf(out, "=> %v\n", value)
			}
			buf.Reset()
		}

		fmt.Fprint(out, "> ")
	}

	fmt.Fprintln(out)
	return scanner.Err()
}
