// Command dwscript is the command-line driver over the L compiler core: it
// owns no compiler logic of its own, only argument parsing and the
// presentation of results the core already computed.
package main

import (
	"fmt"
	"os"

	"github.com/tutara-lang/tutara/cmd/dwscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
