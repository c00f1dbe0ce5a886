// Command sigprobe discovers operation signatures of the bundled linalg
// library and manages stored discovery snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/sigprobe/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
