// Command plotter inspects, charts and processes tabular files from the
// command line using the same pipeline as the web server.
package main

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/graphtool/internal/core"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		if msg := core.MapError(err); core.IsUserFacing(err) {
			fmt.Fprintf(os.Stderr, "  %s (%s)\n", msg.Action, msg.Code)
		}
		os.Exit(1)
	}
}
