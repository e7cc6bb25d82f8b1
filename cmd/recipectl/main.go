// Command recipectl is the operator tool for the recipe backend: it runs
// migrations, seeds generated recipes, mints tokens and exercises the
// extraction pipeline offline.
package main

import (
	"fmt"
	"os"
)

// Version is set at build time.
var Version = "dev"

func main() {
	app := newCLIApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
