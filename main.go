// ./main.go
package main

import (
	"github.com/kinemorph/skelscale-cli/cmd"
)

// main is the entry point for the skelscale CLI.
func main() {
	// Execute the root command defined in the cmd package.
	// This handles all command-line parsing, configuration, and execution.
	cmd.Execute()
}
