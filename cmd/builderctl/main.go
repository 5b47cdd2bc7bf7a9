package main

import (
	"fmt"
	"os"

	"github.com/mcpbuilder/mcp-builder/cmd/builderctl/commands"
)

// Version info for the builderctl tool
// These variables are injected at build time via ldflags
var (
	// Version is the current version of the builderctl tool
	Version = "dev"

	// GitCommit is the git commit that was compiled
	GitCommit = "unknown"
)

func main() {
	root := commands.NewRootCommand(fmt.Sprintf("%s (commit: %s)", Version, GitCommit))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
