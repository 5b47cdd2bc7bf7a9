package main

// Version info for the MCP Builder service
// These variables are injected at build time via ldflags
var (
	// Version is the current version of the MCP Builder service
	Version = "dev"

	// BuildTime is the time at which the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit that was compiled
	GitCommit = "unknown"
)
