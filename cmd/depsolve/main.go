// Command depsolve resolves a minimal, ordered set of build nodes that
// satisfies a set of required nodes from a dependency graph.
package main

import (
	"fmt"
	"os"

	"github.com/matzehuels/depsolve/internal/cli"
	"github.com/matzehuels/depsolve/pkg/buildinfo"
	"github.com/matzehuels/depsolve/pkg/resolve"
)

// version, commit, and date are set via ldflags at build time:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildinfo.Version = version
	buildinfo.Commit = commit
	buildinfo.Date = date

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", resolve.UserMessage(err))
		os.Exit(1)
	}
}
