package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/buildinfo"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolve"
)

var (
	cfgFile string
)

// Execute runs the depsolve CLI and returns an error if any command
// fails. It is the sole entry point called from cmd/depsolve/main.go.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "depsolve",
		Short:        "depsolve resolves dependency build order from a dep graph",
		Long:         `depsolve resolves a minimal, ordered set of build nodes that satisfies a set of required nodes, given a dependency graph whose edges may be required, alternation (at-least-one-of), or order-only.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = resolve.WithRunID(ctx, uuid.NewString())
			observability.SetPipelineHooks(&cliHooks{logger: loggerFromContext(ctx)})
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default %q)", "./.depsolve.toml"))

	root.AddCommand(newResolveCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newVersionCmd())

	return root.ExecuteContext(context.Background())
}
