package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/config"
	"github.com/matzehuels/depsolve/pkg/project"
	"github.com/matzehuels/depsolve/pkg/resolve"
)

type resolveOpts struct {
	path    string
	format  string
	depFile string
}

// newResolveCmd builds `depsolve resolve`, the CLI's core operation.
func newResolveCmd() *cobra.Command {
	var opts resolveOpts

	cmd := &cobra.Command{
		Use:   "resolve <dep-strings...>",
		Short: "Resolve a minimal, ordered set of nodes satisfying the given required nodes",
		Long: `Resolve loads a dependency graph from --path, finds a minimum-cardinality
cover satisfying every required node (and every alternation reachable from
it), and prints the cover in dependency-first order.

Examples:
  depsolve resolve app
  depsolve resolve -p ./components:./vendor/components app tool
  depsolve resolve --format json app`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			cfgPath := cfgFile
			if cfgPath == "" {
				cfgPath = config.DefaultFile
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			path := config.StringSetting(opts.path, "RESOLVE_DEPS_PATH", cfg.Defaults.Path, "./")
			format := config.StringSetting(opts.format, "RESOLVE_DEPS_FORMAT", cfg.Defaults.Format, string(project.FormatNodes))
			depFile := config.StringSetting(opts.depFile, "", cfg.Defaults.DepFile, "")

			required := parseRequired(args)

			result, err := resolve.LoadAndResolve(cmd.Context(), path, depFile, required)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("resolved %d nodes", len(result.Order)))

			out, err := project.Render(result.Order, result.Meta, project.Format(format))
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "colon-separated list of source paths")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: nodes, paths, or json")
	cmd.Flags().StringVar(&opts.depFile, "dep-file", "", "per-node dep filename for directory sources (default \"deps\")")

	return cmd
}

// parseRequired splits each CLI argument into a list of required node
// names. Multiple names may appear in a single argument when the caller
// passes a comma-separated dep string.
func parseRequired(args []string) []string {
	var out []string
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
