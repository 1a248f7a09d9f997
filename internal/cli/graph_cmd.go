package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/config"
	"github.com/matzehuels/depsolve/pkg/cover"
	"github.com/matzehuels/depsolve/pkg/depgraph"
	"github.com/matzehuels/depsolve/pkg/renderdot"
	"github.com/matzehuels/depsolve/pkg/source"
)

type graphOpts struct {
	path    string
	depFile string
	format  string
	output  string
}

// newGraphCmd builds `depsolve graph`, a read-only Graphviz rendering of
// the loaded dependency graph with the chosen cover highlighted.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <dep-strings...>",
		Short: "Render the dependency graph with the resolved cover highlighted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "colon-separated list of source paths")
	cmd.Flags().StringVar(&opts.depFile, "dep-file", "", "per-node dep filename for directory sources")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: dot, svg, png, or pdf (default \"dot\")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout for dot/svg)")

	return cmd
}

func runGraph(ctx context.Context, opts graphOpts, args []string) error {
	logger := loggerFromContext(ctx)
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
	depFile := config.StringSetting(opts.depFile, "", cfg.Defaults.DepFile, "")
	format := config.StringSetting(opts.format, "", cfg.Graph.Style, "dot")

	required := parseRequired(args)

	g, _, err := source.LoadAll(path, depFile)
	if err != nil {
		return err
	}
	strong, _ := depgraph.Normalize(g.WithRequired(required))
	coverSet, err := cover.Find(strong, depgraph.SentinelStart)
	if err != nil {
		return err
	}
	inCover := make(map[string]bool, len(coverSet))
	for _, n := range coverSet {
		inCover[n] = true
	}

	dot := renderdot.ToDOT(g, renderdot.Options{Cover: inCover})
	prog.done(fmt.Sprintf("rendered %d nodes", len(g.AllNodes())))

	return writeGraphOutput(dot, format, opts.output)
}

func writeGraphOutput(dot, format, output string) error {
	var data []byte
	var err error

	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = renderdot.RenderSVG(dot)
	case "png":
		var svg []byte
		svg, err = renderdot.RenderSVG(dot)
		if err == nil {
			data, err = renderdot.ToPNG(svg, 1.0)
		}
	case "pdf":
		var svg []byte
		svg, err = renderdot.RenderSVG(dot)
		if err == nil {
			data, err = renderdot.ToPDF(svg)
		}
	default:
		return fmt.Errorf("unknown graph format %q", format)
	}
	if err != nil {
		return err
	}

	if output == "" {
		if format == "png" || format == "pdf" {
			return fmt.Errorf("--output is required for binary format %q", format)
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printSuccess("wrote %s", output)
	return nil
}
