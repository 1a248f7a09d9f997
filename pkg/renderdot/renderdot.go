// Package renderdot renders a dependency graph as Graphviz DOT, SVG, PNG,
// or PDF, highlighting which nodes belong to a chosen cover.
//
// DOT generation, goccy/go-graphviz SVG rendering, viewBox normalization,
// and the rsvg-convert shellout for PDF/PNG all follow a plain dependency
// graph with alternation and weak edges rather than a layered layout.
package renderdot

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depsolve/pkg/depgraph"
)

// Options configures DOT generation.
type Options struct {
	// Cover, if non-nil, names the chosen cover. Cover nodes keep the
	// default white filled box; every node outside Cover is drawn dashed
	// with a light grey fill.
	Cover map[string]bool
}

// ToDOT renders g as a DOT digraph. Required edges are solid, Alternation
// edges are dashed, Weak edges are dotted.
func ToDOT(g depgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph depsolve {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n\n")

	names := make([]string, 0, len(g))
	for name := range g.AllNodes() {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attrs := []string{fmt.Sprintf("label=%q", name)}
		if opts.Cover != nil && !opts.Cover[name] {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(attrs, ", "))
	}
	buf.WriteString("\n")

	for _, name := range names {
		for _, atom := range g[name] {
			style := ""
			switch atom.Kind {
			case depgraph.Alternation:
				style = " [style=dashed]"
			case depgraph.Weak:
				style = " [style=dotted]"
			}
			for _, target := range atom.Nodes {
				fmt.Fprintf(&buf, "  %q -> %q%s;\n", name, target, style)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT document to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
var svgTagRe = regexp.MustCompile(`<svg[^>]*>`)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: apt install librsvg2-bin (Linux), brew install librsvg (macOS).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert at the given scale.
// Requires librsvg: apt install librsvg2-bin (Linux), brew install librsvg (macOS).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
