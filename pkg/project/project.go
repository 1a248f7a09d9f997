// Package project renders a resolved node order, together with its
// loader metadata, into one of three output projections: plain node
// names, "name=path" lines, or a JSON array of per-node records.
package project

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/depsolve/pkg/depgraph"
)

// Format names an output projection.
type Format string

const (
	// FormatNodes prints space-separated node names on one line.
	FormatNodes Format = "nodes"
	// FormatPaths prints one "name=path" line per node.
	FormatPaths Format = "paths"
	// FormatJSON prints the order as a JSON array of per-node records.
	FormatJSON Format = "json"
)

// record is one node's JSON projection. A node absent from the loaded
// metadata (referenced but never defined) renders with an empty Deps
// slice and no path field.
type record struct {
	Node string   `json:"node"`
	Path string   `json:"path,omitempty"`
	Deps []string `json:"deps"`
}

// Render projects order into the given format. meta supplies each node's
// loader metadata (source path, raw dep tokens); a node in order with no
// entry in meta is rendered with empty metadata, per the projector's
// contract for referenced-but-undefined nodes.
func Render(order []string, meta depgraph.MetaGraph, format Format) (string, error) {
	switch format {
	case FormatNodes, "":
		return strings.Join(order, " "), nil
	case FormatPaths:
		lines := make([]string, len(order))
		for i, n := range order {
			lines[i] = fmt.Sprintf("%s=%s", n, meta[n].Path)
		}
		return strings.Join(lines, "\n"), nil
	case FormatJSON:
		records := make([]record, len(order))
		for i, n := range order {
			m := meta[n]
			deps := m.Deps
			if deps == nil {
				deps = []string{}
			}
			records[i] = record{Node: n, Path: m.Path, Deps: deps}
		}
		data, err := json.Marshal(records)
		if err != nil {
			return "", fmt.Errorf("marshal order: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
