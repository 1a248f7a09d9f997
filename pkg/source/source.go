// Package source loads a dependency graph from one or more path elements:
// a directory of per-node "deps" files, a JSON document, a TOML document,
// or "-" (JSON read from standard input).
package source

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depsolve/pkg/depgraph"
	"github.com/matzehuels/depsolve/pkg/depstring"
	depserrors "github.com/matzehuels/depsolve/pkg/errors"
)

// DefaultDepFile is the per-node filename a directory source looks for
// when none is given.
const DefaultDepFile = "deps"

// StdinPath is the path element LoadPath/LoadAll treat as "read JSON from
// standard input" rather than a filesystem path.
const StdinPath = "-"

// rawGraph is the shape shared by the JSON and TOML sources: a table
// whose keys are node names and whose values are dep specifications.
// Each entry is either a bare node name / "|"-joined alternation string,
// or a nested array of alternative strings. Both encoding/json and
// BurntSushi/toml decode this shape naturally into map[string][]any
// without a custom unmarshaler.
type rawGraph map[string][]any

func depFromRaw(name string, dep any) (depgraph.Atom, error) {
	switch v := dep.(type) {
	case string:
		atoms, err := depstring.Parse(v)
		if err != nil {
			return depgraph.Atom{}, err
		}
		if len(atoms) != 1 {
			return depgraph.Atom{}, depserrors.New(depserrors.CodeParse, "dep entry %q must name exactly one atom", v)
		}
		return atoms[0], nil
	case []any:
		alts := make([]string, 0, len(v))
		for _, a := range v {
			s, ok := a.(string)
			if !ok || s == "" {
				return depgraph.Atom{}, depserrors.New(depserrors.CodeParse, "node %q: alternation members must be non-empty strings", name)
			}
			alts = append(alts, s)
		}
		if len(alts) == 0 {
			return depgraph.Atom{}, depserrors.New(depserrors.CodeParse, "node %q: empty alternation array", name)
		}
		return depgraph.AltAtom(alts...), nil
	default:
		return depgraph.Atom{}, depserrors.New(depserrors.CodeParse, "node %q: dep entry must be a string or an array of strings", name)
	}
}

// rawToGraph converts raw into a Graph and its MetaGraph. sourceLabel is
// recorded as every node's Meta.Path, since a JSON/TOML document has no
// finer-grained per-node location.
func rawToGraph(raw rawGraph, sourceLabel string) (depgraph.Graph, depgraph.MetaGraph, error) {
	g := make(depgraph.Graph, len(raw))
	meta := make(depgraph.MetaGraph, len(raw))
	for name, deps := range raw {
		atoms := make([]depgraph.Atom, 0, len(deps))
		for _, d := range deps {
			atom, err := depFromRaw(name, d)
			if err != nil {
				return nil, nil, err
			}
			atoms = append(atoms, atom)
		}
		g[name] = atoms
		meta[name] = depgraph.Meta{Path: sourceLabel, Deps: depstring.Tokens(atoms)}
	}
	return g, meta, nil
}

// LoadDirectory scans dir for subdirectories containing a file named
// depFile (DefaultDepFile if empty) and parses each as a dep string. A
// subdirectory with no dep file is treated as a node with no deps.
func LoadDirectory(dir, depFile string) (depgraph.Graph, depgraph.MetaGraph, error) {
	if depFile == "" {
		depFile = DefaultDepFile
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, depserrors.Wrap(depserrors.CodeLoad, err, "reading directory %s", dir)
	}

	g := make(depgraph.Graph, len(entries))
	meta := make(depgraph.MetaGraph, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		nodePath := filepath.Join(dir, name)
		depPath := filepath.Join(nodePath, depFile)
		data, err := os.ReadFile(depPath)
		if err != nil {
			if os.IsNotExist(err) {
				g[name] = nil
				meta[name] = depgraph.Meta{Path: nodePath, Deps: []string{}}
				continue
			}
			return nil, nil, depserrors.Wrap(depserrors.CodeLoad, err, "reading %s", depPath)
		}
		atoms, err := depstring.Parse(string(data))
		if err != nil {
			return nil, nil, depserrors.Wrap(depserrors.CodeParse, err, "parsing %s", depPath)
		}
		g[name] = atoms
		meta[name] = depgraph.Meta{Path: nodePath, Deps: depstring.Tokens(atoms)}
	}
	return g, meta, nil
}

// LoadJSON decodes a JSON document from r into a graph. sourceLabel is
// recorded as every loaded node's Meta.Path (e.g. the file path, or
// StdinPath for standard input). Malformed JSON is a ParseError; a
// well-formed document with a non-array, non-null value is a LoadError.
func LoadJSON(r io.Reader, sourceLabel string) (depgraph.Graph, depgraph.MetaGraph, error) {
	var raw rawGraph
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, depserrors.Wrap(depserrors.CodeLoad, err, "decoding JSON source")
		}
		return nil, nil, depserrors.Wrap(depserrors.CodeParse, err, "decoding JSON source")
	}
	return rawToGraph(raw, sourceLabel)
}

// LoadJSONFile opens path and decodes it with LoadJSON.
func LoadJSONFile(path string) (depgraph.Graph, depgraph.MetaGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, depserrors.Wrap(depserrors.CodeLoad, err, "opening %s", path)
	}
	defer f.Close()
	return LoadJSON(f, path)
}

// LoadTOMLFile decodes a TOML document at path into a graph. A missing
// key is equivalent to an empty dep list.
func LoadTOMLFile(path string) (depgraph.Graph, depgraph.MetaGraph, error) {
	var raw rawGraph
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, nil, depserrors.Wrap(depserrors.CodeParse, err, "decoding TOML source %s", path)
	}
	return rawToGraph(raw, path)
}

// LoadPath loads a single path element, dispatching on its shape:
// StdinPath ("-") reads JSON from standard input, a ".json" suffix loads
// JSON, a ".toml" suffix loads TOML, anything else is treated as a
// directory source.
func LoadPath(path, depFile string) (depgraph.Graph, depgraph.MetaGraph, error) {
	switch {
	case path == StdinPath:
		return LoadJSON(os.Stdin, StdinPath)
	case strings.HasSuffix(path, ".json"):
		return LoadJSONFile(path)
	case strings.HasSuffix(path, ".toml"):
		return LoadTOMLFile(path)
	default:
		return LoadDirectory(path, depFile)
	}
}

// LoadAll loads every element of a colon-separated path list and merges
// them into a single graph and metadata table. A node name defined by
// more than one path element is a LoadError: sources must partition the
// node space.
func LoadAll(pathSpec, depFile string) (depgraph.Graph, depgraph.MetaGraph, error) {
	merged := make(depgraph.Graph)
	mergedMeta := make(depgraph.MetaGraph)
	for _, p := range strings.Split(pathSpec, ":") {
		if p == "" {
			continue
		}
		g, meta, err := LoadPath(p, depFile)
		if err != nil {
			return nil, nil, err
		}
		for name, atoms := range g {
			if _, dup := merged[name]; dup {
				return nil, nil, depserrors.New(depserrors.CodeLoad, "node %q defined by more than one source in path %q", name, pathSpec)
			}
			merged[name] = atoms
			mergedMeta[name] = meta[name]
		}
	}
	return merged, mergedMeta, nil
}
