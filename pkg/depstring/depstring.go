// Package depstring parses the dep-string mini-language used by directory
// sources and node dependency lists: whitespace/comma separated tokens,
// each either a bare node name, a '|'-delimited alternation, or a
// '+'-prefixed weak (order-only) reference.
package depstring

import (
	"regexp"
	"strings"

	"github.com/matzehuels/depsolve/pkg/depgraph"
	depserrors "github.com/matzehuels/depsolve/pkg/errors"
)

var (
	commentRE = regexp.MustCompile(`#[^\n]*`)
	splitRE   = regexp.MustCompile(`[,\s]+`)
)

// Parse parses a raw dep string into an ordered list of dep atoms.
// Lines are comment-stripped ('#' to end of line) before tokenizing, and
// tokens are split on commas and any run of whitespace.
func Parse(raw string) ([]depgraph.Atom, error) {
	stripped := commentRE.ReplaceAllString(raw, " ")
	stripped = strings.TrimSpace(stripped)
	if stripped == "" {
		return nil, nil
	}

	tokens := splitRE.Split(stripped, -1)
	atoms := make([]depgraph.Atom, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		atom, err := parseOne(tok)
		if err != nil {
			return nil, err
		}
		atoms = append(atoms, atom)
	}
	return atoms, nil
}

func parseOne(tok string) (depgraph.Atom, error) {
	switch {
	case strings.Contains(tok, "|"):
		parts := strings.Split(tok, "|")
		for _, p := range parts {
			if p == "" {
				return depgraph.Atom{}, depserrors.New(depserrors.CodeParse,
					"empty alternation part in %q", tok)
			}
		}
		return depgraph.AltAtom(parts...), nil
	case strings.HasPrefix(tok, "+"):
		name := tok[1:]
		if name == "" {
			return depgraph.Atom{}, depserrors.New(depserrors.CodeParse,
				"bare '+' is not a valid dep atom")
		}
		return depgraph.WeakAtom(name), nil
	default:
		return depgraph.RequiredAtom(tok), nil
	}
}

// Tokens renders each atom back into its single-token string form (the
// inverse of parseOne), one entry per atom. Used to preserve a node's raw
// dep specification as loader metadata.
func Tokens(atoms []depgraph.Atom) []string {
	tokens := make([]string, 0, len(atoms))
	for _, a := range atoms {
		switch a.Kind {
		case depgraph.Required:
			tokens = append(tokens, a.Nodes[0])
		case depgraph.Weak:
			tokens = append(tokens, "+"+a.Nodes[0])
		case depgraph.Alternation:
			tokens = append(tokens, strings.Join(a.Nodes, "|"))
		}
	}
	return tokens
}

// Join renders a list of atoms back into an equivalent dep string, the
// inverse of Parse for any input without comments.
func Join(atoms []depgraph.Atom) string {
	return strings.Join(Tokens(atoms), " ")
}
