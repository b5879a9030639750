package edgefilter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/swhgraph/nodetype"
)

// ErrBadSpec indicates a textual edge-type spec contained an unrecognized
// type token or was malformed (missing colon, empty pair, etc.).
var ErrBadSpec = errors.New("edgefilter: malformed spec")

const wildcard = "*"

// Filter is a compiled edge-type predicate: allowed[src][dst] reports
// whether traversal may follow an edge from a node of type src to a node of
// type dst.
type Filter struct {
	allowed [nodetype.NumTypes][nodetype.NumTypes]bool
}

// Compile parses spec, a comma-separated list of "srcType:dstType" pairs
// where either side may be "*". An empty string compiles to a Filter that
// denies every pair. Compile is deterministic: Compile(s) always produces
// an equal Filter for the same s.
func Compile(spec string) (*Filter, error) {
	f := &Filter{}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		return f, nil
	}

	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			return nil, fmt.Errorf("%w: empty pair in %q", ErrBadSpec, spec)
		}

		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: missing ':' in %q", ErrBadSpec, pair)
		}

		srcs, err := expand(parts[0])
		if err != nil {
			return nil, err
		}
		dsts, err := expand(parts[1])
		if err != nil {
			return nil, err
		}

		for _, s := range srcs {
			for _, d := range dsts {
				f.allowed[s][d] = true
			}
		}
	}

	return f, nil
}

// expand resolves one side of a pair ("*" or a type token) to the set of
// NodeType ordinals it denotes.
func expand(tok string) ([]nodetype.NodeType, error) {
	if tok == wildcard {
		all := make([]nodetype.NodeType, nodetype.NumTypes)
		for i := range all {
			all[i] = nodetype.NodeType(i)
		}
		return all, nil
	}

	t, err := nodetype.ParseToken(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSpec, err)
	}

	return []nodetype.NodeType{t}, nil
}

// Allowed reports whether traversal may cross an edge from a node of type
// src to a node of type dst. O(1).
func (f *Filter) Allowed(src, dst nodetype.NodeType) bool {
	if !src.Valid() || !dst.Valid() {
		return false
	}

	return f.allowed[src][dst]
}

// AllowAll is the compiled form of "*:*", provided as a convenience so
// callers need not re-compile the common "no filtering" case.
func AllowAll() *Filter {
	f, _ := Compile("*:*")
	return f
}
