package store

import (
	"fmt"

	"github.com/katalvlaran/swhgraph/edgefilter"
	"github.com/katalvlaran/swhgraph/traversal"
)

// Neighbors returns the filtered, single-hop successor PIDs of rootPid:
// every node n such that the compressed graph (forward or transposed,
// per dir) has an arc rootPid->n and edgeSpec allows the (type(rootPid),
// type(n)) pair.
func (s *Store) Neighbors(rootPid string, dir traversal.Direction, edgeSpec string) ([]string, error) {
	filter, err := edgefilter.Compile(edgeSpec)
	if err != nil {
		return nil, err
	}

	root, err := s.IDOf(rootPid)
	if err != nil {
		return nil, fmt.Errorf("store: resolving %q: %w", rootPid, err)
	}

	view := s.ForwardView()
	if dir == traversal.Backward {
		view = s.TransposedView()
	}

	succ, err := view.Successors(root)
	if err != nil {
		return nil, err
	}

	rootType, err := s.NodeType(root)
	if err != nil {
		return nil, err
	}

	var out []string
	for {
		next, ok := succ.Next()
		if !ok {
			break
		}

		nextType, err := s.NodeType(next)
		if err != nil {
			return nil, err
		}
		if !filter.Allowed(rootType, nextType) {
			continue
		}

		pid, err := s.PIDOf(next)
		if err != nil {
			return nil, err
		}
		out = append(out, pid)
	}

	return out, nil
}

// kernel builds a traversal.Kernel bound to this Store's views and resolver.
func (s *Store) kernel() *traversal.Kernel {
	return traversal.NewKernel(s.ForwardView(), s.TransposedView(), s)
}

// Walk runs the typed traversal kernel from rootPid, following dir and
// edgeSpec, collecting what mode asks for.
func (s *Store) Walk(rootPid string, dir traversal.Direction, edgeSpec string, mode traversal.Mode, opts ...traversal.Option) (*traversal.Result, error) {
	filter, err := edgefilter.Compile(edgeSpec)
	if err != nil {
		return nil, err
	}

	return s.kernel().Run(rootPid, dir, filter, mode, opts...)
}

// Visit runs the typed traversal kernel from rootPid to produce the full
// reachable set (or path list) under edgeSpec; identical in mechanism to
// Walk, named separately per spec.md's public query surface.
func (s *Store) Visit(rootPid string, dir traversal.Direction, edgeSpec string, mode traversal.Mode, opts ...traversal.Option) (*traversal.Result, error) {
	return s.Walk(rootPid, dir, edgeSpec, mode, opts...)
}
