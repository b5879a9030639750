package subgraph

import (
	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/nodetype"
)

// TypeLookup resolves a node id to its NodeType; normally store.Store's
// NodeType method or a loaded nodetype.Table's TypeOf.
type TypeLookup func(id int64) (nodetype.NodeType, error)

// View wraps an underlying graph.View, restricting the node set to types
// in mask. num_arcs_view is intentionally not maintained (spec.md §4.6): a
// View does not eagerly count its restricted arcs.
type View struct {
	base   graph.View
	typeOf TypeLookup
	mask   [nodetype.NumTypes]bool
}

// New builds a View over base, allowing only node types in allow.
func New(base graph.View, typeOf TypeLookup, allow ...nodetype.NodeType) *View {
	v := &View{base: base, typeOf: typeOf}
	for _, t := range allow {
		if t.Valid() {
			v.mask[t] = true
		}
	}

	return v
}

// NodeExists reports whether v's type is in this View's whitelist.
func (s *View) NodeExists(v int64) bool {
	t, err := s.typeOf(v)
	if err != nil {
		return false
	}

	return s.mask[t]
}

// NumNodes delegates to the underlying graph; the View does not shrink the
// id space, only the set of nodes considered reachable/iterable.
func (s *View) NumNodes() int64 {
	return s.base.NumNodes()
}

// Outdegree returns the count of v's successors whose type is in the
// whitelist. Returns 0 (not an error) if v itself is filtered out.
func (s *View) Outdegree(v int64) (int64, error) {
	if !s.NodeExists(v) {
		return 0, nil
	}

	succ, err := s.Successors(v)
	if err != nil {
		return 0, err
	}

	var n int64
	for {
		if _, ok := succ.Next(); !ok {
			break
		}
		n++
	}

	return n, nil
}

// Successors returns a lazy sequence of v's successors whose type is in
// the whitelist, preserving the underlying strictly-increasing order.
func (s *View) Successors(v int64) (graph.Successors, error) {
	if !s.NodeExists(v) {
		return &filteredIter{}, nil
	}

	base, err := s.base.Successors(v)
	if err != nil {
		return nil, err
	}

	return &filteredIter{base: base, typeOf: s.typeOf, mask: s.mask}, nil
}

// Copy returns a lightweight duplicate: a fresh View value sharing the
// underlying graph.View's duplicate and the same immutable mask.
func (s *View) Copy() graph.View {
	return &View{base: s.base.Copy(), typeOf: s.typeOf, mask: s.mask}
}

// filteredIter skips successors whose type is not in mask.
type filteredIter struct {
	base   graph.Successors
	typeOf TypeLookup
	mask   [nodetype.NumTypes]bool
}

func (f *filteredIter) Next() (int64, bool) {
	if f.base == nil {
		return 0, false
	}
	for {
		id, ok := f.base.Next()
		if !ok {
			return 0, false
		}
		t, err := f.typeOf(id)
		if err != nil {
			continue
		}
		if f.mask[t] {
			return id, true
		}
	}
}
