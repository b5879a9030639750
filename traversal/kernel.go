package traversal

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/swhgraph/edgefilter"
	"github.com/katalvlaran/swhgraph/graph"
)

// nodesFrame is one stack entry for the visited-bitmap DFS (Nodes mode): the
// current node and its not-yet-fully-drained successor iterator.
type nodesFrame struct {
	id   int64
	iter graph.Successors
}

// pathFrame is one stack entry for the no-visited-set DFS (Paths and
// NodesAndPaths modes). exploredAny records whether this frame has ever
// pushed a child; a frame whose iterator is exhausted with exploredAny still
// false is a leaf and terminates a path.
type pathFrame struct {
	id         int64
	iter       graph.Successors
	exploredAny bool
}

// Run traverses the graph starting at rootPid, following dir, restricted by
// filter, collecting what mode asks for.
func (k *Kernel) Run(rootPid string, dir Direction, filter *edgefilter.Filter, mode Mode, opts ...Option) (*Result, error) {
	if k == nil {
		return nil, ErrNilKernel
	}
	if filter == nil {
		filter = edgefilter.AllowAll()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	root, err := k.resolver.IDOf(rootPid)
	if err != nil {
		return nil, fmt.Errorf("traversal: resolving root %q: %w", rootPid, err)
	}

	view := k.viewFor(dir)

	switch mode {
	case Nodes:
		nodeIDs, err := k.runNodes(view, filter, root, &o)
		if err != nil {
			return nil, err
		}
		return &Result{Nodes: k.pidsOf(nodeIDs)}, nil

	case Paths, NodesAndPaths:
		pathIDs, nodeIDs, err := k.runPaths(view, filter, root, &o, mode == NodesAndPaths)
		if err != nil {
			return nil, err
		}
		res := &Result{Paths: k.pidPaths(pathIDs)}
		if mode == NodesAndPaths {
			res.Nodes = k.pidsOf(nodeIDs)
		}
		return res, nil

	default:
		return nil, fmt.Errorf("traversal: unknown mode %d", mode)
	}
}

// runNodes implements the visited-bitmap explicit-stack DFS, returning the
// insertion-ordered list of visited internal ids.
func (k *Kernel) runNodes(view graph.View, filter *edgefilter.Filter, root int64, o *options) ([]int64, error) {
	visited := roaring.New()
	visited.Add(uint32(root))
	order := []int64{root}

	stack := []nodesFrame{{id: root}}
	for len(stack) > 0 {
		if o.cancel != nil && o.cancel() {
			return nil, ErrCancelled
		}

		top := &stack[len(stack)-1]
		if top.iter == nil {
			iter, err := view.Successors(top.id)
			if err != nil {
				return nil, fmt.Errorf("traversal: successors of %d: %w", top.id, err)
			}
			top.iter = iter
		}

		pushed := false
		for {
			next, ok := top.iter.Next()
			if !ok {
				break
			}
			if visited.Contains(uint32(next)) {
				continue
			}

			ok2, err := allowed(filter, k.resolver, top.id, next)
			if err != nil {
				return nil, err
			}
			if !ok2 {
				continue
			}

			visited.Add(uint32(next))
			order = append(order, next)
			stack = append(stack, nodesFrame{id: next})
			pushed = true
			break
		}

		if !pushed {
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}

// runPaths implements the no-visited-set explicit-stack DFS shared by Paths
// and NodesAndPaths mode. When collectNodes is true it also returns the
// insertion-ordered set of distinct ids touched.
func (k *Kernel) runPaths(view graph.View, filter *edgefilter.Filter, root int64, o *options, collectNodes bool) ([][]int64, []int64, error) {
	var paths [][]int64
	var nodeOrder []int64
	var seen *roaring.Bitmap
	if collectNodes {
		seen = roaring.New()
		seen.Add(uint32(root))
		nodeOrder = append(nodeOrder, root)
	}

	path := []int64{root}
	stack := []pathFrame{{id: root}}

	for len(stack) > 0 {
		if o.cancel != nil && o.cancel() {
			return nil, nil, ErrCancelled
		}

		top := &stack[len(stack)-1]
		if top.iter == nil {
			iter, err := view.Successors(top.id)
			if err != nil {
				return nil, nil, fmt.Errorf("traversal: successors of %d: %w", top.id, err)
			}
			top.iter = iter
		}

		pushed := false
		for {
			next, ok := top.iter.Next()
			if !ok {
				break
			}

			ok2, err := allowed(filter, k.resolver, top.id, next)
			if err != nil {
				return nil, nil, err
			}
			if !ok2 {
				continue
			}

			top.exploredAny = true

			if len(path) >= o.maxPathDepth {
				return nil, nil, fmt.Errorf("%w: at depth %d", ErrPathDepthExceeded, len(path))
			}

			if collectNodes && !seen.Contains(uint32(next)) {
				seen.Add(uint32(next))
				nodeOrder = append(nodeOrder, next)
			}

			path = append(path, next)
			stack = append(stack, pathFrame{id: next})
			pushed = true
			break
		}

		if pushed {
			continue
		}

		if !top.exploredAny {
			paths = append(paths, append([]int64(nil), path...))
		}

		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
	}

	return paths, nodeOrder, nil
}

func (k *Kernel) pidsOf(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		p, err := k.resolver.PIDOf(id)
		if err != nil {
			p = ""
		}
		out[i] = p
	}

	return out
}

func (k *Kernel) pidPaths(pathsByID [][]int64) [][]string {
	out := make([][]string, len(pathsByID))
	for i, p := range pathsByID {
		out[i] = k.pidsOf(p)
	}

	return out
}
