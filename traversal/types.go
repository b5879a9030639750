package traversal

import (
	"errors"

	"github.com/katalvlaran/swhgraph/edgefilter"
	"github.com/katalvlaran/swhgraph/graph"
	"github.com/katalvlaran/swhgraph/nodetype"
)

// Direction selects which arc orientation a traversal follows.
type Direction uint8

const (
	// Forward follows arcs as stored (src -> dst).
	Forward Direction = iota
	// Backward follows arcs against their stored orientation, i.e. over
	// the transposed graph.
	Backward
)

// Mode selects what a traversal collects.
type Mode uint8

const (
	// Nodes collects the insertion-ordered set of visited ids, each at
	// most once, via a standard visited-bitmap DFS.
	Nodes Mode = iota
	// Paths collects every root-to-leaf path (a leaf has zero allowed
	// outgoing edges under the active filter); it does not dedup visits.
	Paths
	// NodesAndPaths collects both Nodes' node set and Paths' path list in
	// a single pass driven by the Paths algorithm.
	NodesAndPaths
)

// ErrUnknownPid is the error a Resolver may report for a root PID that does
// not resolve to a known node. Kernel.Run wraps whatever error the Resolver
// returns, so a store.Store-backed run reports idindex.ErrUnknownPid instead.
var ErrUnknownPid = errors.New("traversal: unknown root pid")

// ErrCancelled is returned when the caller's cancellation flag was observed
// set at a node pop.
var ErrCancelled = errors.New("traversal: cancelled")

// ErrPathDepthExceeded is returned by Paths/NodesAndPaths mode when a path
// exceeds the configured MaxPathDepth, the documented guard against
// nontermination on cyclic inputs under a permissive edge filter.
var ErrPathDepthExceeded = errors.New("traversal: path depth exceeded")

// defaultMaxPathDepth bounds Paths-mode recursion when the caller does not
// set one explicitly; generous enough for any real archive path (directory
// trees rarely nest this deep) while still catching a non-DAG-inducing
// filter quickly.
const defaultMaxPathDepth = 100_000

// Resolver translates between PIDs and internal ids and looks up node
// types; store.Store implements it.
type Resolver interface {
	IDOf(pidText string) (int64, error)
	PIDOf(id int64) (string, error)
	NodeType(id int64) (nodetype.NodeType, error)
}

// Option configures a Kernel.Run invocation.
type Option func(*options)

type options struct {
	maxPathDepth int
	cancel       func() bool
}

func defaultOptions() options {
	return options{maxPathDepth: defaultMaxPathDepth}
}

// WithMaxPathDepth overrides the default Paths-mode depth cap.
func WithMaxPathDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPathDepth = n
		}
	}
}

// WithCancel installs a cancellation predicate, polled at each node pop;
// when it returns true the traversal aborts with ErrCancelled and discards
// partial results.
func WithCancel(fn func() bool) Option {
	return func(o *options) {
		if fn != nil {
			o.cancel = fn
		}
	}
}

// Result is the outcome of a traversal.
type Result struct {
	// Nodes is the insertion-ordered set of visited PIDs, each appearing
	// at most once.
	Nodes []string

	// Paths is the list of root-to-leaf paths, each a sequence of PIDs,
	// populated only in Paths/NodesAndPaths modes.
	Paths [][]string
}

// Kernel is a reusable traversal engine over one pair of forward/transposed
// graph views and one resolver. A Kernel holds no mutable state itself;
// each Run call constructs its own visited bitmap/stack.
type Kernel struct {
	forward     graph.View
	transposed  graph.View
	resolver    Resolver
}

// NewKernel builds a Kernel from the forward graph, its transpose, and a
// Resolver for PID<->id and type lookups.
func NewKernel(forward, transposed graph.View, resolver Resolver) *Kernel {
	return &Kernel{forward: forward, transposed: transposed, resolver: resolver}
}

func (k *Kernel) viewFor(dir Direction) graph.View {
	if dir == Backward {
		return k.transposed
	}

	return k.forward
}

// allowed reports whether edgefilter permits crossing from a node of srcID's
// type to one of dstID's type.
func allowed(f *edgefilter.Filter, resolver Resolver, srcID, dstID int64) (bool, error) {
	st, err := resolver.NodeType(srcID)
	if err != nil {
		return false, err
	}
	dt, err := resolver.NodeType(dstID)
	if err != nil {
		return false, err
	}

	return f.Allowed(st, dt), nil
}
