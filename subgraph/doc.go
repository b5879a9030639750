// Package subgraph implements a read-only, node-type-filtered projection of
// a graph.View: NodeExists and Outdegree/Successors are restricted to nodes
// whose type is in the whitelist S, without materializing a new graph.
//
// A View is cheap to clone per traversal thread: it holds only an immutable
// type mask plus a reference to the underlying graph and type lookup.
package subgraph
