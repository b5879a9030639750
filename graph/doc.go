// Package graph implements the compressed-graph storage engine: a
// BVGraph-style bit-compressed adjacency list with a side offsets array for
// O(1) random access, opened read-only over a memory-mapped file.
//
// Successor lists are Elias-gamma-coded gaps (see internal/bitio), which
// compress well because the BFS permutation clusters nodes with similar
// neighborhoods near each other in id space. Forward and transposed graphs
// are both instances of the same Graph type; the runtime simply opens two
// of them built from the two arc orderings.
//
// A Graph's View capability (NumNodes, Outdegree, Successors, Copy) is
// shared with the transposed graph and the node-type-filtered subgraph view
// so the traversal kernel can be written once against the interface.
package graph
